// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rdfio decodes and encodes RDF concrete syntaxes as quads.
//
// Documents are parsed and written by github.com/geoknoesis/rdf-go and
// exchanged with the rest of the module as gonum rdf.Statements, with
// the statement Label holding the graph of the quad.
package rdfio // import "github.com/kortschak/owlrdf/internal/rdfio"

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	grdf "github.com/geoknoesis/rdf-go/rdf"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/vocab"
)

// Format returns the canonical name of the concrete syntax given by
// name or, if name is empty, inferred from the extension of path.
func Format(path, name string) (string, error) {
	if name != "" {
		f, ok := grdf.ParseFormat(name)
		if !ok {
			return "", fmt.Errorf("unknown format %q", name)
		}
		return string(f), nil
	}
	f, err := grdf.ResolveAnyFormatFromPath(path)
	if err != nil {
		return "", fmt.Errorf("cannot infer format of %q: %w", path, err)
	}
	return f.Name, nil
}

// Namespace is a prefix binding.
type Namespace struct {
	Prefix string
	IRI    string
}

// Namespaces returns the bindings of the prefixes map ordered from
// longest to shortest IRI.
func Namespaces(prefixes map[string]string) []Namespace {
	ns := make([]Namespace, 0, len(prefixes))
	for p, iri := range prefixes {
		ns = append(ns, Namespace{Prefix: p, IRI: iri})
	}
	sort.Sort(byLength(ns))
	return ns
}

// Standard holds the prefix bindings of the RDF, RDFS, OWL and XSD
// vocabularies.
var Standard = map[string]string{
	"rdf":  vocab.RDF,
	"rdfs": vocab.RDFS,
	"owl":  vocab.OWL,
	"xsd":  vocab.XSD,
}

// Decoder is an RDF concrete syntax decoder. rdf.Statements returned
// by Decode have their Terms' UID fields set so that unique terms have
// unique IDs across all documents decoded by the Decoder. Term UIDs are
// based from 1 to allow RDF-aware client graphs to assign ID if no ID
// has been assigned. Repeated quads are returned once.
type Decoder struct {
	format string

	// Graph is the label given to quads in the default
	// graph of a document. If Graph is the zero Term,
	// those quads have an empty label.
	Graph rdf.Term

	log *slog.Logger

	namespaces []Namespace

	strings intern
	ids     map[string]int64
	seen    map[[4]int64]bool

	// docs is the number of documents decoded.
	docs int
}

// NewDecoder returns a new Decoder for the named concrete syntax. If
// log is nil slog.Default is used.
func NewDecoder(format string, log *slog.Logger) *Decoder {
	if log == nil {
		log = slog.Default()
	}
	return &Decoder{
		format:  format,
		log:     log,
		strings: make(intern),
		ids:     make(map[string]int64),
		seen:    make(map[[4]int64]bool),
	}
}

// SetNamespaces sets the prefix bindings used by Compact.
func (dec *Decoder) SetNamespaces(prefixes map[string]string) {
	dec.namespaces = Namespaces(prefixes)
}

// Namespaces returns the prefix bindings of the decoder, ordered from
// longest to shortest IRI.
func (dec *Decoder) Namespaces() []Namespace {
	return dec.namespaces
}

// Decode returns the unique quads of the document read from r that
// have not been returned by earlier calls. Blank nodes are scoped to
// the document. RDF-star triple terms are not supported and quads
// holding them are skipped.
func (dec *Decoder) Decode(ctx context.Context, r io.Reader) ([]*rdf.Statement, error) {
	quads, err := grdf.ParseAny(ctx, r, dec.format, grdf.AnyFormatOptions{})
	if err != nil {
		return nil, err
	}
	dec.docs++
	statements := make([]*rdf.Statement, 0, len(quads))
	for _, q := range quads {
		s, err := dec.statement(q)
		if err != nil {
			dec.log.Warn("skipping quad", "predicate", q.P.Value, "err", err)
			continue
		}
		key := [4]int64{s.Subject.UID, s.Predicate.UID, s.Object.UID, s.Label.UID}
		if dec.seen[key] {
			continue
		}
		dec.seen[key] = true
		statements = append(statements, s)
	}
	return statements, nil
}

func (dec *Decoder) statement(q grdf.Quad) (*rdf.Statement, error) {
	subj, err := dec.term(q.S)
	if err != nil {
		return nil, err
	}
	pred, err := dec.term(q.P)
	if err != nil {
		return nil, err
	}
	obj, err := dec.term(q.O)
	if err != nil {
		return nil, err
	}
	label := dec.Graph
	if q.G != nil {
		label, err = dec.term(q.G)
		if err != nil {
			return nil, err
		}
	}
	s := &rdf.Statement{Subject: subj, Predicate: pred, Object: obj, Label: label}
	for _, t := range []*rdf.Term{&s.Subject, &s.Predicate, &s.Object, &s.Label} {
		if t.Value == "" {
			continue
		}
		t.Value = dec.strings.intern(t.Value)
		t.UID = dec.idFor(t.Value)
	}
	return s, nil
}

// term returns the gonum term corresponding to t.
func (dec *Decoder) term(t grdf.Term) (rdf.Term, error) {
	switch t := t.(type) {
	case grdf.IRI:
		return rdf.NewIRITerm(t.Value)
	case grdf.BlankNode:
		return rdf.NewBlankTerm(fmt.Sprintf("d%d_%s", dec.docs, t.ID))
	case grdf.Literal:
		qual := t.Datatype.Value
		switch {
		case t.Lang != "":
			qual = "@" + t.Lang
		case qual == vocab.XSDString:
			qual = ""
		}
		return rdf.NewLiteralTerm(t.Lexical, qual)
	case nil:
		return rdf.Term{}, fmt.Errorf("missing term")
	default:
		return rdf.Term{}, fmt.Errorf("unsupported term kind: %s", t)
	}
}

func (dec *Decoder) idFor(s string) int64 {
	id, ok := dec.ids[s]
	if ok {
		return id
	}
	id = int64(len(dec.ids)) + 1
	dec.ids[s] = id
	return id
}

// Compact returns the prefixed name of iri and whether a namespace of
// the decoder allowed it to be compacted.
func (dec *Decoder) Compact(iri string) (string, bool) {
	return compactIRI(dec.namespaces, iri)
}

// CompactTerm returns t with IRIs and literal datatypes replaced by their
// prefixed names where possible. The UID of t is retained.
func (dec *Decoder) CompactTerm(t rdf.Term) (rdf.Term, error) {
	text, qual, kind, err := t.Parts()
	if err != nil {
		return t, err
	}
	uid := t.UID
	switch kind {
	case rdf.IRI:
		name, changed := dec.Compact(text)
		if changed {
			t, err := rdf.NewIRITerm(name)
			if err != nil {
				return t, err
			}
			t.UID = uid
			return t, nil
		}
	case rdf.Literal:
		if qual == "" || strings.HasPrefix(qual, "@") {
			return t, nil
		}
		name, changed := dec.Compact(qual)
		if changed {
			t, err := rdf.NewLiteralTerm(text, name)
			if err != nil {
				return t, err
			}
			t.UID = uid
			return t, nil
		}
	}
	return t, nil
}

func compactIRI(namespaces []Namespace, iri string) (name string, changed bool) {
	// namespaces is ordered longest to shortest
	// to ensure prefixes are not eagerly chosen.
	for _, ns := range namespaces {
		if strings.HasPrefix(iri, ns.IRI) {
			suffix := strings.TrimPrefix(iri, ns.IRI)
			if len(suffix) == 0 {
				return iri, false
			}
			return ns.Prefix + ":" + suffix, true
		}
	}
	return iri, false
}

// intern is a string internment implementation.
type intern map[string]string

// intern returns an interned version of the parameter.
func (is intern) intern(s string) string {
	if s == "" {
		return ""
	}
	t, ok := is[s]
	if ok {
		return t
	}
	is[s] = s
	return s
}

type byLength []Namespace

func (a byLength) Len() int { return len(a) }
func (a byLength) Less(i, j int) bool {
	if len(a[i].IRI) != len(a[j].IRI) {
		return len(a[i].IRI) > len(a[j].IRI)
	}
	return a[i].Prefix < a[j].Prefix
}
func (a byLength) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
