// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate implements the mapping of OWL2 axioms to RDF quads.
//
// The mapping follows https://www.w3.org/TR/owl2-mapping-to-rdf/. Compound
// expressions are written as fresh blank nodes, ordered operands as RDF
// lists. Query variables are mapped to RDF variables through a Context.
package translate // import "github.com/kortschak/owlrdf/internal/translate"

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

// ErrUnnamedEntity is the cause of a translation failure when an
// entity without a name is used where the RDF mapping requires one.
var ErrUnnamedEntity = errors.New("cannot translate anonymous entity")

// Error is a failure to translate an axiom.
type Error struct {
	// Index is the position of the failing axiom in the input.
	Index int
	Axiom owl.Axiom
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translate: axiom %d (%T): %v", e.Index, e.Axiom, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NodeSource mints blank nodes.
type NodeSource interface {
	Blank() rdf.Term
}

// Translator translates OWL2 axioms to RDF quads. A Translator holds no
// state between calls apart from its Context.
type Translator struct {
	ctx   *Context
	nodes NodeSource
}

// New returns a Translator minting blank nodes from nodes and resolving
// variables in ctx. If ctx is nil a new Context is used.
func New(ctx *Context, nodes NodeSource) *Translator {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Translator{ctx: ctx, nodes: nodes}
}

// Context returns the translation context of t.
func (t *Translator) Context() *Context {
	return t.ctx
}

// Translate returns the quads in graph representing the axioms. Quads
// are returned in axiom order.
//
// Translation of each axiom is atomic. If an axiom cannot be translated,
// Translate returns the quads of the axioms preceding it and an *Error.
func (t *Translator) Translate(axioms []owl.Axiom, graph rdf.Term) ([]*rdf.Statement, error) {
	var quads []*rdf.Statement
	for i, a := range axioms {
		b := builder{t: t, graph: graph}
		err := b.axiom(a)
		if err != nil {
			return quads, &Error{Index: i, Axiom: a, Err: err}
		}
		quads = append(quads, b.quads...)
	}
	return quads, nil
}

// TranslateOntology returns the quads representing the axioms and the
// annotations of o in the graph named by the ontology IRI. Ontology
// annotations are written with the ontology IRI as their subject.
func (t *Translator) TranslateOntology(o owl.Ontology) ([]*rdf.Statement, error) {
	graph, err := rdf.NewIRITerm(string(o.IRI))
	if err != nil {
		return nil, fmt.Errorf("translate: invalid ontology IRI: %w", err)
	}
	quads, err := t.Translate(o.Axioms, graph)
	if err != nil {
		return quads, err
	}
	for _, a := range o.Annotations {
		b := builder{t: t, graph: graph}
		err = b.annotation(graph, a)
		if err != nil {
			return quads, fmt.Errorf("translate: ontology annotation: %w", err)
		}
		quads = append(quads, b.quads...)
	}
	return quads, nil
}

// builder accumulates the quads of one axiom.
type builder struct {
	t     *Translator
	graph rdf.Term
	quads []*rdf.Statement
}

func (b *builder) add(s, p, o rdf.Term) *rdf.Statement {
	q := store.Quad(s, p, o, b.graph)
	b.quads = append(b.quads, q)
	return q
}

func (b *builder) blank() rdf.Term {
	return b.t.nodes.Blank()
}

var (
	rdfType  = store.IRI(vocab.RDFType)
	rdfFirst = store.IRI(vocab.RDFFirst)
	rdfRest  = store.IRI(vocab.RDFRest)
	rdfNil   = store.IRI(vocab.RDFNil)
)

// orderedSequence writes the RDF list holding elements and returns its
// head. The empty list is rdf:nil.
func (b *builder) orderedSequence(elements []rdf.Term) rdf.Term {
	if len(elements) == 0 {
		return rdfNil
	}
	proxies := make([]rdf.Term, len(elements))
	for i, e := range elements {
		proxies[i] = b.blank()
		b.add(proxies[i], rdfFirst, e)
	}
	for i := 0; i < len(proxies)-1; i++ {
		b.add(proxies[i], rdfRest, proxies[i+1])
	}
	b.add(proxies[len(proxies)-1], rdfRest, rdfNil)
	return proxies[0]
}

// unorderedSequence writes the RDF list holding elements. The OWL2
// mapping has no distinct encoding for sets, so the list order is only
// incidental.
func (b *builder) unorderedSequence(elements []rdf.Term) rdf.Term {
	return b.orderedSequence(elements)
}

func iri(text string) (rdf.Term, error) {
	t, err := rdf.NewIRITerm(text)
	if err != nil {
		return rdf.Term{}, fmt.Errorf("invalid IRI %q: %w", text, err)
	}
	return t, nil
}

// named returns the term for an entity that must have a name.
func (b *builder) named(e owl.Interpretation) (rdf.Term, error) {
	if e == nil {
		return rdf.Term{}, ErrUnnamedEntity
	}
	name, ok := e.Name()
	if !ok {
		return rdf.Term{}, ErrUnnamedEntity
	}
	return iri(string(name))
}

// predicate checks that t may be used as a predicate.
func predicate(t rdf.Term) (rdf.Term, error) {
	if store.IsBlank(t) {
		return rdf.Term{}, fmt.Errorf("%w: property expression in predicate position", ErrUnnamedEntity)
	}
	return t, nil
}

func (b *builder) literal(e owl.LiteralExpression) (rdf.Term, error) {
	switch e := e.(type) {
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Literal:
		return literalTerm(e)
	case nil:
		return rdf.Term{}, errors.New("missing literal")
	default:
		panic(fmt.Sprintf("translate: unknown literal expression %T", e))
	}
}

func literalTerm(l owl.Literal) (rdf.Term, error) {
	var qual string
	switch {
	case l.Lang != "":
		qual = "@" + l.Lang
	case l.Datatype != "" && l.Datatype != vocab.XSDString:
		qual = string(l.Datatype)
	}
	t, err := rdf.NewLiteralTerm(l.Lexical, qual)
	if err != nil {
		return rdf.Term{}, fmt.Errorf("invalid literal %q: %w", l.Lexical, err)
	}
	return t, nil
}

func anonymous(a owl.AnonymousIndividual) (rdf.Term, error) {
	t, err := rdf.NewBlankTerm(a.NodeID)
	if err != nil {
		return rdf.Term{}, fmt.Errorf("invalid anonymous individual %q: %w", a.NodeID, err)
	}
	return t, nil
}
