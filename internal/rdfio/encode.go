// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rdfio

import (
	"context"
	"fmt"
	"io"
	"strings"

	grdf "github.com/geoknoesis/rdf-go/rdf"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/vocab"
)

// Encoder writes quads in a concrete syntax.
type Encoder struct {
	w      io.Writer
	format string

	// Prefixes holds the prefix bindings written by
	// the Turtle and TriG syntaxes.
	Prefixes map[string]string
}

// NewEncoder returns a new Encoder writing the named concrete syntax
// to w.
func NewEncoder(w io.Writer, format string) *Encoder {
	return &Encoder{w: w, format: format}
}

// Encode writes quads to the Encoder's writer. Triple syntaxes can only
// hold quads with an empty label.
func (enc *Encoder) Encode(ctx context.Context, quads []*rdf.Statement) error {
	out := make([]grdf.Quad, len(quads))
	for i, s := range quads {
		q, err := quad(s)
		if err != nil {
			return fmt.Errorf("cannot encode %s: %w", s, err)
		}
		out[i] = q
	}
	var opts grdf.AnyFormatOptions
	if enc.Prefixes != nil {
		opts.Turtle = &grdf.TurtleEncodeOptions{Prefixes: enc.Prefixes}
		opts.TriG = &grdf.TriGEncodeOptions{Prefixes: enc.Prefixes}
	}
	return grdf.SerializeAny(ctx, enc.w, enc.format, out, opts)
}

func quad(s *rdf.Statement) (grdf.Quad, error) {
	var (
		q   grdf.Quad
		err error
	)
	q.S, err = term(s.Subject)
	if err != nil {
		return q, err
	}
	p, err := term(s.Predicate)
	if err != nil {
		return q, err
	}
	var ok bool
	q.P, ok = p.(grdf.IRI)
	if !ok {
		return q, fmt.Errorf("predicate is not an IRI: %s", s.Predicate.Value)
	}
	q.O, err = term(s.Object)
	if err != nil {
		return q, err
	}
	if s.Label.Value != "" {
		q.G, err = term(s.Label)
	}
	return q, err
}

// term returns the rdf-go term corresponding to t.
func term(t rdf.Term) (grdf.Term, error) {
	text, qual, kind, err := t.Parts()
	if err != nil {
		return nil, err
	}
	switch kind {
	case rdf.IRI:
		return grdf.IRI{Value: text}, nil
	case rdf.Blank:
		return grdf.BlankNode{ID: text}, nil
	case rdf.Literal:
		switch {
		case strings.HasPrefix(qual, "@"):
			return grdf.Literal{Lexical: text, Lang: qual[1:]}, nil
		case qual == "":
			return grdf.Literal{Lexical: text, Datatype: grdf.IRI{Value: vocab.XSDString}}, nil
		default:
			return grdf.Literal{Lexical: text, Datatype: grdf.IRI{Value: qual}}, nil
		}
	default:
		return nil, fmt.Errorf("invalid term: %s", t.Value)
	}
}
