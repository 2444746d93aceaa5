// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query evaluates OWL2 axiom patterns against a quad store.
//
// An OWL query is translated to quad patterns with a single translation
// context, so that an OWL variable used in the positive and negative
// parts of a query stands for the same RDF variable. Solutions are
// translated back to the OWL variables of the query.
package query // import "github.com/kortschak/owlrdf/internal/query"

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/translate"
	"github.com/kortschak/owlrdf/internal/vocab"
)

// Query is a conjunction of axiom patterns with negated conjunctions.
// A solution binds the variables of Positives such that no group of
// Negatives holds under the same bindings.
type Query struct {
	Positives []owl.Axiom
	Negatives [][]owl.Axiom

	// Graph is the graph the patterns are matched in.
	// The zero value matches every graph.
	Graph rdf.Term
}

// Bindings maps the variables of a query to their values in a solution.
// Values are owl.IRI, owl.Literal or owl.AnonymousIndividual.
type Bindings map[owl.Variable]any

// Engine evaluates OWL queries.
type Engine struct {
	rdf *RDFEngine
}

// New returns an Engine evaluating queries against ds.
func New(ds *store.Dataset) *Engine {
	return &Engine{rdf: NewRDFEngine(ds)}
}

// NewWith returns an Engine evaluating queries with e.
func NewWith(e *RDFEngine) *Engine {
	return &Engine{rdf: e}
}

// Execute returns the solutions of q. It returns an error if an axiom
// of q cannot be translated.
func (e *Engine) Execute(q Query) ([]Bindings, error) {
	tr := translate.New(nil, &store.Nodes{})
	pos, err := tr.Translate(q.Positives, q.Graph)
	if err != nil {
		return nil, fmt.Errorf("query: positives: %w", err)
	}
	rq := RDFQuery{Positives: translate.Patterns(pos)}
	for i, g := range q.Negatives {
		neg, err := tr.Translate(g, q.Graph)
		if err != nil {
			return nil, fmt.Errorf("query: negatives %d: %w", i, err)
		}
		rq.Negatives = append(rq.Negatives, translate.Patterns(neg))
	}
	tokens := e.rdf.Execute(rq)
	sols := make([]Bindings, 0, len(tokens))
	for _, t := range tokens {
		sols = append(sols, Solution(tr.Context(), t))
	}
	return sols, nil
}

// Solution returns the bindings of the OWL variables of ctx in t.
// Variables without a binding in t are omitted.
func Solution(ctx *translate.Context, t rete.Token) Bindings {
	b := make(Bindings)
	for _, m := range ctx.Variables() {
		v, ok := t.Get(m.Name)
		if !ok {
			continue
		}
		val, ok := Value(v)
		if !ok {
			continue
		}
		b[m.Variable] = val
	}
	return b
}

// Value returns the OWL value of the RDF term t: an owl.IRI, an
// owl.Literal or an owl.AnonymousIndividual.
func Value(t rdf.Term) (any, bool) {
	text, qual, kind, err := t.Parts()
	if err != nil {
		return nil, false
	}
	switch kind {
	case rdf.IRI:
		return owl.IRI(text), true
	case rdf.Blank:
		return owl.AnonymousIndividual{NodeID: text}, true
	case rdf.Literal:
		switch {
		case qual == "":
			return owl.Literal{Lexical: text, Datatype: vocab.XSDString}, true
		case strings.HasPrefix(qual, "@"):
			return owl.Literal{Lexical: text, Lang: qual[1:]}, true
		default:
			return owl.Literal{Lexical: text, Datatype: owl.IRI(qual)}, true
		}
	default:
		return nil, false
	}
}
