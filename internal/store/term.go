// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store implements an in-memory quad store over RDF statements.
//
// Quads are represented as *rdf.Statement values with the graph held in
// the statement's Label. In addition to the IRI, blank node and literal
// terms defined by RDF, the store recognises pattern terms: a variable
// is a term with a value starting with '?', and a term with an empty
// value matches any term.
package store // import "github.com/kortschak/owlrdf/internal/store"

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// Nodes mints fresh blank node terms. The zero value is ready to use.
type Nodes struct {
	mu   sync.Mutex
	next int64
}

// Blank returns a blank node term that has not been returned before
// by n.
func (n *Nodes) Blank() rdf.Term {
	n.mu.Lock()
	n.next++
	id := n.next
	n.mu.Unlock()
	return mustTerm(rdf.NewBlankTerm(fmt.Sprintf("n%d", id)))
}

// IRI returns an IRI term for iri. It panics if iri is not a valid IRI
// and is intended for IRIs that are known to be valid.
func IRI(iri string) rdf.Term {
	return mustTerm(rdf.NewIRITerm(iri))
}

// Variable returns a pattern variable term with the given name.
func Variable(name string) rdf.Term {
	return rdf.Term{Value: "?" + name}
}

// VariableName returns the name of the variable term t and whether t
// is a variable.
func VariableName(t rdf.Term) (string, bool) {
	if !IsVariable(t) {
		return "", false
	}
	return t.Value[1:], true
}

// IsVariable returns whether t is a pattern variable.
func IsVariable(t rdf.Term) bool { return strings.HasPrefix(t.Value, "?") }

// IsWildcard returns whether t is the empty term, matching any term.
func IsWildcard(t rdf.Term) bool { return t.Value == "" }

// IsIRI returns whether t is an IRI term.
func IsIRI(t rdf.Term) bool { return strings.HasPrefix(t.Value, "<") }

// IsBlank returns whether t is a blank node term.
func IsBlank(t rdf.Term) bool { return strings.HasPrefix(t.Value, "_:") }

// IsLiteral returns whether t is a literal term.
func IsLiteral(t rdf.Term) bool { return strings.HasPrefix(t.Value, `"`) }

// IRIText returns the IRI text of t and whether t is an IRI term.
func IRIText(t rdf.Term) (string, bool) {
	if !IsIRI(t) {
		return "", false
	}
	text, _, kind, err := t.Parts()
	if err != nil || kind != rdf.IRI {
		return "", false
	}
	return text, true
}

// Quad returns a statement in graph g.
func Quad(s, p, o, g rdf.Term) *rdf.Statement {
	return &rdf.Statement{Subject: s, Predicate: p, Object: o, Label: g}
}

// Key is the identity of a quad, independent of term UIDs.
type Key [4]string

// KeyOf returns the key of the quad s.
func KeyOf(s *rdf.Statement) Key {
	return Key{s.Subject.Value, s.Predicate.Value, s.Object.Value, s.Label.Value}
}

func mustTerm(t rdf.Term, err error) rdf.Term {
	if err != nil {
		panic(err)
	}
	return t
}
