// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package owl

import (
	"sort"
	"strconv"

	"github.com/kortschak/owlrdf/internal/vocab"
)

// ClassExpression is an OWL2 class expression.
type ClassExpression interface{ classExpression() }

// ObjectPropertyExpression is an OWL2 object property expression.
type ObjectPropertyExpression interface{ objectPropertyExpression() }

// DataPropertyExpression is an OWL2 data property expression.
type DataPropertyExpression interface{ dataPropertyExpression() }

// Datarange is an OWL2 data range.
type Datarange interface{ datarange() }

// Individual is an OWL2 individual expression.
type Individual interface{ individual() }

// LiteralExpression is a literal or a query variable standing
// in for one.
type LiteralExpression interface{ literalExpression() }

// AnnotationSubject is the subject of an annotation assertion.
type AnnotationSubject interface{ annotationSubject() }

// AnnotationValue is the value of an annotation.
type AnnotationValue interface{ annotationValue() }

// IRI is a named entity. Depending on its position it names a class,
// an object, data or annotation property, a datatype or an individual.
type IRI string

func (IRI) classExpression()          {}
func (IRI) objectPropertyExpression() {}
func (IRI) dataPropertyExpression()   {}
func (IRI) datarange()                {}
func (IRI) individual()               {}
func (IRI) annotationSubject()        {}
func (IRI) annotationValue()          {}

// Variable is a query variable. It may stand in any expression position.
type Variable string

func (Variable) classExpression()          {}
func (Variable) objectPropertyExpression() {}
func (Variable) dataPropertyExpression()   {}
func (Variable) datarange()                {}
func (Variable) individual()               {}
func (Variable) literalExpression()        {}

// Interpretation is an entity of the runtime interpretation of an
// ontology. Entities created during reasoning may have no name.
type Interpretation interface {
	// Name returns the IRI of the entity and whether it
	// has been given one.
	Name() (IRI, bool)
}

// Runtime is an expression referring to an entity of the runtime
// interpretation. It can be translated to RDF only if the entity
// is named.
type Runtime struct {
	Entity Interpretation
}

func (Runtime) classExpression()          {}
func (Runtime) objectPropertyExpression() {}
func (Runtime) dataPropertyExpression()   {}
func (Runtime) datarange()                {}
func (Runtime) individual()               {}

// AnonymousIndividual is an individual identified only by a node ID
// local to an ontology.
type AnonymousIndividual struct {
	NodeID string
}

func (AnonymousIndividual) individual()        {}
func (AnonymousIndividual) annotationSubject() {}
func (AnonymousIndividual) annotationValue()   {}

// Literal is an OWL2 literal. A literal with a non-empty Lang is
// a language tagged string and its Datatype is ignored.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

func (Literal) literalExpression() {}
func (Literal) annotationValue()   {}

// String returns a string literal.
func String(s string) Literal {
	return Literal{Lexical: s, Datatype: vocab.XSDString}
}

// NonNegativeInteger returns an xsd:nonNegativeInteger literal, the
// datatype of cardinality restrictions.
func NonNegativeInteger(n int) Literal {
	return Literal{Lexical: strconv.Itoa(n), Datatype: vocab.XSDNonNegativeInteger}
}

// Element is a member of a Sequence.
type Element[T any] struct {
	Index int
	Value T
}

// Sequence is an indexed collection of expressions. The order of a
// Sequence is given by the element indices, not by slice order.
type Sequence[T any] []Element[T]

// Seq returns a Sequence holding values in order with dense
// indices starting from zero.
func Seq[T any](values ...T) Sequence[T] {
	if len(values) == 0 {
		return nil
	}
	s := make(Sequence[T], len(values))
	for i, v := range values {
		s[i] = Element[T]{Index: i, Value: v}
	}
	return s
}

// Values returns the values held by s ordered by index. Elements
// with equal indices retain their relative order.
func (s Sequence[T]) Values() []T {
	if len(s) == 0 {
		return nil
	}
	elems := make([]Element[T], len(s))
	copy(elems, s)
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].Index < elems[j].Index })
	values := make([]T, len(elems))
	for i, e := range elems {
		values[i] = e.Value
	}
	return values
}
