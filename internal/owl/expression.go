// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package owl

// ObjectInverseOf is the inverse of an object property.
type ObjectInverseOf struct {
	Property ObjectPropertyExpression
}

func (ObjectInverseOf) objectPropertyExpression() {}

// Class expressions.

type ObjectIntersectionOf struct {
	Classes Sequence[ClassExpression]
}

type ObjectUnionOf struct {
	Classes Sequence[ClassExpression]
}

type ObjectComplementOf struct {
	Class ClassExpression
}

type ObjectOneOf struct {
	Individuals Sequence[Individual]
}

type ObjectSomeValuesFrom struct {
	Property ObjectPropertyExpression
	Class    ClassExpression
}

type ObjectAllValuesFrom struct {
	Property ObjectPropertyExpression
	Class    ClassExpression
}

type ObjectHasValue struct {
	Property   ObjectPropertyExpression
	Individual Individual
}

type ObjectHasSelf struct {
	Property ObjectPropertyExpression
}

// ObjectMinCardinality is a minimum cardinality restriction. The
// restriction is unqualified when Class is nil.
type ObjectMinCardinality struct {
	Property    ObjectPropertyExpression
	Cardinality LiteralExpression
	Class       ClassExpression
}

// ObjectMaxCardinality is a maximum cardinality restriction. The
// restriction is unqualified when Class is nil.
type ObjectMaxCardinality struct {
	Property    ObjectPropertyExpression
	Cardinality LiteralExpression
	Class       ClassExpression
}

// ObjectExactCardinality is an exact cardinality restriction. The
// restriction is unqualified when Class is nil.
type ObjectExactCardinality struct {
	Property    ObjectPropertyExpression
	Cardinality LiteralExpression
	Class       ClassExpression
}

// DataSomeValuesFrom restricts data properties to have at least one
// value in Range. Properties holds more than one property only for
// n-ary data ranges.
type DataSomeValuesFrom struct {
	Properties Sequence[DataPropertyExpression]
	Range      Datarange
}

// DataAllValuesFrom restricts all the values of data properties to
// Range.
type DataAllValuesFrom struct {
	Properties Sequence[DataPropertyExpression]
	Range      Datarange
}

type DataHasValue struct {
	Property DataPropertyExpression
	Value    LiteralExpression
}

// DataMinCardinality is a minimum cardinality restriction. The
// restriction is unqualified when Range is nil.
type DataMinCardinality struct {
	Property    DataPropertyExpression
	Cardinality LiteralExpression
	Range       Datarange
}

// DataMaxCardinality is a maximum cardinality restriction. The
// restriction is unqualified when Range is nil.
type DataMaxCardinality struct {
	Property    DataPropertyExpression
	Cardinality LiteralExpression
	Range       Datarange
}

// DataExactCardinality is an exact cardinality restriction. The
// restriction is unqualified when Range is nil.
type DataExactCardinality struct {
	Property    DataPropertyExpression
	Cardinality LiteralExpression
	Range       Datarange
}

func (ObjectIntersectionOf) classExpression()   {}
func (ObjectUnionOf) classExpression()          {}
func (ObjectComplementOf) classExpression()     {}
func (ObjectOneOf) classExpression()            {}
func (ObjectSomeValuesFrom) classExpression()   {}
func (ObjectAllValuesFrom) classExpression()    {}
func (ObjectHasValue) classExpression()         {}
func (ObjectHasSelf) classExpression()          {}
func (ObjectMinCardinality) classExpression()   {}
func (ObjectMaxCardinality) classExpression()   {}
func (ObjectExactCardinality) classExpression() {}
func (DataSomeValuesFrom) classExpression()     {}
func (DataAllValuesFrom) classExpression()      {}
func (DataHasValue) classExpression()           {}
func (DataMinCardinality) classExpression()     {}
func (DataMaxCardinality) classExpression()     {}
func (DataExactCardinality) classExpression()   {}

// Data ranges.

type DataIntersectionOf struct {
	Ranges Sequence[Datarange]
}

type DataUnionOf struct {
	Ranges Sequence[Datarange]
}

type DataComplementOf struct {
	Range Datarange
}

// DataOneOf is the data range holding exactly the values of Literals.
type DataOneOf struct {
	Literals Sequence[LiteralExpression]
}

// DatatypeRestriction restricts the value space of Datatype by
// constraining facets.
type DatatypeRestriction struct {
	Datatype Datarange
	Facets   []FacetRestriction
}

// FacetRestriction is a pair of a constraining facet and its value,
// for example xsd:minInclusive and "0"^^xsd:integer.
type FacetRestriction struct {
	Facet IRI
	Value LiteralExpression
}

func (DataIntersectionOf) datarange()  {}
func (DataUnionOf) datarange()         {}
func (DataComplementOf) datarange()    {}
func (DataOneOf) datarange()           {}
func (DatatypeRestriction) datarange() {}
