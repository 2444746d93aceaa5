// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package owl

// Axiom is an OWL2 axiom.
type Axiom interface {
	// Annots returns the annotations of the axiom.
	Annots() []Annotation

	axiom()
}

// Annotated holds the annotations of an axiom. It is embedded in
// every axiom type.
type Annotated struct {
	Annotations []Annotation
}

// Annots returns the annotations held by a.
func (a Annotated) Annots() []Annotation { return a.Annotations }

func (Annotated) axiom() {}

// Annotation is an annotation of an axiom, an ontology or of
// another annotation.
type Annotation struct {
	Property    IRI
	Value       AnnotationValue
	Annotations []Annotation
}

// Ontology is a named collection of axioms.
type Ontology struct {
	IRI         IRI
	Axioms      []Axiom
	Annotations []Annotation
}

// EntityKind is the kind of entity introduced by a Declaration.
type EntityKind int

const (
	ClassEntity EntityKind = iota + 1
	DatatypeEntity
	ObjectPropertyEntity
	DataPropertyEntity
	AnnotationPropertyEntity
	NamedIndividualEntity
)

func (k EntityKind) String() string {
	switch k {
	case ClassEntity:
		return "Class"
	case DatatypeEntity:
		return "Datatype"
	case ObjectPropertyEntity:
		return "ObjectProperty"
	case DataPropertyEntity:
		return "DataProperty"
	case AnnotationPropertyEntity:
		return "AnnotationProperty"
	case NamedIndividualEntity:
		return "NamedIndividual"
	default:
		return "Unknown"
	}
}

// Declaration declares Entity to be of the given kind.
type Declaration struct {
	Annotated
	Kind   EntityKind
	Entity IRI
}

// DatatypeDefinition defines Datatype to be equivalent to Range.
type DatatypeDefinition struct {
	Annotated
	Datatype Datarange
	Range    Datarange
}

// Class axioms.

type SubClassOf struct {
	Annotated
	Class ClassExpression
	Super ClassExpression
}

type EquivalentClasses struct {
	Annotated
	Classes Sequence[ClassExpression]
}

type DisjointClasses struct {
	Annotated
	Classes Sequence[ClassExpression]
}

type DisjointUnion struct {
	Annotated
	Class   ClassExpression
	Classes Sequence[ClassExpression]
}

// Object property axioms.

// SubObjectPropertyOf states that Property, or the chain of properties
// in Chain when it is not empty, is a sub-property of Super.
type SubObjectPropertyOf struct {
	Annotated
	Property ObjectPropertyExpression
	Chain    Sequence[ObjectPropertyExpression]
	Super    ObjectPropertyExpression
}

type EquivalentObjectProperties struct {
	Annotated
	Properties Sequence[ObjectPropertyExpression]
}

type DisjointObjectProperties struct {
	Annotated
	Properties Sequence[ObjectPropertyExpression]
}

type InverseObjectProperties struct {
	Annotated
	Property ObjectPropertyExpression
	Inverse  ObjectPropertyExpression
}

type ObjectPropertyDomain struct {
	Annotated
	Property ObjectPropertyExpression
	Class    ClassExpression
}

type ObjectPropertyRange struct {
	Annotated
	Property ObjectPropertyExpression
	Class    ClassExpression
}

type FunctionalObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type InverseFunctionalObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type ReflexiveObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type IrreflexiveObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type SymmetricObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type AsymmetricObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

type TransitiveObjectProperty struct {
	Annotated
	Property ObjectPropertyExpression
}

// Data property axioms.

type SubDataPropertyOf struct {
	Annotated
	Property DataPropertyExpression
	Super    DataPropertyExpression
}

type EquivalentDataProperties struct {
	Annotated
	Properties Sequence[DataPropertyExpression]
}

type DisjointDataProperties struct {
	Annotated
	Properties Sequence[DataPropertyExpression]
}

type DataPropertyDomain struct {
	Annotated
	Property DataPropertyExpression
	Class    ClassExpression
}

type DataPropertyRange struct {
	Annotated
	Property DataPropertyExpression
	Range    Datarange
}

type FunctionalDataProperty struct {
	Annotated
	Property DataPropertyExpression
}

// Assertions.

type SameIndividual struct {
	Annotated
	Individuals Sequence[Individual]
}

type DifferentIndividuals struct {
	Annotated
	Individuals Sequence[Individual]
}

type ClassAssertion struct {
	Annotated
	Class      ClassExpression
	Individual Individual
}

type ObjectPropertyAssertion struct {
	Annotated
	Property   ObjectPropertyExpression
	Individual Individual
	Value      Individual
}

type NegativeObjectPropertyAssertion struct {
	Annotated
	Property   ObjectPropertyExpression
	Individual Individual
	Value      Individual
}

type DataPropertyAssertion struct {
	Annotated
	Property   DataPropertyExpression
	Individual Individual
	Value      LiteralExpression
}

type NegativeDataPropertyAssertion struct {
	Annotated
	Property   DataPropertyExpression
	Individual Individual
	Value      LiteralExpression
}

// HasKey states that the individuals of Class are uniquely identified
// by the values of the key properties.
type HasKey struct {
	Annotated
	Class            ClassExpression
	ObjectProperties Sequence[ObjectPropertyExpression]
	DataProperties   Sequence[DataPropertyExpression]
}

// Annotation axioms.

type SubAnnotationPropertyOf struct {
	Annotated
	Property IRI
	Super    IRI
}

type AnnotationPropertyDomain struct {
	Annotated
	Property IRI
	Domain   IRI
}

type AnnotationPropertyRange struct {
	Annotated
	Property IRI
	Range    IRI
}

type AnnotationAssertion struct {
	Annotated
	Property IRI
	Subject  AnnotationSubject
	Value    AnnotationValue
}
