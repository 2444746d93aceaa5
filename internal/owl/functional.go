// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package owl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kortschak/owlrdf/internal/vocab"
)

// Printer renders axioms and expressions in the OWL2 functional-style
// syntax.
type Printer struct {
	// Compact returns the prefixed name of an IRI and whether
	// it could be compacted. IRIs are written in full when
	// Compact is nil.
	Compact func(iri string) (string, bool)
}

// Sprint returns the functional-style rendering of v using full IRIs.
func Sprint(v any) string {
	return Printer{}.Sprint(v)
}

// Sprint returns the functional-style rendering of v. Values that are
// not part of the OWL2 model are rendered with the %v verb.
func (p Printer) Sprint(v any) string {
	var buf strings.Builder
	p.write(&buf, v)
	return buf.String()
}

// items flattens a sequence into ordered arguments.
func items[T any](s Sequence[T]) []any {
	values := s.Values()
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func (p Printer) call(buf *strings.Builder, name string, annotations []Annotation, args ...any) {
	buf.WriteString(name)
	buf.WriteByte('(')
	first := true
	sep := func() {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
	}
	for _, a := range annotations {
		sep()
		p.write(buf, a)
	}
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			for _, v := range list {
				sep()
				p.write(buf, v)
			}
			continue
		}
		if arg == nil {
			continue
		}
		sep()
		p.write(buf, arg)
	}
	buf.WriteByte(')')
}

func (p Printer) iri(buf *strings.Builder, iri string) {
	if p.Compact != nil {
		if name, ok := p.Compact(iri); ok {
			buf.WriteString(name)
			return
		}
	}
	buf.WriteByte('<')
	buf.WriteString(iri)
	buf.WriteByte('>')
}

func (p Printer) write(buf *strings.Builder, v any) {
	switch v := v.(type) {
	case IRI:
		p.iri(buf, string(v))
	case Variable:
		buf.WriteByte('?')
		buf.WriteString(string(v))
	case Runtime:
		if v.Entity != nil {
			if name, ok := v.Entity.Name(); ok {
				p.iri(buf, string(name))
				return
			}
		}
		buf.WriteString("_:runtime")
	case AnonymousIndividual:
		buf.WriteString("_:")
		buf.WriteString(v.NodeID)
	case Literal:
		buf.WriteString(strconv.Quote(v.Lexical))
		switch {
		case v.Lang != "":
			buf.WriteByte('@')
			buf.WriteString(v.Lang)
		case v.Datatype != "" && v.Datatype != vocab.XSDString:
			buf.WriteString("^^")
			p.iri(buf, string(v.Datatype))
		}
	case Annotation:
		p.call(buf, "Annotation", v.Annotations, v.Property, v.Value)
	case FacetRestriction:
		p.write(buf, v.Facet)
		buf.WriteByte(' ')
		p.write(buf, v.Value)
	case Ontology:
		p.call(buf, "Ontology", v.Annotations, v.IRI)
		for _, a := range v.Axioms {
			buf.WriteString("\n\t")
			p.write(buf, a)
		}

	case ObjectInverseOf:
		p.call(buf, "ObjectInverseOf", nil, v.Property)

	case ObjectIntersectionOf:
		p.call(buf, "ObjectIntersectionOf", nil, items(v.Classes))
	case ObjectUnionOf:
		p.call(buf, "ObjectUnionOf", nil, items(v.Classes))
	case ObjectComplementOf:
		p.call(buf, "ObjectComplementOf", nil, v.Class)
	case ObjectOneOf:
		p.call(buf, "ObjectOneOf", nil, items(v.Individuals))
	case ObjectSomeValuesFrom:
		p.call(buf, "ObjectSomeValuesFrom", nil, v.Property, v.Class)
	case ObjectAllValuesFrom:
		p.call(buf, "ObjectAllValuesFrom", nil, v.Property, v.Class)
	case ObjectHasValue:
		p.call(buf, "ObjectHasValue", nil, v.Property, v.Individual)
	case ObjectHasSelf:
		p.call(buf, "ObjectHasSelf", nil, v.Property)
	case ObjectMinCardinality:
		p.call(buf, "ObjectMinCardinality", nil, v.Cardinality, v.Property, v.Class)
	case ObjectMaxCardinality:
		p.call(buf, "ObjectMaxCardinality", nil, v.Cardinality, v.Property, v.Class)
	case ObjectExactCardinality:
		p.call(buf, "ObjectExactCardinality", nil, v.Cardinality, v.Property, v.Class)
	case DataSomeValuesFrom:
		p.call(buf, "DataSomeValuesFrom", nil, items(v.Properties), v.Range)
	case DataAllValuesFrom:
		p.call(buf, "DataAllValuesFrom", nil, items(v.Properties), v.Range)
	case DataHasValue:
		p.call(buf, "DataHasValue", nil, v.Property, v.Value)
	case DataMinCardinality:
		p.call(buf, "DataMinCardinality", nil, v.Cardinality, v.Property, v.Range)
	case DataMaxCardinality:
		p.call(buf, "DataMaxCardinality", nil, v.Cardinality, v.Property, v.Range)
	case DataExactCardinality:
		p.call(buf, "DataExactCardinality", nil, v.Cardinality, v.Property, v.Range)

	case DataIntersectionOf:
		p.call(buf, "DataIntersectionOf", nil, items(v.Ranges))
	case DataUnionOf:
		p.call(buf, "DataUnionOf", nil, items(v.Ranges))
	case DataComplementOf:
		p.call(buf, "DataComplementOf", nil, v.Range)
	case DataOneOf:
		p.call(buf, "DataOneOf", nil, items(v.Literals))
	case DatatypeRestriction:
		facets := make([]any, len(v.Facets))
		for i, f := range v.Facets {
			facets[i] = f
		}
		p.call(buf, "DatatypeRestriction", nil, v.Datatype, facets)

	case Declaration:
		buf.WriteString("Declaration(")
		for _, a := range v.Annotations {
			p.write(buf, a)
			buf.WriteByte(' ')
		}
		p.call(buf, v.Kind.String(), nil, v.Entity)
		buf.WriteByte(')')
	case DatatypeDefinition:
		p.call(buf, "DatatypeDefinition", v.Annotations, v.Datatype, v.Range)
	case SubClassOf:
		p.call(buf, "SubClassOf", v.Annotations, v.Class, v.Super)
	case EquivalentClasses:
		p.call(buf, "EquivalentClasses", v.Annotations, items(v.Classes))
	case DisjointClasses:
		p.call(buf, "DisjointClasses", v.Annotations, items(v.Classes))
	case DisjointUnion:
		p.call(buf, "DisjointUnion", v.Annotations, v.Class, items(v.Classes))
	case SubObjectPropertyOf:
		if len(v.Chain) != 0 {
			var chain strings.Builder
			p.call(&chain, "ObjectPropertyChain", nil, items(v.Chain))
			p.call(buf, "SubObjectPropertyOf", v.Annotations, rendered(chain.String()), v.Super)
			return
		}
		p.call(buf, "SubObjectPropertyOf", v.Annotations, v.Property, v.Super)
	case EquivalentObjectProperties:
		p.call(buf, "EquivalentObjectProperties", v.Annotations, items(v.Properties))
	case DisjointObjectProperties:
		p.call(buf, "DisjointObjectProperties", v.Annotations, items(v.Properties))
	case InverseObjectProperties:
		p.call(buf, "InverseObjectProperties", v.Annotations, v.Property, v.Inverse)
	case ObjectPropertyDomain:
		p.call(buf, "ObjectPropertyDomain", v.Annotations, v.Property, v.Class)
	case ObjectPropertyRange:
		p.call(buf, "ObjectPropertyRange", v.Annotations, v.Property, v.Class)
	case FunctionalObjectProperty:
		p.call(buf, "FunctionalObjectProperty", v.Annotations, v.Property)
	case InverseFunctionalObjectProperty:
		p.call(buf, "InverseFunctionalObjectProperty", v.Annotations, v.Property)
	case ReflexiveObjectProperty:
		p.call(buf, "ReflexiveObjectProperty", v.Annotations, v.Property)
	case IrreflexiveObjectProperty:
		p.call(buf, "IrreflexiveObjectProperty", v.Annotations, v.Property)
	case SymmetricObjectProperty:
		p.call(buf, "SymmetricObjectProperty", v.Annotations, v.Property)
	case AsymmetricObjectProperty:
		p.call(buf, "AsymmetricObjectProperty", v.Annotations, v.Property)
	case TransitiveObjectProperty:
		p.call(buf, "TransitiveObjectProperty", v.Annotations, v.Property)
	case SubDataPropertyOf:
		p.call(buf, "SubDataPropertyOf", v.Annotations, v.Property, v.Super)
	case EquivalentDataProperties:
		p.call(buf, "EquivalentDataProperties", v.Annotations, items(v.Properties))
	case DisjointDataProperties:
		p.call(buf, "DisjointDataProperties", v.Annotations, items(v.Properties))
	case DataPropertyDomain:
		p.call(buf, "DataPropertyDomain", v.Annotations, v.Property, v.Class)
	case DataPropertyRange:
		p.call(buf, "DataPropertyRange", v.Annotations, v.Property, v.Range)
	case FunctionalDataProperty:
		p.call(buf, "FunctionalDataProperty", v.Annotations, v.Property)
	case SameIndividual:
		p.call(buf, "SameIndividual", v.Annotations, items(v.Individuals))
	case DifferentIndividuals:
		p.call(buf, "DifferentIndividuals", v.Annotations, items(v.Individuals))
	case ClassAssertion:
		p.call(buf, "ClassAssertion", v.Annotations, v.Class, v.Individual)
	case ObjectPropertyAssertion:
		p.call(buf, "ObjectPropertyAssertion", v.Annotations, v.Property, v.Individual, v.Value)
	case NegativeObjectPropertyAssertion:
		p.call(buf, "NegativeObjectPropertyAssertion", v.Annotations, v.Property, v.Individual, v.Value)
	case DataPropertyAssertion:
		p.call(buf, "DataPropertyAssertion", v.Annotations, v.Property, v.Individual, v.Value)
	case NegativeDataPropertyAssertion:
		p.call(buf, "NegativeDataPropertyAssertion", v.Annotations, v.Property, v.Individual, v.Value)
	case HasKey:
		var obj, data strings.Builder
		p.call(&obj, "", nil, items(v.ObjectProperties))
		p.call(&data, "", nil, items(v.DataProperties))
		p.call(buf, "HasKey", v.Annotations, v.Class, rendered(obj.String()), rendered(data.String()))
	case SubAnnotationPropertyOf:
		p.call(buf, "SubAnnotationPropertyOf", v.Annotations, v.Property, v.Super)
	case AnnotationPropertyDomain:
		p.call(buf, "AnnotationPropertyDomain", v.Annotations, v.Property, v.Domain)
	case AnnotationPropertyRange:
		p.call(buf, "AnnotationPropertyRange", v.Annotations, v.Property, v.Range)
	case AnnotationAssertion:
		p.call(buf, "AnnotationAssertion", v.Annotations, v.Property, v.Subject, v.Value)

	case rendered:
		buf.WriteString(string(v))
	default:
		fmt.Fprintf(buf, "%v", v)
	}
}

// rendered is text that has already been written in functional-style
// syntax.
type rendered string
