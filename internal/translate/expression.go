// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

var xsdTrue = mustTerm(rdf.NewLiteralTerm("true", vocab.XSDBoolean))

func mustTerm(t rdf.Term, err error) rdf.Term {
	if err != nil {
		panic(err)
	}
	return t
}

func (b *builder) classExpr(e owl.ClassExpression) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing class expression")
	case owl.IRI:
		return iri(string(e))
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Runtime:
		return b.named(e.Entity)
	case owl.ObjectIntersectionOf:
		return b.classList(vocab.OWLClass, vocab.OWLIntersectionOf, e.Classes)
	case owl.ObjectUnionOf:
		return b.classList(vocab.OWLClass, vocab.OWLUnionOf, e.Classes)
	case owl.ObjectComplementOf:
		c, err := b.classExpr(e.Class)
		if err != nil {
			return rdf.Term{}, err
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.OWLClass))
		b.add(x, store.IRI(vocab.OWLComplementOf), c)
		return x, nil
	case owl.ObjectOneOf:
		members, err := b.individuals(e.Individuals)
		if err != nil {
			return rdf.Term{}, err
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.OWLClass))
		b.add(x, store.IRI(vocab.OWLOneOf), b.unorderedSequence(members))
		return x, nil
	case owl.ObjectSomeValuesFrom:
		return b.objectRestriction(e.Property, vocab.OWLSomeValuesFrom, func() (rdf.Term, error) {
			return b.classExpr(e.Class)
		})
	case owl.ObjectAllValuesFrom:
		return b.objectRestriction(e.Property, vocab.OWLAllValuesFrom, func() (rdf.Term, error) {
			return b.classExpr(e.Class)
		})
	case owl.ObjectHasValue:
		return b.objectRestriction(e.Property, vocab.OWLHasValue, func() (rdf.Term, error) {
			return b.individual(e.Individual)
		})
	case owl.ObjectHasSelf:
		return b.objectRestriction(e.Property, vocab.OWLHasSelf, func() (rdf.Term, error) {
			return xsdTrue, nil
		})
	case owl.ObjectMinCardinality:
		return b.objectCardinality(e.Property, e.Cardinality, e.Class, vocab.OWLMinCardinality, vocab.OWLMinQualifiedCardinality)
	case owl.ObjectMaxCardinality:
		return b.objectCardinality(e.Property, e.Cardinality, e.Class, vocab.OWLMaxCardinality, vocab.OWLMaxQualifiedCardinality)
	case owl.ObjectExactCardinality:
		return b.objectCardinality(e.Property, e.Cardinality, e.Class, vocab.OWLCardinality, vocab.OWLQualifiedCardinality)
	case owl.DataSomeValuesFrom:
		return b.dataQuantifier(e.Properties, e.Range, vocab.OWLSomeValuesFrom)
	case owl.DataAllValuesFrom:
		return b.dataQuantifier(e.Properties, e.Range, vocab.OWLAllValuesFrom)
	case owl.DataHasValue:
		p, err := b.dataProp(e.Property)
		if err != nil {
			return rdf.Term{}, err
		}
		v, err := b.literal(e.Value)
		if err != nil {
			return rdf.Term{}, err
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.OWLRestriction))
		b.add(x, store.IRI(vocab.OWLOnProperty), p)
		b.add(x, store.IRI(vocab.OWLHasValue), v)
		return x, nil
	case owl.DataMinCardinality:
		return b.dataCardinality(e.Property, e.Cardinality, e.Range, vocab.OWLMinCardinality, vocab.OWLMinQualifiedCardinality)
	case owl.DataMaxCardinality:
		return b.dataCardinality(e.Property, e.Cardinality, e.Range, vocab.OWLMaxCardinality, vocab.OWLMaxQualifiedCardinality)
	case owl.DataExactCardinality:
		return b.dataCardinality(e.Property, e.Cardinality, e.Range, vocab.OWLCardinality, vocab.OWLQualifiedCardinality)
	default:
		panic(fmt.Sprintf("translate: unknown class expression %T", e))
	}
}

func (b *builder) classList(typ, pred string, classes owl.Sequence[owl.ClassExpression]) (rdf.Term, error) {
	members, err := b.classes(classes)
	if err != nil {
		return rdf.Term{}, err
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(typ))
	b.add(x, store.IRI(pred), b.unorderedSequence(members))
	return x, nil
}

func (b *builder) objectRestriction(prop owl.ObjectPropertyExpression, pred string, value func() (rdf.Term, error)) (rdf.Term, error) {
	p, err := b.objProp(prop)
	if err != nil {
		return rdf.Term{}, err
	}
	v, err := value()
	if err != nil {
		return rdf.Term{}, err
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLRestriction))
	b.add(x, store.IRI(vocab.OWLOnProperty), p)
	b.add(x, store.IRI(pred), v)
	return x, nil
}

// objectCardinality writes an object cardinality restriction. The
// restriction is qualified when class is not nil.
func (b *builder) objectCardinality(prop owl.ObjectPropertyExpression, n owl.LiteralExpression, class owl.ClassExpression, unqualified, qualified string) (rdf.Term, error) {
	p, err := b.objProp(prop)
	if err != nil {
		return rdf.Term{}, err
	}
	card, err := b.literal(n)
	if err != nil {
		return rdf.Term{}, err
	}
	var c rdf.Term
	if class != nil {
		c, err = b.classExpr(class)
		if err != nil {
			return rdf.Term{}, err
		}
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLRestriction))
	b.add(x, store.IRI(vocab.OWLOnProperty), p)
	if class == nil {
		b.add(x, store.IRI(unqualified), card)
		return x, nil
	}
	b.add(x, store.IRI(qualified), card)
	b.add(x, store.IRI(vocab.OWLOnClass), c)
	return x, nil
}

func (b *builder) dataQuantifier(props owl.Sequence[owl.DataPropertyExpression], dr owl.Datarange, pred string) (rdf.Term, error) {
	values := props.Values()
	if len(values) == 0 {
		return rdf.Term{}, errors.New("data quantifier without property")
	}
	p := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		p[i], err = b.dataProp(v)
		if err != nil {
			return rdf.Term{}, err
		}
	}
	r, err := b.datarange(dr)
	if err != nil {
		return rdf.Term{}, err
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLRestriction))
	if len(p) == 1 {
		b.add(x, store.IRI(vocab.OWLOnProperty), p[0])
	} else {
		b.add(x, store.IRI(vocab.OWLOnProperties), b.orderedSequence(p))
	}
	b.add(x, store.IRI(pred), r)
	return x, nil
}

// dataCardinality writes a data cardinality restriction. The
// restriction is qualified when dr is not nil.
func (b *builder) dataCardinality(prop owl.DataPropertyExpression, n owl.LiteralExpression, dr owl.Datarange, unqualified, qualified string) (rdf.Term, error) {
	p, err := b.dataProp(prop)
	if err != nil {
		return rdf.Term{}, err
	}
	card, err := b.literal(n)
	if err != nil {
		return rdf.Term{}, err
	}
	var r rdf.Term
	if dr != nil {
		r, err = b.datarange(dr)
		if err != nil {
			return rdf.Term{}, err
		}
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLRestriction))
	b.add(x, store.IRI(vocab.OWLOnProperty), p)
	if dr == nil {
		b.add(x, store.IRI(unqualified), card)
		return x, nil
	}
	b.add(x, store.IRI(qualified), card)
	b.add(x, store.IRI(vocab.OWLOnDataRange), r)
	return x, nil
}

func (b *builder) objProp(e owl.ObjectPropertyExpression) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing object property expression")
	case owl.IRI:
		return iri(string(e))
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Runtime:
		return b.named(e.Entity)
	case owl.ObjectInverseOf:
		p, err := b.objProp(e.Property)
		if err != nil {
			return rdf.Term{}, err
		}
		x := b.blank()
		b.add(x, store.IRI(vocab.OWLInverseOf), p)
		return x, nil
	default:
		panic(fmt.Sprintf("translate: unknown object property expression %T", e))
	}
}

func (b *builder) dataProp(e owl.DataPropertyExpression) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing data property expression")
	case owl.IRI:
		return iri(string(e))
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Runtime:
		return b.named(e.Entity)
	default:
		panic(fmt.Sprintf("translate: unknown data property expression %T", e))
	}
}

func (b *builder) datarange(e owl.Datarange) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing data range")
	case owl.IRI:
		return iri(string(e))
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Runtime:
		return b.named(e.Entity)
	case owl.DataIntersectionOf:
		return b.rangeList(vocab.OWLIntersectionOf, e.Ranges)
	case owl.DataUnionOf:
		return b.rangeList(vocab.OWLUnionOf, e.Ranges)
	case owl.DataComplementOf:
		r, err := b.datarange(e.Range)
		if err != nil {
			return rdf.Term{}, err
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.RDFSDatatype))
		b.add(x, store.IRI(vocab.OWLDatatypeComplementOf), r)
		return x, nil
	case owl.DataOneOf:
		values := e.Literals.Values()
		members := make([]rdf.Term, len(values))
		for i, v := range values {
			var err error
			members[i], err = b.literal(v)
			if err != nil {
				return rdf.Term{}, err
			}
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.RDFSDatatype))
		b.add(x, store.IRI(vocab.OWLOneOf), b.unorderedSequence(members))
		return x, nil
	case owl.DatatypeRestriction:
		dt, err := b.datarange(e.Datatype)
		if err != nil {
			return rdf.Term{}, err
		}
		facets := make([]rdf.Term, len(e.Facets))
		for i, f := range e.Facets {
			p, err := iri(string(f.Facet))
			if err != nil {
				return rdf.Term{}, err
			}
			v, err := b.literal(f.Value)
			if err != nil {
				return rdf.Term{}, err
			}
			facets[i] = b.blank()
			b.add(facets[i], p, v)
		}
		x := b.blank()
		b.add(x, rdfType, store.IRI(vocab.RDFSDatatype))
		b.add(x, store.IRI(vocab.OWLOnDatatype), dt)
		b.add(x, store.IRI(vocab.OWLWithRestrictions), b.unorderedSequence(facets))
		return x, nil
	default:
		panic(fmt.Sprintf("translate: unknown data range %T", e))
	}
}

func (b *builder) rangeList(pred string, ranges owl.Sequence[owl.Datarange]) (rdf.Term, error) {
	values := ranges.Values()
	members := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		members[i], err = b.datarange(v)
		if err != nil {
			return rdf.Term{}, err
		}
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.RDFSDatatype))
	b.add(x, store.IRI(pred), b.unorderedSequence(members))
	return x, nil
}

func (b *builder) individual(e owl.Individual) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing individual")
	case owl.IRI:
		return iri(string(e))
	case owl.Variable:
		return b.t.ctx.Resolve(e), nil
	case owl.Runtime:
		return b.named(e.Entity)
	case owl.AnonymousIndividual:
		return anonymous(e)
	default:
		panic(fmt.Sprintf("translate: unknown individual %T", e))
	}
}

func (b *builder) annotationSubject(e owl.AnnotationSubject) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing annotation subject")
	case owl.IRI:
		return iri(string(e))
	case owl.AnonymousIndividual:
		return anonymous(e)
	default:
		panic(fmt.Sprintf("translate: unknown annotation subject %T", e))
	}
}

func (b *builder) annotationValue(e owl.AnnotationValue) (rdf.Term, error) {
	switch e := e.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing annotation value")
	case owl.IRI:
		return iri(string(e))
	case owl.AnonymousIndividual:
		return anonymous(e)
	case owl.Literal:
		return literalTerm(e)
	default:
		panic(fmt.Sprintf("translate: unknown annotation value %T", e))
	}
}

func (b *builder) classes(s owl.Sequence[owl.ClassExpression]) ([]rdf.Term, error) {
	values := s.Values()
	terms := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		terms[i], err = b.classExpr(v)
		if err != nil {
			return nil, err
		}
	}
	return terms, nil
}

func (b *builder) objProps(s owl.Sequence[owl.ObjectPropertyExpression]) ([]rdf.Term, error) {
	values := s.Values()
	terms := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		terms[i], err = b.objProp(v)
		if err != nil {
			return nil, err
		}
	}
	return terms, nil
}

func (b *builder) dataProps(s owl.Sequence[owl.DataPropertyExpression]) ([]rdf.Term, error) {
	values := s.Values()
	terms := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		terms[i], err = b.dataProp(v)
		if err != nil {
			return nil, err
		}
	}
	return terms, nil
}

func (b *builder) individuals(s owl.Sequence[owl.Individual]) ([]rdf.Term, error) {
	values := s.Values()
	terms := make([]rdf.Term, len(values))
	for i, v := range values {
		var err error
		terms[i], err = b.individual(v)
		if err != nil {
			return nil, err
		}
	}
	return terms, nil
}
