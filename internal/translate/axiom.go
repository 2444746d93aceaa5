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

var declarationTypes = map[owl.EntityKind]string{
	owl.ClassEntity:              vocab.OWLClass,
	owl.DatatypeEntity:           vocab.RDFSDatatype,
	owl.ObjectPropertyEntity:     vocab.OWLObjectProperty,
	owl.DataPropertyEntity:       vocab.OWLDatatypeProperty,
	owl.AnnotationPropertyEntity: vocab.OWLAnnotationProperty,
	owl.NamedIndividualEntity:    vocab.OWLNamedIndividual,
}

// axiom writes the quads of a. Axioms mapped to a single main triple
// have their annotations reified on an owl:Axiom node. Axioms mapped to
// a blank node carry their annotations on that node.
func (b *builder) axiom(a owl.Axiom) error {
	switch a := a.(type) {
	case nil:
		return errors.New("missing axiom")

	case owl.Declaration:
		typ, ok := declarationTypes[a.Kind]
		if !ok {
			return fmt.Errorf("invalid entity kind: %v", a.Kind)
		}
		e, err := iri(string(a.Entity))
		if err != nil {
			return err
		}
		return b.main(a, e, rdfType, store.IRI(typ))

	case owl.DatatypeDefinition:
		dt, err := b.datarange(a.Datatype)
		if err != nil {
			return err
		}
		r, err := b.datarange(a.Range)
		if err != nil {
			return err
		}
		return b.main(a, dt, store.IRI(vocab.OWLEquivalentClass), r)

	case owl.SubClassOf:
		sub, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		sup, err := b.classExpr(a.Super)
		if err != nil {
			return err
		}
		return b.main(a, sub, store.IRI(vocab.RDFSSubClassOf), sup)

	case owl.EquivalentClasses:
		classes, err := b.classes(a.Classes)
		if err != nil {
			return err
		}
		return b.chain(a, classes, vocab.OWLEquivalentClass)

	case owl.DisjointClasses:
		classes, err := b.classes(a.Classes)
		if err != nil {
			return err
		}
		return b.nary(a, classes, vocab.OWLDisjointWith, vocab.OWLAllDisjointClasses, vocab.OWLMembers)

	case owl.DisjointUnion:
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		classes, err := b.classes(a.Classes)
		if err != nil {
			return err
		}
		return b.main(a, c, store.IRI(vocab.OWLDisjointUnionOf), b.unorderedSequence(classes))

	case owl.SubObjectPropertyOf:
		sup, err := b.objProp(a.Super)
		if err != nil {
			return err
		}
		if len(a.Chain) != 0 {
			chain, err := b.objProps(a.Chain)
			if err != nil {
				return err
			}
			return b.main(a, sup, store.IRI(vocab.OWLPropertyChainAxiom), b.orderedSequence(chain))
		}
		sub, err := b.objProp(a.Property)
		if err != nil {
			return err
		}
		return b.main(a, sub, store.IRI(vocab.RDFSSubPropertyOf), sup)

	case owl.EquivalentObjectProperties:
		props, err := b.objProps(a.Properties)
		if err != nil {
			return err
		}
		return b.chain(a, props, vocab.OWLEquivalentProperty)

	case owl.DisjointObjectProperties:
		props, err := b.objProps(a.Properties)
		if err != nil {
			return err
		}
		return b.nary(a, props, vocab.OWLPropertyDisjointWith, vocab.OWLAllDisjointProperties, vocab.OWLMembers)

	case owl.InverseObjectProperties:
		p, err := b.objProp(a.Property)
		if err != nil {
			return err
		}
		inv, err := b.objProp(a.Inverse)
		if err != nil {
			return err
		}
		return b.main(a, p, store.IRI(vocab.OWLInverseOf), inv)

	case owl.ObjectPropertyDomain:
		p, err := b.objProp(a.Property)
		if err != nil {
			return err
		}
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		return b.main(a, p, store.IRI(vocab.RDFSDomain), c)

	case owl.ObjectPropertyRange:
		p, err := b.objProp(a.Property)
		if err != nil {
			return err
		}
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		return b.main(a, p, store.IRI(vocab.RDFSRange), c)

	case owl.FunctionalObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLFunctionalProperty)
	case owl.InverseFunctionalObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLInverseFunctionalProperty)
	case owl.ReflexiveObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLReflexiveProperty)
	case owl.IrreflexiveObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLIrreflexiveProperty)
	case owl.SymmetricObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLSymmetricProperty)
	case owl.AsymmetricObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLAsymmetricProperty)
	case owl.TransitiveObjectProperty:
		return b.characteristic(a, a.Property, vocab.OWLTransitiveProperty)

	case owl.SubDataPropertyOf:
		sub, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		sup, err := b.dataProp(a.Super)
		if err != nil {
			return err
		}
		return b.main(a, sub, store.IRI(vocab.RDFSSubPropertyOf), sup)

	case owl.EquivalentDataProperties:
		props, err := b.dataProps(a.Properties)
		if err != nil {
			return err
		}
		return b.chain(a, props, vocab.OWLEquivalentProperty)

	case owl.DisjointDataProperties:
		props, err := b.dataProps(a.Properties)
		if err != nil {
			return err
		}
		return b.nary(a, props, vocab.OWLPropertyDisjointWith, vocab.OWLAllDisjointProperties, vocab.OWLMembers)

	case owl.DataPropertyDomain:
		p, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		return b.main(a, p, store.IRI(vocab.RDFSDomain), c)

	case owl.DataPropertyRange:
		p, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		r, err := b.datarange(a.Range)
		if err != nil {
			return err
		}
		return b.main(a, p, store.IRI(vocab.RDFSRange), r)

	case owl.FunctionalDataProperty:
		p, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		return b.main(a, p, rdfType, store.IRI(vocab.OWLFunctionalProperty))

	case owl.SameIndividual:
		inds, err := b.individuals(a.Individuals)
		if err != nil {
			return err
		}
		return b.chain(a, inds, vocab.OWLSameAs)

	case owl.DifferentIndividuals:
		inds, err := b.individuals(a.Individuals)
		if err != nil {
			return err
		}
		return b.nary(a, inds, vocab.OWLDifferentFrom, vocab.OWLAllDifferent, vocab.OWLMembers)

	case owl.ClassAssertion:
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		ind, err := b.individual(a.Individual)
		if err != nil {
			return err
		}
		return b.main(a, ind, rdfType, c)

	case owl.ObjectPropertyAssertion:
		prop := a.Property
		subj, obj := a.Individual, a.Value
		// An assertion of an inverse property is written
		// as the assertion of the property, reversed.
		if inv, ok := prop.(owl.ObjectInverseOf); ok {
			prop = inv.Property
			subj, obj = obj, subj
		}
		p, err := b.objProp(prop)
		if err != nil {
			return err
		}
		p, err = predicate(p)
		if err != nil {
			return err
		}
		s, err := b.individual(subj)
		if err != nil {
			return err
		}
		o, err := b.individual(obj)
		if err != nil {
			return err
		}
		return b.main(a, s, p, o)

	case owl.NegativeObjectPropertyAssertion:
		p, err := b.objProp(a.Property)
		if err != nil {
			return err
		}
		s, err := b.individual(a.Individual)
		if err != nil {
			return err
		}
		o, err := b.individual(a.Value)
		if err != nil {
			return err
		}
		return b.negative(a, s, p, vocab.OWLTargetIndividual, o)

	case owl.DataPropertyAssertion:
		p, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		p, err = predicate(p)
		if err != nil {
			return err
		}
		s, err := b.individual(a.Individual)
		if err != nil {
			return err
		}
		o, err := b.literal(a.Value)
		if err != nil {
			return err
		}
		return b.main(a, s, p, o)

	case owl.NegativeDataPropertyAssertion:
		p, err := b.dataProp(a.Property)
		if err != nil {
			return err
		}
		s, err := b.individual(a.Individual)
		if err != nil {
			return err
		}
		o, err := b.literal(a.Value)
		if err != nil {
			return err
		}
		return b.negative(a, s, p, vocab.OWLTargetValue, o)

	case owl.HasKey:
		c, err := b.classExpr(a.Class)
		if err != nil {
			return err
		}
		objs, err := b.objProps(a.ObjectProperties)
		if err != nil {
			return err
		}
		data, err := b.dataProps(a.DataProperties)
		if err != nil {
			return err
		}
		keys := append(objs, data...)
		return b.main(a, c, store.IRI(vocab.OWLHasKey), b.unorderedSequence(keys))

	case owl.SubAnnotationPropertyOf:
		return b.annotationPropertyAxiom(a, a.Property, vocab.RDFSSubPropertyOf, a.Super)
	case owl.AnnotationPropertyDomain:
		return b.annotationPropertyAxiom(a, a.Property, vocab.RDFSDomain, a.Domain)
	case owl.AnnotationPropertyRange:
		return b.annotationPropertyAxiom(a, a.Property, vocab.RDFSRange, a.Range)

	case owl.AnnotationAssertion:
		p, err := iri(string(a.Property))
		if err != nil {
			return err
		}
		s, err := b.annotationSubject(a.Subject)
		if err != nil {
			return err
		}
		v, err := b.annotationValue(a.Value)
		if err != nil {
			return err
		}
		return b.main(a, s, p, v)

	default:
		panic(fmt.Sprintf("translate: unknown axiom %T", a))
	}
}

// main writes the main triple of a and reifies the axiom's annotations.
func (b *builder) main(a owl.Axiom, s, p, o rdf.Term) error {
	b.add(s, p, o)
	return b.axiomAnnotations(a.Annots(), s, p, o)
}

// chain writes the pairwise statements between consecutive terms.
func (b *builder) chain(a owl.Axiom, terms []rdf.Term, pred string) error {
	p := store.IRI(pred)
	for i := 0; i < len(terms)-1; i++ {
		err := b.main(a, terms[i], p, terms[i+1])
		if err != nil {
			return err
		}
	}
	return nil
}

// nary writes an axiom over two terms as a single binary statement
// and over any other number as a blank node of type typ listing the
// terms as members.
func (b *builder) nary(a owl.Axiom, terms []rdf.Term, binary, typ, members string) error {
	if len(terms) == 2 {
		return b.main(a, terms[0], store.IRI(binary), terms[1])
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(typ))
	b.add(x, store.IRI(members), b.unorderedSequence(terms))
	return b.annotations(x, a.Annots())
}

func (b *builder) characteristic(a owl.Axiom, prop owl.ObjectPropertyExpression, typ string) error {
	p, err := b.objProp(prop)
	if err != nil {
		return err
	}
	return b.main(a, p, rdfType, store.IRI(typ))
}

func (b *builder) negative(a owl.Axiom, s, p rdf.Term, target string, o rdf.Term) error {
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLNegativePropertyAssertion))
	b.add(x, store.IRI(vocab.OWLSourceIndividual), s)
	b.add(x, store.IRI(vocab.OWLAssertionProperty), p)
	b.add(x, store.IRI(target), o)
	return b.annotations(x, a.Annots())
}

func (b *builder) annotationPropertyAxiom(a owl.Axiom, prop owl.IRI, pred string, value owl.IRI) error {
	p, err := iri(string(prop))
	if err != nil {
		return err
	}
	v, err := iri(string(value))
	if err != nil {
		return err
	}
	return b.main(a, p, store.IRI(pred), v)
}

// axiomAnnotations reifies the triple s p o on an owl:Axiom node
// carrying the annotations.
func (b *builder) axiomAnnotations(annotations []owl.Annotation, s, p, o rdf.Term) error {
	if len(annotations) == 0 {
		return nil
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLAxiom))
	b.add(x, store.IRI(vocab.OWLAnnotatedSource), s)
	b.add(x, store.IRI(vocab.OWLAnnotatedProperty), p)
	b.add(x, store.IRI(vocab.OWLAnnotatedTarget), o)
	return b.annotations(x, annotations)
}

func (b *builder) annotations(subject rdf.Term, annotations []owl.Annotation) error {
	for _, a := range annotations {
		err := b.annotation(subject, a)
		if err != nil {
			return err
		}
	}
	return nil
}

// annotation writes the annotation a of subject. Annotations of a
// are written on an owl:Annotation node reifying the written triple.
func (b *builder) annotation(subject rdf.Term, a owl.Annotation) error {
	p, err := iri(string(a.Property))
	if err != nil {
		return err
	}
	v, err := b.annotationValue(a.Value)
	if err != nil {
		return err
	}
	b.add(subject, p, v)
	if len(a.Annotations) == 0 {
		return nil
	}
	x := b.blank()
	b.add(x, rdfType, store.IRI(vocab.OWLAnnotation))
	b.add(x, store.IRI(vocab.OWLAnnotatedSource), subject)
	b.add(x, store.IRI(vocab.OWLAnnotatedProperty), p)
	b.add(x, store.IRI(vocab.OWLAnnotatedTarget), v)
	return b.annotations(x, a.Annotations)
}
