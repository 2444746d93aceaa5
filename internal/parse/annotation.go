// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

// reified returns the annotations of the axiom written as the main
// triple s p o. They are held by owl:Axiom nodes reifying the triple.
func (p *parser) reified(s, pred, o rdf.Term) owl.Annotated {
	return owl.Annotated{Annotations: p.reifications(vocab.OWLAxiom, s, pred, o)}
}

// direct returns the annotations held by the blank node x of an axiom
// written without a main triple.
func (p *parser) direct(x rdf.Term) owl.Annotated {
	return owl.Annotated{Annotations: p.annotationsOf(x)}
}

// reifications returns the annotations on nodes of type typ reifying
// the triple s p o.
func (p *parser) reifications(typ string, s, pred, o rdf.Term) []owl.Annotation {
	var annotations []owl.Annotation
	for _, r := range p.facts.Match(&rdf.Statement{Predicate: store.IRI(vocab.OWLAnnotatedSource), Object: s}) {
		x := r.Subject
		if !p.index.isOfType(x, typ) {
			continue
		}
		prop, ok := p.index.object(x, store.IRI(vocab.OWLAnnotatedProperty))
		if !ok || prop.Value != pred.Value {
			continue
		}
		target, ok := p.index.object(x, store.IRI(vocab.OWLAnnotatedTarget))
		if !ok || target.Value != o.Value {
			continue
		}
		annotations = append(annotations, p.annotationsOf(x)...)
	}
	return annotations
}

// annotationsOf returns the annotations whose subject is x.
func (p *parser) annotationsOf(x rdf.Term) []owl.Annotation {
	var annotations []owl.Annotation
	for _, s := range p.facts.Match(&rdf.Statement{Subject: x}) {
		if !p.isAnnotationProperty(s.Predicate) {
			continue
		}
		prop, _ := store.IRIText(s.Predicate)
		v, ok := p.annotationValue(s.Object)
		if !ok {
			continue
		}
		annotations = append(annotations, owl.Annotation{
			Property:    owl.IRI(prop),
			Value:       v,
			Annotations: p.reifications(vocab.OWLAnnotation, x, s.Predicate, s.Object),
		})
	}
	return annotations
}
