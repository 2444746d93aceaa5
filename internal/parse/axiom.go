// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

// structural holds the types of the blank nodes that carry the
// structure of axioms rather than being individuals.
var structural = []string{
	vocab.OWLAxiom,
	vocab.OWLAnnotation,
	vocab.OWLAllDisjointClasses,
	vocab.OWLAllDisjointProperties,
	vocab.OWLAllDifferent,
	vocab.OWLNegativePropertyAssertion,
}

func axiomRules() []*rule {
	var list []*rule

	for _, d := range []struct {
		typ  string
		kind owl.EntityKind
	}{
		{typ: vocab.OWLClass, kind: owl.ClassEntity},
		{typ: vocab.RDFSDatatype, kind: owl.DatatypeEntity},
		{typ: vocab.OWLObjectProperty, kind: owl.ObjectPropertyEntity},
		{typ: vocab.OWLDatatypeProperty, kind: owl.DataPropertyEntity},
		{typ: vocab.OWLAnnotationProperty, kind: owl.AnnotationPropertyEntity},
		{typ: vocab.OWLNamedIndividual, kind: owl.NamedIndividualEntity},
	} {
		d := d
		list = append(list, &rule{
			name:     "Declaration" + d.kind.String(),
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFType, d.typ)},
			activate: func(p *parser, t rete.Token) {
				x := get(t, "x")
				e, ok := store.IRIText(x)
				if !ok {
					return
				}
				p.add(owl.Declaration{
					Annotated: p.reified(x, rdfType, store.IRI(d.typ)),
					Kind:      d.kind,
					Entity:    owl.IRI(e),
				})
			},
		})
	}

	list = append(list,
		&rule{
			name:     "SubClassOf",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFSSubClassOf, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				sub, ok := p.class(x)
				if !ok {
					return
				}
				sup, ok := p.class(y)
				if !ok {
					return
				}
				p.add(owl.SubClassOf{
					Annotated: p.reified(x, store.IRI(vocab.RDFSSubClassOf), y),
					Class:     sub,
					Super:     sup,
				})
			},
		},
		&rule{
			name:     "EquivalentClass",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLEquivalentClass, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.OWLEquivalentClass), y)
				if p.isDatatype(x) || p.isDatatype(y) {
					dt, ok := p.datarange(x)
					if !ok {
						return
					}
					r, ok := p.datarange(y)
					if !ok {
						return
					}
					p.add(owl.DatatypeDefinition{Annotated: ann, Datatype: dt, Range: r})
					return
				}
				classes, ok := p.classSeq([]rdf.Term{x, y})
				if !ok {
					return
				}
				p.add(owl.EquivalentClasses{Annotated: ann, Classes: classes})
			},
		},
		&rule{
			name:     "DisjointWith",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLDisjointWith, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				classes, ok := p.classSeq([]rdf.Term{x, y})
				if !ok {
					return
				}
				p.add(owl.DisjointClasses{
					Annotated: p.reified(x, store.IRI(vocab.OWLDisjointWith), y),
					Classes:   classes,
				})
			},
		},
		&rule{
			name:     "AllDisjointClasses",
			priority: axiomPriority,
			patterns: members(vocab.OWLAllDisjointClasses),
			activate: func(p *parser, t rete.Token) {
				elems, ok := p.index.unorderedList(get(t, "y"))
				if !ok {
					return
				}
				classes, ok := p.classSeq(elems)
				if !ok {
					return
				}
				p.add(owl.DisjointClasses{Annotated: p.direct(get(t, "x")), Classes: classes})
			},
		},
		&rule{
			name:     "DisjointUnion",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLDisjointUnionOf, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				c, ok := p.class(x)
				if !ok {
					return
				}
				elems, ok := p.index.unorderedList(y)
				if !ok {
					return
				}
				classes, ok := p.classSeq(elems)
				if !ok {
					return
				}
				p.add(owl.DisjointUnion{
					Annotated: p.reified(x, store.IRI(vocab.OWLDisjointUnionOf), y),
					Class:     c,
					Classes:   classes,
				})
			},
		},

		&rule{
			name:     "SubPropertyOf",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFSSubPropertyOf, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.RDFSSubPropertyOf), y)
				switch {
				case p.isObjectProperty(x):
					sub, ok := p.objProp(x)
					if !ok {
						return
					}
					sup, ok := p.objProp(y)
					if !ok {
						return
					}
					p.add(owl.SubObjectPropertyOf{Annotated: ann, Property: sub, Super: sup})
				case p.isDataProperty(x):
					sub, _ := p.dataProp(x)
					sup, ok := p.dataProp(y)
					if !ok {
						return
					}
					p.add(owl.SubDataPropertyOf{Annotated: ann, Property: sub, Super: sup})
				case p.isAnnotationProperty(x):
					sub, _ := store.IRIText(x)
					sup, ok := store.IRIText(y)
					if !ok {
						return
					}
					p.add(owl.SubAnnotationPropertyOf{Annotated: ann, Property: owl.IRI(sub), Super: owl.IRI(sup)})
				}
			},
		},
		&rule{
			name:     "PropertyChain",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLPropertyChainAxiom, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				sup, ok := p.objProp(x)
				if !ok {
					return
				}
				elems, ok := p.index.list(y)
				if !ok {
					return
				}
				chain, ok := p.objProps(elems)
				if !ok {
					return
				}
				p.add(owl.SubObjectPropertyOf{
					Annotated: p.reified(x, store.IRI(vocab.OWLPropertyChainAxiom), y),
					Chain:     chain,
					Super:     sup,
				})
			},
		},
		&rule{
			name:     "EquivalentProperty",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLEquivalentProperty, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.OWLEquivalentProperty), y)
				switch {
				case p.isObjectProperty(x):
					props, ok := p.objProps([]rdf.Term{x, y})
					if !ok {
						return
					}
					p.add(owl.EquivalentObjectProperties{Annotated: ann, Properties: props})
				case p.isDataProperty(x):
					props, ok := p.dataProps([]rdf.Term{x, y})
					if !ok {
						return
					}
					p.add(owl.EquivalentDataProperties{Annotated: ann, Properties: props})
				}
			},
		},
		&rule{
			name:     "PropertyDisjointWith",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLPropertyDisjointWith, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.OWLPropertyDisjointWith), y)
				p.disjointProperties(ann, []rdf.Term{x, y})
			},
		},
		&rule{
			name:     "AllDisjointProperties",
			priority: axiomPriority,
			patterns: members(vocab.OWLAllDisjointProperties),
			activate: func(p *parser, t rete.Token) {
				elems, ok := p.index.unorderedList(get(t, "y"))
				if !ok {
					return
				}
				p.disjointProperties(p.direct(get(t, "x")), elems)
			},
		},
		&rule{
			name:     "Domain",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFSDomain, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.RDFSDomain), y)
				switch {
				case p.isObjectProperty(x):
					prop, ok := p.objProp(x)
					if !ok {
						return
					}
					c, ok := p.class(y)
					if !ok {
						return
					}
					p.add(owl.ObjectPropertyDomain{Annotated: ann, Property: prop, Class: c})
				case p.isDataProperty(x):
					prop, _ := p.dataProp(x)
					c, ok := p.class(y)
					if !ok {
						return
					}
					p.add(owl.DataPropertyDomain{Annotated: ann, Property: prop, Class: c})
				case p.isAnnotationProperty(x):
					prop, _ := store.IRIText(x)
					d, ok := store.IRIText(y)
					if !ok {
						return
					}
					p.add(owl.AnnotationPropertyDomain{Annotated: ann, Property: owl.IRI(prop), Domain: owl.IRI(d)})
				}
			},
		},
		&rule{
			name:     "Range",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFSRange, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				ann := p.reified(x, store.IRI(vocab.RDFSRange), y)
				switch {
				case p.isObjectProperty(x):
					prop, ok := p.objProp(x)
					if !ok {
						return
					}
					c, ok := p.class(y)
					if !ok {
						return
					}
					p.add(owl.ObjectPropertyRange{Annotated: ann, Property: prop, Class: c})
				case p.isDataProperty(x):
					prop, _ := p.dataProp(x)
					r, ok := p.datarange(y)
					if !ok {
						return
					}
					p.add(owl.DataPropertyRange{Annotated: ann, Property: prop, Range: r})
				case p.isAnnotationProperty(x):
					prop, _ := store.IRIText(x)
					r, ok := store.IRIText(y)
					if !ok {
						return
					}
					p.add(owl.AnnotationPropertyRange{Annotated: ann, Property: owl.IRI(prop), Range: owl.IRI(r)})
				}
			},
		},
		&rule{
			name:     "InverseOf",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLInverseOf, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				// A blank subject is an inverse property expression.
				if !store.IsIRI(x) {
					return
				}
				props, ok := p.objProps([]rdf.Term{x, y})
				if !ok {
					return
				}
				v := props.Values()
				p.add(owl.InverseObjectProperties{
					Annotated: p.reified(x, store.IRI(vocab.OWLInverseOf), y),
					Property:  v[0],
					Inverse:   v[1],
				})
			},
		},
		&rule{
			name:     "FunctionalProperty",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFType, vocab.OWLFunctionalProperty)},
			activate: func(p *parser, t rete.Token) {
				x := get(t, "x")
				ann := p.reified(x, rdfType, store.IRI(vocab.OWLFunctionalProperty))
				switch {
				case p.isObjectProperty(x):
					prop, ok := p.objProp(x)
					if !ok {
						return
					}
					p.add(owl.FunctionalObjectProperty{Annotated: ann, Property: prop})
				case p.isDataProperty(x):
					prop, ok := p.dataProp(x)
					if !ok {
						return
					}
					p.add(owl.FunctionalDataProperty{Annotated: ann, Property: prop})
				}
			},
		},
	)

	for _, c := range []struct {
		typ  string
		build func(owl.Annotated, owl.ObjectPropertyExpression) owl.Axiom
	}{
		{typ: vocab.OWLInverseFunctionalProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.InverseFunctionalObjectProperty{Annotated: a, Property: p}
		}},
		{typ: vocab.OWLReflexiveProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.ReflexiveObjectProperty{Annotated: a, Property: p}
		}},
		{typ: vocab.OWLIrreflexiveProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.IrreflexiveObjectProperty{Annotated: a, Property: p}
		}},
		{typ: vocab.OWLSymmetricProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.SymmetricObjectProperty{Annotated: a, Property: p}
		}},
		{typ: vocab.OWLAsymmetricProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.AsymmetricObjectProperty{Annotated: a, Property: p}
		}},
		{typ: vocab.OWLTransitiveProperty, build: func(a owl.Annotated, p owl.ObjectPropertyExpression) owl.Axiom {
			return owl.TransitiveObjectProperty{Annotated: a, Property: p}
		}},
	} {
		c := c
		list = append(list, &rule{
			name:     c.typ,
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFType, c.typ)},
			activate: func(p *parser, t rete.Token) {
				x := get(t, "x")
				prop, ok := p.objProp(x)
				if !ok {
					return
				}
				p.add(c.build(p.reified(x, rdfType, store.IRI(c.typ)), prop))
			},
		})
	}

	list = append(list,
		&rule{
			name:     "HasKey",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLHasKey, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				c, ok := p.class(x)
				if !ok {
					return
				}
				elems, ok := p.index.unorderedList(y)
				if !ok {
					return
				}
				var objs, data []rdf.Term
				for _, e := range elems {
					if p.isObjectProperty(e) {
						objs = append(objs, e)
					} else {
						data = append(data, e)
					}
				}
				objProps, ok := p.objProps(objs)
				if !ok {
					return
				}
				dataProps, ok := p.dataProps(data)
				if !ok {
					return
				}
				p.add(owl.HasKey{
					Annotated:        p.reified(x, store.IRI(vocab.OWLHasKey), y),
					Class:            c,
					ObjectProperties: objProps,
					DataProperties:   dataProps,
				})
			},
		},
		&rule{
			name:     "SameAs",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLSameAs, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				inds, ok := p.individuals([]rdf.Term{x, y})
				if !ok {
					return
				}
				p.add(owl.SameIndividual{Annotated: p.reified(x, store.IRI(vocab.OWLSameAs), y), Individuals: inds})
			},
		},
		&rule{
			name:     "DifferentFrom",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.OWLDifferentFrom, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				inds, ok := p.individuals([]rdf.Term{x, y})
				if !ok {
					return
				}
				p.add(owl.DifferentIndividuals{Annotated: p.reified(x, store.IRI(vocab.OWLDifferentFrom), y), Individuals: inds})
			},
		},
		&rule{
			name:     "AllDifferent",
			priority: axiomPriority,
			patterns: members(vocab.OWLAllDifferent),
			activate: func(p *parser, t rete.Token) {
				elems, ok := p.index.unorderedList(get(t, "y"))
				if !ok {
					return
				}
				inds, ok := p.individuals(elems)
				if !ok {
					return
				}
				p.add(owl.DifferentIndividuals{Annotated: p.direct(get(t, "x")), Individuals: inds})
			},
		},
		&rule{
			name:     "ClassAssertion",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", vocab.RDFType, "?y")},
			activate: func(p *parser, t rete.Token) {
				x, y := get(t, "x"), get(t, "y")
				if !p.isClass(y) {
					return
				}
				c, ok := p.class(y)
				if !ok {
					return
				}
				ind, ok := p.individual(x)
				if !ok {
					return
				}
				p.add(owl.ClassAssertion{Annotated: p.reified(x, rdfType, y), Class: c, Individual: ind})
			},
		},
		&rule{
			name:     "Assertion",
			priority: axiomPriority,
			patterns: []*rdf.Statement{pattern("?x", "?p", "?y")},
			activate: func(p *parser, t rete.Token) {
				x, prop, y := get(t, "x"), get(t, "p"), get(t, "y")
				if p.isStructural(x) {
					return
				}
				ann := p.reified(x, prop, y)
				switch {
				case p.isObjectProperty(prop):
					e, _ := p.objProp(prop)
					s, ok := p.individual(x)
					if !ok {
						return
					}
					o, ok := p.individual(y)
					if !ok {
						return
					}
					p.add(owl.ObjectPropertyAssertion{Annotated: ann, Property: e, Individual: s, Value: o})
				case p.isDataProperty(prop):
					e, _ := p.dataProp(prop)
					s, ok := p.individual(x)
					if !ok {
						return
					}
					l, ok := p.literal(y)
					if !ok {
						return
					}
					p.add(owl.DataPropertyAssertion{Annotated: ann, Property: e, Individual: s, Value: l})
				case p.isAnnotationProperty(prop):
					e, _ := store.IRIText(prop)
					s, ok := p.annotationSubject(x)
					if !ok {
						return
					}
					v, ok := p.annotationValue(y)
					if !ok {
						return
					}
					p.add(owl.AnnotationAssertion{Annotated: ann, Property: owl.IRI(e), Subject: s, Value: v})
				}
			},
		},
		&rule{
			name:     "NegativeObjectPropertyAssertion",
			priority: axiomPriority,
			patterns: negative(vocab.OWLTargetIndividual),
			activate: func(p *parser, t rete.Token) {
				prop := get(t, "p")
				if !p.isObjectProperty(prop) {
					return
				}
				e, ok := p.objProp(prop)
				if !ok {
					return
				}
				s, ok := p.individual(get(t, "s"))
				if !ok {
					return
				}
				o, ok := p.individual(get(t, "o"))
				if !ok {
					return
				}
				p.add(owl.NegativeObjectPropertyAssertion{Annotated: p.direct(get(t, "x")), Property: e, Individual: s, Value: o})
			},
		},
		&rule{
			name:     "NegativeDataPropertyAssertion",
			priority: axiomPriority,
			patterns: negative(vocab.OWLTargetValue),
			activate: func(p *parser, t rete.Token) {
				prop := get(t, "p")
				e, ok := p.dataProp(prop)
				if !ok {
					return
				}
				s, ok := p.individual(get(t, "s"))
				if !ok {
					return
				}
				l, ok := p.literal(get(t, "o"))
				if !ok {
					return
				}
				p.add(owl.NegativeDataPropertyAssertion{Annotated: p.direct(get(t, "x")), Property: e, Individual: s, Value: l})
			},
		},
	)

	return list
}

// members returns the patterns of a blank node of type typ listing
// its members in ?y.
func members(typ string) []*rdf.Statement {
	return []*rdf.Statement{
		pattern("?x", vocab.RDFType, typ),
		pattern("?x", vocab.OWLMembers, "?y"),
	}
}

// negative returns the patterns of a negative property assertion with
// the target given by target.
func negative(target string) []*rdf.Statement {
	return []*rdf.Statement{
		pattern("?x", vocab.RDFType, vocab.OWLNegativePropertyAssertion),
		pattern("?x", vocab.OWLSourceIndividual, "?s"),
		pattern("?x", vocab.OWLAssertionProperty, "?p"),
		pattern("?x", target, "?o"),
	}
}

func (p *parser) disjointProperties(ann owl.Annotated, elems []rdf.Term) {
	if len(elems) == 0 {
		return
	}
	switch {
	case p.isObjectProperty(elems[0]):
		props, ok := p.objProps(elems)
		if !ok {
			return
		}
		p.add(owl.DisjointObjectProperties{Annotated: ann, Properties: props})
	case p.isDataProperty(elems[0]):
		props, ok := p.dataProps(elems)
		if !ok {
			return
		}
		p.add(owl.DisjointDataProperties{Annotated: ann, Properties: props})
	}
}

// isStructural returns whether t is a node carrying the structure of
// an axiom or annotation.
func (p *parser) isStructural(t rdf.Term) bool {
	if !store.IsBlank(t) {
		return false
	}
	for _, typ := range structural {
		if p.index.isOfType(t, typ) {
			return true
		}
	}
	return false
}
