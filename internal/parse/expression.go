// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

type exprKind int

const (
	classExpr exprKind = iota
	dataRange
	propertyExpr
)

// record is a pending expression. The expression is built by build once
// the expressions of the nodes it depends on have been built.
type record struct {
	id    int64
	node  string
	kind  exprKind
	deps  []string
	build func() (any, bool)
}

// register records the expression of the blank node n. Only the first
// expression registered for a node is kept.
func (p *parser) register(n rdf.Term, kind exprKind, deps []rdf.Term, build func() (any, bool)) {
	if !store.IsBlank(n) {
		return
	}
	if _, exists := p.records[n.Value]; exists {
		return
	}
	r := &record{
		id:    int64(len(p.pending)),
		node:  n.Value,
		kind:  kind,
		build: build,
	}
	for _, d := range deps {
		if store.IsBlank(d) {
			r.deps = append(r.deps, d.Value)
		}
	}
	p.pending = append(p.pending, r)
	p.records[n.Value] = r
}

// resolve builds the registered expressions in dependency order.
// Expressions that depend on themselves, directly or not, and
// expressions depending on those are dropped.
func (p *parser) resolve() {
	g := simple.NewDirectedGraph()
	cyclic := make(map[int64]bool)
	for _, r := range p.pending {
		g.AddNode(simple.Node(r.id))
	}
	for _, r := range p.pending {
		for _, d := range r.deps {
			dep, ok := p.records[d]
			if !ok {
				continue
			}
			if dep == r {
				cyclic[r.id] = true
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(dep.id), simple.Node(r.id)))
		}
	}
	// Cyclic components are returned as nil nodes, and so never
	// have their expression built.
	sorted, _ := topo.Sort(g)
	for _, n := range sorted {
		if n == nil || cyclic[n.ID()] {
			continue
		}
		r := p.pending[n.ID()]
		v, ok := r.build()
		if !ok {
			continue
		}
		switch r.kind {
		case classExpr:
			p.classes[r.node] = v.(owl.ClassExpression)
		case dataRange:
			p.ranges[r.node] = v.(owl.Datarange)
		case propertyExpr:
			p.inverses[r.node] = v.(owl.ObjectPropertyExpression)
		}
	}
}

func expressionRules() []*rule {
	list := []*rule{
		{
			name:     "ObjectInverseOf",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.OWLInverseOf, "?y"),
			},
			activate: func(p *parser, t rete.Token) {
				y := get(t, "y")
				p.register(get(t, "x"), propertyExpr, []rdf.Term{y}, func() (any, bool) {
					e, ok := p.objProp(y)
					if !ok {
						return nil, false
					}
					return owl.ObjectInverseOf{Property: e}, true
				})
			},
		},

		dataRangeList("DataIntersectionOf", vocab.OWLIntersectionOf, func(s owl.Sequence[owl.Datarange]) owl.Datarange {
			return owl.DataIntersectionOf{Ranges: s}
		}),
		dataRangeList("DataUnionOf", vocab.OWLUnionOf, func(s owl.Sequence[owl.Datarange]) owl.Datarange {
			return owl.DataUnionOf{Ranges: s}
		}),
		{
			name:     "DataComplementOf",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.RDFType, vocab.RDFSDatatype),
				pattern("?x", vocab.OWLDatatypeComplementOf, "?y"),
			},
			activate: func(p *parser, t rete.Token) {
				y := get(t, "y")
				p.register(get(t, "x"), dataRange, []rdf.Term{y}, func() (any, bool) {
					r, ok := p.datarange(y)
					if !ok {
						return nil, false
					}
					return owl.DataComplementOf{Range: r}, true
				})
			},
		},
		{
			name:     "DataOneOf",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.RDFType, vocab.RDFSDatatype),
				pattern("?x", vocab.OWLOneOf, "?y"),
			},
			activate: func(p *parser, t rete.Token) {
				elems, ok := p.index.unorderedList(get(t, "y"))
				if !ok {
					return
				}
				p.register(get(t, "x"), dataRange, nil, func() (any, bool) {
					l, ok := p.literals(elems)
					if !ok {
						return nil, false
					}
					return owl.DataOneOf{Literals: l}, true
				})
			},
		},
		{
			name:     "DatatypeRestriction",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.RDFType, vocab.RDFSDatatype),
				pattern("?x", vocab.OWLOnDatatype, "?y"),
				pattern("?x", vocab.OWLWithRestrictions, "?z"),
			},
			activate: func(p *parser, t rete.Token) {
				y := get(t, "y")
				elems, ok := p.index.unorderedList(get(t, "z"))
				if !ok {
					return
				}
				p.register(get(t, "x"), dataRange, []rdf.Term{y}, func() (any, bool) {
					dt, ok := p.datarange(y)
					if !ok {
						return nil, false
					}
					facets := make([]owl.FacetRestriction, len(elems))
					for i, e := range elems {
						facets[i], ok = p.facet(e)
						if !ok {
							return nil, false
						}
					}
					return owl.DatatypeRestriction{Datatype: dt, Facets: facets}, true
				})
			},
		},

		classList("ObjectIntersectionOf", vocab.OWLIntersectionOf, func(s owl.Sequence[owl.ClassExpression]) owl.ClassExpression {
			return owl.ObjectIntersectionOf{Classes: s}
		}),
		classList("ObjectUnionOf", vocab.OWLUnionOf, func(s owl.Sequence[owl.ClassExpression]) owl.ClassExpression {
			return owl.ObjectUnionOf{Classes: s}
		}),
		{
			name:     "ObjectComplementOf",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.RDFType, vocab.OWLClass),
				pattern("?x", vocab.OWLComplementOf, "?y"),
			},
			activate: func(p *parser, t rete.Token) {
				y := get(t, "y")
				p.register(get(t, "x"), classExpr, []rdf.Term{y}, func() (any, bool) {
					c, ok := p.class(y)
					if !ok {
						return nil, false
					}
					return owl.ObjectComplementOf{Class: c}, true
				})
			},
		},
		{
			name:     "ObjectOneOf",
			priority: expressionPriority,
			patterns: []*rdf.Statement{
				pattern("?x", vocab.RDFType, vocab.OWLClass),
				pattern("?x", vocab.OWLOneOf, "?y"),
			},
			activate: func(p *parser, t rete.Token) {
				elems, ok := p.index.unorderedList(get(t, "y"))
				if !ok {
					return
				}
				p.register(get(t, "x"), classExpr, nil, func() (any, bool) {
					inds, ok := p.individuals(elems)
					if !ok {
						return nil, false
					}
					return owl.ObjectOneOf{Individuals: inds}, true
				})
			},
		},

		quantifier("SomeValuesFrom", vocab.OWLSomeValuesFrom,
			func(prop owl.ObjectPropertyExpression, c owl.ClassExpression) owl.ClassExpression {
				return owl.ObjectSomeValuesFrom{Property: prop, Class: c}
			},
			func(props owl.Sequence[owl.DataPropertyExpression], r owl.Datarange) owl.ClassExpression {
				return owl.DataSomeValuesFrom{Properties: props, Range: r}
			},
		),
		quantifier("AllValuesFrom", vocab.OWLAllValuesFrom,
			func(prop owl.ObjectPropertyExpression, c owl.ClassExpression) owl.ClassExpression {
				return owl.ObjectAllValuesFrom{Property: prop, Class: c}
			},
			func(props owl.Sequence[owl.DataPropertyExpression], r owl.Datarange) owl.ClassExpression {
				return owl.DataAllValuesFrom{Properties: props, Range: r}
			},
		),
		dataQuantifier("DataSomeValuesFrom", vocab.OWLSomeValuesFrom, func(props owl.Sequence[owl.DataPropertyExpression], r owl.Datarange) owl.ClassExpression {
			return owl.DataSomeValuesFrom{Properties: props, Range: r}
		}),
		dataQuantifier("DataAllValuesFrom", vocab.OWLAllValuesFrom, func(props owl.Sequence[owl.DataPropertyExpression], r owl.Datarange) owl.ClassExpression {
			return owl.DataAllValuesFrom{Properties: props, Range: r}
		}),
		{
			name:     "HasValue",
			priority: expressionPriority,
			patterns: restriction(vocab.OWLHasValue),
			activate: func(p *parser, t rete.Token) {
				prop, v := get(t, "y"), get(t, "z")
				switch {
				case p.isObjectProperty(prop):
					p.register(get(t, "x"), classExpr, []rdf.Term{prop}, func() (any, bool) {
						e, ok := p.objProp(prop)
						if !ok {
							return nil, false
						}
						ind, ok := p.individual(v)
						if !ok {
							return nil, false
						}
						return owl.ObjectHasValue{Property: e, Individual: ind}, true
					})
				case p.isDataProperty(prop):
					p.register(get(t, "x"), classExpr, nil, func() (any, bool) {
						e, ok := p.dataProp(prop)
						if !ok {
							return nil, false
						}
						l, ok := p.literal(v)
						if !ok {
							return nil, false
						}
						return owl.DataHasValue{Property: e, Value: l}, true
					})
				}
			},
		},
		{
			name:     "ObjectHasSelf",
			priority: expressionPriority,
			patterns: restriction(vocab.OWLHasSelf),
			activate: func(p *parser, t rete.Token) {
				prop := get(t, "y")
				if !p.isObjectProperty(prop) {
					return
				}
				self, ok := p.literal(get(t, "z"))
				if !ok || self != (owl.Literal{Lexical: "true", Datatype: vocab.XSDBoolean}) {
					return
				}
				p.register(get(t, "x"), classExpr, []rdf.Term{prop}, func() (any, bool) {
					e, ok := p.objProp(prop)
					if !ok {
						return nil, false
					}
					return owl.ObjectHasSelf{Property: e}, true
				})
			},
		},
	}

	for _, c := range []struct {
		name        string
		unqualified string
		qualified   string
		object      func(owl.ObjectPropertyExpression, owl.LiteralExpression, owl.ClassExpression) owl.ClassExpression
		data        func(owl.DataPropertyExpression, owl.LiteralExpression, owl.Datarange) owl.ClassExpression
	}{
		{
			name:        "MinCardinality",
			unqualified: vocab.OWLMinCardinality,
			qualified:   vocab.OWLMinQualifiedCardinality,
			object: func(p owl.ObjectPropertyExpression, n owl.LiteralExpression, c owl.ClassExpression) owl.ClassExpression {
				return owl.ObjectMinCardinality{Property: p, Cardinality: n, Class: c}
			},
			data: func(p owl.DataPropertyExpression, n owl.LiteralExpression, r owl.Datarange) owl.ClassExpression {
				return owl.DataMinCardinality{Property: p, Cardinality: n, Range: r}
			},
		},
		{
			name:        "MaxCardinality",
			unqualified: vocab.OWLMaxCardinality,
			qualified:   vocab.OWLMaxQualifiedCardinality,
			object: func(p owl.ObjectPropertyExpression, n owl.LiteralExpression, c owl.ClassExpression) owl.ClassExpression {
				return owl.ObjectMaxCardinality{Property: p, Cardinality: n, Class: c}
			},
			data: func(p owl.DataPropertyExpression, n owl.LiteralExpression, r owl.Datarange) owl.ClassExpression {
				return owl.DataMaxCardinality{Property: p, Cardinality: n, Range: r}
			},
		},
		{
			name:        "ExactCardinality",
			unqualified: vocab.OWLCardinality,
			qualified:   vocab.OWLQualifiedCardinality,
			object: func(p owl.ObjectPropertyExpression, n owl.LiteralExpression, c owl.ClassExpression) owl.ClassExpression {
				return owl.ObjectExactCardinality{Property: p, Cardinality: n, Class: c}
			},
			data: func(p owl.DataPropertyExpression, n owl.LiteralExpression, r owl.Datarange) owl.ClassExpression {
				return owl.DataExactCardinality{Property: p, Cardinality: n, Range: r}
			},
		},
	} {
		list = append(list,
			cardinality(c.name, c.unqualified, false, c.object, c.data),
			cardinality("Qualified"+c.name, c.qualified, true, c.object, c.data),
		)
	}

	return list
}

// restriction returns the patterns of a restriction on the property
// bound to ?y with the value of pred bound to ?z.
func restriction(pred string) []*rdf.Statement {
	return []*rdf.Statement{
		pattern("?x", vocab.RDFType, vocab.OWLRestriction),
		pattern("?x", vocab.OWLOnProperty, "?y"),
		pattern("?x", pred, "?z"),
	}
}

func classList(name, pred string, fn func(owl.Sequence[owl.ClassExpression]) owl.ClassExpression) *rule {
	return &rule{
		name:     name,
		priority: expressionPriority,
		patterns: []*rdf.Statement{
			pattern("?x", vocab.RDFType, vocab.OWLClass),
			pattern("?x", pred, "?y"),
		},
		activate: func(p *parser, t rete.Token) {
			elems, ok := p.index.unorderedList(get(t, "y"))
			if !ok {
				return
			}
			p.register(get(t, "x"), classExpr, elems, func() (any, bool) {
				s, ok := p.classSeq(elems)
				if !ok {
					return nil, false
				}
				return fn(s), true
			})
		},
	}
}

func dataRangeList(name, pred string, fn func(owl.Sequence[owl.Datarange]) owl.Datarange) *rule {
	return &rule{
		name:     name,
		priority: expressionPriority,
		patterns: []*rdf.Statement{
			pattern("?x", vocab.RDFType, vocab.RDFSDatatype),
			pattern("?x", pred, "?y"),
		},
		activate: func(p *parser, t rete.Token) {
			elems, ok := p.index.unorderedList(get(t, "y"))
			if !ok {
				return
			}
			p.register(get(t, "x"), dataRange, elems, func() (any, bool) {
				s, ok := p.dataranges(elems)
				if !ok {
					return nil, false
				}
				return fn(s), true
			})
		},
	}
}

// quantifier returns a rule for a some or all values restriction on
// a single property. The restriction is an object restriction or a
// data restriction depending on the type of the property.
func quantifier(name, pred string,
	object func(owl.ObjectPropertyExpression, owl.ClassExpression) owl.ClassExpression,
	data func(owl.Sequence[owl.DataPropertyExpression], owl.Datarange) owl.ClassExpression,
) *rule {
	return &rule{
		name:     name,
		priority: expressionPriority,
		patterns: restriction(pred),
		activate: func(p *parser, t rete.Token) {
			prop, v := get(t, "y"), get(t, "z")
			switch {
			case p.isObjectProperty(prop):
				p.register(get(t, "x"), classExpr, []rdf.Term{prop, v}, func() (any, bool) {
					e, ok := p.objProp(prop)
					if !ok {
						return nil, false
					}
					c, ok := p.class(v)
					if !ok {
						return nil, false
					}
					return object(e, c), true
				})
			case p.isDataProperty(prop):
				p.register(get(t, "x"), classExpr, []rdf.Term{v}, func() (any, bool) {
					e, ok := p.dataProp(prop)
					if !ok {
						return nil, false
					}
					r, ok := p.datarange(v)
					if !ok {
						return nil, false
					}
					return data(owl.Seq(e), r), true
				})
			}
		},
	}
}

// dataQuantifier returns a rule for a some or all values restriction
// on a list of data properties.
func dataQuantifier(name, pred string, fn func(owl.Sequence[owl.DataPropertyExpression], owl.Datarange) owl.ClassExpression) *rule {
	return &rule{
		name:     name,
		priority: expressionPriority,
		patterns: []*rdf.Statement{
			pattern("?x", vocab.RDFType, vocab.OWLRestriction),
			pattern("?x", vocab.OWLOnProperties, "?y"),
			pattern("?x", pred, "?z"),
		},
		activate: func(p *parser, t rete.Token) {
			props, ok := p.index.list(get(t, "y"))
			if !ok || len(props) == 0 {
				return
			}
			for _, prop := range props {
				if !p.isDataProperty(prop) {
					return
				}
			}
			v := get(t, "z")
			p.register(get(t, "x"), classExpr, []rdf.Term{v}, func() (any, bool) {
				s, ok := p.dataProps(props)
				if !ok {
					return nil, false
				}
				r, ok := p.datarange(v)
				if !ok {
					return nil, false
				}
				return fn(s, r), true
			})
		},
	}
}

// cardinality returns a rule for a cardinality restriction. Qualified
// restrictions take their class from owl:onClass and their data range
// from owl:onDataRange.
func cardinality(name, pred string, qualified bool,
	object func(owl.ObjectPropertyExpression, owl.LiteralExpression, owl.ClassExpression) owl.ClassExpression,
	data func(owl.DataPropertyExpression, owl.LiteralExpression, owl.Datarange) owl.ClassExpression,
) *rule {
	return &rule{
		name:     name,
		priority: expressionPriority,
		patterns: restriction(pred),
		activate: func(p *parser, t rete.Token) {
			x, prop, n := get(t, "x"), get(t, "y"), get(t, "z")
			card, ok := p.literal(n)
			if !ok {
				return
			}
			switch {
			case p.isObjectProperty(prop):
				deps := []rdf.Term{prop}
				var on rdf.Term
				if qualified {
					on, ok = p.index.object(x, store.IRI(vocab.OWLOnClass))
					if !ok {
						return
					}
					deps = append(deps, on)
				}
				p.register(x, classExpr, deps, func() (any, bool) {
					e, ok := p.objProp(prop)
					if !ok {
						return nil, false
					}
					var c owl.ClassExpression
					if qualified {
						c, ok = p.class(on)
						if !ok {
							return nil, false
						}
					}
					return object(e, card, c), true
				})
			case p.isDataProperty(prop):
				var deps []rdf.Term
				var on rdf.Term
				if qualified {
					on, ok = p.index.object(x, store.IRI(vocab.OWLOnDataRange))
					if !ok {
						return
					}
					deps = append(deps, on)
				}
				p.register(x, classExpr, deps, func() (any, bool) {
					e, ok := p.dataProp(prop)
					if !ok {
						return nil, false
					}
					var r owl.Datarange
					if qualified {
						r, ok = p.datarange(on)
						if !ok {
							return nil, false
						}
					}
					return data(e, card, r), true
				})
			}
		},
	}
}

// facet returns the facet restriction held by the blank node n.
func (p *parser) facet(n rdf.Term) (owl.FacetRestriction, bool) {
	for _, s := range p.facts.Match(&rdf.Statement{Subject: n}) {
		if s.Predicate.Value == rdfType.Value {
			continue
		}
		facet, ok := store.IRIText(s.Predicate)
		if !ok {
			return owl.FacetRestriction{}, false
		}
		l, ok := p.literal(s.Object)
		if !ok {
			return owl.FacetRestriction{}, false
		}
		return owl.FacetRestriction{Facet: owl.IRI(facet), Value: l}, true
	}
	return owl.FacetRestriction{}, false
}
