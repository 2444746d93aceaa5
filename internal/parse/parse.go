// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse reconstructs OWL2 axioms from RDF quads.
//
// Parsing is rule driven. Each rule is a conjunction of quad patterns
// matched by a rete network over the input quads. Rules recognising
// compound expressions run first and register the expression for their
// blank node. Once every registered expression has been resolved in
// dependency order, the rules recognising axioms run and dereference the
// expressions they refer to.
//
// Parsing is best effort: shapes that cannot be interpreted, including
// cyclic expressions and restrictions on properties of unknown type,
// are ignored.
package parse // import "github.com/kortschak/owlrdf/internal/parse"

import (
	"sort"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
)

// Priorities of the parsing rules. Expressions are reconstructed
// before the axioms that refer to them.
const (
	expressionPriority = 1
	axiomPriority      = 2
)

// Parse returns the axioms represented by quads, regardless of the
// graph they belong to.
func Parse(quads []*rdf.Statement) []owl.Axiom {
	p := newParser(quads)
	return p.run()
}

// ParseGraph returns the axioms represented by the quads of the named
// graph in ds.
func ParseGraph(ds *store.Dataset, graph rdf.Term) []owl.Axiom {
	return Parse(ds.Match(&rdf.Statement{Label: graph}))
}

// rule is a parsing rule. The patterns of a rule match quads in any graph.
type rule struct {
	name     string
	priority int
	patterns []*rdf.Statement
	activate func(p *parser, t rete.Token)
}

type trigger struct {
	rule  *rule
	token rete.Token
}

// collector queues the matches of a rule for later execution.
type collector struct {
	p    *parser
	rule *rule
}

func (c collector) Activate(t rete.Token) {
	c.p.triggers = append(c.p.triggers, trigger{rule: c.rule, token: t})
}

func (c collector) Deactivate(rete.Token) {}

// parser holds the state of a single parse.
type parser struct {
	quads []*rdf.Statement
	facts *store.Dataset
	index *index

	triggers []trigger

	// pending holds the expression records in registration
	// order; records indexes them by node.
	pending []*record
	records map[string]*record

	classes  map[string]owl.ClassExpression
	ranges   map[string]owl.Datarange
	inverses map[string]owl.ObjectPropertyExpression

	axioms []owl.Axiom
}

func newParser(quads []*rdf.Statement) *parser {
	return &parser{
		quads:    quads,
		facts:    store.NewDataset(),
		index:    newIndex(quads),
		records:  make(map[string]*record),
		classes:  make(map[string]owl.ClassExpression),
		ranges:   make(map[string]owl.Datarange),
		inverses: make(map[string]owl.ObjectPropertyExpression),
	}
}

func (p *parser) run() []owl.Axiom {
	net := rete.NewNetwork(p.facts)
	for _, r := range rules {
		net.AddRule(&rete.Rule{Positives: r.patterns, Output: collector{p: p, rule: r}})
	}
	net.InjectPositives(p.facts.Add(p.quads...))

	sort.SliceStable(p.triggers, func(i, j int) bool {
		return p.triggers[i].rule.priority < p.triggers[j].rule.priority
	})
	resolved := false
	for _, t := range p.triggers {
		if t.rule.priority > expressionPriority && !resolved {
			p.resolve()
			resolved = true
		}
		t.rule.activate(p, t.token)
	}
	if !resolved {
		p.resolve()
	}
	return p.axioms
}

// add appends a to the parsed axioms.
func (p *parser) add(a owl.Axiom) {
	p.axioms = append(p.axioms, a)
}

// rules is the complete set of parsing rules.
var rules = append(expressionRules(), axiomRules()...)

// pattern returns a quad pattern matching in any graph. Terms starting
// with '?' are variables, all others are IRIs.
func pattern(s, p, o string) *rdf.Statement {
	return &rdf.Statement{Subject: patternTerm(s), Predicate: patternTerm(p), Object: patternTerm(o)}
}

func patternTerm(t string) rdf.Term {
	if len(t) != 0 && t[0] == '?' {
		return store.Variable(t[1:])
	}
	return store.IRI(t)
}

func get(t rete.Token, name string) rdf.Term {
	v, _ := t.Get(name)
	return v
}
