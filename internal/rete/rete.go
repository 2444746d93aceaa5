// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rete implements incremental matching of conjunctive quad
// patterns with negated conjunctions.
//
// A Rule is a set of positive patterns that must jointly match and a set
// of negative conjunctions none of which may jointly match under the same
// bindings. The Network keeps the current matches of each of its rules
// and reports matches as they appear and disappear when facts are
// injected into it. Evaluation is synchronous: an injection returns after
// every resulting activation and deactivation has been delivered.
//
// A Network is not safe for concurrent use.
package rete // import "github.com/kortschak/owlrdf/internal/rete"

import (
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/store"
)

// Matcher is a source of facts.
type Matcher interface {
	// Match returns the facts matching the pattern. Wildcard and
	// variable terms in the pattern match any term.
	Match(pattern *rdf.Statement) []*rdf.Statement
}

// Activable receives the matches of a rule.
type Activable interface {
	// Activate is called when a new match is found.
	Activate(Token)
	// Deactivate is called when a previous match no longer holds.
	Deactivate(Token)
}

// Rule is a conjunction of positive patterns and negative conjunctions.
// Pattern terms may be variables, see store.Variable, and wildcards.
type Rule struct {
	Positives []*rdf.Statement
	Negatives [][]*rdf.Statement

	// Output receives the matches of the rule.
	Output Activable

	current []Token
	keys    map[string]bool
}

// Network holds a set of rules matched against a Matcher.
type Network struct {
	facts Matcher
	rules []*Rule
}

// NewNetwork returns a Network matching rules against facts.
// The network must be told about changes to the facts with
// InjectPositives and InjectNegatives after they have been
// applied to facts.
func NewNetwork(facts Matcher) *Network {
	return &Network{facts: facts}
}

// AddRule adds r to the network and activates the matches that
// already hold.
func (n *Network) AddRule(r *Rule) {
	n.rules = append(n.rules, r)
	r.current = nil
	r.keys = make(map[string]bool)
	n.update(r)
}

// RemoveRule removes r from the network. The matches of r are dropped
// without being deactivated.
func (n *Network) RemoveRule(r *Rule) {
	for i, e := range n.rules {
		if e == r {
			n.rules = append(n.rules[:i], n.rules[i+1:]...)
			break
		}
	}
	r.current = nil
	r.keys = nil
}

// Rules returns the rules of the network in the order they were added.
func (n *Network) Rules() []*Rule {
	return n.rules
}

// InjectPositives notifies the network that quads have been added
// to its facts.
func (n *Network) InjectPositives(quads []*rdf.Statement) {
	n.inject(quads)
}

// InjectNegatives notifies the network that quads have been removed
// from its facts.
func (n *Network) InjectNegatives(quads []*rdf.Statement) {
	n.inject(quads)
}

func (n *Network) inject(quads []*rdf.Statement) {
	if len(quads) == 0 {
		return
	}
	// Activations may add rules, so iterate over a snapshot.
	rules := append([]*Rule(nil), n.rules...)
	for _, r := range rules {
		if r.keys == nil || !concerns(r, quads) {
			continue
		}
		n.update(r)
	}
}

// update re-evaluates r and reports the difference from its previous
// matches.
func (n *Network) update(r *Rule) {
	next := Evaluate(n.facts, r.Positives, r.Negatives)
	keys := make(map[string]bool, len(next))
	for _, t := range next {
		keys[t.Key()] = true
	}
	prev := r.current
	prevKeys := r.keys
	r.current = next
	r.keys = keys
	if r.Output == nil {
		return
	}
	for _, t := range prev {
		if !keys[t.Key()] {
			r.Output.Deactivate(t)
		}
	}
	for _, t := range next {
		if !prevKeys[t.Key()] {
			r.Output.Activate(t)
		}
	}
}

// Matches returns the current matches of r.
func (r *Rule) Matches() []Token {
	return r.current
}

// concerns returns whether any of the quads could match a pattern of r.
func concerns(r *Rule, quads []*rdf.Statement) bool {
	for _, q := range quads {
		for _, p := range r.Positives {
			if couldMatch(p, q) {
				return true
			}
		}
		for _, g := range r.Negatives {
			for _, p := range g {
				if couldMatch(p, q) {
					return true
				}
			}
		}
	}
	return false
}

func couldMatch(pattern, q *rdf.Statement) bool {
	return fixedMatch(pattern.Subject, q.Subject) &&
		fixedMatch(pattern.Predicate, q.Predicate) &&
		fixedMatch(pattern.Object, q.Object) &&
		fixedMatch(pattern.Label, q.Label)
}

func fixedMatch(p, t rdf.Term) bool {
	return store.IsWildcard(p) || store.IsVariable(p) || p.Value == t.Value
}
