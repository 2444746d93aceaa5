// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rete

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/store"
)

// Token is a set of variable bindings.
type Token struct {
	names  []string
	values []rdf.Term
}

// NewToken returns a token holding the given bindings, keyed by
// variable name.
func NewToken(bindings map[string]rdf.Term) Token {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]rdf.Term, len(names))
	for i, name := range names {
		values[i] = bindings[name]
	}
	return Token{names: names, values: values}
}

// Get returns the term bound to the named variable.
func (t Token) Get(name string) (rdf.Term, bool) {
	i := sort.SearchStrings(t.names, name)
	if i < len(t.names) && t.names[i] == name {
		return t.values[i], true
	}
	return rdf.Term{}, false
}

// Names returns the bound variable names in lexical order.
func (t Token) Names() []string {
	return t.names
}

// Len returns the number of bindings in t.
func (t Token) Len() int {
	return len(t.names)
}

// Key returns a string identifying the bindings of t.
func (t Token) Key() string {
	var buf strings.Builder
	for i, name := range t.names {
		buf.WriteString(name)
		buf.WriteByte('=')
		buf.WriteString(t.values[i].Value)
		buf.WriteByte(0)
	}
	return buf.String()
}

// Substitute returns a copy of the pattern with bound variables
// replaced by their values.
func (t Token) Substitute(pattern *rdf.Statement) *rdf.Statement {
	return substitute(pattern, t.Get)
}

type binding map[string]rdf.Term

func (b binding) substitute(pattern *rdf.Statement) *rdf.Statement {
	return substitute(pattern, func(name string) (rdf.Term, bool) {
		v, ok := b[name]
		return v, ok
	})
}

func substitute(pattern *rdf.Statement, lookup func(string) (rdf.Term, bool)) *rdf.Statement {
	sub := func(term rdf.Term) rdf.Term {
		name, ok := store.VariableName(term)
		if !ok {
			return term
		}
		if v, ok := lookup(name); ok {
			return v
		}
		return term
	}
	return &rdf.Statement{
		Subject:   sub(pattern.Subject),
		Predicate: sub(pattern.Predicate),
		Object:    sub(pattern.Object),
		Label:     sub(pattern.Label),
	}
}

// unify extends b so that pattern matches s. It returns false if
// the two conflict.
func (b binding) unify(pattern, s *rdf.Statement) (binding, bool) {
	var ext binding
	pairs := [4][2]rdf.Term{
		{pattern.Subject, s.Subject},
		{pattern.Predicate, s.Predicate},
		{pattern.Object, s.Object},
		{pattern.Label, s.Label},
	}
	for _, pair := range pairs {
		p, t := pair[0], pair[1]
		name, ok := store.VariableName(p)
		if !ok {
			if !store.IsWildcard(p) && p.Value != t.Value {
				return nil, false
			}
			continue
		}
		if v, ok := b[name]; ok {
			if v.Value != t.Value {
				return nil, false
			}
			continue
		}
		if v, ok := ext[name]; ok {
			if v.Value != t.Value {
				return nil, false
			}
			continue
		}
		if ext == nil {
			ext = make(binding, len(b)+2)
			for k, v := range b {
				ext[k] = v
			}
		}
		ext[name] = rdf.Term{Value: t.Value}
	}
	if ext == nil {
		return b, true
	}
	return ext, true
}

// solve calls emit for each extension of b satisfying the patterns.
// It returns false if emit requested that the search stop.
func solve(facts Matcher, patterns []*rdf.Statement, b binding, emit func(binding) bool) bool {
	if len(patterns) == 0 {
		return emit(b)
	}
	p := patterns[0]
	for _, s := range facts.Match(b.substitute(p)) {
		nb, ok := b.unify(p, s)
		if !ok {
			continue
		}
		if !solve(facts, patterns[1:], nb, emit) {
			return false
		}
	}
	return true
}

// holds returns whether the conjunction of patterns has a solution
// extending b.
func holds(facts Matcher, patterns []*rdf.Statement, b binding) bool {
	found := false
	solve(facts, patterns, b, func(binding) bool {
		found = true
		return false
	})
	return found
}

// Evaluate returns the distinct bindings of the variables of positives
// that satisfy every positive pattern and none of the negative
// conjunctions. Variables that only occur in a negative conjunction are
// existentially quantified within it. Tokens are returned in the order
// they are found, which follows the order of the facts in the Matcher.
func Evaluate(facts Matcher, positives []*rdf.Statement, negatives [][]*rdf.Statement) []Token {
	var tokens []Token
	seen := make(map[string]bool)
	solve(facts, positives, binding{}, func(b binding) bool {
		for _, g := range negatives {
			if holds(facts, g, b) {
				return true
			}
		}
		t := NewToken(b)
		k := t.Key()
		if !seen[k] {
			seen[k] = true
			tokens = append(tokens, t)
		}
		return true
	})
	return tokens
}
