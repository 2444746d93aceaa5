// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
)

// Explanation is the derivation of a quad by a rule execution.
type Explanation struct {
	// Rule is the rule that produced the quad.
	Rule *Rule
	// Bindings holds the antecedent match of the execution.
	Bindings rete.Token
	// Produced is the quad added or removed by the execution.
	Produced *rdf.Statement
	// Parents holds the explanations of the antecedent quads
	// that were themselves produced by rules.
	Parents []*Explanation
}

// Explain returns the derivation of q, or nil if q was not produced
// by a current rule execution.
func (e *Engine) Explain(q *rdf.Statement) *Explanation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.explain(store.KeyOf(q), make(map[store.Key]bool))
}

func (e *Engine) explain(k store.Key, seen map[store.Key]bool) *Explanation {
	if seen[k] {
		return nil
	}
	seen[k] = true
	for _, ek := range e.order {
		x := e.executed[ek]
		q, ok := produced(x.changeset, k)
		if !ok {
			continue
		}
		exp := &Explanation{Rule: x.r.rule, Bindings: x.token, Produced: q}
		for _, a := range exp.Antecedents() {
			if p := e.explain(store.KeyOf(a), seen); p != nil {
				exp.Parents = append(exp.Parents, p)
			}
		}
		return exp
	}
	return nil
}

func produced(c store.Changeset, k store.Key) (*rdf.Statement, bool) {
	for _, set := range [][]*rdf.Statement{c.Added, c.Removed} {
		for _, q := range set {
			if store.KeyOf(q) == k {
				return q, true
			}
		}
	}
	return nil, false
}

// Antecedents returns the positive antecedent quads of the execution
// instantiated with its bindings.
func (x *Explanation) Antecedents() []*rdf.Statement {
	var quads []*rdf.Statement
	for _, set := range [][]*rdf.Statement{x.Rule.Antecedent.SourcePositives, x.Rule.Antecedent.MetaPositives} {
		for _, p := range set {
			quads = append(quads, x.Bindings.Substitute(p))
		}
	}
	return quads
}

// WriteTo writes the derivation tree of x to w, parents first.
func (x *Explanation) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, p := range x.Parents {
		c, err := p.WriteTo(w)
		n += c
		if err != nil {
			return n, err
		}
	}
	c, err := fmt.Fprintf(w, "\nrule %s {\n", x.Rule.IRI)
	n += int64(c)
	if err != nil {
		return n, err
	}
	for _, q := range x.Antecedents() {
		c, err = fmt.Fprintf(w, "\t%s\n", q)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	c, err = fmt.Fprintf(w, "} => {\n%s\n}\n", x.Produced)
	n += int64(c)
	return n, err
}
