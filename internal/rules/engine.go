// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules implements forward chaining rule engines over a quad
// store.
//
// An Engine matches the antecedents of RDF rules against a Dataset and
// applies the changes described by their consequents. Each execution of
// a rule is recorded, so that when its match stops holding the changes
// it made are undone. An OWLEngine registers rules expressed as OWL2
// axiom patterns with an Engine.
package rules // import "github.com/kortschak/owlrdf/internal/rules"

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
)

// DefaultGraph is the prefix of the IRIs of graphs minted by the rule
// engines.
const DefaultGraph = "http://xowl.org/infra/store/rdf#default"

// NewGraph returns a fresh graph IRI term.
func NewGraph() rdf.Term {
	return store.IRI(DefaultGraph + "/" + uuid.NewString())
}

// Rule is an RDF rule. Pattern terms may be variables. Variables
// of the consequent that are not bound by the antecedent stand for
// a fresh node for each execution of the rule, a blank node or, in
// graph position, a fresh graph IRI.
type Rule struct {
	IRI string

	Antecedent Antecedent
	Consequent Consequent
}

// Antecedent is the condition of a rule. Each negative group is a
// conjunction that must not hold.
type Antecedent struct {
	SourcePositives []*rdf.Statement
	MetaPositives   []*rdf.Statement
	SourceNegatives [][]*rdf.Statement
	MetaNegatives   [][]*rdf.Statement
}

// Consequent is the effect of a rule. Positive quads are added to the
// store and negative quads are removed from it.
type Consequent struct {
	TargetPositives []*rdf.Statement
	MetaPositives   []*rdf.Statement
	TargetNegatives []*rdf.Statement
	MetaNegatives   []*rdf.Statement
}

// Engine is an RDF rule engine. Changes to the Dataset are buffered by
// the Engine and processed by Flush.
type Engine struct {
	ds  *store.Dataset
	log *slog.Logger

	mu       sync.Mutex
	net      *rete.Network
	rules    []*registered
	fire     []activation
	unfire   []activation
	executed map[execKey]*execution
	order    []execKey

	flushing atomic.Bool

	bufMu   sync.Mutex
	added   []*rdf.Statement
	removed []*rdf.Statement
}

// registered is a rule held by an Engine.
type registered struct {
	e    *Engine
	rule *Rule
	rete *rete.Rule
}

type activation struct {
	r     *registered
	token rete.Token
}

type execKey struct {
	r   *registered
	key string
}

// execution is the record of a rule firing.
type execution struct {
	r         *registered
	token     rete.Token
	changeset store.Changeset
}

// NewEngine returns an Engine applying rules to ds. If log is nil
// slog.Default is used.
func NewEngine(ds *store.Dataset, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		ds:       ds,
		log:      log,
		net:      rete.NewNetwork(ds),
		executed: make(map[execKey]*execution),
	}
	ds.AddListener(e)
	return e
}

// Add registers r with the engine. Matches of r that already hold are
// fired by the next call to Flush.
func (e *Engine) Add(r *Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	reg := &registered{e: e, rule: r}
	reg.rete = &rete.Rule{
		Positives: append(append([]*rdf.Statement(nil), r.Antecedent.SourcePositives...), r.Antecedent.MetaPositives...),
		Negatives: append(append([][]*rdf.Statement(nil), r.Antecedent.SourceNegatives...), r.Antecedent.MetaNegatives...),
		Output:    reg,
	}
	e.rules = append(e.rules, reg)
	e.net.AddRule(reg.rete)
}

// Remove removes the rule with the given IRI from the engine and
// reports whether it was found. The changes made by the executions of
// the rule are undone by the next call to Flush.
func (e *Engine) Remove(iri string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, reg := range e.rules {
		if reg.rule.IRI != iri {
			continue
		}
		e.net.RemoveRule(reg.rete)
		e.rules = append(e.rules[:i], e.rules[i+1:]...)
		e.fire = dropRule(e.fire, reg)
		for _, k := range e.order {
			if k.r == reg {
				e.unfire = append(e.unfire, activation{r: reg, token: e.executed[k].token})
			}
		}
		return true
	}
	return false
}

func dropRule(acts []activation, r *registered) []activation {
	n := 0
	for _, a := range acts {
		if a.r != r {
			acts[n] = a
			n++
		}
	}
	return acts[:n]
}

// Rules returns the rules registered with the engine.
func (e *Engine) Rules() []*Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	rules := make([]*Rule, len(e.rules))
	for i, reg := range e.rules {
		rules[i] = reg.rule
	}
	return rules
}

// MatchStatus returns the current matches of the antecedent of the rule
// with the given IRI, and whether the rule is registered.
func (e *Engine) MatchStatus(iri string) ([]rete.Token, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, reg := range e.rules {
		if reg.rule.IRI == iri {
			return append([]rete.Token(nil), reg.rete.Matches()...), true
		}
	}
	return nil, false
}

// Activate implements rete.Activable.
func (r *registered) Activate(t rete.Token) {
	r.e.fire = append(r.e.fire, activation{r: r, token: t})
}

// Deactivate implements rete.Activable.
func (r *registered) Deactivate(t rete.Token) {
	k := t.Key()
	for i, a := range r.e.fire {
		if a.r == r && a.token.Key() == k {
			// Not yet fired.
			r.e.fire = append(r.e.fire[:i], r.e.fire[i+1:]...)
			return
		}
	}
	r.e.unfire = append(r.e.unfire, activation{r: r, token: t})
}

// OnChange implements store.Listener.
func (e *Engine) OnChange(added, removed []*rdf.Statement) {
	e.bufMu.Lock()
	e.added = append(e.added, added...)
	e.removed = append(e.removed, removed...)
	e.bufMu.Unlock()
}

// Flush processes the changes to the Dataset since the last call,
// firing and unfiring rules until no further change results. A call
// to Flush made while flushing returns immediately.
func (e *Engine) Flush() {
	if !e.flushing.CompareAndSwap(false, true) {
		return
	}
	defer e.flushing.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	for {
		e.inject()
		var c store.Changeset
		e.performUnfire(&c)
		e.performFire(&c)
		if c.IsEmpty() {
			return
		}
		e.ds.Apply(c)
	}
}

// inject passes the buffered changes to the rete network.
func (e *Engine) inject() {
	e.bufMu.Lock()
	added, removed := e.added, e.removed
	e.added, e.removed = nil, nil
	e.bufMu.Unlock()
	e.net.InjectPositives(added)
	e.net.InjectNegatives(removed)
}

func (e *Engine) performUnfire(c *store.Changeset) {
	reqs := e.unfire
	e.unfire = nil
	for _, a := range reqs {
		k := execKey{r: a.r, key: a.token.Key()}
		x, ok := e.executed[k]
		if !ok {
			continue
		}
		delete(e.executed, k)
		for i, o := range e.order {
			if o == k {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
		rev := x.changeset.Reverse()
		c.Added = append(c.Added, rev.Added...)
		c.Removed = append(c.Removed, rev.Removed...)
	}
}

func (e *Engine) performFire(c *store.Changeset) {
	reqs := e.fire
	e.fire = nil
	for _, a := range reqs {
		cs, err := e.produce(a.r.rule, a.token)
		if err != nil {
			e.log.Warn("cannot produce changeset", "rule", a.r.rule.IRI, "token", a.token.Key(), "err", err)
			continue
		}
		k := execKey{r: a.r, key: a.token.Key()}
		if _, ok := e.executed[k]; !ok {
			e.order = append(e.order, k)
		}
		e.executed[k] = &execution{r: a.r, token: a.token, changeset: cs}
		c.Added = append(c.Added, cs.Added...)
		c.Removed = append(c.Removed, cs.Removed...)
	}
}

// errInvalidQuad is the cause of a failure to produce a consequent quad.
var errInvalidQuad = errors.New("invalid quad")

// produce returns the changeset of the consequent of r under the
// bindings of t.
func (e *Engine) produce(r *Rule, t rete.Token) (store.Changeset, error) {
	fresh := make(map[string]rdf.Term)
	var c store.Changeset
	for _, part := range []struct {
		dst      *[]*rdf.Statement
		patterns []*rdf.Statement
	}{
		{dst: &c.Added, patterns: r.Consequent.TargetPositives},
		{dst: &c.Added, patterns: r.Consequent.MetaPositives},
		{dst: &c.Removed, patterns: r.Consequent.TargetNegatives},
		{dst: &c.Removed, patterns: r.Consequent.MetaNegatives},
	} {
		for _, p := range part.patterns {
			q, err := e.instantiate(t.Substitute(p), fresh)
			if err != nil {
				return store.Changeset{}, err
			}
			*part.dst = append(*part.dst, q)
		}
	}
	return c, nil
}

// instantiate replaces the unbound variables of q by fresh nodes and
// checks that the result is a valid quad.
func (e *Engine) instantiate(q *rdf.Statement, fresh map[string]rdf.Term) (*rdf.Statement, error) {
	node := func(t rdf.Term, graph bool) rdf.Term {
		name, ok := store.VariableName(t)
		if !ok {
			return t
		}
		if v, ok := fresh[name]; ok {
			return v
		}
		var v rdf.Term
		if graph {
			v = NewGraph()
		} else {
			v = e.ds.Blank()
		}
		fresh[name] = v
		return v
	}
	q = &rdf.Statement{
		Subject:   node(q.Subject, false),
		Predicate: node(q.Predicate, false),
		Object:    node(q.Object, false),
		Label:     node(q.Label, true),
	}
	switch {
	case !store.IsIRI(q.Subject) && !store.IsBlank(q.Subject):
		return nil, fmt.Errorf("%w: subject %q", errInvalidQuad, q.Subject.Value)
	case !store.IsIRI(q.Predicate):
		return nil, fmt.Errorf("%w: predicate %q", errInvalidQuad, q.Predicate.Value)
	case store.IsWildcard(q.Object):
		return nil, fmt.Errorf("%w: missing object", errInvalidQuad)
	case !store.IsIRI(q.Label):
		return nil, fmt.Errorf("%w: graph %q", errInvalidQuad, q.Label.Value)
	}
	return q, nil
}
