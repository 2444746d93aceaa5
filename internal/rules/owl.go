// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"log/slog"
	"sync"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/query"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/translate"
)

// OWLRule is a rule over OWL2 axiom patterns.
type OWLRule struct {
	IRI string

	Antecedents []Assertion
	Consequents []Assertion
}

// Assertion is a conjunction of axiom patterns. A negative antecedent
// assertion must not hold for the rule to match, and the axioms of a
// negative consequent assertion are retracted by the rule. Meta
// assertions are matched and produced in the meta graph of the rule.
type Assertion struct {
	Axioms   []owl.Axiom
	Negative bool
	Meta     bool
}

// OWLEngine registers OWL rules with an Engine.
type OWLEngine struct {
	backend *Engine
	log     *slog.Logger

	mu    sync.Mutex
	ctxts map[string]*translate.Context
	nodes store.Nodes
}

// sourceGraph is the name of the variable matching any source graph.
const sourceGraph = "graph"

// NewOWLEngine returns an OWLEngine registering rules with backend.
// If log is nil slog.Default is used.
func NewOWLEngine(backend *Engine, log *slog.Logger) *OWLEngine {
	if log == nil {
		log = slog.Default()
	}
	return &OWLEngine{backend: backend, log: log, ctxts: make(map[string]*translate.Context)}
}

// Backend returns the RDF engine of e.
func (e *OWLEngine) Backend() *Engine {
	return e.backend
}

// Add translates r and registers it. The antecedent is matched in the
// source graph and the consequent is produced in the target graph; meta
// assertions use the meta graph. An empty source matches every graph,
// and an empty target or meta is replaced by a fresh graph.
//
// If a part of the antecedent cannot be translated, r is not registered
// and the error is returned. Failures to translate a part of the
// consequent are logged and the rule is registered with the parts that
// were translated.
func (e *OWLEngine) Add(r *OWLRule, source, target, meta owl.IRI) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	src := store.Variable(sourceGraph)
	if source != "" {
		src = store.IRI(string(source))
	}
	tgt := NewGraph()
	if target != "" {
		tgt = store.IRI(string(target))
	}
	mg := NewGraph()
	if meta != "" {
		mg = store.IRI(string(meta))
	}

	tr := translate.New(nil, &e.nodes)
	convert := func(part string, axioms []owl.Axiom, graph rdf.Term) ([]*rdf.Statement, error) {
		if len(axioms) == 0 {
			return nil, nil
		}
		quads, err := tr.Translate(axioms, graph)
		if err != nil {
			e.log.Error("cannot translate rule", "rule", r.IRI, "part", part, "graph", graph.Value, "err", err)
			return patterns(quads), fmt.Errorf("rule %s: %s: %w", r.IRI, part, err)
		}
		return patterns(quads), nil
	}

	rule := &Rule{IRI: r.IRI}
	var posNormal, posMeta []owl.Axiom
	for _, a := range r.Antecedents {
		switch {
		case !a.Negative && !a.Meta:
			posNormal = append(posNormal, a.Axioms...)
		case !a.Negative && a.Meta:
			posMeta = append(posMeta, a.Axioms...)
		case a.Negative && !a.Meta:
			q, err := convert("antecedent source negative", a.Axioms, src)
			if err != nil {
				return err
			}
			if len(q) != 0 {
				rule.Antecedent.SourceNegatives = append(rule.Antecedent.SourceNegatives, q)
			}
		default:
			q, err := convert("antecedent meta negative", a.Axioms, mg)
			if err != nil {
				return err
			}
			if len(q) != 0 {
				rule.Antecedent.MetaNegatives = append(rule.Antecedent.MetaNegatives, q)
			}
		}
	}
	var err error
	rule.Antecedent.SourcePositives, err = convert("antecedent source positive", posNormal, src)
	if err != nil {
		return err
	}
	rule.Antecedent.MetaPositives, err = convert("antecedent meta positive", posMeta, mg)
	if err != nil {
		return err
	}

	// Consequent parts degrade to what could be translated.
	posNormal, posMeta = nil, nil
	for _, a := range r.Consequents {
		switch {
		case !a.Negative && !a.Meta:
			posNormal = append(posNormal, a.Axioms...)
		case !a.Negative && a.Meta:
			posMeta = append(posMeta, a.Axioms...)
		case a.Negative && !a.Meta:
			q, _ := convert("consequent target negative", a.Axioms, tgt)
			rule.Consequent.TargetNegatives = append(rule.Consequent.TargetNegatives, q...)
		default:
			q, _ := convert("consequent meta negative", a.Axioms, mg)
			rule.Consequent.MetaNegatives = append(rule.Consequent.MetaNegatives, q...)
		}
	}
	rule.Consequent.TargetPositives, _ = convert("consequent target positive", posNormal, tgt)
	rule.Consequent.MetaPositives, _ = convert("consequent meta positive", posMeta, mg)

	e.ctxts[r.IRI] = tr.Context()
	e.backend.Add(rule)
	return nil
}

// patterns returns the quads with blank nodes replaced by variables.
func patterns(quads []*rdf.Statement) []*rdf.Statement {
	if len(quads) == 0 {
		return nil
	}
	return translate.Patterns(quads)
}

// Remove removes the rule with the given IRI and reports whether it
// was registered.
func (e *OWLEngine) Remove(iri string) bool {
	e.mu.Lock()
	delete(e.ctxts, iri)
	e.mu.Unlock()
	return e.backend.Remove(iri)
}

// Flush flushes the backend engine.
func (e *OWLEngine) Flush() {
	e.backend.Flush()
}

// MatchStatus returns the bindings of the OWL variables of the current
// matches of the rule with the given IRI, and whether the rule is
// registered.
func (e *OWLEngine) MatchStatus(iri string) ([]query.Bindings, bool) {
	e.mu.Lock()
	ctx, ok := e.ctxts[iri]
	e.mu.Unlock()
	if !ok {
		return nil, false
	}
	tokens, ok := e.backend.MatchStatus(iri)
	if !ok {
		return nil, false
	}
	b := make([]query.Bindings, len(tokens))
	for i, t := range tokens {
		b[i] = query.Solution(ctx, t)
	}
	return b, true
}
