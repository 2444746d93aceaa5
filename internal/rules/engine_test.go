// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/store"
)

const ex = "http://example.org/"

func iri(s string) rdf.Term { return store.IRI(ex + s) }

func v(name string) rdf.Term { return store.Variable(name) }

func lit(s string) rdf.Term {
	t, err := rdf.NewLiteralTerm(s, "")
	if err != nil {
		panic(err)
	}
	return t
}

// inverse returns a rule deriving ?y q ?x in out from ?x p ?y.
func inverse(name string) *Rule {
	return &Rule{
		IRI: ex + name,
		Antecedent: Antecedent{
			SourcePositives: []*rdf.Statement{store.Quad(v("x"), iri("p"), v("y"), v("g"))},
		},
		Consequent: Consequent{
			TargetPositives: []*rdf.Statement{store.Quad(v("y"), iri("q"), v("x"), iri("out"))},
		},
	}
}

func TestEngineFireUnfire(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(inverse("inverse"))

	fact := store.Quad(iri("a"), iri("p"), iri("b"), iri("g"))
	derived := store.Quad(iri("b"), iri("q"), iri("a"), iri("out"))

	ds.Add(fact)
	if ds.Contains(derived) {
		t.Fatal("unexpected derivation before flush")
	}
	e.Flush()
	if !ds.Contains(derived) {
		t.Fatalf("expected derived quad %s", derived)
	}

	ds.Remove(fact)
	e.Flush()
	if ds.Contains(derived) {
		t.Errorf("unexpected derived quad after retraction of its antecedent %s", derived)
	}
}

func TestEngineExistingFacts(t *testing.T) {
	ds := store.NewDataset()
	ds.Add(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e := NewEngine(ds, nil)
	e.Add(inverse("inverse"))
	e.Flush()
	if !ds.Contains(store.Quad(iri("b"), iri("q"), iri("a"), iri("out"))) {
		t.Error("expected rule to fire on facts present before registration")
	}
}

func TestEngineNegative(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	r := inverse("guarded")
	r.Antecedent.SourceNegatives = [][]*rdf.Statement{
		{store.Quad(v("x"), iri("blocked"), lit("yes"), v("g"))},
	}
	e.Add(r)

	derived := store.Quad(iri("b"), iri("q"), iri("a"), iri("out"))
	block := store.Quad(iri("a"), iri("blocked"), lit("yes"), iri("g"))

	ds.Add(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e.Flush()
	if !ds.Contains(derived) {
		t.Fatal("expected derivation without blocking fact")
	}

	ds.Add(block)
	e.Flush()
	if ds.Contains(derived) {
		t.Error("unexpected derivation with blocking fact")
	}

	ds.Remove(block)
	e.Flush()
	if !ds.Contains(derived) {
		t.Error("expected derivation after removal of blocking fact")
	}
}

func TestEngineConsequentNegative(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(&Rule{
		IRI: ex + "retract",
		Antecedent: Antecedent{
			SourcePositives: []*rdf.Statement{store.Quad(v("x"), iri("obsolete"), lit("yes"), iri("g"))},
		},
		Consequent: Consequent{
			TargetNegatives: []*rdf.Statement{store.Quad(v("x"), iri("status"), lit("active"), iri("g"))},
		},
	})

	status := store.Quad(iri("a"), iri("status"), lit("active"), iri("g"))
	obsolete := store.Quad(iri("a"), iri("obsolete"), lit("yes"), iri("g"))
	ds.Add(status, obsolete)
	e.Flush()
	if ds.Contains(status) {
		t.Fatal("expected retraction of status")
	}

	ds.Remove(obsolete)
	e.Flush()
	if !ds.Contains(status) {
		t.Error("expected status to be restored when the rule no longer matches")
	}
}

func TestEngineChainAndExplain(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(inverse("first"))
	e.Add(&Rule{
		IRI: ex + "second",
		Antecedent: Antecedent{
			SourcePositives: []*rdf.Statement{store.Quad(v("x"), iri("q"), v("y"), iri("out"))},
		},
		Consequent: Consequent{
			TargetPositives: []*rdf.Statement{store.Quad(v("x"), iri("r"), v("y"), iri("out"))},
		},
	})

	ds.Add(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e.Flush()
	final := store.Quad(iri("b"), iri("r"), iri("a"), iri("out"))
	if !ds.Contains(final) {
		t.Fatalf("expected chained derivation %s", final)
	}

	exp := e.Explain(final)
	if exp == nil {
		t.Fatal("expected explanation")
	}
	if exp.Rule.IRI != ex+"second" {
		t.Errorf("unexpected explaining rule: got:%s want:%s", exp.Rule.IRI, ex+"second")
	}
	if len(exp.Parents) != 1 || exp.Parents[0].Rule.IRI != ex+"first" {
		t.Fatalf("unexpected parent explanations: %+v", exp.Parents)
	}
	var buf strings.Builder
	_, err := exp.WriteTo(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"rule " + ex + "first", "rule " + ex + "second", final.String()} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("explanation missing %q:\n%s", want, buf.String())
		}
	}

	if e.Explain(store.Quad(iri("a"), iri("p"), iri("b"), iri("g"))) != nil {
		t.Error("unexpected explanation for asserted quad")
	}
}

func TestEngineRemove(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(inverse("inverse"))
	ds.Add(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e.Flush()

	derived := store.Quad(iri("b"), iri("q"), iri("a"), iri("out"))
	if !ds.Contains(derived) {
		t.Fatal("expected derivation")
	}
	if !e.Remove(ex + "inverse") {
		t.Fatal("expected rule to be found")
	}
	if e.Remove(ex + "inverse") {
		t.Error("unexpected second removal")
	}
	e.Flush()
	if ds.Contains(derived) {
		t.Error("unexpected derivation after rule removal")
	}
	if len(e.Rules()) != 0 {
		t.Errorf("unexpected rules after removal: %d", len(e.Rules()))
	}
}

func TestEngineSupport(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(inverse("inverse"))

	derived := store.Quad(iri("b"), iri("q"), iri("a"), iri("out"))
	ds.Add(derived)
	ds.Add(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e.Flush()
	ds.Remove(store.Quad(iri("a"), iri("p"), iri("b"), iri("g")))
	e.Flush()
	if !ds.Contains(derived) {
		t.Error("expected independently asserted quad to survive unfiring")
	}
}

func TestEngineFreshNodes(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(&Rule{
		IRI: ex + "fresh",
		Antecedent: Antecedent{
			SourcePositives: []*rdf.Statement{store.Quad(v("x"), iri("p"), v("y"), iri("g"))},
		},
		Consequent: Consequent{
			TargetPositives: []*rdf.Statement{
				store.Quad(v("x"), iri("has"), v("n"), v("graph")),
				store.Quad(v("n"), iri("value"), v("y"), v("graph")),
			},
		},
	})
	ds.Add(store.Quad(iri("a"), iri("p"), lit("v"), iri("g")))
	e.Flush()

	has := ds.Match(&rdf.Statement{Predicate: iri("has")})
	if len(has) != 1 {
		t.Fatalf("unexpected number of derived quads: got:%d want:1", len(has))
	}
	n, graph := has[0].Object, has[0].Label
	if !store.IsBlank(n) {
		t.Errorf("expected blank node for unbound variable: got:%s", n.Value)
	}
	if !strings.HasPrefix(graph.Value, "<"+DefaultGraph+"/") {
		t.Errorf("expected minted graph for unbound graph variable: got:%s", graph.Value)
	}
	if !ds.Contains(store.Quad(n, iri("value"), lit("v"), graph)) {
		t.Error("expected fresh nodes to be shared within an execution")
	}
}

func TestEngineInvalidConsequent(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ds := store.NewDataset()
	e := NewEngine(ds, log)
	e.Add(&Rule{
		IRI: ex + "invalid",
		Antecedent: Antecedent{
			SourcePositives: []*rdf.Statement{store.Quad(v("x"), iri("p"), v("y"), iri("g"))},
		},
		Consequent: Consequent{
			TargetPositives: []*rdf.Statement{store.Quad(v("y"), iri("q"), v("x"), iri("out"))},
		},
	})
	ds.Add(store.Quad(iri("a"), iri("p"), lit("v"), iri("g")))
	e.Flush()
	if !strings.Contains(buf.String(), "cannot produce changeset") {
		t.Errorf("expected warning for literal subject, got:\n%s", buf.String())
	}
	if ds.Len() != 1 {
		t.Errorf("unexpected number of quads: got:%d want:1", ds.Len())
	}
}

func TestEngineMatchStatus(t *testing.T) {
	ds := store.NewDataset()
	e := NewEngine(ds, nil)
	e.Add(inverse("inverse"))
	ds.Add(
		store.Quad(iri("a"), iri("p"), iri("b"), iri("g")),
		store.Quad(iri("c"), iri("p"), iri("d"), iri("g")),
	)
	e.Flush()
	tokens, ok := e.MatchStatus(ex + "inverse")
	if !ok {
		t.Fatal("expected registered rule")
	}
	if len(tokens) != 2 {
		t.Errorf("unexpected number of matches: got:%d want:2", len(tokens))
	}
	if _, ok := e.MatchStatus(ex + "missing"); ok {
		t.Error("unexpected status for unregistered rule")
	}
}
