// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/translate"
	"github.com/kortschak/owlrdf/internal/vocab"
)

const ex = "http://example.org/"

var (
	A = owl.IRI(ex + "A")
	B = owl.IRI(ex + "B")
	P = owl.IRI(ex + "P")

	i1 = owl.IRI(ex + "i1")
	i2 = owl.IRI(ex + "i2")
	i3 = owl.IRI(ex + "i3")

	x = owl.Variable("x")
	y = owl.Variable("y")
)

var sortBindings = cmpopts.SortSlices(func(a, b Bindings) bool {
	return fmt.Sprint(a) < fmt.Sprint(b)
})

var executeTests = []struct {
	name  string
	facts []owl.Axiom
	query Query
	want  []Bindings
}{
	{
		name: "class assertion",
		facts: []owl.Axiom{
			owl.ClassAssertion{Class: A, Individual: i1},
		},
		query: Query{
			Positives: []owl.Axiom{owl.ClassAssertion{Class: A, Individual: x}},
		},
		want: []Bindings{{x: i1}},
	},
	{
		name: "negative conjunction",
		facts: []owl.Axiom{
			owl.ClassAssertion{Class: A, Individual: i1},
			owl.ClassAssertion{Class: A, Individual: i2},
			owl.ClassAssertion{Class: B, Individual: i2},
		},
		query: Query{
			Positives: []owl.Axiom{owl.ClassAssertion{Class: A, Individual: x}},
			Negatives: [][]owl.Axiom{{owl.ClassAssertion{Class: B, Individual: x}}},
		},
		want: []Bindings{{x: i1}},
	},
	{
		name: "shared variables",
		facts: []owl.Axiom{
			owl.Declaration{Kind: owl.ObjectPropertyEntity, Entity: P},
			owl.ObjectPropertyAssertion{Property: P, Individual: i1, Value: i2},
			owl.ObjectPropertyAssertion{Property: P, Individual: i1, Value: i3},
			owl.ClassAssertion{Class: B, Individual: i3},
		},
		query: Query{
			Positives: []owl.Axiom{
				owl.ObjectPropertyAssertion{Property: P, Individual: x, Value: y},
				owl.ClassAssertion{Class: B, Individual: y},
			},
		},
		want: []Bindings{{x: i1, y: i3}},
	},
	{
		name: "expression pattern",
		facts: []owl.Axiom{
			owl.SubClassOf{Class: A, Super: owl.ObjectSomeValuesFrom{Property: P, Class: B}},
			owl.SubClassOf{Class: B, Super: owl.ObjectSomeValuesFrom{Property: P, Class: A}},
		},
		query: Query{
			Positives: []owl.Axiom{
				owl.SubClassOf{Class: x, Super: owl.ObjectSomeValuesFrom{Property: P, Class: B}},
			},
		},
		want: []Bindings{{x: A}},
	},
	{
		name: "literal value",
		facts: []owl.Axiom{
			owl.DataPropertyAssertion{
				Property:   owl.IRI(ex + "d"),
				Individual: i1,
				Value:      owl.Literal{Lexical: "5", Datatype: vocab.XSDInteger},
			},
		},
		query: Query{
			Positives: []owl.Axiom{
				owl.DataPropertyAssertion{Property: owl.IRI(ex + "d"), Individual: i1, Value: y},
			},
		},
		want: []Bindings{{y: owl.Literal{Lexical: "5", Datatype: vocab.XSDInteger}}},
	},
	{
		name: "no solution",
		facts: []owl.Axiom{
			owl.ClassAssertion{Class: A, Individual: i1},
		},
		query: Query{
			Positives: []owl.Axiom{owl.ClassAssertion{Class: B, Individual: x}},
		},
		want: []Bindings{},
	},
}

func TestExecute(t *testing.T) {
	for _, test := range executeTests {
		t.Run(test.name, func(t *testing.T) {
			ds := store.NewDataset()
			addAxioms(t, ds, store.IRI(ex+"g"), test.facts)
			got, err := New(ds).Execute(test.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !cmp.Equal(got, test.want, sortBindings) {
				t.Errorf("unexpected solutions:\n%s", cmp.Diff(test.want, got, sortBindings))
			}
		})
	}
}

func TestExecuteGraph(t *testing.T) {
	ds := store.NewDataset()
	addAxioms(t, ds, store.IRI(ex+"g1"), []owl.Axiom{owl.ClassAssertion{Class: A, Individual: i1}})
	addAxioms(t, ds, store.IRI(ex+"g2"), []owl.Axiom{owl.ClassAssertion{Class: A, Individual: i2}})

	e := New(ds)
	q := Query{Positives: []owl.Axiom{owl.ClassAssertion{Class: A, Individual: x}}}
	got, err := e.Execute(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Bindings{{x: i1}, {x: i2}}
	if !cmp.Equal(got, want, sortBindings) {
		t.Errorf("unexpected solutions in any graph:\n%s", cmp.Diff(want, got, sortBindings))
	}

	q.Graph = store.IRI(ex + "g2")
	got, err = e.Execute(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []Bindings{{x: i2}}
	if !cmp.Equal(got, want, sortBindings) {
		t.Errorf("unexpected solutions in named graph:\n%s", cmp.Diff(want, got, sortBindings))
	}
}

func TestExecuteLive(t *testing.T) {
	ds := store.NewDataset()
	g := store.IRI(ex + "g")
	addAxioms(t, ds, g, []owl.Axiom{owl.ClassAssertion{Class: A, Individual: i1}})

	e := NewRDFEngine(ds)
	q := Query{Positives: []owl.Axiom{owl.ClassAssertion{Class: A, Individual: x}}}
	got, err := NewWith(e).Execute(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected number of solutions: got:%d want:1", len(got))
	}

	addAxioms(t, ds, g, []owl.Axiom{owl.ClassAssertion{Class: A, Individual: i2}})
	got, err = NewWith(e).Execute(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Bindings{{x: i1}, {x: i2}}
	if !cmp.Equal(got, want, sortBindings) {
		t.Errorf("unexpected solutions after addition:\n%s", cmp.Diff(want, got, sortBindings))
	}
	if len(e.cache) != 1 {
		t.Errorf("unexpected number of cached queries: got:%d want:1", len(e.cache))
	}
	if e.cache[0].hits != 2 {
		t.Errorf("unexpected hit count: got:%d want:2", e.cache[0].hits)
	}

	ds.Remove(ds.Match(&rdf.Statement{Subject: store.IRI(string(i1))})...)
	rq := RDFQuery{Positives: []*rdf.Statement{
		store.Quad(store.Variable("v0"), store.IRI(vocab.RDFType), store.IRI(string(A)), rdf.Term{}),
	}}
	status, ok := e.MatchStatus(rq)
	if !ok {
		t.Fatal("expected cached query")
	}
	if len(status) != 1 {
		t.Fatalf("unexpected number of matches after removal: got:%d want:1", len(status))
	}
	if v, _ := status[0].Get("v0"); v.Value != "<"+string(i2)+">" {
		t.Errorf("unexpected binding: got:%s want:<%s>", v.Value, i2)
	}
}

type unnamed struct{}

func (unnamed) Name() (owl.IRI, bool) { return "", false }

func TestExecuteUnnamed(t *testing.T) {
	_, err := New(store.NewDataset()).Execute(Query{
		Positives: []owl.Axiom{owl.ClassAssertion{Class: owl.Runtime{Entity: unnamed{}}, Individual: x}},
	})
	if !errors.Is(err, translate.ErrUnnamedEntity) {
		t.Errorf("unexpected error: got:%v want:%v", err, translate.ErrUnnamedEntity)
	}
}

func TestValue(t *testing.T) {
	for _, test := range []struct {
		term rdf.Term
		want any
	}{
		{term: store.IRI(ex + "i"), want: owl.IRI(ex + "i")},
		{term: rdf.Term{Value: "_:b1"}, want: owl.AnonymousIndividual{NodeID: "b1"}},
		{term: rdf.Term{Value: `"v"`}, want: owl.String("v")},
		{term: rdf.Term{Value: `"v"@en`}, want: owl.Literal{Lexical: "v", Lang: "en"}},
		{term: rdf.Term{Value: `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`}, want: owl.Literal{Lexical: "1", Datatype: vocab.XSDInteger}},
	} {
		got, ok := Value(test.term)
		if !ok {
			t.Errorf("unexpected failure for %s", test.term.Value)
			continue
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("unexpected value for %s:\n%s", test.term.Value, cmp.Diff(test.want, got))
		}
	}
}

func addAxioms(t *testing.T, ds *store.Dataset, g rdf.Term, axioms []owl.Axiom) {
	t.Helper()
	quads, err := translate.New(nil, &ds.Nodes).Translate(axioms, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ds.Add(quads...)
}
