// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/diff"
	"github.com/pkg/diff/write"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

const (
	ex    = "http://example.org/"
	graph = "<http://example.org/g>"
)

var translateTests = []struct {
	name   string
	axioms []owl.Axiom
	want   string
}{
	{
		name: "some values from",
		axioms: []owl.Axiom{
			owl.SubClassOf{
				Class: owl.IRI(ex + "A"),
				Super: owl.ObjectSomeValuesFrom{Property: owl.IRI(ex + "P"), Class: owl.IRI(ex + "B")},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/P> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#someValuesFrom> <http://example.org/B> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:x <http://example.org/g> .
`,
	},
	{
		name: "declaration",
		axioms: []owl.Axiom{
			owl.Declaration{Kind: owl.ClassEntity, Entity: owl.IRI(ex + "A")},
			owl.Declaration{Kind: owl.DataPropertyEntity, Entity: owl.IRI(ex + "d")},
		},
		want: `
<http://example.org/A> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> <http://example.org/g> .
<http://example.org/d> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#DatatypeProperty> <http://example.org/g> .
`,
	},
	{
		name: "binary disjoint classes",
		axioms: []owl.Axiom{
			owl.DisjointClasses{Classes: owl.Seq[owl.ClassExpression](owl.IRI(ex+"A"), owl.IRI(ex+"B"))},
		},
		want: `
<http://example.org/A> <http://www.w3.org/2002/07/owl#disjointWith> <http://example.org/B> <http://example.org/g> .
`,
	},
	{
		name: "nary disjoint classes",
		axioms: []owl.Axiom{
			owl.DisjointClasses{Classes: owl.Seq[owl.ClassExpression](owl.IRI(ex+"A"), owl.IRI(ex+"B"), owl.IRI(ex+"C"))},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#AllDisjointClasses> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#members> _:l1 <http://example.org/g> .
_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://example.org/A> <http://example.org/g> .
_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> _:l2 <http://example.org/g> .
_:l2 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://example.org/B> <http://example.org/g> .
_:l2 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> _:l3 <http://example.org/g> .
_:l3 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://example.org/C> <http://example.org/g> .
_:l3 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> <http://example.org/g> .
`,
	},
	{
		name: "equivalent classes chain",
		axioms: []owl.Axiom{
			owl.EquivalentClasses{Classes: owl.Seq[owl.ClassExpression](owl.IRI(ex+"A"), owl.IRI(ex+"B"), owl.IRI(ex+"C"))},
		},
		want: `
<http://example.org/A> <http://www.w3.org/2002/07/owl#equivalentClass> <http://example.org/B> <http://example.org/g> .
<http://example.org/B> <http://www.w3.org/2002/07/owl#equivalentClass> <http://example.org/C> <http://example.org/g> .
`,
	},
	{
		name: "empty one of",
		axioms: []owl.Axiom{
			owl.EquivalentClasses{Classes: owl.Seq[owl.ClassExpression](owl.IRI(ex+"A"), owl.ObjectOneOf{})},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#oneOf> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2002/07/owl#equivalentClass> _:x <http://example.org/g> .
`,
	},
	{
		name: "qualified cardinality",
		axioms: []owl.Axiom{
			owl.SubClassOf{
				Class: owl.IRI(ex + "A"),
				Super: owl.ObjectMinCardinality{
					Property:    owl.IRI(ex + "P"),
					Cardinality: owl.NonNegativeInteger(2),
					Class:       owl.IRI(ex + "B"),
				},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/P> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#minQualifiedCardinality> "2"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onClass> <http://example.org/B> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:x <http://example.org/g> .
`,
	},
	{
		name: "unqualified data cardinality",
		axioms: []owl.Axiom{
			owl.SubClassOf{
				Class: owl.IRI(ex + "A"),
				Super: owl.DataExactCardinality{
					Property:    owl.IRI(ex + "d"),
					Cardinality: owl.NonNegativeInteger(1),
				},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/d> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#cardinality> "1"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:x <http://example.org/g> .
`,
	},
	{
		name: "has self",
		axioms: []owl.Axiom{
			owl.SubClassOf{
				Class: owl.IRI(ex + "A"),
				Super: owl.ObjectHasSelf{Property: owl.IRI(ex + "P")},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Restriction> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/P> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#hasSelf> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:x <http://example.org/g> .
`,
	},
	{
		name: "datatype restriction",
		axioms: []owl.Axiom{
			owl.DataPropertyRange{
				Property: owl.IRI(ex + "d"),
				Range: owl.DatatypeRestriction{
					Datatype: owl.IRI(vocab.XSDInteger),
					Facets: []owl.FacetRestriction{
						{Facet: owl.IRI(vocab.XSD + "minInclusive"), Value: owl.Literal{Lexical: "0", Datatype: vocab.XSDInteger}},
					},
				},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Datatype> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#onDatatype> <http://www.w3.org/2001/XMLSchema#integer> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#withRestrictions> _:l <http://example.org/g> .
_:l <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> _:f <http://example.org/g> .
_:l <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> <http://example.org/g> .
_:f <http://www.w3.org/2001/XMLSchema#minInclusive> "0"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.org/g> .
<http://example.org/d> <http://www.w3.org/2000/01/rdf-schema#range> _:x <http://example.org/g> .
`,
	},
	{
		name: "annotated axiom",
		axioms: []owl.Axiom{
			owl.SubClassOf{
				Annotated: owl.Annotated{Annotations: []owl.Annotation{
					{Property: vocab.RDFSComment, Value: owl.Literal{Lexical: "note", Lang: "en"}},
				}},
				Class: owl.IRI(ex + "A"),
				Super: owl.IRI(ex + "B"),
			},
		},
		want: `
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/B> <http://example.org/g> .
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Axiom> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#annotatedSource> <http://example.org/A> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#annotatedProperty> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#annotatedTarget> <http://example.org/B> <http://example.org/g> .
_:x <http://www.w3.org/2000/01/rdf-schema#comment> "note"@en <http://example.org/g> .
`,
	},
	{
		name: "negative data property assertion",
		axioms: []owl.Axiom{
			owl.NegativeDataPropertyAssertion{
				Property:   owl.IRI(ex + "age"),
				Individual: owl.IRI(ex + "i"),
				Value:      owl.Literal{Lexical: "5", Datatype: vocab.XSDInteger},
			},
		},
		want: `
_:x <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#NegativePropertyAssertion> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#sourceIndividual> <http://example.org/i> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#assertionProperty> <http://example.org/age> <http://example.org/g> .
_:x <http://www.w3.org/2002/07/owl#targetValue> "5"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.org/g> .
`,
	},
	{
		name: "inverse property assertion",
		axioms: []owl.Axiom{
			owl.ObjectPropertyAssertion{
				Property:   owl.ObjectInverseOf{Property: owl.IRI(ex + "P")},
				Individual: owl.IRI(ex + "i"),
				Value:      owl.IRI(ex + "j"),
			},
		},
		want: `
<http://example.org/j> <http://example.org/P> <http://example.org/i> <http://example.org/g> .
`,
	},
	{
		name: "string literal",
		axioms: []owl.Axiom{
			owl.DataPropertyAssertion{
				Property:   owl.IRI(ex + "name"),
				Individual: owl.IRI(ex + "i"),
				Value:      owl.String("eye"),
			},
		},
		want: `
<http://example.org/i> <http://example.org/name> "eye" <http://example.org/g> .
`,
	},
	{
		name: "has key",
		axioms: []owl.Axiom{
			owl.HasKey{
				Class:            owl.IRI(ex + "A"),
				ObjectProperties: owl.Seq[owl.ObjectPropertyExpression](owl.IRI(ex + "P")),
				DataProperties:   owl.Seq[owl.DataPropertyExpression](owl.IRI(ex + "d")),
			},
		},
		want: `
_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://example.org/P> <http://example.org/g> .
_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> _:l2 <http://example.org/g> .
_:l2 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://example.org/d> <http://example.org/g> .
_:l2 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> <http://example.org/g> .
<http://example.org/A> <http://www.w3.org/2002/07/owl#hasKey> _:l1 <http://example.org/g> .
`,
	},
}

func TestTranslate(t *testing.T) {
	g, err := rdf.NewIRITerm(ex + "g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, test := range translateTests {
		tr := New(nil, &store.Nodes{})
		got, err := tr.Translate(test.axioms, g)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.name, err)
			continue
		}

		gotCan := canonical(t, got)
		wantCan := canonical(t, parseNQuads(t, test.want))
		if gotCan != wantCan {
			var buf bytes.Buffer
			err := diff.Text("got", "want", gotCan, wantCan, &buf, write.TerminalColor())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			t.Errorf("unexpected canonical graph for %q:\n%s", test.name, &buf)
		}
	}
}

func TestTranslateQuadCount(t *testing.T) {
	tr := New(nil, &store.Nodes{})
	got, err := tr.Translate([]owl.Axiom{
		owl.SubClassOf{
			Class: owl.IRI(ex + "A"),
			Super: owl.ObjectSomeValuesFrom{Property: owl.IRI(ex + "P"), Class: owl.IRI(ex + "B")},
		},
	}, store.IRI(ex+"g"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("unexpected number of quads: got:%d want:4", len(got))
	}
	for _, q := range got {
		if q.Label.Value != graph {
			t.Errorf("quad in unexpected graph: %s", q)
		}
	}
}

type unnamed struct{}

func (unnamed) Name() (owl.IRI, bool) { return "", false }

type named string

func (n named) Name() (owl.IRI, bool) { return owl.IRI(n), true }

func TestTranslateUnnamed(t *testing.T) {
	tr := New(nil, &store.Nodes{})
	axioms := []owl.Axiom{
		owl.ClassAssertion{Class: owl.Runtime{Entity: named(ex + "A")}, Individual: owl.IRI(ex + "i")},
		owl.SubClassOf{
			Class: owl.IRI(ex + "B"),
			Super: owl.ObjectSomeValuesFrom{Property: owl.IRI(ex + "P"), Class: owl.Runtime{Entity: unnamed{}}},
		},
		owl.ClassAssertion{Class: owl.IRI(ex + "C"), Individual: owl.IRI(ex + "j")},
	}
	got, err := tr.Translate(axioms, store.IRI(ex+"g"))
	if !errors.Is(err, ErrUnnamedEntity) {
		t.Fatalf("unexpected error: got:%v want:%v", err, ErrUnnamedEntity)
	}
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if terr.Index != 1 {
		t.Errorf("unexpected failing axiom index: got:%d want:1", terr.Index)
	}
	// Only the quads of the first axiom are kept.
	if len(got) != 1 {
		t.Errorf("unexpected number of quads: got:%d want:1\n%s", len(got), statements(got))
	}
}

func TestTranslateInversePredicate(t *testing.T) {
	tr := New(nil, &store.Nodes{})
	_, err := tr.Translate([]owl.Axiom{
		owl.ObjectPropertyAssertion{
			Property:   owl.ObjectInverseOf{Property: owl.ObjectInverseOf{Property: owl.IRI(ex + "P")}},
			Individual: owl.IRI(ex + "i"),
			Value:      owl.IRI(ex + "j"),
		},
	}, store.IRI(ex+"g"))
	if !errors.Is(err, ErrUnnamedEntity) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrUnnamedEntity)
	}
}

func TestTranslateVariables(t *testing.T) {
	ctx := NewContext()
	tr := New(ctx, &store.Nodes{})
	got, err := tr.Translate([]owl.Axiom{
		owl.ClassAssertion{Class: owl.IRI(ex + "A"), Individual: owl.Variable("x")},
		owl.ObjectPropertyAssertion{Property: owl.IRI(ex + "P"), Individual: owl.Variable("x"), Value: owl.Variable("y")},
	}, store.IRI(ex+"g"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"?v0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/A> <http://example.org/g> .",
		"?v0 <http://example.org/P> ?v1 <http://example.org/g> .",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected number of quads: got:%d want:%d", len(got), len(want))
	}
	for i, q := range got {
		if q.String() != want[i] {
			t.Errorf("unexpected quad %d: got:%s want:%s", i, q, want[i])
		}
	}
	for _, m := range ctx.Variables() {
		v, ok := ctx.Lookup(m.Name)
		if !ok || v != m.Variable {
			t.Errorf("unexpected variable mapping for %s: got:%q want:%q", m.Name, v, m.Variable)
		}
	}
}

func TestTranslateOntology(t *testing.T) {
	tr := New(nil, &store.Nodes{})
	o := owl.Ontology{
		IRI: ex + "onto",
		Axioms: []owl.Axiom{
			owl.Declaration{Kind: owl.ClassEntity, Entity: owl.IRI(ex + "A")},
		},
		Annotations: []owl.Annotation{
			{Property: vocab.RDFSLabel, Value: owl.String("example")},
		},
	}
	got, err := tr.TranslateOntology(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"<http://example.org/A> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> <http://example.org/onto> .",
		`<http://example.org/onto> <http://www.w3.org/2000/01/rdf-schema#label> "example" <http://example.org/onto> .`,
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected number of quads: got:%d want:%d", len(got), len(want))
	}
	for i, q := range got {
		if q.String() != want[i] {
			t.Errorf("unexpected quad %d: got:%s want:%s", i, q, want[i])
		}
	}
}

func parseNQuads(t *testing.T, text string) []*rdf.Statement {
	t.Helper()
	var statements []*rdf.Statement
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		s, err := rdf.ParseNQuad(line)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", line, err)
		}
		statements = append(statements, s)
	}
	return statements
}

func canonical(t *testing.T, s []*rdf.Statement) string {
	t.Helper()
	can, err := rdf.URDNA2015(nil, s)
	if err != nil {
		t.Fatalf("error during canonicalisation: %v", err)
	}
	return statements(can)
}

func statements(s []*rdf.Statement) string {
	var buf strings.Builder
	for _, e := range s {
		fmt.Fprintln(&buf, e)
	}
	return buf.String()
}
