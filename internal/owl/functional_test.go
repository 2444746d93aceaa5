// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package owl

import (
	"strings"
	"testing"

	"github.com/kortschak/owlrdf/internal/vocab"
)

const ex = "http://example.org/"

var sprintTests = []struct {
	name string
	v    any
	want string
}{
	{
		name: "declaration",
		v:    Declaration{Kind: ObjectPropertyEntity, Entity: ex + "p"},
		want: "Declaration(ObjectProperty(<http://example.org/p>))",
	},
	{
		name: "subclass restriction",
		v: SubClassOf{
			Class: IRI(ex + "A"),
			Super: ObjectSomeValuesFrom{Property: IRI(ex + "p"), Class: IRI(ex + "B")},
		},
		want: "SubClassOf(<http://example.org/A> ObjectSomeValuesFrom(<http://example.org/p> <http://example.org/B>))",
	},
	{
		name: "unqualified cardinality",
		v: SubClassOf{
			Class: IRI(ex + "A"),
			Super: ObjectMinCardinality{Property: IRI(ex + "p"), Cardinality: NonNegativeInteger(2)},
		},
		want: `SubClassOf(<http://example.org/A> ObjectMinCardinality("2"^^<` + vocab.XSDNonNegativeInteger + `> <http://example.org/p>))`,
	},
	{
		name: "sequence order",
		v: EquivalentClasses{Classes: Sequence[ClassExpression]{
			{Index: 1, Value: IRI(ex + "B")},
			{Index: 0, Value: IRI(ex + "A")},
		}},
		want: "EquivalentClasses(<http://example.org/A> <http://example.org/B>)",
	},
	{
		name: "annotated",
		v: ClassAssertion{
			Annotated: Annotated{Annotations: []Annotation{
				{Property: vocab.RDFSComment, Value: String("asserted")},
			}},
			Class:      IRI(ex + "A"),
			Individual: IRI(ex + "i"),
		},
		want: `ClassAssertion(Annotation(<` + vocab.RDFSComment + `> "asserted") <http://example.org/A> <http://example.org/i>)`,
	},
	{
		name: "language literal",
		v: DataPropertyAssertion{
			Property:   IRI(ex + "name"),
			Individual: AnonymousIndividual{NodeID: "b1"},
			Value:      Literal{Lexical: "chat", Lang: "fr"},
		},
		want: `DataPropertyAssertion(<http://example.org/name> _:b1 "chat"@fr)`,
	},
	{
		name: "chain",
		v: SubObjectPropertyOf{
			Chain: Seq[ObjectPropertyExpression](IRI(ex+"p"), ObjectInverseOf{Property: IRI(ex + "q")}),
			Super: IRI(ex + "r"),
		},
		want: "SubObjectPropertyOf(ObjectPropertyChain(<http://example.org/p> ObjectInverseOf(<http://example.org/q>)) <http://example.org/r>)",
	},
	{
		name: "has key",
		v: HasKey{
			Class:          IRI(ex + "A"),
			DataProperties: Seq[DataPropertyExpression](IRI(ex + "id")),
		},
		want: "HasKey(<http://example.org/A> () (<http://example.org/id>))",
	},
	{
		name: "one of",
		v: DataPropertyRange{
			Property: IRI(ex + "colour"),
			Range:    DataOneOf{Literals: Seq[LiteralExpression](String("red"), String("green"))},
		},
		want: `DataPropertyRange(<http://example.org/colour> DataOneOf("red" "green"))`,
	},
	{
		name: "variable",
		v:    ClassAssertion{Class: IRI(ex + "A"), Individual: Variable("x")},
		want: "ClassAssertion(<http://example.org/A> ?x)",
	},
}

func TestSprint(t *testing.T) {
	for _, test := range sprintTests {
		got := Sprint(test.v)
		if got != test.want {
			t.Errorf("unexpected rendering for %s:\ngot: %s\nwant:%s", test.name, got, test.want)
		}
	}
}

func TestPrinterCompact(t *testing.T) {
	p := Printer{Compact: func(iri string) (string, bool) {
		if !strings.HasPrefix(iri, ex) || iri == ex {
			return iri, false
		}
		return "ex:" + strings.TrimPrefix(iri, ex), true
	}}
	got := p.Sprint(SubClassOf{Class: IRI(ex + "A"), Super: IRI("http://example.com/B")})
	want := "SubClassOf(ex:A <http://example.com/B>)"
	if got != want {
		t.Errorf("unexpected compact rendering:\ngot: %s\nwant:%s", got, want)
	}
}

func TestSeqValues(t *testing.T) {
	if Seq[IRI]() != nil {
		t.Error("expected nil empty sequence")
	}
	s := Sequence[IRI]{{Index: 2, Value: "c"}, {Index: 0, Value: "a"}, {Index: 2, Value: "d"}, {Index: 1, Value: "b"}}
	got := s.Values()
	want := []IRI{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("unexpected number of values: got:%d want:%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unexpected value at %d: got:%s want:%s", i, got[i], want[i])
		}
	}
}
