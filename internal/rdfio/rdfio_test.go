// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rdfio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/diff"
	"github.com/pkg/diff/write"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/parse"
)

const ex = "http://example.org/family#"

func TestDecode(t *testing.T) {
	got := decodeFile(t, "testdata/family.ttl", nil)

	f, err := os.Open("testdata/family.nt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	want, err := readNQuads(f)
	if err != nil {
		t.Fatalf("failed to read golden data: %v", err)
	}

	if len(got) != len(want) {
		t.Errorf("unexpected number of statements: got:%d want:%d", len(got), len(want))
	}
	compareCanonical(t, "family.ttl", got, want)
}

func TestDecodeUIDs(t *testing.T) {
	got := decodeFile(t, "testdata/family.ttl", nil)
	ids := make(map[string]int64)
	for _, s := range got {
		for _, term := range []rdf.Term{s.Subject, s.Predicate, s.Object} {
			if term.UID < 1 {
				t.Errorf("unexpected term UID for %s: %d", term.Value, term.UID)
			}
			id, ok := ids[term.Value]
			if ok && id != term.UID {
				t.Errorf("inconsistent UID for %s: %d != %d", term.Value, id, term.UID)
			}
			ids[term.Value] = term.UID
		}
	}
	values := make(map[int64]string)
	for v, id := range ids {
		if other, ok := values[id]; ok {
			t.Errorf("UID %d shared by %s and %s", id, v, other)
		}
		values[id] = v
	}
}

func TestDecodeGraphs(t *testing.T) {
	g1, err := rdf.NewIRITerm(ex + "g1")
	if err != nil {
		t.Fatal(err)
	}
	def, err := rdf.NewIRITerm(ex + "default")
	if err != nil {
		t.Fatal(err)
	}

	dec := decoderFor(t, "testdata/graphs.trig")
	dec.Graph = def
	f, err := os.Open("testdata/graphs.trig")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := dec.Decode(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labels := make(map[string]string)
	for _, s := range got {
		labels[s.Subject.Value] = s.Label.Value
	}
	want := map[string]string{
		"<" + ex + "alice>": g1.Value,
		"<" + ex + "bob>":   "<" + ex + "g2>",
		"<" + ex + "carol>": def.Value,
	}
	if !cmp.Equal(labels, want) {
		t.Errorf("unexpected graph labels:\n%s", cmp.Diff(want, labels))
	}
}

func TestDecodeBlankScope(t *testing.T) {
	dec := decoderFor(t, "testdata/family.ttl")
	var blanks []map[string]bool
	for i := 0; i < 2; i++ {
		f, err := os.Open("testdata/family.ttl")
		if err != nil {
			t.Fatal(err)
		}
		got, err := dec.Decode(context.Background(), f)
		f.Close()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b := make(map[string]bool)
		for _, s := range got {
			if strings.HasPrefix(s.Subject.Value, "_:") {
				b[s.Subject.Value] = true
			}
		}
		if len(b) == 0 {
			t.Fatalf("expected blank nodes in document %d", i)
		}
		blanks = append(blanks, b)
	}
	for n := range blanks[1] {
		if blanks[0][n] {
			t.Errorf("blank node %s shared between documents", n)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path    string
		name    string
		want    string
		wantErr bool
	}{
		{path: "a.ttl", want: "turtle"},
		{path: "a.nq", want: "nquads"},
		{path: "a.trig", want: "trig"},
		{path: "a.rdf", want: "rdfxml"},
		{path: "a.ttl", name: "nt", want: "ntriples"},
		{path: "a.txt", name: "json-ld", want: "jsonld"},
		{path: "a.txt", wantErr: true},
		{path: "a.ttl", name: "owl-functional", wantErr: true},
	}
	for _, test := range tests {
		got, err := Format(test.path, test.name)
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for path=%q name=%q: %v", test.path, test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("unexpected format for path=%q name=%q: got:%q want:%q", test.path, test.name, got, test.want)
		}
	}
}

func TestCompact(t *testing.T) {
	dec := NewDecoder("turtle", nil)
	dec.SetNamespaces(map[string]string{
		"ex":  "http://example.org/",
		"fam": ex,
		"xsd": "http://www.w3.org/2001/XMLSchema#",
	})

	tests := []struct {
		iri  string
		want string
		ok   bool
	}{
		{iri: ex + "Person", want: "fam:Person", ok: true},
		{iri: "http://example.org/other", want: "ex:other", ok: true},
		{iri: ex, want: ex, ok: false},
		{iri: "http://example.com/x", want: "http://example.com/x", ok: false},
	}
	for _, test := range tests {
		got, ok := dec.Compact(test.iri)
		if got != test.want || ok != test.ok {
			t.Errorf("unexpected compaction of %s: got:(%s, %t) want:(%s, %t)", test.iri, got, ok, test.want, test.ok)
		}
	}

	lit, err := rdf.NewLiteralTerm("42", "http://www.w3.org/2001/XMLSchema#integer")
	if err != nil {
		t.Fatal(err)
	}
	lit.UID = 7
	got, err := dec.CompactTerm(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != `"42"^^<xsd:integer>` || got.UID != 7 {
		t.Errorf("unexpected compacted literal: got:%s (%d)", got.Value, got.UID)
	}

	p := owl.Printer{Compact: dec.Compact}
	if got, want := p.Sprint(owl.IRI(ex+"Person")), "fam:Person"; got != want {
		t.Errorf("unexpected printed IRI: got:%s want:%s", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := decodeFile(t, "testdata/graphs.trig", nil)

	for _, format := range []string{"nquads", "trig"} {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, format)
		enc.Prefixes = map[string]string{"fam": ex}
		err := enc.Encode(context.Background(), orig)
		if err != nil {
			t.Errorf("unexpected error encoding %s: %v", format, err)
			continue
		}
		got, err := NewDecoder(format, nil).Decode(context.Background(), &buf)
		if err != nil {
			t.Errorf("unexpected error decoding %s: %v", format, err)
			continue
		}
		compareCanonical(t, format, got, orig)
	}
}

func TestEncodeNamedGraphTriples(t *testing.T) {
	quads := decodeFile(t, "testdata/graphs.trig", nil)
	err := NewEncoder(io.Discard, "ntriples").Encode(context.Background(), quads)
	if err == nil {
		t.Error("expected error encoding named graphs in a triple syntax")
	}
}

func TestDecodeParse(t *testing.T) {
	axioms := parse.Parse(decodeFile(t, "testdata/family.ttl", nil))
	var got []string
	for _, a := range axioms {
		got = append(got, owl.Sprint(a))
	}
	for _, want := range []owl.Axiom{
		owl.SubClassOf{
			Class: owl.IRI(ex + "Parent"),
			Super: owl.ObjectSomeValuesFrom{Property: owl.IRI(ex + "hasChild"), Class: owl.IRI(ex + "Person")},
		},
		owl.ClassAssertion{Class: owl.IRI(ex + "Person"), Individual: owl.IRI(ex + "bob")},
	} {
		w := owl.Sprint(want)
		if !contains(got, w) {
			t.Errorf("missing axiom %s in:\n%s", w, strings.Join(got, "\n"))
		}
	}
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func decoderFor(t *testing.T, path string) *Decoder {
	t.Helper()
	format, err := Format(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewDecoder(format, nil)
}

func decodeFile(t *testing.T, path string, prefixes map[string]string) []*rdf.Statement {
	t.Helper()
	dec := decoderFor(t, path)
	dec.SetNamespaces(prefixes)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	statements, err := dec.Decode(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error decoding %s: %v", path, err)
	}
	return statements
}

func readNQuads(r io.Reader) ([]*rdf.Statement, error) {
	var statements []*rdf.Statement
	dec := rdf.NewDecoder(r)
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err == io.EOF {
				return statements, nil
			}
			return nil, err
		}
		statements = append(statements, s)
	}
}

func compareCanonical(t *testing.T, name string, got, want []*rdf.Statement) {
	t.Helper()
	gotCan, err := rdf.URDNA2015(nil, got)
	if err != nil {
		t.Errorf("error during canonicalisation of %q: %v", name, err)
		return
	}
	wantCan, err := rdf.URDNA2015(nil, want)
	if err != nil {
		t.Errorf("error during golden data canonicalisation for %q: %v", name, err)
		return
	}
	g, w := lines(gotCan), lines(wantCan)
	if g != w {
		var buf bytes.Buffer
		err := diff.Text("got", "want", g, w, &buf, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected canonical graph for %q:\n%s", name, &buf)
	}
}

func lines(statements []*rdf.Statement) string {
	l := make([]string, len(statements))
	for i, s := range statements {
		l[i] = fmt.Sprintln(s)
	}
	sort.Strings(l)
	return strings.Join(l, "")
}
