// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/kortschak/gogo"
)

// marshalDOT returns the DOT rendering of the class hierarchy g with
// IRIs compacted by compact. Superclasses are drawn above their
// subclasses and class assertions are dashed.
func marshalDOT(g *gogo.Graph, compact func(string) (string, bool)) ([]byte, error) {
	return dot.MarshalMulti(&hierarchyView{Graph: g, compact: compact}, "hierarchy", "", "\t")
}

// hierarchyView presents a class hierarchy to the DOT encoder with
// classes and individuals labelled by their compacted IRIs.
type hierarchyView struct {
	*gogo.Graph

	compact func(string) (string, bool)
}

func (h *hierarchyView) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attributes{{Key: "rankdir", Value: "BT"}}, attributes{{Key: "shape", Value: "box"}}, attributes{}
}

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

func (h *hierarchyView) Nodes() graph.Nodes {
	return h.labelled(h.Graph.Nodes())
}

func (h *hierarchyView) From(uid int64) graph.Nodes {
	return h.labelled(h.Graph.From(uid))
}

// labelled returns the entities of it as labelled DOT nodes.
func (h *hierarchyView) labelled(it graph.Nodes) graph.Nodes {
	var entities []graph.Node
	for it.Next() {
		entities = append(entities, entity{Term: it.Node().(rdf.Term), name: h.name})
	}
	if len(entities) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(entities)
}

func (h *hierarchyView) Lines(uid, vid int64) graph.Lines {
	it := h.Graph.Lines(uid, vid)
	edges := make([]graph.Line, 0, it.Len())
	for it.Next() {
		s := it.Line().(*rdf.Statement)
		e := relation{Statement: s}
		if s.Predicate.Value == rdfType {
			e.attrs = []encoding.Attribute{
				{Key: "label", Value: "a"},
				{Key: "style", Value: "dashed"},
			}
		} else {
			e.attrs = []encoding.Attribute{{Key: "label", Value: h.name(s.Predicate)}}
		}
		edges = append(edges, e)
	}
	return iterator.NewOrderedLines(edges)
}

// name returns the compacted text of the IRI term t.
func (h *hierarchyView) name(t rdf.Term) string {
	text, _, kind, err := t.Parts()
	if err != nil || kind != rdf.IRI {
		return t.Value
	}
	if h.compact != nil {
		if name, ok := h.compact(text); ok {
			return name
		}
	}
	return text
}

// entity is a class or individual of the hierarchy, identified in DOT
// by its term and labelled by its compacted IRI.
type entity struct {
	rdf.Term

	name func(rdf.Term) string
}

func (e entity) DOTID() string { return e.Term.Value }
func (e entity) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: e.name(e.Term)}}
}

// relation is a subclass or class assertion edge, pointing from the
// subclass or individual to the class.
type relation struct {
	*rdf.Statement
	attrs []encoding.Attribute
}

func (r relation) From() graph.Node                 { return r.Subject }
func (r relation) To() graph.Node                   { return r.Object }
func (r relation) Attributes() []encoding.Attribute { return r.attrs }
