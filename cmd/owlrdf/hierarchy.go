// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/kortschak/gogo"
	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/vocab"
)

var (
	subClassOf = "<" + vocab.RDFSSubClassOf + ">"
	rdfType    = "<" + vocab.RDFType + ">"
)

// classHierarchy returns the graph of the named subclass and class
// assertion axioms in axioms. Edges run from subclass to superclass
// and from individual to class.
func classHierarchy(axioms []owl.Axiom) *gogo.Graph {
	g := gogo.NewGraph()
	for _, a := range axioms {
		var s, o owl.IRI
		pred := subClassOf
		switch a := a.(type) {
		case owl.SubClassOf:
			sub, ok := a.Class.(owl.IRI)
			if !ok {
				continue
			}
			super, ok := a.Super.(owl.IRI)
			if !ok {
				continue
			}
			s, o = sub, super
		case owl.ClassAssertion:
			class, ok := a.Class.(owl.IRI)
			if !ok {
				continue
			}
			ind, ok := a.Individual.(owl.IRI)
			if !ok {
				continue
			}
			s, o, pred = ind, class, rdfType
		default:
			continue
		}
		g.AddStatement(&rdf.Statement{
			Subject:   rdf.Term{Value: "<" + string(s) + ">"},
			Predicate: rdf.Term{Value: pred},
			Object:    rdf.Term{Value: "<" + string(o) + ">"},
		})
	}
	return g
}

// roots returns the roots of the class hierarchy g in lexical order.
func roots(g *gogo.Graph) []rdf.Term {
	r := g.Roots(false)
	sort.Slice(r, func(i, j int) bool { return r[i].Value < r[j].Value })
	return r
}

// printTree writes each class of the hierarchy g with the root it was
// reached from and its depth below that root.
func printTree(w io.Writer, g *gogo.Graph, p owl.Printer) error {
	var err error
	for _, r := range roots(g) {
		walkSubclasses(g, r, func(root, class rdf.Term, depth int) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "%s\t%s\t%d\n", printTerm(p, class), printTerm(p, root), depth)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// walkSubclasses calls fn for root and every class below it in the
// hierarchy g, in order of increasing depth. Class assertion edges are
// not followed.
func walkSubclasses(g *gogo.Graph, root rdf.Term, fn func(root, class rdf.Term, depth int)) {
	bf := traverse.BreadthFirst{Traverse: subclassEdge}
	bf.Walk(downward{g}, root, func(n graph.Node, depth int) bool {
		fn(root, n.(rdf.Term), depth)
		return false
	})
}

// subclassEdge reports whether e carries an rdfs:subClassOf statement.
func subclassEdge(e graph.Edge) bool {
	return gogo.ConnectedByAny(e, func(s *rdf.Statement) bool {
		return s.Predicate.Value == subClassOf
	})
}

// downward is a view of a class hierarchy with edges running from
// superclass to subclass.
type downward struct {
	*gogo.Graph
}

func (g downward) From(id int64) graph.Nodes      { return g.Graph.To(id) }
func (g downward) Edge(uid, vid int64) graph.Edge { return g.Graph.Edge(vid, uid) }
