// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// owlrdf reads an RDF document, extracts the OWL2 axioms it encodes and
// prints them in the OWL2 functional-style syntax to stdout.
//
// The input syntax is inferred from the file extension (.ttl, .nt, .nq,
// .trig, .rdf, .jsonld) unless it is given with the -format flag. Input
// files may be gzip compressed, in which case the syntax is inferred
// from the extension preceding .gz.
//
// Alternatively, the extracted axioms can be translated back to RDF and
// written in a concrete syntax, the class hierarchy can be printed as a
// breadth-first walk from its roots or in DOT format, or the individuals
// of a class can be listed.
//
// An optional YAML configuration file may hold the following keys:
//
//  prefixes:
//    ex: http://example.org/
//  graph: http://example.org/graph
//  format: turtle
//  output: functional
//
// Command line flags take precedence over configuration values.
package main

import (
	"compress/gzip"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/parse"
	"github.com/kortschak/owlrdf/internal/query"
	"github.com/kortschak/owlrdf/internal/rdfio"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/translate"
)

func main() {
	var (
		in      = flag.String("in", "", "specify the RDF input file (required)")
		format  = flag.String("format", "", "specify the input syntax (default from file extension)")
		cfgPath = flag.String("config", "", "specify a YAML configuration file")
		graph   = flag.String("graph", "", "specify the graph IRI to parse, holding the default graph of the input (default all graphs)")
		out     = flag.String("out", "", "specify the output: functional or an RDF syntax name (default functional)")
		dotOut  = flag.Bool("dot", false, "print the class hierarchy in DOT format")
		tree    = flag.Bool("tree", false, "print the class hierarchy walked from its roots")
		class   = flag.String("class", "", "print the individuals asserted to be members of the class IRI")
		help    = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s reads an RDF document, extracts the OWL2 axioms it encodes and
prints them in the OWL2 functional-style syntax to stdout.

The input syntax is inferred from the file extension (.ttl, .nt, .nq,
.trig, .rdf, .jsonld) unless it is given with the -format flag. Input
files may be gzip compressed.

With -out set to an RDF syntax name the extracted axioms are translated
back to RDF and written in that syntax. The -tree and -dot flags print
the named class hierarchy, and -class lists the individuals asserted to
be members of a class.

An optional YAML configuration file may hold prefixes, graph, format and
output keys. Command line flags take precedence over configuration values.

Copyright ©2021 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "graph":
			cfg.Graph = *graph
		case "out":
			cfg.Output = *out
		}
	})

	var label rdf.Term
	if cfg.Graph != "" {
		label, err = rdf.NewIRITerm(cfg.Graph)
		if err != nil {
			log.Fatalf("invalid graph IRI: %v", err)
		}
	}

	log.Println("[loading RDF data]")
	dec, quads, err := load(*in, cfg.Format, label, cfg.Prefixes)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *in, err)
	}
	ds := store.NewDataset()
	ds.Add(quads...)

	log.Println("[extracting axioms]")
	var axioms []owl.Axiom
	if label.Value != "" {
		axioms = parse.ParseGraph(ds, label)
	} else {
		axioms = parse.Parse(quads)
	}
	log.Printf("[extracted %d axioms from %d quads]", len(axioms), len(quads))

	p := owl.Printer{Compact: dec.Compact}
	switch {
	case *class != "":
		err = printMembers(os.Stdout, ds, owl.IRI(*class), label, p)
	case *tree:
		err = printTree(os.Stdout, classHierarchy(axioms), p)
	case *dotOut:
		var b []byte
		b, err = marshalDOT(classHierarchy(axioms), dec.Compact)
		if err == nil {
			_, err = fmt.Printf("%s\n", b)
		}
	case cfg.Output == "functional":
		err = printAxioms(os.Stdout, axioms, p)
	default:
		err = writeRDF(os.Stdout, axioms, label, cfg)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// load returns the unique quads in the file at path and the decoder
// used to read them.
func load(path, format string, label rdf.Term, prefixes map[string]string) (*rdfio.Decoder, []*rdf.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		defer gz.Close()
		r = gz
		path = strings.TrimSuffix(path, ".gz")
	}

	format, err = rdfio.Format(path, format)
	if err != nil {
		return nil, nil, err
	}
	dec := rdfio.NewDecoder(format, nil)
	dec.Graph = label
	dec.SetNamespaces(prefixes)
	quads, err := dec.Decode(context.Background(), r)
	return dec, quads, err
}

// printAxioms writes the functional-style rendering of axioms to w in
// lexical order.
func printAxioms(w io.Writer, axioms []owl.Axiom, p owl.Printer) error {
	lines := make([]string, len(axioms))
	for i, a := range axioms {
		lines[i] = p.Sprint(a)
	}
	sort.Strings(lines)
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeRDF translates axioms into the graph label and writes them in
// the configured output syntax.
func writeRDF(w io.Writer, axioms []owl.Axiom, label rdf.Term, cfg *config) error {
	format, err := rdfio.Format("", cfg.Output)
	if err != nil {
		return err
	}
	quads, err := translate.New(nil, &store.Nodes{}).Translate(axioms, label)
	if err != nil {
		return err
	}
	enc := rdfio.NewEncoder(w, format)
	enc.Prefixes = cfg.Prefixes
	return enc.Encode(context.Background(), quads)
}

// printMembers writes the individuals of class in graph to w.
func printMembers(w io.Writer, ds *store.Dataset, class owl.IRI, graph rdf.Term, p owl.Printer) error {
	x := owl.Variable("x")
	sols, err := query.New(ds).Execute(query.Query{
		Positives: []owl.Axiom{owl.ClassAssertion{Class: class, Individual: x}},
		Graph:     graph,
	})
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(sols))
	for _, b := range sols {
		lines = append(lines, p.Sprint(b[x]))
	}
	sort.Strings(lines)
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		if err != nil {
			return err
		}
	}
	return nil
}

func printTerm(p owl.Printer, t rdf.Term) string {
	v, ok := query.Value(t)
	if !ok {
		return t.Value
	}
	return p.Sprint(v)
}
