// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kortschak/owlrdf/internal/rdfio"
)

// config is the YAML configuration of a run. Values given on the
// command line take precedence.
type config struct {
	// Prefixes holds prefix bindings used to compact
	// IRIs in output, in addition to the rdf, rdfs, owl
	// and xsd bindings.
	Prefixes map[string]string `yaml:"prefixes"`

	// Graph is the graph IRI to parse. Quads in the
	// default graph of the input are placed in it. If
	// Graph is empty, every graph is parsed.
	Graph string `yaml:"graph"`

	// Format is the input concrete syntax.
	Format string `yaml:"format"`

	// Output is the output mode, "functional" or the
	// name of an RDF concrete syntax.
	Output string `yaml:"output"`
}

func loadConfig(path string) (*config, error) {
	var cfg config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(b, &cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	prefixes := make(map[string]string, len(rdfio.Standard)+len(cfg.Prefixes))
	for p, iri := range rdfio.Standard {
		prefixes[p] = iri
	}
	for p, iri := range cfg.Prefixes {
		prefixes[p] = iri
	}
	cfg.Prefixes = prefixes
	if cfg.Output == "" {
		cfg.Output = "functional"
	}
	return &cfg, nil
}
