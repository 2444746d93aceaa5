// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"fmt"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
)

// Context maps OWL query variables to the RDF variables standing for
// them. A Context is shared by all the translations whose variables
// must be identified, for example the antecedents and consequents
// of a rule.
type Context struct {
	vars  map[owl.Variable]rdf.Term
	back  map[string]owl.Variable
	order []owl.Variable
}

// NewContext returns an empty translation context.
func NewContext() *Context {
	return &Context{
		vars: make(map[owl.Variable]rdf.Term),
		back: make(map[string]owl.Variable),
	}
}

// Resolve returns the RDF variable for v, allocating one on first use.
func (c *Context) Resolve(v owl.Variable) rdf.Term {
	if t, ok := c.vars[v]; ok {
		return t
	}
	name := fmt.Sprintf("v%d", len(c.order))
	t := store.Variable(name)
	c.vars[v] = t
	c.back[name] = v
	c.order = append(c.order, v)
	return t
}

// Lookup returns the OWL variable represented by the RDF variable with
// the given name.
func (c *Context) Lookup(name string) (owl.Variable, bool) {
	v, ok := c.back[name]
	return v, ok
}

// Variables returns the OWL variables resolved in c, in the order of
// their first resolution. Each is paired with the name of its RDF
// variable.
func (c *Context) Variables() []Mapping {
	m := make([]Mapping, len(c.order))
	for i, v := range c.order {
		name, _ := store.VariableName(c.vars[v])
		m[i] = Mapping{Variable: v, Name: name}
	}
	return m
}

// Mapping pairs an OWL variable with the name of its RDF variable.
type Mapping struct {
	Variable owl.Variable
	Name     string
}
