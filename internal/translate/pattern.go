// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/store"
)

// BlankPrefix is the prefix of the names of variables standing for
// blank nodes in patterns.
const BlankPrefix = "_"

// Patterns returns copies of quads with every blank node replaced by a
// variable, so that the quads can be matched against a store. The same
// blank node is replaced by the same variable.
func Patterns(quads []*rdf.Statement) []*rdf.Statement {
	p := make([]*rdf.Statement, len(quads))
	for i, q := range quads {
		p[i] = &rdf.Statement{
			Subject:   patternTerm(q.Subject),
			Predicate: patternTerm(q.Predicate),
			Object:    patternTerm(q.Object),
			Label:     patternTerm(q.Label),
		}
	}
	return p
}

func patternTerm(t rdf.Term) rdf.Term {
	if !store.IsBlank(t) {
		return rdf.Term{Value: t.Value}
	}
	return store.Variable(BlankPrefix + strings.TrimPrefix(t.Value, "_:"))
}
