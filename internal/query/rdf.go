// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/owlrdf/internal/rete"
	"github.com/kortschak/owlrdf/internal/store"
)

// Cache eviction parameters. When the cache holds more than
// cacheClearThreshold queries, the least used queries that have been
// hit fewer than cacheDropThreshold times are dropped.
const (
	cacheClearThreshold = 300
	cacheDropThreshold  = 5
)

// RDFQuery is a conjunction of quad patterns and negated conjunctions.
type RDFQuery struct {
	Positives []*rdf.Statement
	Negatives [][]*rdf.Statement
}

// key returns a string identifying the patterns of q.
func (q RDFQuery) key() string {
	var buf strings.Builder
	for _, p := range q.Positives {
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}
	for _, g := range q.Negatives {
		buf.WriteString("NOT\n")
		for _, p := range g {
			buf.WriteString(p.String())
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// RDFEngine evaluates RDFQuery values against a Dataset. Executed
// queries are kept live in a rete network so that repeating a query
// returns its solutions without re-evaluation.
type RDFEngine struct {
	mu    sync.Mutex
	net   *rete.Network
	cache []*cached
}

// cached is a live query.
type cached struct {
	key    string
	rule   *rete.Rule
	tokens []rete.Token
	hits   int
}

func (c *cached) Activate(t rete.Token) {
	c.tokens = append(c.tokens, t)
}

func (c *cached) Deactivate(t rete.Token) {
	k := t.Key()
	for i, e := range c.tokens {
		if e.Key() == k {
			c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
			return
		}
	}
}

// NewRDFEngine returns an RDFEngine querying ds. The engine listens to
// changes in ds to keep its cached solutions current.
func NewRDFEngine(ds *store.Dataset) *RDFEngine {
	e := &RDFEngine{net: rete.NewNetwork(ds)}
	ds.AddListener(e)
	return e
}

// Execute returns the solutions of q.
func (e *RDFEngine) Execute(q RDFQuery) []rete.Token {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := q.key()
	for _, c := range e.cache {
		if c.key == k {
			c.hits++
			sols := append([]rete.Token(nil), c.tokens...)
			sort.SliceStable(e.cache, func(i, j int) bool {
				return e.cache[i].hits > e.cache[j].hits
			})
			return sols
		}
	}

	if len(e.cache) > cacheClearThreshold {
		for i := len(e.cache) - 1; i >= 0; i-- {
			c := e.cache[i]
			if c.hits >= cacheDropThreshold {
				break
			}
			e.net.RemoveRule(c.rule)
			e.cache = e.cache[:i]
		}
	}

	c := &cached{key: k, hits: 1}
	c.rule = &rete.Rule{Positives: q.Positives, Negatives: q.Negatives, Output: c}
	e.cache = append(e.cache, c)
	e.net.AddRule(c.rule)
	return append([]rete.Token(nil), c.tokens...)
}

// MatchStatus returns the current solutions of q if q has been
// executed and is still cached.
func (e *RDFEngine) MatchStatus(q RDFQuery) ([]rete.Token, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	k := q.key()
	for _, c := range e.cache {
		if c.key == k {
			return append([]rete.Token(nil), c.tokens...), true
		}
	}
	return nil, false
}

// OnChange implements store.Listener.
func (e *RDFEngine) OnChange(added, removed []*rdf.Statement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.net.InjectPositives(added)
	e.net.InjectNegatives(removed)
}
