// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// Listener is notified of the quads that appear in or disappear from
// a Dataset. Listeners are called after the change has been applied and
// without any Dataset lock held, so they may modify the Dataset.
type Listener interface {
	OnChange(added, removed []*rdf.Statement)
}

// Changeset is a set of quads to add to and remove from a Dataset.
type Changeset struct {
	Added   []*rdf.Statement
	Removed []*rdf.Statement
}

// IsEmpty returns whether the changeset holds no change.
func (c Changeset) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Reverse returns the changeset undoing c.
func (c Changeset) Reverse() Changeset {
	return Changeset{Added: c.Removed, Removed: c.Added}
}

// Dataset is an in-memory set of quads. Each quad has a multiplicity;
// a quad is present while its multiplicity is positive. Adding a present
// quad increments the multiplicity and removing it decrements it, and
// listeners only see the transitions between absent and present.
//
// Statements returned by a Dataset are shared and must not be modified.
type Dataset struct {
	Nodes

	mu          sync.RWMutex
	seq         int64
	quads       map[Key]*entry
	byPredicate map[string]map[Key]*entry
	listeners   []Listener
}

type entry struct {
	stmt  *rdf.Statement
	count int
	seq   int64
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{
		quads:       make(map[Key]*entry),
		byPredicate: make(map[string]map[Key]*entry),
	}
}

// AddListener registers l to be notified of changes to ds.
func (ds *Dataset) AddListener(l Listener) {
	ds.mu.Lock()
	ds.listeners = append(ds.listeners, l)
	ds.mu.Unlock()
}

// RemoveListener unregisters l.
func (ds *Dataset) RemoveListener(l Listener) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	for i, e := range ds.listeners {
		if e == l {
			ds.listeners = append(ds.listeners[:i], ds.listeners[i+1:]...)
			return
		}
	}
}

// Add adds the quads to ds and returns the quads that were not
// present before the call.
func (ds *Dataset) Add(quads ...*rdf.Statement) []*rdf.Statement {
	added, _ := ds.Apply(Changeset{Added: quads})
	return added
}

// Remove removes the quads from ds and returns the quads that are
// no longer present after the call.
func (ds *Dataset) Remove(quads ...*rdf.Statement) []*rdf.Statement {
	_, removed := ds.Apply(Changeset{Removed: quads})
	return removed
}

// Apply applies the changeset c to ds, removals first, and notifies the
// listeners once with the quads that appeared and disappeared.
func (ds *Dataset) Apply(c Changeset) (added, removed []*rdf.Statement) {
	ds.mu.Lock()
	for _, s := range c.Removed {
		if ds.decrement(s) {
			removed = append(removed, s)
		}
	}
	for _, s := range c.Added {
		if stmt, ok := ds.increment(s); ok {
			added = append(added, stmt)
		}
	}
	listeners := ds.listeners
	ds.mu.Unlock()

	if len(added) == 0 && len(removed) == 0 {
		return nil, nil
	}
	for _, l := range listeners {
		l.OnChange(added, removed)
	}
	return added, removed
}

func (ds *Dataset) increment(s *rdf.Statement) (*rdf.Statement, bool) {
	k := KeyOf(s)
	e, ok := ds.quads[k]
	if ok {
		e.count++
		return e.stmt, false
	}
	ds.seq++
	e = &entry{stmt: clean(s), count: 1, seq: ds.seq}
	ds.quads[k] = e
	idx, ok := ds.byPredicate[k[1]]
	if !ok {
		idx = make(map[Key]*entry)
		ds.byPredicate[k[1]] = idx
	}
	idx[k] = e
	return e.stmt, true
}

func (ds *Dataset) decrement(s *rdf.Statement) bool {
	k := KeyOf(s)
	e, ok := ds.quads[k]
	if !ok {
		return false
	}
	e.count--
	if e.count > 0 {
		return false
	}
	delete(ds.quads, k)
	idx := ds.byPredicate[k[1]]
	delete(idx, k)
	if len(idx) == 0 {
		delete(ds.byPredicate, k[1])
	}
	return true
}

// clean returns a copy of s without term UIDs.
func clean(s *rdf.Statement) *rdf.Statement {
	return &rdf.Statement{
		Subject:   rdf.Term{Value: s.Subject.Value},
		Predicate: rdf.Term{Value: s.Predicate.Value},
		Object:    rdf.Term{Value: s.Object.Value},
		Label:     rdf.Term{Value: s.Label.Value},
	}
}

// Contains returns whether the quad s is present in ds.
func (ds *Dataset) Contains(s *rdf.Statement) bool {
	ds.mu.RLock()
	_, ok := ds.quads[KeyOf(s)]
	ds.mu.RUnlock()
	return ok
}

// Multiplicity returns the number of times the quad s has been added
// to ds without being removed.
func (ds *Dataset) Multiplicity(s *rdf.Statement) int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	e, ok := ds.quads[KeyOf(s)]
	if !ok {
		return 0
	}
	return e.count
}

// Len returns the number of distinct quads in ds.
func (ds *Dataset) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.quads)
}

// All returns all the quads in ds in insertion order.
func (ds *Dataset) All() []*rdf.Statement {
	return ds.Match(&rdf.Statement{})
}

// Match returns the quads of ds matching pattern in insertion order.
// Wildcard and variable terms of the pattern match any term. Repeated
// variables are not required to match the same term; that is left
// to the caller.
func (ds *Dataset) Match(pattern *rdf.Statement) []*rdf.Statement {
	ds.mu.RLock()
	var candidates map[Key]*entry
	if isFixed(pattern.Predicate) {
		candidates = ds.byPredicate[pattern.Predicate.Value]
	} else {
		candidates = ds.quads
	}
	var found []*entry
	for _, e := range candidates {
		if matches(pattern, e.stmt) {
			found = append(found, e)
		}
	}
	ds.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	quads := make([]*rdf.Statement, len(found))
	for i, e := range found {
		quads[i] = e.stmt
	}
	return quads
}

func isFixed(t rdf.Term) bool {
	return !IsWildcard(t) && !IsVariable(t)
}

func matches(pattern, s *rdf.Statement) bool {
	return termMatches(pattern.Subject, s.Subject) &&
		termMatches(pattern.Predicate, s.Predicate) &&
		termMatches(pattern.Object, s.Object) &&
		termMatches(pattern.Label, s.Label)
}

func termMatches(pattern, t rdf.Term) bool {
	return !isFixed(pattern) || pattern.Value == t.Value
}
