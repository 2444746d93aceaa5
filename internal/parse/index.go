// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"

	"github.com/kortschak/owlrdf/internal/owl"
	"github.com/kortschak/owlrdf/internal/store"
	"github.com/kortschak/owlrdf/internal/vocab"
)

var (
	rdfType  = store.IRI(vocab.RDFType)
	rdfFirst = store.IRI(vocab.RDFFirst)
	rdfRest  = store.IRI(vocab.RDFRest)
	rdfNil   = store.IRI(vocab.RDFNil)
)

// index is the graph of the parsed quads used to follow the
// structure of expressions from their nodes.
type index struct {
	g *gogo.Graph
}

func newIndex(quads []*rdf.Statement) *index {
	g := gogo.NewGraph()
	for _, q := range quads {
		if !isValid(q) {
			continue
		}
		g.AddStatement(&rdf.Statement{
			Subject:   rdf.Term{Value: q.Subject.Value},
			Predicate: rdf.Term{Value: q.Predicate.Value},
			Object:    rdf.Term{Value: q.Object.Value},
			Label:     rdf.Term{Value: q.Label.Value},
		})
	}
	return &index{g: g}
}

// isValid returns whether s is a valid RDF statement.
func isValid(s *rdf.Statement) bool {
	_, _, kind, err := s.Predicate.Parts()
	if err != nil || kind != rdf.IRI {
		return false
	}
	_, _, kind, err = s.Subject.Parts()
	if err != nil || (kind != rdf.IRI && kind != rdf.Blank) {
		return false
	}
	_, _, kind, err = s.Object.Parts()
	return err == nil && kind != rdf.Invalid
}

// objects returns the objects of the statements with subject s and
// the predicate pred.
func (x *index) objects(s, pred rdf.Term) []rdf.Term {
	from, ok := x.g.TermFor(s.Value)
	if !ok {
		return nil
	}
	return x.g.Query(from).Out(func(st *rdf.Statement) bool {
		return st.Predicate.Value == pred.Value
	}).Unique().Result()
}

// object returns the single object of the statements with subject s
// and the predicate pred.
func (x *index) object(s, pred rdf.Term) (rdf.Term, bool) {
	o := x.objects(s, pred)
	if len(o) != 1 {
		return rdf.Term{}, false
	}
	return o[0], true
}

// isOfType returns whether the statement s rdf:type typ exists.
func (x *index) isOfType(s rdf.Term, typ string) bool {
	for _, t := range x.objects(s, rdfType) {
		if text, ok := store.IRIText(t); ok && text == typ {
			return true
		}
	}
	return false
}

// list returns the elements of the RDF list starting at head in list
// order. It returns false if the list is malformed.
func (x *index) list(head rdf.Term) ([]rdf.Term, bool) {
	var elems []rdf.Term
	seen := make(map[string]bool)
	for n := head; n.Value != rdfNil.Value; {
		if seen[n.Value] {
			return nil, false
		}
		seen[n.Value] = true
		first, ok := x.object(n, rdfFirst)
		if !ok {
			return nil, false
		}
		elems = append(elems, first)
		n, ok = x.object(n, rdfRest)
		if !ok {
			return nil, false
		}
	}
	return elems, true
}

// unorderedList returns the elements of a list holding a set. The
// elements are returned in list order.
func (x *index) unorderedList(head rdf.Term) ([]rdf.Term, bool) {
	return x.list(head)
}

// Property type disambiguation.

func (p *parser) isObjectProperty(t rdf.Term) bool {
	if store.IsBlank(t) {
		_, ok := p.index.object(t, store.IRI(vocab.OWLInverseOf))
		return ok
	}
	for _, typ := range []string{
		vocab.OWLObjectProperty,
		vocab.OWLInverseFunctionalProperty,
		vocab.OWLReflexiveProperty,
		vocab.OWLIrreflexiveProperty,
		vocab.OWLSymmetricProperty,
		vocab.OWLAsymmetricProperty,
		vocab.OWLTransitiveProperty,
	} {
		if p.index.isOfType(t, typ) {
			return true
		}
	}
	return false
}

func (p *parser) isDataProperty(t rdf.Term) bool {
	return p.index.isOfType(t, vocab.OWLDatatypeProperty)
}

func (p *parser) isAnnotationProperty(t rdf.Term) bool {
	text, ok := store.IRIText(t)
	if !ok {
		return false
	}
	return vocab.IsBuiltinAnnotationProperty(text) || p.index.isOfType(t, vocab.OWLAnnotationProperty)
}

// isClass returns whether t is a declared class or a reconstructed
// class expression.
func (p *parser) isClass(t rdf.Term) bool {
	if store.IsBlank(t) {
		_, ok := p.classes[t.Value]
		return ok
	}
	return p.index.isOfType(t, vocab.OWLClass)
}

// isDatatype returns whether t is a declared or builtin datatype or a
// reconstructed data range.
func (p *parser) isDatatype(t rdf.Term) bool {
	if store.IsBlank(t) {
		_, ok := p.ranges[t.Value]
		return ok
	}
	text, ok := store.IRIText(t)
	if !ok {
		return false
	}
	switch {
	case strings.HasPrefix(text, vocab.XSD),
		text == vocab.RDFSLiteral,
		text == vocab.RDFPlainLiteral,
		text == vocab.RDFLangString:
		return true
	}
	return p.index.isOfType(t, vocab.RDFSDatatype)
}

// Term conversion. Each conversion returns false if the term cannot
// stand in the requested position.

func (p *parser) class(t rdf.Term) (owl.ClassExpression, bool) {
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	c, ok := p.classes[t.Value]
	return c, ok
}

func (p *parser) datarange(t rdf.Term) (owl.Datarange, bool) {
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	r, ok := p.ranges[t.Value]
	return r, ok
}

func (p *parser) objProp(t rdf.Term) (owl.ObjectPropertyExpression, bool) {
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	e, ok := p.inverses[t.Value]
	return e, ok
}

func (p *parser) dataProp(t rdf.Term) (owl.DataPropertyExpression, bool) {
	text, ok := store.IRIText(t)
	if !ok {
		return nil, false
	}
	return owl.IRI(text), true
}

func (p *parser) individual(t rdf.Term) (owl.Individual, bool) {
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	if store.IsBlank(t) {
		return owl.AnonymousIndividual{NodeID: strings.TrimPrefix(t.Value, "_:")}, true
	}
	return nil, false
}

func (p *parser) literal(t rdf.Term) (owl.Literal, bool) {
	text, qual, kind, err := t.Parts()
	if err != nil || kind != rdf.Literal {
		return owl.Literal{}, false
	}
	switch {
	case qual == "":
		return owl.Literal{Lexical: text, Datatype: vocab.XSDString}, true
	case strings.HasPrefix(qual, "@"):
		return owl.Literal{Lexical: text, Lang: qual[1:]}, true
	default:
		return owl.Literal{Lexical: text, Datatype: owl.IRI(qual)}, true
	}
}

func (p *parser) annotationSubject(t rdf.Term) (owl.AnnotationSubject, bool) {
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	if store.IsBlank(t) {
		return owl.AnonymousIndividual{NodeID: strings.TrimPrefix(t.Value, "_:")}, true
	}
	return nil, false
}

func (p *parser) annotationValue(t rdf.Term) (owl.AnnotationValue, bool) {
	if l, ok := p.literal(t); ok {
		return l, true
	}
	if text, ok := store.IRIText(t); ok {
		return owl.IRI(text), true
	}
	if store.IsBlank(t) {
		return owl.AnonymousIndividual{NodeID: strings.TrimPrefix(t.Value, "_:")}, true
	}
	return nil, false
}

// Sequences.

func (p *parser) classSeq(terms []rdf.Term) (owl.Sequence[owl.ClassExpression], bool) {
	values := make([]owl.ClassExpression, len(terms))
	for i, t := range terms {
		var ok bool
		values[i], ok = p.class(t)
		if !ok {
			return nil, false
		}
	}
	return owl.Seq(values...), true
}

func (p *parser) dataranges(terms []rdf.Term) (owl.Sequence[owl.Datarange], bool) {
	values := make([]owl.Datarange, len(terms))
	for i, t := range terms {
		var ok bool
		values[i], ok = p.datarange(t)
		if !ok {
			return nil, false
		}
	}
	return owl.Seq(values...), true
}

func (p *parser) objProps(terms []rdf.Term) (owl.Sequence[owl.ObjectPropertyExpression], bool) {
	values := make([]owl.ObjectPropertyExpression, len(terms))
	for i, t := range terms {
		var ok bool
		values[i], ok = p.objProp(t)
		if !ok {
			return nil, false
		}
	}
	return owl.Seq(values...), true
}

func (p *parser) dataProps(terms []rdf.Term) (owl.Sequence[owl.DataPropertyExpression], bool) {
	values := make([]owl.DataPropertyExpression, len(terms))
	for i, t := range terms {
		var ok bool
		values[i], ok = p.dataProp(t)
		if !ok {
			return nil, false
		}
	}
	return owl.Seq(values...), true
}

func (p *parser) individuals(terms []rdf.Term) (owl.Sequence[owl.Individual], bool) {
	values := make([]owl.Individual, len(terms))
	for i, t := range terms {
		var ok bool
		values[i], ok = p.individual(t)
		if !ok {
			return nil, false
		}
	}
	return owl.Seq(values...), true
}

func (p *parser) literals(terms []rdf.Term) (owl.Sequence[owl.LiteralExpression], bool) {
	values := make([]owl.LiteralExpression, len(terms))
	for i, t := range terms {
		l, ok := p.literal(t)
		if !ok {
			return nil, false
		}
		values[i] = l
	}
	return owl.Seq(values...), true
}
