// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vocab holds the IRIs of the RDF, RDFS, OWL and XSD vocabularies
// used by the OWL2 mapping to RDF.
//
// See https://www.w3.org/TR/owl2-mapping-to-rdf/ for the mapping.
package vocab

// Namespaces.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF vocabulary.
const (
	RDFType         = RDF + "type"
	RDFFirst        = RDF + "first"
	RDFRest         = RDF + "rest"
	RDFNil          = RDF + "nil"
	RDFLangString   = RDF + "langString"
	RDFPlainLiteral = RDF + "PlainLiteral"
)

// RDF Schema vocabulary.
const (
	RDFSSubClassOf    = RDFS + "subClassOf"
	RDFSSubPropertyOf = RDFS + "subPropertyOf"
	RDFSDomain        = RDFS + "domain"
	RDFSRange         = RDFS + "range"
	RDFSDatatype      = RDFS + "Datatype"
	RDFSLiteral       = RDFS + "Literal"
	RDFSLabel         = RDFS + "label"
	RDFSComment       = RDFS + "comment"
	RDFSSeeAlso       = RDFS + "seeAlso"
	RDFSIsDefinedBy   = RDFS + "isDefinedBy"
)

// OWL entity and axiom types.
const (
	OWLOntology                  = OWL + "Ontology"
	OWLClass                     = OWL + "Class"
	OWLThing                     = OWL + "Thing"
	OWLNothing                   = OWL + "Nothing"
	OWLNamedIndividual           = OWL + "NamedIndividual"
	OWLObjectProperty            = OWL + "ObjectProperty"
	OWLDatatypeProperty          = OWL + "DatatypeProperty"
	OWLAnnotationProperty        = OWL + "AnnotationProperty"
	OWLRestriction               = OWL + "Restriction"
	OWLAxiom                     = OWL + "Axiom"
	OWLAnnotation                = OWL + "Annotation"
	OWLAllDisjointClasses        = OWL + "AllDisjointClasses"
	OWLAllDisjointProperties     = OWL + "AllDisjointProperties"
	OWLAllDifferent              = OWL + "AllDifferent"
	OWLNegativePropertyAssertion = OWL + "NegativePropertyAssertion"

	OWLFunctionalProperty        = OWL + "FunctionalProperty"
	OWLInverseFunctionalProperty = OWL + "InverseFunctionalProperty"
	OWLReflexiveProperty         = OWL + "ReflexiveProperty"
	OWLIrreflexiveProperty       = OWL + "IrreflexiveProperty"
	OWLSymmetricProperty         = OWL + "SymmetricProperty"
	OWLAsymmetricProperty        = OWL + "AsymmetricProperty"
	OWLTransitiveProperty        = OWL + "TransitiveProperty"

	OWLDeprecated  = OWL + "deprecated"
	OWLVersionInfo = OWL + "versionInfo"
)

// OWL predicates.
const (
	OWLEquivalentClass      = OWL + "equivalentClass"
	OWLDisjointWith         = OWL + "disjointWith"
	OWLDisjointUnionOf      = OWL + "disjointUnionOf"
	OWLMembers              = OWL + "members"
	OWLEquivalentProperty   = OWL + "equivalentProperty"
	OWLPropertyDisjointWith = OWL + "propertyDisjointWith"
	OWLPropertyChainAxiom   = OWL + "propertyChainAxiom"
	OWLInverseOf            = OWL + "inverseOf"
	OWLSameAs               = OWL + "sameAs"
	OWLDifferentFrom        = OWL + "differentFrom"
	OWLHasKey               = OWL + "hasKey"

	OWLIntersectionOf          = OWL + "intersectionOf"
	OWLUnionOf                 = OWL + "unionOf"
	OWLComplementOf            = OWL + "complementOf"
	OWLOneOf                   = OWL + "oneOf"
	OWLDatatypeComplementOf    = OWL + "datatypeComplementOf"
	OWLOnDatatype              = OWL + "onDatatype"
	OWLWithRestrictions        = OWL + "withRestrictions"
	OWLOnProperty              = OWL + "onProperty"
	OWLOnProperties            = OWL + "onProperties"
	OWLSomeValuesFrom          = OWL + "someValuesFrom"
	OWLAllValuesFrom           = OWL + "allValuesFrom"
	OWLHasValue                = OWL + "hasValue"
	OWLHasSelf                 = OWL + "hasSelf"
	OWLMinCardinality          = OWL + "minCardinality"
	OWLMaxCardinality          = OWL + "maxCardinality"
	OWLCardinality             = OWL + "cardinality"
	OWLMinQualifiedCardinality = OWL + "minQualifiedCardinality"
	OWLMaxQualifiedCardinality = OWL + "maxQualifiedCardinality"
	OWLQualifiedCardinality    = OWL + "qualifiedCardinality"
	OWLOnClass                 = OWL + "onClass"
	OWLOnDataRange             = OWL + "onDataRange"

	OWLSourceIndividual  = OWL + "sourceIndividual"
	OWLAssertionProperty = OWL + "assertionProperty"
	OWLTargetIndividual  = OWL + "targetIndividual"
	OWLTargetValue       = OWL + "targetValue"

	OWLAnnotatedSource   = OWL + "annotatedSource"
	OWLAnnotatedProperty = OWL + "annotatedProperty"
	OWLAnnotatedTarget   = OWL + "annotatedTarget"
)

// XML Schema datatypes.
const (
	XSDString             = XSD + "string"
	XSDBoolean            = XSD + "boolean"
	XSDInteger            = XSD + "integer"
	XSDInt                = XSD + "int"
	XSDLong               = XSD + "long"
	XSDShort              = XSD + "short"
	XSDByte               = XSD + "byte"
	XSDNonNegativeInteger = XSD + "nonNegativeInteger"
	XSDPositiveInteger    = XSD + "positiveInteger"
	XSDNegativeInteger    = XSD + "negativeInteger"
	XSDNonPositiveInteger = XSD + "nonPositiveInteger"
	XSDUnsignedLong       = XSD + "unsignedLong"
	XSDUnsignedInt        = XSD + "unsignedInt"
	XSDDecimal            = XSD + "decimal"
	XSDDouble             = XSD + "double"
	XSDFloat              = XSD + "float"
)

// IsBuiltinAnnotationProperty returns whether iri is one of the annotation
// properties that need no declaration in OWL2.
func IsBuiltinAnnotationProperty(iri string) bool {
	switch iri {
	case RDFSLabel, RDFSComment, RDFSSeeAlso, RDFSIsDefinedBy, OWLDeprecated, OWLVersionInfo:
		return true
	}
	return false
}
