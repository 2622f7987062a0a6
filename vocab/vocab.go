// Package vocab holds process-wide immutable IRI constants for the
// well-known namespaces the engine must recognize: RDF, RDFS, OWL, XSD,
// and SHACL. None of these are mutated after initialization.
package vocab

import (
	"fmt"

	"rdf-graph-engine/term"
)

const (
	prefixRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#%s"
	prefixRDFS  = "http://www.w3.org/2000/01/rdf-schema#%s"
	prefixOWL   = "http://www.w3.org/2002/07/owl#%s"
	prefixXSD   = "http://www.w3.org/2001/XMLSchema#%s"
	prefixSHACL = "http://www.w3.org/ns/shacl#%s"
)

// RDF, RDFS, OWL namespace terms.
var (
	RDFType  = iri(prefixRDF, "type")
	RDFFirst = iri(prefixRDF, "first")
	RDFRest  = iri(prefixRDF, "rest")
	RDFNil   = iri(prefixRDF, "nil")

	RDFSLabel    = iri(prefixRDFS, "label")
	RDFSSubClass = iri(prefixRDFS, "subClassOf")

	OWLImports = iri(prefixOWL, "imports")
)

// XSD datatypes named in spec.md §6.
var (
	XSDString   = iri(prefixXSD, "string")
	XSDBoolean  = iri(prefixXSD, "boolean")
	XSDDecimal  = iri(prefixXSD, "decimal")
	XSDInteger  = iri(prefixXSD, "integer")
	XSDDouble   = iri(prefixXSD, "double")
	XSDFloat    = iri(prefixXSD, "float")
	XSDDate     = iri(prefixXSD, "date")
	XSDDateTime = iri(prefixXSD, "dateTime")
)

// SHACL-Core vocabulary used by shacl.LoadShapes.
var (
	SHNodeShape     = iri(prefixSHACL, "NodeShape")
	SHPropertyShape = iri(prefixSHACL, "PropertyShape")
	SHProperty      = iri(prefixSHACL, "property")
	SHPath          = iri(prefixSHACL, "path")
	SHTargetClass   = iri(prefixSHACL, "targetClass")
	SHTargetNode    = iri(prefixSHACL, "targetNode")
	SHTargetSubjOf  = iri(prefixSHACL, "targetSubjectsOf")
	SHTargetObjOf   = iri(prefixSHACL, "targetObjectsOf")
	SHMessage       = iri(prefixSHACL, "message")
	SHSeverity      = iri(prefixSHACL, "severity")
	SHViolation     = iri(prefixSHACL, "Violation")
	SHWarning       = iri(prefixSHACL, "Warning")
	SHInfo          = iri(prefixSHACL, "Info")
	SHDeactivated   = iri(prefixSHACL, "deactivated")
	SHName          = iri(prefixSHACL, "name")

	SHMinCount = iri(prefixSHACL, "minCount")
	SHMaxCount = iri(prefixSHACL, "maxCount")

	SHDatatype = iri(prefixSHACL, "datatype")
	SHClass    = iri(prefixSHACL, "class")
	SHNodeKind = iri(prefixSHACL, "nodeKind")

	SHIRI                = iri(prefixSHACL, "IRI")
	SHBlankNode          = iri(prefixSHACL, "BlankNode")
	SHLiteral            = iri(prefixSHACL, "Literal")
	SHBlankNodeOrIRI     = iri(prefixSHACL, "BlankNodeOrIRI")
	SHBlankNodeOrLiteral = iri(prefixSHACL, "BlankNodeOrLiteral")
	SHIRIOrLiteral       = iri(prefixSHACL, "IRIOrLiteral")

	SHMinLength   = iri(prefixSHACL, "minLength")
	SHMaxLength   = iri(prefixSHACL, "maxLength")
	SHPattern     = iri(prefixSHACL, "pattern")
	SHFlags       = iri(prefixSHACL, "flags")
	SHLanguageIn  = iri(prefixSHACL, "languageIn")
	SHHasValue    = iri(prefixSHACL, "hasValue")
	SHIn          = iri(prefixSHACL, "in")
	SHMinInclusive = iri(prefixSHACL, "minInclusive")
	SHMaxInclusive = iri(prefixSHACL, "maxInclusive")
	SHMinExclusive = iri(prefixSHACL, "minExclusive")
	SHMaxExclusive = iri(prefixSHACL, "maxExclusive")
	SHEquals       = iri(prefixSHACL, "equals")
	SHDisjoint     = iri(prefixSHACL, "disjoint")
	SHAnd          = iri(prefixSHACL, "and")
	SHOr           = iri(prefixSHACL, "or")
	SHNot          = iri(prefixSHACL, "not")
	SHXone         = iri(prefixSHACL, "xone")
)

func iri(format, local string) term.IRI {
	return term.IRI(fmt.Sprintf(format, local))
}
