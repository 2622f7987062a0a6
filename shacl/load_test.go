package shacl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/shacl"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

// addList materializes an RDF collection (rdf:first/rdf:rest/rdf:nil) of
// items in s and returns the head of the list.
func addList(t *testing.T, s *store.Store, items ...term.Term) term.Term {
	t.Helper()
	if len(items) == 0 {
		return vocab.RDFNil
	}
	var nodes []term.BlankNode
	for range items {
		nodes = append(nodes, term.NewBlankNodeUnique())
	}
	for i, item := range items {
		addTriple(t, s, nodes[i], vocab.RDFFirst, item)
		var rest term.Term = vocab.RDFNil
		if i+1 < len(nodes) {
			rest = nodes[i+1]
		}
		addTriple(t, s, nodes[i], vocab.RDFRest, rest)
	}
	return nodes[0]
}

func TestLoadShapesParsesNodeKindAndNumericRangeConstraints(t *testing.T) {
	s := store.New()
	shapeID := term.IRI("http://example.org/PersonShape")
	propID := term.NewBlankNodeUnique()
	ageProp := term.IRI("http://example.org/age")

	addTriple(t, s, shapeID, vocab.RDFType, vocab.SHNodeShape)
	addTriple(t, s, shapeID, vocab.SHTargetClass, term.IRI("http://example.org/Person"))
	addTriple(t, s, shapeID, vocab.SHProperty, propID)
	addTriple(t, s, propID, vocab.SHPath, ageProp)
	addTriple(t, s, propID, vocab.SHNodeKind, vocab.SHLiteral)
	addTriple(t, s, propID, vocab.SHMinInclusive, term.NewTypedLiteral("0", vocab.XSDInteger))
	addTriple(t, s, propID, vocab.SHMaxInclusive, term.NewTypedLiteral("130", vocab.XSDInteger))

	shapes, err := shacl.LoadShapes(s)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	require.Len(t, shapes[0].PropertyShapes, 1)

	constraints := shapes[0].PropertyShapes[0].Constraints
	assert.Contains(t, constraints, shacl.NodeKindConstraint{Kind: shacl.KindLiteral})
	assert.Contains(t, constraints, shacl.MinInclusive{X: 0})
	assert.Contains(t, constraints, shacl.MaxInclusive{X: 130})

	alice := term.IRI("http://example.org/alice")
	addTriple(t, s, alice, vocab.RDFType, term.IRI("http://example.org/Person"))
	addTriple(t, s, alice, ageProp, term.NewTypedLiteral("200", vocab.XSDInteger))

	report := shacl.Validate(s, shapes, nil)
	assert.False(t, report.Conforms)
}

func TestLoadShapesParsesInAndLanguageInLists(t *testing.T) {
	s := store.New()
	shapeID := term.IRI("http://example.org/ColorShape")
	propID := term.NewBlankNodeUnique()
	colorProp := term.IRI("http://example.org/color")
	labelProp := term.IRI("http://example.org/label")

	red := term.NewStringLiteral("red")
	green := term.NewStringLiteral("green")
	inList := addList(t, s, red, green)

	addTriple(t, s, shapeID, vocab.RDFType, vocab.SHNodeShape)
	addTriple(t, s, shapeID, vocab.SHTargetClass, term.IRI("http://example.org/Widget"))
	addTriple(t, s, shapeID, vocab.SHProperty, propID)
	addTriple(t, s, propID, vocab.SHPath, colorProp)
	addTriple(t, s, propID, vocab.SHIn, inList)

	langPropID := term.NewBlankNodeUnique()
	langList := addList(t, s, term.NewStringLiteral("en"), term.NewStringLiteral("fr"))
	addTriple(t, s, shapeID, vocab.SHProperty, langPropID)
	addTriple(t, s, langPropID, vocab.SHPath, labelProp)
	addTriple(t, s, langPropID, vocab.SHLanguageIn, langList)

	shapes, err := shacl.LoadShapes(s)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	require.Len(t, shapes[0].PropertyShapes, 2)

	widget := term.IRI("http://example.org/widget1")
	addTriple(t, s, widget, vocab.RDFType, term.IRI("http://example.org/Widget"))
	addTriple(t, s, widget, colorProp, term.NewStringLiteral("blue"))
	deLabel, err := term.NewLangLiteral("Gerät", "de")
	require.NoError(t, err)
	addTriple(t, s, widget, labelProp, deLabel)

	report := shacl.Validate(s, shapes, nil)
	assert.False(t, report.Conforms)
	assert.GreaterOrEqual(t, len(report.Results), 2)
}

func TestLoadShapesParsesAndCombinator(t *testing.T) {
	s := store.New()
	shapeID := term.IRI("http://example.org/StrictShape")
	propID := term.NewBlankNodeUnique()
	nameProp := term.IRI("http://example.org/name")

	subShape := term.NewBlankNodeUnique()
	addTriple(t, s, subShape, vocab.SHMinLength, term.NewTypedLiteral("3", vocab.XSDInteger))
	andList := addList(t, s, subShape)

	addTriple(t, s, shapeID, vocab.RDFType, vocab.SHNodeShape)
	addTriple(t, s, shapeID, vocab.SHTargetClass, term.IRI("http://example.org/Thing"))
	addTriple(t, s, shapeID, vocab.SHProperty, propID)
	addTriple(t, s, propID, vocab.SHPath, nameProp)
	addTriple(t, s, propID, vocab.SHAnd, andList)

	shapes, err := shacl.LoadShapes(s)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	require.Len(t, shapes[0].PropertyShapes, 1)

	and, ok := shapes[0].PropertyShapes[0].Constraints[0].(shacl.And)
	require.True(t, ok)
	require.Len(t, and.Shapes, 1)
	assert.Contains(t, and.Shapes[0].Constraints, shacl.MinLength{N: 3})

	thing := term.IRI("http://example.org/thing1")
	addTriple(t, s, thing, vocab.RDFType, term.IRI("http://example.org/Thing"))
	addTriple(t, s, thing, nameProp, term.NewStringLiteral("ab"))

	report := shacl.Validate(s, shapes, nil)
	assert.False(t, report.Conforms)
}

func TestLoadShapesParsesDisjointConstraint(t *testing.T) {
	s := store.New()
	shapeID := term.IRI("http://example.org/AccountShape")
	propID := term.NewBlankNodeUnique()
	primary := term.IRI("http://example.org/primaryEmail")
	backup := term.IRI("http://example.org/backupEmail")

	addTriple(t, s, shapeID, vocab.RDFType, vocab.SHNodeShape)
	addTriple(t, s, shapeID, vocab.SHTargetClass, term.IRI("http://example.org/Account"))
	addTriple(t, s, shapeID, vocab.SHProperty, propID)
	addTriple(t, s, propID, vocab.SHPath, primary)
	addTriple(t, s, propID, vocab.SHDisjoint, backup)

	shapes, err := shacl.LoadShapes(s)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	require.Len(t, shapes[0].PropertyShapes, 1)
	assert.Contains(t, shapes[0].PropertyShapes[0].Constraints, shacl.Disjoint{Path: backup})

	acct := term.IRI("http://example.org/acct1")
	addTriple(t, s, acct, vocab.RDFType, term.IRI("http://example.org/Account"))
	shared := term.NewStringLiteral("shared@example.org")
	addTriple(t, s, acct, primary, shared)
	addTriple(t, s, acct, backup, shared)

	report := shacl.Validate(s, shapes, nil)
	assert.False(t, report.Conforms)
}
