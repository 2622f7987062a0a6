package textindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/term"
)

func TestDocIDStableAndDistinct(t *testing.T) {
	alice := term.IRI("http://example.org/alice")
	name := term.IRI("http://example.org/name")

	t1, err := term.NewTriple(alice, name, term.NewStringLiteral("Alice"))
	require.NoError(t, err)
	t2, err := term.NewTriple(alice, name, term.NewStringLiteral("Alicia"))
	require.NoError(t, err)

	assert.Equal(t, docID(t1), docID(t1), "docID must be deterministic")
	assert.NotEqual(t, docID(t1), docID(t2), "distinct literals must map to distinct documents")
}

func TestDocIDIgnoresNonLiteralObjects(t *testing.T) {
	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")
	knows := term.IRI("http://example.org/knows")

	tr, err := term.NewTriple(alice, knows, bob)
	require.NoError(t, err)
	assert.Empty(t, docID(tr))
}

func TestTripleFromDocRoundTrip(t *testing.T) {
	doc := map[string]any{
		"subject":   "http://example.org/alice",
		"predicate": "http://example.org/name",
		"value":     "Alice",
		"lang":      "en",
	}
	tr, ok := tripleFromDoc(doc)
	require.True(t, ok)
	assert.Equal(t, term.IRI("http://example.org/alice"), tr.Subject)
	assert.Equal(t, term.IRI("http://example.org/name"), tr.Predicate)
	lit, ok := tr.Object.(term.Literal)
	require.True(t, ok)
	assert.Equal(t, "Alice", lit.Lexical)
	assert.Equal(t, "en", lit.Language)
}

func TestTripleFromDocMissingSubjectRejected(t *testing.T) {
	_, ok := tripleFromDoc(map[string]any{"predicate": "http://example.org/name"})
	assert.False(t, ok)
}
