package interop_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/base"
	"rdf-graph-engine/interop"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

func TestImportExportTurtleRoundTrip(t *testing.T) {
	s := store.New()
	turtle := []byte(`
		@prefix ex: <http://example.org/> .
		ex:alice ex:knows ex:bob .
		ex:alice ex:name "Alice" .
	`)

	n, err := interop.ImportTurtle(s, turtle, base.DiscardSink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.CountTriples())

	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")
	knows := term.IRI("http://example.org/knows")
	tr, err := term.NewTriple(alice, knows, bob)
	require.NoError(t, err)
	assert.True(t, s.Has(tr))

	out, err := interop.ExportTurtle(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "alice")
	assert.Contains(t, string(out), "bob")
}

func TestImportTurtleSkipsNothingButReportsCount(t *testing.T) {
	s := store.New()
	turtle := []byte(`
		@prefix ex: <http://example.org/> .
		ex:a ex:b ex:c .
	`)
	n, err := interop.ImportTurtle(s, turtle, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = interop.ImportTurtle(s, turtle, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "re-importing the same triple should add nothing new")
}

func TestExportNQuads(t *testing.T) {
	s := store.New()
	alice := term.IRI("http://example.org/alice")
	name := term.IRI("http://example.org/name")
	tr, err := term.NewTriple(alice, name, term.NewStringLiteral("Alice"))
	require.NoError(t, err)
	s.Add(tr)

	out, err := interop.ExportNQuads(s)
	require.NoError(t, err)
	line := string(out)
	assert.Contains(t, line, "http://example.org/alice")
	assert.Contains(t, line, "http://example.org/name")
	assert.Contains(t, line, "Alice")
	assert.True(t, strings.Contains(line, interop.DefaultGraph))
}

func TestImportSPARQLJSON(t *testing.T) {
	body := `{
		"head": {"vars": ["s", "o"]},
		"results": {
			"bindings": [
				{
					"s": {"type": "uri", "value": "http://example.org/alice"},
					"o": {"type": "literal", "value": "Alice"}
				},
				{
					"s": {"type": "uri", "value": "http://example.org/bob"},
					"o": {"type": "literal", "value": "Bob", "xml:lang": "en"}
				}
			]
		}
	}`

	solutions, err := interop.ImportSPARQLJSON([]byte(body), nil)
	require.NoError(t, err)
	require.Len(t, solutions, 2)

	first := solutions[0]
	s, ok := first["s"].(term.IRI)
	require.True(t, ok)
	assert.Equal(t, term.IRI("http://example.org/alice"), s)

	o, ok := first["o"].(term.Literal)
	require.True(t, ok)
	assert.Equal(t, "Alice", o.Lexical)

	second := solutions[1]
	lit, ok := second["o"].(term.Literal)
	require.True(t, ok)
	assert.Equal(t, "en", lit.Language)
}

func TestImportFromEndpointFetchesAndDecodes(t *testing.T) {
	body := `{
		"head": {"vars": ["s", "o"]},
		"results": {
			"bindings": [
				{
					"s": {"type": "uri", "value": "http://example.org/alice"},
					"o": {"type": "literal", "value": "Alice"}
				}
			]
		}
	}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/sparql-results+json")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)
	require.NoError(t, os.MkdirAll(filepath.Join("local", "cache"), 0755))

	solutions, err := interop.ImportFromEndpoint(ts.URL, "SELECT ?s ?o WHERE { ?s ?p ?o }", base.DiscardSink)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, term.IRI("http://example.org/alice"), solutions[0]["s"])
}
