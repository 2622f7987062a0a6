package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/api"
	"rdf-graph-engine/base"
	"rdf-graph-engine/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := store.New()
	s.RegisterDefaults()
	router := api.NewRouter(&api.Server{Store: s, Sink: base.DiscardSink})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + api.BasePath + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAddAndQueryTriples(t *testing.T) {
	srv := newTestServer(t)

	ttl := `@prefix foaf: <http://xmlns.com/foaf/0.1/> .
<http://example.org/alice> foaf:name "Alice" .`
	form := url.Values{"ttl": {ttl}}
	resp, err := http.PostForm(srv.URL+api.BasePath+"/triples", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var added struct {
		Added int `json:"added"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&added))
	assert.Equal(t, 1, added.Added)

	getResp, err := http.Get(srv.URL + api.BasePath + "/triples?subject=" +
		url.QueryEscape("http://example.org/alice"))
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(getResp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Alice")
}

func TestSPARQLQueryOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	ttl := `@prefix foaf: <http://xmlns.com/foaf/0.1/> .
<http://example.org/alice> foaf:name "Alice" .`
	form := url.Values{"ttl": {ttl}}
	resp, err := http.PostForm(srv.URL+api.BasePath+"/triples", form)
	require.NoError(t, err)
	resp.Body.Close()

	query := `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
SELECT ?p ?n WHERE { ?p foaf:name ?n }`
	queryResp, err := http.PostForm(srv.URL+api.BasePath+"/sparql/query", url.Values{"query": {query}})
	require.NoError(t, err)
	defer queryResp.Body.Close()
	require.Equal(t, http.StatusOK, queryResp.StatusCode)

	var result struct {
		Vars      []string         `json:"vars"`
		Solutions []map[string]any `json:"solutions"`
	}
	require.NoError(t, json.NewDecoder(queryResp.Body).Decode(&result))
	require.Len(t, result.Solutions, 1)
	assert.Equal(t, `"Alice"`, result.Solutions[0]["n"])
}

func TestSPARQLQueryMissingParamIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.PostForm(srv.URL+api.BasePath+"/sparql/query", url.Values{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShaclValidateEmptyStoreConforms(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+api.BasePath+"/shacl/validate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Conforms bool `json:"Conforms"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Conforms)
}

func TestSearchWithoutIndexIsUnavailable(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + api.BasePath + "/search?q=alice")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
