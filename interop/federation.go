package interop

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/knakk/rdf"
	"github.com/knakk/sparql"

	"rdf-graph-engine/base"
	sparqlpkg "rdf-graph-engine/sparql"
	"rdf-graph-engine/term"
)

// FetchSPARQLJSON runs query against a federated SPARQL 1.1 endpoint over
// HTTP and returns the raw JSON result body, using base.CacheLoad so
// repeated queries against the same endpoint+query pair don't re-fetch
// on every call, the same caching the teacher applies to its profile and
// label lookups against external RDF sources.
func FetchSPARQLJSON(endpoint, query string) ([]byte, error) {
	reqURL := endpoint + "?query=" + url.QueryEscape(query)
	header := http.Header{"Accept": []string{"application/sparql-results+json"}}
	return base.CacheLoad(reqURL, &header)
}

// ImportFromEndpoint fetches query's results from endpoint and decodes
// them into the engine's own solution type in one step.
func ImportFromEndpoint(endpoint, query string, sink base.Sink) ([]sparqlpkg.Solution, error) {
	data, err := FetchSPARQLJSON(endpoint, query)
	if err != nil {
		return nil, err
	}
	return ImportSPARQLJSON(data, sink)
}

// ImportSPARQLJSON parses a SPARQL 1.1 JSON result set (as returned by a
// federated SPARQL endpoint) into the engine's own solution type, so a
// remote query's bindings can be merged with local solutions.
func ImportSPARQLJSON(data []byte, sink base.Sink) ([]sparqlpkg.Solution, error) {
	sink = base.OrDiscard(sink)
	res, err := sparql.ParseJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var out []sparqlpkg.Solution
	for _, row := range res.Solutions() {
		sol := make(sparqlpkg.Solution)
		for name, val := range row {
			t, ok := fromKnakkTerm(val)
			if !ok {
				sink.Warn("skipping unconvertible SPARQL-JSON binding", "variable", name)
				continue
			}
			sol[name] = t
		}
		out = append(out, sol)
	}
	return out, nil
}

func fromKnakkTerm(t rdf.Term) (term.Term, bool) {
	switch v := t.(type) {
	case rdf.IRI:
		return term.IRI(v.String()), true
	case rdf.Blank:
		return term.NewBlankNode(v.String()), true
	case rdf.Literal:
		if v.Lang() != "" {
			lit, err := term.NewLangLiteral(v.String(), v.Lang())
			if err != nil {
				return nil, false
			}
			return lit, true
		}
		if dt := v.DataType; dt.String() != "" {
			return term.NewTypedLiteral(v.String(), term.IRI(dt.String())), true
		}
		return term.NewStringLiteral(v.String()), true
	default:
		return nil, false
	}
}
