package sparql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/base"
	"rdf-graph-engine/sparql"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

const foafPrefix = `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
`

func mustTriple(t *testing.T, s term.Term, p term.IRI, o term.Term) term.Triple {
	t.Helper()
	tr, err := term.NewTriple(s, p, o)
	require.NoError(t, err)
	return tr
}

func run(t *testing.T, s *store.Store, query string) sparql.Result {
	t.Helper()
	q, err := sparql.Parse(query, s)
	require.NoError(t, err)
	res, err := sparql.Execute(s, q, base.DiscardSink)
	require.NoError(t, err)
	return res
}

func namesOf(t *testing.T, solutions []sparql.Solution, v string) []string {
	t.Helper()
	var out []string
	for _, sol := range solutions {
		bound, ok := sol[v]
		require.True(t, ok)
		out = append(out, bound.String())
	}
	return out
}

func seedThreePersons(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.RegisterDefaults()

	foafPerson := term.IRI("http://xmlns.com/foaf/0.1/Person")
	foafName := term.IRI("http://xmlns.com/foaf/0.1/name")
	foafAge := term.IRI("http://xmlns.com/foaf/0.1/age")
	foafKnows := term.IRI("http://xmlns.com/foaf/0.1/knows")
	rdfType := term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	xsdInt := term.IRI("http://www.w3.org/2001/XMLSchema#integer")

	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")

	s.Add(mustTriple(t, alice, rdfType, foafPerson))
	s.Add(mustTriple(t, alice, foafName, term.NewStringLiteral("Alice")))
	s.Add(mustTriple(t, alice, foafAge, term.NewTypedLiteral("30", xsdInt)))
	s.Add(mustTriple(t, alice, foafKnows, bob))
	s.Add(mustTriple(t, bob, foafName, term.NewStringLiteral("Bob")))
	return s
}

func TestSelectTwoPersonsByName(t *testing.T) {
	s := seedThreePersons(t)
	res := run(t, s, foafPrefix+`SELECT ?p ?n WHERE { ?p foaf:name ?n }`)

	require.Len(t, res.Solutions, 2)
	names := namesOf(t, res.Solutions, "n")
	assert.ElementsMatch(t, []string{`"Alice"`, `"Bob"`}, names)
}

func TestNumericFilterGreaterThan(t *testing.T) {
	s := seedThreePersons(t)
	foafAge := term.IRI("http://xmlns.com/foaf/0.1/age")
	xsdInt := term.IRI("http://www.w3.org/2001/XMLSchema#integer")
	charlie := term.IRI("http://example.org/charlie")
	s.Add(mustTriple(t, charlie, foafAge, term.NewTypedLiteral("35", xsdInt)))

	res := run(t, s, foafPrefix+`SELECT ?p WHERE { ?p foaf:age ?a . FILTER(?a > 28) }`)

	require.Len(t, res.Solutions, 2)
	var subjects []string
	for _, sol := range res.Solutions {
		subjects = append(subjects, sol["p"].String())
	}
	assert.ElementsMatch(t, []string{
		"http://example.org/alice",
		"http://example.org/charlie",
	}, subjects)
}

func TestOptionalLeftOuterJoin(t *testing.T) {
	s := store.New()
	s.RegisterDefaults()
	foafName := term.IRI("http://xmlns.com/foaf/0.1/name")
	foafAge := term.IRI("http://xmlns.com/foaf/0.1/age")
	xsdInt := term.IRI("http://www.w3.org/2001/XMLSchema#integer")
	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")

	s.Add(mustTriple(t, alice, foafName, term.NewStringLiteral("Alice")))
	s.Add(mustTriple(t, alice, foafAge, term.NewTypedLiteral("30", xsdInt)))
	s.Add(mustTriple(t, bob, foafName, term.NewStringLiteral("Bob")))

	res := run(t, s, foafPrefix+
		`SELECT ?p ?n ?a WHERE { ?p foaf:name ?n OPTIONAL { ?p foaf:age ?a } }`)

	require.Len(t, res.Solutions, 2)
	for _, sol := range res.Solutions {
		switch sol["p"].String() {
		case "http://example.org/alice":
			require.Contains(t, sol, "a")
			assert.Equal(t, `"30"^^<http://www.w3.org/2001/XMLSchema#integer>`, sol["a"].String())
		case "http://example.org/bob":
			assert.NotContains(t, sol, "a")
		default:
			t.Fatalf("unexpected subject %v", sol["p"])
		}
	}
}

func TestUnionOfTwoNamedPersons(t *testing.T) {
	s := store.New()
	s.RegisterDefaults()
	foafPerson := term.IRI("http://xmlns.com/foaf/0.1/Person")
	foafName := term.IRI("http://xmlns.com/foaf/0.1/name")
	rdfType := term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")
	charlie := term.IRI("http://example.org/charlie")

	for _, p := range []term.IRI{alice, bob, charlie} {
		s.Add(mustTriple(t, p, rdfType, foafPerson))
	}
	s.Add(mustTriple(t, alice, foafName, term.NewStringLiteral("Alice")))
	s.Add(mustTriple(t, bob, foafName, term.NewStringLiteral("Bob")))
	s.Add(mustTriple(t, charlie, foafName, term.NewStringLiteral("Charlie")))

	res := run(t, s, foafPrefix+
		`SELECT ?p WHERE { { ?p foaf:name "Alice" } UNION { ?p foaf:name "Bob" } }`)

	require.Len(t, res.Solutions, 2)
	var subjects []string
	for _, sol := range res.Solutions {
		subjects = append(subjects, sol["p"].String())
	}
	assert.ElementsMatch(t, []string{
		"http://example.org/alice",
		"http://example.org/bob",
	}, subjects)
}

func TestAskReportsPresence(t *testing.T) {
	s := seedThreePersons(t)

	res := run(t, s, foafPrefix+`ASK { ?p foaf:name "Alice" }`)
	assert.True(t, res.Boolean)

	res = run(t, s, foafPrefix+`ASK { ?p foaf:name "Zoe" }`)
	assert.False(t, res.Boolean)
}

func TestConstructBuildsNewTriples(t *testing.T) {
	s := seedThreePersons(t)

	res := run(t, s, foafPrefix+`CONSTRUCT { ?p foaf:knows ?p } WHERE { ?p foaf:name ?n }`)

	require.Len(t, res.Triples, 2)
	for _, tr := range res.Triples {
		assert.Equal(t, tr.Subject, tr.Object)
	}
}

func TestSelectDistinctOrderByLimit(t *testing.T) {
	s := seedThreePersons(t)
	foafKnows := term.IRI("http://xmlns.com/foaf/0.1/knows")
	charlie := term.IRI("http://example.org/charlie")
	alice := term.IRI("http://example.org/alice")
	s.Add(mustTriple(t, alice, foafKnows, charlie))

	res := run(t, s, foafPrefix+
		`SELECT DISTINCT ?p WHERE { ?p foaf:knows ?o } ORDER BY ?o LIMIT 1`)

	require.Len(t, res.Solutions, 1)
	assert.Equal(t, "http://example.org/alice", res.Solutions[0]["p"].String())
}

func TestOrderByDescendingSortsHighestFirst(t *testing.T) {
	s := seedThreePersons(t)
	foafAge := term.IRI("http://xmlns.com/foaf/0.1/age")
	xsdInt := term.IRI("http://www.w3.org/2001/XMLSchema#integer")
	charlie := term.IRI("http://example.org/charlie")
	s.Add(mustTriple(t, charlie, foafAge, term.NewTypedLiteral("40", xsdInt)))

	res := run(t, s, foafPrefix+
		`SELECT ?p ?a WHERE { ?p foaf:age ?a } ORDER BY ?a DESC`)

	require.Len(t, res.Solutions, 2)
	assert.Equal(t, "http://example.org/charlie", res.Solutions[0]["p"].String())
	assert.Equal(t, "http://example.org/alice", res.Solutions[1]["p"].String())
}

func TestOrderByDescendingFunctionForm(t *testing.T) {
	s := seedThreePersons(t)
	foafAge := term.IRI("http://xmlns.com/foaf/0.1/age")
	xsdInt := term.IRI("http://www.w3.org/2001/XMLSchema#integer")
	charlie := term.IRI("http://example.org/charlie")
	s.Add(mustTriple(t, charlie, foafAge, term.NewTypedLiteral("40", xsdInt)))

	res := run(t, s, foafPrefix+
		`SELECT ?p ?a WHERE { ?p foaf:age ?a } ORDER BY DESC(?a)`)

	require.Len(t, res.Solutions, 2)
	assert.Equal(t, "http://example.org/charlie", res.Solutions[0]["p"].String())
	assert.Equal(t, "http://example.org/alice", res.Solutions[1]["p"].String())
}

func TestUnknownPrefixIsInputError(t *testing.T) {
	s := store.New()
	_, err := sparql.Parse(`SELECT ?p WHERE { ?p unknown:foo ?o }`, s)
	require.Error(t, err)
}
