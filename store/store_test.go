package store_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

func mustTriple(t *testing.T, s term.Term, p term.IRI, o term.Term) term.Triple {
	t.Helper()
	triple, err := term.NewTriple(s, p, o)
	require.NoError(t, err)
	return triple
}

func TestAddRemoveHas(t *testing.T) {
	s := store.New()
	alice := term.IRI("http://example.org/alice")
	knows := term.IRI("http://example.org/knows")
	bob := term.IRI("http://example.org/bob")
	tr := mustTriple(t, alice, knows, bob)

	assert.True(t, s.Add(tr))
	assert.False(t, s.Add(tr), "re-adding an existing triple reports false")
	assert.True(t, s.Has(tr))
	assert.Equal(t, 1, s.CountTriples())

	assert.True(t, s.Remove(tr))
	assert.False(t, s.Has(tr))
	assert.False(t, s.Remove(tr), "removing an absent triple reports false")
	assert.Equal(t, 0, s.CountTriples())
}

func TestMatchEveryBoundCombination(t *testing.T) {
	s := store.New()
	alice := term.IRI("http://example.org/alice")
	bob := term.IRI("http://example.org/bob")
	charlie := term.IRI("http://example.org/charlie")
	knows := term.IRI("http://example.org/knows")
	age := term.IRI("http://example.org/age")

	triples := []term.Triple{
		mustTriple(t, alice, knows, bob),
		mustTriple(t, alice, knows, charlie),
		mustTriple(t, bob, knows, charlie),
		mustTriple(t, alice, age, term.NewStringLiteral("30")),
	}
	for _, tr := range triples {
		require.True(t, s.Add(tr))
	}

	collect := func(p store.Pattern) []term.Triple {
		var out []term.Triple
		for tr := range s.Match(p) {
			out = append(out, tr)
		}
		return out
	}

	t.Run("fully bound hit", func(t *testing.T) {
		got := collect(store.Pattern{Subject: alice, Predicate: &knows, Object: bob})
		assert.Len(t, got, 1)
	})

	t.Run("fully bound miss", func(t *testing.T) {
		got := collect(store.Pattern{Subject: bob, Predicate: &knows, Object: alice})
		assert.Empty(t, got)
	})

	t.Run("subject + predicate bound", func(t *testing.T) {
		got := collect(store.Pattern{Subject: alice, Predicate: &knows})
		assert.Len(t, got, 2)
	})

	t.Run("predicate + object bound", func(t *testing.T) {
		got := collect(store.Pattern{Predicate: &knows, Object: charlie})
		assert.Len(t, got, 2)
	})

	t.Run("subject + object bound", func(t *testing.T) {
		got := collect(store.Pattern{Subject: alice, Object: charlie})
		assert.Len(t, got, 1)
	})

	t.Run("subject only", func(t *testing.T) {
		got := collect(store.Pattern{Subject: alice})
		assert.Len(t, got, 3)
	})

	t.Run("predicate only", func(t *testing.T) {
		got := collect(store.Pattern{Predicate: &knows})
		assert.Len(t, got, 3)
	})

	t.Run("object only", func(t *testing.T) {
		got := collect(store.Pattern{Object: charlie})
		assert.Len(t, got, 2)
	})

	t.Run("fully unbound", func(t *testing.T) {
		got := collect(store.Pattern{})
		assert.Len(t, got, 4)
	})
}

func TestHexastorePatternSelectionAtScale(t *testing.T) {
	s := store.New()
	predicates := []term.IRI{"http://example.org/p0", "http://example.org/p1", "http://example.org/p2", "http://example.org/p3"}

	inserted := 0
	for i := 0; i < 1000; i++ {
		subj := term.IRI(termIndexIRI("s", i%250))
		obj := term.IRI(termIndexIRI("o", i))
		pred := predicates[i%len(predicates)]
		tr := mustTriple(t, subj, pred, obj)
		if s.Add(tr) {
			inserted++
		}
	}

	assert.Equal(t, inserted, s.CountTriples())

	for _, p := range predicates {
		count := 0
		pp := p
		for range s.Match(store.Pattern{Predicate: &pp}) {
			count++
		}
		assert.Equal(t, s.CountByPredicate(p), count)
	}
}

func termIndexIRI(prefix string, i int) string {
	return "http://example.org/" + prefix + strconv.Itoa(i)
}

func TestPrefixRegistry(t *testing.T) {
	s := store.New()
	s.RegisterDefaults()

	iri, err := s.Expand("rdf:type")
	require.NoError(t, err)
	assert.Equal(t, term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), iri)

	_, err = s.Expand("unknownpfx:thing")
	assert.Error(t, err)

	abbrev, ok := s.Abbreviate(term.IRI("http://www.w3.org/2001/XMLSchema#integer"))
	require.True(t, ok)
	assert.Equal(t, "xsd:integer", abbrev)

	_, ok = s.Abbreviate(term.IRI("http://unregistered.example/foo"))
	assert.False(t, ok)
}

func TestCountsPruneOnRemove(t *testing.T) {
	s := store.New()
	alice := term.IRI("http://example.org/alice")
	knows := term.IRI("http://example.org/knows")
	bob := term.IRI("http://example.org/bob")
	tr := mustTriple(t, alice, knows, bob)

	s.Add(tr)
	assert.Equal(t, 1, s.CountSubjects())
	assert.Equal(t, 1, s.CountPredicates())
	assert.Equal(t, 1, s.CountObjects())

	s.Remove(tr)
	assert.Equal(t, 0, s.CountSubjects())
	assert.Equal(t, 0, s.CountPredicates())
	assert.Equal(t, 0, s.CountObjects())
}
