package shacl

import (
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

// resolveTargets computes the de-duplicated union of focus nodes named by
// every target selector on shape.
func resolveTargets(s *store.Store, targets []Target) []term.Term {
	seen := make(map[term.Term]struct{})
	var out []term.Term
	add := func(t term.Term) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	for _, tgt := range targets {
		switch t := tgt.(type) {
		case TargetClass:
			class := t.Class
			for triple := range s.Match(store.Pattern{Predicate: &vocab.RDFType, Object: class}) {
				add(triple.Subject)
			}
		case TargetNode:
			add(t.Node)
		case TargetSubjectsOf:
			path := t.Path
			for triple := range s.Match(store.Pattern{Predicate: &path}) {
				add(triple.Subject)
			}
		case TargetObjectsOf:
			path := t.Path
			for triple := range s.Match(store.Pattern{Predicate: &path}) {
				add(triple.Object)
			}
		}
	}
	return out
}

// pathValues returns every value reached from focus by following path.
func pathValues(s *store.Store, focus term.Term, path term.IRI) []term.Term {
	var out []term.Term
	p := path
	for triple := range s.Match(store.Pattern{Subject: focus, Predicate: &p}) {
		out = append(out, triple.Object)
	}
	return out
}
