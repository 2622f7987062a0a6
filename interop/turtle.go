// Package interop bridges the in-process store to external RDF formats
// and federated endpoints. The core packages (term, store, sparql, shacl)
// never depend on a text syntax; interop is the only place that does.
package interop

import (
	"bytes"

	"github.com/deiu/rdf2go"

	"rdf-graph-engine/base"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

// ImportTurtle parses Turtle text and adds every resulting triple to s.
// Triples whose subject, predicate, or object cannot be represented by
// the engine's term model (e.g. a predicate that isn't a named node) are
// skipped with a warning rather than failing the whole import, mirroring
// the store's total-operation failure model.
func ImportTurtle(s *store.Store, data []byte, sink base.Sink) (imported int, err error) {
	sink = base.OrDiscard(sink)
	graph, err := base.ParseGraph(bytes.NewReader(base.FixBooleansInRDF(data)))
	if err != nil {
		return 0, err
	}
	for triple := range graph.IterTriples() {
		t, ok := convertTriple(triple)
		if !ok {
			sink.Warn("skipping triple with unsupported term shape", "triple", triple.String())
			continue
		}
		if s.Add(t) {
			imported++
		}
	}
	return imported, nil
}

func convertTriple(t *rdf2go.Triple) (term.Triple, bool) {
	subj, ok := convertSubjectTerm(t.Subject)
	if !ok {
		return term.Triple{}, false
	}
	pred, ok := t.Predicate.(*rdf2go.Resource)
	if !ok {
		return term.Triple{}, false
	}
	obj, ok := convertTerm(t.Object)
	if !ok {
		return term.Triple{}, false
	}
	triple, err := term.NewTriple(subj, term.IRI(pred.URI), obj)
	if err != nil {
		return term.Triple{}, false
	}
	return triple, true
}

func convertSubjectTerm(t rdf2go.Term) (term.Term, bool) {
	switch v := t.(type) {
	case *rdf2go.Resource:
		return term.IRI(v.URI), true
	case *rdf2go.BlankNode:
		return term.BlankNode{ID: v.ID}, true
	default:
		return nil, false
	}
}

func convertTerm(t rdf2go.Term) (term.Term, bool) {
	switch v := t.(type) {
	case *rdf2go.Resource:
		return term.IRI(v.URI), true
	case *rdf2go.BlankNode:
		return term.BlankNode{ID: v.ID}, true
	case *rdf2go.Literal:
		if v.Language != "" {
			lit, err := term.NewLangLiteral(v.Value, v.Language)
			if err != nil {
				return nil, false
			}
			return lit, true
		}
		if v.Datatype != nil {
			return term.NewTypedLiteral(v.Value, term.IRI(v.Datatype.String())), true
		}
		return term.NewStringLiteral(v.Value), true
	default:
		return nil, false
	}
}

// ExportTurtle serializes every triple in s as Turtle text, using an
// rdf2go graph purely as a writer since the engine never owns a Turtle
// serializer of its own.
func ExportTurtle(s *store.Store) ([]byte, error) {
	graph := rdf2go.NewGraph("")
	for t := range s.All() {
		rt, ok := toRdf2go(t)
		if !ok {
			continue
		}
		graph.Add(rt)
	}
	var buf bytes.Buffer
	if err := graph.Serialize(&buf, "text/turtle"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRdf2go(t term.Triple) (*rdf2go.Triple, bool) {
	subj, ok := toRdf2goTerm(t.Subject)
	if !ok {
		return nil, false
	}
	obj, ok := toRdf2goTerm(t.Object)
	if !ok {
		return nil, false
	}
	return rdf2go.NewTriple(subj, rdf2go.NewResource(string(t.Predicate)), obj), true
}

func toRdf2goTerm(t term.Term) (rdf2go.Term, bool) {
	switch v := t.(type) {
	case term.IRI:
		return rdf2go.NewResource(string(v)), true
	case term.BlankNode:
		return rdf2go.NewBlankNode(v.ID), true
	case term.Literal:
		if v.Language != "" {
			return rdf2go.NewLiteralWithLanguage(v.Lexical, v.Language), true
		}
		if v.Datatype != term.XSDString && v.Datatype != "" {
			return rdf2go.NewLiteralWithDatatype(v.Lexical, rdf2go.NewResource(string(v.Datatype))), true
		}
		return rdf2go.NewLiteral(v.Lexical), true
	default:
		return nil, false
	}
}
