package interop

import (
	"bytes"

	"github.com/knakk/rdf"

	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

// DefaultGraph tags every triple exported by ExportNQuads. The engine's
// store has no named-graph concept; this is purely a wire-format
// placeholder so the N-Quads output is valid without claiming any
// named-graph semantics inside the store itself.
const DefaultGraph = "http://rdf-graph-engine.invalid/default-graph"

// ExportNQuads serializes every triple in s as N-Quads, for federating
// the store's contents to an external triple store or SPARQL endpoint.
func ExportNQuads(s *store.Store) ([]byte, error) {
	ctx, err := rdf.NewIRI(DefaultGraph)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for t := range s.All() {
		rt, ok := toKnakkTriple(t)
		if !ok {
			continue
		}
		quad := rdf.Quad{Triple: rt, Ctx: rdf.Context(ctx)}
		buf.WriteString(quad.Serialize(rdf.NQuads))
	}
	return buf.Bytes(), nil
}

func toKnakkTriple(t term.Triple) (rdf.Triple, bool) {
	subj, ok := toKnakkSubject(t.Subject)
	if !ok {
		return rdf.Triple{}, false
	}
	pred, err := rdf.NewIRI(string(t.Predicate))
	if err != nil {
		return rdf.Triple{}, false
	}
	obj, ok := toKnakkObject(t.Object)
	if !ok {
		return rdf.Triple{}, false
	}
	return rdf.Triple{Subj: subj, Pred: rdf.Predicate(pred), Obj: obj}, true
}

func toKnakkSubject(t term.Term) (rdf.Subject, bool) {
	switch v := t.(type) {
	case term.IRI:
		iri, err := rdf.NewIRI(string(v))
		if err != nil {
			return nil, false
		}
		return rdf.Subject(iri), true
	case term.BlankNode:
		blank, err := rdf.NewBlank(v.ID)
		if err != nil {
			return nil, false
		}
		return rdf.Subject(blank), true
	default:
		return nil, false
	}
}

func toKnakkObject(t term.Term) (rdf.Object, bool) {
	switch v := t.(type) {
	case term.IRI:
		iri, err := rdf.NewIRI(string(v))
		if err != nil {
			return nil, false
		}
		return rdf.Object(iri), true
	case term.BlankNode:
		blank, err := rdf.NewBlank(v.ID)
		if err != nil {
			return nil, false
		}
		return rdf.Object(blank), true
	case term.Literal:
		var lit rdf.Literal
		var err error
		switch {
		case v.Language != "":
			lit, err = rdf.NewLangLiteral(v.Lexical, v.Language)
		case v.Datatype != "" && v.Datatype != term.XSDString:
			var dt rdf.IRI
			dt, err = rdf.NewIRI(string(v.Datatype))
			if err == nil {
				lit = rdf.NewTypedLiteral(v.Lexical, dt)
			}
		default:
			lit, err = rdf.NewLiteral(v.Lexical)
		}
		if err != nil {
			return nil, false
		}
		return rdf.Object(lit), true
	default:
		return nil, false
	}
}
