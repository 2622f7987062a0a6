package shacl

import (
	"strconv"

	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

// LoadShapes parses every sh:NodeShape found in s into a *NodeShape,
// supplementing the programmatic NewNodeShape/NewPropertyShape
// constructors with the ability to load shapes that were themselves
// ingested as ordinary triples (e.g. via interop.ImportTurtle).
//
// Every constraint kind in constraints.go except Xone is recognized
// (sh:xone is not read); properties using an unrecognized SHACL predicate
// are parsed for sh:path and otherwise ignored.
func LoadShapes(s *store.Store) ([]*NodeShape, error) {
	nodeShapeType := vocab.SHNodeShape
	rdfType := vocab.RDFType
	var shapes []*NodeShape
	for triple := range s.Match(store.Pattern{Predicate: &rdfType, Object: nodeShapeType}) {
		id, ok := triple.Subject.(term.IRI)
		if !ok {
			continue
		}
		shapes = append(shapes, parseNodeShape(s, id))
	}
	return shapes, nil
}

func parseNodeShape(s *store.Store, id term.Term) *NodeShape {
	shape := &NodeShape{ID: id, Severity: Violation}

	for _, class := range objectsOf(s, id, vocab.SHTargetClass) {
		if iri, ok := class.(term.IRI); ok {
			shape.Targets = append(shape.Targets, TargetClass{Class: iri})
		}
	}
	for _, node := range objectsOf(s, id, vocab.SHTargetNode) {
		shape.Targets = append(shape.Targets, TargetNode{Node: node})
	}
	for _, p := range objectsOf(s, id, vocab.SHTargetSubjOf) {
		if iri, ok := p.(term.IRI); ok {
			shape.Targets = append(shape.Targets, TargetSubjectsOf{Path: iri})
		}
	}
	for _, p := range objectsOf(s, id, vocab.SHTargetObjOf) {
		if iri, ok := p.(term.IRI); ok {
			shape.Targets = append(shape.Targets, TargetObjectsOf{Path: iri})
		}
	}

	if msgs := objectsOf(s, id, vocab.SHMessage); len(msgs) > 0 {
		if lit, ok := msgs[0].(term.Literal); ok {
			shape.Message = lit.Lexical
		}
	}
	shape.Severity = parseSeverity(s, id)
	shape.Deactivated = isDeactivated(s, id)
	shape.Constraints = parseConstraints(s, id)

	for _, propID := range objectsOf(s, id, vocab.SHProperty) {
		shape.PropertyShapes = append(shape.PropertyShapes, parsePropertyShape(s, propID))
	}
	return shape
}

func parsePropertyShape(s *store.Store, id term.Term) *PropertyShape {
	prop := &PropertyShape{ID: id, Severity: Violation}
	if paths := objectsOf(s, id, vocab.SHPath); len(paths) > 0 {
		if iri, ok := paths[0].(term.IRI); ok {
			prop.Path = iri
		}
	}
	if names := objectsOf(s, id, vocab.SHName); len(names) > 0 {
		if lit, ok := names[0].(term.Literal); ok {
			prop.Name = lit.Lexical
		}
	}
	if msgs := objectsOf(s, id, vocab.SHMessage); len(msgs) > 0 {
		if lit, ok := msgs[0].(term.Literal); ok {
			prop.Message = lit.Lexical
		}
	}
	prop.Severity = parseSeverity(s, id)
	prop.Deactivated = isDeactivated(s, id)
	prop.Constraints = parseConstraints(s, id)
	return prop
}

func parseSeverity(s *store.Store, id term.Term) Severity {
	sevs := objectsOf(s, id, vocab.SHSeverity)
	if len(sevs) == 0 {
		return Violation
	}
	switch sevs[0] {
	case term.Term(vocab.SHWarning):
		return Warning
	case term.Term(vocab.SHInfo):
		return Info
	default:
		return Violation
	}
}

func isDeactivated(s *store.Store, id term.Term) bool {
	vals := objectsOf(s, id, vocab.SHDeactivated)
	if len(vals) == 0 {
		return false
	}
	lit, ok := vals[0].(term.Literal)
	return ok && lit.Lexical == "true"
}

func parseConstraints(s *store.Store, id term.Term) []Constraint {
	var out []Constraint
	if vals := objectsOf(s, id, vocab.SHMinCount); len(vals) > 0 {
		if n, ok := asInt(vals[0]); ok {
			out = append(out, MinCount{N: n})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMaxCount); len(vals) > 0 {
		if n, ok := asInt(vals[0]); ok {
			out = append(out, MaxCount{N: n})
		}
	}
	if vals := objectsOf(s, id, vocab.SHDatatype); len(vals) > 0 {
		if iri, ok := vals[0].(term.IRI); ok {
			out = append(out, Datatype{DT: iri})
		}
	}
	if vals := objectsOf(s, id, vocab.SHClass); len(vals) > 0 {
		if iri, ok := vals[0].(term.IRI); ok {
			out = append(out, Class{IRI: iri})
		}
	}
	if vals := objectsOf(s, id, vocab.SHNodeKind); len(vals) > 0 {
		if kind, ok := parseNodeKind(vals[0]); ok {
			out = append(out, NodeKindConstraint{Kind: kind})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMinLength); len(vals) > 0 {
		if n, ok := asInt(vals[0]); ok {
			out = append(out, MinLength{N: n})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMaxLength); len(vals) > 0 {
		if n, ok := asInt(vals[0]); ok {
			out = append(out, MaxLength{N: n})
		}
	}
	if vals := objectsOf(s, id, vocab.SHPattern); len(vals) > 0 {
		if lit, ok := vals[0].(term.Literal); ok {
			p := Pattern{Regex: lit.Lexical}
			if flags := objectsOf(s, id, vocab.SHFlags); len(flags) > 0 {
				if flit, ok := flags[0].(term.Literal); ok {
					p.Flags = flit.Lexical
				}
			}
			out = append(out, p)
		}
	}
	if vals := objectsOf(s, id, vocab.SHLanguageIn); len(vals) > 0 {
		var langs []string
		for _, item := range rdfListOf(s, vals[0]) {
			if lit, ok := item.(term.Literal); ok {
				langs = append(langs, lit.Lexical)
			}
		}
		if len(langs) > 0 {
			out = append(out, LanguageIn{Langs: langs})
		}
	}
	if vals := objectsOf(s, id, vocab.SHHasValue); len(vals) > 0 {
		out = append(out, HasValue{Value: vals[0]})
	}
	if vals := objectsOf(s, id, vocab.SHIn); len(vals) > 0 {
		if list := rdfListOf(s, vals[0]); len(list) > 0 {
			out = append(out, In{List: list})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMinInclusive); len(vals) > 0 {
		if f, ok := asFloat(vals[0]); ok {
			out = append(out, MinInclusive{X: f})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMaxInclusive); len(vals) > 0 {
		if f, ok := asFloat(vals[0]); ok {
			out = append(out, MaxInclusive{X: f})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMinExclusive); len(vals) > 0 {
		if f, ok := asFloat(vals[0]); ok {
			out = append(out, MinExclusive{X: f})
		}
	}
	if vals := objectsOf(s, id, vocab.SHMaxExclusive); len(vals) > 0 {
		if f, ok := asFloat(vals[0]); ok {
			out = append(out, MaxExclusive{X: f})
		}
	}
	if vals := objectsOf(s, id, vocab.SHEquals); len(vals) > 0 {
		if iri, ok := vals[0].(term.IRI); ok {
			out = append(out, Equals{Path: iri})
		}
	}
	if vals := objectsOf(s, id, vocab.SHDisjoint); len(vals) > 0 {
		if iri, ok := vals[0].(term.IRI); ok {
			out = append(out, Disjoint{Path: iri})
		}
	}
	if vals := objectsOf(s, id, vocab.SHAnd); len(vals) > 0 {
		if shapes := parseShapeList(s, vals[0]); len(shapes) > 0 {
			out = append(out, And{Shapes: shapes})
		}
	}
	if vals := objectsOf(s, id, vocab.SHOr); len(vals) > 0 {
		if shapes := parseShapeList(s, vals[0]); len(shapes) > 0 {
			out = append(out, Or{Shapes: shapes})
		}
	}
	if vals := objectsOf(s, id, vocab.SHNot); len(vals) > 0 {
		out = append(out, Not{Shape: parseNodeShape(s, vals[0])})
	}
	return out
}

func parseNodeKind(v term.Term) (NodeKind, bool) {
	switch v {
	case term.Term(vocab.SHIRI):
		return KindIRI, true
	case term.Term(vocab.SHBlankNode):
		return KindBlankNode, true
	case term.Term(vocab.SHLiteral):
		return KindLiteral, true
	case term.Term(vocab.SHBlankNodeOrIRI):
		return KindBlankNodeOrIRI, true
	case term.Term(vocab.SHBlankNodeOrLiteral):
		return KindBlankNodeOrLiteral, true
	case term.Term(vocab.SHIRIOrLiteral):
		return KindIRIOrLiteral, true
	default:
		return 0, false
	}
}

// parseShapeList walks an RDF collection of anonymous node shapes, as
// used by sh:and and sh:or.
func parseShapeList(s *store.Store, head term.Term) []*NodeShape {
	var out []*NodeShape
	for _, item := range rdfListOf(s, head) {
		out = append(out, parseNodeShape(s, item))
	}
	return out
}

// rdfListOf walks an rdf:first/rdf:rest collection starting at head and
// returns its members in order, stopping at rdf:nil or the first broken
// link.
func rdfListOf(s *store.Store, head term.Term) []term.Term {
	var out []term.Term
	for head != term.Term(vocab.RDFNil) {
		firsts := objectsOf(s, head, vocab.RDFFirst)
		if len(firsts) == 0 {
			break
		}
		out = append(out, firsts[0])
		rests := objectsOf(s, head, vocab.RDFRest)
		if len(rests) == 0 {
			break
		}
		head = rests[0]
	}
	return out
}

func objectsOf(s *store.Store, subj term.Term, pred term.IRI) []term.Term {
	var out []term.Term
	for triple := range s.Match(store.Pattern{Subject: subj, Predicate: &pred}) {
		out = append(out, triple.Object)
	}
	return out
}

func asInt(t term.Term) (int, bool) {
	lit, ok := t.(term.Literal)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(lit.Lexical)
	return n, err == nil
}

func asFloat(t term.Term) (float64, bool) {
	lit, ok := t.(term.Literal)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit.Lexical, 64)
	return f, err == nil
}
