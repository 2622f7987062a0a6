package shacl

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"rdf-graph-engine/base"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

// Validate runs every shape in shapes against s and returns the combined
// report. Malformed constraints (e.g. an invalid regex) are reported to
// sink as warnings and contribute no violation (spec.md §4.5).
func Validate(s *store.Store, shapes []*NodeShape, sink base.Sink) *ValidationReport {
	sink = base.OrDiscard(sink)
	report := newReport()
	for _, shape := range shapes {
		validateNodeShape(s, shape, report, sink)
	}
	return report
}

func validateNodeShape(s *store.Store, shape *NodeShape, report *ValidationReport, sink base.Sink) {
	if shape.Deactivated {
		return
	}
	for _, focus := range resolveTargets(s, shape.Targets) {
		validateFocusAgainstShape(s, focus, shape, report, sink)
	}
}

// validateFocusAgainstShape evaluates shape's own constraints (with
// focus as the sole value) plus every property shape's constraints
// against focus.
func validateFocusAgainstShape(s *store.Store, focus term.Term, shape *NodeShape, report *ValidationReport, sink base.Sink) {
	for _, c := range shape.Constraints {
		evalConstraint(s, c, focus, []term.Term{focus}, shapeResultFn(focus, nil, shape.ID, shape.Message, shape.Severity, report), sink)
	}
	for _, prop := range shape.PropertyShapes {
		if prop.Deactivated {
			continue
		}
		values := pathValues(s, focus, prop.Path)
		path := prop.Path
		for _, c := range prop.Constraints {
			evalConstraint(s, c, focus, values, shapeResultFn(focus, &path, prop.ID, prop.Message, prop.Severity, report), sink)
		}
	}
}

// emit is called by evalConstraint once per violation found; value is nil
// for set-level constraints (cardinality, HasValue, Equals, Disjoint) and
// for Or, Not, and Xone.
type emitFn func(value term.Term, constraint Constraint, defaultMsg string)

func shapeResultFn(focus term.Term, path *term.IRI, source term.Term, customMsg string, sev Severity, report *ValidationReport) emitFn {
	return func(value term.Term, constraint Constraint, defaultMsg string) {
		msg := defaultMsg
		if customMsg != "" {
			msg = customMsg
		}
		report.add(ValidationResult{
			FocusNode:   focus,
			ResultPath:  path,
			Value:       value,
			SourceShape: source,
			Constraint:  constraint,
			Message:     msg,
			Severity:    sev,
		})
	}
}

func evalConstraint(s *store.Store, c Constraint, focus term.Term, values []term.Term, emit emitFn, sink base.Sink) {
	switch cc := c.(type) {
	case MinCount:
		if len(values) < cc.N {
			emit(nil, cc, fmt.Sprintf("expected at least %d values, got %d", cc.N, len(values)))
		}
	case MaxCount:
		if len(values) > cc.N {
			emit(nil, cc, fmt.Sprintf("expected at most %d values, got %d", cc.N, len(values)))
		}

	case Datatype:
		for _, v := range values {
			lit, ok := v.(term.Literal)
			if !ok || lit.Datatype != cc.DT {
				emit(v, cc, fmt.Sprintf("value is not a literal of datatype %s", cc.DT))
			}
		}
	case Class:
		for _, v := range values {
			if !term.IsSubjectTerm(v) {
				emit(v, cc, fmt.Sprintf("value is not an instance of %s", cc.IRI))
				continue
			}
			typeIRI := vocab.RDFType
			found := false
			for range s.Match(store.Pattern{Subject: v, Predicate: &typeIRI, Object: cc.IRI}) {
				found = true
				break
			}
			if !found {
				emit(v, cc, fmt.Sprintf("value is not an instance of %s", cc.IRI))
			}
		}
	case NodeKindConstraint:
		for _, v := range values {
			if !nodeKindMatches(v, cc.Kind) {
				emit(v, cc, "value does not match the required node kind")
			}
		}

	case MinLength:
		for _, v := range values {
			if lit, ok := v.(term.Literal); ok && utf8.RuneCountInString(lit.Lexical) < cc.N {
				emit(v, cc, fmt.Sprintf("literal shorter than minimum length %d", cc.N))
			}
		}
	case MaxLength:
		for _, v := range values {
			if lit, ok := v.(term.Literal); ok && utf8.RuneCountInString(lit.Lexical) > cc.N {
				emit(v, cc, fmt.Sprintf("literal longer than maximum length %d", cc.N))
			}
		}
	case Pattern:
		flags := ""
		if cc.Flags == "i" {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + cc.Regex)
		if err != nil {
			sink.Warn("invalid SHACL pattern constraint", "regex", cc.Regex, "error", err)
			return
		}
		for _, v := range values {
			if lit, ok := v.(term.Literal); ok && !re.MatchString(lit.Lexical) {
				emit(v, cc, "literal does not match required pattern")
			}
		}
	case LanguageIn:
		allowed := make(map[string]struct{}, len(cc.Langs))
		for _, l := range cc.Langs {
			allowed[l] = struct{}{}
		}
		for _, v := range values {
			lit, ok := v.(term.Literal)
			if !ok || lit.Language == "" {
				continue
			}
			if _, ok := allowed[lit.Language]; !ok {
				emit(v, cc, "literal language tag not in allowed set")
			}
		}

	case HasValue:
		found := false
		for _, v := range values {
			if v == cc.Value {
				found = true
				break
			}
		}
		if !found {
			emit(nil, cc, fmt.Sprintf("required value %s not present", cc.Value))
		}
	case In:
		set := make(map[term.Term]struct{}, len(cc.List))
		for _, item := range cc.List {
			set[item] = struct{}{}
		}
		for _, v := range values {
			if _, ok := set[v]; !ok {
				emit(v, cc, "value not in allowed set")
			}
		}

	case MinInclusive:
		for _, v := range values {
			if f, ok := numericValueOf(v); ok && f < cc.X {
				emit(v, cc, fmt.Sprintf("value below minimum %v", cc.X))
			}
		}
	case MaxInclusive:
		for _, v := range values {
			if f, ok := numericValueOf(v); ok && f > cc.X {
				emit(v, cc, fmt.Sprintf("value above maximum %v", cc.X))
			}
		}
	case MinExclusive:
		for _, v := range values {
			if f, ok := numericValueOf(v); ok && f <= cc.X {
				emit(v, cc, fmt.Sprintf("value not above exclusive minimum %v", cc.X))
			}
		}
	case MaxExclusive:
		for _, v := range values {
			if f, ok := numericValueOf(v); ok && f >= cc.X {
				emit(v, cc, fmt.Sprintf("value not below exclusive maximum %v", cc.X))
			}
		}

	case Equals:
		other := pathValues(s, focus, cc.Path)
		if !sameSet(values, other) {
			emit(nil, cc, fmt.Sprintf("value set does not equal value set of %s", cc.Path))
		}
	case Disjoint:
		other := pathValues(s, focus, cc.Path)
		if intersects(values, other) {
			emit(nil, cc, fmt.Sprintf("value set intersects value set of %s", cc.Path))
		}

	case And:
		for _, v := range values {
			for _, sub := range cc.Shapes {
				r := newReport()
				validateFocusAgainstShape(s, v, sub, r, sink)
				for _, res := range r.Results {
					emit(res.Value, c, res.Message)
				}
			}
		}
	case Or:
		allFailed := true
		for _, sub := range cc.Shapes {
			r := newReport()
			validateFocusAgainstShape(s, focus, sub, r, sink)
			if len(r.Results) == 0 {
				allFailed = false
				break
			}
		}
		if allFailed {
			emit(nil, cc, "value conforms to none of the alternative shapes")
		}
	case Not:
		r := newReport()
		validateFocusAgainstShape(s, focus, cc.Shape, r, sink)
		if len(r.Results) == 0 {
			emit(nil, cc, "value conforms to the negated shape")
		}
	case Xone:
		conformCount := 0
		for _, sub := range cc.Shapes {
			r := newReport()
			validateFocusAgainstShape(s, focus, sub, r, sink)
			if len(r.Results) == 0 {
				conformCount++
			}
		}
		if conformCount != 1 {
			emit(nil, cc, "value must conform to exactly one alternative shape")
		}

	default:
		sink.Warn("unknown SHACL constraint kind, skipping", "type", fmt.Sprintf("%T", c))
	}
}

func nodeKindMatches(v term.Term, kind NodeKind) bool {
	switch v.(type) {
	case term.IRI:
		return kind == KindIRI || kind == KindBlankNodeOrIRI || kind == KindIRIOrLiteral
	case term.BlankNode:
		return kind == KindBlankNode || kind == KindBlankNodeOrIRI || kind == KindBlankNodeOrLiteral
	case term.Literal:
		return kind == KindLiteral || kind == KindBlankNodeOrLiteral || kind == KindIRIOrLiteral
	default:
		return false
	}
}

func numericValueOf(t term.Term) (float64, bool) {
	lit, ok := t.(term.Literal)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit.Lexical, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func sameSet(a, b []term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[term.Term]int)
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

func intersects(a, b []term.Term) bool {
	set := make(map[term.Term]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
