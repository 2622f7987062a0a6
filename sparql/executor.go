package sparql

import (
	"sort"
	"strconv"

	"rdf-graph-engine/base"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

// Solution maps a variable name to its bound term.
type Solution map[string]term.Term

func (s Solution) clone() Solution {
	out := make(Solution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// compatible reports whether s and other agree on every variable bound
// in both.
func (s Solution) compatible(other Solution) bool {
	for k, v := range s {
		if ov, ok := other[k]; ok && !termsEqual(v, ov) {
			return false
		}
	}
	return true
}

func (s Solution) merge(other Solution) Solution {
	out := s.clone()
	for k, v := range other {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

func termsEqual(a, b term.Term) bool { return a == b }

// Result is the outcome of executing a query.
type Result struct {
	Vars      []string
	Solutions []Solution
	Triples   []term.Triple // CONSTRUCT/DESCRIBE
	Boolean   bool          // ASK
}

// Execute runs q against s, reporting anomalies (unknown filter
// functions) to sink rather than failing the query.
func Execute(s *store.Store, q Query, sink base.Sink) (Result, error) {
	sink = base.OrDiscard(sink)
	ex := &executor{store: s, sink: sink}

	switch query := q.(type) {
	case SelectQuery:
		return ex.execSelect(query)
	case ConstructQuery:
		return ex.execConstruct(query)
	case AskQuery:
		return ex.execAsk(query)
	case DescribeQuery:
		return ex.execDescribe(query)
	default:
		return Result{}, base.NewInputError(base.ErrKindSyntax, "unrecognized query form")
	}
}

type executor struct {
	store *store.Store
	sink  base.Sink
}

func (ex *executor) execSelect(q SelectQuery) (Result, error) {
	solutions, err := ex.evaluate(q.Where)
	if err != nil {
		return Result{}, err
	}
	solutions = applyModifiers(solutions, q.Modifiers, q.Distinct)

	vars := q.Vars
	if q.Star {
		vars = collectVars(q.Where)
	}
	projected := make([]Solution, len(solutions))
	for i, sol := range solutions {
		out := make(Solution)
		for _, v := range vars {
			if val, ok := sol[v]; ok {
				out[v] = val
			}
		}
		projected[i] = out
	}
	return Result{Vars: vars, Solutions: projected}, nil
}

func (ex *executor) execConstruct(q ConstructQuery) (Result, error) {
	solutions, err := ex.evaluate(q.Where)
	if err != nil {
		return Result{}, err
	}
	solutions = applyModifiers(solutions, q.Modifiers, false)

	seen := make(map[term.Triple]struct{})
	var out []term.Triple
	for _, sol := range solutions {
		for _, tpl := range q.Template {
			t, ok := instantiate(tpl, sol)
			if !ok {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return Result{Triples: out}, nil
}

func instantiate(tpl TriplePattern, sol Solution) (term.Triple, bool) {
	s := resolveTerm(tpl.Subject, sol)
	p := resolveTerm(tpl.Predicate, sol)
	o := resolveTerm(tpl.Object, sol)
	if s == nil || p == nil || o == nil {
		return term.Triple{}, false
	}
	if !term.IsSubjectTerm(s) {
		return term.Triple{}, false
	}
	predIRI, ok := p.(term.IRI)
	if !ok {
		return term.Triple{}, false
	}
	t, err := term.NewTriple(s, predIRI, o)
	if err != nil {
		return term.Triple{}, false
	}
	return t, true
}

func (ex *executor) execAsk(q AskQuery) (Result, error) {
	solutions, err := ex.evaluate(q.Where)
	if err != nil {
		return Result{}, err
	}
	return Result{Boolean: len(solutions) > 0}, nil
}

func (ex *executor) execDescribe(q DescribeQuery) (Result, error) {
	resources := append([]term.IRI{}, q.Terms...)
	if q.Where != nil {
		solutions, err := ex.evaluate(q.Where)
		if err != nil {
			return Result{}, err
		}
		for _, sol := range solutions {
			for _, v := range q.Vars {
				if val, ok := sol[v]; ok {
					if iri, ok := val.(term.IRI); ok {
						resources = append(resources, iri)
					}
				}
			}
		}
	}

	seen := make(map[term.Triple]struct{})
	var out []term.Triple
	for _, res := range resources {
		for t := range ex.store.Match(store.Pattern{Subject: res}) {
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
		for t := range ex.store.Match(store.Pattern{Object: res}) {
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	return Result{Triples: out}, nil
}

// evaluate runs the pattern list from the singleton seed solution.
func (ex *executor) evaluate(patterns []GraphPattern) ([]Solution, error) {
	solutions := []Solution{{}}
	var err error
	for _, p := range patterns {
		solutions, err = ex.step(p, solutions)
		if err != nil {
			return nil, err
		}
	}
	return solutions, nil
}

func (ex *executor) step(p GraphPattern, in []Solution) ([]Solution, error) {
	switch pat := p.(type) {
	case TriplePattern:
		return ex.stepTriple(pat, in)
	case FilterPattern:
		return ex.stepFilter(pat, in)
	case OptionalPattern:
		return ex.stepOptional(pat, in)
	case UnionPattern:
		return ex.stepUnion(pat, in)
	case GroupPattern:
		return ex.stepGroup(pat, in)
	default:
		return nil, base.NewInputError(base.ErrKindSyntax, "unrecognized graph pattern")
	}
}

func (ex *executor) stepTriple(pat TriplePattern, in []Solution) ([]Solution, error) {
	var out []Solution
	for _, sol := range in {
		spat := store.Pattern{}
		var sVar, pVar, oVar string

		if pat.Subject.IsVar() {
			if v, ok := sol[pat.Subject.Var]; ok {
				spat.Subject = v
			} else {
				sVar = pat.Subject.Var
			}
		} else {
			spat.Subject = pat.Subject.Bound
		}

		if pat.Predicate.IsVar() {
			if v, ok := sol[pat.Predicate.Var]; ok {
				if iri, ok := v.(term.IRI); ok {
					spat.Predicate = &iri
				} else {
					continue
				}
			} else {
				pVar = pat.Predicate.Var
			}
		} else {
			iri, ok := pat.Predicate.Bound.(term.IRI)
			if !ok {
				continue
			}
			spat.Predicate = &iri
		}

		if pat.Object.IsVar() {
			if v, ok := sol[pat.Object.Var]; ok {
				spat.Object = v
			} else {
				oVar = pat.Object.Var
			}
		} else {
			spat.Object = pat.Object.Bound
		}

		for t := range ex.store.Match(spat) {
			candidate := sol.clone()
			ok := true
			if sVar != "" {
				ok = bindConsistent(candidate, sVar, t.Subject)
			}
			if ok && pVar != "" {
				ok = bindConsistent(candidate, pVar, t.Predicate)
			}
			if ok && oVar != "" {
				ok = bindConsistent(candidate, oVar, t.Object)
			}
			if ok {
				out = append(out, candidate)
			}
		}
	}
	return out, nil
}

func bindConsistent(sol Solution, v string, val term.Term) bool {
	if existing, ok := sol[v]; ok {
		return termsEqual(existing, val)
	}
	sol[v] = val
	return true
}

func (ex *executor) stepFilter(pat FilterPattern, in []Solution) ([]Solution, error) {
	var out []Solution
	for _, sol := range in {
		if evalBool(pat.Expr, sol, ex.sink) {
			out = append(out, sol)
		}
	}
	return out, nil
}

func (ex *executor) stepOptional(pat OptionalPattern, in []Solution) ([]Solution, error) {
	var out []Solution
	for _, sol := range in {
		t, err := ex.evaluate(pat.Patterns)
		if err != nil {
			return nil, err
		}
		var compatible []Solution
		for _, cand := range t {
			if sol.compatible(cand) {
				compatible = append(compatible, cand)
			}
		}
		if len(compatible) == 0 {
			out = append(out, sol)
			continue
		}
		for _, cand := range compatible {
			out = append(out, sol.merge(cand))
		}
	}
	return out, nil
}

func (ex *executor) stepUnion(pat UnionPattern, in []Solution) ([]Solution, error) {
	left, err := ex.evaluate(pat.Left)
	if err != nil {
		return nil, err
	}
	right, err := ex.evaluate(pat.Right)
	if err != nil {
		return nil, err
	}

	var out []Solution
	seen := make(map[string]struct{})
	addJoined := func(branch []Solution) {
		for _, sol := range in {
			for _, cand := range branch {
				if !sol.compatible(cand) {
					continue
				}
				merged := sol.merge(cand)
				key := solutionKey(merged)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, merged)
			}
		}
	}
	addJoined(left)
	addJoined(right)
	return out, nil
}

func (ex *executor) stepGroup(pat GroupPattern, in []Solution) ([]Solution, error) {
	t, err := ex.evaluate(pat.Patterns)
	if err != nil {
		return nil, err
	}
	var out []Solution
	for _, sol := range in {
		for _, cand := range t {
			if sol.compatible(cand) {
				out = append(out, sol.merge(cand))
			}
		}
	}
	return out, nil
}

func solutionKey(sol Solution) string {
	names := make([]string, 0, len(sol))
	for k := range sol {
		names = append(names, k)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		key += n + "=" + sol[n].String() + ";"
	}
	return key
}

func resolveTerm(pt PatternTerm, sol Solution) term.Term {
	if pt.IsVar() {
		if v, ok := sol[pt.Var]; ok {
			return v
		}
		return nil
	}
	return pt.Bound
}

func applyModifiers(solutions []Solution, mods Modifiers, distinct bool) []Solution {
	if distinct {
		seen := make(map[string]struct{})
		var out []Solution
		for _, sol := range solutions {
			key := solutionKey(sol)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, sol)
		}
		solutions = out
	}

	if len(mods.OrderBy) > 0 {
		solutions = orderBy(solutions, mods.OrderBy)
	}

	if mods.Offset != nil {
		n := *mods.Offset
		if n >= len(solutions) {
			solutions = nil
		} else {
			solutions = solutions[n:]
		}
	}
	if mods.Limit != nil {
		n := *mods.Limit
		if n < len(solutions) {
			solutions = solutions[:n]
		}
	}
	return solutions
}

// orderBy stable-sorts by applying keys in reverse order, so the first
// key in mods.OrderBy dominates.
func orderBy(solutions []Solution, keys []OrderTerm) []Solution {
	out := append([]Solution{}, solutions...)
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		sort.SliceStable(out, func(a, b int) bool {
			less := termLess(out[a][k.Var], out[b][k.Var])
			if k.Desc {
				return termLess(out[b][k.Var], out[a][k.Var])
			}
			return less
		})
	}
	return out
}

// termLess orders unbound (nil) before any bound term, then IRI <
// BlankNode < Literal, ties broken by string form.
func termLess(a, b term.Term) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil {
		return true
	}
	if b == nil {
		return false
	}
	ra, rb := termRank(a), termRank(b)
	if ra != rb {
		return ra < rb
	}
	return a.String() < b.String()
}

func termRank(t term.Term) int {
	switch t.(type) {
	case term.IRI:
		return 0
	case term.BlankNode:
		return 1
	default:
		return 2
	}
}

func collectVars(patterns []GraphPattern) []string {
	seen := make(map[string]struct{})
	var out []string
	var visit func(p GraphPattern)
	addVar := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	visit = func(p GraphPattern) {
		switch pat := p.(type) {
		case TriplePattern:
			addVar(pat.Subject.Var)
			addVar(pat.Predicate.Var)
			addVar(pat.Object.Var)
		case OptionalPattern:
			for _, sub := range pat.Patterns {
				visit(sub)
			}
		case UnionPattern:
			for _, sub := range pat.Left {
				visit(sub)
			}
			for _, sub := range pat.Right {
				visit(sub)
			}
		case GroupPattern:
			for _, sub := range pat.Patterns {
				visit(sub)
			}
		}
	}
	for _, p := range patterns {
		visit(p)
	}
	return out
}

// evalBool evaluates a filter expression to a boolean, per spec.md §4.4.
func evalBool(e Expr, sol Solution, sink base.Sink) bool {
	switch expr := e.(type) {
	case VarExpr:
		_, ok := sol[expr.Name]
		return ok
	case ConstExpr:
		return true
	case CmpExpr:
		return evalCmp(expr, sol, sink)
	case LogicExpr:
		switch expr.Op {
		case LogicAnd:
			for _, a := range expr.Args {
				if !evalBool(a, sol, sink) {
					return false
				}
			}
			return true
		case LogicOr:
			for _, a := range expr.Args {
				if evalBool(a, sol, sink) {
					return true
				}
			}
			return false
		case LogicNot:
			return !evalBool(expr.Args[0], sol, sink)
		}
		return false
	case CallExpr:
		return evalCall(expr, sol, sink)
	default:
		return false
	}
}

func evalCmp(e CmpExpr, sol Solution, sink base.Sink) bool {
	lhs, lok := evalValue(e.Lhs, sol)
	rhs, rok := evalValue(e.Rhs, sol)
	if !lok || !rok {
		return false
	}
	switch e.Op {
	case CmpEq:
		return termsEqual(lhs, rhs)
	case CmpNe:
		return !termsEqual(lhs, rhs)
	default:
		lf, lok := numericValue(lhs)
		rf, rok := numericValue(rhs)
		if !lok || !rok {
			return false
		}
		switch e.Op {
		case CmpLt:
			return lf < rf
		case CmpLe:
			return lf <= rf
		case CmpGt:
			return lf > rf
		case CmpGe:
			return lf >= rf
		}
		return false
	}
}

// evalValue resolves an expression to a single term, or ok=false if the
// referenced variable is unbound.
func evalValue(e Expr, sol Solution) (term.Term, bool) {
	switch expr := e.(type) {
	case VarExpr:
		v, ok := sol[expr.Name]
		return v, ok
	case ConstExpr:
		return expr.Value, true
	default:
		return nil, false
	}
}

func numericValue(t term.Term) (float64, bool) {
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

func evalCall(e CallExpr, sol Solution, sink base.Sink) bool {
	switch e.Name {
	case "bound":
		if len(e.Args) != 1 {
			return false
		}
		v, ok := e.Args[0].(VarExpr)
		if !ok {
			return false
		}
		_, bound := sol[v.Name]
		return bound
	case "isIRI", "isURI":
		return typeTagMatches(e.Args, sol, func(t term.Term) bool { _, ok := t.(term.IRI); return ok })
	case "isLiteral":
		return typeTagMatches(e.Args, sol, func(t term.Term) bool { _, ok := t.(term.Literal); return ok })
	case "isBlank":
		return typeTagMatches(e.Args, sol, func(t term.Term) bool { _, ok := t.(term.BlankNode); return ok })
	default:
		sink.Warn("unknown filter function", "name", e.Name)
		return false
	}
}

func typeTagMatches(args []Expr, sol Solution, predicate func(term.Term) bool) bool {
	if len(args) != 1 {
		return false
	}
	v, ok := evalValue(args[0], sol)
	if !ok {
		return false
	}
	return predicate(v)
}
