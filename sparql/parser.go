package sparql

import (
	"strconv"
	"strings"

	"rdf-graph-engine/base"
	"rdf-graph-engine/term"
)

// PrefixResolver resolves a "prefix:local" qname to an absolute IRI. The
// store's prefix registry satisfies this.
type PrefixResolver interface {
	Expand(qname string) (term.IRI, error)
}

// parser is a recursive-descent parser over the token stream produced by
// lexer. PREFIX declarations accumulate into local overrides on top of
// resolver, so a query may shadow or supplement the store's registry.
type parser struct {
	toks     []Token
	pos      int
	resolver PrefixResolver
	local    map[string]string
}

// Parse parses SPARQL query text into a Query AST, resolving prefixed
// names against resolver (typically the target store's prefix registry).
func Parse(text string, resolver PrefixResolver) (Query, error) {
	lx := newLexer(text)
	var toks []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	p := &parser{toks: toks, resolver: resolver, local: make(map[string]string)}
	return p.parseQuery()
}

func (p *parser) cur() Token  { return p.toks[p.pos] }
func (p *parser) advance()    { if p.pos < len(p.toks)-1 { p.pos++ } }

func (p *parser) expectSymbol(sym string) error {
	if p.cur().Kind != TokSymbol || p.cur().Text != sym {
		return base.NewInputError(base.ErrKindSyntax, "expected '"+sym+"'")
	}
	p.advance()
	return nil
}

func (p *parser) atKeyword(kw string) bool {
	return p.cur().Kind == TokKeyword && p.cur().Text == kw
}

func (p *parser) parseQuery() (Query, error) {
	for p.atKeyword("PREFIX") {
		p.advance()
		if p.cur().Kind != TokIRI {
			return nil, base.NewInputError(base.ErrKindSyntax, "expected prefix name after PREFIX")
		}
		prefix := strings.TrimSuffix(p.cur().Text, ":")
		p.advance()
		if p.cur().Kind != TokIRI || p.cur().IRIValue == "" {
			return nil, base.NewInputError(base.ErrKindSyntax, "expected <namespace> after prefix")
		}
		p.local[prefix] = p.cur().IRIValue
		p.advance()
	}

	switch {
	case p.atKeyword("SELECT"):
		return p.parseSelect()
	case p.atKeyword("CONSTRUCT"):
		return p.parseConstruct()
	case p.atKeyword("ASK"):
		return p.parseAsk()
	case p.atKeyword("DESCRIBE"):
		return p.parseDescribe()
	default:
		return nil, base.NewInputError(base.ErrKindSyntax, "expected SELECT, CONSTRUCT, ASK, or DESCRIBE")
	}
}

func (p *parser) resolveIRI(tok Token) (term.IRI, error) {
	if tok.IRIValue != "" {
		return term.IRI(tok.IRIValue), nil
	}
	if tok.BareWord {
		return "", base.NewInputError(base.ErrKindSyntax, "unexpected bare identifier: "+tok.Text)
	}
	if ns, ok := p.local[tok.Prefix]; ok {
		return term.IRI(ns + tok.Local), nil
	}
	if p.resolver != nil {
		return p.resolver.Expand(tok.Text)
	}
	return "", base.NewInputError(base.ErrKindUnknownPrefix, "unknown prefix: "+tok.Prefix)
}

func (p *parser) parseSelect() (Query, error) {
	p.advance() // SELECT
	q := SelectQuery{}
	if p.atKeyword("DISTINCT") {
		q.Distinct = true
		p.advance()
	}
	if p.cur().Kind == TokSymbol && p.cur().Text == "*" {
		q.Star = true
		p.advance()
	} else {
		for p.cur().Kind == TokVariable {
			q.Vars = append(q.Vars, p.cur().Text)
			p.advance()
		}
		if len(q.Vars) == 0 {
			return nil, base.NewInputError(base.ErrKindSyntax, "expected variable list or '*' after SELECT")
		}
	}
	if !p.atKeyword("WHERE") {
		return nil, base.NewInputError(base.ErrKindSyntax, "expected WHERE")
	}
	p.advance()
	where, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	q.Where = where
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	q.Modifiers = mods
	return q, nil
}

func (p *parser) parseConstruct() (Query, error) {
	p.advance() // CONSTRUCT
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	template, err := p.parseTriplePatterns("}")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	if !p.atKeyword("WHERE") {
		return nil, base.NewInputError(base.ErrKindSyntax, "expected WHERE")
	}
	p.advance()
	where, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	return ConstructQuery{Template: template, Where: where, Modifiers: mods}, nil
}

func (p *parser) parseAsk() (Query, error) {
	p.advance() // ASK
	if p.atKeyword("WHERE") {
		p.advance()
	}
	where, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	return AskQuery{Where: where}, nil
}

func (p *parser) parseDescribe() (Query, error) {
	p.advance() // DESCRIBE
	var q DescribeQuery
	for p.cur().Kind == TokVariable || (p.cur().Kind == TokIRI && !p.atKeyword("WHERE")) {
		if p.cur().Kind == TokVariable {
			q.Vars = append(q.Vars, p.cur().Text)
			p.advance()
			continue
		}
		iri, err := p.resolveIRI(p.cur())
		if err != nil {
			return nil, err
		}
		q.Terms = append(q.Terms, iri)
		p.advance()
	}
	if p.atKeyword("WHERE") {
		p.advance()
		where, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		q.Where = where
	}
	return q, nil
}

// parseGroup parses a '{' ... '}' graph pattern group, handling nested
// groups, OPTIONAL, UNION, and FILTER.
func (p *parser) parseGroup() ([]GraphPattern, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	patterns, err := p.parsePatternList()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return patterns, nil
}

func (p *parser) parsePatternList() ([]GraphPattern, error) {
	var out []GraphPattern
	for {
		switch {
		case p.cur().Kind == TokSymbol && p.cur().Text == "}":
			return out, nil
		case p.atKeyword("FILTER"):
			p.advance()
			if err := p.expectSymbol("("); err != nil {
				return nil, err
			}
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			out = append(out, FilterPattern{Expr: expr})
		case p.atKeyword("OPTIONAL"):
			p.advance()
			inner, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			out = append(out, OptionalPattern{Patterns: inner})
		case p.cur().Kind == TokSymbol && p.cur().Text == "{":
			left, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			if p.atKeyword("UNION") {
				p.advance()
				right, err := p.parseGroup()
				if err != nil {
					return nil, err
				}
				out = append(out, UnionPattern{Left: left, Right: right})
			} else {
				out = append(out, GroupPattern{Patterns: left})
			}
		default:
			triples, err := p.parseTriplePatterns("}")
			if err != nil {
				return nil, err
			}
			for _, t := range triples {
				out = append(out, t)
			}
			if len(triples) == 0 {
				return out, nil
			}
		}
	}
}

// parseTriplePatterns parses a sequence of "s p o ." triples terminated
// by stop (a symbol) or a keyword that starts a non-triple construct.
func (p *parser) parseTriplePatterns(stop string) ([]TriplePattern, error) {
	var out []TriplePattern
	for {
		if p.cur().Kind == TokSymbol && p.cur().Text == stop {
			return out, nil
		}
		if p.cur().Kind == TokKeyword && (p.cur().Text == "FILTER" || p.cur().Text == "OPTIONAL" || p.cur().Text == "UNION") {
			return out, nil
		}
		if p.cur().Kind == TokSymbol && p.cur().Text == "{" {
			return out, nil
		}
		if p.cur().Kind == TokEOF {
			return out, nil
		}

		s, err := p.parsePatternTerm(true)
		if err != nil {
			return nil, err
		}
		pr, err := p.parsePatternTerm(false)
		if err != nil {
			return nil, err
		}
		o, err := p.parsePatternTerm(true)
		if err != nil {
			return nil, err
		}
		out = append(out, TriplePattern{Subject: s, Predicate: pr, Object: o})
		if p.cur().Kind == TokSymbol && p.cur().Text == "." {
			p.advance()
		}
	}
}

// parsePatternTerm parses a single subject/object (allowLiteral=true) or
// predicate (allowLiteral=false, also accepts the 'a' keyword shorthand)
// position.
func (p *parser) parsePatternTerm(allowLiteral bool) (PatternTerm, error) {
	tok := p.cur()
	switch {
	case tok.Kind == TokVariable:
		p.advance()
		return PatternTerm{Var: tok.Text}, nil
	case tok.Kind == TokKeyword && tok.Text == "A":
		p.advance()
		return PatternTerm{Bound: term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")}, nil
	case tok.Kind == TokIRI:
		iri, err := p.resolveIRI(tok)
		if err != nil {
			return PatternTerm{}, err
		}
		p.advance()
		return PatternTerm{Bound: iri}, nil
	case tok.Kind == TokLiteral && allowLiteral:
		p.advance()
		return PatternTerm{Bound: literalFromToken(tok)}, nil
	case tok.Kind == TokNumber && allowLiteral:
		p.advance()
		return PatternTerm{Bound: term.NewTypedLiteral(tok.Text, term.IRI("http://www.w3.org/2001/XMLSchema#integer"))}, nil
	default:
		return PatternTerm{}, base.NewInputError(base.ErrKindSyntax, "unexpected token in triple pattern: "+tok.Text)
	}
}

func literalFromToken(tok Token) term.Literal {
	if tok.LangTag != "" {
		lit, err := term.NewLangLiteral(tok.Text, tok.LangTag)
		if err == nil {
			return lit
		}
	}
	if tok.DTIRI != "" {
		return term.NewTypedLiteral(tok.Text, term.IRI(tok.DTIRI))
	}
	return term.NewStringLiteral(tok.Text)
}

func (p *parser) parseModifiers() (Modifiers, error) {
	var mods Modifiers
	for {
		switch {
		case p.atKeyword("ORDER"):
			p.advance()
			if !p.atKeyword("BY") {
				return mods, base.NewInputError(base.ErrKindSyntax, "expected BY after ORDER")
			}
			p.advance()
			for p.cur().Kind == TokVariable || p.atKeyword("ASC") || p.atKeyword("DESC") {
				ot, err := p.parseOrderTerm()
				if err != nil {
					return mods, err
				}
				mods.OrderBy = append(mods.OrderBy, ot)
			}
		case p.atKeyword("LIMIT"):
			p.advance()
			n, err := p.parseNonNegInt()
			if err != nil {
				return mods, err
			}
			mods.Limit = &n
		case p.atKeyword("OFFSET"):
			p.advance()
			n, err := p.parseNonNegInt()
			if err != nil {
				return mods, err
			}
			mods.Offset = &n
		default:
			return mods, nil
		}
	}
}

// parseOrderTerm parses a single ORDER BY term: either the bare
// `?var [ASC|DESC]` postfix form, or the `ASC(?var)`/`DESC(?var)`
// function-call form.
func (p *parser) parseOrderTerm() (OrderTerm, error) {
	if p.atKeyword("ASC") || p.atKeyword("DESC") {
		desc := p.atKeyword("DESC")
		p.advance()
		if p.cur().Kind == TokSymbol && p.cur().Text == "(" {
			p.advance()
			if p.cur().Kind != TokVariable {
				return OrderTerm{}, base.NewInputError(base.ErrKindSyntax, "expected variable in ORDER BY")
			}
			v := p.cur().Text
			p.advance()
			if err := p.expectSymbol(")"); err != nil {
				return OrderTerm{}, err
			}
			return OrderTerm{Var: v, Desc: desc}, nil
		}
		return OrderTerm{}, base.NewInputError(base.ErrKindSyntax, "expected '(' after ASC/DESC")
	}
	if p.cur().Kind != TokVariable {
		return OrderTerm{}, base.NewInputError(base.ErrKindSyntax, "expected variable in ORDER BY")
	}
	v := p.cur().Text
	p.advance()
	desc := false
	if p.atKeyword("ASC") {
		p.advance()
	} else if p.atKeyword("DESC") {
		desc = true
		p.advance()
	}
	return OrderTerm{Var: v, Desc: desc}, nil
}

func (p *parser) parseNonNegInt() (int, error) {
	if p.cur().Kind != TokNumber {
		return 0, base.NewInputError(base.ErrKindSyntax, "expected integer")
	}
	n, err := strconv.Atoi(p.cur().Text)
	if err != nil || n < 0 {
		return 0, base.NewInputError(base.ErrKindSyntax, "expected non-negative integer")
	}
	p.advance()
	return n, nil
}
