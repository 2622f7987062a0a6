package sparql

import (
	"rdf-graph-engine/base"
	"rdf-graph-engine/term"
)

// parseExpr parses a FILTER expression. Comparisons bind tighter than
// logical connectives: parseExpr handles OR, parseAndLevel handles AND,
// parseNotLevel handles unary NOT, and parseComparison handles =, !=, <,
// <=, >, >=.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseAndLevel()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokSymbol && p.cur().Text == "||" {
		p.advance()
		right, err := p.parseAndLevel()
		if err != nil {
			return nil, err
		}
		left = LogicExpr{Op: LogicOr, Args: []Expr{left, right}}
	}
	return left, nil
}

func (p *parser) parseAndLevel() (Expr, error) {
	left, err := p.parseNotLevel()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokSymbol && p.cur().Text == "&&" {
		p.advance()
		right, err := p.parseNotLevel()
		if err != nil {
			return nil, err
		}
		left = LogicExpr{Op: LogicAnd, Args: []Expr{left, right}}
	}
	return left, nil
}

func (p *parser) parseNotLevel() (Expr, error) {
	if p.cur().Kind == TokSymbol && p.cur().Text == "!" {
		p.advance()
		inner, err := p.parseNotLevel()
		if err != nil {
			return nil, err
		}
		return LogicExpr{Op: LogicNot, Args: []Expr{inner}}, nil
	}
	return p.parseComparison()
}

var cmpOps = map[string]CmpOp{
	"=": CmpEq, "!=": CmpNe, "<": CmpLt, "<=": CmpLe, ">": CmpGt, ">=": CmpGe,
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == TokSymbol {
		if op, ok := cmpOps[p.cur().Text]; ok {
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			return CmpExpr{Op: op, Lhs: left, Rhs: right}, nil
		}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	switch {
	case tok.Kind == TokSymbol && tok.Text == "(":
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return e, nil

	case tok.Kind == TokVariable:
		p.advance()
		return VarExpr{Name: tok.Text}, nil

	case tok.Kind == TokLiteral:
		p.advance()
		return ConstExpr{Value: literalFromToken(tok)}, nil

	case tok.Kind == TokNumber:
		p.advance()
		return ConstExpr{Value: term.NewTypedLiteral(tok.Text, term.IRI("http://www.w3.org/2001/XMLSchema#integer"))}, nil

	case tok.Kind == TokIRI && tok.BareWord:
		name := tok.Text
		p.advance()
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		var args []Expr
		for !(p.cur().Kind == TokSymbol && p.cur().Text == ")") {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Kind == TokSymbol && p.cur().Text == "," {
				p.advance()
			}
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return CallExpr{Name: name, Args: args}, nil

	case tok.Kind == TokIRI:
		iri, err := p.resolveIRI(tok)
		if err != nil {
			return nil, err
		}
		p.advance()
		return ConstExpr{Value: iri}, nil

	default:
		return nil, base.NewInputError(base.ErrKindSyntax, "unexpected token in filter expression: "+tok.Text)
	}
}
