package sparql

import (
	"strings"

	"rdf-graph-engine/base"
)

// TokenKind classifies a lexer token.
type TokenKind int

const (
	TokKeyword TokenKind = iota
	TokVariable
	TokIRI
	TokLiteral
	TokSymbol
	TokNumber
	TokEOF
)

// Token is a single lexical unit, carrying enough to reconstruct IRIs and
// literals without a second pass.
type Token struct {
	Kind     TokenKind
	Text     string // variable name without '?', keyword upper-cased, symbol text
	IRIValue string // resolved IRI value, set for absolute <...> IRIs
	Prefix   string // prefix part of a "prefix:local" qname (TokIRI only)
	Local    string // local part of a "prefix:local" qname (TokIRI only)
	BareWord bool   // true when this TokIRI came from an un-prefixed identifier (candidate function name)
	LangTag  string // literal language tag, if any
	DTIRI    string // literal datatype IRI, if any (mutually exclusive with LangTag)
}

var keywords = map[string]bool{
	"SELECT": true, "CONSTRUCT": true, "ASK": true, "DESCRIBE": true,
	"WHERE": true, "FILTER": true, "OPTIONAL": true, "UNION": true,
	"DISTINCT": true, "LIMIT": true, "OFFSET": true, "ORDER": true,
	"BY": true, "ASC": true, "DESC": true, "PREFIX": true, "A": true,
}

// lexer tokenizes SPARQL query text. Prefixed names are emitted
// unresolved (Prefix/Local); the parser resolves them against PREFIX
// declarations and its PrefixResolver (see parser.resolveIRI).
type lexer struct {
	src      []rune
	pos      int
	prefixes map[string]string
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), prefixes: make(map[string]string)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			l.pos++
			continue
		}
		if r == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-' || r == '.'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// next returns the next token, or a TokEOF token once input is exhausted.
func (l *lexer) next() (Token, error) {
	l.skipSpaceAndComments()
	r, ok := l.peekRune()
	if !ok {
		return Token{Kind: TokEOF}, nil
	}

	switch {
	case r == '?' || r == '$':
		l.pos++
		start := l.pos
		for {
			c, ok := l.peekRune()
			if !ok || !isIdentPart(c) {
				break
			}
			l.pos++
		}
		return Token{Kind: TokVariable, Text: string(l.src[start:l.pos])}, nil

	case r == '<' && l.pos+1 < len(l.src) && !strings.ContainsRune("= \t\r\n", l.src[l.pos+1]):
		l.pos++
		start := l.pos
		for {
			c, ok := l.peekRune()
			if !ok {
				return Token{}, base.NewInputError(base.ErrKindSyntax, "unterminated IRI literal")
			}
			if c == '>' {
				break
			}
			l.pos++
		}
		value := string(l.src[start:l.pos])
		l.pos++ // consume '>'
		return Token{Kind: TokIRI, Text: value, IRIValue: value}, nil

	case r == '"':
		return l.lexStringLiteral()

	case isDigit(r) || ((r == '+' || r == '-') && l.nextIsDigit()):
		return l.lexNumber()

	case r == '(' || r == ')' || r == '{' || r == '}' || r == '.' || r == ',' ||
		r == '*' || r == '+' || r == '-' || r == '/':
		l.pos++
		return Token{Kind: TokSymbol, Text: string(r)}, nil

	case r == '<' || r == '>' || r == '=' || r == '!' || r == '&' || r == '|':
		return l.lexOperator()

	case isIdentStart(r):
		return l.lexIdentOrKeyword()

	default:
		return Token{}, base.NewInputError(base.ErrKindSyntax, "unexpected character: "+string(r))
	}
}

func (l *lexer) nextIsDigit() bool {
	if l.pos+1 >= len(l.src) {
		return false
	}
	return isDigit(l.src[l.pos+1])
}

func (l *lexer) nextRuneIs(r rune) bool {
	if l.pos+1 >= len(l.src) {
		return false
	}
	return l.src[l.pos+1] == r
}

func (l *lexer) lexOperator() (Token, error) {
	two := ""
	if l.pos+1 < len(l.src) {
		two = string(l.src[l.pos : l.pos+2])
	}
	switch two {
	case "<=", ">=", "!=", "&&", "||":
		l.pos += 2
		return Token{Kind: TokSymbol, Text: two}, nil
	}
	r := l.src[l.pos]
	l.pos++
	return Token{Kind: TokSymbol, Text: string(r)}, nil
}

func (l *lexer) lexStringLiteral() (Token, error) {
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		c, ok := l.peekRune()
		if !ok {
			return Token{}, base.NewInputError(base.ErrKindSyntax, "unterminated string literal")
		}
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			esc, ok := l.peekRune()
			if !ok {
				return Token{}, base.NewInputError(base.ErrKindSyntax, "unterminated escape in string literal")
			}
			switch esc {
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
			l.pos++
			continue
		}
		sb.WriteRune(c)
		l.pos++
	}

	tok := Token{Kind: TokLiteral, Text: sb.String()}
	if c, ok := l.peekRune(); ok && c == '@' {
		l.pos++
		start := l.pos
		for {
			c, ok := l.peekRune()
			if !ok || !(isIdentPart(c)) {
				break
			}
			l.pos++
		}
		tok.LangTag = string(l.src[start:l.pos])
	} else if l.pos+1 < len(l.src) && l.src[l.pos] == '^' && l.src[l.pos+1] == '^' {
		l.pos += 2
		iriTok, err := l.next()
		if err != nil {
			return Token{}, err
		}
		if iriTok.Kind != TokIRI {
			return Token{}, base.NewInputError(base.ErrKindSyntax, "expected IRI after ^^")
		}
		tok.DTIRI = iriTok.IRIValue
	}
	return tok, nil
}

func (l *lexer) lexNumber() (Token, error) {
	start := l.pos
	if c, ok := l.peekRune(); ok && (c == '+' || c == '-') {
		l.pos++
	}
	for {
		c, ok := l.peekRune()
		if !ok || !isDigit(c) {
			break
		}
		l.pos++
	}
	if c, ok := l.peekRune(); ok && c == '.' {
		l.pos++
		for {
			c, ok := l.peekRune()
			if !ok || !isDigit(c) {
				break
			}
			l.pos++
		}
	}
	return Token{Kind: TokNumber, Text: string(l.src[start:l.pos])}, nil
}

func (l *lexer) lexIdentOrKeyword() (Token, error) {
	start := l.pos
	for {
		c, ok := l.peekRune()
		if !ok || !isIdentPart(c) {
			break
		}
		l.pos++
	}
	// prefixed name: ident ':' local
	if c, ok := l.peekRune(); ok && c == ':' {
		prefix := string(l.src[start:l.pos])
		l.pos++
		localStart := l.pos
		for {
			c, ok := l.peekRune()
			if !ok || !isIdentPart(c) {
				break
			}
			l.pos++
		}
		local := string(l.src[localStart:l.pos])
		return Token{Kind: TokIRI, Text: prefix + ":" + local, Prefix: prefix, Local: local}, nil
	}

	word := string(l.src[start:l.pos])
	upper := strings.ToUpper(word)
	if keywords[upper] {
		return Token{Kind: TokKeyword, Text: upper}, nil
	}
	// A bare identifier with no ':' local-part separator is either a
	// built-in function name (followed by '(') or an unknown-prefix
	// qname error, resolved by the parser.
	return Token{Kind: TokIRI, Text: word, BareWord: true}, nil
}
