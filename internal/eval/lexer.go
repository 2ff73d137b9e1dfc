package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/aicalc/internal/domain"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenNumber
	tokenIdentifier
	tokenPlaceholder
	tokenPlus
	tokenMinus
	tokenMultiply
	tokenDivide
	tokenModulo
	tokenPower
	tokenLParen
	tokenRParen
)

type token struct {
	typ    tokenType
	value  string
	numVal float64
	pos    int
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) char() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peek() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *lexer) skipWhitespace() {
	for l.char() == ' ' || l.char() == '\t' {
		l.pos++
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	start := l.pos

	switch ch := l.char(); {
	case ch == 0:
		return token{typ: tokenEOF, pos: start}, nil
	case ch == '+':
		l.pos++
		return token{typ: tokenPlus, value: "+", pos: start}, nil
	case ch == '-':
		l.pos++
		return token{typ: tokenMinus, value: "-", pos: start}, nil
	case ch == '*':
		// "**" is the alternate exponent marker, normalized to power.
		if l.peek() == '*' {
			l.pos += 2
			return token{typ: tokenPower, value: "**", pos: start}, nil
		}
		l.pos++
		return token{typ: tokenMultiply, value: "*", pos: start}, nil
	case ch == '/':
		l.pos++
		return token{typ: tokenDivide, value: "/", pos: start}, nil
	case ch == '%':
		l.pos++
		return token{typ: tokenModulo, value: "%", pos: start}, nil
	case ch == '^':
		l.pos++
		return token{typ: tokenPower, value: "^", pos: start}, nil
	case ch == '(':
		l.pos++
		return token{typ: tokenLParen, value: "(", pos: start}, nil
	case ch == ')':
		l.pos++
		return token{typ: tokenRParen, value: ")", pos: start}, nil
	case ch == '<':
		return l.readPlaceholder()
	case isDigit(ch) || (ch == '.' && isDigit(l.peek())):
		return l.readNumber()
	default:
		if rest := l.input[l.pos:]; strings.HasPrefix(rest, "π") {
			l.pos += len("π")
			return token{typ: tokenIdentifier, value: "pi", pos: start}, nil
		}
		if isLetter(ch) {
			return l.readIdentifier(), nil
		}
		return token{}, fmt.Errorf("%w: unexpected character %q at position %d", domain.ErrMalformedExpression, string(ch), start)
	}
}

// readPlaceholder consumes a bracket-delimited placeholder token "<Label>".
func (l *lexer) readPlaceholder() (token, error) {
	start := l.pos
	end := strings.IndexByte(l.input[l.pos:], '>')
	if end < 0 {
		return token{}, fmt.Errorf("%w: unterminated placeholder at position %d", domain.ErrMalformedExpression, start)
	}

	label := l.input[l.pos+1 : l.pos+end]
	l.pos += end + 1

	return token{typ: tokenPlaceholder, value: label, pos: start}, nil
}

func (l *lexer) readNumber() (token, error) {
	start := l.pos

	for isDigit(l.char()) {
		l.pos++
	}
	if l.char() == '.' {
		l.pos++
		for isDigit(l.char()) {
			l.pos++
		}
	}
	// Scientific notation: 6.626e-34.
	if ch := l.char(); ch == 'e' || ch == 'E' {
		mark := l.pos
		l.pos++
		if l.char() == '+' || l.char() == '-' {
			l.pos++
		}
		if !isDigit(l.char()) {
			l.pos = mark
		} else {
			for isDigit(l.char()) {
				l.pos++
			}
		}
	}

	raw := l.input[start:l.pos]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return token{}, fmt.Errorf("%w: invalid number %q at position %d", domain.ErrMalformedExpression, raw, start)
	}

	return token{typ: tokenNumber, value: raw, numVal: value, pos: start}, nil
}

func (l *lexer) readIdentifier() token {
	start := l.pos
	for isLetter(l.char()) || isDigit(l.char()) {
		l.pos++
	}

	return token{typ: tokenIdentifier, value: strings.ToLower(l.input[start:l.pos]), pos: start}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
