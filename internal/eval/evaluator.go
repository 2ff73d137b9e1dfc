// Package eval implements a restricted arithmetic evaluator. The grammar is
// closed: float literals, the operators + - * / % ^, parentheses, a fixed set
// of transcendental functions and the constant pi. No identifier ever resolves
// to host code, so there is no arbitrary-evaluation surface.
package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/aicalc/internal/domain"
)

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"ln":   math.Log,
	"log":  math.Log10,
	"sqrt": math.Sqrt,
}

type options struct {
	placeholderFallback *float64
}

type Option func(*options)

// WithPlaceholderFallback substitutes v for every unresolved placeholder
// token instead of rejecting the expression. Strictly opt-in: the default
// is to fail on the first placeholder.
func WithPlaceholderFallback(v float64) Option {
	return func(o *options) {
		o.placeholderFallback = &v
	}
}

// Evaluate parses and evaluates expr, returning the shortest decimal string
// for the result. Evaluation is pure: no IO, no environment access.
func Evaluate(expr string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(expr) == "" {
		return "", fmt.Errorf("%w: empty input", domain.ErrMalformedExpression)
	}

	p, err := newParser(expr, o)
	if err != nil {
		return "", err
	}

	value, err := p.parseExpression()
	if err != nil {
		return "", err
	}
	if p.current.typ != tokenEOF {
		return "", fmt.Errorf("%w: unexpected %q at position %d", domain.ErrMalformedExpression, p.current.value, p.current.pos)
	}

	if math.IsInf(value, 0) || math.IsNaN(value) {
		return "", fmt.Errorf("%w: %v", domain.ErrNotFinite, value)
	}

	return FormatResult(value), nil
}

// FormatResult renders a numeric result as its decimal string form.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type parser struct {
	lexer   *lexer
	current token
	opts    options
}

func newParser(input string, opts options) (*parser, error) {
	p := &parser{lexer: newLexer(input), opts: opts}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.current = tok

	return nil
}

// parseExpression handles + and - (lowest precedence).
func (p *parser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		switch p.current.typ {
		case tokenPlus:
			if err := p.advance(); err != nil {
				return 0, err
			}
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case tokenMinus:
			if err := p.advance(); err != nil {
				return 0, err
			}
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseTerm handles *, / and %.
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}

	for {
		switch p.current.typ {
		case tokenMultiply:
			if err := p.advance(); err != nil {
				return 0, err
			}
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokenDivide:
			pos := p.current.pos
			if err := p.advance(); err != nil {
				return 0, err
			}
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: at position %d", domain.ErrDivisionByZero, pos)
			}
			left /= right
		case tokenModulo:
			pos := p.current.pos
			if err := p.advance(); err != nil {
				return 0, err
			}
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: at position %d", domain.ErrDivisionByZero, pos)
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

// parsePower handles ^, right-associative.
func (p *parser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	if p.current.typ != tokenPower {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return 0, err
	}

	exponent, err := p.parsePower()
	if err != nil {
		return 0, err
	}

	return math.Pow(base, exponent), nil
}

func (p *parser) parseUnary() (float64, error) {
	switch p.current.typ {
	case tokenMinus:
		if err := p.advance(); err != nil {
			return 0, err
		}
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	case tokenPlus:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.parseUnary()
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (float64, error) {
	switch tok := p.current; tok.typ {
	case tokenNumber:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return tok.numVal, nil

	case tokenPlaceholder:
		if p.opts.placeholderFallback == nil {
			return 0, fmt.Errorf("%w: <%s> at position %d", domain.ErrUnresolvedPlaceholder, tok.value, tok.pos)
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return *p.opts.placeholderFallback, nil

	case tokenIdentifier:
		return p.parseIdentifier(tok)

	case tokenLParen:
		if err := p.advance(); err != nil {
			return 0, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if p.current.typ != tokenRParen {
			return 0, fmt.Errorf("%w: expected ')' at position %d", domain.ErrMalformedExpression, p.current.pos)
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return value, nil

	default:
		return 0, fmt.Errorf("%w: unexpected %q at position %d", domain.ErrMalformedExpression, tok.value, tok.pos)
	}
}

func (p *parser) parseIdentifier(tok token) (float64, error) {
	if tok.value == "pi" {
		if err := p.advance(); err != nil {
			return 0, err
		}
		return math.Pi, nil
	}

	fn, ok := functions[tok.value]
	if !ok {
		return 0, fmt.Errorf("%w: %q at position %d", domain.ErrUnknownFunction, tok.value, tok.pos)
	}

	if err := p.advance(); err != nil {
		return 0, err
	}
	if p.current.typ != tokenLParen {
		return 0, fmt.Errorf("%w: expected '(' after %q", domain.ErrMalformedExpression, tok.value)
	}
	if err := p.advance(); err != nil {
		return 0, err
	}

	arg, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	if p.current.typ != tokenRParen {
		return 0, fmt.Errorf("%w: expected ')' after %s argument", domain.ErrMalformedExpression, tok.value)
	}
	if err := p.advance(); err != nil {
		return 0, err
	}

	return fn(arg), nil
}
