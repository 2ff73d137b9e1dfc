package domain

import "strconv"

// ConstantValue is either a numeric literal or a symbolic stand-in.
// Numeric values are inserted into expressions as decimal literals;
// symbolic values are inserted as bracketed placeholder tokens and must
// never reach the arithmetic evaluator unresolved.
type ConstantValue struct {
	number   float64
	symbol   string
	symbolic bool
}

func Numeric(v float64) ConstantValue {
	return ConstantValue{number: v}
}

func Symbolic(symbol string) ConstantValue {
	return ConstantValue{symbol: symbol, symbolic: true}
}

func (v ConstantValue) IsSymbolic() bool {
	return v.symbolic
}

// Number returns the numeric value. Only meaningful when IsSymbolic is false.
func (v ConstantValue) Number() float64 {
	return v.number
}

// Token renders the value the way it is appended to an expression: the
// shortest decimal literal for numeric entries, "<symbol>" for symbolic ones.
func (v ConstantValue) Token() string {
	if v.symbolic {
		return "<" + v.symbol + ">"
	}

	return strconv.FormatFloat(v.number, 'g', -1, 64)
}

type Constant struct {
	Label string
	Value ConstantValue
}
