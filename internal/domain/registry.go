package domain

// Registry is the fixed label-to-constant mapping. It is built once at
// startup and read-only afterwards.
type Registry struct {
	constants []Constant
	byLabel   map[string]ConstantValue
}

func NewRegistry(constants []Constant) *Registry {
	r := &Registry{
		constants: make([]Constant, 0, len(constants)),
		byLabel:   make(map[string]ConstantValue, len(constants)),
	}

	for _, c := range constants {
		if _, ok := r.byLabel[c.Label]; ok {
			continue
		}
		r.constants = append(r.constants, c)
		r.byLabel[c.Label] = c.Value
	}

	return r
}

func (r *Registry) Lookup(label string) (ConstantValue, error) {
	value, ok := r.byLabel[label]
	if !ok {
		return ConstantValue{}, ErrConstantNotFound
	}

	return value, nil
}

// All returns the constants in registration order.
func (r *Registry) All() []Constant {
	out := make([]Constant, len(r.constants))
	copy(out, r.constants)

	return out
}

// BuiltinConstants is the default registry content: the physical constants
// the calculator exposes as buttons, plus symbolic placeholders for formula
// variables that cannot be reduced to a literal at input time.
func BuiltinConstants() []Constant {
	return []Constant{
		{Label: "Pi (π)", Value: Numeric(3.141592653589793)},
		{Label: "Euler (e)", Value: Numeric(2.718281828459045)},
		{Label: "Planck (h)", Value: Numeric(6.626e-34)},
		{Label: "Avogadro (N_A)", Value: Numeric(6.022e23)},
		{Label: "Light speed (c)", Value: Numeric(2.998e8)},
		{Label: "Boltzmann (k_B)", Value: Numeric(1.381e-23)},
		{Label: "Gravitational (G)", Value: Numeric(6.674e-11)},
		{Label: "Elementary charge (q_e)", Value: Numeric(1.602e-19)},
		{Label: "Frequency (ν)", Value: Symbolic("Frequency (ν)")},
		{Label: "Wavelength (λ)", Value: Symbolic("Wavelength (λ)")},
		{Label: "Variable (x)", Value: Symbolic("x")},
		{Label: "Variable (y)", Value: Symbolic("y")},
	}
}
