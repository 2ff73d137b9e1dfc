package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantValueToken(t *testing.T) {
	tests := []struct {
		name  string
		value ConstantValue
		want  string
	}{
		{name: "integer renders without exponent", value: Numeric(4), want: "4"},
		{name: "planck renders scientific", value: Numeric(6.626e-34), want: "6.626e-34"},
		{name: "avogadro renders scientific", value: Numeric(6.022e23), want: "6.022e+23"},
		{name: "symbolic renders bracketed", value: Symbolic("Frequency (ν)"), want: "<Frequency (ν)>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Token())
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(BuiltinConstants())

	value, err := registry.Lookup("Planck (h)")
	require.NoError(t, err)
	assert.False(t, value.IsSymbolic())
	assert.Equal(t, 6.626e-34, value.Number())

	value, err = registry.Lookup("Frequency (ν)")
	require.NoError(t, err)
	assert.True(t, value.IsSymbolic())
	assert.Equal(t, "<Frequency (ν)>", value.Token())

	_, err = registry.Lookup("No Such Constant")
	assert.ErrorIs(t, err, ErrConstantNotFound)
}

func TestRegistryKeepsRegistrationOrderAndDropsDuplicates(t *testing.T) {
	registry := NewRegistry([]Constant{
		{Label: "a", Value: Numeric(1)},
		{Label: "b", Value: Numeric(2)},
		{Label: "a", Value: Numeric(99)},
	})

	all := registry.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Label)
	assert.Equal(t, "b", all[1].Label)

	value, err := registry.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, float64(1), value.Number())
}
