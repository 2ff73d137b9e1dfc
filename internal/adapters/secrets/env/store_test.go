package env

import (
	"context"
	"testing"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubStore(values map[string]string) *Store {
	return &Store{lookup: func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}}
}

func TestGetMapsKeyToEnvName(t *testing.T) {
	t.Parallel()

	store := newStubStore(map[string]string{"OPENAI_API_KEY": "sk-test"})

	value, err := store.Get(context.Background(), "openai/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", value)
}

func TestGetMissingVariable(t *testing.T) {
	t.Parallel()

	store := newStubStore(nil)

	_, err := store.Get(context.Background(), "openai/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestGetBlankVariableTreatedAsMissing(t *testing.T) {
	t.Parallel()

	store := newStubStore(map[string]string{"OPENAI_API_KEY": "   "})

	_, err := store.Get(context.Background(), "openai/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestGetEmptyKey(t *testing.T) {
	t.Parallel()

	store := newStubStore(nil)

	_, err := store.Get(context.Background(), "  ")
	require.Error(t, err)
}

func TestPutAndDeleteAreReadOnly(t *testing.T) {
	t.Parallel()

	store := newStubStore(nil)

	assert.ErrorIs(t, store.Put(context.Background(), "openai/api_key", "v"), ErrReadOnly)
	assert.ErrorIs(t, store.Delete(context.Background(), "openai/api_key"), ErrReadOnly)
}
