package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Put(context.Background(), "openai/api_key", "sk-test"))

	value, err := store.Get(context.Background(), "openai/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", value)

	require.NoError(t, store.Delete(context.Background(), "openai/api_key"))

	_, err = store.Get(context.Background(), "openai/api_key")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreSecretFileMode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Put(context.Background(), "openai/api_key", "sk-test"))

	info, err := os.Stat(filepath.Join(root, "openai", "api_key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	tests := []string{"", "  ", ".", "..", "../outside", "/absolute/path"}
	for _, key := range tests {
		_, err := store.Get(context.Background(), key)
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestStoreDeleteMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	assert.NoError(t, store.Delete(context.Background(), "openai/api_key"))
}
