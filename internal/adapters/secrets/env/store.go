// Package env resolves secrets from environment variables. The store is
// read-only: the environment always wins over any persisted secret, and the
// credential is never written to disk through this backend.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

type Store struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := envName(key)
	if err != nil {
		return "", err
	}

	value, ok := s.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("environment variable %s is not set: %w", name, domain.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, _ string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return ErrReadOnly
}

func (s *Store) Delete(ctx context.Context, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return ErrReadOnly
}

// envName maps a secret-store key such as "openai/api_key" to the
// conventional variable name "OPENAI_API_KEY".
func envName(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	name := strings.ToUpper(trimmed)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "-", "_")

	return name, nil
}
