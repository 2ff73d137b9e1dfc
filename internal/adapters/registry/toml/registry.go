// Package toml loads the constant registry, merging user-defined constants
// from a TOML file over the built-in entries. The registry is read-only at
// runtime; this adapter never writes the file.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/aicalc/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	constantsPathKey = "constants.path"
	configDirName    = "aicalc"
	constantsFile    = "constants.toml"
)

// LoadRegistry builds the constant registry from the built-ins plus the
// user constants file resolved through cfg. A missing file is not an error;
// the built-ins alone form the registry.
func LoadRegistry(cfg *viper.Viper) (*domain.Registry, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config directory: %w", err)
	}

	defaultPath := filepath.Join(configDir, configDirName, constantsFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(configDir, configDirName))
	cfg.SetDefault(constantsPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	constantsPath := cfg.GetString(constantsPathKey)
	if constantsPath == "" {
		return nil, errors.New("constants path is empty")
	}

	userConstants, err := readConstantsFile(constantsPath)
	if err != nil {
		return nil, err
	}

	return domain.NewRegistry(merge(domain.BuiltinConstants(), userConstants)), nil
}

func readConstantsFile(path string) ([]domain.Constant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read constants file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode constants file: %w", err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	constants := make([]domain.Constant, 0, len(file.Constants))
	for _, entry := range file.Constants {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("invalid constants file: %w", err)
		}
		constants = append(constants, fromSchema(entry))
	}

	return constants, nil
}

func fromSchema(entry constantSchema) domain.Constant {
	if entry.Symbol != "" {
		return domain.Constant{Label: entry.Label, Value: domain.Symbolic(entry.Symbol)}
	}

	return domain.Constant{Label: entry.Label, Value: domain.Numeric(*entry.Value)}
}

// merge keeps built-in ordering, lets user entries override built-ins by
// label, and appends new labels at the end.
func merge(builtins, user []domain.Constant) []domain.Constant {
	overrides := make(map[string]domain.ConstantValue, len(user))
	for _, c := range user {
		overrides[c.Label] = c.Value
	}

	merged := make([]domain.Constant, 0, len(builtins)+len(user))
	seen := make(map[string]struct{}, len(builtins))
	for _, c := range builtins {
		if value, ok := overrides[c.Label]; ok {
			c.Value = value
		}
		merged = append(merged, c)
		seen[c.Label] = struct{}{}
	}

	for _, c := range user {
		if _, ok := seen[c.Label]; ok {
			continue
		}
		merged = append(merged, c)
	}

	return merged
}
