package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Constants []constantSchema `toml:"constants"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported constants schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// constantSchema carries either a numeric value or a symbolic placeholder,
// never both.
type constantSchema struct {
	Label  string   `toml:"label"`
	Value  *float64 `toml:"value,omitempty"`
	Symbol string   `toml:"symbol,omitempty"`
}

func (c constantSchema) validate() error {
	if c.Label == "" {
		return fmt.Errorf("constant entry is missing a label")
	}
	if c.Value != nil && c.Symbol != "" {
		return fmt.Errorf("constant %q declares both value and symbol", c.Label)
	}
	if c.Value == nil && c.Symbol == "" {
		return fmt.Errorf("constant %q declares neither value nor symbol", c.Label)
	}

	return nil
}
