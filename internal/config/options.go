package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ModelOptions is the on-disk shape of a model's document-wide options
// (spec §3 "Document": "model options"), loaded once by a front-end
// before building a Document and applied to Document.ModelOptions.
// Mirrors funxy's lib/yaml builtins (internal/evaluator/builtins_yaml.go)
// in using yaml.v3 for a round-trippable config shape, applied here to
// this module's own domain type rather than to an arbitrary dynamic value.
type ModelOptions struct {
	Options []string `yaml:"options"`
}

// LoadModelOptions reads and parses a YAML model-options file. A missing
// file is not an error: callers treat it as "no overrides" the way a
// front-end falls back to Document defaults.
func LoadModelOptions(path string) (*ModelOptions, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ModelOptions{}, nil
	}
	if err != nil {
		return nil, err
	}
	var opts ModelOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// SaveModelOptions writes opts back out as YAML, the inverse of
// LoadModelOptions.
func SaveModelOptions(path string, opts *ModelOptions) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
