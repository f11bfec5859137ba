package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Features names the columns of each class. Classes are never inferred from
// column types; they come from this file or from flags.
type Features struct {
	Categorical []string `yaml:"categorical"`
	Continuous  []string `yaml:"continuous"`
	Split       string   `yaml:"split,omitempty"`
	Target      string   `yaml:"target,omitempty"`
}

// LoadFeatures reads a feature-set YAML file. Unknown keys are rejected.
func LoadFeatures(path string) (*Features, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read features: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var f Features
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse features %s: %w", path, err)
	}
	return &f, nil
}

// SaveFeatures writes a feature-set YAML file.
func SaveFeatures(f *Features, path string) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write features: %w", err)
	}
	return nil
}
