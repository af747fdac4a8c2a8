package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/marczieee/featurepipe/pkg/dataprep"
)

// Config is the file form of a pipeline run.
type Config struct {
	Pipeline dataprep.Options `yaml:"pipeline"`
	Output   Output           `yaml:"output"`
}

var validate = validator.New()

type Output struct {
	IntermediateDir string `yaml:"intermediate_dir,omitempty"`
	Preview         int    `yaml:"preview" validate:"min=0"`
}

// Default reproduces the built-in feature tables.
func Default() *Config {
	return &Config{
		Pipeline: dataprep.DefaultOptions(),
		Output:   Output{Preview: 5},
	}
}

// Load reads a YAML file and overlays it on Default. Keys absent from the
// file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return c.Pipeline.Validate()
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
