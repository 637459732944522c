// Package config loads the YAML configuration file given with -config.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mpyw/pathcheck/internal/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every setting the analyzer accepts. All fields are optional.
//
//	limits:
//	  max_steps: 5000
//	  max_block_visits: 2
//	workers: 4
//	checks:
//	  constcond: true
//	nilcheck_funcs:
//	  - example.com/util.IsNil
type Config struct {
	Limits Limits `yaml:"limits"`

	// Workers bounds the members explored concurrently within a package.
	// Zero means one per CPU.
	Workers int `yaml:"workers"`

	// Checks enables or disables checks by name. Missing names keep their
	// default.
	Checks map[string]bool `yaml:"checks"`

	// NilCheckFuncs lists helpers in pkg/path.Func or pkg/path.Type.Method
	// form whose single argument is compared with nil.
	NilCheckFuncs []string `yaml:"nilcheck_funcs"`
}

// Limits caps exploration of one member.
type Limits struct {
	MaxSteps       int `yaml:"max_steps"`
	MaxBlockVisits int `yaml:"max_block_visits"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Limits: Limits{
			MaxSteps:       engine.DefaultMaxSteps,
			MaxBlockVisits: engine.DefaultMaxBlockVisits,
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative limits.
func (c Config) Validate() error {
	switch {
	case c.Limits.MaxSteps < 0:
		return errors.Wrapf(ErrInvalid, "limits.max_steps must not be negative, got %d", c.Limits.MaxSteps)
	case c.Limits.MaxBlockVisits < 0:
		return errors.Wrapf(ErrInvalid, "limits.max_block_visits must not be negative, got %d", c.Limits.MaxBlockVisits)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalid, "workers must not be negative, got %d", c.Workers)
	}
	return nil
}
