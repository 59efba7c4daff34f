package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sigmoidcalc/fixed"
	"sigmoidcalc/native/curve"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config describes a calculator deployment: the curve shape, the estimator
// and the ambient logging/metrics settings.
type Config struct {
	Estimator        string        `toml:"Estimator" yaml:"estimator"`
	IntegrationSteps int           `toml:"IntegrationSteps" yaml:"integration_steps"`
	Curve            CurveConfig   `toml:"Curve" yaml:"curve"`
	Log              LogConfig     `toml:"Log" yaml:"log"`
	Metrics          MetricsConfig `toml:"Metrics" yaml:"metrics"`
}

// CurveConfig holds the curve parameters as decimal strings, e.g. "0.01".
type CurveConfig struct {
	A fixed.Value `toml:"A" yaml:"a"`
	K fixed.Value `toml:"K" yaml:"k"`
	B fixed.Value `toml:"B" yaml:"b"`
}

type LogConfig struct {
	Service string `toml:"Service" yaml:"service"`
	Env     string `toml:"Env" yaml:"env"`
	Level   string `toml:"Level" yaml:"level"`
	// File enables a rotating log file next to stdout when set.
	File string `toml:"File" yaml:"file"`
}

type MetricsConfig struct {
	Enabled   bool   `toml:"Enabled" yaml:"enabled"`
	Namespace string `toml:"Namespace" yaml:"namespace"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Estimator:        string(curve.EstimatorSeries),
		IntegrationSteps: curve.IntegrationSteps,
		Curve: CurveConfig{
			A: fixed.FromUint64(1000),
			K: fixed.MustParse("0.01"),
			B: fixed.FromUint64(500),
		},
		Log: LogConfig{
			Service: "curvectl",
			Level:   "info",
		},
		Metrics: MetricsConfig{
			Namespace: "sigmoid",
		},
	}
}

// Load reads the configuration at path. TOML is assumed unless the file
// ends in .yaml or .yml. A missing file is created with the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := Default()
	if isYAML(path) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config file %s has unknown field %s", path, undecoded[0])
		}
	}

	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// CurveParams returns the configured curve parameters.
func (c *Config) CurveParams() curve.Params {
	return curve.Params{A: c.Curve.A, K: c.Curve.K, B: c.Curve.B}
}

// EstimatorKind returns the normalised estimator name.
func (c *Config) EstimatorKind() (curve.EstimatorKind, error) {
	return curve.ParseEstimatorKind(c.Estimator)
}

func (c *Config) normalise() {
	c.Estimator = strings.ToLower(strings.TrimSpace(c.Estimator))
	if c.Estimator == "" {
		c.Estimator = string(curve.EstimatorSeries)
	}
	if c.IntegrationSteps == 0 {
		c.IntegrationSteps = curve.IntegrationSteps
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if strings.TrimSpace(c.Metrics.Namespace) == "" {
		c.Metrics.Namespace = "sigmoid"
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := Default()
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) (err error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return toml.NewEncoder(f).Encode(cfg)
}
