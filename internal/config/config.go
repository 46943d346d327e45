// Package config holds the interpreter settings shared by the CLI and the
// runner. Precedence: defaults < YAML file < environment < flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ippvm/pkg/input"
	"ippvm/pkg/loader"
)

type Config struct {
	LogLevel      string `yaml:"log_level"`      // debug, info, warn, error
	NoColor       bool   `yaml:"no_color"`       // disable colored diagnostics
	MaxSteps      int    `yaml:"max_steps"`      // 0 = unlimited
	InputEncoding string `yaml:"input_encoding"` // charset of the input file
	SourceFormat  string `yaml:"source_format"`  // auto, text or xml
	Trace         bool   `yaml:"trace"`          // list the program and log every step
}

// Environment variables consulted by ApplyEnv
const (
	EnvConfig        = "IPPVM_CONFIG"
	EnvLogLevel      = "IPPVM_LOG_LEVEL"
	EnvNoColor       = "IPPVM_NO_COLOR"
	EnvMaxSteps      = "IPPVM_MAX_STEPS"
	EnvInputEncoding = "IPPVM_INPUT_ENCODING"
	EnvSourceFormat  = "IPPVM_FORMAT"
	EnvTrace         = "IPPVM_TRACE"
)

// Default returns the built-in settings
func Default() Config {
	return Config{
		LogLevel:     "warn",
		SourceFormat: "auto",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := cfg.decode(file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from IPPVM_* variables looked up with getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvNoColor); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoColor, err)
		}
		c.NoColor = b
	}
	if v := getenv(EnvMaxSteps); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxSteps, err)
		}
		c.MaxSteps = n
	}
	if v := getenv(EnvInputEncoding); v != "" {
		c.InputEncoding = v
	}
	if v := getenv(EnvSourceFormat); v != "" {
		c.SourceFormat = v
	}
	if v := getenv(EnvTrace); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTrace, err)
		}
		c.Trace = b
	}
	return nil
}

// Validate checks the settings for consistency
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must be non-negative, got %d", c.MaxSteps)
	}

	if !input.Supported(c.InputEncoding) {
		return fmt.Errorf("unsupported input encoding: %s", c.InputEncoding)
	}

	if _, err := loader.ParseFormat(c.SourceFormat); err != nil {
		return err
	}

	return nil
}
