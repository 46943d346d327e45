package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ippvm.yaml")
	data := "log_level: debug\nmax_steps: 1000\ninput_encoding: windows-1250\nsource_format: xml\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.MaxSteps != 1000 || cfg.InputEncoding != "windows-1250" || cfg.SourceFormat != "xml" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log_levle: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:      "INFO",
		EnvNoColor:       "1",
		EnvMaxSteps:      "50",
		EnvInputEncoding: "shift_jis",
		EnvSourceFormat:  "text",
		EnvTrace:         "true",
	}

	cfg := Default()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := Config{
		LogLevel:      "info",
		NoColor:       true,
		MaxSteps:      50,
		InputEncoding: "shift_jis",
		SourceFormat:  "text",
		Trace:         true,
	}
	if cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, cfg)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvMaxSteps {
			return "many"
		}
		return ""
	})
	if err == nil {
		t.Error("expected error for non-numeric max steps")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }},
		{"unknown encoding", func(c *Config) { c.InputEncoding = "klingon-8" }},
		{"unknown format", func(c *Config) { c.SourceFormat = "json" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %+v", cfg)
			}
		})
	}
}
