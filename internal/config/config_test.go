package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/algo-remix/dsp/effects/pitch"
	"github.com/cwbudde/algo-remix/dsp/mood"
	"github.com/cwbudde/algo-remix/dsp/resample"
)

const sample = `
log:
  level: debug
  format: json
server:
  addr: ":9090"
  max_jobs: 4
remote:
  url: https://remix.example.com/api
  timeout: 45s
remix:
  mood: Happy
  tempo: 1.1
  pitch: -2
  seed: 42
  interpolation: cubic
  resample_quality: best
moods:
  - name: dreamy
    steps:
      - {effect: stretch, rate: 0.9}
      - {effect: reverb, wet: 0.5, ir_duration: 1.2}
`

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("Log = %+v", cfg.Log)
	}

	if cfg.Server.Addr != ":9090" || cfg.Server.MaxJobs != 4 || cfg.Server.MaxUploadMB != 64 {
		t.Fatalf("Server = %+v", cfg.Server)
	}

	if cfg.Remote.Timeout != 45*time.Second || !cfg.Remote.Enabled() {
		t.Fatalf("Remote = %+v", cfg.Remote)
	}

	if cfg.Remix.Tempo != 1.1 || cfg.Remix.Pitch != -2 || cfg.Remix.Seed != 42 || cfg.Remix.SampleRate != 44100 {
		t.Fatalf("Remix = %+v", cfg.Remix)
	}

	if cfg.Interpolation() != pitch.InterpCubic {
		t.Fatalf("Interpolation() = %v", cfg.Interpolation())
	}

	if cfg.ResampleQuality() != resample.QualityBest {
		t.Fatalf("ResampleQuality() = %v", cfg.ResampleQuality())
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	r, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}

	p, ok := r.Lookup("Dreamy")
	if !ok || len(p.Steps) != 2 || p.Steps[1] != mood.Reverb(0.5, 1.2) {
		t.Fatalf("dreamy = %+v, %v", p, ok)
	}

	if _, ok := r.Lookup(mood.Sad); !ok {
		t.Fatal("built-in presets missing")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}

	if cfg.Server.Addr != Default().Server.Addr {
		t.Fatalf("Parse(nil) = %+v", cfg)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("remix:\n  speed: 2\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max jobs", func(c *Config) { c.Server.MaxJobs = 0 }},
		{"upload", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"timeout", func(c *Config) { c.Remote.Timeout = 0 }},
		{"tempo", func(c *Config) { c.Remix.Tempo = 0 }},
		{"pitch", func(c *Config) { c.Remix.Pitch = 13 }},
		{"fractional pitch", func(c *Config) { c.Remix.Pitch = 0.5 }},
		{"sample rate", func(c *Config) { c.Remix.SampleRate = -1 }},
		{"interpolation", func(c *Config) { c.Remix.Interpolation = "sinc" }},
		{"resample quality", func(c *Config) { c.Remix.ResampleQuality = "ultra" }},
		{"mood", func(c *Config) {
			c.Moods = []mood.PresetSpec{{Name: "x", Steps: []mood.StepSpec{{Effect: "wah"}}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Remote.URL = "http://file"

	env := map[string]string{EnvRemoteURL: "http://env", EnvRemoteKey: "secret"}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if cfg.Remote.URL != "http://env" || cfg.Remote.APIKey != "secret" {
		t.Fatalf("Remote = %+v", cfg.Remote)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remix.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvRemoteKey, "from-env")
	t.Setenv(EnvRemoteURL, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote.APIKey != "from-env" || cfg.Remote.URL != "https://remix.example.com/api" {
		t.Fatalf("Remote = %+v", cfg.Remote)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
