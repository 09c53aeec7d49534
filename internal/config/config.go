// Package config loads the remix service configuration from YAML with
// environment overrides for the remote endpoint.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-remix/dsp/effects/pitch"
	"github.com/cwbudde/algo-remix/dsp/mood"
	"github.com/cwbudde/algo-remix/dsp/resample"
)

// Environment variables that override the remote endpoint.
const (
	EnvRemoteURL = "REMOTE_AI_URL"
	EnvRemoteKey = "REMOTE_AI_KEY"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Log    LogConfig         `yaml:"log"`
	Server ServerConfig      `yaml:"server"`
	Remote RemoteConfig      `yaml:"remote"`
	Remix  RemixConfig       `yaml:"remix"`
	Moods  []mood.PresetSpec `yaml:"moods"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxJobs     int    `yaml:"max_jobs"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

// RemoteConfig points at an optional remote remix service.
type RemoteConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Enabled reports whether a remote URL is configured.
func (r RemoteConfig) Enabled() bool { return r.URL != "" }

// RemixConfig holds the default remix parameters.
type RemixConfig struct {
	Mood            string  `yaml:"mood"`
	Tempo           float64 `yaml:"tempo"`
	Pitch           float64 `yaml:"pitch"`
	Seed            int64   `yaml:"seed"`
	SampleRate      int     `yaml:"sample_rate"`
	Interpolation   string  `yaml:"interpolation"`
	ResampleQuality string  `yaml:"resample_quality"`
	UseRemote       bool    `yaml:"use_remote"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: ":8080", MaxJobs: 2, MaxUploadMB: 64},
		Remote: RemoteConfig{Timeout: 300 * time.Second},
		Remix: RemixConfig{
			Mood:            mood.Neutral,
			Tempo:           1,
			SampleRate:      44100,
			Interpolation:   pitch.InterpPolyphase.String(),
			ResampleQuality: resample.QualityBalanced.String(),
		},
	}
}

// Load reads path over Default, applies environment overrides and validates
// the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}

		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over Default without env overrides or validation.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides the remote endpoint from REMOTE_AI_URL and REMOTE_AI_KEY.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRemoteURL); ok && v != "" {
		c.Remote.URL = v
	}

	if v, ok := lookup(EnvRemoteKey); ok && v != "" {
		c.Remote.APIKey = v
	}
}

// Validate checks ranges and that every configured mood parses.
func (c Config) Validate() error {
	switch {
	case c.Server.MaxJobs < 1:
		return invalid("server.max_jobs must be >= 1, got %d", c.Server.MaxJobs)
	case c.Server.MaxUploadMB < 1:
		return invalid("server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	case c.Remote.Timeout <= 0:
		return invalid("remote.timeout must be positive, got %s", c.Remote.Timeout)
	case !(c.Remix.Tempo > 0) || math.IsInf(c.Remix.Tempo, 0):
		return invalid("remix.tempo must be positive and finite, got %v", c.Remix.Tempo)
	case math.IsNaN(c.Remix.Pitch) || math.Abs(c.Remix.Pitch) > 12:
		return invalid("remix.pitch must be within [-12, 12], got %v", c.Remix.Pitch)
	case c.Remix.Pitch != math.Trunc(c.Remix.Pitch):
		return invalid("remix.pitch must be whole semitones, got %v", c.Remix.Pitch)
	case c.Remix.SampleRate < 0:
		return invalid("remix.sample_rate must be >= 0, got %d", c.Remix.SampleRate)
	}

	if _, err := pitch.ParseInterpolation(c.Remix.Interpolation); err != nil {
		return invalid("remix.interpolation: %v", err)
	}

	if _, err := resample.ParseQuality(c.Remix.ResampleQuality); err != nil {
		return invalid("remix.resample_quality: %v", err)
	}

	if _, err := c.Registry(); err != nil {
		return invalid("moods: %v", err)
	}

	return nil
}

// Registry returns the built-in presets plus the configured moods. A
// configured mood replaces a built-in of the same name.
func (c Config) Registry() (*mood.Registry, error) {
	r := mood.DefaultRegistry()

	for _, spec := range c.Moods {
		p, err := mood.ParsePreset(spec)
		if err != nil {
			return nil, err
		}

		r.Set(p)
	}

	return r, nil
}

// Interpolation returns the parsed remix.interpolation.
func (c Config) Interpolation() pitch.Interpolation {
	i, _ := pitch.ParseInterpolation(c.Remix.Interpolation)
	return i
}

// ResampleQuality returns the parsed remix.resample_quality.
func (c Config) ResampleQuality() resample.Quality {
	q, _ := resample.ParseQuality(c.Remix.ResampleQuality)
	return q
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}
