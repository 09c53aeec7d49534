package stretch

import (
	"fmt"

	"github.com/cwbudde/algo-remix/dsp/core"
)

const (
	// DefaultFrameSize is the STFT frame length N.
	DefaultFrameSize = 2048

	minFrameSize = 64
)

type config struct {
	frameSize    int
	analysisHop  int
	phaseLocking bool
}

// Option configures a Stretcher.
type Option func(*config)

// WithFrameSize sets the FFT frame size. It must be a power of two >= 64.
// The analysis hop follows at N/4 unless set explicitly.
func WithFrameSize(n int) Option {
	return func(c *config) { c.frameSize = n }
}

// WithAnalysisHop sets the analysis hop Ha in samples (1 <= Ha < N).
func WithAnalysisHop(h int) Option {
	return func(c *config) { c.analysisHop = h }
}

// WithPhaseLocking enables identity phase locking around spectral peaks,
// which reduces phasiness on tonal material.
func WithPhaseLocking(enabled bool) Option {
	return func(c *config) { c.phaseLocking = enabled }
}

func newConfig(opts []Option) (config, error) {
	cfg := config{frameSize: DefaultFrameSize}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if cfg.frameSize < minFrameSize || cfg.frameSize&(cfg.frameSize-1) != 0 {
		return cfg, fmt.Errorf("stretch: frame size must be a power of two >= %d, got %d: %w",
			minFrameSize, cfg.frameSize, core.ErrInvalidParameter)
	}

	if cfg.analysisHop == 0 {
		cfg.analysisHop = cfg.frameSize / 4
	}

	if cfg.analysisHop < 1 || cfg.analysisHop >= cfg.frameSize {
		return cfg, fmt.Errorf("stretch: analysis hop must be in [1, %d), got %d: %w",
			cfg.frameSize, cfg.analysisHop, core.ErrInvalidParameter)
	}

	return cfg, nil
}
