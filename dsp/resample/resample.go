package resample

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects the anti-aliasing prototype.
type Quality int

const (
	// QualityFast uses short branches and a soft Kaiser window.
	QualityFast Quality = iota
	// QualityBalanced is the default.
	QualityBalanced
	// QualityBest uses long branches for the deepest stopband.
	QualityBest
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityBest:
		return "best"
	default:
		return "balanced"
	}
}

// ParseQuality maps "fast", "balanced" or "best" to a Quality. The empty
// string selects QualityBalanced.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast":
		return QualityFast, nil
	case "", "balanced":
		return QualityBalanced, nil
	case "best":
		return QualityBest, nil
	}

	return QualityBalanced, fmt.Errorf("resample: unknown quality %q", s)
}

type profile struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func (q Quality) profile() profile {
	switch q {
	case QualityFast:
		return profile{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5}
	case QualityBest:
		return profile{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9}
	default:
		return profile{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	maxDen       int
}

// Option configures a Resampler.
type Option func(*config)

// WithQuality selects the prototype filter profile.
func WithQuality(q Quality) Option {
	return func(c *config) { c.quality = q }
}

// WithTapsPerPhase overrides the branch length of the selected profile.
func WithTapsPerPhase(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tapsPerPhase = n
		}
	}
}

// WithMaxDenominator caps the denominator NewForRates may use when the rate
// ratio is not exactly representable.
func WithMaxDenominator(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 4096}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = cfg.quality.profile().tapsPerPhase
	}

	return cfg
}

// Resampler converts whole buffers by a rational factor up/down with a
// linear-phase polyphase FIR. Output sample m is aligned with input time
// m*down/up; the filter delay is removed.
type Resampler struct {
	up, down int
	quality  Quality
	half     int         // prototype delay in upsampled samples
	bank     [][]float64 // bank[p][k] = h[p+k*up]
}

// NewRational creates a resampler for up/down, reduced to lowest terms.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	g := gcd(up, down)
	up, down = up/g, down/g

	cfg := newConfig(opts)
	p := cfg.quality.profile()

	half := cfg.tapsPerPhase * up / 2
	h := prototype(2*half+1, 0.5/float64(max(up, down))*p.cutoffScale, p.kaiserBeta, float64(up))

	bank := make([][]float64, up)
	for ph := range bank {
		for n := ph; n < len(h); n += up {
			bank[ph] = append(bank[ph], h[n])
		}
	}

	return &Resampler{up: up, down: down, quality: cfg.quality, half: half, bank: bank}, nil
}

// NewForRates creates a resampler converting inRate to outRate. Integral
// rates use their exact ratio; others are approximated by continued
// fractions.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, inRate, outRate)
	}

	cfg := newConfig(opts)
	up, down := rateRatio(inRate, outRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// ConvertRate converts input from inRate to outRate. Equal rates return a
// copy.
func ConvertRate(input []float64, inRate, outRate float64, opts ...Option) ([]float64, error) {
	if inRate == outRate && validRate(inRate) {
		out := make([]float64, len(input))
		copy(out, input)

		return out, nil
	}

	r, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

// ResampleAligned converts input by up/down. The result has exactly
// round(len(input)*up/down) samples.
func ResampleAligned(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

// Process resamples input into a new buffer of OutputLen(len(input))
// samples. Samples outside input are treated as zero.
func (r *Resampler) Process(input []float64) []float64 {
	out := make([]float64, r.OutputLen(len(input)))

	for m := range out {
		pos := m*r.down + r.half
		i := pos / r.up

		var acc float64

		for k, c := range r.bank[pos%r.up] {
			idx := i - k
			if idx < 0 {
				break
			}

			if idx < len(input) {
				acc += c * input[idx]
			}
		}

		out[m] = acc
	}

	return out
}

// OutputLen returns round(n*up/down).
func (r *Resampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return int(math.Round(float64(n) * float64(r.up) / float64(r.down)))
}

// GroupDelay returns the removed filter delay in output samples.
func (r *Resampler) GroupDelay() float64 {
	return float64(r.half) / float64(r.down)
}

// Ratio returns the reduced conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

func validRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
