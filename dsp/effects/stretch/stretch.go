package stretch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/dsp/window"
)

const (
	normFloor = 1e-12
	// relativeNormFloor bounds the overlap-add divisor below by this fraction
	// of its largest value.
	relativeNormFloor = 0.1
)

// Stretcher is a reusable phase-vocoder time stretcher.
//
// It is not safe for concurrent use.
type Stretcher struct {
	frameSize    int
	analysisHop  int
	phaseLocking bool

	plan *algofft.Plan[complex128]

	win       []float64
	winSq     []float64
	buf       []float64
	omega     []float64
	prevPhase []float64
	sumPhase  []float64
	mag       []float64
	instFreq  []float64
	peaks     []int

	spectrum []complex128
	frame    []complex128
}

// New creates a Stretcher. Invalid options yield core.ErrInvalidParameter.
func New(opts ...Option) (*Stretcher, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("stretch: failed to create FFT plan: %w", err)
	}

	n := cfg.frameSize
	bins := n/2 + 1

	s := &Stretcher{
		frameSize:    n,
		analysisHop:  cfg.analysisHop,
		phaseLocking: cfg.phaseLocking,
		plan:         plan,
		win:          window.Generate(window.TypeHann, n, window.WithPeriodic()),
		omega:        make([]float64, bins),
		prevPhase:    make([]float64, bins),
		sumPhase:     make([]float64, bins),
		mag:          make([]float64, bins),
		instFreq:     make([]float64, bins),
		peaks:        make([]int, 0, bins),
		buf:          make([]float64, n),
		spectrum:     make([]complex128, n),
		frame:        make([]complex128, n),
	}

	s.winSq = make([]float64, n)
	if err := window.ApplyCoefficients(s.winSq, s.win, s.win); err != nil {
		return nil, err
	}

	for k := range s.omega {
		s.omega[k] = 2 * math.Pi * float64(k) / float64(n)
	}

	return s, nil
}

// FrameSize returns N.
func (s *Stretcher) FrameSize() int { return s.frameSize }

// AnalysisHop returns Ha.
func (s *Stretcher) AnalysisHop() int { return s.analysisHop }

// SynthesisHop returns Hs = max(1, round(Ha/rate)).
func (s *Stretcher) SynthesisHop(rate float64) int {
	return max(1, int(math.Round(float64(s.analysisHop)/rate)))
}

// Stretch is a one-shot helper that builds a Stretcher and calls Process.
func Stretch(in []float64, rate float64, opts ...Option) ([]float64, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return s.Process(in, rate)
}

// Process returns in played rate times faster with unchanged pitch. The
// result has exactly round(len(in)/rate) samples. rate == 1 returns a copy;
// a non-positive or non-finite rate yields core.ErrInvalidParameter.
func (s *Stretcher) Process(in []float64, rate float64) ([]float64, error) {
	if !core.IsFinitePositive(rate) {
		return nil, fmt.Errorf("stretch: rate must be positive and finite, got %v: %w",
			rate, core.ErrInvalidParameter)
	}

	if rate == 1 {
		return core.Clone(in), nil
	}

	want := int(math.Round(float64(len(in)) / rate))

	out, err := s.Render(in, s.SynthesisHop(rate))
	if err != nil {
		return nil, err
	}

	return core.FitLength(out, want), nil
}

// Render runs the vocoder with the given synthesis hop. Frames are centred
// on multiples of Ha, with N/2 zeros assumed before the input, so out[0]
// lines up with in[0]. The result runs to the centre of the last frame,
// (frames-1)*hs samples, and that centre lies at or past the end of in.
// Duration scales by hs/Ha.
func (s *Stretcher) Render(in []float64, hs int) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	if hs < 1 {
		return nil, fmt.Errorf("stretch: synthesis hop must be >= 1, got %d: %w", hs, core.ErrInvalidParameter)
	}

	s.reset()

	n := s.frameSize
	half := n / 2
	ha := s.analysisHop
	frames := 2 + (len(in)-1)/ha
	rawLen := (frames-1)*hs + n

	out := make([]float64, rawLen)
	norm := make([]float64, rawLen)

	for f := range frames {
		if err := s.analyze(in, f*ha-half); err != nil {
			return nil, err
		}

		if f == 0 {
			copy(s.sumPhase, s.prevPhase)
		} else {
			s.advancePhase(float64(hs))
		}

		if err := s.synthesize(); err != nil {
			return nil, err
		}

		for i, c := range s.frame {
			s.buf[i] = real(c)
		}

		if err := window.ApplyCoefficients(s.buf, s.buf, s.win); err != nil {
			return nil, err
		}

		pos := f * hs
		for i, x := range s.buf {
			out[pos+i] += x
			norm[pos+i] += s.winSq[i]
		}
	}

	out, norm = out[half:half+(frames-1)*hs], norm[half:half+(frames-1)*hs]

	// Where frames do not overlap (hs > N/2) the summed window dips towards
	// zero; dividing by it there would amplify the untapered frame edges.
	floor := normFloor
	for _, v := range norm {
		floor = max(floor, relativeNormFloor*v)
	}

	for i := range out {
		out[i] /= max(norm[i], floor)
	}

	return out, nil
}

func (s *Stretcher) reset() {
	clear(s.prevPhase)
	clear(s.sumPhase)
}

// analyze windows the N samples starting at pos (zero outside in), transforms
// them, and updates magnitudes and instantaneous frequencies.
func (s *Stretcher) analyze(in []float64, pos int) error {
	clear(s.buf)

	dst := s.buf
	if pos < 0 {
		dst = dst[min(-pos, len(dst)):]
		pos = 0
	}

	if pos < len(in) {
		copy(dst, in[pos:])
	}

	if err := window.ApplyCoefficients(s.buf, s.buf, s.win); err != nil {
		return err
	}

	for i, x := range s.buf {
		s.spectrum[i] = complex(x, 0)
	}

	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		return fmt.Errorf("stretch: forward FFT failed: %w", err)
	}

	ha := float64(s.analysisHop)
	for k := range s.mag {
		re, im := real(s.spectrum[k]), imag(s.spectrum[k])
		s.mag[k] = math.Hypot(re, im)
		phase := math.Atan2(im, re)

		delta := wrapPhase(phase - s.prevPhase[k] - s.omega[k]*ha)
		s.instFreq[k] = s.omega[k] + delta/ha
		s.prevPhase[k] = phase
	}

	return nil
}

func (s *Stretcher) advancePhase(hs float64) {
	if s.phaseLocking && s.lockToPeaks(hs) {
		return
	}

	for k := range s.sumPhase {
		s.sumPhase[k] += s.instFreq[k] * hs
	}
}

// lockToPeaks advances only the spectral peaks and keeps every other bin at
// its analysis phase offset from the nearest peak. It reports false when the
// frame has no peaks.
func (s *Stretcher) lockToPeaks(hs float64) bool {
	half := s.frameSize / 2

	s.peaks = s.peaks[:0]
	for k := 1; k < half; k++ {
		if s.mag[k] >= s.mag[k-1] && s.mag[k] > s.mag[k+1] {
			s.peaks = append(s.peaks, k)
		}
	}

	if len(s.peaks) == 0 {
		return false
	}

	for _, pk := range s.peaks {
		s.sumPhase[pk] += s.instFreq[pk] * hs
	}

	p := 0
	for k := 0; k <= half; k++ {
		for p+1 < len(s.peaks) && absInt(s.peaks[p+1]-k) < absInt(s.peaks[p]-k) {
			p++
		}

		if pk := s.peaks[p]; k != pk {
			s.sumPhase[k] = s.sumPhase[pk] + (s.prevPhase[k] - s.prevPhase[pk])
		}
	}

	return true
}

// synthesize builds a Hermitian spectrum from mag and sumPhase and inverts it
// into s.frame.
func (s *Stretcher) synthesize() error {
	n := s.frameSize
	half := n / 2

	for k := 0; k <= half; k++ {
		sin, cos := math.Sincos(s.sumPhase[k])
		s.spectrum[k] = complex(s.mag[k]*cos, s.mag[k]*sin)
	}

	s.spectrum[0] = complex(real(s.spectrum[0]), 0)
	s.spectrum[half] = complex(real(s.spectrum[half]), 0)

	for k := 1; k < half; k++ {
		v := s.spectrum[k]
		s.spectrum[n-k] = complex(real(v), -imag(v))
	}

	if err := s.plan.Inverse(s.frame, s.spectrum); err != nil {
		return fmt.Errorf("stretch: inverse FFT failed: %w", err)
	}

	return nil
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
