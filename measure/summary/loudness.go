package summary

import (
	"math"

	"github.com/cwbudde/algo-remix/dsp/filter/biquad"
	"github.com/cwbudde/algo-remix/dsp/filter/design"
)

const (
	// K-weighting stages from BS.1770.
	kShelfFreq = 1500.0
	kShelfGain = 4.0
	kHPFreq    = 38.0

	blockDuration = 0.4
	blockStep     = 0.1 // 75% overlap

	absGate = -70.0
	relGate = -10.0

	silenceFloor = -120.0
)

// Loudness returns the gated integrated loudness of a mono signal in LUFS
// (ITU-R BS.1770 / EBU R128). Signals shorter than one block are measured as
// a single block. Fully gated or empty input yields -Inf.
func Loudness(samples []float64, sampleRate float64) float64 {
	if len(samples) == 0 || !(sampleRate > 0) {
		return math.Inf(-1)
	}

	q := 1 / math.Sqrt2
	k := biquad.NewChain([]biquad.Coefficients{
		design.HighShelf(kShelfFreq, kShelfGain, q, sampleRate),
		design.Highpass(kHPFreq, q, sampleRate),
	})

	sq := make([]float64, len(samples))
	for i, x := range samples {
		y := k.ProcessSample(x)
		sq[i] = y * y
	}

	blockLen := max(1, int(math.Round(blockDuration*sampleRate)))
	step := max(1, int(math.Round(blockStep*sampleRate)))

	if blockLen > len(sq) {
		blockLen = len(sq)
	}

	var blocks []float64

	sum := 0.0
	for i := range blockLen {
		sum += sq[i]
	}

	for start := 0; ; start += step {
		blocks = append(blocks, sum/float64(blockLen))

		next := start + step
		if next+blockLen > len(sq) {
			break
		}

		for i := start; i < next; i++ {
			sum -= sq[i]
		}

		for i := start + blockLen; i < next+blockLen; i++ {
			sum += sq[i]
		}

		if sum < 0 {
			sum = 0
		}
	}

	return gate(blocks)
}

func gate(blocks []float64) float64 {
	var absSum float64

	absCount := 0

	for _, b := range blocks {
		if toLUFS(b) > absGate {
			absSum += b
			absCount++
		}
	}

	if absCount == 0 {
		return math.Inf(-1)
	}

	threshold := toLUFS(absSum/float64(absCount)) + relGate

	var relSum float64

	relCount := 0

	for _, b := range blocks {
		if l := toLUFS(b); l > absGate && l > threshold {
			relSum += b
			relCount++
		}
	}

	if relCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relSum / float64(relCount))
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return silenceFloor
	}

	return -0.691 + 10*math.Log10(meanSquare)
}
