// Package audio decodes and encodes PCM WAV files as mono core.Signal values.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-remix/dsp/core"
)

// DefaultBitDepth is the sample width written by Encode.
const DefaultBitDepth = 16

const pcmFormat = 1

var (
	// ErrNotWAV is returned when the input has no valid RIFF/WAVE header.
	ErrNotWAV = errors.New("audio: not a WAV file")
	// ErrUnsupported is returned for sample formats the codec cannot handle.
	ErrUnsupported = errors.New("audio: unsupported format")
)

// Decode reads an integer PCM WAV stream and downmixes it to mono by
// averaging channels. Samples are scaled to [-1, 1).
func Decode(r io.ReadSeeker) (core.Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return core.Signal{}, ErrNotWAV
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return core.Signal{}, fmt.Errorf("audio: decode: %w", err)
	}

	depth := int(d.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return core.Signal{}, fmt.Errorf("%w: %d-bit samples", ErrUnsupported, depth)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return core.Signal{}, fmt.Errorf("%w: %d channels", ErrUnsupported, channels)
	}

	scale := 1 / math.Ldexp(1, depth-1)
	offset := 0
	if depth == 8 {
		offset = 128
	}

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)

	for i := range mono {
		var sum float64
		for c := range channels {
			sum += float64(buf.Data[i*channels+c] - offset)
		}

		mono[i] = sum / float64(channels) * scale
	}

	return core.NewSignal(mono, buf.Format.SampleRate)
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) (core.Signal, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (core.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Signal{}, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes sig as mono integer PCM with the given bit depth (0 selects
// DefaultBitDepth). Samples outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, sig core.Signal, bitDepth int) error {
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupported, bitDepth)
	}

	if sig.SampleRate <= 0 {
		return fmt.Errorf("audio: encode: sample rate %d: %w", sig.SampleRate, core.ErrInvalidParameter)
	}

	full := math.Ldexp(1, bitDepth-1) - 1
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		data[i] = int(math.Round(core.Clamp(v, -1, 1)*full)) + offset
	}

	enc := wav.NewEncoder(w, sig.SampleRate, bitDepth, 1, pcmFormat)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sig.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	return nil
}

// EncodeBytes encodes sig into a new in-memory WAV file.
func EncodeBytes(sig core.Signal, bitDepth int) ([]byte, error) {
	var ws writeSeeker
	if err := Encode(&ws, sig, bitDepth); err != nil {
		return nil, err
	}

	return ws.buf, nil
}

// WriteFile encodes sig to path, replacing any existing file.
func WriteFile(path string, sig core.Signal, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	if err := Encode(f, sig, bitDepth); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
