package audio

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/testutil"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := testutil.Sine(440, 22050, 0.8, 2205)
	sig, err := core.NewSignal(in, 22050)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		depth int
		tol   float64
	}{
		{8, 1.0 / 100},
		{16, 1.0 / 30000},
		{24, 1e-6},
		{32, 1e-8},
	}

	for _, tt := range tests {
		data, err := EncodeBytes(sig, tt.depth)
		if err != nil {
			t.Fatalf("EncodeBytes(%d) error = %v", tt.depth, err)
		}

		got, err := DecodeBytes(data)
		if err != nil {
			t.Fatalf("DecodeBytes(%d-bit) error = %v", tt.depth, err)
		}

		if got.SampleRate != 22050 {
			t.Fatalf("%d-bit: SampleRate = %d", tt.depth, got.SampleRate)
		}

		testutil.RequireClose(t, got.Samples, in, tt.tol)
	}
}

func TestEncodeClips(t *testing.T) {
	sig := core.Signal{Samples: []float64{2, -2, 0}, SampleRate: 8000}

	data, err := EncodeBytes(sig, 0)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}

	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	want := []float64{32767.0 / 32768, -32767.0 / 32768, 0}
	testutil.RequireClose(t, got.Samples, want, 1e-12)
}

func TestDecodeDownmixesStereo(t *testing.T) {
	var ws writeSeeker

	enc := wav.NewEncoder(&ws, 16000, 16, 2, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 16000},
		Data:           []int{16384, 0, -16384, -16384, 8192, 24576},
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	sig, err := DecodeBytes(ws.buf)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	testutil.RequireClose(t, sig.Samples, []float64{0.25, -0.5, 0.5}, 1e-12)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("definitely not a riff file")); !errors.Is(err, ErrNotWAV) {
		t.Fatalf("DecodeBytes() error = %v, want ErrNotWAV", err)
	}
}

func TestEncodeRejects(t *testing.T) {
	if _, err := EncodeBytes(core.Signal{Samples: []float64{0}, SampleRate: 8000}, 12); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("12-bit error = %v", err)
	}

	if _, err := EncodeBytes(core.Signal{Samples: []float64{0}}, 16); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("zero rate error = %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	sig := core.Signal{Samples: testutil.Sine(1000, 44100, 0.5, 441), SampleRate: 44100}

	if err := WriteFile(path, sig, 24); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if got.Len() != sig.Len() || math.Abs(got.Duration().Seconds()-0.01) > 1e-9 {
		t.Fatalf("got %d samples, %v", got.Len(), got.Duration())
	}
}

func TestWriteSeekerPatchesEarlierBytes(t *testing.T) {
	var ws writeSeeker
	ws.Write([]byte("abcdef"))
	ws.Seek(2, 0)
	ws.Write([]byte("XY"))
	ws.Seek(0, 2)
	ws.Write([]byte("!"))

	if string(ws.buf) != "abXYef!" {
		t.Fatalf("buf = %q", ws.buf)
	}
}
