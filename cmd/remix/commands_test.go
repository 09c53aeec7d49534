package main

import (
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/audio"
	"github.com/cwbudde/algo-remix/internal/testutil"
)

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	sig := core.Signal{Samples: testutil.Sine(440, 44100, 0.5, 44100), SampleRate: 44100}
	if err := audio.WriteFile(in, sig, 16); err != nil {
		t.Fatal(err)
	}

	tempo := 1.25
	seed := int64(1)
	cmd := &ProcessCmd{Input: in, Output: out, Mood: "neutral", Tempo: &tempo, Seed: &seed}

	if err := cmd.Run(&CLI{LogLevel: "error"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := audio.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if got.Len() != 35280 {
		t.Fatalf("len = %d, want 35280", got.Len())
	}
}

func TestProcessCommandRejectsPitch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")

	sig := core.Signal{Samples: make([]float64, 100), SampleRate: 44100}
	if err := audio.WriteFile(in, sig, 16); err != nil {
		t.Fatal(err)
	}

	for _, pitch := range []float64{20, 1.5} {
		cmd := &ProcessCmd{Input: in, Output: filepath.Join(dir, "out.wav"), Pitch: &pitch}

		if err := cmd.Run(&CLI{LogLevel: "error"}); err == nil {
			t.Fatalf("pitch %v: expected error", pitch)
		}
	}
}

func TestMoodsCommand(t *testing.T) {
	if err := (&MoodsCmd{}).Run(&CLI{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
