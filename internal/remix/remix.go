// Package remix turns an uploaded WAV file into a remixed WAV file, either
// locally through the mood pipeline or by delegating to a remote service.
package remix

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/audio"
	"github.com/cwbudde/algo-remix/internal/config"
	"github.com/cwbudde/algo-remix/internal/remote"
)

var (
	// ErrRemote wraps every failure of the remote path, including a missing
	// remote configuration.
	ErrRemote = errors.New("remote remix failed")
	// ErrProcessing wraps local decode, DSP and encode failures.
	ErrProcessing = errors.New("remix processing failed")
)

// Input is an encoded audio file.
type Input struct {
	Name string
	Data []byte
}

// Params are the per-request remix settings.
type Params struct {
	Mood      string
	Tempo     float64 // 0 is treated as 1
	Pitch     float64 // whole semitones
	Seed      int64   // 0 selects a time-based seed
	UseRemote bool
}

// Validate rejects non-finite or out-of-range controls with
// core.ErrInvalidParameter.
func (p Params) Validate() error {
	if math.IsNaN(p.Tempo) || math.IsInf(p.Tempo, 0) || p.Tempo < 0 {
		return fmt.Errorf("tempo must be positive and finite, got %v: %w", p.Tempo, core.ErrInvalidParameter)
	}

	if math.IsNaN(p.Pitch) || math.Abs(p.Pitch) > 12 {
		return fmt.Errorf("pitch must be within [-12, 12] semitones, got %v: %w", p.Pitch, core.ErrInvalidParameter)
	}

	if p.Pitch != math.Trunc(p.Pitch) {
		return fmt.Errorf("pitch must be a whole number of semitones, got %v: %w", p.Pitch, core.ErrInvalidParameter)
	}

	return nil
}

func (p Params) tempo() float64 {
	if p.Tempo == 0 {
		return 1
	}

	return p.Tempo
}

// Result is a finished remix.
type Result struct {
	ID      string
	WAV     []byte
	Signal  core.Signal // empty when the remote result is not a decodable WAV
	Remote  bool
	Elapsed time.Duration
}

// Service dispatches remix requests to the local pipeline or, when requested,
// to the remote client.
type Service struct {
	local  *Local
	remote *remote.Client
	log    logrus.FieldLogger
}

// NewService builds a Service from cfg. The remote path is available only
// when cfg.Remote.URL is set.
func NewService(cfg config.Config, log logrus.FieldLogger) (*Service, error) {
	local, err := NewLocal(cfg)
	if err != nil {
		return nil, err
	}

	s := &Service{local: local, log: log}

	if cfg.Remote.Enabled() {
		if s.remote, err = remote.NewClient(cfg.Remote); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Local returns the local pipeline.
func (s *Service) Local() *Local { return s.local }

// RemoteEnabled reports whether a remote service is configured.
func (s *Service) RemoteEnabled() bool { return s.remote != nil }

// Remix runs one job and logs its outcome.
func (s *Service) Remix(ctx context.Context, in Input, p Params) (Result, error) {
	start := time.Now()
	id := uuid.NewString()

	log := s.log.WithFields(logrus.Fields{
		"job":    id,
		"mood":   p.Mood,
		"tempo":  p.tempo(),
		"pitch":  p.Pitch,
		"remote": p.UseRemote,
		"bytes":  len(in.Data),
	})

	var (
		res Result
		err error
	)

	if err = p.Validate(); err == nil {
		if p.UseRemote {
			res, err = s.remix(ctx, in, p)
		} else {
			res, err = s.local.Remix(ctx, in, p)
		}
	}

	if err != nil {
		log.WithError(err).Warn("remix failed")
		return Result{}, err
	}

	res.ID = id
	res.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"elapsed": res.Elapsed.Round(time.Millisecond),
		"out":     len(res.WAV),
	}).Info("remix done")

	return res, nil
}

func (s *Service) remix(ctx context.Context, in Input, p Params) (Result, error) {
	if s.remote == nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRemote, remote.ErrNotConfigured)
	}

	out, err := s.remote.Remix(ctx, remote.Request{
		Audio:    in.Data,
		Filename: in.Name,
		Mood:     p.Mood,
		Tempo:    p.tempo(),
		Pitch:    int(p.Pitch),
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	res := Result{WAV: out, Remote: true}
	if sig, err := audio.DecodeBytes(out); err == nil {
		res.Signal = sig
	}

	return res, nil
}

// MoodNames lists the moods known to the local pipeline.
func (s *Service) MoodNames() []string {
	return s.local.registry.Names()
}

