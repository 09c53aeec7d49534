package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-remix/internal/audio"
	"github.com/cwbudde/algo-remix/internal/config"
	"github.com/cwbudde/algo-remix/internal/logging"
	"github.com/cwbudde/algo-remix/internal/remix"
	"github.com/cwbudde/algo-remix/internal/server"
	"github.com/cwbudde/algo-remix/measure/summary"
)

// ProcessCmd remixes one file.
type ProcessCmd struct {
	Input  string   `arg:"" type:"existingfile" help:"Input WAV file"`
	Output string   `arg:"" type:"path" help:"Output WAV file"`
	Mood   string   `short:"m" help:"Mood preset name"`
	Tempo  *float64 `short:"t" help:"Tempo multiplier (1 keeps the tempo)"`
	Pitch  *float64 `short:"p" help:"Pitch shift in whole semitones [-12, 12]"`
	Seed   *int64   `help:"Random seed for reverb impulse responses (0 = time based)"`
	Remote bool     `help:"Delegate to the configured remote service"`
}

// Run executes the process command.
func (c *ProcessCmd) Run(cli *CLI) error {
	cfg, log, err := cli.load()
	if err != nil {
		return err
	}

	svc, err := remix.NewService(cfg, log)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}

	params := remix.Params{
		Mood:      cfg.Remix.Mood,
		Tempo:     cfg.Remix.Tempo,
		Pitch:     cfg.Remix.Pitch,
		Seed:      cfg.Remix.Seed,
		UseRemote: c.Remote || cfg.Remix.UseRemote,
	}

	if c.Mood != "" {
		params.Mood = c.Mood
	}

	if c.Tempo != nil {
		params.Tempo = *c.Tempo
	}

	if c.Pitch != nil {
		params.Pitch = *c.Pitch
	}

	if c.Seed != nil {
		params.Seed = *c.Seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := svc.Remix(ctx, remix.Input{Name: c.Input, Data: data}, params)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Output, res.WAV, 0o644); err != nil {
		return err
	}

	if in, err := audio.DecodeBytes(data); err == nil {
		fmt.Printf("in:  %s\n", summary.Of(in))
	}

	if res.Signal.Len() > 0 {
		fmt.Printf("out: %s\n", summary.Of(res.Signal))
	}

	fmt.Printf("wrote %s (%d bytes, %s, %s)\n", c.Output, len(res.WAV), source(res.Remote), res.Elapsed.Round(time.Millisecond))

	return nil
}

// MoodsCmd lists the configured moods.
type MoodsCmd struct{}

// Run executes the moods command.
func (c *MoodsCmd) Run(cli *CLI) error {
	cfg, _, err := cli.load()
	if err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	for _, name := range reg.Names() {
		p, _ := reg.Lookup(name)

		steps := make([]string, len(p.Steps))
		for i, s := range p.Steps {
			steps[i] = s.String()
		}

		fmt.Printf("%-10s %s\n", name, strings.Join(steps, " -> "))
	}

	return nil
}

// ServeCmd runs the HTTP service.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(cli *CLI) error {
	cfg, log, err := cli.load()
	if err != nil {
		return err
	}

	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}

	svc, err := remix.NewService(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, svc, log).Run(ctx)
}

func (cli *CLI) load() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return config.Config{}, nil, err
	}

	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, log, nil
}

func source(remote bool) string {
	if remote {
		return "remote"
	}

	return "local"
}
