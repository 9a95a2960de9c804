package sim

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/player"
)

// Engine owns the simulated decoders and advances them on a ticker.
type Engine struct {
	cfg    config.PreviewConfig
	logger zerolog.Logger

	mu       sync.Mutex
	decoders []*Decoder
	created  int
}

// NewEngine creates an engine for the given media settings.
func NewEngine(cfg config.PreviewConfig) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: log.WithComponent("sim"),
	}
}

// NewDecoder is a player.DecoderFactory.
func (e *Engine) NewDecoder() player.Decoder {
	d := newDecoder(e.cfg)
	e.mu.Lock()
	e.decoders = append(e.decoders, d)
	e.created++
	n := e.created
	e.mu.Unlock()
	e.logger.Debug().Int("decoder", n).Msg("decoder created")
	return d
}

// Run advances the decoders every tick until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	t := time.NewTicker(e.cfg.Tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			e.Step(e.cfg.Tick)
		}
	}
}

// Step advances every live decoder by dt and forgets disposed ones.
func (e *Engine) Step(dt time.Duration) {
	for _, d := range e.live() {
		d.step(dt)
	}
}

// InjectError makes every live decoder fail on its next step.
func (e *Engine) InjectError() {
	for _, d := range e.live() {
		d.failNext()
	}
	e.logger.Info().Msg("decode error injected")
}

// Latest returns the most recently created decoder that is still live.
func (e *Engine) Latest() *Decoder {
	live := e.live()
	if len(live) == 0 {
		return nil
	}
	return live[len(live)-1]
}

// Created returns how many decoders were created.
func (e *Engine) Created() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created
}

func (e *Engine) live() []*Decoder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decoders = lo.Reject(e.decoders, func(d *Decoder, _ int) bool {
		return d.Disposed()
	})
	return slices.Clone(e.decoders)
}
