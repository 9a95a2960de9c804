package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// statusHandler logs overlay errors and shows them in the status line.
type statusHandler struct {
	overlayerrors.LogHandler
	send func(tea.Msg)
}

func (h *statusHandler) HandleError(err *overlayerrors.OverlayError) {
	h.LogHandler.HandleError(err)
	if err != nil {
		go h.send(errorMsg{err: err})
	}
}

func (h *statusHandler) HandlePanic(err *overlayerrors.PanicError) {
	h.LogHandler.HandlePanic(err)
	if err != nil {
		go h.send(errorMsg{err: fmt.Errorf("panic in %s: %v", err.Op, err.Value)})
	}
}

// Run starts the preview and blocks until the user quits or ctx is done.
// Configurations received on reloads remount the player.
func Run(ctx context.Context, opts Options, reloads <-chan config.Config, programOpts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(m, programOpts...)

	d := newDispatcher()
	defer platform.RegisterDispatch(platform.RegisterDispatch(d.enqueue))
	defer overlayerrors.SetHandler(overlayerrors.SetHandler(&statusHandler{send: p.Send}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return opts.Engine.Run(gctx)
	})
	g.Go(func() error {
		d.run(gctx, p.Send)
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case cfg, ok := <-reloads:
				if !ok {
					reloads = nil
					continue
				}
				p.Send(ReloadMsg{Config: cfg})
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		m.Shutdown()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
