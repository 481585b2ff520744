package main

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"elrs-hud/hud"
	"elrs-hud/internal/displayport"
	"elrs-hud/internal/source"
)

// heartbeatInterval keeps a DisplayPort device from reclaiming the screen
// while frames are slow or paused.
const heartbeatInterval = 500 * time.Millisecond

// viewer is a preview that takes copies of rendered grids.
type viewer interface {
	Show(hud.Grid)
	SetStatus(string)
}

// app wires a telemetry source through the HUD into the outputs.
type app struct {
	hud    *hud.HUD
	source hud.TelemetrySource
	client *source.Client
	port   *displayport.Writer
	fps    int

	view      viewer
	input     func(context.Context) error
	closeView func()

	frames atomic.Uint64
}

// run drives the frame loop and the output side goroutines until ctx is
// done or one of them fails.
func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.frameLoop(ctx) })
	if a.port != nil {
		g.Go(func() error { return a.heartbeatLoop(ctx) })
	}
	if a.input != nil {
		g.Go(func() error { return a.input(ctx) })
	}
	return g.Wait()
}

func (a *app) frameLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	grid := a.hud.NewGrid()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		a.hud.RenderFrom(a.source, grid)
		if a.port != nil {
			if err := a.port.WriteGrid(grid); err != nil {
				return err
			}
		}
		n := a.frames.Add(1)
		if a.view != nil {
			a.view.SetStatus(a.status(n))
			a.view.Show(grid)
		}
	}
}

func (a *app) heartbeatLoop(ctx context.Context) error {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := a.port.Heartbeat(); err != nil {
			return err
		}
	}
}

func (a *app) status(frames uint64) string {
	link := "SIM"
	if a.client != nil {
		link = "OFF"
		if a.client.IsConnected() {
			link = "ON"
		}
	}
	return fmt.Sprintf("frame %d | link %s | %d fps | q quits", frames, link, a.fps)
}

// shutdown releases everything main opened. Safe to call with any subset
// of the outputs set up.
func (a *app) shutdown() {
	if a.closeView != nil {
		a.closeView()
		a.closeView = nil
	}
	if a.client != nil {
		a.client.Disconnect()
	}
	if a.port != nil {
		if err := a.port.Close(); err != nil {
			log.Printf("DisplayPort close: %v", err)
		}
		a.port = nil
	}
}
