// Package preview shows rendered grids on a development machine, either in
// a terminal or in a desktop window.
package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"elrs-hud/hud"
)

// ErrQuit is returned by Run when the user closes the preview.
var ErrQuit = errors.New("preview closed")

// Cell styles. The camera feed is drawn as a flat green so that opaque
// blanks stand out as black boxes the way they do on goggles.
var (
	styleVideo  = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleOpaque = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal draws grids into a tcell screen. Show may be called from the
// frame loop while Run polls input on another goroutine.
type Terminal struct {
	screen  tcell.Screen
	symbols *hud.SymbolTable

	mu     sync.Mutex
	status string
}

// NewTerminal takes over the controlling terminal.
func NewTerminal(symbols *hud.SymbolTable) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewTerminalScreen(screen, symbols), nil
}

// NewTerminalScreen wraps an initialized screen.
func NewTerminalScreen(screen tcell.Screen, symbols *hud.SymbolTable) *Terminal {
	if symbols == nil {
		symbols = hud.DefaultSymbolTable()
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))
	screen.Clear()
	return &Terminal{screen: screen, symbols: symbols}
}

// SetStatus sets the line printed under the grid.
func (t *Terminal) SetStatus(s string) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Show draws g at the top-left corner and flushes the screen.
func (t *Terminal) Show(g hud.Grid) {
	t.mu.Lock()
	status := t.status
	t.mu.Unlock()

	for r, row := range g {
		for c, b := range row {
			t.screen.SetContent(c, r, t.symbols.Rune(b), nil, t.style(b))
		}
	}
	width, _ := t.screen.Size()
	x := 0
	for _, ch := range status {
		if x >= width {
			break
		}
		t.screen.SetContent(x, len(g), ch, nil, styleStatus)
		x++
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, len(g), ' ', nil, styleStatus)
	}
	t.screen.Show()
}

func (t *Terminal) style(b byte) tcell.Style {
	if b == ' ' {
		return styleOpaque
	}
	return styleVideo
}

// Run handles input until the user quits (ErrQuit) or ctx is done
// (ctx.Err()).
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return ErrQuit
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if isQuitKey(ev.Key(), ev.Rune()) {
				return ErrQuit
			}
		}
	}
}

func isQuitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
