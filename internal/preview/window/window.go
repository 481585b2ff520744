// Package window shows rendered grids in a desktop window, drawing each
// OSD glyph with vector strokes at MAX7456 cell proportions.
package window

import (
	"context"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"elrs-hud/hud"
	"elrs-hud/internal/preview"
)

// Cell size in logical pixels; the window scales it.
const (
	cellWidth  = 12
	cellHeight = 18
	scale      = 3
)

var (
	videoColor  = color.RGBA{40, 70, 40, 255}
	opaqueColor = color.RGBA{0, 0, 0, 255}
	glyphColor  = color.RGBA{255, 255, 255, 255}
	statusColor = color.RGBA{0, 0, 0, 180}
)

// Window is an ebiten game that displays the latest grid handed to Show.
// Show is called from the frame loop; ebiten calls Update and Draw on the
// main goroutine.
type Window struct {
	symbols       *hud.SymbolTable
	rows, columns int

	mu     sync.Mutex
	grid   hud.Grid
	status string

	ctx        context.Context
	showStatus bool
}

// New sizes a window for rows x columns grids.
func New(rows, columns int, symbols *hud.SymbolTable) *Window {
	if symbols == nil {
		symbols = hud.DefaultSymbolTable()
	}
	return &Window{
		symbols:    symbols,
		rows:       rows,
		columns:    columns,
		grid:       hud.NewGrid(rows, columns),
		showStatus: true,
	}
}

// Show copies g for the next Draw.
func (w *Window) Show(g hud.Grid) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for r := range w.grid {
		if r < len(g) {
			copy(w.grid[r], g[r])
		}
	}
}

// SetStatus sets the overlay line toggled with S.
func (w *Window) SetStatus(s string) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

// Run opens the window and blocks until it is closed (preview.ErrQuit)
// or ctx is done. It must be called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx
	ebiten.SetWindowSize(w.columns*cellWidth*scale, w.rows*cellHeight*scale)
	ebiten.SetWindowTitle("ELRS HUD")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return preview.ErrQuit
}

// Update handles input.
func (w *Window) Update() error {
	if w.ctx != nil && w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		w.showStatus = !w.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return nil
}

// Draw paints the camera backdrop and every non-transparent cell.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(videoColor)

	w.mu.Lock()
	defer w.mu.Unlock()
	for r, row := range w.grid {
		for c, b := range row {
			x, y := float32(c*cellWidth), float32(r*cellHeight)
			switch b {
			case 0:
			case ' ':
				vector.DrawFilledRect(screen, x, y, cellWidth, cellHeight, opaqueColor, false)
			default:
				w.drawCell(screen, b, x, y)
			}
		}
	}

	if w.showStatus && w.status != "" {
		vector.DrawFilledRect(screen, 0, 0, float32(len(w.status)*6+4), 16, statusColor, false)
		ebitenutil.DebugPrintAt(screen, w.status, 2, 0)
	}
}

// Layout keeps the logical size at one pixel per font pixel.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.columns * cellWidth, w.rows * cellHeight
}

func (w *Window) drawCell(dst *ebiten.Image, b byte, x, y float32) {
	s, ok := w.symbols.Lookup(b)
	if !ok {
		drawChar(dst, rune(b), x, y)
		return
	}
	drawSymbol(dst, s, x, y)
}

func drawChar(dst *ebiten.Image, r rune, x, y float32) {
	face := basicfont.Face7x13
	dx := (cellWidth - face.Advance) / 2
	dy := (cellHeight-face.Height)/2 + face.Ascent
	text.Draw(dst, string(r), face, int(x)+dx, int(y)+dy, glyphColor)
}

// drawSymbol strokes the glyphs the ASCII font has no character for.
func drawSymbol(dst *ebiten.Image, s hud.Symbol, x, y float32) {
	const w, h = cellWidth, cellHeight
	line := func(x0, y0, x1, y1 float32) {
		vector.StrokeLine(dst, x+x0, y+y0, x+x1, y+y1, 1.5, glyphColor, true)
	}

	switch {
	case s >= hud.LineTop && s <= hud.LineBottom:
		ly := (float32(s-hud.LineTop) + 0.5) * h / 7
		line(0, ly, w, ly)
		return
	case s >= hud.LineLeft && s <= hud.LineRight:
		lx := (float32(s-hud.LineLeft) + 0.5) * w / 5
		line(lx, 0, lx, h)
		return
	case s >= hud.ZeroWithTrailingDot && s <= hud.NineWithTrailingDot:
		drawChar(dst, rune('0'+s-hud.ZeroWithTrailingDot), x-2, y)
		vector.DrawFilledRect(dst, x+w-3, y+h-5, 2, 2, glyphColor, false)
		return
	}

	switch s {
	case hud.VerticalLine:
		line(w/2, 0, w/2, h)
	case hud.BoxDrawingLightUp:
		line(w/2, 0, w/2, h/2)
	case hud.CrossHair:
		line(1, h/2, w-1, h/2)
		line(w/2, 3, w/2, h-3)
	case hud.Square:
		vector.StrokeRect(dst, x+2, y+5, w-4, w-4, 1.5, glyphColor, true)
	case hud.SmallBlackSquare:
		vector.DrawFilledRect(dst, x+w/2-2, y+h/2-2, 4, 4, glyphColor, false)
	case hud.VelocityVectorSymbol:
		vector.StrokeCircle(dst, x+w/2, y+h/2, 3, 1.5, glyphColor, true)
		line(0, h/2, w/2-3, h/2)
		line(w/2+3, h/2, w, h/2)
		line(w/2, h/2-3, w/2, h/2-7)
	case hud.Degree:
		vector.StrokeCircle(dst, x+w/2, y+5, 2, 1, glyphColor, true)
	case hud.Battery:
		vector.StrokeRect(dst, x+3, y+4, w-6, h-6, 1.5, glyphColor, true)
		vector.DrawFilledRect(dst, x+w/2-1.5, y+2, 3, 2, glyphColor, false)
	case hud.Antenna:
		line(w/2, 4, w/2, h-2)
		line(2, 4, w/2, h/2)
		line(w-2, 4, w/2, h/2)
	case hud.Alpha:
		drawChar(dst, 'a', x, y)
	}
}
