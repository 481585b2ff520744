package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawLadder(t *testing.T, opts Options, pitch int8, roll int16) Grid {
	t.Helper()
	symbols := DefaultSymbolTable()
	fov, err := NewFieldOfView(opts.FOV, opts.Aspect)
	require.NoError(t, err)
	ladder := NewPitchLadder(symbols, fov, opts)
	g := NewGrid(opts.Rows, opts.Columns)
	tel := DefaultTelemetry()
	tel.Attitude = Attitude{Pitch: pitch, Roll: roll}
	ladder.Draw(&tel, g)
	return g
}

// rowSpan returns, per column, the lowest and highest row holding a cell.
func rowSpan(g Grid) (lo, hi []int) {
	lo = make([]int, g.Columns())
	hi = make([]int, g.Columns())
	for c := range lo {
		lo[c], hi[c] = -1, -1
		for r := range g {
			if g[r][c] == 0 {
				continue
			}
			if lo[c] < 0 {
				lo[c] = r
			}
			hi[c] = r
		}
	}
	return lo, hi
}

func TestPitchLadderLevel(t *testing.T) {
	opts := DefaultOptions()
	symbols := DefaultSymbolTable()
	g := drawLadder(t, opts, 0, 0)

	for r, row := range g {
		for c, b := range row {
			if r == 8 {
				assert.Equal(t, symbols.Code(LineCenter), b, "cell %d,%d", r, c)
			} else {
				assert.Zero(t, b, "cell %d,%d", r, c)
			}
		}
	}
}

func TestPitchLadderPitchOffset(t *testing.T) {
	opts := DefaultOptions() // 90° vertical span over 16 rows
	symbols := DefaultSymbolTable()

	tests := []struct {
		pitch int8
		row   int
	}{
		{0, 8},
		{20, 11},
		{-20, 5},
		{10, 9},
	}
	for _, tt := range tests {
		g := drawLadder(t, opts, tt.pitch, 0)
		for c := range g[tt.row] {
			assert.Equal(t, symbols.Code(LineCenter), g[tt.row][c], "pitch %d col %d", tt.pitch, c)
		}
	}

	// Pushed past the bottom edge: nothing visible, nothing broken.
	g := drawLadder(t, opts, 45, 0)
	assert.Equal(t, NewGrid(16, 30), g)
}

func TestPitchLadderRollDirection(t *testing.T) {
	opts := DefaultOptions()

	g := drawLadder(t, opts, 0, 15)
	lo, hi := rowSpan(g)
	require.GreaterOrEqual(t, lo[0], 0)
	require.GreaterOrEqual(t, lo[29], 0)
	assert.Greater(t, hi[0], lo[29], "right end should sit higher")

	g = drawLadder(t, opts, 0, -15)
	lo, hi = rowSpan(g)
	require.GreaterOrEqual(t, lo[0], 0)
	require.GreaterOrEqual(t, lo[29], 0)
	assert.Less(t, lo[0], hi[29], "left end should sit higher")
}

func TestPitchLadderContinuity(t *testing.T) {
	opts := DefaultOptions()
	for roll := -70; roll <= 70; roll++ {
		g := drawLadder(t, opts, 0, int16(roll))
		lo, hi := rowSpan(g)
		for c := 0; c+1 < len(lo); c++ {
			if lo[c] < 0 || lo[c+1] < 0 {
				continue
			}
			switch {
			case roll > 0:
				assert.LessOrEqual(t, hi[c+1], lo[c], "roll %d col %d goes down", roll, c)
				assert.GreaterOrEqual(t, hi[c+1], lo[c]-1, "roll %d col %d jumps", roll, c)
			case roll < 0:
				assert.GreaterOrEqual(t, lo[c+1], hi[c], "roll %d col %d goes up", roll, c)
				assert.LessOrEqual(t, lo[c+1], hi[c]+1, "roll %d col %d jumps", roll, c)
			default:
				assert.Equal(t, lo[c], lo[c+1])
			}
		}
	}
}

func TestPitchLadderStallBand(t *testing.T) {
	opts := DefaultOptions()
	stall := DefaultSymbolTable().Code(SmallBlackSquare)

	for _, roll := range []int16{60, 65, 70, -60, -70} {
		g := drawLadder(t, opts, 0, roll)
		cells := 0
		for _, row := range g {
			for _, b := range row {
				if b != 0 {
					cells++
					assert.Equal(t, stall, b, "roll %d", roll)
				}
			}
		}
		assert.Positive(t, cells, "roll %d", roll)
	}
}

func TestPitchLadderVerticalMode(t *testing.T) {
	opts := DefaultOptions()
	symbols := DefaultSymbolTable()
	vertical := symbols.palette(verticalPalette[:])

	for _, roll := range []int16{71, 80, 89, -80, 100} {
		g := drawLadder(t, opts, 0, roll)
		for r, row := range g {
			found := false
			for _, b := range row {
				if b == 0 {
					continue
				}
				found = true
				assert.Contains(t, vertical, b, "roll %d row %d", roll, r)
			}
			assert.True(t, found, "roll %d row %d is empty", roll, r)
		}
	}

	// At 80° the line leans right: top of the screen to the right of the bottom.
	g := drawLadder(t, opts, 0, 80)
	top, bottom := -1, -1
	for c, b := range g[0] {
		if b != 0 {
			top = c
		}
	}
	for c, b := range g[15] {
		if b != 0 && bottom < 0 {
			bottom = c
		}
	}
	assert.Greater(t, top, bottom)
}

func TestPitchLadderVerticalLine(t *testing.T) {
	opts := DefaultOptions()
	line := DefaultSymbolTable().Code(VerticalLine)

	for _, roll := range []int16{90, -90} {
		g := drawLadder(t, opts, 30, roll)
		for r, row := range g {
			for c, b := range row {
				if c == 15 {
					assert.Equal(t, line, b, "roll %d row %d", roll, r)
				} else {
					assert.Zero(t, b, "roll %d cell %d,%d", roll, r, c)
				}
			}
		}
	}
}

func TestFoldRoll(t *testing.T) {
	tests := map[int]int{
		0:    0,
		45:   45,
		90:   90,
		-90:  90,
		100:  -80,
		-100: 80,
		180:  0,
		-179: 1,
		270:  90,
	}
	for in, want := range tests {
		assert.Equal(t, want, foldRoll(in), "roll %d", in)
	}

	// Upside down looks the same as upright.
	assert.Equal(t, drawLadder(t, DefaultOptions(), 0, 10), drawLadder(t, DefaultOptions(), 0, -170))
}

func TestPitchLadderNeverPanics(t *testing.T) {
	for _, size := range []struct{ rows, cols int }{{16, 30}, {1, 1}, {2, 3}, {18, 50}} {
		opts := DefaultOptions()
		opts.Rows, opts.Columns = size.rows, size.cols
		for roll := -179; roll <= 180; roll += 7 {
			for pitch := -90; pitch <= 90; pitch += 15 {
				assert.NotPanics(t, func() {
					drawLadder(t, opts, int8(pitch), int16(roll))
				}, "size %v roll %d pitch %d", size, roll, pitch)
			}
		}
	}
}
