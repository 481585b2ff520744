package hud

// PitchLadder draws the horizon line: tilted by roll, shifted by pitch.
//
// Each cell is split into sub-rows (or sub-columns in vertical mode) and the
// line is walked at that finer resolution; the glyph written into a cell is
// the one whose stroke sits at the sub-row the walk passed through.
type PitchLadder struct {
	horizontal   []byte
	vertical     []byte
	stall        byte
	verticalLine byte

	fovHeight   int
	charWidth   int
	charHeight  int
	stallDeg    int
	verticalDeg int
}

// NewPitchLadder builds the ladder from the line glyph families in symbols.
func NewPitchLadder(symbols *SymbolTable, fov FieldOfView, opts Options) *PitchLadder {
	return &PitchLadder{
		horizontal:   symbols.palette(horizontalPalette[:]),
		vertical:     symbols.palette(verticalPalette[:]),
		stall:        symbols.Code(SmallBlackSquare),
		verticalLine: symbols.Code(VerticalLine),
		fovHeight:    fov.Height,
		charWidth:    opts.CharAspect.Width,
		charHeight:   opts.CharAspect.Height,
		stallDeg:     opts.RollStallDegrees,
		verticalDeg:  opts.RollVerticalDegrees,
	}
}

func (p *PitchLadder) Align() Align { return Center }

// foldRoll maps any roll onto (-90, 90]. A line rolled by θ looks the same
// as one rolled by θ-180.
func foldRoll(roll int) int {
	r := floorMod(roll+180, 360) - 180
	switch {
	case r > 90:
		r -= 180
	case r <= -90:
		r += 180
	}
	return r
}

func (p *PitchLadder) Draw(t *Telemetry, g Grid) int {
	rows, cols := g.Rows(), g.Columns()
	if rows == 0 || cols == 0 {
		return 0
	}
	roll := foldRoll(int(t.Attitude.Roll))
	centerRow := rows/2 + int(t.Attitude.Pitch)*rows/p.fovHeight

	switch {
	case roll == 90:
		col := cols / 2
		for _, row := range g {
			row[col] = p.verticalLine
		}
	case abs(roll) > p.verticalDeg:
		p.drawVertical(g, roll, centerRow)
	case abs(roll) >= p.stallDeg:
		p.drawHorizontal(g, roll, centerRow, []byte{p.stall})
	default:
		p.drawHorizontal(g, roll, centerRow, p.horizontal)
	}
	return 0
}

// drawHorizontal walks columns 0..cols in sub-row units. In cell units the
// slope is tan(roll) * charWidth/charHeight rows per column.
func (p *PitchLadder) drawHorizontal(g Grid, roll, centerRow int, palette []byte) {
	cols := g.Columns()
	n := len(palette)
	rise := int(tan(roll) * int64(cols/2*n*p.charWidth) / (int64(p.charHeight) << tanShift))
	cy := centerRow*n + n/2

	bresenham(0, cy+rise, cols, cy-rise, func(x, y int) {
		g.put(floorDiv(y, n), x, palette[floorMod(y, n)])
	})
}

// drawVertical is drawHorizontal transposed: rows 0..rows in sub-column
// units, solving for the column.
func (p *PitchLadder) drawVertical(g Grid, roll, centerRow int) {
	rows, cols := g.Rows(), g.Columns()
	m := len(p.vertical)
	shift := func(dy int) int {
		return int(int64(dy*m*p.charHeight) * cot(roll) / (int64(p.charWidth) << tanShift))
	}
	cx := cols/2*m + m/2

	bresenham(cx+shift(centerRow), 0, cx+shift(centerRow-rows), rows, func(x, y int) {
		g.put(y, floorDiv(x, m), p.vertical[floorMod(x, m)])
	})
}

// bresenham visits every integer point on the segment (x0,y0)-(x1,y1).
func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		plot(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
