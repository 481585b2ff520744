package hud

// HeadingTapeWidth is the ruler width in cells, e.g. "350 . 000 . 010".
const HeadingTapeWidth = 3 * 5

const (
	tapeHalf        = HeadingTapeWidth / 2
	decadeSpacing   = 6 // cells between two labels
	headingPointer  = '^'
	tapeBufferSlack = 2
)

// degreesToCells applies the tape scale of 6 cells per 10° (3/5 cell per
// degree), truncating toward zero so that ±d land symmetrically.
func degreesToCells(deg int) int {
	return deg * 3 / 5
}

// relativeBearing returns target-heading folded into (-180, 180].
func relativeBearing(heading, target int) int {
	b := floorMod(target-heading, 360)
	if b > 180 {
		b -= 360
	}
	return b
}

// HeadingTape draws a two row compass: the decade ruler and a pointer row
// carrying the heading caret and the steerpoint bearing marker.
type HeadingTape struct {
	align     Align // Top or Bottom
	indicator byte
	counter   uint
}

// NewHeadingTape aligns the tape at Top or Bottom; any other value is
// treated as Top.
func NewHeadingTape(symbols *SymbolTable, align Align) *HeadingTape {
	if align != Bottom {
		align = Top
	}
	return &HeadingTape{
		align:     align,
		indicator: symbols.Code(BoxDrawingLightUp),
	}
}

func (h *HeadingTape) Align() Align { return h.align }

func (h *HeadingTape) Footprint() Footprint {
	return Footprint{Rows: 2, Columns: HeadingTapeWidth}
}

func (h *HeadingTape) Draw(t *Telemetry, g Grid) int {
	if g.Rows() < 2 || g.Columns() < HeadingTapeWidth {
		return 0
	}
	ruler, pointer := g[0], g[1]
	if h.align == Bottom {
		ruler, pointer = g[len(g)-1], g[len(g)-2]
	}
	heading := int(t.Heading)
	drawRuler(heading, ruler)
	h.drawPointer(relativeBearing(heading, int(t.Steerpoint.Heading)), pointer)
	h.counter++
	return 2
}

// drawPointer places the caret at the center and the steerpoint marker at
// its bearing. When both want the same cell they take turns frame by frame.
func (h *HeadingTape) drawPointer(bearing int, row []byte) {
	center := len(row) / 2
	// A steerpoint dead astern folds to +180 and pins to the right end.
	marker := center + clamp(degreesToCells(bearing), -tapeHalf, tapeHalf)
	contended := marker == center
	if !contended || h.counter%2 == 0 {
		row[center] = headingPointer
	}
	if !contended || h.counter%2 == 1 {
		row[marker] = h.indicator
	}
}

// drawRuler lays the decade labels out in a scratch buffer two cells wider
// than the tape on each side, then copies the visible window so labels
// sliding off either end are cut cleanly. Gaps stay transparent.
func drawRuler(heading int, row []byte) {
	var buf [HeadingTapeWidth + 2*tapeBufferSlack]byte
	lower := heading - heading%10
	upper := lower + 10
	center := tapeHalf + tapeBufferSlack
	lowerAt := center - 1 - degreesToCells(heading-lower)
	upperAt := lowerAt + decadeSpacing

	putDecade(buf[lowerAt:], lower)
	putDecade(buf[upperAt:], upper)
	if lowerAt >= decadeSpacing {
		putDecade(buf[lowerAt-decadeSpacing:], lower-10)
	}
	if upperAt+decadeSpacing < tapeBufferSlack+HeadingTapeWidth {
		putDecade(buf[upperAt+decadeSpacing:], upper+10)
	}
	buf[lowerAt-2] = '.'
	buf[lowerAt+4] = '.'
	if upperAt+4 < len(buf) {
		buf[upperAt+4] = '.'
	}

	start := len(row)/2 - tapeHalf
	copy(row[start:start+HeadingTapeWidth], buf[tapeBufferSlack:tapeBufferSlack+HeadingTapeWidth])
}

// putDecade writes a heading as three digits, wrapping at 360.
func putDecade(dst []byte, heading int) {
	heading = floorMod(heading, 360)
	digits := [3]byte{
		byte('0' + heading/100),
		byte('0' + heading/10%10),
		byte('0' + heading%10),
	}
	copy(dst, digits[:])
}
