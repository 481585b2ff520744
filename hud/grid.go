package hud

import "strings"

// Grid is the character screen: a slice of equally long rows.
//
// Cell values:
//   - 0: untouched, the video background shows through
//   - ' ': explicitly blank, opaque
//   - printable ASCII: the literal character
//   - >= 128: a glyph code from the SymbolTable
type Grid [][]byte

// NewGrid allocates a transparent grid.
func NewGrid(rows, columns int) Grid {
	cells := make([]byte, rows*columns)
	g := make(Grid, rows)
	for i := range g {
		g[i] = cells[i*columns : (i+1)*columns : (i+1)*columns]
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Columns returns the row width, or 0 for an empty grid.
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Fade half-clears the grid before a new frame: explicit blanks become
// transparent and everything else written last frame becomes blank. Cells
// nobody redraws therefore end up transparent one frame later instead of
// showing stale content.
func (g Grid) Fade() {
	for _, row := range g {
		for i, b := range row {
			switch b {
			case 0:
			case ' ':
				row[i] = 0
			default:
				row[i] = ' '
			}
		}
	}
}

// Clear makes every cell transparent.
func (g Grid) Clear() {
	for _, row := range g {
		clear(row)
	}
}

// region returns the rows an alignment group may use given its cursor.
func (g Grid) region(align Align, cursor int) Grid {
	rows := len(g)
	var start, end int
	switch {
	case align == Center:
		return g
	case align.isTop():
		start, end = cursor, rows
	case align.isBottom():
		start, end = 0, rows-cursor
	default: // Left, Right
		start, end = rows/2+cursor, rows
	}
	if start < 0 || start >= end || end > rows {
		return nil
	}
	return g[start:end:end]
}

// put writes b at (row, col) when the cell exists.
func (g Grid) put(row, col int, b byte) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return
	}
	g[row][col] = b
}

// writeRight copies s so that it ends at the last column of row.
func writeRight(row, s []byte) {
	offset := len(row) - len(s)
	if offset < 0 {
		s = s[-offset:]
		offset = 0
	}
	copy(row[offset:], s)
}

// writeAt copies s starting at col, truncating at the row end.
func writeAt(row []byte, col int, s []byte) {
	if col < 0 {
		if -col >= len(s) {
			return
		}
		s = s[-col:]
		col = 0
	}
	if col >= len(row) {
		return
	}
	copy(row[col:], s)
}

func isBackground(b byte) bool {
	return b == 0 || b == ' '
}

// printable replaces every rune outside printable ASCII with '?', so free
// text can never land on a glyph code or a transparent cell.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r > '~' {
			return '?'
		}
		return r
	}, s)
}
