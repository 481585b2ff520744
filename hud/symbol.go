package hud

import "fmt"

// Symbol is a logical glyph identifier. The concrete byte sent to the
// overlay hardware comes from a SymbolTable.
type Symbol int

const (
	Antenna Symbol = iota
	Battery
	Degree
	CrossHair
	VelocityVectorSymbol
	Alpha
	Square
	BoxDrawingLightUp

	// Horizontal line family, ordered from the top of a cell to the bottom.
	LineTop
	LineUpper1
	LineUpper2
	LineCenter
	LineLower1
	LineLower2
	LineBottom

	// Vertical line family, ordered from the left of a cell to the right.
	LineLeft
	LineLeft1
	LineVerticalCenter
	LineRight1
	LineRight

	SmallBlackSquare
	VerticalLine

	// Digits with a trailing dot, '0' through '9', must stay contiguous.
	ZeroWithTrailingDot
	OneWithTrailingDot
	TwoWithTrailingDot
	ThreeWithTrailingDot
	FourWithTrailingDot
	FiveWithTrailingDot
	SixWithTrailingDot
	SevenWithTrailingDot
	EightWithTrailingDot
	NineWithTrailingDot

	numSymbols
)

var symbolNames = [numSymbols]string{
	"antenna", "battery", "degree", "cross-hair", "velocity-vector", "alpha", "square", "box-drawing-light-up",
	"line-top", "line-upper-1", "line-upper-2", "line-center", "line-lower-1", "line-lower-2", "line-bottom",
	"line-left", "line-left-1", "line-vertical-center", "line-right-1", "line-right",
	"small-black-square", "vertical-line",
	"zero-with-trailing-dot", "one-with-trailing-dot", "two-with-trailing-dot", "three-with-trailing-dot",
	"four-with-trailing-dot", "five-with-trailing-dot", "six-with-trailing-dot", "seven-with-trailing-dot",
	"eight-with-trailing-dot", "nine-with-trailing-dot",
}

func (s Symbol) String() string {
	if s < 0 || s >= numSymbols {
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
	return symbolNames[s]
}

// ParseSymbol accepts the names printed by Symbol.String.
func ParseSymbol(name string) (Symbol, error) {
	for i, n := range symbolNames {
		if n == name {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("unknown symbol %q", name)
}

// horizontalPalette and verticalPalette are the sub-cell slope families
// used by the pitch ladder.
var (
	horizontalPalette = [...]Symbol{LineTop, LineUpper1, LineUpper2, LineCenter, LineLower1, LineLower2, LineBottom}
	verticalPalette   = [...]Symbol{LineLeft, LineLeft1, LineVerticalCenter, LineRight1, LineRight}
)

// SymbolTable maps every Symbol to the byte code understood by the
// downstream OSD font. It is built once and never mutated by the HUD.
type SymbolTable [numSymbols]byte

// DefaultSymbolTable lays the glyphs out from 128 upwards, leaving the
// ASCII range to literal characters.
func DefaultSymbolTable() *SymbolTable {
	var t SymbolTable
	for i := range t {
		t[i] = byte(128 + i)
	}
	return &t
}

// NewSymbolTable builds a table from an explicit mapping. Symbols missing
// from codes fall back to the default layout so the table stays total.
func NewSymbolTable(codes map[Symbol]byte) *SymbolTable {
	t := DefaultSymbolTable()
	for s, code := range codes {
		if s >= 0 && s < numSymbols {
			t[s] = code
		}
	}
	return t
}

// Validate reports codes the grid could not tell apart from text or from
// each other: zero, printable ASCII and any code shared by two symbols.
func (t *SymbolTable) Validate() error {
	var owner [256]Symbol
	var seen [256]bool
	for i, code := range t {
		s := Symbol(i)
		switch {
		case code == 0:
			return fmt.Errorf("symbol %s: code 0 is transparent", s)
		case code >= ' ' && code <= '~':
			return fmt.Errorf("symbol %s: code %d is printable ASCII", s, code)
		case seen[code]:
			return fmt.Errorf("symbols %s and %s share code %d", owner[code], s, code)
		}
		seen[code], owner[code] = true, s
	}
	return nil
}

// Code returns the byte for s.
func (t *SymbolTable) Code(s Symbol) byte {
	return t[s]
}

// Lookup is the reverse mapping, used by previews.
func (t *SymbolTable) Lookup(code byte) (Symbol, bool) {
	for i, c := range t {
		if c == code {
			return Symbol(i), true
		}
	}
	return 0, false
}

// DottedDigit turns an ASCII digit into its trailing-dot glyph. An
// untouched cell or a space counts as zero; anything else is returned as is.
func (t *SymbolTable) DottedDigit(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return t[ZeroWithTrailingDot+Symbol(b-'0')]
	case b == 0 || b == ' ':
		return t[ZeroWithTrailingDot]
	}
	return b
}

func (t *SymbolTable) palette(symbols []Symbol) []byte {
	out := make([]byte, len(symbols))
	for i, s := range symbols {
		out[i] = t[s]
	}
	return out
}
