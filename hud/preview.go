package hud

import "strings"

// symbolRunes approximates each glyph with a Unicode character for
// terminal and debug output. The OSD font itself is not part of this package.
var symbolRunes = [numSymbols]rune{
	Antenna:              '⏉',
	Battery:              'β',
	Degree:               '°',
	CrossHair:            '⌖',
	VelocityVectorSymbol: '⏂',
	Alpha:                '⍺',
	Square:               '☐',
	BoxDrawingLightUp:    '╵',
	LineTop:              '▔',
	LineUpper1:           '⎺',
	LineUpper2:           '⎻',
	LineCenter:           '─',
	LineLower1:           '⎼',
	LineLower2:           '⎽',
	LineBottom:           '▁',
	LineLeft:             '▏',
	LineLeft1:            '⎸',
	LineVerticalCenter:   '⏐',
	LineRight1:           '⎹',
	LineRight:            '▕',
	SmallBlackSquare:     '▪',
	VerticalLine:         '│',
	ZeroWithTrailingDot:  '₀',
	OneWithTrailingDot:   '⒈',
	TwoWithTrailingDot:   '⒉',
	ThreeWithTrailingDot: '⒊',
	FourWithTrailingDot:  '⒋',
	FiveWithTrailingDot:  '⒌',
	SixWithTrailingDot:   '⒍',
	SevenWithTrailingDot: '⒎',
	EightWithTrailingDot: '⒏',
	NineWithTrailingDot:  '⒐',
}

// Rune returns a printable approximation of one cell. Transparent cells
// read as spaces; codes missing from the table read as '?'.
func (t *SymbolTable) Rune(b byte) rune {
	if s, ok := t.Lookup(b); ok {
		return symbolRunes[s]
	}
	switch {
	case b == 0:
		return ' '
	case b >= 0x20 && b < 0x7f:
		return rune(b)
	}
	return '?'
}

// Preview renders g as UTF-8 text, one line per row.
func Preview(g Grid, symbols *SymbolTable) string {
	var sb strings.Builder
	for i, row := range g {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, b := range row {
			sb.WriteRune(symbols.Rune(b))
		}
	}
	return sb.String()
}
