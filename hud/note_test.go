package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNote(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		text  string
		rows  int
		used  int
		want  string
	}{
		{"empty", TopLeft, "", 3, 0, "     \n     \n     "},
		{"top left", TopLeft, "a\nbc", 3, 2, "a    \nbc   \n     "},
		{"bottom right", BottomRight, "a\nbc", 3, 2, "     \n    a\n   bc"},
		{"centered", Top, "HI", 1, 1, " HI  "},
		{"truncated to region", TopRight, "one\ntwo\nsix", 2, 2, "  one\n  two"},
		{"wide line is cut", Left, "ABCDEFG", 1, 1, "ABCDE"},
		{"crlf and non-ascii", TopLeft, "CAFÉ\r\n\x80", 2, 2, "CAF? \n?    "},
		{"control characters", TopRight, "\tA\x1b", 1, 1, "  ?A?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNote(tt.align, func(t *Telemetry) string { return t.Notes.Center })
			tel := DefaultTelemetry()
			tel.Notes.Center = tt.text
			g := NewGrid(tt.rows, 5)
			assert.Equal(t, tt.used, n.Draw(&tel, g))
			assert.Equal(t, tt.want, Preview(g, DefaultSymbolTable()))
		})
	}
}
