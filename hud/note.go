package hud

import "strings"

// Note prints free text, one row per line, justified by its alignment.
type Note struct {
	align Align
	text  func(t *Telemetry) string
}

// NewNote reads its text from t on every frame.
func NewNote(align Align, text func(t *Telemetry) string) *Note {
	return &Note{align: align, text: text}
}

func (n *Note) Align() Align { return n.align }

// Footprint is zero: notes take whatever rows they have text for.
func (n *Note) Footprint() Footprint { return Footprint{} }

func (n *Note) Draw(t *Telemetry, g Grid) int {
	text := n.text(t)
	if text == "" {
		return 0
	}
	lines := strings.Split(text, "\n")
	if len(lines) > len(g) {
		lines = lines[:len(g)]
	}
	first := 0
	if n.align.isBottom() {
		first = len(g) - len(lines)
	}
	for i, line := range lines {
		justify(g[first+i], []byte(printable(strings.TrimSuffix(line, "\r"))), n.align)
	}
	return len(lines)
}
