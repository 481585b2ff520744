package hud

import (
	"fmt"
	"strings"
)

// Align names a layout slot. It is an allocation strategy, not a position.
type Align int

const (
	Top Align = iota
	TopLeft
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight

	numAligns
)

var alignNames = [numAligns]string{"top", "top-left", "top-right", "left", "center", "right", "bottom-left", "bottom", "bottom-right"}

func (a Align) String() string {
	if a < 0 || a >= numAligns {
		return fmt.Sprintf("Align(%d)", int(a))
	}
	return alignNames[a]
}

// ParseAlign accepts the names printed by Align.String, case-insensitively.
func ParseAlign(s string) (Align, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for i, name := range alignNames {
		if name == s {
			return Align(i), nil
		}
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

func (a Align) isTop() bool    { return a == Top || a == TopLeft || a == TopRight }
func (a Align) isBottom() bool { return a == Bottom || a == BottomLeft || a == BottomRight }

// Drawable is implemented by every widget. Draw writes into region and
// returns the number of rows it consumed from its alignment group.
type Drawable interface {
	Align() Align
	Draw(t *Telemetry, region Grid) int
}

// Footprint is the minimum area a widget needs. Widgets that do not
// implement Sizer need one cell.
type Footprint struct {
	Rows, Columns int
}

// Sizer is implemented by widgets with a larger minimum footprint.
type Sizer interface {
	Footprint() Footprint
}

func footprintOf(d Drawable) Footprint {
	if s, ok := d.(Sizer); ok {
		return s.Footprint()
	}
	return Footprint{1, 1}
}
