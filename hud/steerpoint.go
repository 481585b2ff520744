package hud

import "fmt"

// SteerpointInfo is the three line navigation block:
//
//	0/HOME
//	  ₀6NM
//	00:03:36
//
// number and name, distance, and time to go at the current speed.
type SteerpointInfo struct {
	align   Align
	symbols *SymbolTable
}

// NewSteerpointInfo builds the block; it is usually aligned BottomRight.
func NewSteerpointInfo(symbols *SymbolTable, align Align) *SteerpointInfo {
	return &SteerpointInfo{align: align, symbols: symbols}
}

func (s *SteerpointInfo) Align() Align { return s.align }

func (s *SteerpointInfo) Footprint() Footprint {
	return Footprint{Rows: 3, Columns: 8}
}

func (s *SteerpointInfo) Draw(t *Telemetry, g Grid) int {
	if g.Rows() < 3 {
		return 0
	}
	sp := &t.Steerpoint
	lines := [3][]byte{
		fmt.Appendf(nil, "%d/%-4.4s", sp.Number, printable(sp.Name)),
		s.distance(sp.Coordinate.Rho, t.Unit),
		timeToGo(t.TimeToGo()),
	}
	// Bottom aligned blocks grow upward, so the last line sits lowest.
	for i, text := range lines {
		row := g[i]
		if s.align.isBottom() {
			row = g[len(g)-3+i]
		}
		justify(row, text, s.align)
	}
	return 3
}

// distance is in tenths of the unit. Under ten units one decimal is shown
// through the dotted digit, e.g. 99 -> "⒐9NM"; otherwise whole units.
func (s *SteerpointInfo) distance(rho uint16, unit Unit) []byte {
	if rho >= 100 {
		return fmt.Appendf(nil, "%d%s", rho/10, unit.Distance())
	}
	b := fmt.Appendf(nil, "%02d%s", rho, unit.Distance())
	b[0] = s.symbols.DottedDigit(b[0])
	return b
}

func timeToGo(seconds uint32) []byte {
	hours := seconds / 3600
	if hours > 99 {
		hours = 99
	}
	return fmt.Appendf(nil, "%02d:%02d:%02d", hours, seconds/60%60, seconds%60)
}
