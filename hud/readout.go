package hud

import "fmt"

// Readout is a single line of text whose horizontal placement follows its
// alignment: left groups start at column 0, right groups end at the last
// column, Top and Bottom are centered.
type Readout struct {
	align Align
	width int
	text  func(t *Telemetry) ([]byte, bool)
}

func newReadout(kind WidgetKind, align Align, symbols *SymbolTable) *Readout {
	r := &Readout{align: align}
	switch kind {
	case SpeedWidget:
		r.width = 5
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf(nil, "%5d", t.Speed()), true
		}
	case AltitudeWidget:
		r.width = 6
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf(nil, "%6d", t.Altitude), true
		}
	case VarioWidget:
		r.width = 6
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf(nil, "%6d", t.Vario), true
		}
	case GForceWidget:
		r.width = 5
		r.text = func(t *Telemetry) ([]byte, bool) {
			return append([]byte{'G'}, tenthsField(t.GForce, symbols)...), true
		}
	case AOAWidget:
		alpha := symbols.Code(Alpha)
		r.width = 5
		r.text = func(t *Telemetry) ([]byte, bool) {
			return append([]byte{alpha}, tenthsField(t.AOA, symbols)...), true
		}
	case BatteryWidget:
		battery := symbols.Code(Battery)
		r.width = 4
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf([]byte{battery}, "%d", t.Battery), true
		}
	case RSSIWidget:
		antenna := symbols.Code(Antenna)
		r.width = 4
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf([]byte{antenna}, "%3d", t.RSSI), true
		}
	case FlightModeWidget:
		r.width = 4
		r.text = func(t *Telemetry) ([]byte, bool) {
			return fmt.Appendf(nil, "%-4.4s", printable(t.FlightMode)), true
		}
	case HeightWidget:
		r.width = 6
		r.text = func(t *Telemetry) ([]byte, bool) {
			if t.Height == HeightUnavailable {
				return nil, false
			}
			return fmt.Appendf(nil, "%d", t.Height), true
		}
	default:
		return nil
	}
	return r
}

// tenthsField formats v right-aligned in four cells with the units digit
// carrying the decimal point, e.g. 3.1 -> "  ⒊1", -0.1 -> " -₀1".
func tenthsField(v Tenths, symbols *SymbolTable) []byte {
	n := int(v)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	b := fmt.Appendf(nil, "%4s", fmt.Sprintf("%s%02d", sign, n))
	i := len(b) - 2
	b[i] = symbols.DottedDigit(b[i])
	return b
}

func (r *Readout) Align() Align { return r.align }

func (r *Readout) Footprint() Footprint {
	return Footprint{Rows: 1, Columns: r.width}
}

func (r *Readout) Draw(t *Telemetry, g Grid) int {
	if g.Rows() == 0 {
		return 0
	}
	text, ok := r.text(t)
	if !ok {
		return 0
	}
	justify(lineFor(g, r.align), text, r.align)
	return 1
}

// lineFor returns the row on the edge the alignment grows from: the top
// for most groups, the bottom for the Bottom family.
func lineFor(g Grid, align Align) []byte {
	if align.isBottom() {
		return g[len(g)-1]
	}
	return g[0]
}

func justify(row, text []byte, align Align) {
	switch align {
	case TopLeft, Left, BottomLeft:
		writeAt(row, 0, text)
	case TopRight, Right, BottomRight:
		writeRight(row, text)
	default:
		writeAt(row, len(row)/2-len(text)/2, text)
	}
}
