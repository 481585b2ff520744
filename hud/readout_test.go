package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadouts(t *testing.T) {
	tests := []struct {
		name  string
		kind  WidgetKind
		align Align
		cols  int
		set   func(t *Telemetry)
		want  string
	}{
		{"speed", SpeedWidget, Left, 6, func(t *Telemetry) { t.SpeedVector.Rho = 100 }, "  100 "},
		{"altitude", AltitudeWidget, Right, 6, func(t *Telemetry) { t.Altitude = 3000 }, "  3000"},
		{"negative altitude", AltitudeWidget, Right, 6, func(t *Telemetry) { t.Altitude = -12 }, "   -12"},
		{"lowest altitude", AltitudeWidget, Right, 6, func(t *Telemetry) { t.Altitude = -32767 }, "-32767"},
		{"vario", VarioWidget, Right, 6, func(t *Telemetry) { t.Vario = -1000 }, " -1000"},
		{"g-force", GForceWidget, Left, 5, func(t *Telemetry) { t.GForce = TenthsFromFloat(1.1) }, "G  ⒈1"},
		{"g-force below one", GForceWidget, Left, 5, func(t *Telemetry) { t.GForce = 9 }, "G  ₀9"},
		{"g-force double digit", GForceWidget, Left, 5, func(t *Telemetry) { t.GForce = 125 }, "G 1⒉5"},
		{"aoa", AOAWidget, Left, 5, func(t *Telemetry) { t.AOA = 31 }, "⍺  ⒊1"},
		{"negative aoa", AOAWidget, Left, 5, func(t *Telemetry) { t.AOA = TenthsFromFloat(-0.1) }, "⍺ -₀1"},
		{"battery", BatteryWidget, TopRight, 4, func(t *Telemetry) { t.Battery = 100 }, "β100"},
		{"low battery", BatteryWidget, TopRight, 6, func(t *Telemetry) { t.Battery = 7 }, "    β7"},
		{"rssi", RSSIWidget, TopLeft, 4, func(t *Telemetry) { t.RSSI = 100 }, "⏉100"},
		{"weak rssi", RSSIWidget, TopLeft, 6, func(t *Telemetry) { t.RSSI = 9 }, "⏉  9  "},
		{"flight mode", FlightModeWidget, BottomLeft, 6, func(t *Telemetry) { t.FlightMode = "ACRO" }, "ACRO  "},
		{"long flight mode", FlightModeWidget, BottomLeft, 6, func(t *Telemetry) { t.FlightMode = "ANGLE" }, "ANGL  "},
		{"non-ascii flight mode", FlightModeWidget, BottomLeft, 6, func(t *Telemetry) { t.FlightMode = "ÉT\r" }, "?T?   "},
		{"height", HeightWidget, Bottom, 7, func(t *Telemetry) { t.Height = 98 }, "  98   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReadout(tt.kind, tt.align, DefaultSymbolTable())
			require.NotNil(t, r)
			tel := DefaultTelemetry()
			tt.set(&tel)
			g := NewGrid(1, tt.cols)
			assert.Equal(t, 1, r.Draw(&tel, g))
			assert.Equal(t, tt.want, Preview(g, DefaultSymbolTable()))
		})
	}
}

func TestReadoutBottomUsesLastRow(t *testing.T) {
	r := newReadout(FlightModeWidget, BottomLeft, DefaultSymbolTable())
	tel := DefaultTelemetry()
	g := NewGrid(3, 4)
	r.Draw(&tel, g)
	assert.Equal(t, "    \n    \nMAN ", Preview(g, DefaultSymbolTable()))
}

func TestHeightUnavailable(t *testing.T) {
	r := newReadout(HeightWidget, Bottom, DefaultSymbolTable())
	tel := DefaultTelemetry()
	g := NewGrid(1, 7)
	assert.Zero(t, r.Draw(&tel, g))
	assert.Equal(t, NewGrid(1, 7), g)
}

func TestReadoutFootprint(t *testing.T) {
	symbols := DefaultSymbolTable()
	assert.Equal(t, Footprint{1, 5}, newReadout(SpeedWidget, Left, symbols).Footprint())
	assert.Equal(t, Footprint{1, 6}, newReadout(VarioWidget, Right, symbols).Footprint())
	assert.Equal(t, Footprint{1, 6}, newReadout(AltitudeWidget, Right, symbols).Footprint())
	assert.Nil(t, newReadout(PitchLadderWidget, Left, symbols))
}

func TestTenths(t *testing.T) {
	assert.Equal(t, Tenths(11), TenthsFromFloat(1.1))
	assert.Equal(t, Tenths(-1), TenthsFromFloat(-0.1))
	assert.Equal(t, Tenths(125), TenthsFromFloat(12.46))
	assert.Equal(t, "1.1", Tenths(11).String())
	assert.Equal(t, "-0.1", Tenths(-1).String())
	assert.Equal(t, "0.0", Tenths(0).String())
}
