package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteerpointInfo(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		set   func(t *Telemetry)
		want  string
	}{
		{
			name:  "home at rest",
			align: BottomRight,
			set:   func(*Telemetry) {},
			want:  "    0/HOME\n      ₀0NM\n  00:00:00",
		},
		{
			name:  "close in",
			align: BottomRight,
			set: func(t *Telemetry) {
				t.Steerpoint.Coordinate.Rho = 99
				t.SpeedVector.Rho = 61
			},
			want: "    0/HOME\n      ⒐9NM\n  00:09:44",
		},
		{
			name:  "far away metric",
			align: TopLeft,
			set: func(t *Telemetry) {
				t.Unit = Metric
				t.Steerpoint = Steerpoint{Number: 12, Name: "WAYPT", Coordinate: SphericalCoordinate{Rho: 1234}}
				t.SpeedVector.Rho = 240
			},
			want: "12/WAYP   \n123KM     \n00:30:51  ",
		},
		{
			name:  "name is kept to printable ascii",
			align: TopLeft,
			set:   func(t *Telemetry) { t.Steerpoint.Name = "ÅS\t" },
			want:  "0/?S?     \n₀0NM      \n00:00:00  ",
		},
		{
			name:  "hours are capped",
			align: Right,
			set: func(t *Telemetry) {
				t.Steerpoint.Coordinate.Rho = 65535
				t.SpeedVector.Rho = 1
			},
			want: "    0/HOME\n    6553NM\n  99:30:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewSteerpointInfo(DefaultSymbolTable(), tt.align)
			tel := DefaultTelemetry()
			tt.set(&tel)
			g := NewGrid(3, 10)
			assert.Equal(t, 3, w.Draw(&tel, g))
			assert.Equal(t, tt.want, Preview(g, DefaultSymbolTable()))
		})
	}
}

func TestSteerpointInfoBottomGrowsUp(t *testing.T) {
	w := NewSteerpointInfo(DefaultSymbolTable(), BottomLeft)
	tel := DefaultTelemetry()
	g := NewGrid(4, 8)
	w.Draw(&tel, g)
	assert.Equal(t, "        \n0/HOME  \n₀0NM    \n00:00:00", Preview(g, DefaultSymbolTable()))
}

func TestSteerpointInfoNeedsThreeRows(t *testing.T) {
	w := NewSteerpointInfo(DefaultSymbolTable(), BottomRight)
	tel := DefaultTelemetry()
	g := NewGrid(2, 10)
	assert.Zero(t, w.Draw(&tel, g))
	assert.Equal(t, NewGrid(2, 10), g)
}

func TestTimeToGo(t *testing.T) {
	tel := DefaultTelemetry()
	assert.Zero(t, tel.TimeToGo())

	tel.Steerpoint.Coordinate.Rho = 99
	assert.Zero(t, tel.TimeToGo(), "no speed")

	tel.SpeedVector.Rho = 61
	assert.Equal(t, uint32(584), tel.TimeToGo())
}
