package hud

import (
	"fmt"
	"math"
)

// HeightUnavailable marks Telemetry.Height as not measured this frame.
const HeightUnavailable int16 = math.MinInt16

// Attitude in whole degrees. Positive pitch is nose up, positive roll is
// right wing down.
type Attitude struct {
	Pitch int8  // [-90, 90]
	Roll  int16 // (-180, 180]
}

// SphericalCoordinate describes a direction relative to the aircraft's own
// heading plus a magnitude.
type SphericalCoordinate struct {
	Rho   uint16 // magnitude, unit depends on the vector
	Theta int16  // azimuth, (-180, 180]
	Phi   int8   // elevation, [-90, 90], negative means descending
}

// Steerpoint is the active navigation target.
type Steerpoint struct {
	Number     uint8
	Name       string // up to 4 characters, e.g. "HOME"
	Heading    uint16 // absolute bearing to the steerpoint, [0, 360)
	Coordinate SphericalCoordinate
}

// Tenths is a fixed point value with one fractional decimal digit.
type Tenths int16

// TenthsFromFloat rounds f to the nearest tenth.
func TenthsFromFloat(f float64) Tenths {
	return Tenths(math.Round(f * 10))
}

func (v Tenths) String() string {
	sign := ""
	n := int(v)
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%d", sign, n/10, n%10)
}

// Unit selects distance and speed labels.
type Unit uint8

const (
	Imperial Unit = iota // NM, knots
	Metric               // KM, km/h
)

// Distance returns the two-letter distance label.
func (u Unit) Distance() string {
	if u == Metric {
		return "KM"
	}
	return "NM"
}

// Notes are free-form text blocks; lines are separated by '\n'.
type Notes struct {
	Left   string
	Center string
	Right  string
}

// Telemetry is one frame of input. Producers normalize every angle into the
// documented range; the HUD only clamps while drawing.
type Telemetry struct {
	Altitude    int16
	Height      int16 // HeightUnavailable when unknown
	Attitude    Attitude
	Heading     uint16 // [0, 360)
	SpeedVector SphericalCoordinate
	Steerpoint  Steerpoint
	Vario       int16
	GForce      Tenths
	AOA         Tenths
	Battery     uint8 // percent
	RSSI        uint8 // percent
	FlightMode  string
	Notes       Notes
	Unit        Unit
}

// DefaultTelemetry is a level aircraft at rest pointing north, heading home.
func DefaultTelemetry() Telemetry {
	return Telemetry{
		Height:     HeightUnavailable,
		Battery:    100,
		FlightMode: "MAN",
		Steerpoint: Steerpoint{Name: "HOME"},
	}
}

// Speed is the magnitude of the velocity vector.
func (t *Telemetry) Speed() uint16 {
	return t.SpeedVector.Rho
}

// TimeToGo is the number of seconds to reach the steerpoint at the current
// speed. Steerpoint distance is in tenths of the distance unit.
func (t *Telemetry) TimeToGo() uint32 {
	rho := uint32(t.Steerpoint.Coordinate.Rho)
	speed := uint32(t.SpeedVector.Rho)
	if rho == 0 || speed == 0 {
		return 0
	}
	return rho * 3600 / 10 / speed
}

// TelemetrySource produces one snapshot per frame.
type TelemetrySource interface {
	GetTelemetry() Telemetry
}

// TelemetrySourceFunc adapts a function to TelemetrySource.
type TelemetrySourceFunc func() Telemetry

func (f TelemetrySourceFunc) GetTelemetry() Telemetry { return f() }
