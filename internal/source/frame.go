package source

import (
	"math"

	"elrs-hud/hud"
)

// Frame is one telemetry sample as the ground station reports it: SI units,
// floating point and not yet folded into the HUD's ranges.
type Frame struct {
	// Attitude, degrees
	Pitch   float64
	Roll    float64
	Heading float64

	// Position and motion
	Altitude      float64 // m above home
	Height        float64 // m above ground, valid when HasHeight
	HasHeight     bool
	GroundSpeed   float64 // m/s
	Track         float64 // course over ground, degrees
	VerticalSpeed float64 // m/s, positive up

	// Loads
	GForce float64
	AOA    float64 // degrees

	// Link and power, percent
	Battery float64
	RSSI    float64

	FlightMode string

	// Active steerpoint
	SteerNumber    int
	SteerName      string
	SteerBearing   float64 // absolute, degrees
	SteerDistance  float64 // m
	SteerElevation float64 // degrees, negative below the horizon

	Notes  hud.Notes
	Metric bool
}

const (
	feetPerMetre        = 3.28084
	knotsPerMetreSecond = 1.943844
	kmhPerMetreSecond   = 3.6
	fpmPerMetreSecond   = 196.8504
	metresPerNM         = 1852
)

// Telemetry folds f into the ranges the HUD expects and converts it to the
// display units: feet, knots, ft/min and nautical miles, or metres, km/h,
// cm/s and kilometres when Metric is set.
func (f Frame) Telemetry() hud.Telemetry {
	t := hud.Telemetry{
		Attitude: hud.Attitude{
			Pitch: int8(clampRound(f.Pitch, -90, 90)),
			Roll:  int16(wrapSigned(f.Roll)),
		},
		Heading:    uint16(wrapUnsigned(f.Heading)),
		GForce:     hud.TenthsFromFloat(clamp(f.GForce, -99.9, 99.9)),
		AOA:        hud.TenthsFromFloat(clamp(f.AOA, -99.9, 99.9)),
		Battery:    uint8(clampRound(f.Battery, 0, 100)),
		RSSI:       uint8(clampRound(f.RSSI, 0, 100)),
		FlightMode: f.FlightMode,
		Notes:      f.Notes,
		Unit:       hud.Imperial,
	}

	altitudeScale, speedScale, varioScale, tenthsPerMetre := feetPerMetre, knotsPerMetreSecond, fpmPerMetreSecond, 10.0/metresPerNM
	if f.Metric {
		t.Unit = hud.Metric
		altitudeScale, speedScale, varioScale, tenthsPerMetre = 1, kmhPerMetreSecond, 100, 10.0/1000
	}

	t.Altitude = int16(clampRound(f.Altitude*altitudeScale, math.MinInt16+1, math.MaxInt16))
	t.Height = hud.HeightUnavailable
	if f.HasHeight {
		t.Height = int16(clampRound(f.Height*altitudeScale, math.MinInt16+1, math.MaxInt16))
	}
	t.Vario = int16(clampRound(f.VerticalSpeed*varioScale, math.MinInt16+1, math.MaxInt16))

	speed := math.Hypot(f.GroundSpeed, f.VerticalSpeed)
	t.SpeedVector = hud.SphericalCoordinate{
		Rho:   uint16(clampRound(speed*speedScale, 0, math.MaxUint16)),
		Theta: int16(wrapSigned(f.Track - f.Heading)),
		Phi:   int8(clampRound(degrees(math.Atan2(f.VerticalSpeed, math.Abs(f.GroundSpeed))), -90, 90)),
	}

	t.Steerpoint = hud.Steerpoint{
		Number:  uint8(clampRound(float64(f.SteerNumber), 0, math.MaxUint8)),
		Name:    f.SteerName,
		Heading: uint16(wrapUnsigned(f.SteerBearing)),
		Coordinate: hud.SphericalCoordinate{
			Rho:   uint16(clampRound(f.SteerDistance*tenthsPerMetre, 0, math.MaxUint16)),
			Theta: int16(wrapSigned(f.SteerBearing - f.Heading)),
			Phi:   int8(clampRound(f.SteerElevation, -90, 90)),
		},
	}
	return t
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampRound(v, lo, hi float64) float64 {
	return clamp(math.Round(v), lo, hi)
}

// wrapUnsigned folds an angle into [0, 360) whole degrees.
func wrapUnsigned(deg float64) int {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	d := int(math.Round(math.Mod(deg, 360)))
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}

// wrapSigned folds an angle into (-180, 180] whole degrees.
func wrapSigned(deg float64) int {
	d := wrapUnsigned(deg)
	if d > 180 {
		d -= 360
	}
	return d
}
