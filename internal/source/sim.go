package source

import (
	"math"
	"time"

	"elrs-hud/hud"
)

// Simulator flies a right-hand orbit around home with slow altitude and
// pitch waves and a full aileron roll once a minute. Its output depends
// only on the elapsed time, so it can be replayed exactly.
type Simulator struct {
	start time.Time
	now   func() time.Time
}

const (
	simOrbitRadius = 500.0 // m
	simAirspeed    = 30.0  // m/s
	simAltitude    = 120.0 // m
	simGravity     = 9.81
	simRollEvery   = 60 * time.Second
	simRollFor     = 4 * time.Second
	simDrainPerSec = 100.0 / 1800 // a full pack lasts half an hour
)

// NewSimulator starts the clock now.
func NewSimulator() *Simulator {
	return &Simulator{start: time.Now(), now: time.Now}
}

// Frame returns the sample for the current time.
func (s *Simulator) Frame() Frame {
	return FrameAt(s.now().Sub(s.start))
}

// GetTelemetry makes the simulator a hud.TelemetrySource.
func (s *Simulator) GetTelemetry() hud.Telemetry {
	f := s.Frame()
	return f.Telemetry()
}

// FrameAt returns the simulated sample elapsed into the flight.
func FrameAt(elapsed time.Duration) Frame {
	t := elapsed.Seconds()
	omega := simAirspeed / simOrbitRadius // rad/s

	heading := 90 + degrees(omega*t)
	bank := degrees(math.Atan(simAirspeed * simAirspeed / (simGravity * simOrbitRadius)))
	roll := bank
	if phase := elapsed % simRollEvery; phase >= simRollEvery-simRollFor {
		progress := float64(phase-(simRollEvery-simRollFor)) / float64(simRollFor)
		roll = bank + 360*progress
	}

	climb := 20 * math.Sin(t/10)
	verticalSpeed := 2 * math.Cos(t/10) // d/dt of climb
	pitch := 5*math.Sin(t/7) + degrees(math.Atan2(verticalSpeed, simAirspeed))
	altitude := simAltitude + climb
	crab := 3 * math.Sin(t/13)

	battery := math.Max(0, 100-simDrainPerSec*t)
	notes := hud.Notes{}
	if battery < 20 {
		notes.Right = "LOW\nBATT"
	}

	return Frame{
		Pitch:          pitch,
		Roll:           roll,
		Heading:        heading,
		Altitude:       altitude,
		Height:         altitude - 15,
		HasHeight:      true,
		GroundSpeed:    simAirspeed,
		Track:          heading + crab,
		VerticalSpeed:  verticalSpeed,
		GForce:         1 / math.Cos(bank*math.Pi/180),
		AOA:            4 + math.Sin(t/7),
		Battery:        battery,
		RSSI:           80 + 15*math.Sin(t/17),
		FlightMode:     "CRUZ",
		SteerNumber:    0,
		SteerName:      "HOME",
		SteerBearing:   heading + 90,
		SteerDistance:  simOrbitRadius,
		SteerElevation: -degrees(math.Atan2(altitude, simOrbitRadius)),
		Notes:          notes,
	}
}
