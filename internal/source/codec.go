package source

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Wire field names of a telemetry frame.
const (
	fieldPitch          = "pitch"
	fieldRoll           = "roll"
	fieldHeading        = "heading"
	fieldAltitude       = "altitude"
	fieldHeight         = "height"
	fieldGroundSpeed    = "ground_speed"
	fieldTrack          = "track"
	fieldVerticalSpeed  = "vertical_speed"
	fieldGForce         = "g_force"
	fieldAOA            = "aoa"
	fieldBattery        = "battery"
	fieldRSSI           = "rssi"
	fieldFlightMode     = "flight_mode"
	fieldSteerNumber    = "steer_number"
	fieldSteerName      = "steer_name"
	fieldSteerBearing   = "steer_bearing"
	fieldSteerDistance  = "steer_distance"
	fieldSteerElevation = "steer_elevation"
	fieldNoteLeft       = "note_left"
	fieldNoteCenter     = "note_center"
	fieldNoteRight      = "note_right"
	fieldMetric         = "metric"
)

// Struct encodes f as a protobuf Struct. Height is left out when unknown.
func (f *Frame) Struct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldPitch:          structpb.NewNumberValue(f.Pitch),
		fieldRoll:           structpb.NewNumberValue(f.Roll),
		fieldHeading:        structpb.NewNumberValue(f.Heading),
		fieldAltitude:       structpb.NewNumberValue(f.Altitude),
		fieldGroundSpeed:    structpb.NewNumberValue(f.GroundSpeed),
		fieldTrack:          structpb.NewNumberValue(f.Track),
		fieldVerticalSpeed:  structpb.NewNumberValue(f.VerticalSpeed),
		fieldGForce:         structpb.NewNumberValue(f.GForce),
		fieldAOA:            structpb.NewNumberValue(f.AOA),
		fieldBattery:        structpb.NewNumberValue(f.Battery),
		fieldRSSI:           structpb.NewNumberValue(f.RSSI),
		fieldFlightMode:     structpb.NewStringValue(f.FlightMode),
		fieldSteerNumber:    structpb.NewNumberValue(float64(f.SteerNumber)),
		fieldSteerName:      structpb.NewStringValue(f.SteerName),
		fieldSteerBearing:   structpb.NewNumberValue(f.SteerBearing),
		fieldSteerDistance:  structpb.NewNumberValue(f.SteerDistance),
		fieldSteerElevation: structpb.NewNumberValue(f.SteerElevation),
		fieldNoteLeft:       structpb.NewStringValue(f.Notes.Left),
		fieldNoteCenter:     structpb.NewStringValue(f.Notes.Center),
		fieldNoteRight:      structpb.NewStringValue(f.Notes.Right),
		fieldMetric:         structpb.NewBoolValue(f.Metric),
	}
	if f.HasHeight {
		fields[fieldHeight] = structpb.NewNumberValue(f.Height)
	}
	return &structpb.Struct{Fields: fields}
}

// FrameFromStruct decodes a frame. Missing or mistyped fields read as zero,
// so older senders that lack a field still produce a usable frame.
func FrameFromStruct(s *structpb.Struct) Frame {
	fields := s.GetFields()
	num := func(key string) float64 { return fields[key].GetNumberValue() }
	str := func(key string) string { return fields[key].GetStringValue() }

	f := Frame{
		Pitch:          num(fieldPitch),
		Roll:           num(fieldRoll),
		Heading:        num(fieldHeading),
		Altitude:       num(fieldAltitude),
		GroundSpeed:    num(fieldGroundSpeed),
		Track:          num(fieldTrack),
		VerticalSpeed:  num(fieldVerticalSpeed),
		GForce:         num(fieldGForce),
		AOA:            num(fieldAOA),
		Battery:        num(fieldBattery),
		RSSI:           num(fieldRSSI),
		FlightMode:     str(fieldFlightMode),
		SteerNumber:    int(num(fieldSteerNumber)),
		SteerName:      str(fieldSteerName),
		SteerBearing:   num(fieldSteerBearing),
		SteerDistance:  num(fieldSteerDistance),
		SteerElevation: num(fieldSteerElevation),
		Metric:         fields[fieldMetric].GetBoolValue(),
	}
	f.Notes.Left = str(fieldNoteLeft)
	f.Notes.Center = str(fieldNoteCenter)
	f.Notes.Right = str(fieldNoteRight)
	if v, ok := fields[fieldHeight]; ok {
		if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); isNumber {
			f.Height = v.GetNumberValue()
			f.HasHeight = true
		}
	}
	return f
}
