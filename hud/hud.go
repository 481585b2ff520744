package hud

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every construction failure.
var ErrInvalidOptions = errors.New("invalid hud options")

// Options is the construction-time configuration. None of it changes while
// the HUD is alive.
type Options struct {
	Rows    int
	Columns int

	// FOV is the diagonal field of view of the camera in degrees.
	FOV    int
	Aspect AspectRatio

	// CharAspect is the pixel width:height of one character cell, used to
	// correct line slopes. MAX7456 cells are 12x18.
	CharAspect AspectRatio

	// Below RollStallDegrees the ladder uses the sloped palette, up to
	// RollVerticalDegrees the flat stall glyph, above it the vertical mode.
	RollStallDegrees    int
	RollVerticalDegrees int

	// Vectors whose magnitude is below StabilizeBelow are pulled toward
	// the center of the screen.
	StabilizeBelow uint16

	// Widgets in drawing order. Empty means DefaultLayout.
	Widgets []WidgetSpec
}

// DefaultOptions is a 30x16 PAL analog OSD behind a 150° 4:3 camera.
func DefaultOptions() Options {
	return Options{
		Rows:                16,
		Columns:             30,
		FOV:                 150,
		Aspect:              Aspect4x3,
		CharAspect:          AspectRatio{12, 18},
		RollStallDegrees:    60,
		RollVerticalDegrees: 70,
		StabilizeBelow:      5,
	}
}

// WidgetKind enumerates the widgets the HUD knows how to build.
type WidgetKind int

const (
	PitchLadderWidget WidgetKind = iota
	VelocityVectorWidget
	SteerpointVectorWidget
	HeadingTapeWidget
	SpeedWidget
	AltitudeWidget
	VarioWidget
	GForceWidget
	AOAWidget
	BatteryWidget
	RSSIWidget
	FlightModeWidget
	HeightWidget
	SteerpointWidget
	NoteLeftWidget
	NoteCenterWidget
	NoteRightWidget

	numWidgetKinds
)

var widgetNames = [numWidgetKinds]string{
	"pitch-ladder", "velocity-vector", "steerpoint-vector", "heading-tape",
	"speed", "altitude", "vario", "g-force", "aoa", "battery", "rssi",
	"flight-mode", "height", "steerpoint", "note-left", "note-center", "note-right",
}

func (k WidgetKind) String() string {
	if k < 0 || k >= numWidgetKinds {
		return fmt.Sprintf("WidgetKind(%d)", int(k))
	}
	return widgetNames[k]
}

// ParseWidgetKind accepts the names printed by WidgetKind.String.
func ParseWidgetKind(s string) (WidgetKind, error) {
	for i, name := range widgetNames {
		if name == s {
			return WidgetKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown widget %q", s)
}

// WidgetSpec binds a widget to its alignment group.
type WidgetSpec struct {
	Kind  WidgetKind
	Align Align
}

// DefaultLayout mirrors a typical INAV OSD. Center widgets come last so
// the vectors flicker against the horizon rather than hiding under it.
func DefaultLayout() []WidgetSpec {
	return []WidgetSpec{
		{HeadingTapeWidget, Top},
		{NoteCenterWidget, Top},
		{RSSIWidget, TopLeft},
		{NoteLeftWidget, TopLeft},
		{BatteryWidget, TopRight},
		{NoteRightWidget, TopRight},
		{SpeedWidget, Left},
		{GForceWidget, Left},
		{AOAWidget, Left},
		{AltitudeWidget, Right},
		{VarioWidget, Right},
		{FlightModeWidget, BottomLeft},
		{HeightWidget, Bottom},
		{SteerpointWidget, BottomRight},
		{PitchLadderWidget, Center},
		{VelocityVectorWidget, Center},
		{SteerpointVectorWidget, Center},
	}
}

// HUD owns every widget and composes them into a grid once per frame.
// It is not safe for concurrent use.
type HUD struct {
	rows, columns int
	fov           FieldOfView
	symbols       *SymbolTable
	widgets       []Drawable
}

// New validates opts and builds the widgets.
func New(opts Options, symbols *SymbolTable) (*HUD, error) {
	if symbols == nil {
		symbols = DefaultSymbolTable()
	}
	if err := symbols.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if opts.Rows <= 0 || opts.Columns <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidOptions, opts.Columns, opts.Rows)
	}
	if opts.CharAspect.Width <= 0 || opts.CharAspect.Height <= 0 {
		return nil, fmt.Errorf("%w: character aspect %s", ErrInvalidOptions, opts.CharAspect)
	}
	if opts.RollStallDegrees <= 0 || opts.RollStallDegrees > opts.RollVerticalDegrees || opts.RollVerticalDegrees >= 90 {
		return nil, fmt.Errorf("%w: roll thresholds %d/%d must satisfy 0 < stall <= vertical < 90",
			ErrInvalidOptions, opts.RollStallDegrees, opts.RollVerticalDegrees)
	}
	fov, err := NewFieldOfView(opts.FOV, opts.Aspect)
	if err != nil {
		return nil, err
	}

	specs := opts.Widgets
	if len(specs) == 0 {
		specs = DefaultLayout()
	}
	h := &HUD{
		rows:    opts.Rows,
		columns: opts.Columns,
		fov:     fov,
		symbols: symbols,
	}
	var used [numAligns]int
	for _, spec := range specs {
		w, err := newWidget(spec, opts, fov, symbols)
		if err != nil {
			return nil, err
		}
		fp := footprintOf(w)
		if fp.Columns > opts.Columns {
			return nil, fmt.Errorf("%w: %s needs %d columns, grid has %d", ErrInvalidOptions, spec.Kind, fp.Columns, opts.Columns)
		}
		if spec.Align == Center {
			if fp.Rows > opts.Rows {
				return nil, fmt.Errorf("%w: %s needs %d rows, grid has %d", ErrInvalidOptions, spec.Kind, fp.Rows, opts.Rows)
			}
		} else {
			used[spec.Align] += fp.Rows
			if capacity := groupCapacity(spec.Align, opts.Rows); used[spec.Align] > capacity {
				return nil, fmt.Errorf("%w: %s group needs %d rows, only %d available",
					ErrInvalidOptions, spec.Align, used[spec.Align], capacity)
			}
		}
		h.widgets = append(h.widgets, w)
	}

	Logger().Debug("hud configured",
		"rows", opts.Rows, "columns", opts.Columns,
		"fov_width", fov.Width, "fov_height", fov.Height,
		"widgets", len(h.widgets))
	return h, nil
}

func groupCapacity(a Align, rows int) int {
	if a == Left || a == Right {
		return rows - rows/2
	}
	return rows
}

func newWidget(spec WidgetSpec, opts Options, fov FieldOfView, symbols *SymbolTable) (Drawable, error) {
	if !allowedAlign(spec.Kind, spec.Align) {
		return nil, fmt.Errorf("%w: %s cannot be aligned %s", ErrInvalidOptions, spec.Kind, spec.Align)
	}
	switch spec.Kind {
	case PitchLadderWidget:
		return NewPitchLadder(symbols, fov, opts), nil
	case VelocityVectorWidget:
		return NewVelocityVector(symbols, fov, opts.StabilizeBelow), nil
	case SteerpointVectorWidget:
		return NewSteerpointVector(symbols, fov, opts.StabilizeBelow), nil
	case HeadingTapeWidget:
		return NewHeadingTape(symbols, spec.Align), nil
	case SteerpointWidget:
		return NewSteerpointInfo(symbols, spec.Align), nil
	case NoteLeftWidget:
		return NewNote(spec.Align, func(t *Telemetry) string { return t.Notes.Left }), nil
	case NoteCenterWidget:
		return NewNote(spec.Align, func(t *Telemetry) string { return t.Notes.Center }), nil
	case NoteRightWidget:
		return NewNote(spec.Align, func(t *Telemetry) string { return t.Notes.Right }), nil
	}
	if r := newReadout(spec.Kind, spec.Align, symbols); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("%w: unknown widget %s", ErrInvalidOptions, spec.Kind)
}

func allowedAlign(k WidgetKind, a Align) bool {
	switch k {
	case PitchLadderWidget, VelocityVectorWidget, SteerpointVectorWidget:
		return a == Center
	case HeadingTapeWidget:
		return a == Top || a == Bottom
	}
	return a >= 0 && a < numAligns && a != Center
}

// Rows returns the configured grid height.
func (h *HUD) Rows() int { return h.rows }

// Columns returns the configured grid width.
func (h *HUD) Columns() int { return h.columns }

// FieldOfView returns the derived angular spans.
func (h *HUD) FieldOfView() FieldOfView { return h.fov }

// Symbols returns the table the widgets were built with.
func (h *HUD) Symbols() *SymbolTable { return h.symbols }

// NewGrid allocates a grid with the configured dimensions.
func (h *HUD) NewGrid() Grid {
	return NewGrid(h.rows, h.columns)
}

// Render draws one frame of t into g and returns it. g must have been
// sized for this HUD; anything else is a programming error and panics.
func (h *HUD) Render(t *Telemetry, g Grid) Grid {
	if g.Rows() != h.rows || g.Columns() != h.columns {
		panic(fmt.Sprintf("hud: grid is %dx%d, want %dx%d", g.Columns(), g.Rows(), h.columns, h.rows))
	}
	g.Fade()

	var cursors [numAligns]int
	for _, w := range h.widgets {
		align := w.Align()
		region := g.region(align, cursors[align])
		if len(region) == 0 {
			continue
		}
		cursors[align] += w.Draw(t, region)
	}
	return g
}

// RenderFrom fetches exactly one snapshot from src and renders it.
func (h *HUD) RenderFrom(src TelemetrySource, g Grid) Grid {
	t := src.GetTelemetry()
	return h.Render(&t, g)
}
