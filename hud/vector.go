package hud

// VectorProjector maps a spherical vector onto a grid cell. Every "vector on
// the HUD" widget shares it; they differ only in the glyph and the vector
// they read.
type VectorProjector struct {
	FOV FieldOfView
	// Below this magnitude both angles shrink by (rho/StabilizeBelow)²,
	// so a vector at rest sits in the middle of the screen instead of
	// wandering with sensor noise.
	StabilizeBelow uint16
}

// recenter folds an azimuth into (-180, 180], accepting [0, 360) input too.
func recenter(theta int) int {
	theta = floorMod(theta, 360)
	if theta > 180 {
		theta -= 360
	}
	return theta
}

func (p VectorProjector) stabilize(rho uint16, deg int) int {
	if p.StabilizeBelow == 0 || rho >= p.StabilizeBelow {
		return deg
	}
	r, s := int(rho), int(p.StabilizeBelow)
	return deg * r * r / (s * s)
}

// Project returns the clamped cell for v on a rows x cols grid.
func (p VectorProjector) Project(v SphericalCoordinate, rows, cols int) (row, col int) {
	phi := p.stabilize(v.Rho, int(v.Phi))
	theta := p.stabilize(v.Rho, recenter(int(v.Theta)))
	row = clamp(-phi*rows/p.FOV.Height+rows/2, 0, rows-1)
	col = clamp(theta*cols/p.FOV.Width+cols/2, 0, cols-1)
	return row, col
}

// VectorIndicator plots one glyph for a spherical vector.
type VectorIndicator struct {
	projector VectorProjector
	glyph     byte
	vector    func(t *Telemetry) SphericalCoordinate
	counter   uint
}

// NewVelocityVector tracks the direction of travel.
func NewVelocityVector(symbols *SymbolTable, fov FieldOfView, stabilizeBelow uint16) *VectorIndicator {
	return &VectorIndicator{
		projector: VectorProjector{FOV: fov, StabilizeBelow: stabilizeBelow},
		glyph:     symbols.Code(VelocityVectorSymbol),
		vector:    func(t *Telemetry) SphericalCoordinate { return t.SpeedVector },
	}
}

// NewSteerpointVector marks where the active steerpoint is.
func NewSteerpointVector(symbols *SymbolTable, fov FieldOfView, stabilizeBelow uint16) *VectorIndicator {
	return &VectorIndicator{
		projector: VectorProjector{FOV: fov, StabilizeBelow: stabilizeBelow},
		glyph:     symbols.Code(Square),
		vector:    func(t *Telemetry) SphericalCoordinate { return t.Steerpoint.Coordinate },
	}
}

func (v *VectorIndicator) Align() Align { return Center }

// Draw writes the glyph unless the cell is already taken by another widget
// this frame, in which case the two alternate frame by frame.
func (v *VectorIndicator) Draw(t *Telemetry, g Grid) int {
	if g.Rows() == 0 || g.Columns() == 0 {
		return 0
	}
	row, col := v.projector.Project(v.vector(t), g.Rows(), g.Columns())
	if isBackground(g[row][col]) || v.counter%2 == 1 {
		g[row][col] = v.glyph
	}
	v.counter++
	return 0
}
