package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorProjector(t *testing.T) {
	p := VectorProjector{FOV: FieldOfView{Width: 24, Height: 18}, StabilizeBelow: 5}

	tests := []struct {
		name     string
		v        SphericalCoordinate
		row, col int
	}{
		{"at rest sits in the middle", SphericalCoordinate{Rho: 0, Theta: 10, Phi: -5}, 8, 15},
		{"threshold is fully deflected", SphericalCoordinate{Rho: 5, Theta: 10, Phi: -5}, 12, 27},
		{"fast", SphericalCoordinate{Rho: 100, Theta: 10, Phi: -5}, 12, 27},
		{"slow is pulled in", SphericalCoordinate{Rho: 3, Theta: 20, Phi: 0}, 8, 23},
		{"climbing", SphericalCoordinate{Rho: 50, Theta: 0, Phi: 9}, 0, 15},
		{"clamped up right", SphericalCoordinate{Rho: 50, Theta: 90, Phi: 90}, 0, 29},
		{"clamped down left", SphericalCoordinate{Rho: 50, Theta: -90, Phi: -90}, 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := p.Project(tt.v, 16, 30)
			assert.Equal(t, tt.row, row, "row")
			assert.Equal(t, tt.col, col, "col")
		})
	}
}

func TestVectorProjectorAzimuthWraps(t *testing.T) {
	p := VectorProjector{FOV: FieldOfView{Width: 24, Height: 18}, StabilizeBelow: 5}
	for _, pair := range [][2]int16{{350, -10}, {200, -160}, {10, -350}, {180, -180}} {
		r1, c1 := p.Project(SphericalCoordinate{Rho: 50, Theta: pair[0]}, 16, 30)
		r2, c2 := p.Project(SphericalCoordinate{Rho: 50, Theta: pair[1]}, 16, 30)
		assert.Equal(t, [2]int{r1, c1}, [2]int{r2, c2}, "theta %d vs %d", pair[0], pair[1])
	}
	_, col := p.Project(SphericalCoordinate{Rho: 50, Theta: 350}, 16, 30)
	assert.Equal(t, 3, col)
}

func TestVectorProjectorNarrowCamera(t *testing.T) {
	fov, err := NewFieldOfView(18, Aspect16x9)
	assert.NoError(t, err)
	p := VectorProjector{FOV: fov, StabilizeBelow: 5}

	row, col := p.Project(SphericalCoordinate{Rho: 5, Theta: 1, Phi: -1}, 9, 32)
	assert.Equal(t, [2]int{5, 18}, [2]int{row, col})

	row, col = p.Project(SphericalCoordinate{Rho: 5, Theta: 45, Phi: -45}, 9, 32)
	assert.Equal(t, [2]int{8, 31}, [2]int{row, col})
}

func TestVectorIndicatorDraw(t *testing.T) {
	symbols := DefaultSymbolTable()
	fov := FieldOfView{Width: 24, Height: 18}
	vv := NewVelocityVector(symbols, fov, 5)
	assert.Equal(t, Center, vv.Align())

	tel := DefaultTelemetry()
	tel.SpeedVector = SphericalCoordinate{Rho: 100, Theta: 10, Phi: -5}
	g := NewGrid(16, 30)
	assert.Zero(t, vv.Draw(&tel, g))
	assert.Equal(t, symbols.Code(VelocityVectorSymbol), g[12][27])

	sv := NewSteerpointVector(symbols, fov, 5)
	tel.Steerpoint.Coordinate = SphericalCoordinate{Rho: 100, Theta: -10, Phi: 5}
	g = NewGrid(16, 30)
	sv.Draw(&tel, g)
	assert.Equal(t, symbols.Code(Square), g[4][3])
}

func TestVectorIndicatorFlicker(t *testing.T) {
	symbols := DefaultSymbolTable()
	vv := NewVelocityVector(symbols, FieldOfView{Width: 24, Height: 18}, 5)
	tel := DefaultTelemetry()
	glyph := symbols.Code(VelocityVectorSymbol)

	// The center cell is already taken by something opaque every frame.
	want := []byte{'X', glyph, 'X', glyph, 'X'}
	for i, w := range want {
		g := NewGrid(16, 30)
		g[8][15] = 'X'
		vv.Draw(&tel, g)
		assert.Equal(t, w, g[8][15], "frame %d", i)
	}

	// Blank cells are background and never contended.
	for i := 0; i < 3; i++ {
		g := NewGrid(16, 30)
		g[8][15] = ' '
		vv.Draw(&tel, g)
		assert.Equal(t, glyph, g[8][15], "frame %d", i)
	}
}

func TestVectorIndicatorEmptyGrid(t *testing.T) {
	vv := NewVelocityVector(DefaultSymbolTable(), FieldOfView{Width: 24, Height: 18}, 5)
	tel := DefaultTelemetry()
	assert.NotPanics(t, func() { vv.Draw(&tel, Grid{}) })
}
