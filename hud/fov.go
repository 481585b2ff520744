package hud

import (
	"fmt"
	"strconv"
	"strings"
)

// AspectRatio of the video frame the grid is overlaid on.
type AspectRatio struct {
	Width, Height int
}

var (
	Aspect4x3  = AspectRatio{4, 3}
	Aspect5x4  = AspectRatio{5, 4}
	Aspect16x9 = AspectRatio{16, 9}
)

// ParseAspectRatio reads "W:H".
func ParseAspectRatio(s string) (AspectRatio, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return AspectRatio{}, fmt.Errorf("aspect ratio %q: want W:H", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return AspectRatio{}, fmt.Errorf("aspect ratio %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return AspectRatio{}, fmt.Errorf("aspect ratio %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return AspectRatio{}, fmt.Errorf("aspect ratio %q: both sides must be positive", s)
	}
	return AspectRatio{width, height}, nil
}

func (a AspectRatio) String() string {
	return fmt.Sprintf("%d:%d", a.Width, a.Height)
}

// DiagonalToWidth splits a diagonal angle into its horizontal span.
// Ratios other than 4:3, 5:4 and 16:9 are treated as square.
func (a AspectRatio) DiagonalToWidth(diagonal int) int {
	switch a {
	case Aspect4x3:
		return diagonal * 4 / 5
	case Aspect5x4:
		return diagonal * 1000 / 1281
	case Aspect16x9:
		return diagonal * 1600 / 1835
	}
	return diagonal * 707 / 1000
}

// DiagonalToHeight splits a diagonal angle into its vertical span.
func (a AspectRatio) DiagonalToHeight(diagonal int) int {
	switch a {
	case Aspect4x3:
		return diagonal * 3 / 5
	case Aspect5x4:
		return diagonal * 800 / 1281
	case Aspect16x9:
		return diagonal * 900 / 1835
	}
	return diagonal * 707 / 1000
}

// FieldOfView is the effective angular span of the grid in degrees.
type FieldOfView struct {
	Width  int
	Height int
}

// NewFieldOfView derives horizontal and vertical spans from a diagonal FOV.
func NewFieldOfView(diagonal int, aspect AspectRatio) (FieldOfView, error) {
	fov := FieldOfView{
		Width:  aspect.DiagonalToWidth(diagonal),
		Height: aspect.DiagonalToHeight(diagonal),
	}
	if fov.Width <= 0 || fov.Height <= 0 {
		return FieldOfView{}, fmt.Errorf("%w: field of view %d° at %s is empty", ErrInvalidOptions, diagonal, aspect)
	}
	return fov, nil
}
