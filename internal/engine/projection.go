package engine

import (
	"errors"
	"fmt"
	"math"

	"raycaster/internal/mathutil"
)

var ErrInvalidProjection = errors.New("invalid projection")

// Projection holds the screen and world sizes every pass projects with.
type Projection struct {
	Width      int     // framebuffer columns
	Height     int     // framebuffer rows
	FOV        float64 // horizontal field of view, degrees
	BlockSize  float64 // world units per grid cell
	SpriteSize float64 // world side length of a billboard
}

// Validate rejects sizes the renderer cannot allocate or project with:
// non-positive screen or block size, or a field of view outside (0, 360).
func (p Projection) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidProjection, p.Width, p.Height)
	case !(p.BlockSize > 0) || math.IsInf(p.BlockSize, 0):
		return fmt.Errorf("%w: block size %v", ErrInvalidProjection, p.BlockSize)
	case !(p.FOV > 0 && p.FOV < 360):
		return fmt.Errorf("%w: field of view %v", ErrInvalidProjection, p.FOV)
	}
	return nil
}

// PlaneDist is the distance from the eye to the projection plane in pixels.
func (p Projection) PlaneDist() float64 {
	return float64(p.Width) / 2 / math.Tan(mathutil.DegToRad(p.FOV/2))
}

// CenterX is the screen column of the view axis
func (p Projection) CenterX() int { return p.Width / 2 }

// CenterRow is the horizon row
func (p Projection) CenterRow() int { return p.Height / 2 }

// ColumnAngle returns the ray heading in degrees for screen column x.
func (p Projection) ColumnAngle(heading float64, x int) float64 {
	return heading - p.FOV/2 + float64(x)*(p.FOV/float64(p.Width))
}
