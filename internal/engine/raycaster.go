package engine

import (
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// noHit marks an axis march that left the grid without striking a wall.
const noHit = -1.0

// RayHit is the result of casting one column's ray.
type RayHit struct {
	Hit        bool
	Horizontal bool    // struck a horizontal grid line (y = k*block)
	X, Y       float64 // world hit point
	Angle      float64 // ray heading, degrees
	DirX, DirY float64 // unit ray direction

	Distance      float64 // euclidean camera to hit
	CosCorrection float64 // cos(|heading - angle|)
	PerpDistance  float64 // Distance * CosCorrection, +Inf without a hit
}

// WallOffset is the position of the hit along the struck wall face, in [0, block).
func (h RayHit) WallOffset(blockSize float64) float64 {
	if h.Horizontal {
		return mathutil.FloorMod(h.X, blockSize)
	}
	return mathutil.FloorMod(h.Y, blockSize)
}

// TexColumn maps the wall offset to a texel column of a texSize texture.
func (h RayHit) TexColumn(blockSize float64, texSize int) int {
	col := int(h.WallOffset(blockSize) / blockSize * float64(texSize))
	return mathutil.IntClamp(col, 0, texSize-1)
}

// RayCaster marches one ray per screen column through the grid and keeps
// the per-column depth buffer.
type RayCaster struct {
	grid  *world.Grid
	proj  Projection
	depth []float64
}

// NewRayCaster creates a caster for grid with one depth slot per column
func NewRayCaster(grid *world.Grid, proj Projection) *RayCaster {
	depth := make([]float64, mathutil.IntMax(proj.Width, 0))
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &RayCaster{grid: grid, proj: proj, depth: depth}
}

// Depth returns the depth buffer. It is rewritten by every CastColumn.
func (rc *RayCaster) Depth() []float64 { return rc.depth }

// CastColumn casts the ray for screen column x from the given pose and
// records its perpendicular distance in the depth buffer.
func (rc *RayCaster) CastColumn(camX, camY, heading float64, x int) RayHit {
	hit := rc.CastRay(camX, camY, heading, rc.proj.ColumnAngle(heading, x))
	if x >= 0 && x < len(rc.depth) {
		rc.depth[x] = hit.PerpDistance
	}
	return hit
}

// CastRay casts a single ray at angle (degrees) and fisheye-corrects it
// against heading.
func (rc *RayCaster) CastRay(camX, camY, heading, angle float64) RayHit {
	rad := mathutil.DegToRad(angle)
	dx, dy := math.Cos(rad), math.Sin(rad)

	hit := RayHit{
		Angle:         angle,
		DirX:          dx,
		DirY:          dy,
		CosCorrection: math.Cos(mathutil.DegToRad(math.Abs(heading - angle))),
		Distance:      math.Inf(1),
		PerpDistance:  math.Inf(1),
	}

	block := rc.proj.BlockSize
	hx, hy, distH := marchHorizontal(rc.grid, block, camX, camY, dx, dy)
	vx, vy, distV := marchVertical(rc.grid, block, camX, camY, dx, dy)

	switch {
	case distH == noHit && distV == noHit:
		return hit
	case distV == noHit || (distH != noHit && distH <= distV):
		hit.Horizontal = true
		hit.X, hit.Y, hit.Distance = hx, hy, distH
	default:
		hit.X, hit.Y, hit.Distance = vx, vy, distV
	}

	hit.Hit = true
	hit.PerpDistance = hit.Distance * hit.CosCorrection
	return hit
}

// marchHorizontal steps the ray across horizontal grid lines (y = k*block)
// until it enters a solid cell. It returns the hit point and euclidean
// distance, or noHit when the ray runs parallel to the lines or leaves the grid.
func marchHorizontal(grid *world.Grid, block, px, py, dx, dy float64) (float64, float64, float64) {
	if dy == 0 || math.IsNaN(dy) {
		return 0, 0, noHit
	}

	line := math.Floor(py / block)
	step := -1.0
	if dy > 0 {
		line++
		step = 1
	}

	for {
		ay := line * block
		ax := px + (ay-py)/dy*dx

		cellY := line
		if dy < 0 {
			cellY-- // the cell above the line
		}
		cellX := math.Floor(ax / block)
		if !cellInGrid(grid, cellX, cellY) {
			return 0, 0, noHit
		}
		if grid.IsSolid(int(cellX), int(cellY)) {
			return ax, ay, math.Hypot(ax-px, ay-py)
		}
		line += step
	}
}

// marchVertical is marchHorizontal for vertical grid lines (x = k*block).
func marchVertical(grid *world.Grid, block, px, py, dx, dy float64) (float64, float64, float64) {
	if dx == 0 || math.IsNaN(dx) {
		return 0, 0, noHit
	}

	line := math.Floor(px / block)
	step := -1.0
	if dx > 0 {
		line++
		step = 1
	}

	for {
		bx := line * block
		by := py + (bx-px)/dx*dy

		cellX := line
		if dx < 0 {
			cellX-- // the cell left of the line
		}
		cellY := math.Floor(by / block)
		if !cellInGrid(grid, cellX, cellY) {
			return 0, 0, noHit
		}
		if grid.IsSolid(int(cellX), int(cellY)) {
			return bx, by, math.Hypot(bx-px, by-py)
		}
		line += step
	}
}

// cellInGrid checks in float space so NaN and huge coordinates never reach
// an int conversion.
func cellInGrid(grid *world.Grid, cx, cy float64) bool {
	return cx >= 0 && cx < float64(grid.Width()) && cy >= 0 && cy < float64(grid.Height())
}
