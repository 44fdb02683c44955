package collision

import (
	"math"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem resolves camera movement against the tile grid. Only the
// cell containing a point is tested; sprites never block.
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
	}
}

// IsBlockedAt reports whether the cell containing (x, y) is solid or lies
// outside the world.
func (cs *CollisionSystem) IsBlockedAt(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return true
	}
	width, height := cs.tileChecker.GetWorldBounds()
	fx, fy := math.Floor(x/cs.tileSize), math.Floor(y/cs.tileSize)
	// compare as floats first so huge coordinates cannot overflow int
	if fx < 0 || fy < 0 || fx >= float64(width) || fy >= float64(height) {
		return true
	}
	return cs.tileChecker.IsTileBlocking(int(fx), int(fy))
}

// Slide moves (x, y) by (dx, dy) one axis at a time. A component that would
// put the point into a blocked cell is dropped, the other still applies, so
// diagonal motion into a wall slides along it.
func (cs *CollisionSystem) Slide(x, y, dx, dy float64) (newX, newY float64) {
	newX, newY = x, y

	if dx != 0 {
		newX = x + dx
		if cs.IsBlockedAt(newX, newY) {
			newX = x
		}
	}

	if dy != 0 {
		newY = y + dy
		if cs.IsBlockedAt(newX, newY) {
			newY = y
		}
	}

	return newX, newY
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (cs *CollisionSystem) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	// sample at least every quarter tile
	dist := math.Hypot(x2-x1, y2-y1)
	steps := int(math.Ceil(dist / (cs.tileSize / 4)))
	if steps < 1 {
		steps = 1
	}
	dx := (x2 - x1) / float64(steps)
	dy := (y2 - y1) / float64(steps)

	for i := 0; i <= steps; i++ {
		if cs.IsBlockedAt(x1+dx*float64(i), y1+dy*float64(i)) {
			return false
		}
	}

	return true
}
