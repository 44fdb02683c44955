package world

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when the cell list does not hold width*height codes.
	ErrSizeMismatch = errors.New("cell count does not match grid size")
	// ErrEmptyMap is returned for grids or map files without any cells.
	ErrEmptyMap = errors.New("map contains no cells")
	// ErrRaggedMap is returned when map rows differ in width.
	ErrRaggedMap = errors.New("map rows have different widths")
)

// Grid is the occupancy grid the renderer marches rays through. A cell is
// solid when its code is non-zero. The grid is never mutated after NewGrid.
type Grid struct {
	width  int
	height int
	cells  []int // row-major, len == width*height
}

// NewGrid builds a grid from a flat row-major list of cell codes. The slice
// is copied so callers cannot mutate the grid afterwards.
func NewGrid(width, height int, cells []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", width, height, ErrEmptyMap)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("grid %dx%d with %d cells: %w", width, height, len(cells), ErrSizeMismatch)
	}
	owned := make([]int, len(cells))
	copy(owned, cells)
	return &Grid{width: width, height: height, cells: owned}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (cellX, cellY) addresses a cell of the grid
func (g *Grid) InBounds(cellX, cellY int) bool {
	return cellX >= 0 && cellX < g.width && cellY >= 0 && cellY < g.height
}

// Cell returns the code stored at (cellX, cellY); ok is false outside the grid.
func (g *Grid) Cell(cellX, cellY int) (code int, ok bool) {
	if !g.InBounds(cellX, cellY) {
		return 0, false
	}
	return g.cells[cellY*g.width+cellX], true
}

// IsSolid reports whether the cell blocks rays and movement. Cells outside
// the grid count as solid.
func (g *Grid) IsSolid(cellX, cellY int) bool {
	code, ok := g.Cell(cellX, cellY)
	return !ok || code != 0
}

// BorderSolid reports whether every edge cell is solid. Rays can only leave
// the grid through a gap in the border.
func (g *Grid) BorderSolid() bool {
	for x := 0; x < g.width; x++ {
		if !g.IsSolid(x, 0) || !g.IsSolid(x, g.height-1) {
			return false
		}
	}
	for y := 0; y < g.height; y++ {
		if !g.IsSolid(0, y) || !g.IsSolid(g.width-1, y) {
			return false
		}
	}
	return true
}

// IsTileBlocking implements collision.TileChecker
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	return g.IsSolid(tileX, tileY)
}

// GetWorldBounds implements collision.TileChecker
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.width, g.height
}
