package engine

import (
	"image"
	"image/color"
	"testing"

	"raycaster/internal/graphics"
	"raycaster/internal/world"
)

var (
	wallColor    = color.RGBA{200, 100, 50, 255}
	floorColor   = color.RGBA{10, 120, 10, 255}
	ceilingColor = color.RGBA{10, 10, 120, 255}
	clearColor   = color.RGBA{1, 2, 3, 255}
)

// roomGrid returns a size x size grid with a solid border and an open interior
func roomGrid(t *testing.T, size int) *world.Grid {
	t.Helper()
	cells := make([]int, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				cells[y*size+x] = 1
			}
		}
	}
	g, err := world.NewGrid(size, size, cells)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func solidTexture(t *testing.T, size int, c color.RGBA) *graphics.Texture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	tex, err := graphics.NewTexture("solid", img)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	return tex
}

// coordTexture encodes each texel's coordinates: R = x, G = y.
func coordTexture(t *testing.T, size int) *graphics.Texture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, texelColor(x, y))
		}
	}
	tex, err := graphics.NewTexture("coords", img)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	return tex
}

func texelColor(x, y int) color.RGBA {
	return color.RGBA{uint8(x), uint8(y), 0, 255}
}

// testProjection is 64x48 with a 60 degree FOV, so column 32 looks straight
// along the heading and column 0 looks 30 degrees left of it.
func testProjection() Projection {
	return Projection{Width: 64, Height: 48, FOV: 60, BlockSize: 64, SpriteSize: 64}
}

func testScene(t *testing.T, grid *world.Grid) *Scene {
	return &Scene{
		Grid:    grid,
		Wall:    solidTexture(t, 8, wallColor),
		Floor:   solidTexture(t, 8, floorColor),
		Ceiling: solidTexture(t, 8, ceilingColor),
	}
}

func testOptions() RendererOptions {
	return RendererOptions{HorizontalTint: 0.5, ClearColor: clearColor}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
