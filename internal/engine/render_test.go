package engine

import (
	"image/color"
	"math"
	"testing"

	"raycaster/internal/graphics"
)

func TestSliceBounds_ThreeByThreeRoom(t *testing.T) {
	proj := testProjection()
	// perpendicular distance 2 blocks: slice height is half the plane distance
	height := proj.PlaneDist() / 2
	top, bottom := SliceBounds(proj, 128)

	wantTop := int(float64(proj.CenterRow()) - height/2)
	wantBottom := int(float64(proj.CenterRow()) - height/2 + height)
	if top != wantTop || bottom != wantBottom {
		t.Fatalf("bounds (%d,%d), want (%d,%d)", top, bottom, wantTop, wantBottom)
	}
	if top != 10 || bottom != 37 {
		t.Fatalf("bounds (%d,%d), want (10,37) for a 48 row screen", top, bottom)
	}
}

func TestSliceBounds_ZeroDistanceClamped(t *testing.T) {
	top, bottom := SliceBounds(testProjection(), 0)
	if top != -maxScreenCoord || bottom != maxScreenCoord {
		t.Fatalf("expected clamped bounds, got (%d,%d)", top, bottom)
	}
}

func TestRender_CenterColumn(t *testing.T) {
	proj := testProjection()
	grid := roomGrid(t, 5)
	scene := testScene(t, grid)
	r := NewRenderer(grid, proj, testOptions())
	fb := graphics.NewFramebuffer(proj.Width, proj.Height)

	stats := r.Render(fb, &Camera{X: 128, Y: 160, Heading: 0}, scene)
	if stats.NoHitColumns != 0 {
		t.Fatalf("closed room reported %d columns without a hit", stats.NoHitColumns)
	}

	// column 32 looks due east at x=256: wall rows 10..37, a vertical strike
	for y := 0; y < proj.Height; y++ {
		got := fb.At(32, y)
		var want color.RGBA
		switch {
		case y >= 10 && y <= 37:
			want = wallColor
		case y > 37:
			want = floorColor
		default:
			want = ceilingColor
		}
		if got != want {
			t.Fatalf("row %d: got %v, want %v", y, got, want)
		}
	}
}

func TestRender_HorizontalStrikeTinted(t *testing.T) {
	proj := testProjection()
	grid := roomGrid(t, 5)
	r := NewRenderer(grid, proj, testOptions())
	fb := graphics.NewFramebuffer(proj.Width, proj.Height)

	// facing south, column 32 strikes the y=256 line
	r.Render(fb, &Camera{X: 128, Y: 160, Heading: 90}, testScene(t, grid))

	want := graphics.Tint(wallColor, 0.5)
	if got := fb.At(32, proj.CenterRow()); got != want {
		t.Fatalf("centre pixel %v, want tinted %v", got, want)
	}
}

func TestRender_WallsIgnoreChromaKey(t *testing.T) {
	proj := testProjection()
	grid := roomGrid(t, 5)
	scene := testScene(t, grid)
	scene.Wall = solidTexture(t, 8, graphics.DefaultChromaKey)
	r := NewRenderer(grid, proj, testOptions())
	fb := graphics.NewFramebuffer(proj.Width, proj.Height)

	r.Render(fb, &Camera{X: 128, Y: 160, Heading: 0}, scene)
	if got := fb.At(32, proj.CenterRow()); got != graphics.DefaultChromaKey {
		t.Fatalf("wall texel should be drawn as is, got %v", got)
	}
}

func TestRender_NilTexturesDoNotPanic(t *testing.T) {
	proj := testProjection()
	grid := roomGrid(t, 5)
	r := NewRenderer(grid, proj, testOptions())
	fb := graphics.NewFramebuffer(proj.Width, proj.Height)

	scene := &Scene{Grid: grid, Sprites: []Sprite{{X: 192, Y: 160}}}
	r.Render(fb, &Camera{X: 128, Y: 160, Heading: 0}, scene)
}

func TestDrawFloorAndCeiling_NoHitColumnStartsBelowHorizon(t *testing.T) {
	proj := testProjection()
	grid := roomGrid(t, 5)
	r := NewRenderer(grid, proj, testOptions())
	fb := graphics.NewFramebuffer(proj.Width, proj.Height)
	fb.Clear(clearColor)
	scene := testScene(t, grid)

	hit := RayHit{DirX: 1, CosCorrection: 1, Distance: math.Inf(1), PerpDistance: math.Inf(1)}
	// a start above the horizon is pushed down to centre+1
	r.drawFloorAndCeiling(fb, 5, 0, hit, 128, 160, scene.Floor, scene.Ceiling)

	center := proj.CenterRow()
	if got := fb.At(5, center); got != clearColor {
		t.Fatalf("horizon row should not be cast, got %v", got)
	}
	if got := fb.At(5, center+1); got != floorColor {
		t.Fatalf("first floor row %v", got)
	}
	if got := fb.At(5, proj.Height-center-2); got != ceilingColor {
		t.Fatalf("mirrored ceiling row %v", got)
	}
}

func TestDrawTexturedLine_Clipping(t *testing.T) {
	fb := graphics.NewFramebuffer(4, 4)
	fb.Clear(clearColor)
	tex := solidTexture(t, 4, wallColor)

	DrawTexturedLine(fb, 1, -100, 100, 0, tex, 1)
	for y := 0; y < 4; y++ {
		if fb.At(1, y) != wallColor {
			t.Fatalf("row %d not painted", y)
		}
	}

	// single-row line and out-of-range columns
	DrawTexturedLine(fb, 2, 3, 3, 0, tex, 1)
	DrawTexturedLine(fb, 9, 0, 3, 0, tex, 1)
	if fb.At(2, 3) != wallColor || fb.At(2, 2) != clearColor {
		t.Fatal("single row line painted the wrong rows")
	}
}
