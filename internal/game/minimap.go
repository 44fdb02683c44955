package game

import (
	"image/color"
	"math"

	"raycaster/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	minimapWall   = color.RGBA{200, 200, 200, 220}
	minimapFloor  = color.RGBA{30, 30, 40, 180}
	minimapPlayer = color.RGBA{255, 220, 0, 255}
	minimapSprite = color.RGBA{220, 60, 160, 255}
	minimapHidden = color.RGBA{110, 50, 90, 200}
)

// minimapLayout fits a gridW x gridH map into a quarter of the screen's
// shorter side, anchored to the top right corner with padding.
func minimapLayout(gridW, gridH, screenW, screenH int) (cell, originX, originY int) {
	const padding = 8
	side := screenW
	if screenH < side {
		side = screenH
	}
	side /= 2

	cell = side / gridW
	if alt := side / gridH; alt < cell {
		cell = alt
	}
	if cell < 1 {
		cell = 1
	}
	originX = screenW - gridW*cell - padding
	originY = padding
	return cell, originX, originY
}

// spriteMarkerColor dims sprites a wall hides from the camera
func spriteMarkerColor(loop *engine.FrameLoop, s engine.Sprite) color.RGBA {
	cam := loop.Camera()
	if loop.Mover().CheckLineOfSight(cam.X, cam.Y, s.X, s.Y) {
		return minimapSprite
	}
	return minimapHidden
}

func drawMinimap(screen *ebiten.Image, loop *engine.FrameLoop) {
	grid := loop.Scene().Grid
	block := loop.Projection().BlockSize
	cell, ox, oy := minimapLayout(grid.Width(), grid.Height(), screen.Bounds().Dx(), screen.Bounds().Dy())
	fcell := float32(cell)

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			clr := minimapFloor
			if grid.IsSolid(x, y) {
				clr = minimapWall
			}
			vector.DrawFilledRect(screen, float32(ox+x*cell), float32(oy+y*cell), fcell, fcell, clr, false)
		}
	}

	toMap := func(wx, wy float64) (float32, float32) {
		return float32(ox) + float32(wx/block)*fcell, float32(oy) + float32(wy/block)*fcell
	}

	for _, s := range loop.Scene().Sprites {
		sx, sy := toMap(s.X, s.Y)
		vector.DrawFilledCircle(screen, sx, sy, fcell/4, spriteMarkerColor(loop, s), true)
	}

	cam := loop.Camera()
	px, py := toMap(cam.X, cam.Y)
	fwd := cam.Forward()
	vector.StrokeLine(screen, px, py, px+float32(fwd.X())*fcell, py+float32(fwd.Y())*fcell, 1, minimapPlayer, true)
	vector.DrawFilledCircle(screen, px, py, float32(math.Max(float64(fcell)/3, 1.5)), minimapPlayer, true)
}
