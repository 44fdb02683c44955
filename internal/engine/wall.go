package engine

import (
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
)

// screen coordinates are clamped to this before int conversion
const maxScreenCoord = 1 << 24

// SliceBounds returns the unclipped first and last row of a wall slice at
// perpendicular distance perp. The slice is centred on the horizon.
func SliceBounds(proj Projection, perp float64) (top, bottom int) {
	height := proj.BlockSize / perp * proj.PlaneDist()
	// a zero distance gives +Inf; keep start+height finite
	height = mathutil.ClampFloat(height, 0, 4*maxScreenCoord)
	start := float64(proj.CenterRow()) - height/2
	end := start + height
	start = mathutil.ClampFloat(start, -maxScreenCoord, maxScreenCoord)
	end = mathutil.ClampFloat(end, -maxScreenCoord, maxScreenCoord)
	return int(start), int(end)
}

// DrawTexturedLine paints column x from row y0 to y1 inclusive, clipped to
// the framebuffer. Rows map linearly onto texel rows 0..size-1 of texture
// column texX. A tint other than 1 scales the RGB channels.
func DrawTexturedLine(fb *graphics.Framebuffer, x, y0, y1, texX int, tex *graphics.Texture, tint float64) {
	if x < 0 || x >= fb.Width() || y1 < 0 || y0 >= fb.Height() {
		return
	}
	start := mathutil.IntMax(y0, 0)
	end := mathutil.IntMin(y1, fb.Height()-1)
	span := float64(y1 - y0)
	last := float64(tex.Size() - 1)

	for y := start; y <= end; y++ {
		t := 0.0
		if span != 0 {
			t = float64(y-y0) / span
		}
		c := tex.At(texX, int(t*last))
		if tint != 1 {
			c = graphics.Tint(c, tint)
		}
		fb.Set(x, y, c)
	}
}

// drawWall paints the wall slice for one column hit and returns the slice's
// unclipped bottom row.
func (r *Renderer) drawWall(fb *graphics.Framebuffer, x int, hit RayHit, wall *graphics.Texture) int {
	top, bottom := SliceBounds(r.proj, hit.PerpDistance)
	tint := 1.0
	if hit.Horizontal {
		tint = r.horizontalTint
	}
	DrawTexturedLine(fb, x, top, bottom, hit.TexColumn(r.proj.BlockSize, wall.Size()), wall, tint)
	return bottom
}
