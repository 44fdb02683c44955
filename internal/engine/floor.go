package engine

import (
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
)

// drawFloorAndCeiling paints the floor from row start to the bottom of
// column x and mirrors each row onto the ceiling. Rows at or above the
// horizon are never cast; their distance would be infinite or negative.
func (r *Renderer) drawFloorAndCeiling(fb *graphics.Framebuffer, x, start int, hit RayHit, camX, camY float64, floor, ceiling *graphics.Texture) {
	center := r.proj.CenterRow()
	height := fb.Height()
	if start <= center {
		start = center + 1
	}
	if start >= height || hit.CosCorrection <= 0 {
		return
	}

	block := r.proj.BlockSize
	// eye height of half a block
	numerator := r.proj.PlaneDist() * (block / 2)

	for y := start; y < height; y++ {
		dist := numerator / float64(y-center) / hit.CosCorrection

		var fx, fy float64
		if hit.Hit && hit.Distance > 0 {
			t := dist / hit.Distance
			fx = camX + (hit.X-camX)*t
			fy = camY + (hit.Y-camY)*t
		} else {
			fx = camX + hit.DirX*dist
			fy = camY + hit.DirY*dist
		}

		u := mathutil.FloorMod(fx, block) / block
		v := mathutil.FloorMod(fy, block) / block

		fb.Set(x, y, floor.At(texel(u, floor.Size()), texel(v, floor.Size())))
		fb.Set(x, height-y-1, ceiling.At(texel(u, ceiling.Size()), texel(v, ceiling.Size())))
	}
}

// texel maps u in [0,1) to a texel index, NaN and overflow land on the edges.
func texel(u float64, size int) int {
	return int(mathutil.ClampFloat(u*float64(size), 0, float64(size-1)))
}
