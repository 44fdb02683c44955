package engine

import (
	"math"
	"sort"

	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// Sprite is a billboard standing at a world position.
type Sprite struct {
	X, Y    float64
	Texture *graphics.Texture
}

// ToCameraSpace translates (x, y) by the camera position and rotates it by
// -heading. depth runs along the view axis, lateral to its right.
func ToCameraSpace(x, y, camX, camY, heading float64) (depth, lateral float64) {
	rel := mgl64.Rotate2D(-mathutil.DegToRad(heading)).Mul2x1(mgl64.Vec2{x - camX, y - camY})
	return rel.X(), rel.Y()
}

// spriteView is a sprite in camera space for one frame
type spriteView struct {
	sprite  Sprite
	depth   float64
	lateral float64
}

// SpritePass transforms, sorts and composites sprites each frame. Its
// scratch buffer is reused between frames.
type SpritePass struct {
	proj  Projection
	views []spriteView
}

// NewSpritePass creates a sprite pass for proj
func NewSpritePass(proj Projection) *SpritePass {
	return &SpritePass{proj: proj}
}

// SortByDepth reorders sprites in place, farthest first, as seen from the
// camera pose. Order between equal depths is unspecified.
func (sp *SpritePass) SortByDepth(sprites []Sprite, camX, camY, heading float64) {
	sp.views = sp.views[:0]
	for _, s := range sprites {
		depth, lateral := ToCameraSpace(s.X, s.Y, camX, camY, heading)
		sp.views = append(sp.views, spriteView{sprite: s, depth: depth, lateral: lateral})
	}

	sort.Slice(sp.views, func(i, j int) bool {
		return sp.views[i].depth > sp.views[j].depth
	})

	for i := range sp.views {
		sprites[i] = sp.views[i].sprite
	}
}

// Draw sorts sprites and paints every one in front of the camera, back to
// front, against the depth buffer. It returns the number of sprites in
// front of the camera and how many of those put at least one pixel on screen.
func (sp *SpritePass) Draw(fb *graphics.Framebuffer, sprites []Sprite, depth []float64, camX, camY, heading float64) (visible, drawn int) {
	sp.SortByDepth(sprites, camX, camY, heading)

	planeDist := sp.proj.PlaneDist()
	centerX := float64(sp.proj.CenterX())
	centerY := float64(sp.proj.CenterRow())

	for _, v := range sp.views {
		if !(v.depth > 0) {
			continue
		}
		visible++

		scale := planeDist / v.depth
		size := sp.proj.SpriteSize * scale
		screenX := v.lateral*scale + centerX
		startX := screenX - size/2
		startY := centerY - size/2

		x0, y0 := screenCoord(startX), screenCoord(startY)
		x1, y1 := screenCoord(startX+size), screenCoord(startY+size)
		if DrawBillboard(fb, x0, y0, x1, y1, v.sprite.Texture, v.depth, depth) {
			drawn++
		}
	}
	return visible, drawn
}

func screenCoord(v float64) int {
	return int(mathutil.ClampFloat(v, -maxScreenCoord, maxScreenCoord))
}

// DrawBillboard maps tex onto the rectangle (x0,y0)-(x1,y1) inclusive,
// skipping chroma-key texels. A screen column is skipped entirely when the
// depth buffer holds something nearer than spriteDepth. Reports whether any
// pixel was written.
func DrawBillboard(fb *graphics.Framebuffer, x0, y0, x1, y1 int, tex *graphics.Texture, spriteDepth float64, depth []float64) bool {
	w, h := fb.Width(), fb.Height()
	if x0 >= w || y0 >= h || x1 < 0 || y1 < 0 || tex == nil {
		return false
	}

	startX, startY := mathutil.IntMax(x0, 0), mathutil.IntMax(y0, 0)
	endX, endY := mathutil.IntMin(x1, w-1), mathutil.IntMin(y1, h-1)
	spanX, spanY := float64(x1-x0), float64(y1-y0)
	last := float64(tex.Size() - 1)

	wrote := false
	for x := startX; x <= endX; x++ {
		if x < len(depth) && depth[x] < spriteDepth {
			continue
		}
		at := 0.0
		if spanX != 0 {
			at = float64(x-x0) / spanX
		}
		tx := int(at * last)

		for y := startY; y <= endY; y++ {
			bt := 0.0
			if spanY != 0 {
				bt = float64(y-y0) / spanY
			}
			c := tex.At(tx, int(bt*last))
			if tex.IsTransparent(c) {
				continue
			}
			fb.Set(x, y, c)
			wrote = true
		}
	}
	return wrote
}

// nearestDepth returns the smallest finite value of the depth buffer, or +Inf.
func nearestDepth(depth []float64) float64 {
	nearest := math.Inf(1)
	for _, d := range depth {
		if d < nearest {
			nearest = d
		}
	}
	return nearest
}
