package graphics

import (
	"image"
	"image/color"
)

// Framebuffer is the pixel target the renderer paints every frame. Writes
// outside the buffer are dropped so rasterizers never have to clip twice.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a width x height framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the framebuffer width in pixels
func (fb *Framebuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the framebuffer height in pixels
func (fb *Framebuffer) Height() int { return fb.img.Rect.Dy() }

// Set writes one pixel, ignoring coordinates outside the buffer.
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.img.Rect.Max.X || y >= fb.img.Rect.Max.Y {
		return
	}
	i := fb.img.PixOffset(x, y)
	p := fb.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// At reads one pixel; outside the buffer it returns the zero colour.
func (fb *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.img.Rect.Max.X || y >= fb.img.Rect.Max.Y {
		return color.RGBA{}
	}
	return fb.img.RGBAAt(x, y)
}

// Clear fills the whole buffer with c
func (fb *Framebuffer) Clear(c color.RGBA) {
	pix := fb.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Pix exposes the raw RGBA bytes, row-major with stride 4*Width.
func (fb *Framebuffer) Pix() []byte { return fb.img.Pix }
