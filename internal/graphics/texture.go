package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrNotSquare is returned when a texture image is not square
var ErrNotSquare = errors.New("texture is not square")

// DefaultChromaKey is the colour billboards treat as transparent
var DefaultChromaKey = color.RGBA{0, 255, 0, 255}

// Texture is an immutable square texel buffer. A nil *Texture samples as
// transparent black so a missing asset never breaks a frame.
type Texture struct {
	name string
	size int
	pix  []color.RGBA // row-major, size*size
	key  color.RGBA
}

// NewTexture copies a square image into a texture
func NewTexture(name string, img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("texture %s is %dx%d: %w", name, b.Dx(), b.Dy(), ErrNotSquare)
	}
	if b.Dx() == 0 {
		return nil, fmt.Errorf("texture %s is empty: %w", name, ErrNotSquare)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}

	size := b.Dx()
	t := &Texture{name: name, size: size, pix: make([]color.RGBA, size*size), key: DefaultChromaKey}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t.pix[y*size+x] = rgba.RGBAAt(x, y)
		}
	}
	return t, nil
}

// WithChromaKey returns a copy of the texture using key as its transparent colour
func (t *Texture) WithChromaKey(key color.RGBA) *Texture {
	if t == nil {
		return nil
	}
	c := *t
	c.key = key
	return &c
}

// Name returns the asset name the texture was loaded under
func (t *Texture) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Size returns the side length in texels; 0 for a nil texture.
func (t *Texture) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// At samples texel (x, y) with coordinates clamped to the texture.
func (t *Texture) At(x, y int) color.RGBA {
	if t == nil || t.size == 0 {
		return color.RGBA{}
	}
	if x < 0 {
		x = 0
	} else if x >= t.size {
		x = t.size - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.size {
		y = t.size - 1
	}
	return t.pix[y*t.size+x]
}

// ChromaKey returns the colour treated as transparent by billboards
func (t *Texture) ChromaKey() color.RGBA {
	if t == nil {
		return DefaultChromaKey
	}
	return t.key
}

// IsTransparent reports whether c matches the chroma key, alpha ignored.
func (t *Texture) IsTransparent(c color.RGBA) bool {
	k := t.ChromaKey()
	return c.R == k.R && c.G == k.G && c.B == k.B
}

// Tint scales the RGB channels by factor, leaving alpha alone.
func Tint(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * factor
		if s <= 0 {
			return 0
		}
		if s >= 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
