package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"raycaster/internal/logger"
	"raycaster/internal/mathutil"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// TextureKind selects the placeholder pattern used when an asset is missing
type TextureKind int

const (
	KindWall TextureKind = iota
	KindFloor
	KindCeiling
	KindSprite
)

func (k TextureKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	case KindCeiling:
		return "ceiling"
	case KindSprite:
		return "sprite"
	}
	return "unknown"
}

// TextureManager loads and caches textures by name. Every texture it hands
// out is square with the configured side length.
type TextureManager struct {
	textures map[string]*Texture
	size     int
	key      color.RGBA
}

// NewTextureManager creates a manager producing size x size textures that
// use key as their chroma key.
func NewTextureManager(size int, key color.RGBA) *TextureManager {
	if size <= 0 {
		size = 64
	}
	return &TextureManager{
		textures: make(map[string]*Texture),
		size:     size,
		key:      key,
	}
}

// LoadFile decodes a BMP or PNG file and rescales it to the managed size.
// The result is cached under name.
func (tm *TextureManager) LoadFile(name, path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("texture %s is %dx%d: %w", path, b.Dx(), b.Dy(), ErrNotSquare)
	}

	if b.Dx() != tm.size {
		scaled := image.NewRGBA(image.Rect(0, 0, tm.size, tm.size))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Rect, img, b, xdraw.Src, nil)
		img = scaled
	}

	tex, err := NewTexture(name, img)
	if err != nil {
		return nil, err
	}
	tex = tex.WithChromaKey(tm.key)
	tm.textures[name] = tex

	logger.Log.WithFields(logrus.Fields{
		"texture": name,
		"path":    path,
		"format":  format,
		"source":  fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
	}).Debug("[TextureManager] texture loaded")
	return tex, nil
}

// Load is LoadFile with a fallback: on any failure it logs a warning and
// caches a generated placeholder of the given kind instead. An empty path
// goes straight to the placeholder. The result is never nil.
func (tm *TextureManager) Load(name, path string, kind TextureKind) *Texture {
	if path != "" {
		tex, err := tm.LoadFile(name, path)
		if err == nil {
			return tex
		}
		logger.Log.WithFields(logrus.Fields{
			"texture": name,
			"path":    path,
		}).WithError(err).Warn("[TextureManager] using placeholder texture")
	}
	tex := tm.Placeholder(name, kind)
	tm.textures[name] = tex
	return tex
}

// Get returns a cached texture or nil
func (tm *TextureManager) Get(name string) *Texture {
	return tm.textures[name]
}

// Placeholder generates a procedural texture for kind
func (tm *TextureManager) Placeholder(name string, kind TextureKind) *Texture {
	n := tm.size
	img := image.NewRGBA(image.Rect(0, 0, n, n))

	switch kind {
	case KindWall:
		// brick courses, every other row offset by half a brick
		mortar := color.RGBA{90, 90, 90, 255}
		brick := color.RGBA{150, 60, 40, 255}
		course := mathutil.IntMax(n/8, 1)
		brickW := mathutil.IntMax(n/4, 1)
		for y := 0; y < n; y++ {
			row := y / course
			offset := 0
			if row%2 == 1 {
				offset = brickW / 2
			}
			for x := 0; x < n; x++ {
				c := brick
				if y%course == 0 || (x+offset)%brickW == 0 {
					c = mortar
				}
				img.SetRGBA(x, y, c)
			}
		}
	case KindFloor:
		a := color.RGBA{110, 110, 110, 255}
		b := color.RGBA{70, 70, 70, 255}
		cell := mathutil.IntMax(n/8, 1)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if (x/cell+y/cell)%2 == 0 {
					img.SetRGBA(x, y, a)
				} else {
					img.SetRGBA(x, y, b)
				}
			}
		}
	case KindCeiling:
		plank := color.RGBA{120, 85, 50, 255}
		seam := color.RGBA{60, 40, 20, 255}
		width := mathutil.IntMax(n/4, 1)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if x%width == 0 {
					img.SetRGBA(x, y, seam)
				} else {
					img.SetRGBA(x, y, plank)
				}
			}
		}
	default:
		// filled disc on the chroma key
		r := float64(n) / 2
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx := float64(x) + 0.5 - r
				dy := float64(y) + 0.5 - r
				if dx*dx+dy*dy <= r*r*0.8 {
					img.SetRGBA(x, y, color.RGBA{200, 40, 160, 255})
				} else {
					img.SetRGBA(x, y, tm.key)
				}
			}
		}
	}

	// size is positive and img square, NewTexture cannot fail here
	tex, _ := NewTexture(name, img)
	return tex.WithChromaKey(tm.key)
}
