package engine

import (
	"image/color"
	"time"

	"raycaster/internal/collision"
	"raycaster/internal/graphics"
	"raycaster/internal/monitoring"
	"raycaster/internal/world"
)

// Scene is everything the renderer draws: the grid, its textures and the
// sprites. Sprites are reordered in place by every frame's depth sort.
type Scene struct {
	Grid    *world.Grid
	Sprites []Sprite
	Wall    *graphics.Texture
	Floor   *graphics.Texture
	Ceiling *graphics.Texture
}

// RendererOptions are the colour settings of a Renderer
type RendererOptions struct {
	HorizontalTint float64    // RGB factor for walls struck on a horizontal line
	ClearColor     color.RGBA // background left where nothing is drawn
}

// FrameStats describes the last rendered frame
type FrameStats struct {
	Columns        int
	NoHitColumns   int
	SpritesVisible int
	SpritesDrawn   int
	NearestWall    float64
	RaycastTime    time.Duration
	SpriteTime     time.Duration
}

// Renderer paints a scene into a framebuffer: clear, one ray per column
// with its wall, floor and ceiling, then sprites against the depth buffer.
type Renderer struct {
	proj           Projection
	caster         *RayCaster
	sprites        *SpritePass
	horizontalTint float64
	clearColor     color.RGBA
}

// NewRenderer creates a renderer for grid at the given projection
func NewRenderer(grid *world.Grid, proj Projection, opts RendererOptions) *Renderer {
	return &Renderer{
		proj:           proj,
		caster:         NewRayCaster(grid, proj),
		sprites:        NewSpritePass(proj),
		horizontalTint: opts.HorizontalTint,
		clearColor:     opts.ClearColor,
	}
}

// Projection returns the projection the renderer was built with
func (r *Renderer) Projection() Projection { return r.proj }

// Depth returns the depth buffer of the last frame
func (r *Renderer) Depth() []float64 { return r.caster.Depth() }

// Render draws one frame of scene from cam into fb
func (r *Renderer) Render(fb *graphics.Framebuffer, cam *Camera, scene *Scene) FrameStats {
	stats := FrameStats{Columns: r.proj.Width}
	fb.Clear(r.clearColor)

	start := time.Now()
	for x := 0; x < r.proj.Width; x++ {
		hit := r.caster.CastColumn(cam.X, cam.Y, cam.Heading, x)

		floorStart := r.proj.CenterRow() + 1
		if hit.Hit {
			floorStart = r.drawWall(fb, x, hit, scene.Wall) + 1
		} else {
			stats.NoHitColumns++
		}
		r.drawFloorAndCeiling(fb, x, floorStart, hit, cam.X, cam.Y, scene.Floor, scene.Ceiling)
	}
	stats.RaycastTime = time.Since(start)
	stats.NearestWall = nearestDepth(r.caster.Depth())

	start = time.Now()
	stats.SpritesVisible, stats.SpritesDrawn = r.sprites.Draw(fb, scene.Sprites, r.caster.Depth(), cam.X, cam.Y, cam.Heading)
	stats.SpriteTime = time.Since(start)

	return stats
}

// FrameLoop owns the per-frame state: camera, scene, framebuffer and depth
// buffer. Step runs one frame; Run drives Step from a clock and input source.
type FrameLoop struct {
	camera   *Camera
	scene    *Scene
	renderer *Renderer
	mover    *collision.CollisionSystem
	fb       *graphics.Framebuffer
	monitor  *monitoring.PerformanceMonitor
	last     FrameStats
}

// NewFrameLoop wires a renderer and collision resolution for scene. The
// monitor may be nil.
func NewFrameLoop(scene *Scene, cam *Camera, proj Projection, opts RendererOptions, monitor *monitoring.PerformanceMonitor) *FrameLoop {
	return &FrameLoop{
		camera:   cam,
		scene:    scene,
		renderer: NewRenderer(scene.Grid, proj, opts),
		mover:    collision.NewCollisionSystem(scene.Grid, proj.BlockSize),
		fb:       graphics.NewFramebuffer(proj.Width, proj.Height),
		monitor:  monitor,
	}
}

// Step moves the camera by one frame of intents and renders. The returned
// framebuffer is reused by the next Step.
func (fl *FrameLoop) Step(in Intents, elapsed float64) *graphics.Framebuffer {
	var timer *monitoring.FrameTimer
	if fl.monitor != nil {
		timer = fl.monitor.StartFrame()
	}

	fl.camera.Update(in, elapsed, fl.mover)
	fl.last = fl.renderer.Render(fl.fb, fl.camera, fl.scene)

	if fl.monitor != nil {
		fl.monitor.RecordRaycast(fl.last.RaycastTime)
		fl.monitor.RecordSpritePass(fl.last.SpriteTime)
		fl.monitor.UpdateRenderMetrics(fl.last.Columns, fl.last.NoHitColumns, fl.last.SpritesVisible, fl.last.SpritesDrawn)
		timer.EndFrame()
	}
	return fl.fb
}

// Camera returns the camera moved by Step
func (fl *FrameLoop) Camera() *Camera { return fl.camera }

// Scene returns the scene being rendered
func (fl *FrameLoop) Scene() *Scene { return fl.scene }

// Framebuffer returns the framebuffer of the last Step
func (fl *FrameLoop) Framebuffer() *graphics.Framebuffer { return fl.fb }

// Depth returns the depth buffer of the last Step
func (fl *FrameLoop) Depth() []float64 { return fl.renderer.Depth() }

// LastStats returns the statistics of the last Step
func (fl *FrameLoop) LastStats() FrameStats { return fl.last }

// Mover returns the collision system that resolves camera movement
func (fl *FrameLoop) Mover() *collision.CollisionSystem { return fl.mover }

// Monitor returns the performance monitor, possibly nil
func (fl *FrameLoop) Monitor() *monitoring.PerformanceMonitor { return fl.monitor }

// Projection returns the projection frames are rendered with
func (fl *FrameLoop) Projection() Projection { return fl.renderer.Projection() }
