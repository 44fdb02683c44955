package test

import (
	"context"
	"image/color"
	"math"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/graphics"
	"raycaster/internal/monitoring"
	"raycaster/internal/world"
)

// TestRendererIntegration drives the full stack from config.yaml without a
// window or terminal.
func TestRendererIntegration(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("load config.yaml: %v", err)
	}

	t.Run("Shipped Assets", func(t *testing.T) {
		testShippedAssets(t, cfg)
	})

	t.Run("Scene From Config", func(t *testing.T) {
		testSceneFromConfig(t, cfg)
	})

	t.Run("Walking Session", func(t *testing.T) {
		testWalkingSession(t, cfg)
	})

	t.Run("Run Loop", func(t *testing.T) {
		testRunLoop(t, cfg)
	})
}

func testShippedAssets(t *testing.T, cfg *config.Config) {
	tm := graphics.NewTextureManager(cfg.GetTextureSize(), cfg.GetChromaKey())
	for name, path := range map[string]string{
		"wall":    cfg.Textures.Wall,
		"floor":   cfg.Textures.Floor,
		"ceiling": cfg.Textures.Ceiling,
		"sprite":  cfg.Textures.Sprite,
	} {
		tex, err := tm.LoadFile(name, path)
		if err != nil {
			t.Fatalf("texture %s (%s): %v", name, path, err)
		}
		if tex.Size() != cfg.GetTextureSize() {
			t.Errorf("texture %s size %d, want %d", name, tex.Size(), cfg.GetTextureSize())
		}
	}

	sprite := tm.Get("sprite")
	if !sprite.IsTransparent(sprite.At(0, 0)) {
		t.Error("sprite corner should be chroma key")
	}
	if sprite.IsTransparent(sprite.At(32, 32)) {
		t.Error("sprite centre should be opaque")
	}
}

func testSceneFromConfig(t *testing.T, cfg *config.Config) {
	scene, cam, err := engine.NewSceneFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewSceneFromConfig: %v", err)
	}
	if scene.Grid.Width() != 20 || scene.Grid.Height() != 20 {
		t.Fatalf("grid %dx%d, want 20x20", scene.Grid.Width(), scene.Grid.Height())
	}
	if !scene.Grid.BorderSolid() {
		t.Error("shipped map should be enclosed")
	}
	if len(scene.Sprites) != 10 {
		t.Errorf("expected 10 sprites, got %d", len(scene.Sprites))
	}
	if cam.X != 96 || cam.Y != 96 || cam.Heading != 45 {
		t.Errorf("camera (%v,%v) %v, want (96,96) 45", cam.X, cam.Y, cam.Heading)
	}
}

func testWalkingSession(t *testing.T, cfg *config.Config) {
	monitor := monitoring.NewPerformanceMonitor()
	loop, err := engine.NewFrameLoopFromConfig(cfg, 160, 100, monitor)
	if err != nil {
		t.Fatalf("NewFrameLoopFromConfig: %v", err)
	}
	grid := loop.Scene().Grid
	block := cfg.GetBlockSize()

	script := []engine.Intents{
		{Forward: true},
		{Forward: true, Left: true},
		{Right: true},
		{Back: true},
		{Left: true, Strafe: true},
		{Right: true, Strafe: true},
		{},
	}
	const framesPerIntent = 30
	dt := 1.0 / 60

	frames := 0
	for _, in := range script {
		for i := 0; i < framesPerIntent; i++ {
			loop.Step(in, dt)
			frames++

			cam := loop.Camera()
			cx, cy := int(math.Floor(cam.X/block)), int(math.Floor(cam.Y/block))
			if grid.IsSolid(cx, cy) {
				t.Fatalf("frame %d: camera entered solid cell (%d,%d)", frames, cx, cy)
			}

			stats := loop.LastStats()
			if stats.NoHitColumns != 0 {
				t.Fatalf("frame %d: %d columns escaped an enclosed map", frames, stats.NoHitColumns)
			}
			for x, d := range loop.Depth() {
				if math.IsNaN(d) || d < 0 || math.IsInf(d, 0) {
					t.Fatalf("frame %d column %d: bad depth %v", frames, x, d)
				}
			}
		}
	}

	m := monitor.GetCurrentMetrics()
	if m.Columns != 160 {
		t.Errorf("metrics columns = %d, want 160", m.Columns)
	}
	stats := monitor.GetDetailedStats()
	if got := stats["frame_count"]; got != uint64(frames) {
		t.Errorf("frame_count = %v, want %d", got, frames)
	}
	for _, alert := range monitor.CheckPerformanceAlerts() {
		if alert.Type == "open_border" {
			t.Errorf("unexpected alert: %+v", alert)
		}
	}
}

type scriptedInput struct {
	frames int
	limit  int
}

func (s *scriptedInput) Poll() (engine.Intents, bool) {
	if s.frames >= s.limit {
		return engine.Intents{}, true
	}
	s.frames++
	return engine.Intents{Forward: s.frames%2 == 0, Right: true}, false
}

type tickClock struct{ now float64 }

func (c *tickClock) Seconds() float64 {
	c.now += 1.0 / 30
	return c.now
}

type lastFrame struct {
	count int
	mid   color.RGBA
}

func (p *lastFrame) Present(fb *graphics.Framebuffer) error {
	p.count++
	p.mid = fb.At(fb.Width()/2, fb.Height()/2)
	return nil
}

func testRunLoop(t *testing.T, cfg *config.Config) {
	loop, err := engine.NewFrameLoopFromConfig(cfg, 64, 40, nil)
	if err != nil {
		t.Fatalf("NewFrameLoopFromConfig: %v", err)
	}

	input := &scriptedInput{limit: 45}
	presenter := &lastFrame{}
	if err := loop.Run(context.Background(), input, &tickClock{}, presenter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if presenter.count != 45 {
		t.Fatalf("presented %d frames, want 45", presenter.count)
	}
	if presenter.mid == cfg.GetClearColor() {
		t.Error("centre pixel should be drawn over the clear colour")
	}
}

// Parsing the shipped map directly must agree with the built-in copy.
func TestShippedMapMatchesDefault(t *testing.T) {
	fromFile, err := world.NewMapLoader().LoadMap("assets/maps/default.map")
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	builtin := world.DefaultMap()
	if fromFile.Width != builtin.Width || fromFile.Height != builtin.Height {
		t.Fatalf("size %dx%d, want %dx%d", fromFile.Width, fromFile.Height, builtin.Width, builtin.Height)
	}
	for i := range builtin.Cells {
		if fromFile.Cells[i] != builtin.Cells[i] {
			t.Fatalf("cell %d differs: %d vs %d", i, fromFile.Cells[i], builtin.Cells[i])
		}
	}
}
