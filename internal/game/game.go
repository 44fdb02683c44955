package game

import (
	"time"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
)

// RaycastGame presents a FrameLoop in an ebiten window. Update steps the
// loop at the configured tick rate; Draw uploads the framebuffer.
type RaycastGame struct {
	cfg  *config.Config
	loop *engine.FrameLoop

	pressed KeyState
	frame   *ebiten.Image

	showOverlay bool
	showMinimap bool

	slashKeyTracker keytracker.KeyStateTracker
	tabKeyTracker   keytracker.KeyStateTracker
	resetKeyTracker keytracker.KeyStateTracker

	lastPerfCheck time.Time
}

// NewRaycastGame creates the ebiten game for loop
func NewRaycastGame(cfg *config.Config, loop *engine.FrameLoop) *RaycastGame {
	return &RaycastGame{
		cfg:     cfg,
		loop:    loop,
		pressed: ebiten.IsKeyPressed,
	}
}

// tickSeconds is the simulated time of one Update
func (g *RaycastGame) tickSeconds() float64 {
	tps := g.cfg.Display.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// Update implements ebiten.Game
func (g *RaycastGame) Update() error {
	if g.pressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.slashKeyTracker.Observe(g.pressed(ebiten.KeySlash)) {
		g.showOverlay = !g.showOverlay
	}
	if g.tabKeyTracker.Observe(g.pressed(ebiten.KeyTab)) {
		g.showMinimap = !g.showMinimap
	}
	if g.resetKeyTracker.Observe(g.pressed(ebiten.KeyR)) {
		if monitor := g.loop.Monitor(); monitor != nil {
			monitor.Reset()
		}
	}

	g.loop.Step(ReadIntents(g.pressed), g.tickSeconds())
	g.maybeLogPerfAlerts(time.Now())
	return nil
}

// Draw implements ebiten.Game
func (g *RaycastGame) Draw(screen *ebiten.Image) {
	fb := g.loop.Framebuffer()
	if g.frame == nil || g.frame.Bounds().Dx() != fb.Width() || g.frame.Bounds().Dy() != fb.Height() {
		g.frame = ebiten.NewImage(fb.Width(), fb.Height())
	}
	g.frame.WritePixels(fb.Pix())
	screen.DrawImage(g.frame, nil)

	if g.showMinimap {
		drawMinimap(screen, g.loop)
	}
	if g.showOverlay {
		drawOverlay(screen, g.loop)
	}
}

// Layout implements ebiten.Game. The logical screen is the framebuffer size
// and ebiten scales it to the window.
func (g *RaycastGame) Layout(_, _ int) (int, int) {
	fb := g.loop.Framebuffer()
	return fb.Width(), fb.Height()
}
