package game

import (
	"fmt"
	"math"
	"strings"
	"time"

	"raycaster/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const perfLogInterval = 3 * time.Second

// maybeLogPerfAlerts logs monitor alerts at most once per perfLogInterval
func (g *RaycastGame) maybeLogPerfAlerts(now time.Time) {
	monitor := g.loop.Monitor()
	if monitor == nil {
		return
	}
	if !g.lastPerfCheck.IsZero() && now.Sub(g.lastPerfCheck) < perfLogInterval {
		return
	}
	g.lastPerfCheck = now
	monitor.LogAlerts()
}

// overlayText builds the lines of the metrics overlay
func overlayText(loop *engine.FrameLoop, tps float64) string {
	cam := loop.Camera()
	stats := loop.LastStats()

	var b strings.Builder
	fmt.Fprintf(&b, "TPS %.1f\n", tps)
	if monitor := loop.Monitor(); monitor != nil {
		m := monitor.GetCurrentMetrics()
		fmt.Fprintf(&b, "render %.1f fps (%s raycast, %s sprites)\n", m.FramesPerSecond, m.RaycastTime.Round(time.Microsecond), m.SpriteTime.Round(time.Microsecond))
		fmt.Fprintf(&b, "mem %d MB\n", m.MemoryUsageMB)
	}
	fmt.Fprintf(&b, "pos %.1f, %.1f heading %.1f\n", cam.X, cam.Y, cam.Heading)
	fmt.Fprintf(&b, "sprites %d/%d visible/drawn  no-hit columns %d\n", stats.SpritesVisible, stats.SpritesDrawn, stats.NoHitColumns)
	if !math.IsInf(stats.NearestWall, 1) {
		fmt.Fprintf(&b, "nearest wall %.1f\n", stats.NearestWall)
	}
	b.WriteString("[/] overlay  [Tab] map  [R] reset stats  [Alt] strafe  [Esc] quit")
	return b.String()
}

func drawOverlay(screen *ebiten.Image, loop *engine.FrameLoop) {
	ebitenutil.DebugPrint(screen, overlayText(loop, ebiten.ActualTPS()))
}
