// termcast renders the ray caster into a true-colour terminal.
//
//	go build -o termcast ./cmd/termcast
//	./termcast [--config config.yaml] [--map assets/maps/default.map]
//
// Arrows or WASD move and turn, Alt+Left/Right or ',' and '.' strafe,
// Esc or q quits. Logs go to terminal.log_file since stderr is the screen.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/monitoring"
	"raycaster/internal/term"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the yaml configuration")
	mapFile := flag.String("map", "", "Map file overriding world.map_file")
	flag.Parse()

	if err := run(*configPath, *mapFile); err != nil {
		fmt.Fprintln(os.Stderr, "termcast:", err)
		os.Exit(1)
	}
}

func run(configPath, mapFile string) error {
	cfg, cfgErr := config.LoadConfig(configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	if mapFile != "" {
		cfg.World.MapFile = mapFile
	}

	var logOut io.Writer = io.Discard
	if cfg.Terminal.LogFile != "" {
		f, err := os.OpenFile(cfg.Terminal.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format, logOut)
	if cfgErr != nil {
		logger.Log.WithError(cfgErr).Warn("[Main] config not loaded, using defaults")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	presenter := term.NewPresenter(screen, time.Duration(cfg.Terminal.KeyHoldMS)*time.Millisecond)
	defer presenter.Close()
	if cfg.Display.TPS > 0 {
		presenter.SetFrameInterval(time.Second / time.Duration(cfg.Display.TPS))
	}

	width, height := presenter.ViewSize(cfg.Terminal.MaxColumns)
	monitor := monitoring.NewPerformanceMonitor()
	loop, err := engine.NewFrameLoopFromConfig(cfg, width, height, monitor)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presenter.Start()
	err = loop.Run(ctx, presenter, engine.NewSystemClock(), &hud{Presenter: presenter, loop: loop})

	monitor.LogAlerts()
	logger.Log.WithFields(logrus.Fields(monitor.GetDetailedStats())).Info("[Main] session stats")
	return err
}

// hud refreshes the status line before each frame is shown
type hud struct {
	*term.Presenter
	loop *engine.FrameLoop
}

func (h *hud) Present(fb *graphics.Framebuffer) error {
	cam := h.loop.Camera()
	m := h.loop.Monitor().GetCurrentMetrics()
	h.SetStatus(fmt.Sprintf(" x %.0f  y %.0f  %3.0f°  %4.1f fps  sprites %d/%d  esc quits",
		cam.X, cam.Y, cam.Heading, m.FramesPerSecond, m.SpritesDrawn, m.SpritesVisible))
	return h.Presenter.Present(fb)
}
