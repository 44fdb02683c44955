package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/game"
	"raycaster/internal/logger"
	"raycaster/internal/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the yaml configuration")
	mapFile := flag.String("map", "", "Map file overriding world.map_file")
	flag.Parse()

	cwdErr := ensureRuntimeCWD(*configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.WithError(err).Warn("[Main] config not loaded, using defaults")
		cfg = config.Default()
	}
	if *mapFile != "" {
		cfg.World.MapFile = *mapFile
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if cwdErr != nil {
		logger.Log.WithError(cwdErr).Debug("[Main] staying in the current directory")
	}

	monitor := monitoring.NewPerformanceMonitor()
	if cfg.Display.TPS > 0 {
		// Alert when the frame rate falls below half the tick rate
		monitor.SetMinFPS(float64(cfg.Display.TPS) / 2)
	}

	loop, err := engine.NewFrameLoopFromConfig(cfg, cfg.GetScreenWidth(), cfg.GetScreenHeight(), monitor)
	if err != nil {
		logger.Log.WithError(err).Fatal("[Main] failed to build scene")
	}

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Display.TPS > 0 {
		ebiten.SetTPS(cfg.Display.TPS)
	}

	if err := ebiten.RunGame(game.NewRaycastGame(cfg, loop)); err != nil {
		logger.Log.WithError(err).Fatal("[Main] game exited with error")
	}

	logger.Log.WithFields(logrus.Fields(monitor.GetDetailedStats())).Info("[Main] session stats")
}

// ensureRuntimeCWD moves to the executable's directory when the config is not
// reachable from the current one, so relative asset paths resolve.
func ensureRuntimeCWD(configPath string) error {
	if filepath.IsAbs(configPath) {
		return nil
	}
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := os.Chdir(filepath.Dir(exe)); err != nil {
		return fmt.Errorf("change to executable dir: %w", err)
	}
	return nil
}
