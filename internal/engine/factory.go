package engine

import (
	"fmt"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/monitoring"
	"raycaster/internal/world"

	"github.com/sirupsen/logrus"
)

// ProjectionFromConfig builds the projection for a width x height target.
// Zero sizes fall back to the configured screen size.
func ProjectionFromConfig(cfg *config.Config, width, height int) Projection {
	if width <= 0 {
		width = cfg.GetScreenWidth()
	}
	if height <= 0 {
		height = cfg.GetScreenHeight()
	}
	return Projection{
		Width:      width,
		Height:     height,
		FOV:        cfg.GetFOV(),
		BlockSize:  cfg.GetBlockSize(),
		SpriteSize: cfg.GetSpriteSize(),
	}
}

// LoadMapData reads the configured map file, or returns the built-in map
// when none is configured.
func LoadMapData(cfg *config.Config) (*world.MapData, error) {
	if cfg.World.MapFile == "" {
		return world.DefaultMap(), nil
	}
	data, err := world.NewMapLoader().LoadMap(cfg.World.MapFile)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	return data, nil
}

// NewSceneFromConfig loads the map and textures and places the sprites and
// camera. Missing textures become placeholders; a bad map is an error.
func NewSceneFromConfig(cfg *config.Config) (*Scene, *Camera, error) {
	data, err := LoadMapData(cfg)
	if err != nil {
		return nil, nil, err
	}
	grid, err := data.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("build grid: %w", err)
	}

	textures := graphics.NewTextureManager(cfg.GetTextureSize(), cfg.GetChromaKey())
	scene := &Scene{
		Grid:    grid,
		Wall:    textures.Load("wall", cfg.Textures.Wall, graphics.KindWall),
		Floor:   textures.Load("floor", cfg.Textures.Floor, graphics.KindFloor),
		Ceiling: textures.Load("ceiling", cfg.Textures.Ceiling, graphics.KindCeiling),
	}
	spriteTex := textures.Load("sprite", cfg.Textures.Sprite, graphics.KindSprite)

	block := cfg.GetBlockSize()
	for _, spawn := range data.SpriteSpawns {
		x, y := world.CellCenter(spawn.X, spawn.Y, block)
		scene.Sprites = append(scene.Sprites, Sprite{X: x, Y: y, Texture: spriteTex})
	}

	camX, camY := cfg.Camera.StartX, cfg.Camera.StartY
	if data.HasStart {
		camX, camY = world.CellCenter(data.StartX, data.StartY, block)
	}
	cam := NewCamera(camX, camY, cfg.Camera.StartHeading, cfg.GetMoveSpeed(), cfg.GetRotSpeed())

	logger.Log.WithFields(logrus.Fields{
		"grid":    fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"sprites": len(scene.Sprites),
		"wall":    scene.Wall.Name(),
		"floor":   scene.Floor.Name(),
		"ceiling": scene.Ceiling.Name(),
		"start":   fmt.Sprintf("(%.1f, %.1f) %.1f°", camX, camY, cam.Heading),
	}).Info("[Scene] scene ready")
	return scene, cam, nil
}

// NewFrameLoopFromConfig builds a complete frame loop rendering at
// width x height; zero sizes use the configured screen size.
func NewFrameLoopFromConfig(cfg *config.Config, width, height int, monitor *monitoring.PerformanceMonitor) (*FrameLoop, error) {
	proj := ProjectionFromConfig(cfg, width, height)
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("build frame loop: %w", err)
	}
	scene, cam, err := NewSceneFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts := RendererOptions{
		HorizontalTint: cfg.Graphics.HorizontalTint,
		ClearColor:     cfg.GetClearColor(),
	}
	return NewFrameLoop(scene, cam, proj, opts, monitor), nil
}
