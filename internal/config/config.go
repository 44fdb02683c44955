package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Textures TexturesConfig `yaml:"textures"`
	Terminal TerminalConfig `yaml:"terminal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	BlockSize float64 `yaml:"block_size"`
	MapFile   string  `yaml:"map_file"` // Empty means the built-in reference map
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`     // World units per second
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per second
}

// CameraConfig holds the field of view and the start pose used when the map
// file has no '@' marker.
type CameraConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // Degrees
	StartX       float64 `yaml:"start_x"`
	StartY       float64 `yaml:"start_y"`
	StartHeading float64 `yaml:"start_heading"` // Degrees
}

type GraphicsConfig struct {
	SpriteSize     float64 `yaml:"sprite_size"`
	TextureSize    int     `yaml:"texture_size"`
	HorizontalTint float64 `yaml:"horizontal_tint"` // RGB factor for horizontally-struck walls
	ChromaKey      [3]int  `yaml:"chroma_key"`
	ClearColor     [3]int  `yaml:"clear_color"`
}

type TexturesConfig struct {
	Wall    string `yaml:"wall"`
	Floor   string `yaml:"floor"`
	Ceiling string `yaml:"ceiling"`
	Sprite  string `yaml:"sprite"`
}

type TerminalConfig struct {
	MaxColumns int    `yaml:"max_columns"`
	KeyHoldMS  int    `yaml:"key_hold_ms"`
	LogFile    string `yaml:"log_file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the reference configuration: 1024x640, 64 unit blocks,
// 60 degree field of view.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 640,
			WindowTitle:  "Ray Caster",
			TPS:          60,
		},
		World: WorldConfig{
			BlockSize: 64,
		},
		Movement: MovementConfig{
			MoveSpeed:     200,
			RotationSpeed: 200,
		},
		Camera: CameraConfig{
			FieldOfView:  60,
			StartX:       96,
			StartY:       96,
			StartHeading: 45,
		},
		Graphics: GraphicsConfig{
			SpriteSize:     64,
			TextureSize:    64,
			HorizontalTint: 0.5,
			ChromaKey:      [3]int{0, 255, 0},
		},
		Terminal: TerminalConfig{
			MaxColumns: 200,
			KeyHoldMS:  120,
			LogFile:    "termcast.log",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads the configuration from a yaml file. Keys missing from the
// file keep their Default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}

	return config, nil
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the sizes the renderer allocates and divides by.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case !(c.World.BlockSize > 0):
		return fmt.Errorf("%w: world.block_size %v", ErrInvalidConfig, c.World.BlockSize)
	case !(c.Camera.FieldOfView > 0 && c.Camera.FieldOfView < 360):
		return fmt.Errorf("%w: camera.field_of_view %v", ErrInvalidConfig, c.Camera.FieldOfView)
	case c.Graphics.TextureSize <= 0:
		return fmt.Errorf("%w: graphics.texture_size %d", ErrInvalidConfig, c.Graphics.TextureSize)
	}
	return nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetBlockSize() float64 {
	return c.World.BlockSize
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetSpriteSize() float64 {
	return c.Graphics.SpriteSize
}

func (c *Config) GetTextureSize() int {
	return c.Graphics.TextureSize
}

func (c *Config) GetChromaKey() color.RGBA {
	return rgb(c.Graphics.ChromaKey)
}

func (c *Config) GetClearColor() color.RGBA {
	return rgb(c.Graphics.ClearColor)
}

func rgb(v [3]int) color.RGBA {
	return color.RGBA{uint8(v[0]), uint8(v[1]), uint8(v[2]), 255}
}
