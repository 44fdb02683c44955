package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// MapLoader handles loading world maps from text files.
//
// Format: one row per line, '#' comment lines and blank lines are skipped,
// spaces inside a row are ignored.
//
//	0 or .  passable
//	1-9     solid, the digit is the cell code
//	@       player start (passable)
//	S       sprite spawn at the cell centre (passable)
type MapLoader struct{}

// SpriteSpawn represents a sprite spawn cell from the map
type SpriteSpawn struct {
	X, Y int
}

// MapData contains the loaded map information
type MapData struct {
	Width        int
	Height       int
	Cells        []int // row-major cell codes
	SpriteSpawns []SpriteSpawn
	StartX       int
	StartY       int
	HasStart     bool
}

// NewMapLoader creates a new map loader
func NewMapLoader() *MapLoader {
	return &MapLoader{}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	data, err := ml.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"map":     mapPath,
		"width":   data.Width,
		"height":  data.Height,
		"sprites": len(data.SpriteSpawns),
	}).Info("[MapLoader] map loaded")
	return data, nil
}

// Parse reads a map from r
func (ml *MapLoader) Parse(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	return ml.ParseLines(lines)
}

// ParseLines converts raw map lines into MapData
func (ml *MapLoader) ParseLines(lines []string) (*MapData, error) {
	data := &MapData{}

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		// Skip empty lines and comment lines (lines starting with #)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		y := data.Height
		row := make([]int, 0, len(line))
		for _, r := range line {
			if unicode.IsSpace(r) {
				continue
			}
			x := len(row)
			switch {
			case r == '.' || r == '0':
				row = append(row, 0)
			case r >= '1' && r <= '9':
				row = append(row, int(r-'0'))
			case r == '@':
				if data.HasStart {
					return nil, fmt.Errorf("line %d: second player start at (%d, %d)", lineNo+1, x, y)
				}
				data.StartX, data.StartY, data.HasStart = x, y, true
				row = append(row, 0)
			case r == 'S':
				data.SpriteSpawns = append(data.SpriteSpawns, SpriteSpawn{X: x, Y: y})
				row = append(row, 0)
			default:
				return nil, fmt.Errorf("line %d: unknown map symbol %q", lineNo+1, r)
			}
		}

		if data.Height == 0 {
			data.Width = len(row)
		} else if len(row) != data.Width {
			return nil, fmt.Errorf("line %d: %d cells, expected %d: %w", lineNo+1, len(row), data.Width, ErrRaggedMap)
		}
		data.Cells = append(data.Cells, row...)
		data.Height++
	}

	if data.Height == 0 || data.Width == 0 {
		return nil, ErrEmptyMap
	}
	return data, nil
}

// Grid builds the occupancy grid for the map. A border with gaps is allowed
// but logged, since rays leaving the grid produce columns without a wall.
func (md *MapData) Grid() (*Grid, error) {
	grid, err := NewGrid(md.Width, md.Height, md.Cells)
	if err != nil {
		return nil, err
	}
	if !grid.BorderSolid() {
		logger.Log.WithField("size", fmt.Sprintf("%dx%d", md.Width, md.Height)).
			Warn("[MapLoader] map border is not fully solid")
	}
	return grid, nil
}

// CellCenter returns the world coordinates of the centre of a cell
func CellCenter(cellX, cellY int, blockSize float64) (float64, float64) {
	return float64(cellX)*blockSize + blockSize/2, float64(cellY)*blockSize + blockSize/2
}

// DefaultMap returns the built-in 20x20 reference map with the player start
// at (1,1) and ten sprites.
func DefaultMap() *MapData {
	data, err := NewMapLoader().ParseLines(defaultMapRows)
	if err != nil {
		panic("default map is malformed: " + err.Error())
	}
	return data
}

var defaultMapRows = []string{
	"11111111111111111111",
	"1@000010000000000001",
	"100000100000000000S1",
	"100S00100000000000S1",
	"10000010000011111001",
	"100S0010000100001001",
	"10000010000011001001",
	"11101110000001010001",
	"10000000000010010001",
	"10000000000100011001",
	"10000000001SSS001001",
	"10000000000000011001",
	"10001111100000010001",
	"1000S000100000011001",
	"10000010100000001001",
	"10000010100000011001",
	"10000011100000010001",
	"11100S000000S0000001",
	"10000000000000001001",
	"11111111111111111111",
}
