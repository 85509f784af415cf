// Package maps loads boundary maps for the dungeon game.
package maps

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
)

//go:embed assets/map.json
var defaultMapJSON []byte

// ErrNoPolygons is returned when a map file holds no usable polygon.
var ErrNoPolygons = errors.New("maps: no polygons")

// Map is a set of boundary polygons in longitude/latitude.
type Map struct {
	ID       string
	Name     string
	Spawn    core.Vec2
	Polygons []deck.Polygon
	FilePath string
}

// Default returns the embedded map.
func Default() (Map, error) {
	m, err := ParseGeoJSON(defaultMapJSON)
	if err != nil {
		return Map{}, fmt.Errorf("maps: embedded map: %w", err)
	}
	return m, nil
}

// Load returns the map at path, or the embedded map when path is empty.
func Load(path string) (Map, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile loads a map file, choosing the format by extension.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading %s: %w", path, err)
	}

	var m Map
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".geojson":
		m, err = ParseGeoJSON(data)
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	default:
		return Map{}, fmt.Errorf("maps: unsupported extension %q", ext)
	}
	if err != nil {
		return Map{}, fmt.Errorf("maps: parsing %s: %w", path, err)
	}
	if len(m.Polygons) == 0 {
		return Map{}, fmt.Errorf("maps: %s: %w", path, ErrNoPolygons)
	}

	m.FilePath = path
	if m.ID == "" {
		m.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// SupportedExtensions returns the file extensions LoadFile understands.
func SupportedExtensions() []string {
	return []string{".json", ".geojson", ".yaml", ".yml"}
}
