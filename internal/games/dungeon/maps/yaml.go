package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Spawn    []float64     `yaml:"spawn,omitempty"`
	Polygons []YAMLPolygon `yaml:"polygons"`
}

// YAMLPolygon is one boundary polygon; Rings[0] is the outer ring.
type YAMLPolygon struct {
	ID    string            `yaml:"id"`
	Kind  string            `yaml:"kind,omitempty"`
	Rings [][][]float64     `yaml:"rings"`
	Props map[string]string `yaml:"props,omitempty"`
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := Map{ID: ym.ID, Name: ym.Name}
	if len(ym.Spawn) >= 2 {
		m.Spawn = core.V(ym.Spawn[0], ym.Spawn[1])
	}

	for i, yp := range ym.Polygons {
		rings, err := toRings(yp.Rings)
		if err != nil {
			return Map{}, fmt.Errorf("polygon %d: %w", i, err)
		}
		props := make(map[string]string, len(yp.Props)+1)
		for k, v := range yp.Props {
			props[k] = v
		}
		if yp.Kind != "" {
			props["kind"] = yp.Kind
		}
		id := yp.ID
		if id == "" {
			id = fmt.Sprintf("polygon-%d", i)
		}
		m.Polygons = append(m.Polygons, deck.Polygon{ID: id, Rings: rings, Properties: props})
	}
	return m, nil
}
