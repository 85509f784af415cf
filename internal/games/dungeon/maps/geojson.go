package maps

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
)

// ParseGeoJSON reads Polygon and MultiPolygon geometries from a
// FeatureCollection, a Feature or a bare geometry. Other geometry types are
// skipped.
func ParseGeoJSON(data []byte) (Map, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Map{}, fmt.Errorf("geojson unmarshal: %w", err)
	}

	var (
		m        Map
		features []*geojson.Feature
	)
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Map{}, fmt.Errorf("geojson unmarshal: %w", err)
		}
		if name, ok := fc.ExtraMembers["name"].(string); ok {
			m.ID, m.Name = name, name
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Map{}, fmt.Errorf("geojson unmarshal: %w", err)
		}
		features = []*geojson.Feature{f}
	case "Polygon", "MultiPolygon":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Map{}, fmt.Errorf("geojson unmarshal: %w", err)
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	default:
		return Map{}, fmt.Errorf("geojson: unsupported root type %q", head.Type)
	}

	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		props := stringProps(f.Properties)
		id := props["id"]
		if id == "" && f.ID != nil {
			id = fmt.Sprint(f.ID)
		}
		if id == "" {
			id = fmt.Sprintf("feature-%d", i)
		}

		polys := geometryPolygons(f.Geometry)
		for j, rings := range polys {
			pid := id
			if len(polys) > 1 {
				pid = fmt.Sprintf("%s/%d", id, j)
			}
			m.Polygons = append(m.Polygons, deck.Polygon{ID: pid, Rings: rings, Properties: props})
		}
	}
	return m, nil
}

func geometryPolygons(g orb.Geometry) [][][]core.Vec2 {
	switch g := g.(type) {
	case orb.Polygon:
		return [][][]core.Vec2{toRings(g)}
	case orb.MultiPolygon:
		out := make([][][]core.Vec2, 0, len(g))
		for _, poly := range g {
			out = append(out, toRings(poly))
		}
		return out
	default:
		return nil
	}
}

func toRings(poly orb.Polygon) [][]core.Vec2 {
	rings := make([][]core.Vec2, 0, len(poly))
	for _, ring := range poly {
		pts := make([]core.Vec2, 0, len(ring))
		for _, p := range ring {
			pts = append(pts, core.V(p.X(), p.Y()))
		}
		rings = append(rings, pts)
	}
	return rings
}

func stringProps(props geojson.Properties) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = fmt.Sprint(v)
	}
	return out
}
