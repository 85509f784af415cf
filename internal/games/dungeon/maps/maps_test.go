package maps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestDefaultMap(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if m.ID != "crypt" {
		t.Errorf("ID = %q, expected crypt", m.ID)
	}
	// Four polygons plus one MultiPolygon member.
	if len(m.Polygons) != 5 {
		t.Fatalf("expected 5 polygons, got %d", len(m.Polygons))
	}

	hall := m.Polygons[4]
	if hall.ID != "ring-hall" || len(hall.Rings) != 2 {
		t.Errorf("hall = %s with %d rings, expected ring-hall with a hole", hall.ID, len(hall.Rings))
	}

	for _, p := range m.Polygons {
		if p.Contains(core.V(0, 0)) {
			t.Errorf("spawn point must be free, but %s contains it", p.ID)
		}
	}
}

func TestParseGeoJSONBareGeometry(t *testing.T) {
	data := []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`)
	m, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON() failed: %v", err)
	}
	if len(m.Polygons) != 1 || len(m.Polygons[0].Outer()) != 4 {
		t.Errorf("unexpected polygons %+v", m.Polygons)
	}
}

func TestParseGeoJSONSkipsOtherGeometries(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"id":"p"},"geometry":{"type":"Point","coordinates":[0,0]}},
		{"type":"Feature","properties":null,"geometry":null}
	]}`)
	m, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON() failed: %v", err)
	}
	if len(m.Polygons) != 0 {
		t.Errorf("expected no polygons, got %d", len(m.Polygons))
	}
}

func TestParseGeoJSONMultiPolygonIDs(t *testing.T) {
	data := []byte(`{"type":"Feature","id":7,"properties":{"kind":"wall"},"geometry":{"type":"MultiPolygon","coordinates":[
		[[[0,0],[1,0],[1,1],[0,0]]],
		[[[2,2],[3,2],[3,3],[2,2]]]
	]}}`)
	m, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON() failed: %v", err)
	}
	if len(m.Polygons) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(m.Polygons))
	}
	if m.Polygons[0].ID != "7/0" || m.Polygons[1].ID != "7/1" {
		t.Errorf("IDs = %q, %q; expected 7/0, 7/1", m.Polygons[0].ID, m.Polygons[1].ID)
	}
	if m.Polygons[1].Properties["kind"] != "wall" {
		t.Errorf("properties not carried: %v", m.Polygons[1].Properties)
	}
	if got := m.Polygons[1].Outer()[1]; got != core.V(3, 2) {
		t.Errorf("second vertex = %v, expected (3, 2)", got)
	}
}

func TestParseGeoJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unsupported root", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`},
		{"bad coordinates", `{"type":"Polygon","coordinates":"x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseGeoJSON([]byte(tc.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: cellar
name: The Cellar
spawn: [0.0001, 0.0002]
polygons:
  - id: barrel
    kind: prop
    rings:
      - [[0, 0], [0.001, 0], [0.001, 0.001], [0, 0]]
  - rings:
      - [[1, 1], [2, 1], [2, 2], [1, 1]]
`)
	m, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if m.ID != "cellar" || m.Spawn != core.V(0.0001, 0.0002) {
		t.Errorf("unexpected header %+v", m)
	}
	if len(m.Polygons) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(m.Polygons))
	}
	if m.Polygons[0].Properties["kind"] != "prop" {
		t.Error("kind should be copied into properties")
	}
	if m.Polygons[1].ID != "polygon-1" {
		t.Errorf("unnamed polygon ID = %q", m.Polygons[1].ID)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "hall.yml")
	if err := os.WriteFile(yamlPath, []byte("polygons:\n  - rings: [[[0,0],[1,0],[1,1],[0,0]]]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if m.ID != "hall" || m.FilePath != yamlPath {
		t.Errorf("ID/FilePath = %q/%q", m.ID, m.FilePath)
	}

	emptyPath := filepath.Join(dir, "empty.geojson")
	if err := os.WriteFile(emptyPath, []byte(`{"type":"FeatureCollection","features":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(emptyPath); !errors.Is(err, ErrNoPolygons) {
		t.Errorf("expected ErrNoPolygons, got %v", err)
	}

	txtPath := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(txtPath); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if m.ID != "crypt" {
		t.Errorf("expected embedded map, got %q", m.ID)
	}
}
