// Package deck is a small layer-composition renderer for the terminal.
// It owns a Web-Mercator viewport, draws an ordered list of layers into a
// core.Screen and answers picking queries ("what lies under this pixel").
package deck

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// TileSize is the world size in pixels at zoom 0.
const TileSize = 512

// MaxLatitude is the Web-Mercator latitude limit.
const MaxLatitude = 85.051129

// worldMeters is the Mercator extent of the world along one axis.
const worldMeters = 2 * math.Pi * orb.EarthRadius

// ViewState positions the camera over the map.
type ViewState struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Zoom      float64 `yaml:"zoom"`
	Pitch     float64 `yaml:"pitch"`   // accepted, top-down rendering ignores it
	Bearing   float64 `yaml:"bearing"` // degrees, clockwise map rotation
}

// Viewport projects between world coordinates (longitude, latitude) and
// screen pixels. Pixels are y-down, origin at the top-left of the screen.
// A terminal cell covers CellW x CellH pixels.
type Viewport struct {
	view   ViewState
	cols   int
	rows   int
	cellW  float64
	cellH  float64
	scale  float64
	center core.Vec2 // view center in world pixels
}

// NewViewport creates a viewport for a cols x rows cell screen.
func NewViewport(view ViewState, cols, rows int, cellW, cellH float64) Viewport {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	vp := Viewport{
		view:  view,
		cols:  max(cols, 0),
		rows:  max(rows, 0),
		cellW: cellW,
		cellH: cellH,
		scale: TileSize * math.Pow(2, view.Zoom),
	}
	vp.center, _ = vp.worldPixel(core.V(view.Longitude, view.Latitude))
	return vp
}

// View returns the view state the viewport was built from.
func (v Viewport) View() ViewState {
	return v.view
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.cols > 0 && v.rows > 0
}

// Width returns the viewport width in pixels.
func (v Viewport) Width() float64 {
	return float64(v.cols) * v.cellW
}

// Height returns the viewport height in pixels.
func (v Viewport) Height() float64 {
	return float64(v.rows) * v.cellH
}

// worldPixel maps a coordinate to world pixels: spherical Mercator metres
// scaled so the whole world spans scale pixels, y-down.
func (v Viewport) worldPixel(lngLat core.Vec2) (core.Vec2, bool) {
	if math.Abs(lngLat.Y) > MaxLatitude || math.IsNaN(lngLat.X) || math.IsNaN(lngLat.Y) {
		return core.Vec2{}, false
	}
	m := project.WGS84.ToMercator(orb.Point{lngLat.X, lngLat.Y})
	return core.V(
		(0.5+m.X()/worldMeters)*v.scale,
		(0.5-m.Y()/worldMeters)*v.scale,
	), true
}

func (v Viewport) lngLat(world core.Vec2) core.Vec2 {
	m := orb.Point{
		(world.X/v.scale - 0.5) * worldMeters,
		(0.5 - world.Y/v.scale) * worldMeters,
	}
	p := project.Mercator.ToWGS84(m)
	return core.V(p.Lon(), p.Lat())
}

// Project converts a world coordinate into a screen pixel. It fails when the
// viewport is empty or the latitude is outside the Mercator range.
func (v Viewport) Project(lngLat core.Vec2) (core.Vec2, bool) {
	if !v.Valid() {
		return core.Vec2{}, false
	}
	w, ok := v.worldPixel(lngLat)
	if !ok {
		return core.Vec2{}, false
	}
	off := w.Sub(v.center)
	if v.view.Bearing != 0 {
		// Screen space is y-down, so a clockwise map rotation is a
		// counter-clockwise Rotate on the flipped offset.
		off = core.V(off.X, -off.Y).Rotate(v.view.Bearing)
		off.Y = -off.Y
	}
	return core.V(v.Width()/2+off.X, v.Height()/2+off.Y), true
}

// Unproject converts a screen pixel into a world coordinate.
func (v Viewport) Unproject(px core.Vec2) core.Vec2 {
	off := core.V(px.X-v.Width()/2, px.Y-v.Height()/2)
	if v.view.Bearing != 0 {
		off = core.V(off.X, -off.Y).Rotate(-v.view.Bearing)
		off.Y = -off.Y
	}
	return v.lngLat(v.center.Add(off))
}

// CellCenter returns the pixel at the center of cell (col, row).
func (v Viewport) CellCenter(col, row int) core.Vec2 {
	return core.V((float64(col)+0.5)*v.cellW, (float64(row)+0.5)*v.cellH)
}

// PixelToCell returns the cell containing the pixel.
func (v Viewport) PixelToCell(px core.Vec2) (col, row int) {
	return int(math.Floor(px.X / v.cellW)), int(math.Floor(px.Y / v.cellH))
}
