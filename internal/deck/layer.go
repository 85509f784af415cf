package deck

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Layer is one entry of the ordered layer list handed to Deck.SetProps.
type Layer interface {
	// ID identifies the layer for picking filters.
	ID() string

	// Draw renders the layer into dst using the viewport.
	Draw(dst *core.Screen, vp Viewport)
}

// Picker is implemented by layers that answer picking queries.
type Picker interface {
	Layer

	// Pick returns the index of the topmost object under the pixel, within
	// radius pixels.
	Pick(vp Viewport, px core.Vec2, radius float64) (index int, ok bool)

	// Object returns the object at index.
	Object(index int) any
}

// Polygon is a boundary polygon. Rings[0] is the outer ring, further rings
// are holes. Coordinates are longitude/latitude.
type Polygon struct {
	ID         string
	Rings      [][]core.Vec2
	Properties map[string]string
}

// Outer returns the outer ring.
func (p Polygon) Outer() []core.Vec2 {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// Contains reports whether a world point lies inside the polygon, honouring
// holes.
func (p Polygon) Contains(pt core.Vec2) bool {
	if !core.PointInRing(p.Outer(), pt) {
		return false
	}
	for _, hole := range p.Rings[1:] {
		if core.PointInRing(hole, pt) {
			return false
		}
	}
	return true
}

// PolygonLayer draws filled polygons, like a GeoJSON polygon layer.
type PolygonLayer struct {
	LayerID   string
	Polygons  []Polygon
	Pickable  bool
	Fill      rune
	FillColor core.Color
	LineColor core.Color
}

// ID implements Layer.
func (l *PolygonLayer) ID() string {
	return l.LayerID
}

// Draw implements Layer. Cells whose center falls inside a polygon are
// filled, then each ring is outlined.
func (l *PolygonLayer) Draw(dst *core.Screen, vp Viewport) {
	fill := l.Fill
	if fill == 0 {
		fill = '░'
	}

	for _, poly := range l.Polygons {
		minC, minR, maxC, maxR, ok := l.cellBounds(poly, vp, dst)
		if !ok {
			continue
		}
		for row := minR; row <= maxR; row++ {
			for col := minC; col <= maxC; col++ {
				if poly.Contains(vp.Unproject(vp.CellCenter(col, row))) {
					dst.SetColored(col, row, fill, l.FillColor)
				}
			}
		}
		for _, ring := range poly.Rings {
			l.drawRing(dst, vp, ring)
		}
	}
}

func (l *PolygonLayer) cellBounds(poly Polygon, vp Viewport, dst *core.Screen) (minC, minR, maxC, maxR int, ok bool) {
	minPx := core.V(math.Inf(1), math.Inf(1))
	maxPx := core.V(math.Inf(-1), math.Inf(-1))
	for _, pt := range poly.Outer() {
		px, projected := vp.Project(pt)
		if !projected {
			return 0, 0, 0, 0, false
		}
		minPx = core.V(math.Min(minPx.X, px.X), math.Min(minPx.Y, px.Y))
		maxPx = core.V(math.Max(maxPx.X, px.X), math.Max(maxPx.Y, px.Y))
	}
	if math.IsInf(minPx.X, 1) {
		return 0, 0, 0, 0, false
	}

	minC, minR = vp.PixelToCell(minPx)
	maxC, maxR = vp.PixelToCell(maxPx)
	minC, minR = max(minC, 0), max(minR, 0)
	maxC, maxR = min(maxC, dst.Width()-1), min(maxR, dst.Height()-1)
	return minC, minR, maxC, maxR, minC <= maxC && minR <= maxR
}

func (l *PolygonLayer) drawRing(dst *core.Screen, vp Viewport, ring []core.Vec2) {
	for i := range ring {
		a, okA := vp.Project(ring[i])
		b, okB := vp.Project(ring[(i+1)%len(ring)])
		if !okA || !okB {
			continue
		}
		c0, r0 := vp.PixelToCell(a)
		c1, r1 := vp.PixelToCell(b)
		dst.DrawLine(c0, r0, c1, r1, '▓', l.LineColor)
	}
}

// Pick implements Picker. Later polygons are drawn on top, so they win.
func (l *PolygonLayer) Pick(vp Viewport, px core.Vec2, radius float64) (int, bool) {
	if !l.Pickable {
		return 0, false
	}
	world := vp.Unproject(px)
	for i := len(l.Polygons) - 1; i >= 0; i-- {
		poly := l.Polygons[i]
		if poly.Contains(world) {
			return i, true
		}
		if radius > 0 && l.edgeWithin(poly, vp, px, radius) {
			return i, true
		}
	}
	return 0, false
}

func (l *PolygonLayer) edgeWithin(poly Polygon, vp Viewport, px core.Vec2, radius float64) bool {
	ring := poly.Outer()
	for i := range ring {
		a, okA := vp.Project(ring[i])
		b, okB := vp.Project(ring[(i+1)%len(ring)])
		if !okA || !okB {
			continue
		}
		if core.ClosestPointOnSegment(px, a, b).Dist(px) <= radius {
			return true
		}
	}
	return false
}

// Object implements Picker.
func (l *PolygonLayer) Object(index int) any {
	return l.Polygons[index]
}

// Icon is one sprite drawn by an IconLayer.
type Icon struct {
	Name     string
	Glyph    rune
	Color    core.Color
	Position core.Vec2 // world coordinate
	Offset   core.Vec2 // pixels from Position in icon space, y-up
	Angle    float64   // counter-clockwise degrees
	Z        int       // higher is drawn later
}

// IconLayer draws glyph sprites rotated around their anchor.
type IconLayer struct {
	LayerID string
	Icons   []Icon
}

// ID implements Layer.
func (l *IconLayer) ID() string {
	return l.LayerID
}

// Draw implements Layer.
func (l *IconLayer) Draw(dst *core.Screen, vp Viewport) {
	icons := make([]Icon, len(l.Icons))
	copy(icons, l.Icons)
	sort.SliceStable(icons, func(i, j int) bool {
		return icons[i].Z < icons[j].Z
	})

	for _, icon := range icons {
		px, ok := IconPixel(vp, icon)
		if !ok {
			continue
		}
		col, row := vp.PixelToCell(px)
		dst.SetColored(col, row, icon.Glyph, icon.Color)
	}
}

// IconPixel returns the screen pixel where the icon glyph lands.
func IconPixel(vp Viewport, icon Icon) (core.Vec2, bool) {
	anchor, ok := vp.Project(icon.Position)
	if !ok {
		return core.Vec2{}, false
	}
	off := icon.Offset.Rotate(icon.Angle)
	return core.V(anchor.X+off.X, anchor.Y-off.Y), true
}
