// Package core provides fundamental types shared by the games, the renderer
// and the platform layer. It has no external dependencies so that game logic
// stays pure and testable.
package core

import "math"

// Vec2 is a 2-component coordinate. Depending on context it holds a world
// coordinate (longitude/latitude, metres) or a screen pixel.
type Vec2 struct {
	X, Y float64
}

// V creates a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Rotate rotates v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
// The projection parameter is clamped to [0, 1]; a degenerate segment
// yields a.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := ClampF(p.Sub(a).Dot(ab)/denom, 0, 1)
	return a.Add(ab.Scale(t))
}

// NearestPointOnLine returns the point of the polyline nearest to p and its
// distance. Ties keep the earliest segment. A single-point line returns that
// point; an empty line returns p with ok=false.
func NearestPointOnLine(line []Vec2, p Vec2) (nearest Vec2, dist float64, ok bool) {
	switch len(line) {
	case 0:
		return p, 0, false
	case 1:
		return line[0], p.Dist(line[0]), true
	}

	dist = math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		c := ClosestPointOnSegment(p, line[i], line[i+1])
		if d := p.Dist(c); d < dist {
			nearest, dist = c, d
		}
	}
	return nearest, dist, true
}

// NearestPointOnRing is NearestPointOnLine for a closed ring. The closing
// segment is added when the ring is not explicitly closed.
func NearestPointOnRing(ring []Vec2, p Vec2) (Vec2, float64, bool) {
	if len(ring) > 2 && ring[0] != ring[len(ring)-1] {
		closed := make([]Vec2, len(ring)+1)
		copy(closed, ring)
		closed[len(ring)] = ring[0]
		ring = closed
	}
	return NearestPointOnLine(ring, p)
}

// PointInRing reports whether p lies inside the ring using the even-odd rule.
func PointInRing(ring []Vec2, p Vec2) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		return 0
	}
	return deg + 0 // drop negative zero
}

// Rect represents an axis-aligned cell rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
