package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Contact describes a body hitting the ground bounds.
type Contact struct {
	Body   *Body
	Normal core.Vec2 // points back into the ground area
	Speed  float64   // approach speed along the normal before the bounce
}

// WorldOptions configures a World.
type WorldOptions struct {
	// GroundHalfExtent bounds the ground area to [-h, h] on both axes.
	// Zero means unbounded.
	GroundHalfExtent  float64
	GroundRestitution float64
}

// World steps a set of bodies. Bodies do not collide with each other.
//
// A bounded world keeps a collision space holding four wall objects around
// the ground area and one object per dynamic body. Space coordinates are
// world coordinates shifted by offset so the whole grid is non-negative.
type World struct {
	bounds      float64
	restitution float64
	bodies      []*Body

	space   *resolv.Space
	offset  float64
	objects map[*Body]*resolv.Object
	walls   map[*resolv.Object]core.Vec2 // wall -> normal into the ground

	// OnContact is called for every ground-bound contact during Step.
	OnContact func(Contact)
}

const (
	tagBody  = "body"
	tagBound = "bound"

	// spaceCells is the number of collision cells along each side.
	spaceCells = 16

	checkMargin = 1.0
)

// NewWorld creates an empty world.
func NewWorld(opts WorldOptions) *World {
	w := &World{
		bounds:      opts.GroundHalfExtent,
		restitution: opts.GroundRestitution,
		objects:     make(map[*Body]*resolv.Object),
		walls:       make(map[*resolv.Object]core.Vec2),
	}
	if w.bounds > 0 {
		w.buildSpace()
	}
	return w
}

// buildSpace lays out walls as thick as the ground half extent so a body
// cannot cross one in a single step at any sane speed.
func (w *World) buildSpace() {
	h := w.bounds
	thick := h
	w.offset = h + thick
	outer := 2 * w.offset

	cell := int(math.Ceil(outer / spaceCells))
	w.space = resolv.NewSpace(cell*spaceCells, cell*spaceCells, cell, cell)

	add := func(x, y, width, height float64, normal core.Vec2) {
		wall := resolv.NewObject(x, y, width, height, tagBound)
		w.walls[wall] = normal
		w.space.Add(wall)
	}
	add(w.offset+h, 0, thick, outer, core.V(-1, 0))
	add(0, 0, thick, outer, core.V(1, 0))
	add(0, w.offset+h, outer, thick, core.V(0, -1))
	add(0, 0, outer, thick, core.V(0, 1))
}

// Add registers a body with the world.
func (w *World) Add(b *Body) {
	w.bodies = append(w.bodies, b)
	if w.space == nil || b.Static() {
		return
	}
	obj := resolv.NewObject(0, 0, 0, 0, tagBody)
	w.space.Add(obj)
	w.place(b, obj)
	w.objects[b] = obj
}

// Bodies returns the registered bodies.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// GroundHalfExtent returns the ground bound, zero when unbounded.
func (w *World) GroundHalfExtent() float64 {
	return w.bounds
}

// Step advances the simulation by dt seconds and returns the number of
// contacts.
func (w *World) Step(dt float64) int {
	if dt <= 0 {
		return 0
	}
	contacts := 0
	for _, b := range w.bodies {
		b.integrate(dt)
		if obj, ok := w.objects[b]; ok {
			contacts += w.confine(b, obj)
		}
	}
	return contacts
}

// spaceBounds returns the body's axis-aligned bounds in space coordinates.
func (w *World) spaceBounds(b *Body) (lo, hi core.Vec2) {
	ext := b.HalfExtents()
	c := b.transform.Position.Add(core.V(w.offset, w.offset))
	return c.Sub(ext), c.Add(ext)
}

// place moves the collision object onto the body's bounds grown by
// checkMargin. Cell lookup treats object extents as whole units, so the
// margin keeps fractional overlaps visible to Check.
func (w *World) place(b *Body, obj *resolv.Object) {
	lo, hi := w.spaceBounds(b)
	obj.Position.X = lo.X - checkMargin
	obj.Position.Y = lo.Y - checkMargin
	obj.Size.X = hi.X - lo.X + 2*checkMargin
	obj.Size.Y = hi.Y - lo.Y + 2*checkMargin
	obj.Update()
}

// confine pushes a body out of every wall it overlaps and reflects its
// velocity along the wall normal. Only walls the body is moving into count
// as contacts.
func (w *World) confine(b *Body, obj *resolv.Object) int {
	w.place(b, obj)
	col := obj.Check(0, 0, tagBound)
	if col == nil {
		return 0
	}

	n := 0
	for _, wall := range col.Objects {
		normal, ok := w.walls[wall]
		if !ok {
			continue
		}
		lo, hi := w.spaceBounds(b)
		depth := penetration(lo, hi, wall, normal)
		if depth <= 0 {
			continue
		}
		b.transform.Position = b.transform.Position.Add(normal.Scale(depth))
		w.place(b, obj)

		approach := -b.linVel.Dot(normal)
		if approach <= 0 {
			continue
		}
		e := math.Max(b.Restitution, w.restitution)
		b.linVel = b.linVel.Add(normal.Scale(approach * (1 + e)))
		n++
		if w.OnContact != nil {
			w.OnContact(Contact{Body: b, Normal: normal, Speed: approach})
		}
	}
	return n
}

// penetration returns how far the box lo..hi must move along normal to leave
// wall, or zero when they do not overlap.
func penetration(lo, hi core.Vec2, wall *resolv.Object, normal core.Vec2) float64 {
	dx := math.Min(hi.X, wall.Position.X+wall.Size.X) - math.Max(lo.X, wall.Position.X)
	dy := math.Min(hi.Y, wall.Position.Y+wall.Size.Y) - math.Max(lo.Y, wall.Position.Y)
	if dx <= 0 || dy <= 0 {
		return 0
	}
	if normal.X != 0 {
		return dx
	}
	return dy
}
