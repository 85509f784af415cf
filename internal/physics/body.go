// Package physics is a small top-down rigid-body simulation on the X/Z
// ground plane. Bodies are boxes integrated with semi-implicit Euler and kept
// inside a square ground area.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Transform is a body pose on the ground plane. Position.X is world X and
// Position.Y is world Z. Heading is counter-clockwise radians seen from
// above; heading 0 faces +Z.
type Transform struct {
	Position core.Vec2
	Heading  float64
}

// Forward returns the unit vector the transform faces.
func (t Transform) Forward() core.Vec2 {
	return core.V(-math.Sin(t.Heading), math.Cos(t.Heading))
}

// BodyOptions describes a box body.
type BodyOptions struct {
	ID             string
	Mass           float64
	Width          float64 // along local X
	Length         float64 // along the heading
	Restitution    float64
	LinearDamping  float64 // per second
	AngularDamping float64 // per second
	Transform      Transform
}

// Body is a dynamic box. A body with zero mass is static.
type Body struct {
	ID             string
	Mass           float64
	Inertia        float64
	Width          float64
	Length         float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64

	transform Transform
	linVel    core.Vec2
	angVel    float64
	force     core.Vec2
	torque    float64
}

// NewBody creates a box body with the moment of inertia of a solid
// rectangle.
func NewBody(opts BodyOptions) *Body {
	b := &Body{
		ID:             opts.ID,
		Mass:           opts.Mass,
		Width:          opts.Width,
		Length:         opts.Length,
		Restitution:    opts.Restitution,
		LinearDamping:  opts.LinearDamping,
		AngularDamping: opts.AngularDamping,
		transform:      opts.Transform,
	}
	if b.Mass > 0 {
		b.Inertia = b.Mass * (b.Width*b.Width + b.Length*b.Length) / 12
	}
	return b
}

// Static reports whether the body ignores forces.
func (b *Body) Static() bool {
	return b.Mass <= 0
}

// ApplyForce accumulates a world-space force for the next step.
func (b *Body) ApplyForce(f core.Vec2) {
	b.force = b.force.Add(f)
}

// ApplyTorque accumulates a torque for the next step.
func (b *Body) ApplyTorque(t float64) {
	b.torque += t
}

// ClearForces drops the force and torque accumulated since the last step.
func (b *Body) ClearForces() {
	b.force, b.torque = core.Vec2{}, 0
}

// ApplyImpulse changes the linear velocity immediately.
func (b *Body) ApplyImpulse(j core.Vec2) {
	if b.Static() {
		return
	}
	b.linVel = b.linVel.Add(j.Scale(1 / b.Mass))
}

// ApplyAngularImpulse changes the angular velocity immediately.
func (b *Body) ApplyAngularImpulse(j float64) {
	if b.Static() || b.Inertia == 0 {
		return
	}
	b.angVel += j / b.Inertia
}

// SetLinearVelocity overrides the linear velocity.
func (b *Body) SetLinearVelocity(v core.Vec2) {
	b.linVel = v
}

// SetAngularVelocity overrides the angular velocity in radians per second.
func (b *Body) SetAngularVelocity(w float64) {
	b.angVel = w
}

// SetTransform teleports the body.
func (b *Body) SetTransform(t Transform) {
	b.transform = t
}

// Transform returns the current pose.
func (b *Body) Transform() Transform {
	return b.transform
}

// LinearVelocity returns the linear velocity.
func (b *Body) LinearVelocity() core.Vec2 {
	return b.linVel
}

// AngularVelocity returns the angular velocity in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.angVel
}

// Corners returns the four box corners in world space, front-left first,
// clockwise seen from above.
func (b *Body) Corners() [4]core.Vec2 {
	hw, hl := b.Width/2, b.Length/2
	deg := b.transform.Heading * 180 / math.Pi
	local := [4]core.Vec2{core.V(-hw, hl), core.V(hw, hl), core.V(hw, -hl), core.V(-hw, -hl)}
	var out [4]core.Vec2
	for i, p := range local {
		out[i] = b.transform.Position.Add(p.Rotate(deg))
	}
	return out
}

// HalfExtents returns the half size of the body's axis-aligned bounds.
func (b *Body) HalfExtents() core.Vec2 {
	s, c := math.Sincos(b.transform.Heading)
	s, c = math.Abs(s), math.Abs(c)
	hw, hl := b.Width/2, b.Length/2
	return core.V(hw*c+hl*s, hw*s+hl*c)
}

// Contains reports whether a world point lies inside the box.
func (b *Body) Contains(p core.Vec2) bool {
	deg := b.transform.Heading * 180 / math.Pi
	local := p.Sub(b.transform.Position).Rotate(-deg)
	return math.Abs(local.X) <= b.Width/2 && math.Abs(local.Y) <= b.Length/2
}

func (b *Body) integrate(dt float64) {
	if b.Static() {
		b.ClearForces()
		return
	}

	b.linVel = b.linVel.Add(b.force.Scale(dt / b.Mass))
	if b.Inertia > 0 {
		b.angVel += b.torque * dt / b.Inertia
	}

	b.linVel = b.linVel.Scale(1 / (1 + dt*b.LinearDamping))
	b.angVel /= 1 + dt*b.AngularDamping

	b.transform.Position = b.transform.Position.Add(b.linVel.Scale(dt))
	b.transform.Heading += b.angVel * dt

	b.ClearForces()
}
