package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func car() *Body {
	return NewBody(BodyOptions{ID: "car", Mass: 1000, Width: 2, Length: 4, Restitution: 0.2})
}

func TestNewBodyInertia(t *testing.T) {
	b := car()
	want := 1000.0 * (4 + 16) / 12
	if !approx(b.Inertia, want) {
		t.Errorf("Inertia = %v, expected %v", b.Inertia, want)
	}

	static := NewBody(BodyOptions{Width: 2, Length: 2})
	if !static.Static() || static.Inertia != 0 {
		t.Errorf("zero-mass body should be static, got inertia %v", static.Inertia)
	}
}

func TestTransformForward(t *testing.T) {
	tests := []struct {
		heading float64
		want    core.Vec2
	}{
		{0, core.V(0, 1)},
		{math.Pi / 2, core.V(-1, 0)},
		{math.Pi, core.V(0, -1)},
		{-math.Pi / 2, core.V(1, 0)},
	}
	for _, tt := range tests {
		got := Transform{Heading: tt.heading}.Forward()
		if got.Dist(tt.want) > eps {
			t.Errorf("Forward(%v) = %v, expected %v", tt.heading, got, tt.want)
		}
	}
}

func TestStepIntegratesForce(t *testing.T) {
	w := NewWorld(WorldOptions{})
	b := car()
	w.Add(b)

	b.ApplyForce(core.V(0, 1000))
	w.Step(1)

	if !approx(b.LinearVelocity().Y, 1) || !approx(b.Transform().Position.Y, 1) {
		t.Errorf("after 1s at 1m/s²: v=%v pos=%v", b.LinearVelocity(), b.Transform().Position)
	}

	// Forces are cleared after each step.
	w.Step(1)
	if !approx(b.LinearVelocity().Y, 1) || !approx(b.Transform().Position.Y, 2) {
		t.Errorf("second step should coast: v=%v pos=%v", b.LinearVelocity(), b.Transform().Position)
	}
}

func TestStepDamping(t *testing.T) {
	w := NewWorld(WorldOptions{})
	b := NewBody(BodyOptions{Mass: 1, Width: 1, Length: 1, LinearDamping: 1, AngularDamping: 3})
	w.Add(b)

	b.SetLinearVelocity(core.V(10, 0))
	b.SetAngularVelocity(8)
	w.Step(1)

	if !approx(b.LinearVelocity().X, 5) {
		t.Errorf("linear velocity = %v, expected 5", b.LinearVelocity().X)
	}
	if !approx(b.AngularVelocity(), 2) {
		t.Errorf("angular velocity = %v, expected 2", b.AngularVelocity())
	}
}

func TestAngularImpulse(t *testing.T) {
	b := car()
	b.ApplyAngularImpulse(b.Inertia)
	if !approx(b.AngularVelocity(), 1) {
		t.Errorf("AngularVelocity = %v, expected 1", b.AngularVelocity())
	}

	w := NewWorld(WorldOptions{})
	w.Add(b)
	w.Step(0.5)
	if !approx(b.Transform().Heading, 0.5) {
		t.Errorf("Heading = %v, expected 0.5", b.Transform().Heading)
	}
}

func TestStaticBodyIgnoresInput(t *testing.T) {
	w := NewWorld(WorldOptions{})
	b := NewBody(BodyOptions{Width: 1, Length: 1})
	w.Add(b)

	b.ApplyForce(core.V(100, 0))
	b.ApplyImpulse(core.V(100, 0))
	b.ApplyAngularImpulse(5)
	w.Step(1)

	if b.Transform().Position != (core.Vec2{}) || b.AngularVelocity() != 0 {
		t.Errorf("static body moved: %+v", b.Transform())
	}
}

func TestGroundBoundsBounce(t *testing.T) {
	w := NewWorld(WorldOptions{GroundHalfExtent: 10, GroundRestitution: 0.5})
	b := car()
	b.SetTransform(Transform{Position: core.V(9, 0)})
	b.SetLinearVelocity(core.V(5, 0))
	w.Add(b)

	var contacts []Contact
	w.OnContact = func(c Contact) { contacts = append(contacts, c) }

	if n := w.Step(0.1); n != 1 {
		t.Fatalf("Step returned %d contacts, expected 1", n)
	}
	if !approx(b.Transform().Position.X, 9) {
		t.Errorf("body should be pushed back to x=9, got %v", b.Transform().Position.X)
	}
	if !approx(b.LinearVelocity().X, -2.5) {
		t.Errorf("velocity after bounce = %v, expected -2.5", b.LinearVelocity().X)
	}
	if len(contacts) != 1 || contacts[0].Normal != core.V(-1, 0) || !approx(contacts[0].Speed, 5) {
		t.Errorf("unexpected contacts %+v", contacts)
	}
}

func TestRestingAgainstBoundIsNotAContact(t *testing.T) {
	w := NewWorld(WorldOptions{GroundHalfExtent: 10})
	b := car()
	b.SetTransform(Transform{Position: core.V(9.25, 0)})
	w.Add(b)

	calls := 0
	w.OnContact = func(Contact) { calls++ }

	for i := 0; i < 5; i++ {
		if n := w.Step(0.1); n != 0 {
			t.Fatalf("step %d reported %d contacts for a body at rest", i, n)
		}
	}
	if calls != 0 {
		t.Errorf("OnContact called %d times, expected none", calls)
	}
	if !approx(b.Transform().Position.X, 9) {
		t.Errorf("overlapping body should be pushed to x=9, got %v", b.Transform().Position.X)
	}
}

func TestGroundBoundsCorner(t *testing.T) {
	w := NewWorld(WorldOptions{GroundHalfExtent: 10})
	b := car()
	b.SetTransform(Transform{Position: core.V(-8.9, -7.9)})
	b.SetLinearVelocity(core.V(-2, -2))
	w.Add(b)

	var normals []core.Vec2
	w.OnContact = func(c Contact) { normals = append(normals, c.Normal) }

	if n := w.Step(0.1); n != 2 {
		t.Fatalf("Step returned %d contacts, expected 2", n)
	}
	pos := b.Transform().Position
	if !approx(pos.X, -9) || !approx(pos.Y, -8) {
		t.Errorf("position = %v, expected (-9, -8)", pos)
	}
	v := b.LinearVelocity()
	if v.X <= 0 || v.Y <= 0 {
		t.Errorf("velocity %v should point back into the ground", v)
	}
	seen := map[core.Vec2]bool{}
	for _, n := range normals {
		seen[n] = true
	}
	if !seen[core.V(1, 0)] || !seen[core.V(0, 1)] {
		t.Errorf("normals = %v, expected west and south walls", normals)
	}
}

func TestUnboundedWorld(t *testing.T) {
	w := NewWorld(WorldOptions{})
	b := car()
	b.SetLinearVelocity(core.V(0, 1e6))
	w.Add(b)
	if n := w.Step(1); n != 0 {
		t.Errorf("unbounded world reported %d contacts", n)
	}
}

func TestStepNonPositiveDt(t *testing.T) {
	w := NewWorld(WorldOptions{})
	b := car()
	b.SetLinearVelocity(core.V(1, 1))
	w.Add(b)
	w.Step(0)
	w.Step(-1)
	if b.Transform().Position != (core.Vec2{}) {
		t.Errorf("non-positive dt should not move bodies, got %v", b.Transform().Position)
	}
}

func TestBodyGeometry(t *testing.T) {
	b := car()
	if !b.Contains(core.V(0.9, 1.9)) || b.Contains(core.V(1.1, 0)) {
		t.Error("Contains wrong for an unrotated 2x4 box")
	}

	corners := b.Corners()
	if corners[0].Dist(core.V(-1, 2)) > eps || corners[2].Dist(core.V(1, -2)) > eps {
		t.Errorf("Corners = %v", corners)
	}

	b.SetTransform(Transform{Heading: math.Pi / 2})
	ext := b.HalfExtents()
	if !approx(ext.X, 2) || !approx(ext.Y, 1) {
		t.Errorf("HalfExtents after quarter turn = %v, expected (2, 1)", ext)
	}
	if !b.Contains(core.V(1.9, 0)) {
		t.Error("rotated box should extend along X")
	}
}
