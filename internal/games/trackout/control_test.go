package trackout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/physics"
)

// recordingBody captures what the controls do to it.
type recordingBody struct {
	transform physics.Transform
	force     core.Vec2
	impulse   float64
	linVel    core.Vec2
	angVel    float64
}

func (b *recordingBody) ApplyForce(f core.Vec2)           { b.force = b.force.Add(f) }
func (b *recordingBody) ApplyAngularImpulse(j float64)    { b.impulse += j }
func (b *recordingBody) ClearForces()                     { b.force = core.Vec2{} }
func (b *recordingBody) SetLinearVelocity(v core.Vec2)    { b.linVel = v }
func (b *recordingBody) SetAngularVelocity(w float64)     { b.angVel = w }
func (b *recordingBody) SetTransform(t physics.Transform) { b.transform = t }
func (b *recordingBody) Transform() physics.Transform     { return b.transform }

func TestControlFor(t *testing.T) {
	tests := []struct {
		key  string
		want Control
		ok   bool
	}{
		{"w", ControlForward, true},
		{"up", ControlForward, true},
		{"s", ControlReverse, true},
		{"down", ControlReverse, true},
		{"a", ControlTurnLeft, true},
		{"left", ControlTurnLeft, true},
		{"d", ControlTurnRight, true},
		{"right", ControlTurnRight, true},
		{"r", ControlReset, true},
		{"x", 0, false},
		{"W", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ControlFor(tt.key)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ControlFor(%q) = %s, %v; expected %s, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestControlsDeduplicates(t *testing.T) {
	got := Controls(core.KeySet("up", "w", "a", "x"))
	if len(got) != 2 || got[0] != ControlForward || got[1] != ControlTurnLeft {
		t.Errorf("Controls = %v, expected [forward turn-left]", got)
	}
	if len(Controls(core.KeySet())) != 0 {
		t.Error("no keys should give no controls")
	}
}

func testVehicle() VehicleConfig {
	return VehicleConfig{
		ForwardForce: 12000,
		ReverseForce: 6000,
		TurnImpulse:  150,
		Spawn:        physics.Transform{Position: core.V(3, 4), Heading: 0.5},
	}
}

func TestApplyForces(t *testing.T) {
	cfg := testVehicle()

	tests := []struct {
		name    string
		control Control
		heading float64
		force   core.Vec2
		impulse float64
	}{
		{"forward", ControlForward, 0, core.V(0, 12000), 0},
		{"forward turned", ControlForward, math.Pi / 2, core.V(-12000, 0), 0},
		{"reverse", ControlReverse, 0, core.V(0, -6000), 0},
		{"left", ControlTurnLeft, 0, core.Vec2{}, 150},
		{"right", ControlTurnRight, 0, core.Vec2{}, -150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &recordingBody{transform: physics.Transform{Heading: tt.heading}}
			Apply(b, tt.control, cfg)
			if b.force.Dist(tt.force) > 1e-6 {
				t.Errorf("force = %v, expected %v", b.force, tt.force)
			}
			if b.impulse != tt.impulse {
				t.Errorf("impulse = %v, expected %v", b.impulse, tt.impulse)
			}
		})
	}
}

func TestApplyReset(t *testing.T) {
	cfg := testVehicle()
	b := &recordingBody{
		transform: physics.Transform{Position: core.V(100, -50), Heading: 2},
		linVel:    core.V(10, 10),
		angVel:    3,
	}

	Apply(b, ControlReset, cfg)

	if b.linVel != (core.Vec2{}) || b.angVel != 0 {
		t.Errorf("reset should zero velocities, got %v %v", b.linVel, b.angVel)
	}
	if b.transform != cfg.Spawn {
		t.Errorf("reset transform = %+v, expected %+v", b.transform, cfg.Spawn)
	}
	if b.force != (core.Vec2{}) || b.impulse != 0 {
		t.Error("reset should not apply forces")
	}
}

func TestApplyResetDropsPendingForce(t *testing.T) {
	cfg := testVehicle()
	cfg.Spawn = physics.Transform{}

	w := physics.NewWorld(physics.WorldOptions{})
	car := physics.NewBody(physics.BodyOptions{Mass: 1000, Width: 2, Length: 4})
	w.Add(car)

	for i := 0; i < 30; i++ {
		Apply(car, ControlForward, cfg)
		w.Step(1.0 / 60)
	}
	if car.LinearVelocity().Len() == 0 {
		t.Fatal("car should be moving before the reset")
	}

	for _, c := range Controls(core.KeySet("w", "r")) {
		Apply(car, c, cfg)
	}
	w.Step(1.0 / 60)

	if pos := car.Transform().Position; pos != (core.Vec2{}) {
		t.Errorf("position after reset = %v, expected spawn", pos)
	}
	if v := car.LinearVelocity(); v != (core.Vec2{}) {
		t.Errorf("velocity after reset = %v, expected rest", v)
	}
}

func TestVehicleConfigFrom(t *testing.T) {
	cfg := config.DefaultTrackoutConfig()
	cfg.Spawn.X, cfg.Spawn.Z, cfg.Spawn.Heading = 1, 2, 90

	v := VehicleConfigFrom(cfg)
	if v.ForwardForce != cfg.Vehicle.ForwardForce || v.TurnImpulse != cfg.Vehicle.TurnImpulse {
		t.Errorf("force table not copied: %+v", v)
	}
	if v.Spawn.Position != core.V(1, 2) || math.Abs(v.Spawn.Heading-math.Pi/2) > 1e-12 {
		t.Errorf("spawn = %+v", v.Spawn)
	}
}
