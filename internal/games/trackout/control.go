package trackout

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/physics"
)

// Control is one vehicle command.
type Control int

const (
	ControlForward Control = iota
	ControlReverse
	ControlTurnLeft
	ControlTurnRight
	ControlReset
)

// String returns a human-readable name for the control.
func (c Control) String() string {
	switch c {
	case ControlForward:
		return "forward"
	case ControlReverse:
		return "reverse"
	case ControlTurnLeft:
		return "turn-left"
	case ControlTurnRight:
		return "turn-right"
	case ControlReset:
		return "reset"
	default:
		return "unknown"
	}
}

var keyControls = map[string]Control{
	"w":     ControlForward,
	"up":    ControlForward,
	"s":     ControlReverse,
	"down":  ControlReverse,
	"a":     ControlTurnLeft,
	"left":  ControlTurnLeft,
	"d":     ControlTurnRight,
	"right": ControlTurnRight,
	"r":     ControlReset,
}

// ControlFor maps a held key to its control.
func ControlFor(key string) (Control, bool) {
	c, ok := keyControls[key]
	return c, ok
}

// Controls returns the distinct controls for a held-key set, in Control
// order.
func Controls(keys core.HeldKeySet) []Control {
	var seen [ControlReset + 1]bool
	for k := range keys {
		if c, ok := ControlFor(k); ok {
			seen[c] = true
		}
	}
	out := make([]Control, 0, len(seen))
	for c, on := range seen {
		if on {
			out = append(out, Control(c))
		}
	}
	return out
}

// Body is the slice of a rigid body the controls act on.
type Body interface {
	ApplyForce(f core.Vec2)
	ApplyAngularImpulse(j float64)
	ClearForces()
	SetLinearVelocity(v core.Vec2)
	SetAngularVelocity(w float64)
	SetTransform(t physics.Transform)
	Transform() physics.Transform
}

// VehicleConfig is the force table and reset pose.
type VehicleConfig struct {
	ForwardForce float64
	ReverseForce float64
	TurnImpulse  float64
	Spawn        physics.Transform
}

// VehicleConfigFrom extracts the force table from a game config.
func VehicleConfigFrom(cfg config.TrackoutConfig) VehicleConfig {
	return VehicleConfig{
		ForwardForce: cfg.Vehicle.ForwardForce,
		ReverseForce: cfg.Vehicle.ReverseForce,
		TurnImpulse:  cfg.Vehicle.TurnImpulse,
		Spawn: physics.Transform{
			Position: core.V(cfg.Spawn.X, cfg.Spawn.Z),
			Heading:  cfg.Spawn.Heading * math.Pi / 180,
		},
	}
}

// Apply acts on body for one physics tick. Forces follow the body heading;
// turning is an angular impulse; reset stops the body at the spawn pose and
// discards forces applied earlier in the same tick.
func Apply(body Body, c Control, cfg VehicleConfig) {
	switch c {
	case ControlForward:
		body.ApplyForce(body.Transform().Forward().Scale(cfg.ForwardForce))
	case ControlReverse:
		body.ApplyForce(body.Transform().Forward().Scale(-cfg.ReverseForce))
	case ControlTurnLeft:
		body.ApplyAngularImpulse(cfg.TurnImpulse)
	case ControlTurnRight:
		body.ApplyAngularImpulse(-cfg.TurnImpulse)
	case ControlReset:
		body.ClearForces()
		body.SetLinearVelocity(core.Vec2{})
		body.SetAngularVelocity(0)
		body.SetTransform(cfg.Spawn)
	}
}
