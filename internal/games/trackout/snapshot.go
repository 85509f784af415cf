package trackout

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Snapshot contains the observable game state for replays and the headless
// runner.
type Snapshot struct {
	Frames   int     `yaml:"frames"`
	X        float64 `yaml:"x"`
	Z        float64 `yaml:"z"`
	Heading  float64 `yaml:"heading"` // degrees
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
	Bumps    int     `yaml:"bumps"`
	Paused   bool    `yaml:"paused"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	t := g.car.Transform()
	return Snapshot{
		Frames:   g.frames,
		X:        t.Position.X,
		Z:        t.Position.Y,
		Heading:  core.NormalizeDegrees(t.Heading * 180 / math.Pi),
		Speed:    g.car.LinearVelocity().Len(),
		Distance: g.distance,
		Bumps:    g.bumps,
		Paused:   g.paused,
	}
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	return core.NewStateHash().
		Int(snap.Frames).
		Float(snap.X).
		Float(snap.Z).
		Float(snap.Heading).
		Float(snap.Distance).
		Int(snap.Bumps).
		Bool(snap.Paused).
		Sum()
}
