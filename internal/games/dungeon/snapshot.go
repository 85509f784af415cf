package dungeon

import "github.com/vovakirdan/tui-dungeon/internal/core"

// Snapshot contains the observable game state for replays and the headless
// runner.
type Snapshot struct {
	Frames    int     `yaml:"frames"`
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Facing    float64 `yaml:"facing"`
	Swing     string  `yaml:"swing"`
	Angle     float64 `yaml:"angle"`
	Swings    int     `yaml:"swings"`
	Distance  float64 `yaml:"distance_m"`
	Paused    bool    `yaml:"paused"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Frames:    g.frames,
		Longitude: g.center.X,
		Latitude:  g.center.Y,
		Facing:    g.facing,
		Swing:     g.swing.Phase().String(),
		Angle:     g.swing.Angle(),
		Swings:    g.swings,
		Distance:  g.Distance(),
		Paused:    g.paused,
	}
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	return core.NewStateHash().
		Int(snap.Frames).
		Float(snap.Longitude).
		Float(snap.Latitude).
		Float(snap.Facing).
		Float(snap.Angle).
		Int(snap.Swings).
		String(snap.Swing).
		Bool(snap.Paused).
		Sum()
}
