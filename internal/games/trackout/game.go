// Package trackout implements a top-down driving sandbox: a rigid-body car
// pushed around a bounded ground plane by held keys.
package trackout

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/logging"
	"github.com/vovakirdan/tui-dungeon/internal/physics"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

var logger = logging.Discard()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes contact notifications to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// Game holds the physics world and the car.
type Game struct {
	cfg     config.TrackoutConfig
	vehicle VehicleConfig
	fixed   bool
	loadErr error

	world *physics.World
	car   *physics.Body
	dt    float64

	frames   int
	distance float64
	bumps    int
	paused   bool
}

// New creates a trackout game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a trackout game with an explicit config.
func NewWithConfig(cfg config.TrackoutConfig) *Game {
	return &Game{cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "trackout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Trackout"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.fixed {
		cfg, err := config.LoadTrackout(configPath)
		g.loadErr = err
		if err != nil {
			cfg = config.DefaultTrackoutConfig()
		}
		g.cfg = cfg
	}
	g.vehicle = VehicleConfigFrom(g.cfg)

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = 1 / float64(tickRate)

	g.world = physics.NewWorld(physics.WorldOptions{
		GroundHalfExtent:  g.cfg.Physics.GroundHalfExtent,
		GroundRestitution: g.cfg.Physics.GroundRestitution,
	})
	g.world.OnContact = g.onContact

	g.car = physics.NewBody(physics.BodyOptions{
		ID:             "car",
		Mass:           g.cfg.Vehicle.Mass,
		Width:          g.cfg.Vehicle.Width,
		Length:         g.cfg.Vehicle.Length,
		Restitution:    g.cfg.Vehicle.Restitution,
		LinearDamping:  g.cfg.Physics.LinearDamping,
		AngularDamping: g.cfg.Physics.AngularDamping,
		Transform:      g.vehicle.Spawn,
	})
	g.world.Add(g.car)

	g.frames = 0
	g.distance = 0
	g.bumps = 0
	g.paused = false
}

func (g *Game) onContact(c physics.Contact) {
	g.bumps++
	logger.Debug("ground contact", "body", c.Body.ID, "speed", c.Speed, "normal", c.Normal)
}

// Step applies the held controls and advances the physics by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.frames++
	for _, c := range Controls(in.Keys) {
		Apply(g.car, c, g.vehicle)
	}

	before := g.car.Transform().Position
	g.world.Step(g.dt)
	g.distance += g.car.Transform().Position.Dist(before)

	return core.StepResult{State: g.State()}
}

// Render draws the ground and the car from a camera locked on the car.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	cam := Camera{
		Target:       g.car.Transform().Position,
		CellsPerUnit: g.cfg.Camera.CellsPerUnit,
		Cols:         dst.Width(),
		Rows:         dst.Height(),
	}
	if cam.CellsPerUnit <= 0 {
		cam.CellsPerUnit = 1
	}

	g.drawGrid(dst, cam)
	g.drawAxis(dst, cam)
	g.drawBounds(dst, cam)
	g.drawCar(dst, cam)

	t := g.car.Transform()
	hud := fmt.Sprintf(" TRACKOUT  x %.1f z %.1f  heading %3.0f°  speed %.1f  dist %d  bumps %d ",
		t.Position.X, t.Position.Y, core.NormalizeDegrees(t.Heading*180/math.Pi),
		g.car.LinearVelocity().Len(), g.State().Score, g.bumps)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	if g.loadErr != nil && dst.Height() > 1 {
		dst.DrawTextColored(1, dst.Height()-1, " "+g.loadErr.Error()+" ", core.ColorBrightRed)
	}
	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

// drawGrid draws grid lines every step units within ±size, with coordinate
// labels every five steps.
func (g *Game) drawGrid(dst *core.Screen, cam Camera) {
	size, step := g.cfg.Grid.Size, g.cfg.Grid.Step
	if size <= 0 || step <= 0 {
		return
	}
	limit := float64(size)

	for i := -size; i <= size; i += step {
		col, _ := cam.ToCell(core.V(float64(i), 0))
		if col >= 0 && col < dst.Width() {
			for row := 0; row < dst.Height(); row++ {
				if w := cam.ToWorld(col, row); math.Abs(w.Y) <= limit {
					g.gridCell(dst, col, row, '│')
				}
			}
		}

		_, row := cam.ToCell(core.V(0, float64(i)))
		if row >= 0 && row < dst.Height() {
			for col := 0; col < dst.Width(); col++ {
				if w := cam.ToWorld(col, row); math.Abs(w.X) <= limit {
					g.gridCell(dst, col, row, '─')
				}
			}
		}
	}

	for i := -size; i <= size; i += step {
		if i%(step*5) != 0 {
			continue
		}
		label := strconv.Itoa(i)
		col, row := cam.ToCell(core.V(float64(i), -limit-2))
		dst.DrawTextColored(col, row, label, core.ColorWhite)
		col, row = cam.ToCell(core.V(-limit-2, float64(i)))
		dst.DrawTextColored(col-len(label)+1, row, label, core.ColorWhite)
	}
}

func (g *Game) gridCell(dst *core.Screen, col, row int, r rune) {
	switch dst.Get(col, row) {
	case '│', '─', '┼':
		if dst.Get(col, row) != r {
			r = '┼'
		}
	}
	dst.SetColored(col, row, r, core.ColorGray)
}

// drawAxis draws the world X and Z axes from the origin; Y points at the
// viewer and is marked at the origin.
func (g *Game) drawAxis(dst *core.Screen, cam Camera) {
	size := float64(g.cfg.Grid.AxisSize)
	if size <= 0 {
		return
	}
	ox, oy := cam.ToCell(core.V(0, 0))
	xx, xy := cam.ToCell(core.V(size, 0))
	zx, zy := cam.ToCell(core.V(0, size))

	dst.DrawLine(ox, oy, xx, xy, '━', core.ColorRed)
	dst.SetColored(xx, xy, 'X', core.ColorBrightRed)
	dst.DrawLine(ox, oy, zx, zy, '┃', core.ColorBlue)
	dst.SetColored(zx, zy, 'Z', core.ColorBrightBlue)
	dst.SetColored(ox, oy, 'Y', core.ColorBrightGreen)
}

// drawBounds outlines the ground area, clipped to the visible region.
func (g *Game) drawBounds(dst *core.Screen, cam Camera) {
	h := g.world.GroundHalfExtent()
	if h <= 0 {
		return
	}
	minP, maxP := cam.Visible()

	for _, z := range [2]float64{-h, h} {
		lo, hi := math.Max(-h, minP.X), math.Min(h, maxP.X)
		if z < minP.Y || z > maxP.Y || lo > hi {
			continue
		}
		c0, r0 := cam.ToCell(core.V(lo, z))
		c1, r1 := cam.ToCell(core.V(hi, z))
		dst.DrawLine(c0, r0, c1, r1, '#', core.ColorOrange)
	}
	for _, x := range [2]float64{-h, h} {
		lo, hi := math.Max(-h, minP.Y), math.Min(h, maxP.Y)
		if x < minP.X || x > maxP.X || lo > hi {
			continue
		}
		c0, r0 := cam.ToCell(core.V(x, lo))
		c1, r1 := cam.ToCell(core.V(x, hi))
		dst.DrawLine(c0, r0, c1, r1, '#', core.ColorOrange)
	}
}

var headingArrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

func (g *Game) drawCar(dst *core.Screen, cam Camera) {
	var minC, minR, maxC, maxR int
	for i, p := range g.car.Corners() {
		c, r := cam.ToCell(p)
		if i == 0 {
			minC, minR, maxC, maxR = c, r, c, r
			continue
		}
		minC, minR = min(minC, c), min(minR, r)
		maxC, maxR = max(maxC, c), max(maxR, r)
	}

	drawn := false
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			if g.car.Contains(cam.ToWorld(col, row)) {
				dst.SetColored(col, row, '█', core.ColorBrightRed)
				drawn = true
			}
		}
	}

	t := g.car.Transform()
	octant := int(math.Round(core.NormalizeDegrees(t.Heading*180/math.Pi)/45)) % 8
	nose := t.Position.Add(t.Forward().Scale(math.Max(g.car.Length/2-0.5, 0)))
	col, row := cam.ToCell(nose)
	if !drawn {
		col, row = cam.ToCell(t.Position)
	}
	dst.SetColored(col, row, headingArrows[octant], core.ColorBrightYellow)
}

// State returns the current game state. The score is the whole number of
// units driven.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  int(g.distance),
		Frames: g.frames,
		Paused: g.paused,
	}
}

// Describe summarises the state in one line.
func (g *Game) Describe() string {
	t := g.car.Transform()
	v := g.car.LinearVelocity()
	return fmt.Sprintf("pos=(%.3f, %.3f) heading=%.1f speed=%.3f distance=%.3f bumps=%d",
		t.Position.X, t.Position.Y, core.NormalizeDegrees(t.Heading*180/math.Pi), v.Len(), g.distance, g.bumps)
}

// Car returns the car body.
func (g *Game) Car() *physics.Body {
	return g.car
}

// Bumps returns the number of ground-bound contacts so far.
func (g *Game) Bumps() int {
	return g.bumps
}

// Register the game with the registry
func init() {
	registry.Register("trackout", func() registry.Game {
		return New()
	})
}

// KeyHold returns how long a key counts as held after its last press.
func (g *Game) KeyHold() time.Duration {
	return g.cfg.Input.Hold()
}
