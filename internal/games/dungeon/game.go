// Package dungeon implements the dungeon crawler: a character walking a
// polygon map, snapped to polygon boundaries, swinging a pickaxe at the
// pointer.
package dungeon

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
	"github.com/vovakirdan/tui-dungeon/internal/games/dungeon/maps"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

// CharacterLayerID is the layer holding the character sprites.
const CharacterLayerID = "character-layer"

const metersPerDegree = 111320.0

// configPath stores the custom config path set via CLI
var configPath string

// mapPath stores the custom map path set via CLI
var mapPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetMapPath overrides the map file from the config.
func SetMapPath(path string) {
	mapPath = path
}

// Game holds the whole per-frame simulation state of the dungeon.
type Game struct {
	cfg      config.DungeonConfig
	level    maps.Map
	loadErr  error
	fixed    bool // config and map were injected, skip loading on Reset
	deck     *deck.Deck
	mapLayer *deck.PolygonLayer
	picker   DeckPicker

	center   core.Vec2
	facing   float64
	swing    *Swing
	swings   int
	frames   int
	distance float64 // metres walked
	paused   bool
}

// New creates a dungeon that loads its config and map on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a dungeon with an explicit config and map.
func NewWithConfig(cfg config.DungeonConfig, level maps.Map) *Game {
	return &Game{cfg: cfg, level: level, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "dungeon"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dungeon Hack"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.fixed {
		g.load()
	}

	g.mapLayer = &deck.PolygonLayer{
		LayerID:   g.cfg.Map.LayerID,
		Polygons:  g.level.Polygons,
		Pickable:  true,
		Fill:      '░',
		FillColor: core.ColorDarkGreen,
		LineColor: core.ColorGreen,
	}

	g.center = g.level.Spawn
	g.facing = 0
	g.swing = NewSwing(g.cfg.Swing.Duration(), g.cfg.Swing.TargetAngle)
	g.swings = 0
	g.frames = 0
	g.distance = 0
	g.paused = false

	g.deck = deck.New(deck.Options{
		Cols:        rc.ScreenW,
		Rows:        rc.ScreenH,
		CellW:       g.cfg.View.CellWidthPx,
		CellH:       g.cfg.View.CellHeightPx,
		InitialView: g.viewState(),
	})
	g.deck.SetProps(g.viewState(), g.layers())
	g.picker = DeckPicker{Deck: g.deck, LayerID: g.cfg.Map.LayerID, Radius: g.cfg.Pick.RadiusPx}
}

func (g *Game) load() {
	g.loadErr = nil

	cfg, err := config.LoadDungeon(configPath)
	if err != nil {
		g.loadErr = err
		cfg = config.DefaultDungeonConfig()
	}
	g.cfg = cfg

	path := cfg.Map.Path
	if mapPath != "" {
		path = mapPath
	}
	level, err := maps.Load(path)
	if err != nil {
		g.loadErr = err
		level, _ = maps.Default()
	}
	g.level = level
}

// Resize adapts the viewport to a new screen size without resetting.
func (g *Game) Resize(cols, rows int) {
	if g.deck != nil {
		g.deck.Resize(cols, rows)
	}
}

// Step advances the game by one frame: pointer, movement, swing, then the
// new props are committed to the deck.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.frames++

	if in.HasPointer {
		px := g.deck.Viewport().CellCenter(int(in.Pointer.X), int(in.Pointer.Y))
		if world, ok := g.deck.Coordinate(px); ok {
			g.facing = FacingAngle(world, g.center)
		}
	}

	if in.Click {
		g.swing.Trigger(in.Now)
	}

	next := UpdateCenter(g.center, in.Keys, g.cfg.Movement.Step, g.picker)
	g.distance += next.Dist(g.center) * metersPerDegree
	g.center = next

	if _, done := g.swing.Tick(in.Now); done {
		g.swings++
	}

	g.deck.SetProps(g.viewState(), g.layers())
	return core.StepResult{State: g.State()}
}

func (g *Game) viewState() deck.ViewState {
	return deck.ViewState{
		Longitude: g.center.X,
		Latitude:  g.center.Y,
		Zoom:      g.cfg.View.Zoom,
		Pitch:     g.cfg.View.Pitch,
		Bearing:   g.cfg.View.Bearing,
	}
}

func (g *Game) layers() []deck.Layer {
	character := &deck.IconLayer{
		LayerID: CharacterLayerID,
		Icons:   CharacterIcons(g.center, g.facing, g.swing.Angle()),
	}
	return []deck.Layer{g.mapLayer, character}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.deck.Render(dst)

	hud := fmt.Sprintf(" %s  %.5f,%.5f  facing %3.0f°  swing %-7s  swings %d  %.1fm ",
		g.mapName(), g.center.X, g.center.Y, g.facing, g.swing.Phase(), g.swings, g.distance)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	if g.loadErr != nil && dst.Height() > 1 {
		dst.DrawTextColored(1, dst.Height()-1, " "+g.loadErr.Error()+" ", core.ColorBrightRed)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

func (g *Game) mapName() string {
	if g.level.Name != "" {
		return g.level.Name
	}
	return g.level.ID
}

// State returns the current game state. The score is the number of
// completed swings.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.swings,
		Frames: g.frames,
		Paused: g.paused,
	}
}

// Describe summarises the state in one line.
func (g *Game) Describe() string {
	return fmt.Sprintf("center=(%.6f, %.6f) facing=%.1f swing=%s angle=%.1f swings=%d distance=%.2fm",
		g.center.X, g.center.Y, g.facing, g.swing.Phase(), g.swing.Angle(), g.swings, g.distance)
}

// Center returns the character position.
func (g *Game) Center() core.Vec2 {
	return g.center
}

// Facing returns the facing angle in degrees.
func (g *Game) Facing() float64 {
	return g.facing
}

// SwingAngle returns the current swing angle in degrees.
func (g *Game) SwingAngle() float64 {
	return g.swing.Angle()
}

// Distance returns the metres walked since the last reset.
func (g *Game) Distance() float64 {
	return math.Round(g.distance*100) / 100
}

// Register the game with the registry
func init() {
	registry.Register("dungeon", func() registry.Game {
		return New()
	})
}

// KeyHold returns how long a key counts as held after its last press.
func (g *Game) KeyHold() time.Duration {
	return g.cfg.Input.Hold()
}
