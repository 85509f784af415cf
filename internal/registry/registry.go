// Package registry maps game ids to factories. Game packages register from
// init, and the CLI, the menu and the SSH sessions create games by id.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Game is a simulation the frame driver can run. Games never touch the
// terminal: they get one input frame per Step and draw into a screen buffer.
type Game interface {
	// ID is the registry key, also stored with every run.
	ID() string
	Title() string

	// Reset rebuilds the state for a screen of cfg.ScreenW x cfg.ScreenH.
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Describer is implemented by games that can summarise their state in one
// line, for the headless runner and logs.
type Describer interface {
	Describe() string
}

// GameInfo is what the menu, the runs table and the CLI show for a game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register records a game factory under id, normally from the game package's
// init. The factory is called once to read the title. Registering an id twice,
// or a factory whose games report another id, panics.
func Register(id string, f Factory) {
	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds game %q", id, g.ID()))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: g.Title()}, factory: f}
}

// Lookup returns the record of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// List returns every registered game ordered by id.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a fresh game instance.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Title returns the display name of a game, falling back to the id for
// unknown games so stored runs of removed games still print.
func Title(id string) string {
	if info, ok := Lookup(id); ok {
		return info.Title
	}
	return id
}
