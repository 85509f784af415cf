package dungeon

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
)

// Picker is the slice of the rendering engine the movement model needs.
type Picker interface {
	// Project converts a world coordinate into a screen pixel.
	Project(world core.Vec2) (screen core.Vec2, ok bool)

	// QueryAt returns the boundary polygon under a screen pixel, if any.
	QueryAt(screen core.Vec2) (deck.Polygon, bool)
}

// Direction keys. Both the letter and the arrow move the character.
var (
	KeysLeft  = []string{"a", "left"}
	KeysRight = []string{"d", "right"}
	KeysDown  = []string{"s", "down"}
	KeysUp    = []string{"w", "up"}
)

// ProposeCenter applies one movement step per held direction.
// The step is per call, not per second.
func ProposeCenter(current core.Vec2, keys core.HeldKeySet, step float64) core.Vec2 {
	next := current
	if keys.Len() == 0 {
		return next
	}
	if keys.Any(KeysLeft...) {
		next.X -= step
	}
	if keys.Any(KeysRight...) {
		next.X += step
	}
	if keys.Any(KeysDown...) {
		next.Y -= step
	}
	if keys.Any(KeysUp...) {
		next.Y += step
	}
	return next
}

// UpdateCenter computes the next character position. A proposal that lands
// on a boundary polygon is snapped to the nearest point of its outer ring.
// Nothing is queried while the proposal equals the current position, and a
// failed projection leaves the position unchanged for this frame.
func UpdateCenter(current core.Vec2, keys core.HeldKeySet, step float64, p Picker) core.Vec2 {
	proposal := ProposeCenter(current, keys, step)
	if proposal == current {
		return current
	}

	screen, ok := p.Project(proposal)
	if !ok {
		return current
	}

	if boundary, hit := p.QueryAt(screen); hit {
		if snapped, _, ok := core.NearestPointOnRing(boundary.Outer(), proposal); ok {
			return snapped
		}
	}
	return proposal
}

// DeckPicker adapts a deck.Deck to Picker, restricting queries to one layer.
type DeckPicker struct {
	Deck    *deck.Deck
	LayerID string
	Radius  float64
}

// Project implements Picker.
func (p DeckPicker) Project(world core.Vec2) (core.Vec2, bool) {
	return p.Deck.Viewport().Project(world)
}

// QueryAt implements Picker.
func (p DeckPicker) QueryAt(screen core.Vec2) (deck.Polygon, bool) {
	info, ok := p.Deck.PickObject(deck.PickRequest{
		X:        screen.X,
		Y:        screen.Y,
		Radius:   p.Radius,
		LayerIDs: []string{p.LayerID},
	})
	if !ok {
		return deck.Polygon{}, false
	}
	poly, ok := info.Object.(deck.Polygon)
	return poly, ok
}
