package core

import (
	"sort"
	"time"
)

// Action represents a discrete platform-level intent, abstracted from keys.
type Action int

const (
	ActionNone  Action = iota
	ActionPause        // P - pause/unpause
	ActionBack         // B, Esc - back to menu
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// HeldKeys tracks the currently depressed keys.
// Keys are added on press, removed on release and cleared on focus loss.
// Terminals without key-release reporting rely on Expire: a key that has
// not been re-pressed (auto-repeat) within the hold window counts as released.
type HeldKeys struct {
	pressed map[string]time.Time
}

// NewHeldKeys creates an empty held-key set.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{pressed: make(map[string]time.Time)}
}

// Press marks key as held, refreshing its press time.
func (h *HeldKeys) Press(key string, now time.Time) {
	if h.pressed == nil {
		h.pressed = make(map[string]time.Time)
	}
	h.pressed[key] = now
}

// Release removes key from the set.
func (h *HeldKeys) Release(key string) {
	delete(h.pressed, key)
}

// Clear removes every key. Called on focus loss.
func (h *HeldKeys) Clear() {
	clear(h.pressed)
}

// Has reports whether key is held.
func (h *HeldKeys) Has(key string) bool {
	_, ok := h.pressed[key]
	return ok
}

// Len returns the number of held keys.
func (h *HeldKeys) Len() int {
	return len(h.pressed)
}

// Expire releases keys last pressed more than hold ago and returns how many
// were released. A non-positive hold disables expiry.
func (h *HeldKeys) Expire(now time.Time, hold time.Duration) int {
	if hold <= 0 {
		return 0
	}
	n := 0
	for k, at := range h.pressed {
		if now.Sub(at) > hold {
			delete(h.pressed, k)
			n++
		}
	}
	return n
}

// Snapshot returns an immutable copy of the held keys for one frame.
func (h *HeldKeys) Snapshot() HeldKeySet {
	set := make(HeldKeySet, len(h.pressed))
	for k := range h.pressed {
		set[k] = struct{}{}
	}
	return set
}

// HeldKeySet is a read-only view of the held keys at a given instant.
type HeldKeySet map[string]struct{}

// KeySet builds a HeldKeySet from key names.
func KeySet(keys ...string) HeldKeySet {
	set := make(HeldKeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s HeldKeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Any reports whether at least one of keys is in the set.
func (s HeldKeySet) Any(keys ...string) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// Len returns the number of keys in the set.
func (s HeldKeySet) Len() int {
	return len(s)
}

// Sorted returns the key names in lexical order.
func (s HeldKeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InputFrame is everything a game sees from the input side during one frame.
type InputFrame struct {
	// Actions triggered since the previous frame.
	Actions map[Action]bool

	// Keys held during this frame.
	Keys HeldKeySet

	// Pointer is the position in screen cells of the latest pointer move
	// since the previous frame. Only valid when HasPointer is set.
	Pointer    Vec2
	HasPointer bool

	// Click is set when the pointer was clicked since the previous frame.
	Click bool

	// Now is the wall-clock time of the frame.
	Now time.Time
}

// NewInputFrame creates an empty input frame stamped with now.
func NewInputFrame(now time.Time) InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Keys:    HeldKeySet{},
		Now:     now,
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}
