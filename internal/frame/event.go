// Package frame drives a game one frame at a time. A Driver owns the per-frame
// state (held keys, pointer, click latch) and receives input only through a
// Broadcaster subscription, which Stop removes.
package frame

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// EventKind identifies an input event.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	Blur
	PointerMove
	PointerLeave
	Click
	Action // a platform action such as pause, carried in Event.Action
)

var kindNames = [...]string{"keydown", "keyup", "blur", "pointer", "leave", "click", "action"}

// String returns the script name of the kind.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseEventKind parses a kind name as written in input scripts.
func ParseEventKind(s string) (EventKind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("frame: unknown event kind %q", s)
}

// Event is one input event.
type Event struct {
	Kind   EventKind
	Key    string      // KeyDown, KeyUp
	X, Y   float64     // PointerMove, Click: screen cell
	Action core.Action // Action
	At     time.Time   // zero means the driver's clock
}

// Broadcaster fans input events out to its subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

// NewBroadcaster creates a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (b *Broadcaster) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Emit delivers e to every subscriber, in subscription order.
func (b *Broadcaster) Emit(e Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
