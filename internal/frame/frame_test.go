package frame

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// recordingGame keeps every input frame it was stepped with.
type recordingGame struct {
	mu      sync.Mutex
	resets  int
	resized [2]int
	frames  []core.InputFrame
	hold    time.Duration
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }
func (g *recordingGame) Reset(core.RuntimeConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resets++
	g.frames = nil
}
func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frames = append(g.frames, in)
	return core.StepResult{State: core.GameState{Frames: len(g.frames), Score: len(g.frames) / 2}}
}
func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "rec") }
func (g *recordingGame) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return core.GameState{Frames: len(g.frames)}
}
func (g *recordingGame) KeyHold() time.Duration { return g.hold }

func (g *recordingGame) last() core.InputFrame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frames[len(g.frames)-1]
}

func (g *recordingGame) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.frames)
}

// resizingGame also implements Resizer.
type resizingGame struct {
	recordingGame
}

func (g *resizingGame) Resize(cols, rows int) { g.resized = [2]int{cols, rows} }

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newDriver(g *recordingGame, opts Options) (*Driver, *Broadcaster) {
	d := New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}, opts)
	b := NewBroadcaster()
	d.Attach(b)
	return d, b
}

func TestDriverHeldKeys(t *testing.T) {
	g := &recordingGame{}
	d, b := newDriver(g, Options{})

	b.Emit(Event{Kind: KeyDown, Key: "w", At: start})
	b.Emit(Event{Kind: KeyDown, Key: "a", At: start})
	d.Tick(start)
	if keys := g.last().Keys; !keys.Has("w") || !keys.Has("a") {
		t.Errorf("keys = %v, expected w and a", keys.Sorted())
	}

	b.Emit(Event{Kind: KeyUp, Key: "a"})
	d.Tick(start.Add(time.Second))
	if keys := g.last().Keys; !keys.Has("w") || keys.Has("a") {
		t.Errorf("keys after release = %v, expected only w", keys.Sorted())
	}

	b.Emit(Event{Kind: Blur})
	d.Tick(start.Add(2 * time.Second))
	if g.last().Keys.Len() != 0 {
		t.Errorf("blur should clear held keys, got %v", g.last().Keys.Sorted())
	}
}

func TestDriverHoldExpiry(t *testing.T) {
	g := &recordingGame{hold: 150 * time.Millisecond}
	d, b := newDriver(g, Options{GameHold: true})

	b.Emit(Event{Kind: KeyDown, Key: "d", At: start})
	d.Tick(start.Add(100 * time.Millisecond))
	if !g.last().Keys.Has("d") {
		t.Error("key should still be held within the hold window")
	}

	d.Tick(start.Add(200 * time.Millisecond))
	if g.last().Keys.Has("d") {
		t.Error("key should expire after the hold window")
	}
}

func TestDriverPointerAndClickLatch(t *testing.T) {
	g := &recordingGame{}
	d, b := newDriver(g, Options{})

	b.Emit(Event{Kind: PointerMove, X: 10, Y: 5})
	b.Emit(Event{Kind: Click, X: 10, Y: 5})
	d.Tick(start)

	in := g.last()
	if !in.HasPointer || in.Pointer != core.V(10, 5) || !in.Click {
		t.Errorf("frame = %+v, expected pointer (10, 5) and click", in)
	}

	d.Tick(start.Add(time.Second))
	in = g.last()
	if in.HasPointer || in.Click {
		t.Errorf("pointer move and click should be consumed, got %+v", in)
	}

	b.Emit(Event{Kind: PointerMove, X: 1, Y: 1})
	b.Emit(Event{Kind: PointerLeave})
	d.Tick(start.Add(2 * time.Second))
	if g.last().HasPointer {
		t.Error("pointer leave should drop the pending move")
	}
}

func TestDriverActions(t *testing.T) {
	g := &recordingGame{}
	d, b := newDriver(g, Options{})

	b.Emit(Event{Kind: Action, Action: core.ActionPause})
	d.Tick(start)
	if !g.last().Has(core.ActionPause) {
		t.Error("pause action should reach the game")
	}
	d.Tick(start)
	if g.last().Has(core.ActionPause) {
		t.Error("actions should last one frame")
	}
}

func TestDriverStopDeregisters(t *testing.T) {
	g := &recordingGame{}
	d, b := newDriver(g, Options{})
	if b.Len() != 1 {
		t.Fatalf("expected one subscription, got %d", b.Len())
	}

	d.Tick(start)
	d.Stop()
	d.Stop()

	if b.Len() != 0 {
		t.Errorf("Stop should remove the subscription, %d left", b.Len())
	}
	b.Emit(Event{Kind: KeyDown, Key: "w"})
	d.Handle(Event{Kind: KeyDown, Key: "w"})
	if d.HeldKeys().Len() != 0 {
		t.Error("events after Stop should be dropped")
	}

	d.Tick(start.Add(time.Second))
	if g.count() != 1 {
		t.Errorf("Tick after Stop should not step, got %d frames", g.count())
	}

	// Attaching a stopped driver does not leak a subscription.
	d.Attach(b)
	if b.Len() != 0 {
		t.Errorf("stopped driver attached, %d subscriptions", b.Len())
	}
}

func TestDriverOnFrame(t *testing.T) {
	g := &recordingGame{}
	var got []int
	d, _ := newDriver(g, Options{OnFrame: func(r core.StepResult) { got = append(got, r.State.Frames) }})

	d.Tick(start)
	d.Tick(start)
	if len(got) != 2 || got[1] != 2 {
		t.Errorf("OnFrame calls = %v", got)
	}
	if d.State().Frames != 2 {
		t.Errorf("State().Frames = %d", d.State().Frames)
	}
}

func TestDriverResize(t *testing.T) {
	plain := &recordingGame{}
	d, _ := newDriver(plain, Options{})
	d.Resize(100, 40)
	if plain.resets != 2 {
		t.Errorf("non-resizer should be reset, resets=%d", plain.resets)
	}
	if s := d.Render(); s.Width() != 100 || s.Height() != 40 {
		t.Errorf("screen = %dx%d", s.Width(), s.Height())
	}

	rg := &resizingGame{}
	d2 := New(rg, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, Options{})
	d2.Resize(50, 20)
	if rg.resets != 1 || rg.resized != [2]int{50, 20} {
		t.Errorf("resizer: resets=%d resized=%v", rg.resets, rg.resized)
	}
}

func TestRunWithoutScreenReturns(t *testing.T) {
	g := &recordingGame{}
	d := New(g, core.RuntimeConfig{ScreenW: 0, ScreenH: 0, TickRate: 30}, Options{})

	if err := d.Run(context.Background()); err != nil {
		t.Errorf("Run = %v, expected nil", err)
	}
	if g.count() != 0 {
		t.Error("no frame should run without a screen")
	}
}

func TestRunStopsOnStop(t *testing.T) {
	g := &recordingGame{}
	d := New(g, core.RuntimeConfig{ScreenW: 10, ScreenH: 10, TickRate: 200}, Options{})

	errc := make(chan error, 1)
	go func() { errc <- d.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for g.count() < 3 {
		select {
		case <-deadline:
			t.Fatal("driver did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	d.Stop()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v, expected nil after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestRunHonoursContext(t *testing.T) {
	g := &recordingGame{}
	d := New(g, core.RuntimeConfig{ScreenW: 10, ScreenH: 10, TickRate: 100}, Options{})
	b := NewBroadcaster()
	d.Attach(b)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := d.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, expected deadline exceeded", err)
	}
	if !d.Stopped() || b.Len() != 0 {
		t.Error("cancellation should stop the driver and deregister it")
	}
}

func TestBroadcasterOrderAndUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	var order []string
	unsubA := b.Subscribe(func(Event) { order = append(order, "a") })
	b.Subscribe(func(Event) { order = append(order, "b") })

	b.Emit(Event{})
	unsubA()
	unsubA()
	b.Emit(Event{})

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, expected %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, expected %v", order, want)
		}
	}
}

func TestParseEventKind(t *testing.T) {
	for k := KeyDown; k <= Action; k++ {
		got, err := ParseEventKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseEventKind("jump"); err == nil {
		t.Error("unknown kind should fail")
	}
}
