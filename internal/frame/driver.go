package frame

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/logging"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

// Resizer is implemented by games that adapt to a new screen size without a
// reset.
type Resizer interface {
	Resize(cols, rows int)
}

// KeyHolder is implemented by games that configure the key hold window.
type KeyHolder interface {
	KeyHold() time.Duration
}

// Options configures a Driver.
type Options struct {
	// Hold is how long a key counts as held after its last press when the
	// terminal does not report releases. Zero disables expiry.
	Hold time.Duration

	// GameHold takes the hold window from a game implementing KeyHolder,
	// overriding Hold.
	GameHold bool

	// OnFrame is called after every simulated frame, outside the lock.
	OnFrame func(core.StepResult)

	Logger *log.Logger
	Clock  func() time.Time
}

// Driver owns everything that changes from frame to frame: the game, the
// held keys, the last pointer move, the click latch and pending actions.
type Driver struct {
	mu sync.Mutex

	game   registry.Game
	rc     core.RuntimeConfig
	screen *core.Screen
	keys   *core.HeldKeys
	hold   time.Duration

	pointer      core.Vec2
	pointerMoved bool
	click        bool
	actions      map[core.Action]bool

	state   core.GameState
	unsubs  []func()
	stopped bool
	done    chan struct{}

	onFrame func(core.StepResult)
	logger  *log.Logger
	clock   func() time.Time
}

// New resets game for rc and wraps it in a driver.
func New(game registry.Game, rc core.RuntimeConfig, opts Options) *Driver {
	d := &Driver{
		game:    game,
		rc:      rc,
		screen:  core.NewScreen(rc.ScreenW, rc.ScreenH),
		keys:    core.NewHeldKeys(),
		hold:    opts.Hold,
		actions: make(map[core.Action]bool),
		done:    make(chan struct{}),
		onFrame: opts.OnFrame,
		logger:  opts.Logger,
		clock:   opts.Clock,
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	if d.clock == nil {
		d.clock = time.Now
	}

	game.Reset(rc)
	d.state = game.State()

	if opts.GameHold {
		if h, ok := game.(KeyHolder); ok {
			d.hold = h.KeyHold()
		}
	}
	return d
}

// Attach subscribes the driver to b. Stop removes the subscription.
func (d *Driver) Attach(b *Broadcaster) {
	unsub := b.Subscribe(d.Handle)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		unsub()
		return
	}
	d.unsubs = append(d.unsubs, unsub)
}

// Handle records one input event for the next frame. Events after Stop are
// dropped.
func (d *Driver) Handle(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	at := e.At
	if at.IsZero() {
		at = d.clock()
	}

	switch e.Kind {
	case KeyDown:
		d.keys.Press(e.Key, at)
	case KeyUp:
		d.keys.Release(e.Key)
	case Blur:
		d.keys.Clear()
	case PointerMove:
		d.pointer = core.V(e.X, e.Y)
		d.pointerMoved = true
	case PointerLeave:
		d.pointerMoved = false
	case Click:
		d.pointer = core.V(e.X, e.Y)
		d.click = true
	case Action:
		if e.Action != core.ActionNone {
			d.actions[e.Action] = true
		}
	}
}

// Tick simulates one frame at now. After Stop it returns the last result
// without stepping.
func (d *Driver) Tick(now time.Time) core.StepResult {
	d.mu.Lock()
	if d.stopped {
		res := core.StepResult{State: d.state}
		d.mu.Unlock()
		return res
	}

	if n := d.keys.Expire(now, d.hold); n > 0 {
		d.logger.Debug("released idle keys", "count", n)
	}

	in := core.NewInputFrame(now)
	in.Keys = d.keys.Snapshot()
	in.Click = d.click
	if d.pointerMoved {
		in.Pointer = d.pointer
		in.HasPointer = true
	}
	for a := range d.actions {
		in.Set(a)
	}

	res := d.game.Step(in)
	d.state = res.State

	d.click = false
	d.pointerMoved = false
	clear(d.actions)
	onFrame := d.onFrame
	d.mu.Unlock()

	if onFrame != nil {
		onFrame(res)
	}
	return res
}

// Render draws the game into the driver's screen and returns it.
func (d *Driver) Render() *core.Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.game.Render(d.screen)
	return d.screen
}

// Resize changes the screen size. Games that are not Resizers are reset.
func (d *Driver) Resize(cols, rows int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rc.ScreenW, d.rc.ScreenH = cols, rows
	d.screen.Resize(cols, rows)
	if r, ok := d.game.(Resizer); ok {
		r.Resize(cols, rows)
		return
	}
	d.game.Reset(d.rc)
	d.state = d.game.State()
}

// Reset restarts the game and drops any pending input.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.game.Reset(d.rc)
	d.state = d.game.State()
	d.keys.Clear()
	d.click = false
	d.pointerMoved = false
	clear(d.actions)
}

// Game returns the driven game.
func (d *Driver) Game() registry.Game {
	return d.game
}

// State returns the state reported by the last frame.
func (d *Driver) State() core.GameState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// HeldKeys returns the keys currently held.
func (d *Driver) HeldKeys() core.HeldKeySet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keys.Snapshot()
}

// Stop deregisters every input subscription and ends Run. It is safe to call
// more than once.
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	unsubs := d.unsubs
	d.unsubs = nil
	d.keys.Clear()
	close(d.done)
	frames := d.state.Frames
	d.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	d.logger.Debug("driver stopped", "game", d.game.ID(), "frames", frames)
}

// Stopped reports whether Stop has been called.
func (d *Driver) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// Done is closed by Stop.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Run ticks at the configured frame rate until Stop is called or ctx is
// cancelled. Without a screen area there is nothing to drive and Run returns
// immediately.
func (d *Driver) Run(ctx context.Context) error {
	d.mu.Lock()
	rc := d.rc
	d.mu.Unlock()

	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		d.logger.Debug("no screen area, frame loop not started", "game", d.game.ID())
		return nil
	}

	ticker := time.NewTicker(rc.FrameInterval())
	defer ticker.Stop()
	d.logger.Debug("frame loop started", "game", d.game.ID(), "interval", rc.FrameInterval())

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case <-d.done:
			return nil
		case <-ticker.C:
			d.Tick(d.clock())
		}
	}
}
