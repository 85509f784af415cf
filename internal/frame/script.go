package frame

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// ScriptEvent is one scripted input event, fired before the given frame.
type ScriptEvent struct {
	Frame  int     `yaml:"frame"`
	Kind   string  `yaml:"kind"`
	Key    string  `yaml:"key,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Action string  `yaml:"action,omitempty"`
}

// Script is a recorded input session for headless runs.
type Script struct {
	Game   string        `yaml:"game"`
	Frames int           `yaml:"frames"`
	FPS    int           `yaml:"fps"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Events []ScriptEvent `yaml:"events"`
}

// LoadScript reads and validates a YAML input script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("frame: reading script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("frame: %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes a YAML input script, filling defaults for the frame
// rate and screen size.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parsing script: %w", err)
	}

	def := core.DefaultConfig()
	if s.FPS <= 0 {
		s.FPS = def.TickRate
	}
	if s.Width <= 0 {
		s.Width = def.ScreenW
	}
	if s.Height <= 0 {
		s.Height = def.ScreenH
	}

	last := -1
	for i, e := range s.Events {
		if e.Frame < 0 {
			return Script{}, fmt.Errorf("event %d: negative frame %d", i, e.Frame)
		}
		if _, err := e.event(); err != nil {
			return Script{}, fmt.Errorf("event %d: %w", i, err)
		}
		last = max(last, e.Frame)
	}
	if s.Frames <= 0 {
		s.Frames = last + 1
	}

	slices.SortStableFunc(s.Events, func(a, b ScriptEvent) int {
		return a.Frame - b.Frame
	})
	return s, nil
}

func (e ScriptEvent) event() (Event, error) {
	kind, err := ParseEventKind(e.Kind)
	if err != nil {
		return Event{}, err
	}
	ev := Event{Kind: kind, Key: e.Key, X: e.X, Y: e.Y}

	switch kind {
	case KeyDown, KeyUp:
		if e.Key == "" {
			return Event{}, fmt.Errorf("%s needs a key", kind)
		}
	case Action:
		a, ok := parseAction(e.Action)
		if !ok {
			return Event{}, fmt.Errorf("unknown action %q", e.Action)
		}
		ev.Action = a
	}
	return ev, nil
}

func parseAction(s string) (core.Action, bool) {
	for _, a := range []core.Action{core.ActionPause, core.ActionBack, core.ActionQuit} {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return core.ActionNone, false
}

// RuntimeConfig returns the runtime config the script was written for.
func (s Script) RuntimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  s.Width,
		ScreenH:  s.Height,
		TickRate: s.FPS,
		Seed:     seed,
	}
}

// Interval returns the simulated time between frames.
func (s Script) Interval() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Play runs the script through b and d on a simulated clock starting at
// start. Each frame's events are emitted, then the frame is ticked. The
// result is the last frame's.
func (s Script) Play(d *Driver, b *Broadcaster, start time.Time) core.StepResult {
	res := core.StepResult{State: d.State()}
	next := 0
	for f := range s.Frames {
		now := start.Add(time.Duration(f) * s.Interval())
		for next < len(s.Events) && s.Events[next].Frame == f {
			ev, _ := s.Events[next].event()
			ev.At = now
			b.Emit(ev)
			next++
		}
		res = d.Tick(now)
		if d.Stopped() {
			break
		}
	}
	return res
}

// Stream emits the script's events in real time, each at its frame offset
// from the call, while another goroutine runs the driver. It returns once
// every event was emitted, the last frame's time has passed, or ctx is done.
func (s Script) Stream(ctx context.Context, b *Broadcaster) error {
	start := time.Now()
	for _, se := range s.Events {
		ev, _ := se.event()
		wait := time.Until(start.Add(time.Duration(se.Frame) * s.Interval()))
		if err := sleep(ctx, wait); err != nil {
			return err
		}
		b.Emit(ev)
	}
	return sleep(ctx, time.Until(start.Add(time.Duration(s.Frames)*s.Interval())))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
