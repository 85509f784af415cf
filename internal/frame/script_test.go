package frame

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

const walkScript = `
game: dungeon
fps: 10
events:
  - frame: 3
    kind: keyup
    key: w
  - frame: 0
    kind: keydown
    key: w
  - frame: 1
    kind: pointer
    x: 40
    y: 0
  - frame: 2
    kind: click
  - frame: 4
    kind: action
    action: pause
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(walkScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Game != "dungeon" || s.FPS != 10 || s.Frames != 5 {
		t.Errorf("script header = %+v", s)
	}
	if s.Width != 80 || s.Height != 24 {
		t.Errorf("default size = %dx%d", s.Width, s.Height)
	}
	if s.Events[0].Frame != 0 || s.Events[len(s.Events)-1].Frame != 4 {
		t.Errorf("events not sorted by frame: %+v", s.Events)
	}
	if s.Interval() != 100*time.Millisecond {
		t.Errorf("Interval = %v", s.Interval())
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "events: [",
		"unknown kind":   "events:\n  - kind: jump\n",
		"missing key":    "events:\n  - kind: keydown\n",
		"unknown action": "events:\n  - kind: action\n    action: restart\n",
		"negative frame": "events:\n  - frame: -1\n    kind: blur\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseScript([]byte(src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte(walkScript), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Errorf("LoadScript: %v", err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestScriptPlay(t *testing.T) {
	s, err := ParseScript([]byte(walkScript))
	if err != nil {
		t.Fatal(err)
	}

	g := &recordingGame{}
	d := New(g, s.RuntimeConfig(1), Options{})
	b := NewBroadcaster()
	d.Attach(b)

	res := s.Play(d, b, start)
	if res.State.Frames != 5 || g.count() != 5 {
		t.Fatalf("played %d frames, expected 5", g.count())
	}

	g.mu.Lock()
	frames := g.frames
	g.mu.Unlock()

	if !frames[0].Keys.Has("w") || !frames[2].Keys.Has("w") || frames[3].Keys.Has("w") {
		t.Error("w should be held for frames 0-2")
	}
	if !frames[1].HasPointer || frames[1].Pointer != core.V(40, 0) {
		t.Errorf("frame 1 pointer = %+v", frames[1])
	}
	if !frames[2].Click || frames[1].Click {
		t.Error("click should land on frame 2 only")
	}
	if !frames[4].Has(core.ActionPause) {
		t.Error("pause should land on frame 4")
	}
	if !frames[1].Now.Equal(start.Add(100 * time.Millisecond)) {
		t.Errorf("frame 1 time = %v", frames[1].Now)
	}
}

func TestScriptStream(t *testing.T) {
	s, err := ParseScript([]byte("fps: 100\nframes: 3\nevents:\n  - frame: 1\n    kind: keydown\n    key: w\n"))
	if err != nil {
		t.Fatal(err)
	}

	b := NewBroadcaster()
	got := make(chan Event, 1)
	b.Subscribe(func(e Event) { got <- e })

	if err := s.Stream(context.Background(), b); err != nil {
		t.Fatalf("Stream: %v", err)
	}
	select {
	case e := <-got:
		if e.Kind != KeyDown || e.Key != "w" {
			t.Errorf("streamed %+v", e)
		}
	default:
		t.Error("event was not streamed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Stream(ctx, b); err == nil {
		t.Error("cancelled stream should fail")
	}
}
