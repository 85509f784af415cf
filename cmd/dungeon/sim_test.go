package main

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/frame"
	"github.com/vovakirdan/tui-dungeon/internal/games/trackout"
	"github.com/vovakirdan/tui-dungeon/internal/logging"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

const driveScript = `
game: trackout
fps: 60
width: 80
height: 24
events:
  - {frame: 0, kind: keydown, key: w}
  - {frame: 10, kind: keydown, key: w}
  - {frame: 20, kind: action, action: quit}
  - {frame: 30, kind: keydown, key: s}
`

func parseTestScript(t *testing.T, src string) frame.Script {
	t.Helper()
	script, err := frame.ParseScript([]byte(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return script
}

func TestSimulateStopsOnQuit(t *testing.T) {
	script := parseTestScript(t, driveScript)

	res, err := simulate(context.Background(), script, 1, false, logging.Discard())
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if res.Game != "trackout" || res.End != storage.EndQuit {
		t.Errorf("game %q ended with %q, expected trackout/quit", res.Game, res.End)
	}
	if res.Frames != 20 {
		t.Errorf("Frames = %d, expected 20", res.Frames)
	}
	snap, ok := res.Snapshot.(trackout.Snapshot)
	if !ok {
		t.Fatalf("Snapshot is %T", res.Snapshot)
	}
	if snap.Distance <= 0 {
		t.Error("holding w should move the car")
	}
	if res.State == "" || res.Hash == 0 {
		t.Error("result should describe and hash the final state")
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	script := parseTestScript(t, driveScript)

	a, err := simulate(context.Background(), script, 7, false, logging.Discard())
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := simulate(context.Background(), script, 7, false, logging.Discard())
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a.Hash != b.Hash {
		t.Errorf("hashes differ: %d vs %d", a.Hash, b.Hash)
	}
}

func TestSimulateRunsEveryFrameWithoutQuit(t *testing.T) {
	script := parseTestScript(t, `
game: dungeon
frames: 12
events:
  - {frame: 0, kind: keydown, key: d}
`)

	res, err := simulate(context.Background(), script, 1, false, logging.Discard())
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.End != storage.EndSim || res.Frames != 12 {
		t.Errorf("end %q after %d frames, expected sim after 12", res.End, res.Frames)
	}
}

func TestSimulateUnknownGame(t *testing.T) {
	script := parseTestScript(t, "game: nope\nframes: 1\n")
	if _, err := simulate(context.Background(), script, 1, false, logging.Discard()); err == nil {
		t.Error("an unknown game should fail")
	}
}

func TestSimulateRealtime(t *testing.T) {
	script := parseTestScript(t, `
game: trackout
fps: 60
events:
  - {frame: 0, kind: keydown, key: w}
  - {frame: 3, kind: action, action: quit}
  - {frame: 600, kind: keydown, key: s}
`)

	res, err := simulate(context.Background(), script, 1, true, logging.Discard())
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.End != storage.EndQuit {
		t.Errorf("end = %q, expected quit", res.End)
	}
	if res.Duration > 5*time.Second {
		t.Errorf("a scripted quit should end the run early, took %v", res.Duration)
	}
}
