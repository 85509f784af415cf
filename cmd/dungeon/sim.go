package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/frame"
	"github.com/vovakirdan/tui-dungeon/internal/games/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/games/trackout"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagScript   string
	flagRealtime bool
	flagNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [game]",
	Short: "Replay an input script without a terminal",
	Long: `Run a game headlessly from a YAML input script and print the final state.

The script lists input events by frame number:

  game: dungeon
  fps: 60
  width: 80
  height: 24
  events:
    - {frame: 0, kind: keydown, key: w}
    - {frame: 30, kind: pointer, x: 60, y: 12}
    - {frame: 31, kind: click, x: 60, y: 12}
    - {frame: 90, kind: action, action: quit}

By default frames run on a simulated clock, so a script always gives the same
result for the same seed. --realtime runs the frame loop at the script's frame
rate and feeds the events as they come due.

Examples:
  dungeon sim --script ./walk.yaml
  dungeon sim trackout --script ./drive.yaml --realtime`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to the input script YAML")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run at wall-clock speed")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
	_ = simCmd.MarkFlagRequired("script")
}

// simResult is printed as YAML when a simulation ends.
type simResult struct {
	Game     string        `yaml:"game"`
	End      string        `yaml:"end"`
	Score    int           `yaml:"score"`
	Frames   int           `yaml:"frames"`
	Hash     uint64        `yaml:"hash,omitempty"`
	State    string        `yaml:"state,omitempty"`
	Snapshot any           `yaml:"snapshot,omitempty"`
	Duration time.Duration `yaml:"-"`
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := stderrLogger()
	configureGames(logger)

	script, err := frame.LoadScript(flagScript)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		script.Game = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := simulate(ctx, script, flagSeed, flagRealtime, logger)
	if err != nil {
		return err
	}

	if !flagNoSave && res.Score > 0 {
		if err := saveSimRun(res); err != nil {
			logger.Warn("run not recorded", "error", err)
		}
	}

	out, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// simulate plays script against a fresh game. Quit and back actions in the
// script end the run early.
func simulate(ctx context.Context, script frame.Script, seed int64, realtime bool, logger *log.Logger) (simResult, error) {
	game, err := registry.Create(script.Game)
	if err != nil {
		return simResult{}, err
	}

	events := frame.NewBroadcaster()
	d := frame.New(game, script.RuntimeConfig(seed), frame.Options{GameHold: true, Logger: logger})
	d.Attach(events)

	end := storage.EndSim
	unsub := events.Subscribe(func(e frame.Event) {
		if e.Kind != frame.Action {
			return
		}
		switch e.Action {
		case core.ActionQuit:
			end = storage.EndQuit
			d.Stop()
		case core.ActionBack:
			end = storage.EndBack
			d.Stop()
		}
	})
	defer unsub()

	logger.Info("simulation started", "game", game.ID(), "frames", script.Frames, "fps", script.FPS, "realtime", realtime)
	started := time.Now()

	var state core.GameState
	if realtime {
		state, err = simulateRealtime(ctx, script, d, events)
		if err != nil {
			return simResult{}, err
		}
	} else {
		state = script.Play(d, events, started).State
		d.Stop()
	}

	res := simResult{
		Game:     game.ID(),
		End:      end,
		Score:    state.Score,
		Frames:   state.Frames,
		Duration: time.Since(started),
	}
	if desc, ok := game.(registry.Describer); ok {
		res.State = desc.Describe()
	}
	switch g := game.(type) {
	case *dungeon.Game:
		snap := g.Snapshot()
		res.Snapshot, res.Hash = snap, snap.Hash()
	case *trackout.Game:
		snap := g.Snapshot()
		res.Snapshot, res.Hash = snap, snap.Hash()
	}

	logger.Info("simulation ended", "game", res.Game, "end", res.End, "score", res.Score, "frames", res.Frames)
	return res, nil
}

// simulateRealtime runs the driver's frame loop while the script's events are
// streamed in. Whichever finishes first ends the other.
func simulateRealtime(ctx context.Context, script frame.Script, d *frame.Driver, events *frame.Broadcaster) (core.GameState, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.Run(gctx)
	})
	g.Go(func() error {
		streamCtx, cancel := context.WithCancel(gctx)
		defer cancel()
		go func() {
			select {
			case <-d.Done():
				cancel()
			case <-streamCtx.Done():
			}
		}()
		err := script.Stream(streamCtx, events)
		d.Stop()
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil // stopped by a scripted quit
		}
		return err
	})

	// An interrupt still reports the state reached so far.
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return d.State(), err
	}
	return d.State(), nil
}

func saveSimRun(res simResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(storage.Run{
		GameID:    res.Game,
		Score:     res.Score,
		Frames:    res.Frames,
		Duration:  res.Duration,
		EndReason: res.End,
	})
	return err
}
