// dungeon runs the dungeon crawler and the trackout driving prototype in the
// terminal.
//
// Usage:
//
//	dungeon list                   - List available games
//	dungeon play <game>            - Play a game
//	dungeon menu                   - Start menu to pick games interactively
//	dungeon serve                  - Start SSH server for remote play
//	dungeon scores <game>          - Show the best runs of a game
//	dungeon sim --script <file>    - Replay an input script headlessly
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.arcade/runs.db)
//	--config <path>      - Custom game config YAML
//	--map <path>         - Custom dungeon map (GeoJSON or YAML)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/games/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/games/trackout"
	"github.com/vovakirdan/tui-dungeon/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagMap      string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Dungeon - walk a polygon map or drive a box car in your terminal",
	Long: `Dungeon plays two prototypes in the terminal: a dungeon crawler whose
character is snapped to the walkable polygons of a map and swings a pickaxe
at the mouse pointer, and trackout, a top-down box car on a bounded ground.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Replay an input script without a terminal

Examples:
  dungeon list
  dungeon play dungeon --map ./cave.geojson
  dungeon play trackout
  dungeon menu
  dungeon serve --ssh :2222
  dungeon sim --script ./walk.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Path to custom dungeon map")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// configureGames passes the file flags and the logger to the games before
// they are created. Games read them on Reset.
func configureGames(logger *log.Logger) {
	dungeon.SetConfigPath(flagConfig)
	dungeon.SetMapPath(flagMap)
	trackout.SetConfigPath(flagConfig)
	trackout.SetLogger(logger)
}

// fileLogger returns a logger for programs that own the terminal. Logs go to
// ~/.arcade/logs/<name>.log, or nowhere if the file cannot be opened.
func fileLogger(name string) (*log.Logger, func()) {
	logger, closer, err := logging.OpenFile(name, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { closer.Close() }
}

// stderrLogger returns a logger for commands that do not take over the
// terminal.
func stderrLogger() *log.Logger {
	return logging.New(os.Stderr, flagLogLevel, "dungeon")
}
