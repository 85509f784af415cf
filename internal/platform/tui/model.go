package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/frame"
	"github.com/vovakirdan/tui-dungeon/internal/logging"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

// helpRows is the number of terminal rows reserved below the game screen.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running one game. Terminal input is turned
// into frame events and broadcast to the game's driver; every tick advances
// the driver by one frame.
type Model struct {
	driver  *frame.Driver
	events  *frame.Broadcaster
	store   *storage.Store
	config  core.RuntimeConfig
	keys    GameKeyMap
	help    help.Model
	logger  *log.Logger
	started time.Time

	standalone bool // quit the program on back instead of returning to a menu
	state      core.GameState
	quitting   bool
	backToMenu bool
	saved      *bool
}

// NewModel creates a model for game. The game is reset for the screen area
// left above the help bar.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	rc := cfg
	rc.ScreenH = max(cfg.ScreenH-helpRows, 0)

	events := frame.NewBroadcaster()
	driver := frame.New(game, rc, frame.Options{GameHold: true, Logger: logger})
	driver.Attach(events)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		driver:     driver,
		events:     events,
		store:      store,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		logger:     logger,
		started:    time.Now(),
		standalone: true,
		state:      driver.State(),
		saved:      new(bool),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("game started", "game", m.driver.Game().ID(), "width", m.config.ScreenW, "height", m.config.ScreenH)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		m.events.Emit(frame.Event{Kind: frame.Blur})
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.driver.Resize(msg.Width, max(msg.Height-helpRows, 0))
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Platform bindings are handled here,
// every other key is held down in the game.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.finish(storage.EndBack)
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.events.Emit(frame.Event{Kind: frame.Action, Action: core.ActionPause})

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		m.events.Emit(frame.Event{Kind: frame.KeyDown, Key: HeldKeyName(msg)})
	}
	return m, nil
}

// handleMouse forwards pointer moves and left clicks. Positions are screen
// cells, which match the game screen since it starts at the top-left corner.
func (m Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.events.Emit(frame.Event{Kind: frame.PointerMove, X: x, Y: y})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.events.Emit(frame.Event{Kind: frame.Click, X: x, Y: y})
	}
}

// handleTick simulates one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.driver.Stopped() {
		return m, nil
	}
	m.state = m.driver.Tick(now).State
	return m, tickCmd(m.config)
}

// finish stops the driver and records the run once. Runs without a score
// are not stored.
func (m *Model) finish(reason string) {
	m.driver.Stop()
	if *m.saved {
		return
	}
	*m.saved = true

	state := m.driver.State()
	game := m.driver.Game()
	m.logger.Info("game ended", "game", game.ID(), "reason", reason, "score", state.Score, "frames", state.Frames)

	if m.store == nil || state.Score <= 0 {
		return
	}
	run, err := m.store.SaveRun(storage.Run{
		GameID:    game.ID(),
		Score:     state.Score,
		Frames:    state.Frames,
		Duration:  time.Since(m.started),
		EndReason: reason,
	})
	if err != nil {
		m.logger.Error("cannot save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "run", run.RunID)
}

// saveScreenshot writes the current screen as plain text to
// ~/.arcade/screenshots and returns the file path.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.driver.Game().ID(), timestamp))
	screen := m.driver.Render()
	return path, os.WriteFile(path, []byte(screen.String()), 0o600)
}

// View renders the game screen followed by the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	screen := RenderScreen(m.driver.Render())
	if m.help.ShowAll {
		return screen + "\n" + helpStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return screen + "\n" + helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// State returns the state reported by the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// ProgramOptions are the Bubble Tea options every game program needs:
// pointer motion for aiming and focus reports to release held keys.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)
	_, err := tea.NewProgram(model, ProgramOptions()...).Run()
	model.driver.Stop()
	return err
}
