// Package tui is the Bubble Tea front end: the game model feeding a frame
// driver, the game picker, the runs table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// TickMsg is sent to trigger one simulated frame. It carries the frame time.
type TickMsg time.Time

// tickCmd schedules the next frame at the config's frame rate.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
