// Package tui provides the Bubble Tea frontend: the fixed-rate game loop,
// key mapping for terminals without key-up events, the level menu, the
// scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// tick loop that scheduled it; a model ignores ticks of loops it did not start.
type TickMsg struct {
	Loop uint64
	At   time.Time
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh tick loop ID.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}
