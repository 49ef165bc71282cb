// Package tui provides the Bubble Tea integration for the Beams puzzle.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg drives one fixed game step. Slide and bounce tweens advance by
// 1/TickRate per message.
type TickMsg time.Time

// tickInterval is the period between steps at rate ticks per second.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
