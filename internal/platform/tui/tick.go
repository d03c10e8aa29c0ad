// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, score submission and the
// menu/scoreboard screens, locally and over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// GameModel whose tick loop produced it.
type TickMsg struct {
	Loop int64
	At   time.Time
}

var seq atomic.Int64

// nextSeq returns a process-wide unique, increasing number. It tags tick
// loops and game generations so messages from an old game are recognizable.
func nextSeq() int64 {
	return seq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}
