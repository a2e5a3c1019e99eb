package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debouncer delays search commits. Each Trigger supersedes the previous one;
// only the firing whose sequence number is still current is accepted.
type debouncer struct {
	delay   time.Duration
	seq     int
	pending bool
}

type searchFireMsg struct {
	seq  int
	term string
}

func (d *debouncer) Trigger(term string) tea.Cmd {
	d.seq++
	d.pending = true
	msg := searchFireMsg{seq: d.seq, term: term}
	if d.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg { return msg })
}

// Cancel invalidates any pending firing.
func (d *debouncer) Cancel() {
	d.seq++
	d.pending = false
}

// Pending reports whether a firing is still awaited.
func (d *debouncer) Pending() bool { return d.pending }

func (d *debouncer) Accept(msg searchFireMsg) bool {
	if msg.seq != d.seq {
		return false
	}
	d.pending = false
	return true
}
