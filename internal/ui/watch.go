package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexlane/dappdesk/internal/activity"
)

// WatchSnapshot is one refresh of the live session view.
type WatchSnapshot struct {
	Account string
	Network string
	Balance string // formatted, "?" when the read degraded
	Busy    bool
	Phase   string
	Entries []activity.Entry
}

// WatchModel is the Bubble Tea model streaming session state and the
// activity log. fetch is polled once per tick.
type WatchModel struct {
	fetch    func() WatchSnapshot
	snap     WatchSnapshot
	frame    int
	quitting bool
}

// NewWatchModel creates a live view over fetch.
func NewWatchModel(fetch func() WatchSnapshot) WatchModel {
	return WatchModel{fetch: fetch, snap: fetch()}
}

type watchTickMsg struct{}

func watchTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m WatchModel) Init() tea.Cmd { return watchTick() }

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case watchTickMsg:
		m.snap = m.fetch()
		m.frame++
		return m, watchTick()
	}
	return m, nil
}

func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("dappdesk · live session") + "\n")

	status := Meta("idle")
	if m.snap.Busy {
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		status = StyleWarning.Render(fmt.Sprintf("%s %s", frame, m.snap.Phase))
	}

	sb.WriteString(fmt.Sprintf("  %s %s\n", Meta("Account: "), Addr(m.snap.Account)))
	sb.WriteString(fmt.Sprintf("  %s %s\n", Meta("Network: "), StyleNetwork.Render(m.snap.Network)))
	sb.WriteString(fmt.Sprintf("  %s %s\n", Meta("Balance: "), Val(m.snap.Balance)))
	sb.WriteString(fmt.Sprintf("  %s %s\n\n", Meta("Status:  "), status))

	sb.WriteString(RenderLog(m.snap.Entries) + "\n\n")
	sb.WriteString(Meta("  q: quit"))
	return sb.String()
}
