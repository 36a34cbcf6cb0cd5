// Package ui implements the watch subcommand's dev-mode dashboard: a
// bubbletea program showing fiber/effect scheduling activity while
// cmd/arbor watch keeps a Scope alive and re-renders on file changes.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// Tick reports one watch-loop iteration: a file event observed,
// a Scope re-render triggered, and the resulting fiber/patch counts.
type Tick struct {
	Path        string
	FiberCount  int
	PatchCount  int
	RenderCount int
	BatchDepth  int
	At          time.Time
}

// quitMsg tells the dashboard the watch loop stopped.
type quitMsg struct{ err error }

// Model is the dashboard's bubbletea state: the latest Tick plus a
// rolling log of the last few file events.
type Model struct {
	spinner spinner.Model
	addr    string
	last    Tick
	events  []string
	err     error
	done    bool
}

// NewModel builds a dashboard bound to the dev server listening at addr.
func NewModel(addr string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{spinner: s, addr: addr}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Tick:
		m.last = msg
		line := fmt.Sprintf("%s  %s  fibers=%d patches=%d",
			msg.At.Format("15:04:05"), msg.Path, msg.FiberCount, msg.PatchCount)
		m.events = append(m.events, line)
		if len(m.events) > 8 {
			m.events = m.events[len(m.events)-8:]
		}
		return m, nil

	case quitMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("watch stopped: %v\n", m.err)
		}
		return "watch stopped\n"
	}

	header := titleStyle.Render("arbor watch") + "  " + labelStyle.Render(m.addr)

	stats := fmt.Sprintf(
		"%s %s    %s %s    %s %s",
		labelStyle.Render("renders"), valueStyle.Render(fmt.Sprintf("%d", m.last.RenderCount)),
		labelStyle.Render("fibers"), valueStyle.Render(fmt.Sprintf("%d", m.last.FiberCount)),
		labelStyle.Render("batch depth"), valueStyle.Render(fmt.Sprintf("%d", m.last.BatchDepth)),
	)

	body := m.spinner.View() + " watching for changes\n\n" + stats + "\n"
	for _, e := range m.events {
		body += "\n" + eventStyle.Render(e)
	}

	footer := footerStyle.Render("q or ctrl+c to quit")

	return header + "\n\n" + body + "\n\n" + footer + "\n"
}
