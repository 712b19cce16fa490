// Package live shows a continuously refreshing report in the terminal.
// Every tick builds a fresh snapshot; a snapshot is never updated in place.
package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vizex/pkg/report"
	"vizex/pkg/source"
)

// DefaultInterval is the refresh period when none is given.
const DefaultInterval = time.Second

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

type snapshotMsg struct {
	snap *report.Snapshot
	err  error
}

// Model is the bubbletea model of the live view.
type Model struct {
	src      source.Source
	req      report.Request
	interval time.Duration

	snap    *report.Snapshot
	err     error
	samples int
}

// NewModel returns a model that rebuilds req from src every interval.
func NewModel(src source.Source, req report.Request, interval time.Duration) *Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Model{src: src, req: req, interval: interval}
}

func (m *Model) Init() tea.Cmd { return m.sample() }

// sample builds one snapshot off the update loop.
func (m *Model) sample() tea.Cmd {
	src, req := m.src, m.req
	return func() tea.Msg {
		req.Now = time.Time{}
		snap, err := report.Build(src, req)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
	case tickMsg:
		return m, m.sample()
	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.snap = msg.snap
		m.samples++
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var sb strings.Builder
	title := fmt.Sprintf("%s  every %s  (%s to %s)", m.req.Subject, m.interval, keys.Quit.Help().Key, keys.Quit.Help().Desc)
	sb.WriteString(m.req.Theme.Header(title))
	sb.WriteString("\n\n")
	if m.snap == nil {
		sb.WriteString("Sampling...\n")
		return sb.String()
	}
	for _, line := range m.snap.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Snapshot returns the most recent snapshot, nil before the first sample.
func (m *Model) Snapshot() *report.Snapshot { return m.snap }

// Err returns the sampling failure that stopped the view, if any.
func (m *Model) Err() error { return m.err }

// Run shows the live view on out until the user quits or ctx is done.
func Run(ctx context.Context, src source.Source, req report.Request, interval time.Duration, out io.Writer) error {
	m := NewModel(src, req, interval)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())

	slog.Debug("Starting live view", "subject", req.Subject, "interval", m.interval)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("live view failed: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		slog.Debug("Live view stopped", "samples", fm.samples)
		return fm.err
	}
	return nil
}
