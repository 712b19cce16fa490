package live

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"vizex/pkg/common"
	"vizex/pkg/report"
	"vizex/pkg/source"
	"vizex/pkg/theme"
)

func cpuRequest() report.Request {
	return report.Request{
		Subject: common.SubjectCPU,
		Theme:   theme.Default(termenv.Ascii),
		Width:   10,
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelSamplesAndRenders(t *testing.T) {
	src := &source.Fake{Cores: []common.CPUCore{{Index: 0, CurrentMHz: 1000, MaxMHz: 2000}}}
	m := NewModel(src, cpuRequest(), 0)
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want default", m.interval)
	}
	if !strings.Contains(m.View(), "Sampling") {
		t.Errorf("view before first sample = %q", m.View())
	}

	msg := m.Init()()
	if _, ok := msg.(snapshotMsg); !ok {
		t.Fatalf("Init produced %T, want snapshotMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Error("expected a tick to be scheduled")
	}
	if m.Snapshot() == nil || m.Snapshot().Len() != 1 {
		t.Fatalf("snapshot not stored")
	}
	if view := m.View(); !strings.Contains(view, "Core 0") || !strings.Contains(view, "50.0%") {
		t.Errorf("view = %q", view)
	}
}

func TestModelTickBuildsFreshSnapshot(t *testing.T) {
	src := &source.Fake{Cores: []common.CPUCore{{Index: 0, CurrentMHz: 1000, MaxMHz: 2000}}}
	m := NewModel(src, cpuRequest(), time.Millisecond)
	m.Update(m.Init()())
	first := m.Snapshot()

	src.Cores[0].CurrentMHz = 2000
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick did not request a sample")
	}
	m.Update(cmd())

	if m.Snapshot() == first {
		t.Error("snapshot was reused")
	}
	if first.Rows()[0].Bar.Percent != 50 {
		t.Errorf("previous snapshot changed: %+v", first.Rows()[0].Bar)
	}
	if m.Snapshot().Rows()[0].Bar.Percent != 100 {
		t.Errorf("new snapshot = %+v", m.Snapshot().Rows()[0].Bar)
	}
}

func TestModelQuitKeys(t *testing.T) {
	msgs := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	}
	for _, msg := range msgs {
		m := NewModel(&source.Fake{}, cpuRequest(), time.Second)
		if _, cmd := m.Update(msg); !isQuit(cmd) {
			t.Errorf("%s did not quit", msg)
		}
	}

	m := NewModel(&source.Fake{}, cpuRequest(), time.Second)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("unbound key produced a command")
	}
}

func TestModelStopsOnSourceError(t *testing.T) {
	src := &source.Fake{CPUErr: &common.SourceError{Source: "cpu", Err: errors.New("boom")}}
	m := NewModel(src, cpuRequest(), time.Second)

	_, cmd := m.Update(m.Init()())
	if !isQuit(cmd) {
		t.Error("expected quit after a failed sample")
	}
	if !errors.Is(m.Err(), common.ErrSourceUnavailable) {
		t.Errorf("Err = %v", m.Err())
	}
}
