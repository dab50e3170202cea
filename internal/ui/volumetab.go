package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/volume"
)

// VolumeService is the slice of the volume controller the tab consumes.
type VolumeService interface {
	Status() (volume.Status, error)
	SetVolume(percent int) error
	ToggleMute() error
	Sinks() ([]volume.Sink, error)
	SetDefaultSink(name string) error
}

type volumeStatusMsg struct {
	status volume.Status
	sinks  []volume.Sink
	err    error
}

const volumeStep = 5

// volumeModel is the volume tab: default sink level, mute, and sink
// selection.
type volumeModel struct {
	svc VolumeService

	status volume.Status
	sinks  []volume.Sink
	err    error
}

func newVolumeModel(svc VolumeService) *volumeModel {
	return &volumeModel{svc: svc}
}

func (m *volumeModel) Init() tea.Cmd {
	return m.refresh()
}

// refresh re-reads sink state off the update loop.
func (m *volumeModel) refresh() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		st, err := svc.Status()
		if err != nil {
			return volumeStatusMsg{err: err}
		}
		sinks, _ := svc.Sinks()
		return volumeStatusMsg{status: st, sinks: sinks}
	}
}

func (m *volumeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case volumeStatusMsg:
		m.status, m.sinks, m.err = msg.status, msg.sinks, msg.err
		return m, nil

	case tea.KeyMsg:
		svc := m.svc
		switch msg.String() {
		case "+", "=", "right":
			target := m.status.Volume + volumeStep
			return m, tea.Sequence(
				func() tea.Msg { svc.SetVolume(target); return nil },
				m.refresh(),
			)
		case "-", "left":
			target := m.status.Volume - volumeStep
			return m, tea.Sequence(
				func() tea.Msg { svc.SetVolume(target); return nil },
				m.refresh(),
			)
		case "m":
			return m, tea.Sequence(
				func() tea.Msg { svc.ToggleMute(); return nil },
				m.refresh(),
			)
		case "n":
			if next, ok := m.nextSink(); ok {
				return m, tea.Sequence(
					func() tea.Msg { svc.SetDefaultSink(next); return nil },
					m.refresh(),
				)
			}
		case "r":
			return m, m.refresh()
		}
	}
	return m, nil
}

// nextSink returns the sink after the current default, wrapping around.
func (m *volumeModel) nextSink() (string, bool) {
	if len(m.sinks) < 2 {
		return "", false
	}
	for i, s := range m.sinks {
		if s.Name == m.status.Sink {
			return m.sinks[(i+1)%len(m.sinks)].Name, true
		}
	}
	return m.sinks[0].Name, true
}

func (m *volumeModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Volume") + "\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("sound server unavailable: "+m.err.Error()) + "\n")
		return b.String()
	}

	bar := renderBar(m.status.Volume, 100, 30)
	level := fmt.Sprintf("%d%%", m.status.Volume)
	if m.status.Muted {
		level += SecondaryStyle.Render("  (muted)")
	}
	b.WriteString(bar + "  " + level + "\n\n")

	for _, s := range m.sinks {
		marker := "  "
		if s.Name == m.status.Sink {
			marker = ConnectedStyle.Render(MarkerConnected) + " "
		}
		b.WriteString(marker + SecondaryStyle.Render(s.Name) + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("+/- volume · m mute · n next sink · r refresh"))
	return b.String()
}

// renderBar draws a simple level bar out of block characters.
func renderBar(value, max, width int) string {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := value * width / max
	return SelectedRowStyle.Render(strings.Repeat(" ", filled)) +
		SecondaryStyle.Render(strings.Repeat("░", width-filled))
}
