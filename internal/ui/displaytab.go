package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/display"
)

// DisplayService is the slice of the display controller the tab
// consumes.
type DisplayService interface {
	Brightness() (int, error)
	Backlights() ([]display.Backlight, error)
	SetBrightness(percent int) error
}

type displayStateMsg struct {
	brightness int
	backlights []display.Backlight
	err        error
}

const brightnessStep = 5

// displayModel is the display tab: backlight brightness control.
type displayModel struct {
	svc DisplayService

	brightness int
	backlights []display.Backlight
	err        error
}

func newDisplayModel(svc DisplayService) *displayModel {
	return &displayModel{svc: svc}
}

func (m *displayModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *displayModel) refresh() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		b, err := svc.Brightness()
		if err != nil {
			return displayStateMsg{err: err}
		}
		backlights, _ := svc.Backlights()
		return displayStateMsg{brightness: b, backlights: backlights}
	}
}

func (m *displayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case displayStateMsg:
		m.brightness, m.backlights, m.err = msg.brightness, msg.backlights, msg.err
		return m, nil

	case tea.KeyMsg:
		svc := m.svc
		switch msg.String() {
		case "+", "=", "right":
			target := m.brightness + brightnessStep
			return m, tea.Sequence(
				func() tea.Msg { svc.SetBrightness(target); return nil },
				m.refresh(),
			)
		case "-", "left":
			target := m.brightness - brightnessStep
			return m, tea.Sequence(
				func() tea.Msg { svc.SetBrightness(target); return nil },
				m.refresh(),
			)
		case "r":
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *displayModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Display") + "\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("no backlight device: "+m.err.Error()) + "\n")
		return b.String()
	}

	b.WriteString(renderBar(m.brightness, 100, 30) + "  " +
		fmt.Sprintf("%d%%", m.brightness) + "\n\n")

	for _, bl := range m.backlights {
		b.WriteString(SecondaryStyle.Render(
			fmt.Sprintf("  %s (%s) %d%%", bl.Device, bl.Class, bl.Percent)) + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("+/- brightness · r refresh"))
	return b.String()
}
