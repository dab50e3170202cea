package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/tabs"
)

// placeholderModel reserves a tab position before anything is loaded.
type placeholderModel struct{}

func (placeholderModel) Init() tea.Cmd { return nil }
func (m placeholderModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (placeholderModel) View() string { return "" }

// loadingModel is the spinner shown while a tab's content is under
// construction. On failure it stays visible with the error message.
type loadingModel struct {
	id      tabs.ID
	spinner spinner.Model
	err     string
}

func newLoadingModel(id tabs.ID) *loadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StatusStyle
	return &loadingModel{id: id, spinner: s}
}

func (m *loadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *loadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && m.err == "" {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *loadingModel) View() string {
	if m.err != "" {
		return ErrorStyle.Render("failed to load "+string(m.id)+" tab") + "\n" +
			SecondaryStyle.Render(m.err)
	}
	return m.spinner.View() + " loading " + string(m.id) + "..."
}
