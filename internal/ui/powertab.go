package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/power"
)

// PowerService is the slice of the power controller the tab consumes.
type PowerService interface {
	Run(action string) error
	HasProfiles() bool
	Profiles() ([]power.Profile, error)
	SetProfile(name string) error
}

type powerProfilesMsg struct {
	profiles []power.Profile
	has      bool
}

type powerActionMsg struct {
	action string
	err    error
}

var powerActions = []struct {
	action string
	label  string
}{
	{power.ActionLock, "Lock session"},
	{power.ActionSuspend, "Suspend"},
	{power.ActionReboot, "Reboot"},
	{power.ActionShutdown, "Shut down"},
}

// powerModel is the power tab: session actions plus power profile
// switching when power-profiles-daemon is present.
type powerModel struct {
	svc PowerService

	cursor      int
	profiles    []power.Profile
	hasProfiles bool
	status      string
}

func newPowerModel(svc PowerService) *powerModel {
	return &powerModel{svc: svc}
}

func (m *powerModel) Init() tea.Cmd {
	return m.loadProfiles()
}

func (m *powerModel) loadProfiles() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if !svc.HasProfiles() {
			return powerProfilesMsg{}
		}
		profiles, err := svc.Profiles()
		if err != nil {
			return powerProfilesMsg{}
		}
		return powerProfilesMsg{profiles: profiles, has: true}
	}
}

func (m *powerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case powerProfilesMsg:
		m.profiles, m.hasProfiles = msg.profiles, msg.has
		return m, nil

	case powerActionMsg:
		if msg.err != nil {
			m.status = msg.action + " failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(powerActions)-1 {
				m.cursor++
			}
		case "enter":
			entry := powerActions[m.cursor]
			m.status = entry.label + "..."
			svc := m.svc
			return m, func() tea.Msg {
				return powerActionMsg{action: entry.action, err: svc.Run(entry.action)}
			}
		case "p":
			if next, ok := m.nextProfile(); ok {
				svc := m.svc
				reload := m.loadProfiles()
				return m, func() tea.Msg {
					if err := svc.SetProfile(next); err != nil {
						return powerActionMsg{action: "profile " + next, err: err}
					}
					return reload()
				}
			}
		}
	}
	return m, nil
}

// nextProfile returns the profile after the active one, wrapping around.
func (m *powerModel) nextProfile() (string, bool) {
	if len(m.profiles) < 2 {
		return "", false
	}
	for i, p := range m.profiles {
		if p.Active {
			return m.profiles[(i+1)%len(m.profiles)].Name, true
		}
	}
	return m.profiles[0].Name, true
}

func (m *powerModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Power") + "\n\n")

	for i, entry := range powerActions {
		row := "  " + entry.label
		if i == m.cursor {
			row = SelectedRowStyle.Render("> " + entry.label)
		}
		b.WriteString(row + "\n")
	}

	if m.hasProfiles {
		b.WriteString("\n" + TitleStyle.Render("Profile") + "  ")
		var parts []string
		for _, p := range m.profiles {
			if p.Active {
				parts = append(parts, ConnectedStyle.Render(p.Name))
			} else {
				parts = append(parts, SecondaryStyle.Render(p.Name))
			}
		}
		b.WriteString(strings.Join(parts, SecondaryStyle.Render(" · ")) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + StatusStyle.Render(m.status))
	}
	b.WriteString("\n" + HelpStyle.Render("enter run · p cycle profile"))
	return b.String()
}
