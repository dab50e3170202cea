package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/power"
)

// profilePower fakes the power service with switchable profiles.
type profilePower struct {
	fakePower
	setErr  error
	set     []string
	current []power.Profile
}

func (p *profilePower) HasProfiles() bool { return true }

func (p *profilePower) Profiles() ([]power.Profile, error) { return p.current, nil }

func (p *profilePower) SetProfile(name string) error {
	p.set = append(p.set, name)
	return p.setErr
}

func newProfileModel(svc *profilePower) *powerModel {
	m := newPowerModel(svc)
	m.Update(powerProfilesMsg{profiles: svc.current, has: true})
	return m
}

func TestPowerProfileCycleReloads(t *testing.T) {
	svc := &profilePower{current: []power.Profile{
		{Name: "performance", Active: true},
		{Name: "balanced"},
	}}
	m := newProfileModel(svc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd == nil {
		t.Fatal("no command returned for profile cycle")
	}
	msg := cmd()
	if _, ok := msg.(powerProfilesMsg); !ok {
		t.Fatalf("profile cycle produced %T, want powerProfilesMsg", msg)
	}
	if len(svc.set) != 1 || svc.set[0] != "balanced" {
		t.Errorf("SetProfile calls = %v, want [balanced]", svc.set)
	}
}

func TestPowerProfileCycleReportsError(t *testing.T) {
	svc := &profilePower{
		setErr: errors.New("daemon unreachable"),
		current: []power.Profile{
			{Name: "performance", Active: true},
			{Name: "balanced"},
		},
	}
	m := newProfileModel(svc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd == nil {
		t.Fatal("no command returned for profile cycle")
	}
	msg := cmd()
	action, ok := msg.(powerActionMsg)
	if !ok {
		t.Fatalf("failed cycle produced %T, want powerActionMsg", msg)
	}
	if action.err == nil {
		t.Fatal("powerActionMsg carries no error")
	}

	m.Update(action)
	if !strings.Contains(m.status, "daemon unreachable") {
		t.Errorf("status = %q, want the SetProfile error surfaced", m.status)
	}
}
