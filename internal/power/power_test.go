package power

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ultracontrol/ultractl/internal/settings"
	"github.com/ultracontrol/ultractl/internal/shell"
)

func testSettings(t *testing.T) *settings.Settings {
	t.Helper()
	s, err := settings.LoadFrom(filepath.Join(t.TempDir(), "settings.conf"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunUsesConfiguredCommand(t *testing.T) {
	rec := shell.NewRecorder()
	cfg := testSettings(t)
	cfg.SetCommand(ActionLock, "hyprlock --immediate")
	c := NewController(rec, cfg, nil)

	if err := c.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := c.Suspend(); err != nil {
		t.Fatalf("Suspend: %v", err)
	}

	want := []string{
		"sh: hyprlock --immediate",
		"sh: systemctl suspend",
	}
	if got := rec.CallLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestRunFailure(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("systemctl poweroff", shell.Canned{ExitCode: 1})
	c := NewController(rec, testSettings(t), nil)

	if err := c.Shutdown(); err == nil {
		t.Error("Shutdown succeeded despite non-zero exit")
	}
}

func TestProfiles(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("powerprofilesctl list", shell.Canned{
		Stdout: "  performance:\n" +
			"    CpuDriver:\tintel_pstate\n" +
			"    Degraded:   no\n" +
			"\n" +
			"* balanced:\n" +
			"    CpuDriver:\tintel_pstate\n" +
			"\n" +
			"  power-saver:\n" +
			"    CpuDriver:\tintel_pstate\n",
	})
	c := NewController(rec, testSettings(t), nil)

	got, err := c.Profiles()
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	want := []Profile{
		{Name: "performance"},
		{Name: "balanced", Active: true},
		{Name: "power-saver"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Profiles = %+v, want %+v", got, want)
	}
}

func TestSetProfile(t *testing.T) {
	rec := shell.NewRecorder()
	c := NewController(rec, testSettings(t), nil)

	if err := c.SetProfile("power-saver"); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	want := []string{"powerprofilesctl set power-saver"}
	if got := rec.CallLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}
