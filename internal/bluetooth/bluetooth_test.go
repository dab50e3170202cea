package bluetooth

import (
	"reflect"
	"testing"

	"github.com/ultracontrol/ultractl/internal/shell"
)

func TestPowered(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("bluetoothctl show", shell.Canned{
		Stdout: "Controller AA:BB:CC:DD:EE:FF (public)\n" +
			"\tName: thinkpad\n" +
			"\tPowered: yes\n" +
			"\tDiscoverable: no\n",
	})
	c := NewController(rec, nil)
	if !c.Powered() {
		t.Error("Powered() = false, want true")
	}
}

func TestDevices(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("bluetoothctl devices", shell.Canned{
		Stdout: "Device 11:22:33:44:55:66 WH-1000XM4\n" +
			"Device AA:BB:CC:DD:EE:FF MX Master 3\n",
	})
	rec.Respond("bluetoothctl devices Connected", shell.Canned{
		Stdout: "Device AA:BB:CC:DD:EE:FF MX Master 3\n",
	})
	c := NewController(rec, nil)

	got, err := c.Devices()
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	want := []Device{
		{Address: "11:22:33:44:55:66", Name: "WH-1000XM4"},
		{Address: "AA:BB:CC:DD:EE:FF", Name: "MX Master 3", Connected: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Devices = %+v, want %+v", got, want)
	}
}

func TestSetPowered(t *testing.T) {
	rec := shell.NewRecorder()
	c := NewController(rec, nil)

	if err := c.SetPowered(true); err != nil {
		t.Fatalf("SetPowered: %v", err)
	}
	want := []string{"bluetoothctl power on"}
	if got := rec.CallLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}
