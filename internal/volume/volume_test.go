package volume

import (
	"reflect"
	"testing"

	"github.com/ultracontrol/ultractl/internal/shell"
)

func TestStatus(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("pactl get-default-sink", shell.Canned{Stdout: "alsa_output.pci-0000_00_1f.3.analog-stereo\n"})
	rec.Respond("pactl get-sink-volume @DEFAULT_SINK@", shell.Canned{
		Stdout: "Volume: front-left: 42598 /  65% / -11.27 dB,   front-right: 42598 /  65% / -11.27 dB\n",
	})
	rec.Respond("pactl get-sink-mute @DEFAULT_SINK@", shell.Canned{Stdout: "Mute: yes\n"})

	c := NewController(rec, nil)
	st, err := c.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Sink != "alsa_output.pci-0000_00_1f.3.analog-stereo" {
		t.Errorf("Sink = %q", st.Sink)
	}
	if st.Volume != 65 {
		t.Errorf("Volume = %d, want 65", st.Volume)
	}
	if !st.Muted {
		t.Error("Muted = false, want true")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	rec := shell.NewRecorder()
	c := NewController(rec, nil)

	if err := c.SetVolume(200); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if err := c.SetVolume(-5); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}

	want := []string{
		"pactl set-sink-volume @DEFAULT_SINK@ 150%",
		"pactl set-sink-volume @DEFAULT_SINK@ 0%",
	}
	if got := rec.CallLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestSinks(t *testing.T) {
	rec := shell.NewRecorder()
	rec.Respond("pactl list short sinks", shell.Canned{
		Stdout: "0\talsa_output.analog-stereo\tPipeWire\ts32le 2ch 48000Hz\tRUNNING\n" +
			"1\tbluez_output.headphones\tPipeWire\ts16le 2ch 44100Hz\tIDLE\n",
	})
	c := NewController(rec, nil)

	sinks, err := c.Sinks()
	if err != nil {
		t.Fatalf("Sinks: %v", err)
	}
	want := []Sink{
		{Index: 0, Name: "alsa_output.analog-stereo"},
		{Index: 1, Name: "bluez_output.headphones"},
	}
	if !reflect.DeepEqual(sinks, want) {
		t.Errorf("Sinks = %+v, want %+v", sinks, want)
	}
}
