// Package volume drives PulseAudio/PipeWire sink volume through pactl.
package volume

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/shell"
)

// defaultSink addresses whatever sink the sound server currently routes
// to.
const defaultSink = "@DEFAULT_SINK@"

// Status is a snapshot of the default sink.
type Status struct {
	Sink   string
	Volume int
	Muted  bool
}

// Sink is one output device from the sink listing.
type Sink struct {
	Index int
	Name  string
}

// Controller wraps the pactl command surface used by the volume tab.
type Controller struct {
	runner shell.Runner
	logger *zap.Logger
}

// NewController creates a Controller. logger may be nil.
func NewController(runner shell.Runner, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{runner: runner, logger: logger}
}

// Status reads the default sink name, volume percentage and mute flag.
func (c *Controller) Status() (Status, error) {
	var st Status

	res := c.runner.Run("pactl", "get-default-sink")
	if !res.Ok() {
		return st, fmt.Errorf("pactl get-default-sink failed (exit code %d)", res.ExitCode)
	}
	st.Sink = res.Output()

	res = c.runner.Run("pactl", "get-sink-volume", defaultSink)
	if !res.Ok() {
		return st, fmt.Errorf("pactl get-sink-volume failed (exit code %d)", res.ExitCode)
	}
	st.Volume = parseVolume(res.Lines)

	res = c.runner.Run("pactl", "get-sink-mute", defaultSink)
	if !res.Ok() {
		return st, fmt.Errorf("pactl get-sink-mute failed (exit code %d)", res.ExitCode)
	}
	st.Muted = strings.Contains(res.Output(), "yes")

	return st, nil
}

// parseVolume extracts the first percentage token from pactl's volume
// report, e.g. "Volume: front-left: 42598 / 65% / -11.27 dB, ...".
func parseVolume(lines []string) int {
	for _, line := range lines {
		for _, field := range strings.Fields(line) {
			if !strings.HasSuffix(field, "%") {
				continue
			}
			if v, err := strconv.Atoi(strings.TrimSuffix(field, "%")); err == nil {
				return v
			}
		}
	}
	return 0
}

// SetVolume sets the default sink volume. percent is clamped to 0-150.
func (c *Controller) SetVolume(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 150 {
		percent = 150
	}
	res := c.runner.Run("pactl", "set-sink-volume", defaultSink,
		strconv.Itoa(percent)+"%")
	if !res.Ok() {
		return fmt.Errorf("pactl set-sink-volume failed (exit code %d)", res.ExitCode)
	}
	c.logger.Debug("volume set", zap.Int("percent", percent))
	return nil
}

// SetMuted mutes or unmutes the default sink.
func (c *Controller) SetMuted(muted bool) error {
	arg := "0"
	if muted {
		arg = "1"
	}
	res := c.runner.Run("pactl", "set-sink-mute", defaultSink, arg)
	if !res.Ok() {
		return fmt.Errorf("pactl set-sink-mute failed (exit code %d)", res.ExitCode)
	}
	return nil
}

// ToggleMute flips the default sink's mute flag.
func (c *Controller) ToggleMute() error {
	res := c.runner.Run("pactl", "set-sink-mute", defaultSink, "toggle")
	if !res.Ok() {
		return fmt.Errorf("pactl set-sink-mute failed (exit code %d)", res.ExitCode)
	}
	return nil
}

// Sinks lists the available output devices. The short listing is
// tab-separated: index, name, driver, sample spec, state.
func (c *Controller) Sinks() ([]Sink, error) {
	res := c.runner.Run("pactl", "list", "short", "sinks")
	if !res.Ok() {
		return nil, fmt.Errorf("pactl list short sinks failed (exit code %d)", res.ExitCode)
	}
	var sinks []Sink
	for _, line := range res.Lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		sinks = append(sinks, Sink{Index: idx, Name: fields[1]})
	}
	return sinks, nil
}

// SetDefaultSink routes output to the named sink.
func (c *Controller) SetDefaultSink(name string) error {
	res := c.runner.Run("pactl", "set-default-sink", name)
	if !res.Ok() {
		return fmt.Errorf("pactl set-default-sink failed (exit code %d)", res.ExitCode)
	}
	c.logger.Info("default sink changed", zap.String("sink", name))
	return nil
}
