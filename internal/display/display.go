// Package display controls backlight brightness through brightnessctl.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/shell"
)

// Backlight is one device from the brightnessctl listing.
type Backlight struct {
	Device  string
	Class   string
	Percent int
}

// Controller wraps brightnessctl.
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

// Brightness returns the primary backlight's brightness percentage.
func (c *Controller) Brightness() (int, error) {
	res := c.runner.Run("brightnessctl", "-m")
	if !res.Ok() || len(res.Lines) == 0 {
		return 0, fmt.Errorf("brightnessctl failed (exit code %d)", res.ExitCode)
	}
	b, err := parseMachineLine(res.Lines[0])
	if err != nil {
		return 0, err
	}
	return b.Percent, nil
}

// Backlights lists every backlight-class device.
func (c *Controller) Backlights() ([]Backlight, error) {
	res := c.runner.Run("brightnessctl", "-m", "-l")
	if !res.Ok() {
		return nil, fmt.Errorf("brightnessctl -l failed (exit code %d)", res.ExitCode)
	}
	var out []Backlight
	for _, line := range res.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := parseMachineLine(line)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// parseMachineLine parses brightnessctl machine-readable output:
// "device,class,current,percent%,max".
func parseMachineLine(line string) (Backlight, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return Backlight{}, fmt.Errorf("malformed brightnessctl record %q", line)
	}
	percent, err := strconv.Atoi(strings.TrimSuffix(fields[3], "%"))
	if err != nil {
		return Backlight{}, fmt.Errorf("malformed brightness percentage %q", fields[3])
	}
	return Backlight{Device: fields[0], Class: fields[1], Percent: percent}, nil
}

// SetBrightness sets the primary backlight. percent is clamped to 1-100;
// zero is excluded so a slider cannot black the screen out entirely.
func (c *Controller) SetBrightness(percent int) error {
	if percent < 1 {
		percent = 1
	}
	if percent > 100 {
		percent = 100
	}
	res := c.runner.Run("brightnessctl", "set", strconv.Itoa(percent)+"%")
	if !res.Ok() {
		return fmt.Errorf("brightnessctl set failed (exit code %d)", res.ExitCode)
	}
	c.logger.Debug("brightness set", zap.Int("percent", percent))
	return nil
}
