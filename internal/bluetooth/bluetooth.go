// Package bluetooth drives the bluetoothctl command surface used by the
// bluetooth tab: adapter power state and paired-device listing.
package bluetooth

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/shell"
)

// Device is one entry from the bluetoothctl device listing.
type Device struct {
	Address   string
	Name      string
	Connected bool
}

// Controller wraps bluetoothctl.
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

// Powered reports whether the default adapter is powered on.
func (c *Controller) Powered() bool {
	res := c.runner.Run("bluetoothctl", "show")
	if !res.Ok() {
		return false
	}
	for _, line := range res.Lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "Powered:") {
			return strings.Contains(t, "yes")
		}
	}
	return false
}

// SetPowered turns the adapter on or off.
func (c *Controller) SetPowered(on bool) error {
	arg := "off"
	if on {
		arg = "on"
	}
	res := c.runner.Run("bluetoothctl", "power", arg)
	if !res.Ok() {
		return fmt.Errorf("bluetoothctl power %s failed (exit code %d)", arg, res.ExitCode)
	}
	c.logger.Info("bluetooth power changed", zap.Bool("on", on))
	return nil
}

// Devices lists paired devices, marking the currently connected ones.
// Listing lines have the form "Device AA:BB:CC:DD:EE:FF Some Name".
func (c *Controller) Devices() ([]Device, error) {
	res := c.runner.Run("bluetoothctl", "devices")
	if !res.Ok() {
		return nil, fmt.Errorf("bluetoothctl devices failed (exit code %d)", res.ExitCode)
	}
	devices := parseDevices(res.Lines)

	connected := c.runner.Run("bluetoothctl", "devices", "Connected")
	if connected.Ok() {
		active := make(map[string]bool)
		for _, d := range parseDevices(connected.Lines) {
			active[d.Address] = true
		}
		for i := range devices {
			devices[i].Connected = active[devices[i].Address]
		}
	}
	return devices, nil
}

func parseDevices(lines []string) []Device {
	var devices []Device
	for _, line := range lines {
		fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(fields) < 3 || fields[0] != "Device" {
			continue
		}
		devices = append(devices, Device{Address: fields[1], Name: fields[2]})
	}
	return devices
}

// Connect connects to a device by address.
func (c *Controller) Connect(address string) error {
	res := c.runner.Run("bluetoothctl", "connect", address)
	if !res.Ok() {
		return fmt.Errorf("bluetoothctl connect failed (exit code %d)", res.ExitCode)
	}
	c.logger.Info("bluetooth device connected", zap.String("address", address))
	return nil
}

// Disconnect disconnects a device by address.
func (c *Controller) Disconnect(address string) error {
	res := c.runner.Run("bluetoothctl", "disconnect", address)
	if !res.Ok() {
		return fmt.Errorf("bluetoothctl disconnect failed (exit code %d)", res.ExitCode)
	}
	return nil
}
