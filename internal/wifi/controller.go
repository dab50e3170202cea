package wifi

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/dispatch"
	"github.com/ultracontrol/ultractl/internal/shell"
)

// tempProfilePrefix marks throwaway connection profiles created during
// connect attempts. Forget sweeps them so they do not accumulate.
const tempProfilePrefix = "temp-conn-"

// UpdateCallback receives the network list after each scan.
type UpdateCallback func(networks []Network)

// StateCallback receives radio state changes.
type StateCallback func(enabled bool)

// ConnectionCallback receives the outcome of an async connect.
type ConnectionCallback func(success bool, ssid string)

// Controller owns Wi-Fi state and drives nmcli through a shell.Runner.
//
// The blocking methods may take hundreds of milliseconds; call them on a
// worker. The Async variants enqueue onto the controller's own worker
// goroutine (FIFO) and marshal results back through the dispatch queue so
// callbacks run on the UI thread.
type Controller struct {
	runner shell.Runner
	queue  dispatch.Queue
	logger *zap.Logger

	mu          sync.Mutex
	enabled     bool
	networks    []Network
	scanActive  bool
	scanPending bool
	pendingCb   UpdateCallback

	updateCb UpdateCallback
	stateCb  StateCallback

	jobs chan func()
	stop chan struct{}
}

// NewController creates a Controller, probes the current radio state, and
// starts the worker goroutine. queue may be nil for purely blocking use
// (CLI commands, tests); callbacks are then invoked inline.
func NewController(runner shell.Runner, queue dispatch.Queue, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		runner: runner,
		queue:  queue,
		logger: logger,
		jobs:   make(chan func(), 16),
		stop:   make(chan struct{}),
	}
	c.enabled = c.probeEnabled()

	go c.worker()
	return c
}

// Close stops the worker goroutine. Queued jobs still run.
func (c *Controller) Close() {
	close(c.stop)
}

func (c *Controller) worker() {
	for {
		select {
		case job := <-c.jobs:
			job()
		case <-c.stop:
			// Drain what was already queued, then exit.
			for {
				select {
				case job := <-c.jobs:
					job()
				default:
					return
				}
			}
		}
	}
}

// post marshals fn onto the UI queue, or runs it inline when no queue is
// configured.
func (c *Controller) post(fn func()) {
	if c.queue != nil {
		c.queue.Dispatch(fn)
		return
	}
	fn()
}

// SetUpdateCallback registers the network-list observer. Called on the UI
// queue after every scan.
func (c *Controller) SetUpdateCallback(cb UpdateCallback) {
	c.mu.Lock()
	c.updateCb = cb
	c.mu.Unlock()
}

// SetStateCallback registers the radio-state observer. Called on the UI
// queue after Enable/Disable succeed.
func (c *Controller) SetStateCallback(cb StateCallback) {
	c.mu.Lock()
	c.stateCb = cb
	c.mu.Unlock()
}

// IsEnabled returns the cached radio state last set by Enable, Disable or
// the initial probe.
func (c *Controller) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Networks returns the most recent scan results.
func (c *Controller) Networks() []Network {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Network, len(c.networks))
	copy(out, c.networks)
	return out
}

// CurrentState returns the Wi-Fi snapshot.
func (c *Controller) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	nets := make([]Network, len(c.networks))
	copy(nets, c.networks)
	return State{Enabled: c.enabled, LastScan: nets}
}

func (c *Controller) probeEnabled() bool {
	res := c.runner.RunShell("nmcli radio wifi")
	return res.Ok() && res.Output() == "enabled"
}

// Scan lists visible networks. If the radio is off it returns the empty
// list without invoking nmcli. The cached network list is replaced
// atomically and the update callback fires on the UI queue.
func (c *Controller) Scan() []Network {
	if !c.IsEnabled() {
		c.publishNetworks(nil)
		return nil
	}

	res := c.runner.Run("nmcli", "-t", "-f", "IN-USE,SSID,SIGNAL,SECURITY",
		"device", "wifi", "list")
	if res.Err != nil {
		c.logger.Error("wifi scan failed", zap.Error(res.Err))
		c.publishNetworks(nil)
		return nil
	}

	var nets []Network
	skipped := 0
	for _, line := range res.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		net, ok := parseScanLine(line)
		if !ok {
			skipped++
			continue
		}
		nets = append(nets, net)
	}
	if skipped > 0 {
		c.logger.Warn("skipped malformed scan records", zap.Int("count", skipped))
	}
	c.logger.Debug("wifi scan complete",
		zap.Int("networks", len(nets)),
		zap.Int("exit_code", res.ExitCode),
	)

	c.publishNetworks(nets)
	return nets
}

func (c *Controller) publishNetworks(nets []Network) {
	c.mu.Lock()
	c.networks = nets
	cb := c.updateCb
	c.mu.Unlock()

	if cb != nil {
		snapshot := make([]Network, len(nets))
		copy(snapshot, nets)
		c.post(func() { cb(snapshot) })
	}
}

// ScanAsync runs Scan on the worker and invokes cb on the UI queue. At most
// one scan is in flight; one further request is held back and honoured after
// completion, requests between those two are dropped.
func (c *Controller) ScanAsync(cb UpdateCallback) {
	c.mu.Lock()
	if c.scanActive {
		c.scanPending = true
		c.pendingCb = cb
		c.mu.Unlock()
		return
	}
	c.scanActive = true
	c.mu.Unlock()

	c.jobs <- func() {
		nets := c.Scan()

		c.post(func() {
			if cb != nil {
				cb(nets)
			}

			c.mu.Lock()
			c.scanActive = false
			rerun := c.scanPending
			pendingCb := c.pendingCb
			c.scanPending = false
			c.pendingCb = nil
			c.mu.Unlock()

			if rerun {
				c.ScanAsync(pendingCb)
			}
		})
	}
}

// Connect attempts to join a network.
//
// Already-connected targets short-circuit to success. With no explicit
// credentials a single "device connect" is issued, which lets nmcli reuse a
// saved profile. With explicit credentials a fresh profile is created and
// activated step by step. Every path ends in a re-scan so callers observe
// the new connected flag.
func (c *Controller) Connect(req ConnectRequest) error {
	c.mu.Lock()
	already := false
	for _, net := range c.networks {
		if net.SSID == req.SSID && net.Connected {
			already = true
			break
		}
	}
	c.mu.Unlock()

	var err error
	switch {
	case already:
		c.logger.Info("already connected", zap.String("ssid", req.SSID))
	case req.SecurityType == "" || req.Password == "":
		err = c.connectSimple(req)
	default:
		err = c.connectWithProfile(req)
	}

	// Refresh regardless of outcome so observers re-render correctly.
	c.Scan()
	return err
}

func (c *Controller) connectSimple(req ConnectRequest) error {
	args := []string{"dev", "wifi", "connect", req.SSID}
	if req.Password != "" {
		args = append(args, "password", req.Password)
	}
	res := c.runner.Run("nmcli", args...)
	if !res.Ok() {
		c.logger.Warn("simple connect failed",
			zap.String("ssid", req.SSID),
			zap.Int("exit_code", res.ExitCode),
		)
		return &CommandError{Op: "dev wifi connect", ExitCode: res.ExitCode, Err: res.Err}
	}
	c.logger.Info("connected", zap.String("ssid", req.SSID))
	return nil
}

func (c *Controller) connectWithProfile(req ConnectRequest) error {
	iface := c.wifiInterface()
	if iface == "" {
		c.logger.Error("connect failed: no Wi-Fi interface")
		return &NoInterfaceError{}
	}

	// Remove a stale profile with the same name. Best effort.
	c.runner.Run("nmcli", "con", "delete", req.SSID)

	steps := []struct {
		op   string
		args []string
	}{
		{"con add", []string{"con", "add", "type", "wifi",
			"con-name", req.SSID, "ifname", iface, "ssid", req.SSID}},
		{"con modify key-mgmt", []string{"con", "modify", req.SSID,
			"wifi-sec.key-mgmt", req.SecurityType}},
		{"con modify psk", []string{"con", "modify", req.SSID,
			"wifi-sec.psk", req.Password}},
		{"con up", []string{"con", "up", req.SSID}},
	}
	for _, step := range steps {
		res := c.runner.Run("nmcli", step.args...)
		if !res.Ok() {
			c.logger.Warn("connect step failed",
				zap.String("ssid", req.SSID),
				zap.String("step", step.op),
				zap.Int("exit_code", res.ExitCode),
			)
			return &CommandError{Op: step.op, ExitCode: res.ExitCode, Err: res.Err}
		}
	}
	c.logger.Info("connected with new profile", zap.String("ssid", req.SSID))
	return nil
}

// ConnectAsync runs Connect on the worker; cb(success, ssid) fires on the
// UI queue.
func (c *Controller) ConnectAsync(req ConnectRequest, cb ConnectionCallback) {
	c.jobs <- func() {
		err := c.Connect(req)
		if cb != nil {
			c.post(func() { cb(err == nil, req.SSID) })
		}
	}
}

// Disconnect drops the active connection on the Wi-Fi interface.
// No-op when no interface is present.
func (c *Controller) Disconnect() error {
	iface := c.wifiInterface()
	if iface == "" {
		return nil
	}
	res := c.runner.Run("nmcli", "device", "disconnect", iface)
	c.Scan()
	if !res.Ok() {
		return &CommandError{Op: "device disconnect", ExitCode: res.ExitCode, Err: res.Err}
	}
	return nil
}

// Forget deletes every saved profile named ssid, then sweeps profiles left
// behind by temporary connects (the temp-conn- prefix).
func (c *Controller) Forget(ssid string) error {
	res := c.runner.Run("nmcli", "-t", "-f", "NAME", "connection", "show")
	var firstErr error
	for _, line := range res.Lines {
		name := unescape(strings.TrimSpace(line))
		if name == "" {
			continue
		}
		if name != ssid && !strings.HasPrefix(name, tempProfilePrefix) {
			continue
		}
		del := c.runner.Run("nmcli", "connection", "delete", name)
		if !del.Ok() && firstErr == nil {
			firstErr = &CommandError{Op: "connection delete", ExitCode: del.ExitCode, Err: del.Err}
		}
	}
	c.logger.Info("network forgotten", zap.String("ssid", ssid))
	c.Scan()
	return firstErr
}

// ForgetAsync runs Forget on the worker; done fires on the UI queue.
func (c *Controller) ForgetAsync(ssid string, done func(err error)) {
	c.jobs <- func() {
		err := c.Forget(ssid)
		if done != nil {
			c.post(func() { done(err) })
		}
	}
}

// Enable turns the radio on, fires the state callback and triggers a scan.
func (c *Controller) Enable() error {
	res := c.runner.RunShell("nmcli radio wifi on")
	if !res.Ok() {
		return &CommandError{Op: "radio wifi on", ExitCode: res.ExitCode, Err: res.Err}
	}
	c.setEnabled(true)
	c.Scan()
	return nil
}

// Disable turns the radio off, fires the state callback and clears the
// network list.
func (c *Controller) Disable() error {
	res := c.runner.RunShell("nmcli radio wifi off")
	if !res.Ok() {
		return &CommandError{Op: "radio wifi off", ExitCode: res.ExitCode, Err: res.Err}
	}
	c.setEnabled(false)
	c.publishNetworks(nil)
	return nil
}

// SetEnabledAsync toggles the radio on the worker; done fires on the UI
// queue.
func (c *Controller) SetEnabledAsync(enable bool, done func(err error)) {
	c.jobs <- func() {
		var err error
		if enable {
			err = c.Enable()
		} else {
			err = c.Disable()
		}
		if done != nil {
			c.post(func() { done(err) })
		}
	}
}

func (c *Controller) setEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	cb := c.stateCb
	c.mu.Unlock()

	if cb != nil {
		c.post(func() { cb(enabled) })
	}
}

// IsEthernetConnected reports whether any wired device is connected.
func (c *Controller) IsEthernetConnected() bool {
	res := c.runner.Run("nmcli", "-t", "-f", "DEVICE,TYPE,STATE", "device", "status")
	for _, line := range res.Lines {
		fields := splitEscaped(line, ':')
		if len(fields) < 3 {
			continue
		}
		if fields[1] == "ethernet" && fields[2] == "connected" {
			return true
		}
	}
	return false
}

// GetPassword resolves the saved passphrase for ssid, or "" when no profile
// holds one.
func (c *Controller) GetPassword(ssid string) string {
	res := c.runner.Run("nmcli", "-s", "-g", "802-11-wireless-security.psk",
		"connection", "show", ssid)
	if !res.Ok() || len(res.Lines) == 0 {
		return ""
	}
	return unescape(strings.TrimSpace(res.Lines[0]))
}

// wifiInterface resolves the Wi-Fi device name from the status listing,
// skipping p2p pseudo devices. Empty when none is present.
func (c *Controller) wifiInterface() string {
	res := c.runner.Run("nmcli", "-t", "-f", "DEVICE,TYPE", "device", "status")
	for _, line := range res.Lines {
		fields := splitEscaped(line, ':')
		if len(fields) < 2 {
			continue
		}
		if fields[1] == "wifi" && !strings.HasPrefix(fields[0], "p2p") {
			return fields[0]
		}
	}
	return ""
}
