package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DefaultAddr is the loopback address the control endpoint binds by
// default.
const DefaultAddr = "127.0.0.1:48642"

const (
	controlPath = "/control"

	dialTimeout  = 2 * time.Second
	writeTimeout = 5 * time.Second
)

// Command actions understood by the endpoint.
const (
	ActionPing            = "ping"
	ActionRaise           = "raise"
	ActionSwitchTab       = "switch-tab"
	ActionSettingsChanged = "settings-changed"
)

// Command is one control request from a second invocation.
type Command struct {
	Action string `json:"action"`
	Tab    string `json:"tab,omitempty"`
}

// Reply acknowledges a Command.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Handler receives commands from remote invocations. It runs on the
// connection's goroutine; implementations must marshal to the UI queue
// themselves. A returned error is reported back to the remote side.
type Handler func(cmd Command) error

// Control is the running instance's endpoint.
type Control struct {
	addr     string
	handler  Handler
	logger   *zap.Logger
	upgrader websocket.Upgrader

	srv      *http.Server
	listener net.Listener
}

// NewControl creates a Control bound to addr (DefaultAddr when empty).
// logger may be nil.
func NewControl(addr string, handler Handler, logger *zap.Logger) *Control {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Control{
		addr:    addr,
		handler: handler,
		logger:  logger,
		upgrader: websocket.Upgrader{
			// Loopback-only endpoint; browsers are not expected clients.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start binds the listener and serves in the background. It fails fast
// when the address is taken, which is how a second invocation discovers
// the running instance.
func (c *Control) Start() error {
	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to bind control endpoint: %w", err)
	}
	c.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc(controlPath, c.handleControl)
	c.srv = &http.Server{Handler: mux}

	go func() {
		if err := c.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			c.logger.Error("control endpoint stopped", zap.Error(err))
		}
	}()

	c.logger.Info("control endpoint listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address. Valid after Start.
func (c *Control) Addr() string {
	if c.listener == nil {
		return c.addr
	}
	return c.listener.Addr().String()
}

// Close shuts the endpoint down.
func (c *Control) Close(ctx context.Context) error {
	if c.srv == nil {
		return nil
	}
	return c.srv.Shutdown(ctx)
}

func (c *Control) handleControl(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Warn("control upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("control connection closed", zap.Error(err))
			}
			return
		}

		reply := Reply{OK: true}
		if cmd.Action != ActionPing {
			c.logger.Debug("control command",
				zap.String("action", cmd.Action),
				zap.String("tab", cmd.Tab),
			)
			if c.handler != nil {
				if err := c.handler(cmd); err != nil {
					reply = Reply{Error: err.Error()}
				}
			}
		}

		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

// Send connects to a running instance at addr and delivers one command,
// waiting for the acknowledgement.
func Send(addr string, cmd Command) error {
	if addr == "" {
		addr = DefaultAddr
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: controlPath}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to reach running instance: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(writeTimeout))
	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("no acknowledgement from running instance: %w", err)
	}
	if !reply.OK {
		return fmt.Errorf("running instance rejected command: %s", reply.Error)
	}
	return nil
}

// Running reports whether an instance is already listening at addr.
func Running(addr string) bool {
	return Send(addr, Command{Action: ActionPing}) == nil
}

