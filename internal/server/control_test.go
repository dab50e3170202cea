package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

func startControl(t *testing.T, handler Handler) *Control {
	t.Helper()
	c := NewControl("127.0.0.1:0", handler, nil)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		c.Close(ctx)
	})
	return c
}

func TestSendDeliversCommand(t *testing.T) {
	got := make(chan Command, 1)
	c := startControl(t, func(cmd Command) error {
		got <- cmd
		return nil
	})

	if err := Send(c.Addr(), Command{Action: ActionSwitchTab, Tab: "wifi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case cmd := <-got:
		if cmd.Action != ActionSwitchTab || cmd.Tab != "wifi" {
			t.Errorf("handler got %+v, want switch-tab wifi", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never received the command")
	}
}

func TestSendReportsHandlerError(t *testing.T) {
	c := startControl(t, func(Command) error {
		return errors.New("unknown tab")
	})

	err := Send(c.Addr(), Command{Action: ActionSwitchTab, Tab: "teleport"})
	if err == nil {
		t.Fatal("Send succeeded despite handler error")
	}
}

func TestRunning(t *testing.T) {
	c := startControl(t, nil)

	if !Running(c.Addr()) {
		t.Error("Running() = false for a live endpoint")
	}
	if Running("127.0.0.1:1") {
		t.Error("Running() = true for a dead address")
	}
}

func TestPingBypassesHandler(t *testing.T) {
	called := false
	c := startControl(t, func(Command) error {
		called = true
		return nil
	})

	if err := Send(c.Addr(), Command{Action: ActionPing}); err != nil {
		t.Fatalf("Send(ping): %v", err)
	}
	if called {
		t.Error("ping was forwarded to the handler")
	}
}

func TestStartFailsOnTakenAddress(t *testing.T) {
	c := startControl(t, nil)

	second := NewControl(c.Addr(), nil, nil)
	if err := second.Start(); err == nil {
		second.Close(context.Background())
		t.Fatal("second Start on the same address succeeded")
	}
}
