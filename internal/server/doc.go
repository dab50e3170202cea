// Package server implements the single-instance control endpoint.
//
// The panel binds a WebSocket endpoint on loopback. A second invocation
// detects the running instance, forwards its request (raise the window,
// switch to a tab) as a small JSON command, and exits instead of opening
// a duplicate panel. Commands are delivered to the running instance
// through a handler callback; the caller is responsible for marshalling
// them onto its UI queue.
//
// The listener is loopback-only and unauthenticated: anything that can
// reach it can already run commands as the same user.
package server
