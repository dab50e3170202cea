// Package dispatch provides the cooperative scheduling primitive the tab
// loader and the Wi-Fi controller marshal their callbacks through.
//
// A Queue serialises functions onto one logical "UI thread". Loop is the
// standalone implementation (a queue plus a wakeup channel drained by a
// single goroutine); the TUI installs its own Queue that forwards into the
// Bubble Tea update loop so callbacks run between renders.
//
// Timers returned by After are one-shot and fire on the queue. Stopping a
// timer after it was scheduled but before its callback ran turns the
// callback into a no-op, which is what the view-swap and animation paths
// rely on.
package dispatch
