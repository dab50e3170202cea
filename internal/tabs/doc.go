// Package tabs implements the lazy-loading tab machinery of the control
// panel: a registry of per-tab records, a loader that drives the
// Placeholder -> Loading -> Loaded/Failed state machine on user
// navigation, a cross-fade animator, and the startup selection policy.
//
// Everything in this package runs on the UI dispatch queue. The registry
// has no internal locking; the loader schedules deferred work through a
// dispatch.Queue so construction stays off the critical input path while
// remaining single-threaded.
package tabs
