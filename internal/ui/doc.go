// Package ui renders the control panel as a Bubble Tea application.
//
// The top-level App model owns the tab bar and implements the tabs.Bar
// interface, so the lazy loader in internal/tabs drives which tab content
// exists at any moment. Tab content starts as a placeholder, becomes a
// spinner while the loader constructs the real model, and is swapped in
// on completion.
//
// All asynchronous results (Wi-Fi scans, connects) re-enter the model
// through the program queue: internal/dispatch callbacks are wrapped in
// an invokeMsg and delivered via Program.Send, which keeps every mutation
// on the Bubble Tea update loop.
package ui
