// Package shell executes the external commands the control panel depends on
// (nmcli, pactl, powerprofilesctl, bluetoothctl, brightnessctl) and captures
// their output.
//
// All host interaction flows through the Runner interface so that the
// controllers can be tested against a Recorder that plays back canned output
// instead of touching the system.
//
// Run passes every argument as a separate argv token and never involves a
// shell, which makes it safe for values that originate from scan output or
// user input (SSIDs, passwords). RunShell hands a literal command line to
// /bin/sh and is reserved for fixed strings such as the configured lock or
// shutdown commands.
package shell
