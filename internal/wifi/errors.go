package wifi

import "fmt"

// NoInterfaceError indicates no Wi-Fi device was reported by nmcli's
// device status listing.
type NoInterfaceError struct{}

func (e *NoInterfaceError) Error() string {
	return "no Wi-Fi interface found"
}

// CommandError represents a non-zero exit from an nmcli invocation.
// The controller reports it, logs it, and continues; it never aborts the
// follow-up scan.
type CommandError struct {
	// Op names the failing operation, e.g. "con up".
	Op string
	// ExitCode is the nmcli process exit code.
	ExitCode int
	// Err is the underlying execution error, if the process could not run.
	Err error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nmcli %s failed (exit code %d): %v", e.Op, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("nmcli %s failed (exit code %d)", e.Op, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
