// Package logging provides structured logging for ultractl.
//
// This package wraps zap with convenience functions used throughout the
// application. Logging is silent by default so the TUI and the plain CLI
// commands stay clean; set ULTRACTL_LOG_LEVEL to enable output.
//
// # Log Levels
//
//   - Debug: command argv, raw nmcli output, tab state transitions
//   - Info: normal operations (scans, connects, tab loads)
//   - Warn: non-fatal issues (parse skips, failed profile deletes)
//   - Error: operation failures surfaced to the user
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("wifi scan complete",
//	    zap.Int("networks", len(nets)),
//	    zap.Bool("enabled", enabled),
//	)
//
// # Configuration
//
// Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
