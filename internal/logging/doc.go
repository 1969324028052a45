// Package logging provides structured logging for the Tapestry runtime.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the loop and the built-in components. Because the TUI owns
// the terminal while the application runs, console output would corrupt the
// screen; file output and an in-process ring buffer replace it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: per-tick traces, input decoding, frame flushes
//   - Info: actions flowing through the queue, lifecycle transitions
//   - Warn: non-fatal issues (draw failures, feed reconnects)
//   - Error: fatal issues (startup failures, save errors)
//
// # Sinks
//
// Every entry at or above the configured level is captured in a fixed-size
// ring buffer that the log pane renders (see Recent). When a log file is
// configured, entries are additionally written there in console format.
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug", "/tmp/tapestry.log"); err != nil {
//	    return err
//	}
//
// An empty level falls back to the TAPESTRY_LOG_LEVEL environment variable,
// then to "info". All logging functions are safe for concurrent use.
package logging
