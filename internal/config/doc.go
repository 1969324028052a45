// Package config provides user configuration management for Tapestry.
//
// This package manages a YAML-based configuration file holding the
// runtime tuning knobs of the application loop (frame rate, log level and
// file, feed endpoint, state file location). The file lives in the
// platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/tapestry or $HOME/.config/tapestry
//   - macOS: $HOME/.config/tapestry (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\tapestry
//
// A missing file yields the defaults; command-line flags override loaded
// values. The same directory also holds the state file the main component
// persists between runs.
package config
