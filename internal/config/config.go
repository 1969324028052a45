package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "tapestry"
	configFile = "config.yaml"
	stateFile  = "state.yaml"

	// DefaultFrameRate is the tick/render cadence used when nothing else
	// is configured.
	DefaultFrameRate = 4.0
)

// Config holds the runtime tuning knobs for the application loop.
type Config struct {
	// FrameRate is the Tick/Render cadence in events per second.
	FrameRate float64 `yaml:"frame_rate"`
	// StateFile is where the main component persists its state. Empty
	// selects the default location in the config directory.
	StateFile string `yaml:"state_file,omitempty"`
	// LogLevel overrides the TAPESTRY_LOG_LEVEL environment variable.
	LogLevel string `yaml:"log_level,omitempty"`
	// LogFile receives console-format log output. Empty disables file
	// logging; the in-app log pane works regardless.
	LogFile string `yaml:"log_file,omitempty"`
	// FeedURL, when set, attaches the websocket feed component.
	FeedURL string `yaml:"feed_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{FrameRate: DefaultFrameRate}
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application, following platform conventions:
//   - Linux: $XDG_CONFIG_HOME/tapestry or $HOME/.config/tapestry
//   - macOS: $HOME/.config/tapestry
//   - Windows: %LOCALAPPDATA%\tapestry
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// macOS, Linux and other Unix-like systems: XDG_CONFIG_HOME or
		// $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// StatePath returns the path of the main component's state file, honoring
// the configured override.
func (c *Config) StatePath() (string, error) {
	if c.StateFile != "" {
		return c.StateFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, stateFile), nil
}

// Load reads the configuration file. A missing file is not an error and
// yields the defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a configuration file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultFrameRate
	}
	return cfg, nil
}

// Save writes the configuration atomically (temp file plus rename) to the
// default location, creating the config directory when missing.
func (c *Config) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFile)
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
