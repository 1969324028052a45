package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// stateVersion guards against loading a file written by an incompatible
// future layout.
const stateVersion = 1

// Task is one tracked item.
type Task struct {
	Title     string    `yaml:"title"`
	Done      bool      `yaml:"done"`
	CreatedAt time.Time `yaml:"created_at"`
}

// state is the persisted document.
type state struct {
	Version int    `yaml:"version"`
	Tasks   []Task `yaml:"tasks"`
}

// loadState reads the task list from path. A missing file yields an empty
// list.
func loadState(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if st.Version != stateVersion {
		return nil, fmt.Errorf("unsupported state version: %d (expected %d)", st.Version, stateVersion)
	}
	return st.Tasks, nil
}

// saveState writes the task list atomically (temp file plus rename),
// creating the parent directory when missing.
func saveState(path string, tasks []Task) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := yaml.Marshal(state{Version: stateVersion, Tasks: tasks})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save state file: %w", err)
	}
	return nil
}
