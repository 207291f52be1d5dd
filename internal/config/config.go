package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// AppName is the data directory name under the user config dir
	AppName = "decent-launcher"
)

// Paths locates every file the launcher persists
type Paths struct {
	// DataDir is the application data directory ($XDG_CONFIG_HOME/decent-launcher)
	DataDir string

	// SettingsFile is the launcher settings document
	SettingsFile string

	// UIStateFile holds theme, sidebar and tab state
	UIStateFile string

	// AccountsFile is the account list kept by the local backend
	AccountsFile string

	// InstancesDir holds one folder per instance
	InstancesDir string

	// DatabasePath is the SQLite database for the activity log
	DatabasePath string

	// LogFile receives structured logs
	LogFile string

	// KeybindsFile holds user key binding overrides
	KeybindsFile string
}

// Resolve computes the paths under dataDir, or under the user config directory when empty
func Resolve(dataDir string) (*Paths, error) {
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		dataDir = filepath.Join(base, AppName)
	}

	dataDir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}

	return &Paths{
		DataDir:      dataDir,
		SettingsFile: filepath.Join(dataDir, "launcher-settings.json"),
		UIStateFile:  filepath.Join(dataDir, "ui-state.json"),
		AccountsFile: filepath.Join(dataDir, "accounts.json"),
		InstancesDir: filepath.Join(dataDir, "instances"),
		DatabasePath: filepath.Join(dataDir, "launcher.db"),
		LogFile:      filepath.Join(dataDir, "launcher.log"),
		KeybindsFile: filepath.Join(dataDir, "keybinds.json"),
	}, nil
}

// Initialize sets up the data directories and seeds the UI state file
func (p *Paths) Initialize() error {
	dirs := []string{p.DataDir, p.InstancesDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(p.UIStateFile); os.IsNotExist(err) {
		defaultState := []byte(`{"theme":"system"}`)
		if err := os.WriteFile(p.UIStateFile, defaultState, FilePermissions); err != nil {
			return fmt.Errorf("failed to create ui state file: %w", err)
		}
	}

	return nil
}

// GameDirectory returns the directory instances are stored in.
// Falls back to InstancesDir when the advanced.gameDirectory setting is empty.
func (p *Paths) GameDirectory(setting string) (string, error) {
	if strings.TrimSpace(setting) == "" {
		return p.InstancesDir, nil
	}

	dir, err := expandHome(setting)
	if err != nil {
		return "", err
	}

	// Relative paths are relative to the data directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.DataDir, dir)
	}

	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create game directory %s: %w", dir, err)
	}

	return dir, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
