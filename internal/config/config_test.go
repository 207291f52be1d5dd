package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveUsesDataDir(t *testing.T) {
	dir := t.TempDir()

	paths, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if paths.SettingsFile != filepath.Join(dir, "launcher-settings.json") {
		t.Errorf("SettingsFile = %s", paths.SettingsFile)
	}
	if paths.InstancesDir != filepath.Join(dir, "instances") {
		t.Errorf("InstancesDir = %s", paths.InstancesDir)
	}
}

func TestInitializeSeedsUIState(t *testing.T) {
	paths, err := Resolve(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}

	if err := paths.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if _, err := os.Stat(paths.InstancesDir); err != nil {
		t.Errorf("instances dir missing: %v", err)
	}

	data, err := os.ReadFile(paths.UIStateFile)
	if err != nil {
		t.Fatalf("ui state not seeded: %v", err)
	}
	if string(data) != `{"theme":"system"}` {
		t.Errorf("ui state = %s", data)
	}

	// Existing files are left alone
	if err := os.WriteFile(paths.UIStateFile, []byte(`{"theme":"oled"}`), FilePermissions); err != nil {
		t.Fatal(err)
	}
	if err := paths.Initialize(); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(paths.UIStateFile)
	if string(data) != `{"theme":"oled"}` {
		t.Errorf("ui state overwritten: %s", data)
	}
}

func TestGameDirectory(t *testing.T) {
	dir := t.TempDir()
	paths, _ := Resolve(dir)

	tests := []struct {
		setting string
		want    string
	}{
		{"", paths.InstancesDir},
		{"  ", paths.InstancesDir},
		{"games", filepath.Join(dir, "games")},
		{filepath.Join(dir, "abs"), filepath.Join(dir, "abs")},
	}

	for _, tt := range tests {
		got, err := paths.GameDirectory(tt.setting)
		if err != nil {
			t.Fatalf("GameDirectory(%q) error = %v", tt.setting, err)
		}
		if got != tt.want {
			t.Errorf("GameDirectory(%q) = %s, want %s", tt.setting, got, tt.want)
		}
	}
}
