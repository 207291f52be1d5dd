package session

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T, dark bool) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ui-state.json")
	return NewManager(path,
		WithLogger(zaptest.NewLogger(t)),
		WithDarkBackground(func() bool { return dark }),
	)
}

func TestDefaults(t *testing.T) {
	m := newTestManager(t, false)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	if m.Theme() != types.ThemeSystem {
		t.Errorf("theme = %q, want system", m.Theme())
	}
	if !m.SidebarOpen() {
		t.Error("sidebar should start open")
	}
	if m.SettingsTab() != types.SettingsTabLauncher {
		t.Errorf("settings tab = %q", m.SettingsTab())
	}
	if m.GameOptionsTab() != types.GameOptionsTabVersion {
		t.Errorf("game options tab = %q", m.GameOptionsTab())
	}
}

func TestResolvedTheme(t *testing.T) {
	tests := []struct {
		theme types.Theme
		dark  bool
		want  types.Theme
	}{
		{types.ThemeSystem, true, types.ThemeDark},
		{types.ThemeSystem, false, types.ThemeLight},
		{types.ThemeOLED, false, types.ThemeOLED},
		{types.ThemeLight, true, types.ThemeLight},
	}

	for _, tt := range tests {
		m := newTestManager(t, tt.dark)
		if err := m.SetTheme(tt.theme); err != nil {
			t.Fatal(err)
		}
		if got := m.ResolvedTheme(); got != tt.want {
			t.Errorf("ResolvedTheme(%s, dark=%v) = %s, want %s", tt.theme, tt.dark, got, tt.want)
		}
	}
}

func TestCycleTheme(t *testing.T) {
	m := newTestManager(t, false)

	want := []types.Theme{types.ThemeLight, types.ThemeDark, types.ThemeOLED, types.ThemeSystem}
	for _, w := range want {
		if got := m.CycleTheme(); got != w {
			t.Errorf("CycleTheme() = %s, want %s", got, w)
		}
	}

	if err := m.SetTheme("sepia"); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestPersistence(t *testing.T) {
	m := newTestManager(t, false)
	m.SetTheme(types.ThemeOLED)
	m.ToggleSidebar()
	m.SetSettingsTab(types.SettingsTabAdvanced)
	m.SetGameOptionsTab(types.GameOptionsTabMods)
	m.SelectInstance("survival")
	m.SetBreadcrumbs("Settings", "Advanced")

	reloaded := NewManager(m.path, WithLogger(zaptest.NewLogger(t)))
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Theme() != types.ThemeOLED {
		t.Errorf("theme = %s", reloaded.Theme())
	}
	if reloaded.SidebarOpen() {
		t.Error("sidebar state not persisted")
	}
	if reloaded.SettingsTab() != types.SettingsTabAdvanced || reloaded.GameOptionsTab() != types.GameOptionsTabMods {
		t.Errorf("tabs = %s, %s", reloaded.SettingsTab(), reloaded.GameOptionsTab())
	}
	if reloaded.SelectedInstance() != "survival" {
		t.Errorf("selected = %q", reloaded.SelectedInstance())
	}
	if len(reloaded.Breadcrumbs()) != 0 {
		t.Error("breadcrumbs must not be persisted")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	m := newTestManager(t, false)
	if err := os.WriteFile(m.path, []byte(`{"theme":"neon","settingsTab":"nope"`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Theme() != types.ThemeSystem {
		t.Errorf("theme = %s", m.Theme())
	}

	if err := os.WriteFile(m.path, []byte(`{"theme":"neon","settingsTab":"nope"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if m.Theme() != types.ThemeSystem || m.SettingsTab() != types.SettingsTabLauncher || !m.SidebarOpen() {
		t.Errorf("unknown values not replaced: %+v", m.State())
	}
}

func TestRecentInstances(t *testing.T) {
	m := newTestManager(t, false)

	m.SelectInstance("a")
	m.SelectInstance("b")
	m.SelectInstance("a")
	if got := m.RecentInstances(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("recent = %v", got)
	}

	for i := 0; i < 20; i++ {
		m.SelectInstance(string(rune('c' + i)))
	}
	if got := len(m.RecentInstances()); got != MaxRecentInstances {
		t.Errorf("recent length = %d, want %d", got, MaxRecentInstances)
	}

	m.ForgetInstance(m.SelectedInstance())
	if m.SelectedInstance() != "" {
		t.Error("forgotten instance still selected")
	}
	if got := len(m.RecentInstances()); got != MaxRecentInstances-1 {
		t.Errorf("recent length = %d", got)
	}

	m.PruneRecent([]string{m.RecentInstances()[0]})
	if got := len(m.RecentInstances()); got != 1 {
		t.Errorf("recent after prune = %v", m.RecentInstances())
	}
}

func TestBreadcrumbsCopy(t *testing.T) {
	m := newTestManager(t, false)
	crumbs := []string{"Home", "Instance"}
	m.SetBreadcrumbs(crumbs...)
	crumbs[0] = "changed"

	if got := m.Breadcrumbs(); got[0] != "Home" {
		t.Errorf("breadcrumbs = %v", got)
	}
}
