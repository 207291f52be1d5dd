// Package session holds the UI ephemera: theme, sidebar, tabs, breadcrumbs
// and the selected instance. Everything except breadcrumbs is persisted to
// ui-state.json.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/launcher/internal/fsutil"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

// MaxRecentInstances caps the recently opened list
const MaxRecentInstances = 10

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithDarkBackground replaces terminal background detection used by the system theme
func WithDarkBackground(fn func() bool) Option {
	return func(m *Manager) { m.darkBackground = fn }
}

// Manager handles UI state
type Manager struct {
	path           string
	logger         *zap.Logger
	darkBackground func() bool

	mu          sync.RWMutex
	state       types.UIState
	breadcrumbs []string
}

// NewManager creates a manager backed by the ui-state file at path
func NewManager(path string, opts ...Option) *Manager {
	m := &Manager{
		path:           path,
		darkBackground: lipgloss.HasDarkBackground,
		state:          defaultState(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

func defaultState() types.UIState {
	open := true
	return types.UIState{
		Theme:          types.ThemeSystem,
		SidebarOpen:    &open,
		SettingsTab:    types.SettingsTabLauncher,
		GameOptionsTab: types.GameOptionsTabVersion,
	}
}

// Load reads the state file. A missing or unreadable file leaves the defaults in place.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read ui state: %w", err)
	}

	var state types.UIState
	if err := json.Unmarshal(data, &state); err != nil {
		m.logger.Warn("ignoring invalid ui state", zap.String("path", m.path), zap.Error(err))
		return nil
	}

	m.mu.Lock()
	m.state = sanitize(state)
	m.mu.Unlock()
	return nil
}

// sanitize replaces unknown or missing values with defaults
func sanitize(state types.UIState) types.UIState {
	def := defaultState()
	if !validTheme(state.Theme) {
		state.Theme = def.Theme
	}
	if state.SidebarOpen == nil {
		state.SidebarOpen = def.SidebarOpen
	}
	if !validSettingsTab(state.SettingsTab) {
		state.SettingsTab = def.SettingsTab
	}
	if state.GameOptionsTab != types.GameOptionsTabVersion && state.GameOptionsTab != types.GameOptionsTabMods {
		state.GameOptionsTab = def.GameOptionsTab
	}
	if len(state.RecentInstances) > MaxRecentInstances {
		state.RecentInstances = state.RecentInstances[:MaxRecentInstances]
	}
	return state
}

// State returns a copy of the persisted state
func (m *Manager) State() types.UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := m.state
	open := *m.state.SidebarOpen
	state.SidebarOpen = &open
	state.RecentInstances = append([]string(nil), m.state.RecentInstances...)
	return state
}

// save writes the state. Failures are logged; memory stays authoritative.
func (m *Manager) save() {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.state, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		m.logger.Error("failed to encode ui state", zap.Error(err))
		return
	}

	if err := fsutil.WriteFileAtomic(m.path, data); err != nil {
		m.logger.Error("failed to write ui state", zap.String("path", m.path), zap.Error(err))
	}
}

func (m *Manager) update(fn func(*types.UIState)) {
	m.mu.Lock()
	fn(&m.state)
	m.mu.Unlock()
	m.save()
}

// Theme returns the chosen theme
func (m *Manager) Theme() types.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Theme
}

// SetTheme changes the theme
func (m *Manager) SetTheme(theme types.Theme) error {
	if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}
	m.update(func(s *types.UIState) { s.Theme = theme })
	return nil
}

// CycleTheme moves to the next theme in types.Themes
func (m *Manager) CycleTheme() types.Theme {
	current := m.Theme()
	next := types.Themes[0]
	for i, t := range types.Themes {
		if t == current {
			next = types.Themes[(i+1)%len(types.Themes)]
			break
		}
	}
	m.update(func(s *types.UIState) { s.Theme = next })
	return next
}

// ResolvedTheme is the theme actually drawn: system becomes dark or light
// from the terminal background.
func (m *Manager) ResolvedTheme() types.Theme {
	theme := m.Theme()
	if theme != types.ThemeSystem {
		return theme
	}
	if m.darkBackground() {
		return types.ThemeDark
	}
	return types.ThemeLight
}

// SidebarOpen reports whether the sidebar is expanded
func (m *Manager) SidebarOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.state.SidebarOpen
}

// SetSidebarOpen expands or collapses the sidebar
func (m *Manager) SetSidebarOpen(open bool) {
	m.update(func(s *types.UIState) { s.SidebarOpen = &open })
}

// ToggleSidebar flips the sidebar and returns the new state
func (m *Manager) ToggleSidebar() bool {
	var open bool
	m.update(func(s *types.UIState) {
		open = !*s.SidebarOpen
		s.SidebarOpen = &open
	})
	return open
}

// Breadcrumbs returns the current navigation trail. It is never persisted.
func (m *Manager) Breadcrumbs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.breadcrumbs...)
}

func (m *Manager) SetBreadcrumbs(crumbs ...string) {
	m.mu.Lock()
	m.breadcrumbs = append([]string(nil), crumbs...)
	m.mu.Unlock()
}

// SettingsTab returns the open settings page
func (m *Manager) SettingsTab() types.SettingsTab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.SettingsTab
}

// SetSettingsTab switches the settings page
func (m *Manager) SetSettingsTab(tab types.SettingsTab) error {
	if !validSettingsTab(tab) {
		return fmt.Errorf("unknown settings tab %q", tab)
	}
	m.update(func(s *types.UIState) { s.SettingsTab = tab })
	return nil
}

// GameOptionsTab returns the open game-options page
func (m *Manager) GameOptionsTab() types.GameOptionsTab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.GameOptionsTab
}

// SetGameOptionsTab switches the game-options page
func (m *Manager) SetGameOptionsTab(tab types.GameOptionsTab) error {
	if tab != types.GameOptionsTabVersion && tab != types.GameOptionsTabMods {
		return fmt.Errorf("unknown game options tab %q", tab)
	}
	m.update(func(s *types.UIState) { s.GameOptionsTab = tab })
	return nil
}

// SelectedInstance returns the identifier of the open instance, if any
func (m *Manager) SelectedInstance() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.SelectedInstance
}

// SelectInstance opens an instance and moves it to the front of the recent list
func (m *Manager) SelectInstance(identifier string) {
	m.update(func(s *types.UIState) {
		s.SelectedInstance = identifier
		if identifier == "" {
			return
		}

		recent := []string{identifier}
		for _, id := range s.RecentInstances {
			if id != identifier && len(recent) < MaxRecentInstances {
				recent = append(recent, id)
			}
		}
		s.RecentInstances = recent
	})
}

// RecentInstances returns the recently opened identifiers, most recent first
func (m *Manager) RecentInstances() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.state.RecentInstances...)
}

// ForgetInstance drops a removed instance from the selection and recent list
func (m *Manager) ForgetInstance(identifier string) {
	m.update(func(s *types.UIState) {
		if s.SelectedInstance == identifier {
			s.SelectedInstance = ""
		}
		kept := s.RecentInstances[:0]
		for _, id := range s.RecentInstances {
			if id != identifier {
				kept = append(kept, id)
			}
		}
		s.RecentInstances = kept
	})
}

// PruneRecent drops recent entries that are not in identifiers
func (m *Manager) PruneRecent(identifiers []string) {
	known := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		known[id] = true
	}

	m.update(func(s *types.UIState) {
		kept := make([]string, 0, len(s.RecentInstances))
		for _, id := range s.RecentInstances {
			if known[id] {
				kept = append(kept, id)
			}
		}
		s.RecentInstances = kept
		if s.SelectedInstance != "" && !known[s.SelectedInstance] {
			s.SelectedInstance = ""
		}
	})
}

func validTheme(theme types.Theme) bool {
	for _, t := range types.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func validSettingsTab(tab types.SettingsTab) bool {
	for _, t := range types.SettingsTabs {
		if t == tab {
			return true
		}
	}
	return false
}
