package types

// Theme is the colour scheme preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeOLED   Theme = "oled"
	ThemeSystem Theme = "system"
)

// Themes lists the selectable themes in cycle order
var Themes = []Theme{ThemeLight, ThemeDark, ThemeOLED, ThemeSystem}

// UIState is the persisted UI ephemera (the local/session storage of the launcher)
type UIState struct {
	Theme            Theme          `json:"theme"`
	SidebarOpen      *bool          `json:"sidebarOpen,omitempty"`
	SettingsTab      SettingsTab    `json:"settingsTab,omitempty"`
	GameOptionsTab   GameOptionsTab `json:"gameOptionsTab,omitempty"`
	SelectedInstance string         `json:"selectedInstance,omitempty"`
	RecentInstances  []string       `json:"recentInstances,omitempty"`
}
