package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the launcher configuration persisted to launcher-settings.json
type Settings struct {
	Launcher      LauncherSettings     `json:"launcher" yaml:"launcher"`
	Preferences   PreferenceSettings   `json:"preferences" yaml:"preferences"`
	Notifications NotificationSettings `json:"notifications" yaml:"notifications"`
	Advanced      AdvancedSettings     `json:"advanced" yaml:"advanced"`
	GameOptions   GameOptions          `json:"gameOptions" yaml:"gameOptions"`
}

// LauncherSettings holds launcher behaviour preferences
type LauncherSettings struct {
	Language   string `json:"language" yaml:"language" validate:"required"`
	AutoBoot   bool   `json:"autoBoot" yaml:"autoBoot"`
	ExitToDock bool   `json:"exitToDock" yaml:"exitToDock"`
}

// PreferenceSettings holds game session preferences
type PreferenceSettings struct {
	RAM         int        `json:"ram" yaml:"ram" validate:"gte=1024,ramstep"`
	AfterLaunch string     `json:"afterLaunch" yaml:"afterLaunch" validate:"oneof=open hide close"`
	Resolution  Resolution `json:"resolution" yaml:"resolution"`
}

// Resolution is the game window size, each side either "auto" or a positive number
type Resolution struct {
	Width  Dimension `json:"width" yaml:"width"`
	Height Dimension `json:"height" yaml:"height"`
}

// NotificationSettings toggles social notifications
type NotificationSettings struct {
	FriendsOnline  bool            `json:"friendsOnline" yaml:"friendsOnline"`
	FriendsPlaying bool            `json:"friendsPlaying" yaml:"friendsPlaying"`
	Discord        DiscordSettings `json:"discord" yaml:"discord"`
}

// DiscordSettings toggles Discord integration
type DiscordSettings struct {
	RichPresence bool `json:"richPresence" yaml:"richPresence"`
}

// AdvancedSettings holds paths, update channel and JVM tuning
type AdvancedSettings struct {
	GameDirectory     string `json:"gameDirectory" yaml:"gameDirectory,omitempty"`
	JavaPath          string `json:"javaPath" yaml:"javaPath,omitempty"`
	Branch            string `json:"branch" yaml:"branch" validate:"required"`
	UpdatePreferences string `json:"updatePreferences" yaml:"updatePreferences" validate:"required"`
	JVMArguments      string `json:"JVMArguments" yaml:"JVMArguments,omitempty" validate:"omitempty,jvmargs"`
	DisplayTooltips   bool   `json:"displayTooltips" yaml:"displayTooltips"`
	ReducedAnimations bool   `json:"reducedAnimations" yaml:"reducedAnimations"`
}

// GameOptions holds the selected game version
type GameOptions struct {
	Version string `json:"version" yaml:"version" validate:"required,gameversion"`
}

// SettingsTab identifies a settings page
type SettingsTab string

const (
	SettingsTabLauncher      SettingsTab = "launcher"
	SettingsTabPreferences   SettingsTab = "preferences"
	SettingsTabNotifications SettingsTab = "notifications"
	SettingsTabAdvanced      SettingsTab = "advanced"
	SettingsTabResources     SettingsTab = "resources"
)

// SettingsTabs lists the settings pages in display order
var SettingsTabs = []SettingsTab{
	SettingsTabLauncher,
	SettingsTabPreferences,
	SettingsTabNotifications,
	SettingsTabAdvanced,
	SettingsTabResources,
}

// DimensionAuto is the literal accepted for an automatic window side
const DimensionAuto = "auto"

// Dimension is one side of the game window: "auto" or a number.
// Decoding never fails; unparseable input is kept in Invalid so validation
// can report it against the field.
type Dimension struct {
	Auto    bool
	Value   float64
	Invalid string
}

// AutoDimension returns an automatic dimension
func AutoDimension() Dimension {
	return Dimension{Auto: true}
}

// FixedDimension returns a numeric dimension
func FixedDimension(v float64) Dimension {
	return Dimension{Value: v}
}

// ParseDimension interprets raw form input. An empty string means auto.
// Infinities and NaN are kept as invalid input: they cannot be stored as JSON.
func ParseDimension(raw string) Dimension {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == DimensionAuto {
		return AutoDimension()
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return FixedDimension(v)
	}
	return Dimension{Invalid: raw}
}

// String renders the dimension the way it is stored
func (d Dimension) String() string {
	switch {
	case d.Invalid != "":
		return d.Invalid
	case d.Auto:
		return DimensionAuto
	default:
		return strconv.FormatFloat(d.Value, 'f', -1, 64)
	}
}

func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.Auto || d.Invalid != "" {
		return json.Marshal(d.String())
	}
	return json.Marshal(d.Value)
}

func (d *Dimension) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = FixedDimension(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseDimension(s)
		return nil
	}
	*d = Dimension{Invalid: string(data)}
	return nil
}

func (d Dimension) MarshalYAML() (interface{}, error) {
	if d.Auto || d.Invalid != "" {
		return d.String(), nil
	}
	return d.Value, nil
}

func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	*d = ParseDimension(value.Value)
	return nil
}
