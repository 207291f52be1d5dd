package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/types"
)

// FieldKind tells a form how to edit and coerce a field
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindToggle    FieldKind = "toggle"
	KindNumber    FieldKind = "number"
	KindChoice    FieldKind = "choice"
	KindDimension FieldKind = "dimension"
)

// Field describes one bindable setting
type Field struct {
	Path        string
	Label       string
	Description string
	Tab         types.SettingsTab
	Kind        FieldKind
	Options     []string
}

var fields = []Field{
	{Path: "launcher.language", Label: "Language", Description: "What language the launcher should be displayed in.", Tab: types.SettingsTabLauncher, Kind: KindChoice, Options: []string{"en-us"}},
	{Path: "launcher.autoBoot", Label: "Automatically start on boot", Tab: types.SettingsTabLauncher, Kind: KindToggle},
	{Path: "launcher.exitToDock", Label: "Exit to dock", Tab: types.SettingsTabLauncher, Kind: KindToggle},

	{Path: "preferences.ram", Label: "Allocated RAM (MB)", Tab: types.SettingsTabPreferences, Kind: KindNumber},
	{Path: "preferences.afterLaunch", Label: "After Game Launch", Tab: types.SettingsTabPreferences, Kind: KindChoice, Options: []string{"open", "hide", "close"}},
	{Path: "preferences.resolution.width", Label: "Width", Description: `A number or "auto".`, Tab: types.SettingsTabPreferences, Kind: KindDimension},
	{Path: "preferences.resolution.height", Label: "Height", Description: `A number or "auto".`, Tab: types.SettingsTabPreferences, Kind: KindDimension},

	{Path: "notifications.friendsOnline", Label: "Friends Online", Tab: types.SettingsTabNotifications, Kind: KindToggle},
	{Path: "notifications.friendsPlaying", Label: "Friends Playing", Tab: types.SettingsTabNotifications, Kind: KindToggle},
	{Path: "notifications.discord.richPresence", Label: "Show Discord Rich Presence", Tab: types.SettingsTabNotifications, Kind: KindToggle},

	{Path: "advanced.gameDirectory", Label: "Game directory", Tab: types.SettingsTabAdvanced, Kind: KindText},
	{Path: "advanced.javaPath", Label: "Java path", Tab: types.SettingsTabAdvanced, Kind: KindText},
	{Path: "advanced.branch", Label: "Branch", Tab: types.SettingsTabAdvanced, Kind: KindText},
	{Path: "advanced.updatePreferences", Label: "Update preferences", Tab: types.SettingsTabAdvanced, Kind: KindText},
	{Path: "advanced.JVMArguments", Label: "JVM arguments", Tab: types.SettingsTabAdvanced, Kind: KindText},
	{Path: "advanced.displayTooltips", Label: "Display tooltips", Tab: types.SettingsTabAdvanced, Kind: KindToggle},
	{Path: "advanced.reducedAnimations", Label: "Reduced animations", Tab: types.SettingsTabAdvanced, Kind: KindToggle},

	{Path: "gameOptions.version", Label: "Game version", Tab: types.SettingsTabResources, Kind: KindChoice, Options: catalog.GameVersions()},
}

// Fields lists the bindable settings in display order
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsForTab lists the fields shown on a settings page
func FieldsForTab(tab types.SettingsTab) []Field {
	var out []Field
	for _, f := range fields {
		if f.Tab == tab {
			out = append(out, f)
		}
	}
	return out
}

// LookupField finds a field by its dotted path
func LookupField(path string) (Field, bool) {
	for _, f := range fields {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}

// Get returns the current value at a dotted path as form text
func (s *Store) Get(path string) (string, error) {
	if _, ok := LookupField(path); !ok {
		return "", fmt.Errorf("unknown setting %q", path)
	}

	data, err := json.Marshal(s.Settings())
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}

	value, dataType, _, err := jsonparser.Get(data, strings.Split(path, ".")...)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if dataType == jsonparser.String {
		return jsonparser.ParseString(value)
	}
	return string(value), nil
}

// Set coerces raw form input for the field at path and applies it like Update.
// Coercion and validation failures are reported against path.
func (s *Store) Set(path, raw string) error {
	field, ok := LookupField(path)
	if !ok {
		return types.NewValidationError(path, "Unknown setting.")
	}

	encoded, msg := encodeInput(field, raw)
	if msg != "" {
		return types.NewValidationError(path, msg)
	}

	return s.commit(func(current types.Settings) (types.Settings, error) {
		data, err := json.Marshal(current)
		if err != nil {
			return current, fmt.Errorf("failed to encode settings: %w", err)
		}
		patched, err := jsonparser.Set(data, encoded, strings.Split(path, ".")...)
		if err != nil {
			return current, fmt.Errorf("failed to set %s: %w", path, err)
		}
		var next types.Settings
		if err := json.Unmarshal(patched, &next); err != nil {
			return current, fmt.Errorf("failed to decode settings: %w", err)
		}
		return next, nil
	})
}

// encodeInput turns form text into a JSON value, or returns a user-facing message
func encodeInput(field Field, raw string) ([]byte, string) {
	switch field.Kind {
	case KindToggle:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Sprintf("%s must be true or false.", field.Label)
		}
		return []byte(strconv.FormatBool(b)), ""
	case KindNumber:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Sprintf("%s must be a whole number.", field.Label)
		}
		return []byte(strconv.Itoa(n)), ""
	case KindDimension:
		data, err := json.Marshal(types.ParseDimension(raw))
		if err != nil {
			return nil, err.Error()
		}
		return data, ""
	case KindChoice:
		raw = strings.TrimSpace(raw)
		for _, opt := range field.Options {
			if opt == raw {
				data, _ := json.Marshal(raw)
				return data, ""
			}
		}
		return nil, fmt.Sprintf("Select one of: %s.", strings.Join(field.Options, ", "))
	default:
		data, _ := json.Marshal(raw)
		return data, ""
	}
}
