package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/studiowebux/launcher/internal/fsutil"
)

// Config is the user's keybinding overrides. Each section maps an action to a
// comma separated list of keys, e.g. {"instances": {"instance_create": "n,+"}}.
type Config struct {
	Version        string            `json:"version"`
	Global         map[string]string `json:"global,omitempty"`
	Viewer         map[string]string `json:"viewer,omitempty"`
	Instances      map[string]string `json:"instances,omitempty"`
	InstanceDetail map[string]string `json:"instance_detail,omitempty"`
	Accounts       map[string]string `json:"accounts,omitempty"`
	Settings       map[string]string `json:"settings,omitempty"`
	Activity       map[string]string `json:"activity,omitempty"`
	Help           map[string]string `json:"help,omitempty"`
	TextInput      map[string]string `json:"text_input,omitempty"`
	Confirm        map[string]string `json:"confirm,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:         c.Global,
		ContextViewer:         c.Viewer,
		ContextInstances:      c.Instances,
		ContextInstanceDetail: c.InstanceDetail,
		ContextAccounts:       c.Accounts,
		ContextSettings:       c.Settings,
		ContextActivity:       c.Activity,
		ContextHelp:           c.Help,
		ContextTextInput:      c.TextInput,
		ContextConfirm:        c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data)
}

// splitKeys turns "up, k" into ["up", "k"]. A lone "," is kept as the comma key.
func splitKeys(spec string) []string {
	if strings.TrimSpace(spec) == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(spec, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig rebinds every action named in config. User bindings replace the defaults.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionStr, spec := range section {
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			keys := splitKeys(spec)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}
			registry.Rebind(context, Action(actionStr), keys)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportConfig writes the bindings of registry in config form so users can see what can be customized
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	sections := map[Context]*map[string]string{
		ContextGlobal:         &config.Global,
		ContextViewer:         &config.Viewer,
		ContextInstances:      &config.Instances,
		ContextInstanceDetail: &config.InstanceDetail,
		ContextAccounts:       &config.Accounts,
		ContextSettings:       &config.Settings,
		ContextActivity:       &config.Activity,
		ContextHelp:           &config.Help,
		ContextTextInput:      &config.TextInput,
		ContextConfirm:        &config.Confirm,
	}

	for context, section := range sections {
		byAction := make(map[string][]string)
		for _, b := range registry.ListBindings(context) {
			byAction[string(b.Action)] = append(byAction[string(b.Action)], b.Key)
		}
		if len(byAction) == 0 {
			continue
		}
		*section = make(map[string]string, len(byAction))
		for action, keys := range byAction {
			(*section)[action] = strings.Join(keys, ",")
		}
	}

	return config
}
