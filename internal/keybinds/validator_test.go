package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v.reservedKeys["ctrl+c"] != ActionQuitForce {
		t.Error("Expected ctrl+c to be reserved for force quit")
	}
	if v.reservedKeys["ctrl+b"] != ActionToggleSidebar {
		t.Error("Expected ctrl+b to be reserved for the sidebar")
	}

	parent, ok := v.Parent(ContextInstances)
	if !ok || parent != ContextViewer {
		t.Errorf("Parent(instances) = %s, %v", parent, ok)
	}
	if _, ok := v.Parent(ContextGlobal); ok {
		t.Error("global context should be the root")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "conflict error",
			err:      ValidationError{Type: "conflict", Context: ContextInstances, Key: "n", Message: "key bound 2 times"},
			expected: "[conflict] n in context 'instances': key bound 2 times",
		},
		{
			name:     "invalid error",
			err:      ValidationError{Type: "invalid", Context: ContextGlobal, Key: "", Message: "empty key"},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name:     "warning",
			err:      ValidationError{Type: "warning", Context: ContextHelp, Key: "q", Message: "shadows global binding"},
			expected: "[warning] q in context 'help': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	empty := &ValidationResult{}
	if empty.String() != "No issues found" {
		t.Errorf("String() = %q", empty.String())
	}

	result := &ValidationResult{
		Errors:   []ValidationError{{Type: "conflict", Context: ContextGlobal, Key: "q", Message: "dup"}},
		Warnings: []ValidationError{{Type: "warning", Context: ContextHelp, Key: "q", Message: "shadow"}},
	}
	if !result.HasErrors() || !result.HasWarnings() {
		t.Error("expected errors and warnings")
	}
	got := result.String()
	if !strings.Contains(got, "Errors (1)") || !strings.Contains(got, "Warnings (1)") {
		t.Errorf("String() = %q", got)
	}
}

func TestDefaultRegistryIsValid(t *testing.T) {
	r := NewDefaultRegistry()

	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	result := NewValidator().ValidateRegistry(r)
	if result.HasErrors() {
		t.Errorf("default bindings have errors:\n%s", result)
	}
}

func TestCheckReservedKeys(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+b", ActionCycleTheme)
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)

	result := NewValidator().ValidateRegistry(r)
	if len(result.Warnings) != 1 || result.Warnings[0].Key != "ctrl+b" {
		t.Errorf("warnings = %+v, want one for ctrl+b", result.Warnings)
	}
}

func TestCheckShadowing(t *testing.T) {
	tests := []struct {
		name     string
		context  Context
		key      string
		action   Action
		warnings int
	}{
		{"different action", ContextAccounts, "q", ActionAccountRemove, 1},
		{"same action", ContextAccounts, "q", ActionQuit, 0},
		{"text input exempt", ContextTextInput, "q", ActionTextSubmit, 0},
		{"unrelated key", ContextAccounts, "a", ActionAccountAdd, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(ContextGlobal, "q", ActionQuit)
			r.Register(tt.context, tt.key, tt.action)

			result := NewValidator().ValidateRegistry(r)
			if len(result.Warnings) != tt.warnings {
				t.Errorf("warnings = %+v, want %d", result.Warnings, tt.warnings)
			}
		})
	}
}

func TestCheckMultiKeySequences(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextViewer, "g", ActionGoToTopPrepare)
	r.Register(ContextViewer, "gg", ActionGoToTop)
	r.Register(ContextAccounts, "d", ActionAccountRemove)
	r.Register(ContextAccounts, "dd", ActionAccountRemove)

	result := NewValidator().ValidateRegistry(r)
	if len(result.Warnings) != 1 || result.Warnings[0].Key != "dd" {
		t.Errorf("warnings = %+v, want one for dd", result.Warnings)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
	}{
		{
			name:   "valid override",
			config: &Config{Instances: map[string]string{"instance_create": "n,+"}},
		},
		{
			name:      "unknown action",
			config:    &Config{Global: map[string]string{"launch_rocket": "x"}},
			wantError: true,
		},
		{
			name:      "modifier without key",
			config:    &Config{Global: map[string]string{"quit": "ctrl+"}},
			wantError: true,
		},
		{
			name: "same key twice in one section",
			config: &Config{Accounts: map[string]string{
				"account_add":    "a",
				"account_remove": "a",
			}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if result.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v:\n%s", result.HasErrors(), tt.wantError, result)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	config := &Config{Settings: map[string]string{
		"settings_edit":   "enter",
		"settings_toggle": "enter, space",
	}}

	conflicts := FindConflicts(config)
	if len(conflicts) != 1 || !strings.Contains(conflicts[0], "enter") {
		t.Errorf("conflicts = %v", conflicts)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"a", false},
		{"ctrl+b", false},
		{"shift+tab", false},
		{"", true},
		{"ctrl+", true},
		{"alt+", true},
	}

	for _, tt := range tests {
		if err := ValidateKey(tt.key); (err != nil) != tt.wantErr {
			t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
	}
}

func TestValidateAction(t *testing.T) {
	for _, action := range []string{"quit", "toggle_sidebar", "text_paste", "go_to_top_prepare"} {
		if err := ValidateAction(action); err != nil {
			t.Errorf("ValidateAction(%q) error = %v", action, err)
		}
	}
	for _, action := range []string{"", "execute"} {
		if err := ValidateAction(action); err == nil {
			t.Errorf("ValidateAction(%q) accepted", action)
		}
	}
}
