package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys maps keys that should keep their global action
	reservedKeys map[string]Action

	// contextHierarchy defines which context a screen falls back to
	contextHierarchy map[Context]Context
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce,
			"ctrl+b": ActionToggleSidebar,
		},
		contextHierarchy: map[Context]Context{
			ContextInstances:      ContextViewer,
			ContextInstanceDetail: ContextGlobal,
			ContextAccounts:       ContextViewer,
			ContextSettings:       ContextViewer,
			ContextActivity:       ContextViewer,
			ContextViewer:         ContextGlobal,
			ContextHelp:           ContextGlobal,
			ContextTextInput:      ContextGlobal,
			ContextConfirm:        ContextGlobal,
		},
	}
}

// Parent returns the context a screen falls back to, and false for the root
func (v *Validator) Parent(context Context) (Context, bool) {
	parent, ok := v.contextHierarchy[context]
	return parent, ok
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	v.checkKeys(registry, result)
	v.checkReservedKeys(registry, result)
	v.checkMultiKeySequences(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{
				Type:    "invalid",
				Message: err.Error(),
			}},
			Warnings: []ValidationError{},
		}
	}

	result := v.ValidateRegistry(registry)
	v.checkDuplicateKeys(config, result)
	return result
}

// checkKeys reports malformed keys and empty actions
func (v *Validator) checkKeys(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if err := ValidateKey(key); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type: "invalid", Context: context, Key: key, Message: err.Error(),
				})
			}
			if action == "" {
				result.Errors = append(result.Errors, ValidationError{
					Type: "invalid", Context: context, Key: key, Message: "empty action",
				})
			}
		}
	}
}

// checkDuplicateKeys finds keys given to more than one action in the same config section
func (v *Validator) checkDuplicateKeys(config *Config, result *ValidationResult) {
	for context, section := range config.sections() {
		owners := make(map[string][]string)
		for action, spec := range section {
			for _, key := range splitKeys(spec) {
				owners[key] = append(owners[key], action)
			}
		}
		for key, actions := range owners {
			if len(actions) > 1 {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("key bound %d times", len(actions)),
				})
			}
		}
	}
}

// checkReservedKeys warns when a reserved key is given another global action
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for key, action := range registry.bindings[ContextGlobal] {
		if want, reserved := v.reservedKeys[key]; reserved && action != want {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: ContextGlobal,
				Key:     key,
				Message: "reserved key rebound (may cause issues)",
			})
		}
	}
}

// checkMultiKeySequences warns when the first key of a sequence runs its own action
func (v *Validator) checkMultiKeySequences(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key := range bindings {
			if len(key) < 2 || strings.Contains(key, "+") || !isSequence(key) {
				continue
			}
			first := key[:1]
			if action, ok := bindings[first]; ok && action != ActionGoToTopPrepare {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("sequence is unreachable, '%s' runs %s", first, action),
				})
			}
		}
	}
}

// isSequence reports whether key is typed as several characters (gg) rather than named (pgup)
func isSequence(key string) bool {
	for i := 1; i < len(key); i++ {
		if key[i] != key[0] {
			return false
		}
	}
	return true
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for context, bindings := range registry.bindings {
		if context == ContextGlobal || context == ContextTextInput {
			continue
		}

		for key, action := range bindings {
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	result := NewValidator().ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}
	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}
	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if _, known := actionInfos[Action(actionStr)]; !known && !knownExtra[Action(actionStr)] {
		return fmt.Errorf("unknown action: %s", actionStr)
	}
	return nil
}

// knownExtra lists valid actions that have no help entry
var knownExtra = map[Action]bool{
	ActionGoToTopPrepare: true,
	ActionPageUp:         true,
	ActionPageDown:       true,
	ActionTextSubmit:     true,
	ActionTextCancel:     true,
	ActionTextPaste:      true,
	ActionConfirm:        true,
	ActionCancel:         true,
	ActionCloseModal:     true,
	ActionNoOp:           true,
}
