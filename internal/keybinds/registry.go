package keybinds

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	mu sync.RWMutex

	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// multiKeyState tracks multi-key sequences (like 'gg' in vim)
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		multiKeyState: make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(context, key, action)
}

func (r *Registry) register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Rebind replaces every key bound to action in context with keys
func (r *Registry) Rebind(context Context, action Action, keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
	for _, key := range keys {
		r.register(context, key, action)
	}
}

// MatchExact looks a key up in one context only
func (r *Registry) MatchExact(context Context, key string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.bindings[context][key]
	return action, ok
}

// Match attempts to match a key in the given context, then in the global context
func (r *Registry) Match(context Context, key string) (Action, bool) {
	return r.MatchChain(key, context, ContextGlobal)
}

// MatchChain tries each context in order and returns the first match
func (r *Registry) MatchChain(key string, contexts ...Context) (Action, bool) {
	for _, context := range contexts {
		if action, ok := r.MatchExact(context, key); ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey handles multi-key sequences like 'gg' for go-to-top.
// Returns the action, whether it's a complete match, and whether it's a partial match.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	r.mu.Lock()
	prevKey, hasPending := r.multiKeyState[context]
	delete(r.multiKeyState, context)
	r.mu.Unlock()

	if hasPending {
		if action, ok := r.Match(context, prevKey+key); ok {
			return action, true, false
		}
		return "", false, false
	}

	if key == "g" {
		if _, ok := r.MatchExact(context, "gg"); ok {
			r.mu.Lock()
			r.multiKeyState[context] = key
			r.mu.Unlock()
			return "", false, true
		}
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.multiKeyState, context)
}

// GetBinding returns the key(s) bound to an action in a context, falling back to global
func (r *Registry) GetBinding(context Context, action Action) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := keysFor(r.bindings[context], action)
	if len(keys) == 0 {
		keys = keysFor(r.bindings[ContextGlobal], action)
	}
	return keys
}

func keysFor(bindings map[string]Action, action Action) []string {
	var keys []string
	for key, act := range bindings {
		if act == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns the bindings of a context sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bindings []Binding
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Key < bindings[j].Key })
	return bindings
}

// Validate checks that no key is bound to an empty action
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			if action == "" {
				return fmt.Errorf("empty action for key '%s' in context '%s'", key, context)
			}
		}
	}
	return nil
}

// HasBinding checks if a key is bound in a context or globally
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := NewRegistry()
	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			clone.register(context, key, action)
		}
	}
	return clone
}
