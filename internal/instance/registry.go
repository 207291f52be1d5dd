// Package instance mirrors the backend's instance list for the front-ends.
//
// The registry never patches its own copy: every successful mutation is
// followed by a full Refresh so the list always matches the backend.
package instance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
	"github.com/studiowebux/launcher/internal/validation"
	"go.uber.org/zap"
)

const (
	msgNameRequired = "Instance name is required"
	msgNameTaken    = "An instance with this name already exists"
)

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithValidator shares a validator
func WithValidator(v *validation.Validator) Option {
	return func(r *Registry) { r.validator = v }
}

// Registry is the client-side instance list
type Registry struct {
	backend   backend.Instances
	notifier  notify.Notifier
	validator *validation.Validator
	logger    *zap.Logger

	mu        sync.RWMutex
	instances []types.Instance
	loading   bool
}

// NewRegistry creates an empty registry; call Refresh to populate it
func NewRegistry(b backend.Instances, n notify.Notifier, opts ...Option) *Registry {
	r := &Registry{
		backend:   b,
		notifier:  n,
		instances: []types.Instance{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = notify.Nop{}
	}
	r.notifier = notify.WithSource(r.notifier, notify.SourceInstance)
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.validator == nil {
		r.validator = validation.New()
	}
	return r
}

// List returns a copy of the current instances
func (r *Registry) List() []types.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// Loading reports whether a refresh is in flight
func (r *Registry) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// Get finds an instance by identifier in the mirrored list
func (r *Registry) Get(identifier string) (types.Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, instance := range r.instances {
		if instance.Identifier == identifier {
			return instance, true
		}
	}
	return types.Instance{}, false
}

// NameExists reports whether another instance already uses name,
// compared case-insensitively after trimming. excludeIdentifier is skipped.
func (r *Registry) NameExists(name, excludeIdentifier string) bool {
	normalized := normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, instance := range r.instances {
		if instance.Identifier == excludeIdentifier {
			continue
		}
		if normalizeName(instance.Name) == normalized {
			return true
		}
	}
	return false
}

// Refresh replaces the list with the backend's. On failure the previous list is kept.
func (r *Registry) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	list, err := r.backend.GetInstances(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.logger.Warn("failed to fetch instances", zap.Error(err))
		return fmt.Errorf("refresh instances: %w", err)
	}
	if list == nil {
		list = []types.Instance{}
	}
	r.instances = list
	return nil
}

// Create validates opts, creates the instance and refreshes.
// Invalid options and name collisions return a *types.ValidationError.
func (r *Registry) Create(ctx context.Context, opts types.InstanceOptions) (types.Instance, error) {
	opts.Name = strings.TrimSpace(opts.Name)

	if err := r.validator.Struct(opts); err != nil {
		return types.Instance{}, err
	}
	if r.NameExists(opts.Name, "") {
		return types.Instance{}, types.NewValidationError("name", msgNameTaken)
	}

	instance, err := r.backend.CreateInstance(ctx, opts)
	if err != nil {
		if errors.Is(err, backend.ErrAlreadyExists) {
			return types.Instance{}, types.NewValidationError("name", msgNameTaken)
		}
		notify.Error(r.notifier, "Failed to create instance", backend.Message(err))
		return types.Instance{}, fmt.Errorf("create instance: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, fmt.Sprintf("Instance %q has been created", opts.Name), "")
	return instance, nil
}

// Remove deletes an instance and refreshes
func (r *Registry) Remove(ctx context.Context, identifier string) error {
	name := identifier
	if instance, ok := r.Get(identifier); ok {
		name = instance.Name
	}

	if err := r.backend.RemoveInstance(ctx, identifier); err != nil {
		notify.Error(r.notifier, "Failed to remove instance", backend.Message(err))
		return fmt.Errorf("remove instance: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, fmt.Sprintf("Instance %q has been removed", name), "")
	return nil
}

// Rename changes an instance's display name and refreshes. Renaming to the
// current name in any casing is allowed.
func (r *Registry) Rename(ctx context.Context, identifier, newName string) (types.Instance, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return types.Instance{}, types.NewValidationError("name", msgNameRequired)
	}
	if r.NameExists(newName, identifier) {
		return types.Instance{}, types.NewValidationError("name", msgNameTaken)
	}

	oldName := identifier
	if instance, ok := r.Get(identifier); ok {
		oldName = instance.Name
	}

	instance, err := r.backend.RenameInstance(ctx, identifier, newName)
	if err != nil {
		if errors.Is(err, backend.ErrAlreadyExists) {
			return types.Instance{}, types.NewValidationError("name", msgNameTaken)
		}
		notify.Error(r.notifier, "Failed to rename instance", backend.Message(err))
		return types.Instance{}, fmt.Errorf("rename instance: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, "Instance renamed", fmt.Sprintf("%q has been renamed to %q.", oldName, newName))
	return instance, nil
}

// UpdateIcon sets the icon from a data URL, or removes it when iconData is nil
func (r *Registry) UpdateIcon(ctx context.Context, identifier string, iconData *string) (types.Instance, error) {
	instance, err := r.backend.UpdateInstanceIcon(ctx, identifier, iconData)
	if err != nil {
		notify.Error(r.notifier, "Failed to update icon", backend.Message(err))
		return types.Instance{}, fmt.Errorf("update instance icon: %w", err)
	}

	r.refreshAfterMutation(ctx)
	if iconData == nil {
		notify.Success(r.notifier, "Icon removed", "")
	} else {
		notify.Success(r.notifier, "Icon updated", "")
	}
	return instance, nil
}

// refreshAfterMutation refreshes; a failure is logged by Refresh and the mutation still counts
func (r *Registry) refreshAfterMutation(ctx context.Context) {
	_ = r.Refresh(ctx)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
