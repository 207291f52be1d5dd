package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/config"
	"github.com/studiowebux/launcher/internal/fsutil"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

const metadataFile = "instance.json"

// InstanceFolders are created inside every new instance
var InstanceFolders = []string{
	"mods",
	"config",
	"saves",
	"logs",
	"resourcepacks",
	"shaderpacks",
	"screenshots",
}

func (b *Backend) instanceDir(identifier string) (string, error) {
	if !validIdentifier(identifier) {
		return "", backend.Errorf(backend.ErrInvalid, "Invalid instance identifier %q", identifier)
	}
	return filepath.Join(b.instancesDir, identifier), nil
}

// CreateInstance validates the options, creates the folder tree and writes the metadata
func (b *Backend) CreateInstance(ctx context.Context, opts types.InstanceOptions) (types.Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Instance name is required")
	}
	if !catalog.IsLoader(opts.Loader) {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Invalid loader. Must be %s", strings.Join(catalog.Loaders, ", "))
	}
	if !catalog.IsGameVersion(opts.Version) {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Invalid version. Must be one of %s", strings.Join(catalog.GameVersions(), ", "))
	}

	exists, err := b.nameExists(name, "")
	if err != nil {
		return types.Instance{}, err
	}
	if exists {
		return types.Instance{}, backend.Errorf(backend.ErrAlreadyExists, "An instance with the name '%s' already exists", name)
	}

	identifier := Identifier(name)
	if identifier == "" {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Instance name must contain at least one alphanumeric character")
	}

	dir := filepath.Join(b.instancesDir, identifier)
	if _, err := os.Stat(dir); err == nil {
		return types.Instance{}, backend.Errorf(backend.ErrAlreadyExists, "An instance with the identifier '%s' already exists", identifier)
	}

	var icon []byte
	if opts.Icon != "" {
		if icon, err = decodeIcon(opts.Icon); err != nil {
			return types.Instance{}, err
		}
	}

	for _, folder := range InstanceFolders {
		if err := os.MkdirAll(filepath.Join(dir, folder), config.DirPermissions); err != nil {
			return types.Instance{}, fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	instance := types.Instance{
		Identifier: identifier,
		Name:       name,
		Loader:     opts.Loader,
		Version:    opts.Version,
	}

	if icon != nil {
		if err := os.WriteFile(filepath.Join(dir, iconFile), icon, config.FilePermissions); err != nil {
			return types.Instance{}, fmt.Errorf("failed to save icon: %w", err)
		}
		instance.Icon = iconFile
	}

	if err := b.saveInstance(instance); err != nil {
		return types.Instance{}, err
	}

	b.logger.Info("created instance",
		zap.String("identifier", identifier),
		zap.String("loader", instance.Loader),
		zap.String("version", instance.Version))

	return b.loadInstance(identifier)
}

// GetInstance loads one instance with its icon inlined
func (b *Backend) GetInstance(ctx context.Context, identifier string) (types.Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadInstance(identifier)
}

// GetInstances lists every readable instance; unreadable folders are skipped
func (b *Backend) GetInstances(ctx context.Context) ([]types.Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listInstances()
}

// RemoveInstance deletes the instance folder and everything in it
func (b *Backend) RemoveInstance(ctx context.Context, identifier string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir, err := b.instanceDir(identifier)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return backend.Errorf(backend.ErrNotFound, "Instance %s not found", identifier)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove instance directory: %w", err)
	}

	b.logger.Info("removed instance", zap.String("identifier", identifier))
	return nil
}

// RenameInstance changes the display name; the identifier stays the same.
// Renaming to the current name (ignoring case and surrounding space) is allowed.
func (b *Backend) RenameInstance(ctx context.Context, identifier, newName string) (types.Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	instance, err := b.readMetadata(identifier)
	if err != nil {
		return types.Instance{}, err
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Instance name is required")
	}
	if Identifier(newName) == "" {
		return types.Instance{}, backend.Errorf(backend.ErrInvalid, "Instance name must contain at least one alphanumeric character")
	}

	if !sameName(instance.Name, newName) {
		exists, err := b.nameExists(newName, identifier)
		if err != nil {
			return types.Instance{}, err
		}
		if exists {
			return types.Instance{}, backend.Errorf(backend.ErrAlreadyExists, "An instance with the name '%s' already exists", newName)
		}
	}

	oldName := instance.Name
	instance.Name = newName
	if err := b.saveInstance(instance); err != nil {
		return types.Instance{}, err
	}

	b.logger.Info("renamed instance",
		zap.String("identifier", identifier),
		zap.String("from", oldName),
		zap.String("to", newName))

	return b.loadInstance(identifier)
}

// UpdateInstanceIcon stores a new icon, or removes it when iconData is nil
func (b *Backend) UpdateInstanceIcon(ctx context.Context, identifier string, iconData *string) (types.Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	instance, err := b.readMetadata(identifier)
	if err != nil {
		return types.Instance{}, err
	}
	iconPath := filepath.Join(b.instancesDir, identifier, iconFile)

	if iconData != nil {
		icon, err := decodeIcon(*iconData)
		if err != nil {
			return types.Instance{}, err
		}
		if err := fsutil.WriteFileAtomic(iconPath, icon); err != nil {
			return types.Instance{}, fmt.Errorf("failed to save icon: %w", err)
		}
		instance.Icon = iconFile
	} else {
		if err := os.Remove(iconPath); err != nil && !os.IsNotExist(err) {
			return types.Instance{}, fmt.Errorf("failed to remove icon: %w", err)
		}
		instance.Icon = ""
	}

	if err := b.saveInstance(instance); err != nil {
		return types.Instance{}, err
	}

	return b.loadInstance(identifier)
}

func (b *Backend) listInstances() ([]types.Instance, error) {
	entries, err := os.ReadDir(b.instancesDir)
	if os.IsNotExist(err) {
		return []types.Instance{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read instances directory: %w", err)
	}

	instances := make([]types.Instance, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		instance, err := b.loadInstance(entry.Name())
		if err != nil {
			b.logger.Warn("skipping instance", zap.String("identifier", entry.Name()), zap.Error(err))
			continue
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

func (b *Backend) nameExists(name, excludeIdentifier string) (bool, error) {
	instances, err := b.listInstances()
	if err != nil {
		return false, err
	}
	for _, instance := range instances {
		if instance.Identifier == excludeIdentifier {
			continue
		}
		if sameName(instance.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// readMetadata returns instance.json as stored, with the icon as a file reference
func (b *Backend) readMetadata(identifier string) (types.Instance, error) {
	dir, err := b.instanceDir(identifier)
	if err != nil {
		return types.Instance{}, err
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if os.IsNotExist(err) {
		return types.Instance{}, backend.Errorf(backend.ErrNotFound, "Instance %s not found", identifier)
	}
	if err != nil {
		return types.Instance{}, fmt.Errorf("failed to read instance metadata: %w", err)
	}

	var instance types.Instance
	if err := json.Unmarshal(data, &instance); err != nil {
		return types.Instance{}, fmt.Errorf("failed to parse instance metadata: %w", err)
	}
	instance.Identifier = identifier
	return instance, nil
}

// loadInstance reads the metadata and inlines the icon as a data URL
func (b *Backend) loadInstance(identifier string) (types.Instance, error) {
	instance, err := b.readMetadata(identifier)
	if err != nil {
		return types.Instance{}, err
	}

	if instance.Icon == iconFile {
		icon, err := os.ReadFile(filepath.Join(b.instancesDir, identifier, iconFile))
		switch {
		case err == nil:
			instance.Icon = IconDataURL(icon)
		case os.IsNotExist(err):
			instance.Icon = ""
		default:
			return types.Instance{}, fmt.Errorf("failed to read icon: %w", err)
		}
	}
	return instance, nil
}

func (b *Backend) saveInstance(instance types.Instance) error {
	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal instance: %w", err)
	}
	path := filepath.Join(b.instancesDir, instance.Identifier, metadataFile)
	if err := fsutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write instance metadata: %w", err)
	}
	return nil
}
