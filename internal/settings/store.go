// Package settings keeps the launcher settings in memory and persists them
// to launcher-settings.json through a debounced, atomic write.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/studiowebux/launcher/internal/debounce"
	"github.com/studiowebux/launcher/internal/fsutil"
	"github.com/studiowebux/launcher/internal/types"
	"github.com/studiowebux/launcher/internal/validation"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
)

// Option configures a Store
type Option func(*Store)

// WithDelay overrides the debounce window (default 200ms)
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithLogger sets the logger used for persistence warnings
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithValidator shares a validator instead of building one
func WithValidator(v *validation.Validator) Option {
	return func(s *Store) { s.validator = v }
}

// Store is the in-memory authority for settings
type Store struct {
	path      string
	delay     time.Duration
	logger    *zap.Logger
	validator *validation.Validator
	debouncer *debounce.Debouncer
	writeFile func(path string, data []byte) error

	mu       sync.RWMutex
	settings types.Settings
	// raw is the last merged document; it carries keys unknown to types.Settings
	raw     map[string]interface{}
	subs    map[int]func(types.Settings)
	nextSub int
}

// NewStore creates a store backed by the file at path. Call Load before use.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:      path,
		delay:     debounce.DefaultDelay,
		settings:  Defaults(),
		subs:      make(map[int]func(types.Settings)),
		writeFile: fsutil.WriteFileAtomic,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	s.debouncer = debounce.New(s.delay, s.persist)
	return s
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file, writing defaults first if it does not exist.
// Unreadable, unparseable or invalid content falls back to defaults.
func (s *Store) Load() types.Settings {
	loaded, raw := s.read()

	s.mu.Lock()
	s.settings = loaded
	s.raw = raw
	s.mu.Unlock()

	return loaded
}

// Reset discards in-memory changes and reloads the file without scheduling a write
func (s *Store) Reset() types.Settings {
	loaded := s.Load()
	s.publish(loaded)
	return loaded
}

func (s *Store) read() (types.Settings, map[string]interface{}) {
	defaults := Defaults()
	base, err := toDocument(defaults)
	if err != nil {
		s.logger.Error("failed to encode default settings", zap.Error(err))
		return defaults, nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.write(base); err != nil {
			s.logger.Warn("failed to write default settings", zap.String("path", s.path), zap.Error(err))
		}
		return defaults, base
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("failed to read settings, using defaults", zap.String("path", s.path), zap.Error(err))
		return defaults, base
	}

	var persisted map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &persisted); err != nil {
		s.logger.Warn("failed to parse settings, using defaults", zap.String("path", s.path), zap.Error(err))
		return defaults, base
	}

	merged := Merge(base, persisted)
	loaded, err := fromDocument(merged)
	if err != nil {
		s.logger.Warn("settings do not match the schema, using defaults", zap.Error(err))
		return defaults, base
	}
	if err := s.validator.Struct(loaded); err != nil {
		s.logger.Warn("invalid settings, using defaults", zap.Error(err))
		return defaults, base
	}

	return loaded, merged
}

// Settings returns a snapshot of the current settings
func (s *Store) Settings() types.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to a copy of the settings. A valid result replaces the
// in-memory value at once and a write is scheduled; an invalid one is
// returned as a *types.ValidationError and nothing changes.
func (s *Store) Update(fn func(*types.Settings)) error {
	return s.commit(func(current types.Settings) (types.Settings, error) {
		fn(&current)
		return current, nil
	})
}

// Replace validates and stores a whole settings value
func (s *Store) Replace(next types.Settings) error {
	return s.commit(func(types.Settings) (types.Settings, error) {
		return next, nil
	})
}

func (s *Store) commit(change func(types.Settings) (types.Settings, error)) error {
	s.mu.Lock()
	next, err := change(s.settings)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.validator.Struct(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.settings = next
	s.mu.Unlock()

	s.publish(next)
	s.debouncer.Trigger()
	return nil
}

// Subscribe registers fn to receive every accepted change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(types.Settings)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(current types.Settings) {
	s.mu.RLock()
	subs := make([]func(types.Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(current)
	}
}

// Pending reports whether a write is scheduled
func (s *Store) Pending() bool {
	return s.debouncer.Pending()
}

// Flush writes a scheduled change immediately
func (s *Store) Flush() {
	s.debouncer.Flush()
}

// Close flushes pending changes and stops accepting writes
func (s *Store) Close() {
	s.debouncer.Stop()
}

// persist runs on the trailing edge of the debounce window
func (s *Store) persist() {
	s.mu.RLock()
	current := s.settings
	raw := s.raw
	s.mu.RUnlock()

	doc, err := toDocument(current)
	if err != nil {
		s.logger.Error("failed to encode settings", zap.Error(err))
		return
	}
	merged := Merge(raw, doc)

	if err := s.write(merged); err != nil {
		s.logger.Warn("failed to save settings", zap.String("path", s.path), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.raw = merged
	s.mu.Unlock()
}

func (s *Store) write(doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return s.writeFile(s.path, data)
}

func toDocument(v types.Settings) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc map[string]interface{}) (types.Settings, error) {
	var out types.Settings
	data, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
