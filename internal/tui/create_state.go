package tui

import (
	"sync"

	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/types"
)

// CreateField indexes the inputs of the create instance form
type CreateField int

const (
	CreateFieldName CreateField = iota
	CreateFieldLoader
	CreateFieldVersion
	createFieldCount
)

// CreateFormState encapsulates the create instance form
type CreateFormState struct {
	mu sync.RWMutex

	name        []rune
	placeholder string
	loader      int
	version     int
	versions    []string
	focus       CreateField
	errors      map[string]string
	submitting  bool
}

// NewCreateFormState creates an empty form
func NewCreateFormState() *CreateFormState {
	return &CreateFormState{
		versions: catalog.GameVersions(),
		errors:   make(map[string]string),
	}
}

// Open resets the form. The version defaults to defaultVersion when it is supported.
func (s *CreateFormState) Open(placeholder, defaultVersion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = nil
	s.placeholder = placeholder
	s.loader = 0
	s.version = 0
	for i, v := range s.versions {
		if v == defaultVersion {
			s.version = i
		}
	}
	s.focus = CreateFieldName
	s.errors = make(map[string]string)
	s.submitting = false
}

// Name returns the typed name
func (s *CreateFormState) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.name)
}

// Placeholder returns the suggested name shown while the name is empty
func (s *CreateFormState) Placeholder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placeholder
}

// AppendName types text into the name field
func (s *CreateFormState) AppendName(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = append(s.name, []rune(text)...)
	delete(s.errors, "name")
}

// Backspace deletes the last rune of the name
func (s *CreateFormState) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.name) > 0 {
		s.name = s.name[:len(s.name)-1]
		delete(s.errors, "name")
	}
}

// ClearName empties the name field
func (s *CreateFormState) ClearName() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = nil
}

// Focus returns the focused field
func (s *CreateFormState) Focus() CreateField {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus
}

// MoveFocus moves to the next (delta > 0) or previous field, wrapping around
func (s *CreateFormState) MoveFocus(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = CreateField((int(s.focus) + delta%int(createFieldCount) + int(createFieldCount)) % int(createFieldCount))
}

// CycleChoice moves the focused choice field by delta, wrapping around
func (s *CreateFormState) CycleChoice(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.focus {
	case CreateFieldLoader:
		s.loader = wrap(s.loader+delta, len(catalog.Loaders))
		delete(s.errors, "loader")
	case CreateFieldVersion:
		s.version = wrap(s.version+delta, len(s.versions))
		delete(s.errors, "version")
	}
}

// Loader returns the selected loader
func (s *CreateFormState) Loader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Loaders[s.loader]
}

// Version returns the selected game version
func (s *CreateFormState) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.versions) == 0 {
		return ""
	}
	return s.versions[s.version]
}

// Options builds the create request from the form
func (s *CreateFormState) Options() types.InstanceOptions {
	return types.InstanceOptions{
		Name:    s.Name(),
		Loader:  s.Loader(),
		Version: s.Version(),
	}
}

// SetErrors shows the field errors of a rejected submit
func (s *CreateFormState) SetErrors(verr *types.ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string)
	for _, fe := range verr.Errors {
		if _, ok := s.errors[fe.Field]; !ok {
			s.errors[fe.Field] = fe.Message
		}
	}
	s.submitting = false
}

// FieldError returns the error shown under field, if any
func (s *CreateFormState) FieldError(field string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[field]
}

// Submitting reports whether a create call is in flight
func (s *CreateFormState) Submitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitting
}

// SetSubmitting marks a create call as in flight
func (s *CreateFormState) SetSubmitting(submitting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = submitting
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
