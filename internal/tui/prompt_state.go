package tui

import (
	"sync"
)

// PromptPurpose tells the model what a submitted prompt does
type PromptPurpose int

const (
	PromptNone PromptPurpose = iota
	PromptRename
	PromptIcon
	PromptAccount
	PromptSetting
)

// PromptState encapsulates the single-line input modal
type PromptState struct {
	mu sync.RWMutex

	purpose     PromptPurpose
	title       string
	target      string // instance identifier or setting path
	placeholder string
	input       []rune
	cursor      int
	err         string
	busy        bool
}

// NewPromptState creates a closed prompt
func NewPromptState() *PromptState {
	return &PromptState{}
}

// Open starts a prompt prefilled with value, cursor at the end
func (s *PromptState) Open(purpose PromptPurpose, title, target, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purpose = purpose
	s.title = title
	s.target = target
	s.placeholder = ""
	s.input = []rune(value)
	s.cursor = len(s.input)
	s.err = ""
	s.busy = false
}

// Purpose returns what the prompt is for
func (s *PromptState) Purpose() PromptPurpose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purpose
}

// Title returns the modal title
func (s *PromptState) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// Target returns the identifier, uuid or path the prompt acts on
func (s *PromptState) Target() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// Placeholder returns the hint shown while the input is empty
func (s *PromptState) Placeholder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placeholder
}

// SetPlaceholder sets the hint shown while the input is empty
func (s *PromptState) SetPlaceholder(placeholder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeholder = placeholder
}

// Input returns the current text
func (s *PromptState) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.input)
}

// SetInput replaces the text and moves the cursor to the end
func (s *PromptState) SetInput(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = []rune(input)
	s.cursor = len(s.input)
}

// Cursor returns the cursor position in runes
func (s *PromptState) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Insert adds text at the cursor
func (s *PromptState) Insert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runes := []rune(text)
	next := make([]rune, 0, len(s.input)+len(runes))
	next = append(next, s.input[:s.cursor]...)
	next = append(next, runes...)
	next = append(next, s.input[s.cursor:]...)
	s.input = next
	s.cursor += len(runes)
	s.err = ""
}

// Backspace deletes the rune before the cursor
func (s *PromptState) Backspace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return false
	}
	s.input = append(s.input[:s.cursor-1], s.input[s.cursor:]...)
	s.cursor--
	s.err = ""
	return true
}

// Clear empties the input
func (s *PromptState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = nil
	s.cursor = 0
	s.err = ""
}

// MoveCursor moves the cursor by delta, clamped to the input
func (s *PromptState) MoveCursor(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(s.input) {
		s.cursor = len(s.input)
	}
}

// CursorHome moves the cursor to the start
func (s *PromptState) CursorHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
}

// CursorEnd moves the cursor to the end
func (s *PromptState) CursorEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = len(s.input)
}

// Error returns the inline error under the input
func (s *PromptState) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetError shows an inline error and ends the busy state
func (s *PromptState) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.busy = false
}

// Busy reports whether a submit is in flight
func (s *PromptState) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetBusy marks a submit as in flight
func (s *PromptState) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// Reset closes the prompt
func (s *PromptState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purpose = PromptNone
	s.title = ""
	s.target = ""
	s.placeholder = ""
	s.input = nil
	s.cursor = 0
	s.err = ""
	s.busy = false
}
