package tui

import (
	"sync"
	"testing"
)

func TestNewPromptState(t *testing.T) {
	state := NewPromptState()

	if state.Purpose() != PromptNone {
		t.Errorf("Expected PromptNone, got %v", state.Purpose())
	}
	if state.Input() != "" {
		t.Errorf("Expected empty input, got %q", state.Input())
	}
	if state.Cursor() != 0 {
		t.Errorf("Expected cursor 0, got %d", state.Cursor())
	}
}

func TestPromptState_Open(t *testing.T) {
	state := NewPromptState()
	state.SetError("stale")

	state.Open(PromptRename, "Rename instance", "my-world", "My World")

	if state.Purpose() != PromptRename {
		t.Errorf("Expected PromptRename, got %v", state.Purpose())
	}
	if state.Target() != "my-world" {
		t.Errorf("Expected target my-world, got %q", state.Target())
	}
	if state.Input() != "My World" {
		t.Errorf("Expected 'My World', got %q", state.Input())
	}
	if state.Cursor() != len("My World") {
		t.Errorf("Expected cursor at end, got %d", state.Cursor())
	}
	if state.Error() != "" {
		t.Errorf("Open should clear the error, got %q", state.Error())
	}
}

func TestPromptState_Editing(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(s *PromptState)
		wantInput  string
		wantCursor int
	}{
		{
			name:       "insert at end",
			edit:       func(s *PromptState) { s.Insert("!") },
			wantInput:  "Steve!",
			wantCursor: 6,
		},
		{
			name: "insert in the middle",
			edit: func(s *PromptState) {
				s.MoveCursor(-2)
				s.Insert("_")
			},
			wantInput:  "Ste_ve",
			wantCursor: 4,
		},
		{
			name:       "backspace",
			edit:       func(s *PromptState) { s.Backspace() },
			wantInput:  "Stev",
			wantCursor: 4,
		},
		{
			name: "backspace at start is a no-op",
			edit: func(s *PromptState) {
				s.CursorHome()
				s.Backspace()
			},
			wantInput:  "Steve",
			wantCursor: 0,
		},
		{
			name:       "cursor is clamped",
			edit:       func(s *PromptState) { s.MoveCursor(-100) },
			wantInput:  "Steve",
			wantCursor: 0,
		},
		{
			name:       "clear",
			edit:       func(s *PromptState) { s.Clear() },
			wantInput:  "",
			wantCursor: 0,
		},
		{
			name: "multibyte runes",
			edit: func(s *PromptState) {
				s.Insert("é")
				s.Backspace()
				s.Insert("ü")
			},
			wantInput:  "Steveü",
			wantCursor: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewPromptState()
			state.Open(PromptAccount, "Add account", "", "Steve")
			tt.edit(state)

			if state.Input() != tt.wantInput {
				t.Errorf("input = %q, want %q", state.Input(), tt.wantInput)
			}
			if state.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", state.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestPromptState_ErrorClearedOnEdit(t *testing.T) {
	state := NewPromptState()
	state.Open(PromptRename, "Rename instance", "a", "A")
	state.SetBusy(true)
	state.SetError("An instance with this name already exists")

	if state.Busy() {
		t.Error("SetError should end the busy state")
	}

	state.Insert("b")
	if state.Error() != "" {
		t.Errorf("Expected error cleared after typing, got %q", state.Error())
	}
}

func TestPromptState_Reset(t *testing.T) {
	state := NewPromptState()
	state.Open(PromptSetting, "Allocated RAM (MB)", "preferences.ram", "2048")
	state.SetPlaceholder("4096")
	state.Reset()

	if state.Purpose() != PromptNone || state.Target() != "" || state.Input() != "" || state.Placeholder() != "" {
		t.Errorf("Reset left state behind: %v %q %q", state.Purpose(), state.Target(), state.Input())
	}
}

func TestPromptState_ConcurrentAccess(t *testing.T) {
	state := NewPromptState()
	state.Open(PromptAccount, "Add account", "", "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.Insert("a")
		}()
		go func() {
			defer wg.Done()
			_ = state.Input()
			_ = state.Cursor()
		}()
	}
	wg.Wait()

	if len(state.Input()) != 10 {
		t.Errorf("Expected 10 runes, got %q", state.Input())
	}
}
