package tui

import (
	"sync"
	"time"

	"github.com/studiowebux/launcher/internal/notify"
)

type toast struct {
	notification notify.Notification
	expires      time.Time
}

// ToastState holds the notifications currently on screen
type ToastState struct {
	mu sync.RWMutex

	items []toast
	limit int
	ttl   time.Duration
	now   func() time.Time
}

// NewToastState keeps at most limit toasts, each visible for ttl
func NewToastState(limit int, ttl time.Duration) *ToastState {
	return &ToastState{
		limit: limit,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Push shows notifications; the oldest toasts are dropped past the limit
func (s *ToastState) Push(notifications ...notify.Notification) {
	if len(notifications) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, n := range notifications {
		s.items = append(s.items, toast{notification: n, expires: now.Add(s.ttl)})
	}
	if s.limit > 0 && len(s.items) > s.limit {
		s.items = s.items[len(s.items)-s.limit:]
	}
}

// Prune drops expired toasts and reports whether any were removed
func (s *ToastState) Prune() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.items[:0]
	for _, t := range s.items {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(s.items)
	s.items = kept
	return removed
}

// Visible returns the toasts on screen, newest first
func (s *ToastState) Visible() []notify.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]notify.Notification, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i].notification)
	}
	return out
}

// Dismiss removes every toast
func (s *ToastState) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Len returns the number of toasts on screen
func (s *ToastState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
