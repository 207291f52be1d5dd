// Package notify delivers transient user-facing notifications (toasts).
package notify

import (
	"sync"
	"time"
)

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Sources name the component a notification came from
const (
	SourceInstance = "instance"
	SourceAccount  = "account"
	SourceSettings = "settings"
)

// Notification is one toast
type Notification struct {
	Level       Level
	Source      string
	Title       string
	Description string
	Time        time.Time
}

// Notifier receives notifications
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

func send(to Notifier, level Level, title, description string) {
	to.Notify(Notification{Level: level, Title: title, Description: description, Time: time.Now()})
}

// Success sends a success notification
func Success(to Notifier, title, description string) { send(to, LevelSuccess, title, description) }

// Info sends an informational notification
func Info(to Notifier, title, description string) { send(to, LevelInfo, title, description) }

// Warning sends a warning notification
func Warning(to Notifier, title, description string) { send(to, LevelWarning, title, description) }

// Error sends an error notification
func Error(to Notifier, title, description string) { send(to, LevelError, title, description) }

// WithSource stamps source on notifications that do not carry one
func WithSource(to Notifier, source string) Notifier {
	return sourced{to: to, source: source}
}

type sourced struct {
	to     Notifier
	source string
}

func (s sourced) Notify(n Notification) {
	if n.Source == "" {
		n.Source = s.source
	}
	s.to.Notify(n)
}

// Nop discards notifications
type Nop struct{}

func (Nop) Notify(Notification) {}

// Multi fans a notification out to several notifiers
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, to := range m {
		if to != nil {
			to.Notify(n)
		}
	}
}

// Queue buffers notifications until they are drained, keeping the newest Max
type Queue struct {
	Max int

	mu    sync.Mutex
	items []Notification
}

// DefaultQueueSize is used when Max is zero
const DefaultQueueSize = 50

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	limit := q.Max
	if limit <= 0 {
		limit = DefaultQueueSize
	}
	q.items = append(q.items, n)
	if len(q.items) > limit {
		q.items = q.items[len(q.items)-limit:]
	}
}

// Drain returns and clears the buffered notifications, oldest first
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil
	return out
}

// Len returns the number of buffered notifications
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
