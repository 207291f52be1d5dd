package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestQueueKeepsNewest(t *testing.T) {
	q := &Queue{Max: 2}
	Info(q, "one", "")
	Warning(q, "two", "")
	Error(q, "three", "boom")

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	items := q.Drain()
	if items[0].Title != "two" || items[1].Title != "three" {
		t.Errorf("items = %+v", items)
	}
	if items[1].Level != LevelError || items[1].Description != "boom" {
		t.Errorf("last = %+v", items[1])
	}
	if q.Len() != 0 {
		t.Error("Drain() did not clear the queue")
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Queue{}, &Queue{}
	var seen []Level
	m := Multi{a, nil, b, Func(func(n Notification) { seen = append(seen, n.Level) })}

	Success(m, "Instance created", "")

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("queues = %d, %d", a.Len(), b.Len())
	}
	if len(seen) != 1 || seen[0] != LevelSuccess {
		t.Errorf("seen = %v", seen)
	}
}

func TestWithSource(t *testing.T) {
	q := &Queue{}
	to := WithSource(q, SourceAccount)

	Info(to, "Account added", "")
	to.Notify(Notification{Level: LevelInfo, Source: SourceSettings, Title: "kept"})

	items := q.Drain()
	if items[0].Source != SourceAccount {
		t.Errorf("source = %q, want %q", items[0].Source, SourceAccount)
	}
	if items[1].Source != SourceSettings {
		t.Errorf("explicit source overwritten: %q", items[1].Source)
	}
}

func TestPrinter(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	p := NewPrinter(&buf)

	Error(p, "Failed to create instance", "disk full")
	Success(p, "Instance created", "")

	out := buf.String()
	if !strings.Contains(out, "Failed to create instance: disk full") {
		t.Errorf("missing error line in %q", out)
	}
	if !strings.Contains(out, "Instance created") {
		t.Errorf("missing success line in %q", out)
	}
}
