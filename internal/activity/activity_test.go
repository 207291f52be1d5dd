package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "launcher.db"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNotifyRecordsEntries(t *testing.T) {
	m := newTestManager(t)

	when := time.Date(2025, 3, 1, 12, 30, 0, 0, time.Local)
	m.Notify(notify.Notification{Level: notify.LevelSuccess, Title: "Instance created", Time: when})
	notify.Error(m, "Failed to remove account", "account x not found")

	entries, err := m.List(0, "", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first
	if entries[0].Title != "Failed to remove account" || entries[0].Level != "error" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Timestamp != when.Format(time.RFC3339) {
		t.Errorf("timestamp = %s, want %s", entries[1].Timestamp, when.Format(time.RFC3339))
	}
	if entries[0].CorrelationID == "" || entries[0].CorrelationID == entries[1].CorrelationID {
		t.Error("correlation ids should be unique and set")
	}
}

func TestListFiltersAndLimits(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 5; i++ {
		if _, err := m.Save(types.ActivityEntry{Level: "info", Title: "tick", Source: "test"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.Save(types.ActivityEntry{Level: "warning", Title: "careful"}); err != nil {
		t.Fatal(err)
	}

	limited, _ := m.List(3, "", "")
	if len(limited) != 3 {
		t.Errorf("limited = %d, want 3", len(limited))
	}

	warnings, _ := m.List(0, "warning", "")
	if len(warnings) != 1 || warnings[0].Title != "careful" {
		t.Errorf("warnings = %+v", warnings)
	}

	infos, _ := m.List(0, "info", "")
	if len(infos) != 5 || infos[0].Source != "test" {
		t.Errorf("infos = %d", len(infos))
	}
}

func TestSourceFilterAndCount(t *testing.T) {
	m := newTestManager(t)

	notify.Success(notify.WithSource(m, notify.SourceInstance), "Instance created", "")
	notify.Success(notify.WithSource(m, notify.SourceInstance), "Instance renamed", "")
	notify.Warning(notify.WithSource(m, notify.SourceAccount), "Account already active", "")
	m.Notify(notify.Notification{Level: notify.LevelInfo, Source: notify.SourceSettings, Title: "Saved"})

	tests := []struct {
		source string
		want   int
	}{
		{"", 4},
		{notify.SourceInstance, 2},
		{notify.SourceAccount, 1},
		{notify.SourceSettings, 1},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run("source="+tt.source, func(t *testing.T) {
			entries, err := m.List(0, "", tt.source)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != tt.want {
				t.Errorf("List() = %d entries, want %d", len(entries), tt.want)
			}
			for _, e := range entries {
				if tt.source != "" && e.Source != tt.source {
					t.Errorf("entry %q has source %q", e.Title, e.Source)
				}
			}
			if n, _ := m.Count(tt.source); n != tt.want {
				t.Errorf("Count() = %d, want %d", n, tt.want)
			}
		})
	}

	warnings, _ := m.List(0, "warning", notify.SourceInstance)
	if len(warnings) != 0 {
		t.Errorf("level and source should combine, got %+v", warnings)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	m.Save(types.ActivityEntry{Level: "info", Title: "one"})
	m.Save(types.ActivityEntry{Level: "info", Title: "two"})
	if n, _ := m.Count(""); n != 2 {
		t.Errorf("count = %d", n)
	}

	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.Count(""); n != 0 {
		t.Errorf("count after clear = %d", n)
	}

	entries, err := m.List(0, "", "")
	if err != nil || entries == nil || len(entries) != 0 {
		t.Errorf("List() on empty = %v, %v", entries, err)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.db")

	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Save(types.ActivityEntry{Level: "info", Title: "kept"})
	m.Close()

	m, err = NewManager(path, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer m.Close()

	if n, _ := m.Count(""); n != 1 {
		t.Errorf("count after reopen = %d", n)
	}
}
