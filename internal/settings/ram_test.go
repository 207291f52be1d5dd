package settings

import (
	"testing"
	"time"

	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
)

func TestApplyRecommendedRAM(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	s.Load()
	q := &notify.Queue{}

	if err := s.ApplyRecommendedRAM(q); err != nil {
		t.Fatal(err)
	}
	if s.Pending() {
		t.Error("already recommended value scheduled a write")
	}
	items := q.Drain()
	if len(items) != 1 || items[0].Level != notify.LevelWarning || items[0].Title != "4096 MB of ram is already allocated" || items[0].Source != notify.SourceSettings {
		t.Errorf("notifications = %+v", items)
	}

	if err := s.Update(func(v *types.Settings) { v.Preferences.RAM = 8192 }); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyRecommendedRAM(q); err != nil {
		t.Fatal(err)
	}
	if got := s.Settings().Preferences.RAM; got != RecommendedRAM {
		t.Errorf("ram = %d, want %d", got, RecommendedRAM)
	}
	items = q.Drain()
	if len(items) != 1 || items[0].Level != notify.LevelSuccess || items[0].Title != "4096 MB of ram has been allocated" {
		t.Errorf("notifications = %+v", items)
	}
}
