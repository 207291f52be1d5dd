package settings

import (
	"fmt"

	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
)

// RecommendedRAM is the allocation offered by the "use recommended" button, in MB
const RecommendedRAM = 4096

// ApplyRecommendedRAM sets preferences.ram to RecommendedRAM. When it is already
// set, a warning is sent and nothing is scheduled.
func (s *Store) ApplyRecommendedRAM(n notify.Notifier) error {
	n = notify.WithSource(n, notify.SourceSettings)
	if s.Settings().Preferences.RAM == RecommendedRAM {
		notify.Warning(n, fmt.Sprintf("%d MB of ram is already allocated", RecommendedRAM), "")
		return nil
	}

	if err := s.Update(func(v *types.Settings) { v.Preferences.RAM = RecommendedRAM }); err != nil {
		return err
	}
	notify.Success(n, fmt.Sprintf("%d MB of ram has been allocated", RecommendedRAM), "")
	return nil
}
