package settings

import (
	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/types"
)

// Defaults returns the settings written on first start
func Defaults() types.Settings {
	return types.Settings{
		Launcher: types.LauncherSettings{
			Language:   "en-us",
			AutoBoot:   true,
			ExitToDock: true,
		},
		Preferences: types.PreferenceSettings{
			RAM:         4096,
			AfterLaunch: "hide",
			Resolution: types.Resolution{
				Width:  types.AutoDimension(),
				Height: types.AutoDimension(),
			},
		},
		Notifications: types.NotificationSettings{
			FriendsOnline:  true,
			FriendsPlaying: true,
			Discord: types.DiscordSettings{
				RichPresence: true,
			},
		},
		Advanced: types.AdvancedSettings{
			Branch:            "master",
			UpdatePreferences: "normal",
			DisplayTooltips:   true,
			ReducedAnimations: false,
		},
		GameOptions: types.GameOptions{
			Version: catalog.DefaultGameVersion,
		},
	}
}
