package local

import "testing"

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Survival", "survival"},
		{"My Modpack", "my-modpack"},
		{"  Spaced  Out  ", "spaced-out"},
		{"PvP!! 1.8", "pvp-1-8"},
		{"under_score-dash", "under_score-dash"},
		{"---", ""},
		{"Été", "été"},
		{"Über Pack", "über-pack"},
		{"日本語", "日本語"},
		{`a/b\c..d`, "a-b-c-d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.name); got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestOfflineUUID(t *testing.T) {
	if got := OfflineUUID("Notch"); got != "b50ad385-829d-3141-a216-7e7d7539ba7f" {
		t.Errorf("OfflineUUID(Notch) = %s", got)
	}
}
