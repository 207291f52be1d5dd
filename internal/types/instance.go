package types

// Instance is a named game configuration (loader + version + icon)
type Instance struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Name       string `json:"name" yaml:"name"`
	Loader     string `json:"loader" yaml:"loader"`
	Version    string `json:"version" yaml:"version"`
	Icon       string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// InstanceOptions describes an instance to create
type InstanceOptions struct {
	Name    string `json:"name" validate:"required"`
	Loader  string `json:"loader" validate:"required,loader"`
	Version string `json:"version" validate:"required,gameversion"`
	Icon    string `json:"icon,omitempty"`
}

// RenameInstanceOptions is the payload of a rename call
type RenameInstanceOptions struct {
	Identifier string `json:"identifier"`
	NewName    string `json:"new_name"`
}

// UpdateInstanceIconOptions is the payload of an icon update; a nil IconData removes the icon
type UpdateInstanceIconOptions struct {
	Identifier string  `json:"identifier"`
	IconData   *string `json:"icon_data"`
}

// GameOptionsTab identifies a page of the per-instance game options
type GameOptionsTab string

const (
	GameOptionsTabVersion GameOptionsTab = "version"
	GameOptionsTabMods    GameOptionsTab = "mods"
)
