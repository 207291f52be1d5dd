package backend

import "github.com/studiowebux/launcher/internal/types"

// Plugin and command names used on the wire: POST /invoke/{plugin}/{command}
const (
	PluginInstance = "instance"
	PluginAccount  = "account"

	CmdCreateInstance     = "create_instance"
	CmdGetInstance        = "get_instance"
	CmdGetInstances       = "get_instances"
	CmdRemoveInstance     = "remove_instance"
	CmdRenameInstance     = "rename_instance"
	CmdUpdateInstanceIcon = "update_instance_icon"

	CmdAuthenticate = "authenticate"
	CmdGetAll       = "get_all"
	CmdGetActive    = "get_active"
	CmdSetActive    = "set_active"
	CmdRemove       = "remove"
)

// CreateInstanceArgs is the body of create_instance
type CreateInstanceArgs struct {
	Options types.InstanceOptions `json:"options"`
}

// IdentifierArgs is the body of get_instance and remove_instance
type IdentifierArgs struct {
	Identifier string `json:"identifier"`
}

// RenameInstanceArgs is the body of rename_instance
type RenameInstanceArgs struct {
	Options types.RenameInstanceOptions `json:"options"`
}

// UpdateInstanceIconArgs is the body of update_instance_icon
type UpdateInstanceIconArgs struct {
	Options types.UpdateInstanceIconOptions `json:"options"`
}

// UUIDArgs is the body of set_active and remove
type UUIDArgs struct {
	UUID string `json:"uuid"`
}

// ErrorBody is returned with every non-2xx status
type ErrorBody struct {
	Error string `json:"error"`
}

// AuthenticateArgs is the optional body of authenticate
type AuthenticateArgs struct {
	Username string `json:"username,omitempty"`
}
