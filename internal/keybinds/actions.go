package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the screen or mode in which keybindings are active
type Context string

const (
	ContextGlobal         Context = "global"          // Available everywhere
	ContextInstances      Context = "instances"       // Instance list (home)
	ContextInstanceDetail Context = "instance_detail" // Game options of one instance
	ContextAccounts       Context = "accounts"        // Account list
	ContextSettings       Context = "settings"        // Settings form
	ContextActivity       Context = "activity"        // Notification drawer
	ContextHelp           Context = "help"            // Help viewer
	ContextTextInput      Context = "text_input"      // Any text prompt
	ContextConfirm        Context = "confirm"         // Yes/no dialogs
	ContextViewer         Context = "viewer"          // Shared list/scroll navigation
)

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionQuitForce     Action = "quit_force"
	ActionToggleSidebar Action = "toggle_sidebar"
	ActionCycleTheme    Action = "cycle_theme"
	ActionNextView      Action = "next_view"
	ActionPrevView      Action = "prev_view"
	ActionViewInstances Action = "view_instances"
	ActionViewAccounts  Action = "view_accounts"
	ActionViewSettings  Action = "view_settings"
	ActionViewActivity  Action = "view_activity"
	ActionOpenHelp      Action = "open_help"
	ActionRefresh       Action = "refresh"

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"
	ActionGoToTop        Action = "go_to_top"
	ActionGoToBottom     Action = "go_to_bottom"
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence
	ActionBack           Action = "back"

	// Instance actions
	ActionInstanceOpen       Action = "instance_open"
	ActionInstanceCreate     Action = "instance_create"
	ActionInstanceRename     Action = "instance_rename"
	ActionInstanceDelete     Action = "instance_delete"
	ActionInstanceFilter     Action = "instance_filter"
	ActionInstanceCopyID     Action = "instance_copy_id"
	ActionInstanceSetIcon    Action = "instance_set_icon"
	ActionInstanceRemoveIcon Action = "instance_remove_icon"
	ActionNextTab            Action = "next_tab"
	ActionPrevTab            Action = "prev_tab"

	// Account actions
	ActionAccountAdd      Action = "account_add"
	ActionAccountActivate Action = "account_activate"
	ActionAccountRemove   Action = "account_remove"
	ActionAccountCopyUUID Action = "account_copy_uuid"

	// Settings actions
	ActionSettingsEdit           Action = "settings_edit"
	ActionSettingsToggle         Action = "settings_toggle"
	ActionSettingsRecommendedRAM Action = "settings_recommended_ram"

	// Activity actions
	ActionActivityClear  Action = "activity_clear"
	ActionActivitySource Action = "activity_source"

	// Text input actions
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
	ActionTextPaste  Action = "text_paste"

	// Dialog actions
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"
	ActionCloseModal Action = "close_modal"

	ActionNoOp Action = "noop"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:                   {ActionQuit, "Quit", "Global"},
	ActionQuitForce:              {ActionQuitForce, "Force quit", "Global"},
	ActionToggleSidebar:          {ActionToggleSidebar, "Toggle sidebar", "Global"},
	ActionCycleTheme:             {ActionCycleTheme, "Cycle theme", "Global"},
	ActionNextView:               {ActionNextView, "Next page", "Global"},
	ActionPrevView:               {ActionPrevView, "Previous page", "Global"},
	ActionViewInstances:          {ActionViewInstances, "Instances", "Global"},
	ActionViewAccounts:           {ActionViewAccounts, "Accounts", "Global"},
	ActionViewSettings:           {ActionViewSettings, "Settings", "Global"},
	ActionViewActivity:           {ActionViewActivity, "Notifications", "Global"},
	ActionOpenHelp:               {ActionOpenHelp, "Help", "Global"},
	ActionRefresh:                {ActionRefresh, "Refresh", "Global"},
	ActionNavigateUp:             {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:           {ActionNavigateDown, "Move down", "Navigation"},
	ActionGoToTop:                {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:             {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionBack:                   {ActionBack, "Back", "Navigation"},
	ActionInstanceOpen:           {ActionInstanceOpen, "Open instance", "Instances"},
	ActionInstanceCreate:         {ActionInstanceCreate, "Create instance", "Instances"},
	ActionInstanceRename:         {ActionInstanceRename, "Rename instance", "Instances"},
	ActionInstanceDelete:         {ActionInstanceDelete, "Remove instance", "Instances"},
	ActionInstanceFilter:         {ActionInstanceFilter, "Filter instances", "Instances"},
	ActionInstanceCopyID:         {ActionInstanceCopyID, "Copy identifier", "Instances"},
	ActionInstanceSetIcon:        {ActionInstanceSetIcon, "Set icon from PNG", "Instances"},
	ActionInstanceRemoveIcon:     {ActionInstanceRemoveIcon, "Remove icon", "Instances"},
	ActionNextTab:                {ActionNextTab, "Next tab", "Tabs"},
	ActionPrevTab:                {ActionPrevTab, "Previous tab", "Tabs"},
	ActionAccountAdd:             {ActionAccountAdd, "Add account", "Accounts"},
	ActionAccountActivate:        {ActionAccountActivate, "Set active", "Accounts"},
	ActionAccountRemove:          {ActionAccountRemove, "Remove account", "Accounts"},
	ActionAccountCopyUUID:        {ActionAccountCopyUUID, "Copy UUID", "Accounts"},
	ActionSettingsEdit:           {ActionSettingsEdit, "Edit field", "Settings"},
	ActionSettingsToggle:         {ActionSettingsToggle, "Toggle field", "Settings"},
	ActionSettingsRecommendedRAM: {ActionSettingsRecommendedRAM, "Use recommended RAM", "Settings"},
	ActionActivityClear:          {ActionActivityClear, "Clear notifications", "Notifications"},
	ActionActivitySource:         {ActionActivitySource, "Filter by source", "Notifications"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	switch action {
	case ActionQuitForce, ActionToggleSidebar:
		return true
	}
	return false
}
