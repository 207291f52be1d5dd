package tui

import "time"

// UI Layout Constants
const (
	// Sidebar
	SidebarWidth        = 26 // Total width including border
	SidebarRecentLimit  = 5  // Recent instances listed under the pages
	MinWidthForSidebar  = 70 // Sidebar is hidden below this terminal width
	HeaderHeight        = 1
	StatusBarHeight     = 1
	ContentBorderHeight = 2 // Top + bottom border of the page box

	// Modals
	ModalWidth        = 60
	ModalWidthMargin  = 6 // Horizontal margin when the terminal is narrower than ModalWidth
	ModalHeightMargin = 4

	// Lists
	PageJump = 10 // Rows moved by page up/down

	// Toasts
	ToastLimit = 3
	ToastWidth = 44
)

// Timing
const (
	ToastDuration        = 4 * time.Second
	ToastTickInterval    = 500 * time.Millisecond
	StatusMessageTimeout = 3 * time.Second
	RequestTimeout       = 30 * time.Second
	VersionCheckTimeout  = 5 * time.Second

	// ActivityPageSize is how many notifications the drawer loads
	ActivityPageSize = 200
)
