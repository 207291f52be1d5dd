package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNavigationBindings(r)
	registerInstanceBindings(r)
	registerInstanceDetailBindings(r)
	registerAccountBindings(r)
	registerSettingsBindings(r)
	registerActivityBindings(r)
	registerHelpBindings(r)
	registerTextInputBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available on every screen
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+b", ActionToggleSidebar)
	r.Register(ContextGlobal, "ctrl+t", ActionCycleTheme)
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextGlobal, "tab", ActionNextView)
	r.Register(ContextGlobal, "shift+tab", ActionPrevView)
	r.Register(ContextGlobal, "1", ActionViewInstances)
	r.Register(ContextGlobal, "2", ActionViewAccounts)
	r.Register(ContextGlobal, "3", ActionViewSettings)
	r.Register(ContextGlobal, "4", ActionViewActivity)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
	r.Register(ContextGlobal, "ctrl+r", ActionRefresh)
}

// registerNavigationBindings sets up list and scroll navigation shared by every list
func registerNavigationBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.Register(ContextViewer, "g", ActionGoToTopPrepare)
	r.Register(ContextViewer, "gg", ActionGoToTop)
	r.Register(ContextViewer, "G", ActionGoToBottom)
	r.Register(ContextViewer, "home", ActionGoToTop)
	r.Register(ContextViewer, "end", ActionGoToBottom)
}

func registerInstanceBindings(r *Registry) {
	r.Register(ContextInstances, "enter", ActionInstanceOpen)
	r.Register(ContextInstances, "n", ActionInstanceCreate)
	r.Register(ContextInstances, "r", ActionInstanceRename)
	r.Register(ContextInstances, "d", ActionInstanceDelete)
	r.Register(ContextInstances, "/", ActionInstanceFilter)
	r.Register(ContextInstances, "y", ActionInstanceCopyID)
	r.Register(ContextInstances, "esc", ActionBack)
}

func registerInstanceDetailBindings(r *Registry) {
	r.RegisterMultiple(ContextInstanceDetail, []string{"right", "l"}, ActionNextTab)
	r.RegisterMultiple(ContextInstanceDetail, []string{"left", "h"}, ActionPrevTab)
	r.Register(ContextInstanceDetail, "r", ActionInstanceRename)
	r.Register(ContextInstanceDetail, "d", ActionInstanceDelete)
	r.Register(ContextInstanceDetail, "i", ActionInstanceSetIcon)
	r.Register(ContextInstanceDetail, "I", ActionInstanceRemoveIcon)
	r.Register(ContextInstanceDetail, "y", ActionInstanceCopyID)
	r.RegisterMultiple(ContextInstanceDetail, []string{"esc", "backspace"}, ActionBack)
}

func registerAccountBindings(r *Registry) {
	r.Register(ContextAccounts, "a", ActionAccountAdd)
	r.Register(ContextAccounts, "enter", ActionAccountActivate)
	r.Register(ContextAccounts, "d", ActionAccountRemove)
	r.Register(ContextAccounts, "y", ActionAccountCopyUUID)
}

func registerSettingsBindings(r *Registry) {
	r.RegisterMultiple(ContextSettings, []string{"right", "l"}, ActionNextTab)
	r.RegisterMultiple(ContextSettings, []string{"left", "h"}, ActionPrevTab)
	r.Register(ContextSettings, "enter", ActionSettingsEdit)
	r.RegisterMultiple(ContextSettings, []string{"space", " "}, ActionSettingsToggle)
	r.Register(ContextSettings, "R", ActionSettingsRecommendedRAM)
}

func registerActivityBindings(r *Registry) {
	r.Register(ContextActivity, "C", ActionActivityClear)
	r.Register(ContextActivity, "s", ActionActivitySource)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
}

// registerTextInputBindings only covers keys the prompt handles itself; other keys go to the input
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
