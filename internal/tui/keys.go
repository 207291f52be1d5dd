package tui

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Reserved keys work in every mode, text prompts included
	if action, ok := m.keybinds.MatchExact(keybinds.ContextGlobal, msg.String()); ok && keybinds.IsGlobalAction(action) {
		return m.handleGlobalAction(action)
	}

	switch m.mode {
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeCreate:
		return m.handleCreateKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func contextForPage(page Page) keybinds.Context {
	switch page {
	case PageInstanceDetail:
		return keybinds.ContextInstanceDetail
	case PageAccounts:
		return keybinds.ContextAccounts
	case PageSettings:
		return keybinds.ContextSettings
	case PageActivity:
		return keybinds.ContextActivity
	default:
		return keybinds.ContextInstances
	}
}

// matchAction looks a key up in the page context, then the shared viewer
// context (which owns the 'gg' sequence), then the global context
func (m *Model) matchAction(context keybinds.Context, key string) (keybinds.Action, bool, bool) {
	if action, ok := m.keybinds.MatchExact(context, key); ok {
		m.keybinds.ClearMultiKeyState(keybinds.ContextViewer)
		return action, true, false
	}
	return m.keybinds.MatchMultiKey(keybinds.ContextViewer, key)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.matchAction(contextForPage(m.page), msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionNavigateUp, keybinds.ActionNavigateDown,
		keybinds.ActionPageUp, keybinds.ActionPageDown,
		keybinds.ActionGoToTop, keybinds.ActionGoToBottom:
		m.navigate(action)
		return nil
	}

	switch m.page {
	case PageInstances:
		if cmd, handled := m.handleInstancesAction(action); handled {
			return cmd
		}
	case PageInstanceDetail:
		if cmd, handled := m.handleDetailAction(action); handled {
			return cmd
		}
	case PageAccounts:
		if cmd, handled := m.handleAccountsAction(action); handled {
			return cmd
		}
	case PageSettings:
		if cmd, handled := m.handleSettingsAction(action); handled {
			return cmd
		}
	case PageActivity:
		if cmd, handled := m.handleActivityAction(action); handled {
			return cmd
		}
	}

	return m.handleGlobalAction(action)
}

func (m *Model) handleGlobalAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		m.Cleanup()
		m.quitting = true
		return tea.Quit

	case keybinds.ActionToggleSidebar:
		if m.sessionMgr.ToggleSidebar() {
			return m.setStatusMessage("Sidebar shown")
		}
		return m.setStatusMessage("Sidebar hidden")

	case keybinds.ActionCycleTheme:
		theme := m.sessionMgr.CycleTheme()
		m.applyTheme()
		m.updateViewports()
		return m.setStatusMessage(fmt.Sprintf("Theme: %s", theme))

	case keybinds.ActionNextView:
		m.cyclePage(1)
	case keybinds.ActionPrevView:
		m.cyclePage(-1)
	case keybinds.ActionViewInstances:
		m.switchPage(PageInstances)
	case keybinds.ActionViewAccounts:
		m.switchPage(PageAccounts)
	case keybinds.ActionViewSettings:
		m.switchPage(PageSettings)
	case keybinds.ActionViewActivity:
		m.switchPage(PageActivity)
		return m.loadActivity()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
		m.helpView.GotoTop()

	case keybinds.ActionRefresh:
		return tea.Batch(m.refreshAll(), m.setStatusMessage("Refreshing..."))
	}
	return nil
}

// navigate moves the cursor of the list on the current page
func (m *Model) navigate(action keybinds.Action) {
	if m.page == PageActivity {
		switch action {
		case keybinds.ActionNavigateUp:
			m.activityView.LineUp(1)
		case keybinds.ActionNavigateDown:
			m.activityView.LineDown(1)
		case keybinds.ActionPageUp:
			m.activityView.ViewUp()
		case keybinds.ActionPageDown:
			m.activityView.ViewDown()
		case keybinds.ActionGoToTop:
			m.activityView.GotoTop()
		case keybinds.ActionGoToBottom:
			m.activityView.GotoBottom()
		}
		return
	}

	var cursor *ListCursor
	var n int
	switch m.page {
	case PageInstances:
		cursor, n = &m.instanceCursor, len(m.visibleInstances())
	case PageAccounts:
		cursor, n = &m.accountCursor, len(m.accounts.Accounts())
	case PageSettings:
		cursor, n = &m.settingsCursor, len(m.settingsFields())
	default:
		return
	}

	switch action {
	case keybinds.ActionNavigateUp:
		cursor.Move(-1, n)
	case keybinds.ActionNavigateDown:
		cursor.Move(1, n)
	case keybinds.ActionPageUp:
		cursor.Move(-PageJump, n)
	case keybinds.ActionPageDown:
		cursor.Move(PageJump, n)
	case keybinds.ActionGoToTop:
		cursor.Top()
	case keybinds.ActionGoToBottom:
		cursor.Bottom(n)
	}
}

func (m *Model) handleInstancesAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionInstanceCreate:
		m.createForm.Open(instance.Placeholder(), m.settings.Settings().GameOptions.Version)
		m.mode = ModeCreate
		return nil, true

	case keybinds.ActionInstanceFilter:
		m.mode = ModeFilter
		return nil, true

	case keybinds.ActionBack:
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.instanceCursor.Top()
		}
		return nil, true
	}

	inst, ok := m.selectedInstance()
	switch action {
	case keybinds.ActionInstanceOpen, keybinds.ActionInstanceRename,
		keybinds.ActionInstanceDelete, keybinds.ActionInstanceCopyID:
		if !ok {
			return m.setStatusMessage("No instance selected"), true
		}
		if action == keybinds.ActionInstanceOpen {
			m.openInstance(inst.Identifier)
			return nil, true
		}
		return m.instanceAction(action, inst), true
	}
	return nil, false
}

func (m *Model) handleDetailAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionBack:
		m.switchPage(PageInstances)
		return nil, true
	case keybinds.ActionNextTab:
		m.cycleGameOptionsTab(1)
		return nil, true
	case keybinds.ActionPrevTab:
		m.cycleGameOptionsTab(-1)
		return nil, true
	}

	inst, ok := m.selectedDetailInstance()
	switch action {
	case keybinds.ActionInstanceRename, keybinds.ActionInstanceDelete, keybinds.ActionInstanceCopyID,
		keybinds.ActionInstanceSetIcon, keybinds.ActionInstanceRemoveIcon:
		if !ok {
			return m.setStatusMessage("Instance is still loading"), true
		}
		return m.instanceAction(action, inst), true
	}
	return nil, false
}

// instanceAction runs an action shared by the list and the detail page
func (m *Model) instanceAction(action keybinds.Action, inst types.Instance) tea.Cmd {
	switch action {
	case keybinds.ActionInstanceRename:
		m.prompt.Open(PromptRename, "Rename instance", inst.Identifier, inst.Name)
		m.mode = ModePrompt

	case keybinds.ActionInstanceDelete:
		m.askConfirm(
			"Remove instance",
			fmt.Sprintf("Remove %q? Its folder will be deleted.", inst.Name),
			m.removeInstance(inst.Identifier),
		)

	case keybinds.ActionInstanceCopyID:
		if err := clipboard.WriteAll(inst.Identifier); err != nil {
			return m.setErrorMessage("Clipboard unavailable: " + err.Error())
		}
		return m.setStatusMessage(fmt.Sprintf("Copied %s", inst.Identifier))

	case keybinds.ActionInstanceSetIcon:
		m.prompt.Open(PromptIcon, "Instance icon (path to a PNG file)", inst.Identifier, "")
		m.mode = ModePrompt

	case keybinds.ActionInstanceRemoveIcon:
		if inst.Icon == "" {
			return m.setStatusMessage("Instance has no icon")
		}
		return m.removeInstanceIcon(inst.Identifier)
	}
	return nil
}

func (m *Model) handleAccountsAction(action keybinds.Action) (tea.Cmd, bool) {
	if action == keybinds.ActionAccountAdd {
		m.prompt.Open(PromptAccount, "Add offline account", "", "")
		m.mode = ModePrompt
		return nil, true
	}

	acc, ok := m.selectedAccount()
	switch action {
	case keybinds.ActionAccountActivate, keybinds.ActionAccountRemove, keybinds.ActionAccountCopyUUID:
		if !ok {
			return m.setStatusMessage("No account selected"), true
		}
	default:
		return nil, false
	}

	switch action {
	case keybinds.ActionAccountActivate:
		return m.activateAccount(acc.UUID), true
	case keybinds.ActionAccountRemove:
		m.askConfirm(
			"Remove account",
			fmt.Sprintf("Sign %s out of the launcher?", acc.Username),
			m.removeAccount(acc.UUID),
		)
		return nil, true
	default:
		if err := clipboard.WriteAll(acc.UUID); err != nil {
			return m.setErrorMessage("Clipboard unavailable: " + err.Error()), true
		}
		return m.setStatusMessage(fmt.Sprintf("Copied %s", acc.UUID)), true
	}
}

func (m *Model) handleSettingsAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionNextTab:
		m.cycleSettingsTab(1)
		return nil, true
	case keybinds.ActionPrevTab:
		m.cycleSettingsTab(-1)
		return nil, true
	case keybinds.ActionSettingsRecommendedRAM:
		if err := m.settings.ApplyRecommendedRAM(m.notifier); err != nil {
			m.fieldErrors["preferences.ram"] = err.Error()
		} else {
			delete(m.fieldErrors, "preferences.ram")
		}
		m.syncToasts()
		return nil, true
	case keybinds.ActionSettingsEdit, keybinds.ActionSettingsToggle:
	default:
		return nil, false
	}

	field, ok := m.selectedField()
	if !ok {
		return nil, true
	}
	current, err := m.settings.Get(field.Path)
	if err != nil {
		return m.setErrorMessage(err.Error()), true
	}

	switch field.Kind {
	case settings.KindToggle:
		on, _ := strconv.ParseBool(current)
		_ = m.setSetting(field.Path, strconv.FormatBool(!on))
	case settings.KindChoice:
		if action == keybinds.ActionSettingsToggle {
			return nil, true
		}
		_ = m.setSetting(field.Path, nextOption(field.Options, current))
	default:
		if action == keybinds.ActionSettingsToggle {
			return nil, true
		}
		m.prompt.Open(PromptSetting, field.Label, field.Path, current)
		m.mode = ModePrompt
	}
	return nil, true
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m *Model) handleActivityAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionActivitySource:
		m.activitySource = nextActivitySource(m.activitySource)
		return m.loadActivity(), true

	case keybinds.ActionActivityClear:
		if m.activityTotal == 0 && len(m.activityEntries) == 0 {
			return m.setStatusMessage("No notifications"), true
		}
		m.askConfirm("Clear notifications", "Delete every stored notification?", m.clearActivity())
		return nil, true
	}
	return nil, false
}

// handleTextInput applies editing keys to the prompt
// Returns true when the key was consumed
func handleTextInput(state *PromptState, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "backspace", "ctrl+h":
		state.Backspace()
	case "ctrl+k", "ctrl+u":
		state.Clear()
	case "left":
		state.MoveCursor(-1)
	case "right":
		state.MoveCursor(1)
	case "home", "ctrl+a":
		state.CursorHome()
	case "end", "ctrl+e":
		state.CursorEnd()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			state.Insert(string(msg.Runes))
		case tea.KeySpace:
			state.Insert(" ")
		default:
			return false
		}
	}
	return true
}

// pasteInto reads the clipboard into the prompt
func (m *Model) pasteInto(state *PromptState) tea.Cmd {
	text, err := clipboard.ReadAll()
	if err != nil {
		return m.setErrorMessage("Clipboard unavailable: " + err.Error())
	}
	state.Insert(text)
	return nil
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.MatchExact(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.submitPrompt()
		case keybinds.ActionTextCancel:
			m.closePrompt()
			return nil
		case keybinds.ActionTextPaste:
			return m.pasteInto(m.prompt)
		}
	}

	if m.prompt.Busy() {
		return nil
	}
	handleTextInput(m.prompt, msg)
	return nil
}

// handleFilterKeys edits the instance filter; the list narrows while typing
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.MatchExact(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.mode = ModeNormal
			return nil
		case keybinds.ActionTextCancel:
			m.filterQuery = ""
			m.instanceCursor.Top()
			m.mode = ModeNormal
			return nil
		}
	}

	state := NewPromptState()
	state.SetInput(m.filterQuery)
	if msg.String() == "up" || msg.String() == "down" {
		delta := 1
		if msg.String() == "up" {
			delta = -1
		}
		m.instanceCursor.Move(delta, len(m.visibleInstances()))
		return nil
	}
	if handleTextInput(state, msg) {
		m.filterQuery = state.Input()
		m.instanceCursor.Top()
	}
	return nil
}

func (m *Model) handleCreateKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.MatchExact(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			if m.createForm.Submitting() {
				return nil
			}
			m.createForm.SetSubmitting(true)
			return m.createInstance(m.createForm.Options())
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			return nil
		case keybinds.ActionTextPaste:
			if m.createForm.Focus() == CreateFieldName {
				if text, err := clipboard.ReadAll(); err == nil {
					m.createForm.AppendName(text)
				}
			}
			return nil
		}
	}

	switch msg.String() {
	case "tab", "down":
		m.createForm.MoveFocus(1)
		return nil
	case "shift+tab", "up":
		m.createForm.MoveFocus(-1)
		return nil
	}

	if m.createForm.Focus() != CreateFieldName {
		switch msg.String() {
		case "left", "h":
			m.createForm.CycleChoice(-1)
		case "right", "l", " ", "space":
			m.createForm.CycleChoice(1)
		}
		return nil
	}

	switch msg.String() {
	case "backspace", "ctrl+h":
		m.createForm.Backspace()
	case "ctrl+k", "ctrl+u":
		m.createForm.ClearName()
	case "right":
		// Accept the suggested name
		if m.createForm.Name() == "" {
			m.createForm.AppendName(m.createForm.Placeholder())
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.createForm.AppendName(string(msg.Runes))
		case tea.KeySpace:
			m.createForm.AppendName(" ")
		}
	}
	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.MatchExact(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	cmd := m.confirmCmd
	m.mode = ModeNormal
	m.confirmTitle, m.confirmMessage, m.confirmCmd = "", "", nil

	if action == keybinds.ActionConfirm {
		return cmd
	}
	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.MatchExact(keybinds.ContextHelp, msg.String()); ok && action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
		return nil
	}

	action, ok, _ := m.keybinds.MatchMultiKey(keybinds.ContextViewer, msg.String())
	if !ok {
		return nil
	}
	switch action {
	case keybinds.ActionNavigateUp:
		m.helpView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.LineDown(1)
	case keybinds.ActionPageUp:
		m.helpView.ViewUp()
	case keybinds.ActionPageDown:
		m.helpView.ViewDown()
	case keybinds.ActionGoToTop:
		m.helpView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.helpView.GotoBottom()
	case keybinds.ActionQuit:
		m.mode = ModeNormal
	}
	return nil
}
