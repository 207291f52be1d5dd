package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/launcher/internal/account"
	"github.com/studiowebux/launcher/internal/activity"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/session"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
	"github.com/studiowebux/launcher/internal/version"
	"go.uber.org/zap"
)

// Page is a screen of the launcher
type Page int

const (
	PageInstances Page = iota
	PageAccounts
	PageSettings
	PageActivity
	PageInstanceDetail
)

// pageOrder is the tab order of the top-level pages
var pageOrder = []Page{PageInstances, PageAccounts, PageSettings, PageActivity}

// Title returns the page name shown in the sidebar and breadcrumbs
func (p Page) Title() string {
	switch p {
	case PageInstances, PageInstanceDetail:
		return "Instances"
	case PageAccounts:
		return "Accounts"
	case PageSettings:
		return "Settings"
	case PageActivity:
		return "Notifications"
	}
	return ""
}

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModePrompt
	ModeCreate
	ModeConfirm
	ModeHelp
)

// Services are the launcher components the TUI drives
type Services struct {
	Instances *instance.Registry
	Accounts  *account.Registry
	Settings  *settings.Store
	Session   *session.Manager
	Keybinds  *keybinds.Registry

	// Toasts receives every notification the registries emit
	Toasts *notify.Queue
	// Notifier is handed to operations that notify directly; defaults to Toasts
	Notifier notify.Notifier

	// Optional
	Activity *activity.Manager
	Updates  *version.Checker
	Logger   *zap.Logger
	Version  string
}

// Model represents the TUI state
type Model struct {
	// Core state
	instances   *instance.Registry
	accounts    *account.Registry
	settings    *settings.Store
	sessionMgr  *session.Manager
	activityMgr *activity.Manager
	keybinds    *keybinds.Registry
	toastQueue  *notify.Queue
	notifier    notify.Notifier
	checker     *version.Checker
	logger      *zap.Logger

	mode Mode
	page Page

	version         string
	updateAvailable bool
	latestVersion   string
	updateURL       string

	// Lists
	instanceCursor ListCursor
	accountCursor  ListCursor
	settingsCursor ListCursor
	filterQuery    string
	loadingCount   int

	// Activity drawer
	activityEntries []types.ActivityEntry
	activitySource  string
	activityTotal   int
	activityView    viewport.Model
	helpView        viewport.Model

	// Settings field errors by path
	fieldErrors map[string]string

	// Modals
	prompt         *PromptState
	createForm     *CreateFormState
	toasts         *ToastState
	confirmTitle   string
	confirmMessage string
	confirmCmd     tea.Cmd

	// UI state
	width          int
	height         int
	styles         styles
	statusMsg      string
	errorMsg       string
	messageTimeout time.Duration
	quitting       bool
}

// Init loads the registries and starts the toast clock
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshAll(),
		m.loadActivity(),
		m.checkForUpdate(),
		tickToasts(),
	)
}

// Cleanup flushes pending settings writes
func (m *Model) Cleanup() {
	if m.settings != nil {
		m.settings.Flush()
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Keyboard only

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case toastTickMsg:
		m.syncToasts()
		m.toasts.Prune()
		cmd = tickToasts()

	case instancesLoadedMsg:
		m.finishLoading()
		if msg.err == nil {
			m.pruneRecent()
		}
		m.instanceCursor.Clamp(len(m.visibleInstances()))
		if m.page == PageInstanceDetail {
			if _, ok := m.instances.Get(m.sessionMgr.SelectedInstance()); !ok {
				m.switchPage(PageInstances)
			}
		}

	case accountsLoadedMsg:
		m.finishLoading()
		m.accountCursor.Clamp(len(m.accounts.Accounts()))

	case instanceCreatedMsg:
		cmd = m.handleInstanceCreated(msg)

	case instanceRenamedMsg:
		cmd = m.handlePromptResult(msg.err)

	case iconUpdatedMsg:
		cmd = m.handlePromptResult(msg.err)

	case instanceRemovedMsg:
		if msg.err == nil {
			m.sessionMgr.ForgetInstance(msg.identifier)
			if m.page == PageInstanceDetail {
				m.switchPage(PageInstances)
			}
		}
		m.instanceCursor.Clamp(len(m.visibleInstances()))

	case accountAddedMsg:
		cmd = m.handlePromptResult(msg.err)
		m.accountCursor.Clamp(len(m.accounts.Accounts()))

	case accountChangedMsg:
		m.accountCursor.Clamp(len(m.accounts.Accounts()))

	case activityLoadedMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage("Failed to load notifications: " + msg.err.Error())
		} else {
			m.activityEntries = msg.entries
			m.activityTotal = msg.total
			m.updateActivityView()
		}

	case versionCheckMsg:
		if msg.err == nil && msg.update.Available {
			m.updateAvailable = true
			m.latestVersion = msg.update.Latest
			m.updateURL = msg.update.URL
		}

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
	}

	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.syncToasts()
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}
	return m.renderMain()
}

// Custom message types
type toastTickMsg struct{}

type instancesLoadedMsg struct {
	err error
}

type accountsLoadedMsg struct {
	err error
}

type instanceCreatedMsg struct {
	instance types.Instance
	err      error
}

type instanceRenamedMsg struct {
	err error
}

type iconUpdatedMsg struct {
	err error
}

type instanceRemovedMsg struct {
	identifier string
	err        error
}

type accountAddedMsg struct {
	err error
}

type accountChangedMsg struct {
	err error
}

type activityLoadedMsg struct {
	entries []types.ActivityEntry
	total   int
	err     error
}

type versionCheckMsg struct {
	update version.Update
	err    error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

func tickToasts() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// syncToasts moves queued notifications on screen and refreshes the drawer
func (m *Model) syncToasts() {
	if m.toastQueue == nil {
		return
	}
	drained := m.toastQueue.Drain()
	if len(drained) == 0 {
		return
	}
	m.toasts.Push(drained...)
	if m.activityMgr == nil {
		return
	}
	if total, err := m.activityMgr.Count(""); err == nil {
		m.activityTotal = total
	}
	if m.page == PageActivity {
		if entries, err := m.activityMgr.List(ActivityPageSize, "", m.activitySource); err == nil {
			m.activityEntries = entries
			m.updateActivityView()
		}
	}
}

// activitySources is the cycle of the drawer's source filter; "" shows everything
var activitySources = []string{"", notify.SourceInstance, notify.SourceAccount, notify.SourceSettings}

func nextActivitySource(current string) string {
	for i, source := range activitySources {
		if source == current {
			return activitySources[(i+1)%len(activitySources)]
		}
	}
	return ""
}

func (m *Model) finishLoading() {
	if m.loadingCount > 0 {
		m.loadingCount--
	}
}

// pruneRecent drops recent instances that no longer exist
func (m *Model) pruneRecent() {
	list := m.instances.List()
	ids := make([]string, 0, len(list))
	for _, inst := range list {
		ids = append(ids, inst.Identifier)
	}
	m.sessionMgr.PruneRecent(ids)
}

// setStatusMessage shows msg in the status bar, cleared after the message timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, 100)
	m.errorMsg = ""
	if m.messageTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, 100)
	if m.messageTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
