package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/notify"
	"go.uber.org/zap"
)

// New creates a new TUI model
func New(svc Services) (Model, error) {
	if svc.Instances == nil || svc.Accounts == nil || svc.Settings == nil || svc.Session == nil {
		return Model{}, errors.New("tui: instances, accounts, settings and session are required")
	}

	if svc.Keybinds == nil {
		svc.Keybinds = keybinds.NewDefaultRegistry()
	}
	if svc.Toasts == nil {
		svc.Toasts = &notify.Queue{}
	}
	if svc.Notifier == nil {
		svc.Notifier = svc.Toasts
	}
	if svc.Logger == nil {
		svc.Logger = zap.NewNop()
	}

	m := Model{
		instances:      svc.Instances,
		accounts:       svc.Accounts,
		settings:       svc.Settings,
		sessionMgr:     svc.Session,
		activityMgr:    svc.Activity,
		keybinds:       svc.Keybinds,
		toastQueue:     svc.Toasts,
		notifier:       svc.Notifier,
		checker:        svc.Updates,
		logger:         svc.Logger,
		version:        svc.Version,
		mode:           ModeNormal,
		page:           PageInstances,
		fieldErrors:    make(map[string]string),
		prompt:         NewPromptState(),
		createForm:     NewCreateFormState(),
		toasts:         NewToastState(ToastLimit, ToastDuration),
		activityView:   viewport.New(80, 20),
		helpView:       viewport.New(80, 20),
		messageTimeout: StatusMessageTimeout,
	}
	m.applyTheme()

	// Reopen the instance the user was last looking at
	if m.sessionMgr.SelectedInstance() != "" {
		m.page = PageInstanceDetail
	}
	m.updateBreadcrumbs()

	return m, nil
}

// Run starts the TUI
func Run(svc Services) error {
	m, err := New(svc)
	if err != nil {
		return err
	}

	// Pointer since Update uses a pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err = p.Run()
	m.Cleanup()
	return err
}
