package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/backend/local"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// refreshAll reloads instances and accounts from the backend
func (m *Model) refreshAll() tea.Cmd {
	return tea.Batch(m.refreshInstances(), m.refreshAccounts())
}

func (m *Model) refreshInstances() tea.Cmd {
	m.loadingCount++
	registry := m.instances
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return instancesLoadedMsg{err: registry.Refresh(ctx)}
	}
}

func (m *Model) refreshAccounts() tea.Cmd {
	m.loadingCount++
	registry := m.accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return accountsLoadedMsg{err: registry.Refresh(ctx)}
	}
}

func (m *Model) createInstance(opts types.InstanceOptions) tea.Cmd {
	registry := m.instances
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		inst, err := registry.Create(ctx, opts)
		return instanceCreatedMsg{instance: inst, err: err}
	}
}

func (m *Model) renameInstance(identifier, newName string) tea.Cmd {
	registry := m.instances
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		_, err := registry.Rename(ctx, identifier, newName)
		return instanceRenamedMsg{err: err}
	}
}

func (m *Model) removeInstance(identifier string) tea.Cmd {
	registry := m.instances
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return instanceRemovedMsg{identifier: identifier, err: registry.Remove(ctx, identifier)}
	}
}

// setInstanceIcon reads a PNG from path and stores it as the instance icon
func (m *Model) setInstanceIcon(identifier, path string) tea.Cmd {
	registry := m.instances
	return func() tea.Msg {
		data, err := readIcon(path)
		if err != nil {
			return iconUpdatedMsg{err: types.NewValidationError("icon", err.Error())}
		}

		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		dataURL := local.IconDataURL(data)
		_, err = registry.UpdateIcon(ctx, identifier, &dataURL)
		return iconUpdatedMsg{err: err}
	}
}

func (m *Model) removeInstanceIcon(identifier string) tea.Cmd {
	registry := m.instances
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		_, err := registry.UpdateIcon(ctx, identifier, nil)
		return iconUpdatedMsg{err: err}
	}
}

func readIcon(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("Path to a PNG file is required")
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read %s", path)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("%s is not a PNG image", filepath.Base(path))
	}
	return data, nil
}

// addAccount signs in with the typed username
func (m *Model) addAccount(username string) tea.Cmd {
	registry := m.accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		_, err := registry.Authenticate(backend.WithLoginHint(ctx, username))
		return accountAddedMsg{err: err}
	}
}

func (m *Model) activateAccount(uuid string) tea.Cmd {
	registry := m.accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return accountChangedMsg{err: registry.SetActive(ctx, uuid)}
	}
}

func (m *Model) removeAccount(uuid string) tea.Cmd {
	registry := m.accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return accountChangedMsg{err: registry.Remove(ctx, uuid)}
	}
}

func (m *Model) loadActivity() tea.Cmd {
	if m.activityMgr == nil {
		return nil
	}
	mgr := m.activityMgr
	source := m.activitySource
	return func() tea.Msg {
		entries, err := mgr.List(ActivityPageSize, "", source)
		if err != nil {
			return activityLoadedMsg{err: err}
		}
		total, err := mgr.Count("")
		return activityLoadedMsg{entries: entries, total: total, err: err}
	}
}

func (m *Model) clearActivity() tea.Cmd {
	if m.activityMgr == nil {
		return nil
	}
	mgr := m.activityMgr
	return func() tea.Msg {
		if err := mgr.Clear(); err != nil {
			return activityLoadedMsg{err: err}
		}
		return activityLoadedMsg{entries: []types.ActivityEntry{}}
	}
}

func (m *Model) checkForUpdate() tea.Cmd {
	if m.checker == nil || m.version == "" {
		return nil
	}
	checker, current := m.checker, m.version
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), VersionCheckTimeout)
		defer cancel()
		update, err := checker.CheckForUpdate(ctx, current)
		return versionCheckMsg{update: update, err: err}
	}
}

// handleInstanceCreated closes the form and opens the new instance, or shows field errors
func (m *Model) handleInstanceCreated(msg instanceCreatedMsg) tea.Cmd {
	var verr *types.ValidationError
	if errors.As(msg.err, &verr) {
		m.createForm.SetErrors(verr)
		return nil
	}

	m.createForm.SetSubmitting(false)
	if m.mode == ModeCreate {
		m.mode = ModeNormal
	}
	if msg.err != nil {
		// The registry already raised an error toast
		return nil
	}

	m.filterQuery = ""
	m.openInstance(msg.instance.Identifier)
	return nil
}

// handlePromptResult keeps the prompt open on input errors and closes it otherwise
func (m *Model) handlePromptResult(err error) tea.Cmd {
	if m.mode != ModePrompt {
		return nil
	}

	var verr *types.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		m.prompt.SetError(verr.Errors[0].Message)
		return nil
	}
	if errors.Is(err, backend.ErrInvalid) {
		m.prompt.SetError(backend.Message(err))
		return nil
	}

	m.closePrompt()
	return nil
}

// submitPrompt runs the operation the open prompt was started for
func (m *Model) submitPrompt() tea.Cmd {
	if m.prompt.Busy() {
		return nil
	}

	input := m.prompt.Input()
	target := m.prompt.Target()

	switch m.prompt.Purpose() {
	case PromptRename:
		m.prompt.SetBusy(true)
		return m.renameInstance(target, input)

	case PromptIcon:
		m.prompt.SetBusy(true)
		return m.setInstanceIcon(target, input)

	case PromptAccount:
		if strings.TrimSpace(input) == "" {
			input = m.prompt.Placeholder()
		}
		if strings.TrimSpace(input) == "" {
			m.prompt.SetError("Username is required")
			return nil
		}
		m.prompt.SetBusy(true)
		return m.addAccount(input)

	case PromptSetting:
		if err := m.setSetting(target, input); err != nil {
			m.prompt.SetError(err.Error())
			return nil
		}
		m.closePrompt()
		return nil
	}

	m.closePrompt()
	return nil
}

// setSetting writes a field and tracks its inline error
func (m *Model) setSetting(path, value string) error {
	err := m.settings.Set(path, value)
	if err == nil {
		delete(m.fieldErrors, path)
		return nil
	}

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		msg, ok := verr.Field(path)
		if !ok && len(verr.Errors) > 0 {
			msg = verr.Errors[0].Message
		}
		m.fieldErrors[path] = msg
		return errors.New(msg)
	}

	m.logger.Warn("failed to update setting", zap.String("path", path), zap.Error(err))
	m.fieldErrors[path] = err.Error()
	return err
}

func (m *Model) closePrompt() {
	m.prompt.Reset()
	if m.mode == ModePrompt {
		m.mode = ModeNormal
	}
}

// askConfirm opens a yes/no dialog that runs cmd on yes
func (m *Model) askConfirm(title, message string, cmd tea.Cmd) {
	m.confirmTitle = title
	m.confirmMessage = message
	m.confirmCmd = cmd
	m.mode = ModeConfirm
}

// switchPage shows page and records it in the breadcrumbs
func (m *Model) switchPage(page Page) {
	if page != PageInstanceDetail && m.sessionMgr.SelectedInstance() != "" {
		m.sessionMgr.SelectInstance("")
	}
	m.page = page
	m.keybinds.ClearMultiKeyState(contextForPage(page))

	if page == PageSettings {
		m.settingsCursor.Clamp(len(m.settingsFields()))
	}
	m.updateBreadcrumbs()
}

// openInstance shows the detail page of an instance
func (m *Model) openInstance(identifier string) {
	m.sessionMgr.SelectInstance(identifier)
	m.page = PageInstanceDetail
	m.updateBreadcrumbs()
}

func (m *Model) cyclePage(delta int) {
	current := m.page
	if current == PageInstanceDetail {
		current = PageInstances
	}
	idx := 0
	for i, p := range pageOrder {
		if p == current {
			idx = i
		}
	}
	m.switchPage(pageOrder[wrap(idx+delta, len(pageOrder))])
}

func (m *Model) updateBreadcrumbs() {
	crumbs := []string{m.page.Title()}
	switch m.page {
	case PageInstanceDetail:
		if inst, ok := m.selectedDetailInstance(); ok {
			crumbs = append(crumbs, inst.Name)
		}
	case PageSettings:
		crumbs = append(crumbs, tabTitle(string(m.sessionMgr.SettingsTab())))
	}
	m.sessionMgr.SetBreadcrumbs(crumbs...)
}

// visibleInstances applies the fuzzy filter to the instance list
func (m *Model) visibleInstances() []types.Instance {
	return instance.Search(m.instances.List(), m.filterQuery)
}

func (m *Model) selectedInstance() (types.Instance, bool) {
	list := m.visibleInstances()
	idx := m.instanceCursor.Index()
	if idx < 0 || idx >= len(list) {
		return types.Instance{}, false
	}
	return list[idx], true
}

func (m *Model) selectedDetailInstance() (types.Instance, bool) {
	return m.instances.Get(m.sessionMgr.SelectedInstance())
}

func (m *Model) selectedAccount() (types.AccountSummary, bool) {
	list := m.accounts.Accounts()
	idx := m.accountCursor.Index()
	if idx < 0 || idx >= len(list) {
		return types.AccountSummary{}, false
	}
	return list[idx], true
}

func (m *Model) settingsFields() []settings.Field {
	return settings.FieldsForTab(m.sessionMgr.SettingsTab())
}

func (m *Model) selectedField() (settings.Field, bool) {
	fields := m.settingsFields()
	idx := m.settingsCursor.Index()
	if idx < 0 || idx >= len(fields) {
		return settings.Field{}, false
	}
	return fields[idx], true
}

func (m *Model) cycleSettingsTab(delta int) {
	current := m.sessionMgr.SettingsTab()
	idx := 0
	for i, tab := range types.SettingsTabs {
		if tab == current {
			idx = i
		}
	}
	next := types.SettingsTabs[wrap(idx+delta, len(types.SettingsTabs))]
	if err := m.sessionMgr.SetSettingsTab(next); err != nil {
		m.logger.Warn("failed to switch settings tab", zap.Error(err))
		return
	}
	m.settingsCursor.Top()
	m.updateBreadcrumbs()
}

func (m *Model) cycleGameOptionsTab(delta int) {
	tabs := []types.GameOptionsTab{types.GameOptionsTabVersion, types.GameOptionsTabMods}
	current := m.sessionMgr.GameOptionsTab()
	idx := 0
	for i, tab := range tabs {
		if tab == current {
			idx = i
		}
	}
	if err := m.sessionMgr.SetGameOptionsTab(tabs[wrap(idx+delta, len(tabs))]); err != nil {
		m.logger.Warn("failed to switch game options tab", zap.Error(err))
	}
}

func tabTitle(tab string) string {
	if tab == "" {
		return ""
	}
	return strings.ToUpper(tab[:1]) + tab[1:]
}
