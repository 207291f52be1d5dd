package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/launcher/internal/account"
	"github.com/studiowebux/launcher/internal/activity"
	"github.com/studiowebux/launcher/internal/backend/local"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/session"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap/zaptest"
)

// newTestModel wires a model to a local backend in a temp dir
func newTestModel(t *testing.T) *Model {
	t.Helper()
	keyring.MockInit()

	dir := t.TempDir()
	logger := zaptest.NewLogger(t)

	b := local.New(
		filepath.Join(dir, "instances"),
		filepath.Join(dir, "accounts.json"),
		local.WithAuthenticator(&local.OfflineAuthenticator{}),
		local.WithLogger(logger),
	)

	activityMgr, err := activity.NewManager(filepath.Join(dir, "launcher.db"), logger)
	if err != nil {
		t.Fatalf("activity.NewManager() error = %v", err)
	}
	t.Cleanup(func() { activityMgr.Close() })

	store := settings.NewStore(filepath.Join(dir, "settings.json"), settings.WithLogger(logger))
	store.Load()
	t.Cleanup(store.Close)

	sessionMgr := session.NewManager(filepath.Join(dir, "ui-state.json"),
		session.WithLogger(logger),
		session.WithDarkBackground(func() bool { return true }),
	)
	if err := sessionMgr.Load(); err != nil {
		t.Fatalf("session Load() error = %v", err)
	}

	toasts := &notify.Queue{}
	notifier := notify.Multi{activityMgr, toasts}

	m, err := New(Services{
		Instances: instance.NewRegistry(b, notifier, instance.WithLogger(logger)),
		Accounts:  account.NewRegistry(b, notifier, logger),
		Settings:  store,
		Session:   sessionMgr,
		Keybinds:  keybinds.NewDefaultRegistry(),
		Toasts:    toasts,
		Notifier:  notifier,
		Activity:  activityMgr,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.messageTimeout = 0
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m
}

// runCmd executes cmd and feeds every resulting message back into the model
func runCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(m, c)
		}
	default:
		_, next := m.Update(msg)
		runCmd(m, next)
	}
}

func press(m *Model, keys ...string) {
	for _, key := range keys {
		_, cmd := m.Update(keyMsg(key))
		runCmd(m, cmd)
	}
}

func typeText(m *Model, text string) {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	runCmd(m, cmd)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func createInstance(t *testing.T, m *Model, name string) types.Instance {
	t.Helper()
	inst, err := m.instances.Create(context.Background(), types.InstanceOptions{
		Name:    name,
		Loader:  "vanilla",
		Version: "1.8.9",
	})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return inst
}

func TestNewRequiresServices(t *testing.T) {
	if _, err := New(Services{}); err == nil {
		t.Error("Expected error without services")
	}
}

func TestCreateInstanceFlow(t *testing.T) {
	m := newTestModel(t)

	press(m, "n")
	if m.mode != ModeCreate {
		t.Fatalf("Expected create mode, got %v", m.mode)
	}
	typeText(m, "Survival")
	press(m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("Expected form closed, got mode %v", m.mode)
	}
	if m.page != PageInstanceDetail {
		t.Errorf("Expected detail page, got %v", m.page)
	}
	inst, ok := m.selectedDetailInstance()
	if !ok || inst.Name != "Survival" {
		t.Fatalf("Expected Survival selected, got %+v (%v)", inst, ok)
	}
	if got := m.sessionMgr.Breadcrumbs(); len(got) != 2 || got[1] != "Survival" {
		t.Errorf("Unexpected breadcrumbs %v", got)
	}
	if m.toasts.Len() == 0 {
		t.Error("Expected a toast for the created instance")
	}
	if recent := m.sessionMgr.RecentInstances(); len(recent) == 0 || recent[0] != inst.Identifier {
		t.Errorf("Expected %s in recent instances, got %v", inst.Identifier, recent)
	}
}

func TestCreateInstanceDuplicateNameKeepsForm(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "n")
	typeText(m, "survival")
	press(m, "enter")

	if m.mode != ModeCreate {
		t.Fatalf("Expected form to stay open, got mode %v", m.mode)
	}
	if m.createForm.FieldError("name") == "" {
		t.Error("Expected a name error")
	}
	if m.createForm.Submitting() {
		t.Error("Expected submitting to end")
	}
	if len(m.instances.List()) != 1 {
		t.Errorf("Expected 1 instance, got %d", len(m.instances.List()))
	}
}

func TestRenameInstanceFromList(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "r")
	if m.mode != ModePrompt || m.prompt.Input() != "Survival" {
		t.Fatalf("Expected rename prompt with current name, got mode %v input %q", m.mode, m.prompt.Input())
	}
	press(m, "ctrl+u")
	typeText(m, "Creative")
	press(m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("Expected prompt closed, got mode %v", m.mode)
	}
	list := m.instances.List()
	if len(list) != 1 || list[0].Name != "Creative" {
		t.Errorf("Expected Creative, got %+v", list)
	}
}

func TestRenameEmptyNameKeepsPrompt(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "r", "ctrl+u", "enter")

	if m.mode != ModePrompt {
		t.Fatalf("Expected prompt to stay open, got mode %v", m.mode)
	}
	if m.prompt.Error() == "" {
		t.Error("Expected an error in the prompt")
	}
	if m.prompt.Busy() {
		t.Error("Expected prompt to accept input again")
	}
}

func TestDeleteInstanceRequiresConfirm(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "d")
	if m.mode != ModeConfirm {
		t.Fatalf("Expected confirm mode, got %v", m.mode)
	}
	press(m, "n")
	if len(m.instances.List()) != 1 {
		t.Fatal("Cancel should keep the instance")
	}

	press(m, "d", "y")
	if m.mode != ModeNormal {
		t.Errorf("Expected normal mode, got %v", m.mode)
	}
	if len(m.instances.List()) != 0 {
		t.Errorf("Expected instance removed, got %+v", m.instances.List())
	}
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "enter")
	if m.page != PageInstanceDetail {
		t.Fatalf("Expected detail page, got %v", m.page)
	}
	press(m, "d", "y")

	if m.page != PageInstances {
		t.Errorf("Expected instances page, got %v", m.page)
	}
	if m.sessionMgr.SelectedInstance() != "" {
		t.Errorf("Expected selection cleared, got %q", m.sessionMgr.SelectedInstance())
	}
	if len(m.sessionMgr.RecentInstances()) != 0 {
		t.Errorf("Expected recent list pruned, got %v", m.sessionMgr.RecentInstances())
	}
}

func TestGameOptionsTabs(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "enter", "l")
	if m.sessionMgr.GameOptionsTab() != types.GameOptionsTabMods {
		t.Errorf("Expected mods tab, got %q", m.sessionMgr.GameOptionsTab())
	}
	press(m, "l")
	if m.sessionMgr.GameOptionsTab() != types.GameOptionsTabVersion {
		t.Errorf("Expected wrap to version tab, got %q", m.sessionMgr.GameOptionsTab())
	}
	press(m, "esc")
	if m.page != PageInstances {
		t.Errorf("Expected back on the list, got %v", m.page)
	}
}

func TestFilterInstances(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")
	createInstance(t, m, "Skyblock")

	press(m, "/")
	if m.mode != ModeFilter {
		t.Fatalf("Expected filter mode, got %v", m.mode)
	}
	typeText(m, "surv")

	visible := m.visibleInstances()
	if len(visible) != 1 || visible[0].Name != "Survival" {
		t.Errorf("Expected only Survival, got %+v", visible)
	}

	press(m, "enter")
	if m.mode != ModeNormal || m.filterQuery != "surv" {
		t.Errorf("Expected filter kept, got mode %v query %q", m.mode, m.filterQuery)
	}
	press(m, "esc")
	if m.filterQuery != "" || len(m.visibleInstances()) != 2 {
		t.Errorf("Expected filter cleared, got %q", m.filterQuery)
	}
}

func TestAddAccountThroughPrompt(t *testing.T) {
	m := newTestModel(t)

	press(m, "2")
	if m.page != PageAccounts {
		t.Fatalf("Expected accounts page, got %v", m.page)
	}
	press(m, "a")
	typeText(m, "Steve")
	press(m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("Expected prompt closed, got mode %v (error %q)", m.mode, m.prompt.Error())
	}
	active, ok := m.accounts.Active()
	if !ok || active.Username != "Steve" {
		t.Errorf("Expected Steve active, got %+v (%v)", active, ok)
	}
	if active.UUID != local.OfflineUUID("Steve") {
		t.Errorf("Unexpected uuid %s", active.UUID)
	}
}

func TestAddAccountInvalidUsername(t *testing.T) {
	m := newTestModel(t)

	press(m, "2", "a")
	typeText(m, "no spaces allowed")
	press(m, "enter")

	if m.mode != ModePrompt {
		t.Fatalf("Expected prompt to stay open, got mode %v", m.mode)
	}
	if !strings.Contains(m.prompt.Error(), "Username") {
		t.Errorf("Unexpected prompt error %q", m.prompt.Error())
	}
	if len(m.accounts.Accounts()) != 0 {
		t.Errorf("Expected no accounts, got %+v", m.accounts.Accounts())
	}
}

func TestSwitchActiveAccount(t *testing.T) {
	m := newTestModel(t)
	press(m, "2")
	for _, name := range []string{"Steve", "Alex"} {
		press(m, "a")
		typeText(m, name)
		press(m, "enter")
	}

	list := m.accounts.Accounts()
	if len(list) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(list))
	}
	for i, acc := range list {
		if !acc.IsActive {
			m.accountCursor.Select(i, len(list))
		}
	}
	press(m, "enter")

	active, _ := m.accounts.Active()
	if active.Username != "Alex" {
		t.Errorf("Expected Alex active, got %s", active.Username)
	}
}

func TestSettingsToggle(t *testing.T) {
	m := newTestModel(t)
	press(m, "3")

	field, ok := m.selectedField()
	if !ok || field.Path != "launcher.language" {
		t.Fatalf("Expected language first, got %+v", field)
	}
	press(m, "j")
	field, _ = m.selectedField()
	if field.Path != "launcher.autoBoot" {
		t.Fatalf("Expected autoBoot, got %s", field.Path)
	}

	before, _ := m.settings.Get("launcher.autoBoot")
	press(m, "space")
	after, _ := m.settings.Get("launcher.autoBoot")
	if before == after {
		t.Errorf("Expected autoBoot to flip from %s", before)
	}
}

func TestSettingsEditReportsFieldError(t *testing.T) {
	m := newTestModel(t)
	press(m, "3", "l")
	if m.sessionMgr.SettingsTab() != types.SettingsTabPreferences {
		t.Fatalf("Expected preferences tab, got %q", m.sessionMgr.SettingsTab())
	}
	if got := m.sessionMgr.Breadcrumbs(); len(got) != 2 || got[1] != "Preferences" {
		t.Errorf("Unexpected breadcrumbs %v", got)
	}

	press(m, "enter")
	if m.mode != ModePrompt {
		t.Fatalf("Expected prompt, got mode %v", m.mode)
	}
	press(m, "ctrl+u")
	typeText(m, "lots")
	press(m, "enter")

	if m.mode != ModePrompt {
		t.Errorf("Expected prompt to stay open, got mode %v", m.mode)
	}
	if m.fieldErrors["preferences.ram"] == "" {
		t.Error("Expected a field error for preferences.ram")
	}

	press(m, "ctrl+u")
	typeText(m, "6144")
	press(m, "enter")

	if m.mode != ModeNormal {
		t.Errorf("Expected prompt closed, got mode %v", m.mode)
	}
	if _, ok := m.fieldErrors["preferences.ram"]; ok {
		t.Error("Expected field error cleared")
	}
	if got, _ := m.settings.Get("preferences.ram"); got != "6144" {
		t.Errorf("Expected 6144, got %s", got)
	}
}

func TestRecommendedRAMWarnsWhenSet(t *testing.T) {
	m := newTestModel(t)
	press(m, "3", "R")

	visible := m.toasts.Visible()
	if len(visible) == 0 || visible[0].Level != notify.LevelWarning {
		t.Errorf("Expected a warning toast, got %+v", visible)
	}
}

func TestSidebarToggleAndTheme(t *testing.T) {
	m := newTestModel(t)

	if !m.sessionMgr.SidebarOpen() {
		t.Fatal("Sidebar should start open")
	}
	press(m, "ctrl+b")
	if m.sessionMgr.SidebarOpen() {
		t.Error("Expected sidebar hidden")
	}
	if m.statusMsg != "Sidebar hidden" {
		t.Errorf("Unexpected status %q", m.statusMsg)
	}

	press(m, "ctrl+t")
	if m.sessionMgr.Theme() != types.ThemeLight {
		t.Errorf("Expected light theme, got %q", m.sessionMgr.Theme())
	}
	if m.styles.palette.accent != palettes[types.ThemeLight].accent {
		t.Error("Expected light palette applied")
	}
}

func TestSidebarKeyWorksInPrompt(t *testing.T) {
	m := newTestModel(t)
	press(m, "2", "a", "ctrl+b")

	if m.mode != ModePrompt {
		t.Errorf("Expected prompt to stay open, got mode %v", m.mode)
	}
	if m.sessionMgr.SidebarOpen() {
		t.Error("Expected sidebar hidden")
	}
	if m.prompt.Input() != "" {
		t.Errorf("Expected no text typed, got %q", m.prompt.Input())
	}
}

func TestPageCycling(t *testing.T) {
	m := newTestModel(t)

	want := []Page{PageAccounts, PageSettings, PageActivity, PageInstances}
	for _, page := range want {
		press(m, "tab")
		if m.page != page {
			t.Fatalf("Expected %v, got %v", page, m.page)
		}
		if crumbs := m.sessionMgr.Breadcrumbs(); len(crumbs) == 0 || crumbs[0] != page.Title() {
			t.Errorf("Unexpected breadcrumbs %v on %v", crumbs, page)
		}
	}
}

func TestActivityPageListsNotifications(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	press(m, "4")
	if len(m.activityEntries) == 0 {
		t.Fatal("Expected stored notifications")
	}
	if !strings.Contains(m.activityView.View(), "Survival") {
		t.Error("Expected the create notification in the drawer")
	}

	press(m, "C", "y")
	if len(m.activityEntries) != 0 {
		t.Errorf("Expected notifications cleared, got %d", len(m.activityEntries))
	}
}

func TestActivitySourceFilter(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")
	press(m, "2", "a")
	typeText(m, "Steve")
	press(m, "enter")

	press(m, "4")
	if m.activityTotal != 2 {
		t.Fatalf("Expected 2 stored notifications, got %d", m.activityTotal)
	}

	tests := []struct {
		source string
		title  string
	}{
		{notify.SourceInstance, `Instance "Survival" has been created`},
		{notify.SourceAccount, "Account added"},
		{notify.SourceSettings, ""},
		{"", ""},
	}

	for _, tt := range tests {
		press(m, "s")
		if m.activitySource != tt.source {
			t.Fatalf("Expected source %q, got %q", tt.source, m.activitySource)
		}
		if tt.source == "" {
			if len(m.activityEntries) != 2 {
				t.Errorf("Expected every entry without a filter, got %+v", m.activityEntries)
			}
			continue
		}
		if tt.title == "" {
			if len(m.activityEntries) != 0 {
				t.Errorf("Expected no %s entries, got %+v", tt.source, m.activityEntries)
			}
			continue
		}
		if len(m.activityEntries) != 1 || m.activityEntries[0].Title != tt.title {
			t.Errorf("source %s: got %+v", tt.source, m.activityEntries)
		}
	}

	if m.activityTotal != 2 {
		t.Errorf("Expected the total to ignore the filter, got %d", m.activityTotal)
	}
}

func TestGoToTopSequence(t *testing.T) {
	m := newTestModel(t)
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		createInstance(t, m, name)
	}

	press(m, "G")
	if m.instanceCursor.Index() != 2 {
		t.Fatalf("Expected bottom, got %d", m.instanceCursor.Index())
	}
	press(m, "g")
	if m.instanceCursor.Index() != 2 {
		t.Error("A single g should not move")
	}
	press(m, "g")
	if m.instanceCursor.Index() != 0 {
		t.Errorf("Expected top, got %d", m.instanceCursor.Index())
	}
}

func TestHelpOpensAndCloses(t *testing.T) {
	m := newTestModel(t)

	press(m, "?")
	if m.mode != ModeHelp {
		t.Fatalf("Expected help mode, got %v", m.mode)
	}
	if !strings.Contains(m.helpView.View(), "Create instance") {
		t.Error("Expected instance bindings in help")
	}
	press(m, "esc")
	if m.mode != ModeNormal {
		t.Errorf("Expected help closed, got %v", m.mode)
	}
}

func TestViewRendersEveryPage(t *testing.T) {
	m := newTestModel(t)
	createInstance(t, m, "Survival")

	for _, key := range []string{"1", "2", "3", "4"} {
		press(m, key)
		if out := m.View(); !strings.Contains(out, m.page.Title()) {
			t.Errorf("Expected %q in view", m.page.Title())
		}
	}

	press(m, "1", "enter")
	if out := m.View(); !strings.Contains(out, "Survival") {
		t.Error("Expected instance name on the detail page")
	}

	press(m, "esc", "n")
	if out := m.View(); !strings.Contains(out, "Create instance") {
		t.Error("Expected the create form")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}
