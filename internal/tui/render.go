package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
)

// palette holds the colors of one theme
type palette struct {
	accent     lipgloss.TerminalColor
	text       lipgloss.TerminalColor
	subtle     lipgloss.TerminalColor
	border     lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	danger     lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	info       lipgloss.TerminalColor
	selectedBg lipgloss.TerminalColor
	selectedFg lipgloss.TerminalColor
	background lipgloss.TerminalColor
}

var palettes = map[types.Theme]palette{
	types.ThemeLight: {
		accent:     lipgloss.Color("#007a7a"),
		text:       lipgloss.Color("#1f1f1f"),
		subtle:     lipgloss.Color("#666666"),
		border:     lipgloss.Color("#b0b0b0"),
		success:    lipgloss.Color("#006400"),
		danger:     lipgloss.Color("#8b0000"),
		warning:    lipgloss.Color("#b8860b"),
		info:       lipgloss.Color("#00008b"),
		selectedBg: lipgloss.Color("#d3d3d3"),
		selectedFg: lipgloss.Color("#000000"),
		background: lipgloss.NoColor{},
	},
	types.ThemeDark: {
		accent:     lipgloss.Color("#00d7d7"),
		text:       lipgloss.Color("#e4e4e4"),
		subtle:     lipgloss.Color("#888888"),
		border:     lipgloss.Color("#4e4e4e"),
		success:    lipgloss.Color("#5fd75f"),
		danger:     lipgloss.Color("#ff5f5f"),
		warning:    lipgloss.Color("#ffd75f"),
		info:       lipgloss.Color("#5fafff"),
		selectedBg: lipgloss.Color("#3a3a3a"),
		selectedFg: lipgloss.Color("#ffffff"),
		background: lipgloss.NoColor{},
	},
	// OLED paints pure black behind everything
	types.ThemeOLED: {
		accent:     lipgloss.Color("#00ffff"),
		text:       lipgloss.Color("#ffffff"),
		subtle:     lipgloss.Color("#808080"),
		border:     lipgloss.Color("#303030"),
		success:    lipgloss.Color("#00ff00"),
		danger:     lipgloss.Color("#ff0000"),
		warning:    lipgloss.Color("#ffff00"),
		info:       lipgloss.Color("#5f87ff"),
		selectedBg: lipgloss.Color("#1c1c1c"),
		selectedFg: lipgloss.Color("#ffffff"),
		background: lipgloss.Color("#000000"),
	},
}

// styles are derived from the resolved theme
type styles struct {
	palette  palette
	app      lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	success  lipgloss.Style
	danger   lipgloss.Style
	warning  lipgloss.Style
	info     lipgloss.Style
	subtle   lipgloss.Style
	text     lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		palette: p,
		app:     lipgloss.NewStyle().Background(p.background),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		selected: lipgloss.NewStyle().
			Background(p.selectedBg).
			Foreground(p.selectedFg),
		success: lipgloss.NewStyle().Foreground(p.success),
		danger:  lipgloss.NewStyle().Foreground(p.danger),
		warning: lipgloss.NewStyle().Foreground(p.warning),
		info:    lipgloss.NewStyle().Foreground(p.info),
		subtle:  lipgloss.NewStyle().Foreground(p.subtle),
		text:    lipgloss.NewStyle().Foreground(p.text),
	}
}

// applyTheme rebuilds the styles from the session theme
func (m *Model) applyTheme() {
	p, ok := palettes[m.sessionMgr.ResolvedTheme()]
	if !ok {
		p = palettes[types.ThemeDark]
	}
	m.styles = newStyles(p)
}

func (m *Model) showSidebar() bool {
	return m.sessionMgr.SidebarOpen() && m.width >= MinWidthForSidebar
}

// contentSize returns the inner size of the page box
func (m *Model) contentSize() (int, int) {
	width := m.width
	if m.showSidebar() {
		width -= SidebarWidth
	}
	height := m.height - HeaderHeight - StatusBarHeight
	return max(width-2, 0), max(height-ContentBorderHeight, 0)
}

// renderMain renders the full screen: header, sidebar, page and status bar
func (m *Model) renderMain() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	toasts := m.renderToasts()

	bodyHeight := m.height - HeaderHeight - StatusBarHeight
	if toasts != "" {
		bodyHeight -= lipgloss.Height(toasts)
	}
	bodyHeight = max(bodyHeight, ContentBorderHeight+1)

	contentWidth := m.width
	var sidebar string
	if m.showSidebar() {
		sidebar = m.renderSidebar(bodyHeight)
		contentWidth -= SidebarWidth
	}

	body := m.renderContent(contentWidth, bodyHeight)
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}

	parts := []string{header, body}
	if toasts != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts))
	}
	parts = append(parts, status)

	return m.styles.app.
		Width(m.width).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderHeader() string {
	crumbs := strings.Join(m.sessionMgr.Breadcrumbs(), " › ")
	left := m.styles.title.Render(crumbs)

	who := "No account"
	if active, ok := m.accounts.Active(); ok {
		who = active.Username
	}
	theme := string(m.sessionMgr.Theme())
	if m.sessionMgr.Theme() == types.ThemeSystem {
		theme = fmt.Sprintf("system (%s)", m.sessionMgr.ResolvedTheme())
	}
	right := m.styles.subtle.Render(fmt.Sprintf("%s · %s", who, theme))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderSidebar(height int) string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Launcher"))
	b.WriteString("\n\n")

	current := m.page
	if current == PageInstanceDetail {
		current = PageInstances
	}
	for i, page := range pageOrder {
		line := fmt.Sprintf("%d %s", i+1, page.Title())
		if page == PageActivity && m.activityTotal > 0 {
			line += fmt.Sprintf(" (%d)", m.activityTotal)
		}
		if page == current {
			b.WriteString(m.styles.selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if recent := m.recentInstances(); len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render("Recent"))
		b.WriteString("\n")
		for _, inst := range recent {
			b.WriteString("  " + truncate(inst.Name, SidebarWidth-6) + "\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.palette.border).
		Width(SidebarWidth - 2).
		Height(height - ContentBorderHeight).
		MaxHeight(height).
		Render(b.String())
}

// recentInstances resolves the recent identifiers that still exist
func (m *Model) recentInstances() []types.Instance {
	var out []types.Instance
	for _, id := range m.sessionMgr.RecentInstances() {
		if inst, ok := m.instances.Get(id); ok {
			out = append(out, inst)
		}
		if len(out) == SidebarRecentLimit {
			break
		}
	}
	return out
}

func (m *Model) renderContent(width, height int) string {
	innerWidth := max(width-2, 0)
	innerHeight := max(height-ContentBorderHeight, 0)

	var inner string
	switch m.mode {
	case ModePrompt:
		inner = lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center, m.renderPromptModal(innerWidth))
	case ModeCreate:
		inner = lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center, m.renderCreateModal(innerWidth))
	case ModeConfirm:
		inner = lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center, m.renderConfirmModal(innerWidth))
	case ModeHelp:
		inner = m.renderHelp(innerWidth, innerHeight)
	default:
		inner = m.renderPage(innerWidth, innerHeight)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.palette.accent).
		Width(innerWidth).
		Height(innerHeight).
		MaxHeight(height).
		Render(inner)
}

func (m *Model) renderPage(width, height int) string {
	switch m.page {
	case PageInstanceDetail:
		return m.renderInstanceDetail(width)
	case PageAccounts:
		return m.renderAccounts(width, height)
	case PageSettings:
		return m.renderSettings(width, height)
	case PageActivity:
		return m.renderActivity()
	default:
		return m.renderInstances(width, height)
	}
}

func (m *Model) keyHint(context keybinds.Context, action keybinds.Action) string {
	keys := m.keybinds.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	// Prefer "y" over "Y"
	for _, key := range keys {
		if key == strings.ToLower(key) {
			return displayKey(key)
		}
	}
	return displayKey(keys[0])
}

func displayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func (m *Model) renderInstances(width, height int) string {
	list := m.visibleInstances()
	var b strings.Builder

	b.WriteString(m.styles.title.Render(fmt.Sprintf("Instances (%d)", len(m.instances.List()))))
	b.WriteString("\n")

	switch {
	case m.mode == ModeFilter:
		b.WriteString(fmt.Sprintf("/%s█", m.filterQuery))
	case m.filterQuery != "":
		b.WriteString(m.styles.subtle.Render(fmt.Sprintf("filter: %s (%s to clear)", m.filterQuery, m.keyHint(keybinds.ContextInstances, keybinds.ActionBack))))
	}
	b.WriteString("\n")

	if len(list) == 0 {
		switch {
		case m.instances.Loading():
			b.WriteString(m.styles.subtle.Render("Loading instances..."))
		case m.filterQuery != "":
			b.WriteString(m.styles.subtle.Render("No instance matches the filter."))
		default:
			b.WriteString(m.styles.subtle.Render(fmt.Sprintf("No instances yet. Press %s to create one.",
				m.keyHint(keybinds.ContextInstances, keybinds.ActionInstanceCreate))))
		}
		return b.String()
	}

	nameWidth := 12
	for _, inst := range list {
		nameWidth = max(nameWidth, lipgloss.Width(inst.Name))
	}
	nameWidth = min(nameWidth, max(width-24, 12))

	start, end := m.instanceCursor.Window(len(list), height-2)
	for i := start; i < end; i++ {
		inst := list[i]
		icon := " "
		if inst.Icon != "" {
			icon = "▣"
		}
		line := fmt.Sprintf("%s %-*s  %-8s %s", icon, nameWidth, truncate(inst.Name, nameWidth), inst.Loader, inst.Version)
		if i == m.instanceCursor.Index() {
			b.WriteString(m.styles.selected.Render(padRight(line, width)))
		} else {
			b.WriteString(line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderInstanceDetail(width int) string {
	inst, ok := m.selectedDetailInstance()
	if !ok {
		return m.styles.subtle.Render("Loading instance...")
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(inst.Name))
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(inst.Identifier))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs(
		[]string{string(types.GameOptionsTabVersion), string(types.GameOptionsTabMods)},
		string(m.sessionMgr.GameOptionsTab()),
	))
	b.WriteString("\n\n")

	switch m.sessionMgr.GameOptionsTab() {
	case types.GameOptionsTabMods:
		if inst.Loader == "vanilla" {
			b.WriteString(m.styles.subtle.Render("Vanilla instances do not load mods. Pick a mod loader to use mods."))
		} else {
			b.WriteString(fmt.Sprintf("Mods for %s are read from the instance's mods folder.", inst.Loader))
		}
	default:
		b.WriteString(fmt.Sprintf("%-14s %s\n", "Mod loader", inst.Loader))
		b.WriteString(fmt.Sprintf("%-14s %s\n", "Game version", inst.Version))
		icon := "none"
		if inst.Icon != "" {
			icon = "custom"
		}
		b.WriteString(fmt.Sprintf("%-14s %s", "Icon", icon))
	}

	b.WriteString("\n\n")
	hints := []string{
		m.keyHint(keybinds.ContextInstanceDetail, keybinds.ActionInstanceRename) + " rename",
		m.keyHint(keybinds.ContextInstanceDetail, keybinds.ActionInstanceSetIcon) + " icon",
		m.keyHint(keybinds.ContextInstanceDetail, keybinds.ActionInstanceDelete) + " remove",
		m.keyHint(keybinds.ContextInstanceDetail, keybinds.ActionBack) + " back",
	}
	b.WriteString(m.styles.subtle.Render(truncate(strings.Join(hints, " · "), max(width, 10))))
	return b.String()
}

func (m *Model) renderTabs(tabs []string, active string) string {
	var parts []string
	for _, tab := range tabs {
		label := " " + tabTitle(tab) + " "
		if tab == active {
			parts = append(parts, m.styles.selected.Bold(true).Render(label))
		} else {
			parts = append(parts, m.styles.subtle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderAccounts(width, height int) string {
	list := m.accounts.Accounts()
	var b strings.Builder

	b.WriteString(m.styles.title.Render(fmt.Sprintf("Accounts (%d)", len(list))))
	b.WriteString("\n\n")

	if len(list) == 0 {
		if m.accounts.Loading() {
			b.WriteString(m.styles.subtle.Render("Loading accounts..."))
		} else {
			b.WriteString(m.styles.subtle.Render(fmt.Sprintf("No accounts. Press %s to add one.",
				m.keyHint(keybinds.ContextAccounts, keybinds.ActionAccountAdd))))
		}
		return b.String()
	}

	start, end := m.accountCursor.Window(len(list), height-2)
	for i := start; i < end; i++ {
		acc := list[i]
		marker := "  "
		if acc.IsActive {
			marker = m.styles.success.Render("● ")
		}
		added := ""
		if acc.ObtainedAt > 0 {
			added = time.Unix(acc.ObtainedAt, 0).Local().Format("2006-01-02")
		}
		line := fmt.Sprintf("%-16s %s  %s", acc.Username, acc.UUID, added)
		if i == m.accountCursor.Index() {
			b.WriteString(marker + m.styles.selected.Render(padRight(line, width-2)))
		} else {
			b.WriteString(marker + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderSettings(width, height int) string {
	fields := m.settingsFields()
	var b strings.Builder

	tabs := make([]string, 0, len(types.SettingsTabs))
	for _, tab := range types.SettingsTabs {
		tabs = append(tabs, string(tab))
	}
	b.WriteString(m.renderTabs(tabs, string(m.sessionMgr.SettingsTab())))
	b.WriteString("\n\n")

	labelWidth := 10
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}

	for i, f := range fields {
		value, err := m.settings.Get(f.Path)
		if err != nil {
			value = "?"
		}
		line := fmt.Sprintf("%-*s  %s", labelWidth, f.Label, formatFieldValue(f, value))
		if i == m.settingsCursor.Index() {
			b.WriteString(m.styles.selected.Render(padRight(line, width)))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")

		if msg := m.fieldErrors[f.Path]; msg != "" {
			b.WriteString(m.styles.danger.Render(strings.Repeat(" ", labelWidth+2) + msg))
			b.WriteString("\n")
		} else if i == m.settingsCursor.Index() && f.Description != "" {
			b.WriteString(m.styles.subtle.Render(strings.Repeat(" ", labelWidth+2) + f.Description))
			b.WriteString("\n")
		}
	}

	if m.sessionMgr.SettingsTab() == types.SettingsTabPreferences {
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render(fmt.Sprintf("%s allocates the recommended %d MB of ram",
			m.keyHint(keybinds.ContextSettings, keybinds.ActionSettingsRecommendedRAM), settings.RecommendedRAM)))
	}
	return b.String()
}

func formatFieldValue(f settings.Field, value string) string {
	switch f.Kind {
	case settings.KindToggle:
		if value == "true" {
			return "[x]"
		}
		return "[ ]"
	case settings.KindChoice:
		return "‹ " + value + " ›"
	}
	if value == "" {
		return "(not set)"
	}
	return value
}

func (m *Model) renderActivity() string {
	title := m.styles.title.Render(fmt.Sprintf("Notifications (%d)", len(m.activityEntries)))
	if m.activityMgr == nil {
		return title + "\n\n" + m.styles.subtle.Render("Notification history is disabled.")
	}
	source := m.activitySource
	if source == "" {
		source = "all"
	}
	filter := m.styles.subtle.Render(fmt.Sprintf("Source: %s · %s next source",
		source, m.keyHint(keybinds.ContextActivity, keybinds.ActionActivitySource)))
	return title + "\n" + filter + "\n\n" + m.activityView.View()
}

// updateActivityView renders the stored notifications into the drawer
func (m *Model) updateActivityView() {
	if len(m.activityEntries) == 0 {
		m.activityView.SetContent(m.styles.subtle.Render("No notifications yet."))
		return
	}

	var b strings.Builder
	for i, entry := range m.activityEntries {
		b.WriteString(m.styles.subtle.Render(entry.Timestamp))
		b.WriteString(" ")
		b.WriteString(m.levelStyle(notify.Level(entry.Level)).Render(levelIcon(notify.Level(entry.Level))))
		b.WriteString(" ")
		b.WriteString(entry.Title)
		if entry.Source != "" {
			b.WriteString(m.styles.subtle.Render(" · " + entry.Source))
		}
		if entry.Description != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.subtle.Render("    " + entry.Description))
		}
		if i < len(m.activityEntries)-1 {
			b.WriteString("\n")
		}
	}
	m.activityView.SetContent(b.String())
}

func (m *Model) levelStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelSuccess:
		return m.styles.success
	case notify.LevelError:
		return m.styles.danger
	case notify.LevelWarning:
		return m.styles.warning
	default:
		return m.styles.info
	}
}

func levelIcon(level notify.Level) string {
	switch level {
	case notify.LevelSuccess:
		return "✓"
	case notify.LevelError:
		return "✗"
	case notify.LevelWarning:
		return "!"
	default:
		return "i"
	}
}

func (m *Model) renderToasts() string {
	visible := m.toasts.Visible()
	if len(visible) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(visible))
	for _, n := range visible {
		body := m.levelStyle(n.Level).Bold(true).Render(levelIcon(n.Level) + " " + n.Title)
		if n.Description != "" {
			body += "\n" + n.Description
		}
		boxes = append(boxes, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.levelStyle(n.Level).GetForeground()).
			Width(min(ToastWidth, max(m.width-2, 10))).
			Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func (m *Model) renderStatusBar() string {
	var left string
	switch {
	case m.errorMsg != "":
		left = m.styles.danger.Render(m.errorMsg)
	case m.statusMsg != "":
		left = m.styles.success.Render(m.statusMsg)
	case m.loadingCount > 0:
		left = m.styles.subtle.Render("Loading...")
	default:
		left = m.styles.subtle.Render(m.modeHint())
	}

	right := fmt.Sprintf("%s help", m.keyHint(keybinds.ContextGlobal, keybinds.ActionOpenHelp))
	if m.version != "" {
		right += " · v" + m.version
	}
	if m.updateAvailable {
		right += " · " + m.styles.warning.Render("update "+m.latestVersion)
	}
	right = m.styles.subtle.Render(right)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) modeHint() string {
	switch m.mode {
	case ModeFilter:
		return "type to filter · enter keep · esc clear"
	case ModePrompt:
		return "enter submit · esc cancel"
	case ModeCreate:
		return "tab next field · ←/→ change · enter create · esc cancel"
	case ModeConfirm:
		return "y confirm · n cancel"
	case ModeHelp:
		return "esc close"
	}
	return fmt.Sprintf("%s sidebar · %s theme · %s quit",
		m.keyHint(keybinds.ContextGlobal, keybinds.ActionToggleSidebar),
		m.keyHint(keybinds.ContextGlobal, keybinds.ActionCycleTheme),
		m.keyHint(keybinds.ContextGlobal, keybinds.ActionQuit))
}

// updateViewports resizes the scrollable views to the content area
func (m *Model) updateViewports() {
	width, height := m.contentSize()
	m.activityView.Width = width
	m.activityView.Height = max(height-3, 1)
	m.helpView.Width = width
	m.helpView.Height = max(height-2, 1)
	m.updateActivityView()
	if m.mode == ModeHelp {
		m.updateHelpView()
	}
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
