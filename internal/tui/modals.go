package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/launcher/internal/keybinds"
)

func (m *Model) modalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.palette.accent).
		Padding(0, 1).
		Width(min(ModalWidth, max(width-ModalWidthMargin, 20)))
}

func (m *Model) renderPromptModal(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.prompt.Title()))
	b.WriteString("\n\n")

	input := []rune(m.prompt.Input())
	cursor := m.prompt.Cursor()
	if len(input) == 0 && m.prompt.Placeholder() != "" {
		b.WriteString("█" + m.styles.subtle.Render(m.prompt.Placeholder()))
	} else {
		b.WriteString(string(input[:cursor]) + "█" + string(input[cursor:]))
	}
	b.WriteString("\n")

	if msg := m.prompt.Error(); msg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.danger.Render(msg))
		b.WriteString("\n")
	}
	if m.prompt.Busy() {
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render("Working..."))
	}

	return m.modalStyle(width).Render(b.String())
}

func (m *Model) renderCreateModal(width int) string {
	form := m.createForm
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Create instance"))
	b.WriteString("\n\n")

	row := func(field CreateField, label, value, errKey string) {
		prefix := "  "
		if form.Focus() == field {
			prefix = m.styles.title.Render("› ")
		}
		b.WriteString(fmt.Sprintf("%s%-14s %s\n", prefix, label, value))
		if msg := form.FieldError(errKey); msg != "" {
			b.WriteString(m.styles.danger.Render(strings.Repeat(" ", 17) + msg))
			b.WriteString("\n")
		}
	}

	name := form.Name()
	if form.Focus() == CreateFieldName {
		name += "█"
	}
	if form.Name() == "" {
		name += m.styles.subtle.Render(form.Placeholder())
	}
	row(CreateFieldName, "Name", name, "name")
	row(CreateFieldLoader, "Mod loader", "‹ "+form.Loader()+" ›", "loader")
	row(CreateFieldVersion, "Game version", "‹ "+form.Version()+" ›", "version")

	b.WriteString("\n")
	if form.Submitting() {
		b.WriteString(m.styles.subtle.Render("Creating..."))
	} else {
		b.WriteString(m.styles.subtle.Render("enter create · esc cancel"))
	}

	return m.modalStyle(width).Render(b.String())
}

func (m *Model) renderConfirmModal(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.warning.Bold(true).Render(m.confirmTitle))
	b.WriteString("\n\n")
	b.WriteString(m.confirmMessage)
	b.WriteString("\n\n")
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf("%s confirm · %s cancel",
		m.keyHint(keybinds.ContextConfirm, keybinds.ActionConfirm),
		m.keyHint(keybinds.ContextConfirm, keybinds.ActionCancel))))

	return m.modalStyle(width).
		BorderForeground(m.styles.palette.warning).
		Render(b.String())
}

func (m *Model) renderHelp(width, height int) string {
	return m.styles.title.Render("Keyboard shortcuts") + "\n\n" + m.helpView.View()
}

// helpSections are the contexts listed in the help viewer, in order
var helpSections = []struct {
	context keybinds.Context
	title   string
}{
	{keybinds.ContextGlobal, "Global"},
	{keybinds.ContextViewer, "Navigation"},
	{keybinds.ContextInstances, "Instances"},
	{keybinds.ContextInstanceDetail, "Instance options"},
	{keybinds.ContextAccounts, "Accounts"},
	{keybinds.ContextSettings, "Settings"},
	{keybinds.ContextActivity, "Notifications"},
}

// updateHelpView lists the active bindings grouped by action
func (m *Model) updateHelpView() {
	var b strings.Builder

	if m.updateAvailable {
		b.WriteString(m.styles.warning.Render(fmt.Sprintf("Version %s is available: %s", m.latestVersion, m.updateURL)))
		b.WriteString("\n\n")
	}

	for _, section := range helpSections {
		keysByAction := make(map[keybinds.Action][]string)
		for _, binding := range m.keybinds.ListBindings(section.context) {
			switch binding.Action {
			case keybinds.ActionGoToTopPrepare, keybinds.ActionNoOp:
				continue
			}
			keysByAction[binding.Action] = append(keysByAction[binding.Action], displayKey(binding.Key))
		}
		if len(keysByAction) == 0 {
			continue
		}

		actions := make([]keybinds.Action, 0, len(keysByAction))
		for action := range keysByAction {
			actions = append(actions, action)
		}
		sort.Slice(actions, func(i, j int) bool {
			return keybinds.GetActionInfo(actions[i]).Description < keybinds.GetActionInfo(actions[j]).Description
		})

		b.WriteString(m.styles.title.Render(section.title))
		b.WriteString("\n")
		for _, action := range actions {
			keys := strings.Join(keysByAction[action], ", ")
			b.WriteString(fmt.Sprintf("  %-18s %s\n", keys, keybinds.GetActionInfo(action).Description))
		}
		b.WriteString("\n")
	}

	// gg is a sequence, not a single key
	if keys := m.keybinds.GetBinding(keybinds.ContextViewer, keybinds.ActionGoToTopPrepare); len(keys) > 0 {
		b.WriteString(m.styles.subtle.Render(fmt.Sprintf("Press %s twice to jump to the top.", keys[0])))
		b.WriteString("\n")
	}

	m.helpView.SetContent(b.String())
}
