package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneLedger:
		content = m.ledgerModel.View()
	case SceneSimulator:
		content = m.simulatorModel.View()
	case SceneTax:
		content = m.taxModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("fincalc")
	crumb := m.currentScene.String()
	if m.config != nil && m.config.Name != "" {
		crumb = m.config.Name + " / " + crumb
	}
	titleBar := lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))

	contentHeight := m.height - 4
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := lipgloss.NewStyle().Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, titleBar, body, m.renderStatusBar())
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("l", "ledger"),
		formatShortcut("s", "simulator"),
		formatShortcut("t", "tax"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"h", "Home dashboard"},
		{"l", "Savings ledger"},
		{"s", "Withdrawal simulator"},
		{"t", "Income tax"},
		{"?", "This help"},
		{"esc", "Back"},
		{"q / ctrl+c", "Quit"},
		{"", ""},
		{"↑ ↓", "Select month or slider"},
		{"← →", "Adjust slider by 10 points"},
		{"enter", "Edit expense, recalculate, or compute tax"},
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		if r[0] == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-12s", r[0])), HelpDescStyle.Render(r[1])))
	}
	return BorderStyle.Render(b.String())
}
