package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meicalc/meicalc/internal/output"
	"github.com/meicalc/meicalc/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	case m.currentScene == SceneCompare:
		content = m.compareModel.View()
	case m.currentScene == SceneCrossover:
		content = m.crossoverModel.View()
	case m.currentScene == SceneDues:
		content = m.duesModel.View()
	case m.currentScene == SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(max(0, m.height-5)).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("MEI Calculator")
	crumb := fmt.Sprintf("%s / %d", m.currentScene, m.year)
	if m.engine.Tables.IsOutdated(m.year) {
		crumb += "  " + tuistyles.WarningStyle.Render("(tables may be outdated)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	version := tuistyles.MetricLabelStyle.Render("tables " + m.engine.Tables.Metadata.Version)
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(version) - 2
	if gap > 0 {
		status += strings.Repeat(" ", gap) + version
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(status)
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.TitleStyle.Render("Keys"))
	sb.WriteString("\n\n")
	sb.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	sb.WriteString("\n\n")
	sb.WriteString(tuistyles.HelpStyle.Render(
		"Compare: type the yearly revenue, tab to change activity, enter to compare.\n" +
			"Crossover: enter or r to rescan the current year.\n" +
			"Dues: monthly DAS per activity and the next payment date."))
	sb.WriteString("\n\n")
	sb.WriteString(tuistyles.MetricLabelStyle.Render(output.Disclaimer))
	return sb.String()
}
