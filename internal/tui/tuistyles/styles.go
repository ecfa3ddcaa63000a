// Package tuistyles holds the lipgloss palette and styles shared by the
// TUI scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#00A859") // flag green
	ColorSecondary = lipgloss.Color("#3E4095") // flag blue
	ColorAccent    = lipgloss.Color("#FEDF00") // flag yellow
	ColorSuccess   = lipgloss.Color("#2ECC71")
	ColorDanger    = lipgloss.Color("#E74C3C")
	ColorWarning   = lipgloss.Color("#F39C12")

	ColorForeground = lipgloss.Color("#ECF0F1")
	ColorMuted      = lipgloss.Color("#95A5A6")
	ColorBorder     = lipgloss.Color("#566573")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorSecondary).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// FormatCurrency renders an amount in reais
func FormatCurrency(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatRate renders a fraction as a percentage
func FormatRate(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// GaugeStyle picks the gauge color for a share of a limit
func GaugeStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 100:
		return lipgloss.NewStyle().Foreground(ColorDanger)
	case percent > 80:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
}
