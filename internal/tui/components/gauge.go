package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/meicalc/meicalc/internal/tui/tuistyles"
)

// Gauge shows how much of a limit is used, e.g. revenue against the MEI cap.
// Values above the limit fill the bar and turn it red.
type Gauge struct {
	Label   string
	Percent float64
	Width   int
}

// NewGauge creates a gauge for a percentage of a limit
func NewGauge(label string, percent float64) *Gauge {
	return &Gauge{Label: label, Percent: percent, Width: 40}
}

// WithWidth sets the bar width
func (g *Gauge) WithWidth(width int) *Gauge {
	g.Width = width
	return g
}

// Render returns the styled gauge
func (g *Gauge) Render() string {
	var sb strings.Builder
	if g.Label != "" {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(g.Label))
		sb.WriteString("\n")
	}

	filled := int(float64(g.Width) * g.Percent / 100)
	filled = min(max(filled, 0), g.Width)

	sb.WriteString("[")
	sb.WriteString(tuistyles.GaugeStyle(g.Percent).Render(strings.Repeat("█", filled)))
	sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", g.Width-filled)))
	sb.WriteString("] ")
	sb.WriteString(tuistyles.GaugeStyle(g.Percent).Bold(true).Render(fmt.Sprintf("%.1f%%", g.Percent)))
	return sb.String()
}
