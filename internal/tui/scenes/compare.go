package scenes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/tui/components"
	"github.com/meicalc/meicalc/internal/tui/tuimsg"
	"github.com/meicalc/meicalc/internal/tui/tuistyles"
)

// CompareKeyMap holds the bindings of the compare scene
type CompareKeyMap struct {
	Submit       key.Binding
	NextActivity key.Binding
	PrevActivity key.Binding
}

// DefaultCompareKeyMap returns the compare scene bindings
func DefaultCompareKeyMap() CompareKeyMap {
	return CompareKeyMap{
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare")),
		NextActivity: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next activity")),
		PrevActivity: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "previous activity")),
	}
}

// CompareModel lets the user type a yearly revenue and compares the regimes
type CompareModel struct {
	engine   *compare.CompareEngine
	keys     CompareKeyMap
	revenue  textinput.Model
	activity int
	year     int
	busy     bool
	result   *compare.Comparison
	err      error
	width    int
	height   int
}

// NewCompareModel creates the compare scene
func NewCompareModel(engine *compare.CompareEngine, year int) *CompareModel {
	ti := textinput.New()
	ti.Prompt = "Yearly revenue R$ "
	ti.Placeholder = "e.g. 75000"
	ti.CharLimit = 12
	ti.Width = 16
	ti.Validate = validateAmount
	ti.Focus()

	return &CompareModel{
		engine:  engine,
		keys:    DefaultCompareKeyMap(),
		revenue: ti,
		year:    year,
	}
}

func validateAmount(s string) error {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return errors.New("digits only")
		}
	}
	return nil
}

// Activity returns the selected activity
func (m *CompareModel) Activity() domain.ActivityType {
	return domain.AllActivities[m.activity]
}

// SetYear changes the reference year and drops the stale result
func (m *CompareModel) SetYear(year int) {
	m.year = year
	m.result = nil
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRevenue fills the revenue input
func (m *CompareModel) SetRevenue(v string) {
	m.revenue.SetValue(v)
}

// Result returns the last comparison, if any
func (m *CompareModel) Result() *compare.Comparison {
	return m.result
}

// Err returns the last comparison error, if any
func (m *CompareModel) Err() error {
	return m.err
}

// Busy reports whether a comparison is running
func (m *CompareModel) Busy() bool {
	return m.busy
}

// SetResult stores the outcome of a comparison
func (m *CompareModel) SetResult(msg tuimsg.ComparisonCompleteMsg) {
	m.busy = false
	m.result = msg.Comparison
	m.err = msg.Err
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.NextActivity):
			m.activity = (m.activity + 1) % len(domain.AllActivities)
			m.result = nil
			return m, nil
		case key.Matches(msg, m.keys.PrevActivity):
			m.activity = (m.activity + len(domain.AllActivities) - 1) % len(domain.AllActivities)
			m.result = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.revenue, cmd = m.revenue.Update(msg)
	return m, cmd
}

func (m *CompareModel) submit() tea.Cmd {
	raw := strings.ReplaceAll(strings.TrimSpace(m.revenue.Value()), ",", ".")
	revenue, err := decimal.NewFromString(raw)
	if err != nil {
		m.err = fmt.Errorf("enter the yearly revenue as a number")
		return nil
	}

	m.busy = true
	m.err = nil
	engine, activity, year := m.engine, m.Activity(), m.year
	return func() tea.Msg {
		c, err := engine.Compare(revenue, activity, year)
		return tuimsg.ComparisonCompleteMsg{Comparison: c, Err: err}
	}
}

// View renders the compare scene
func (m *CompareModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderActivities())
	sb.WriteString("\n\n")
	sb.WriteString(m.revenue.View())
	sb.WriteString("   ")
	sb.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("reference year %d", m.year)))
	sb.WriteString("\n\n")

	switch {
	case m.busy:
		sb.WriteString("Comparing regimes...")
	case m.err != nil:
		sb.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	case m.result != nil:
		sb.WriteString(m.renderResult(m.result))
	default:
		sb.WriteString(tuistyles.HelpStyle.Render("Type a yearly revenue and press enter."))
	}
	return sb.String()
}

func (m *CompareModel) renderActivities() string {
	parts := make([]string, len(domain.AllActivities))
	for i, a := range domain.AllActivities {
		if i == m.activity {
			parts[i] = tuistyles.SelectedItemStyle.Render("[" + a.String() + "]")
		} else {
			parts[i] = tuistyles.MetricLabelStyle.Render(" " + a.String() + " ")
		}
	}
	return "Activity: " + strings.Join(parts, " ")
}

func (m *CompareModel) renderResult(c *compare.Comparison) string {
	var sb strings.Builder

	header := fmt.Sprintf("%-18s %16s %14s %10s", "Regime", "Yearly", "Monthly", "Share")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")
	for _, r := range c.Results {
		line := fmt.Sprintf("%-18s %16s %14s %10s",
			string(r.Regime),
			tuistyles.FormatCurrency(r.AnnualCost),
			tuistyles.FormatCurrency(r.MonthlyCost),
			tuistyles.FormatRate(r.PercentOfRevenue))
		if r.Recommended {
			sb.WriteString(tuistyles.TableHighlightStyle.Render(line + "  ★"))
		} else {
			sb.WriteString(tuistyles.TableCellStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	cards := []*components.MetricCard{
		components.NewMetricCard("Recommended", string(c.Recommended)).WithHighlight(true),
	}
	if best, ok := c.Result(c.Recommended); ok {
		cards = append(cards, components.NewMetricCard("Yearly cost", tuistyles.FormatCurrency(best.AnnualCost)).
			WithDescription(tuistyles.FormatRate(best.PercentOfRevenue)+" of revenue"))
	}
	cards = append(cards, components.NewMetricCard("Simples table", fmt.Sprintf("%d", c.SimplesTableYear)))
	sb.WriteString(components.MetricGrid(cards, 3))
	sb.WriteString("\n\n")

	meiCap := m.engine.CalcEngine.Tables.CapFor(c.Activity)
	share, _ := c.AnnualRevenue.Div(meiCap).Mul(decimal.NewFromInt(100)).Float64()
	sb.WriteString(components.NewGauge("Share of the MEI cap ("+tuistyles.FormatCurrency(meiCap)+")", share).Render())
	sb.WriteString("\n")

	if c.OutdatedTables {
		sb.WriteString("\n")
		sb.WriteString(tuistyles.WarningStyle.Render("Tables may be outdated for this year; figures use the latest published values."))
		sb.WriteString("\n")
	}
	if len(c.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range c.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}
	return sb.String()
}

// ShortHelp returns the bindings shown in the status line
func (k CompareKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextActivity}
}

// FullHelp returns every binding of the scene
func (k CompareKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.NextActivity, k.PrevActivity}}
}
