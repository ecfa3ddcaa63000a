package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meicalc/meicalc/internal/crossover"
	"github.com/meicalc/meicalc/internal/tui/tuimsg"
	"github.com/meicalc/meicalc/internal/tui/tuistyles"
)

var runKey = key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter/r", "scan"))

// CrossoverModel shows, per activity, the revenue from which MEI stops
// being the cheapest regime
type CrossoverModel struct {
	solver *crossover.Solver
	year   int
	busy   bool
	result *crossover.MultiResult
	err    error
}

// NewCrossoverModel creates the crossover scene
func NewCrossoverModel(solver *crossover.Solver, year int) *CrossoverModel {
	return &CrossoverModel{solver: solver, year: year}
}

// SetYear changes the reference year and drops the stale result
func (m *CrossoverModel) SetYear(year int) {
	m.year = year
	m.result = nil
}

// Result returns the last scan, if any
func (m *CrossoverModel) Result() *crossover.MultiResult {
	return m.result
}

// Busy reports whether a scan is running
func (m *CrossoverModel) Busy() bool {
	return m.busy
}

// SetResult stores the outcome of a scan
func (m *CrossoverModel) SetResult(msg tuimsg.CrossoverCompleteMsg) {
	m.busy = false
	m.result = msg.Result
	m.err = msg.Err
}

// Init starts a scan when none has run for the current year
func (m *CrossoverModel) Init() tea.Cmd {
	if m.result != nil || m.busy {
		return nil
	}
	return m.scan()
}

// Update handles messages for the crossover scene
func (m *CrossoverModel) Update(msg tea.Msg) (*CrossoverModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, runKey) && !m.busy {
		return m, m.scan()
	}
	return m, nil
}

func (m *CrossoverModel) scan() tea.Cmd {
	m.busy = true
	m.err = nil
	solver, year := m.solver, m.year
	return func() tea.Msg {
		res, err := solver.FindForAllActivities(context.Background(), year)
		return tuimsg.CrossoverCompleteMsg{Result: res, Err: err}
	}
}

// View renders the crossover scene
func (m *CrossoverModel) View() string {
	switch {
	case m.busy:
		return fmt.Sprintf("Scanning revenues for %d...", m.year)
	case m.err != nil:
		return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
	case m.result == nil:
		return tuistyles.HelpStyle.Render("Press enter to find the crossover revenue of every activity.")
	}

	var sb strings.Builder
	header := fmt.Sprintf("%-10s %-10s %16s %-18s %14s %14s", "Activity", "Status", "Revenue", "Cheaper regime", "MEI cost", "Alternative")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")
	for _, r := range m.result.Results {
		status := "not found"
		switch {
		case r.Found:
			status = "found"
		case r.Truncated:
			status = "truncated"
		}
		line := fmt.Sprintf("%-10s %-10s %16s %-18s %14s %14s",
			r.Activity, status,
			tuistyles.FormatCurrency(r.Revenue),
			string(r.Regime),
			tuistyles.FormatCurrency(r.MEICost),
			tuistyles.FormatCurrency(r.AlternativeCost))
		if r.Found {
			sb.WriteString(tuistyles.TableCellStyle.Render(line))
		} else {
			sb.WriteString(tuistyles.WarningStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	if len(m.result.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range m.result.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}
	return sb.String()
}
