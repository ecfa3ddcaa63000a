package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/config"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/meicalc/meicalc/internal/tui/tuimsg"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	tables, err := config.NewTablesLoader().LoadDefault()
	require.NoError(t, err)
	today := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	return NewModel(calculation.NewEngine(tables), 2025, today)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_CompareFlow(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, SceneCompare, m.CurrentScene())

	for _, r := range "75000" {
		m, _ = send(t, m, runes(string(r)))
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "enter should start a comparison")
	assert.True(t, m.compareModel.Busy())

	msg := cmd()
	done, ok := msg.(tuimsg.ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, domain.RegimeMEI, done.Comparison.Recommended)

	m, _ = send(t, m, msg)
	assert.False(t, m.compareModel.Busy())
	view := m.View()
	assert.Contains(t, view, "MEI Calculator")
	assert.Contains(t, view, "R$ 922.80")
	assert.Contains(t, view, "Share of the MEI cap")
}

func TestModel_CompareRejectsEmptyRevenue(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.compareModel.Err())
	assert.Contains(t, m.View(), "enter the yearly revenue as a number")
}

func TestModel_CompareCyclesActivity(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.ActivityServices, m.compareModel.Activity())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.ActivityTrucker, m.compareModel.Activity())
}

func TestModel_CrossoverScene(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(t, m, runes("x"))
	assert.Equal(t, SceneCrossover, m.CurrentScene())
	require.NotNil(t, cmd, "entering the scene should start a scan")

	msg := cmd()
	done, ok := msg.(tuimsg.CrossoverCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Len(t, done.Result.Results, len(domain.AllActivities))

	m, _ = send(t, m, msg)
	view := m.View()
	assert.Contains(t, view, "R$ 518000.00")
	assert.Contains(t, view, "not found")
	assert.Contains(t, view, "trucker")

	// Coming back keeps the result for the same year.
	m, _ = send(t, m, runes("c"))
	_, cmd = send(t, m, runes("x"))
	assert.Nil(t, cmd)
}

func TestModel_DuesScene(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("d"))
	assert.Equal(t, SceneDues, m.CurrentScene())

	view := m.View()
	assert.Contains(t, view, "2025-03-20")
	assert.Contains(t, view, "R$ 76.90")
	assert.NotContains(t, view, "not published yet")

	m, _ = send(t, m, runes("+"))
	assert.Equal(t, 2026, m.Year())
	view = m.View()
	assert.Contains(t, view, "not published yet")
	assert.Contains(t, view, "tables may be outdated")

	m, _ = send(t, m, runes("-"))
	assert.Equal(t, 2025, m.Year())
}

func TestModel_HelpAndBack(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("d"))
	m, _ = send(t, m, runes("?"))
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "Keys")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDues, m.CurrentScene())
}

func TestModel_ErrorIsDismissedByAnyKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tuimsg.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "Press any key to continue")

	m, _ = send(t, m, runes("d"))
	assert.Equal(t, SceneCompare, m.CurrentScene())
	assert.NotContains(t, m.View(), "Press any key to continue")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
