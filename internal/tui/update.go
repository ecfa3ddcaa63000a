package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meicalc/meicalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ComparisonCompleteMsg:
		m.compareModel.SetResult(msg)
		return m, nil

	case tuimsg.CrossoverCompleteMsg:
		m.crossoverModel.SetResult(msg)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene)
		}
		return m, nil
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Crossover):
		return m.navigate(SceneCrossover)
	case key.Matches(msg, m.keys.Dues):
		return m.navigate(SceneDues)
	case key.Matches(msg, m.keys.NextYear):
		return m.setYear(m.year + 1)
	case key.Matches(msg, m.keys.PrevYear):
		return m.setYear(m.year - 1)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	if m.currentScene != SceneHelp {
		m.previousScene = m.currentScene
	}
	m.currentScene = scene
	if scene == SceneCrossover {
		return m, m.crossoverModel.Init()
	}
	return m, nil
}

func (m Model) setYear(year int) (tea.Model, tea.Cmd) {
	if year < 1 {
		return m, nil
	}
	m.year = year
	m.compareModel.SetYear(year)
	m.crossoverModel.SetYear(year)
	m.duesModel.SetYear(year)
	if m.currentScene == SceneCrossover {
		return m, m.crossoverModel.Init()
	}
	return m, nil
}

func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneCrossover:
		m.crossoverModel, cmd = m.crossoverModel.Update(msg)
	}
	return m, cmd
}
