package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/crossover"
	"github.com/meicalc/meicalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine *calculation.Engine
	year   int
	today  time.Time

	keys KeyMap
	help help.Model

	compareModel   *scenes.CompareModel
	crossoverModel *scenes.CrossoverModel
	duesModel      *scenes.DuesModel

	err error
}

// NewModel creates the application model over a loaded engine. year is the
// reference year of every scene and today anchors the due-date view.
func NewModel(engine *calculation.Engine, year int, today time.Time) Model {
	ce := compare.NewCompareEngine(engine)
	return Model{
		currentScene:   SceneCompare,
		previousScene:  SceneCompare,
		engine:         engine,
		year:           year,
		today:          today,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		compareModel:   scenes.NewCompareModel(ce, year),
		crossoverModel: scenes.NewCrossoverModel(crossover.NewDefaultSolver(ce), year),
		duesModel:      scenes.NewDuesModel(engine, year, today),
		width:          80,
		height:         24,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Year returns the reference year shared by the scenes
func (m Model) Year() int {
	return m.year
}

// CurrentScene returns the active scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}
