package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCompare Scene = iota
	SceneCrossover
	SceneDues
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCompare:
		return "Compare regimes"
	case SceneCrossover:
		return "Crossover"
	case SceneDues:
		return "Monthly dues"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
