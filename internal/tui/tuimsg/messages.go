package tuimsg

import (
	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/crossover"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ComparisonCompleteMsg carries the outcome of a regime comparison
type ComparisonCompleteMsg struct {
	Comparison *compare.Comparison
	Err        error
}

// CrossoverCompleteMsg carries the per-activity crossover scan
type CrossoverCompleteMsg struct {
	Result *crossover.MultiResult
	Err    error
}
