package crossover

import (
	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Request describes one crossover scan. Nil bounds take their defaults:
// From is the activity's MEI cap, To is UpperMultiple times the cap and
// Step comes from the solver options.
type Request struct {
	Activity      domain.ActivityType `json:"activity"`
	ReferenceYear int                 `json:"reference_year"`
	From          *decimal.Decimal    `json:"from,omitempty"`
	To            *decimal.Decimal    `json:"to,omitempty"`
	Step          *decimal.Decimal    `json:"step,omitempty"`
}

// Result is the outcome of a scan. When no crossover exists in range,
// Found is false and Revenue is the upper bound.
type Result struct {
	Activity      domain.ActivityType `json:"activity"`
	ReferenceYear int                 `json:"reference_year"`
	From          decimal.Decimal     `json:"from"`
	To            decimal.Decimal     `json:"to"`
	Step          decimal.Decimal     `json:"step"`

	Found           bool                `json:"found"`
	Revenue         decimal.Decimal     `json:"revenue"`
	Regime          domain.Regime       `json:"regime,omitempty"` // cheapest non-MEI regime at Revenue
	MEICost         decimal.Decimal     `json:"mei_cost"`
	AlternativeCost decimal.Decimal     `json:"alternative_cost"`
	Costs           compare.RegimeCosts `json:"costs"`

	// ForcedExitRevenue is the top of the tolerance band: above it MEI is
	// lost retroactively whatever the costs say.
	ForcedExitRevenue decimal.Decimal `json:"forced_exit_revenue"`

	Iterations int  `json:"iterations"`
	Truncated  bool `json:"truncated"` // stopped by MaxIterations before reaching To
}

// MultiResult holds one scan per activity
type MultiResult struct {
	ReferenceYear   int      `json:"reference_year"`
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the scan
type SolverOptions struct {
	Step          decimal.Decimal // default scan resolution
	UpperMultiple decimal.Decimal // default upper bound as a multiple of the cap
	MaxIterations int             // hard cap on evaluated points
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Step:          decimal.NewFromInt(1000),
		UpperMultiple: decimal.NewFromInt(10),
		MaxIterations: 100000,
	}
}
