package compare

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Comparison is the yearly cost of every eligible regime at one revenue
type Comparison struct {
	AnnualRevenue      decimal.Decimal           `json:"annual_revenue"`
	Activity           domain.ActivityType       `json:"activity"`
	ReferenceYear      int                       `json:"reference_year"`
	Results            []domain.RegimeCostResult `json:"results"`
	Recommended        domain.Regime             `json:"recommended"`
	OutdatedTables     bool                      `json:"outdated_tables"`
	FixedDueSourceYear int                       `json:"fixed_due_source_year,omitempty"` // zero when MEI is not eligible
	SimplesTableYear   int                       `json:"simples_table_year"`
	Recommendations    []string                  `json:"recommendations"`
}

// Result returns the cost line for a regime
func (c *Comparison) Result(regime domain.Regime) (domain.RegimeCostResult, bool) {
	for _, r := range c.Results {
		if r.Regime == regime {
			return r, true
		}
	}
	return domain.RegimeCostResult{}, false
}

// RegimeCosts holds the annual cost of each regime at one revenue. MEI is
// extrapolated past its cap as the yearly fixed due plus the excess taxed
// at the Simples Nacional effective rate; above the tolerance band that
// figure is hypothetical, which MEIBand records.
type RegimeCosts struct {
	Revenue          decimal.Decimal `json:"revenue"`
	MEI              decimal.Decimal `json:"mei"`
	MEIEligible      bool            `json:"mei_eligible"`
	MEIBand          domain.CapBand  `json:"mei_band"`
	Simples          decimal.Decimal `json:"simples"`
	SimplesRate      decimal.Decimal `json:"simples_rate"`
	LucroPresumido   decimal.Decimal `json:"lucro_presumido"`
	FixedDue         domain.FixedDue `json:"fixed_due"`
	SimplesTableYear int             `json:"simples_table_year"`
}

// Cheapest returns the regime with the lowest cost among those given,
// breaking ties by regime preference.
func (rc RegimeCosts) Cheapest(regimes ...domain.Regime) (domain.Regime, decimal.Decimal) {
	var (
		best     domain.Regime
		bestCost decimal.Decimal
	)
	for i, r := range regimes {
		cost := rc.CostOf(r)
		if i == 0 || cost.LessThan(bestCost) ||
			(cost.Equal(bestCost) && r.Preference() < best.Preference()) {
			best, bestCost = r, cost
		}
	}
	return best, bestCost
}

// CostOf returns the annual cost of a regime
func (rc RegimeCosts) CostOf(r domain.Regime) decimal.Decimal {
	switch r {
	case domain.RegimeMEI:
		return rc.MEI
	case domain.RegimeSimples:
		return rc.Simples
	default:
		return rc.LucroPresumido
	}
}

// GenerateRecommendations creates human readable notes about a comparison
func GenerateRecommendations(c *Comparison) []string {
	recommendations := []string{}
	if len(c.Results) == 0 {
		return recommendations
	}

	best, ok := c.Result(c.Recommended)
	if !ok {
		return recommendations
	}
	recommendations = append(recommendations,
		fmt.Sprintf("%s is the cheapest option at R$ %s per year (%s%% of revenue)",
			best.Regime, best.AnnualCost.StringFixed(2), best.PercentOfRevenue.Mul(decimal.NewFromInt(100)).StringFixed(2)))

	for _, r := range c.Results {
		if r.Regime == best.Regime {
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Saves R$ %s per year over %s", r.AnnualCost.Sub(best.AnnualCost).StringFixed(2), r.Regime))
	}

	if _, mei := c.Result(domain.RegimeMEI); !mei {
		recommendations = append(recommendations, "Revenue is above the MEI cap for this activity; MEI is not an option")
	}
	if c.OutdatedTables {
		recommendations = append(recommendations,
			fmt.Sprintf("Tables are not reviewed for %d; amounts are reference values", c.ReferenceYear))
	}
	return recommendations
}
