package calculation

import (
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeBreakEven finds the units and revenue at which the contribution
// margin covers the fixed cost. When CurrentUnitsSold is set the result
// also reports how current sales compare with that point.
func ComputeBreakEven(in domain.BreakEvenInput) (domain.BreakEvenResult, error) {
	const op = "compute_break_even"
	if in.FixedCost.IsNegative() || in.VariableCostPerUnit.IsNegative() {
		return domain.BreakEvenResult{}, domain.NewError(op, domain.ErrInvalidAmount, "fixed and variable costs cannot be negative")
	}
	if in.Price.LessThanOrEqual(in.VariableCostPerUnit) {
		return domain.BreakEvenResult{}, domain.NewError(op, domain.ErrNoBreakEven,
			"price must be greater than the variable cost per unit")
	}
	if in.CurrentUnitsSold != nil && in.CurrentUnitsSold.IsNegative() {
		return domain.BreakEvenResult{}, domain.NewError(op, domain.ErrInvalidAmount, "units sold cannot be negative")
	}

	cm := in.Price.Sub(in.VariableCostPerUnit)
	units := in.FixedCost.Div(cm)
	result := domain.BreakEvenResult{
		ContributionMargin:        cm,
		ContributionMarginPercent: cm.Div(in.Price),
		BreakEvenUnits:            units,
		BreakEvenRevenue:          units.Mul(in.Price),
	}

	if in.CurrentUnitsSold != nil {
		sold := *in.CurrentUnitsSold
		revenue := sold.Mul(in.Price)
		totalCost := in.FixedCost.Add(in.VariableCostPerUnit.Mul(sold))
		result.Current = &domain.CurrentPerformance{
			UnitsSold:             sold,
			Revenue:               revenue,
			TotalCost:             totalCost,
			Profit:                revenue.Sub(totalCost),
			UnitsShortOfBreakEven: decimal.Max(decimal.Zero, units.Sub(sold)),
			AboveBreakEven:        sold.GreaterThanOrEqual(units),
		}
	}
	return result, nil
}
