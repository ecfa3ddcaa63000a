package calculation

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeTax applies a progressive bracket table with a deduction term:
//
//	effectiveRate = clamp((revenue × nominalRate − deduction) / revenue, 0, 1)
//	tax           = revenue × effectiveRate
//
// The bracket is the first whose ceiling is >= revenue; revenue above every
// ceiling is taxed with the last bracket. A single-bracket table is a flat
// rate.
func ComputeTax(revenue decimal.Decimal, table domain.BracketTable) (domain.TaxResult, error) {
	if err := table.Validate(); err != nil {
		return domain.TaxResult{}, err
	}
	return computeTax(revenue, table)
}

// computeTax is ComputeTax for a table already validated, such as the
// annexes checked once when the regulatory tables are loaded.
func computeTax(revenue decimal.Decimal, table domain.BracketTable) (domain.TaxResult, error) {
	if len(table.Brackets) == 0 {
		return domain.TaxResult{}, domain.NewError("compute_tax", domain.ErrInvalidTable,
			fmt.Sprintf("table %q has no brackets", table.Name))
	}
	if revenue.IsNegative() {
		return domain.TaxResult{}, domain.NewError("compute_tax", domain.ErrInvalidRevenue, "revenue cannot be negative")
	}

	idx, bracket := table.Select(revenue)
	result := domain.TaxResult{
		Revenue:       revenue,
		Tax:           decimal.Zero,
		EffectiveRate: decimal.Zero,
		BracketIndex:  idx,
	}
	if revenue.IsZero() {
		return result, nil
	}

	// revenue × rate − deduction is the tax itself; computing it directly
	// keeps the amount exact instead of multiplying back a rounded rate.
	raw := revenue.Mul(bracket.NominalRate).Sub(bracket.Deduction)
	switch {
	case raw.LessThanOrEqual(decimal.Zero):
		// clamped to zero
	case raw.GreaterThanOrEqual(revenue):
		result.Tax = revenue
		result.EffectiveRate = decimal.NewFromInt(1)
	default:
		result.Tax = raw
		result.EffectiveRate = raw.Div(revenue)
	}
	return result, nil
}
