package calculation

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultExcessTolerance is the share above the cap a MEI may exceed before
// the whole year is retroactively taxed under Simples Nacional.
var DefaultExcessTolerance = decimal.NewFromFloat(0.20)

// ComputeCapStatus measures a year of revenue records against the cap and
// projects when the cap will be reached at the current monthly average.
func ComputeCapStatus(records []domain.RevenueRecord, legalCap decimal.Decimal) (domain.CapStatus, error) {
	return computeCapStatus(records, legalCap, DefaultExcessTolerance)
}

func computeCapStatus(records []domain.RevenueRecord, legalCap, tolerance decimal.Decimal) (domain.CapStatus, error) {
	const op = "compute_cap_status"
	if !legalCap.IsPositive() {
		return domain.CapStatus{}, domain.NewError(op, domain.ErrInvalidAmount, "cap must be greater than zero")
	}
	year, err := validateRecords(records)
	if err != nil {
		return domain.CapStatus{}, err
	}

	accumulated := decimal.Zero
	for _, r := range records {
		accumulated = accumulated.Add(r.Amount)
	}

	status := domain.CapStatus{
		Year:              year,
		Cap:               legalCap,
		Accumulated:       accumulated,
		MonthsWithData:    len(records),
		MovingAverage:     decimal.Zero,
		AnnualProjection:  decimal.Zero,
		PercentOfCap:      accumulated.Div(legalCap).Mul(decimal.NewFromInt(100)),
		MonthsUntilCapped: domain.NotAtRisk,
		Exceeded:          accumulated.GreaterThan(legalCap),
		Band:              capBand(accumulated, legalCap, tolerance),
	}
	if len(records) == 0 {
		return status, nil
	}

	avg := accumulated.Div(decimal.NewFromInt(int64(len(records))))
	status.MovingAverage = avg
	status.AnnualProjection = avg.Mul(decimal.NewFromInt(12))
	status.AtRisk = status.AnnualProjection.GreaterThan(legalCap)
	if avg.IsPositive() {
		remaining := decimal.Max(decimal.Zero, legalCap.Sub(accumulated))
		status.MonthsUntilCapped = int(remaining.Div(avg).Ceil().IntPart())
	}
	return status, nil
}

func capBand(accumulated, legalCap, tolerance decimal.Decimal) domain.CapBand {
	switch {
	case accumulated.LessThanOrEqual(legalCap):
		return domain.BandWithinCap
	case accumulated.LessThanOrEqual(legalCap.Mul(decimal.NewFromInt(1).Add(tolerance))):
		return domain.BandExcessTolerated
	default:
		return domain.BandExcessRetroactive
	}
}

// validateRecords checks the records describe a single year and returns it
func validateRecords(records []domain.RevenueRecord) (int, error) {
	const op = "compute_cap_status"
	year := 0
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		if i == 0 {
			year = r.Year
		}
		switch {
		case r.Year != year:
			return 0, domain.NewError(op, domain.ErrInvalidRecord,
				fmt.Sprintf("records span more than one year (%d and %d)", year, r.Year))
		case r.Month < 1 || r.Month > 12:
			return 0, domain.NewError(op, domain.ErrInvalidRecord, fmt.Sprintf("month %d out of range", r.Month))
		case r.Amount.IsNegative():
			return 0, domain.NewError(op, domain.ErrInvalidRecord,
				fmt.Sprintf("amount for %02d/%d cannot be negative", r.Month, r.Year))
		case seen[r.Month]:
			return 0, domain.NewError(op, domain.ErrInvalidRecord,
				fmt.Sprintf("duplicate record for %02d/%d", r.Month, r.Year))
		}
		seen[r.Month] = true
	}
	return year, nil
}
