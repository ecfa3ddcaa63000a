package calculation

import (
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxVacationDays is the largest yearly vacation accepted by ComputeHourlyRate
const MaxVacationDays = 60

// ComputeHourlyRate returns the minimum hourly rate that pays the desired
// income and fixed costs over the billable hours left after vacation, plus
// the profit margin on top.
func ComputeHourlyRate(in domain.HourlyRateInput) (domain.HourlyRateResult, error) {
	const op = "compute_hourly_rate"
	if in.DesiredMonthlyIncome.IsNegative() || in.MonthlyFixedCosts.IsNegative() {
		return domain.HourlyRateResult{}, domain.NewError(op, domain.ErrInvalidAmount, "income and fixed costs cannot be negative")
	}
	if !in.BillableHoursPerMonth.IsPositive() {
		return domain.HourlyRateResult{}, domain.NewError(op, domain.ErrInvalidSchedule, "billable hours per month must be greater than zero")
	}
	if in.VacationDaysPerYear.IsNegative() || in.VacationDaysPerYear.GreaterThan(decimal.NewFromInt(MaxVacationDays)) {
		return domain.HourlyRateResult{}, domain.NewError(op, domain.ErrInvalidSchedule, "vacation days per year must be between 0 and 60")
	}
	if in.ProfitMargin.IsNegative() || in.ProfitMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return domain.HourlyRateResult{}, domain.NewError(op, domain.ErrInvalidMargin, "profit margin must be at least 0 and below 1")
	}

	twelve := decimal.NewFromInt(12)
	annual := in.DesiredMonthlyIncome.Add(in.MonthlyFixedCosts).Mul(twelve)
	gross := in.BillableHoursPerMonth.Mul(twelve)
	// a vacation month is 30 days of the monthly billable hours
	vacation := in.VacationDaysPerYear.Div(decimal.NewFromInt(30)).Mul(in.BillableHoursPerMonth)
	net := gross.Sub(vacation)
	if !net.IsPositive() {
		return domain.HourlyRateResult{}, domain.NewError(op, domain.ErrInvalidSchedule, "no billable hours left after vacation")
	}

	base := annual.Div(net)
	return domain.HourlyRateResult{
		AnnualRevenueNeeded: annual,
		GrossHoursPerYear:   gross,
		VacationHours:       vacation,
		NetBillableHours:    net,
		VacationFactor:      gross.Div(net),
		BaseHourlyRate:      base,
		FinalHourlyRate:     base.Mul(decimal.NewFromInt(1).Add(in.ProfitMargin)),
	}, nil
}
