package calculation

import (
	"errors"
	"testing"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHourlyInput() domain.HourlyRateInput {
	return domain.HourlyRateInput{
		DesiredMonthlyIncome:  d("5000"),
		MonthlyFixedCosts:     d("500"),
		BillableHoursPerMonth: d("160"),
		VacationDaysPerYear:   d("30"),
		ProfitMargin:          d("0.2"),
	}
}

func TestComputeHourlyRate_Scenario(t *testing.T) {
	res, err := ComputeHourlyRate(validHourlyInput())
	require.NoError(t, err)

	assertDecimal(t, "66000.00", res.AnnualRevenueNeeded)
	assertDecimal(t, "1920.00", res.GrossHoursPerYear)
	assertDecimal(t, "160.00", res.VacationHours)
	assertDecimal(t, "1760.00", res.NetBillableHours)
	assertClose(t, d("1.0909"), res.VacationFactor, "0.0001")
	assertDecimal(t, "37.50", res.BaseHourlyRate)
	assertDecimal(t, "45.00", res.FinalHourlyRate)
}

func TestComputeHourlyRate_NoVacation(t *testing.T) {
	in := validHourlyInput()
	in.VacationDaysPerYear = d("0")
	in.ProfitMargin = d("0")

	res, err := ComputeHourlyRate(in)
	require.NoError(t, err)
	assert.True(t, res.VacationFactor.Equal(d("1")))
	assert.True(t, res.FinalHourlyRate.Equal(res.BaseHourlyRate))
}

func TestComputeHourlyRate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.HourlyRateInput)
		kind   error
	}{
		{"zero billable hours", func(in *domain.HourlyRateInput) { in.BillableHoursPerMonth = d("0") }, domain.ErrInvalidSchedule},
		{"negative vacation", func(in *domain.HourlyRateInput) { in.VacationDaysPerYear = d("-1") }, domain.ErrInvalidSchedule},
		{"vacation above 60", func(in *domain.HourlyRateInput) { in.VacationDaysPerYear = d("61") }, domain.ErrInvalidSchedule},
		{"vacation of a year", func(in *domain.HourlyRateInput) { in.VacationDaysPerYear = d("360") }, domain.ErrInvalidSchedule},
		{"margin of one", func(in *domain.HourlyRateInput) { in.ProfitMargin = d("1") }, domain.ErrInvalidMargin},
		{"negative margin", func(in *domain.HourlyRateInput) { in.ProfitMargin = d("-0.1") }, domain.ErrInvalidMargin},
		{"negative income", func(in *domain.HourlyRateInput) { in.DesiredMonthlyIncome = d("-1") }, domain.ErrInvalidAmount},
		{"negative fixed costs", func(in *domain.HourlyRateInput) { in.MonthlyFixedCosts = d("-1") }, domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validHourlyInput()
			tt.mutate(&in)
			_, err := ComputeHourlyRate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
		})
	}
}
