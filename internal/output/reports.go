package output

import (
	"fmt"
	"strconv"

	"github.com/meicalc/meicalc/internal/domain"
)

const dateLayout = "2006-01-02"

// TaxReport renders a bracket tax computation
func TaxReport(res domain.TaxResult, tableName string) *Report {
	r := &Report{Title: "Simples Nacional tax", Data: res}
	r.AddSection("").
		Add("Table", tableName).
		Add("Annual revenue", FormatCurrency(res.Revenue)).
		Add("Bracket", strconv.Itoa(res.BracketIndex+1)).
		Add("Effective rate", FormatRate(res.EffectiveRate)).
		Add("Tax due", FormatCurrency(res.Tax))
	return r
}

// FixedDueReport renders the MEI monthly due
func FixedDueReport(due domain.FixedDue) *Report {
	r := &Report{Title: "MEI monthly due (DAS)", Data: due}
	r.AddSection("").
		Add("Activity", due.Activity.String()).
		Add("Year", strconv.Itoa(due.RequestedYear)).
		Add("Pension (INSS)", FormatCurrency(due.Components.Pension)).
		Add("State tax (ICMS)", FormatCurrency(due.Components.StateTax)).
		Add("Municipal tax (ISS)", FormatCurrency(due.Components.MunicipalTax)).
		Add("Monthly total", FormatCurrency(due.Total)).
		Add("Yearly total", FormatCurrency(due.Annual()))
	if due.IsReferenceValue() {
		r.Notes = append(r.Notes, fmt.Sprintf("Values for %d are not published yet; showing %d as a reference.", due.RequestedYear, due.SourceYear))
	}
	return r
}

// ProductPriceReport renders a product price
func ProductPriceReport(res domain.ProductPriceResult) *Report {
	r := &Report{Title: "Product pricing", Data: res}
	r.AddSection("").
		Add("Total cost", FormatCurrency(res.CostTotal)).
		Add("Margin", FormatRate(res.Margin)).
		Add("Selling price", FormatCurrency(res.Price)).
		Add("Markup", res.Markup.StringFixed(3)+"x").
		Add("Profit per unit", FormatCurrency(res.Profit))
	return r
}

// ServicePriceReport renders a service quote
func ServicePriceReport(res domain.ServicePriceResult) *Report {
	r := &Report{Title: "Service pricing", Data: res}
	r.AddSection("").
		Add("Labor cost", FormatCurrency(res.LaborCost)).
		Add("Total cost", FormatCurrency(res.CostTotal)).
		Add("Margin", FormatRate(res.Margin)).
		Add("Quoted price", FormatCurrency(res.Price)).
		Add("Profit", FormatCurrency(res.Profit)).
		Add("Effective hourly price", FormatCurrency(res.EffectiveHourlyPrice))
	return r
}

// BreakEvenReport renders a break-even analysis
func BreakEvenReport(res domain.BreakEvenResult) *Report {
	r := &Report{Title: "Break-even analysis", Data: res}
	r.AddSection("").
		Add("Contribution margin", FormatCurrency(res.ContributionMargin)).
		Add("Contribution margin %", FormatRate(res.ContributionMarginPercent)).
		Add("Break-even units", res.BreakEvenUnits.StringFixed(2)).
		Add("Break-even revenue", FormatCurrency(res.BreakEvenRevenue))
	if c := res.Current; c != nil {
		r.AddSection("Current sales").
			Add("Units sold", c.UnitsSold.StringFixed(2)).
			Add("Revenue", FormatCurrency(c.Revenue)).
			Add("Total cost", FormatCurrency(c.TotalCost)).
			Add("Profit", FormatCurrency(c.Profit)).
			Add("Units short of break-even", c.UnitsShortOfBreakEven.StringFixed(2)).
			Add("Above break-even", FormatBool(c.AboveBreakEven))
	}
	return r
}

// HourlyRateReport renders the minimum hourly rate
func HourlyRateReport(res domain.HourlyRateResult) *Report {
	r := &Report{Title: "Hourly rate", Data: res}
	r.AddSection("").
		Add("Annual revenue needed", FormatCurrency(res.AnnualRevenueNeeded)).
		Add("Gross hours per year", res.GrossHoursPerYear.StringFixed(0)).
		Add("Vacation hours", res.VacationHours.StringFixed(0)).
		Add("Net billable hours", res.NetBillableHours.StringFixed(0)).
		Add("Vacation factor", res.VacationFactor.StringFixed(3)).
		Add("Base hourly rate", FormatCurrency(res.BaseHourlyRate)).
		Add("Final hourly rate", FormatCurrency(res.FinalHourlyRate))
	return r
}

// CapStatusReport renders revenue against the MEI cap
func CapStatusReport(s domain.CapStatus) *Report {
	r := &Report{Title: "MEI revenue cap", Data: s}
	until := "not at risk"
	if s.MonthsUntilCapped != domain.NotAtRisk {
		until = strconv.Itoa(s.MonthsUntilCapped)
	}
	r.AddSection("").
		Add("Year", strconv.Itoa(s.Year)).
		Add("Cap", FormatCurrency(s.Cap)).
		Add("Accumulated", FormatCurrency(s.Accumulated)).
		Add("Months with data", strconv.Itoa(s.MonthsWithData)).
		Add("Monthly average", FormatCurrency(s.MovingAverage)).
		Add("Annual projection", FormatCurrency(s.AnnualProjection)).
		Add("Share of cap", FormatPercentage(s.PercentOfCap)).
		Add("Months until capped", until).
		Add("Band", string(s.Band))
	switch {
	case s.Band == domain.BandExcessRetroactive:
		r.Notes = append(r.Notes, "Revenue is beyond the tolerance band: the whole year is taxed under Simples Nacional.")
	case s.Exceeded:
		r.Notes = append(r.Notes, "Revenue exceeded the cap: the excess is taxed and the business moves to ME next year.")
	case s.AtRisk:
		r.Notes = append(r.Notes, "At the current pace the annual projection exceeds the cap.")
	}
	return r
}

// DueDateReport renders the next DAS due date
func DueDateReport(dd domain.DueDate) *Report {
	r := &Report{Title: "Next DAS due date", Data: dd}
	r.AddSection("").
		Add("Today", dd.Today.Format(dateLayout)).
		Add("Due date", dd.NextDueDate.Format(dateLayout)).
		Add("Days until due", strconv.Itoa(dd.DaysUntilDue))
	return r
}

// AlertsReport lists who should be reminded today
func AlertsReport(dd domain.DueDate, offsets []int, due []domain.AlertSubject) *Report {
	r := &Report{Title: "DAS reminders", Data: due}
	r.AddSection("").
		Add("Due date", dd.NextDueDate.Format(dateLayout)).
		Add("Days until due", strconv.Itoa(dd.DaysUntilDue)).
		Add("Reminder offsets", fmt.Sprint(offsets)).
		Add("Reminders to send", strconv.Itoa(len(due)))
	if len(due) > 0 {
		t := &Table{Header: []string{"ID", "Name"}}
		for _, s := range due {
			t.Rows = append(t.Rows, []string{s.ID.String(), s.Name})
		}
		r.Table = t
	}
	return r
}

// CashFlowReport renders a month-by-month cash projection
func CashFlowReport(res domain.CashFlowResult) *Report {
	r := &Report{Title: "Cash flow projection", Data: res}
	r.AddSection("").
		Add("Total inflow", FormatCurrency(res.TotalInflow)).
		Add("Total outflow", FormatCurrency(res.TotalOutflow)).
		Add("Net result", FormatCurrency(res.NetResult)).
		Add("Closing balance", FormatCurrency(res.ClosingBalance)).
		Add("Lowest balance", FormatCurrency(res.LowestBalance))
	t := &Table{Header: []string{"Month", "Inflow", "Outflow", "Net", "Balance"}}
	for _, m := range res.Months {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(m.Month),
			m.Inflow.StringFixed(2),
			m.Outflow.StringFixed(2),
			m.Net.StringFixed(2),
			m.Balance.StringFixed(2),
		})
	}
	r.Table = t
	if len(res.NegativeMonths) > 0 {
		r.Notes = append(r.Notes, fmt.Sprintf("Balance is negative in months %v.", res.NegativeMonths))
	}
	return r
}
