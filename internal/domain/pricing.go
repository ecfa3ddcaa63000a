package domain

import "github.com/shopspring/decimal"

// TaxResult is the outcome of applying a bracket table to a revenue
type TaxResult struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Tax           decimal.Decimal `json:"tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	BracketIndex  int             `json:"bracket_index"` // zero-based
}

// FixedDue is the MEI monthly due (DAS) for an activity and year
type FixedDue struct {
	Activity      ActivityType       `json:"activity"`
	RequestedYear int                `json:"requested_year"`
	SourceYear    int                `json:"source_year"`
	Total         decimal.Decimal    `json:"total"`
	Components    FixedDueComponents `json:"components"`
}

// IsReferenceValue reports whether the amounts come from another year than
// the one requested, so callers can show a "reference values" disclaimer.
func (fd FixedDue) IsReferenceValue() bool {
	return fd.SourceYear != fd.RequestedYear
}

// Annual is twelve monthly dues
func (fd FixedDue) Annual() decimal.Decimal {
	return fd.Total.Mul(decimal.NewFromInt(12))
}

// ProductPricingInput holds the cost components of one product unit
type ProductPricingInput struct {
	ProductCost        decimal.Decimal `json:"product_cost"`
	AllocatedFixedCost decimal.Decimal `json:"allocated_fixed_cost"`
	VariableExpenses   decimal.Decimal `json:"variable_expenses"`
	Margin             decimal.Decimal `json:"margin"` // fraction of price
}

// ProductPriceResult is the price that yields exactly the requested margin
type ProductPriceResult struct {
	CostTotal decimal.Decimal `json:"cost_total"`
	Price     decimal.Decimal `json:"price"`
	Markup    decimal.Decimal `json:"markup"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"`
}

// ServicePricingInput describes a job billed by the hour
type ServicePricingInput struct {
	Hours              decimal.Decimal `json:"hours"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	MaterialsCost      decimal.Decimal `json:"materials_cost"`
	AdditionalExpenses decimal.Decimal `json:"additional_expenses"`
	Margin             decimal.Decimal `json:"margin"`
}

// ServicePriceResult is the quoted price for a service job
type ServicePriceResult struct {
	LaborCost            decimal.Decimal `json:"labor_cost"`
	CostTotal            decimal.Decimal `json:"cost_total"`
	Price                decimal.Decimal `json:"price"`
	Profit               decimal.Decimal `json:"profit"`
	EffectiveHourlyPrice decimal.Decimal `json:"effective_hourly_price"`
	Margin               decimal.Decimal `json:"margin"`
}

// BreakEvenInput describes the cost structure of a product
type BreakEvenInput struct {
	FixedCost           decimal.Decimal  `json:"fixed_cost"`
	VariableCostPerUnit decimal.Decimal  `json:"variable_cost_per_unit"`
	Price               decimal.Decimal  `json:"price"`
	CurrentUnitsSold    *decimal.Decimal `json:"current_units_sold,omitempty"`
}

// BreakEvenResult is the sales volume at which revenue covers all costs
type BreakEvenResult struct {
	ContributionMargin        decimal.Decimal     `json:"contribution_margin"`
	ContributionMarginPercent decimal.Decimal     `json:"contribution_margin_percent"`
	BreakEvenUnits            decimal.Decimal     `json:"break_even_units"`
	BreakEvenRevenue          decimal.Decimal     `json:"break_even_revenue"`
	Current                   *CurrentPerformance `json:"current,omitempty"`
}

// CurrentPerformance compares actual sales with the break-even point
type CurrentPerformance struct {
	UnitsSold             decimal.Decimal `json:"units_sold"`
	Revenue               decimal.Decimal `json:"revenue"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	Profit                decimal.Decimal `json:"profit"`
	UnitsShortOfBreakEven decimal.Decimal `json:"units_short_of_break_even"`
	AboveBreakEven        bool            `json:"above_break_even"`
}

// HourlyRateInput describes the income goal of a freelancer
type HourlyRateInput struct {
	DesiredMonthlyIncome  decimal.Decimal `json:"desired_monthly_income"`
	MonthlyFixedCosts     decimal.Decimal `json:"monthly_fixed_costs"`
	BillableHoursPerMonth decimal.Decimal `json:"billable_hours_per_month"`
	VacationDaysPerYear   decimal.Decimal `json:"vacation_days_per_year"`
	ProfitMargin          decimal.Decimal `json:"profit_margin"`
}

// HourlyRateResult is the minimum hourly rate meeting the income goal
type HourlyRateResult struct {
	AnnualRevenueNeeded decimal.Decimal `json:"annual_revenue_needed"`
	GrossHoursPerYear   decimal.Decimal `json:"gross_hours_per_year"`
	VacationHours       decimal.Decimal `json:"vacation_hours"`
	NetBillableHours    decimal.Decimal `json:"net_billable_hours"`
	VacationFactor      decimal.Decimal `json:"vacation_factor"`
	BaseHourlyRate      decimal.Decimal `json:"base_hourly_rate"`
	FinalHourlyRate     decimal.Decimal `json:"final_hourly_rate"`
}

// RegimeCostResult is the yearly cost of one tax regime
type RegimeCostResult struct {
	Regime           Regime          `json:"regime"`
	AnnualCost       decimal.Decimal `json:"annual_cost"`
	MonthlyCost      decimal.Decimal `json:"monthly_cost"`
	PercentOfRevenue decimal.Decimal `json:"percent_of_revenue"` // fraction
	Recommended      bool            `json:"recommended"`
}
