package calculation

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine runs the table-backed calculations. It only reads its tables, so
// one Engine can serve any number of concurrent callers.
type Engine struct {
	Tables *domain.RegulatoryTables
	Logger Logger
}

// NewEngine creates an engine over validated regulatory tables. Annex
// brackets are not re-validated per call.
func NewEngine(tables *domain.RegulatoryTables) *Engine {
	return &Engine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SimplesTax computes the Simples Nacional tax on an annual revenue using
// the annex the activity maps to in year.
func (e *Engine) SimplesTax(revenue decimal.Decimal, activity domain.ActivityType, year int) (domain.TaxResult, int, error) {
	if !activity.Valid() {
		return domain.TaxResult{}, 0, domain.NewError("simples_tax", domain.ErrInvalidActivity,
			fmt.Sprintf("unknown activity type %q", activity))
	}
	table, tableYear, err := e.Tables.SimplesTableFor(activity, year)
	if err != nil {
		return domain.TaxResult{}, 0, err
	}
	// Annexes are validated once when the tables load.
	res, err := computeTax(revenue, table)
	if err != nil {
		return domain.TaxResult{}, 0, err
	}
	return res, tableYear, nil
}

// PresumedProfitTax computes the annual Lucro Presumido charge: IRPJ (with
// surcharge) and CSLL on the presumed bases, PIS, COFINS and the flat
// service tax on gross revenue.
func (e *Engine) PresumedProfitTax(revenue decimal.Decimal, activity domain.ActivityType) (decimal.Decimal, error) {
	if revenue.IsNegative() {
		return decimal.Zero, domain.NewError("presumed_profit_tax", domain.ErrInvalidRevenue, "revenue cannot be negative")
	}
	rules := e.Tables.PresumedProfit
	base, ok := rules.Activities[activity]
	if !ok {
		return decimal.Zero, domain.NewError("presumed_profit_tax", domain.ErrInvalidActivity,
			fmt.Sprintf("no presumed profit bases for activity %q", activity))
	}

	irpjBase := revenue.Mul(base.IRPJBase)
	irpj := irpjBase.Mul(rules.IRPJRate)
	if irpjBase.GreaterThan(rules.IRPJSurchargeThreshold) {
		irpj = irpj.Add(irpjBase.Sub(rules.IRPJSurchargeThreshold).Mul(rules.IRPJSurchargeRate))
	}
	csll := revenue.Mul(base.CSLLBase).Mul(rules.CSLLRate)
	pis := revenue.Mul(rules.PISRate)
	cofins := revenue.Mul(rules.COFINSRate)
	serviceTax := revenue.Mul(base.ServiceTaxRate)

	return irpj.Add(csll).Add(pis).Add(cofins).Add(serviceTax), nil
}

// CapStatusFor computes the cap status using the activity's legal cap
func (e *Engine) CapStatusFor(activity domain.ActivityType, records []domain.RevenueRecord) (domain.CapStatus, error) {
	if !activity.Valid() {
		return domain.CapStatus{}, domain.NewError("cap_status", domain.ErrInvalidActivity,
			fmt.Sprintf("unknown activity type %q", activity))
	}
	return computeCapStatus(records, e.Tables.CapFor(activity), e.Tables.ExcessTolerance)
}
