package compare

import (
	"fmt"
	"sort"

	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine compares the yearly cost of the tax regimes available to a
// small business. It only reads the calculation engine, so one instance is
// safe for concurrent use.
type CompareEngine struct {
	CalcEngine *calculation.Engine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// Compare prices every eligible regime at annualRevenue and flags the
// cheapest one. MEI is only offered up to the activity's cap.
func (ce *CompareEngine) Compare(annualRevenue decimal.Decimal, activity domain.ActivityType, referenceYear int) (*Comparison, error) {
	if !annualRevenue.IsPositive() {
		return nil, domain.NewError("compare_regimes", domain.ErrInvalidRevenue, "annual revenue must be greater than zero")
	}

	costs, err := ce.CostsAt(annualRevenue, activity, referenceYear)
	if err != nil {
		return nil, err
	}

	regimes := []domain.Regime{domain.RegimeSimples, domain.RegimeLucroPresumido}
	if costs.MEIEligible {
		regimes = append([]domain.Regime{domain.RegimeMEI}, regimes...)
	}
	recommended, _ := costs.Cheapest(regimes...)

	twelve := decimal.NewFromInt(12)
	comparison := &Comparison{
		AnnualRevenue:    annualRevenue,
		Activity:         activity,
		ReferenceYear:    referenceYear,
		Recommended:      recommended,
		SimplesTableYear: costs.SimplesTableYear,
		OutdatedTables:   ce.CalcEngine.Tables.IsOutdated(referenceYear),
	}
	if costs.MEIEligible {
		comparison.FixedDueSourceYear = costs.FixedDue.SourceYear
		comparison.OutdatedTables = comparison.OutdatedTables || costs.FixedDue.IsReferenceValue()
	}
	for _, r := range regimes {
		cost := costs.CostOf(r)
		comparison.Results = append(comparison.Results, domain.RegimeCostResult{
			Regime:           r,
			AnnualCost:       cost,
			MonthlyCost:      cost.Div(twelve),
			PercentOfRevenue: cost.Div(annualRevenue),
			Recommended:      r == recommended,
		})
	}
	sort.SliceStable(comparison.Results, func(i, j int) bool {
		return comparison.Results[i].Regime.Preference() < comparison.Results[j].Regime.Preference()
	})

	if comparison.OutdatedTables {
		ce.CalcEngine.Logger.Warnf("regulatory tables reviewed through %d, comparing for %d",
			ce.CalcEngine.Tables.Metadata.ReviewedThrough, referenceYear)
	}
	comparison.Recommendations = GenerateRecommendations(comparison)
	return comparison, nil
}

// CostsAt computes the annual cost of every regime at revenue, including
// the MEI cost extrapolated past the cap.
func (ce *CompareEngine) CostsAt(revenue decimal.Decimal, activity domain.ActivityType, referenceYear int) (RegimeCosts, error) {
	curve, err := ce.CurveFor(activity, referenceYear)
	if err != nil {
		return RegimeCosts{}, err
	}
	return curve.At(revenue)
}

// CostCurve prices the regimes of one activity and year at any revenue.
// The fixed due is resolved once, so scanning many revenues reports a
// reference-value fallback a single time.
type CostCurve struct {
	engine    *calculation.Engine
	activity  domain.ActivityType
	year      int
	due       domain.FixedDue
	cap       decimal.Decimal
	tolerated decimal.Decimal
}

// CurveFor resolves the fixed due and caps of activity for referenceYear
func (ce *CompareEngine) CurveFor(activity domain.ActivityType, referenceYear int) (*CostCurve, error) {
	if !activity.Valid() {
		return nil, domain.NewError("regime_costs", domain.ErrInvalidActivity,
			fmt.Sprintf("unknown activity type %q", activity))
	}
	engine := ce.CalcEngine
	due, err := engine.ComputeFixedDue(activity, referenceYear)
	if err != nil {
		return nil, err
	}
	return &CostCurve{
		engine:    engine,
		activity:  activity,
		year:      referenceYear,
		due:       due,
		cap:       engine.Tables.CapFor(activity),
		tolerated: engine.Tables.ToleratedCap(activity),
	}, nil
}

// FixedDue returns the monthly due the curve extrapolates from
func (cc *CostCurve) FixedDue() domain.FixedDue {
	return cc.due
}

// Cap returns the activity's MEI revenue cap
func (cc *CostCurve) Cap() decimal.Decimal {
	return cc.cap
}

// ToleratedCap returns the revenue above which MEI is lost retroactively
func (cc *CostCurve) ToleratedCap() decimal.Decimal {
	return cc.tolerated
}

// At prices every regime at revenue. MEI is the yearly fixed due plus the
// excess over the cap taxed at the Simples effective rate, continued past
// the tolerance band; MEIBand tells whether that revenue could stay MEI.
func (cc *CostCurve) At(revenue decimal.Decimal) (RegimeCosts, error) {
	if revenue.IsNegative() {
		return RegimeCosts{}, domain.NewError("regime_costs", domain.ErrInvalidRevenue, "revenue cannot be negative")
	}
	simples, tableYear, err := cc.engine.SimplesTax(revenue, cc.activity, cc.year)
	if err != nil {
		return RegimeCosts{}, err
	}
	presumed, err := cc.engine.PresumedProfitTax(revenue, cc.activity)
	if err != nil {
		return RegimeCosts{}, err
	}

	excess := decimal.Max(decimal.Zero, revenue.Sub(cc.cap))
	costs := RegimeCosts{
		Revenue:          revenue,
		MEI:              cc.due.Annual().Add(excess.Mul(simples.EffectiveRate)),
		MEIEligible:      revenue.LessThanOrEqual(cc.cap),
		Simples:          simples.Tax,
		SimplesRate:      simples.EffectiveRate,
		LucroPresumido:   presumed,
		FixedDue:         cc.due,
		SimplesTableYear: tableYear,
	}
	switch {
	case costs.MEIEligible:
		costs.MEIBand = domain.BandWithinCap
	case revenue.LessThanOrEqual(cc.tolerated):
		costs.MEIBand = domain.BandExcessTolerated
	default:
		costs.MEIBand = domain.BandExcessRetroactive
	}
	return costs, nil
}
