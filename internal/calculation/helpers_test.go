package calculation

import (
	"testing"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// assertDecimal compares at two decimal places, the way results are displayed
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

// assertClose checks |want - got| <= tol
func assertClose(t *testing.T, want, got decimal.Decimal, tol string) {
	t.Helper()
	assert.True(t, want.Sub(got).Abs().LessThanOrEqual(d(tol)), "want %s got %s", want, got)
}

func annexI() domain.BracketTable {
	return domain.BracketTable{
		Name: "annex_i",
		Brackets: []domain.TaxBracket{
			{RevenueCeiling: d("180000"), NominalRate: d("0.04"), Deduction: d("0")},
			{RevenueCeiling: d("360000"), NominalRate: d("0.073"), Deduction: d("5940")},
			{RevenueCeiling: d("720000"), NominalRate: d("0.095"), Deduction: d("13860")},
			{RevenueCeiling: d("1800000"), NominalRate: d("0.107"), Deduction: d("22500")},
			{RevenueCeiling: d("3600000"), NominalRate: d("0.143"), Deduction: d("87300")},
			{RevenueCeiling: d("4800000"), NominalRate: d("0.19"), Deduction: d("378000")},
		},
	}
}

func annexIII() domain.BracketTable {
	return domain.BracketTable{
		Name: "annex_iii",
		Brackets: []domain.TaxBracket{
			{RevenueCeiling: d("180000"), NominalRate: d("0.06"), Deduction: d("0")},
			{RevenueCeiling: d("360000"), NominalRate: d("0.112"), Deduction: d("9360")},
			{RevenueCeiling: d("720000"), NominalRate: d("0.135"), Deduction: d("17640")},
			{RevenueCeiling: d("1800000"), NominalRate: d("0.16"), Deduction: d("35640")},
			{RevenueCeiling: d("3600000"), NominalRate: d("0.21"), Deduction: d("125640")},
			{RevenueCeiling: d("4800000"), NominalRate: d("0.33"), Deduction: d("648000")},
		},
	}
}

func dues(pension string) map[domain.ActivityType]domain.FixedDueComponents {
	return map[domain.ActivityType]domain.FixedDueComponents{
		domain.ActivityCommerce: {Pension: d(pension), StateTax: d("1"), MunicipalTax: d("0")},
		domain.ActivityIndustry: {Pension: d(pension), StateTax: d("1"), MunicipalTax: d("0")},
		domain.ActivityServices: {Pension: d(pension), StateTax: d("0"), MunicipalTax: d("5")},
		domain.ActivityMixed:    {Pension: d(pension), StateTax: d("1"), MunicipalTax: d("5")},
		domain.ActivityTrucker:  {Pension: d(pension).Mul(d("2.4")), StateTax: d("1"), MunicipalTax: d("0")},
	}
}

// testTables is a small but complete table set
func testTables() *domain.RegulatoryTables {
	return &domain.RegulatoryTables{
		Metadata:        domain.RegulatoryMetadata{Version: "test", ReviewedThrough: 2025},
		LegalCap:        d("81000"),
		ActivityCaps:    map[domain.ActivityType]decimal.Decimal{domain.ActivityTrucker: d("251600")},
		ExcessTolerance: d("0.20"),
		FixedDues: []domain.FixedDueYear{
			{Year: 2024, Activities: dues("70.60")},
			{Year: 2025, Activities: dues("75.90")},
		},
		Simples: []domain.SimplesVersion{{
			Year:    2018,
			Annexes: map[string]domain.BracketTable{"annex_i": annexI(), "annex_iii": annexIII()},
			ActivityAnnex: map[domain.ActivityType]string{
				domain.ActivityCommerce: "annex_i",
				domain.ActivityIndustry: "annex_i",
				domain.ActivityServices: "annex_iii",
				domain.ActivityMixed:    "annex_iii",
				domain.ActivityTrucker:  "annex_iii",
			},
		}},
		PresumedProfit: domain.PresumedProfitRules{
			IRPJRate:               d("0.15"),
			IRPJSurchargeRate:      d("0.10"),
			IRPJSurchargeThreshold: d("240000"),
			CSLLRate:               d("0.09"),
			PISRate:                d("0.0065"),
			COFINSRate:             d("0.03"),
			Activities: map[domain.ActivityType]domain.PresumedProfitBase{
				domain.ActivityCommerce: {IRPJBase: d("0.08"), CSLLBase: d("0.12"), ServiceTaxRate: d("0")},
				domain.ActivityIndustry: {IRPJBase: d("0.08"), CSLLBase: d("0.12"), ServiceTaxRate: d("0")},
				domain.ActivityServices: {IRPJBase: d("0.32"), CSLLBase: d("0.32"), ServiceTaxRate: d("0.05")},
				domain.ActivityMixed:    {IRPJBase: d("0.32"), CSLLBase: d("0.32"), ServiceTaxRate: d("0.05")},
				domain.ActivityTrucker:  {IRPJBase: d("0.08"), CSLLBase: d("0.12"), ServiceTaxRate: d("0")},
			},
		},
	}
}

// TestLogger records formatted messages by level
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
