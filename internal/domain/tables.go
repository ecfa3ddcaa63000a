package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a progressive Simples Nacional annex
type TaxBracket struct {
	RevenueCeiling decimal.Decimal `yaml:"revenue_ceiling" json:"revenue_ceiling"`
	NominalRate    decimal.Decimal `yaml:"nominal_rate" json:"nominal_rate"`
	Deduction      decimal.Decimal `yaml:"deduction" json:"deduction"`
}

// BracketTable is an ordered annex, strictly increasing by ceiling
type BracketTable struct {
	Name     string       `yaml:"name" json:"name"`
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
}

// Validate checks the table is non-empty, sorted and has sane rates
func (t BracketTable) Validate() error {
	if len(t.Brackets) == 0 {
		return NewError("validate_table", ErrInvalidTable, fmt.Sprintf("table %q has no brackets", t.Name))
	}
	for i, b := range t.Brackets {
		if b.RevenueCeiling.LessThanOrEqual(decimal.Zero) {
			return NewError("validate_table", ErrInvalidTable,
				fmt.Sprintf("table %q bracket %d: ceiling must be positive", t.Name, i+1))
		}
		if b.NominalRate.IsNegative() || b.NominalRate.GreaterThan(decimal.NewFromInt(1)) {
			return NewError("validate_table", ErrInvalidTable,
				fmt.Sprintf("table %q bracket %d: nominal rate must be between 0 and 1", t.Name, i+1))
		}
		if b.Deduction.IsNegative() {
			return NewError("validate_table", ErrInvalidTable,
				fmt.Sprintf("table %q bracket %d: deduction cannot be negative", t.Name, i+1))
		}
		if i > 0 && !b.RevenueCeiling.GreaterThan(t.Brackets[i-1].RevenueCeiling) {
			return NewError("validate_table", ErrInvalidTable,
				fmt.Sprintf("table %q bracket %d: ceilings must be strictly increasing", t.Name, i+1))
		}
	}
	return nil
}

// Select returns the index and bracket applying to revenue: the first
// bracket whose ceiling is >= revenue, else the last one.
func (t BracketTable) Select(revenue decimal.Decimal) (int, TaxBracket) {
	for i, b := range t.Brackets {
		if b.RevenueCeiling.GreaterThanOrEqual(revenue) {
			return i, b
		}
	}
	last := len(t.Brackets) - 1
	return last, t.Brackets[last]
}

// FixedDueComponents is the allocation of the MEI monthly due
type FixedDueComponents struct {
	Pension      decimal.Decimal `yaml:"pension" json:"pension"`             // INSS
	StateTax     decimal.Decimal `yaml:"state_tax" json:"state_tax"`         // ICMS
	MunicipalTax decimal.Decimal `yaml:"municipal_tax" json:"municipal_tax"` // ISS
}

// Total is the monthly DAS amount
func (c FixedDueComponents) Total() decimal.Decimal {
	return c.Pension.Add(c.StateTax).Add(c.MunicipalTax)
}

// FixedDueYear holds the fixed dues published for one calendar year
type FixedDueYear struct {
	Year       int                                 `yaml:"year" json:"year"`
	Activities map[ActivityType]FixedDueComponents `yaml:"activities" json:"activities"`
}

// SimplesVersion is a set of annexes effective from Year onwards
type SimplesVersion struct {
	Year          int                     `yaml:"year" json:"year"`
	Annexes       map[string]BracketTable `yaml:"annexes" json:"annexes"`
	ActivityAnnex map[ActivityType]string `yaml:"activity_annex" json:"activity_annex"`
}

// PresumedProfitBase holds the presumption percentages for one activity
type PresumedProfitBase struct {
	IRPJBase       decimal.Decimal `yaml:"irpj_base" json:"irpj_base"`
	CSLLBase       decimal.Decimal `yaml:"csll_base" json:"csll_base"`
	ServiceTaxRate decimal.Decimal `yaml:"service_tax_rate" json:"service_tax_rate"`
}

// PresumedProfitRules contains the Lucro Presumido rates
type PresumedProfitRules struct {
	IRPJRate               decimal.Decimal                     `yaml:"irpj_rate" json:"irpj_rate"`
	IRPJSurchargeRate      decimal.Decimal                     `yaml:"irpj_surcharge_rate" json:"irpj_surcharge_rate"`
	IRPJSurchargeThreshold decimal.Decimal                     `yaml:"irpj_surcharge_threshold" json:"irpj_surcharge_threshold"` // annual presumed base
	CSLLRate               decimal.Decimal                     `yaml:"csll_rate" json:"csll_rate"`
	PISRate                decimal.Decimal                     `yaml:"pis_rate" json:"pis_rate"`
	COFINSRate             decimal.Decimal                     `yaml:"cofins_rate" json:"cofins_rate"`
	Activities             map[ActivityType]PresumedProfitBase `yaml:"activities" json:"activities"`
}
