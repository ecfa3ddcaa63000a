package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RegulatoryTables contains all static regulatory data used by the engine.
// It is loaded once from tables.yaml and only read afterwards.
type RegulatoryTables struct {
	Metadata        RegulatoryMetadata               `yaml:"metadata" json:"metadata"`
	LegalCap        decimal.Decimal                  `yaml:"legal_cap" json:"legal_cap"`
	ActivityCaps    map[ActivityType]decimal.Decimal `yaml:"activity_caps,omitempty" json:"activity_caps,omitempty"`
	ExcessTolerance decimal.Decimal                  `yaml:"excess_tolerance" json:"excess_tolerance"`
	FixedDues       []FixedDueYear                   `yaml:"fixed_dues" json:"fixed_dues"`
	Simples         []SimplesVersion                 `yaml:"simples_nacional" json:"simples_nacional"`
	PresumedProfit  PresumedProfitRules              `yaml:"lucro_presumido" json:"lucro_presumido"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	Version         string `yaml:"version" json:"version"`
	ReviewedThrough int    `yaml:"reviewed_through" json:"reviewed_through"`
	Description     string `yaml:"description" json:"description"`
}

// CapFor returns the annual MEI revenue cap for an activity
func (rt *RegulatoryTables) CapFor(activity ActivityType) decimal.Decimal {
	if c, ok := rt.ActivityCaps[activity]; ok && c.IsPositive() {
		return c
	}
	return rt.LegalCap
}

// ToleratedCap is the cap plus the excess tolerance band. Revenue above it
// forces a retroactive switch to Simples Nacional for the whole year.
func (rt *RegulatoryTables) ToleratedCap(activity ActivityType) decimal.Decimal {
	return rt.CapFor(activity).Mul(decimal.NewFromInt(1).Add(rt.ExcessTolerance))
}

// IsOutdated reports whether year is past the last year the tables were reviewed for
func (rt *RegulatoryTables) IsOutdated(year int) bool {
	return year > rt.Metadata.ReviewedThrough
}

// FixedDueFor looks up the fixed due of an activity for year. When the
// year is not published it falls back to the latest known year; the
// returned source year tells the caller which one was used.
func (rt *RegulatoryTables) FixedDueFor(activity ActivityType, year int) (FixedDueComponents, int, bool) {
	latest := -1
	for i, fd := range rt.FixedDues {
		if _, ok := fd.Activities[activity]; !ok {
			continue
		}
		if fd.Year == year {
			return fd.Activities[activity], year, true
		}
		if latest < 0 || fd.Year > rt.FixedDues[latest].Year {
			latest = i
		}
	}
	if latest < 0 {
		return FixedDueComponents{}, 0, false
	}
	fd := rt.FixedDues[latest]
	return fd.Activities[activity], fd.Year, true
}

// SimplesTableFor returns the Simples Nacional annex applying to activity
// in year: the newest version effective on or before year, or the oldest
// version when year predates all of them.
func (rt *RegulatoryTables) SimplesTableFor(activity ActivityType, year int) (BracketTable, int, error) {
	if len(rt.Simples) == 0 {
		return BracketTable{}, 0, NewError("simples_table", ErrInvalidTable, "no Simples Nacional versions loaded")
	}
	versions := append([]SimplesVersion(nil), rt.Simples...)
	sort.Slice(versions, func(i, j int) bool { return versions[i].Year < versions[j].Year })

	chosen := versions[0]
	for _, v := range versions {
		if v.Year <= year {
			chosen = v
		}
	}

	annex, ok := chosen.ActivityAnnex[activity]
	if !ok {
		return BracketTable{}, 0, NewError("simples_table", ErrInvalidTable,
			fmt.Sprintf("version %d has no annex mapped for activity %s", chosen.Year, activity))
	}
	table, ok := chosen.Annexes[annex]
	if !ok {
		return BracketTable{}, 0, NewError("simples_table", ErrInvalidTable,
			fmt.Sprintf("version %d references missing annex %q", chosen.Year, annex))
	}
	return table, chosen.Year, nil
}

// Validate checks the integrity of the whole table set
func (rt *RegulatoryTables) Validate() error {
	if !rt.LegalCap.IsPositive() {
		return NewError("validate_tables", ErrInvalidTable, "legal_cap must be positive")
	}
	for activity, c := range rt.ActivityCaps {
		if !activity.Valid() {
			return NewError("validate_tables", ErrInvalidTable, fmt.Sprintf("activity_caps: unknown activity %q", activity))
		}
		if !c.IsPositive() {
			return NewError("validate_tables", ErrInvalidTable, fmt.Sprintf("activity_caps: cap for %s must be positive", activity))
		}
	}
	if rt.ExcessTolerance.IsNegative() || rt.ExcessTolerance.GreaterThan(decimal.NewFromInt(1)) {
		return NewError("validate_tables", ErrInvalidTable, "excess_tolerance must be between 0 and 1")
	}

	if len(rt.FixedDues) == 0 {
		return NewError("validate_tables", ErrInvalidTable, "at least one fixed_dues year is required")
	}
	seenYears := map[int]bool{}
	for _, fd := range rt.FixedDues {
		if seenYears[fd.Year] {
			return NewError("validate_tables", ErrInvalidTable, fmt.Sprintf("fixed_dues: duplicate year %d", fd.Year))
		}
		seenYears[fd.Year] = true
		for _, activity := range AllActivities {
			c, ok := fd.Activities[activity]
			if !ok {
				return NewError("validate_tables", ErrInvalidTable,
					fmt.Sprintf("fixed_dues %d: missing activity %s", fd.Year, activity))
			}
			if c.Pension.IsNegative() || c.StateTax.IsNegative() || c.MunicipalTax.IsNegative() || !c.Total().IsPositive() {
				return NewError("validate_tables", ErrInvalidTable,
					fmt.Sprintf("fixed_dues %d: %s components must be non-negative with a positive total", fd.Year, activity))
			}
		}
	}

	if len(rt.Simples) == 0 {
		return NewError("validate_tables", ErrInvalidTable, "at least one simples_nacional version is required")
	}
	for _, v := range rt.Simples {
		for name, table := range v.Annexes {
			if table.Name == "" {
				table.Name = name
			}
			if err := table.Validate(); err != nil {
				return fmt.Errorf("simples_nacional %d annex %s: %w", v.Year, name, err)
			}
		}
		for _, activity := range AllActivities {
			annex, ok := v.ActivityAnnex[activity]
			if !ok {
				return NewError("validate_tables", ErrInvalidTable,
					fmt.Sprintf("simples_nacional %d: no annex mapped for %s", v.Year, activity))
			}
			if _, ok := v.Annexes[annex]; !ok {
				return NewError("validate_tables", ErrInvalidTable,
					fmt.Sprintf("simples_nacional %d: %s maps to missing annex %q", v.Year, activity, annex))
			}
		}
	}

	pp := rt.PresumedProfit
	for name, rate := range map[string]decimal.Decimal{
		"irpj_rate":           pp.IRPJRate,
		"irpj_surcharge_rate": pp.IRPJSurchargeRate,
		"csll_rate":           pp.CSLLRate,
		"pis_rate":            pp.PISRate,
		"cofins_rate":         pp.COFINSRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return NewError("validate_tables", ErrInvalidTable, fmt.Sprintf("lucro_presumido.%s must be between 0 and 1", name))
		}
	}
	if pp.IRPJSurchargeThreshold.IsNegative() {
		return NewError("validate_tables", ErrInvalidTable, "lucro_presumido.irpj_surcharge_threshold cannot be negative")
	}
	for _, activity := range AllActivities {
		base, ok := pp.Activities[activity]
		if !ok {
			return NewError("validate_tables", ErrInvalidTable, fmt.Sprintf("lucro_presumido: missing activity %s", activity))
		}
		for _, f := range []decimal.Decimal{base.IRPJBase, base.CSLLBase, base.ServiceTaxRate} {
			if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
				return NewError("validate_tables", ErrInvalidTable,
					fmt.Sprintf("lucro_presumido %s: bases and rates must be between 0 and 1", activity))
			}
		}
	}

	return nil
}
