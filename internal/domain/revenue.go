package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueRecord is the gross revenue declared for one month
type RevenueRecord struct {
	Month  int             `yaml:"month" json:"month"`
	Year   int             `yaml:"year" json:"year"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// NotAtRisk is reported as MonthsUntilCapped when revenue is not growing
const NotAtRisk = -1

// CapBand classifies accumulated revenue against the MEI cap
type CapBand string

const (
	BandWithinCap         CapBand = "within_cap"
	BandExcessTolerated   CapBand = "excess_tolerated"   // up to the tolerance band, excess is taxed separately
	BandExcessRetroactive CapBand = "excess_retroactive" // whole year moves to Simples Nacional
)

// CapStatus summarizes a year of revenue against the legal cap
type CapStatus struct {
	Year              int             `json:"year"`
	Cap               decimal.Decimal `json:"cap"`
	Accumulated       decimal.Decimal `json:"accumulated"`
	MonthsWithData    int             `json:"months_with_data"`
	MovingAverage     decimal.Decimal `json:"moving_average"`
	AnnualProjection  decimal.Decimal `json:"annual_projection"`
	PercentOfCap      decimal.Decimal `json:"percent_of_cap"` // 0-100
	MonthsUntilCapped int             `json:"months_until_capped"`
	AtRisk            bool            `json:"at_risk"`
	Exceeded          bool            `json:"exceeded"`
	Band              CapBand         `json:"band"`
}

// DueDate is the next DAS payment date relative to a given day
type DueDate struct {
	Today        time.Time `json:"today"`
	NextDueDate  time.Time `json:"next_due_date"`
	DaysUntilDue int       `json:"days_until_due"`
}

// AlertSubject is someone who may receive a pre-due reminder
type AlertSubject struct {
	ID            uuid.UUID  `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	LastAlertSent *time.Time `yaml:"last_alert_sent,omitempty" json:"last_alert_sent,omitempty"`
}

// CashFlowEntry is the money in and out of one month
type CashFlowEntry struct {
	Month   int             `yaml:"month" json:"month"`
	Inflow  decimal.Decimal `yaml:"inflow" json:"inflow"`
	Outflow decimal.Decimal `yaml:"outflow" json:"outflow"`
}

// CashFlowInput is a monthly cash plan starting from an opening balance
type CashFlowInput struct {
	OpeningBalance decimal.Decimal `yaml:"opening_balance" json:"opening_balance"`
	Entries        []CashFlowEntry `yaml:"entries" json:"entries"`
}

// CashFlowMonth is one projected month
type CashFlowMonth struct {
	Month   int             `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
	Balance decimal.Decimal `json:"balance"`
}

// CashFlowResult is the projected cash position month by month
type CashFlowResult struct {
	Months         []CashFlowMonth `json:"months"`
	TotalInflow    decimal.Decimal `json:"total_inflow"`
	TotalOutflow   decimal.Decimal `json:"total_outflow"`
	NetResult      decimal.Decimal `json:"net_result"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	LowestBalance  decimal.Decimal `json:"lowest_balance"`
	NegativeMonths []int           `json:"negative_months"`
}
