package calculation

import (
	"fmt"
	"sort"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectCashFlow runs the monthly entries, in month order, over the
// opening balance and reports where the balance dips below zero.
func ProjectCashFlow(in domain.CashFlowInput) (domain.CashFlowResult, error) {
	const op = "project_cash_flow"
	entries := append([]domain.CashFlowEntry(nil), in.Entries...)
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Month < 1 || e.Month > 12 {
			return domain.CashFlowResult{}, domain.NewError(op, domain.ErrInvalidRecord, fmt.Sprintf("month %d out of range", e.Month))
		}
		if seen[e.Month] {
			return domain.CashFlowResult{}, domain.NewError(op, domain.ErrInvalidRecord, fmt.Sprintf("duplicate entry for month %d", e.Month))
		}
		seen[e.Month] = true
		if e.Inflow.IsNegative() || e.Outflow.IsNegative() {
			return domain.CashFlowResult{}, domain.NewError(op, domain.ErrInvalidAmount,
				fmt.Sprintf("month %d: inflow and outflow cannot be negative", e.Month))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Month < entries[j].Month })

	result := domain.CashFlowResult{
		Months:         make([]domain.CashFlowMonth, 0, len(entries)),
		TotalInflow:    decimal.Zero,
		TotalOutflow:   decimal.Zero,
		ClosingBalance: in.OpeningBalance,
		LowestBalance:  in.OpeningBalance,
		NegativeMonths: []int{},
	}
	balance := in.OpeningBalance
	for _, e := range entries {
		net := e.Inflow.Sub(e.Outflow)
		balance = balance.Add(net)
		result.Months = append(result.Months, domain.CashFlowMonth{
			Month:   e.Month,
			Inflow:  e.Inflow,
			Outflow: e.Outflow,
			Net:     net,
			Balance: balance,
		})
		result.TotalInflow = result.TotalInflow.Add(e.Inflow)
		result.TotalOutflow = result.TotalOutflow.Add(e.Outflow)
		if balance.LessThan(result.LowestBalance) {
			result.LowestBalance = balance
		}
		if balance.IsNegative() {
			result.NegativeMonths = append(result.NegativeMonths, e.Month)
		}
	}
	result.NetResult = result.TotalInflow.Sub(result.TotalOutflow)
	result.ClosingBalance = balance
	return result, nil
}
