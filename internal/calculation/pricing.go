package calculation

import (
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxMargin is the exclusive upper bound accepted for a pricing margin.
// Margins approaching 100% make the price diverge.
var MaxMargin = decimal.NewFromFloat(0.99)

// SolveProductPrice finds the price at which profit is exactly Margin of
// the price: price = costTotal / (1 - margin).
func SolveProductPrice(in domain.ProductPricingInput) (domain.ProductPriceResult, error) {
	const op = "solve_product_price"
	if err := validateMargin(op, in.Margin); err != nil {
		return domain.ProductPriceResult{}, err
	}
	for _, c := range []decimal.Decimal{in.ProductCost, in.AllocatedFixedCost, in.VariableExpenses} {
		if c.IsNegative() {
			return domain.ProductPriceResult{}, domain.NewError(op, domain.ErrInvalidAmount, "cost components cannot be negative")
		}
	}

	costTotal := in.ProductCost.Add(in.AllocatedFixedCost).Add(in.VariableExpenses)
	if costTotal.IsZero() {
		return domain.ProductPriceResult{}, domain.NewError(op, domain.ErrInvalidAmount, "total cost must be greater than zero")
	}

	price := priceForMargin(costTotal, in.Margin)
	return domain.ProductPriceResult{
		CostTotal: costTotal,
		Price:     price,
		Markup:    price.Div(costTotal),
		Profit:    price.Sub(costTotal),
		Margin:    in.Margin,
	}, nil
}

// SolveServicePrice prices an hourly job: labor plus materials and
// expenses, grossed up so the margin is a fraction of the final price.
func SolveServicePrice(in domain.ServicePricingInput) (domain.ServicePriceResult, error) {
	const op = "solve_service_price"
	if err := validateMargin(op, in.Margin); err != nil {
		return domain.ServicePriceResult{}, err
	}
	if !in.Hours.IsPositive() {
		return domain.ServicePriceResult{}, domain.NewError(op, domain.ErrInvalidHours, "hours must be greater than zero")
	}
	for _, c := range []decimal.Decimal{in.HourlyRate, in.MaterialsCost, in.AdditionalExpenses} {
		if c.IsNegative() {
			return domain.ServicePriceResult{}, domain.NewError(op, domain.ErrInvalidAmount, "rate and costs cannot be negative")
		}
	}

	labor := in.Hours.Mul(in.HourlyRate)
	costTotal := labor.Add(in.MaterialsCost).Add(in.AdditionalExpenses)
	if costTotal.IsZero() {
		return domain.ServicePriceResult{}, domain.NewError(op, domain.ErrInvalidAmount, "total cost must be greater than zero")
	}

	price := priceForMargin(costTotal, in.Margin)
	return domain.ServicePriceResult{
		LaborCost:            labor,
		CostTotal:            costTotal,
		Price:                price,
		Profit:               price.Sub(costTotal),
		EffectiveHourlyPrice: price.Div(in.Hours),
		Margin:               in.Margin,
	}, nil
}

func priceForMargin(cost, margin decimal.Decimal) decimal.Decimal {
	return cost.Div(decimal.NewFromInt(1).Sub(margin))
}

func validateMargin(op string, margin decimal.Decimal) error {
	if margin.IsNegative() || margin.GreaterThanOrEqual(MaxMargin) {
		return domain.NewError(op, domain.ErrInvalidMargin, "margin must be at least 0 and below 0.99")
	}
	return nil
}
