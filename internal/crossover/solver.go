package crossover

import (
	"context"
	"fmt"

	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the revenue at which leaving MEI stops costing more.
// Effective rates are piecewise near bracket boundaries, so the cost curves
// are scanned at a fixed step instead of being inverted.
type Solver struct {
	Compare *compare.CompareEngine
	Options SolverOptions
}

// NewSolver creates a new crossover solver
func NewSolver(compareEngine *compare.CompareEngine, options SolverOptions) *Solver {
	return &Solver{
		Compare: compareEngine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(compareEngine *compare.CompareEngine) *Solver {
	return NewSolver(compareEngine, DefaultSolverOptions())
}

// FindCrossover scans revenues from From to To and returns the first one at
// which Simples Nacional or Lucro Presumido costs no more than the MEI cost
// extrapolated from the fixed due.
func (s *Solver) FindCrossover(ctx context.Context, req Request) (*Result, error) {
	result, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	curve, err := s.Compare.CurveFor(req.Activity, req.ReferenceYear)
	if err != nil {
		return nil, err
	}
	result.ForcedExitRevenue = curve.ToleratedCap()

	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}

	for r := result.From; r.LessThanOrEqual(result.To); r = r.Add(result.Step) {
		if result.Iterations >= maxIterations {
			result.Truncated = true
			s.Compare.CalcEngine.Logger.Warnf("crossover scan for %s stopped after %d iterations at %s",
				req.Activity, maxIterations, r.StringFixed(2))
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		costs, err := curve.At(r)
		if err != nil {
			return nil, fmt.Errorf("crossover at %s: %w", r.StringFixed(2), err)
		}
		regime, cost := costs.Cheapest(domain.RegimeSimples, domain.RegimeLucroPresumido)
		if cost.LessThanOrEqual(costs.MEI) {
			result.Found = true
			result.setPoint(costs, regime, cost)
			return result, nil
		}
	}

	costs, err := curve.At(result.To)
	if err != nil {
		return nil, fmt.Errorf("crossover at %s: %w", result.To.StringFixed(2), err)
	}
	regime, cost := costs.Cheapest(domain.RegimeSimples, domain.RegimeLucroPresumido)
	result.setPoint(costs, regime, cost)
	return result, nil
}

func (r *Result) setPoint(costs compare.RegimeCosts, regime domain.Regime, cost decimal.Decimal) {
	r.Revenue = costs.Revenue
	r.Regime = regime
	r.MEICost = costs.MEI
	r.AlternativeCost = cost
	r.Costs = costs
}

// resolve applies defaults and validates the scan range
func (s *Solver) resolve(req Request) (*Result, error) {
	if !req.Activity.Valid() {
		return nil, domain.NewError("find_crossover", domain.ErrInvalidActivity,
			fmt.Sprintf("unknown activity type %q", req.Activity))
	}

	meiCap := s.Compare.CalcEngine.Tables.CapFor(req.Activity)
	result := &Result{
		Activity:      req.Activity,
		ReferenceYear: req.ReferenceYear,
		From:          meiCap,
		To:            meiCap.Mul(s.upperMultiple()),
		Step:          s.Options.Step,
	}
	if req.From != nil {
		result.From = *req.From
	}
	if req.To != nil {
		result.To = *req.To
	}
	if req.Step != nil {
		result.Step = *req.Step
	}

	switch {
	case !result.Step.IsPositive():
		return nil, domain.NewError("find_crossover", domain.ErrInvalidRange, "step must be greater than zero")
	case result.From.IsNegative():
		return nil, domain.NewError("find_crossover", domain.ErrInvalidRange, "scan cannot start below zero")
	case result.To.LessThan(result.From):
		return nil, domain.NewError("find_crossover", domain.ErrInvalidRange,
			fmt.Sprintf("upper bound %s is below lower bound %s", result.To.StringFixed(2), result.From.StringFixed(2)))
	}
	return result, nil
}

func (s *Solver) upperMultiple() decimal.Decimal {
	if s.Options.UpperMultiple.GreaterThan(decimal.NewFromInt(1)) {
		return s.Options.UpperMultiple
	}
	return DefaultSolverOptions().UpperMultiple
}
