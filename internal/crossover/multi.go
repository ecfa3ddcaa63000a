package crossover

import (
	"context"
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
)

// FindForAllActivities runs a default scan for every activity
func (s *Solver) FindForAllActivities(ctx context.Context, referenceYear int) (*MultiResult, error) {
	multi := &MultiResult{ReferenceYear: referenceYear}
	for _, activity := range domain.AllActivities {
		res, err := s.FindCrossover(ctx, Request{Activity: activity, ReferenceYear: referenceYear})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", activity, err)
		}
		multi.Results = append(multi.Results, *res)
	}
	multi.Recommendations = s.generateRecommendations(multi)
	return multi, nil
}

func (s *Solver) generateRecommendations(m *MultiResult) []string {
	recommendations := []string{}
	for _, r := range m.Results {
		switch {
		case r.Found:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: plan the move to %s before yearly revenue reaches R$ %s",
					r.Activity, r.Regime, r.Revenue.StringFixed(2)))
		case r.Truncated:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: scan stopped after %d points; widen the step to cover the range", r.Activity, r.Iterations))
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: MEI stays cheapest up to R$ %s, but must be left above R$ %s",
					r.Activity, r.To.StringFixed(2), r.ForcedExitRevenue.StringFixed(2)))
		}
	}
	return recommendations
}
