package calculation

import (
	"fmt"

	"github.com/meicalc/meicalc/internal/domain"
)

// ComputeFixedDue looks up the MEI monthly due for an activity. When year
// is not in the table the latest known year is used and the result's
// SourceYear says so; this never fails for a known activity.
func (e *Engine) ComputeFixedDue(activity domain.ActivityType, year int) (domain.FixedDue, error) {
	if !activity.Valid() {
		return domain.FixedDue{}, domain.NewError("compute_fixed_due", domain.ErrInvalidActivity,
			fmt.Sprintf("unknown activity type %q", activity))
	}

	components, sourceYear, ok := e.Tables.FixedDueFor(activity, year)
	if !ok {
		// Validate guarantees every activity in every year, so this only
		// happens with hand-built tables.
		return domain.FixedDue{}, domain.NewError("compute_fixed_due", domain.ErrInvalidTable,
			fmt.Sprintf("no fixed due published for activity %s", activity))
	}

	due := domain.FixedDue{
		Activity:      activity,
		RequestedYear: year,
		SourceYear:    sourceYear,
		Total:         components.Total(),
		Components:    components,
	}
	if due.IsReferenceValue() {
		e.Logger.Warnf("fixed due for %d not published, using %d reference values for %s", year, sourceYear, activity)
	}
	return due, nil
}
