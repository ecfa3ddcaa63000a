package calculation

import (
	"fmt"
	"slices"
	"time"

	"github.com/meicalc/meicalc/internal/domain"
)

// DueDayOfMonth is the day the monthly DAS is due
const DueDayOfMonth = 20

// NextDueDate returns the next DAS due date on or after today. Days are
// counted between calendar dates, so the due day itself yields zero.
func NextDueDate(today time.Time) domain.DueDate {
	day := calendarDate(today)
	due := time.Date(day.Year(), day.Month(), DueDayOfMonth, 0, 0, 0, 0, time.UTC)
	if day.Day() > DueDayOfMonth {
		// time.Date normalizes month 13 into January of the next year
		due = time.Date(day.Year(), day.Month()+1, DueDayOfMonth, 0, 0, 0, 0, time.UTC)
	}
	return domain.DueDate{
		Today:        day,
		NextDueDate:  due,
		DaysUntilDue: int(due.Sub(day).Hours() / 24),
	}
}

// calendarDate drops the clock and zone, keeping the date as seen in t's location
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameCalendarDate(a, b time.Time) bool {
	return calendarDate(a).Equal(calendarDate(b.In(a.Location())))
}

// AlertSchedule holds the days before the due date on which reminders go out
type AlertSchedule struct {
	Offsets []int
}

// DefaultAlertSchedule reminds five, three and one day before the due date
func DefaultAlertSchedule() AlertSchedule {
	return AlertSchedule{Offsets: []int{5, 3, 1}}
}

// NewAlertSchedule validates offsets and returns a schedule
func NewAlertSchedule(offsets []int) (AlertSchedule, error) {
	s := AlertSchedule{Offsets: slices.Clone(offsets)}
	if err := s.Validate(); err != nil {
		return AlertSchedule{}, err
	}
	return s, nil
}

// Validate checks every offset fits within a month
func (s AlertSchedule) Validate() error {
	if len(s.Offsets) == 0 {
		return domain.NewError("alert_schedule", domain.ErrInvalidSchedule, "at least one offset is required")
	}
	for _, o := range s.Offsets {
		if o < 0 || o >= 31 {
			return domain.NewError("alert_schedule", domain.ErrInvalidSchedule,
				fmt.Sprintf("offset %d must be between 0 and 30", o))
		}
	}
	return nil
}

// DueForAlert reports whether a reminder should be sent today. lastSent is
// the caller's record of the previous reminder; one already sent today
// suppresses another.
func (s AlertSchedule) DueForAlert(today time.Time, lastSent *time.Time) bool {
	if lastSent != nil && sameCalendarDate(today, *lastSent) {
		return false
	}
	return slices.Contains(s.Offsets, NextDueDate(today).DaysUntilDue)
}

// SelectAlertRecipients returns the subjects that should be reminded today,
// in input order.
func (s AlertSchedule) SelectAlertRecipients(today time.Time, subjects []domain.AlertSubject) []domain.AlertSubject {
	due := make([]domain.AlertSubject, 0, len(subjects))
	for _, subj := range subjects {
		if s.DueForAlert(today, subj.LastAlertSent) {
			due = append(due, subj)
		}
	}
	return due
}
