package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		wantDue  time.Time
		wantDays int
	}{
		{"early in month", date(2026, time.March, 1), date(2026, time.March, 20), 19},
		{"due day", date(2026, time.March, 20), date(2026, time.March, 20), 0},
		{"day after due", date(2026, time.March, 21), date(2026, time.April, 20), 30},
		{"february short month", date(2026, time.February, 21), date(2026, time.March, 20), 27},
		{"december rolls into january", date(2026, time.December, 21), date(2027, time.January, 20), 30},
		{"new year's eve", date(2026, time.December, 31), date(2027, time.January, 20), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.today)
			assert.True(t, got.NextDueDate.Equal(tt.wantDue), "due %s", got.NextDueDate)
			assert.Equal(t, tt.wantDays, got.DaysUntilDue)
		})
	}
}

func TestNextDueDate_IgnoresClock(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	lateEvening := time.Date(2026, time.March, 20, 23, 30, 0, 0, saoPaulo)

	got := NextDueDate(lateEvening)
	assert.Equal(t, 0, got.DaysUntilDue)
	assert.True(t, got.NextDueDate.Equal(got.Today))
}

func TestAlertSchedule_DueForAlert(t *testing.T) {
	schedule := DefaultAlertSchedule()

	assert.True(t, schedule.DueForAlert(date(2026, time.March, 15), nil), "5 days before")
	assert.False(t, schedule.DueForAlert(date(2026, time.March, 16), nil), "4 days before")
	assert.True(t, schedule.DueForAlert(date(2026, time.March, 17), nil), "3 days before")
	assert.True(t, schedule.DueForAlert(date(2026, time.March, 19), nil), "1 day before")
	assert.False(t, schedule.DueForAlert(date(2026, time.March, 20), nil), "due day not in offsets")

	today := date(2026, time.March, 17)
	sentEarlierToday := today.Add(8 * time.Hour)
	assert.False(t, schedule.DueForAlert(today, &sentEarlierToday))

	sentYesterday := today.Add(-time.Hour)
	assert.True(t, schedule.DueForAlert(today, &sentYesterday))
}

func TestAlertSchedule_SelectAlertRecipients(t *testing.T) {
	schedule := DefaultAlertSchedule()
	today := date(2026, time.March, 15).Add(9 * time.Hour)
	alreadySent := today.Add(-2 * time.Hour)
	lastMonth := date(2026, time.February, 15)

	subjects := []domain.AlertSubject{
		{ID: uuid.New(), Name: "Ana"},
		{ID: uuid.New(), Name: "Bruno", LastAlertSent: &alreadySent},
		{ID: uuid.New(), Name: "Carla", LastAlertSent: &lastMonth},
	}

	got := schedule.SelectAlertRecipients(today, subjects)
	require.Len(t, got, 2)
	assert.Equal(t, subjects[0].ID, got[0].ID)
	assert.Equal(t, subjects[2].ID, got[1].ID)

	assert.Empty(t, schedule.SelectAlertRecipients(date(2026, time.March, 16), subjects))
}

func TestNewAlertSchedule(t *testing.T) {
	s, err := NewAlertSchedule([]int{7, 0})
	require.NoError(t, err)
	assert.True(t, s.DueForAlert(date(2026, time.March, 20), nil))

	for _, offsets := range [][]int{nil, {-1}, {31}, {5, 40}} {
		_, err := NewAlertSchedule(offsets)
		assert.True(t, errors.Is(err, domain.ErrInvalidSchedule), "offsets %v", offsets)
	}
}
