package session

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"sessionreport/internal/domain"
)

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		hour int
		want domain.Period
	}{
		{0, domain.PeriodLateNight},
		{5, domain.PeriodLateNight},
		{6, domain.PeriodMorning},
		{11, domain.PeriodMorning},
		{12, domain.PeriodAfternoon},
		{17, domain.PeriodAfternoon},
		{18, domain.PeriodEvening},
		{21, domain.PeriodEvening},
		{22, domain.PeriodLateNight},
		{23, domain.PeriodLateNight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PeriodOf(tt.hour), "hour %d", tt.hour)
	}
}

func TestWeekdayIndex(t *testing.T) {
	monday := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, i, WeekdayIndex(day))
		assert.Equal(t, day.Weekday().String(), WeekdayNames[WeekdayIndex(day)])
	}
}

func TestEnrich(t *testing.T) {
	s := domain.Session{
		Merchant:  merchant,
		StartTime: time.Date(2025, 3, 16, 22, 45, 0, 0, time.UTC), // Sunday
		EndTime:   time.Date(2025, 3, 16, 22, 52, 0, 0, time.UTC),
		Amount:    dec("3.4"),
	}

	got := Enrich(s)

	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 16}, got.Date)
	assert.Equal(t, "Sunday", got.Weekday)
	assert.Equal(t, 22, got.Hour)
	assert.Equal(t, domain.PeriodLateNight, got.Period)
	assert.Equal(t, s, got.Session)
}

func TestEnrichAll(t *testing.T) {
	sessions := []domain.Session{sess("07:10", "07:20", "2"), sess("13:00", "13:05", "1")}

	got := EnrichAll(sessions)

	assert.Len(t, got, 2)
	assert.Equal(t, domain.PeriodMorning, got[0].Period)
	assert.Equal(t, domain.PeriodAfternoon, got[1].Period)
	assert.Equal(t, "Monday", got[1].Weekday)
}
