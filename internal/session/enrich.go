package session

import (
	"time"

	"cloud.google.com/go/civil"

	"sessionreport/internal/domain"
)

// WeekdayNames is the fixed Monday-first row order used by reports.
var WeekdayNames = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// PeriodOrder is the fixed display order of day periods.
var PeriodOrder = []domain.Period{
	domain.PeriodMorning,
	domain.PeriodAfternoon,
	domain.PeriodEvening,
	domain.PeriodLateNight,
}

// WeekdayIndex returns the Monday-first position of t's weekday in WeekdayNames.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// PeriodOf maps an hour of day to its period: [6,12) morning, [12,18) afternoon,
// [18,22) evening, anything else late-night.
func PeriodOf(hour int) domain.Period {
	switch {
	case hour >= 6 && hour < 12:
		return domain.PeriodMorning
	case hour >= 12 && hour < 18:
		return domain.PeriodAfternoon
	case hour >= 18 && hour < 22:
		return domain.PeriodEvening
	default:
		return domain.PeriodLateNight
	}
}

// Enrich derives the calendar attributes of s from its start time.
func Enrich(s domain.Session) domain.EnrichedSession {
	return domain.EnrichedSession{
		Session: s,
		Date:    civil.DateOf(s.StartTime),
		Weekday: WeekdayNames[WeekdayIndex(s.StartTime)],
		Hour:    s.StartTime.Hour(),
		Period:  PeriodOf(s.StartTime.Hour()),
	}
}

func EnrichAll(sessions []domain.Session) []domain.EnrichedSession {
	enriched := make([]domain.EnrichedSession, 0, len(sessions))
	for _, s := range sessions {
		enriched = append(enriched, Enrich(s))
	}
	return enriched
}
