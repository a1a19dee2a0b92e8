package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is a single cleaned payment record from the ingestion layer.
type Transaction struct {
	Time     time.Time       `json:"time"`
	Amount   decimal.Decimal `json:"amount"` // Always positive
	Merchant string          `json:"merchant"`
}

// Session is a burst of transactions at one merchant that represents one real-world usage event.
type Session struct {
	Merchant        string          `json:"merchant"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Amount          decimal.Decimal `json:"amount"`
	DurationMinutes float64         `json:"duration_minutes"`
}

// Period is a coarse day segment derived from the hour a session starts.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodLateNight Period = "late-night"
)

// EnrichedSession is a Session plus calendar attributes derived from its start time.
type EnrichedSession struct {
	Session
	Date    civil.Date `json:"date"`
	Weekday string     `json:"weekday"`
	Hour    int        `json:"hour"`
	Period  Period     `json:"period"`
}
