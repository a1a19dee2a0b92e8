package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Summary holds the scalar statistics over all sessions of a run.
type Summary struct {
	SessionCount  int             `json:"session_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	MedianAmount  decimal.Decimal `json:"median_amount"`
}

// Heatmap counts sessions per (weekday, hour) pair.
// Matrix has one row per entry in Weekdays and one column per entry in Hours.
type Heatmap struct {
	Hours    []int    `json:"hours"`
	Weekdays []string `json:"weekdays"`
	Matrix   [][]int  `json:"matrix"`
}

// PeriodHistogram counts sessions per day period.
type PeriodHistogram struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// AmountHistogram is a fixed-width histogram of session amounts.
// len(Edges) == len(Counts)+1.
type AmountHistogram struct {
	Counts []int     `json:"counts"`
	Edges  []float64 `json:"edges"`
}

// SessionRef identifies a single session in the report.
type SessionRef struct {
	Merchant string          `json:"merchant"`
	Time     time.Time       `json:"time"`
	Amount   decimal.Decimal `json:"amount"`
}

// DayGap is the longest stretch between two consecutive activity dates.
type DayGap struct {
	Days  int        `json:"days"`
	Start civil.Date `json:"start_date"`
	End   civil.Date `json:"end_date"`
}

// AggregateResult is everything the presentation layer needs to render a report.
type AggregateResult struct {
	Summary            Summary         `json:"summary"`
	MinHour            int             `json:"min_hour"`
	MaxHour            int             `json:"max_hour"`
	Heatmap            Heatmap         `json:"heatmap"`
	Period             PeriodHistogram `json:"period"`
	AmountDistribution AmountHistogram `json:"amount_distribution"`
	MaxSession         SessionRef      `json:"max_session"`
	MinSession         SessionRef      `json:"min_session"`
	LongestGap         *DayGap         `json:"longest_gap"` // nil when fewer than two activity dates
}

// Report is the top-level result of one analysis run.
type Report struct {
	RunID     string          `json:"run_id"`
	Merchants []string        `json:"merchants"`
	Result    AggregateResult `json:"result"`
}

// MerchantListing lists the merchants found in an input file and the ones selected by default.
type MerchantListing struct {
	Merchants []string `json:"merchants"`
	Defaults  []string `json:"defaults"`
}
