// Package stats computes the summary statistics and chart aggregates of a report
// from enriched sessions.
package stats

import (
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"sessionreport/internal/domain"
	"sessionreport/internal/session"
)

// DefaultBinWidth is used when Options.BinWidth is not positive.
var DefaultBinWidth = decimal.RequireFromString("0.1")

// Options configures one aggregation run.
type Options struct {
	// ActiveHourFloor excludes sessions starting before this hour.
	ActiveHourFloor int
	// BinWidth is the width of the amount histogram bins.
	BinWidth decimal.Decimal
}

// Aggregate computes the report statistics over all sessions of a run, which may
// pool several merchants. Sessions keep their order: ties on the extremes resolve
// to the first occurrence.
func Aggregate(sessions []domain.EnrichedSession, opts Options) (*domain.AggregateResult, error) {
	active := FilterActive(sessions, opts.ActiveHourFloor)
	if len(active) == 0 {
		return nil, fmt.Errorf("%d sessions before hour %d: %w", len(sessions), opts.ActiveHourFloor, domain.ErrEmptyResult)
	}

	binWidth := opts.BinWidth
	if !binWidth.IsPositive() {
		binWidth = DefaultBinWidth
	}

	heatmap, minHour, maxHour := buildHeatmap(active)
	maxSession, minSession := findExtremes(active)

	return &domain.AggregateResult{
		Summary:            summarize(active),
		MinHour:            minHour,
		MaxHour:            maxHour,
		Heatmap:            heatmap,
		Period:             periodHistogram(active),
		AmountDistribution: amountHistogram(active, binWidth),
		MaxSession:         maxSession,
		MinSession:         minSession,
		LongestGap:         longestGap(active),
	}, nil
}

// FilterActive drops sessions whose start hour is below floor.
func FilterActive(sessions []domain.EnrichedSession, floor int) []domain.EnrichedSession {
	active := make([]domain.EnrichedSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Hour >= floor {
			active = append(active, s)
		}
	}
	return active
}

func summarize(sessions []domain.EnrichedSession) domain.Summary {
	amounts := make([]decimal.Decimal, 0, len(sessions))
	total := decimal.Zero
	for _, s := range sessions {
		amounts = append(amounts, s.Amount)
		total = total.Add(s.Amount)
	}
	count := decimal.NewFromInt(int64(len(sessions)))

	return domain.Summary{
		SessionCount:  len(sessions),
		TotalAmount:   total,
		AverageAmount: total.Div(count),
		MedianAmount:  median(amounts),
	}
}

func median(amounts []decimal.Decimal) decimal.Decimal {
	sorted := slices.Clone(amounts)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func buildHeatmap(sessions []domain.EnrichedSession) (domain.Heatmap, int, int) {
	minHour, maxHour := sessions[0].Hour, sessions[0].Hour
	for _, s := range sessions[1:] {
		minHour = min(minHour, s.Hour)
		maxHour = max(maxHour, s.Hour)
	}

	hours := make([]int, 0, maxHour-minHour+1)
	for h := minHour; h <= maxHour; h++ {
		hours = append(hours, h)
	}

	matrix := make([][]int, len(session.WeekdayNames))
	for i := range matrix {
		matrix[i] = make([]int, len(hours))
	}
	for _, s := range sessions {
		matrix[session.WeekdayIndex(s.StartTime)][s.Hour-minHour]++
	}

	return domain.Heatmap{
		Hours:    hours,
		Weekdays: slices.Clone(session.WeekdayNames),
		Matrix:   matrix,
	}, minHour, maxHour
}

func periodHistogram(sessions []domain.EnrichedSession) domain.PeriodHistogram {
	counts := make(map[domain.Period]int, len(session.PeriodOrder))
	for _, s := range sessions {
		counts[s.Period]++
	}

	hist := domain.PeriodHistogram{
		Labels: make([]string, 0, len(session.PeriodOrder)),
		Values: make([]int, 0, len(session.PeriodOrder)),
	}
	for _, p := range session.PeriodOrder {
		hist.Labels = append(hist.Labels, string(p))
		hist.Values = append(hist.Values, counts[p])
	}
	return hist
}

// amountHistogram bins amounts into [edge_i, edge_i+1) buckets of the given width.
// The last bucket also includes its upper edge. A zero-width range yields one bucket.
func amountHistogram(sessions []domain.EnrichedSession, width decimal.Decimal) domain.AmountHistogram {
	lo, hi := sessions[0].Amount, sessions[0].Amount
	for _, s := range sessions[1:] {
		lo = decimal.Min(lo, s.Amount)
		hi = decimal.Max(hi, s.Amount)
	}

	lower := lo.Div(width).Floor().Mul(width)
	upper := hi.Div(width).Ceil().Mul(width)
	if !upper.GreaterThan(lower) {
		upper = lower.Add(width)
	}
	bins := int(upper.Sub(lower).Div(width).Ceil().IntPart())

	hist := domain.AmountHistogram{
		Counts: make([]int, bins),
		Edges:  make([]float64, 0, bins+1),
	}
	for i := 0; i <= bins; i++ {
		hist.Edges = append(hist.Edges, lower.Add(width.Mul(decimal.NewFromInt(int64(i)))).InexactFloat64())
	}
	for _, s := range sessions {
		idx := int(s.Amount.Sub(lower).Div(width).Floor().IntPart())
		if idx >= bins {
			idx = bins - 1
		}
		hist.Counts[idx]++
	}
	return hist
}

func findExtremes(sessions []domain.EnrichedSession) (maxRef, minRef domain.SessionRef) {
	maxIdx, minIdx := 0, 0
	for i, s := range sessions {
		if s.Amount.GreaterThan(sessions[maxIdx].Amount) {
			maxIdx = i
		}
		if s.Amount.LessThan(sessions[minIdx].Amount) {
			minIdx = i
		}
	}
	return refOf(sessions[maxIdx]), refOf(sessions[minIdx])
}

func refOf(s domain.EnrichedSession) domain.SessionRef {
	return domain.SessionRef{
		Merchant: s.Merchant,
		Time:     s.StartTime,
		Amount:   s.Amount,
	}
}

// longestGap returns the largest day difference between consecutive distinct activity
// dates, or nil with fewer than two dates. The earliest gap wins ties.
func longestGap(sessions []domain.EnrichedSession) *domain.DayGap {
	seen := make(map[civil.Date]struct{}, len(sessions))
	dates := make([]civil.Date, 0, len(sessions))
	for _, s := range sessions {
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		dates = append(dates, s.Date)
	}
	if len(dates) < 2 {
		return nil
	}

	slices.SortFunc(dates, compareDates)

	var gap *domain.DayGap
	for i := 1; i < len(dates); i++ {
		days := dates[i].DaysSince(dates[i-1])
		if gap == nil || days > gap.Days {
			gap = &domain.DayGap{Days: days, Start: dates[i-1], End: dates[i]}
		}
	}
	return gap
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
