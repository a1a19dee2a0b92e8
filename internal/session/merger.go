// Package session groups one merchant's transactions into usage sessions and
// annotates sessions with calendar features.
package session

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sessionreport/internal/domain"
	"sessionreport/internal/logger"
)

// Options holds the thresholds of one merge pass.
type Options struct {
	// MaxGap is the largest gap between two records of the same session.
	MaxGap time.Duration
	// SmallAmountThreshold marks sessions at or below it as reconciliation candidates.
	SmallAmountThreshold decimal.Decimal
	// ReconcileGap is the largest gap to a neighbour a small session may be folded into.
	ReconcileGap time.Duration
}

// Merge clusters the records of a single merchant and reconciles small residual sessions.
// The result may be empty when every session was an isolated small charge.
func Merge(ctx context.Context, records []domain.Transaction, opts Options) []domain.Session {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).With().Str("merchant", records[0].Merchant).Logger()

	clustered := Cluster(records, opts.MaxGap)
	merged := ReconcileSmallSessions(clustered, opts.SmallAmountThreshold, opts.ReconcileGap)

	log.Debug().
		Int("records", len(records)).
		Int("clustered", len(clustered)).
		Int("sessions", len(merged)).
		Msg("Merged sessions")

	return merged
}

// Cluster splits records into sessions, opening a new one whenever the gap to the
// previous record is strictly greater than maxGap. Records are sorted by time first;
// records with equal timestamps keep their input order.
func Cluster(records []domain.Transaction, maxGap time.Duration) []domain.Session {
	if len(records) == 0 {
		return nil
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.Transaction) int {
		return a.Time.Compare(b.Time)
	})

	var sessions []domain.Session
	for i, rec := range sorted {
		if i == 0 || rec.Time.Sub(sorted[i-1].Time) > maxGap {
			sessions = append(sessions, domain.Session{
				Merchant:  rec.Merchant,
				StartTime: rec.Time,
				EndTime:   rec.Time,
				Amount:    rec.Amount,
			})
			continue
		}
		cur := &sessions[len(sessions)-1]
		cur.Amount = cur.Amount.Add(rec.Amount)
		cur.EndTime = rec.Time
	}

	for i := range sessions {
		sessions[i].DurationMinutes = durationMinutes(sessions[i])
	}
	return sessions
}

type mergeTarget int

const (
	targetNone mergeTarget = iota
	targetPrev
	targetNext
)

// ReconcileSmallSessions folds sessions whose amount is at or below threshold into the
// closer neighbour within maxGap, preferring the previous session on equal gaps.
// Small sessions without an eligible neighbour are dropped. Sessions must be ordered
// by start time, as Cluster returns them.
func ReconcileSmallSessions(sessions []domain.Session, threshold decimal.Decimal, maxGap time.Duration) []domain.Session {
	work := slices.Clone(sessions)
	accepted := make([]domain.Session, 0, len(work))

	for i := 0; i < len(work); i++ {
		cur := work[i]
		if cur.Amount.GreaterThan(threshold) {
			accepted = append(accepted, cur)
			continue
		}

		var gapPrev, gapNext time.Duration
		hasPrev := len(accepted) > 0
		hasNext := i+1 < len(work)
		if hasPrev {
			gapPrev = cur.StartTime.Sub(accepted[len(accepted)-1].EndTime)
		}
		if hasNext {
			gapNext = work[i+1].StartTime.Sub(cur.EndTime)
		}

		target := targetNone
		if hasPrev && gapPrev <= maxGap {
			target = targetPrev
		}
		if hasNext && gapNext <= maxGap && (target == targetNone || gapNext < gapPrev) {
			target = targetNext
		}

		switch target {
		case targetPrev:
			prev := &accepted[len(accepted)-1]
			prev.Amount = prev.Amount.Add(cur.Amount)
			prev.EndTime = latest(prev.EndTime, cur.EndTime)
		case targetNext:
			next := &work[i+1]
			next.Amount = next.Amount.Add(cur.Amount)
			next.StartTime = earliest(next.StartTime, cur.StartTime)
			next.EndTime = latest(next.EndTime, cur.EndTime)
		}
	}

	for i := range accepted {
		accepted[i].DurationMinutes = durationMinutes(accepted[i])
	}
	return accepted
}

func durationMinutes(s domain.Session) float64 {
	return s.EndTime.Sub(s.StartTime).Minutes()
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
