// Package report turns an analysis result into the markdown report and the chart
// payload, and writes them as the run's artifact.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sessionreport/internal/domain"
)

const timeFormat = "2006-01-02 15:04:05"

// Options carries the values quoted in the report text.
type Options struct {
	WaterFeePerTon       decimal.Decimal
	SessionGap           time.Duration
	SmallAmountThreshold decimal.Decimal
	ReconcileGap         time.Duration
	ActiveHourFloor      int
}

// RenderMarkdown formats rep as a markdown document.
func RenderMarkdown(rep *domain.Report, opts Options) string {
	res := rep.Result
	var b strings.Builder

	b.WriteString("# Usage Session Report\n\n")

	b.WriteString("## Statistics\n")
	fmt.Fprintf(&b, "- %d sessions, %s in total, %s on average, median %s.\n",
		res.Summary.SessionCount,
		res.Summary.TotalAmount.StringFixed(2),
		res.Summary.AverageAmount.StringFixed(2),
		res.Summary.MedianAmount.StringFixed(2))
	if opts.WaterFeePerTon.IsPositive() {
		tons := res.Summary.TotalAmount.Div(opts.WaterFeePerTon)
		fmt.Fprintf(&b, "- About **%s tons** of water (at %s per ton).\n",
			tons.StringFixed(2), opts.WaterFeePerTon.StringFixed(2))
	}
	b.WriteString("\n")

	b.WriteString("## Extremes\n")
	fmt.Fprintf(&b, "- Largest session: **%s** at **%s** (%s).\n",
		res.MaxSession.Merchant, res.MaxSession.Time.Format(timeFormat), res.MaxSession.Amount.StringFixed(2))
	fmt.Fprintf(&b, "- Smallest session: **%s** at **%s** (%s).\n",
		res.MinSession.Merchant, res.MinSession.Time.Format(timeFormat), res.MinSession.Amount.StringFixed(2))
	if gap := res.LongestGap; gap != nil {
		fmt.Fprintf(&b, "- Longest break between sessions: **%d** days (%s -> %s).", gap.Days, gap.Start, gap.End)
		if gap.Days > 2 {
			b.WriteString(" Out on a trip?")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("- Longest break between sessions: not enough records.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Rules\n")
	fmt.Fprintf(&b, "- Merchants: %s.\n", strings.Join(rep.Merchants, ", "))
	fmt.Fprintf(&b, "- Activity between 0:00 and %d:00 is not counted.\n", opts.ActiveHourFloor)
	fmt.Fprintf(&b, "- Transactions within %s of each other count as one session; amounts up to %s join a session within %s, otherwise they are dropped.\n",
		formatMinutes(opts.SessionGap), opts.SmallAmountThreshold.StringFixed(2), formatMinutes(opts.ReconcileGap))

	return b.String()
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%g minutes", d.Minutes())
}
