package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sessionreport/internal/domain"
)

// TimeRange is the hour span covered by the heatmap.
type TimeRange struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// ChartPayload is the data a front end needs to draw the report charts.
type ChartPayload struct {
	Heatmap            domain.Heatmap         `json:"heatmap"`
	Period             domain.PeriodHistogram `json:"period"`
	AmountDistribution domain.AmountHistogram `json:"amount_distribution"`
	TimeRange          TimeRange              `json:"time_range"`
}

// Charts extracts the chart payload from rep.
func Charts(rep *domain.Report) ChartPayload {
	return ChartPayload{
		Heatmap:            rep.Result.Heatmap,
		Period:             rep.Result.Period,
		AmountDistribution: rep.Result.AmountDistribution,
		TimeRange: TimeRange{
			StartHour: rep.Result.MinHour,
			EndHour:   rep.Result.MaxHour,
		},
	}
}

// Artifact is the set of files written for one run.
type Artifact struct {
	Dir          string
	MarkdownPath string
	ChartsPath   string
}

// Write stores the markdown report and chart payload under dir/run_<id>.
func Write(dir string, rep *domain.Report, opts Options) (*Artifact, error) {
	runDir := filepath.Join(dir, "run_"+rep.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory %s: %w", runDir, err)
	}

	art := &Artifact{
		Dir:          runDir,
		MarkdownPath: filepath.Join(runDir, "report.md"),
		ChartsPath:   filepath.Join(runDir, "charts.json"),
	}

	if err := os.WriteFile(art.MarkdownPath, []byte(RenderMarkdown(rep, opts)), 0o644); err != nil {
		return nil, fmt.Errorf("write report %s: %w", art.MarkdownPath, err)
	}

	charts, err := json.MarshalIndent(Charts(rep), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode charts: %w", err)
	}
	if err := os.WriteFile(art.ChartsPath, charts, 0o644); err != nil {
		return nil, fmt.Errorf("write charts %s: %w", art.ChartsPath, err)
	}

	return art, nil
}
