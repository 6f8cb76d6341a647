package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/piwi3910/BlockFit/internal/engine"
	"github.com/piwi3910/BlockFit/internal/model"
)

// ReportVersion is written into every report.
const ReportVersion = "1.0.0"

// Report is the JSON record of a successful fitting run.
type Report struct {
	Version   string   `json:"version"`
	RunID     string   `json:"run_id"`
	CreatedAt string   `json:"created_at"`
	GridSize  int      `json:"grid_size"`
	Rows      []string `json:"rows"`   // top row first
	Blocks    []string `json:"blocks"` // coordinate lines, ordered by name
	Coverage  float64  `json:"coverage"`
	Stats     RunStats `json:"stats"`
}

// RunStats mirrors engine.Stats with a JSON friendly duration.
type RunStats struct {
	StarterRuns int     `json:"starter_runs"`
	Attempts    int     `json:"attempts"`
	Placements  int     `json:"placements"`
	DurationMS  float64 `json:"duration_ms"`
}

// NewReport builds the report for a fitting result and the stats of the
// run that produced it.
func NewReport(result *model.FittingResult, stats engine.Stats) Report {
	return Report{
		Version:   ReportVersion,
		RunID:     result.ID,
		CreatedAt: result.CreatedAt.Format(time.RFC3339),
		GridSize:  result.Grid.Size(),
		Rows:      result.Grid.Rows(),
		Blocks:    result.CoordinateLines(),
		Coverage:  result.Coverage(),
		Stats: RunStats{
			StarterRuns: stats.StarterRuns,
			Attempts:    stats.Attempts,
			Placements:  stats.Placements,
			DurationMS:  float64(stats.Duration) / float64(time.Millisecond),
		},
	}
}

// SaveReport writes the report to path as indented JSON, creating parent
// directories as needed.
func SaveReport(path string, report Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report file: %w", err)
	}
	var report Report
	if err := sonic.ConfigStd.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse report file: %w", err)
	}
	if report.Version == "" {
		return Report{}, fmt.Errorf("invalid report file: missing version field")
	}
	return report, nil
}
