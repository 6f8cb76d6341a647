package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/BlockFit/internal/engine"
	"github.com/piwi3910/BlockFit/internal/model"
)

func buildReportResult(t *testing.T) *model.FittingResult {
	t.Helper()
	a, err := model.NewBlock('A', []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := model.NewBlock('B', []model.Point{{X: 0, Y: 1}, {X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	grid := model.NewGrid(2)
	grid.Stamp(b)
	grid.Stamp(a)
	return model.NewFittingResult(grid, []model.Block{b, a})
}

func TestNewReport(t *testing.T) {
	result := buildReportResult(t)
	stats := engine.Stats{StarterRuns: 1, Attempts: 3, Placements: 2, Duration: 1500 * time.Microsecond}

	report := NewReport(result, stats)

	if report.Version != ReportVersion {
		t.Errorf("expected version %s, got %s", ReportVersion, report.Version)
	}
	if report.RunID != result.ID {
		t.Errorf("expected run ID %s, got %s", result.ID, report.RunID)
	}
	if report.GridSize != 2 {
		t.Errorf("expected GridSize=2, got %d", report.GridSize)
	}
	if len(report.Rows) != 2 || report.Rows[0] != "BB" || report.Rows[1] != "AA" {
		t.Errorf("unexpected rows %v", report.Rows)
	}
	if len(report.Blocks) != 2 || report.Blocks[0] != "A:0,0;1,0" || report.Blocks[1] != "B:0,1;1,1" {
		t.Errorf("unexpected blocks %v", report.Blocks)
	}
	if report.Coverage != 100 {
		t.Errorf("expected full coverage, got %f", report.Coverage)
	}
	if report.Stats.DurationMS != 1.5 {
		t.Errorf("expected 1.5 ms, got %f", report.Stats.DurationMS)
	}
	if report.Stats.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", report.Stats.Attempts)
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "report.json")
	report := NewReport(buildReportResult(t), engine.Stats{StarterRuns: 1})

	if err := SaveReport(path, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}

	if loaded.RunID != report.RunID {
		t.Errorf("expected run ID %s, got %s", report.RunID, loaded.RunID)
	}
	if loaded.CreatedAt != report.CreatedAt {
		t.Errorf("expected CreatedAt %s, got %s", report.CreatedAt, loaded.CreatedAt)
	}
	if len(loaded.Blocks) != len(report.Blocks) {
		t.Fatalf("expected %d blocks, got %d", len(report.Blocks), len(loaded.Blocks))
	}
	for i := range report.Blocks {
		if loaded.Blocks[i] != report.Blocks[i] {
			t.Errorf("block %d: expected %s, got %s", i, report.Blocks[i], loaded.Blocks[i])
		}
	}
	if loaded.Stats != report.Stats {
		t.Errorf("expected stats %+v, got %+v", report.Stats, loaded.Stats)
	}
}

func TestLoadReportMissingFile(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadReportInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not valid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadReport(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadReportMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"run_id": "abc"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadReport(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
