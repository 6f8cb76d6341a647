package export

import (
	"os"
	"testing"

	"github.com/piwi3910/BlockFit/internal/model"
)

// buildTestResult creates the placement of four tetrominoes on a 4x4 grid:
//
//	BBAA
//	BAAD
//	BCDD
//	CCCD
func buildTestResult(t *testing.T) *model.FittingResult {
	t.Helper()
	coords := map[rune][]int{
		'C': {0, 0, 1, 0, 2, 0, 1, 1},
		'A': {1, 2, 2, 2, 2, 3, 3, 3},
		'B': {0, 1, 0, 2, 0, 3, 1, 3},
		'D': {2, 1, 3, 0, 3, 1, 3, 2},
	}

	grid := model.NewGrid(4)
	var blocks []model.Block
	for _, name := range "CABD" {
		c := coords[name]
		points := make([]model.Point, 0, len(c)/2)
		for i := 0; i < len(c); i += 2 {
			points = append(points, model.Point{X: c[i], Y: c[i+1]})
		}
		b, err := model.NewBlock(name, points)
		if err != nil {
			t.Fatalf("NewBlock(%c): %v", name, err)
		}
		grid.Stamp(b)
		blocks = append(blocks, b)
	}
	return model.NewFittingResult(grid, blocks)
}

// assertFile checks that path exists, is at least minSize bytes and starts with magic.
func assertFile(t *testing.T, path string, minSize int64, magic string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if len(data) < len(magic) || string(data[:len(magic)]) != magic {
		t.Errorf("file does not start with %q", magic)
	}
}

func TestExporters_RejectEmptyResult(t *testing.T) {
	dir := t.TempDir()
	exporters := map[string]func(string, *model.FittingResult) error{
		"pdf":      ExportPDF,
		"labels":   ExportLabels,
		"workbook": ExportWorkbook,
		"dxf":      ExportDXF,
		"png":      ExportPNG,
	}

	for name, export := range exporters {
		if err := export(dir+"/"+name, nil); err != errNoResult {
			t.Errorf("%s: expected errNoResult for nil result, got %v", name, err)
		}
		empty := model.NewFittingResult(model.NewGrid(4), nil)
		if err := export(dir+"/"+name, empty); err != errNoResult {
			t.Errorf("%s: expected errNoResult for empty result, got %v", name, err)
		}
	}
}

func TestColorIndex(t *testing.T) {
	result := buildTestResult(t)
	index := colorIndex(result)

	for i, name := range "ABCD" {
		if index[name] != i {
			t.Errorf("expected %c at index %d, got %d", name, i, index[name])
		}
	}
	if cellColor(index, model.Empty) != emptyColor {
		t.Error("expected empty cells to use emptyColor")
	}
	if cellColor(index, 'B') != blockColors[1] {
		t.Errorf("unexpected color for B: %+v", cellColor(index, 'B'))
	}
}
