package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
)

// drawCells writes a drawing with one layer per entry, each cell drawn as
// four LINE entities.
func drawCells(t *testing.T, layers map[string][][2]int, order []string) string {
	t.Helper()
	d := dxf.NewDrawing()
	for _, name := range order {
		_, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, true)
		require.NoError(t, err)
		for _, c := range layers[name] {
			x0, y0 := float64(c[0])*10, float64(c[1])*10
			x1, y1 := x0+10, y0+10
			for _, l := range [][4]float64{
				{x0, y0, x1, y0},
				{x1, y0, x1, y1},
				{x1, y1, x0, y1},
				{x0, y1, x0, y0},
			} {
				_, err := d.Line(l[0], l[1], 0, l[2], l[3], 0)
				require.NoError(t, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "blocks.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportDXF(t *testing.T) {
	path := drawCells(t, map[string][][2]int{
		"A": {{0, 0}, {1, 0}, {1, 1}},
		"B": {{2, 0}, {2, 1}},
	}, []string{"A", "B"})

	result := ImportDXF(path)

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"A:0,0;1,0;1,1", "B:2,0;2,1"}, blockStrings(result.Blocks))
}

func TestImportDXF_SkipsLongLayerNames(t *testing.T) {
	path := drawCells(t, map[string][][2]int{
		"A":       {{0, 0}},
		"outline": {{3, 3}},
	}, []string{"A", "outline"})

	result := ImportDXF(path)

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"A:0,0"}, blockStrings(result.Blocks))
	assert.True(t, hasWarning(result, "outline"))
}

func TestImportDXF_ViaImport(t *testing.T) {
	path := drawCells(t, map[string][][2]int{"Q": {{4, 2}}}, []string{"Q"})

	result := Import(path)

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"Q:4,2"}, blockStrings(result.Blocks))
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/path/file.dxf")

	assert.NotEmpty(t, result.Errors)
}

func TestChainSegments(t *testing.T) {
	square := []segment{
		{vertex{0, 0}, vertex{10, 0}},
		{vertex{10, 10}, vertex{10, 0}}, // reversed
		{vertex{10, 10}, vertex{0, 10}},
		{vertex{0, 10}, vertex{0, 0}},
		// open chain
		{vertex{20, 0}, vertex{30, 0}},
	}

	outlines := chainSegments(square, 0.01)

	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 4)
	assert.InDelta(t, 100.0, outlineArea(outlines[0]), 1e-9)
}

func TestCellOf(t *testing.T) {
	o := []vertex{{-10, 20}, {0, 20}, {0, 30}, {-10, 30}}
	p := cellOf(o)
	assert.Equal(t, -1, p.X)
	assert.Equal(t, 2, p.Y)
}
