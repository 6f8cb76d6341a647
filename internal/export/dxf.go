package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/BlockFit/internal/model"
)

// outlineLayer holds the grid border. Its name is longer than one
// character so it never reads back as a block.
const outlineLayer = "GRID"

// ExportDXF writes the placement as a DXF drawing. Each block gets its own
// layer named after it, and each cell it covers is drawn as a closed square
// of LINE entities, model.CellUnits drawing units wide.
func ExportDXF(path string, result *model.FittingResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	d := dxf.NewDrawing()

	for i, b := range result.SortedBlocks() {
		// AutoCAD color index 1-6, white is reserved for the outline
		aci := color.ColorNumber(i%6 + 1)
		if _, err := d.AddLayer(string(b.Name), aci, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %c: %w", b.Name, err)
		}
		for _, p := range b.Points() {
			x0 := float64(p.X) * model.CellUnits
			y0 := float64(p.Y) * model.CellUnits
			if err := square(d, x0, y0, model.CellUnits); err != nil {
				return fmt.Errorf("failed to draw block %c: %w", b.Name, err)
			}
		}
	}

	if _, err := d.AddLayer(outlineLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", outlineLayer, err)
	}
	if err := square(d, 0, 0, float64(result.Grid.Size())*model.CellUnits); err != nil {
		return fmt.Errorf("failed to draw grid outline: %w", err)
	}

	return d.SaveAs(path)
}

// square draws a closed, counter-clockwise square on the current layer.
func square(d *drawing.Drawing, x, y, side float64) error {
	corners := [][2]float64{
		{x, y},
		{x + side, y},
		{x + side, y + side},
		{x, y + side},
	}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, next[0], next[1], 0); err != nil {
			return err
		}
	}
	return nil
}
