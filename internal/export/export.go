// Package export writes fitting results to PDF sheets, QR-coded labels,
// Excel workbooks, DXF drawings and PNG images.
package export

import (
	"errors"

	"github.com/piwi3910/BlockFit/internal/model"
)

// errNoResult is returned when there is nothing to export.
var errNoResult = errors.New("no fitting result to export")

// blockColor represents an RGB color for a placed block.
type blockColor struct {
	R, G, B int
}

// blockColors is shared by every graphical export so a block keeps its
// color across the PDF, the workbook and the PNG image.
var blockColors = []blockColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// emptyColor fills unoccupied cells.
var emptyColor = blockColor{R: 238, G: 238, B: 238}

// colorIndex maps each block name to its position in name order.
func colorIndex(result *model.FittingResult) map[rune]int {
	index := make(map[rune]int, len(result.Blocks))
	for i, b := range result.SortedBlocks() {
		index[b.Name] = i
	}
	return index
}

// cellColor returns the fill color for a grid cell.
func cellColor(index map[rune]int, r rune) blockColor {
	i, ok := index[r]
	if !ok {
		return emptyColor
	}
	return blockColors[i%len(blockColors)]
}

func checkResult(result *model.FittingResult) error {
	if result == nil || result.Grid == nil || len(result.Blocks) == 0 {
		return errNoResult
	}
	return nil
}
