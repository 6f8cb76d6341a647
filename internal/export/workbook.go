package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BlockFit/internal/model"
)

const (
	gridSheet   = "Grid"
	blocksSheet = "Blocks"
)

// ExportWorkbook writes an Excel workbook with two sheets: "Grid" holds the
// grid as printed, top row first, with each cell colored by block, and
// "Blocks" lists every block with its point count and coordinate line.
func ExportWorkbook(path string, result *model.FittingResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), gridSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeGridSheet(f, result); err != nil {
		return err
	}

	if _, err := f.NewSheet(blocksSheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", blocksSheet, err)
	}
	if err := writeBlocksSheet(f, result); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeGridSheet(f *excelize.File, result *model.FittingResult) error {
	index := colorIndex(result)
	styles := make(map[rune]int)

	for i, row := range result.Grid.Rows() {
		for j, r := range []rune(row) {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(gridSheet, cellRef, string(r)); err != nil {
				return fmt.Errorf("failed to write %s: %w", cellRef, err)
			}

			style, ok := styles[r]
			if !ok {
				col := cellColor(index, r)
				style, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{
						Type:    "pattern",
						Pattern: 1,
						Color:   []string{fmt.Sprintf("%02X%02X%02X", col.R, col.G, col.B)},
					},
					Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
					Font:      &excelize.Font{Bold: r != model.Empty},
				})
				if err != nil {
					return fmt.Errorf("failed to create cell style: %w", err)
				}
				styles[r] = style
			}
			if err := f.SetCellStyle(gridSheet, cellRef, cellRef, style); err != nil {
				return fmt.Errorf("failed to style %s: %w", cellRef, err)
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(result.Grid.Size())
	if err != nil {
		return err
	}
	return f.SetColWidth(gridSheet, "A", lastCol, 4)
}

func writeBlocksSheet(f *excelize.File, result *model.FittingResult) error {
	rows := [][]interface{}{{"Name", "Points", "Coordinates"}}
	for _, b := range result.SortedBlocks() {
		rows = append(rows, []interface{}{string(b.Name), b.Size(), b.String()})
	}

	for i, row := range rows {
		for j, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(blocksSheet, cellRef, value); err != nil {
				return fmt.Errorf("failed to write %s: %w", cellRef, err)
			}
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(blocksSheet, "A1", "C1", header); err != nil {
		return err
	}
	return f.SetColWidth(blocksSheet, "C", "C", 40)
}
