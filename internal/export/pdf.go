package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BlockFit/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	listWidth    = 90.0
)

// ExportPDF generates a one page PDF with the filled grid drawn to scale,
// bottom row at the bottom, next to the coordinate listing of every block.
func ExportPDF(path string, result *model.FittingResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	renderGridPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderGridPage draws the grid, the block listing and the footer on the current page.
func renderGridPage(pdf *fpdf.Fpdf, result *model.FittingResult) {
	n := result.Grid.Size()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Block fitting %dx%d (run %s)", n, n, result.ID)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Blocks: %d | Cells filled: %d of %d | Coverage: %.1f%% | Created: %s",
		len(result.Blocks), result.Grid.Filled(), n*n, result.Coverage(),
		result.CreatedAt.Format("2006-01-02 15:04 MST"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - listWidth - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom - 5
	cell := math.Min(drawWidth, drawHeight) / float64(n)

	offsetX := marginLeft
	offsetY := drawAreaTop
	index := colorIndex(result)

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			r := result.Grid.Cell(x, y)
			col := cellColor(index, r)
			px := offsetX + float64(x)*cell
			// Row y = 0 is drawn at the bottom
			py := offsetY + float64(n-1-y)*cell

			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(60, 60, 60)
			pdf.SetLineWidth(0.3)
			pdf.Rect(px, py, cell, cell, "FD")

			if r == model.Empty || cell < 4 {
				continue
			}
			pdf.SetFont("Helvetica", "B", cellFontSize(cell))
			pdf.SetTextColor(0, 0, 0)
			label := string(r)
			w := pdf.GetStringWidth(label)
			pdf.SetXY(px+(cell-w)/2, py+cell/2-2)
			pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
		}
	}

	// Grid border
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Rect(offsetX, offsetY, cell*float64(n), cell*float64(n), "D")

	drawBlockListing(pdf, result, index, pageWidth-marginRight-listWidth, drawAreaTop)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BlockFit", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawBlockListing renders one line per block in name order with a color swatch.
func drawBlockListing(pdf *fpdf.Fpdf, result *model.FittingResult, index map[rune]int, x, y float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(listWidth, 6, "Coordinates of the blocks", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Courier", "", 8)
	for _, b := range result.SortedBlocks() {
		if y > pageHeight-marginBottom-8 {
			pdf.SetXY(x, y)
			pdf.CellFormat(listWidth, 4, "...", "", 0, "L", false, 0, "")
			return
		}
		col := cellColor(index, b.Name)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")

		pdf.SetXY(x+5, y)
		pdf.MultiCell(listWidth-5, 4, b.String(), "", "L", false)
		y = pdf.GetY() + 1
	}
}

// cellFontSize returns an appropriate font size for the cell side length.
func cellFontSize(cell float64) float64 {
	switch {
	case cell > 30:
		return 16
	case cell > 12:
		return 10
	default:
		return 6
	}
}
