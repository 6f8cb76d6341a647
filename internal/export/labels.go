package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BlockFit/internal/model"
)

// LabelInfo holds the data printed on one block label.
type LabelInfo struct {
	Name        rune
	Points      int
	Coordinates string // block in the text format, also encoded in the QR code
	RunID       string
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed block in
// name order. The QR code holds the block's coordinate line so a scanned
// label can be pasted back into an input file.
func ExportLabels(path string, result *model.FittingResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range CollectLabelInfos(result) {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %c: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrPNG, err := qrcode.Encode(info.Coordinates, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%U", info.RunID, info.Name)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 6, fmt.Sprintf("Block %c", info.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+7)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d cells", info.Points), "", 1, "L", false, 0, "")

	// Coordinates, truncated to the text area
	pdf.SetFont("Courier", "", 5)
	pdf.SetTextColor(100, 100, 100)
	coords := info.Coordinates
	if pdf.GetStringWidth(coords) > textW {
		for len(coords) > 0 && pdf.GetStringWidth(coords+"...") > textW {
			coords = coords[:len(coords)-1]
		}
		coords += "..."
	}
	pdf.SetXY(textX, y+labelPadding+11)
	pdf.CellFormat(textW, 3, coords, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(textX, y+labelPadding+15)
	pdf.CellFormat(textW, 3, "Run "+info.RunID, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a fitting result, one
// entry per block in name order.
func CollectLabelInfos(result *model.FittingResult) []LabelInfo {
	if result == nil {
		return nil
	}
	blocks := result.SortedBlocks()
	labels := make([]LabelInfo, 0, len(blocks))
	for _, b := range blocks {
		labels = append(labels, LabelInfo{
			Name:        b.Name,
			Points:      b.Size(),
			Coordinates: b.String(),
			RunID:       result.ID,
		})
	}
	return labels
}
