package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/piwi3910/BlockFit/internal/model"
)

// Image layout in pixels.
const (
	imageCellSize = 48
	imageMargin   = 16
	imageLineGap  = 16
)

// ExportPNG writes the grid as a PNG image with each cell filled in its
// block color and labelled with the block name, followed by the
// coordinate lines.
func ExportPNG(path string, result *model.FittingResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	img := RenderImage(result)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return f.Close()
}

// RenderImage draws the result. Cell (x, y) of the grid occupies the square
// starting at pixel (margin + x*48, margin + (n-1-y)*48).
func RenderImage(result *model.FittingResult) *image.RGBA {
	n := result.Grid.Size()
	face := basicfont.Face7x13
	lines := result.CoordinateLines()

	gridPx := n * imageCellSize
	width := gridPx
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	width += 2 * imageMargin
	height := 2*imageMargin + gridPx + imageLineGap*(len(lines)+1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	index := colorIndex(result)
	border := image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255})
	ink := image.NewUniform(color.Black)

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			r := result.Grid.Cell(x, y)
			col := cellColor(index, r)
			px := imageMargin + x*imageCellSize
			py := imageMargin + (n-1-y)*imageCellSize
			rect := image.Rect(px, py, px+imageCellSize, py+imageCellSize)

			draw.Draw(img, rect, border, image.Point{}, draw.Src)
			fill := image.NewUniform(color.RGBA{R: uint8(col.R), G: uint8(col.G), B: uint8(col.B), A: 255})
			draw.Draw(img, rect.Inset(1), fill, image.Point{}, draw.Src)

			if r == model.Empty {
				continue
			}
			label := string(r)
			w := font.MeasureString(face, label).Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  ink,
				Face: face,
				Dot:  fixed.P(px+(imageCellSize-w)/2, py+imageCellSize/2+face.Ascent/2),
			}
			d.DrawString(label)
		}
	}

	baseline := imageMargin + gridPx + imageLineGap
	for _, line := range lines {
		baseline += imageLineGap
		d := &font.Drawer{Dst: img, Src: ink, Face: face, Dot: fixed.P(imageMargin, baseline-imageLineGap/2)}
		d.DrawString(line)
	}

	return img
}
