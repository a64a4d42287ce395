package assemble

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/evolve1/redactor/pkg/ocr"
)

// drawTextLayer draws the page's OCR words onto a toggleable PDF layer.
// Page images are placed at 1 pixel = 1 point, so word pixel coordinates map
// directly to PDF coordinates.
func drawTextLayer(pdf *fpdf.Fpdf, words []ocr.Word, pageNum int, config Config) error {
	layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", config.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	encodingErrors := 0
	for _, word := range words {
		drawWord(pdf, word, config, &encodingErrors)
	}

	pdf.EndLayer()

	// Tolerate a few unmappable characters; fail only when the layer would be
	// substantially wrong.
	if len(words) > 0 && encodingErrors > len(words)/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, len(words))
	}
	return nil
}

// drawWord renders a single word, scaled horizontally to match its box width.
func drawWord(pdf *fpdf.Fpdf, word ocr.Word, config Config, encodingErrors *int) {
	x := float64(word.X)
	y := float64(word.Y)
	wordWidth := float64(word.W)

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		*encodingErrors++
		latin1 = word.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 {
		scale := wordWidth / strWidth
		pdf.SetFontSize(config.Font.Size * scale)
	}

	fontSize, _ := pdf.GetFontSize()
	y += fontSize * config.Font.AscentRatio

	pdf.Text(x, y, latin1)
	pdf.SetFontSize(config.Font.Size)

	if config.Debug {
		pdf.Rect(x, y-(fontSize*config.Font.AscentRatio), wordWidth, float64(word.H), "D")
	}
}
