// Package assemble flattens redacted page images into a single PDF document.
//
// Every page of the output is exactly one embedded raster image sized to the
// image's pixel dimensions. Flattening removes all vector and text content, so
// the redaction cannot be defeated by extracting underlying text.
//
// Two options restore searchability on top of the flattened document:
//
// - an embedded invisible text layer built from the page's own OCR words
//   (Config.TextLayer), drawn directly during assembly
// - an external best-effort tool (Tool, typically ocrmypdf) that re-OCRs the
//   flattened output; absence or failure of the tool is never fatal
package assemble

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"codeberg.org/go-pdf/fpdf"

	"github.com/evolve1/redactor/pkg/ocr"
)

// Page couples a redacted page image with the OCR words recognized on it.
// Words may be nil when no text layer is wanted.
type Page struct {
	Image image.Image
	Words []ocr.Word
}

// Flatten builds a PDF where each page is a single full-page raster image at
// the image's pixel dimensions (1 pixel = 1 PDF point). When config.TextLayer
// is set, each page additionally carries an invisible text layer positioned at
// the word boxes.
func Flatten(pages []Page, config Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to assemble")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	for i, page := range pages {
		bounds := page.Image.Bounds()
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		var buf bytes.Buffer
		if err := png.Encode(&buf, page.Image); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}

		imageName := fmt.Sprintf("page%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imageName, opts, &buf)
		pdf.ImageOptions(imageName, 0, 0, w, h, false, opts, 0, "")

		if config.TextLayer && len(page.Words) > 0 {
			if err := drawTextLayer(pdf, page.Words, i+1, config); err != nil {
				return nil, fmt.Errorf("failed to draw text layer for page %d: %w", i+1, err)
			}
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.Bytes(), nil
}
