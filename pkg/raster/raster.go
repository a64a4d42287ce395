// Package raster renders PDF pages to pixel images using MuPDF via go-fitz.
//
// Scanned-document OCR quality depends heavily on the render resolution; the
// scale factor multiplies the PDF's native 72 DPI, so the default scale of 2.0
// renders at 144 DPI, trading recognition accuracy against processing cost.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultScale is the render scale factor applied when none is configured.
const DefaultScale = 2.0

const baseDPI = 72

// Renderer rasterizes PDF documents page by page.
type Renderer struct {
	// Scale multiplies the base 72 DPI render resolution.
	// Zero or negative means DefaultScale.
	Scale float64
}

// RenderPages renders every page of the PDF to an image, in document order.
func (r Renderer) RenderPages(pdf []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	scale := r.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	dpi := baseDPI * scale

	pages := make([]image.Image, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", n+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
