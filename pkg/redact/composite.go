package redact

import (
	"image"
	"image/draw"

	"github.com/evolve1/redactor/pkg/ocr"
)

// FillRects paints each rectangle opaque black onto the page image, clamping
// to the image bounds first. Rectangles that clamp to zero or negative area
// are skipped. Returns the number of rectangles actually painted.
//
// This stage cannot fail: out-of-range input is geometry to clamp, not an
// error. Fills are idempotent, so overlapping rectangles from different rule
// families are harmless.
func FillRects(img *image.RGBA, rects []Rect) int {
	bounds := img.Bounds()
	applied := 0
	for _, r := range rects {
		c := r.Clamp(bounds.Dx(), bounds.Dy())
		if c.Empty() {
			continue
		}
		fill := image.Rect(c.X1, c.Y1, c.X2, c.Y2).Add(bounds.Min)
		draw.Draw(img, fill, image.Black, image.Point{}, draw.Src)
		applied++
	}
	return applied
}

// visibleWords returns the words not covered by any painted rectangle.
// A word overlapping a redaction fill carries text that the fill was meant to
// remove, so it must not reach a downstream text layer.
func visibleWords(words []ocr.Word, rects []Rect, width, height int) []ocr.Word {
	painted := make([]Rect, 0, len(rects))
	for _, r := range rects {
		c := r.Clamp(width, height)
		if !c.Empty() {
			painted = append(painted, c)
		}
	}

	kept := words[:0:0]
	for _, w := range words {
		b := Box{X: w.X, Y: w.Y, W: w.W, H: w.H}.Rect()
		covered := false
		for _, r := range painted {
			if b.X1 < r.X2 && b.X2 > r.X1 && b.Y1 < r.Y2 && b.Y2 > r.Y1 {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, w)
		}
	}
	return kept
}

// toRGBA returns the image as *image.RGBA, copying only when necessary.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
