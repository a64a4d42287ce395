package redact

import "github.com/evolve1/redactor/pkg/ocr"

// Rect is an axis-aligned box in page-image pixel space in (x1, y1, x2, y2)
// form. This is the normalized representation every rectangle takes before it
// reaches the compositor.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Clamp restricts the rectangle to [0,width) x [0,height).
// A rectangle entirely outside the bounds clamps to zero or negative area;
// callers skip those rather than treating them as errors.
func (r Rect) Clamp(width, height int) Rect {
	return Rect{
		X1: max(0, r.X1),
		Y1: max(0, r.Y1),
		X2: min(width, r.X2),
		Y2: min(height, r.Y2),
	}
}

// Empty reports whether the rectangle has zero or negative area.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Box is an axis-aligned box in (x, y, w, h) form, the shape OCR words and
// anchor results come in.
type Box struct {
	X, Y, W, H int
}

// Rect converts the box to its (x1, y1, x2, y2) form.
func (b Box) Rect() Rect {
	return Rect{X1: b.X, Y1: b.Y, X2: b.X + b.W, Y2: b.Y + b.H}
}

// unionWords returns the bounding box enclosing all the given words.
// Must not be called with an empty slice.
func unionWords(words []ocr.Word) Rect {
	r := Rect{
		X1: words[0].X,
		Y1: words[0].Y,
		X2: words[0].X + words[0].W,
		Y2: words[0].Y + words[0].H,
	}
	for _, w := range words[1:] {
		r.X1 = min(r.X1, w.X)
		r.Y1 = min(r.Y1, w.Y)
		r.X2 = max(r.X2, w.X+w.W)
		r.Y2 = max(r.Y2, w.Y+w.H)
	}
	return r
}
