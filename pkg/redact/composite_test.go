package redact

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func isBlack(img *image.RGBA, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestFillRects_FullyOutsideSkipped(t *testing.T) {
	img := whiteImage(100, 100)
	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	applied := FillRects(img, []Rect{{X1: 200, Y1: 200, X2: 300, Y2: 300}})
	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if !bytes.Equal(before, img.Pix) {
		t.Error("image changed by a fully out-of-bounds rectangle")
	}
}

func TestFillRects_PartiallyOutsideClamped(t *testing.T) {
	img := whiteImage(100, 100)
	applied := FillRects(img, []Rect{{X1: -50, Y1: -50, X2: 10, Y2: 10}})
	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if !isBlack(img, 0, 0) || !isBlack(img, 9, 9) {
		t.Error("in-bounds portion not filled")
	}
	if isBlack(img, 10, 10) {
		t.Error("fill extends past the clamped rectangle")
	}
}

func TestFillRects_NegativeAreaSkipped(t *testing.T) {
	img := whiteImage(100, 100)
	rects := []Rect{
		{X1: 50, Y1: 50, X2: 50, Y2: 60}, // zero width
		{X1: 60, Y1: 60, X2: 40, Y2: 70}, // negative width
	}
	if applied := FillRects(img, rects); applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
}

func TestFillRects_OverlappingIdempotent(t *testing.T) {
	img := whiteImage(100, 100)
	rects := []Rect{
		{X1: 10, Y1: 10, X2: 50, Y2: 50},
		{X1: 30, Y1: 30, X2: 70, Y2: 70},
	}
	if applied := FillRects(img, rects); applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	for _, pt := range [][2]int{{10, 10}, {49, 49}, {30, 30}, {69, 69}} {
		if !isBlack(img, pt[0], pt[1]) {
			t.Errorf("pixel (%d,%d) not filled", pt[0], pt[1])
		}
	}
	if isBlack(img, 75, 75) {
		t.Error("fill leaked outside both rectangles")
	}
}

func TestFillRects_NonZeroOriginBounds(t *testing.T) {
	// rectangles are expressed relative to the page, so an image whose
	// bounds do not start at (0,0) still fills the right pixels
	img := image.NewRGBA(image.Rect(10, 10, 110, 110))
	FillRects(img, []Rect{{X1: 0, Y1: 0, X2: 5, Y2: 5}})
	if r, _, _, _ := img.At(10, 10).RGBA(); r != 0 {
		t.Error("fill not anchored at the image origin")
	}
}

func TestToRGBA_PreservesPixels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(2, 2, color.Gray{Y: 200})
	rgba := toRGBA(src)
	r, _, _, _ := rgba.At(2, 2).RGBA()
	if r>>8 != 200 {
		t.Errorf("pixel (2,2) = %d, want 200", r>>8)
	}
}
