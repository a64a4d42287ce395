// Package ocr defines the word-level OCR model used by the redaction engine
// and provides a Tesseract-backed extraction engine.
//
// The engine contract is intentionally small: given a page image, return the
// recognized words with their pixel bounding boxes and confidences. Anything
// that can produce word boxes can drive the redaction core; this package ships
// a Tesseract implementation (via gosseract and hOCR output), and pkg/docai
// provides a Google Document AI implementation of the same interface.
//
// Confidence handling: a confidence of -1 is a sentinel meaning "unscored" and
// such words are always kept. Any other confidence below MinConfidence is
// treated as recognition noise and dropped at extraction time.
package ocr

import (
	"context"
	"image"
)

// MinConfidence is the extraction-time threshold below which scored words are
// discarded as noise. Unscored words (confidence -1) are never filtered.
const MinConfidence = 30

// Unscored is the sentinel confidence for words without a recognition score.
const Unscored = -1

// Word is a single recognized word with its bounding box in page-image pixel
// coordinates. X, Y is the top-left corner; W, H the box dimensions.
type Word struct {
	Text       string
	X          int
	Y          int
	W          int
	H          int
	Confidence float64
}

// Engine extracts word boxes from a page image.
// Implementations must be safe for concurrent use: the page pipeline may call
// Words for several pages at once.
type Engine interface {
	Words(ctx context.Context, img image.Image) ([]Word, error)
}

// FilterConfidence returns the words that pass the confidence threshold.
// Words carrying the Unscored sentinel are always kept.
func FilterConfidence(words []Word, min float64) []Word {
	kept := words[:0:0]
	for _, w := range words {
		if w.Confidence != Unscored && w.Confidence < min {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}
