package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract extracts words using a local Tesseract installation via gosseract.
// It asks Tesseract for hOCR output to get word-level bounding boxes and
// confidences rather than plain text.
//
// Each Words call creates its own gosseract client, so a single Tesseract
// value can serve concurrent page extractions.
type Tesseract struct {
	// Language is the Tesseract language spec, e.g. "eng" or "eng+deu".
	// Empty means the Tesseract default.
	Language string
}

// NewTesseract returns a Tesseract engine with default settings.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Words runs Tesseract on the page image and returns the recognized words,
// already filtered by MinConfidence.
func (t *Tesseract) Words(ctx context.Context, img image.Image) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.Language != "" {
		if err := client.SetLanguage(t.Language); err != nil {
			return nil, fmt.Errorf("failed to set language %q: %w", t.Language, err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set page image: %w", err)
	}

	hocrData, err := client.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}

	words, err := WordsFromHOCR([]byte(hocrData))
	if err != nil {
		return nil, err
	}
	return FilterConfidence(words, MinConfidence), nil
}
