package redact

import (
	"strings"

	"github.com/evolve1/redactor/pkg/ocr"
)

// FindAnchor locates the first occurrence of the anchor phrase among the
// page's words and returns its bounding box.
//
// Matching is case- and whitespace-insensitive and ignores trailing label
// punctuation (see Normalize), but is otherwise exact on token identity.
// A multi-word anchor must appear as a contiguous run of words, in order, in
// the OCR word sequence; the words are scanned in the order the OCR engine
// produced them, not re-sorted. The returned box is the union of the matched
// words' boxes. ok is false when the anchor does not appear on the page.
func FindAnchor(words []ocr.Word, anchor string) (box Box, ok bool) {
	parts := strings.Split(Normalize(anchor), " ")

	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = Normalize(w.Text)
	}

	if len(parts) == 1 {
		for i, w := range words {
			if normalized[i] == parts[0] {
				return Box{X: w.X, Y: w.Y, W: w.W, H: w.H}, true
			}
		}
		return Box{}, false
	}

	for i := 0; i+len(parts) <= len(words); i++ {
		matched := true
		for j, part := range parts {
			if normalized[i+j] != part {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		r := unionWords(words[i : i+len(parts)])
		return Box{X: r.X1, Y: r.Y1, W: r.X2 - r.X1, H: r.Y2 - r.Y1}, true
	}
	return Box{}, false
}
