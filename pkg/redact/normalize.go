package redact

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun       = regexp.MustCompile(`\s+`)
	trailingAnchorPunct = regexp.MustCompile(`[,:;]+$`)
)

// Normalize canonicalizes OCR text for comparison: runs of whitespace collapse
// to a single space, the result is trimmed and lowercased, and trailing
// comma/colon/semicolon characters are stripped so a label like "DOB:" matches
// the anchor "DOB".
//
// Normalize is used for anchor matching only. Regex rules run against the
// original-case reconstructed line text with case-insensitive patterns.
func Normalize(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	return trailingAnchorPunct.ReplaceAllString(s, "")
}
