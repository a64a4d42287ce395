package redact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/evolve1/redactor/pkg/ocr"
)

// Horizontal and vertical padding, in pixels, added to each side of a pattern
// match rectangle so the fill fully covers glyph ascenders, descenders and
// OCR box jitter.
const (
	PatternPadX = 12
	PatternPadY = 8
)

// PatternRects evaluates regex patterns against the reconstructed text of each
// line and maps the matches back to pixel rectangles.
//
// For every line, the member words are sorted by x and joined with single
// spaces; each word's character span within the joined text is recorded. Every
// non-overlapping match of every pattern is then mapped to the words whose
// spans overlap the match span. The overlap test is inclusive on both ends
// (wordEnd >= matchStart && wordStart <= matchEnd), so a word whose span
// merely touches a match boundary is included. The match rectangle is the
// union of the hit words' boxes expanded by the fixed padding. Matches that
// hit no words contribute nothing.
func PatternRects(lines []Line, patterns []*regexp.Regexp) []Rect {
	var rects []Rect
	for _, line := range lines {
		lineWords := make([]ocr.Word, len(line.Words))
		copy(lineWords, line.Words)
		sort.SliceStable(lineWords, func(i, j int) bool {
			return lineWords[i].X < lineWords[j].X
		})

		spans := make([][2]int, len(lineWords))
		var b strings.Builder
		cursor := 0
		for i, w := range lineWords {
			if i > 0 {
				b.WriteByte(' ')
			}
			spans[i] = [2]int{cursor, cursor + len(w.Text)}
			cursor += len(w.Text) + 1
			b.WriteString(w.Text)
		}
		lineText := b.String()

		for _, pattern := range patterns {
			for _, m := range pattern.FindAllStringIndex(lineText, -1) {
				start, end := m[0], m[1]
				var hit []ocr.Word
				for i, w := range lineWords {
					if spans[i][1] >= start && spans[i][0] <= end {
						hit = append(hit, w)
					}
				}
				if len(hit) == 0 {
					continue
				}
				r := unionWords(hit)
				rects = append(rects, Rect{
					X1: r.X1 - PatternPadX,
					Y1: r.Y1 - PatternPadY,
					X2: r.X2 + PatternPadX,
					Y2: r.Y2 + PatternPadY,
				})
			}
		}
	}
	return rects
}
