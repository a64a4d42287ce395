package redact

import (
	"sort"

	"github.com/evolve1/redactor/pkg/ocr"
)

// DefaultLineTolerance is the vertical distance, in pixels, within which two
// words are considered part of the same text line.
const DefaultLineTolerance = 14

// Line is a group of words sharing an approximate vertical position.
// Y is the line's reference coordinate: the running average of the member
// words' y values, updated as words are attached. Words stays in arrival
// order, which is (y, x) sort order, not strict left-to-right order; text
// reconstruction re-sorts by x.
type Line struct {
	Y     int
	Words []ocr.Word
}

// GroupLines clusters the page's words into text lines by vertical proximity.
//
// Words are first sorted by (y, x). Each word then attaches to the first
// existing line (in creation order) whose reference y is within tolerance,
// pulling the line's reference y to the midpoint of its old value and the
// word's y; otherwise the word starts a new line. The comparison is inclusive:
// a word exactly tolerance pixels away merges.
func GroupLines(words []ocr.Word, tolerance int) []Line {
	sorted := make([]ocr.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	for _, w := range sorted {
		placed := false
		for i := range lines {
			if abs(w.Y-lines[i].Y) <= tolerance {
				lines[i].Words = append(lines[i].Words, w)
				lines[i].Y = (lines[i].Y + w.Y) / 2
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, Line{Y: w.Y, Words: []ocr.Word{w}})
		}
	}
	return lines
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
