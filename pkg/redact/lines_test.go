package redact

import (
	"testing"

	"github.com/evolve1/redactor/pkg/ocr"
)

func word(text string, x, y int) ocr.Word {
	return ocr.Word{Text: text, X: x, Y: y, W: 50, H: 20, Confidence: 90}
}

func TestGroupLines_MergesWithinTolerance(t *testing.T) {
	words := []ocr.Word{word("a", 0, 100), word("b", 60, 112)}
	lines := GroupLines(words, DefaultLineTolerance)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(lines[0].Words) != 2 {
		t.Errorf("got %d words in line, want 2", len(lines[0].Words))
	}
	// reference y moves to the midpoint of old reference and new word
	if lines[0].Y != 106 {
		t.Errorf("line reference y = %d, want 106", lines[0].Y)
	}
}

func TestGroupLines_ToleranceBoundary(t *testing.T) {
	// exactly tolerance pixels away merges; one more does not
	merged := GroupLines([]ocr.Word{word("a", 0, 100), word("b", 60, 114)}, 14)
	if len(merged) != 1 {
		t.Errorf("y=100 and y=114 with tolerance 14: got %d lines, want 1", len(merged))
	}

	split := GroupLines([]ocr.Word{word("a", 0, 100), word("b", 60, 115)}, 14)
	if len(split) != 2 {
		t.Errorf("y=100 and y=115 with tolerance 14: got %d lines, want 2", len(split))
	}
}

func TestGroupLines_RunningAverage(t *testing.T) {
	// the second word pulls the reference y to 106, which brings y=118
	// within tolerance even though it is 18px from the first word
	words := []ocr.Word{word("a", 0, 100), word("b", 60, 112), word("c", 120, 118)}
	lines := GroupLines(words, 14)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(lines[0].Words) != 3 {
		t.Errorf("got %d words, want 3", len(lines[0].Words))
	}
}

func TestGroupLines_FarApartNeverMerge(t *testing.T) {
	lines := GroupLines([]ocr.Word{word("a", 0, 100), word("b", 0, 200)}, 14)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Y != 100 || lines[1].Y != 200 {
		t.Errorf("line reference ys = %d, %d, want 100, 200", lines[0].Y, lines[1].Y)
	}
}

func TestGroupLines_SortsByYThenX(t *testing.T) {
	// words arrive unordered; grouping must sort by (y, x) first
	words := []ocr.Word{word("right", 100, 102), word("below", 0, 300), word("left", 0, 100)}
	lines := GroupLines(words, 14)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first := lines[0].Words
	if len(first) != 2 || first[0].Text != "left" || first[1].Text != "right" {
		t.Errorf("first line words out of order: %+v", first)
	}
}

func TestGroupLines_Empty(t *testing.T) {
	if lines := GroupLines(nil, 14); len(lines) != 0 {
		t.Errorf("got %d lines for no words, want 0", len(lines))
	}
}
