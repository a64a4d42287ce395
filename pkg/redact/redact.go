// Package redact implements the detection-and-redaction engine for scanned
// (image-based) PDF pages.
//
// The engine takes OCR word boxes for a page plus a rule template and produces
// an opaque-filled page image. Detection runs three rule families in a fixed
// order:
//
// - fixed rectangles, applied unconditionally
// - anchor regions, positioned relative to literal phrases found via OCR
// - regex rules, evaluated against reconstructed line text and mapped back
//   to the matched words' pixel boxes
//
// Rules that match nothing contribute nothing; geometry that falls outside the
// page is clamped, never rejected. Detection is a pure function of the page
// image and the template, so repeated runs produce identical output.
//
// Main Types:
//
// - Pipeline: per-page and per-document orchestration with a bounded worker pool
// - PageReport: diagnostic rectangle counts per rule family
//
// Main Functions:
//
// - GroupLines: clusters word boxes into text lines by vertical proximity
// - FindAnchor: resolves a literal phrase to its bounding box
// - PatternRects: maps regex matches on line text back to pixel rectangles
// - FillRects: clamps and fills rectangles onto the page image
package redact

import (
	"context"
	"fmt"
	"image"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/evolve1/redactor/pkg/ocr"
	"github.com/evolve1/redactor/pkg/template"
)

// Options holds tuning knobs for the page pipeline.
type Options struct {
	// LineTolerance is the vertical grouping tolerance in pixels.
	// Zero means DefaultLineTolerance.
	LineTolerance int

	// Workers bounds the number of pages processed concurrently.
	// Zero means one worker per CPU.
	Workers int

	// ExportImage, when set, receives each redacted page image (1-based page
	// number) after compositing. Used for the optional image-export option.
	ExportImage func(page int, img image.Image) error

	// Logger receives per-page diagnostics; nil disables them.
	Logger io.Writer
}

// DefaultOptions returns the options used when a zero value is too magic.
func DefaultOptions() Options {
	return Options{
		LineTolerance: DefaultLineTolerance,
		Workers:       runtime.NumCPU(),
	}
}

// PageReport carries diagnostic rectangle counts for one processed page.
// The counts are per rule family as produced by detection, before clamping.
type PageReport struct {
	Page        int `json:"page"`
	FixedCount  int `json:"fixed_rects"`
	AnchorCount int `json:"anchor_rects"`
	RegexCount  int `json:"regex_rects"`
	TotalCount  int `json:"total_rects"`
}

// PageResult is the outcome of redacting a single page.
// Words holds only the words left uncovered by the painted rectangles; words
// overlapping a redaction fill are dropped so that a downstream text layer
// cannot reintroduce the very text the fill removed.
type PageResult struct {
	Image  *image.RGBA
	Words  []ocr.Word
	Report PageReport
}

// Pipeline runs detection and redaction for the pages of one document against
// a single template. The template is read-only and pages share no state, so
// pages are processed as independent tasks.
type Pipeline struct {
	engine ocr.Engine
	tpl    *template.Template
	opts   Options
}

// NewPipeline builds a pipeline for the given OCR engine and template.
// Zero option fields are filled from DefaultOptions.
func NewPipeline(engine ocr.Engine, tpl *template.Template, opts Options) *Pipeline {
	defaults := DefaultOptions()
	if opts.LineTolerance == 0 {
		opts.LineTolerance = defaults.LineTolerance
	}
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	return &Pipeline{engine: engine, tpl: tpl, opts: opts}
}

// Page redacts a single page image. page is the 1-based page number used in
// the report and the export hook.
func (p *Pipeline) Page(ctx context.Context, page int, img image.Image) (PageResult, error) {
	words, err := p.engine.Words(ctx, img)
	if err != nil {
		return PageResult{}, fmt.Errorf("page %d: word extraction failed: %w", page, err)
	}

	rects := make([]Rect, 0, len(p.tpl.FixedRects))
	for _, f := range p.tpl.FixedRects {
		rects = append(rects, Rect{X1: f.X1, Y1: f.Y1, X2: f.X2, Y2: f.Y2})
	}

	var anchorRects []Rect
	for _, rule := range p.tpl.AnchorRules {
		box, ok := FindAnchor(words, rule.Anchor)
		if !ok {
			continue
		}
		anchorRects = append(anchorRects, Rect{
			X1: box.X + rule.DX,
			Y1: box.Y + rule.DY,
			X2: box.X + rule.DX + rule.W,
			Y2: box.Y + rule.DY + rule.H,
		})
	}

	lines := GroupLines(words, p.opts.LineTolerance)
	regexRects := PatternRects(lines, p.tpl.Patterns())

	rects = append(rects, anchorRects...)
	rects = append(rects, regexRects...)

	out := toRGBA(img)
	applied := FillRects(out, rects)
	if p.opts.Logger != nil {
		fmt.Fprintf(p.opts.Logger, "page %d: %d words, %d rects (%d painted)\n",
			page, len(words), len(rects), applied)
	}

	if p.opts.ExportImage != nil {
		if err := p.opts.ExportImage(page, out); err != nil {
			return PageResult{}, fmt.Errorf("page %d: image export failed: %w", page, err)
		}
	}

	bounds := out.Bounds()
	return PageResult{
		Image: out,
		Words: visibleWords(words, rects, bounds.Dx(), bounds.Dy()),
		Report: PageReport{
			Page:        page,
			FixedCount:  len(p.tpl.FixedRects),
			AnchorCount: len(anchorRects),
			RegexCount:  len(regexRects),
			TotalCount:  len(rects),
		},
	}, nil
}

// Document redacts all pages of a document. Pages run concurrently under a
// bounded worker pool; results come back in page order regardless of
// completion order. The first page error cancels the remaining work.
func (p *Pipeline) Document(ctx context.Context, pages []image.Image) ([]PageResult, error) {
	results := make([]PageResult, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, img := range pages {
		g.Go(func() error {
			res, err := p.Page(ctx, i+1, img)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
