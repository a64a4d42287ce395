// Package batch processes groups of scanned PDFs through the redaction
// pipeline and packages the results for download.
//
// Documents within a batch are independent: a fatal error in one document
// (unknown template aside, which fails the whole batch up front) is recorded
// in that document's report and the remaining documents continue. Pages within
// a document run concurrently; documents run sequentially so the page worker
// pool stays the only source of parallelism.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evolve1/redactor/pkg/assemble"
	"github.com/evolve1/redactor/pkg/ocr"
	"github.com/evolve1/redactor/pkg/redact"
	"github.com/evolve1/redactor/pkg/template"
)

// Options selects per-batch processing behavior.
type Options struct {
	Template     string // template key, looked up before any page work
	Searchable   bool   // run the external searchable-layer tool on each output
	TextLayer    bool   // embed a native invisible OCR text layer during assembly
	ExportImages bool   // also write the redacted page images as PNG files
	Workers      int    // page worker pool bound; zero means one per CPU
}

// PageRenderer turns a PDF into page images. raster.Renderer is the production
// implementation.
type PageRenderer interface {
	RenderPages(pdf []byte) ([]image.Image, error)
}

// Processor wires the collaborators needed to redact documents.
type Processor struct {
	Templates *template.Store
	Renderer  PageRenderer
	Engine    ocr.Engine
	Tool      assemble.Tool
	Store     Store
	Logger    io.Writer
}

// Run processes the input PDFs into outDir/<batch-id>/, zips the outputs and
// reports, and records the batch in the store.
//
// An unknown template key fails immediately, before any document is touched.
// Any other per-document failure is recorded in that document's report; Run
// only errors when no document could be processed at all.
func (p *Processor) Run(ctx context.Context, inputs []string, outDir string, opts Options) (Record, error) {
	tpl, err := p.Templates.Lookup(opts.Template)
	if err != nil {
		return Record{}, err
	}
	if len(inputs) == 0 {
		return Record{}, fmt.Errorf("no input documents")
	}

	batchID := uuid.NewString()
	batchDir := filepath.Join(outDir, batchID)
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return Record{}, fmt.Errorf("failed to create batch directory: %w", err)
	}

	rec := Record{
		ID:        batchID,
		Template:  opts.Template,
		CreatedAt: time.Now(),
	}

	var zipItems []string
	for _, input := range inputs {
		report, items := p.processDocument(ctx, input, batchDir, tpl, opts)
		rec.Documents = append(rec.Documents, report)
		if report.Error == "" {
			rec.Count++
		}
		zipItems = append(zipItems, items...)

		if p.Logger != nil {
			status := "ok"
			if report.Error != "" {
				status = report.Error
			}
			fmt.Fprintf(p.Logger, "%s: %s\n", filepath.Base(input), status)
		}
	}

	if rec.Count == 0 {
		return Record{}, fmt.Errorf("all %d documents failed", len(inputs))
	}

	zipPath := filepath.Join(batchDir, batchID+".zip")
	if err := zipPaths(zipItems, zipPath); err != nil {
		return Record{}, fmt.Errorf("failed to package batch: %w", err)
	}
	rec.ZipPath = zipPath

	if p.Store != nil {
		p.Store.Put(batchID, rec)
	}
	return rec, nil
}

// processDocument redacts one PDF end to end. Failures are folded into the
// report rather than returned, so sibling documents keep going.
func (p *Processor) processDocument(ctx context.Context, input, batchDir string, tpl *template.Template, opts Options) (DocumentReport, []string) {
	report := DocumentReport{
		File:                filepath.Base(input),
		Template:            tpl.Name,
		SearchableRequested: opts.Searchable,
		ExportImages:        opts.ExportImages,
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	pdfData, err := os.ReadFile(input)
	if err != nil {
		report.Error = fmt.Sprintf("read failed: %v", err)
		return report, nil
	}

	pages, err := p.Renderer.RenderPages(pdfData)
	if err != nil {
		report.Error = fmt.Sprintf("rasterization failed: %v", err)
		return report, nil
	}

	redactOpts := redact.Options{Workers: opts.Workers, Logger: p.Logger}
	imagesDir := filepath.Join(batchDir, stem+"_images")
	if opts.ExportImages {
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			report.Error = fmt.Sprintf("image export failed: %v", err)
			return report, nil
		}
		redactOpts.ExportImage = func(page int, img image.Image) error {
			return writePNG(filepath.Join(imagesDir, fmt.Sprintf("page-%03d.png", page)), img)
		}
	}

	pipeline := redact.NewPipeline(p.Engine, tpl, redactOpts)
	results, err := pipeline.Document(ctx, pages)
	if err != nil {
		report.Error = fmt.Sprintf("redaction failed: %v", err)
		return report, nil
	}

	assemblePages := make([]assemble.Page, len(results))
	for i, res := range results {
		report.Pages = append(report.Pages, res.Report)
		words := res.Words
		if !opts.TextLayer {
			words = nil
		}
		assemblePages[i] = assemble.Page{Image: res.Image, Words: words}
	}

	cfg := assemble.DefaultConfig()
	cfg.TextLayer = opts.TextLayer
	cfg.Logger = p.Logger
	pdfOut, err := assemble.Flatten(assemblePages, cfg)
	if err != nil {
		report.Error = fmt.Sprintf("assembly failed: %v", err)
		return report, nil
	}

	outPDF := filepath.Join(batchDir, stem+".REDACTED.pdf")
	if err := os.WriteFile(outPDF, pdfOut, 0o644); err != nil {
		report.Error = fmt.Sprintf("write failed: %v", err)
		return report, nil
	}

	if opts.Searchable {
		report.SearchableSucceeded, report.SearchableError = p.applySearchable(ctx, outPDF)
	}

	items := []string{outPDF}
	if opts.ExportImages {
		items = append(items, imagesDir)
	}

	reportPath := filepath.Join(batchDir, stem+".report.json")
	if err := writeReport(reportPath, report); err == nil {
		items = append(items, reportPath)
	} else if p.Logger != nil {
		fmt.Fprintf(p.Logger, "warning: failed to write report for %s: %v\n", stem, err)
	}

	return report, items
}

// applySearchable runs the external tool against the flattened output and
// swaps the searchable version in on success. On any failure the flattened
// PDF is kept untouched and the reason is reported, never an error.
func (p *Processor) applySearchable(ctx context.Context, outPDF string) (bool, string) {
	tmp := searchableTmpPath(outPDF)
	res := p.Tool.Apply(ctx, outPDF, tmp)
	if res.Succeeded() {
		if err := os.Rename(res.Path, outPDF); err == nil {
			return true, ""
		}
		res.Err = fmt.Errorf("failed to replace flattened output")
	}
	os.Remove(tmp)
	if p.Logger != nil {
		fmt.Fprintf(p.Logger, "searchable layer skipped: %v\n", res.Err)
	}
	return false, res.Err.Error()
}

func searchableTmpPath(outPDF string) string {
	return strings.TrimSuffix(outPDF, ".pdf") + ".tmp.searchable.pdf"
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func writeReport(path string, report DocumentReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
