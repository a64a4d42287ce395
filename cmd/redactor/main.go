// redactor is a command-line tool for redacting protected information from
// scanned (image-based) PDF documents.
//
// It rasterizes each page, recovers word positions with OCR, evaluates the
// selected template's redaction rules (fixed rectangles, anchor regions, and
// regex patterns), paints the matched regions opaque, and reassembles the
// pages into a flattened PDF. Outputs and per-document JSON reports are
// collected into a zip archive per batch.
//
// Usage:
//
//	redactor -template notes -out ./output document.pdf [more.pdf ...]
//
// Required flags:
//
//	-template string   Template key selecting the redaction rules
//
// Processing options:
//
//	-out string        Output directory (default "output")
//	-templates string  YAML file with additional template definitions
//	-scale float       Page render scale factor (default 2.0)
//	-workers int       Concurrent page workers (default: number of CPUs)
//	-ocr string        OCR engine, "tesseract" or "docai" (default "tesseract")
//	-lang string       Tesseract language spec, e.g. "eng" (default: tesseract default)
//	-docai-config string  YAML file with Document AI processor settings
//	-searchable        Run ocrmypdf on each output to re-embed a text layer (default true)
//	-text-layer        Embed an invisible OCR text layer during assembly instead
//	-export-images     Also write the redacted page images as PNGs
//	-list-templates    Print the available template keys and exit
//
// Examples:
//
// Redact a batch of clinic notes:
//
//	redactor -template notes -out ./redacted visit1.pdf visit2.pdf
//
// Use a site-specific layout from a YAML file, without the external tool:
//
//	redactor -templates ./layouts.yaml -template clinic_letterhead -searchable=false -text-layer in.pdf
//
// Run OCR through a Google Document AI processor instead of local Tesseract:
//
//	redactor -template notes -ocr docai -docai-config ./docai.yaml in.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evolve1/redactor/pkg/assemble"
	"github.com/evolve1/redactor/pkg/batch"
	"github.com/evolve1/redactor/pkg/docai"
	"github.com/evolve1/redactor/pkg/ocr"
	"github.com/evolve1/redactor/pkg/raster"
	"github.com/evolve1/redactor/pkg/template"
)

func main() {
	templateKey := flag.String("template", "", "Template key selecting the redaction rules")
	templateFile := flag.String("templates", "", "YAML file with additional template definitions")
	outDir := flag.String("out", "output", "Output directory")
	scale := flag.Float64("scale", raster.DefaultScale, "Page render scale factor")
	workers := flag.Int("workers", 0, "Concurrent page workers (0 = number of CPUs)")
	ocrEngine := flag.String("ocr", "tesseract", "OCR engine: tesseract or docai")
	lang := flag.String("lang", "", "Tesseract language spec, e.g. eng or eng+deu")
	docaiConfig := flag.String("docai-config", "", "YAML file with Document AI processor settings")
	searchable := flag.Bool("searchable", true, "Run ocrmypdf on each output to re-embed a text layer")
	textLayer := flag.Bool("text-layer", false, "Embed an invisible OCR text layer during assembly")
	exportImages := flag.Bool("export-images", false, "Also write the redacted page images as PNGs")
	toolTimeout := flag.Duration("tool-timeout", 5*time.Minute, "Timeout for the searchable-layer tool")
	listTemplates := flag.Bool("list-templates", false, "Print the available template keys and exit")
	flag.Parse()

	store, err := buildTemplateStore(*templateFile)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if *listTemplates {
		fmt.Println(strings.Join(store.Names(), "\n"))
		return
	}

	if *templateKey == "" {
		fmt.Println("Error: Must provide -template (see -list-templates)")
		os.Exit(1)
	}
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Error: No input PDF files given")
		os.Exit(1)
	}
	for _, input := range inputs {
		if !strings.EqualFold(lastExt(input), ".pdf") {
			fmt.Printf("Error: %s is not a PDF file\n", input)
			os.Exit(1)
		}
	}

	engine, err := buildEngine(*ocrEngine, *lang, *docaiConfig)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	processor := &batch.Processor{
		Templates: store,
		Renderer:  raster.Renderer{Scale: *scale},
		Engine:    engine,
		Tool:      assemble.Tool{Timeout: *toolTimeout},
		Store:     batch.NewMemoryStore(),
		Logger:    os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, err := processor.Run(ctx, inputs, *outDir, batch.Options{
		Template:     *templateKey,
		Searchable:   *searchable,
		TextLayer:    *textLayer,
		ExportImages: *exportImages,
		Workers:      *workers,
	})
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Batch %s: %d of %d documents redacted\n", rec.ID, rec.Count, len(inputs))
	for _, doc := range rec.Documents {
		if doc.Error != "" {
			fmt.Printf("  %s: FAILED: %s\n", doc.File, doc.Error)
		}
	}
	fmt.Println("Archive:", rec.ZipPath)
}

// buildTemplateStore combines the builtin templates with any user-supplied
// YAML definitions into a single store.
func buildTemplateStore(path string) (*template.Store, error) {
	if path == "" {
		return template.Builtin(), nil
	}
	extra, err := template.LoadFile(path)
	if err != nil {
		return nil, err
	}

	builtin := template.Builtin()
	var all []template.Template
	for _, name := range builtin.Names() {
		t, err := builtin.Lookup(name)
		if err != nil {
			return nil, err
		}
		all = append(all, *t)
	}
	all = append(all, extra...)
	return template.NewStore(all...)
}

// buildEngine selects the OCR backend for the run.
func buildEngine(name, lang, docaiConfig string) (ocr.Engine, error) {
	switch name {
	case "tesseract":
		engine := ocr.NewTesseract()
		engine.Language = lang
		return engine, nil
	case "docai":
		if docaiConfig == "" {
			return nil, fmt.Errorf("-ocr docai requires -docai-config")
		}
		data, err := os.ReadFile(docaiConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to read Document AI config: %w", err)
		}
		var cfg docai.Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse Document AI config: %w", err)
		}
		return docai.New(cfg)
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want tesseract or docai)", name)
	}
}

func lastExt(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}
