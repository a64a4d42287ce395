// Package docai extracts OCR word boxes from Google Document AI.
//
// It implements the same word-extraction contract as the local Tesseract
// engine, so the redaction pipeline can run against a cloud OCR processor for
// documents where local recognition quality is insufficient. Each page image
// is submitted as a standalone raw document and the returned tokens are
// converted to pixel-space word boxes.
package docai

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/evolve1/redactor/pkg/ocr"
)

// Config identifies the Document AI processor to use.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`

	// CredentialsFile is a service account key path; empty uses application
	// default credentials.
	CredentialsFile string `yaml:"credentials_file"`
}

// Engine is an ocr.Engine backed by a Document AI OCR processor.
type Engine struct {
	cfg Config
}

// New returns a Document AI engine for the given processor.
func New(cfg Config) (*Engine, error) {
	if cfg.ProjectID == "" || cfg.Location == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("docai: project_id, location and processor_id are required")
	}
	return &Engine{cfg: cfg}, nil
}

// Words submits the page image to Document AI and returns the recognized
// words, filtered by the shared confidence threshold.
func (e *Engine) Words(ctx context.Context, img image.Image) ([]ocr.Word, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}

	doc, err := e.process(ctx, buf.Bytes(), "image/png")
	if err != nil {
		return nil, err
	}

	var words []ocr.Word
	for _, page := range doc.Pages {
		for _, token := range page.Tokens {
			if w, ok := wordFromToken(token, page.Dimension, doc.Text); ok {
				words = append(words, w)
			}
		}
	}
	return ocr.FilterConfidence(words, ocr.MinConfidence), nil
}

// process sends raw document bytes to the configured processor and returns the
// Document proto response.
func (e *Engine) process(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error) {
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", e.cfg.Location)

	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if e.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(e.cfg.CredentialsFile))
	}
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	req := &documentaipb.ProcessRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			e.cfg.ProjectID, e.cfg.Location, e.cfg.ProcessorID),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return resp.Document, nil
}

// wordFromToken converts a Document AI token to a pixel-space word box.
// Token coordinates come as vertices normalized to [0,1] and are scaled by the
// page dimension; confidence comes as [0,1] and is scaled to the 0-100 range
// the rest of the system uses.
func wordFromToken(token *documentaipb.Document_Page_Token, dim *documentaipb.Document_Page_Dimension, fullText string) (ocr.Word, bool) {
	layout := token.GetLayout()
	if layout == nil || layout.BoundingPoly == nil || dim == nil ||
		len(layout.BoundingPoly.NormalizedVertices) < 4 {
		return ocr.Word{}, false
	}

	text := strings.TrimSpace(textFromLayout(layout, fullText))
	if text == "" {
		return ocr.Word{}, false
	}

	vertices := layout.BoundingPoly.NormalizedVertices
	x1 := int(vertices[0].X*dim.Width + 0.5)
	y1 := int(vertices[0].Y*dim.Height + 0.5)
	x2 := int(vertices[2].X*dim.Width + 0.5)
	y2 := int(vertices[2].Y*dim.Height + 0.5)

	return ocr.Word{
		Text:       text,
		X:          x1,
		Y:          y1,
		W:          x2 - x1,
		H:          y2 - y1,
		Confidence: float64(layout.Confidence * 100),
	}, true
}

// textFromLayout extracts text from a layout's text anchor segments.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	var result strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}
