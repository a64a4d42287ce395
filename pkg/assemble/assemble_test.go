package assemble

import (
	"bytes"
	"compress/zlib"
	"context"
	"image"
	"io"
	"path/filepath"
	"testing"

	"github.com/evolve1/redactor/pkg/ocr"
)

// inflatedStreams decompresses every stream object in the PDF and returns the
// concatenated contents, so tests can assert on what text the document
// actually carries. Streams that are not zlib data are appended raw.
func inflatedStreams(data []byte) []byte {
	var out []byte
	rest := data
	for {
		i := bytes.Index(rest, []byte(">>\nstream\n"))
		if i < 0 {
			return out
		}
		body := rest[i+len(">>\nstream\n"):]
		j := bytes.Index(body, []byte("endstream"))
		if j < 0 {
			return out
		}
		raw := bytes.TrimSuffix(body[:j], []byte("\n"))
		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil {
				out = append(out, inflated...)
			}
			r.Close()
		} else {
			out = append(out, raw...)
		}
		rest = body[j:]
	}
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func TestFlatten(t *testing.T) {
	pages := []Page{
		{Image: testImage(200, 300)},
		{Image: testImage(300, 200)},
	}
	data, err := Flatten(pages, DefaultConfig())
	if err != nil {
		t.Fatalf("Flatten() failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("/Count 2")) {
		t.Error("output does not declare two pages")
	}
}

func TestFlatten_NoPages(t *testing.T) {
	if _, err := Flatten(nil, DefaultConfig()); err == nil {
		t.Error("Flatten() succeeded with no pages")
	}
}

func TestFlatten_TextLayer(t *testing.T) {
	words := []ocr.Word{
		{Text: "Patient", X: 10, Y: 20, W: 80, H: 24, Confidence: 95},
		{Text: "Doe", X: 100, Y: 20, W: 40, H: 24, Confidence: 92},
	}
	config := DefaultConfig()
	config.TextLayer = true

	data, err := Flatten([]Page{{Image: testImage(400, 300), Words: words}}, config)
	if err != nil {
		t.Fatalf("Flatten() failed: %v", err)
	}
	// the optional content group carries the layer name
	if !bytes.Contains(data, []byte("OCR Text")) {
		t.Error("text layer group not present in output")
	}

	// the layer text is inside compressed content streams, not the raw bytes
	streams := inflatedStreams(data)
	for _, w := range words {
		if !bytes.Contains(streams, []byte(w.Text)) {
			t.Errorf("word %q not found in content streams", w.Text)
		}
	}
}

// TestFlatten_TextLayerCarriesOnlyGivenWords pins the flattening guarantee:
// the only extractable text in the document is the word set the caller passed
// in. Text that was painted over upstream never reaches Flatten, so it cannot
// be recovered from the output.
func TestFlatten_TextLayerCarriesOnlyGivenWords(t *testing.T) {
	config := DefaultConfig()
	config.TextLayer = true

	data, err := Flatten([]Page{{
		Image: testImage(400, 300),
		Words: []ocr.Word{{Text: "Aftercare", X: 10, Y: 20, W: 90, H: 24, Confidence: 95}},
	}}, config)
	if err != nil {
		t.Fatalf("Flatten() failed: %v", err)
	}

	streams := inflatedStreams(data)
	if !bytes.Contains(streams, []byte("Aftercare")) {
		t.Fatal("passed word not found in content streams")
	}
	if bytes.Contains(streams, []byte("01/02/1990")) {
		t.Error("content streams carry text that was never passed in")
	}
}

func TestTool_Missing(t *testing.T) {
	tool := Tool{Command: "definitely-not-installed-tool-xyz"}
	res := tool.Apply(context.Background(), "in.pdf", "out.pdf")
	if !res.ToolMissing {
		t.Error("ToolMissing not set for an absent command")
	}
	if res.Succeeded() {
		t.Error("Succeeded() true for an absent command")
	}
	if res.Err == nil {
		t.Error("Err not set for an absent command")
	}
}

func TestTool_RunFailureIsNotMissing(t *testing.T) {
	// 'false' exists everywhere and always exits non-zero
	tool := Tool{Command: "false"}
	dir := t.TempDir()
	res := tool.Apply(context.Background(), filepath.Join(dir, "in.pdf"), filepath.Join(dir, "out.pdf"))
	if res.ToolMissing {
		t.Error("ToolMissing set even though the command exists")
	}
	if res.Succeeded() {
		t.Error("Succeeded() true for a failing command")
	}
}

func TestTool_Success(t *testing.T) {
	tool := Tool{Command: "true"}
	res := tool.Apply(context.Background(), "in.pdf", "out.pdf")
	if !res.Succeeded() {
		t.Fatalf("Apply() failed: %v", res.Err)
	}
	if res.Path != "out.pdf" {
		t.Errorf("Path = %q, want out.pdf", res.Path)
	}
}
