package ocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// WordsFromHOCR extracts the word boxes from a single page of hOCR data,
// the HTML-based format Tesseract emits for positional OCR results.
//
// Only the 'ocrx_word' elements matter here; the surrounding page/area/line
// hierarchy is flattened away because the redaction engine reconstructs lines
// itself from raw word geometry. Words appear in document order, which for
// Tesseract is reading order.
//
// Words without an x_wconf property get the Unscored confidence sentinel.
// No confidence filtering happens here; that is the engine's job.
func WordsFromHOCR(data []byte) ([]Word, error) {
	decoded, err := decodeCharset(data)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var words []Word
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.Contains(attrVal(n, "class"), "ocrx_word") {
			if w, ok := wordFromNode(n); ok {
				words = append(words, w)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return words, nil
}

// decodeCharset converts hOCR data to UTF-8 when the document declares a
// non-UTF-8 charset in its meta tags.
func decodeCharset(data []byte) ([]byte, error) {
	content := string(data)
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return data, nil
	}
	snippet := content[idx+len("charset="):]
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>'
	})
	if len(fields) == 0 || strings.EqualFold(fields[0], "utf-8") {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s hOCR: %w", fields[0], err)
	}
	return decoded, nil
}

// wordFromNode builds a Word from an ocrx_word element.
// The title attribute carries the geometry, e.g.
// "bbox 100 200 300 400; x_wconf 95".
func wordFromNode(n *html.Node) (Word, bool) {
	word := Word{Confidence: Unscored}

	props := parseTitle(attrVal(n, "title"))
	bbox, ok := props["bbox"]
	if !ok || len(bbox) < 4 {
		return Word{}, false
	}
	x1, _ := strconv.Atoi(bbox[0])
	y1, _ := strconv.Atoi(bbox[1])
	x2, _ := strconv.Atoi(bbox[2])
	y2, _ := strconv.Atoi(bbox[3])
	word.X = x1
	word.Y = y1
	word.W = x2 - x1
	word.H = y2 - y1

	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		if c, err := strconv.ParseFloat(conf[0], 64); err == nil {
			word.Confidence = c
		}
	}

	word.Text = strings.TrimSpace(textContent(n))
	if word.Text == "" {
		return Word{}, false
	}
	return word, true
}

// parseTitle breaks down an hOCR title attribute into its properties.
func parseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(strings.TrimSpace(part))
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// textContent gathers all text from a node and its children.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += textContent(c)
	}
	return text
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
