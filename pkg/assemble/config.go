package assemble

import "io"

// Config holds options for flattened PDF assembly.
type Config struct {
	// TextLayer embeds an invisible, selectable text layer built from the OCR
	// words of each page. The layer restores search/copy without running any
	// external tool. Callers must pass only words that survived redaction;
	// the redaction pipeline drops words covered by a painted rectangle before
	// they reach assembly.
	TextLayer bool

	// LayerName is the base name of the embedded text layer; the page number
	// is appended per page.
	LayerName string

	// Debug renders the text layer visibly in red instead of hiding it.
	Debug bool

	// Logger receives assembly warnings; nil disables them.
	Logger io.Writer

	Font FontConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TextLayer: false,
		LayerName: "OCR Text",
		Debug:     false,
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for text layer rendering.
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont uses Helvetica, which renders reliably across PDF viewers.
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}
