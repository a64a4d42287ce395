// Package template defines named redaction rule sets for scanned document layouts.
//
// A Template bundles three rule families that are evaluated against every page
// of a document, in a fixed order:
//
// - FixedRect: a constant pixel rectangle applied regardless of page content
// - RegexRule: a pattern evaluated case-insensitively against reconstructed line text
// - AnchorRule: a rectangle positioned relative to a literal phrase located by OCR
//
// Templates are immutable once loaded. Regex patterns are compiled eagerly when
// a Store is built, so a malformed pattern fails the load instead of a page in
// the middle of a batch.
//
// Main Types:
//
// - Template: a named bundle of redaction rules
// - Store: an immutable lookup of templates by name
//
// Main Functions:
//
// - NewStore: validates and compiles templates into a Store
// - Builtin: returns the starter templates shipped with the engine
// - LoadFile: reads additional template definitions from a YAML file
package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrTemplateNotFound is returned by Store.Lookup for an unrecognized key.
var ErrTemplateNotFound = errors.New("template not found")

// FixedRect is a constant rectangle in page-image pixel coordinates,
// applied to every page regardless of content.
type FixedRect struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// RegexRule matches a pattern against the text of each reconstructed OCR line.
// Patterns are compiled with the case-insensitive flag.
type RegexRule struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern. It is non-nil for any rule inside a
// Store; rules constructed by hand must go through NewStore first.
func (r RegexRule) Regexp() *regexp.Regexp { return r.re }

// AnchorRule defines a redaction region relative to the top-left corner of
// wherever the Anchor phrase is found on the page. A page where the anchor is
// not found contributes no rectangle.
type AnchorRule struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
	DX     int    `yaml:"dx"`
	DY     int    `yaml:"dy"`
	W      int    `yaml:"w"`
	H      int    `yaml:"h"`
}

// Template is a named, immutable bundle of redaction rules selected per job.
type Template struct {
	Name        string       `yaml:"name"`
	FixedRects  []FixedRect  `yaml:"fixed_rects"`
	RegexRules  []RegexRule  `yaml:"regex_rules"`
	AnchorRules []AnchorRule `yaml:"anchor_rules"`
}

// Patterns returns the compiled regexes of all regex rules, in rule order.
func (t *Template) Patterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(t.RegexRules))
	for _, r := range t.RegexRules {
		patterns = append(patterns, r.re)
	}
	return patterns
}

// Store holds an immutable set of templates keyed by name.
// It is safe for concurrent use after construction.
type Store struct {
	templates map[string]*Template
}

// NewStore validates the given templates, compiles their regex rules, and
// returns a Store. A template with an empty name, a duplicate name, or a
// pattern that fails to compile makes the whole construction fail.
func NewStore(templates ...Template) (*Store, error) {
	store := &Store{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template with empty name")
		}
		if _, exists := store.templates[t.Name]; exists {
			return nil, fmt.Errorf("duplicate template %q", t.Name)
		}
		compiled := t
		compiled.RegexRules = make([]RegexRule, len(t.RegexRules))
		copy(compiled.RegexRules, t.RegexRules)
		for i := range compiled.RegexRules {
			rule := &compiled.RegexRules[i]
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("template %q rule %q: %w", t.Name, rule.Label, err)
			}
			rule.re = re
		}
		store.templates[t.Name] = &compiled
	}
	return store, nil
}

// Lookup returns the template registered under key.
// An unknown key returns an error wrapping ErrTemplateNotFound; the caller is
// expected to surface this before any page processing starts.
func (s *Store) Lookup(key string) (*Template, error) {
	t, ok := s.templates[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrTemplateNotFound, key, s.Names())
	}
	return t, nil
}

// Names returns the registered template names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
