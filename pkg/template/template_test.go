package template

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewStore_CompilesPatterns(t *testing.T) {
	store, err := NewStore(Template{
		Name:       "t",
		RegexRules: []RegexRule{{Label: "ssn", Pattern: `\b\d{3}-\d{2}-\d{4}\b`}},
	})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	tpl, err := store.Lookup("t")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	re := tpl.RegexRules[0].Regexp()
	if re == nil {
		t.Fatal("rule not compiled")
	}
	// patterns are case-insensitive by construction
	if !re.MatchString("123-45-6789") {
		t.Error("compiled pattern does not match its own example")
	}
	if got := len(tpl.Patterns()); got != 1 {
		t.Errorf("Patterns() returned %d entries, want 1", got)
	}
}

func TestNewStore_MalformedPattern(t *testing.T) {
	_, err := NewStore(Template{
		Name:       "bad",
		RegexRules: []RegexRule{{Label: "broken", Pattern: `([unclosed`}},
	})
	if err == nil {
		t.Fatal("NewStore() accepted an uncompilable pattern")
	}
}

func TestNewStore_NameValidation(t *testing.T) {
	if _, err := NewStore(Template{Name: ""}); err == nil {
		t.Error("NewStore() accepted an empty template name")
	}
	if _, err := NewStore(Template{Name: "dup"}, Template{Name: "dup"}); err == nil {
		t.Error("NewStore() accepted a duplicate template name")
	}
}

func TestStore_LookupUnknown(t *testing.T) {
	store, err := NewStore(Template{Name: "only"})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	_, err = store.Lookup("missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestBuiltin(t *testing.T) {
	store := Builtin()
	want := []string{"notes", "surgery_center"}
	if got := store.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	notes, err := store.Lookup("notes")
	if err != nil {
		t.Fatalf("Lookup(notes) failed: %v", err)
	}
	if len(notes.FixedRects) != 1 || notes.FixedRects[0].Y2 != 320 {
		t.Errorf("notes fixed rects = %+v, want a single header band to y=320", notes.FixedRects)
	}
	for _, rule := range notes.RegexRules {
		if rule.Regexp() == nil {
			t.Errorf("builtin rule %q not compiled", rule.Label)
		}
	}

	samples := map[string]string{
		"phone":        "(555) 123-4567",
		"dob_mmddyyyy": "1/2/1990",
		"ssn":          "123-45-6789",
		"email":        "jane.doe+x@example.org",
		"mrn_like":     "mrn: A12-99",
	}
	for _, rule := range notes.RegexRules {
		sample, ok := samples[rule.Label]
		if !ok {
			continue
		}
		if !rule.Regexp().MatchString(sample) {
			t.Errorf("builtin %s rule does not match %q", rule.Label, sample)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := `
templates:
  - name: clinic_letterhead
    fixed_rects:
      - {x1: 0, y1: 0, x2: 10000, y2: 300}
    regex_rules:
      - {label: phone, pattern: '\b\d{3}-\d{3}-\d{4}\b'}
    anchor_rules:
      - {label: patient_block, anchor: Patient, dx: -40, dy: -40, w: 2400, h: 260}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	templates, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("got %d templates, want 1", len(templates))
	}
	tpl := templates[0]
	if tpl.Name != "clinic_letterhead" {
		t.Errorf("name = %q", tpl.Name)
	}
	if len(tpl.FixedRects) != 1 || tpl.FixedRects[0].X2 != 10000 {
		t.Errorf("fixed rects = %+v", tpl.FixedRects)
	}
	if len(tpl.AnchorRules) != 1 || tpl.AnchorRules[0].DX != -40 {
		t.Errorf("anchor rules = %+v", tpl.AnchorRules)
	}

	// loaded templates still need to pass through NewStore
	store, err := NewStore(templates...)
	if err != nil {
		t.Fatalf("NewStore(loaded) failed: %v", err)
	}
	got, err := store.Lookup("clinic_letterhead")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got.RegexRules[0].Regexp() == nil {
		t.Error("loaded rule not compiled by NewStore")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() succeeded on a missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("templates: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(empty); err == nil {
		t.Error("LoadFile() succeeded on a file with no templates")
	}
}
