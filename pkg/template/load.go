package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// templateFile is the on-disk YAML layout for user-supplied templates.
type templateFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadFile reads template definitions from a YAML file.
// The returned templates are not yet compiled; pass them to NewStore together
// with any builtin templates they should extend.
//
// Expected layout:
//
//	templates:
//	  - name: clinic_letterhead
//	    fixed_rects:
//	      - {x1: 0, y1: 0, x2: 10000, y2: 300}
//	    regex_rules:
//	      - {label: phone, pattern: '\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b'}
//	    anchor_rules:
//	      - {label: patient_block, anchor: Patient, dx: -40, dy: -40, w: 2400, h: 260}
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template file %s: %w", path, err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("no templates defined in %s", path)
	}
	return file.Templates, nil
}
