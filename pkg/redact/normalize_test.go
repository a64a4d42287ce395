package redact

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  DOB:  ", "dob"},
		{"Patient,", "patient"},
		{"Name:;,", "name"},
		{"Multi  Word\tPhrase", "multi word phrase"},
		{"MRN", "mrn"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
