package template

// Builtin returns the starter templates shipped with the engine.
// The rectangles and rules are tuned for US medical document layouts and are
// meant as a baseline; site-specific layouts should come in through LoadFile.
func Builtin() *Store {
	store, err := NewStore(
		Template{
			Name: "notes",
			FixedRects: []FixedRect{
				// Header band, often contains identifiers
				{X1: 0, Y1: 0, X2: 10000, Y2: 320},
			},
			RegexRules: []RegexRule{
				{Label: "phone", Pattern: `\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`},
				{Label: "dob_mmddyyyy", Pattern: `\b(0?[1-9]|1[0-2])[\/-](0?[1-9]|[12]\d|3[01])[\/-](\d{2}|\d{4})\b`},
				{Label: "ssn", Pattern: `\b\d{3}-\d{2}-\d{4}\b`},
				{Label: "email", Pattern: `\b[\w.\-+%]+@[\w.\-]+\.[A-Za-z]{2,}\b`},
				{Label: "mrn_like", Pattern: `\b(MRN|Medical\s*Record\s*#|Record\s*#)\s*[:#]?\s*[A-Za-z0-9\-]+\b`},
			},
			AnchorRules: []AnchorRule{
				{Label: "patient_label_block", Anchor: "Patient", DX: -40, DY: -40, W: 2400, H: 260},
				{Label: "dob_label_block", Anchor: "DOB", DX: -60, DY: -40, W: 2200, H: 260},
				{Label: "name_label_block", Anchor: "Name", DX: -60, DY: -40, W: 2400, H: 260},
			},
		},
		Template{
			Name: "surgery_center",
			FixedRects: []FixedRect{
				// Facility header band
				{X1: 0, Y1: 0, X2: 10000, Y2: 380},
			},
			RegexRules: []RegexRule{
				{Label: "phone", Pattern: `\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`},
				{Label: "dob_mmddyyyy", Pattern: `\b(0?[1-9]|1[0-2])[\/-](0?[1-9]|[12]\d|3[01])[\/-](\d{2}|\d{4})\b`},
				{Label: "account_like", Pattern: `\b(Account\s*#|Acct\s*#|Encounter\s*#)\s*[:#]?\s*[A-Za-z0-9\-]+\b`},
				{Label: "mrn_like", Pattern: `\b(MRN|Medical\s*Record\s*#|Record\s*#)\s*[:#]?\s*[A-Za-z0-9\-]+\b`},
			},
			AnchorRules: []AnchorRule{
				{Label: "patient_label_block", Anchor: "Patient", DX: -40, DY: -40, W: 2800, H: 280},
				{Label: "surgeon_label_block", Anchor: "Surgeon", DX: -40, DY: -40, W: 2800, H: 280},
				{Label: "dob_label_block", Anchor: "DOB", DX: -60, DY: -40, W: 2400, H: 280},
			},
		},
	)
	if err != nil {
		// The builtin patterns are fixed at compile time; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return store
}
