package model

import "time"

// VendorPattern is the unit of learned knowledge: a trigger text that, when it
// appears in a vendor's raw invoice text, activates a correction rule on a
// target field. Patterns are uniquely identified by (vendor, pattern) and are
// reinforced rather than duplicated on repeat learning.
type VendorPattern struct {
	Vendor       string    `json:"vendor"`
	Pattern      string    `json:"pattern"`
	Field        string    `json:"field"`
	Action       string    `json:"action"`
	Confidence   float64   `json:"confidence"`
	TimesApplied int       `json:"timesApplied"`
	LastUsed     time.Time `json:"lastUsed"`
}

// CorrectionPattern is part of the persisted schema, retained for forward
// extension; the core pipeline does not populate it.
type CorrectionPattern struct {
	Pattern      string  `json:"pattern"`
	Field        string  `json:"field"`
	Correction   string  `json:"correction"`
	Confidence   float64 `json:"confidence"`
	TimesApplied int     `json:"timesApplied"`
}

// ResolutionRecord is part of the persisted schema, retained for forward
// extension; the core pipeline does not populate it.
type ResolutionRecord struct {
	InvoiceID   string        `json:"invoiceId"`
	Decision    FinalDecision `json:"decision"`
	Corrections []string      `json:"corrections"`
	Timestamp   time.Time     `json:"timestamp"`
}

// MemoryDatabase is the root persisted aggregate: three ordered collections
// owned exclusively by the pattern memory store.
type MemoryDatabase struct {
	VendorPatterns     []VendorPattern     `json:"vendorPatterns"`
	CorrectionPatterns []CorrectionPattern `json:"correctionPatterns"`
	Resolutions        []ResolutionRecord  `json:"resolutions"`
}

// NewMemoryDatabase returns an empty database with all three collections
// allocated, so the aggregate always marshals lists rather than nulls.
func NewMemoryDatabase() MemoryDatabase {
	return MemoryDatabase{
		VendorPatterns:     []VendorPattern{},
		CorrectionPatterns: []CorrectionPattern{},
		Resolutions:        []ResolutionRecord{},
	}
}
