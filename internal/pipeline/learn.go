package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Learner converts approved human corrections into persisted vendor patterns.
type Learner struct {
	memory MemoryStore
	now    func() time.Time
}

// NewLearner creates a learn stage backed by the given memory.
func NewLearner(memory MemoryStore) *Learner {
	return &Learner{memory: memory, now: time.Now}
}

// learnRule recognizes one correction-entry shape and describes the vendor
// pattern it produces. The seed templates mirror the apply-stage rule
// catalog.
type learnRule struct {
	matches     func(e model.CorrectionEntry) bool
	seed        model.VendorPattern
	update      func(vendor string) string
	auditDetail string
}

var learnCatalog = []learnRule{
	{
		matches: func(e model.CorrectionEntry) bool {
			return e.Field == "serviceDate" && strings.Contains(e.Reason, "Leistungsdatum")
		},
		seed: model.VendorPattern{Pattern: "Leistungsdatum", Field: "serviceDate", Action: ActionExtractFromRawText, Confidence: 0.7},
		update: func(vendor string) string {
			return fmt.Sprintf("Learned: %s uses 'Leistungsdatum' for service date", vendor)
		},
		auditDetail: "Stored vendor pattern: Leistungsdatum",
	},
	{
		matches: func(e model.CorrectionEntry) bool {
			return e.Field == "taxTotal" && strings.Contains(strings.ToLower(e.Reason), "vat included")
		},
		seed: model.VendorPattern{Pattern: "MwSt. inkl.", Field: "taxTotal", Action: ActionRecalculateFromGross, Confidence: 0.75},
		update: func(vendor string) string {
			return fmt.Sprintf("Learned: %s includes VAT in totals", vendor)
		},
		auditDetail: "Stored VAT pattern",
	},
	{
		matches: func(e model.CorrectionEntry) bool {
			return e.Field == "currency" && strings.Contains(e.Reason, "rawText")
		},
		seed: model.VendorPattern{Pattern: "Currency in rawText", Field: "currency", Action: ActionExtractFromRawText, Confidence: 0.8},
		update: func(vendor string) string {
			return fmt.Sprintf("Learned: Extract currency from rawText for %s", vendor)
		},
		auditDetail: "Stored currency extraction pattern",
	},
	{
		matches: func(e model.CorrectionEntry) bool {
			return e.Field == "poNumber"
		},
		seed: model.VendorPattern{Pattern: "PO matching by items", Field: "poNumber", Action: ActionMatchBySKU, Confidence: 0.7},
		update: func(vendor string) string {
			return fmt.Sprintf("Learned: Match PO by SKU for %s", vendor)
		},
		auditDetail: "Stored PO matching pattern",
	},
	{
		matches: func(e model.CorrectionEntry) bool {
			to, ok := e.To.(string)
			return strings.Contains(e.Field, "sku") && ok && to == FreightSKU
		},
		seed: model.VendorPattern{Pattern: "Seefracht/Shipping", Field: "lineItems[0].sku", Action: ActionMapToFreight, Confidence: 0.75},
		update: func(_ string) string {
			return "Learned: Map transport descriptions to FREIGHT SKU"
		},
		auditDetail: "Stored freight mapping pattern",
	},
	{
		matches: func(e model.CorrectionEntry) bool {
			return e.Field == "discountTerms"
		},
		seed: model.VendorPattern{Pattern: "Skonto", Field: "discountTerms", Action: ActionExtractSkonto, Confidence: 0.8},
		update: func(vendor string) string {
			return fmt.Sprintf("Learned: Capture Skonto terms for %s", vendor)
		},
		auditDetail: "Stored Skonto pattern",
	},
}

// LearnFromCorrection turns the entries of an approved human correction into
// new or reinforced vendor patterns and persists memory once. Rejected
// corrections are never learned from, and entries matching no recognized
// shape are silently ignored. Returns the human-readable update
// descriptions.
func (l *Learner) LearnFromCorrection(correction model.HumanCorrection, rec *audit.Recorder) ([]string, error) {
	updates := []string{}

	if correction.FinalDecision != model.DecisionApproved {
		rec.Log(model.StageLearn, "Skipped learning - correction was rejected")
		return updates, nil
	}

	for _, entry := range correction.Corrections {
		for _, rule := range learnCatalog {
			if !rule.matches(entry) {
				continue
			}

			pattern := rule.seed
			pattern.Vendor = correction.Vendor
			pattern.TimesApplied = 1
			pattern.LastUsed = l.now().UTC()

			if err := l.memory.AddVendorPattern(pattern); err != nil {
				return updates, fmt.Errorf("failed to store vendor pattern: %w", err)
			}
			updates = append(updates, rule.update(correction.Vendor))
			rec.Log(model.StageLearn, rule.auditDetail)
		}
	}

	if err := l.memory.SaveMemory(); err != nil {
		return updates, fmt.Errorf("failed to save memory: %w", err)
	}
	rec.Log(model.StageLearn, fmt.Sprintf("Memory saved with %d new patterns", len(updates)))

	return updates, nil
}
