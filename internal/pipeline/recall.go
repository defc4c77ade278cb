package pipeline

import (
	"fmt"
	"strings"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Recaller retrieves the learned patterns relevant to an invoice.
type Recaller struct {
	memory MemoryStore
}

// NewRecaller creates a recall stage backed by the given memory.
func NewRecaller(memory MemoryStore) *Recaller {
	return &Recaller{memory: memory}
}

// RecallResult holds the patterns recalled for one invoice: the subset whose
// trigger text occurs in the invoice's raw text, plus the vendor's full
// pattern set for diagnostics.
type RecallResult struct {
	VendorPatterns    []model.VendorPattern
	AllVendorPatterns []model.VendorPattern
}

// RecallForInvoice looks up the invoice vendor's patterns and filters them to
// those whose trigger text is a literal substring of the invoice's raw text.
// Neither the memory nor the invoice is mutated.
func (r *Recaller) RecallForInvoice(invoice model.Invoice, rec *audit.Recorder) RecallResult {
	vendorPatterns := r.memory.GetVendorPatterns(invoice.Vendor)
	rec.Log(model.StageRecall, fmt.Sprintf("Found %d patterns for %s", len(vendorPatterns), invoice.Vendor))

	var relevant []model.VendorPattern
	for _, pattern := range vendorPatterns {
		if strings.Contains(invoice.RawText, pattern.Pattern) {
			relevant = append(relevant, pattern)
		}
	}
	rec.Log(model.StageRecall, fmt.Sprintf("%d patterns match rawText", len(relevant)))

	return RecallResult{
		VendorPatterns:    relevant,
		AllVendorPatterns: vendorPatterns,
	}
}
