package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Pipeline orchestrates one invoice's pass through the correction loop:
// Recall -> Apply -> Decide, optionally followed by Learn when a matching
// human correction is supplied.
type Pipeline struct {
	recaller *Recaller
	applier  *Applier
	decider  *Decider
	learner  *Learner
	pos      []model.PurchaseOrder
	dns      []model.DeliveryNote
}

// New creates a pipeline over the given pattern memory and reference data.
func New(memory MemoryStore, pos []model.PurchaseOrder, dns []model.DeliveryNote) *Pipeline {
	return &Pipeline{
		recaller: NewRecaller(memory),
		applier:  NewApplier(),
		decider:  NewDecider(),
		learner:  NewLearner(memory),
		pos:      pos,
		dns:      dns,
	}
}

// Process runs one invoice through the pipeline. A fresh audit recorder is
// created per call, so concurrent invoice passes never share a trail. When
// correction is non-nil its lessons are learned and persisted; a learn-stage
// persistence failure is the only error a pass can return.
func (p *Pipeline) Process(invoice model.Invoice, correction *model.HumanCorrection) (model.ProcessedInvoice, error) {
	slog.Debug("Processing invoice", "invoice_id", invoice.InvoiceID, "vendor", invoice.Vendor)

	rec := audit.NewRecorder()

	recalled := p.recaller.RecallForInvoice(invoice, rec)

	corrected, corrections := p.applier.ApplyCorrections(invoice, recalled.VendorPatterns, rec)

	decision, corrections := p.decider.Decide(invoice, &corrected, corrections, p.pos, p.dns, rec)

	memoryUpdates := []string{}
	if correction != nil {
		updates, err := p.learner.LearnFromCorrection(*correction, rec)
		if err != nil {
			return model.ProcessedInvoice{}, fmt.Errorf("invoice %s: %w", invoice.InvoiceID, err)
		}
		memoryUpdates = updates
	}

	slog.Info("Processed invoice",
		"invoice_id", invoice.InvoiceID,
		"corrections", len(corrections),
		"confidence", decision.ConfidenceScore,
		"requires_review", decision.RequiresHumanReview,
		"memory_updates", len(memoryUpdates))

	return model.ProcessedInvoice{
		NormalizedInvoice:   corrected,
		ProposedCorrections: corrections,
		RequiresHumanReview: decision.RequiresHumanReview,
		Reasoning:           decision.Reasoning,
		ConfidenceScore:     decision.ConfidenceScore,
		MemoryUpdates:       memoryUpdates,
		AuditTrail:          rec.Trail(),
	}, nil
}
