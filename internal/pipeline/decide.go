package pipeline

import (
	"fmt"
	"strings"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/confidence"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Decider scores a corrected invoice and decides whether a human needs to
// review it.
type Decider struct{}

// NewDecider creates a decide stage.
func NewDecider() *Decider {
	return &Decider{}
}

// Decision is the outcome of the decide stage.
type Decision struct {
	Reasoning           string
	ConfidenceScore     float64
	RequiresHumanReview bool
}

// Decide computes a confidence score for the corrected invoice against its
// reference purchase orders and delivery notes. Scoring starts at 0.8 and is
// adjusted per issue; any recorded issue forces human review regardless of
// the final score.
//
// Side effects: a uniquely matching purchase order is assigned onto the
// corrected invoice, and its description is appended to the corrections list;
// the updated list is returned.
func (d *Decider) Decide(
	original model.Invoice,
	corrected *model.Invoice,
	corrections []string,
	pos []model.PurchaseOrder,
	dns []model.DeliveryNote,
	rec *audit.Recorder,
) (Decision, []string) {
	var issues []string
	score := 0.8

	if !hasValue(corrected.Fields.ServiceDate) {
		issues = append(issues, "Missing service date")
		score -= 0.2
	}

	if !hasValue(corrected.Fields.Currency) {
		issues = append(issues, "Missing currency")
		score -= 0.1
	}

	if !hasValue(corrected.Fields.PONumber) {
		matches := matchingPurchaseOrders(*corrected, pos)
		switch {
		case len(matches) == 1:
			corrected.Fields.PONumber = &matches[0].PONumber
			corrections = append(corrections, fmt.Sprintf("Matched to PO: %s", matches[0].PONumber))
			rec.Log(model.StageDecide, "Auto-matched single PO")
		case len(matches) > 1:
			issues = append(issues, "Multiple PO matches - needs clarification")
			score -= 0.3
		default:
			issues = append(issues, "No matching PO found")
			score -= 0.2
		}
	}

	if hasValue(corrected.Fields.PONumber) {
		if dn, ok := deliveryNoteForPO(dns, *corrected.Fields.PONumber); ok {
			for _, item := range corrected.Fields.LineItems {
				if item.SKU == nil {
					continue
				}
				for _, dnItem := range dn.LineItems {
					if dnItem.SKU == *item.SKU && dnItem.QtyDelivered != item.Qty {
						issues = append(issues, fmt.Sprintf("Qty mismatch: Invoice=%v, Delivered=%v", item.Qty, dnItem.QtyDelivered))
						score -= 0.2
						break
					}
				}
			}
		}
	}

	if original.Confidence < 0.65 {
		issues = append(issues, "Low extraction confidence - possible duplicate or quality issue")
		score -= 0.2
	}

	if len(corrections) > 0 {
		score += 0.1
	}

	score = confidence.Clamp(score)

	requiresReview := score < confidence.AutoApplyThreshold || len(issues) > 0

	var reasoning strings.Builder
	if len(corrections) > 0 {
		fmt.Fprintf(&reasoning, "Applied %d correction(s). ", len(corrections))
	}
	if len(issues) > 0 {
		fmt.Fprintf(&reasoning, "Issues: %s. ", strings.Join(issues, "; "))
	}
	if requiresReview {
		reasoning.WriteString("Requires human review due to unresolved issues.")
	} else {
		reasoning.WriteString("High confidence - auto-approved.")
	}

	rec.Log(model.StageDecide, reasoning.String())

	return Decision{
		RequiresHumanReview: requiresReview,
		Reasoning:           reasoning.String(),
		ConfidenceScore:     score,
	}, corrections
}

// matchingPurchaseOrders returns the same-vendor purchase orders that share
// at least one SKU with the invoice's line items.
func matchingPurchaseOrders(invoice model.Invoice, pos []model.PurchaseOrder) []model.PurchaseOrder {
	invoiceSKUs := make(map[string]bool)
	for _, item := range invoice.Fields.LineItems {
		if item.SKU != nil && *item.SKU != "" {
			invoiceSKUs[*item.SKU] = true
		}
	}

	var matches []model.PurchaseOrder
	for _, po := range pos {
		if po.Vendor != invoice.Vendor {
			continue
		}
		for _, line := range po.LineItems {
			if invoiceSKUs[line.SKU] {
				matches = append(matches, po)
				break
			}
		}
	}
	return matches
}

// deliveryNoteForPO returns the first delivery note referencing the PO.
func deliveryNoteForPO(dns []model.DeliveryNote, poNumber string) (model.DeliveryNote, bool) {
	for _, dn := range dns {
		if dn.PONumber == poNumber {
			return dn, true
		}
	}
	return model.DeliveryNote{}, false
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}
