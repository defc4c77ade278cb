// Package model defines the core data structures for the invoice correction pipeline.
package model

// Invoice represents one extracted invoice as produced by the upstream
// extraction step. The pipeline never mutates an Invoice in place; the Apply
// stage works on a deep copy (see Clone).
type Invoice struct {
	InvoiceID  string        `json:"invoiceId"`
	Vendor     string        `json:"vendor"`
	Fields     InvoiceFields `json:"fields"`
	Confidence float64       `json:"confidence"`
	RawText    string        `json:"rawText"`
}

// InvoiceFields holds the structured fields extracted from an invoice.
type InvoiceFields struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	InvoiceDate   string     `json:"invoiceDate"`
	ServiceDate   *string    `json:"serviceDate,omitempty"`
	Currency      *string    `json:"currency"`
	PONumber      *string    `json:"poNumber"`
	NetTotal      float64    `json:"netTotal"`
	TaxRate       float64    `json:"taxRate"`
	TaxTotal      float64    `json:"taxTotal"`
	GrossTotal    float64    `json:"grossTotal"`
	LineItems     []LineItem `json:"lineItems"`
}

// LineItem is a single invoice line.
type LineItem struct {
	SKU         *string `json:"sku"`
	Description string  `json:"description,omitempty"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Clone returns a deep copy of the invoice. Pointer-typed optional fields and
// the line item list are copied so mutations of the clone never reach the
// original.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Fields.ServiceDate = cloneStringPtr(inv.Fields.ServiceDate)
	out.Fields.Currency = cloneStringPtr(inv.Fields.Currency)
	out.Fields.PONumber = cloneStringPtr(inv.Fields.PONumber)

	items := make([]LineItem, len(inv.Fields.LineItems))
	for i, item := range inv.Fields.LineItems {
		items[i] = item
		items[i].SKU = cloneStringPtr(item.SKU)
	}
	out.Fields.LineItems = items

	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// PurchaseOrder is immutable reference data supplied by the external loader.
type PurchaseOrder struct {
	PONumber  string       `json:"poNumber"`
	Vendor    string       `json:"vendor"`
	Date      string       `json:"date"`
	LineItems []POLineItem `json:"lineItems"`
}

// POLineItem is a single purchase order line.
type POLineItem struct {
	SKU       string  `json:"sku"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
}

// DeliveryNote is immutable reference data supplied by the external loader.
type DeliveryNote struct {
	DNNumber  string       `json:"dnNumber"`
	Vendor    string       `json:"vendor"`
	PONumber  string       `json:"poNumber"`
	Date      string       `json:"date"`
	LineItems []DNLineItem `json:"lineItems"`
}

// DNLineItem is a single delivery note line.
type DNLineItem struct {
	SKU          string  `json:"sku"`
	QtyDelivered float64 `json:"qtyDelivered"`
}

// FinalDecision is the outcome of a human review.
type FinalDecision string

// Human review decisions.
const (
	DecisionApproved FinalDecision = "approved"
	DecisionRejected FinalDecision = "rejected"
)

// HumanCorrection records the edits a human reviewer made to one invoice.
// Only approved corrections are learned from.
type HumanCorrection struct {
	InvoiceID     string            `json:"invoiceId"`
	Vendor        string            `json:"vendor"`
	Corrections   []CorrectionEntry `json:"corrections"`
	FinalDecision FinalDecision     `json:"finalDecision"`
}

// CorrectionEntry is a single field edit within a human correction.
type CorrectionEntry struct {
	Field  string `json:"field"`
	From   any    `json:"from"`
	To     any    `json:"to"`
	Reason string `json:"reason"`
}
