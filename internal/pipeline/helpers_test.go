package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/Sh8ubham/ai-memory-intern/internal/storage"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	store, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)
	return store
}

func sampleInvoice() model.Invoice {
	return model.Invoice{
		InvoiceID: "INV-A-001",
		Vendor:    "Supplier GmbH",
		Fields: model.InvoiceFields{
			InvoiceNumber: "2024-0815",
			InvoiceDate:   "2024-03-20",
			Currency:      strPtr("EUR"),
			NetTotal:      100,
			TaxRate:       0.19,
			TaxTotal:      19,
			GrossTotal:    119,
			LineItems: []model.LineItem{
				{SKU: strPtr("SKU-100"), Description: "Widget", Qty: 5, UnitPrice: 20},
			},
		},
		Confidence: 0.9,
		RawText:    "Rechnung 2024-0815\nLeistungsdatum: 15.03.2024\nSumme: 119,00 EUR",
	}
}

func servicePattern(confidence float64) model.VendorPattern {
	return model.VendorPattern{
		Vendor:       "Supplier GmbH",
		Pattern:      "Leistungsdatum",
		Field:        "serviceDate",
		Action:       ActionExtractFromRawText,
		Confidence:   confidence,
		TimesApplied: 1,
		LastUsed:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}
