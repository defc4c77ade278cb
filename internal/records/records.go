// Package records loads the pipeline's input record files and writes its
// per-invoice output records. All records are JSON on disk and held entirely
// in memory for the run.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

func loadList[T any](path string, kind string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", kind, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s records from %s: %w", kind, path, err)
	}
	return records, nil
}

// LoadInvoices loads extracted invoice records from a JSON array file.
func LoadInvoices(path string) ([]model.Invoice, error) {
	return loadList[model.Invoice](path, "invoice")
}

// LoadPurchaseOrders loads purchase order reference records.
func LoadPurchaseOrders(path string) ([]model.PurchaseOrder, error) {
	return loadList[model.PurchaseOrder](path, "purchase order")
}

// LoadDeliveryNotes loads delivery note reference records.
func LoadDeliveryNotes(path string) ([]model.DeliveryNote, error) {
	return loadList[model.DeliveryNote](path, "delivery note")
}

// LoadCorrections loads human correction records.
func LoadCorrections(path string) ([]model.HumanCorrection, error) {
	return loadList[model.HumanCorrection](path, "human correction")
}

// FindInvoice returns the invoice with the given ID, reporting whether it
// was found.
func FindInvoice(invoices []model.Invoice, invoiceID string) (model.Invoice, bool) {
	for _, inv := range invoices {
		if inv.InvoiceID == invoiceID {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// FindCorrection returns the human correction for the given invoice ID,
// reporting whether one exists.
func FindCorrection(corrections []model.HumanCorrection, invoiceID string) (model.HumanCorrection, bool) {
	for _, c := range corrections {
		if c.InvoiceID == invoiceID {
			return c, true
		}
	}
	return model.HumanCorrection{}, false
}

// WriteResult writes one processed invoice to <dir>/<invoiceID>.json and
// returns the written path.
func WriteResult(dir string, result model.ProcessedInvoice) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	path := filepath.Join(dir, result.NormalizedInvoice.InvoiceID+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}
	return path, nil
}
