package main

import (
	"fmt"

	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/Sh8ubham/ai-memory-intern/internal/records"
	"github.com/Sh8ubham/ai-memory-intern/internal/storage"
	"github.com/spf13/viper"
)

// openStore loads the pattern memory from the configured path. A missing
// document starts empty; a malformed one is a fatal error.
func openStore() (*storage.JSONStore, error) {
	store, err := storage.NewJSONStore(viper.GetString("data.memory"))
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern memory: %w", err)
	}
	return store, nil
}

// referenceData bundles the run's input records.
type referenceData struct {
	invoices    []model.Invoice
	pos         []model.PurchaseOrder
	dns         []model.DeliveryNote
	corrections []model.HumanCorrection
}

// loadReferenceData loads all configured input record files.
func loadReferenceData() (*referenceData, error) {
	invoices, err := records.LoadInvoices(viper.GetString("data.invoices"))
	if err != nil {
		return nil, err
	}
	pos, err := records.LoadPurchaseOrders(viper.GetString("data.purchase_orders"))
	if err != nil {
		return nil, err
	}
	dns, err := records.LoadDeliveryNotes(viper.GetString("data.delivery_notes"))
	if err != nil {
		return nil, err
	}
	corrections, err := records.LoadCorrections(viper.GetString("data.corrections"))
	if err != nil {
		return nil, err
	}

	return &referenceData{
		invoices:    invoices,
		pos:         pos,
		dns:         dns,
		corrections: corrections,
	}, nil
}
