package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
	"github.com/Sh8ubham/ai-memory-intern/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedCorrection(entries ...model.CorrectionEntry) model.HumanCorrection {
	return model.HumanCorrection{
		InvoiceID:     "INV-A-001",
		Vendor:        "Supplier GmbH",
		Corrections:   entries,
		FinalDecision: model.DecisionApproved,
	}
}

func TestLearner_RejectedCorrectionIsNotLearned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	store, err := storage.NewJSONStore(path)
	require.NoError(t, err)

	l := NewLearner(store)
	rec := audit.NewRecorder()

	correction := approvedCorrection(model.CorrectionEntry{
		Field: "serviceDate", From: nil, To: "2024-03-15", Reason: "Date found after Leistungsdatum label",
	})
	correction.FinalDecision = model.DecisionRejected

	updates, err := l.LearnFromCorrection(correction, rec)
	require.NoError(t, err)

	assert.Empty(t, updates)
	assert.Empty(t, store.GetAllMemory().VendorPatterns)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "rejected corrections must not persist memory")

	require.Len(t, rec.Trail(), 1)
	assert.Equal(t, "Skipped learning - correction was rejected", rec.Trail()[0].Details)
}

func TestLearner_ServiceDateShape(t *testing.T) {
	store := newTestStore(t)
	l := NewLearner(store)
	rec := audit.NewRecorder()

	updates, err := l.LearnFromCorrection(approvedCorrection(model.CorrectionEntry{
		Field: "serviceDate", From: nil, To: "2024-03-15", Reason: "Date found after Leistungsdatum label",
	}), rec)
	require.NoError(t, err)

	require.Len(t, updates, 1)
	assert.Equal(t, "Learned: Supplier GmbH uses 'Leistungsdatum' for service date", updates[0])

	patterns := store.GetVendorPatterns("Supplier GmbH")
	require.Len(t, patterns, 1)
	assert.Equal(t, "Leistungsdatum", patterns[0].Pattern)
	assert.Equal(t, "serviceDate", patterns[0].Field)
	assert.Equal(t, ActionExtractFromRawText, patterns[0].Action)
	assert.InDelta(t, 0.7, patterns[0].Confidence, 1e-9)
	assert.Equal(t, 1, patterns[0].TimesApplied)

	// Learning persists once and logs the update count.
	trail := rec.Trail()
	require.Len(t, trail, 2)
	assert.Equal(t, "Stored vendor pattern: Leistungsdatum", trail[0].Details)
	assert.Equal(t, "Memory saved with 1 new patterns", trail[1].Details)
}

func TestLearner_ShapeCatalog(t *testing.T) {
	tests := []struct {
		name        string
		entry       model.CorrectionEntry
		wantPattern string
		wantField   string
		wantAction  string
		wantSeed    float64
	}{
		{
			name:        "vat included",
			entry:       model.CorrectionEntry{Field: "taxTotal", From: 0.0, To: 19.0, Reason: "VAT included in gross total"},
			wantPattern: "MwSt. inkl.",
			wantField:   "taxTotal",
			wantAction:  ActionRecalculateFromGross,
			wantSeed:    0.75,
		},
		{
			name:        "currency from raw text",
			entry:       model.CorrectionEntry{Field: "currency", From: nil, To: "EUR", Reason: "Currency visible in rawText"},
			wantPattern: "Currency in rawText",
			wantField:   "currency",
			wantAction:  ActionExtractFromRawText,
			wantSeed:    0.8,
		},
		{
			name:        "po matching",
			entry:       model.CorrectionEntry{Field: "poNumber", From: nil, To: "PO-1001", Reason: "Matched by line items"},
			wantPattern: "PO matching by items",
			wantField:   "poNumber",
			wantAction:  ActionMatchBySKU,
			wantSeed:    0.7,
		},
		{
			name:        "freight sku",
			entry:       model.CorrectionEntry{Field: "lineItems[0].sku", From: nil, To: "FREIGHT", Reason: "Transport line item"},
			wantPattern: "Seefracht/Shipping",
			wantField:   "lineItems[0].sku",
			wantAction:  ActionMapToFreight,
			wantSeed:    0.75,
		},
		{
			name:        "discount terms",
			entry:       model.CorrectionEntry{Field: "discountTerms", From: nil, To: "2% within 14 days", Reason: "Skonto clause present"},
			wantPattern: "Skonto",
			wantField:   "discountTerms",
			wantAction:  ActionExtractSkonto,
			wantSeed:    0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			l := NewLearner(store)

			updates, err := l.LearnFromCorrection(approvedCorrection(tt.entry), audit.NewRecorder())
			require.NoError(t, err)
			require.Len(t, updates, 1)

			patterns := store.GetVendorPatterns("Supplier GmbH")
			require.Len(t, patterns, 1)
			assert.Equal(t, tt.wantPattern, patterns[0].Pattern)
			assert.Equal(t, tt.wantField, patterns[0].Field)
			assert.Equal(t, tt.wantAction, patterns[0].Action)
			assert.InDelta(t, tt.wantSeed, patterns[0].Confidence, 1e-9)
			assert.Equal(t, 1, patterns[0].TimesApplied)
		})
	}
}

func TestLearner_UnrecognizedShapeIsIgnored(t *testing.T) {
	store := newTestStore(t)
	l := NewLearner(store)

	updates, err := l.LearnFromCorrection(approvedCorrection(model.CorrectionEntry{
		Field: "invoiceDate", From: "2024-01-01", To: "2024-01-02", Reason: "typo",
	}), audit.NewRecorder())
	require.NoError(t, err)

	assert.Empty(t, updates)
	assert.Empty(t, store.GetAllMemory().VendorPatterns)
}

func TestLearner_RepeatLessonReinforces(t *testing.T) {
	store := newTestStore(t)
	l := NewLearner(store)

	correction := approvedCorrection(model.CorrectionEntry{
		Field: "serviceDate", From: nil, To: "2024-03-15", Reason: "Date found after Leistungsdatum label",
	})

	_, err := l.LearnFromCorrection(correction, audit.NewRecorder())
	require.NoError(t, err)
	_, err = l.LearnFromCorrection(correction, audit.NewRecorder())
	require.NoError(t, err)

	patterns := store.GetVendorPatterns("Supplier GmbH")
	require.Len(t, patterns, 1, "repeat lesson must reinforce, not duplicate")
	assert.InDelta(t, 0.8, patterns[0].Confidence, 1e-9)
	assert.Equal(t, 2, patterns[0].TimesApplied)
}

func TestLearner_MultipleEntriesYieldMultiplePatterns(t *testing.T) {
	store := newTestStore(t)
	l := NewLearner(store)

	correction := approvedCorrection(
		model.CorrectionEntry{Field: "serviceDate", From: nil, To: "2024-03-15", Reason: "Leistungsdatum label"},
		model.CorrectionEntry{Field: "currency", From: nil, To: "EUR", Reason: "Currency in rawText"},
		model.CorrectionEntry{Field: "invoiceDate", From: "a", To: "b", Reason: "unrelated"},
	)

	updates, err := l.LearnFromCorrection(correction, audit.NewRecorder())
	require.NoError(t, err)

	assert.Len(t, updates, 2)
	assert.Len(t, store.GetVendorPatterns("Supplier GmbH"), 2)
}
