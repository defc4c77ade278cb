// Package pipeline implements the four-stage correction loop for extracted
// invoices: recall learned vendor patterns, apply the confident ones, decide
// whether the result needs human review, and learn new patterns from approved
// human corrections.
package pipeline

import (
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// MemoryStore is the persistent pattern memory the pipeline stages depend on.
type MemoryStore interface {
	// GetVendorPatterns returns all patterns for a vendor, in store order.
	GetVendorPatterns(vendor string) []model.VendorPattern
	// AddVendorPattern upserts a pattern keyed by (vendor, pattern text),
	// reinforcing an existing entry instead of duplicating it.
	AddVendorPattern(pattern model.VendorPattern) error
	// SaveMemory makes all accumulated mutations durable.
	SaveMemory() error
	// GetAllMemory returns the live aggregate for read access.
	GetAllMemory() *model.MemoryDatabase
}
