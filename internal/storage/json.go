// Package storage provides the persistent pattern memory for the pipeline.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sh8ubham/ai-memory-intern/internal/common"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// JSONStore holds the learned pattern memory in a single JSON document on
// disk. Mutations happen in memory; SaveMemory is the explicit durability
// boundary and replaces the document's prior contents.
type JSONStore struct {
	now    func() time.Time
	path   string
	memory model.MemoryDatabase
	mu     sync.Mutex
}

// NewJSONStore loads the memory document at path. A missing file yields an
// empty database; a file that cannot be parsed as a MemoryDatabase is a fatal
// load error.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	s := &JSONStore{
		now:    time.Now,
		path:   path,
		memory: model.NewMemoryDatabase(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read memory database: %w", err)
	}

	var memory model.MemoryDatabase
	if err := json.Unmarshal(data, &memory); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedMemory, path, err)
	}

	if memory.VendorPatterns == nil {
		memory.VendorPatterns = []model.VendorPattern{}
	}
	if memory.CorrectionPatterns == nil {
		memory.CorrectionPatterns = []model.CorrectionPattern{}
	}
	if memory.Resolutions == nil {
		memory.Resolutions = []model.ResolutionRecord{}
	}

	s.memory = memory
	return s, nil
}

// GetVendorPatterns returns all patterns for the vendor, in store order.
// Vendor matching is a case-sensitive exact comparison.
func (s *JSONStore) GetVendorPatterns(vendor string) []model.VendorPattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	var patterns []model.VendorPattern
	for _, p := range s.memory.VendorPatterns {
		if p.Vendor == vendor {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// AddVendorPattern upserts a pattern keyed by (vendor, pattern text). An
// existing pattern is reinforced in place: confidence +0.1 capped at 1.0,
// timesApplied incremented, lastUsed refreshed. A new pattern is appended as
// given. The change is not durable until SaveMemory is called.
func (s *JSONStore) AddVendorPattern(pattern model.VendorPattern) error {
	if err := validateVendorPattern(&pattern); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.memory.VendorPatterns {
		existing := &s.memory.VendorPatterns[i]
		if existing.Vendor == pattern.Vendor && existing.Pattern == pattern.Pattern {
			existing.Confidence = min(1.0, existing.Confidence+0.1)
			existing.TimesApplied++
			existing.LastUsed = s.now().UTC()
			return nil
		}
	}

	s.memory.VendorPatterns = append(s.memory.VendorPatterns, pattern)
	return nil
}

// GetCorrectionPatterns returns the correction pattern list, in store order.
func (s *JSONStore) GetCorrectionPatterns() []model.CorrectionPattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.CorrectionPatterns
}

// AddCorrectionPattern upserts a correction pattern keyed by pattern text,
// reinforcing an existing entry the same way AddVendorPattern does.
func (s *JSONStore) AddCorrectionPattern(pattern model.CorrectionPattern) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.memory.CorrectionPatterns {
		existing := &s.memory.CorrectionPatterns[i]
		if existing.Pattern == pattern.Pattern {
			existing.Confidence = min(1.0, existing.Confidence+0.1)
			existing.TimesApplied++
			return
		}
	}

	s.memory.CorrectionPatterns = append(s.memory.CorrectionPatterns, pattern)
}

// AddResolution appends a resolution record.
func (s *JSONStore) AddResolution(resolution model.ResolutionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory.Resolutions = append(s.memory.Resolutions, resolution)
}

// SaveMemory writes the full aggregate back to the backing document,
// replacing its prior contents.
func (s *JSONStore) SaveMemory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.memory, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memory database: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write memory database: %w", err)
	}

	return nil
}

// GetAllMemory returns the live aggregate for read access.
func (s *JSONStore) GetAllMemory() *model.MemoryDatabase {
	return &s.memory
}
