package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sh8ubham/ai-memory-intern/internal/common"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Validation errors.
var (
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateVendorPattern validates a vendor pattern before it enters the store.
func validateVendorPattern(p *model.VendorPattern) error {
	if p == nil {
		return fmt.Errorf("%w: pattern", ErrNilParameter)
	}
	if p.Vendor == "" {
		return fmt.Errorf("%w: missing vendor", common.ErrInvalidPattern)
	}
	if p.Pattern == "" {
		return fmt.Errorf("%w: missing pattern text", common.ErrInvalidPattern)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range [0,1]", common.ErrInvalidPattern, p.Confidence)
	}
	return nil
}
