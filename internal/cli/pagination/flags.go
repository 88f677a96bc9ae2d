package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Positioning defaults and sort orders.
const (
	DefaultOffset    = 0
	DefaultPage      = 0
	MinPage          = 1
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidOffset        = errors.New("offset must be a finite number")
	ErrMixedPositionModes   = errors.New("cannot use both --offset and --page")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'length:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidContainerSize = errors.New("page-based positioning requires a container height > 0")
)

// ViewportParams holds the CLI positioning flags.
// Two modes are supported and are mutually exclusive:
//   - Offset-based: --offset, a raw scroll offset (may be negative or past the end)
//   - Page-based: --page, a 1-based viewport page
type ViewportParams struct {
	// Offset is the raw scroll offset (offset-based mode).
	Offset float64

	// OffsetSet records whether --offset was given explicitly.
	OffsetSet bool

	// Page is the 1-based page number (page-based mode). 0 means unset.
	Page int
}

// NewViewportParams creates ViewportParams with default values.
func NewViewportParams() *ViewportParams {
	return &ViewportParams{
		Offset: DefaultOffset,
		Page:   DefaultPage,
	}
}

// Validate checks that the parameters are consistent.
func (p ViewportParams) Validate() error {
	if math.IsNaN(p.Offset) || math.IsInf(p.Offset, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidOffset, p.Offset)
	}
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Page > 0 && p.OffsetSet {
		return ErrMixedPositionModes
	}
	return nil
}

// IsPageBased returns true if page-based positioning is active.
func (p ViewportParams) IsPageBased() bool {
	return p.Page > 0
}

// EffectiveOffset returns the scroll offset selected by the parameters.
// In page-based mode it is (Page-1) * containerHeight.
func (p ViewportParams) EffectiveOffset(containerHeight float64) (float64, error) {
	if !p.IsPageBased() {
		return p.Offset, nil
	}
	if !(containerHeight > 0) {
		return 0, ErrInvalidContainerSize
	}
	return float64(p.Page-1) * containerHeight, nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "value", "length:desc".
// Returns the field name and order, or an error if invalid.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
