package pagination

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Sort fields accepted by ItemSorter.
const (
	SortFieldValue  = "value"
	SortFieldLength = "length"
)

// Sorter defines the interface for ordering a collection before windowing.
type Sorter interface {
	// Sort returns a sorted copy of items by the specified field and order.
	Sort(items []string, field, order string) []string
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// ItemSorter implements Sorter for string collections.
type ItemSorter struct {
	validFields map[string]bool
}

// NewItemSorter creates an ItemSorter with the supported fields.
func NewItemSorter() *ItemSorter {
	return &ItemSorter{
		validFields: map[string]bool{
			SortFieldValue:  true,
			SortFieldLength: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *ItemSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *ItemSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a stably sorted copy of items; the input is not modified.
// If field is invalid, the original slice is returned unchanged.
func (s *ItemSorter) Sort(items []string, field, order string) []string {
	if !s.IsValidField(field) {
		return items
	}

	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == SortOrderDesc {
			i, j = j, i
		}

		switch field {
		case SortFieldLength:
			return utf8.RuneCountInString(sorted[i]) < utf8.RuneCountInString(sorted[j])
		default:
			return strings.Compare(sorted[i], sorted[j]) < 0
		}
	})
	return sorted
}

// ApplySort parses sortStr and sorts items with s. An empty sortStr keeps
// the original order.
func ApplySort(s Sorter, items []string, sortStr string) ([]string, error) {
	if sortStr == "" {
		return items, nil
	}
	field, order, err := ParseSort(sortStr)
	if err != nil {
		return nil, err
	}
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}
	return s.Sort(items, field, order), nil
}
