package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rshade/virtuallist/internal/logging"
)

// Filter keys accepted by --filter.
const (
	filterContains = "contains"
	filterPrefix   = "prefix"
	filterSuffix   = "suffix"
	filterMatch    = "match"
)

// ErrInvalidFilter is returned for a malformed --filter expression.
var ErrInvalidFilter = errors.New("invalid filter")

// itemFilter keeps the items for which keep returns true.
type itemFilter struct {
	expr string
	keep func(string) bool
}

// parseFilter parses a "key=value" expression.
func parseFilter(expr string) (itemFilter, error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok || value == "" {
		return itemFilter{}, fmt.Errorf("%w: %q: use key=value", ErrInvalidFilter, expr)
	}

	f := itemFilter{expr: expr}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case filterContains:
		f.keep = func(s string) bool { return strings.Contains(s, value) }
	case filterPrefix:
		f.keep = func(s string) bool { return strings.HasPrefix(s, value) }
	case filterSuffix:
		f.keep = func(s string) bool { return strings.HasSuffix(s, value) }
	case filterMatch:
		re, err := regexp.Compile(value)
		if err != nil {
			return itemFilter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, expr, err)
		}
		f.keep = re.MatchString
	default:
		return itemFilter{}, fmt.Errorf("%w: %q: unknown key %q (valid: %s, %s, %s, %s)",
			ErrInvalidFilter, expr, key, filterContains, filterPrefix, filterSuffix, filterMatch)
	}
	return f, nil
}

// ApplyFilters validates and applies filter expressions to a collection.
//
// All filters are validated before any is applied; an invalid filter returns
// an error and no items. Filters are ANDed in order. Empty expressions are
// ignored, and no filters returns items unchanged.
func ApplyFilters(ctx context.Context, items []string, filters []string) ([]string, error) {
	log := logging.FromContext(ctx)

	parsed := make([]itemFilter, 0, len(filters))
	for _, expr := range filters {
		if expr == "" {
			continue
		}
		f, err := parseFilter(expr)
		if err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", expr).
				Err(err).
				Msg("invalid filter expression")
			return nil, err
		}
		parsed = append(parsed, f)
	}
	if len(parsed) == 0 {
		return items, nil
	}

	result := items
	for _, f := range parsed {
		before := len(result)
		kept := make([]string, 0, before)
		for _, item := range result {
			if f.keep(item) {
				kept = append(kept, item)
			}
		}
		result = kept
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("filter", f.expr).
			Int("before", before).
			Int("after", len(result)).
			Msg("applied filter")
	}

	if len(result) == 0 && len(items) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(items)).
			Msg("no items match filter criteria")
	}

	return result, nil
}
