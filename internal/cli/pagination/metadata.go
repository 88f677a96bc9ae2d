package pagination

import (
	"math"
)

// PageMeta describes where a scroll offset sits in viewport-sized pages.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPageMeta computes page metadata for offset over totalHeight of content
// viewed through a container of containerHeight. The offset is clamped to the
// content first, so overshooting offsets report the first or last page.
func NewPageMeta(offset, totalHeight, containerHeight float64, totalItems int) PageMeta {
	meta := PageMeta{TotalItems: totalItems}
	if !(containerHeight > 0) || totalHeight <= 0 {
		meta.CurrentPage = 1
		meta.TotalPages = 1
		if totalHeight <= 0 {
			meta.TotalPages = 0
		}
		return meta
	}

	meta.TotalPages = int(math.Ceil(totalHeight / containerHeight))

	maxOffset := math.Max(0, totalHeight-containerHeight)
	if math.IsNaN(offset) || offset < 0 {
		offset = 0
	}
	offset = math.Min(offset, maxOffset)

	meta.CurrentPage = int(math.Floor(offset/containerHeight)) + 1
	// The last, possibly partial, page is reached once the viewport touches the end.
	if offset >= maxOffset {
		meta.CurrentPage = meta.TotalPages
	}

	meta.HasPrevious = meta.CurrentPage > 1
	meta.HasNext = meta.CurrentPage < meta.TotalPages
	return meta
}
