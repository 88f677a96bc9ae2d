package window

import (
	"errors"
	"fmt"
	"math"
)

// DefaultOverscan is the number of extra items rendered above and below the viewport.
const DefaultOverscan = 3

// Parameter validation errors.
var (
	ErrInvalidItemHeight      = errors.New("item height must be greater than 0")
	ErrInvalidContainerHeight = errors.New("container height must be non-negative")
	ErrInvalidOverscan        = errors.New("overscan must be non-negative")
)

// Params describes the viewport geometry for a single Compute call.
// All fields may change between calls.
type Params struct {
	// ItemHeight is the fixed height of every item. Must be > 0.
	ItemHeight float64 `json:"item_height" yaml:"item_height"`

	// ContainerHeight is the height of the visible viewport. Must be >= 0.
	ContainerHeight float64 `json:"container_height" yaml:"container_height"`

	// Overscan is the number of extra items kept on each side of the viewport.
	Overscan int `json:"overscan" yaml:"overscan"`
}

// NewParams returns Params with DefaultOverscan.
func NewParams(itemHeight, containerHeight float64) Params {
	return Params{
		ItemHeight:      itemHeight,
		ContainerHeight: containerHeight,
		Overscan:        DefaultOverscan,
	}
}

// Validate reports whether p satisfies the calculator's preconditions.
// Use it where parameters come from user input; Compute itself panics on
// invalid parameters.
func (p Params) Validate() error {
	if !(p.ItemHeight > 0) || math.IsInf(p.ItemHeight, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidItemHeight, p.ItemHeight)
	}
	if !(p.ContainerHeight >= 0) || math.IsInf(p.ContainerHeight, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidContainerHeight, p.ContainerHeight)
	}
	if p.Overscan < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOverscan, p.Overscan)
	}
	return nil
}

// mustValidate panics when p violates the calculator's contract.
func (p Params) mustValidate() {
	if err := p.Validate(); err != nil {
		panic("window: " + err.Error())
	}
}

// Range is an inclusive span of collection indices.
// For an empty collection Start and End are both 0 and Len reports 0.
type Range struct {
	Start int `json:"start_index" yaml:"start_index"`
	End   int `json:"end_index"   yaml:"end_index"`

	// n is the collection length the range was computed for.
	n int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.n == 0 {
		return 0
	}
	return r.End - r.Start + 1
}

// Empty reports whether the range was computed for an empty collection.
func (r Range) Empty() bool {
	return r.Len() == 0
}

// Contains reports whether index i lies within the range.
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// Item pairs a collection element with its absolute index.
type Item[T any] struct {
	Value T   `json:"item"  yaml:"item"`
	Index int `json:"index" yaml:"index"`
}

// Result is the output of Compute.
type Result[T any] struct {
	// Items are the materialized elements in [Range.Start, Range.End].
	Items []Item[T] `json:"visible_items" yaml:"visible_items"`

	// TotalHeight is n * ItemHeight, independent of the viewport.
	TotalHeight float64 `json:"total_height" yaml:"total_height"`

	// Range is the visible index range including overscan.
	Range Range `json:"visible_range" yaml:"visible_range"`
}

// Calculator retains the scroll offset of one virtualized list.
// The zero value is ready to use with an offset of 0.
//
// A Calculator is not safe for concurrent use. The offset is written only by
// SetScrollOffset and read only by Compute, in call order.
type Calculator[T any] struct {
	scrollOffset float64
}

// New creates a Calculator with a zero scroll offset.
func New[T any]() *Calculator[T] {
	return &Calculator[T]{}
}

// SetScrollOffset records the latest offset reported by the scroll source.
// The value is stored as-is; out-of-range offsets (momentum overshoot,
// bounce) are clamped by Compute, not here.
func (c *Calculator[T]) SetScrollOffset(offset float64) {
	c.scrollOffset = offset
}

// ScrollOffset returns the retained scroll offset.
func (c *Calculator[T]) ScrollOffset() float64 {
	return c.scrollOffset
}

// Compute returns the window of items to render at the retained offset.
// It panics if p violates the calculator's contract (see Params.Validate).
// The returned Items slice is freshly allocated on every call.
func (c *Calculator[T]) Compute(items []T, p Params) Result[T] {
	r := ComputeRange(len(items), p, c.scrollOffset)

	res := Result[T]{
		TotalHeight: TotalHeight(len(items), p.ItemHeight),
		Range:       r,
	}
	if r.Empty() {
		res.Items = []Item[T]{}
		return res
	}

	res.Items = make([]Item[T], 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		res.Items = append(res.Items, Item[T]{Value: items[i], Index: i})
	}
	return res
}

// ComputeRange returns the index range covering the viewport at offset for a
// collection of n items, widened by p.Overscan on each side and clamped to
// [0, n-1]. Offsets outside the scrollable extent are accepted; NaN is
// treated as 0. n <= 0 yields the empty Range.
func ComputeRange(n int, p Params, offset float64) Range {
	p.mustValidate()

	if n <= 0 {
		return Range{}
	}
	if math.IsNaN(offset) {
		offset = 0
	}

	last := float64(n - 1)
	overscan := float64(p.Overscan)

	// Clamp in float space: offset may be huge or infinite.
	first := clampFloat(math.Floor(offset/p.ItemHeight)-overscan, 0, last)
	end := clampFloat(math.Ceil((offset+p.ContainerHeight)/p.ItemHeight)+overscan, 0, last)

	r := Range{Start: int(first), End: int(end), n: n}
	if r.Start > r.End {
		r.Start = r.End
	}
	return r
}

// TotalHeight returns the scrollable height of n items.
func TotalHeight(n int, itemHeight float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * itemHeight
}

// OffsetTop returns the offset at which the first item of r is positioned.
func OffsetTop(r Range, itemHeight float64) float64 {
	return float64(r.Start) * itemHeight
}

// MaxScrollOffset returns the largest offset at which the viewport is still
// fully inside the content, or 0 when the content fits.
func MaxScrollOffset(n int, p Params) float64 {
	return math.Max(0, TotalHeight(n, p.ItemHeight)-p.ContainerHeight)
}

// ClampOffset limits offset to [0, MaxScrollOffset(n, p)].
func ClampOffset(offset float64, n int, p Params) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	return clampFloat(offset, 0, MaxScrollOffset(n, p))
}

// ScrollToIndex returns the offset that places item index at the top of the
// viewport, clamped to the scrollable extent.
func ScrollToIndex(index, n int, p Params) float64 {
	return ClampOffset(float64(index)*p.ItemHeight, n, p)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
