// Package window computes the visible window of a virtualized list.
//
// A virtualized list renders only the items that intersect the viewport, plus a
// small overscan margin on each side, while reporting the full scrollable
// height so the caller can size its scroll container. This package holds the
// arithmetic for that and nothing else:
//   - Calculator retains the scroll offset reported by the scroll source
//   - Compute converts the offset and viewport geometry into a Range and the
//     slice of items to materialize
//   - Helpers (OffsetTop, MaxScrollOffset, ScrollToIndex) translate between
//     indices and pixel or row offsets
//
// There is no implicit reactivity: callers invoke Compute after every
// SetScrollOffset or change of inputs. A Calculator is meant to be driven from
// a single event loop and does no locking.
package window
