// Package listview provides virtual scrolling components for Bubble Tea TUI applications.
//
// VirtualListModel renders large lists (10,000+ items) by materializing only
// the rows returned by a window.Calculator for the current scroll offset. Key
// features:
//   - One terminal row per item; the viewport height is the container height
//   - Overscan rows computed on each side of the viewport and trimmed at render time
//   - Keyboard navigation (up/down, pgup/pgdn, home/end, vim keys) that
//     scrolls the selection into view
//   - Mouse wheel scrolling with a short settle back into range after overshoot
//
// The model recomputes its window after every change of offset, size or items.
package listview
