// Package pagination provides viewport positioning, paging metadata and sorting for CLI commands.
//
// This package contains the shared logic used by the compute and scroll commands:
//   - ViewportParams: --offset / --page flag parsing and validation
//   - PageMeta: which viewport-sized page an offset falls on
//   - ItemSorter: ordering of the collection before it is windowed
//
// A "page" is one container height of content, so page N starts at offset
// (N-1) * container height.
package pagination
