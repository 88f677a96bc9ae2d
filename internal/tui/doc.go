// Package tui contains the interactive browse screen: a header, the
// virtualized list from package listview, a status line with the rendered
// window, a jump-to-index prompt and a help bar.
package tui
