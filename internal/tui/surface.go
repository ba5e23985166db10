// Package tui provides the terminal surfaces the editor draws on.
package tui

import "github.com/gdamore/tcell/v2"

// Surface is a character-cell terminal. Rows and columns are 1-indexed.
// Every call is best-effort; backends log failures instead of returning them.
type Surface interface {
	Size() (width, height int)
	WriteAt(row, col int, text string, style tcell.Style)
	EraseLine(row int)
	EraseScreen()

	// SetScrollRegion limits ScrollUp/ScrollDown to rows [top, bottom].
	SetScrollRegion(top, bottom int)
	// ScrollUp moves the region's content up n rows, blanking the bottom.
	ScrollUp(n int)
	// ScrollDown moves the region's content down n rows, blanking the top.
	ScrollDown(n int)
	// CanScroll reports whether ScrollUp/ScrollDown work on this terminal.
	CanScroll() bool

	ShowCursor(row, col int)
	Flush()
	// Restore returns the terminal to the mode it had before the editor started.
	Restore() error
}
