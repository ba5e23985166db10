// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/nib/internal/types"

// LineBreak is returned by Delete and Backspace when a line boundary was removed.
const LineBreak = "\n"

// Buffer is the document being edited plus its cursor. Coordinates are
// 1-indexed. Implementations are not safe for concurrent use.
type Buffer interface {
	// Move positions the cursor, clamping the column. Lines past the end are
	// recorded and materialized by the next mutation. line <= 0 is ignored.
	Move(line, col int)
	Line() int
	Column() int
	Cursor() types.Position

	// Put inserts text at the cursor; embedded \n, \r\n and \r split lines.
	Put(text string)
	// Delete removes the character at the cursor, or the line break after it.
	Delete() string
	// Backspace removes the character before the cursor, or the line break before it.
	Backspace() string
	NewLine()
	MergeLine()

	FindNext(text string) bool
	FindPrevious(text string) bool

	MoveToStartOfLine()
	MoveToEndOfLine()
	MoveToStartOfFile()
	MoveToEndOfFile()

	Lines() int
	Content() string
	LineContent(line int) string
	LineLength(line int) int
	SetContent(text string)

	Dirty() bool
	SetDirty(dirty bool)
}
