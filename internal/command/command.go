// Package command turns decoded operations into executable, and where
// possible reversible, edits.
package command

import (
	"errors"

	"github.com/bethropolis/nib/internal/clipboard"
	"github.com/bethropolis/nib/internal/content"
	"github.com/bethropolis/nib/internal/history"
	"github.com/bethropolis/nib/internal/types"
)

// ErrPromptCancelled is returned by prompts when the user presses Escape.
var ErrPromptCancelled = errors.New("prompt cancelled")

// Command is a single editor action.
type Command interface {
	Execute() error
}

// Target is the document as seen through the screen: every method keeps the
// frame in step with the cursor.
type Target interface {
	Move(line, col int)
	MoveUp(n int)
	MoveDown(n int)
	MoveLeft(n int)
	MoveRight(n int)
	MoveToStartOfLine()
	MoveToEndOfLine()

	Line() int
	Column() int
	Cursor() types.Position
	Lines() int
	LineContent(line int) string

	Put(text string)
	Delete() string
	Backspace() string
	NewLine()
	MergeLine()

	FindNext(text string) bool
	FindPrevious(text string) bool
}

// Editor is everything commands may ask of the editor beyond the document.
type Editor interface {
	Target

	ReadLine(prompt string) (string, error)
	ReadBoolean(prompt string, def bool) (bool, error)
	Message(style, format string, args ...interface{})

	Location() string
	Save(location string) error
	Open(location string) error
	Close()
	Stop()
	Redraw()
	Resize()

	Dirty() bool
	Changes() content.Summary
	ReadOnly() bool
	OpenEnabled() bool

	History() *history.Context
	Clipboard() clipboard.Clipboard
}

// Func adapts a plain function to Command.
type Func func() error

func (f Func) Execute() error { return f() }

// SearchContext carries the last search term between find, find-next and
// find-previous.
type SearchContext struct {
	Term string
}
