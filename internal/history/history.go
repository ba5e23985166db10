// Package history keeps the undo and redo stacks of reversible edits.
package history

import (
	"github.com/bethropolis/nib/internal/collection"
	"github.com/bethropolis/nib/internal/logger"
)

// DefaultDepth is the capacity of each stack.
const DefaultDepth = 500

// Entry is a reversible edit that has already been executed once.
type Entry interface {
	Undo()
	Redo()
}

// Context owns the undo and redo stacks for one document.
type Context struct {
	undo      *collection.RollingStack[Entry]
	redo      *collection.RollingStack[Entry]
	truncated bool
}

// NewContext creates a context whose stacks each hold depth entries.
func NewContext(depth int) *Context {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Context{
		undo: collection.NewRollingStack[Entry](depth),
		redo: collection.NewRollingStack[Entry](depth),
	}
}

// Push records an executed edit. Any redo history is discarded because it
// was recorded against a document state that no longer exists.
func (c *Context) Push(e Entry) {
	c.redo.Clear()
	c.pushUndo(e)
}

func (c *Context) pushUndo(e Entry) {
	if c.undo.Push(e) && !c.truncated {
		c.truncated = true
		logger.DebugTagf("history", "History: undo stack truncated at %d entries", c.undo.Cap())
	}
}

// Undo reverts the newest edit and moves it to the redo stack.
func (c *Context) Undo() bool {
	e, ok := c.undo.Pop()
	if !ok {
		logger.DebugTagf("history", "History: nothing to undo")
		return false
	}
	e.Undo()
	c.redo.Push(e)
	logger.DebugTagf("history", "History: undo, %d left, %d redoable", c.undo.Len(), c.redo.Len())
	return true
}

// Redo re-applies the newest undone edit and moves it back to the undo stack.
func (c *Context) Redo() bool {
	e, ok := c.redo.Pop()
	if !ok {
		logger.DebugTagf("history", "History: nothing to redo")
		return false
	}
	e.Redo()
	c.pushUndo(e)
	logger.DebugTagf("history", "History: redo, %d undoable, %d left", c.undo.Len(), c.redo.Len())
	return true
}

// Clear empties both stacks and forgets truncation. Called after a save or open.
func (c *Context) Clear() {
	c.undo.Clear()
	c.redo.Clear()
	c.truncated = false
}

// Dirty reports unsaved changes: history was truncated or edits remain undoable.
func (c *Context) Dirty() bool {
	return c.truncated || !c.undo.Empty()
}

func (c *Context) CanUndo() bool   { return !c.undo.Empty() }
func (c *Context) CanRedo() bool   { return !c.redo.Empty() }
func (c *Context) Truncated() bool { return c.truncated }
func (c *Context) UndoLen() int    { return c.undo.Len() }
func (c *Context) RedoLen() int    { return c.redo.Len() }
