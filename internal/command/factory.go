package command

import (
	"fmt"

	"github.com/bethropolis/nib/internal/input"
	"github.com/bethropolis/nib/internal/theme"
)

// Mutating reports whether an action changes the document.
func Mutating(a input.Action) bool {
	switch a {
	case input.ActionType, input.ActionNewLine, input.ActionBackspace, input.ActionDelete,
		input.ActionPaste, input.ActionChangeCase, input.ActionReplaceCharacter,
		input.ActionUndo, input.ActionRedo:
		return true
	}
	return false
}

var noop = Func(func() error { return nil })

// Create builds the command for a decoded operation. In read-only mode
// mutating operations become a refusal message.
func Create(op input.Operation, ed Editor, search *SearchContext) (Command, error) {
	if ed.ReadOnly() && Mutating(op.Action) {
		return Func(func() error {
			ed.Message(theme.StyleMessageError, "Read-only: %s is not allowed", op.Action)
			return nil
		}), nil
	}

	switch op.Action {
	// --- Text Manipulation ---
	case input.ActionType:
		return newUndoable(ed, &insert{label: "type", text: op.Text}), nil
	case input.ActionNewLine:
		return newUndoable(ed, &newLine{}), nil
	case input.ActionBackspace:
		return newUndoable(ed, &backspace{}), nil
	case input.ActionDelete:
		return newUndoable(ed, &deleteChar{}), nil
	case input.ActionPaste:
		return newUndoable(ed, &insert{label: "paste", fetch: ed.Clipboard().Get}), nil
	case input.ActionChangeCase:
		return newUndoable(ed, &replace{label: "change-case", pick: toggleCase}), nil
	case input.ActionReplaceCharacter:
		return newUndoable(ed, &replace{label: "replace-character", pick: pickReplacement(ed)}), nil

	// --- Cursor Movement ---
	case input.ActionMoveUp:
		return Func(func() error { ed.MoveUp(1); return nil }), nil
	case input.ActionMoveDown:
		return Func(func() error { return moveDown(ed) }), nil
	case input.ActionMoveLeft:
		return Func(func() error { ed.MoveLeft(1); return nil }), nil
	case input.ActionMoveRight:
		return Func(func() error { ed.MoveRight(1); return nil }), nil
	case input.ActionHome:
		return Func(func() error { ed.MoveToStartOfLine(); return nil }), nil
	case input.ActionEnd:
		return Func(func() error { ed.MoveToEndOfLine(); return nil }), nil
	case input.ActionGoTo:
		return Func(func() error { return goTo(ed) }), nil

	// --- Files ---
	case input.ActionSave:
		return Func(func() error { return save(ed) }), nil
	case input.ActionOpen:
		return Func(func() error { return open(ed) }), nil
	case input.ActionClose:
		return Func(func() error { return closeDocument(ed) }), nil
	case input.ActionQuit:
		return Func(func() error { return quit(ed) }), nil

	// --- History ---
	case input.ActionUndo:
		return Func(func() error { return undo(ed) }), nil
	case input.ActionRedo:
		return Func(func() error { return redo(ed) }), nil

	// --- Search ---
	case input.ActionFind:
		return Func(func() error { return find(ed, search) }), nil
	case input.ActionFindNext:
		return Func(func() error { return findNext(ed, search) }), nil
	case input.ActionFindPrevious:
		return Func(func() error { return findPrevious(ed, search) }), nil

	// --- Other ---
	case input.ActionYank:
		return Func(func() error { return yank(ed) }), nil
	case input.ActionRedraw:
		return Func(func() error { ed.Redraw(); return nil }), nil
	case input.ActionResize:
		return Func(func() error { ed.Resize(); return nil }), nil
	case input.ActionEscape, input.ActionIgnore:
		return noop, nil
	case input.ActionNone:
		return nil, fmt.Errorf("no command for unbound operation")
	}
	return nil, fmt.Errorf("no command for operation %v", op.Action)
}
