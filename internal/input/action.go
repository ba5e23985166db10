// internal/input/action.go
package input

import "fmt"

// Action is the kind of an editor operation. The set is closed; the command
// factory switches over every value.
type Action int

const (
	ActionNone Action = iota // unbound or invalid

	// --- Text Manipulation ---
	ActionType // payload is the typed text
	ActionNewLine
	ActionBackspace
	ActionDelete
	ActionPaste
	ActionChangeCase
	ActionReplaceCharacter

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionHome
	ActionEnd
	ActionGoTo

	// --- Files ---
	ActionSave
	ActionOpen
	ActionClose
	ActionQuit

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Search ---
	ActionFind
	ActionFindNext
	ActionFindPrevious

	// --- Other ---
	ActionYank
	ActionEscape
	ActionRedraw
	ActionResize
	ActionIgnore // recognised key with no editing meaning

	actionCount
)

var actionNames = [...]string{
	ActionNone:             "none",
	ActionType:             "type",
	ActionNewLine:          "newline",
	ActionBackspace:        "backspace",
	ActionDelete:           "delete",
	ActionPaste:            "paste",
	ActionChangeCase:       "change-case",
	ActionReplaceCharacter: "replace-character",
	ActionMoveUp:           "up",
	ActionMoveDown:         "down",
	ActionMoveLeft:         "left",
	ActionMoveRight:        "right",
	ActionHome:             "home",
	ActionEnd:              "end",
	ActionGoTo:             "goto",
	ActionSave:             "save",
	ActionOpen:             "open",
	ActionClose:            "close",
	ActionQuit:             "quit",
	ActionUndo:             "undo",
	ActionRedo:             "redo",
	ActionFind:             "find",
	ActionFindNext:         "find-next",
	ActionFindPrevious:     "find-previous",
	ActionYank:             "yank",
	ActionEscape:           "escape",
	ActionRedraw:           "redraw",
	ActionResize:           "resize",
	ActionIgnore:           "ignore",
}

func (a Action) String() string {
	if a >= 0 && a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Operation is one decoded input event.
type Operation struct {
	Action Action
	Text   string // literal input for ActionType, empty otherwise
}

func (o Operation) String() string {
	if o.Action == ActionType {
		return fmt.Sprintf("%s(%q)", o.Action, o.Text)
	}
	return o.Action.String()
}
