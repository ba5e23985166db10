// internal/event/event.go
package event

import "github.com/bethropolis/nib/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // buffer content changed by a command, undo or redo
	TypeBufferLoaded   // a document was opened, or a fresh one started
	TypeBufferSaved    // the document was written to its location
	TypeCursorMoved    // the cursor changed position

	TypeAppReady // the editor drew its first frame
	TypeAppQuit  // the control loop is about to stop
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeBufferModified: "buffer-modified",
	TypeBufferLoaded:   "buffer-loaded",
	TypeBufferSaved:    "buffer-saved",
	TypeCursorMoved:    "cursor-moved",
	TypeAppReady:       "app-ready",
	TypeAppQuit:        "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes which operation changed the buffer and where
// the cursor ended up.
type BufferModifiedData struct {
	Operation string
	Position  types.Position
	Dirty     bool
}

// BufferLoadedData names the opened location; empty for an unnamed document.
type BufferLoadedData struct {
	Location string
	Lines    int
}

// BufferSavedData names where the document was written.
type BufferSavedData struct {
	Location string
	Charset  string
}

type CursorMovedData struct {
	NewPosition types.Position
}

type AppQuitData struct {
	Dirty bool
}

type AppReadyData struct{}
