package editor

import (
	"fmt"

	"github.com/bethropolis/nib/internal/buffer"
	"github.com/bethropolis/nib/internal/content"
	"github.com/bethropolis/nib/internal/event"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/theme"
)

// Load sets the initial document before Run. A file that cannot be read
// leaves an empty document under that name and a footer message.
func (e *Editor) Load(location string) {
	text, err := e.store.Load(location)
	if err != nil {
		logger.Warnf("Editor: %v", err)
		e.status.SetMessage(theme.StyleMessageError, "Could not read %s", location)
		text = ""
	}
	e.replace(location, text, e.store.DetectCharset(location))
}

// Open replaces the document with the file at location and shows it.
func (e *Editor) Open(location string) error {
	text, err := e.store.Load(location)
	if err != nil {
		return fmt.Errorf("open %s: %w", location, err)
	}
	e.replace(location, text, e.store.DetectCharset(location))
	e.Show()
	return nil
}

// Close discards the document and starts an empty unnamed one.
func (e *Editor) Close() {
	e.replace("", "", content.UTF8)
	e.Show()
}

func (e *Editor) replace(location, text string, charset content.Charset) {
	buf := buffer.NewSliceBufferFrom(text)
	e.SetBuffer(buf)
	e.location = location
	e.charset = charset
	e.pristine = buf.Content()
	e.hist.Clear()
	logger.Infof("Editor: document %q, %d lines, %s", location, buf.Lines(), charset)
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{Location: location, Lines: buf.Lines()})
}

// Save writes the document to location in its charset. Success clears
// the history and makes location the document's name.
func (e *Editor) Save(location string) error {
	if location == "" {
		location = e.location
	}
	text := e.Content()
	if err := e.store.Save(text, e.charset, location); err != nil {
		return err
	}
	e.location = location
	e.pristine = text
	e.hist.Clear()
	e.Buffer().SetDirty(false)
	e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{Location: location, Charset: string(e.charset)})
	return nil
}

// Dirty reports unsaved changes. The buffer's flag follows the history
// after every edit, undo and redo: set while undoable edits remain or the
// history was ever truncated, cleared by save and by loading a document.
func (e *Editor) Dirty() bool {
	return e.Buffer().Dirty()
}

// Changes summarises the edits since the last load or save.
func (e *Editor) Changes() content.Summary {
	return content.Summarize(e.pristine, e.Content())
}
