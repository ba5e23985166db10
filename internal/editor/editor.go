// Package editor runs the control loop: decode one operation, execute it,
// redraw, repeat.
package editor

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bethropolis/nib/internal/buffer"
	"github.com/bethropolis/nib/internal/clipboard"
	"github.com/bethropolis/nib/internal/command"
	"github.com/bethropolis/nib/internal/content"
	"github.com/bethropolis/nib/internal/event"
	"github.com/bethropolis/nib/internal/history"
	"github.com/bethropolis/nib/internal/input"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/statusbar"
	"github.com/bethropolis/nib/internal/theme"
	"github.com/bethropolis/nib/internal/tui"
	"github.com/bethropolis/nib/internal/viewport"
)

// ErrPromptCancelled is returned by ReadLine and ReadBoolean on Escape.
var ErrPromptCancelled = command.ErrPromptCancelled

// Options configures an Editor. Zero values fall back to defaults.
type Options struct {
	Title         string
	Help          []string
	KeyMap        *input.KeyMap
	EscapeTimeout time.Duration
	UndoDepth     int
	CursorDepth   int
	ReadOnly      bool
	OpenEnabled   bool
	Theme         *theme.Theme
	Clipboard     clipboard.Clipboard
	Store         content.Store
}

// Editor owns the document, the screen and the input for one session. All
// of its methods run on the control goroutine.
type Editor struct {
	*viewport.Viewport

	term    tui.Surface
	src     input.Source
	decoder *input.Decoder
	status  *statusbar.StatusBar
	events  *event.Manager
	hist    *history.Context
	clip    clipboard.Clipboard
	store   content.Store
	search  command.SearchContext

	location string
	charset  content.Charset
	pristine string // text as last loaded or saved

	readOnly    bool
	openEnabled bool
	running     bool
}

var _ command.Editor = (*Editor)(nil)

// New creates an editor with an empty unnamed document.
func New(term tui.Surface, src input.Source, opts Options) *Editor {
	if opts.KeyMap == nil {
		opts.KeyMap = input.SimpleKeyMap()
	}
	if opts.Theme == nil {
		opts.Theme = theme.Classic()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewMemory()
	}
	if opts.Store == nil {
		opts.Store = content.NewFileStore()
	}

	status := statusbar.New(opts.Title, opts.Help, opts.Theme)
	events := event.NewManager()
	status.Subscribe(events)

	e := &Editor{
		term:        term,
		src:         src,
		decoder:     input.NewDecoder(src, opts.KeyMap, opts.EscapeTimeout),
		status:      status,
		events:      events,
		hist:        history.NewContext(opts.UndoDepth),
		clip:        opts.Clipboard,
		store:       opts.Store,
		charset:     content.UTF8,
		readOnly:    opts.ReadOnly,
		openEnabled: opts.OpenEnabled,
	}
	e.Viewport = viewport.New(buffer.NewSliceBuffer(), term, viewport.Options{
		HeaderSize:  statusbar.HeaderSize,
		FooterSize:  status.FooterSize(),
		CursorDepth: opts.CursorDepth,
		Theme:       opts.Theme,
	})
	e.Viewport.SetChrome(e)
	return e
}

func (e *Editor) Events() *event.Manager         { return e.events }
func (e *Editor) History() *history.Context      { return e.hist }
func (e *Editor) Clipboard() clipboard.Clipboard { return e.clip }
func (e *Editor) Status() *statusbar.StatusBar   { return e.status }
func (e *Editor) Location() string               { return e.location }
func (e *Editor) Charset() content.Charset       { return e.charset }
func (e *Editor) ReadOnly() bool                 { return e.readOnly }
func (e *Editor) OpenEnabled() bool              { return e.openEnabled }
func (e *Editor) Running() bool                  { return e.running }

// Search returns the last search term.
func (e *Editor) Search() string { return e.search.Term }

// DrawHeader repaints the header with the current file state and cursor.
func (e *Editor) DrawHeader() {
	e.status.SetModified(e.Dirty())
	e.status.SetCursorInfo(e.Cursor())
	e.status.DrawHeader(e.term)
}

func (e *Editor) DrawFooter() {
	e.status.DrawFooter(e.term)
}

// Redraw repaints the whole screen in place.
func (e *Editor) Redraw() {
	e.Viewport.RepaintScreen()
}

// Resize re-lays the screen for a new terminal size.
func (e *Editor) Resize() {
	e.Viewport.Resize()
}

// Stop ends the control loop after the current operation.
func (e *Editor) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.events.Dispatch(event.TypeAppQuit, event.AppQuitData{Dirty: e.Dirty()})
}

// Run shows the document and processes operations until Stop or the end
// of input. The terminal is restored and the input released on return.
func (e *Editor) Run() error {
	defer e.shutdown()

	e.running = true
	e.Show()
	e.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	e.refresh()

	for e.running {
		op, err := e.decoder.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Infof("Editor: input closed")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if err := e.Execute(op); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Infof("Editor: input closed during a prompt")
				return nil
			}
			return err
		}
	}
	return nil
}

func (e *Editor) shutdown() {
	e.running = false
	if err := e.term.Restore(); err != nil {
		logger.Warnf("Editor: restoring terminal: %v", err)
	}
	e.src.Shutdown()
}

// Execute runs one operation and redraws. Failures are shown in the footer;
// only end of input is returned.
func (e *Editor) Execute(op input.Operation) error {
	logger.DebugTagf("editor", "Editor: %s", op)
	e.status.ClearMessage()

	cmd, err := command.Create(op, e, &e.search)
	if err != nil {
		logger.Warnf("Editor: %v", err)
		e.refresh()
		return nil
	}
	before := e.Cursor()
	err = cmd.Execute()

	if u, ok := cmd.(*command.UndoableCommand); ok && u.Changed() {
		e.hist.Push(u)
		e.modified(u.Name())
	} else if op.Action == input.ActionUndo || op.Action == input.ActionRedo {
		e.modified(op.Action.String())
	} else if e.Cursor() != before {
		e.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.Cursor()})
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return err
	case errors.Is(err, ErrPromptCancelled):
		e.status.SetMessage(theme.StyleMessage, "Cancelled")
	default:
		logger.Warnf("Editor: %s failed: %v", op.Action, err)
		e.status.SetMessage(theme.StyleMessageError, "%s failed: %v", op.Action, err)
	}
	e.refresh()
	return nil
}

func (e *Editor) modified(name string) {
	e.Buffer().SetDirty(e.hist.Dirty())
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
		Operation: name,
		Position:  e.Cursor(),
		Dirty:     e.Dirty(),
	})
}

// refresh finishes an operation: header, message row, cursor, flush.
func (e *Editor) refresh() {
	e.DrawHeader()
	e.status.DrawMessage(e.term)
	e.PlaceCursor()
	e.term.Flush()
}
