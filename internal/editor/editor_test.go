package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/nib/internal/content"
	"github.com/bethropolis/nib/internal/event"
	"github.com/bethropolis/nib/internal/input"
	"github.com/bethropolis/nib/internal/tui"
)

const (
	ctrlF = "\x06"
	ctrlO = "\x0f"
	ctrlQ = "\x11"
	ctrlS = "\x13"
	ctrlW = "\x17"
	ctrlZ = "\x1a"
	enter = "\r"
	esc   = "\x1b"
	down  = "\x1b[B"
)

var testHelp = []string{"^S Save  ^X Quit", "^F Find  ^Z Undo"}

// memStore keeps documents in a map.
type memStore struct {
	files map[string]string
	fail  map[string]error
}

func newMemStore() *memStore {
	return &memStore{files: map[string]string{}, fail: map[string]error{}}
}

func (s *memStore) Load(location string) (string, error) {
	if err, ok := s.fail[location]; ok {
		return "", err
	}
	return s.files[location], nil
}

func (s *memStore) Save(text string, _ content.Charset, location string) error {
	if location == "" {
		return content.ErrNoLocation
	}
	if err, ok := s.fail[location]; ok {
		return err
	}
	s.files[location] = text
	return nil
}

func (s *memStore) DetectCharset(string) content.Charset { return content.UTF8 }

func newTestEditor(t *testing.T, store content.Store, opts Options) (*Editor, *tui.Memory, *input.QueueSource) {
	t.Helper()
	mem := tui.NewMemory(40, 12)
	src := input.NewPushSource()
	opts.Title = "Nib"
	opts.Help = testHelp
	opts.Store = store
	opts.EscapeTimeout = 5 * time.Millisecond
	return New(mem, src, opts), mem, src
}

// script queues keys followed by the end of input.
func script(src *input.QueueSource, keys ...string) {
	for _, k := range keys {
		src.Feed([]byte(k))
	}
	src.Finish(io.EOF)
}

func TestTypeAndSaveAs(t *testing.T) {
	store := newMemStore()
	ed, mem, src := newTestEditor(t, store, Options{})
	script(src, "hello", ctrlS, "out.txt", enter)

	require.NoError(t, ed.Run())
	assert.Equal(t, "hello", store.files["out.txt"])
	assert.Equal(t, "out.txt", ed.Location())
	assert.False(t, ed.Dirty())
	assert.Equal(t, "hello", mem.Row(2))
	assert.Equal(t, "Wrote 1 lines to out.txt", mem.Row(12))
	assert.True(t, strings.HasPrefix(mem.Row(1), "Nib:out.txt"))
	assert.False(t, strings.HasPrefix(mem.Row(1), "Nib:out.txt*"))
	assert.True(t, mem.Restored)
}

func TestFooterLayout(t *testing.T) {
	ed, mem, src := newTestEditor(t, newMemStore(), Options{})
	script(src)

	require.NoError(t, ed.Run())
	assert.Equal(t, 3, ed.FooterSize())
	assert.Equal(t, 8, ed.FrameHeight())
	assert.Contains(t, mem.Row(10), "^S Save  ^X Quit")
	assert.Contains(t, mem.Row(11), "^F Find  ^Z Undo")
}

func TestHeaderTracksDirtyAndCursor(t *testing.T) {
	store := newMemStore()
	store.files["notes.txt"] = "one\ntwo"
	ed, mem, src := newTestEditor(t, store, Options{})
	ed.Load("notes.txt")
	script(src, down, "x")

	require.NoError(t, ed.Run())
	header := mem.Row(1)
	assert.True(t, strings.HasPrefix(header, "Nib:notes.txt*"), header)
	assert.True(t, strings.HasSuffix(header, "L:2 C:2"), header)
	assert.Equal(t, "xtwo", mem.Row(3))
}

func TestUndoBackToClean(t *testing.T) {
	ed, mem, src := newTestEditor(t, newMemStore(), Options{})
	script(src, "ab", ctrlZ, ctrlZ)

	require.NoError(t, ed.Run())
	assert.False(t, ed.Dirty())
	assert.Equal(t, "", ed.Content())
	assert.False(t, strings.Contains(mem.Row(1), "*"))
}

func TestBufferDirtyFlagFollowsHistory(t *testing.T) {
	typed := func(s string) input.Operation { return input.Operation{Action: input.ActionType, Text: s} }
	undo := input.Operation{Action: input.ActionUndo}

	ed, _, _ := newTestEditor(t, newMemStore(), Options{})
	ed.Show()
	require.NoError(t, ed.Execute(typed("a")))
	assert.True(t, ed.Buffer().Dirty())
	require.NoError(t, ed.Execute(undo))
	assert.False(t, ed.Buffer().Dirty())
	assert.False(t, ed.Dirty())

	ed, _, _ = newTestEditor(t, newMemStore(), Options{UndoDepth: 2})
	ed.Show()
	for _, c := range []string{"a", "b", "c"} {
		require.NoError(t, ed.Execute(typed(c)))
	}
	require.NoError(t, ed.Execute(undo))
	require.NoError(t, ed.Execute(undo))
	assert.True(t, ed.History().Truncated())
	assert.True(t, ed.Buffer().Dirty(), "a truncated history never reads as clean")
	assert.True(t, ed.Dirty())

	require.NoError(t, ed.Save("t.txt"))
	assert.False(t, ed.Buffer().Dirty())
	assert.False(t, ed.Dirty())
}

func TestEscapeCancelsPrompt(t *testing.T) {
	ed, mem, src := newTestEditor(t, newMemStore(), Options{})
	script(src, "x", ctrlS, "name", esc)

	require.NoError(t, ed.Run())
	assert.Equal(t, "Cancelled", mem.Row(12))
	assert.Equal(t, "", ed.Location())
	assert.True(t, ed.Dirty())
	assert.Equal(t, 2, mem.CursorRow, "the cursor returns to the document")
	assert.Equal(t, 2, mem.CursorCol)
}

func TestQuitConfirmsUnsavedChanges(t *testing.T) {
	ed, _, src := newTestEditor(t, newMemStore(), Options{})
	quits := 0
	ed.Events().Subscribe(event.TypeAppQuit, func(e event.Event) bool {
		quits++
		assert.True(t, e.Data.(event.AppQuitData).Dirty)
		return false
	})
	script(src, "x", ctrlQ, "n", ctrlQ, "y", "never typed")

	require.NoError(t, ed.Run())
	assert.Equal(t, 1, quits)
	assert.False(t, ed.Running())
	assert.Equal(t, "x", ed.Content())
}

func TestEndOfInputInsidePrompt(t *testing.T) {
	ed, mem, src := newTestEditor(t, newMemStore(), Options{})
	script(src, "x", ctrlS, "par")

	require.NoError(t, ed.Run())
	assert.True(t, mem.Restored)
}

func TestReadOnly(t *testing.T) {
	store := newMemStore()
	store.files["fixed.txt"] = "fixed"
	ed, mem, src := newTestEditor(t, store, Options{ReadOnly: true})
	ed.Load("fixed.txt")
	script(src, "x")

	require.NoError(t, ed.Run())
	assert.Equal(t, "fixed", ed.Content())
	assert.Equal(t, "Read-only: type is not allowed", mem.Row(12))
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	store := newMemStore()
	store.fail["locked.txt"] = errors.New("permission denied")
	ed, mem, src := newTestEditor(t, store, Options{})
	ed.Load("locked.txt")
	script(src)

	require.NoError(t, ed.Run())
	assert.Equal(t, "", ed.Content())
	assert.Equal(t, "locked.txt", ed.Location())
	assert.Equal(t, "Could not read locked.txt", mem.Row(12))
}

func TestSaveFailureIsShown(t *testing.T) {
	store := newMemStore()
	ed, mem, src := newTestEditor(t, store, Options{})
	ed.Load("other.txt")
	store.fail["other.txt"] = errors.New("read-only file system")
	script(src, "x", ctrlS)

	require.NoError(t, ed.Run())
	assert.Equal(t, "Save failed: read-only file system", mem.Row(12))
	assert.True(t, ed.Dirty())
}

func TestFindHighlightsThroughLoop(t *testing.T) {
	store := newMemStore()
	store.files["f.txt"] = "one\ntwo\nthree two"
	ed, _, src := newTestEditor(t, store, Options{})
	ed.Load("f.txt")
	script(src, ctrlF, "two", enter)

	require.NoError(t, ed.Run())
	assert.Equal(t, 2, ed.Line())
	assert.Equal(t, "two", ed.Search())
	assert.Equal(t, "two", ed.Highlight())
}

func TestResizeOperation(t *testing.T) {
	ed, mem, src := newTestEditor(t, newMemStore(), Options{})
	ed.Load("new.txt")
	src.Feed([]byte("a\rb\rc"))
	mem.Resize(30, 14)
	script(src, input.ResizeSequence)

	require.NoError(t, ed.Run())
	assert.Equal(t, 10, ed.FrameHeight())
	assert.Equal(t, []string{"a", "b", "c"}, []string{mem.Row(2), mem.Row(3), mem.Row(4)})
	assert.Equal(t, 3, ed.Line())
	assert.Contains(t, mem.Row(12), "^S Save")
}

func TestResizeDuringPromptKeepsFrameInStep(t *testing.T) {
	store := newMemStore()
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i+1)
	}
	store.files["long.txt"] = strings.Join(lines, "\n")
	ed, mem, src := newTestEditor(t, store, Options{})
	ed.Load("long.txt")
	ed.Show()
	ed.Move(25, 1)
	require.Equal(t, 8, ed.FrameLine())

	mem.Resize(40, 30)
	src.Feed([]byte(input.ResizeSequence + esc))
	require.NoError(t, ed.Execute(input.Operation{Action: input.ActionFind}))

	assert.Equal(t, 25, ed.Line())
	assert.Equal(t, 25, ed.FrameLine())
	assert.Equal(t, "line25", mem.Row(ed.HeaderSize()+ed.FrameLine()))
	assert.Equal(t, ed.HeaderSize()+25, mem.CursorRow)
	assert.Equal(t, "Cancelled", mem.Row(30))

	// Moves after the prompt still scroll against the right rows.
	ed.Move(40, 1)
	assert.Equal(t, "line40", mem.Row(ed.HeaderSize()+ed.FrameLine()))
}

func TestOpenAndCloseWithFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk\nline 2"), 0644))

	ed, mem, src := newTestEditor(t, content.NewFileStore(), Options{OpenEnabled: true})
	var loaded []string
	ed.Events().Subscribe(event.TypeBufferLoaded, func(e event.Event) bool {
		loaded = append(loaded, e.Data.(event.BufferLoadedData).Location)
		return false
	})
	script(src, ctrlO, path, enter, "!", ctrlS)

	require.NoError(t, ed.Run())
	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "!from disk", mem.Row(2))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "!from disk\nline 2", string(data))
}

func TestCloseDiscardsAfterConfirm(t *testing.T) {
	store := newMemStore()
	store.files["a.txt"] = "keep"
	ed, _, src := newTestEditor(t, store, Options{})
	ed.Load("a.txt")
	script(src, "x", ctrlW, "y")

	require.NoError(t, ed.Run())
	assert.Equal(t, "", ed.Location())
	assert.Equal(t, "", ed.Content())
	assert.False(t, ed.Dirty())
	assert.Equal(t, "keep", store.files["a.txt"])
}

func TestChangesSummary(t *testing.T) {
	store := newMemStore()
	store.files["c.txt"] = "a\nb"
	ed, _, src := newTestEditor(t, store, Options{})
	ed.Load("c.txt")
	script(src, "x", enter)

	require.NoError(t, ed.Run())
	assert.Equal(t, []string{"x", "a", "b"}, strings.Split(ed.Content(), "\n"))
	assert.Equal(t, content.Summary{Inserted: 1}, ed.Changes())
}

func TestModifiedEvents(t *testing.T) {
	ed, _, src := newTestEditor(t, newMemStore(), Options{})
	var ops []string
	ed.Events().Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		ops = append(ops, e.Data.(event.BufferModifiedData).Operation)
		return false
	})
	script(src, "a", enter, "\x7f", ctrlZ)

	require.NoError(t, ed.Run())
	assert.Equal(t, []string{"type", "newline", "backspace", "undo"}, ops)
}
