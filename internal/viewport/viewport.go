// Package viewport projects a buffer onto the terminal rows between the
// header and the footer and keeps that projection in step with the cursor.
package viewport

import (
	"github.com/bethropolis/nib/internal/buffer"
	"github.com/bethropolis/nib/internal/collection"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/theme"
	"github.com/bethropolis/nib/internal/tui"
	"github.com/bethropolis/nib/internal/types"
)

// DefaultCursorDepth bounds the saved cursor stack.
const DefaultCursorDepth = 100

// Chrome draws the rows outside the frame.
type Chrome interface {
	DrawHeader()
	DrawFooter()
}

// Options configures a Viewport.
type Options struct {
	HeaderSize  int
	FooterSize  int
	CursorDepth int
	Theme       *theme.Theme
}

// Viewport owns frameLine/frameColumn: the cursor's cell inside the frame.
// Only the Viewport moves them; every cursor movement and edit goes through it.
type Viewport struct {
	buf    buffer.Buffer
	term   tui.Surface
	theme  *theme.Theme
	chrome Chrome

	header int
	footer int

	frameLine   int
	frameColumn int

	cursors   *collection.RollingStack[types.Coordinates]
	highlight string

	stale bool // frame content no longer trusted; repaint when the operation ends
	batch bool // long jump in progress; scrolls are folded into one repaint
}

// New creates a viewport over buf drawing on term.
func New(buf buffer.Buffer, term tui.Surface, opts Options) *Viewport {
	if opts.CursorDepth <= 0 {
		opts.CursorDepth = DefaultCursorDepth
	}
	if opts.Theme == nil {
		opts.Theme = theme.Classic()
	}
	return &Viewport{
		buf:         buf,
		term:        term,
		theme:       opts.Theme,
		header:      opts.HeaderSize,
		footer:      opts.FooterSize,
		frameLine:   1,
		frameColumn: 1,
		cursors:     collection.NewRollingStack[types.Coordinates](opts.CursorDepth),
	}
}

// SetChrome installs the header/footer painter used by full repaints.
func (v *Viewport) SetChrome(c Chrome) { v.chrome = c }

// SetBuffer swaps the document. Callers follow up with Show.
func (v *Viewport) SetBuffer(buf buffer.Buffer) {
	v.buf = buf
	v.highlight = ""
}

func (v *Viewport) Buffer() buffer.Buffer    { return v.buf }
func (v *Viewport) Surface() tui.Surface     { return v.term }
func (v *Viewport) Theme() *theme.Theme      { return v.theme }
func (v *Viewport) HeaderSize() int          { return v.header }
func (v *Viewport) FooterSize() int          { return v.footer }
func (v *Viewport) FrameLine() int           { return v.frameLine }
func (v *Viewport) FrameColumn() int         { return v.frameColumn }
func (v *Viewport) Highlight() string        { return v.highlight }
func (v *Viewport) Line() int                { return v.buf.Line() }
func (v *Viewport) Column() int              { return v.buf.Column() }
func (v *Viewport) Cursor() types.Position   { return v.buf.Cursor() }
func (v *Viewport) Lines() int               { return v.buf.Lines() }
func (v *Viewport) Content() string          { return v.buf.Content() }
func (v *Viewport) LineContent(n int) string { return v.buf.LineContent(n) }

// SetFooterSize changes the rows reserved below the frame.
func (v *Viewport) SetFooterSize(n int) { v.footer = n }

// Width returns the terminal width, at least 1.
func (v *Viewport) Width() int {
	w, _ := v.term.Size()
	if w < 1 {
		return 1
	}
	return w
}

// Height returns the terminal height.
func (v *Viewport) Height() int {
	_, h := v.term.Size()
	return h
}

// FrameHeight returns the number of rows available for the document, at least 1.
func (v *Viewport) FrameHeight() int {
	if h := v.Height() - v.header - v.footer; h > 0 {
		return h
	}
	return 1
}

// Show resets the cursor to the top of the document and repaints everything.
func (v *Viewport) Show() {
	v.buf.Move(1, 1)
	v.frameLine, v.frameColumn = 1, 1
	v.RepaintScreen()
}

// Resize re-lays the document after the terminal size changed, keeping the cursor.
// Saved cursor positions belong to the old layout and are rebased onto the new one.
func (v *Viewport) Resize() {
	pos := v.buf.Cursor()
	logger.DebugTagf("viewport", "Viewport: resize to %dx%d", v.Width(), v.Height())
	v.Show()
	v.Move(pos.Line, pos.Col)

	saved := v.cursors.Len()
	v.cursors.Clear()
	for ; saved > 0; saved-- {
		v.SaveCursor()
	}
}

// RepaintScreen clears the terminal and draws chrome and frame at the
// current scroll position.
func (v *Viewport) RepaintScreen() {
	v.term.EraseScreen()
	v.term.SetScrollRegion(v.header+1, v.header+v.FrameHeight())
	if v.chrome != nil {
		v.chrome.DrawHeader()
		v.chrome.DrawFooter()
	}
	v.stale = false
	v.paintFrom(1)
	v.syncColumn()
}

// SetHighlight marks every occurrence of term in the frame; "" clears it.
func (v *Viewport) SetHighlight(term string) {
	if term == v.highlight {
		return
	}
	v.highlight = term
	v.paintFrom(1)
}

// SaveCursor pushes the frame position before a prompt takes the cursor.
func (v *Viewport) SaveCursor() {
	v.cursors.Push(types.Coordinates{Row: v.frameLine, Col: v.frameColumn})
}

// RestoreCursor pops the last saved frame position and puts the terminal cursor there.
func (v *Viewport) RestoreCursor() {
	if c, ok := v.cursors.Pop(); ok {
		v.frameLine, v.frameColumn = c.Row, c.Col
	}
	v.PlaceCursor()
}

// PlaceCursor moves the terminal cursor onto the document cursor.
func (v *Viewport) PlaceCursor() {
	v.term.ShowCursor(v.header+v.frameLine, v.frameColumn)
}

// finish completes a public operation: a stale frame is repainted once.
func (v *Viewport) finish() {
	if v.stale {
		v.stale = false
		v.paintFrom(1)
	}
	v.syncColumn()
}

func (v *Viewport) syncColumn() {
	line, col := v.buf.Line(), v.buf.Column()
	w := v.Width()
	c := col - rowOf(col, v.buf.LineLength(line), w)*w
	if c > w {
		c = w
	}
	v.frameColumn = c
}
