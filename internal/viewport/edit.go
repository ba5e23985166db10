package viewport

import (
	"strings"

	"github.com/bethropolis/nib/internal/logger"
)

// lineTop returns the frame row holding the first row of the cursor line.
// It may be above the frame when a long line is scrolled.
func (v *Viewport) lineTop() int {
	return v.frameLine - v.cursorRef().off
}

// relocate re-derives frameLine after an edit from the frame row of the top
// of anchorLine, scrolling when the cursor fell off the frame, and repaints
// what changed. whole=false repaints only the cursor line.
func (v *Viewport) relocate(top, anchorLine int, whole bool) {
	h := v.FrameHeight()
	target := top + v.rowsBetween(anchorLine)
	from := top
	switch {
	case target > h:
		n := target - h
		v.scroll(n, true)
		v.frameLine = h
		from = top - n
		whole = true
	case target < 1:
		v.scroll(1-target, false)
		v.frameLine = 1
		from = 1
		whole = true
	default:
		v.frameLine = target
	}

	if v.stale {
		v.finish()
		return
	}
	if whole {
		v.paintFrom(from)
	} else {
		v.paintLine(from)
	}
	v.syncColumn()
}

func (v *Viewport) scroll(n int, up bool) {
	if !v.term.CanScroll() || n >= v.FrameHeight() {
		v.stale = true
		return
	}
	if up {
		v.term.ScrollUp(n)
	} else {
		v.term.ScrollDown(n)
	}
}

// clearHighlight drops the search mark; the caller must then repaint the whole frame.
func (v *Viewport) clearHighlight() bool {
	if v.highlight == "" {
		return false
	}
	v.highlight = ""
	v.stale = true
	return true
}

// Put inserts text at the cursor and redraws the affected rows.
func (v *Viewport) Put(text string) {
	if text == "" {
		return
	}
	v.clearHighlight()
	line := v.buf.Line()
	top, rows := v.lineTop(), v.rowCount(line)
	v.buf.Put(text)
	whole := strings.ContainsAny(text, "\r\n") || v.rowCount(line) != rows
	v.relocate(top, line, whole)
}

// Delete removes the character under the cursor and returns it.
func (v *Viewport) Delete() string {
	v.clearHighlight()
	line := v.buf.Line()
	top, rows, lines := v.lineTop(), v.rowCount(line), v.buf.Lines()
	s := v.buf.Delete()
	whole := v.buf.Lines() != lines || v.rowCount(line) != rows
	v.relocate(top, line, whole)
	return s
}

// Backspace removes the character before the cursor and returns it.
func (v *Viewport) Backspace() string {
	v.clearHighlight()
	line, col := v.buf.Line(), v.buf.Column()
	top := v.lineTop()
	if col == 1 && line > 1 && line <= v.buf.Lines() {
		prevTop := top - v.rowCount(line-1)
		s := v.buf.Backspace()
		v.relocate(prevTop, line-1, true)
		return s
	}
	rows := v.rowCount(line)
	s := v.buf.Backspace()
	v.relocate(top, line, v.rowCount(line) != rows)
	return s
}

// NewLine splits the line at the cursor.
func (v *Viewport) NewLine() {
	v.clearHighlight()
	line, top := v.buf.Line(), v.lineTop()
	v.buf.NewLine()
	v.relocate(top, line, true)
}

// MergeLine joins the next line onto the cursor line.
func (v *Viewport) MergeLine() {
	v.clearHighlight()
	line, top := v.buf.Line(), v.lineTop()
	v.buf.MergeLine()
	v.relocate(top, line, true)
}

// FindNext moves to the next occurrence of text and highlights every
// occurrence in the frame. The cursor stays put when nothing matches.
func (v *Viewport) FindNext(text string) bool {
	return v.find(text, v.buf.FindNext)
}

// FindPrevious is FindNext searching backwards.
func (v *Viewport) FindPrevious(text string) bool {
	return v.find(text, v.buf.FindPrevious)
}

func (v *Viewport) find(text string, search func(string) bool) bool {
	if text == "" {
		return false
	}
	pos := v.buf.Cursor()
	if !search(text) {
		logger.DebugTagf("viewport", "Viewport: %q not found from %s", text, pos)
		return false
	}
	hit := v.buf.Cursor()
	v.buf.Move(pos.Line, pos.Col)
	v.Move(hit.Line, hit.Col)
	v.highlight = text
	v.paintFrom(1)
	return true
}
