package viewport

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/nib/internal/theme"
)

// rowRef names one physical row: the off-th wrapped row of a document line.
type rowRef struct {
	line int
	off  int
}

func (r rowRef) before(o rowRef) bool {
	return r.line < o.line || (r.line == o.line && r.off < o.off)
}

func (v *Viewport) rowCount(line int) int {
	return RowCount(v.buf.LineLength(line), v.Width())
}

func (v *Viewport) cursorRef() rowRef {
	line, col := v.buf.Line(), v.buf.Column()
	return rowRef{line: line, off: rowOf(col, v.buf.LineLength(line), v.Width())}
}

// next returns the row below r. Rows past the document are blank rows of
// lines that do not exist yet.
func (v *Viewport) next(r rowRef) rowRef {
	if r.off+1 < v.rowCount(r.line) {
		return rowRef{line: r.line, off: r.off + 1}
	}
	return rowRef{line: r.line + 1}
}

// prev returns the row above r; false at the first row of the document.
func (v *Viewport) prev(r rowRef) (rowRef, bool) {
	if r.off > 0 {
		return rowRef{line: r.line, off: r.off - 1}, true
	}
	if r.line <= 1 {
		return r, false
	}
	return rowRef{line: r.line - 1, off: v.rowCount(r.line-1) - 1}, true
}

func (v *Viewport) rowText(r rowRef) string {
	if r.line > v.buf.Lines() {
		return ""
	}
	runes := []rune(v.buf.LineContent(r.line))
	w := v.Width()
	start := r.off * w
	if start >= len(runes) {
		return ""
	}
	end := start + w
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

// rowsBetween counts the physical rows from the top of line from to the
// cursor's row. from must not be below the cursor line.
func (v *Viewport) rowsBetween(from int) int {
	n := 0
	for l := from; l < v.buf.Line(); l++ {
		n += v.rowCount(l)
	}
	return n + v.cursorRef().off
}

// refAt finds the document row shown at frame row f by walking back from
// the cursor. If the document starts below f, the returned frame row is
// where its first row sits.
func (v *Viewport) refAt(f int) (rowRef, int) {
	r := v.cursorRef()
	row := v.frameLine
	for ; row > f; row-- {
		p, ok := v.prev(r)
		if !ok {
			break
		}
		r = p
	}
	for ; row < f; row++ {
		r = v.next(r)
	}
	return r, row
}

// paintFrom repaints frame rows f through the bottom of the frame.
func (v *Viewport) paintFrom(f int) {
	if f < 1 {
		f = 1
	}
	h := v.FrameHeight()
	r, row := v.refAt(f)
	for blank := f; blank < row && blank <= h; blank++ {
		v.term.EraseLine(v.header + blank)
	}
	for ; row <= h; row++ {
		v.paintRow(row, r)
		r = v.next(r)
	}
}

// paintLine repaints only the visible rows of the cursor line, starting at frame row f.
func (v *Viewport) paintLine(f int) {
	if f < 1 {
		f = 1
	}
	h := v.FrameHeight()
	line := v.buf.Line()
	r, row := v.refAt(f)
	for ; row <= h && r.line == line; row++ {
		v.paintRow(row, r)
		r = v.next(r)
	}
}

func (v *Viewport) paintRow(frameRow int, r rowRef) {
	row := v.header + frameRow
	v.term.EraseLine(row)
	if text := v.rowText(r); text != "" {
		v.writeRow(row, text)
	}
}

// visible maps a tab to a space and any other control character to '?',
// so each rune still fills exactly one cell and no raw control byte reaches
// the terminal.
func visible(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return '?'
		}
		return r
	}, text)
}

func (v *Viewport) writeRow(row int, text string) {
	text = visible(text)
	normal := v.theme.GetStyle(theme.StyleDefault)
	if v.highlight == "" {
		v.term.WriteAt(row, 1, text, normal)
		return
	}
	mark := visible(v.highlight)
	marked := v.theme.GetStyle(theme.StyleSearchHighlight)
	col := 1
	for text != "" {
		i := strings.Index(text, mark)
		if i < 0 {
			v.term.WriteAt(row, col, text, normal)
			return
		}
		if i > 0 {
			v.term.WriteAt(row, col, text[:i], normal)
			col += utf8.RuneCountInString(text[:i])
		}
		v.term.WriteAt(row, col, mark, marked)
		col += utf8.RuneCountInString(mark)
		text = text[i+len(mark):]
	}
}

// scrollUp shifts the frame one row up and paints the row entering at the bottom.
func (v *Viewport) scrollUp(entering rowRef) {
	if v.batch || !v.term.CanScroll() {
		v.stale = true
		return
	}
	v.term.ScrollUp(1)
	v.paintRow(v.FrameHeight(), entering)
}

// scrollDown shifts the frame one row down and paints the row entering at the top.
func (v *Viewport) scrollDown(entering rowRef) {
	if v.batch || !v.term.CanScroll() {
		v.stale = true
		return
	}
	v.term.ScrollDown(1)
	v.paintRow(1, entering)
}
