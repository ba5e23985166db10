// internal/buffer/slice_buffer.go
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/nib/internal/types"
)

// SliceBuffer keeps one rune slice per line.
type SliceBuffer struct {
	lines [][]rune
	line  int
	col   int
	dirty bool
}

// NewSliceBuffer creates a buffer with one empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]rune{{}},
		line:  1,
		col:   1,
	}
}

// NewSliceBufferFrom creates a buffer holding text, cursor at 1:1.
func NewSliceBufferFrom(text string) *SliceBuffer {
	b := NewSliceBuffer()
	b.SetContent(text)
	return b
}

// NormalizeNewlines turns \r\n and a lone \r into \n.
func NormalizeNewlines(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// splitLines breaks text on \n, \r\n and \r. Trailing empty lines are
// dropped the way a final newline is, but at least one line is returned.
func splitLines(text string) [][]rune {
	parts := strings.Split(NormalizeNewlines(text), "\n")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// SetContent replaces the whole document and homes the cursor.
func (b *SliceBuffer) SetContent(text string) {
	b.lines = splitLines(text)
	b.line, b.col = 1, 1
	b.dirty = false
}

// Content returns the document with every line terminated by "\n".
func (b *SliceBuffer) Content() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(string(l))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LineContent returns line n, or "" when n is out of range.
func (b *SliceBuffer) LineContent(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return string(b.lines[n-1])
}

// LineLength returns the rune length of line n, 0 when out of range.
func (b *SliceBuffer) LineLength(n int) int {
	if n < 1 || n > len(b.lines) {
		return 0
	}
	return len(b.lines[n-1])
}

func (b *SliceBuffer) Lines() int             { return len(b.lines) }
func (b *SliceBuffer) Line() int              { return b.line }
func (b *SliceBuffer) Column() int            { return b.col }
func (b *SliceBuffer) Cursor() types.Position { return types.Position{Line: b.line, Col: b.col} }
func (b *SliceBuffer) Dirty() bool            { return b.dirty }
func (b *SliceBuffer) SetDirty(dirty bool)    { b.dirty = dirty }

func (b *SliceBuffer) Move(line, col int) {
	if line <= 0 {
		return
	}
	b.line = line
	if line > len(b.lines) {
		b.col = 1
		return
	}
	b.col = clamp(col, 1, len(b.lines[line-1])+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// materialize pads the document with empty lines up to the cursor line.
func (b *SliceBuffer) materialize() {
	for len(b.lines) < b.line {
		b.lines = append(b.lines, []rune{})
	}
}

func (b *SliceBuffer) current() []rune {
	return b.lines[b.line-1]
}

func (b *SliceBuffer) Put(text string) {
	if text == "" {
		return
	}
	text = NormalizeNewlines(text)
	b.materialize()
	cur := b.current()
	before := string(cur[:b.col-1])
	after := string(cur[b.col-1:])

	parts := strings.Split(before+text+after, "\n")
	if len(parts) == 1 {
		b.lines[b.line-1] = []rune(parts[0])
		b.col += utf8.RuneCountInString(text)
		return
	}

	inserted := make([][]rune, len(parts))
	for i, p := range parts {
		inserted[i] = []rune(p)
	}
	tail := append([][]rune{}, b.lines[b.line:]...)
	b.lines = append(append(b.lines[:b.line-1], inserted...), tail...)

	last := inserted[len(inserted)-1]
	b.line += len(parts) - 1
	b.col = len(last) - utf8.RuneCountInString(after) + 1
}

func (b *SliceBuffer) Delete() string {
	if b.line > len(b.lines) {
		b.col = 1
		return LineBreak
	}
	cur := b.current()
	if b.col > len(cur) {
		if b.line < len(b.lines) {
			b.MergeLine()
		}
		return LineBreak
	}
	r := cur[b.col-1]
	b.lines[b.line-1] = append(cur[:b.col-1:b.col-1], cur[b.col:]...)
	return string(r)
}

func (b *SliceBuffer) Backspace() string {
	if b.line == 1 && b.col == 1 {
		return ""
	}
	if b.line > len(b.lines) {
		return ""
	}
	if b.col == 1 {
		prevLen := len(b.lines[b.line-2])
		b.line--
		b.MergeLine()
		b.col = prevLen + 1
		return LineBreak
	}
	cur := b.current()
	r := cur[b.col-2]
	b.lines[b.line-1] = append(cur[:b.col-2:b.col-2], cur[b.col-1:]...)
	b.col--
	return string(r)
}

func (b *SliceBuffer) NewLine() {
	b.materialize()
	cur := b.current()
	head := append([]rune{}, cur[:b.col-1]...)
	tail := append([]rune{}, cur[b.col-1:]...)

	b.lines[b.line-1] = head
	b.lines = append(b.lines, nil)
	copy(b.lines[b.line+1:], b.lines[b.line:])
	b.lines[b.line] = tail

	b.line++
	b.col = 1
}

func (b *SliceBuffer) MergeLine() {
	if b.line >= len(b.lines) {
		return
	}
	merged := append(append([]rune{}, b.lines[b.line-1]...), b.lines[b.line]...)
	b.lines[b.line-1] = merged
	b.lines = append(b.lines[:b.line], b.lines[b.line+1:]...)
}

// FindNext moves the cursor to the next match strictly after the cursor.
func (b *SliceBuffer) FindNext(text string) bool {
	if text == "" || b.line > len(b.lines) {
		return false
	}
	cur := b.current()
	if b.col <= len(cur) {
		if i := runeIndex(string(cur[b.col:]), text); i >= 0 {
			b.col += i + 1
			return true
		}
	}
	for n := b.line + 1; n <= len(b.lines); n++ {
		if i := runeIndex(string(b.lines[n-1]), text); i >= 0 {
			b.line, b.col = n, i+1
			return true
		}
	}
	return false
}

// FindPrevious moves the cursor to the nearest match that ends before the cursor.
func (b *SliceBuffer) FindPrevious(text string) bool {
	if text == "" {
		return false
	}
	start := b.line
	if start > len(b.lines) {
		start = len(b.lines) + 1
	} else {
		cur := b.current()
		if i := runeLastIndex(string(cur[:b.col-1]), text); i >= 0 {
			b.col = i + 1
			return true
		}
	}
	for n := start - 1; n >= 1; n-- {
		if i := runeLastIndex(string(b.lines[n-1]), text); i >= 0 {
			b.line, b.col = n, i+1
			return true
		}
	}
	return false
}

func runeIndex(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

func runeLastIndex(s, sub string) int {
	i := strings.LastIndex(s, sub)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

func (b *SliceBuffer) MoveToStartOfLine() { b.col = 1 }

func (b *SliceBuffer) MoveToEndOfLine() { b.col = b.LineLength(b.line) + 1 }

func (b *SliceBuffer) MoveToStartOfFile() { b.line, b.col = 1, 1 }

func (b *SliceBuffer) MoveToEndOfFile() {
	b.line = len(b.lines)
	b.col = len(b.lines[b.line-1]) + 1
}

var _ Buffer = (*SliceBuffer)(nil)
