// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/nib/internal/event"
	"github.com/bethropolis/nib/internal/theme"
	"github.com/bethropolis/nib/internal/tui"
	"github.com/bethropolis/nib/internal/types"
)

// HeaderSize is the number of rows the header takes.
const HeaderSize = 1

const noName = "[No Name]"

// StatusBar draws the header row above the frame and the help lines plus
// the message row below it.
type StatusBar struct {
	theme *theme.Theme
	title string
	help  []string

	mu           sync.RWMutex
	location     string
	modified     bool
	cursorPos    types.Position
	message      string
	messageStyle string
}

// New creates a status bar. help lines are shown centred above the message row.
func New(title string, help []string, th *theme.Theme) *StatusBar {
	if th == nil {
		th = theme.Classic()
	}
	return &StatusBar{
		theme:     th,
		title:     title,
		help:      help,
		cursorPos: types.Origin,
	}
}

// FooterSize is the help lines plus the message row.
func (sb *StatusBar) FooterSize() int { return len(sb.help) + 1 }

// SetFileInfo updates the file name and dirty marker shown in the header.
func (sb *StatusBar) SetFileInfo(location string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.location = location
	sb.modified = modified
}

// SetModified updates only the dirty marker.
func (sb *StatusBar) SetModified(modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.modified = modified
}

// SetCursorInfo updates the coordinates shown in the header.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetMessage sets the text of the message row. style is a theme style name.
func (sb *StatusBar) SetMessage(style, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = fmt.Sprintf(format, args...)
	sb.messageStyle = style
}

// ClearMessage empties the message row.
func (sb *StatusBar) ClearMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = ""
	sb.messageStyle = ""
}

// Message returns the current message text.
func (sb *StatusBar) Message() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.message
}

// Subscribe keeps the header in step with editor events.
func (sb *StatusBar) Subscribe(em *event.Manager) {
	em.Subscribe(event.TypeBufferLoaded, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferLoadedData); ok {
			sb.SetFileInfo(data.Location, false)
		}
		return false
	})
	em.Subscribe(event.TypeBufferSaved, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferSavedData); ok {
			sb.SetFileInfo(data.Location, false)
		}
		return false
	})
	em.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferModifiedData); ok {
			sb.SetModified(data.Dirty)
			sb.SetCursorInfo(data.Position)
		}
		return false
	})
	em.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		if data, ok := e.Data.(event.CursorMovedData); ok {
			sb.SetCursorInfo(data.NewPosition)
		}
		return false
	})
}

// headerText lays out the header for width columns: the title and file
// name on the left, the coordinates on the right.
func (sb *StatusBar) headerText(width int) (name, marker, coords string) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	coords = fmt.Sprintf("L:%d C:%d", sb.cursorPos.Line, sb.cursorPos.Col)
	name = noName
	if sb.location != "" {
		name = filepath.Base(sb.location)
	}
	if sb.modified {
		marker = "*"
	}

	avail := width - uniseg.StringWidth(sb.title) - 1 - len(marker) - uniseg.StringWidth(coords) - 1
	if avail < 1 {
		return "", marker, coords
	}
	return runewidth.Truncate(name, avail, "…"), marker, coords
}

// DrawHeader paints the header row.
func (sb *StatusBar) DrawHeader(s tui.Surface) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	style := sb.theme.GetStyle(theme.StyleHeader)
	name, marker, coords := sb.headerText(width)

	s.WriteAt(1, 1, strings.Repeat(" ", width), style)
	left := sb.title + ":" + name
	s.WriteAt(1, 1, left, style)
	if marker != "" {
		s.WriteAt(1, 1+uniseg.StringWidth(left), marker, sb.theme.GetStyle(theme.StyleHeaderModified))
	}
	if col := width - uniseg.StringWidth(coords) + 1; col > 1 {
		s.WriteAt(1, col, coords, style)
	}
}

// DrawFooter paints the help lines and the message row.
func (sb *StatusBar) DrawFooter(s tui.Surface) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	style := sb.theme.GetStyle(theme.StyleFooter)
	keyStyle := sb.theme.GetStyle(theme.StyleFooterKey)
	first := height - sb.FooterSize() + 1
	for i, line := range sb.help {
		row := first + i
		s.WriteAt(row, 1, strings.Repeat(" ", width), style)
		col := (width-uniseg.StringWidth(line))/2 + 1
		if col < 1 {
			col = 1
		}
		drawHelpLine(s, row, col, line, style, keyStyle)
	}
	sb.DrawMessage(s)
}

// drawHelpLine writes line, marking each "^X" key name with keyStyle.
func drawHelpLine(s tui.Surface, row, col int, line string, style, keyStyle tcell.Style) {
	gr := uniseg.NewGraphemes(line)
	key := 0
	for gr.Next() {
		cluster := gr.Str()
		st := style
		if cluster == "^" {
			key = 2
		}
		if key > 0 {
			st = keyStyle
			key--
		}
		s.WriteAt(row, col, cluster, st)
		col += gr.Width()
	}
}

// DrawMessage repaints only the message row.
func (sb *StatusBar) DrawMessage(s tui.Surface) {
	_, height := s.Size()
	sb.mu.RLock()
	msg, name := sb.message, sb.messageStyle
	sb.mu.RUnlock()

	s.EraseLine(height)
	if msg == "" {
		return
	}
	if name == "" {
		name = theme.StyleMessage
	}
	s.WriteAt(height, 1, msg, sb.theme.GetStyle(name))
}

// DrawPrompt shows prompt followed by the text typed so far on the message
// row and returns the column where the cursor belongs.
func (sb *StatusBar) DrawPrompt(s tui.Surface, prompt, input string) int {
	width, height := s.Size()
	style := sb.theme.GetStyle(theme.StylePrompt)
	text := prompt + input
	// keep the end of long input visible
	for text != "" && uniseg.StringWidth(text) >= width {
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
		text = text[len(cluster):]
	}
	s.EraseLine(height)
	s.WriteAt(height, 1, strings.Repeat(" ", width), style)
	s.WriteAt(height, 1, text, style)
	return uniseg.StringWidth(text) + 1
}
