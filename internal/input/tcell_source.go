package input

import (
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// NewTcellSource polls screen events on a goroutine and re-encodes key
// events as the byte sequences a terminal would send, so one Decoder serves
// both backends. Resize events become notifications.
func NewTcellSource(screen tcell.Screen) *QueueSource {
	q := newQueueSource()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				q.Finish(io.EOF)
				return
			}
			var ok = true
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if p := KeyBytes(ev); len(p) > 0 {
					ok = q.Feed(p)
				}
			case *tcell.EventResize:
				q.Notify()
			}
			if !ok {
				return
			}
		}
	}()
	return q
}

// KeyBytes encodes a tcell key event. Keys without an encoding return nil.
func KeyBytes(ev *tcell.EventKey) []byte {
	key := ev.Key()
	if key == tcell.KeyRune {
		buf := make([]byte, 0, utf8.UTFMax+1)
		if ev.Modifiers()&tcell.ModAlt != 0 {
			buf = append(buf, esc)
		}
		return utf8.AppendRune(buf, ev.Rune())
	}
	// Control keys, Enter, Tab, Escape and both backspaces share their ASCII codes.
	if key <= 0x7f {
		return []byte{byte(key)}
	}
	switch key {
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyEnd:
		return []byte("\x1b[F")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	case tcell.KeyInsert:
		return []byte("\x1b[2~")
	case tcell.KeyPgUp:
		return []byte("\x1b[5~")
	case tcell.KeyPgDn:
		return []byte("\x1b[6~")
	}
	return nil
}
