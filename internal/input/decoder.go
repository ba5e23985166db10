package input

import (
	"time"
	"unicode/utf8"

	"github.com/bethropolis/nib/internal/logger"
)

// DefaultEscapeTimeout is how long a lone ESC waits for a following byte.
const DefaultEscapeTimeout = 100 * time.Millisecond

// Decoder turns a byte Source into Operations using a KeyMap.
type Decoder struct {
	src     Source
	keys    *KeyMap
	timeout time.Duration
	pending []byte // pushed-back bytes, top of stack is read first
}

// NewDecoder creates a decoder. A non-positive timeout uses DefaultEscapeTimeout.
func NewDecoder(src Source, keys *KeyMap, timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Decoder{src: src, keys: keys, timeout: timeout}
}

// SetKeyMap swaps the bindings; pushed-back bytes are kept.
func (d *Decoder) SetKeyMap(keys *KeyMap) {
	d.keys = keys
}

func (d *Decoder) read() (byte, error) {
	if n := len(d.pending); n > 0 {
		c := d.pending[n-1]
		d.pending = d.pending[:n-1]
		return c, nil
	}
	return d.src.Read()
}

// notifier is a Source that also carries out-of-band notifications.
type notifier interface {
	next() (byte, bool, error)
}

// first reads the opening byte of an operation. Only here, with nothing
// pushed back, may a source notification surface.
func (d *Decoder) first() (byte, bool, error) {
	if n, ok := d.src.(notifier); ok && len(d.pending) == 0 {
		return n.next()
	}
	c, err := d.read()
	return c, false, err
}

func (d *Decoder) unread(c byte) {
	d.pending = append(d.pending, c)
}

// Next blocks until one operation is decoded. The error is io.EOF (or the
// source's read error) once input is exhausted; a partial sequence is dropped.
func (d *Decoder) Next() (Operation, error) {
	var seq []byte
	for {
		var (
			c        byte
			notified bool
			err      error
		)
		if len(seq) == 0 {
			c, notified, err = d.first()
		} else {
			c, err = d.read()
		}
		if notified {
			return d.operation(ActionResize, nil), nil
		}
		if err != nil {
			if len(seq) > 0 {
				logger.DebugTagf("input", "Input: dropping partial sequence %q at end of input", seq)
			}
			return Operation{}, err
		}

		if len(seq) == 0 && c >= utf8.RuneSelf {
			if res, _ := d.keys.Lookup([]byte{c}); res == NoMatch {
				if op, ok := d.decodeRune(c); ok {
					return op, nil
				}
				continue
			}
		}

		seq = append(seq, c)
		res, action := d.keys.Lookup(seq)
		switch res {
		case Match:
			return d.operation(action, seq), nil

		case Prefix:
			if c == esc && len(d.pending) == 0 && !d.src.Available() {
				if _, err := d.src.Peek(d.timeout); err != nil && action != ActionNone {
					// Nothing followed in time: a lone Escape key.
					return d.operation(action, seq), nil
				}
			}

		case NoMatch:
			if op, ok := d.longestBound(seq); ok {
				return op, nil
			}
			logger.DebugTagf("input", "Input: unbound byte %#x ignored", seq[0])
			d.pending = d.pending[:len(d.pending)-1]
			seq = seq[:0]
		}
	}
}

// longestBound shrinks seq from the right, pushing each removed byte back,
// until a bound prefix is found. On failure every byte of seq is on the
// pending stack with seq[0] on top.
func (d *Decoder) longestBound(seq []byte) (Operation, bool) {
	for len(seq) > 0 {
		d.unread(seq[len(seq)-1])
		seq = seq[:len(seq)-1]
		if len(seq) == 0 {
			break
		}
		if res, action := d.keys.Lookup(seq); res != NoMatch && action != ActionNone {
			return d.operation(action, seq), true
		}
	}
	return Operation{}, false
}

// decodeRune assembles a multi-byte UTF-8 character starting with lead.
func (d *Decoder) decodeRune(lead byte) (Operation, bool) {
	var need int
	switch {
	case lead&0xe0 == 0xc0:
		need = 2
	case lead&0xf0 == 0xe0:
		need = 3
	case lead&0xf8 == 0xf0:
		need = 4
	default:
		logger.DebugTagf("input", "Input: stray UTF-8 byte %#x ignored", lead)
		return Operation{}, false
	}
	buf := []byte{lead}
	for len(buf) < need {
		c, err := d.read()
		if err != nil {
			return Operation{}, false
		}
		if c&0xc0 != 0x80 {
			d.unread(c)
			break
		}
		buf = append(buf, c)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		logger.DebugTagf("input", "Input: invalid UTF-8 %q ignored", buf)
		return Operation{}, false
	}
	return Operation{Action: ActionType, Text: string(r)}, true
}

func (d *Decoder) operation(action Action, seq []byte) Operation {
	op := Operation{Action: action}
	if action == ActionType {
		op.Text = string(seq)
	}
	logger.DebugTagf("input", "Input: %q -> %s", seq, op)
	return op
}
