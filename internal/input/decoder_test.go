package input

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted is a deterministic Source. A pause before index i makes a peek
// at that point time out and Available report false.
type scripted struct {
	data   []byte
	pos    int
	pauses map[int]bool
	peeks  int
}

func script(s string, pausesBefore ...int) *scripted {
	src := &scripted{data: []byte(s), pauses: map[int]bool{}}
	for _, p := range pausesBefore {
		src.pauses[p] = true
	}
	return src
}

func (s *scripted) Read() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	delete(s.pauses, s.pos)
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *scripted) Peek(time.Duration) (byte, error) {
	s.peeks++
	if s.pos >= len(s.data) || s.pauses[s.pos] {
		return 0, ErrTimeout
	}
	return s.data[s.pos], nil
}

func (s *scripted) Available() bool { return s.pos < len(s.data) && !s.pauses[s.pos] }
func (s *scripted) Shutdown()       {}

func decodeAll(t *testing.T, src Source) []Operation {
	t.Helper()
	d := NewDecoder(src, SimpleKeyMap(), time.Millisecond)
	var ops []Operation
	for {
		op, err := d.Next()
		if errors.Is(err, io.EOF) {
			return ops
		}
		require.NoError(t, err)
		ops = append(ops, op)
		require.Less(t, len(ops), 100, "decoder loops")
	}
}

func typed(s string) Operation { return Operation{Action: ActionType, Text: s} }
func op(a Action) Operation     { return Operation{Action: a} }

func TestDecodePrintable(t *testing.T) {
	ops := decodeAll(t, script("ab "))
	assert.Equal(t, []Operation{typed("a"), typed("b"), typed(" ")}, ops)
}

func TestDecodeControlKeys(t *testing.T) {
	ops := decodeAll(t, script("\x13\x0d\x7f\x18"))
	assert.Equal(t, []Operation{op(ActionSave), op(ActionNewLine), op(ActionBackspace), op(ActionQuit)}, ops)
}

func TestDecodeArrowSequences(t *testing.T) {
	ops := decodeAll(t, script("\x1b[A\x1bOB\x1b[3~\x1b[H\x1b[4~"))
	assert.Equal(t, []Operation{
		op(ActionMoveUp), op(ActionMoveDown), op(ActionDelete), op(ActionHome), op(ActionEnd),
	}, ops)
}

func TestDecodeLoneEscapeAfterTimeout(t *testing.T) {
	src := script("\x1b[A", 1)
	ops := decodeAll(t, src)
	assert.Equal(t, []Operation{op(ActionEscape), typed("["), typed("A")}, ops)
	assert.Equal(t, 1, src.peeks)
}

func TestDecodeEscapeAtEndOfInput(t *testing.T) {
	ops := decodeAll(t, script("x\x1b"))
	assert.Equal(t, []Operation{typed("x"), op(ActionEscape)}, ops)
}

func TestDecodeAltKeyFallsBackToEscape(t *testing.T) {
	ops := decodeAll(t, script("\x1bx"))
	assert.Equal(t, []Operation{op(ActionEscape), typed("x")}, ops)
}

func TestDecodeUnboundSequencePushesBack(t *testing.T) {
	ops := decodeAll(t, script("\x1b[Zq"))
	assert.Equal(t, []Operation{op(ActionEscape), typed("["), typed("Z"), typed("q")}, ops)
}

func TestDecodeUnboundByteIsSkipped(t *testing.T) {
	ops := decodeAll(t, script("\x1ca"))
	assert.Equal(t, []Operation{typed("a")}, ops)
}

func TestDecodeUTF8(t *testing.T) {
	ops := decodeAll(t, script("é€😀"))
	assert.Equal(t, []Operation{typed("é"), typed("€"), typed("😀")}, ops)

	ops = decodeAll(t, script("\xc3a"))
	assert.Equal(t, []Operation{typed("a")}, ops, "truncated rune is dropped, next byte kept")
}

func TestDecodeResizeAndIgnored(t *testing.T) {
	ops := decodeAll(t, script(ResizeSequence+"\x1b[5~"))
	assert.Equal(t, []Operation{op(ActionResize), op(ActionIgnore)}, ops)
}

func TestDecodePartialSequenceAtEOF(t *testing.T) {
	ops := decodeAll(t, script("a\x1b["))
	assert.Equal(t, []Operation{typed("a")}, ops)
}

func TestKeyMapLookup(t *testing.T) {
	k := NewKeyMap()
	k.Bind("\x1b", ActionEscape)
	k.Bind("\x1b[A", ActionMoveUp)

	res, a := k.Lookup([]byte("\x1b"))
	assert.Equal(t, Prefix, res)
	assert.Equal(t, ActionEscape, a)

	res, a = k.Lookup([]byte("\x1b["))
	assert.Equal(t, Prefix, res)
	assert.Equal(t, ActionNone, a)

	res, a = k.Lookup([]byte("\x1b[A"))
	assert.Equal(t, Match, res)
	assert.Equal(t, ActionMoveUp, a)

	res, _ = k.Lookup([]byte("\x1b[B"))
	assert.Equal(t, NoMatch, res)

	k.Bind("\x1b[A", ActionNone)
	res, _ = k.Lookup([]byte("\x1b[A"))
	assert.Equal(t, NoMatch, res)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "find-previous", ActionFindPrevious.String())
	assert.Equal(t, "Action(99)", Action(99).String())
	assert.Equal(t, `type("x")`, typed("x").String())
}
