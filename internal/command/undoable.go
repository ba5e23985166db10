package command

import (
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/nib/internal/buffer"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/types"
)

// mutation is the document change inside an UndoableCommand. apply reports
// whether anything changed. revert runs with the cursor where apply started
// and undoes exactly what the last apply did.
type mutation interface {
	name() string
	apply(t Target) (bool, error)
	revert(t Target, before, after types.Position)
}

// UndoableCommand records the cursor around a mutation so it can be undone
// and redone. It is the history entry for that edit.
type UndoableCommand struct {
	target  Target
	m       mutation
	before  types.Position
	after   types.Position
	changed bool
}

func newUndoable(t Target, m mutation) *UndoableCommand {
	return &UndoableCommand{target: t, m: m}
}

func (c *UndoableCommand) Execute() error {
	c.before = c.target.Cursor()
	changed, err := c.m.apply(c.target)
	c.changed = changed
	c.after = c.target.Cursor()
	if err != nil {
		return err
	}
	if changed {
		logger.DebugTagf("command", "Command: %s %s -> %s", c.m.name(), c.before, c.after)
	}
	return nil
}

// Changed reports whether Execute modified the document. Unchanged commands
// are not recorded in history.
func (c *UndoableCommand) Changed() bool { return c.changed }

// Name is the operation name used in events and logs.
func (c *UndoableCommand) Name() string { return c.m.name() }

func (c *UndoableCommand) Before() types.Position { return c.before }
func (c *UndoableCommand) After() types.Position  { return c.after }

func (c *UndoableCommand) Undo() {
	c.target.Move(c.before.Line, c.before.Col)
	c.m.revert(c.target, c.before, c.after)
}

func (c *UndoableCommand) Redo() {
	c.target.Move(c.before.Line, c.before.Col)
	if _, err := c.m.apply(c.target); err != nil {
		logger.Warnf("Command: redo %s failed: %v", c.m.name(), err)
	}
}

// insert puts text at the cursor. Typed characters and pastes both use it.
type insert struct {
	label string
	text  string
	fetch func() (string, error) // supplies text on first apply
}

func (m *insert) name() string { return m.label }

func (m *insert) apply(t Target) (bool, error) {
	if m.fetch != nil {
		text, err := m.fetch()
		if err != nil {
			return false, err
		}
		m.text, m.fetch = text, nil
	}
	// Put stores a lone \r as a line break; revert counts runes of the stored form.
	m.text = buffer.NormalizeNewlines(m.text)
	if m.text == "" {
		return false, nil
	}
	t.Put(m.text)
	return true, nil
}

func (m *insert) revert(t Target, _, _ types.Position) {
	for n := utf8.RuneCountInString(m.text); n > 0; n-- {
		t.Delete()
	}
}

type backspace struct {
	deleted string
}

func (m *backspace) name() string { return "backspace" }

func (m *backspace) apply(t Target) (bool, error) {
	m.deleted = t.Backspace()
	return m.deleted != "", nil
}

func (m *backspace) revert(t Target, before, after types.Position) {
	t.Move(after.Line, after.Col)
	t.Put(m.deleted)
	t.Move(before.Line, before.Col)
}

type deleteChar struct {
	deleted string
}

func (m *deleteChar) name() string { return "delete" }

func (m *deleteChar) apply(t Target) (bool, error) {
	lines := t.Lines()
	m.deleted = t.Delete()
	if m.deleted == buffer.LineBreak && t.Lines() == lines {
		// end of the document: nothing was joined
		return false, nil
	}
	return m.deleted != "", nil
}

func (m *deleteChar) revert(t Target, before, _ types.Position) {
	t.Put(m.deleted)
	t.Move(before.Line, before.Col)
}

type newLine struct{}

func (m *newLine) name() string { return "newline" }

func (m *newLine) apply(t Target) (bool, error) {
	t.NewLine()
	return true, nil
}

func (m *newLine) revert(t Target, _, _ types.Position) {
	t.MergeLine()
}

// replace swaps the character under the cursor. The cursor stays put.
type replace struct {
	label string
	old   string
	new   string
	pick  func(old rune) (rune, bool, error) // chooses the replacement on first apply
}

func (m *replace) name() string { return m.label }

func (m *replace) apply(t Target) (bool, error) {
	line, col := t.Line(), t.Column()
	runes := []rune(t.LineContent(line))
	if col > len(runes) {
		return false, nil
	}
	if m.pick != nil {
		r, ok, err := m.pick(runes[col-1])
		if err != nil || !ok {
			return false, err
		}
		m.old, m.new, m.pick = string(runes[col-1]), string(r), nil
	}
	if m.new == m.old {
		return false, nil
	}
	t.Delete()
	t.Put(m.new)
	t.Move(line, col)
	return true, nil
}

func (m *replace) revert(t Target, before, _ types.Position) {
	t.Delete()
	t.Put(m.old)
	t.Move(before.Line, before.Col)
}

// toggleCase flips a letter between upper and lower case. Other runes, and
// letters without a case partner, are left alone.
func toggleCase(r rune) (rune, bool, error) {
	if !unicode.IsLetter(r) {
		return r, false, nil
	}
	if unicode.IsUpper(r) {
		return unicode.ToLower(r), true, nil
	}
	return unicode.ToUpper(r), true, nil
}
