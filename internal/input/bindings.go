package input

import "runtime"

const esc = 0x1b

// ResizeSequence decodes to ActionResize. Backends use QueueSource.Notify;
// the sequence serves sources that only carry bytes. No terminal sends it.
const ResizeSequence = "\x1b[99~"

func ctrl(c byte) string {
	return string([]byte{c & 0x1f})
}

// SimpleKeyMap returns the nano-style bindings.
func SimpleKeyMap() *KeyMap {
	k := NewKeyMap()

	k.BindRange(0x20, 0x7e, ActionType)
	k.Bind("\t", ActionType)

	k.Bind(ctrl('A'), ActionHome)
	k.Bind(ctrl('B'), ActionReplaceCharacter)
	k.Bind(ctrl('E'), ActionEnd)
	k.Bind(ctrl('F'), ActionFind)
	k.Bind(ctrl('G'), ActionGoTo)
	k.Bind(ctrl('H'), ActionBackspace)
	k.Bind(ctrl('J'), ActionNewLine)
	k.Bind(ctrl('K'), ActionYank)
	k.Bind(ctrl('L'), ActionRedraw)
	k.Bind(ctrl('M'), ActionNewLine)
	k.Bind(ctrl('N'), ActionFindNext)
	k.Bind(ctrl('O'), ActionOpen)
	k.Bind(ctrl('P'), ActionFindPrevious)
	k.Bind(ctrl('Q'), ActionQuit)
	k.Bind(ctrl('R'), ActionRedo)
	k.Bind(ctrl('S'), ActionSave)
	k.Bind(ctrl('T'), ActionChangeCase)
	k.Bind(ctrl('U'), ActionUndo)
	k.Bind(ctrl('V'), ActionPaste)
	k.Bind(ctrl('W'), ActionClose)
	k.Bind(ctrl('X'), ActionQuit)
	k.Bind(ctrl('Z'), ActionUndo)
	k.Bind("\x7f", ActionBackspace)

	k.Bind("\x1b", ActionEscape)
	BindArrowKeys(k)
	k.Bind(ResizeSequence, ActionResize)

	return k
}

// BindArrowKeys adds the cursor, home/end and delete sequences sent by
// xterm-like terminals in both normal and application mode, and by the
// Windows console.
func BindArrowKeys(k *KeyMap) {
	for _, prefix := range []string{"\x1b[", "\x1bO"} {
		k.Bind(prefix+"A", ActionMoveUp)
		k.Bind(prefix+"B", ActionMoveDown)
		k.Bind(prefix+"C", ActionMoveRight)
		k.Bind(prefix+"D", ActionMoveLeft)
		k.Bind(prefix+"H", ActionHome)
		k.Bind(prefix+"F", ActionEnd)
	}
	k.Bind("\x1b[1~", ActionHome)
	k.Bind("\x1b[7~", ActionHome)
	k.Bind("\x1b[4~", ActionEnd)
	k.Bind("\x1b[8~", ActionEnd)
	k.Bind("\x1b[3~", ActionDelete)

	// Recognised so they are not typed as text.
	for _, seq := range []string{"\x1b[2~", "\x1b[5~", "\x1b[6~", "\x1bOP", "\x1bOQ", "\x1bOR", "\x1bOS"} {
		k.Bind(seq, ActionIgnore)
	}

	if runtime.GOOS == "windows" {
		for _, prefix := range []string{"\xe0", "\x00"} {
			k.Bind(prefix+"H", ActionMoveUp)
			k.Bind(prefix+"P", ActionMoveDown)
			k.Bind(prefix+"M", ActionMoveRight)
			k.Bind(prefix+"K", ActionMoveLeft)
			k.Bind(prefix+"G", ActionHome)
			k.Bind(prefix+"O", ActionEnd)
			k.Bind(prefix+"S", ActionDelete)
		}
	}
}
