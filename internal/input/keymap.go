// internal/input/keymap.go
package input

// Result classifies a keymap lookup.
type Result int

const (
	NoMatch Result = iota // no binding starts with the sequence
	Match                 // the sequence is bound and nothing longer is
	Prefix                // longer bindings start with the sequence
)

// KeyMap is a prefix tree from byte sequences to actions.
type KeyMap struct {
	root *node
}

type node struct {
	action   Action
	children map[byte]*node
}

// NewKeyMap returns an empty keymap.
func NewKeyMap() *KeyMap {
	return &KeyMap{root: &node{}}
}

// Bind maps seq to action, replacing any previous binding of seq.
// Binding ActionNone removes the binding.
func (k *KeyMap) Bind(seq string, action Action) {
	if seq == "" {
		return
	}
	n := k.root
	for i := 0; i < len(seq); i++ {
		if n.children == nil {
			n.children = make(map[byte]*node)
		}
		child, ok := n.children[seq[i]]
		if !ok {
			child = &node{}
			n.children[seq[i]] = child
		}
		n = child
	}
	n.action = action
}

// BindRange binds every single byte in [from, to].
func (k *KeyMap) BindRange(from, to byte, action Action) {
	for c := int(from); c <= int(to); c++ {
		k.Bind(string([]byte{byte(c)}), action)
	}
}

// Lookup resolves seq. For Prefix, the returned action is the binding of
// seq itself (ActionNone when seq alone is unbound).
func (k *KeyMap) Lookup(seq []byte) (Result, Action) {
	if len(seq) == 0 {
		return NoMatch, ActionNone
	}
	n := k.root
	for _, c := range seq {
		next, ok := n.children[c]
		if !ok {
			return NoMatch, ActionNone
		}
		n = next
	}
	if len(n.children) > 0 {
		return Prefix, n.action
	}
	if n.action == ActionNone {
		return NoMatch, ActionNone
	}
	return Match, n.action
}
