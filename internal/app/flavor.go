package app

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/nib/internal/input"
)

// Flavor pairs a keymap with the help lines shown in the footer.
type Flavor struct {
	KeyMap func() *input.KeyMap
	Help   []string
}

var (
	flavorsMu sync.RWMutex
	flavors   = map[string]Flavor{}
)

func init() {
	RegisterFlavor("simple", Flavor{
		KeyMap: input.SimpleKeyMap,
		Help: []string{
			"^O Open  ^S Save  ^W Close  ^X Quit",
			"^F Find  ^N Next  ^P Prev  ^G Goto",
			"^Z Undo  ^R Redo  ^K Copy  ^V Paste",
		},
	})
}

// RegisterFlavor adds or replaces a named flavor.
func RegisterFlavor(name string, f Flavor) {
	flavorsMu.Lock()
	defer flavorsMu.Unlock()
	flavors[name] = f
}

// LookupFlavor returns the flavor registered under name.
func LookupFlavor(name string) (Flavor, error) {
	flavorsMu.RLock()
	defer flavorsMu.RUnlock()
	f, ok := flavors[name]
	if !ok || f.KeyMap == nil {
		return Flavor{}, fmt.Errorf("unknown flavor %q (available: %v)", name, flavorNames())
	}
	return f, nil
}

func flavorNames() []string {
	names := make([]string, 0, len(flavors))
	for name := range flavors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
