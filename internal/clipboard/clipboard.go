// Package clipboard holds the text used by yank and paste.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/nib/internal/logger"
)

// Clipboard stores one piece of text.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// seams for tests; the real clipboard needs a desktop session
var (
	readAll     = clipboard.ReadAll
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System uses the desktop clipboard and keeps a local copy, which is served
// whenever the desktop clipboard cannot be reached (no display, missing
// xclip/xsel, ssh sessions).
type System struct {
	local *Memory
}

func NewSystem() *System {
	return &System{local: NewMemory()}
}

func (s *System) Get() (string, error) {
	if unsupported() {
		return s.local.Get()
	}
	text, err := readAll()
	if err != nil {
		logger.DebugTagf("clipboard", "Clipboard: system read failed, using local copy: %v", err)
		return s.local.Get()
	}
	return text, nil
}

func (s *System) Set(text string) error {
	_ = s.local.Set(text)
	if unsupported() {
		return nil
	}
	if err := writeAll(text); err != nil {
		logger.DebugTagf("clipboard", "Clipboard: system write failed, kept local copy: %v", err)
	}
	return nil
}

// New returns the system clipboard when useSystem is set, otherwise a local one.
func New(useSystem bool) Clipboard {
	if useSystem {
		return NewSystem()
	}
	return NewMemory()
}
