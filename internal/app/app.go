// internal/app/app.go
package app

import (
	"fmt"
	"os"

	"github.com/bethropolis/nib/internal/clipboard"
	"github.com/bethropolis/nib/internal/config"
	"github.com/bethropolis/nib/internal/content"
	"github.com/bethropolis/nib/internal/editor"
	"github.com/bethropolis/nib/internal/input"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/theme"
	"github.com/bethropolis/nib/internal/tui"
)

// App wires configuration, terminal backend and editor together.
type App struct {
	cfg    *config.Config
	editor *editor.Editor
	src    *input.QueueSource
	stop   func()
}

// NewApp selects the terminal backend from cfg, builds the editor and
// loads path when it is not empty.
func NewApp(cfg *config.Config, path string) (*App, error) {
	flavor, err := LookupFlavor(cfg.Editor.Flavor)
	if err != nil {
		return nil, err
	}

	activeTheme := theme.Classic()
	if cfg.Editor.ThemeFile != "" {
		loaded, err := theme.LoadThemeFromFile(cfg.Editor.ThemeFile)
		if err != nil {
			logger.Warnf("App: theme %q not loaded, using %s: %v", cfg.Editor.ThemeFile, activeTheme.Name, err)
		} else {
			activeTheme = loaded
		}
	}

	term, src, err := openBackend(cfg.Editor.Backend, activeTheme)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, src: src}
	a.editor = editor.New(term, src, editor.Options{
		Title:         cfg.Editor.Title,
		Help:          flavor.Help,
		KeyMap:        flavor.KeyMap(),
		EscapeTimeout: cfg.Editor.EscapeTimeout(),
		UndoDepth:     cfg.Editor.UndoDepth,
		CursorDepth:   cfg.Editor.CursorDepth,
		ReadOnly:      cfg.Editor.ReadOnly,
		OpenEnabled:   cfg.Editor.OpenEnabled,
		Theme:         activeTheme,
		Clipboard:     clipboard.New(cfg.Editor.SystemClipboard),
		Store:         content.NewFileStore(),
	})
	a.subscribeLogging()

	if path != "" {
		a.editor.Load(path)
	}
	return a, nil
}

// openBackend creates the surface and byte source for the named backend.
func openBackend(backend string, t *theme.Theme) (tui.Surface, *input.QueueSource, error) {
	switch backend {
	case config.BackendTcell:
		screen, err := tui.New(t.GetStyle(theme.StyleDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("TUI initialization failed: %w", err)
		}
		return screen, input.NewTcellSource(screen.Screen()), nil
	case config.BackendANSI:
		term, err := tui.NewANSI(os.Stdin, os.Stdout)
		if err != nil {
			return nil, nil, fmt.Errorf("terminal initialization failed: %w", err)
		}
		return term, input.NewReaderSource(os.Stdin), nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// Editor returns the editor the app drives.
func (a *App) Editor() *editor.Editor { return a.editor }

// Run starts resize notifications and runs the editor until it stops.
func (a *App) Run() error {
	if a.cfg.Editor.Backend == config.BackendANSI {
		a.stop = watchResize(a.src)
		defer a.stop()
	}
	logger.Debugf("App: starting main loop")
	return a.editor.Run()
}
