// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/nib/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the editor.
const (
	StyleDefault         = "Default"
	StyleHeader          = "Header"
	StyleHeaderModified  = "Header.modified"
	StyleFooter          = "Footer"
	StyleFooterKey       = "Footer.key"
	StylePrompt          = "Prompt"
	StyleMessage         = "Message"
	StyleMessageError    = "Message.error"
	StyleSearchHighlight = "SearchHighlight"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot, then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Classic is the built-in theme: nano-like reverse-video bars on the
// terminal's own colours.
func Classic() *Theme {
	base := tcell.StyleDefault
	bar := base.Reverse(true)
	return &Theme{
		Name: "Classic",
		Styles: map[string]tcell.Style{
			StyleDefault:         base,
			StyleHeader:          bar,
			StyleHeaderModified:  bar.Bold(true),
			StyleFooter:          base,
			StyleFooterKey:       bar,
			StylePrompt:          bar.Bold(true),
			StyleMessage:         bar,
			StyleMessageError:    bar.Foreground(tcell.ColorMaroon),
			StyleSearchHighlight: base.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack),
		},
	}
}
