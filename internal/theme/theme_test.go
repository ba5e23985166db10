package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallbacks(t *testing.T) {
	th := Classic()
	assert.Equal(t, th.Styles[StyleHeaderModified], th.GetStyle(StyleHeaderModified))
	assert.Equal(t, th.Styles[StyleMessage], th.GetStyle("Message.info"), "base name fallback")
	assert.Equal(t, th.Styles[StyleDefault], th.GetStyle("Nope"))

	var none *Theme
	assert.Equal(t, tcell.StyleDefault, none.GetStyle(StyleHeader))
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dusk.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
is_dark = true

[styles.Default]
fg = "#c5cdd9"

[styles.Header]
bg = "navy"
bold = true

[styles.Prompt]
fg = "#12"
`), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dusk", th.Name)
	assert.True(t, th.IsDark)

	fg, _, _ := th.GetStyle(StyleDefault).Decompose()
	assert.Equal(t, tcell.NewHexColor(0xc5cdd9), fg)

	hfg, hbg, attrs := th.GetStyle(StyleHeader).Decompose()
	assert.Equal(t, fg, hfg, "inherits Default")
	assert.Equal(t, tcell.ColorNavy, hbg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	// The broken Prompt definition is skipped and the built-in one stays.
	assert.Equal(t, Classic().Styles[StylePrompt], th.GetStyle(StylePrompt))
}

func TestParseColorString(t *testing.T) {
	c, err := parseColorString(" RESET ")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorReset, c)

	_, err = parseColorString("#abc")
	assert.Error(t, err)

	_, err = parseColorString("chartreuse-ish")
	assert.Error(t, err)

	c, err = parseColorString("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), c)
}
