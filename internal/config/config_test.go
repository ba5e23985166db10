package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultFlavor, cfg.Editor.Flavor)
	assert.Equal(t, BackendANSI, cfg.Editor.Backend)
	assert.Equal(t, DefaultUndoDepth, cfg.Editor.UndoDepth)
	assert.Equal(t, DefaultEscapeTimeout, cfg.Editor.EscapeTimeout())
	assert.True(t, cfg.Editor.OpenEnabled)
}

func TestLoadFileAndValidate(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
disabled_tags = ["redraw"]

[editor]
backend = "TCELL"
escape_timeout_ms = 250
undo_depth = -3
read_only = true
open_enabled = false
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"redraw"}, cfg.Logger.DisabledTags)
	assert.Equal(t, BackendTcell, cfg.Editor.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Editor.EscapeTimeout())
	assert.Equal(t, DefaultUndoDepth, cfg.Editor.UndoDepth, "invalid depth resets")
	assert.True(t, cfg.Editor.ReadOnly)
	assert.False(t, cfg.Editor.OpenEnabled)
}

func TestLoadBadFileReturnsError(t *testing.T) {
	path := writeConfig(t, "[editor\nflavor=")
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultFlavor, cfg.Editor.Flavor)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[editor]\nflavor = \"simple\"\nundo_depth = 20\n")

	fs := flag.NewFlagSet("nib", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var flags Flags
	rest, err := flags.ParseFlags(fs, []string{"-undo-depth", "42", "-readonly", "-log-tags", "input, viewport", "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, rest)

	cfg, err := Load(path, &flags)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Editor.UndoDepth)
	assert.True(t, cfg.Editor.ReadOnly)
	assert.Equal(t, []string{"input", "viewport"}, cfg.Logger.EnabledTags)
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Equal(t, []string{"a", "b", "c"}, splitCommaList("a, b,,c "))
}
