package app

import (
	"testing"

	"github.com/bethropolis/nib/internal/config"
	"github.com/bethropolis/nib/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleFlavorIsRegistered(t *testing.T) {
	f, err := LookupFlavor("simple")
	require.NoError(t, err)
	require.NotNil(t, f.KeyMap)
	assert.Len(t, f.Help, 3)
	assert.Equal(t, "^O Open  ^S Save  ^W Close  ^X Quit", f.Help[0])

	res, action := f.KeyMap().Lookup([]byte{0x18})
	assert.Equal(t, input.Match, res)
	assert.Equal(t, input.ActionQuit, action)
}

func TestLookupUnknownFlavor(t *testing.T) {
	_, err := LookupFlavor("emacs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"emacs"`)
	assert.Contains(t, err.Error(), "simple")
}

func TestRegisterFlavor(t *testing.T) {
	RegisterFlavor("minimal", Flavor{KeyMap: input.NewKeyMap, Help: []string{"^X Quit"}})
	f, err := LookupFlavor("minimal")
	require.NoError(t, err)
	assert.Equal(t, []string{"^X Quit"}, f.Help)

	RegisterFlavor("broken", Flavor{})
	_, err = LookupFlavor("broken")
	assert.Error(t, err)
}

func TestNewAppRejectsUnknownFlavor(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Editor.Flavor = "nope"
	_, err := NewApp(cfg, "")
	assert.Error(t, err)
}

func TestNewAppRejectsUnknownBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Editor.Backend = "gui"
	_, err := NewApp(cfg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gui")
}
