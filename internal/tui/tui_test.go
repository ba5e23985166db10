package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(s Surface, rows ...string) {
	for i, r := range rows {
		s.EraseLine(i + 1)
		s.WriteAt(i+1, 1, r, tcell.StyleDefault)
	}
}

func TestMemoryScrollRegion(t *testing.T) {
	m := NewMemory(10, 5)
	fill(m, "head", "a", "b", "c", "foot")
	m.SetScrollRegion(2, 4)

	m.ScrollUp(1)
	assert.Equal(t, []string{"head", "b", "c", "", "foot"}, m.Rows())

	m.ScrollDown(2)
	assert.Equal(t, []string{"head", "", "", "b", "foot"}, m.Rows())
	assert.Equal(t, 2, m.Scrolls)
}

func TestMemoryWriteClips(t *testing.T) {
	m := NewMemory(4, 2)
	m.WriteAt(1, 3, "xyz", tcell.StyleDefault.Bold(true))
	assert.Equal(t, "  xy", m.Row(1))
	assert.Equal(t, tcell.StyleDefault.Bold(true), m.StyleAt(1, 3))
	m.WriteAt(9, 1, "nope", tcell.StyleDefault)
	assert.Equal(t, "", m.Row(9))
}

func newSimTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(w, h)
	tu := NewWithScreen(sim, tcell.StyleDefault)
	t.Cleanup(func() { _ = tu.Restore() })
	return tu, sim
}

func simRow(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b []rune
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b = append(b, ' ')
			continue
		}
		b = append(b, c.Runes[0])
	}
	return strings.TrimRight(string(b), " ")
}

func TestTUIScrollsByCopyingCells(t *testing.T) {
	tu, sim := newSimTUI(t, 8, 4)
	fill(tu, "top", "one", "two", "end")
	tu.SetScrollRegion(2, 3)

	tu.ScrollUp(1)
	tu.Flush()
	assert.Equal(t, "top", simRow(sim, 0))
	assert.Equal(t, "two", simRow(sim, 1))
	assert.Equal(t, "", simRow(sim, 2))
	assert.Equal(t, "end", simRow(sim, 3))

	tu.WriteAt(3, 1, "new", tcell.StyleDefault)
	tu.ScrollDown(1)
	tu.Flush()
	assert.Equal(t, "", simRow(sim, 1))
	assert.Equal(t, "two", simRow(sim, 2))
	assert.True(t, tu.CanScroll())
}

func TestTUICursor(t *testing.T) {
	tu, sim := newSimTUI(t, 8, 4)
	tu.ShowCursor(2, 5)
	tu.Flush()
	x, y, visible := sim.GetCursor()
	assert.Equal(t, 4, x)
	assert.Equal(t, 1, y)
	assert.True(t, visible)
}

func TestANSIWriterSequences(t *testing.T) {
	var out bytes.Buffer
	a := NewANSIWriter(&out, 80, 24)

	a.SetScrollRegion(2, 20)
	a.WriteAt(3, 4, "hi", tcell.StyleDefault)
	a.ScrollUp(1)
	a.ScrollDown(2)
	a.EraseLine(5)
	a.ShowCursor(7, 8)
	a.Flush()

	assert.Equal(t, "\x1b[2;20r\x1b[3;4Hhi\x1b[0m\x1b[1S\x1b[2T\x1b[5;1H\x1b[2K\x1b[7;8H", out.String())

	w, h := a.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	out.Reset()
	assert.NoError(t, a.Restore())
	assert.Equal(t, "\x1b[r\x1b[0m\x1b[?1049l", out.String())
}

func TestSGR(t *testing.T) {
	assert.Equal(t, "", sgr(tcell.StyleDefault))
	assert.Equal(t, "\x1b[0;1;7m", sgr(tcell.StyleDefault.Bold(true).Reverse(true)))
	assert.Equal(t, "\x1b[0;31;40m", sgr(tcell.StyleDefault.Foreground(tcell.ColorMaroon).Background(tcell.ColorBlack)))
	assert.Equal(t, "\x1b[0;38;2;255;136;0m", sgr(tcell.StyleDefault.Foreground(tcell.NewHexColor(0xff8800))))
}
