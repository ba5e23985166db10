package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, UTF8, Detect([]byte("plain ascii")))
	assert.Equal(t, UTF8, Detect([]byte("héllo")))
	assert.Equal(t, UTF8, Detect(nil))
	assert.Equal(t, UTF8BOM, Detect([]byte("\xEF\xBB\xBFhi")))
	assert.Equal(t, UTF16LE, Detect([]byte{0xFF, 0xFE, 'h', 0}))
	assert.Equal(t, UTF16BE, Detect([]byte{0xFE, 0xFF, 0, 'h'}))
	assert.Equal(t, Windows1252, Detect([]byte("caf\xe9")))
}

func TestDecodeEncode(t *testing.T) {
	text, err := Decode([]byte("caf\xe9"), Windows1252)
	require.NoError(t, err)
	assert.Equal(t, "café", text)

	text, err = Decode([]byte{0xFF, 0xFE, 'h', 0, 'i', 0}, UTF16LE)
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	text, err = Decode([]byte("\xEF\xBB\xBFhi"), UTF8BOM)
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	data, err := Encode("café", Windows1252)
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), data)

	data, err = Encode("hi", UTF8BOM)
	require.NoError(t, err)
	assert.Equal(t, []byte("\xEF\xBB\xBFhi"), data)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.txt")
	require.NoError(t, os.WriteFile(path, []byte("na\xefve\nline two"), 0600))

	s := NewFileStore()
	assert.Equal(t, Windows1252, s.DetectCharset(path))
	text, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "naïve\nline two", text)

	require.NoError(t, s.Save("naïve\nline 2", Windows1252, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("na\xefve\nline 2"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "new.txt")

	text, err := s.Load(path)
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, UTF8, s.DetectCharset(path))

	require.NoError(t, s.Save("fresh", UTF8, path))
	data, _ := os.ReadFile(path)
	assert.Equal(t, "fresh", string(data))
}

func TestFileStoreErrors(t *testing.T) {
	s := NewFileStore()
	assert.ErrorIs(t, s.Save("x", UTF8, ""), ErrNoLocation)

	dir := t.TempDir()
	_, err := s.Load(dir)
	assert.Error(t, err, "a directory is not a document")
}

func TestSummarize(t *testing.T) {
	assert.True(t, Summarize("same", "same").Empty())

	s := Summarize("a\nb\nc", "a\nB\nc\nd")
	assert.Equal(t, Summary{Inserted: 2, Deleted: 1}, s)
	assert.Equal(t, "+2 -1 lines", s.String())

	assert.Equal(t, Summary{Inserted: 2}, Summarize("", "one\ntwo"))
	assert.Equal(t, Summary{Deleted: 1}, Summarize("keep\ndrop\n", "keep\n"))
}
