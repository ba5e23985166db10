// Package content loads and saves documents and describes how they changed.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bethropolis/nib/internal/logger"
)

// ErrNoLocation is returned by Save when there is nowhere to write.
var ErrNoLocation = errors.New("no location to save to")

// Charset names the byte encoding of a document on disk.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "Windows-1252"
)

// Store is where documents come from and go to.
type Store interface {
	Load(location string) (string, error)
	Save(text string, charset Charset, location string) error
	DetectCharset(location string) Charset
}

// FileStore keeps documents in the local file system.
type FileStore struct{}

func NewFileStore() *FileStore { return &FileStore{} }

func (c Charset) encoding() encoding.Encoding {
	switch c {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case Windows1252:
		return charmap.Windows1252
	default:
		return unicode.UTF8
	}
}

// Detect guesses the charset of raw file content: byte order marks first,
// then valid UTF-8, then Windows-1252 for anything else.
func Detect(data []byte) Charset {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	case utf8.Valid(data):
		return UTF8
	default:
		return Windows1252
	}
}

// Decode converts raw content in charset c to text.
func Decode(data []byte, c Charset) (string, error) {
	out, _, err := transform.Bytes(c.encoding().NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", c, err)
	}
	return string(out), nil
}

// Encode converts text to charset c.
func Encode(text string, c Charset) ([]byte, error) {
	out, _, err := transform.Bytes(c.encoding().NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", c, err)
	}
	return out, nil
}

// Load reads a file as text. A file that does not exist yet loads as an
// empty document.
func (s *FileStore) Load(location string) (string, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.DebugTagf("content", "Content: %s does not exist, starting empty", location)
			return "", nil
		}
		return "", fmt.Errorf("failed to read file '%s': %w", location, err)
	}
	charset := Detect(data)
	text, err := Decode(data, charset)
	if err != nil {
		return "", fmt.Errorf("failed to read file '%s': %w", location, err)
	}
	logger.DebugTagf("content", "Content: loaded %s (%d bytes, %s)", location, len(data), charset)
	return text, nil
}

// Save writes text to location in the given charset, keeping the file mode
// of an existing file.
func (s *FileStore) Save(text string, charset Charset, location string) error {
	if location == "" {
		return ErrNoLocation
	}
	data, err := Encode(text, charset)
	if err != nil {
		return fmt.Errorf("failed to write file '%s': %w", location, err)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(location); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(location, data, mode); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", location, err)
	}
	logger.DebugTagf("content", "Content: saved %s (%d bytes, %s)", location, len(data), charset)
	return nil
}

// DetectCharset reports the charset of the file at location, UTF-8 when it
// cannot be read.
func (s *FileStore) DetectCharset(location string) Charset {
	data, err := os.ReadFile(location)
	if err != nil {
		return UTF8
	}
	return Detect(data)
}
