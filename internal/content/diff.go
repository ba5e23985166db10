package content

import (
	"fmt"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Summary counts whole lines added and removed between two texts.
type Summary struct {
	Inserted int
	Deleted  int
}

func (s Summary) Empty() bool { return s.Inserted == 0 && s.Deleted == 0 }

func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d lines", s.Inserted, s.Deleted)
}

// Summarize diffs before and after line by line.
func Summarize(before, after string) Summary {
	if before == after {
		return Summary{}
	}
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(terminate(before), terminate(after))
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var s Summary
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			s.Inserted += strings.Count(df.Text, "\n")
		case dmp.DiffDelete:
			s.Deleted += strings.Count(df.Text, "\n")
		}
	}
	return s
}

// terminate ends text with a newline so the last line compares like the others.
func terminate(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
