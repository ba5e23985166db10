// internal/types/position.go
package types

import "fmt"

// Position is a cursor position in the document. Both fields are 1-indexed;
// Col counts runes, and Col == len(line)+1 means "after the last character".
type Position struct {
	Line int
	Col  int
}

// Origin is the first cell of every document.
var Origin = Position{Line: 1, Col: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Col < o.Col)
}

// Coordinates is a cell inside the drawing frame, 1-indexed.
type Coordinates struct {
	Row int
	Col int
}
