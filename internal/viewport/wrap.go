package viewport

// RowCount returns how many physical rows a line of length runes occupies
// at the given width. An empty line still takes one row, and a line of
// exactly width runes takes one row.
func RowCount(length, width int) int {
	if width < 1 {
		width = 1
	}
	if length <= 0 {
		return 1
	}
	return (length + width - 1) / width
}

// Wrap splits line into rows of at most width runes.
func Wrap(line string, width int) []string {
	if width < 1 {
		width = 1
	}
	runes := []rune(line)
	rows := make([]string, 0, RowCount(len(runes), width))
	if len(runes) == 0 {
		return append(rows, "")
	}
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		rows = append(rows, string(runes[start:end]))
	}
	return rows
}

// rowOf returns the 0-based row of a line that holds column col. The
// position just past the last character stays on the last row, so a cursor
// after a full-width line does not spill onto a row that is never drawn.
func rowOf(col, length, width int) int {
	if width < 1 {
		width = 1
	}
	if length <= 0 || col <= 1 {
		return 0
	}
	r := (col - 1) / width
	if last := RowCount(length, width) - 1; r > last {
		r = last
	}
	return r
}
