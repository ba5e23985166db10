package viewport

// stepDown moves frameLine onto the next physical row, scrolling when the
// cursor would leave the bottom of the frame.
func (v *Viewport) stepDown(entering rowRef) {
	v.frameLine++
	if h := v.FrameHeight(); v.frameLine > h {
		v.frameLine = h
		v.scrollUp(entering)
	}
}

func (v *Viewport) stepUp(entering rowRef) {
	v.frameLine--
	if v.frameLine < 1 {
		v.frameLine = 1
		v.scrollDown(entering)
	}
}

// follow walks the frame from the row the cursor was on to the row it is on now.
func (v *Viewport) follow(from rowRef) {
	to := v.cursorRef()
	for from.before(to) {
		from = v.next(from)
		v.stepDown(from)
	}
	for to.before(from) {
		p, ok := v.prev(from)
		if !ok {
			break
		}
		from = p
		v.stepUp(from)
	}
}

func (v *Viewport) moveDown() {
	from := v.cursorRef()
	v.buf.Move(v.buf.Line()+1, v.buf.Column())
	v.follow(from)
}

func (v *Viewport) moveUp() {
	if v.buf.Line() <= 1 {
		return
	}
	from := v.cursorRef()
	v.buf.Move(v.buf.Line()-1, v.buf.Column())
	v.follow(from)
}

func (v *Viewport) moveRight() {
	from := v.cursorRef()
	line, col := v.buf.Line(), v.buf.Column()
	switch {
	case col <= v.buf.LineLength(line):
		v.buf.Move(line, col+1)
	case line < v.buf.Lines():
		v.buf.Move(line+1, 1)
	default:
		return
	}
	v.follow(from)
}

func (v *Viewport) moveLeft() {
	from := v.cursorRef()
	line, col := v.buf.Line(), v.buf.Column()
	switch {
	case col > 1:
		v.buf.Move(line, col-1)
	case line > 1:
		v.buf.Move(line-1, v.buf.LineLength(line-1)+1)
	default:
		return
	}
	v.follow(from)
}

// MoveDown moves n lines down. The document end is not a limit; the lines
// below it are materialized by the next edit.
func (v *Viewport) MoveDown(n int) {
	for i := 0; i < n; i++ {
		v.moveDown()
	}
	v.finish()
}

func (v *Viewport) MoveUp(n int) {
	for i := 0; i < n; i++ {
		v.moveUp()
	}
	v.finish()
}

// MoveRight moves n characters right, wrapping onto the next existing line.
func (v *Viewport) MoveRight(n int) {
	for i := 0; i < n; i++ {
		v.moveRight()
	}
	v.finish()
}

// MoveLeft moves n characters left, wrapping onto the end of the previous line.
func (v *Viewport) MoveLeft(n int) {
	for i := 0; i < n; i++ {
		v.moveLeft()
	}
	v.finish()
}

// Move places the cursor at (line, col) as a series of single steps so the
// frame scrolls exactly as if the user had pressed the arrows. A jump taller
// than the frame repaints once instead of scrolling row by row.
func (v *Viewport) Move(line, col int) {
	if line <= 0 {
		return
	}
	if d := line - v.buf.Line(); d > v.FrameHeight() || -d > v.FrameHeight() {
		v.batch = true
		defer func() { v.batch = false }()
	}
	for v.buf.Line() < line {
		v.moveDown()
	}
	for v.buf.Line() > line {
		v.moveUp()
	}

	target := 1
	if line <= v.buf.Lines() {
		target = col
		if max := v.buf.LineLength(line) + 1; target > max {
			target = max
		}
		if target < 1 {
			target = 1
		}
	}
	for v.buf.Column() < target {
		v.moveRight()
	}
	for v.buf.Column() > target {
		v.moveLeft()
	}
	// finish runs before the deferred reset, so a batched jump still repaints.
	v.finish()
}

func (v *Viewport) MoveToStartOfLine() {
	v.Move(v.buf.Line(), 1)
}

func (v *Viewport) MoveToEndOfLine() {
	v.Move(v.buf.Line(), v.buf.LineLength(v.buf.Line())+1)
}

func (v *Viewport) MoveToStartOfFile() {
	v.Move(1, 1)
}

func (v *Viewport) MoveToEndOfFile() {
	last := v.buf.Lines()
	v.Move(last, v.buf.LineLength(last)+1)
}
