package editor

import (
	"strings"

	"github.com/bethropolis/nib/internal/input"
)

// Message shows text on the footer message row.
func (e *Editor) Message(style, format string, args ...interface{}) {
	e.status.SetMessage(style, format, args...)
	e.status.DrawMessage(e.term)
}

// ReadLine prompts on the message row and collects a line of input.
func (e *Editor) ReadLine(prompt string) (string, error) {
	e.SaveCursor()
	defer e.endPrompt()

	var text []rune
	for {
		e.showPrompt(prompt, string(text))
		op, err := e.decoder.Next()
		if err != nil {
			return "", err
		}
		switch op.Action {
		case input.ActionType:
			text = append(text, []rune(op.Text)...)
		case input.ActionBackspace:
			if len(text) > 0 {
				text = text[:len(text)-1]
			}
		case input.ActionNewLine:
			return string(text), nil
		case input.ActionEscape:
			return "", ErrPromptCancelled
		case input.ActionResize:
			e.Resize()
		}
	}
}

// ReadBoolean prompts for y or n. Enter picks def.
func (e *Editor) ReadBoolean(prompt string, def bool) (bool, error) {
	e.SaveCursor()
	defer e.endPrompt()

	for {
		e.showPrompt(prompt, "")
		op, err := e.decoder.Next()
		if err != nil {
			return false, err
		}
		switch op.Action {
		case input.ActionType:
			switch strings.ToLower(op.Text) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			}
		case input.ActionNewLine:
			return def, nil
		case input.ActionEscape:
			return false, ErrPromptCancelled
		case input.ActionResize:
			e.Resize()
		}
	}
}

func (e *Editor) showPrompt(prompt, text string) {
	col := e.status.DrawPrompt(e.term, prompt, text)
	e.term.ShowCursor(e.Height(), col)
	e.term.Flush()
}

func (e *Editor) endPrompt() {
	e.status.DrawMessage(e.term)
	e.RestoreCursor()
	e.term.Flush()
}
