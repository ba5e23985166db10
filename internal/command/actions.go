package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/nib/internal/buffer"
	"github.com/bethropolis/nib/internal/logger"
	"github.com/bethropolis/nib/internal/theme"
)

// cancelled turns a cancelled prompt into a footer message. Other errors,
// end of input in particular, are passed on.
func cancelled(ed Editor, err error) error {
	if errors.Is(err, ErrPromptCancelled) {
		ed.Message(theme.StyleMessage, "Cancelled")
		return nil
	}
	return err
}

// confirmDiscard asks before throwing away unsaved changes. It reports
// true when there is nothing to lose or the user agreed.
func confirmDiscard(ed Editor, question string) (bool, error) {
	if !ed.Dirty() {
		return true, nil
	}
	prompt := fmt.Sprintf("%s Unsaved changes (%s) will be lost. [y/N] ", question, ed.Changes())
	ok, err := ed.ReadBoolean(prompt, false)
	if err != nil {
		return false, cancelled(ed, err)
	}
	return ok, nil
}

func moveDown(ed Editor) error {
	if ed.Line() < ed.Lines() {
		ed.MoveDown(1)
	}
	return nil
}

// goTo prompts for "line" or "line,column". Lines past the end go to the last line.
func goTo(ed Editor) error {
	answer, err := ed.ReadLine("Go to line[,column]: ")
	if err != nil {
		return cancelled(ed, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	line, col, err := parseLocation(answer)
	if err != nil {
		ed.Message(theme.StyleMessageError, "Invalid line: %s", answer)
		return nil
	}
	if line > ed.Lines() {
		line = ed.Lines()
	}
	ed.Move(line, col)
	return nil
}

func parseLocation(s string) (int, int, error) {
	linePart, colPart, hasCol := strings.Cut(s, ",")
	line, err := strconv.Atoi(strings.TrimSpace(linePart))
	if err != nil || line <= 0 {
		return 0, 0, fmt.Errorf("bad line %q", linePart)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(strings.TrimSpace(colPart))
		if err != nil || col <= 0 {
			return 0, 0, fmt.Errorf("bad column %q", colPart)
		}
	}
	return line, col, nil
}

func save(ed Editor) error {
	location := ed.Location()
	if location == "" {
		answer, err := ed.ReadLine("Save as: ")
		if err != nil {
			return cancelled(ed, err)
		}
		location = strings.TrimSpace(answer)
		if location == "" {
			ed.Message(theme.StyleMessageError, "No file name given")
			return nil
		}
	}
	if err := ed.Save(location); err != nil {
		logger.Warnf("Command: save failed: %v", err)
		ed.Message(theme.StyleMessageError, "Save failed: %v", err)
		return nil
	}
	ed.Message(theme.StyleMessage, "Wrote %d lines to %s", ed.Lines(), location)
	return nil
}

func open(ed Editor) error {
	if !ed.OpenEnabled() {
		ed.Message(theme.StyleMessageError, "Opening files is disabled")
		return nil
	}
	ok, err := confirmDiscard(ed, "Open another file?")
	if err != nil || !ok {
		return err
	}
	answer, err := ed.ReadLine("Open file: ")
	if err != nil {
		return cancelled(ed, err)
	}
	location := strings.TrimSpace(answer)
	if location == "" {
		return nil
	}
	if err := ed.Open(location); err != nil {
		logger.Warnf("Command: open failed: %v", err)
		ed.Message(theme.StyleMessageError, "Open failed: %v", err)
		return nil
	}
	ed.Message(theme.StyleMessage, "Read %d lines from %s", ed.Lines(), location)
	return nil
}

func closeDocument(ed Editor) error {
	ok, err := confirmDiscard(ed, "Close this file?")
	if err != nil || !ok {
		return err
	}
	ed.Close()
	return nil
}

func quit(ed Editor) error {
	ok, err := confirmDiscard(ed, "Quit?")
	if err != nil || !ok {
		return err
	}
	ed.Stop()
	return nil
}

func undo(ed Editor) error {
	if !ed.History().Undo() {
		ed.Message(theme.StyleMessage, "Nothing to undo")
	}
	return nil
}

func redo(ed Editor) error {
	if !ed.History().Redo() {
		ed.Message(theme.StyleMessage, "Nothing to redo")
	}
	return nil
}

// find prompts for a term, offering the previous one as the default.
func find(ed Editor, search *SearchContext) error {
	prompt := "Find: "
	if search.Term != "" {
		prompt = fmt.Sprintf("Find [%s]: ", search.Term)
	}
	answer, err := ed.ReadLine(prompt)
	if err != nil {
		return cancelled(ed, err)
	}
	if answer != "" {
		search.Term = answer
	}
	if search.Term == "" {
		return nil
	}
	return findNext(ed, search)
}

func findNext(ed Editor, search *SearchContext) error {
	if search.Term == "" {
		return find(ed, search)
	}
	if !ed.FindNext(search.Term) {
		ed.Message(theme.StyleMessage, "%q not found", search.Term)
	}
	return nil
}

func findPrevious(ed Editor, search *SearchContext) error {
	if search.Term == "" {
		return find(ed, search)
	}
	if !ed.FindPrevious(search.Term) {
		ed.Message(theme.StyleMessage, "%q not found", search.Term)
	}
	return nil
}

// yank copies the cursor line, with its line break, to the clipboard.
func yank(ed Editor) error {
	text := ed.LineContent(ed.Line()) + buffer.LineBreak
	if err := ed.Clipboard().Set(text); err != nil {
		ed.Message(theme.StyleMessageError, "Copy failed: %v", err)
		return nil
	}
	ed.Message(theme.StyleMessage, "Copied line %d", ed.Line())
	return nil
}

// pickReplacement prompts for the character that replaces old.
func pickReplacement(ed Editor) func(old rune) (rune, bool, error) {
	return func(old rune) (rune, bool, error) {
		answer, err := ed.ReadLine(fmt.Sprintf("Replace %q with: ", old))
		if err != nil {
			return old, false, err
		}
		if answer == "" {
			return old, false, nil
		}
		r, _ := utf8.DecodeRuneInString(answer)
		return r, true, nil
	}
}
