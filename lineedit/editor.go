// Package lineedit provides the single-line text buffer behind the address
// bar. Text is only ever edited at its end.
package lineedit

import "unicode"

// Editor is a single-line, append-only text buffer with undo.
type Editor struct {
	text    []rune
	history [][]rune // Undo history stack
	maxHist int      // Maximum history size (0 = unlimited)
}

// New creates a new empty Editor.
func New() *Editor {
	return &Editor{}
}

// Text returns the current text.
func (e *Editor) Text() string {
	return string(e.text)
}

// Len returns the length of the text in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// Clear resets the editor to empty state. Undo history is kept.
func (e *Editor) Clear() {
	e.text = e.text[:0]
}

// Set replaces the text.
func (e *Editor) Set(text string) {
	e.text = []rune(text)
}

// Insert appends a character.
func (e *Editor) Insert(r rune) {
	e.text = append(e.text, r)
}

// DeleteBackward removes the last character (backspace).
// Returns true if a character was deleted.
func (e *Editor) DeleteBackward() bool {
	if len(e.text) == 0 {
		return false
	}
	e.text = e.text[:len(e.text)-1]
	return true
}

// DeleteWordBackward removes trailing whitespace and then the word before it
// (Ctrl+W). Returns true if anything was deleted.
func (e *Editor) DeleteWordBackward() bool {
	i := len(e.text)
	for i > 0 && unicode.IsSpace(e.text[i-1]) {
		i--
	}
	if i > 0 {
		class := charClass(e.text[i-1])
		for i > 0 && charClass(e.text[i-1]) == class {
			i--
		}
	}
	deleted := i != len(e.text)
	e.text = e.text[:i]
	return deleted
}

// charClass returns the class of a character for word deletion purposes.
// 0 = whitespace, 1 = word char, 2 = punctuation/other
func charClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 1
	}
	return 2
}

// SaveState saves the current text to the undo history.
// Call this before making changes that should be undoable.
func (e *Editor) SaveState() {
	if len(e.history) > 0 && string(e.history[len(e.history)-1]) == string(e.text) {
		return
	}

	snapshot := make([]rune, len(e.text))
	copy(snapshot, e.text)
	e.history = append(e.history, snapshot)

	if e.maxHist > 0 && len(e.history) > e.maxHist {
		e.history = e.history[1:]
	}
}

// Undo restores the previous text from the undo history.
// Returns true if undo was performed, false if history is empty.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	e.text = e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	return true
}

// SetMaxHistory sets the maximum undo history size (0 = unlimited).
func (e *Editor) SetMaxHistory(max int) {
	e.maxHist = max
}
