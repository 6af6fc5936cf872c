package lineedit

import "unicode"

// Key codes understood by the address bar.
const (
	KeyBackspace = 0x08
	KeyLineFeed  = 0x0a
	KeyReturn    = 0x0d
	KeyCtrlU     = 0x15
	KeyCtrlW     = 0x17
	KeyCtrlZ     = 0x1a
	KeyDelete    = 0x7f
)

// EmacsScheme implements the emacs-style subset that makes sense for an
// append-only line: submit, backspace, kill line, kill word, undo.
// Every other printable character is inserted; control characters are ignored.
type EmacsScheme struct{}

// NewEmacsScheme creates a new emacs keybinding scheme.
func NewEmacsScheme() *EmacsScheme {
	return &EmacsScheme{}
}

// Name returns the scheme name.
func (s *EmacsScheme) Name() string {
	return "emacs"
}

// HandleKey processes a key press using emacs keybindings.
func (s *EmacsScheme) HandleKey(e *Editor, r rune) Event {
	switch r {
	case KeyLineFeed, KeyReturn:
		return Event{Consumed: true, Submit: true}

	case KeyDelete, KeyBackspace:
		e.SaveState()
		return Event{Consumed: true, TextChanged: e.DeleteBackward()}

	case KeyCtrlU:
		e.SaveState()
		changed := e.Len() > 0
		e.Clear()
		return Event{Consumed: true, TextChanged: changed}

	case KeyCtrlW:
		e.SaveState()
		return Event{Consumed: true, TextChanged: e.DeleteWordBackward()}

	case KeyCtrlZ:
		return Event{Consumed: true, TextChanged: e.Undo()}
	}

	if unicode.IsPrint(r) {
		e.Insert(r)
		return Event{Consumed: true, TextChanged: true}
	}
	return Event{}
}
