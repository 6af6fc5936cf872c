package lineedit

// Event represents the result of handling a key press.
type Event struct {
	Consumed    bool // true if the scheme handled the key
	TextChanged bool // true if editor content was modified
	Submit      bool // true if user wants to submit (Enter)
}

// KeyScheme interprets key presses and translates them to editor actions.
type KeyScheme interface {
	// Name returns the scheme name for display/config.
	Name() string

	// HandleKey processes a single key and performs editor actions.
	HandleKey(e *Editor, r rune) Event
}
