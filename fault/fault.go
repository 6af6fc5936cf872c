// Package fault defines the flat error taxonomy shared by the browser:
// network failures, malformed input, broken UI primitives and everything else.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindOther Kind = iota
	KindNetwork
	KindUnexpectedInput
	KindInvalidUI
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnexpectedInput:
		return "unexpected input"
	case KindInvalidUI:
		return "invalid ui"
	default:
		return "other"
	}
}

// Error is a classified failure. Err holds the underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err == nil:
		return e.Kind.String() + " error"
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. A target with a
// message only matches an error carrying the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Msg == "" || t.Msg == e.Msg
}

// Network reports that a response could not be retrieved.
func Network(msg string) *Error {
	return &Error{Kind: KindNetwork, Msg: msg}
}

// UnexpectedInput reports malformed input handed to a component.
func UnexpectedInput(msg string) *Error {
	return &Error{Kind: KindUnexpectedInput, Msg: msg}
}

// InvalidUI reports a failed drawing or window primitive. cause may be nil.
func InvalidUI(msg string, cause error) *Error {
	return &Error{Kind: KindInvalidUI, Msg: msg, Err: cause}
}

// Other reports anything not covered by the other kinds.
func Other(msg string) *Error {
	return &Error{Kind: KindOther, Msg: msg}
}

// Wrap classifies err under kind with a description.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindOther.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
