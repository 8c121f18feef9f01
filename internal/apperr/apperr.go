// Package apperr holds the small error taxonomy shared by every widget.
//
// Errors are never fatal and never retried: a Validation error is shown next to
// the input that caused it, a Network error replaces whatever data the widget
// was showing. Both clear on the next user action.
package apperr

import "errors"

// Kind classifies an error for presentation.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	default:
		return "none"
	}
}

// Error is a user-facing error with a kind and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad user input.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Network reports a failed or non-OK outbound request.
func Network(msg string, cause error) error {
	return &Error{Kind: KindNetwork, Msg: msg, Err: cause}
}

// KindOf returns the kind of err, KindNone for nil or foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// Message returns the text a widget should show for err. The cause is kept
// out of the message so transport details stay in the logs.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
