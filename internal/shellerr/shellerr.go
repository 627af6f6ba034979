// Package shellerr classifies the handful of failure shapes the shell
// surfaces to its renderer (spec §7): missing flags, invalid values,
// not-found lookups, violated preconditions, name conflicts and I/O
// failures. None of these cross the dispatcher boundary as panics — they
// are always turned into a prefixed diagnostic string.
package shellerr

import (
	"errors"
	"fmt"
)

// Kind classifies a shell-level failure.
type Kind int

const (
	MissingFlag Kind = iota
	InvalidValue
	NotFound
	Precondition
	Conflict
	IO
	Unknown
)

// Error is a classified shell failure. Precondition errors render with
// the "Action required:" prefix; everything else renders as "Error:".
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a classified Error with the message pre-formatted.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// MissingFlagf reports that a required flag was absent or non-string.
func MissingFlagf(flag string) error {
	return New(MissingFlag, "the required variable '%s' is missing", flag)
}

// NotFoundf reports a missing table/row/family/column.
func NotFoundf(format string, args ...interface{}) error {
	return New(NotFound, format, args...)
}

// Preconditionf reports a violated lifecycle precondition (e.g. dropping
// an enabled table).
func Preconditionf(format string, args ...interface{}) error {
	return New(Precondition, format, args...)
}

// Conflictf reports a name collision (e.g. renaming onto an existing family).
func Conflictf(format string, args ...interface{}) error {
	return New(Conflict, format, args...)
}

// InvalidValuef reports a value that failed to parse (e.g. a non-numeric timestamp).
func InvalidValuef(format string, args ...interface{}) error {
	return New(InvalidValue, format, args...)
}

// IOf reports a persistence failure.
func IOf(format string, args ...interface{}) error {
	return New(IO, format, args...)
}

// Render turns any error into the prefixed diagnostic string the shell
// displays. Classified errors get "Error:" or "Action required:"
// depending on Kind; unclassified errors always get "Error:".
func Render(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		if se.Kind == Precondition {
			return "Action required: " + se.Message
		}
		return "Error: " + se.Message
	}
	return "Error: " + err.Error()
}
