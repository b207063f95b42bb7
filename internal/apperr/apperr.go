// Package apperr defines the error taxonomy shared by every tally component.
//
// Each error carries a Kind and a free-text message. There are no error codes;
// callers branch on the kind with KindOf or Is and show Error() to the user.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	Unknown Kind = iota
	Network
	Decoding
	Encoding
	Persistence
	Validation
)

// String returns the human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case Network:
		return "Network"
	case Decoding:
		return "Decoding"
	case Encoding:
		return "Encoding"
	case Persistence:
		return "Persistence"
	case Validation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind. The message is err's text unless err is nil.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// Wrapf classifies err under kind with a message prefix.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Message: msg + ": " + err.Error(), Err: err}
}

func NetworkError(message string) *Error     { return New(Network, message) }
func DecodingError(message string) *Error    { return New(Decoding, message) }
func EncodingError(message string) *Error    { return New(Encoding, message) }
func PersistenceError(message string) *Error { return New(Persistence, message) }
func ValidationError(message string) *Error  { return New(Validation, message) }
func UnknownError(message string) *Error     { return New(Unknown, message) }

// KindOf reports the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
