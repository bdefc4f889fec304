package subscription

import "errors"

// Sentinel errors returned by store implementations.
var (
	// ErrTokenNotFound means the token has no mapping in the token store,
	// either because it was never issued, it expired, or the stored value
	// was unusable.
	ErrTokenNotFound = errors.New("subscription token not found")

	// ErrSubscriberNotFound means no subscriber row matched the given id.
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// ErrorKind classifies a workflow failure for transport-level mapping.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindPersistence   ErrorKind = "persistence"
	KindTokenStore    ErrorKind = "token_store"
	KindEmailDelivery ErrorKind = "email_delivery"
)

// Error is the closed failure type for this workflow. It carries a
// human-readable message and the wrapped lower-level cause.
type Error struct {
	Kind ErrorKind
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

func wrapErr(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
