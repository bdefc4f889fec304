package newsletter

// ErrorKind classifies a broadcast failure for transport-level mapping.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindPersistence   ErrorKind = "persistence"
	KindEmailDelivery ErrorKind = "email_delivery"
	KindFeed          ErrorKind = "feed"
)

// Error is the closed failure type for this workflow.
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
