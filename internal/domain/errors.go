package domain

// ValidationError reports a malformed client-supplied value. It is always
// client-caused and maps to HTTP 400 at the API boundary.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}
