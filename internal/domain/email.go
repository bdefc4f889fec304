package domain

import (
	"fmt"
	"net/mail"
)

// SubscriberEmail is a syntactically valid email address. The zero value is
// invalid; construct one via ParseSubscriberEmail.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw as an email address. The address must
// have a local part, an "@", and a domain part, and must be a bare address
// (no display name).
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return SubscriberEmail{}, NewValidationError(fmt.Sprintf("%s email is not valid", raw))
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the underlying address.
func (e SubscriberEmail) String() string { return e.value }

// IsZero reports whether the value was never parsed.
func (e SubscriberEmail) IsZero() bool { return e.value == "" }

// MarshalJSON serializes the address as a plain JSON string.
func (e SubscriberEmail) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", e.value)), nil
}
