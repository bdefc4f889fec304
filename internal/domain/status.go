package domain

import "fmt"

// SubscriberStatus enumerates the states a subscriber can be in. The string
// value is the canonical encoding used for persistence.
type SubscriberStatus string

const (
	StatusPending      SubscriberStatus = "pending_confirmation"
	StatusConfirmed    SubscriberStatus = "confirmed"
	StatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// ParseSubscriberStatus decodes a canonical status string. An unrecognized
// string is an error, never a default.
func ParseSubscriberStatus(raw string) (SubscriberStatus, error) {
	switch SubscriberStatus(raw) {
	case StatusPending, StatusConfirmed, StatusUnsubscribed:
		return SubscriberStatus(raw), nil
	}
	return "", NewValidationError(fmt.Sprintf("%s is not a valid subscriber status", raw))
}

// String returns the canonical encoding, the exact inverse of
// ParseSubscriberStatus.
func (s SubscriberStatus) String() string { return string(s) }
