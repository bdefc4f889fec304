package domain

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

const maxNameGraphemes = 256

// forbiddenNameChars would allow header or markup injection if they reached
// an email body or a SQL identifier.
const forbiddenNameChars = `/{}"><\()`

// SubscriberName is a validated display name. The zero value is invalid;
// construct one via ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw as a subscriber name: non-empty after
// trimming, at most 256 grapheme clusters, and free of forbidden characters.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	empty := strings.TrimSpace(raw) == ""
	tooLong := uniseg.GraphemeClusterCount(raw) > maxNameGraphemes
	forbidden := strings.ContainsAny(raw, forbiddenNameChars)

	if empty || tooLong || forbidden {
		return SubscriberName{}, NewValidationError(fmt.Sprintf("%s is not a valid subscriber name", raw))
	}
	return SubscriberName{value: raw}, nil
}

// String returns the underlying name.
func (n SubscriberName) String() string { return n.value }

// MarshalJSON serializes the name as a plain JSON string.
func (n SubscriberName) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", n.value)), nil
}
