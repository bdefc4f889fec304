package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberStatus_RoundTrip(t *testing.T) {
	for _, status := range []SubscriberStatus{StatusPending, StatusConfirmed, StatusUnsubscribed} {
		parsed, err := ParseSubscriberStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseSubscriberStatus_Encodings(t *testing.T) {
	assert.Equal(t, "pending_confirmation", StatusPending.String())
	assert.Equal(t, "confirmed", StatusConfirmed.String())
	assert.Equal(t, "unsubscribed", StatusUnsubscribed.String())
}

func TestParseSubscriberStatus_Unknown(t *testing.T) {
	_, err := ParseSubscriberStatus("bounced")
	require.Error(t, err)
	assert.Equal(t, "bounced is not a valid subscriber status", err.Error())
}
