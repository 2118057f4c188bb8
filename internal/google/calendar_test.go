package google

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
)

func TestParseEventTimeDateTime(t *testing.T) {
	got, err := parseEventTime(&calendar.EventDateTime{DateTime: "2025-03-10T14:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC), got)
}

func TestParseEventTimeAllDay(t *testing.T) {
	got, err := parseEventTime(&calendar.EventDateTime{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestParseEventTimeMissing(t *testing.T) {
	_, err := parseEventTime(nil)
	assert.Error(t, err)

	_, err = parseEventTime(&calendar.EventDateTime{})
	assert.Error(t, err)
}
