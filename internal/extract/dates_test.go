package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhenResolverTomorrowAfternoon(t *testing.T) {
	r := NewWhenResolver()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	got, ok := r.Resolve("Please submit the report by tomorrow 5pm", now)
	require.True(t, ok)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 11, got.Day())
	assert.Equal(t, 17, got.Hour())
}

func TestWhenResolverNoDate(t *testing.T) {
	r := NewWhenResolver()

	_, ok := r.Resolve("Please submit the report when you can", time.Now())
	assert.False(t, ok)
}
