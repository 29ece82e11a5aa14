package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWallClock_FrozenUntilAdvanced(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewWallClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now(), "reading does not advance")

	clock.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), clock.Now())

	clock.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour+90*time.Second), clock.Now())
}
