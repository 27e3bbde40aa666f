package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTripStatus(t *testing.T) {
	before := TripStart.AddDate(0, 0, -10)
	info := TripStatus(before)
	assert.Equal(t, 10, info.DaysToGo)
	assert.False(t, info.Underway)
	assert.False(t, info.Over)

	during := TripStart.AddDate(0, 0, 3)
	info = TripStatus(during)
	assert.True(t, info.Underway)
	assert.Zero(t, info.DaysToGo)

	after := TripEnd.Add(24 * time.Hour)
	info = TripStatus(after)
	assert.True(t, info.Over)
}
