package room

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationLifecycle(t *testing.T) {
	mockClock := quartz.NewMock(t)
	rs := newReservationSet(mockClock, 60*time.Second)

	_, ok := rs.reserve(3, "alice")
	require.True(t, ok)

	holder, ok := rs.holder(3)
	require.True(t, ok)
	assert.Equal(t, "alice", holder)

	// Another player cannot take or steal the reservation
	_, ok = rs.reserve(3, "bob")
	assert.False(t, ok)
	assert.False(t, rs.canTake(3, "bob"))
	assert.True(t, rs.canTake(3, "alice"))

	// Other seats are unaffected
	assert.True(t, rs.canTake(4, "bob"))
}

func TestReservationExpires(t *testing.T) {
	mockClock := quartz.NewMock(t)
	rs := newReservationSet(mockClock, 60*time.Second)

	_, ok := rs.reserve(2, "alice")
	require.True(t, ok)

	mockClock.Advance(61 * time.Second)

	_, held := rs.holder(2)
	assert.False(t, held, "reservation should expire after the TTL")
	assert.True(t, rs.canTake(2, "bob"))
}

func TestReservationRefresh(t *testing.T) {
	mockClock := quartz.NewMock(t)
	rs := newReservationSet(mockClock, 60*time.Second)

	first, ok := rs.reserve(1, "alice")
	require.True(t, ok)

	mockClock.Advance(30 * time.Second)

	// Re-reserving your own seat extends the hold
	second, ok := rs.reserve(1, "alice")
	require.True(t, ok)
	assert.True(t, second.After(first))

	mockClock.Advance(45 * time.Second)
	holder, held := rs.holder(1)
	require.True(t, held, "refreshed reservation should still be live")
	assert.Equal(t, "alice", holder)
}

func TestReleaseFor(t *testing.T) {
	mockClock := quartz.NewMock(t)
	rs := newReservationSet(mockClock, 60*time.Second)

	rs.reserve(1, "alice")
	rs.reserve(2, "alice")
	rs.reserve(3, "bob")

	rs.releaseFor("alice")

	assert.True(t, rs.canTake(1, "carol"))
	assert.True(t, rs.canTake(2, "carol"))
	assert.False(t, rs.canTake(3, "carol"))
}
