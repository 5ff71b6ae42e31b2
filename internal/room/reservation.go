package room

import (
	"time"

	"github.com/coder/quartz"
)

// DefaultReservationTTL is how long a seat reservation holds without the
// player buying in.
const DefaultReservationTTL = 60 * time.Second

type reservation struct {
	playerID  string
	expiresAt time.Time
}

// reservationSet tracks seat reservations with lazy expiry: an expired
// reservation is treated as absent on the next read, no timers involved.
// The owning room serializes access.
type reservationSet struct {
	clock  quartz.Clock
	ttl    time.Duration
	bySeat map[int]reservation
}

func newReservationSet(clock quartz.Clock, ttl time.Duration) *reservationSet {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	return &reservationSet{
		clock:  clock,
		ttl:    ttl,
		bySeat: make(map[int]reservation),
	}
}

// holder returns the player currently holding a live reservation on a seat
func (rs *reservationSet) holder(seat int) (string, bool) {
	r, ok := rs.bySeat[seat]
	if !ok {
		return "", false
	}
	if rs.clock.Now().After(r.expiresAt) {
		delete(rs.bySeat, seat)
		return "", false
	}
	return r.playerID, true
}

// reserve places or refreshes a reservation. Reserving a seat someone else
// holds fails; re-reserving your own seat extends it.
func (rs *reservationSet) reserve(seat int, playerID string) (time.Time, bool) {
	if holder, ok := rs.holder(seat); ok && holder != playerID {
		return time.Time{}, false
	}
	expiresAt := rs.clock.Now().Add(rs.ttl)
	rs.bySeat[seat] = reservation{playerID: playerID, expiresAt: expiresAt}
	return expiresAt, true
}

// canTake reports whether a player may sit in a seat given reservations
func (rs *reservationSet) canTake(seat int, playerID string) bool {
	holder, ok := rs.holder(seat)
	return !ok || holder == playerID
}

// release drops any reservation on the seat
func (rs *reservationSet) release(seat int) {
	delete(rs.bySeat, seat)
}

// releaseFor drops every reservation held by a player
func (rs *reservationSet) releaseFor(playerID string) {
	for seat, r := range rs.bySeat {
		if r.playerID == playerID {
			delete(rs.bySeat, seat)
		}
	}
}
