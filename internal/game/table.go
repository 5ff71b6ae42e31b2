package game

// Table is a fixed-size array of seats, each empty or holding one player.
// The table owns the dealer button and advances it only among eligible
// seats.
type Table struct {
	Seats      []*Player `json:"seats"`
	DealerSeat int       `json:"dealerSeat"`
}

// NewTable creates a table with the given number of seats
func NewTable(numSeats int) *Table {
	return &Table{
		Seats:      make([]*Player, numSeats),
		DealerSeat: -1,
	}
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	seats := make([]*Player, len(t.Seats))
	for i, p := range t.Seats {
		if p != nil {
			seats[i] = p.Clone()
		}
	}
	return &Table{Seats: seats, DealerSeat: t.DealerSeat}
}

// SitPlayer places a player in an empty seat
func (t *Table) SitPlayer(seat int, p *Player) error {
	if seat < 0 || seat >= len(t.Seats) {
		return newError(CodeInvalidSeat, "seat %d out of range 0-%d", seat, len(t.Seats)-1)
	}
	if t.Seats[seat] != nil {
		return newError(CodeSeatOccupied, "seat %d is taken by %s", seat, t.Seats[seat].Name)
	}
	if existing, _ := t.FindPlayer(p.ID); existing != nil {
		return newError(CodeAlreadySeated, "player %s is already seated", p.ID)
	}
	t.Seats[seat] = p
	return nil
}

// StandPlayer removes a player from the table
func (t *Table) StandPlayer(playerID string) error {
	for i, p := range t.Seats {
		if p != nil && p.ID == playerID {
			t.Seats[i] = nil
			return nil
		}
	}
	return newError(CodePlayerNotFound, "player %s is not seated", playerID)
}

// UpdateSeat replaces the player state at an occupied seat
func (t *Table) UpdateSeat(seat int, p *Player) error {
	if seat < 0 || seat >= len(t.Seats) {
		return newError(CodeInvalidSeat, "seat %d out of range 0-%d", seat, len(t.Seats)-1)
	}
	if t.Seats[seat] == nil {
		return newError(CodePlayerNotFound, "seat %d is empty", seat)
	}
	t.Seats[seat] = p
	return nil
}

// FindPlayer returns the player with the given ID and their seat number
func (t *Table) FindPlayer(playerID string) (*Player, int) {
	for i, p := range t.Seats {
		if p != nil && p.ID == playerID {
			return p, i
		}
	}
	return nil, -1
}

// EmptySeats returns the seat numbers with no player
func (t *Table) EmptySeats() []int {
	var seats []int
	for i, p := range t.Seats {
		if p == nil {
			seats = append(seats, i)
		}
	}
	return seats
}

// isEligible reports whether a seat can be dealt into the next hand:
// occupied, has chips, and not sitting out. A player with zero chips is
// never dealt in and is excluded from blind rotation.
func (t *Table) isEligible(seat int) bool {
	p := t.Seats[seat]
	return p != nil && p.Chips > chipEpsilon && p.Status != StatusSittingOut
}

// EligibleSeats returns seats eligible for the next hand in seat order
func (t *Table) EligibleSeats() []int {
	var seats []int
	for i := range t.Seats {
		if t.isEligible(i) {
			seats = append(seats, i)
		}
	}
	return seats
}

// EligiblePlayerCount returns how many seats could be dealt into a hand
func (t *Table) EligiblePlayerCount() int {
	return len(t.EligibleSeats())
}

// PlayersInHand returns the players dealt into the current hand who have
// not folded, in seat order.
func (t *Table) PlayersInHand() []*Player {
	var players []*Player
	for _, p := range t.Seats {
		if p != nil && p.InHand() {
			players = append(players, p)
		}
	}
	return players
}

// nextSeatWhere walks seats in seat-number order starting after the given
// seat, wrapping around, and returns the first one the predicate accepts.
// Returns -1 if no seat qualifies.
func (t *Table) nextSeatWhere(after int, ok func(seat int) bool) int {
	n := len(t.Seats)
	for i := 1; i <= n; i++ {
		seat := (after + i) % n
		if seat < 0 {
			seat += n
		}
		if ok(seat) {
			return seat
		}
	}
	return -1
}

// NextEligibleSeat walks eligible seats in seat-number order starting
// after the given seat, wrapping around. Returns -1 if no seat qualifies.
func (t *Table) NextEligibleSeat(after int) int {
	return t.nextSeatWhere(after, t.isEligible)
}

// nextSeatInHand walks seats of players who can still act, starting after
// the given seat. Returns -1 if nobody can act.
func (t *Table) nextSeatInHand(after int) int {
	n := len(t.Seats)
	for i := 1; i <= n; i++ {
		seat := (after + i) % n
		if seat < 0 {
			seat += n
		}
		if p := t.Seats[seat]; p != nil && p.CanAct() {
			return seat
		}
	}
	return -1
}

// AdvanceDealer moves the button to the next eligible seat
func (t *Table) AdvanceDealer() {
	next := t.NextEligibleSeat(t.DealerSeat)
	if next != -1 {
		t.DealerSeat = next
	}
}

// BlindSeats returns the small and big blind seats for the current button.
// Heads-up, the dealer posts the small blind and the other player the big
// blind; with three or more, the blinds are the next two seats after the
// dealer. Once a hand is underway the positions are computed among the
// players dealt in, so an ante or blind that puts someone all-in does not
// shift them; before any deal they come from the seats eligible for the
// next hand.
func (t *Table) BlindSeats() (sb, bb int) {
	in := func(seat int) bool {
		p := t.Seats[seat]
		return p != nil && p.InHand()
	}
	count := len(t.PlayersInHand())
	if count == 0 {
		in = t.isEligible
		count = t.EligiblePlayerCount()
	}
	if count < 2 {
		return -1, -1
	}
	if count == 2 {
		sb = t.DealerSeat
		bb = t.nextSeatWhere(sb, in)
		return sb, bb
	}
	sb = t.nextSeatWhere(t.DealerSeat, in)
	bb = t.nextSeatWhere(sb, in)
	return sb, bb
}
