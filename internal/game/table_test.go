package game

import (
	"errors"
	"testing"
)

func TestSitPlayer(t *testing.T) {
	t.Parallel()

	table := NewTable(6)
	if err := table.SitPlayer(2, NewPlayer("p1", "Alice", 100)); err != nil {
		t.Fatalf("SitPlayer failed: %v", err)
	}

	tests := []struct {
		name string
		seat int
		p    *Player
		code ErrorCode
	}{
		{"occupied seat", 2, NewPlayer("p2", "Bob", 100), CodeSeatOccupied},
		{"negative seat", -1, NewPlayer("p2", "Bob", 100), CodeInvalidSeat},
		{"seat out of range", 6, NewPlayer("p2", "Bob", 100), CodeInvalidSeat},
		{"already seated", 4, NewPlayer("p1", "Alice", 100), CodeAlreadySeated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.SitPlayer(tt.seat, tt.p)
			if CodeOf(err) != tt.code {
				t.Errorf("got code %v, want %v", CodeOf(err), tt.code)
			}
		})
	}
}

func TestStandPlayer(t *testing.T) {
	t.Parallel()

	table := NewTable(6)
	table.SitPlayer(0, NewPlayer("p1", "Alice", 100))

	if err := table.StandPlayer("p1"); err != nil {
		t.Fatalf("StandPlayer failed: %v", err)
	}
	if table.Seats[0] != nil {
		t.Error("seat 0 should be empty after standing")
	}

	err := table.StandPlayer("nobody")
	if !errors.Is(err, &Error{Code: CodePlayerNotFound}) {
		t.Errorf("expected player not found, got %v", err)
	}
}

func TestUpdateSeat(t *testing.T) {
	t.Parallel()

	table := NewTable(6)
	table.SitPlayer(1, NewPlayer("p1", "Alice", 100))

	rebought := NewPlayer("p1", "Alice", 500)
	if err := table.UpdateSeat(1, rebought); err != nil {
		t.Fatalf("UpdateSeat failed: %v", err)
	}
	if table.Seats[1].Chips != 500 {
		t.Errorf("chips = %g, want the replacement state", table.Seats[1].Chips)
	}

	if err := table.UpdateSeat(3, rebought); CodeOf(err) != CodePlayerNotFound {
		t.Errorf("got %v, want player not found for an empty seat", err)
	}
	if err := table.UpdateSeat(9, rebought); CodeOf(err) != CodeInvalidSeat {
		t.Errorf("got %v, want invalid seat", err)
	}
}

func TestEligibility(t *testing.T) {
	t.Parallel()

	table := NewTable(6)
	table.SitPlayer(0, NewPlayer("p1", "Alice", 100))
	table.SitPlayer(2, NewPlayer("p2", "Bob", 0)) // busted
	table.SitPlayer(4, NewPlayer("p3", "Carol", 100))
	table.Seats[4].Status = StatusSittingOut

	if got := table.EligiblePlayerCount(); got != 1 {
		t.Errorf("EligiblePlayerCount = %d, want 1", got)
	}
	if seats := table.EligibleSeats(); len(seats) != 1 || seats[0] != 0 {
		t.Errorf("EligibleSeats = %v, want [0]", seats)
	}
}

func TestAdvanceDealerSkipsIneligible(t *testing.T) {
	t.Parallel()

	table := NewTable(4)
	table.SitPlayer(0, NewPlayer("p1", "Alice", 100))
	table.SitPlayer(1, NewPlayer("p2", "Bob", 0)) // busted, never gets the button
	table.SitPlayer(2, NewPlayer("p3", "Carol", 100))

	table.DealerSeat = 0
	table.AdvanceDealer()
	if table.DealerSeat != 2 {
		t.Errorf("DealerSeat = %d, want 2", table.DealerSeat)
	}
	table.AdvanceDealer()
	if table.DealerSeat != 0 {
		t.Errorf("DealerSeat = %d, want 0 after wrap", table.DealerSeat)
	}
}

func TestBlindSeats(t *testing.T) {
	t.Parallel()

	t.Run("three handed", func(t *testing.T) {
		table := NewTable(6)
		table.SitPlayer(0, NewPlayer("p1", "Alice", 100))
		table.SitPlayer(2, NewPlayer("p2", "Bob", 100))
		table.SitPlayer(5, NewPlayer("p3", "Carol", 100))
		table.DealerSeat = 0

		sb, bb := table.BlindSeats()
		if sb != 2 || bb != 5 {
			t.Errorf("blinds = %d/%d, want 2/5", sb, bb)
		}
	})

	t.Run("all-in player keeps their position", func(t *testing.T) {
		table := NewTable(4)
		for i, chips := range []float64{100, 100, 0, 100} {
			p := NewPlayer(string(rune('a'+i)), "P", chips)
			p.Status = StatusActive
			if chips == 0 {
				p.Status = StatusAllIn
			}
			table.SitPlayer(i, p)
		}
		table.DealerSeat = 0

		sb, bb := table.BlindSeats()
		if sb != 1 || bb != 2 {
			t.Errorf("blinds = %d/%d, want 1/2 (positions walk the dealt-in players)", sb, bb)
		}
	})

	t.Run("heads up dealer posts small blind", func(t *testing.T) {
		table := NewTable(6)
		table.SitPlayer(1, NewPlayer("p1", "Alice", 100))
		table.SitPlayer(4, NewPlayer("p2", "Bob", 100))
		table.DealerSeat = 1

		sb, bb := table.BlindSeats()
		if sb != 1 || bb != 4 {
			t.Errorf("blinds = %d/%d, want 1/4", sb, bb)
		}
	})
}

func TestTableClone(t *testing.T) {
	t.Parallel()

	table := NewTable(2)
	table.SitPlayer(0, NewPlayer("p1", "Alice", 100))

	clone := table.Clone()
	clone.Seats[0].Chips = 50

	if table.Seats[0].Chips != 100 {
		t.Error("mutating clone changed the original")
	}
}
