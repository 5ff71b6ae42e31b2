package game

import (
	"github.com/cardroomlabs/cardroom/poker"
)

// Phase is the game engine's state-machine phase
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseStarting
	PhasePostingBlinds
	PhaseDealing
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseHandComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseStarting:
		return "starting"
	case PhasePostingBlinds:
		return "posting_blinds"
	case PhaseDealing:
		return "dealing"
	case PhasePreFlop:
		return "pre_flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseHandComplete:
		return "hand_complete"
	default:
		return "unknown"
	}
}

// IsBetting returns true for phases with an open betting round
func (p Phase) IsBetting() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}

// Winner records one pot payout decided at showdown (or by everyone else
// folding).
type Winner struct {
	PlayerID string  `json:"playerId"`
	Seat     int     `json:"seat"`
	Amount   float64 `json:"amount"`
	PotIndex int     `json:"potIndex"`
	HandDesc string  `json:"handDesc,omitempty"`
	Low      bool    `json:"low,omitempty"`
}

// GameState is the aggregate root for one game room. Every accepted action
// or phase advance produces a new snapshot; no transition mutates a prior
// snapshot in place, so callers may hold and read old snapshots freely.
type GameState struct {
	Table     *Table           `json:"table"`
	Variant   VariantID        `json:"variant"`
	Structure BettingStructure `json:"structure"`
	Phase     Phase            `json:"phase"`
	Deck      *poker.Deck      `json:"-"`
	Community []poker.Card     `json:"community"`
	Pots      *PotManager      `json:"pots"`
	Round     *BettingRound    `json:"round,omitempty"`
	// CurrentSeat is the seat due to act, -1 when no betting round is open
	CurrentSeat int      `json:"currentSeat"`
	HandNum     uint64   `json:"handNum"`
	HandID      string   `json:"handId"`
	Winners     []Winner `json:"winners,omitempty"`
}

// newGameState creates the initial WAITING state for a room
func newGameState(variant VariantID, structure BettingStructure, seats int) *GameState {
	return &GameState{
		Table:       NewTable(seats),
		Variant:     variant,
		Structure:   structure,
		Phase:       PhaseWaiting,
		Pots:        NewPotManager(),
		CurrentSeat: -1,
	}
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	copied := &GameState{
		Table:       gs.Table.Clone(),
		Variant:     gs.Variant,
		Structure:   gs.Structure,
		Phase:       gs.Phase,
		Pots:        gs.Pots.Clone(),
		CurrentSeat: gs.CurrentSeat,
		HandNum:     gs.HandNum,
		HandID:      gs.HandID,
	}
	if gs.Deck != nil {
		copied.Deck = gs.Deck.Clone()
	}
	if gs.Community != nil {
		copied.Community = make([]poker.Card, len(gs.Community))
		copy(copied.Community, gs.Community)
	}
	if gs.Round != nil {
		copied.Round = gs.Round.Clone()
	}
	if gs.Winners != nil {
		copied.Winners = make([]Winner, len(gs.Winners))
		copy(copied.Winners, gs.Winners)
	}
	return copied
}

// CurrentPlayer returns the player due to act, or nil
func (gs *GameState) CurrentPlayer() *Player {
	if gs.CurrentSeat < 0 || gs.CurrentSeat >= len(gs.Table.Seats) {
		return nil
	}
	return gs.Table.Seats[gs.CurrentSeat]
}

// roundBetTotal is the sum of uncollected bets in the current round
func (gs *GameState) roundBetTotal() float64 {
	total := 0.0
	for _, p := range gs.Table.Seats {
		if p != nil {
			total += p.CurrentBet
		}
	}
	return total
}

// PotTotal returns the full pot: collected pots plus uncollected bets
func (gs *GameState) PotTotal() float64 {
	return gs.Pots.Total() + gs.roundBetTotal()
}

// TotalChips sums every chip on the table: stacks, live bets and pots.
// Used to verify chip conservation across hand boundaries.
func (gs *GameState) TotalChips() float64 {
	total := gs.Pots.Total() + gs.Pots.RakeTaken
	for _, p := range gs.Table.Seats {
		if p != nil {
			total += p.Chips + p.CurrentBet
		}
	}
	return total
}
