package game

import (
	"github.com/cardroomlabs/cardroom/poker"
)

// PlayerStatus is a player's lifecycle status within the current hand
type PlayerStatus int

const (
	StatusWaiting PlayerStatus = iota
	StatusActive
	StatusFolded
	StatusAllIn
	StatusSittingOut
)

// String returns the string representation of a player status
func (s PlayerStatus) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all_in"
	case StatusSittingOut:
		return "sitting_out"
	default:
		return "unknown"
	}
}

// ShowdownStatus records whether a player showed or mucked at showdown
type ShowdownStatus int

const (
	ShowdownNone ShowdownStatus = iota
	ShowdownShown
	ShowdownMucked
)

// String returns the string representation of a showdown status
func (s ShowdownStatus) String() string {
	switch s {
	case ShowdownShown:
		return "shown"
	case ShowdownMucked:
		return "mucked"
	default:
		return "none"
	}
}

// Player is the per-hand bookkeeping for one seated player
type Player struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Chips     float64      `json:"chips"`
	HoleCards []poker.Card `json:"holeCards,omitempty"`

	// CurrentBet and TotalBetThisRound are both scoped to the current
	// betting round: CurrentBet drives bet-to-match comparisons,
	// TotalBetThisRound is what CollectBets folds into the pots.
	CurrentBet        float64 `json:"currentBet"`
	TotalBetThisRound float64 `json:"totalBetThisRound"`

	Status   PlayerStatus   `json:"status"`
	Showdown ShowdownStatus `json:"showdown"`

	IsDealer       bool `json:"isDealer"`
	IsSmallBlind   bool `json:"isSmallBlind"`
	IsBigBlind     bool `json:"isBigBlind"`
	HasActed       bool `json:"hasActed"`
	SitOutNextHand bool `json:"sitOutNextHand"`
}

// NewPlayer creates a player with a starting stack
func NewPlayer(id, name string, chips float64) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Chips:  chips,
		Status: StatusWaiting,
	}
}

// InHand returns true if the player was dealt in and has not folded
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// CanAct returns true if the player can still take betting actions
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	copied := *p
	if p.HoleCards != nil {
		copied.HoleCards = make([]poker.Card, len(p.HoleCards))
		copy(copied.HoleCards, p.HoleCards)
	}
	return &copied
}

// postChips moves up to amount from the player's stack into the current
// betting round. A player who cannot cover the full amount posts their
// whole stack and goes all-in; partial posting is a valid outcome, never
// an error.
func (p *Player) postChips(amount float64) float64 {
	posted := amount
	if !chipsGTE(p.Chips, amount) {
		posted = p.Chips
	}
	p.Chips -= posted
	p.CurrentBet += posted
	p.TotalBetThisRound += posted
	if chipsZero(p.Chips) {
		p.Chips = 0
		p.Status = StatusAllIn
	}
	return posted
}

// resetForNewHand clears all per-hand fields and applies a deferred
// sit-out request. Chips and identity carry forward.
func (p *Player) resetForNewHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBetThisRound = 0
	p.Showdown = ShowdownNone
	p.IsDealer = false
	p.IsSmallBlind = false
	p.IsBigBlind = false
	p.HasActed = false

	switch {
	case p.SitOutNextHand:
		p.Status = StatusSittingOut
		p.SitOutNextHand = false
	case p.Status != StatusSittingOut:
		p.Status = StatusWaiting
	}
}
