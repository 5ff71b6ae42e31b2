package game

import "fmt"

// LimitType selects the betting structure semantics
type LimitType int

const (
	NoLimit LimitType = iota
	PotLimit
	FixedLimit
)

// String returns the string representation of a limit type
func (lt LimitType) String() string {
	switch lt {
	case NoLimit:
		return "no_limit"
	case PotLimit:
		return "pot_limit"
	case FixedLimit:
		return "fixed_limit"
	default:
		return "unknown"
	}
}

// ParseLimitType parses a limit type from its string form
func ParseLimitType(s string) (LimitType, error) {
	switch s {
	case "no_limit", "no-limit", "nl":
		return NoLimit, nil
	case "pot_limit", "pot-limit", "pl":
		return PotLimit, nil
	case "fixed_limit", "fixed-limit", "fl", "limit":
		return FixedLimit, nil
	default:
		return 0, fmt.Errorf("unknown limit type %q", s)
	}
}

// BettingStructure defines the stakes and limit semantics for a table
type BettingStructure struct {
	Limit           LimitType `json:"limit"`
	SmallBlind      float64   `json:"smallBlind"`
	BigBlind        float64   `json:"bigBlind"`
	Ante            float64   `json:"ante"`
	BringIn         float64   `json:"bringIn"`
	MinDenomination float64   `json:"minDenomination"`
	// MaxRaises caps raises per round for fixed-limit games; 0 = no cap
	MaxRaises int `json:"maxRaises"`
}

// streetBet returns the fixed bet size for a street in a fixed-limit game:
// small bet pre-flop and on the flop, big bet on the turn and river.
func (bs BettingStructure) streetBet(street Phase) float64 {
	if street == PhaseTurn || street == PhaseRiver {
		return bs.BigBlind * 2
	}
	return bs.BigBlind
}

// ActionType is a betting action kind
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

// String returns the string representation of an action
func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "all_in"
	default:
		return "unknown"
	}
}

// ParseActionType parses an action from its string form
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "bet":
		return ActionBet, nil
	case "raise":
		return ActionRaise, nil
	case "all_in", "allin":
		return ActionAllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// ActionRecord is one entry in a betting round's action log
type ActionRecord struct {
	PlayerID string     `json:"playerId"`
	Seat     int        `json:"seat"`
	Action   ActionType `json:"action"`
	Amount   float64    `json:"amount"`
}

// BettingRound holds the state of one betting street
type BettingRound struct {
	Street        Phase          `json:"street"`
	CurrentBet    float64        `json:"currentBet"`
	MinRaise      float64        `json:"minRaise"` // last raise increment
	LastAggressor int            `json:"lastAggressor"`
	Actions       []ActionRecord `json:"actions"`
	Complete      bool           `json:"complete"`
	RaiseCount    int            `json:"raiseCount"`
}

// NewBettingRound opens a betting round for a street. openingBet is the
// amount already owed (the big blind pre-flop, zero on later streets).
func NewBettingRound(street Phase, openingBet, bigBlind float64) *BettingRound {
	return &BettingRound{
		Street:        street,
		CurrentBet:    openingBet,
		MinRaise:      bigBlind,
		LastAggressor: -1,
	}
}

// Clone returns a deep copy of the betting round
func (br *BettingRound) Clone() *BettingRound {
	copied := *br
	if br.Actions != nil {
		copied.Actions = make([]ActionRecord, len(br.Actions))
		copy(copied.Actions, br.Actions)
	}
	return &copied
}

// BetLimits is the legal betting range for one player at one decision point.
// MinBet and MaxBet bound an opening bet; MinRaise is the smallest total a
// raise may be made to.
type BetLimits struct {
	MinBet   float64 `json:"minBet"`
	MaxBet   float64 `json:"maxBet"`
	MinRaise float64 `json:"minRaise"`
}

// Limits computes the legal bet/raise range for a player. Bet and raise
// amounts are "bet to" totals for the round, not increments. potTotal is
// the full pot including all bets committed this round.
func (bs BettingStructure) Limits(p *Player, round *BettingRound, potTotal float64) BetLimits {
	stackTotal := p.Chips + p.CurrentBet

	var limits BetLimits
	switch bs.Limit {
	case FixedLimit:
		fixed := bs.streetBet(round.Street)
		limits.MinBet = round.CurrentBet + fixed
		if round.CurrentBet == 0 {
			limits.MinBet = fixed
		}
		limits.MaxBet = limits.MinBet
		limits.MinRaise = round.CurrentBet + fixed

	case PotLimit:
		limits.MinBet = bs.BigBlind
		if round.CurrentBet > 0 {
			limits.MinBet = round.CurrentBet
		}
		limits.MinRaise = round.CurrentBet + round.MinRaise
		// Classic pot-limit sizing: the pot after a hypothetical call,
		// plus the amount of the call itself. With potTotal carrying all
		// round bets this reduces to pot + 2*currentBet - committed.
		limits.MaxBet = potTotal + 2*round.CurrentBet - p.CurrentBet
		if limits.MaxBet > stackTotal {
			limits.MaxBet = stackTotal
		}
		if limits.MaxBet < limits.MinBet {
			limits.MaxBet = limits.MinBet
		}

	default: // NoLimit
		limits.MinBet = bs.BigBlind
		if round.CurrentBet > 0 {
			limits.MinBet = round.CurrentBet
		}
		limits.MinRaise = round.CurrentBet + round.MinRaise
		limits.MaxBet = stackTotal
	}

	// A short stack may always push all-in below the minimum
	if limits.MinBet > stackTotal {
		limits.MinBet = stackTotal
	}
	if limits.MinRaise > stackTotal {
		limits.MinRaise = stackTotal
	}

	return limits
}

// ValidateAction checks a proposed action against the betting rules. Bet
// and raise amounts are round totals; call and all-in amounts are the chips
// added by the action. A violation is a rejected action, never a crash.
func (bs BettingStructure) ValidateAction(p *Player, round *BettingRound, action ActionType, amount, potTotal float64) error {
	owed := round.CurrentBet - p.CurrentBet
	limits := bs.Limits(p, round, potTotal)

	switch action {
	case ActionFold:
		return nil

	case ActionCheck:
		if !chipsZero(owed) {
			return newError(CodeIllegalAction, "cannot check, %s owed", fmtChips(owed))
		}
		return nil

	case ActionCall:
		if chipsZero(owed) {
			return newError(CodeIllegalAction, "nothing to call")
		}
		toCall := owed
		if !chipsGTE(p.Chips, owed) {
			toCall = p.Chips
		}
		if !chipsEqual(amount, toCall) {
			return newError(CodeIllegalAction, "call must be %s, got %s", fmtChips(toCall), fmtChips(amount))
		}
		return nil

	case ActionBet:
		if round.CurrentBet > chipEpsilon {
			return newError(CodeIllegalAction, "cannot bet into an existing bet, raise instead")
		}
		if !chipsGTE(amount, limits.MinBet) || !chipsLTE(amount, limits.MaxBet) {
			return newError(CodeIllegalAction, "bet %s outside legal range %s-%s",
				fmtChips(amount), fmtChips(limits.MinBet), fmtChips(limits.MaxBet))
		}
		if !isDenominated(amount, bs.MinDenomination) {
			return newError(CodeIllegalAction, "bet %s is not a multiple of %s", fmtChips(amount), fmtChips(bs.MinDenomination))
		}
		if !chipsGTE(p.Chips+p.CurrentBet, amount) {
			return newError(CodeIllegalAction, "insufficient chips for bet of %s", fmtChips(amount))
		}
		return nil

	case ActionRaise:
		if chipsZero(round.CurrentBet) {
			return newError(CodeIllegalAction, "cannot raise with no bet to raise, bet instead")
		}
		if bs.Limit == FixedLimit && bs.MaxRaises > 0 && round.RaiseCount >= bs.MaxRaises {
			return newError(CodeIllegalAction, "raise cap of %d reached", bs.MaxRaises)
		}
		if !chipsGTE(amount, limits.MinRaise) || !chipsLTE(amount, limits.MaxBet) {
			return newError(CodeIllegalAction, "raise to %s outside legal range %s-%s",
				fmtChips(amount), fmtChips(limits.MinRaise), fmtChips(limits.MaxBet))
		}
		if !isDenominated(amount, bs.MinDenomination) {
			return newError(CodeIllegalAction, "raise %s is not a multiple of %s", fmtChips(amount), fmtChips(bs.MinDenomination))
		}
		if !chipsGTE(p.Chips+p.CurrentBet, amount) {
			return newError(CodeIllegalAction, "insufficient chips for raise to %s", fmtChips(amount))
		}
		return nil

	case ActionAllIn:
		if !chipsEqual(amount, p.Chips) {
			return newError(CodeIllegalAction, "all-in must be the full stack of %s, got %s",
				fmtChips(p.Chips), fmtChips(amount))
		}
		if chipsZero(p.Chips) {
			return newError(CodeIllegalAction, "no chips remaining")
		}
		return nil

	default:
		return newError(CodeIllegalAction, "unknown action %d", action)
	}
}

func fmtChips(amount float64) string {
	return fmt.Sprintf("%g", amount)
}
