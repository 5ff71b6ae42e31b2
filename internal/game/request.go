package game

// ActionRequest describes what the current actor may legally do. The room
// sends it to the player due to act and replays it on reconnect.
type ActionRequest struct {
	PlayerID   string       `json:"playerId"`
	Seat       int          `json:"seat"`
	Street     Phase        `json:"street"`
	Legal      []ActionType `json:"legal"`
	CallAmount float64      `json:"callAmount,omitempty"`
	Limits     BetLimits    `json:"limits"`
	PotTotal   float64      `json:"potTotal"`
}

// PendingAction derives the outstanding action request from the current
// snapshot, or nil when no player is due to act.
func (e *Engine) PendingAction() *ActionRequest {
	gs := e.state
	if !gs.Phase.IsBetting() || gs.Round == nil || gs.Round.Complete {
		return nil
	}
	p := gs.CurrentPlayer()
	if p == nil || !p.CanAct() {
		return nil
	}

	owed := gs.Round.CurrentBet - p.CurrentBet
	limits := gs.Structure.Limits(p, gs.Round, gs.PotTotal())

	req := &ActionRequest{
		PlayerID: p.ID,
		Seat:     gs.CurrentSeat,
		Street:   gs.Phase,
		Limits:   limits,
		PotTotal: gs.PotTotal(),
	}

	req.Legal = append(req.Legal, ActionFold)
	if chipsZero(owed) {
		req.Legal = append(req.Legal, ActionCheck)
	} else {
		req.Legal = append(req.Legal, ActionCall)
		req.CallAmount = owed
		if !chipsGTE(p.Chips, owed) {
			req.CallAmount = p.Chips
		}
	}
	if chipsZero(gs.Round.CurrentBet) {
		req.Legal = append(req.Legal, ActionBet)
	} else if p.Chips+p.CurrentBet > gs.Round.CurrentBet+chipEpsilon {
		if gs.Structure.Limit != FixedLimit || gs.Structure.MaxRaises == 0 || gs.Round.RaiseCount < gs.Structure.MaxRaises {
			req.Legal = append(req.Legal, ActionRaise)
		}
	}
	if p.Chips > chipEpsilon {
		req.Legal = append(req.Legal, ActionAllIn)
	}

	return req
}
