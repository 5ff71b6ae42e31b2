package game

import (
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/cardroom/poker"
)

// Config configures a game engine
type Config struct {
	Variant   VariantID
	Structure BettingStructure
	Seats     int
	Rake      *RakeCalculator // nil = no rake
	Logger    *log.Logger
	Rng       *rand.Rand
	Bus       EventBus
}

// Engine drives one poker game from blinds through showdown. It owns the
// table, betting rules, pots and evaluator, and contains no algorithm of
// its own beyond sequencing.
//
// The engine is not safe for concurrent use; the room wrapper serializes
// callers. Every accepted mutation replaces the state with a fresh
// snapshot, and a rejected one leaves the previous snapshot untouched, so
// State() results can be read without locking.
type Engine struct {
	variant Variant
	rake    *RakeCalculator
	bus     EventBus
	logger  *log.Logger
	rng     *rand.Rand

	state *GameState

	// stack total at hand start, for chip conservation checks
	handStartChips float64
}

// NewEngine creates an engine in the WAITING phase
func NewEngine(cfg Config) (*Engine, error) {
	variant, err := NewVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if cfg.Seats < 2 {
		return nil, newError(CodeInternal, "table needs at least 2 seats, got %d", cfg.Seats)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bus := cfg.Bus
	if bus == nil {
		bus = NewEventBus()
	}

	return &Engine{
		variant: variant,
		rake:    cfg.Rake,
		bus:     bus,
		logger:  logger.WithPrefix("engine"),
		rng:     rng,
		state:   newGameState(cfg.Variant, cfg.Structure, cfg.Seats),
	}, nil
}

// State returns the latest immutable snapshot
func (e *Engine) State() *GameState {
	return e.state
}

// Bus returns the engine's event bus
func (e *Engine) Bus() EventBus {
	return e.bus
}

// Variant returns the active variant strategy
func (e *Engine) Variant() Variant {
	return e.variant
}

// restore replaces the engine state wholesale, used by snapshot restore
func (e *Engine) restore(gs *GameState) {
	e.state = gs
}

// SitPlayer seats a player. A player joining mid-hand waits for the next
// hand; they are never added to the hand in progress.
func (e *Engine) SitPlayer(seat int, p *Player) (*GameState, error) {
	gs := e.state.Clone()
	seated := p.Clone()
	seated.Status = StatusWaiting
	if err := gs.Table.SitPlayer(seat, seated); err != nil {
		return e.state, err
	}
	e.state = gs
	e.logger.Info("Player seated", "player", p.Name, "seat", seat, "chips", p.Chips)
	return gs, nil
}

// StandPlayer removes a player from the table. If they are in the current
// hand they are folded first; chips already committed stay in the pots.
func (e *Engine) StandPlayer(playerID string) (*GameState, error) {
	gs := e.state.Clone()
	p, seat := gs.Table.FindPlayer(playerID)
	if p == nil {
		return e.state, newError(CodePlayerNotFound, "player %s is not seated", playerID)
	}

	if p.InHand() && gs.Phase.IsBetting() {
		e.foldPlayer(gs, p, seat)
	}
	if err := gs.Table.StandPlayer(playerID); err != nil {
		return e.state, err
	}
	e.state = gs
	e.logger.Info("Player stood", "player", p.Name, "seat", seat)
	return gs, nil
}

// SetSitOut toggles sitting out. A player active in the current hand is
// never pulled out of it; the change is deferred to the next hand.
func (e *Engine) SetSitOut(playerID string, sitOut bool) (*GameState, error) {
	gs := e.state.Clone()
	p, _ := gs.Table.FindPlayer(playerID)
	if p == nil {
		return e.state, newError(CodePlayerNotFound, "player %s is not seated", playerID)
	}

	if sitOut {
		if p.InHand() {
			p.SitOutNextHand = true
		} else {
			p.Status = StatusSittingOut
		}
	} else {
		p.SitOutNextHand = false
		if p.Status == StatusSittingOut {
			p.Status = StatusWaiting
		}
	}
	e.state = gs
	return gs, nil
}

// StartHand begins a new hand: blinds, antes, dealing, and the pre-flop
// betting round. Fails if fewer than two seats are eligible.
func (e *Engine) StartHand() (*GameState, error) {
	if e.state.Phase != PhaseWaiting && e.state.Phase != PhaseHandComplete {
		return e.state, newError(CodeWrongPhase, "cannot start a hand during %s", e.state.Phase)
	}

	gs := e.state.Clone()

	// Per-hand reset: community, pots, round and winners go; table, chips
	// and the dealer button carry forward. Deferred sit-outs apply here.
	for _, p := range gs.Table.Seats {
		if p != nil {
			p.resetForNewHand()
		}
	}
	gs.Community = nil
	gs.Pots = NewPotManager()
	gs.Round = nil
	gs.Winners = nil
	gs.CurrentSeat = -1

	if gs.Table.EligiblePlayerCount() < 2 {
		return e.state, newError(CodeInsufficientPlayers, "need 2 eligible players, have %d", gs.Table.EligiblePlayerCount())
	}

	e.setPhase(gs, PhaseStarting)
	gs.HandNum++
	gs.HandID = NewHandID(e.rng)
	gs.Table.AdvanceDealer()

	var dealtIn []string
	for _, seat := range gs.Table.EligibleSeats() {
		p := gs.Table.Seats[seat]
		p.Status = StatusActive
		dealtIn = append(dealtIn, p.ID)
	}
	gs.Table.Seats[gs.Table.DealerSeat].IsDealer = true

	e.handStartChips = 0
	for _, p := range gs.Table.Seats {
		if p != nil {
			e.handStartChips += p.Chips
		}
	}

	e.bus.Publish(HandStartEvent{
		HandID:     gs.HandID,
		HandNum:    gs.HandNum,
		DealerSeat: gs.Table.DealerSeat,
		Players:    dealtIn,
		timestamp:  now(),
	})

	e.setPhase(gs, PhasePostingBlinds)
	e.postAntes(gs)
	// The big blind seat is captured before posting: a blind that puts its
	// poster all-in must not shift where action starts.
	_, bb := e.postBlinds(gs)

	e.setPhase(gs, PhaseDealing)
	e.dealHoleCards(gs)

	e.setPhase(gs, PhasePreFlop)
	gs.Round = NewBettingRound(PhasePreFlop, gs.Structure.BigBlind, gs.Structure.BigBlind)
	gs.CurrentSeat = gs.Table.nextSeatInHand(bb)

	// Blinds can put everyone all-in; run the hand out if nobody can act
	if gs.CurrentSeat == -1 {
		e.endRound(gs)
	}

	e.state = gs
	e.logger.Info("Hand started", "hand", gs.HandID, "num", gs.HandNum, "dealer", gs.Table.DealerSeat)
	return gs, nil
}

// postAntes posts and immediately collects antes so they never mix with
// the pre-flop betting round.
func (e *Engine) postAntes(gs *GameState) {
	if gs.Structure.Ante <= 0 {
		return
	}

	bets := make(map[string]float64)
	for _, seat := range e.seatsFromDealer(gs) {
		p := gs.Table.Seats[seat]
		if p == nil || !p.InHand() {
			continue
		}
		posted := p.postChips(gs.Structure.Ante)
		bets[p.ID] = posted
		e.bus.Publish(BlindPostedEvent{
			PlayerID:  p.ID,
			Seat:      seat,
			Kind:      "ante",
			Amount:    posted,
			AllIn:     p.Status == StatusAllIn,
			timestamp: now(),
		})
	}

	gs.Pots.CollectBets(bets, nil)
	for _, p := range gs.Table.Seats {
		if p != nil {
			p.CurrentBet = 0
			p.TotalBetThisRound = 0
		}
	}
}

// postBlinds posts the small and big blinds and returns their seats. A
// player short of a blind posts what they have and goes all-in; partial
// posting is never an error.
func (e *Engine) postBlinds(gs *GameState) (int, int) {
	sb, bb := gs.Table.BlindSeats()
	if sb == -1 || bb == -1 {
		return sb, bb
	}

	sbPlayer := gs.Table.Seats[sb]
	sbPlayer.IsSmallBlind = true
	posted := sbPlayer.postChips(gs.Structure.SmallBlind)
	e.bus.Publish(BlindPostedEvent{
		PlayerID:  sbPlayer.ID,
		Seat:      sb,
		Kind:      "small_blind",
		Amount:    posted,
		AllIn:     sbPlayer.Status == StatusAllIn,
		timestamp: now(),
	})

	bbPlayer := gs.Table.Seats[bb]
	bbPlayer.IsBigBlind = true
	posted = bbPlayer.postChips(gs.Structure.BigBlind)
	e.bus.Publish(BlindPostedEvent{
		PlayerID:  bbPlayer.ID,
		Seat:      bb,
		Kind:      "big_blind",
		Amount:    posted,
		AllIn:     bbPlayer.Status == StatusAllIn,
		timestamp: now(),
	})
	return sb, bb
}

func (e *Engine) dealHoleCards(gs *GameState) {
	gs.Deck = poker.NewDeck(e.rng)
	count := e.variant.HoleCardCount()
	for _, seat := range e.seatsFromDealer(gs) {
		p := gs.Table.Seats[seat]
		if p == nil || !p.InHand() {
			continue
		}
		cards, err := gs.Deck.Deal(count)
		if err != nil {
			// 52 cards cover any full table in every supported variant
			e.logger.Error("Deck exhausted dealing hole cards", "error", err)
			return
		}
		p.HoleCards = cards
	}
	e.bus.Publish(CardsDealtEvent{Street: PhaseDealing, timestamp: now()})
}

// seatsFromDealer returns all seat numbers starting left of the dealer
func (e *Engine) seatsFromDealer(gs *GameState) []int {
	n := len(gs.Table.Seats)
	seats := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		seats = append(seats, (gs.Table.DealerSeat+i)%n)
	}
	return seats
}

// ProcessAction validates and applies one betting action from the current
// actor. A rejected action returns the prior snapshot and an error; the
// state is untouched.
func (e *Engine) ProcessAction(playerID string, action ActionType, amount float64) (*GameState, error) {
	if !e.state.Phase.IsBetting() || e.state.Round == nil || e.state.Round.Complete {
		return e.state, newError(CodeNoBettingRound, "no betting round in progress during %s", e.state.Phase)
	}

	gs := e.state.Clone()
	p := gs.CurrentPlayer()
	if p == nil || p.ID != playerID {
		return e.state, newError(CodeNotYourTurn, "it is not %s's turn to act", playerID)
	}

	if err := gs.Structure.ValidateAction(p, gs.Round, action, amount, gs.PotTotal()); err != nil {
		return e.state, err
	}

	seat := gs.CurrentSeat
	switch action {
	case ActionFold:
		p.Status = StatusFolded
		p.Showdown = ShowdownMucked
		gs.Pots.RemoveFolded(p.ID)

	case ActionCheck:
		// No chips move

	case ActionCall:
		p.postChips(amount)

	case ActionBet, ActionRaise:
		prevBet := gs.Round.CurrentBet
		p.postChips(amount - p.CurrentBet)
		gs.Round.MinRaise = amount - prevBet
		gs.Round.CurrentBet = amount
		gs.Round.LastAggressor = seat
		if action == ActionRaise {
			gs.Round.RaiseCount++
		}
		e.resetHasActed(gs, seat)

	case ActionAllIn:
		prevBet := gs.Round.CurrentBet
		newTotal := p.CurrentBet + p.Chips
		p.postChips(p.Chips)
		if newTotal > prevBet+chipEpsilon {
			// An all-in past the current bet acts as a raise
			gs.Round.MinRaise = newTotal - prevBet
			gs.Round.CurrentBet = newTotal
			gs.Round.LastAggressor = seat
			gs.Round.RaiseCount++
			e.resetHasActed(gs, seat)
		}
	}

	p.HasActed = true
	gs.Round.Actions = append(gs.Round.Actions, ActionRecord{
		PlayerID: playerID,
		Seat:     seat,
		Action:   action,
		Amount:   amount,
	})

	e.bus.Publish(PlayerActionEvent{
		PlayerID:  playerID,
		Seat:      seat,
		Action:    action,
		Amount:    amount,
		Street:    gs.Phase,
		PotAfter:  gs.PotTotal(),
		timestamp: now(),
	})

	e.advance(gs)
	e.state = gs
	return gs, nil
}

// foldPlayer folds a player out of turn (disconnect, stand mid-hand) and
// keeps the hand moving.
func (e *Engine) foldPlayer(gs *GameState, p *Player, seat int) {
	p.Status = StatusFolded
	p.Showdown = ShowdownMucked
	gs.Pots.RemoveFolded(p.ID)

	if gs.Round == nil || gs.Round.Complete {
		return
	}
	if len(gs.Table.PlayersInHand()) <= 1 {
		e.finishUncontested(gs)
		return
	}
	if e.roundComplete(gs) {
		e.endRound(gs)
		return
	}
	if seat == gs.CurrentSeat {
		gs.CurrentSeat = gs.Table.nextSeatInHand(seat)
	}
}

// resetHasActed clears every other active player's acted flag after a bet
// or raise; they all owe a response to the new price.
func (e *Engine) resetHasActed(gs *GameState, except int) {
	for i, p := range gs.Table.Seats {
		if p != nil && p.CanAct() && i != except {
			p.HasActed = false
		}
	}
}

// roundComplete reports whether the betting round is done: every player
// who can still act has acted and matched the current bet. All-in players
// are settled by definition.
func (e *Engine) roundComplete(gs *GameState) bool {
	for _, p := range gs.Table.Seats {
		if p == nil || !p.CanAct() {
			continue
		}
		if !p.HasActed {
			return false
		}
		if !chipsEqual(p.CurrentBet, gs.Round.CurrentBet) {
			return false
		}
	}
	return true
}

// advance moves the hand forward after an action: end it if only one
// player remains, close the round if betting is settled, otherwise pass
// the action to the next seat.
func (e *Engine) advance(gs *GameState) {
	if len(gs.Table.PlayersInHand()) <= 1 {
		e.finishUncontested(gs)
		return
	}
	if e.roundComplete(gs) {
		e.endRound(gs)
		return
	}
	gs.CurrentSeat = gs.Table.nextSeatInHand(gs.CurrentSeat)
	if gs.CurrentSeat == -1 {
		e.endRound(gs)
	}
}

// collectRoundBets folds the round's committed bets into the pots and
// resets per-round player state.
func (e *Engine) collectRoundBets(gs *GameState) {
	bets := make(map[string]float64)
	folded := make(map[string]bool)
	for _, p := range gs.Table.Seats {
		if p == nil {
			continue
		}
		if p.TotalBetThisRound > 0 {
			bets[p.ID] = p.TotalBetThisRound
		}
		if p.Status == StatusFolded {
			folded[p.ID] = true
		}
		p.CurrentBet = 0
		p.TotalBetThisRound = 0
		p.HasActed = false
	}
	gs.Pots.CollectBets(bets, folded)
	if gs.Round != nil {
		gs.Round.Complete = true
	}
}

// endRound closes the betting round and advances the street, dealing
// community cards and recomputing rake. When nobody can act (all-ins),
// remaining streets run out automatically to showdown.
func (e *Engine) endRound(gs *GameState) {
	e.collectRoundBets(gs)

	// Post-flop bets grow the pot, so the rake recomputes before anything
	// else happens to it; river bets settle here, not on a later street.
	if gs.Phase != PhasePreFlop {
		e.applyRake(gs)
	}

	if !e.variant.UsesCommunityCards() && gs.Phase == PhasePreFlop {
		e.showdown(gs)
		return
	}

	for {
		switch gs.Phase {
		case PhasePreFlop:
			e.setPhase(gs, PhaseFlop)
			e.dealCommunity(gs, 3)
		case PhaseFlop:
			e.setPhase(gs, PhaseTurn)
			e.dealCommunity(gs, 1)
		case PhaseTurn:
			e.setPhase(gs, PhaseRiver)
			e.dealCommunity(gs, 1)
		case PhaseRiver:
			e.showdown(gs)
			return
		default:
			return
		}

		// No flop, no drop: rake is first computed when the flop arrives,
		// then recomputed from the grown pot on each later street.
		e.applyRake(gs)

		actors := 0
		for _, p := range gs.Table.Seats {
			if p != nil && p.CanAct() {
				actors++
			}
		}
		if actors >= 2 {
			gs.Round = NewBettingRound(gs.Phase, 0, gs.Structure.BigBlind)
			gs.CurrentSeat = gs.Table.nextSeatInHand(gs.Table.DealerSeat)
			return
		}
		// Everyone is all-in (or just one player can act with nobody to
		// respond); keep dealing streets until showdown.
	}
}

func (e *Engine) dealCommunity(gs *GameState, n int) {
	cards, err := gs.Deck.Deal(n)
	if err != nil {
		e.logger.Error("Deck exhausted dealing community cards", "error", err)
		return
	}
	gs.Community = append(gs.Community, cards...)
	e.bus.Publish(CardsDealtEvent{
		Street:    gs.Phase,
		Community: append([]poker.Card(nil), gs.Community...),
		PotTotal:  gs.Pots.Total(),
		timestamp: now(),
	})
}

func (e *Engine) applyRake(gs *GameState) {
	if e.rake == nil {
		return
	}
	gs.Pots.SetRake(e.rake.Rake(gs.Pots.TotalCommitted))
}

func (e *Engine) setPhase(gs *GameState, to Phase) {
	from := gs.Phase
	gs.Phase = to
	e.bus.Publish(PhaseChangeEvent{From: from, To: to, timestamp: now()})
}

// finishUncontested ends the hand when everyone else has folded. The last
// player takes every pot without showing; a hand that never saw the flop
// is never raked.
func (e *Engine) finishUncontested(gs *GameState) {
	e.collectRoundBets(gs)
	if gs.Phase != PhasePreFlop {
		e.applyRake(gs)
	}

	inHand := gs.Table.PlayersInHand()
	if len(inHand) != 1 {
		e.logger.Error("Uncontested finish with wrong player count", "count", len(inHand))
		return
	}
	winner := inHand[0]
	_, seat := gs.Table.FindPlayer(winner.ID)

	for i, pot := range gs.Pots.Pots {
		winner.Chips += pot.Amount
		gs.Winners = append(gs.Winners, Winner{
			PlayerID: winner.ID,
			Seat:     seat,
			Amount:   pot.Amount,
			PotIndex: i,
		})
	}

	e.completeHand(gs, false, nil)
}

// showdown evaluates every remaining hand via the variant strategy and
// distributes the pots.
func (e *Engine) showdown(gs *GameState) {
	e.setPhase(gs, PhaseShowdown)

	results := make(map[string]ShowdownHand)
	var shown []ShownHand
	for _, p := range gs.Table.PlayersInHand() {
		hand, err := e.variant.Evaluate(p.HoleCards, gs.Community)
		if err != nil {
			e.logger.Error("Hand evaluation failed", "player", p.ID, "error", err)
			continue
		}
		results[p.ID] = hand
		p.Showdown = ShowdownShown
		_, seat := gs.Table.FindPlayer(p.ID)
		shown = append(shown, ShownHand{
			PlayerID: p.ID,
			Seat:     seat,
			Cards:    append([]poker.Card(nil), p.HoleCards...),
		})
	}

	e.awardPots(gs, results)
	e.completeHand(gs, true, shown)
}

// awardPots pays each pot to the best hand(s) among its eligible players.
// Hi-lo pots are halved between the best high hand and the best qualifying
// low; with no qualifying low the high hand scoops. Ties split evenly and
// an indivisible remainder goes to the winner seated closest clockwise
// from the dealer.
func (e *Engine) awardPots(gs *GameState, results map[string]ShowdownHand) {
	for i, pot := range gs.Pots.Pots {
		if chipsZero(pot.Amount) {
			continue
		}

		eligible := make([]string, 0, len(pot.Eligible))
		for _, id := range pot.Eligible {
			if _, ok := results[id]; ok {
				eligible = append(eligible, id)
			}
		}
		if len(eligible) == 0 {
			e.logger.Error("Pot with no eligible hands", "pot", i, "amount", pot.Amount)
			continue
		}

		highWinners := bestHighHands(eligible, results)

		if e.variant.HiLo() {
			lowWinners := bestLowHands(eligible, results)
			if len(lowWinners) > 0 {
				lowShare := floorToDenom(pot.Amount/2, gs.Structure.MinDenomination)
				highShare := pot.Amount - lowShare
				e.payWinners(gs, i, highShare, highWinners, results, false)
				e.payWinners(gs, i, lowShare, lowWinners, results, true)
				continue
			}
		}

		e.payWinners(gs, i, pot.Amount, highWinners, results, false)
	}
}

// payWinners splits an amount among winners, remainder to the winner
// closest clockwise from the dealer button.
func (e *Engine) payWinners(gs *GameState, potIndex int, amount float64, winners []string, results map[string]ShowdownHand, low bool) {
	if len(winners) == 0 || chipsZero(amount) {
		return
	}

	// Order winners clockwise from the seat after the dealer
	type seatedWinner struct {
		id   string
		seat int
	}
	ordered := make([]seatedWinner, 0, len(winners))
	for _, id := range winners {
		_, seat := gs.Table.FindPlayer(id)
		ordered = append(ordered, seatedWinner{id: id, seat: seat})
	}
	n := len(gs.Table.Seats)
	dealer := gs.Table.DealerSeat
	sort.Slice(ordered, func(a, b int) bool {
		da := ((ordered[a].seat - dealer - 1) % n + n) % n
		db := ((ordered[b].seat - dealer - 1) % n + n) % n
		return da < db
	})

	share := floorToDenom(amount/float64(len(ordered)), gs.Structure.MinDenomination)
	remainder := amount - share*float64(len(ordered))

	for i, w := range ordered {
		paid := share
		if i == 0 {
			paid += remainder
		}
		if chipsZero(paid) {
			continue
		}
		p, _ := gs.Table.FindPlayer(w.id)
		p.Chips += paid

		desc := ""
		if result, ok := results[w.id]; ok {
			if low && result.Low != nil {
				desc = result.Low.String() + " low"
			} else {
				desc = result.High.Rank.String()
			}
		}
		gs.Winners = append(gs.Winners, Winner{
			PlayerID: w.id,
			Seat:     w.seat,
			Amount:   paid,
			PotIndex: potIndex,
			HandDesc: desc,
			Low:      low,
		})
	}
}

// completeHand transitions to HAND_COMPLETE and verifies the money. A
// violated pot or chip-conservation invariant is logged loudly; it means
// a bug, not a recoverable condition.
func (e *Engine) completeHand(gs *GameState, showdown bool, shown []ShownHand) {
	gs.Round = nil
	gs.CurrentSeat = -1
	e.setPhase(gs, PhaseHandComplete)

	if err := gs.Pots.CheckInvariant(); err != nil {
		e.logger.Error("Pot invariant violated", "hand", gs.HandID, "error", err)
	}

	endChips := 0.0
	for _, p := range gs.Table.Seats {
		if p != nil {
			endChips += p.Chips
		}
	}
	if !chipsEqual(endChips+gs.Pots.RakeTaken, e.handStartChips) {
		e.logger.Error("Chip conservation violated",
			"hand", gs.HandID, "start", e.handStartChips, "end", endChips, "rake", gs.Pots.RakeTaken)
	}

	e.bus.Publish(HandEndEvent{
		HandID:     gs.HandID,
		Winners:    append([]Winner(nil), gs.Winners...),
		PotSize:    gs.Pots.Total() + gs.Pots.RakeTaken,
		Rake:       gs.Pots.RakeTaken,
		Showdown:   showdown,
		ShownHands: shown,
		timestamp:  now(),
	})
	e.logger.Info("Hand complete", "hand", gs.HandID, "winners", len(gs.Winners), "rake", gs.Pots.RakeTaken)
}

// bestHighHands returns the players holding the best high hand
func bestHighHands(eligible []string, results map[string]ShowdownHand) []string {
	var best []string
	for _, id := range eligible {
		if len(best) == 0 {
			best = []string{id}
			continue
		}
		cmp := results[id].High.Compare(results[best[0]].High)
		switch {
		case cmp > 0:
			best = []string{id}
		case cmp == 0:
			best = append(best, id)
		}
	}
	return best
}

// bestLowHands returns the players holding the best qualifying low, if any
func bestLowHands(eligible []string, results map[string]ShowdownHand) []string {
	var best []string
	for _, id := range eligible {
		low := results[id].Low
		if low == nil {
			continue
		}
		if len(best) == 0 {
			best = []string{id}
			continue
		}
		cmp := low.Compare(*results[best[0]].Low)
		switch {
		case cmp > 0:
			best = []string{id}
		case cmp == 0:
			best = append(best, id)
		}
	}
	return best
}
