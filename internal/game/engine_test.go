package game

import (
	"fmt"
	"math/rand"
	"testing"
)

func testConfig() Config {
	return Config{
		Variant: VariantHoldem,
		Structure: BettingStructure{
			Limit:           NoLimit,
			SmallBlind:      1,
			BigBlind:        2,
			MinDenomination: 0.25,
		},
		Seats: 6,
		Rng:   rand.New(rand.NewSource(42)),
	}
}

func newTestEngine(t *testing.T, cfg Config, stacks ...float64) *Engine {
	t.Helper()
	eng, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for i, chips := range stacks {
		p := NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), chips)
		if _, err := eng.SitPlayer(i, p); err != nil {
			t.Fatalf("SitPlayer %d: %v", i, err)
		}
	}
	return eng
}

// act applies an action as the current player and fails the test on rejection
func act(t *testing.T, eng *Engine, action ActionType, amount float64) *GameState {
	t.Helper()
	p := eng.State().CurrentPlayer()
	if p == nil {
		t.Fatalf("no player due to act in phase %s", eng.State().Phase)
	}
	gs, err := eng.ProcessAction(p.ID, action, amount)
	if err != nil {
		t.Fatalf("%s %s %g rejected: %v", p.ID, action, amount, err)
	}
	return gs
}

func stackTotal(gs *GameState) float64 {
	total := 0.0
	for _, p := range gs.Table.Seats {
		if p != nil {
			total += p.Chips
		}
	}
	return total
}

func TestStartHandNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100)
	_, err := eng.StartHand()
	if CodeOf(err) != CodeInsufficientPlayers {
		t.Errorf("got %v, want insufficient players", err)
	}
	if eng.State().Phase != PhaseWaiting {
		t.Errorf("phase = %s, a failed start must not advance", eng.State().Phase)
	}
}

func TestStartHandHeadsUp(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100)
	gs, err := eng.StartHand()
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	if gs.Phase != PhasePreFlop {
		t.Errorf("phase = %s, want pre_flop", gs.Phase)
	}
	dealer := gs.Table.Seats[gs.Table.DealerSeat]
	if !dealer.IsSmallBlind {
		t.Error("heads-up dealer must post the small blind")
	}
	if gs.CurrentSeat != gs.Table.DealerSeat {
		t.Errorf("first actor = seat %d, heads-up dealer acts first pre-flop", gs.CurrentSeat)
	}
	for _, p := range gs.Table.PlayersInHand() {
		if len(p.HoleCards) != 2 {
			t.Errorf("%s has %d hole cards, want 2", p.ID, len(p.HoleCards))
		}
	}
	if gs.PotTotal() != 3 {
		t.Errorf("pot = %g, want blinds 3", gs.PotTotal())
	}
}

func TestAllInBigBlindKeepsActionOrder(t *testing.T) {
	t.Parallel()

	// The big blind's whole stack is exactly the blind; posting it puts
	// them all-in but must not shift where action starts.
	eng := newTestEngine(t, testConfig(), 100, 100, 2, 100)
	gs, err := eng.StartHand()
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	bb := gs.Table.Seats[2]
	if !bb.IsBigBlind {
		t.Error("seat 2 must post the big blind")
	}
	if bb.Status != StatusAllIn {
		t.Errorf("big blind status = %v, want all_in after posting the stack", bb.Status)
	}
	if gs.CurrentSeat != 3 {
		t.Errorf("first actor = seat %d, want 3 (left of the big blind)", gs.CurrentSeat)
	}
}

func TestAnteAllInKeepsBlindPositions(t *testing.T) {
	t.Parallel()

	// Seat 2's whole stack goes on the ante; blind positions still walk
	// the three players dealt in, not just those with chips left.
	cfg := testConfig()
	cfg.Structure.Ante = 5
	eng := newTestEngine(t, cfg, 100, 100, 5)
	gs, err := eng.StartHand()
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	if gs.Table.Seats[2].Status != StatusAllIn {
		t.Errorf("seat 2 status = %v, want all_in from the ante", gs.Table.Seats[2].Status)
	}
	if gs.Table.Seats[0].IsSmallBlind || gs.Table.Seats[0].IsBigBlind {
		t.Error("the dealer posts no blind three-handed")
	}
	if !gs.Table.Seats[1].IsSmallBlind {
		t.Error("seat 1 must post the small blind")
	}
	if !gs.Table.Seats[2].IsBigBlind {
		t.Error("seat 2 keeps the big blind position while all-in")
	}
	if gs.CurrentSeat != 0 {
		t.Errorf("first actor = seat %d, want 0 (left of the big blind)", gs.CurrentSeat)
	}
}

func TestUncontestedWin(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rake = &RakeCalculator{Percent: 0.05, Cap: 10, Denomination: 0.25}
	eng := newTestEngine(t, cfg, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	gs := act(t, eng, ActionFold, 0)

	if gs.Phase != PhaseHandComplete {
		t.Fatalf("phase = %s, want hand_complete", gs.Phase)
	}
	if gs.Pots.RakeTaken != 0 {
		t.Errorf("rake = %g, no flop means no drop", gs.Pots.RakeTaken)
	}
	if len(gs.Winners) != 1 {
		t.Fatalf("winners = %v, want one", gs.Winners)
	}
	winner, _ := gs.Table.FindPlayer(gs.Winners[0].PlayerID)
	if winner.Chips != 101 {
		t.Errorf("winner stack = %g, want 101", winner.Chips)
	}
	if winner.Showdown != ShowdownNone {
		t.Error("an uncontested winner never shows")
	}
	if stackTotal(gs) != 200 {
		t.Errorf("chips total = %g, want 200", stackTotal(gs))
	}
}

func TestHandToShowdownConservesChips(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rake = &RakeCalculator{Percent: 0.05, Cap: 10, Denomination: 0.25}
	eng := newTestEngine(t, cfg, 100, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Seat 0 has the button; everyone limps, blinds complete the round
	act(t, eng, ActionCall, 2)
	act(t, eng, ActionCall, 1)
	gs := act(t, eng, ActionCheck, 0)
	if gs.Phase != PhaseFlop {
		t.Fatalf("phase = %s, want flop", gs.Phase)
	}
	if len(gs.Community) != 3 {
		t.Fatalf("community = %d cards, want 3", len(gs.Community))
	}

	// Pot is 6; 5% rake floored to 0.25 -> 0.25
	if !chipsEqual(gs.Pots.RakeTaken, 0.25) {
		t.Errorf("rake = %g, want 0.25", gs.Pots.RakeTaken)
	}

	for _, phase := range []Phase{PhaseTurn, PhaseRiver, PhaseHandComplete} {
		act(t, eng, ActionCheck, 0)
		act(t, eng, ActionCheck, 0)
		gs = act(t, eng, ActionCheck, 0)
		if gs.Phase != phase {
			t.Fatalf("phase = %s, want %s", gs.Phase, phase)
		}
	}

	if !chipsEqual(stackTotal(gs)+gs.Pots.RakeTaken, 300) {
		t.Errorf("stacks %g + rake %g != 300", stackTotal(gs), gs.Pots.RakeTaken)
	}
	if err := gs.Pots.CheckInvariant(); err != nil {
		t.Error(err)
	}
	if len(gs.Winners) == 0 {
		t.Error("showdown produced no winners")
	}
	for _, p := range gs.Table.PlayersInHand() {
		if p.Showdown != ShowdownShown {
			t.Errorf("%s showdown = %v, want shown", p.ID, p.Showdown)
		}
	}
}

func TestRiverBetsAreRaked(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rake = &RakeCalculator{Percent: 0.05, Cap: 100, Denomination: 0.25}
	eng := newTestEngine(t, cfg, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Check it down to the river, then bet and call
	act(t, eng, ActionCall, 1)
	act(t, eng, ActionCheck, 0)
	for _, phase := range []Phase{PhaseTurn, PhaseRiver} {
		act(t, eng, ActionCheck, 0)
		gs := act(t, eng, ActionCheck, 0)
		if gs.Phase != phase {
			t.Fatalf("phase = %s, want %s", gs.Phase, phase)
		}
	}
	act(t, eng, ActionBet, 50)
	gs := act(t, eng, ActionCall, 50)

	if gs.Phase != PhaseHandComplete {
		t.Fatalf("phase = %s, want hand_complete", gs.Phase)
	}
	// Pot 104 at 5% floors to 5.00 on the 0.25 denomination
	if !chipsEqual(gs.Pots.RakeTaken, 5) {
		t.Errorf("rake = %g, want 5 (river bets settle into the rake)", gs.Pots.RakeTaken)
	}
	if !chipsEqual(stackTotal(gs)+gs.Pots.RakeTaken, 200) {
		t.Errorf("stacks %g + rake %g != 200", stackTotal(gs), gs.Pots.RakeTaken)
	}
	if err := gs.Pots.CheckInvariant(); err != nil {
		t.Error(err)
	}
}

func TestUncontestedPostFlopPotIsRaked(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rake = &RakeCalculator{Percent: 0.05, Cap: 100, Denomination: 0.25}
	eng := newTestEngine(t, cfg, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	act(t, eng, ActionCall, 1)
	act(t, eng, ActionCheck, 0)
	act(t, eng, ActionBet, 10)
	gs := act(t, eng, ActionFold, 0)

	if gs.Phase != PhaseHandComplete {
		t.Fatalf("phase = %s, want hand_complete", gs.Phase)
	}
	// The flop was seen, so the 14-chip pot is raked: 0.70 floors to 0.50
	if !chipsEqual(gs.Pots.RakeTaken, 0.5) {
		t.Errorf("rake = %g, want 0.5", gs.Pots.RakeTaken)
	}
	if !chipsEqual(stackTotal(gs)+gs.Pots.RakeTaken, 200) {
		t.Errorf("stacks %g + rake %g != 200", stackTotal(gs), gs.Pots.RakeTaken)
	}
}

func TestAllInRunout(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Dealer shoves, big blind calls all-in; the board runs out with no
	// further action.
	p := eng.State().CurrentPlayer()
	act(t, eng, ActionAllIn, p.Chips)
	caller := eng.State().CurrentPlayer()
	owed := eng.State().Round.CurrentBet - caller.CurrentBet
	gs := act(t, eng, ActionCall, owed)

	if gs.Phase != PhaseHandComplete {
		t.Fatalf("phase = %s, want hand_complete after runout", gs.Phase)
	}
	if len(gs.Community) != 5 {
		t.Errorf("community = %d cards, want a full board", len(gs.Community))
	}
	if !chipsEqual(stackTotal(gs), 200) {
		t.Errorf("chips total = %g, want 200", stackTotal(gs))
	}
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	first := eng.State().CurrentPlayer().ID
	act(t, eng, ActionCall, 2)
	act(t, eng, ActionRaise, 6) // small blind raises
	gs := act(t, eng, ActionFold, 0)

	// The limper owes the raise and must act again
	if gs.Phase != PhasePreFlop {
		t.Fatalf("phase = %s, round must stay open", gs.Phase)
	}
	if gs.CurrentPlayer().ID != first {
		t.Errorf("current = %s, want %s to face the raise", gs.CurrentPlayer().ID, first)
	}

	gs = act(t, eng, ActionCall, 4)
	if gs.Phase != PhaseFlop {
		t.Errorf("phase = %s, want flop after the call", gs.Phase)
	}
}

func TestRejectedActionLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	before := eng.State()
	wrongPlayer := ""
	for _, p := range before.Table.PlayersInHand() {
		if p.ID != before.CurrentPlayer().ID {
			wrongPlayer = p.ID
		}
	}

	got, err := eng.ProcessAction(wrongPlayer, ActionCheck, 0)
	if CodeOf(err) != CodeNotYourTurn {
		t.Errorf("got %v, want not your turn", err)
	}
	if got != before || eng.State() != before {
		t.Error("a rejected action must return the prior snapshot unchanged")
	}

	_, err = eng.ProcessAction(before.CurrentPlayer().ID, ActionCheck, 0)
	if CodeOf(err) != CodeIllegalAction {
		t.Errorf("got %v, want illegal action for check facing a bet", err)
	}
	if eng.State() != before {
		t.Error("state pointer changed on rejected action")
	}
}

func TestZeroChipPlayerNotDealtIn(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 0, 100)
	gs, err := eng.StartHand()
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	busted := gs.Table.Seats[1]
	if busted.InHand() {
		t.Error("a player with no chips must not be dealt in")
	}
	if len(busted.HoleCards) != 0 {
		t.Error("busted player received hole cards")
	}
	if len(gs.Table.PlayersInHand()) != 2 {
		t.Errorf("players in hand = %d, want 2", len(gs.Table.PlayersInHand()))
	}
}

func TestSitOutDeferredDuringHand(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	target := eng.State().CurrentPlayer().ID
	gs, err := eng.SetSitOut(target, true)
	if err != nil {
		t.Fatalf("SetSitOut: %v", err)
	}
	p, _ := gs.Table.FindPlayer(target)
	if !p.InHand() {
		t.Error("sitting out mid-hand must not pull the player from the hand")
	}
	if !p.SitOutNextHand {
		t.Error("sit-out request not deferred")
	}

	// Finish the hand and start another; now they sit out
	act(t, eng, ActionFold, 0)
	act(t, eng, ActionFold, 0)
	gs, err = eng.StartHand()
	if err != nil {
		t.Fatalf("second StartHand: %v", err)
	}
	p, _ = gs.Table.FindPlayer(target)
	if p.Status != StatusSittingOut {
		t.Errorf("status = %v, want sitting_out next hand", p.Status)
	}
	if len(gs.Table.PlayersInHand()) != 2 {
		t.Errorf("players in hand = %d, want 2", len(gs.Table.PlayersInHand()))
	}
}

func TestStandMidHandFoldsPlayer(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// The current actor stands; their blind-free stack leaves with them
	// and the action moves on.
	leaver := eng.State().CurrentPlayer().ID
	gs, err := eng.StandPlayer(leaver)
	if err != nil {
		t.Fatalf("StandPlayer: %v", err)
	}
	if p, _ := gs.Table.FindPlayer(leaver); p != nil {
		t.Error("player still seated after standing")
	}
	if gs.Phase.IsBetting() && gs.CurrentPlayer() == nil {
		t.Error("no actor after mid-hand stand")
	}
}

func TestSplitPotRemainder(t *testing.T) {
	t.Parallel()

	// Two winners split an odd pot; the indivisible chip goes to the
	// winner closest clockwise from the button.
	cfg := testConfig()
	cfg.Structure.MinDenomination = 1
	eng := newTestEngine(t, cfg, 0, 0, 0)

	gs := eng.State().Clone()
	gs.Table.DealerSeat = 0
	for _, p := range gs.Table.Seats {
		if p != nil {
			p.Status = StatusActive
		}
	}

	e := eng
	e.payWinners(gs, 0, 5, []string{"p2", "p1"}, map[string]ShowdownHand{}, false)

	if gs.Table.Seats[1].Chips != 3 {
		t.Errorf("seat 1 = %g, want 3 (share plus remainder)", gs.Table.Seats[1].Chips)
	}
	if gs.Table.Seats[2].Chips != 2 {
		t.Errorf("seat 2 = %g, want 2", gs.Table.Seats[2].Chips)
	}
}

func TestDealerRotatesBetweenHands(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100, 100)

	playHand := func() int {
		t.Helper()
		if _, err := eng.StartHand(); err != nil {
			t.Fatalf("StartHand: %v", err)
		}
		dealer := eng.State().Table.DealerSeat
		for eng.State().Phase.IsBetting() {
			act(t, eng, ActionFold, 0)
		}
		return dealer
	}

	first := playHand()
	second := playHand()
	if second == first {
		t.Errorf("dealer stayed on seat %d across hands", first)
	}
}

func TestPendingAction(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100)
	if eng.PendingAction() != nil {
		t.Error("no pending action before a hand")
	}
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	req := eng.PendingAction()
	if req == nil {
		t.Fatal("expected a pending action pre-flop")
	}
	if req.PlayerID != eng.State().CurrentPlayer().ID {
		t.Errorf("request for %s, want current actor", req.PlayerID)
	}
	if req.CallAmount != 1 {
		t.Errorf("call amount = %g, dealer owes 1 heads-up", req.CallAmount)
	}
	hasCall := false
	for _, a := range req.Legal {
		if a == ActionCall {
			hasCall = true
		}
		if a == ActionCheck {
			t.Error("check must not be legal while owing")
		}
	}
	if !hasCall {
		t.Errorf("legal = %v, call missing", req.Legal)
	}
}
