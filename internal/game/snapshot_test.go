package game

import (
	"encoding/json"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	act(t, eng, ActionCall, 2)

	data, err := eng.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := RestoreEngine(data, Config{})
	if err != nil {
		t.Fatalf("RestoreEngine: %v", err)
	}

	orig, rest := eng.State(), restored.State()
	if rest.HandID != orig.HandID {
		t.Errorf("HandID = %s, want %s", rest.HandID, orig.HandID)
	}
	if rest.Phase != orig.Phase {
		t.Errorf("Phase = %s, want %s", rest.Phase, orig.Phase)
	}
	if rest.CurrentSeat != orig.CurrentSeat {
		t.Errorf("CurrentSeat = %d, want %d", rest.CurrentSeat, orig.CurrentSeat)
	}
	if rest.Deck.Remaining() != orig.Deck.Remaining() {
		t.Errorf("deck = %d cards, want %d", rest.Deck.Remaining(), orig.Deck.Remaining())
	}
}

func TestRestoredHandDealsSameBoard(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, testConfig(), 100, 100)
	if _, err := eng.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	data, err := eng.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	restored, err := RestoreEngine(data, Config{})
	if err != nil {
		t.Fatalf("RestoreEngine: %v", err)
	}

	finish := func(e *Engine) *GameState {
		t.Helper()
		act(t, e, ActionCall, 1)
		act(t, e, ActionCheck, 0)
		for e.State().Phase.IsBetting() {
			act(t, e, ActionCheck, 0)
		}
		return e.State()
	}

	a, b := finish(eng), finish(restored)
	if len(a.Community) != 5 || len(b.Community) != 5 {
		t.Fatalf("boards incomplete: %d vs %d cards", len(a.Community), len(b.Community))
	}
	for i := range a.Community {
		if a.Community[i] != b.Community[i] {
			t.Errorf("board diverged at card %d: %v vs %v", i, a.Community[i], b.Community[i])
		}
	}
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	data, _ := json.Marshal(Snapshot{Version: 99, State: newGameState(VariantHoldem, nlStructure(), 2)})
	if _, err := RestoreEngine(data, Config{}); err == nil {
		t.Error("expected error for unknown snapshot version")
	}
}

func TestRestoreRejectsUnknownVariant(t *testing.T) {
	t.Parallel()

	state := newGameState(VariantID("five_card_dream"), nlStructure(), 2)
	data, _ := json.Marshal(Snapshot{Version: snapshotVersion, State: state})
	if _, err := RestoreEngine(data, Config{}); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := RestoreEngine([]byte("not json"), Config{}); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}
