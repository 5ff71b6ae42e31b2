package game

import (
	"encoding/json"

	"github.com/cardroomlabs/cardroom/poker"
)

// snapshotVersion is bumped whenever the snapshot layout changes. Restore
// refuses versions it does not know.
const snapshotVersion = 1

// Snapshot is the serialized form of an engine mid-hand or between hands.
// The deck is stored as its remaining cards in order, so a restored hand
// deals the same runout.
type Snapshot struct {
	Version int          `json:"version"`
	State   *GameState   `json:"state"`
	Deck    []poker.Card `json:"deck,omitempty"`
}

// Snapshot serializes the engine's current state
func (e *Engine) Snapshot() ([]byte, error) {
	snap := Snapshot{
		Version: snapshotVersion,
		State:   e.state,
	}
	if e.state.Deck != nil {
		snap.Deck = e.state.Deck.RemainingCards()
	}
	return json.Marshal(snap)
}

// RestoreEngine rebuilds an engine from a snapshot. The config supplies the
// ambient pieces that do not serialize (logger, rng, rake, event bus); the
// variant and structure come from the snapshot itself. An unknown snapshot
// version or variant fails rather than guessing.
func RestoreEngine(data []byte, cfg Config) (*Engine, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, newError(CodeInternal, "corrupt snapshot: %v", err)
	}
	if snap.Version != snapshotVersion {
		return nil, newError(CodeInternal, "unsupported snapshot version %d", snap.Version)
	}
	if snap.State == nil {
		return nil, newError(CodeInternal, "snapshot has no state")
	}

	cfg.Variant = snap.State.Variant
	cfg.Structure = snap.State.Structure
	cfg.Seats = len(snap.State.Table.Seats)

	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	state := snap.State
	if snap.Deck != nil {
		state.Deck = poker.NewDeckFromCards(snap.Deck)
	}
	engine.restore(state)
	engine.handStartChips = state.TotalChips()
	return engine, nil
}
