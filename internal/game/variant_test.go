package game

import (
	"testing"

	"github.com/cardroomlabs/cardroom/poker"
)

func TestNewVariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id        VariantID
		holeCards int
		hiLo      bool
	}{
		{VariantHoldem, 2, false},
		{VariantOmaha, 4, false},
		{VariantOmahaHiLo, 4, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			v, err := NewVariant(tt.id)
			if err != nil {
				t.Fatalf("NewVariant: %v", err)
			}
			if v.ID() != tt.id {
				t.Errorf("ID = %v, want %v", v.ID(), tt.id)
			}
			if v.HoleCardCount() != tt.holeCards {
				t.Errorf("HoleCardCount = %d, want %d", v.HoleCardCount(), tt.holeCards)
			}
			if v.HiLo() != tt.hiLo {
				t.Errorf("HiLo = %v, want %v", v.HiLo(), tt.hiLo)
			}
			if !v.UsesCommunityCards() {
				t.Error("all supported variants use community cards")
			}
		})
	}

	if _, err := NewVariant("razz"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestHoldemVariantEvaluate(t *testing.T) {
	t.Parallel()

	v, _ := NewVariant(VariantHoldem)
	hole := poker.MustParseCards("Ah Kh")
	board := poker.MustParseCards("Qh Jh Th 2c 3d")

	hand, err := v.Evaluate(hole, board)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if hand.High.Rank != poker.RoyalFlush {
		t.Errorf("rank = %v, want royal flush", hand.High.Rank)
	}
	if hand.Low != nil {
		t.Error("hold'em never produces a low hand")
	}
}

func TestOmahaHiLoEvaluate(t *testing.T) {
	t.Parallel()

	v, _ := NewVariant(VariantOmahaHiLo)

	t.Run("qualifying low", func(t *testing.T) {
		hole := poker.MustParseCards("Ah 2c Kd Kc")
		board := poker.MustParseCards("3d 4s 8h Qc Jd")

		hand, err := v.Evaluate(hole, board)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if hand.Low == nil {
			t.Fatal("A-2 with three low board cards must make a low")
		}
		// Best low: 8-4-3-2-A
		if hand.Low.Values[0] != 8 {
			t.Errorf("low high card = %d, want 8", hand.Low.Values[0])
		}
	})

	t.Run("no qualifying low", func(t *testing.T) {
		hole := poker.MustParseCards("Ah 2c Kd Kc")
		board := poker.MustParseCards("9d Ts 8h Qc Jd")

		hand, err := v.Evaluate(hole, board)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if hand.Low != nil {
			t.Error("a board with two low cards cannot make a low")
		}
	})
}

func TestOmahaUsesExactlyTwoHoleCards(t *testing.T) {
	t.Parallel()

	v, _ := NewVariant(VariantOmaha)

	// One heart in the hole with four on the board: a naive 7-card
	// evaluation sees a royal flush, but Omaha requires exactly two hole
	// cards and exactly three board cards, so no flush is possible here.
	hole := poker.MustParseCards("Ah 2c 3d 4s")
	board := poker.MustParseCards("Kh Qh Jh Th 9c")

	hand, err := v.Evaluate(hole, board)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if hand.High.Rank == poker.Flush || hand.High.Rank == poker.StraightFlush || hand.High.Rank == poker.RoyalFlush {
		t.Errorf("rank = %v, a flush needs two suited hole cards", hand.High.Rank)
	}
}
