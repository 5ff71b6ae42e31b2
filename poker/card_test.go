package poker

import (
	"math/rand"
	"testing"
)

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		rank  Rank
		suit  Suit
	}{
		{"Ah", Ace, Hearts},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"Ks", King, Spades},
		{"9H", Nine, Hearts},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			card, err := ParseCard(tt.input)
			if err != nil {
				t.Fatalf("ParseCard(%q) failed: %v", tt.input, err)
			}
			if card.Rank != tt.rank || card.Suit != tt.suit {
				t.Errorf("ParseCard(%q) = %v, want rank=%v suit=%v", tt.input, card, tt.rank, tt.suit)
			}
		})
	}

	for _, bad := range []string{"", "A", "Ahh", "1h", "Ax"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.String())
			if err != nil {
				t.Fatalf("ParseCard(%q) failed: %v", card.String(), err)
			}
			if parsed != card {
				t.Errorf("Round trip failed for %s", card)
			}
		}
	}
}

func TestCardOrdering(t *testing.T) {
	t.Parallel()

	ah := NewCard(Ace, Hearts)
	kh := NewCard(King, Hearts)
	ac := NewCard(Ace, Clubs)

	if !kh.Less(ah) {
		t.Error("King should order below ace")
	}
	if !ac.Less(ah) {
		t.Error("Equal ranks should tie-break by suit")
	}
	if ah.Less(ah) {
		t.Error("A card should not order below itself")
	}
}

func TestDeckDealsUniqueCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck(rand.New(rand.NewSource(42)))
	if deck.Remaining() != 52 {
		t.Fatalf("Fresh deck should have 52 cards, got %d", deck.Remaining())
	}

	seen := make(map[Card]bool)
	for deck.Remaining() > 0 {
		card, err := deck.DealOne()
		if err != nil {
			t.Fatalf("DealOne failed: %v", err)
		}
		if seen[card] {
			t.Fatalf("Duplicate card dealt: %s", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}

	if _, err := deck.DealOne(); err == nil {
		t.Error("Dealing from an empty deck should fail")
	}
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	d1 := NewDeck(rand.New(rand.NewSource(7)))
	d2 := NewDeck(rand.New(rand.NewSource(7)))

	c1, _ := d1.Deal(10)
	c2, _ := d2.Deal(10)
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("Same seed should produce the same order, diverged at %d", i)
		}
	}
}

func TestDeckClone(t *testing.T) {
	t.Parallel()

	deck := NewDeck(rand.New(rand.NewSource(11)))
	_, _ = deck.Deal(5)

	clone := deck.Clone()
	if clone.Remaining() != deck.Remaining() {
		t.Fatalf("Clone should preserve remaining count")
	}

	orig, _ := deck.Deal(3)
	cloned, _ := clone.Deal(3)
	for i := range orig {
		if orig[i] != cloned[i] {
			t.Errorf("Clone should preserve draw order")
		}
	}
}
