package poker

import (
	"fmt"
	"math/rand"
)

// Deck represents a standard 52-card deck
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck. The RNG is explicit so hands can be
// reproduced from a seed; a nil rng falls back to the global source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: fullDeck(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// NewDeckFromCards creates a deck with a fixed draw order. Used for
// deterministic tests and for restoring a deck from a snapshot.
func NewDeckFromCards(cards []Card) *Deck {
	copied := make([]Card, len(cards))
	copy(copied, cards)
	return &Deck{cards: copied}
}

func fullDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the remaining deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("cannot deal %d cards, only %d remaining", n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the top of the deck
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// RemainingCards returns a copy of the undealt cards in draw order
func (d *Deck) RemainingCards() []Card {
	cards := make([]Card, d.Remaining())
	copy(cards, d.cards[d.next:])
	return cards
}

// Clone returns a deck with the same remaining draw order
func (d *Deck) Clone() *Deck {
	return NewDeckFromCards(d.RemainingCards())
}
