package poker

import (
	"fmt"
	"sort"
	"strings"
)

// HandRank represents the ranking category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand rank
func (hr HandRank) String() string {
	switch hr {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is a ranked poker hand: the category, the cards that make
// it, and the ranks used for tie-breaking in descending significance order.
type EvaluatedHand struct {
	Rank    HandRank
	Cards   []Card
	Kickers []Rank
}

// String returns a human-readable description of the hand
func (h EvaluatedHand) String() string {
	var cardStrs []string
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Rank, strings.Join(cardStrs, " "))
}

// Compare compares two hands and returns:
//
//	-1 if h is weaker than other
//	 0 if h equals other
//	 1 if h is stronger than other
func (h EvaluatedHand) Compare(other EvaluatedHand) int {
	if h.Rank != other.Rank {
		if h.Rank < other.Rank {
			return -1
		}
		return 1
	}

	for i := 0; i < len(h.Kickers) && i < len(other.Kickers); i++ {
		if h.Kickers[i] != other.Kickers[i] {
			if h.Kickers[i] < other.Kickers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Evaluate ranks exactly five cards.
func Evaluate(cards []Card) (EvaluatedHand, error) {
	if len(cards) != 5 {
		return EvaluatedHand{}, fmt.Errorf("evaluate requires exactly 5 cards, got %d", len(cards))
	}

	sorted := make([]Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[j].Less(sorted[i]) })

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, straight := straightHighCard(sorted)

	switch {
	case flush && straight && straightHigh == Ace:
		return EvaluatedHand{Rank: RoyalFlush, Cards: sorted, Kickers: []Rank{Ace}}, nil
	case flush && straight:
		return EvaluatedHand{Rank: StraightFlush, Cards: sorted, Kickers: []Rank{straightHigh}}, nil
	}

	groups := rankGroups(sorted)

	switch {
	case groups[0].count == 4:
		return EvaluatedHand{
			Rank:    FourOfAKind,
			Cards:   sorted,
			Kickers: []Rank{groups[0].rank, groups[1].rank},
		}, nil
	case groups[0].count == 3 && groups[1].count == 2:
		return EvaluatedHand{
			Rank:    FullHouse,
			Cards:   sorted,
			Kickers: []Rank{groups[0].rank, groups[1].rank},
		}, nil
	case flush:
		return EvaluatedHand{Rank: Flush, Cards: sorted, Kickers: groupRanks(groups)}, nil
	case straight:
		return EvaluatedHand{Rank: Straight, Cards: sorted, Kickers: []Rank{straightHigh}}, nil
	case groups[0].count == 3:
		return EvaluatedHand{Rank: ThreeOfAKind, Cards: sorted, Kickers: groupRanks(groups)}, nil
	case groups[0].count == 2 && groups[1].count == 2:
		return EvaluatedHand{Rank: TwoPair, Cards: sorted, Kickers: groupRanks(groups)}, nil
	case groups[0].count == 2:
		return EvaluatedHand{Rank: OnePair, Cards: sorted, Kickers: groupRanks(groups)}, nil
	default:
		return EvaluatedHand{Rank: HighCard, Cards: sorted, Kickers: groupRanks(groups)}, nil
	}
}

// straightHighCard reports whether five rank-descending cards form a
// straight, and the high card of that straight. The wheel (A-2-3-4-5)
// counts as a five-high straight.
func straightHighCard(sorted []Card) (Rank, bool) {
	consecutive := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank != sorted[i].Rank+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return sorted[0].Rank, true
	}

	// Wheel: ace plays low below 5-4-3-2
	if sorted[0].Rank == Ace &&
		sorted[1].Rank == Five &&
		sorted[2].Rank == Four &&
		sorted[3].Rank == Three &&
		sorted[4].Rank == Two {
		return Five, true
	}

	return 0, false
}

type rankGroup struct {
	rank  Rank
	count int
}

// rankGroups buckets cards by rank, ordered by count then rank descending.
// The ordering makes group ranks directly usable as kickers.
func rankGroups(cards []Card) []rankGroup {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func groupRanks(groups []rankGroup) []Rank {
	ranks := make([]Rank, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

// Combinations returns all k-card subsets of the given cards in index order.
func Combinations(cards []Card, k int) [][]Card {
	if k <= 0 || k > len(cards) {
		return nil
	}

	var result [][]Card
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		combo := make([]Card, k)
		for i, idx := range indices {
			combo[i] = cards[idx]
		}
		result = append(result, combo)

		// Advance to the next combination
		i := k - 1
		for i >= 0 && indices[i] == len(cards)-k+i {
			i--
		}
		if i < 0 {
			break
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}

	return result
}

// FindBestHand searches every k-card subset of the offered cards and returns
// the strongest. This is an exhaustive search; with at most 9 cards in play
// the subset count is small enough that no shortcut is needed.
func FindBestHand(cards []Card, k int) (EvaluatedHand, error) {
	if len(cards) < k {
		return EvaluatedHand{}, fmt.Errorf("need at least %d cards, got %d", k, len(cards))
	}
	if k != 5 {
		return EvaluatedHand{}, fmt.Errorf("best-hand search requires 5-card hands, got %d", k)
	}

	var best EvaluatedHand
	found := false
	for _, combo := range Combinations(cards, k) {
		hand, err := Evaluate(combo)
		if err != nil {
			return EvaluatedHand{}, err
		}
		if !found || hand.Compare(best) > 0 {
			best = hand
			found = true
		}
	}
	return best, nil
}

// EvaluatePartial ranks 1-4 cards by grouping same-rank cards only. Flushes
// and straights are meaningless below five cards, so the result is limited
// to high card, pairs, trips, two pair and quads. Used for pre-showdown
// feedback on incomplete hands.
func EvaluatePartial(cards []Card) (EvaluatedHand, error) {
	if len(cards) < 1 || len(cards) > 4 {
		return EvaluatedHand{}, fmt.Errorf("partial evaluation requires 1-4 cards, got %d", len(cards))
	}

	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[j].Less(sorted[i]) })

	groups := rankGroups(sorted)

	var rank HandRank
	switch {
	case groups[0].count == 4:
		rank = FourOfAKind
	case groups[0].count == 3:
		rank = ThreeOfAKind
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		rank = TwoPair
	case groups[0].count == 2:
		rank = OnePair
	default:
		rank = HighCard
	}

	return EvaluatedHand{Rank: rank, Cards: sorted, Kickers: groupRanks(groups)}, nil
}
