package poker

import (
	"fmt"
	"sort"
	"strings"
)

// LowHand is a qualifying 8-or-better low hand. Values holds the five
// distinct card values (ace counted as 1) in descending order, so two low
// hands compare by lowest high card first.
type LowHand struct {
	Values []int
	Cards  []Card
}

// String renders the low hand high-card first (e.g. "8-6-4-2-A")
func (lh LowHand) String() string {
	parts := make([]string, len(lh.Values))
	for i, v := range lh.Values {
		if v == 1 {
			parts[i] = "A"
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, "-")
}

// Compare compares two low hands and returns:
//
//	-1 if lh is a worse low than other (higher)
//	 0 if lh equals other
//	 1 if lh is a better low than other (lower)
func (lh LowHand) Compare(other LowHand) int {
	for i := 0; i < len(lh.Values) && i < len(other.Values); i++ {
		if lh.Values[i] != other.Values[i] {
			if lh.Values[i] > other.Values[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// EvaluateLow checks five cards for an 8-or-better low. A hand qualifies
// only with five distinct values all 8 or below, ace playing as 1.
// Straights and flushes do not count against a low.
func EvaluateLow(cards []Card) (LowHand, bool) {
	if len(cards) != 5 {
		return LowHand{}, false
	}

	seen := make(map[int]bool, 5)
	values := make([]int, 0, 5)
	for _, c := range cards {
		v := c.Rank.LowValue()
		if v > 8 || seen[v] {
			return LowHand{}, false
		}
		seen[v] = true
		values = append(values, v)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	copied := make([]Card, 5)
	copy(copied, cards)
	return LowHand{Values: values, Cards: copied}, true
}

// FindBestLow searches all 5-card subsets for the best qualifying low hand.
func FindBestLow(cards []Card) (LowHand, bool) {
	var best LowHand
	found := false
	for _, combo := range Combinations(cards, 5) {
		low, ok := EvaluateLow(combo)
		if !ok {
			continue
		}
		if !found || low.Compare(best) > 0 {
			best = low
			found = true
		}
	}
	return best, found
}
