package poker

import "fmt"

// EvaluateHoldem finds the best 5-card hand from any combination of hole
// and community cards.
func EvaluateHoldem(holeCards, community []Card) (EvaluatedHand, error) {
	all := make([]Card, 0, len(holeCards)+len(community))
	all = append(all, holeCards...)
	all = append(all, community...)
	return FindBestHand(all, 5)
}

// EvaluateOmahaHigh finds the best high hand using exactly two hole cards
// and exactly three community cards, scoring every 2x3 cross product
// independently.
func EvaluateOmahaHigh(holeCards, community []Card) (EvaluatedHand, error) {
	if len(holeCards) < 2 {
		return EvaluatedHand{}, fmt.Errorf("omaha requires at least 2 hole cards, got %d", len(holeCards))
	}
	if len(community) < 3 {
		return EvaluatedHand{}, fmt.Errorf("omaha requires at least 3 community cards, got %d", len(community))
	}

	var best EvaluatedHand
	found := false
	for _, holePair := range Combinations(holeCards, 2) {
		for _, boardTriple := range Combinations(community, 3) {
			combo := make([]Card, 0, 5)
			combo = append(combo, holePair...)
			combo = append(combo, boardTriple...)

			hand, err := Evaluate(combo)
			if err != nil {
				return EvaluatedHand{}, err
			}
			if !found || hand.Compare(best) > 0 {
				best = hand
				found = true
			}
		}
	}
	return best, nil
}

// EvaluateOmahaLow finds the best qualifying 8-or-better low under the same
// two-hole three-board constraint. Returns false if no combination
// qualifies.
func EvaluateOmahaLow(holeCards, community []Card) (LowHand, bool) {
	if len(holeCards) < 2 || len(community) < 3 {
		return LowHand{}, false
	}

	var best LowHand
	found := false
	for _, holePair := range Combinations(holeCards, 2) {
		for _, boardTriple := range Combinations(community, 3) {
			combo := make([]Card, 0, 5)
			combo = append(combo, holePair...)
			combo = append(combo, boardTriple...)

			low, ok := EvaluateLow(combo)
			if !ok {
				continue
			}
			if !found || low.Compare(best) > 0 {
				best = low
				found = true
			}
		}
	}
	return best, found
}

// EvaluateOmahaPartial gives pre-showdown feedback on an incomplete Omaha
// hand. It honors the two-hole-card constraint by searching every 2-card
// subset of the hole cards alongside whatever community cards are out.
func EvaluateOmahaPartial(holeCards, community []Card) (EvaluatedHand, error) {
	if len(community) >= 3 {
		return EvaluateOmahaHigh(holeCards, community)
	}
	if len(holeCards) < 2 {
		return EvaluatedHand{}, fmt.Errorf("omaha requires at least 2 hole cards, got %d", len(holeCards))
	}

	var best EvaluatedHand
	found := false
	for _, holePair := range Combinations(holeCards, 2) {
		cards := make([]Card, 0, 2+len(community))
		cards = append(cards, holePair...)
		cards = append(cards, community...)

		hand, err := EvaluatePartial(cards)
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
