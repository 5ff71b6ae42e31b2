package game

import "sort"

// Pot is one pot layer with the set of players eligible to win it
type Pot struct {
	Amount   float64  `json:"amount"`
	Eligible []string `json:"eligible"` // player IDs
	Main     bool     `json:"main"`
}

// PotManager converts per-round committed bets into pot layers and tracks
// the rake. Invariant: the sum of all pot amounts plus rake taken equals
// every chip committed during the hand.
type PotManager struct {
	Pots           []Pot   `json:"pots"`
	RakeTaken      float64 `json:"rakeTaken"`
	TotalCommitted float64 `json:"totalCommitted"`
}

// NewPotManager creates an empty pot manager
func NewPotManager() *PotManager {
	return &PotManager{}
}

// Clone returns a deep copy of the pot manager
func (pm *PotManager) Clone() *PotManager {
	pots := make([]Pot, len(pm.Pots))
	for i, pot := range pm.Pots {
		pots[i] = Pot{Amount: pot.Amount, Main: pot.Main}
		if pot.Eligible != nil {
			pots[i].Eligible = make([]string, len(pot.Eligible))
			copy(pots[i].Eligible, pot.Eligible)
		}
	}
	return &PotManager{Pots: pots, RakeTaken: pm.RakeTaken, TotalCommitted: pm.TotalCommitted}
}

// Total returns the sum of all pot amounts
func (pm *PotManager) Total() float64 {
	total := 0.0
	for _, pot := range pm.Pots {
		total += pot.Amount
	}
	return total
}

// CollectBets folds one betting round's committed bets into the pot list,
// forming side pots. Distinct committed amounts become ascending thresholds;
// each threshold defines a layer funded by everyone who committed past the
// previous one. Eligibility on a layer is exactly the contributors who
// committed the full layer and have not folded.
func (pm *PotManager) CollectBets(bets map[string]float64, folded map[string]bool) {
	total := 0.0
	for _, amount := range bets {
		total += amount
	}
	if chipsZero(total) {
		return
	}
	pm.TotalCommitted += total

	// Thresholds are the distinct committed amounts of unfolded players.
	// A folded player's chips fund the layers below their commitment but
	// never cap a layer of their own.
	thresholdSet := make(map[float64]bool)
	for id, amount := range bets {
		if amount > chipEpsilon && !folded[id] {
			thresholdSet[amount] = true
		}
	}
	if len(thresholdSet) == 0 {
		// Everyone who bet has folded; sweep the chips into the last pot
		pm.addLayer(total, nil)
		return
	}

	thresholds := make([]float64, 0, len(thresholdSet))
	for amount := range thresholdSet {
		thresholds = append(thresholds, amount)
	}
	sort.Float64s(thresholds)

	prev := 0.0
	for _, threshold := range thresholds {
		layerAmount := 0.0
		var eligible []string
		for id, amount := range bets {
			if amount <= prev+chipEpsilon {
				continue
			}
			contribution := amount
			if contribution > threshold {
				contribution = threshold
			}
			layerAmount += contribution - prev
			if chipsGTE(amount, threshold) && !folded[id] {
				eligible = append(eligible, id)
			}
		}
		sort.Strings(eligible)
		pm.addLayer(layerAmount, eligible)
		prev = threshold
	}

	// Chips committed beyond the highest unfolded threshold can only come
	// from folded players; they fund the top layer.
	extra := 0.0
	for _, amount := range bets {
		if amount > prev+chipEpsilon {
			extra += amount - prev
		}
	}
	if extra > chipEpsilon {
		pm.addLayer(extra, nil)
	}
}

// addLayer merges a layer into the last pot when the eligibility set is
// unchanged, otherwise appends a new pot. A nil eligibility set means
// "whoever the last pot belongs to".
func (pm *PotManager) addLayer(amount float64, eligible []string) {
	if chipsZero(amount) {
		return
	}
	if len(pm.Pots) == 0 {
		pm.Pots = append(pm.Pots, Pot{Amount: amount, Eligible: eligible, Main: true})
		return
	}
	last := &pm.Pots[len(pm.Pots)-1]
	if eligible == nil || sameEligibility(last.Eligible, eligible) {
		last.Amount += amount
		return
	}
	pm.Pots = append(pm.Pots, Pot{Amount: amount, Eligible: eligible})
}

func sameEligibility(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RemoveFolded drops a player from every pot's eligibility set. Called when
// a player folds after bets have already been collected into pots.
func (pm *PotManager) RemoveFolded(playerID string) {
	for i := range pm.Pots {
		eligible := pm.Pots[i].Eligible
		for j, id := range eligible {
			if id == playerID {
				pm.Pots[i].Eligible = append(eligible[:j], eligible[j+1:]...)
				break
			}
		}
	}
}

// SetRake updates the rake to the target amount, deducting the difference
// from the main pot. The rake only ever grows within a hand.
func (pm *PotManager) SetRake(target float64) {
	if len(pm.Pots) == 0 || target <= pm.RakeTaken+chipEpsilon {
		return
	}
	delta := target - pm.RakeTaken
	pm.Pots[0].Amount -= delta
	pm.RakeTaken = target
}

// CheckInvariant verifies pots + rake == total committed
func (pm *PotManager) CheckInvariant() error {
	if !chipsEqual(pm.Total()+pm.RakeTaken, pm.TotalCommitted) {
		return newError(CodeInternal, "pot invariant violated: pots %s + rake %s != committed %s",
			fmtChips(pm.Total()), fmtChips(pm.RakeTaken), fmtChips(pm.TotalCommitted))
	}
	return nil
}
