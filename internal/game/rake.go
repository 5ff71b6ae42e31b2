package game

// RakeCalculator computes the house cut of a pot. Rake is a percentage of
// the pot, capped, then floored to the nearest multiple of the rake
// denomination. A nil calculator on the engine means no rake.
type RakeCalculator struct {
	Percent      float64 `json:"percent"` // e.g. 0.05 for 5%
	Cap          float64 `json:"cap"`     // 0 = uncapped
	Denomination float64 `json:"denomination"`
}

// Rake returns the rake owed on a pot of the given size
func (rc *RakeCalculator) Rake(potTotal float64) float64 {
	raw := potTotal * rc.Percent
	if rc.Cap > 0 && raw > rc.Cap {
		raw = rc.Cap
	}
	return floorToDenom(raw, rc.Denomination)
}
