package game

import "math"

// chipEpsilon is the tolerance used for all chip-amount comparisons. Chip
// amounts are real numbers so that fractional denominations (0.25 chips)
// work, and every comparison must absorb float rounding.
const chipEpsilon = 1e-6

func chipsEqual(a, b float64) bool {
	return math.Abs(a-b) < chipEpsilon
}

func chipsGTE(a, b float64) bool {
	return a > b-chipEpsilon
}

func chipsLTE(a, b float64) bool {
	return a < b+chipEpsilon
}

func chipsZero(a float64) bool {
	return math.Abs(a) < chipEpsilon
}

// isDenominated reports whether amount is an integer multiple of denom.
func isDenominated(amount, denom float64) bool {
	if denom <= 0 {
		return true
	}
	m := amount / denom
	return math.Abs(m-math.Round(m)) < chipEpsilon
}

// floorToDenom rounds amount down to the nearest multiple of denom.
func floorToDenom(amount, denom float64) float64 {
	if denom <= 0 {
		return amount
	}
	return math.Floor((amount+chipEpsilon)/denom) * denom
}
