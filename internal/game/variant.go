package game

import (
	"github.com/cardroomlabs/cardroom/poker"
)

// VariantID is the serialized discriminator for a poker variant
type VariantID string

const (
	VariantHoldem    VariantID = "holdem"
	VariantOmaha     VariantID = "omaha"
	VariantOmahaHiLo VariantID = "omaha_hilo"
)

// ShowdownHand is one player's best hand(s) at showdown. Low is nil unless
// the variant plays hi-lo and the player holds a qualifying low.
type ShowdownHand struct {
	High poker.EvaluatedHand
	Low  *poker.LowHand
}

// Variant is the capability object that parameterizes the engine with
// variant-specific rules: how many hole cards to deal, whether community
// cards are used, and how hands are evaluated at showdown.
type Variant interface {
	ID() VariantID
	Name() string
	HoleCardCount() int
	UsesCommunityCards() bool
	HiLo() bool
	Evaluate(holeCards, community []poker.Card) (ShowdownHand, error)
	EvaluatePartial(holeCards, community []poker.Card) (poker.EvaluatedHand, error)
}

// NewVariant constructs a variant from its discriminator. Restoring a
// snapshot uses this so an unknown variant fails loudly instead of
// defaulting to the wrong game.
func NewVariant(id VariantID) (Variant, error) {
	switch id {
	case VariantHoldem:
		return holdemVariant{}, nil
	case VariantOmaha:
		return omahaVariant{}, nil
	case VariantOmahaHiLo:
		return omahaVariant{hiLo: true}, nil
	default:
		return nil, newError(CodeInternal, "unknown variant %q", id)
	}
}

type holdemVariant struct{}

func (holdemVariant) ID() VariantID            { return VariantHoldem }
func (holdemVariant) Name() string             { return "Texas Hold'em" }
func (holdemVariant) HoleCardCount() int       { return 2 }
func (holdemVariant) UsesCommunityCards() bool { return true }
func (holdemVariant) HiLo() bool               { return false }

func (holdemVariant) Evaluate(holeCards, community []poker.Card) (ShowdownHand, error) {
	high, err := poker.EvaluateHoldem(holeCards, community)
	if err != nil {
		return ShowdownHand{}, err
	}
	return ShowdownHand{High: high}, nil
}

func (holdemVariant) EvaluatePartial(holeCards, community []poker.Card) (poker.EvaluatedHand, error) {
	all := make([]poker.Card, 0, len(holeCards)+len(community))
	all = append(all, holeCards...)
	all = append(all, community...)
	if len(all) >= 5 {
		return poker.FindBestHand(all, 5)
	}
	return poker.EvaluatePartial(all)
}

type omahaVariant struct {
	hiLo bool
}

func (v omahaVariant) ID() VariantID {
	if v.hiLo {
		return VariantOmahaHiLo
	}
	return VariantOmaha
}

func (v omahaVariant) Name() string {
	if v.hiLo {
		return "Omaha Hi-Lo"
	}
	return "Omaha"
}

func (omahaVariant) HoleCardCount() int       { return 4 }
func (omahaVariant) UsesCommunityCards() bool { return true }
func (v omahaVariant) HiLo() bool             { return v.hiLo }

func (v omahaVariant) Evaluate(holeCards, community []poker.Card) (ShowdownHand, error) {
	high, err := poker.EvaluateOmahaHigh(holeCards, community)
	if err != nil {
		return ShowdownHand{}, err
	}
	result := ShowdownHand{High: high}
	if v.hiLo {
		if low, ok := poker.EvaluateOmahaLow(holeCards, community); ok {
			result.Low = &low
		}
	}
	return result, nil
}

func (omahaVariant) EvaluatePartial(holeCards, community []poker.Card) (poker.EvaluatedHand, error) {
	return poker.EvaluateOmahaPartial(holeCards, community)
}
