package value

import (
	"math"

	"tradein/internal/domain"
	"tradein/pkg/errcodes"
)

// Condition is one of the five card condition codes used for pricing.
type Condition string

const (
	ConditionNearMint       Condition = "NM"
	ConditionLightlyPlayed  Condition = "LP"
	ConditionModeratePlayed Condition = "MP"
	ConditionHeavilyPlayed  Condition = "HP"
	ConditionDamaged        Condition = "DMG"
)

// Conditions lists every valid code in grading order, best first.
func Conditions() []Condition {
	return []Condition{
		ConditionNearMint,
		ConditionLightlyPlayed,
		ConditionModeratePlayed,
		ConditionHeavilyPlayed,
		ConditionDamaged,
	}
}

func (c Condition) String() string {
	return string(c)
}

func (c Condition) Valid() bool {
	switch c {
	case ConditionNearMint, ConditionLightlyPlayed, ConditionModeratePlayed,
		ConditionHeavilyPlayed, ConditionDamaged:
		return true
	}
	return false
}

func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !c.Valid() {
		return "", domain.NewError(errcodes.InvalidCondition, "unknown condition code: "+s)
	}
	return c, nil
}

// Multipliers maps a condition to its market-price multiplier in basis
// points, so the fallback price stays in integer arithmetic.
type Multipliers map[Condition]int64

// DefaultMultipliers is the fixed fallback table applied when a card has no
// precomputed per-condition price.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		ConditionNearMint:       7000,
		ConditionLightlyPlayed:  5500,
		ConditionModeratePlayed: 4000,
		ConditionHeavilyPlayed:  2500,
		ConditionDamaged:        1000,
	}
}

// MultipliersFromRates converts decimal rates (0.70, 0.55, ...) as delivered
// by the settings endpoint into basis points.
func MultipliersFromRates(rates map[string]float64) Multipliers {
	m := make(Multipliers, len(rates))

	for code, rate := range rates {
		c := Condition(code)
		if !c.Valid() || rate <= 0 {
			continue
		}
		m[c] = int64(math.Round(rate * 10000))
	}

	return m
}
