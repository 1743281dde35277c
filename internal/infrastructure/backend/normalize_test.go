package backend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/internal/domain/value"
)

func TestCardNormalizationShapeA(t *testing.T) {
	rq := require.New(t)

	schema := cardSchema{
		CardID:      "card-1",
		Name:        "Pikachu",
		SetCode:     "SV01",
		SetName:     "Scarlet Dawn",
		Number:      "023",
		Variant:     "holo",
		Rarity:      "rare",
		ImageURL:    "https://img/card-1.png",
		MarketPrice: 1000,
		Prices: map[string]int64{
			"NM": 950,
			"LP": 700,
		},
	}

	card := schema.toDomain()
	rq.Equal("card-1", card.ID)
	rq.Equal("Pikachu", card.Name)
	rq.Equal("SV01", card.SetCode)
	rq.EqualValues(1000, card.MarketPrice)
	rq.EqualValues(950, card.ConditionPrices[value.ConditionNearMint])
	rq.EqualValues(700, card.ConditionPrices[value.ConditionLightlyPlayed])
	rq.Equal("SV01-023", card.DisplayNumber())
}

func TestCardNormalizationShapeB(t *testing.T) {
	rq := require.New(t)

	schema := cardSchema{
		ID:         "card-2",
		CardName:   "Charizard",
		Set:        "SV02",
		CardNumber: "004",
		VariantTyp: "reverse",
		Image:      "https://img/card-2.png",
		Pricing: &pricingSchema{
			Market: 5000,
			ByCondition: map[string]int64{
				"NM": 4800,
			},
		},
	}

	card := schema.toDomain()
	rq.Equal("card-2", card.ID)
	rq.Equal("Charizard", card.Name)
	rq.Equal("SV02", card.SetCode)
	rq.Equal("004", card.Number)
	rq.Equal("reverse", card.Variant)
	rq.Equal("https://img/card-2.png", card.ImageURL)
	rq.EqualValues(5000, card.MarketPrice)
	rq.EqualValues(4800, card.ConditionPrices[value.ConditionNearMint])
}

func TestCardNormalizationPrimaryAliasWins(t *testing.T) {
	rq := require.New(t)

	schema := cardSchema{
		CardID:   "primary",
		ID:       "secondary",
		Name:     "Primary Name",
		CardName: "Secondary Name",
	}

	card := schema.toDomain()
	rq.Equal("primary", card.ID)
	rq.Equal("Primary Name", card.Name)
}

func TestCardNormalizationNestedPricingWinsOverFlat(t *testing.T) {
	rq := require.New(t)

	schema := cardSchema{
		CardID:      "card-3",
		MarketPrice: 111,
		Prices:      map[string]int64{"NM": 100},
		Pricing:     &pricingSchema{Market: 2000},
	}

	card := schema.toDomain()
	rq.EqualValues(2000, card.MarketPrice)
	rq.Nil(card.ConditionPrices)
}

func TestDisplayNumberWithoutNumber(t *testing.T) {
	rq := require.New(t)

	card := cardSchema{CardID: "card-4", SetCode: "SV03"}.toDomain()
	rq.Equal("SV03", card.DisplayNumber())
}

func TestConditionPricesFiltersJunk(t *testing.T) {
	rq := require.New(t)

	prices := conditionPrices(map[string]int64{
		"NM":   950,
		"MINT": 999, // unknown code
		"LP":   0,   // non-positive
		"HP":   -5,
	})

	rq.Len(prices, 1)
	rq.EqualValues(950, prices[value.ConditionNearMint])

	rq.Nil(conditionPrices(nil))
	rq.Nil(conditionPrices(map[string]int64{"MINT": 1}))
}

func TestSettingsNormalization(t *testing.T) {
	rq := require.New(t)

	schema := settingsSchema{
		MinimumValue:     750,
		StoreCreditBonus: 0.15,
		Conditions: []conditionRateSchema{
			{Code: "NM", Multiplier: 0.70},
			{Code: "LP", Multiplier: 0.55},
			{Code: "MINT", Multiplier: 0.99}, // unknown, dropped
		},
		ReturnAddress: &returnAddressSchema{Name: "Trade-In Centre", City: "London"},
	}

	settings := schema.toDomain()
	rq.EqualValues(750, settings.MinimumValue)
	rq.EqualValues(1500, settings.BonusRateBps)
	rq.Len(settings.Multipliers, 2)
	rq.EqualValues(7000, settings.Multipliers[value.ConditionNearMint])
	rq.EqualValues(5500, settings.Multipliers[value.ConditionLightlyPlayed])
	rq.NotNil(settings.ReturnAddress)
	rq.Equal("London", settings.ReturnAddress.City)
}
