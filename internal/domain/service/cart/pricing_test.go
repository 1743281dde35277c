package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/errcodes"
)

func TestResolvePrice(t *testing.T) {
	engine := NewEngine(newFakeStore())

	tests := []struct {
		name       string
		card       entity.CatalogCard
		condition  value.Condition
		wantPrice  int64
		wantSource entity.PriceSource
	}{
		{
			name: "condition map wins over multiplier",
			card: entity.CatalogCard{
				MarketPrice:     1000,
				ConditionPrices: map[value.Condition]int64{value.ConditionNearMint: 950},
			},
			condition:  value.ConditionNearMint,
			wantPrice:  950,
			wantSource: entity.PriceSourceConditionMap,
		},
		{
			name:       "multiplier fallback near mint",
			card:       entity.CatalogCard{MarketPrice: 1000},
			condition:  value.ConditionNearMint,
			wantPrice:  700,
			wantSource: entity.PriceSourceMultiplier,
		},
		{
			name:       "multiplier fallback damaged",
			card:       entity.CatalogCard{MarketPrice: 1000},
			condition:  value.ConditionDamaged,
			wantPrice:  100,
			wantSource: entity.PriceSourceMultiplier,
		},
		{
			name:       "fallback floors fractional results",
			card:       entity.CatalogCard{MarketPrice: 999},
			condition:  value.ConditionLightlyPlayed, // 999 * 0.55 = 549.45
			wantPrice:  549,
			wantSource: entity.PriceSourceMultiplier,
		},
		{
			name: "missing condition in map falls back",
			card: entity.CatalogCard{
				MarketPrice:     1000,
				ConditionPrices: map[value.Condition]int64{value.ConditionNearMint: 950},
			},
			condition:  value.ConditionModeratePlayed,
			wantPrice:  400,
			wantSource: entity.PriceSourceMultiplier,
		},
		{
			name: "non-positive map entry falls back",
			card: entity.CatalogCard{
				MarketPrice:     1000,
				ConditionPrices: map[value.Condition]int64{value.ConditionNearMint: 0},
			},
			condition:  value.ConditionNearMint,
			wantPrice:  700,
			wantSource: entity.PriceSourceMultiplier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			price, source, err := engine.resolvePrice(tt.card, tt.condition)
			rq.NoError(err)
			rq.Equal(tt.wantPrice, price)
			rq.Equal(tt.wantSource, source)
		})
	}
}

func TestResolvePriceNoUsablePrice(t *testing.T) {
	rq := require.New(t)
	engine := NewEngine(newFakeStore())

	_, _, err := engine.resolvePrice(entity.CatalogCard{MarketPrice: 0}, value.ConditionNearMint)
	rq.True(domain.HasCode(err, errcodes.ValidationError))
}
