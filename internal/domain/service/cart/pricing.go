package cart

import (
	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/errcodes"
)

// resolvePrice picks the unit price for a card in a condition. A precomputed
// per-condition price always wins; the multiplier fallback applies only to
// the raw market price, never on top of an already condition-adjusted one.
func (e *Engine) resolvePrice(card entity.CatalogCard, condition value.Condition) (int64, entity.PriceSource, error) {
	if price, ok := card.ConditionPrices[condition]; ok && price > 0 {
		return price, entity.PriceSourceConditionMap, nil
	}

	if card.MarketPrice <= 0 {
		return 0, "", domain.NewError(errcodes.ValidationError, "card has no usable price")
	}

	multiplier, ok := e.multipliers[condition]
	if !ok {
		return 0, "", domain.NewError(errcodes.InvalidCondition, "no multiplier for condition "+condition.String())
	}

	// Integer floor division; multipliers are basis points.
	return card.MarketPrice * multiplier / 10000, entity.PriceSourceMultiplier, nil
}
