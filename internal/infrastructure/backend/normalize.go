package backend

import (
	"cmp"
	"math"

	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
)

// toDomain folds both card wire shapes into the canonical CatalogCard. No
// other component ever sees a raw schema.
func (s cardSchema) toDomain() entity.CatalogCard {
	card := entity.CatalogCard{
		ID:       cmp.Or(s.CardID, s.ID),
		Name:     cmp.Or(s.Name, s.CardName),
		SetCode:  cmp.Or(s.SetCode, s.Set),
		SetName:  s.SetName,
		Number:   cmp.Or(s.Number, s.CardNumber),
		Variant:  cmp.Or(s.Variant, s.VariantTyp),
		Rarity:   s.Rarity,
		ImageURL: cmp.Or(s.ImageURL, s.Image),
	}

	if s.Pricing != nil {
		card.MarketPrice = s.Pricing.Market
		card.ConditionPrices = conditionPrices(s.Pricing.ByCondition)
		return card
	}

	card.MarketPrice = s.MarketPrice
	card.ConditionPrices = conditionPrices(s.Prices)

	return card
}

// conditionPrices keeps only valid condition codes with positive prices; a
// partial or junk map must not poison downstream price resolution.
func conditionPrices(raw map[string]int64) map[value.Condition]int64 {
	if len(raw) == 0 {
		return nil
	}

	prices := make(map[value.Condition]int64, len(raw))

	for code, price := range raw {
		c := value.Condition(code)
		if !c.Valid() || price <= 0 {
			continue
		}
		prices[c] = price
	}

	if len(prices) == 0 {
		return nil
	}

	return prices
}

func cardsToDomain(schemas []cardSchema) []entity.CatalogCard {
	cards := make([]entity.CatalogCard, len(schemas))
	for i, s := range schemas {
		cards[i] = s.toDomain()
	}

	return cards
}

func (s setSchema) toDomain() entity.CardSet {
	return entity.CardSet{
		Code:      s.Code,
		Name:      s.Name,
		CardCount: s.CardCount,
	}
}

func (s languageSchema) toDomain() entity.CardLanguage {
	return entity.CardLanguage{
		Code:      s.Code,
		Name:      s.Name,
		CardCount: s.CardCount,
	}
}

func (s settingsSchema) toDomain() entity.TradeSettings {
	rates := make(map[string]float64, len(s.Conditions))
	for _, c := range s.Conditions {
		rates[c.Code] = c.Multiplier
	}

	settings := entity.TradeSettings{
		MinimumValue: s.MinimumValue,
		BonusRateBps: int64(math.Round(s.StoreCreditBonus * 10000)),
		Multipliers:  value.MultipliersFromRates(rates),
	}

	if s.ReturnAddress != nil {
		settings.ReturnAddress = &entity.ReturnAddress{
			Name:     s.ReturnAddress.Name,
			Street:   s.ReturnAddress.Street,
			City:     s.ReturnAddress.City,
			Postcode: s.ReturnAddress.Postcode,
			Country:  s.ReturnAddress.Country,
		}
	}

	return settings
}

func (s submissionSchema) toDomain() entity.Submission {
	return entity.Submission{
		Number:            s.SubmissionNumber,
		Status:            entity.SubmissionStatus(s.Status),
		StatusLabel:       s.StatusLabel,
		StatusDescription: s.StatusDescription,
		PayoutType:        entity.PayoutType(s.PayoutType),
		QuotedTotal:       s.QuotedTotal,
		FinalTotal:        s.FinalTotal,
		BonusAmount:       s.BonusAmount,
	}
}

func (s submissionItemSchema) toDomain() entity.SubmissionItem {
	return entity.SubmissionItem{
		CardID:           s.CardID,
		Name:             s.Name,
		SetLabel:         s.SetLabel,
		ClaimedCondition: value.Condition(s.ClaimedCondition),
		ActualCondition:  value.Condition(s.ActualCondition),
		Quantity:         s.Quantity,
		QuotedPrice:      s.QuotedPrice,
		FinalPrice:       s.FinalPrice,
	}
}

func (s timelineStepSchema) toDomain() entity.TimelineStep {
	return entity.TimelineStep{
		Status:     entity.SubmissionStatus(s.Status),
		Label:      s.Label,
		IsComplete: s.IsComplete,
		IsCurrent:  s.IsCurrent,
	}
}

func (s gradingResultsSchema) toDomain() entity.GradingSummary {
	return entity.GradingSummary{
		OriginalTotal:  s.OriginalTotal,
		AdjustedTotal:  s.AdjustedTotal,
		AdjustedItems:  s.AdjustedItems,
		HasAdjustments: s.HasAdjustments,
	}
}
