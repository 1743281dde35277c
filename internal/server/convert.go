package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
	"tradein/pkg/errcodes"
	"tradein/pkg/lox"
	"tradein/pkg/rest"
)

// asReplyError translates a domain error into the transport error family the
// reply package maps to HTTP statuses. Non-domain errors pass through and
// render as 500.
func asReplyError(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Code {
	case errcodes.NotFound, errcodes.SubmissionNotFound:
		return failure.NewNotFoundError(appErr.Message,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.RequestSuperseded:
		// In-process consumers drop superseded lookups silently; over plain
		// request/response HTTP they surface as a conflict so the client can
		// tell a stale answer from an empty one.
		return failure.NewConflictError(appErr.Message,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.CartBelowMinimum, errcodes.CartOverItemLimit, errcodes.SubmissionRejected:
		return failure.NewUnprocessableEntityError(appErr.Message,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.InternalServerError, errcodes.BackendUnavailable:
		return err
	default:
		return failure.NewInvalidArgumentError(appErr.Message,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	}
}

func newRESTCard(card entity.CatalogCard) rest.Card {
	restCard := rest.Card{
		ID:            card.ID,
		Name:          card.Name,
		SetCode:       card.SetCode,
		SetName:       card.SetName,
		Number:        card.Number,
		DisplayNumber: card.DisplayNumber(),
		Variant:       card.Variant,
		Rarity:        card.Rarity,
		ImageURL:      card.ImageURL,
		MarketPrice:   card.MarketPrice,
	}

	if len(card.ConditionPrices) > 0 {
		restCard.ConditionPrices = make(map[string]int64, len(card.ConditionPrices))
		for condition, price := range card.ConditionPrices {
			restCard.ConditionPrices[condition.String()] = price
		}
	}

	return restCard
}

func newDomainCard(card rest.Card) entity.CatalogCard {
	domainCard := entity.CatalogCard{
		ID:          card.ID,
		Name:        card.Name,
		SetCode:     card.SetCode,
		SetName:     card.SetName,
		Number:      card.Number,
		Variant:     card.Variant,
		Rarity:      card.Rarity,
		ImageURL:    card.ImageURL,
		MarketPrice: card.MarketPrice,
	}

	if len(card.ConditionPrices) > 0 {
		domainCard.ConditionPrices = make(map[value.Condition]int64, len(card.ConditionPrices))
		for code, price := range card.ConditionPrices {
			condition := value.Condition(code)
			if !condition.Valid() || price <= 0 {
				continue
			}
			domainCard.ConditionPrices[condition] = price
		}
	}

	return domainCard
}

func newRESTCartItem(item entity.CartItem) rest.CartItem {
	return rest.CartItem{
		CardID:       item.CardID,
		Name:         item.Name,
		SetLabel:     item.SetLabel,
		Variant:      item.Variant,
		ImageURL:     item.ImageURL,
		Condition:    item.Condition.String(),
		Quantity:     item.Quantity,
		PricePerItem: item.PricePerItem,
		LineTotal:    int64(item.Quantity) * item.PricePerItem,
	}
}

func newRESTQuote(totals entity.QuoteTotals, eligibility entity.Eligibility, minimumValue int64) rest.Quote {
	return rest.Quote{
		ItemCount:        totals.ItemCount,
		Subtotal:         totals.Subtotal,
		StoreCreditTotal: totals.StoreCreditTotal,
		BankTotal:        totals.BankTotal,
		Eligible:         eligibility.Eligible,
		Shortfall:        eligibility.Shortfall,
		MinimumValue:     minimumValue,
	}
}

func newRESTCart(state *entity.CartState, totals entity.QuoteTotals, eligibility entity.Eligibility, minimumValue int64) rest.CartResponse {
	return rest.CartResponse{
		Items: lox.Map(state.Items, newRESTCartItem),
		Quote: newRESTQuote(totals, eligibility, minimumValue),
	}
}

func newRESTSubmission(submission entity.Submission) rest.Submission {
	return rest.Submission{
		Number:            submission.Number,
		Status:            string(submission.Status),
		StatusLabel:       submission.StatusLabel,
		StatusDescription: submission.StatusDescription,
		PayoutType:        string(submission.PayoutType),
		QuotedTotal:       submission.QuotedTotal,
		FinalTotal:        submission.FinalTotal,
		BonusAmount:       submission.BonusAmount,
	}
}

func newRESTTimelineStep(step entity.TimelineStep) rest.TimelineStep {
	return rest.TimelineStep{
		Status:     string(step.Status),
		Label:      step.Label,
		IsComplete: step.IsComplete,
		IsCurrent:  step.IsCurrent,
	}
}

func newRESTTrackedItem(item entity.SubmissionItem) rest.TrackedItem {
	return rest.TrackedItem{
		CardID:           item.CardID,
		Name:             item.Name,
		SetLabel:         item.SetLabel,
		ClaimedCondition: item.ClaimedCondition.String(),
		ActualCondition:  item.ActualCondition.String(),
		Quantity:         item.Quantity,
		QuotedPrice:      item.QuotedPrice,
		FinalPrice:       item.FinalPrice,
		DisplayPrice:     item.DisplayPrice(),
		Adjusted:         item.Adjusted(),
	}
}

func newRESTGrading(grading *entity.GradingSummary) *rest.GradingResults {
	if grading == nil {
		return nil
	}

	return &rest.GradingResults{
		OriginalTotal: grading.OriginalTotal,
		AdjustedTotal: grading.AdjustedTotal,
		AdjustedItems: grading.AdjustedItems,
	}
}
