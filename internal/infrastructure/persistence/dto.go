package persistence

import (
	"tradein/internal/domain/entity"
	"tradein/internal/domain/value"
)

// cartItemSchema is the storage shape of one cart line.
type cartItemSchema struct {
	CardID       string `json:"cardId"`
	Name         string `json:"name"`
	SetLabel     string `json:"setLabel,omitempty"`
	Variant      string `json:"variant,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Condition    string `json:"condition"`
	Quantity     int    `json:"quantity"`
	PricePerItem int64  `json:"pricePerItem"`
	PriceSource  string `json:"priceSource,omitempty"`
}

type cartStateSchema struct {
	Items []cartItemSchema `json:"items"`
}

func toSchema(state *entity.CartState) cartStateSchema {
	schema := cartStateSchema{Items: make([]cartItemSchema, len(state.Items))}

	for i, item := range state.Items {
		schema.Items[i] = cartItemSchema{
			CardID:       item.CardID,
			Name:         item.Name,
			SetLabel:     item.SetLabel,
			Variant:      item.Variant,
			ImageURL:     item.ImageURL,
			Condition:    item.Condition.String(),
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
			PriceSource:  string(item.PriceSource),
		}
	}

	return schema
}

// toDomain does not validate; the engine sanitizes restored items itself.
func (s cartStateSchema) toDomain(version int) *entity.CartState {
	state := &entity.CartState{
		SchemaVersion: version,
		Items:         make([]entity.CartItem, len(s.Items)),
	}

	for i, item := range s.Items {
		state.Items[i] = entity.CartItem{
			CardID:       item.CardID,
			Name:         item.Name,
			SetLabel:     item.SetLabel,
			Variant:      item.Variant,
			ImageURL:     item.ImageURL,
			Condition:    value.Condition(item.Condition),
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
			PriceSource:  entity.PriceSource(item.PriceSource),
		}
	}

	return state
}
