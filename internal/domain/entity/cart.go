package entity

import "tradein/internal/domain/value"

// PriceSource records where a cart line's unit price came from.
type PriceSource string

const (
	PriceSourceConditionMap PriceSource = "condition_map"
	PriceSourceMultiplier   PriceSource = "multiplier"
)

// CartItem is one line of the shopper's in-progress selection. The unit price
// is a snapshot resolved at add time and never recomputed afterwards, even if
// catalog data changes.
type CartItem struct {
	CardID       string
	Name         string
	SetLabel     string
	Variant      string
	ImageURL     string
	Condition    value.Condition
	Quantity     int
	PricePerItem int64 // minor currency units
	PriceSource  PriceSource
}

// CartState is the ordered selection for one session. Insertion order matters
// for display only; totals are order-independent. At most one item exists per
// (CardID, Condition) pair.
type CartState struct {
	SchemaVersion int
	Items         []CartItem
}

// IndexOf returns the position of the (cardID, condition) line, or -1.
func (s *CartState) IndexOf(cardID string, condition value.Condition) int {
	for i, item := range s.Items {
		if item.CardID == cardID && item.Condition == condition {
			return i
		}
	}
	return -1
}

// QuoteTotals is derived from CartState on every read and never stored, so it
// cannot drift from the items.
type QuoteTotals struct {
	ItemCount        int
	Subtotal         int64
	StoreCreditTotal int64
	BankTotal        int64
}

// Eligibility reports whether a cart may be submitted. Shortfall is set only
// when the minimum-value rule is the sole blocker.
type Eligibility struct {
	Eligible  bool
	Shortfall int64
}
