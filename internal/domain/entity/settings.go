package entity

import "tradein/internal/domain/value"

// TradeSettings are the backend-declared quoting parameters. Local defaults
// apply until a settings fetch succeeds.
type TradeSettings struct {
	MinimumValue  int64
	BonusRateBps  int64
	Multipliers   value.Multipliers
	ReturnAddress *ReturnAddress
}

// ReturnAddress is printed on shipping instructions; the kiosk only displays it.
type ReturnAddress struct {
	Name     string
	Street   string
	City     string
	Postcode string
	Country  string
}
