package entity

import "tradein/internal/domain/value"

// CatalogCard is the canonical card record every component downstream of the
// backend normalization boundary operates on. Immutable once fetched.
type CatalogCard struct {
	ID              string
	Name            string
	SetCode         string
	SetName         string
	Number          string
	Variant         string
	Rarity          string
	ImageURL        string
	MarketPrice     int64 // minor currency units
	ConditionPrices map[value.Condition]int64
}

// DisplayNumber combines set code and card number into the composite shown to
// shoppers, e.g. "SV01-123". Cards without a number show the set code alone.
func (c CatalogCard) DisplayNumber() string {
	if c.Number == "" {
		return c.SetCode
	}
	return c.SetCode + "-" + c.Number
}

// CardSet is a reference-data entry from the sets endpoint.
type CardSet struct {
	Code      string
	Name      string
	CardCount int
}

// CardLanguage is a reference-data entry from the languages endpoint.
type CardLanguage struct {
	Code      string
	Name      string
	CardCount int
}

// CardPage is one page of a browse result.
type CardPage struct {
	Cards       []CatalogCard
	CurrentPage int
	TotalPages  int
	TotalCards  int
}

// BrowseFacets narrows a browse query. Empty fields are not transmitted.
type BrowseFacets struct {
	Set      string
	Language string
	Game     string
}
