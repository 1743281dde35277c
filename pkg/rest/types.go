// Wire types for the kiosk HTTP facade.
package rest

// Card is the canonical card representation exposed to the UI. Monetary
// values are integer minor currency units.
type Card struct {
	ID              string           `json:"cardId"`
	Name            string           `json:"name"`
	SetCode         string           `json:"setCode"`
	SetName         string           `json:"setName,omitempty"`
	Number          string           `json:"number,omitempty"`
	DisplayNumber   string           `json:"displayNumber"`
	Variant         string           `json:"variant,omitempty"`
	Rarity          string           `json:"rarity,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	MarketPrice     int64            `json:"marketPrice"`
	ConditionPrices map[string]int64 `json:"conditionPrices,omitempty"`
}

type SearchResponse struct {
	Cards []Card `json:"cards"`
	Count int    `json:"count"`
}

type BrowseResponse struct {
	Cards       []Card `json:"cards"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalCards  int    `json:"totalCards"`
}

type CardSet struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type CardLanguage struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type SetsResponse struct {
	Sets []CardSet `json:"sets"`
}

type LanguagesResponse struct {
	Languages []CardLanguage `json:"languages"`
}

type FeedQueryRequest struct {
	Q string `json:"q"`
}

// SearchFeedEvent is one server-sent event on the debounced search stream.
type SearchFeedEvent struct {
	Query string `json:"query"`
	Cards []Card `json:"cards"`
	Count int    `json:"count"`
}

type CartItem struct {
	CardID       string `json:"cardId"`
	Name         string `json:"name"`
	SetLabel     string `json:"setLabel,omitempty"`
	Variant      string `json:"variant,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Condition    string `json:"condition"`
	Quantity     int    `json:"quantity"`
	PricePerItem int64  `json:"pricePerItem"`
	LineTotal    int64  `json:"lineTotal"`
}

type Quote struct {
	ItemCount        int   `json:"itemCount"`
	Subtotal         int64 `json:"subtotal"`
	StoreCreditTotal int64 `json:"storeCreditTotal"`
	BankTotal        int64 `json:"bankTotal"`
	Eligible         bool  `json:"eligible"`
	Shortfall        int64 `json:"shortfall,omitempty"`
	MinimumValue     int64 `json:"minimumValue"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
	Quote Quote      `json:"quote"`
}

type AddItemRequest struct {
	Card      Card   `json:"card" validate:"required"`
	Condition string `json:"condition" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type SubmissionRequest struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ContactChannel string `json:"contactChannel"`
	PayoutType     string `json:"payoutType" validate:"required"`
	AccountHolder  string `json:"accountHolder,omitempty"`
	SortCode       string `json:"sortCode,omitempty"`
	AccountNumber  string `json:"accountNumber,omitempty"`
}

type SubmissionLinks struct {
	Tracking             string `json:"tracking"`
	PackingSlip          string `json:"packingSlip"`
	ShippingInstructions string `json:"shippingInstructions"`
}

type SubmissionResponse struct {
	SubmissionNumber string          `json:"submissionNumber"`
	Status           string          `json:"status"`
	QuotedTotal      int64           `json:"quotedTotal"`
	BonusAmount      int64           `json:"bonusAmount,omitempty"`
	Links            SubmissionLinks `json:"links"`
}

type Submission struct {
	Number            string `json:"submissionNumber"`
	Status            string `json:"status"`
	StatusLabel       string `json:"statusLabel,omitempty"`
	StatusDescription string `json:"statusDescription,omitempty"`
	PayoutType        string `json:"payoutType,omitempty"`
	QuotedTotal       int64  `json:"quotedTotal"`
	FinalTotal        *int64 `json:"finalTotal,omitempty"`
	BonusAmount       *int64 `json:"bonusAmount,omitempty"`
}

type TimelineStep struct {
	Status     string `json:"status"`
	Label      string `json:"label"`
	IsComplete bool   `json:"isComplete"`
	IsCurrent  bool   `json:"isCurrent"`
}

type TrackedItem struct {
	CardID           string `json:"cardId"`
	Name             string `json:"name"`
	SetLabel         string `json:"setLabel,omitempty"`
	ClaimedCondition string `json:"claimedCondition"`
	ActualCondition  string `json:"actualCondition,omitempty"`
	Quantity         int    `json:"quantity"`
	QuotedPrice      int64  `json:"quotedPrice"`
	FinalPrice       *int64 `json:"finalPrice,omitempty"`
	DisplayPrice     int64  `json:"displayPrice"`
	Adjusted         bool   `json:"adjusted"`
}

type GradingResults struct {
	OriginalTotal int64 `json:"originalTotal"`
	AdjustedTotal int64 `json:"adjustedTotal"`
	AdjustedItems int   `json:"adjustedItems"`
}

type TrackResponse struct {
	Found          bool            `json:"found"`
	Submission     *Submission     `json:"submission,omitempty"`
	Timeline       []TimelineStep  `json:"timeline,omitempty"`
	Items          []TrackedItem   `json:"items,omitempty"`
	GradingResults *GradingResults `json:"gradingResults,omitempty"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
