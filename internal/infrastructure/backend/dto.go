package backend

// Wire schemas for the trade-in backend. The card endpoints disagree on field
// names and pricing layout, so every alias lives here and nowhere else.

type cardSchema struct {
	CardID     string `json:"cardId"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	CardName   string `json:"cardName"`
	SetCode    string `json:"setCode"`
	Set        string `json:"set"`
	SetName    string `json:"setName"`
	Number     string `json:"number"`
	CardNumber string `json:"cardNumber"`
	Variant    string `json:"variant"`
	VariantTyp string `json:"variantType"`
	Rarity     string `json:"rarity"`
	ImageURL   string `json:"imageUrl"`
	Image      string `json:"image"`

	// Shape A: flat per-condition map next to a reference market price.
	MarketPrice int64            `json:"marketPrice"`
	Prices      map[string]int64 `json:"prices"`

	// Shape B: nested pricing object.
	Pricing *pricingSchema `json:"pricing"`
}

type pricingSchema struct {
	Market      int64            `json:"market"`
	ByCondition map[string]int64 `json:"byCondition"`
}

type searchResponseSchema struct {
	Cards []cardSchema `json:"cards"`
	Count int          `json:"count"`
}

type browseResponseSchema struct {
	Cards       []cardSchema `json:"cards"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalCards  int          `json:"totalCards"`
}

type setSchema struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type setsResponseSchema struct {
	Sets []setSchema `json:"sets"`
}

type languageSchema struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type languagesResponseSchema struct {
	Languages []languageSchema `json:"languages"`
}

type conditionRateSchema struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

type returnAddressSchema struct {
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type settingsSchema struct {
	MinimumValue     int64                 `json:"minimumValue"`
	StoreCreditBonus float64               `json:"storeCreditBonus"`
	Conditions       []conditionRateSchema `json:"conditions"`
	ReturnAddress    *returnAddressSchema  `json:"returnAddress"`
}

type submissionItemRequestSchema struct {
	CardID           string `json:"cardId"`
	Name             string `json:"name"`
	SetLabel         string `json:"setLabel,omitempty"`
	ClaimedCondition string `json:"claimedCondition"`
	Quantity         int    `json:"quantity"`
	PricePerItem     int64  `json:"pricePerItem"`
}

type submissionRequestSchema struct {
	Email          string                        `json:"email"`
	Phone          string                        `json:"phone"`
	ContactChannel string                        `json:"contactChannel"`
	PayoutType     string                        `json:"payoutType"`
	AccountHolder  string                        `json:"accountHolder,omitempty"`
	SortCode       string                        `json:"sortCode,omitempty"`
	AccountNumber  string                        `json:"accountNumber,omitempty"`
	Items          []submissionItemRequestSchema `json:"items"`
}

type submissionItemSchema struct {
	CardID           string `json:"cardId"`
	Name             string `json:"name"`
	SetLabel         string `json:"setLabel"`
	ClaimedCondition string `json:"claimedCondition"`
	ActualCondition  string `json:"actualCondition"`
	Quantity         int    `json:"quantity"`
	QuotedPrice      int64  `json:"quotedPrice"`
	FinalPrice       *int64 `json:"finalPrice"`
}

type submissionSchema struct {
	SubmissionNumber  string `json:"submissionNumber"`
	Status            string `json:"status"`
	StatusLabel       string `json:"statusLabel"`
	StatusDescription string `json:"statusDescription"`
	PayoutType        string `json:"payoutType"`
	QuotedTotal       int64  `json:"quotedTotal"`
	FinalTotal        *int64 `json:"finalTotal"`
	BonusAmount       *int64 `json:"bonusAmount"`
}

type createSubmissionResponseSchema struct {
	SubmissionNumber string                 `json:"submissionNumber"`
	Status           string                 `json:"status"`
	QuotedTotal      int64                  `json:"quotedTotal"`
	BonusAmount      int64                  `json:"bonusAmount"`
	Items            []submissionItemSchema `json:"items"`
}

type timelineStepSchema struct {
	Status     string `json:"status"`
	Label      string `json:"label"`
	IsComplete bool   `json:"isComplete"`
	IsCurrent  bool   `json:"isCurrent"`
}

type gradingResultsSchema struct {
	OriginalTotal  int64 `json:"originalTotal"`
	AdjustedTotal  int64 `json:"adjustedTotal"`
	AdjustedItems  int   `json:"adjustedItems"`
	HasAdjustments bool  `json:"hasAdjustments"`
}

type trackResponseSchema struct {
	Found          bool                   `json:"found"`
	Error          string                 `json:"error"`
	Submission     *submissionSchema      `json:"submission"`
	Timeline       []timelineStepSchema   `json:"timeline"`
	Items          []submissionItemSchema `json:"items"`
	GradingResults *gradingResultsSchema  `json:"gradingResults"`
}

type errorResponseSchema struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
