package entity

import "tradein/internal/domain/value"

// SubmissionStatus is a server-declared lifecycle stage. The client never
// derives progression itself; the canonical order below exists only to sanity
// check server data.
type SubmissionStatus string

const (
	StatusDraft           SubmissionStatus = "DRAFT"
	StatusSubmitted       SubmissionStatus = "SUBMITTED"
	StatusInTransit       SubmissionStatus = "IN_TRANSIT"
	StatusReceived        SubmissionStatus = "RECEIVED"
	StatusGrading         SubmissionStatus = "GRADING"
	StatusPendingApproval SubmissionStatus = "PENDING_APPROVAL"
	StatusApproved        SubmissionStatus = "APPROVED"
	StatusCompleted       SubmissionStatus = "COMPLETED"
	StatusCancelled       SubmissionStatus = "CANCELLED"
	StatusReturned        SubmissionStatus = "RETURNED"
)

// PayoutType selects how the shopper is paid out.
type PayoutType string

const (
	PayoutStoreCredit  PayoutType = "STORE_CREDIT"
	PayoutBankTransfer PayoutType = "BANK"
)

// Submission is a read-only projection of the backend-owned record.
type Submission struct {
	Number            string
	Status            SubmissionStatus
	StatusLabel       string
	StatusDescription string
	PayoutType        PayoutType
	QuotedTotal       int64
	FinalTotal        *int64
	BonusAmount       *int64
}

// SubmissionItem carries claimed versus graded values for one card.
type SubmissionItem struct {
	CardID           string
	Name             string
	SetLabel         string
	ClaimedCondition value.Condition
	ActualCondition  value.Condition
	Quantity         int
	QuotedPrice      int64
	FinalPrice       *int64
}

// DisplayPrice is the graded price when present, otherwise the quote.
func (i SubmissionItem) DisplayPrice() int64 {
	if i.FinalPrice != nil {
		return *i.FinalPrice
	}
	return i.QuotedPrice
}

// Adjusted reports whether grading changed this item's price.
func (i SubmissionItem) Adjusted() bool {
	return i.FinalPrice != nil && *i.FinalPrice != i.QuotedPrice
}

// TimelineStep is one server-declared snapshot entry; flags are authoritative
// and rebuilt on every tracking query.
type TimelineStep struct {
	Status     SubmissionStatus
	Label      string
	IsComplete bool
	IsCurrent  bool
}

// GradingSummary aggregates condition adjustments found on inspection.
type GradingSummary struct {
	OriginalTotal  int64
	AdjustedTotal  int64
	AdjustedItems  int
	HasAdjustments bool
}
