package entity

// ContactDetails is how the backend reaches the shopper about a submission.
type ContactDetails struct {
	Email          string
	Phone          string
	ContactChannel string
}

// BankDetails carries normalized payout fields; digits only by the time it
// leaves the submission workflow.
type BankDetails struct {
	AccountHolder string
	SortCode      string
	AccountNumber string
}

// SubmissionRequest is the payload posted to create a submission. Bank is nil
// unless PayoutType is BANK.
type SubmissionRequest struct {
	Contact    ContactDetails
	PayoutType PayoutType
	Bank       *BankDetails
	Items      []CartItem
}

// CreatedSubmission is the backend's answer to a submission request.
type CreatedSubmission struct {
	Number      string
	Status      SubmissionStatus
	QuotedTotal int64
	BonusAmount int64
	Items       []SubmissionItem
}

// TrackResult is everything one tracking query returns. Found=false is
// terminal for the query; nothing else is populated then.
type TrackResult struct {
	Found      bool
	Error      string
	Submission Submission
	Timeline   []TimelineStep
	Items      []SubmissionItem
	Grading    *GradingSummary
}
