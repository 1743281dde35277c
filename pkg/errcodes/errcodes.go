package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Catalog
	RequestSuperseded  failure.ErrorCode = "RequestSuperseded"
	BackendUnavailable failure.ErrorCode = "BackendUnavailable"

	// Cart
	InvalidCondition  failure.ErrorCode = "InvalidCondition"
	InvalidQuantity   failure.ErrorCode = "InvalidQuantity"
	InvalidCartIndex  failure.ErrorCode = "InvalidCartIndex"
	CartBelowMinimum  failure.ErrorCode = "CartBelowMinimum"
	CartOverItemLimit failure.ErrorCode = "CartOverItemLimit"
	MissingSession    failure.ErrorCode = "MissingSession"

	// Submission
	MissingEmail          failure.ErrorCode = "MissingEmail"
	MissingPhone          failure.ErrorCode = "MissingPhone"
	MissingContactChannel failure.ErrorCode = "MissingContactChannel"
	MissingAccountHolder  failure.ErrorCode = "MissingAccountHolder"
	InvalidSortCode       failure.ErrorCode = "InvalidSortCode"
	InvalidAccountNumber  failure.ErrorCode = "InvalidAccountNumber"
	InvalidPayoutType     failure.ErrorCode = "InvalidPayoutType"
	SubmissionRejected    failure.ErrorCode = "SubmissionRejected"

	// Tracking
	SubmissionNotFound failure.ErrorCode = "SubmissionNotFound"
)
