package usecase

import "errors"

// Caller-visible failures of the quote request lifecycle. Use cases wrap them
// with detail via fmt.Errorf("%w: ..."), so match with errors.Is.
var (
	ErrInvalidQuoteRequest  = errors.New("invalid quote request")
	ErrInvalidTransition    = errors.New("invalid quote request transition")
	ErrNotAuthorized        = errors.New("not authorized for this quote request")
	ErrWorkshopNotEligible  = errors.New("workshop is not accepting quote requests")
	ErrQuoteRequestNotFound = errors.New("quote request not found")

	ErrInvalidAttachment = errors.New("invalid attachment")
	ErrStorageDisabled   = errors.New("attachment storage is not configured")
)
