package interfaces

import (
	"context"

	"instauto/internal/domain/entities"
)

//go:generate mockgen -source=quote_request_repository_interface.go -destination=mocks/quote_request_repository_mock.go -package=mock_interfaces

// IQuoteRequestRepository abstracts durable storage for QuoteRequest.
//
// Contract shared by every store:
//   - GetByID returns an empty QuoteRequest (ID == "") when the id is unknown.
//   - ApplyStatusChange writes only if the stored status still equals change.From,
//     and returns an empty QuoteRequest when that condition fails. Nothing is
//     written in that case.
//   - List* results are ordered newest-first by created_at.
type IQuoteRequestRepository interface {
	Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	ApplyStatusChange(ctx context.Context, id string, change entities.StatusChange) (entities.QuoteRequest, error)
	ListByWorkshop(ctx context.Context, workshopID string, status entities.QuoteStatus) ([]entities.QuoteRequest, error)
	ListByMotoristEmail(ctx context.Context, email string) ([]entities.QuoteRequest, error)
	ListByMotoristAccount(ctx context.Context, accountID string) ([]entities.QuoteRequest, error)
}
