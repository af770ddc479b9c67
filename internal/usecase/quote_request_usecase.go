package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instauto/internal/domain/entities"
	"instauto/internal/domain/quote"
	"instauto/internal/infrastructure/logger"
	"instauto/internal/usecase/interfaces"
)

// IQuoteRequestUseCase exposes the quote request lifecycle.
//
//   - Submit: motorist asks a workshop for a quote (pending)
//   - Respond: workshop owner replies with an offer (pending -> responded)
//   - Resolve: motorist accepts or rejects the offer (responded -> accepted|rejected)
//   - Cancel: motorist withdraws before any reply (pending -> cancelled)
type IQuoteRequestUseCase interface {
	Submit(ctx context.Context, actor entities.Actor, s quote.Submission) (entities.QuoteRequest, error)
	Respond(ctx context.Context, actor entities.Actor, id string, offer quote.Offer) (entities.QuoteRequest, error)
	Resolve(ctx context.Context, actor entities.Actor, id string, outcome entities.QuoteStatus) (entities.QuoteRequest, error)
	Cancel(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error)
	Get(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error)
	ListPendingForWorkshop(ctx context.Context, workshopID string) ([]entities.QuoteRequest, error)
	ListPendingForOwner(ctx context.Context, actor entities.Actor, workshopID string) ([]entities.QuoteRequest, error)
	ListHistoryForMotorist(ctx context.Context, actor entities.Actor) ([]entities.QuoteRequest, error)
}

type QuoteRequestUseCase struct {
	repo       interfaces.IQuoteRequestRepository
	workshops  interfaces.IWorkshopProfileRepository
	dispatcher *NotificationDispatcher
	log        *zap.Logger
	now        func() time.Time
}

var _ IQuoteRequestUseCase = (*QuoteRequestUseCase)(nil)

func NewQuoteRequestUseCase(
	repo interfaces.IQuoteRequestRepository,
	workshops interfaces.IWorkshopProfileRepository,
	dispatcher *NotificationDispatcher,
	log *zap.Logger,
) *QuoteRequestUseCase {
	return &QuoteRequestUseCase{
		repo:       repo,
		workshops:  workshops,
		dispatcher: dispatcher,
		log:        logger.OrNop(log),
		now:        time.Now,
	}
}

func (u *QuoteRequestUseCase) Submit(ctx context.Context, actor entities.Actor, s quote.Submission) (entities.QuoteRequest, error) {
	s = withSessionIdentity(s, actor)
	if res := quote.ValidateSubmission(s); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrInvalidQuoteRequest, res.Reason)
	}

	workshopID := strings.TrimSpace(s.WorkshopID)
	w, err := u.workshops.GetByID(ctx, workshopID)
	if err != nil {
		// Fail closed: an unreachable profile store means the workshop is treated as ineligible.
		u.log.Error("[quote][usecase] workshop lookup failed", zap.String("workshop_id", workshopID), zap.Error(err))
		return entities.QuoteRequest{}, fmt.Errorf("%w: workshop %s could not be resolved", ErrWorkshopNotEligible, workshopID)
	}
	if w.ID == "" {
		return entities.QuoteRequest{}, fmt.Errorf("%w: workshop %s does not exist", ErrInvalidQuoteRequest, workshopID)
	}
	if res := quote.CanReceiveQuotes(w); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrWorkshopNotEligible, res.Reason)
	}

	now := u.now().UTC()
	q := entities.QuoteRequest{
		ID:                uuid.NewString(),
		WorkshopID:        w.ID,
		MotoristAccountID: strings.TrimSpace(s.MotoristAccountID),
		Motorist: entities.MotoristContact{
			Name:  strings.TrimSpace(s.Motorist.Name),
			Email: s.Motorist.NormalizedEmail(),
			Phone: strings.TrimSpace(s.Motorist.Phone),
		},
		Vehicle:     s.Vehicle,
		ServiceType: s.ServiceType,
		Description: strings.TrimSpace(s.Description),
		Urgency:     s.Urgency,
		Images:      trimAll(s.Images),
		Status:      quote.InitialStatus(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	u.log.Info("[quote][usecase] submitted",
		zap.String("quote_request_id", created.ID),
		zap.String("workshop_id", created.WorkshopID),
		zap.String("service_type", string(created.ServiceType)),
		zap.String("urgency", string(created.Urgency)),
	)
	u.dispatcher.QuoteSubmitted(ctx, created, w)
	return created, nil
}

func (u *QuoteRequestUseCase) Respond(ctx context.Context, actor entities.Actor, id string, offer quote.Offer) (entities.QuoteRequest, error) {
	if res := quote.ValidateOffer(offer); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrInvalidQuoteRequest, res.Reason)
	}

	q, err := u.load(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	w, err := u.ownedWorkshop(ctx, actor, q.WorkshopID)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	if res := quote.CheckTransition(q.ID, q.Status, quote.EventRespond); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrInvalidTransition, res.Reason)
	}

	updated, err := u.commit(ctx, q, quote.PlanResponse(offer, q.CreatedAt, u.now()))
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	u.dispatcher.QuoteResponded(ctx, updated, w)
	return updated, nil
}

func (u *QuoteRequestUseCase) Resolve(ctx context.Context, actor entities.Actor, id string, outcome entities.QuoteStatus) (entities.QuoteRequest, error) {
	event, ok := quote.OutcomeEvent(outcome)
	if !ok {
		return entities.QuoteRequest{}, fmt.Errorf("%w: outcome %q must be accepted or rejected", ErrInvalidQuoteRequest, outcome)
	}

	updated, err := u.motoristTransition(ctx, actor, id, event)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	u.dispatcher.QuoteResolved(ctx, updated)
	return updated, nil
}

// Cancel emits no notification: the workshop has not invested any work yet.
func (u *QuoteRequestUseCase) Cancel(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error) {
	return u.motoristTransition(ctx, actor, id, quote.EventCancel)
}

// Get returns a request to either party: the requesting motorist or the owner
// of the target workshop.
func (u *QuoteRequestUseCase) Get(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if quote.CanActAsMotorist(q, actor).Allowed {
		return q, nil
	}
	if _, err := u.ownedWorkshop(ctx, actor, q.WorkshopID); err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (u *QuoteRequestUseCase) ListPendingForWorkshop(ctx context.Context, workshopID string) ([]entities.QuoteRequest, error) {
	workshopID = strings.TrimSpace(workshopID)
	if workshopID == "" {
		return nil, fmt.Errorf("%w: workshop_id is required", ErrInvalidQuoteRequest)
	}

	items, err := u.repo.ListByWorkshop(ctx, workshopID, entities.QuoteStatusPending)
	if err != nil {
		return nil, err
	}

	out := make([]entities.QuoteRequest, 0, len(items))
	for _, q := range items {
		if q.Status == entities.QuoteStatusPending {
			out = append(out, q)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (u *QuoteRequestUseCase) ListPendingForOwner(ctx context.Context, actor entities.Actor, workshopID string) ([]entities.QuoteRequest, error) {
	workshopID = strings.TrimSpace(workshopID)
	if workshopID == "" {
		return nil, fmt.Errorf("%w: workshop_id is required", ErrInvalidQuoteRequest)
	}
	if _, err := u.ownedWorkshop(ctx, actor, workshopID); err != nil {
		return nil, err
	}
	return u.ListPendingForWorkshop(ctx, workshopID)
}

// ListHistoryForMotorist returns the requests actor may act on as the
// motorist: everything recorded under the session account plus requests
// matched by contact email that carry no other account.
func (u *QuoteRequestUseCase) ListHistoryForMotorist(ctx context.Context, actor entities.Actor) ([]entities.QuoteRequest, error) {
	accountID := strings.TrimSpace(actor.AccountID)
	email := actor.Contact().NormalizedEmail()
	if accountID == "" && email == "" {
		return nil, fmt.Errorf("%w: motorist session is required", ErrInvalidQuoteRequest)
	}

	out := make([]entities.QuoteRequest, 0)
	seen := make(map[string]struct{})
	merge := func(items []entities.QuoteRequest) {
		for _, q := range items {
			if _, dup := seen[q.ID]; dup {
				continue
			}
			if !quote.CanActAsMotorist(q, actor).Allowed {
				continue
			}
			seen[q.ID] = struct{}{}
			out = append(out, q)
		}
	}

	if accountID != "" {
		items, err := u.repo.ListByMotoristAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		merge(items)
	}
	if email != "" {
		items, err := u.repo.ListByMotoristEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		merge(items)
	}

	sortNewestFirst(out)
	return out, nil
}

func (u *QuoteRequestUseCase) motoristTransition(ctx context.Context, actor entities.Actor, id string, event quote.Event) (entities.QuoteRequest, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if res := quote.CanActAsMotorist(q, actor); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrNotAuthorized, res.Reason)
	}
	if res := quote.CheckTransition(q.ID, q.Status, event); !res.Allowed {
		return entities.QuoteRequest{}, fmt.Errorf("%w: %s", ErrInvalidTransition, res.Reason)
	}
	return u.commit(ctx, q, quote.PlanStatusChange(event, u.now()))
}

// commit performs the conditional write. An empty result means another writer
// moved the request first.
func (u *QuoteRequestUseCase) commit(ctx context.Context, q entities.QuoteRequest, change entities.StatusChange) (entities.QuoteRequest, error) {
	updated, err := u.repo.ApplyStatusChange(ctx, q.ID, change)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		u.log.Info("[quote][usecase] transition lost race",
			zap.String("quote_request_id", q.ID),
			zap.String("from", string(change.From)),
			zap.String("to", string(change.To)),
		)
		return entities.QuoteRequest{}, fmt.Errorf("%w: quote request %s is no longer %s", ErrInvalidTransition, q.ID, change.From)
	}

	u.log.Info("[quote][usecase] transitioned",
		zap.String("quote_request_id", updated.ID),
		zap.String("workshop_id", updated.WorkshopID),
		zap.String("from", string(change.From)),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (u *QuoteRequestUseCase) load(ctx context.Context, id string) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, fmt.Errorf("%w: id is required", ErrInvalidQuoteRequest)
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteRequestNotFound
	}
	return q, nil
}

// ownedWorkshop resolves the workshop and checks that actor owns it. An
// unresolvable workshop denies access.
func (u *QuoteRequestUseCase) ownedWorkshop(ctx context.Context, actor entities.Actor, workshopID string) (entities.WorkshopProfile, error) {
	w, err := u.workshops.GetByID(ctx, workshopID)
	if err != nil {
		u.log.Error("[quote][usecase] workshop lookup failed", zap.String("workshop_id", workshopID), zap.Error(err))
		return entities.WorkshopProfile{}, fmt.Errorf("%w: workshop %s could not be resolved", ErrNotAuthorized, workshopID)
	}
	if w.ID == "" {
		return entities.WorkshopProfile{}, fmt.Errorf("%w: workshop %s does not exist", ErrNotAuthorized, workshopID)
	}
	if res := quote.CanActAsWorkshop(w, actor); !res.Allowed {
		return entities.WorkshopProfile{}, fmt.Errorf("%w: %s", ErrNotAuthorized, res.Reason)
	}
	return w, nil
}

// withSessionIdentity fills the motorist identity from the session. Contact
// fields typed in the form win over the session profile.
func withSessionIdentity(s quote.Submission, actor entities.Actor) quote.Submission {
	if id := strings.TrimSpace(actor.AccountID); id != "" {
		s.MotoristAccountID = id
	}
	session := actor.Contact()
	if strings.TrimSpace(s.Motorist.Name) == "" {
		s.Motorist.Name = session.Name
	}
	if s.Motorist.NormalizedEmail() == "" {
		s.Motorist.Email = session.Email
	}
	if strings.TrimSpace(s.Motorist.Phone) == "" {
		s.Motorist.Phone = session.Phone
	}
	return s
}

func sortNewestFirst(items []entities.QuoteRequest) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
