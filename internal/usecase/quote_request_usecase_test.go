package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"instauto/internal/domain/entities"
	"instauto/internal/domain/quote"
	mock_interfaces "instauto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func validSubmission() quote.Submission {
	return quote.Submission{
		WorkshopID:  "w-1",
		Motorist:    entities.MotoristContact{Name: "Ana", Email: "Ana@Example.com"},
		ServiceType: entities.ServiceTypeRepair,
		Description: "Barulho no freio",
		Urgency:     entities.UrgencyHigh,
	}
}

func newMockedUseCase(t *testing.T) (*QuoteRequestUseCase, *mock_interfaces.MockIQuoteRequestRepository, *mock_interfaces.MockIWorkshopProfileRepository, *mock_interfaces.MockINotificationSink) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIQuoteRequestRepository(ctrl)
	workshops := mock_interfaces.NewMockIWorkshopProfileRepository(ctrl)
	sink := mock_interfaces.NewMockINotificationSink(ctrl)
	uc := NewQuoteRequestUseCase(repo, workshops, NewNotificationDispatcher(sink, workshops, nil, time.Second), nil)
	return uc, repo, workshops, sink
}

func TestQuoteRequestUseCase_Submit(t *testing.T) {
	t.Run("missing description", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		s := validSubmission()
		s.Description = " "
		_, err := uc.Submit(context.Background(), motorist, s)
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("anonymous motorist", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.Submit(context.Background(), entities.Actor{}, validSubmission())
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("unknown workshop", func(t *testing.T) {
		uc, _, workshops, _ := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(entities.WorkshopProfile{}, nil)

		_, err := uc.Submit(context.Background(), motorist, validSubmission())
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("workshop lookup error fails closed", func(t *testing.T) {
		uc, _, workshops, _ := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(entities.WorkshopProfile{}, errors.New("db"))

		_, err := uc.Submit(context.Background(), motorist, validSubmission())
		if !errors.Is(err, ErrWorkshopNotEligible) {
			t.Fatalf("expected ErrWorkshopNotEligible, got %v", err)
		}
	})

	t.Run("workshop not accepting quotes", func(t *testing.T) {
		uc, _, workshops, _ := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(entities.WorkshopProfile{ID: "w-1", IsPubliclyListed: true}, nil)

		_, err := uc.Submit(context.Background(), motorist, validSubmission())
		if !errors.Is(err, ErrWorkshopNotEligible) {
			t.Fatalf("expected ErrWorkshopNotEligible, got %v", err)
		}
	})

	t.Run("repo create error", func(t *testing.T) {
		uc, repo, workshops, _ := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.QuoteRequest{}, errors.New("db"))

		_, err := uc.Submit(context.Background(), motorist, validSubmission())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("create success on free tier", func(t *testing.T) {
		uc, repo, workshops, sink := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.QuoteRequest{})).DoAndReturn(
			func(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
				if q.ID == "" || q.Status != entities.QuoteStatusPending || q.Response != nil {
					t.Fatalf("unexpected quote request: %+v", q)
				}
				if q.Motorist.Email != "ana@example.com" {
					t.Fatalf("email must be normalized, got %q", q.Motorist.Email)
				}
				if q.MotoristAccountID != "acc-1" {
					t.Fatalf("session account not recorded: %+v", q)
				}
				if q.CreatedAt.IsZero() || !q.CreatedAt.Equal(q.UpdatedAt) {
					t.Fatalf("unexpected timestamps: %+v", q)
				}
				return q, nil
			},
		)
		sink.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.AccountID != "owner-1" || n.Type != entities.NotificationQuoteRequested {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return nil
		})

		got, err := uc.Submit(context.Background(), motorist, validSubmission())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.WorkshopID != "w-1" {
			t.Fatalf("unexpected workshop id: %s", got.WorkshopID)
		}
	})
}

func TestQuoteRequestUseCase_Respond(t *testing.T) {
	pending := entities.QuoteRequest{ID: "q-1", WorkshopID: "w-1", MotoristAccountID: "acc-1", Status: entities.QuoteStatusPending, CreatedAt: time.Now().Add(-time.Hour)}

	t.Run("blank message", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: " "})
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		neg := -10.0
		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok", EstimatedPrice: &neg})
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{}, nil)

		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok"})
		if !errors.Is(err, ErrQuoteRequestNotFound) {
			t.Fatalf("expected ErrQuoteRequestNotFound, got %v", err)
		}
	})

	t.Run("workshop unresolvable denies", func(t *testing.T) {
		uc, repo, workshops, _ := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(entities.WorkshopProfile{}, errors.New("db"))

		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok"})
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("already responded", func(t *testing.T) {
		uc, repo, workshops, _ := newMockedUseCase(t)
		responded := pending
		responded.Status = entities.QuoteStatusResponded
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(responded, nil)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)

		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("conditional write lost", func(t *testing.T) {
		uc, repo, workshops, _ := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)
		repo.EXPECT().ApplyStatusChange(gomock.Any(), "q-1", gomock.Any()).Return(entities.QuoteRequest{}, nil)

		_, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("success writes the planned change and notifies the motorist", func(t *testing.T) {
		uc, repo, workshops, sink := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)
		repo.EXPECT().ApplyStatusChange(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, change entities.StatusChange) (entities.QuoteRequest, error) {
				if change.From != entities.QuoteStatusPending || change.To != entities.QuoteStatusResponded {
					t.Fatalf("unexpected edge: %s -> %s", change.From, change.To)
				}
				if change.Response == nil || change.Response.Message != "ok" || change.Response.RespondedAt.Before(pending.CreatedAt) {
					t.Fatalf("unexpected response: %+v", change.Response)
				}
				return quote.Apply(pending, change), nil
			},
		)
		sink.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.AccountID != "acc-1" || n.Type != entities.NotificationQuoteResponded {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return nil
		}).Times(1)

		got, err := uc.Respond(context.Background(), owner, "q-1", quote.Offer{Message: "ok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusResponded {
			t.Fatalf("expected responded, got %s", got.Status)
		}
	})
}

func TestQuoteRequestUseCase_Resolve(t *testing.T) {
	responded := entities.QuoteRequest{ID: "q-1", WorkshopID: "w-1", MotoristAccountID: "acc-1", Status: entities.QuoteStatusResponded}

	t.Run("invalid outcome", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.Resolve(context.Background(), motorist, "q-1", entities.QuoteStatusCancelled)
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.Resolve(context.Background(), motorist, "  ", entities.QuoteStatusAccepted)
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("other motorist", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(responded, nil)

		_, err := uc.Resolve(context.Background(), entities.Actor{AccountID: "acc-2"}, "q-1", entities.QuoteStatusAccepted)
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{}, errors.New("db"))

		_, err := uc.Resolve(context.Background(), motorist, "q-1", entities.QuoteStatusAccepted)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("rejected notifies owner", func(t *testing.T) {
		uc, repo, workshops, sink := newMockedUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(responded, nil)
		repo.EXPECT().ApplyStatusChange(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, change entities.StatusChange) (entities.QuoteRequest, error) {
				return quote.Apply(responded, change), nil
			},
		)
		workshops.EXPECT().GetByID(gomock.Any(), "w-1").Return(workshopW, nil)
		sink.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.Type != entities.NotificationQuoteRejected || n.AccountID != "owner-1" {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return nil
		})

		got, err := uc.Resolve(context.Background(), motorist, "q-1", entities.QuoteStatusRejected)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusRejected {
			t.Fatalf("expected rejected, got %s", got.Status)
		}
	})
}

func TestQuoteRequestUseCase_Listing(t *testing.T) {
	t.Run("pending requires workshop id", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.ListPendingForWorkshop(context.Background(), " ")
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("pending filters stale rows and sorts newest first", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().ListByWorkshop(gomock.Any(), "w-1", entities.QuoteStatusPending).Return([]entities.QuoteRequest{
			{ID: "old", Status: entities.QuoteStatusPending, CreatedAt: base},
			{ID: "stale", Status: entities.QuoteStatusResponded, CreatedAt: base.Add(time.Hour)},
			{ID: "new", Status: entities.QuoteStatusPending, CreatedAt: base.Add(2 * time.Hour)},
		}, nil)

		got, err := uc.ListPendingForWorkshop(context.Background(), "w-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
			t.Fatalf("unexpected list: %+v", got)
		}
	})

	t.Run("history requires an identity", func(t *testing.T) {
		uc := NewQuoteRequestUseCase(nil, nil, nil, nil)
		_, err := uc.ListHistoryForMotorist(context.Background(), entities.Actor{Name: "Ana"})
		if !errors.Is(err, ErrInvalidQuoteRequest) {
			t.Fatalf("expected ErrInvalidQuoteRequest, got %v", err)
		}
	})

	t.Run("history for an account without email", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		repo.EXPECT().ListByMotoristAccount(gomock.Any(), "acc-7").Return([]entities.QuoteRequest{
			{ID: "q-1", MotoristAccountID: "acc-7", Status: entities.QuoteStatusCancelled},
		}, nil)

		got, err := uc.ListHistoryForMotorist(context.Background(), entities.Actor{AccountID: " acc-7 "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "q-1" {
			t.Fatalf("unexpected list: %+v", got)
		}
	})

	t.Run("history merges account and email matches", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		mine := entities.QuoteRequest{ID: "mine", MotoristAccountID: "acc-1", Motorist: entities.MotoristContact{Email: "ana@example.com"}, CreatedAt: base.Add(time.Hour)}
		legacy := entities.QuoteRequest{ID: "legacy", Motorist: entities.MotoristContact{Email: "ana@example.com"}, CreatedAt: base.Add(2 * time.Hour)}
		foreign := entities.QuoteRequest{ID: "foreign", MotoristAccountID: "acc-2", Motorist: entities.MotoristContact{Email: "ana@example.com"}, CreatedAt: base}

		repo.EXPECT().ListByMotoristAccount(gomock.Any(), "acc-1").Return([]entities.QuoteRequest{mine}, nil)
		repo.EXPECT().ListByMotoristEmail(gomock.Any(), "ana@example.com").Return([]entities.QuoteRequest{mine, legacy, foreign}, nil)

		got, err := uc.ListHistoryForMotorist(context.Background(), entities.Actor{AccountID: "acc-1", Email: " Ana@Example.COM "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "legacy" || got[1].ID != "mine" {
			t.Fatalf("unexpected list: %+v", got)
		}
	})

	t.Run("history account lookup error", func(t *testing.T) {
		uc, repo, _, _ := newMockedUseCase(t)
		repo.EXPECT().ListByMotoristAccount(gomock.Any(), "acc-1").Return(nil, errors.New("db"))

		if _, err := uc.ListHistoryForMotorist(context.Background(), motorist); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("owner listing on unknown workshop", func(t *testing.T) {
		uc, _, workshops, _ := newMockedUseCase(t)
		workshops.EXPECT().GetByID(gomock.Any(), "w-9").Return(entities.WorkshopProfile{}, nil)

		_, err := uc.ListPendingForOwner(context.Background(), owner, "w-9")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}
