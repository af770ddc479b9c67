package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"instauto/internal/domain/entities"
	"instauto/internal/infrastructure/database"
)

func newSQLiteRepo(t *testing.T) *QuoteRequestSQLiteRepository {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewQuoteRequestSQLiteRepository(db)
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func pendingQuote(id, workshopID, email string, createdAt time.Time) entities.QuoteRequest {
	return entities.QuoteRequest{
		ID:                id,
		WorkshopID:        workshopID,
		MotoristAccountID: "acc-1",
		Motorist:          entities.MotoristContact{Name: "Ana", Email: email, Phone: "11999990000"},
		Vehicle:           entities.Vehicle{Brand: "Fiat", Model: "Uno", Year: 2015, Plate: "ABC1D23"},
		ServiceType:       entities.ServiceTypeRepair,
		Description:       "barulho no freio",
		Urgency:           entities.UrgencyHigh,
		Images:            []string{"quote-requests/acc-1/a.png"},
		Status:            entities.QuoteStatusPending,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestQuoteRequestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	q := pendingQuote("q-1", "w-1", " Ana@Example.com ", baseTime)
	_, err := repo.Create(ctx, q)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Motorist.Email)
	assert.Equal(t, q.Vehicle, got.Vehicle)
	assert.Equal(t, q.Images, got.Images)
	assert.Equal(t, entities.QuoteStatusPending, got.Status)
	assert.Nil(t, got.Response)
	assert.True(t, got.CreatedAt.Equal(baseTime))

	_, err = repo.Create(ctx, q)
	assert.Error(t, err, "duplicate id must be rejected")

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestQuoteRequestSQLiteRepository_ApplyStatusChange(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, pendingQuote("q-1", "w-1", "ana@example.com", baseTime))
	require.NoError(t, err)

	price, days := 250.0, 2
	respondedAt := baseTime.Add(time.Hour)
	updated, err := repo.ApplyStatusChange(ctx, "q-1", entities.StatusChange{
		From: entities.QuoteStatusPending,
		To:   entities.QuoteStatusResponded,
		Response: &entities.WorkshopResponse{
			Message:        "troca de pastilhas",
			EstimatedPrice: &price,
			EstimatedDays:  &days,
			RespondedAt:    respondedAt,
		},
		At: respondedAt,
	})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusResponded, updated.Status)
	require.NotNil(t, updated.Response)
	assert.Equal(t, "troca de pastilhas", updated.Response.Message)
	assert.Equal(t, 250.0, *updated.Response.EstimatedPrice)
	assert.Equal(t, 2, *updated.Response.EstimatedDays)
	assert.True(t, updated.Response.RespondedAt.Equal(respondedAt))
	assert.True(t, updated.UpdatedAt.Equal(respondedAt))

	t.Run("stale from is a no-op", func(t *testing.T) {
		stale, err := repo.ApplyStatusChange(ctx, "q-1", entities.StatusChange{
			From: entities.QuoteStatusPending,
			To:   entities.QuoteStatusCancelled,
			At:   respondedAt.Add(time.Minute),
		})
		require.NoError(t, err)
		assert.Empty(t, stale.ID)

		got, err := repo.GetByID(ctx, "q-1")
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusResponded, got.Status)
		assert.True(t, got.UpdatedAt.Equal(respondedAt))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		got, err := repo.ApplyStatusChange(ctx, "nope", entities.StatusChange{
			From: entities.QuoteStatusPending,
			To:   entities.QuoteStatusCancelled,
			At:   respondedAt,
		})
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("resolve keeps the response", func(t *testing.T) {
		got, err := repo.ApplyStatusChange(ctx, "q-1", entities.StatusChange{
			From: entities.QuoteStatusResponded,
			To:   entities.QuoteStatusAccepted,
			At:   respondedAt.Add(2 * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusAccepted, got.Status)
		require.NotNil(t, got.Response)
		assert.Equal(t, "troca de pastilhas", got.Response.Message)
	})
}

func TestQuoteRequestSQLiteRepository_ConcurrentChangesHaveOneWinner(t *testing.T) {
	dir := t.TempDir()
	db, err := database.OpenSQLite(dir + "/quotes.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewQuoteRequestSQLiteRepository(db)
	ctx := context.Background()

	_, err = repo.Create(ctx, pendingQuote("q-1", "w-1", "ana@example.com", baseTime))
	require.NoError(t, err)

	var winners atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			change := entities.StatusChange{
				From: entities.QuoteStatusPending,
				To:   entities.QuoteStatusResponded,
				Response: &entities.WorkshopResponse{
					Message:     fmt.Sprintf("offer %d", i),
					RespondedAt: baseTime.Add(time.Duration(i+1) * time.Second),
				},
				At: baseTime.Add(time.Duration(i+1) * time.Second),
			}
			if i%2 == 1 {
				change.To = entities.QuoteStatusCancelled
				change.Response = nil
			}
			got, err := repo.ApplyStatusChange(ctx, "q-1", change)
			if err != nil {
				return err
			}
			if got.ID != "" {
				winners.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), winners.Load())

	got, err := repo.GetByID(ctx, "q-1")
	require.NoError(t, err)
	if got.Status == entities.QuoteStatusCancelled {
		assert.Nil(t, got.Response)
	} else {
		assert.Equal(t, entities.QuoteStatusResponded, got.Status)
		assert.NotNil(t, got.Response)
	}
}

func TestQuoteRequestSQLiteRepository_Lists(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for i, q := range []entities.QuoteRequest{
		pendingQuote("q-1", "w-1", "ana@example.com", baseTime),
		pendingQuote("q-2", "w-1", "bia@example.com", baseTime.Add(time.Minute)),
		pendingQuote("q-3", "w-2", "ana@example.com", baseTime.Add(2*time.Minute)),
		pendingQuote("q-4", "w-1", "ana@example.com", baseTime.Add(3*time.Minute)),
	} {
		_, err := repo.Create(ctx, q)
		require.NoError(t, err, "create %d", i)
	}
	_, err := repo.ApplyStatusChange(ctx, "q-4", entities.StatusChange{
		From: entities.QuoteStatusPending, To: entities.QuoteStatusCancelled, At: baseTime.Add(4 * time.Minute),
	})
	require.NoError(t, err)

	pending, err := repo.ListByWorkshop(ctx, "w-1", entities.QuoteStatusPending)
	require.NoError(t, err)
	assert.Equal(t, []string{"q-2", "q-1"}, ids(pending))

	history, err := repo.ListByMotoristEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"q-4", "q-3", "q-1"}, ids(history))

	none, err := repo.ListByMotoristEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuoteRequestSQLiteRepository_ListByMotoristAccount(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	noEmail := pendingQuote("q-1", "w-1", "", baseTime)
	noEmail.MotoristAccountID = "acc-7"
	other := pendingQuote("q-2", "w-1", "", baseTime.Add(time.Minute))
	other.MotoristAccountID = "acc-8"
	later := pendingQuote("q-3", "w-2", "", baseTime.Add(2*time.Minute))
	later.MotoristAccountID = "acc-7"
	for _, q := range []entities.QuoteRequest{noEmail, other, later} {
		_, err := repo.Create(ctx, q)
		require.NoError(t, err)
	}

	mine, err := repo.ListByMotoristAccount(ctx, "acc-7")
	require.NoError(t, err)
	assert.Equal(t, []string{"q-3", "q-1"}, ids(mine))

	byBlankEmail, err := repo.ListByMotoristEmail(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, byBlankEmail, "rows without email must not match each other")

	byBlankAccount, err := repo.ListByMotoristAccount(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, byBlankAccount)
}

func TestQuoteRequestSQLiteRepository_RejectsUnknownStatus(t *testing.T) {
	repo := newSQLiteRepo(t)
	q := pendingQuote("q-1", "w-1", "ana@example.com", baseTime)
	q.Status = "archived"
	_, err := repo.Create(context.Background(), q)
	assert.Error(t, err)
}

func ids(qs []entities.QuoteRequest) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
