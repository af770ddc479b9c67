package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"instauto/internal/domain/entities"
	"instauto/internal/usecase/interfaces"
)

// WorkshopProfilePostgresRepository reads workshop profiles owned by the
// workshop management side. It never writes.
type WorkshopProfilePostgresRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IWorkshopProfileRepository = (*WorkshopProfilePostgresRepository)(nil)

func NewWorkshopProfilePostgresRepository(pool *pgxpool.Pool) *WorkshopProfilePostgresRepository {
	return &WorkshopProfilePostgresRepository{pool: pool}
}

func (r *WorkshopProfilePostgresRepository) GetByID(ctx context.Context, id string) (entities.WorkshopProfile, error) {
	const selectSQL = `
		SELECT id, owner_account_id, name, accepts_quotes, is_publicly_listed, plan_tier
		FROM workshops
		WHERE id = $1
	`

	var (
		w    entities.WorkshopProfile
		tier string
	)
	err := r.pool.QueryRow(ctx, selectSQL, id).Scan(
		&w.ID, &w.OwnerAccountID, &w.Name, &w.AcceptsQuotes, &w.IsPubliclyListed, &tier,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.WorkshopProfile{}, nil
		}
		return entities.WorkshopProfile{}, fmt.Errorf("repository: get workshop %s: %w", id, err)
	}
	w.PlanTier = entities.PlanTier(tier)
	return w, nil
}
