package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"instauto/internal/domain/entities"
	"instauto/internal/usecase/interfaces"
)

const quoteRequestColumns = `id, workshop_id, motorist_account_id, motorist_name, motorist_email, motorist_phone,
	vehicle_id, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate,
	service_type, description, urgency, images, status,
	workshop_response, estimated_price, estimated_days, responded_at, created_at, updated_at`

// QuoteRequestSQLiteRepository is the single-node quote store. Status changes
// use UPDATE ... WHERE status = ? and inspect RowsAffected.
type QuoteRequestSQLiteRepository struct {
	db *sql.DB
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestSQLiteRepository)(nil)

func NewQuoteRequestSQLiteRepository(db *sql.DB) *QuoteRequestSQLiteRepository {
	return &QuoteRequestSQLiteRepository{db: db}
}

func (r *QuoteRequestSQLiteRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	images, err := json.Marshal(nonNilImages(q.Images))
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: marshal images: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quote_requests (`+quoteRequestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL, NULL, NULL, ?, ?)`,
		q.ID, q.WorkshopID, q.MotoristAccountID, q.Motorist.Name, q.Motorist.NormalizedEmail(), q.Motorist.Phone,
		q.Vehicle.VehicleID, q.Vehicle.Brand, q.Vehicle.Model, q.Vehicle.Year, q.Vehicle.Plate,
		string(q.ServiceType), q.Description, string(q.Urgency), string(images), string(q.Status),
		formatTime(q.CreatedAt), formatTime(q.UpdatedAt),
	)
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: insert quote request %s: %w", q.ID, err)
	}
	return q, nil
}

func (r *QuoteRequestSQLiteRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests WHERE id = ?`, id)
	q, err := scanQuoteRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.QuoteRequest{}, nil
	}
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: get quote request %s: %w", id, err)
	}
	return q, nil
}

func (r *QuoteRequestSQLiteRepository) ApplyStatusChange(ctx context.Context, id string, change entities.StatusChange) (entities.QuoteRequest, error) {
	var (
		res sql.Result
		err error
	)
	if resp := change.Response; resp != nil {
		res, err = r.db.ExecContext(ctx, `UPDATE quote_requests
			SET status = ?, updated_at = ?, workshop_response = ?, estimated_price = ?, estimated_days = ?, responded_at = ?
			WHERE id = ? AND status = ?`,
			string(change.To), formatTime(change.At),
			resp.Message, nullFloat(resp.EstimatedPrice), nullInt(resp.EstimatedDays), formatTime(resp.RespondedAt),
			id, string(change.From),
		)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE quote_requests SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			string(change.To), formatTime(change.At), id, string(change.From),
		)
	}
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: update quote request %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: update quote request %s: %w", id, err)
	}
	if n == 0 {
		return entities.QuoteRequest{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *QuoteRequestSQLiteRepository) ListByWorkshop(ctx context.Context, workshopID string, status entities.QuoteStatus) ([]entities.QuoteRequest, error) {
	return r.list(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests
		WHERE workshop_id = ? AND status = ? ORDER BY created_at DESC, id DESC`, workshopID, string(status))
}

// ListByMotoristEmail never matches rows stored without an email.
func (r *QuoteRequestSQLiteRepository) ListByMotoristEmail(ctx context.Context, email string) ([]entities.QuoteRequest, error) {
	if email == "" {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests
		WHERE motorist_email = ? ORDER BY created_at DESC, id DESC`, email)
}

func (r *QuoteRequestSQLiteRepository) ListByMotoristAccount(ctx context.Context, accountID string) ([]entities.QuoteRequest, error) {
	if accountID == "" {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+quoteRequestColumns+` FROM quote_requests
		WHERE motorist_account_id = ? ORDER BY created_at DESC, id DESC`, accountID)
}

func (r *QuoteRequestSQLiteRepository) list(ctx context.Context, query string, args ...any) ([]entities.QuoteRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: list quote requests: %w", err)
	}
	defer rows.Close()

	var out []entities.QuoteRequest
	for rows.Next() {
		q, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: scan quote request: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: list quote requests: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuoteRequest(s rowScanner) (entities.QuoteRequest, error) {
	var (
		q                     entities.QuoteRequest
		serviceType, urgency  string
		status, images        string
		createdAt, updatedAt  string
		response, respondedAt sql.NullString
		estimatedPrice        sql.NullFloat64
		estimatedDays         sql.NullInt64
	)
	err := s.Scan(
		&q.ID, &q.WorkshopID, &q.MotoristAccountID, &q.Motorist.Name, &q.Motorist.Email, &q.Motorist.Phone,
		&q.Vehicle.VehicleID, &q.Vehicle.Brand, &q.Vehicle.Model, &q.Vehicle.Year, &q.Vehicle.Plate,
		&serviceType, &q.Description, &urgency, &images, &status,
		&response, &estimatedPrice, &estimatedDays, &respondedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	q.ServiceType = entities.ServiceType(serviceType)
	q.Urgency = entities.Urgency(urgency)
	q.Status = entities.QuoteStatus(status)
	q.CreatedAt = parseTime(createdAt)
	q.UpdatedAt = parseTime(updatedAt)
	if err := json.Unmarshal([]byte(images), &q.Images); err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("decode images of %s: %w", q.ID, err)
	}
	if len(q.Images) == 0 {
		q.Images = nil
	}

	if respondedAt.Valid {
		q.Response = &entities.WorkshopResponse{
			Message:     response.String,
			RespondedAt: parseTime(respondedAt.String),
		}
		if estimatedPrice.Valid {
			p := estimatedPrice.Float64
			q.Response.EstimatedPrice = &p
		}
		if estimatedDays.Valid {
			d := int(estimatedDays.Int64)
			q.Response.EstimatedDays = &d
		}
	}
	return q, nil
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
