package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"instauto/internal/domain/entities"
	"instauto/internal/usecase/interfaces"
)

// NotificationPostgresSink inserts in-app notification rows.
type NotificationPostgresSink struct {
	pool *pgxpool.Pool
}

var _ interfaces.INotificationSink = (*NotificationPostgresSink)(nil)

func NewNotificationPostgresSink(pool *pgxpool.Pool) *NotificationPostgresSink {
	return &NotificationPostgresSink{pool: pool}
}

func (s *NotificationPostgresSink) Enqueue(ctx context.Context, n entities.Notification) error {
	const insertSQL = `
		INSERT INTO notifications (id, account_id, type, title, message, data, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)
	`

	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("repository: marshal notification data: %w", err)
	}

	if _, err := s.pool.Exec(ctx, insertSQL,
		n.ID, n.AccountID, string(n.Type), n.Title, n.Message, string(raw), n.Read, n.CreatedAt,
	); err != nil {
		return fmt.Errorf("repository: insert notification %s: %w", n.ID, err)
	}
	return nil
}
