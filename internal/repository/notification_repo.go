package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"flechazo/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string, readAt time.Time) error
}

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Create(ctx context.Context, notification domain.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, kind, body, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var readAt interface{}
	if notification.ReadAt != nil {
		readAt = *notification.ReadAt
	}
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Kind,
		notification.Body,
		readAt,
		notification.CreatedAt,
	)
	return err
}

func (r *PgNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, kind, body, read_at, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Kind,
			&n.Body,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, userID string, readAt time.Time) error {
	const query = `
		UPDATE notifications
		SET read_at = $3
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id, userID, readAt)
	return err
}
