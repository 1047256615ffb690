package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gigmarket/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const notificationColumns = `id, user_id, type, title, message, action_url, action_text, icon, color, read_at, created_at`

type notificationRepository struct {
	db *sqlx.DB
}

func newNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const op = "repository.notification.Create"

	const query = `
	INSERT INTO notifications (` + notificationColumns + `)
	VALUES (:id, :user_id, :type, :title, :message, :action_url, :action_text, :icon, :color, :read_at, :created_at)
	`

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("%s: insert notification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int64, error) {
	const op = "repository.notification.ListByUserID"

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE user_id = ?`), userID); err != nil {
		return nil, 0, fmt.Errorf("%s: count notifications failed: %w", op, err)
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, r.db.Rebind(query), userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("%s: select notifications failed: %w", op, err)
	}

	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "repository.notification.CountUnread"

	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), userID); err != nil {
		return 0, fmt.Errorf("%s: count unread failed: %w", op, err)
	}
	return count, nil
}

// MarkRead sets read_at on the user's notification. Already-read items keep their first read time.
func (r *notificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID, readAt time.Time) error {
	const op = "repository.notification.MarkRead"

	var exists int
	existsQuery := `SELECT COUNT(*) FROM notifications WHERE id = ? AND user_id = ?`
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(existsQuery), id, userID); err != nil {
		return fmt.Errorf("%s: select notification failed: %w", op, err)
	}
	if exists == 0 {
		return domain.ErrNotFound
	}

	query := `UPDATE notifications SET read_at = ? WHERE id = ? AND user_id = ? AND read_at IS NULL`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), readAt, id, userID); err != nil {
		return fmt.Errorf("%s: update notification failed: %w", op, err)
	}

	return nil
}
