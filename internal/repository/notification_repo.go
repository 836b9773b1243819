package repository

import (
	"context"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// ListByUser returns the user's feed, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT notificationid, userid, orderid, message, is_read, created_at
		FROM notifications WHERE userid=$1 ORDER BY notificationid DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.OrderID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag. Repeated calls match the same row and
// succeed, so the operation is idempotent. Zero rows means the
// notification does not exist or belongs to someone else.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	tag, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read=TRUE WHERE notificationid=$1 AND userid=$2`,
		notificationID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read=TRUE WHERE userid=$1 AND is_read=FALSE`, userID)
	return err
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE userid=$1 AND is_read=FALSE`, userID).Scan(&n)
	return n, err
}
