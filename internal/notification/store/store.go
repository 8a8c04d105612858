package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectNotificationColumns = `n.id, n.owner_id, n.kind, n.message, n.is_read, n.created_at`

func (s *Store) ListNotifications(ctx context.Context, filter notification.ListFilter) ([]*notification.Notification, error) {
	query := `SELECT ` + selectNotificationColumns + ` FROM notifications n`

	var (
		conditions []string
		args       []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("n.owner_id = $%d", len(args)))
	}

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conditions = append(conditions, fmt.Sprintf("n.kind = $%d", len(args)))
	}

	if filter.UnreadOnly {
		conditions = append(conditions, "n.is_read = FALSE")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY n.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification

	for rows.Next() {
		var n notification.Notification

		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return notifications, nil
}

func (s *Store) GetNotification(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `SELECT ` + selectNotificationColumns + ` FROM notifications n WHERE n.id = $1`

	var n notification.Notification

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.OwnerID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notification.ErrNotFound
		}

		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return &n, nil
}

func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (owner_id, kind, message, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, n.OwnerID, string(n.Kind), n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

// MarkRead only ever sets the flag to TRUE; there is no reverse transition.
func (s *Store) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	if affected == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE owner_id = $1 AND is_read = FALSE`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("marking all notifications read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking all notifications read: %w", err)
	}

	return affected, nil
}
