package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := `
		SELECT id, owner_id, application_id, amount, status, method, created_at
		FROM payments
	`

	var (
		conditions []string
		args       []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	if filter.ApplicationID != nil {
		args = append(args, *filter.ApplicationID)
		conditions = append(conditions, fmt.Sprintf("application_id = $%d", len(args)))
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		var p payment.Payment

		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.ApplicationID, &p.Amount, &p.Status, &p.Method, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return payments, nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `
		SELECT id, owner_id, application_id, amount, status, method, created_at
		FROM payments
		WHERE id = $1
	`

	var p payment.Payment

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.ApplicationID, &p.Amount, &p.Status, &p.Method, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (owner_id, application_id, amount, status, method, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.ApplicationID, p.Amount, p.Status, p.Method,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status payment.Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	if affected == 0 {
		return payment.ErrNotFound
	}

	return nil
}

func (s *Store) ApplicationOwner(ctx context.Context, applicationID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := s.db.QueryRowContext(ctx,
		`SELECT owner_id FROM applications WHERE id = $1`, applicationID,
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, payment.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("getting application owner: %w", err)
	}

	return owner, nil
}
