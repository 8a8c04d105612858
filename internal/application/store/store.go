package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/application"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectApplicationColumns = `
	a.id, a.owner_id, a.estate_id, e.name, a.units, a.amount, a.status, a.created_at, a.updated_at
`

const applicationJoins = `
	FROM applications a
	JOIN estates e ON a.estate_id = e.id
`

func (s *Store) ListApplications(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + applicationJoins

	var (
		conditions []string
		args       []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("a.owner_id = $%d", len(args)))
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY a.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*application.Application

	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}

		apps = append(apps, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	return apps, nil
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + applicationJoins + ` WHERE a.id = $1`

	a, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrNotFound
		}

		return nil, err
	}

	return a, nil
}

func (s *Store) CreateApplication(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (owner_id, estate_id, units, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID, a.EstateID, a.Units, a.Amount, a.Status,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating application status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating application status: %w", err)
	}

	if affected == 0 {
		return application.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*application.Application, error) {
	var (
		a         application.Application
		updatedAt sql.NullTime
	)

	if err := row.Scan(
		&a.ID, &a.OwnerID, &a.EstateID, &a.EstateName,
		&a.Units, &a.Amount, &a.Status, &a.CreatedAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning application: %w", err)
	}

	if updatedAt.Valid {
		a.UpdatedAt = &updatedAt.Time
	}

	return &a, nil
}
