package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectProfileColumns = `
	p.id, p.email, p.first_name, p.last_name, p.phone, p.address,
	p.role, p.is_active, p.created_at, p.updated_at
`

func scanProfile(s scanner) (*profile.Profile, error) {
	var p profile.Profile

	var roleStr string

	var phone, address sql.NullString

	if err := s.Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &phone, &address,
		&roleStr, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Role = auth.Role(roleStr)
	p.Phone = phone.String
	p.Address = address.String

	return &p, nil
}

func (s *Store) ListProfiles(ctx context.Context, filter profile.ListFilter) ([]*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles p`

	var (
		conditions []string
		args       []any
	)

	if filter.Role != "" {
		args = append(args, string(filter.Role))
		conditions = append(conditions, fmt.Sprintf("p.role = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.first_name ILIKE $%d OR p.last_name ILIKE $%d OR p.email ILIKE $%d)", n, n, n))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	return profiles, nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles p WHERE p.id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles p WHERE LOWER(p.email) = LOWER($1)`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile by email: %w", err)
	}

	return p, nil
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE profiles SET is_active = $2, updated_at = NOW() WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("updating profile status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating profile status: %w", err)
	}

	if affected == 0 {
		return profile.ErrNotFound
	}

	return nil
}

// UpsertProfile inserts the profile, overwriting an existing row with the same
// id. Retried provisioning calls land here: the overwrite heals a lost profile
// insert at the cost of resetting contact fields to the latest request.
func (s *Store) UpsertProfile(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, email, first_name, last_name, phone, address, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ID,
		p.Email,
		p.FirstName,
		p.LastName,
		nullString(p.Phone),
		nullString(p.Address),
		string(p.Role),
		p.Active,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
