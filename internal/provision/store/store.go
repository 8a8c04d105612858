package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abba-Jere11/properties-sub001/internal/provision"
)

// Store writes login identities. It runs on the elevated database credential;
// the regular application credential cannot reach the identities table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateIdentity inserts a pre-confirmed identity with a bcrypt password
// hash. A duplicate email comes back as a *provision.CreateError so the
// caller can surface the message as a client error.
func (s *Store) CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hashing password: %w", err)
	}

	var id uuid.UUID

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO identities (email, password_hash, email_confirmed, created_at)
		VALUES ($1, $2, TRUE, NOW())
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, &provision.CreateError{Reason: fmt.Sprintf("email %s is already registered", email)}
		}

		return uuid.Nil, fmt.Errorf("creating identity: %w", err)
	}

	return id, nil
}

// isUniqueViolation matches the Postgres unique_violation SQLSTATE.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
