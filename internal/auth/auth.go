package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role determines how queries are scoped for a caller.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
)

var (
	// ErrUnauthorized means no usable credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks privilege.
	ErrForbidden = errors.New("forbidden")
)

// Caller is the authenticated party a request runs on behalf of.
// Role and Active are always re-derived from the profile store, never
// taken from token claims.
type Caller struct {
	ID     uuid.UUID
	Email  string
	Role   Role
	Active bool
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Directory resolves a verified identity id to its current caller state.
// Implementations read through the elevated store credential.
//
//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=auth
type Directory interface {
	Lookup(ctx context.Context, id uuid.UUID) (Caller, error)
}

type ctxKey struct{}

// WithCaller returns a context carrying the caller.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CallerFromContext extracts the caller set by the auth middleware.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}
