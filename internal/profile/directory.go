package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
)

// Directory resolves identity ids to caller state for the auth middleware and
// the provisioning privilege check. It must be constructed over a repository
// backed by the elevated store credential: role and active state are always
// re-derived from storage, never from token claims.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) Lookup(ctx context.Context, id uuid.UUID) (auth.Caller, error) {
	p, err := d.repo.GetProfile(ctx, id)
	if err != nil {
		return auth.Caller{}, err
	}

	return auth.Caller{
		ID:     p.ID,
		Email:  p.Email,
		Role:   p.Role,
		Active: p.Active,
	}, nil
}
