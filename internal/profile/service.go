package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=profile
type Repository interface {
	ListProfiles(ctx context.Context, filter ListFilter) ([]*Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*Profile, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpsertProfile(ctx context.Context, p *Profile) error
}

// ListFilter narrows the profiles view. Search is a case-insensitive
// substring match over name and email; fields AND-combine.
type ListFilter struct {
	Role   auth.Role
	Search string
}

type Service struct {
	repo  Repository
	views *cache.Views
}

func NewService(repo Repository, views *cache.Views) *Service {
	return &Service{repo: repo, views: views}
}

// List returns all profiles, newest first. Admin only: the query is never
// issued for any other caller.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Profile, error) {
	if !caller.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	key := fmt.Sprintf("%s|%s", filter.Role, filter.Search)
	if cached, ok := cache.Get[[]*Profile](s.views, cache.KindProfiles, key); ok {
		return cached, nil
	}

	profiles, err := s.repo.ListProfiles(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindProfiles, key, profiles)

	return profiles, nil
}

// Get returns one profile. Admins may read any profile; everyone else only
// their own.
func (s *Service) Get(ctx context.Context, caller auth.Caller, id uuid.UUID) (*Profile, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, auth.ErrForbidden
	}

	return s.repo.GetProfile(ctx, id)
}

// SetActive toggles a profile's active flag. Admin only. Already-issued
// sessions are not revoked here; the auth middleware re-reads the profile on
// every request, so the change applies from the next request.
func (s *Service) SetActive(ctx context.Context, caller auth.Caller, id uuid.UUID, active bool) error {
	if !caller.IsAdmin() {
		return auth.ErrForbidden
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.views.Invalidate(cache.KindProfiles)

	return nil
}
