package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	ListNotifications(ctx context.Context, filter ListFilter) ([]*Notification, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*Notification, error)
	CreateNotification(ctx context.Context, n *Notification) error
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type ListFilter struct {
	OwnerID    *uuid.UUID
	Kind       Kind
	UnreadOnly bool
}

type Service struct {
	repo  Repository
	views *cache.Views
}

func NewService(repo Repository, views *cache.Views) *Service {
	return &Service{repo: repo, views: views}
}

// List returns notifications newest-first, scoped to the caller's own rows
// unless the caller is an admin.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Notification, error) {
	if !caller.IsAdmin() {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	key := listKey(filter)
	if cached, ok := cache.Get[[]*Notification](s.views, cache.KindNotifications, key); ok {
		return cached, nil
	}

	notifications, err := s.repo.ListNotifications(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindNotifications, key, notifications)

	return notifications, nil
}

// MarkRead flips one notification's read flag to true. The flag never
// reverses; marking an already-read notification is a no-op.
func (s *Service) MarkRead(ctx context.Context, caller auth.Caller, id uuid.UUID) error {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && n.OwnerID != caller.ID {
		return ErrNotFound
	}

	if n.Read {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}

	s.views.Invalidate(cache.KindNotifications)

	return nil
}

// MarkAllRead flips every unread notification owned by the caller. It is
// caller-bound for admins too: there is no administrative override path.
func (s *Service) MarkAllRead(ctx context.Context, caller auth.Caller) (int64, error) {
	affected, err := s.repo.MarkAllRead(ctx, caller.ID)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.views.Invalidate(cache.KindNotifications)
	}

	return affected, nil
}

// Notify records a new notification for the owner. Used by admin actions
// (application decisions, receipt issuance) to inform clients.
func (s *Service) Notify(ctx context.Context, ownerID uuid.UUID, kind Kind, message string) error {
	n := &Notification{
		OwnerID: ownerID,
		Kind:    kind,
		Message: message,
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return err
	}

	s.views.Invalidate(cache.KindNotifications)

	return nil
}

func listKey(filter ListFilter) string {
	owner := ""
	if filter.OwnerID != nil {
		owner = filter.OwnerID.String()
	}

	return fmt.Sprintf("%s|%s|%t", owner, filter.Kind, filter.UnreadOnly)
}
