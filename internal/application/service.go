package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/notification"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=application
type Repository interface {
	ListApplications(ctx context.Context, filter ListFilter) ([]*Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*Application, error)
	CreateApplication(ctx context.Context, a *Application) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// Notifier informs an owner about a decision on their application.
type Notifier interface {
	Notify(ctx context.Context, ownerID uuid.UUID, kind notification.Kind, message string) error
}

type ListFilter struct {
	OwnerID *uuid.UUID
	Status  Status
}

type Service struct {
	repo     Repository
	notifier Notifier
	views    *cache.Views
}

func NewService(repo Repository, notifier Notifier, views *cache.Views) *Service {
	return &Service{repo: repo, notifier: notifier, views: views}
}

// List returns applications newest-first, scoped to the caller unless admin.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Application, error) {
	if !caller.IsAdmin() {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	key := listKey(filter)
	if cached, ok := cache.Get[[]*Application](s.views, cache.KindApplications, key); ok {
		return cached, nil
	}

	apps, err := s.repo.ListApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindApplications, key, apps)

	return apps, nil
}

// Get returns one application; non-admins only their own.
func (s *Service) Get(ctx context.Context, caller auth.Caller, id uuid.UUID) (*Application, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && app.OwnerID != caller.ID {
		return nil, ErrNotFound
	}

	return app, nil
}

type CreateParams struct {
	EstateID int64
	Units    int
	Amount   int64
}

// Create submits a new application owned by the caller, always pending.
func (s *Service) Create(ctx context.Context, caller auth.Caller, params CreateParams) (*Application, error) {
	if params.Units <= 0 {
		return nil, fmt.Errorf("%w: units must be positive", ErrValidation)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	app := &Application{
		OwnerID:  caller.ID,
		EstateID: params.EstateID,
		Units:    params.Units,
		Amount:   params.Amount,
		Status:   StatusPending,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.KindApplications)

	return app, nil
}

// UpdateStatus moves an application through review. Admin only: owners can
// never decide their own applications. The owner is notified of the decision;
// a notification failure does not undo the transition.
func (s *Service) UpdateStatus(ctx context.Context, caller auth.Caller, id uuid.UUID, status Status) error {
	if !caller.IsAdmin() {
		return auth.ErrForbidden
	}

	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.views.Invalidate(cache.KindApplications)

	message := fmt.Sprintf("Your application for %s has been %s", app.EstateName, status)
	if err := s.notifier.Notify(ctx, app.OwnerID, notification.KindApplication, message); err != nil {
		slog.Error("failed to notify applicant", "application", id, "error", err)
	}

	return nil
}

func listKey(filter ListFilter) string {
	owner := ""
	if filter.OwnerID != nil {
		owner = filter.OwnerID.String()
	}

	return fmt.Sprintf("%s|%s", owner, filter.Status)
}
