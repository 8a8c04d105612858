package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	CreatePayment(ctx context.Context, p *Payment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	ApplicationOwner(ctx context.Context, applicationID uuid.UUID) (uuid.UUID, error)
}

type ListFilter struct {
	OwnerID       *uuid.UUID
	ApplicationID *uuid.UUID
	Status        Status
}

type Service struct {
	repo  Repository
	views *cache.Views
}

func NewService(repo Repository, views *cache.Views) *Service {
	return &Service{repo: repo, views: views}
}

// List returns payments newest-first, scoped to the caller unless admin.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Payment, error) {
	if !caller.IsAdmin() {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	key := listKey(filter)
	if cached, ok := cache.Get[[]*Payment](s.views, cache.KindPayments, key); ok {
		return cached, nil
	}

	payments, err := s.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindPayments, key, payments)

	return payments, nil
}

type CreateParams struct {
	ApplicationID uuid.UUID
	Amount        int64
	Method        string
}

// Create records a pending payment by the caller against their own
// application. Admins may record payments against any application, in which
// case the payment is owned by the applicant.
func (s *Service) Create(ctx context.Context, caller auth.Caller, params CreateParams) (*Payment, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if params.Method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrValidation)
	}

	owner, err := s.repo.ApplicationOwner(ctx, params.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && owner != caller.ID {
		return nil, ErrNotFound
	}

	p := &Payment{
		OwnerID:       owner,
		ApplicationID: params.ApplicationID,
		Amount:        params.Amount,
		Status:        StatusPending,
		Method:        params.Method,
	}

	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.KindPayments)

	return p, nil
}

// UpdateStatus marks a payment completed or failed. Admin only. A completed
// payment is already counted into sales totals and can never leave that
// status.
func (s *Service) UpdateStatus(ctx context.Context, caller auth.Caller, id uuid.UUID, status Status) error {
	if !caller.IsAdmin() {
		return auth.ErrForbidden
	}

	switch status {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	current, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == StatusCompleted && status != StatusCompleted {
		return fmt.Errorf("%w: completed payments are immutable", ErrValidation)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.views.Invalidate(cache.KindPayments)

	return nil
}

func listKey(filter ListFilter) string {
	owner := ""
	if filter.OwnerID != nil {
		owner = filter.OwnerID.String()
	}

	app := ""
	if filter.ApplicationID != nil {
		app = filter.ApplicationID.String()
	}

	return fmt.Sprintf("%s|%s|%s", owner, app, filter.Status)
}
