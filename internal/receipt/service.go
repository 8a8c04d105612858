package receipt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	ListReceipts(ctx context.Context, filter ListFilter) ([]*Receipt, error)
	CreateReceipt(ctx context.Context, r *Receipt) error
	PaymentOwner(ctx context.Context, paymentID uuid.UUID) (uuid.UUID, error)
}

// ListFilter narrows the receipts view. Search is a case-insensitive
// substring match OR-joined over owner name, owner email and receipt number.
// OwnerID is set by the service from the caller's scope.
type ListFilter struct {
	OwnerID *uuid.UUID
	Search  string
}

type Service struct {
	repo  Repository
	views *cache.Views
}

func NewService(repo Repository, views *cache.Views) *Service {
	return &Service{repo: repo, views: views}
}

// List returns receipts newest-first. Ownership is resolved through the
// related payment: non-admin callers only see receipts for their own payments.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Receipt, error) {
	if !caller.IsAdmin() {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	key := listKey(filter)
	if cached, ok := cache.Get[[]*Receipt](s.views, cache.KindReceipts, key); ok {
		return cached, nil
	}

	receipts, err := s.repo.ListReceipts(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindReceipts, key, receipts)

	return receipts, nil
}

// Generate issues exactly one receipt for the payment. Admin only. There is
// no idempotency key: a retry after an unknown-outcome failure can issue a
// second receipt for the same payment, each with its own number.
func (s *Service) Generate(ctx context.Context, issuer auth.Caller, paymentID uuid.UUID, amount int64) (*Receipt, error) {
	if !issuer.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	owner, err := s.repo.PaymentOwner(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	r := &Receipt{
		PaymentID: paymentID,
		OwnerID:   owner,
		Amount:    amount,
		Number:    nextNumber(),
		IssuerID:  issuer.ID,
	}

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.KindReceipts)

	return r, nil
}

func listKey(filter ListFilter) string {
	owner := ""
	if filter.OwnerID != nil {
		owner = filter.OwnerID.String()
	}

	return fmt.Sprintf("%s|%s", owner, filter.Search)
}
