package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("application not found")
	ErrValidation = errors.New("invalid application input")
)

// Status is the review state of a purchase application. Transitions are
// admin-driven; an owner can never approve their own application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application is a client's request to purchase units in an estate.
type Application struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	EstateID   int64
	EstateName string
	Units      int
	Amount     int64 // Amount in cents
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
