package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("payment not found")
	ErrValidation = errors.New("invalid payment input")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment is money recorded against an application. Only completed payments
// count toward sales totals.
type Payment struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	ApplicationID uuid.UUID
	Amount        int64 // Amount in cents
	Status        Status
	Method        string
	CreatedAt     time.Time
}
