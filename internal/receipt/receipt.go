package receipt

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("receipt not found")
	ErrValidation = errors.New("invalid receipt input")
)

// Receipt records an admin-issued acknowledgement of a payment. Numbers are
// unique and never reused; OwnerName/OwnerEmail are joined from the paying
// profile for the admin view.
type Receipt struct {
	ID         uuid.UUID
	PaymentID  uuid.UUID
	OwnerID    uuid.UUID
	OwnerName  string
	OwnerEmail string
	Amount     int64
	Number     string
	IssuerID   uuid.UUID
	CreatedAt  time.Time
}
