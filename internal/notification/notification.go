package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

// Kind classifies a notification for the UI.
type Kind string

const (
	KindApplication Kind = "application"
	KindPayment     Kind = "payment"
	KindDocument    Kind = "document"
	KindGeneral     Kind = "general"
)

// Notification is owned by one profile. The read flag only ever moves
// false to true.
type Notification struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Kind      Kind
	Message   string
	Read      bool
	CreatedAt time.Time
}
