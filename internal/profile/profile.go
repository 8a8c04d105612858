package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrValidation = errors.New("invalid profile input")
)

// Profile is the portal-facing record of an identity. Role is immutable
// outside admin action; an inactive profile loses all access.
type Profile struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Role      auth.Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}

	if p.LastName == "" {
		return p.FirstName
	}

	return p.FirstName + " " + p.LastName
}
