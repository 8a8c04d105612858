// Package provision creates client accounts on behalf of an administrator.
// It is the only write path for new profiles and deliberately holds two
// separate handles: a verify-only token verifier that can do nothing but
// check signatures, and a directory backed by the elevated database
// credential that re-reads the admin's own row. A token claim is never
// trusted for role.
package provision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("invalid provisioning input")

// CreateError wraps an identity-store rejection whose message is safe to
// return to the administrator, such as a duplicate email.
type CreateError struct {
	Reason string
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("creating identity: %s", e.Reason)
}

type Params struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type Result struct {
	UserID uuid.UUID
	Email  string
}
