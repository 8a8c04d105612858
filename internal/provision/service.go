package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=provision

// IdentityStore creates login identities. The duplicate-email rejection comes
// back as a *CreateError so its message can be surfaced verbatim.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error)
}

// ProfileUpserter writes the portal profile keyed by the identity id.
type ProfileUpserter interface {
	UpsertProfile(ctx context.Context, p *profile.Profile) error
}

type Service struct {
	verifier   auth.TokenVerifier
	directory  auth.Directory
	identities IdentityStore
	profiles   ProfileUpserter
}

func NewService(verifier auth.TokenVerifier, directory auth.Directory, identities IdentityStore, profiles ProfileUpserter) *Service {
	return &Service{
		verifier:   verifier,
		directory:  directory,
		identities: identities,
		profiles:   profiles,
	}
}

// CreateClient provisions a new client account. The bearer token is checked
// first with the verify-only handle; the caller's privilege is then re-read
// from the directory, so a stale or forged role claim buys nothing. The new
// profile is always role client and active, whatever the request asked for.
func (s *Service) CreateClient(ctx context.Context, token string, params Params) (*Result, error) {
	callerID, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	caller, err := s.directory.Lookup(ctx, callerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller has no profile", auth.ErrForbidden)
		}

		return nil, err
	}

	if !caller.IsAdmin() || !caller.Active {
		return nil, auth.ErrForbidden
	}

	if err := validate(params); err != nil {
		return nil, err
	}

	userID, err := s.identities.CreateIdentity(ctx, params.Email, params.Password)
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{
		ID:        userID,
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Address:   params.Address,
		Role:      auth.RoleClient,
		Active:    true,
	}

	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		// The identity exists but the profile write failed. A retry of the
		// same request reaches the upsert again through the duplicate-email
		// path only after manual cleanup, so log loudly.
		slog.Error("identity created without profile", "user_id", userID, "email", params.Email, "error", err)
		return nil, err
	}

	slog.Info("client provisioned", "user_id", userID, "admin", caller.ID)

	return &Result{UserID: userID, Email: params.Email}, nil
}

func validate(params Params) error {
	switch {
	case params.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case params.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case params.FirstName == "":
		return fmt.Errorf("%w: first name is required", ErrValidation)
	case params.LastName == "":
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}

	return nil
}
