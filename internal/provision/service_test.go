package provision_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
	"github.com/Abba-Jere11/properties-sub001/internal/provision"
)

func validParams() provision.Params {
	return provision.Params{
		Email:     "new.client@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "+2348000000000",
	}
}

func TestService_CreateClient_BadTokenStopsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := auth.NewMockTokenVerifier(ctrl)
	verifier.EXPECT().
		Verify(gomock.Any(), "expired-token").
		Return(uuid.Nil, auth.ErrUnauthorized)

	// No directory, identity, or profile expectations: an unverifiable token
	// must short-circuit before anything else runs.
	svc := provision.NewService(
		verifier,
		auth.NewMockDirectory(ctrl),
		provision.NewMockIdentityStore(ctrl),
		provision.NewMockProfileUpserter(ctrl),
	)

	_, err := svc.CreateClient(context.Background(), "expired-token", validParams())
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_CreateClient_PrivilegeComesFromDirectoryNotToken(t *testing.T) {
	type testCase struct {
		name   string
		caller auth.Caller
		found  bool
	}

	tests := []testCase{
		{name: "ClientCaller", caller: auth.Caller{Role: auth.RoleClient, Active: true}, found: true},
		{name: "AgentCaller", caller: auth.Caller{Role: auth.RoleAgent, Active: true}, found: true},
		{name: "DeactivatedAdmin", caller: auth.Caller{Role: auth.RoleAdmin, Active: false}, found: true},
		{name: "NoProfileRow", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			callerID := uuid.New()

			verifier := auth.NewMockTokenVerifier(ctrl)
			verifier.EXPECT().
				Verify(gomock.Any(), gomock.Any()).
				Return(callerID, nil)

			directory := auth.NewMockDirectory(ctrl)
			if tt.found {
				caller := tt.caller
				caller.ID = callerID
				directory.EXPECT().
					Lookup(gomock.Any(), callerID).
					Return(caller, nil)
			} else {
				directory.EXPECT().
					Lookup(gomock.Any(), callerID).
					Return(auth.Caller{}, profile.ErrNotFound)
			}

			// No identity or profile expectations: a token whose profile row
			// is not an active admin buys nothing, whatever its claims say.
			svc := provision.NewService(
				verifier,
				directory,
				provision.NewMockIdentityStore(ctrl),
				provision.NewMockProfileUpserter(ctrl),
			)

			_, err := svc.CreateClient(context.Background(), "some-token", validParams())
			assert.ErrorIs(t, err, auth.ErrForbidden)
		})
	}
}

func TestService_CreateClient_ValidatesBeforeIdentityCreation(t *testing.T) {
	type testCase struct {
		name   string
		mutate func(*provision.Params)
	}

	tests := []testCase{
		{name: "MissingEmail", mutate: func(p *provision.Params) { p.Email = "" }},
		{name: "MissingPassword", mutate: func(p *provision.Params) { p.Password = "" }},
		{name: "MissingFirstName", mutate: func(p *provision.Params) { p.FirstName = "" }},
		{name: "MissingLastName", mutate: func(p *provision.Params) { p.LastName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			adminID := uuid.New()

			verifier := auth.NewMockTokenVerifier(ctrl)
			verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(adminID, nil)

			directory := auth.NewMockDirectory(ctrl)
			directory.EXPECT().
				Lookup(gomock.Any(), adminID).
				Return(auth.Caller{ID: adminID, Role: auth.RoleAdmin, Active: true}, nil)

			svc := provision.NewService(
				verifier,
				directory,
				provision.NewMockIdentityStore(ctrl),
				provision.NewMockProfileUpserter(ctrl),
			)

			params := validParams()
			tt.mutate(&params)

			_, err := svc.CreateClient(context.Background(), "admin-token", params)
			assert.ErrorIs(t, err, provision.ErrValidation)
		})
	}
}

func TestService_CreateClient_NewProfileIsAlwaysActiveClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminID := uuid.New()
	newID := uuid.New()

	verifier := auth.NewMockTokenVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), "admin-token").Return(adminID, nil)

	directory := auth.NewMockDirectory(ctrl)
	directory.EXPECT().
		Lookup(gomock.Any(), adminID).
		Return(auth.Caller{ID: adminID, Role: auth.RoleAdmin, Active: true}, nil)

	identities := provision.NewMockIdentityStore(ctrl)
	identities.EXPECT().
		CreateIdentity(gomock.Any(), "new.client@example.com", "s3cret-pass").
		Return(newID, nil)

	profiles := provision.NewMockProfileUpserter(ctrl)
	profiles.EXPECT().
		UpsertProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Equal(t, newID, p.ID)
			assert.Equal(t, auth.RoleClient, p.Role)
			assert.True(t, p.Active)
			return nil
		})

	svc := provision.NewService(verifier, directory, identities, profiles)

	result, err := svc.CreateClient(context.Background(), "admin-token", validParams())
	require.NoError(t, err)
	assert.Equal(t, newID, result.UserID)
	assert.Equal(t, "new.client@example.com", result.Email)
}

func TestService_CreateClient_DuplicateEmailSurfacesStoreMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminID := uuid.New()

	verifier := auth.NewMockTokenVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(adminID, nil)

	directory := auth.NewMockDirectory(ctrl)
	directory.EXPECT().
		Lookup(gomock.Any(), adminID).
		Return(auth.Caller{ID: adminID, Role: auth.RoleAdmin, Active: true}, nil)

	identities := provision.NewMockIdentityStore(ctrl)
	identities.EXPECT().
		CreateIdentity(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(uuid.Nil, &provision.CreateError{Reason: "email new.client@example.com is already registered"})

	svc := provision.NewService(verifier, directory, identities, provision.NewMockProfileUpserter(ctrl))

	_, err := svc.CreateClient(context.Background(), "admin-token", validParams())

	var createErr *provision.CreateError
	require.ErrorAs(t, err, &createErr)
	assert.Contains(t, createErr.Reason, "already registered")
}
