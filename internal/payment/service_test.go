package payment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/payment"
)

func admin() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleAdmin, Active: true}
}

func client() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true}
}

func TestService_Create(t *testing.T) {
	appID := uuid.New()

	type testCase struct {
		name      string
		caller    auth.Caller
		params    payment.CreateParams
		setupMock func(m *payment.MockRepository, caller auth.Caller)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "OwnApplicationStartsPending",
			caller: client(),
			params: payment.CreateParams{ApplicationID: appID, Amount: 250000, Method: "transfer"},
			setupMock: func(m *payment.MockRepository, caller auth.Caller) {
				m.EXPECT().
					ApplicationOwner(gomock.Any(), appID).
					Return(caller.ID, nil)
				m.EXPECT().
					CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *payment.Payment) error {
						assert.Equal(t, caller.ID, p.OwnerID)
						assert.Equal(t, payment.StatusPending, p.Status)
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "OthersApplicationReadsAsMissing",
			caller: client(),
			params: payment.CreateParams{ApplicationID: appID, Amount: 250000, Method: "transfer"},
			setupMock: func(m *payment.MockRepository, _ auth.Caller) {
				m.EXPECT().
					ApplicationOwner(gomock.Any(), appID).
					Return(uuid.New(), nil)
			},
			wantErr: payment.ErrNotFound,
		},
		{
			name:    "NonPositiveAmount",
			caller:  client(),
			params:  payment.CreateParams{ApplicationID: appID, Amount: 0, Method: "transfer"},
			wantErr: payment.ErrValidation,
		},
		{
			name:    "MissingMethod",
			caller:  client(),
			params:  payment.CreateParams{ApplicationID: appID, Amount: 100},
			wantErr: payment.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := payment.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, tt.caller)
			}

			svc := payment.NewService(repo, cache.New())
			got, err := svc.Create(context.Background(), tt.caller, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_AdminRecordsForApplicant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	applicant := uuid.New()
	appID := uuid.New()

	repo := payment.NewMockRepository(ctrl)
	repo.EXPECT().
		ApplicationOwner(gomock.Any(), appID).
		Return(applicant, nil)
	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *payment.Payment) error {
			// The payment belongs to the applicant, not the recording admin.
			assert.Equal(t, applicant, p.OwnerID)
			return nil
		})

	svc := payment.NewService(repo, cache.New())

	_, err := svc.Create(context.Background(), admin(), payment.CreateParams{
		ApplicationID: appID, Amount: 100, Method: "cash",
	})
	require.NoError(t, err)
}

func TestService_List_ScopesNonAdminToOwnRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := client()

	repo := payment.NewMockRepository(ctrl)
	repo.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, caller.ID, *filter.OwnerID)
			return nil, nil
		})

	svc := payment.NewService(repo, cache.New())

	_, err := svc.List(context.Background(), caller, payment.ListFilter{})
	require.NoError(t, err)
}

func TestService_UpdateStatus_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo, cache.New())

	err := svc.UpdateStatus(context.Background(), client(), uuid.New(), payment.StatusCompleted)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	id := uuid.New()
	repo.EXPECT().
		GetPayment(gomock.Any(), id).
		Return(&payment.Payment{ID: id, Status: payment.StatusPending}, nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), id, payment.StatusCompleted).
		Return(nil)

	err = svc.UpdateStatus(context.Background(), admin(), id, payment.StatusCompleted)
	assert.NoError(t, err)
}

func TestService_UpdateStatus_CompletedIsImmutable(t *testing.T) {
	for _, next := range []payment.Status{payment.StatusPending, payment.StatusFailed} {
		t.Run(string(next), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()

			// No UpdateStatus expectation: a completed payment is already in
			// the sales total and must never be rewritten.
			repo := payment.NewMockRepository(ctrl)
			repo.EXPECT().
				GetPayment(gomock.Any(), id).
				Return(&payment.Payment{ID: id, Status: payment.StatusCompleted, Amount: 100000}, nil)

			svc := payment.NewService(repo, cache.New())

			err := svc.UpdateStatus(context.Background(), admin(), id, next)
			assert.ErrorIs(t, err, payment.ErrValidation)
		})
	}
}

func TestService_UpdateStatus_UnknownPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := payment.NewMockRepository(ctrl)
	repo.EXPECT().
		GetPayment(gomock.Any(), id).
		Return(nil, payment.ErrNotFound)

	svc := payment.NewService(repo, cache.New())

	err := svc.UpdateStatus(context.Background(), admin(), id, payment.StatusFailed)
	assert.ErrorIs(t, err, payment.ErrNotFound)
}
