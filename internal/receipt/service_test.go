package receipt_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
)

func adminCaller() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleAdmin, Active: true}
}

func clientCaller() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true}
}

func TestService_Generate(t *testing.T) {
	type testCase struct {
		name      string
		caller    auth.Caller
		amount    int64
		setupMock func(m *receipt.MockRepository, owner uuid.UUID)
		wantErr   error
	}

	owner := uuid.New()

	tests := []testCase{
		{
			name:   "Success",
			caller: adminCaller(),
			amount: 150000,
			setupMock: func(m *receipt.MockRepository, owner uuid.UUID) {
				m.EXPECT().
					PaymentOwner(gomock.Any(), gomock.Any()).
					Return(owner, nil)
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *receipt.Receipt) error {
						r.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "NonAdminForbidden",
			caller:  clientCaller(),
			amount:  150000,
			wantErr: auth.ErrForbidden,
		},
		{
			name:    "NonPositiveAmount",
			caller:  adminCaller(),
			amount:  0,
			wantErr: receipt.ErrValidation,
		},
		{
			name:   "UnknownPayment",
			caller: adminCaller(),
			amount: 150000,
			setupMock: func(m *receipt.MockRepository, _ uuid.UUID) {
				m.EXPECT().
					PaymentOwner(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, receipt.ErrNotFound)
			},
			wantErr: receipt.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, owner)
			}

			svc := receipt.NewService(repo, cache.New())
			got, err := svc.Generate(context.Background(), tt.caller, uuid.New(), tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, tt.caller.ID, got.IssuerID)
			assert.NotEmpty(t, got.Number)
		})
	}
}

func TestService_Generate_NumbersNeverRepeat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	issuer := adminCaller()
	owner := uuid.New()

	const n = 50

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().
		PaymentOwner(gomock.Any(), gomock.Any()).
		Return(owner, nil).
		Times(n)
	repo.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(n)

	svc := receipt.NewService(repo, cache.New())

	seen := make(map[string]bool, n)
	prev := ""

	for i := 0; i < n; i++ {
		rec, err := svc.Generate(context.Background(), issuer, uuid.New(), 1000)
		require.NoError(t, err)

		assert.False(t, seen[rec.Number], "number %s repeated", rec.Number)
		seen[rec.Number] = true

		// Numbers sort strictly increasing as integers; the RCP- prefix and
		// same-width nanosecond counters make string comparison sufficient.
		if prev != "" {
			assert.Greater(t, rec.Number, prev)
		}
		prev = rec.Number
	}
}

func TestService_List_ScopesNonAdminThroughPaymentOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := clientCaller()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().
		ListReceipts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter receipt.ListFilter) ([]*receipt.Receipt, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, caller.ID, *filter.OwnerID)
			return nil, nil
		})

	svc := receipt.NewService(repo, cache.New())

	_, err := svc.List(context.Background(), caller, receipt.ListFilter{})
	require.NoError(t, err)
}

func TestService_Generate_InvalidatesReceiptsViewOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	views := cache.New()
	cache.Put(views, cache.KindReceipts, "stale", []*receipt.Receipt{})
	cache.Put(views, cache.KindDocuments, "unrelated", "kept")

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().PaymentOwner(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil)

	svc := receipt.NewService(repo, views)

	_, err := svc.Generate(context.Background(), adminCaller(), uuid.New(), 1000)
	require.NoError(t, err)

	_, ok := cache.Get[[]*receipt.Receipt](views, cache.KindReceipts, "stale")
	assert.False(t, ok)

	kept, ok := cache.Get[string](views, cache.KindDocuments, "unrelated")
	assert.True(t, ok)
	assert.Equal(t, "kept", kept)
}
