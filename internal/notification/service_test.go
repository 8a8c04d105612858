package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/notification"
)

func client() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true}
}

func TestService_List_ScopesNonAdminToOwnRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := client()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().
		ListNotifications(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter notification.ListFilter) ([]*notification.Notification, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, caller.ID, *filter.OwnerID)
			return nil, nil
		})

	svc := notification.NewService(repo, cache.New())

	_, err := svc.List(context.Background(), caller, notification.ListFilter{})
	require.NoError(t, err)
}

func TestService_MarkRead(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *notification.MockRepository, caller auth.Caller, id uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *notification.MockRepository, caller auth.Caller, id uuid.UUID) {
				m.EXPECT().
					GetNotification(gomock.Any(), id).
					Return(&notification.Notification{ID: id, OwnerID: caller.ID}, nil)
				m.EXPECT().
					MarkRead(gomock.Any(), id).
					Return(nil)
			},
		},
		{
			name: "AlreadyReadIsNoOp",
			setupMock: func(m *notification.MockRepository, caller auth.Caller, id uuid.UUID) {
				// No MarkRead expectation: the read flag never needs a second write.
				m.EXPECT().
					GetNotification(gomock.Any(), id).
					Return(&notification.Notification{ID: id, OwnerID: caller.ID, Read: true}, nil)
			},
		},
		{
			name: "OtherOwnersRowReadsAsMissing",
			setupMock: func(m *notification.MockRepository, _ auth.Caller, id uuid.UUID) {
				m.EXPECT().
					GetNotification(gomock.Any(), id).
					Return(&notification.Notification{ID: id, OwnerID: uuid.New()}, nil)
			},
			wantErr: notification.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			caller := client()
			id := uuid.New()

			repo := notification.NewMockRepository(ctrl)
			tt.setupMock(repo, caller, id)

			svc := notification.NewService(repo, cache.New())
			err := svc.MarkRead(context.Background(), caller, id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_MarkAllRead_IsCallerBoundEvenForAdmins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	admin := auth.Caller{ID: uuid.New(), Role: auth.RoleAdmin, Active: true}

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().
		MarkAllRead(gomock.Any(), admin.ID).
		Return(int64(3), nil)

	svc := notification.NewService(repo, cache.New())

	updated, err := svc.MarkAllRead(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestService_Notify_InvalidatesNotificationsView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	views := cache.New()
	cache.Put(views, cache.KindNotifications, "stale", []*notification.Notification{})

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *notification.Notification) error {
			assert.Equal(t, notification.KindApplication, n.Kind)
			return nil
		})

	svc := notification.NewService(repo, views)

	err := svc.Notify(context.Background(), uuid.New(), notification.KindApplication, "approved")
	require.NoError(t, err)

	_, ok := cache.Get[[]*notification.Notification](views, cache.KindNotifications, "stale")
	assert.False(t, ok)
}
