package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/profile"
)

func admin() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleAdmin, Active: true}
}

func client() auth.Caller {
	return auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true}
}

func TestService_List_RejectsNonAdminBeforeAnyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ListProfiles expectation: the repo must never see the query.
	repo := profile.NewMockRepository(ctrl)
	svc := profile.NewService(repo, cache.New())

	for _, caller := range []auth.Caller{client(), {ID: uuid.New(), Role: auth.RoleAgent, Active: true}} {
		got, err := svc.List(context.Background(), caller, profile.ListFilter{})
		assert.ErrorIs(t, err, auth.ErrForbidden)
		assert.Nil(t, got)
	}
}

func TestService_List_AdminSeesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := profile.NewMockRepository(ctrl)
	repo.EXPECT().
		ListProfiles(gomock.Any(), profile.ListFilter{Search: "ade"}).
		Return([]*profile.Profile{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := profile.NewService(repo, cache.New())

	got, err := svc.List(context.Background(), admin(), profile.ListFilter{Search: "ade"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Get_SelfOrAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := client()

	repo := profile.NewMockRepository(ctrl)
	repo.EXPECT().
		GetProfile(gomock.Any(), caller.ID).
		Return(&profile.Profile{ID: caller.ID}, nil)

	svc := profile.NewService(repo, cache.New())

	got, err := svc.Get(context.Background(), caller, caller.ID)
	require.NoError(t, err)
	assert.Equal(t, caller.ID, got.ID)

	_, err = svc.Get(context.Background(), caller, uuid.New())
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestService_SetActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	views := cache.New()
	cache.Put(views, cache.KindProfiles, "stale", []*profile.Profile{})

	id := uuid.New()

	repo := profile.NewMockRepository(ctrl)
	repo.EXPECT().
		SetActive(gomock.Any(), id, false).
		Return(nil)

	svc := profile.NewService(repo, views)

	require.NoError(t, svc.SetActive(context.Background(), admin(), id, false))

	_, ok := cache.Get[[]*profile.Profile](views, cache.KindProfiles, "stale")
	assert.False(t, ok)

	err := svc.SetActive(context.Background(), client(), id, true)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
