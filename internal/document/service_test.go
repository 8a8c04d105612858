package document_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/document"
)

func newCaller(role auth.Role) auth.Caller {
	return auth.Caller{ID: uuid.New(), Email: "caller@example.com", Role: role, Active: true}
}

func TestService_List_ScopesNonAdminToOwnRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)
	other := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDocuments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter document.ListFilter) ([]*document.Document, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, caller.ID, *filter.OwnerID)
			return []*document.Document{{ID: uuid.New(), OwnerID: caller.ID}}, nil
		})

	svc := document.NewService(repo, document.NewMockBlobStore(ctrl), cache.New())

	// The handler-supplied owner filter must be overridden with the caller.
	docs, err := svc.List(context.Background(), caller, document.ListFilter{OwnerID: &other})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestService_List_AdminKeepsFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDocuments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter document.ListFilter) ([]*document.Document, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, owner, *filter.OwnerID)
			return nil, nil
		})

	svc := document.NewService(repo, document.NewMockBlobStore(ctrl), cache.New())

	_, err := svc.List(context.Background(), newCaller(auth.RoleAdmin), document.ListFilter{OwnerID: &owner})
	require.NoError(t, err)
}

func TestService_List_CachesUntilInvalidated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)
	views := cache.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDocuments(gomock.Any(), gomock.Any()).
		Return([]*document.Document{{ID: uuid.New(), OwnerID: caller.ID}}, nil).
		Times(1)

	svc := document.NewService(repo, document.NewMockBlobStore(ctrl), views)

	_, err := svc.List(context.Background(), caller, document.ListFilter{})
	require.NoError(t, err)

	// Second identical read is served from cache; the single Times(1)
	// expectation fails the test if the repo is hit again.
	_, err = svc.List(context.Background(), caller, document.ListFilter{})
	require.NoError(t, err)

	repo.EXPECT().
		ListDocuments(gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(1)

	views.Invalidate(cache.KindDocuments)

	_, err = svc.List(context.Background(), caller, document.ListFilter{})
	require.NoError(t, err)
}

func TestService_Upload_RemovesBlobWhenInsertFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)

	var storedPath string

	blobs := document.NewMockBlobStore(ctrl)
	blobs.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string, _ io.Reader) error {
			storedPath = path
			return nil
		})
	blobs.EXPECT().
		Remove(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) error {
			assert.Equal(t, storedPath, path)
			return nil
		})

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateDocument(gomock.Any(), gomock.Any()).
		Return(errors.New("db error"))

	svc := document.NewService(repo, blobs, cache.New())

	_, err := svc.Upload(context.Background(), caller, document.UploadParams{
		File:     strings.NewReader("content"),
		FileName: "statement.pdf",
		Type:     "statement",
	})
	assert.Error(t, err)
}

func TestService_Upload_ValidatesBeforeAnyStoreCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := document.NewService(document.NewMockRepository(ctrl), document.NewMockBlobStore(ctrl), cache.New())

	_, err := svc.Upload(context.Background(), newCaller(auth.RoleClient), document.UploadParams{
		File: strings.NewReader("content"),
		Type: "statement",
	})
	assert.ErrorIs(t, err, document.ErrValidation)
}

func TestService_Delete_MissingRowSkipsBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		GetDocument(gomock.Any(), gomock.Any()).
		Return(nil, document.ErrNotFound)

	// No blob expectations: a missing row must not touch the blob store.
	svc := document.NewService(repo, document.NewMockBlobStore(ctrl), cache.New())

	err := svc.Delete(context.Background(), newCaller(auth.RoleClient), uuid.New())
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestService_Delete_BlobFailureStillDeletesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)
	id := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		GetDocument(gomock.Any(), id).
		Return(&document.Document{ID: id, OwnerID: caller.ID, BlobPath: "x/y.pdf"}, nil)
	repo.EXPECT().
		DeleteDocument(gomock.Any(), id).
		Return(nil)

	blobs := document.NewMockBlobStore(ctrl)
	blobs.EXPECT().
		Remove(gomock.Any(), "x/y.pdf").
		Return(errors.New("disk error"))

	svc := document.NewService(repo, blobs, cache.New())

	err := svc.Delete(context.Background(), caller, id)
	assert.NoError(t, err)
}

func TestService_Delete_OtherOwnersRowReadsAsMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		GetDocument(gomock.Any(), id).
		Return(&document.Document{ID: id, OwnerID: uuid.New(), BlobPath: "x/y.pdf"}, nil)

	svc := document.NewService(repo, document.NewMockBlobStore(ctrl), cache.New())

	err := svc.Delete(context.Background(), newCaller(auth.RoleClient), id)
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestService_Download_MissingBlobIsCorruption(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)
	id := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		GetDocument(gomock.Any(), id).
		Return(&document.Document{ID: id, OwnerID: caller.ID, BlobPath: "x/y.pdf"}, nil)

	blobs := document.NewMockBlobStore(ctrl)
	blobs.EXPECT().
		Open(gomock.Any(), "x/y.pdf").
		Return(nil, errors.New("no such file"))

	svc := document.NewService(repo, blobs, cache.New())

	_, _, err := svc.Download(context.Background(), caller, id)
	assert.ErrorIs(t, err, document.ErrBlobMissing)
}

func TestService_Generate_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := document.NewService(document.NewMockRepository(ctrl), document.NewMockBlobStore(ctrl), cache.New())

	_, err := svc.Generate(context.Background(), newCaller(auth.RoleClient), document.GenerateParams{
		ApplicationID: uuid.New(),
		Type:          "offer_letter",
		Percentage:    40,
		Content:       strings.NewReader("pdf"),
	})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestService_BlobPathsDifferForConcurrentUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	caller := newCaller(auth.RoleClient)
	paths := make(map[string]bool)

	blobs := document.NewMockBlobStore(ctrl)
	blobs.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string, _ io.Reader) error {
			assert.False(t, paths[path], "path %s reused", path)
			paths[path] = true
			return nil
		}).
		Times(10)

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateDocument(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(10)

	svc := document.NewService(repo, blobs, cache.New())

	for i := 0; i < 10; i++ {
		_, err := svc.Upload(context.Background(), caller, document.UploadParams{
			File:     strings.NewReader("content"),
			FileName: "statement.pdf",
			Type:     "statement",
		})
		require.NoError(t, err)
	}
}
