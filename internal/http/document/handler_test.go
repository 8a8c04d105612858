package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
	"github.com/Abba-Jere11/properties-sub001/internal/document"
	docHandler "github.com/Abba-Jere11/properties-sub001/internal/http/document"
)

func newRouter(t *testing.T, repo document.Repository) chi.Router {
	t.Helper()

	svc := document.NewService(repo, document.NewMockBlobStore(gomock.NewController(t)), cache.New())

	r := chi.NewRouter()
	docHandler.NewHandler(svc).Routes(r)

	return r
}

func get(t *testing.T, r chi.Router, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	caller := auth.Caller{ID: uuid.New(), Role: auth.RoleClient, Active: true}
	req = req.WithContext(auth.WithCaller(req.Context(), caller))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_List_RejectsMalformedApplicationID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ListDocuments expectation: a bad filter never reaches the service.
	rec := get(t, newRouter(t, document.NewMockRepository(ctrl)), "/?application_id=not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List_FiltersByApplicationID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appID := uuid.New()

	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDocuments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter document.ListFilter) ([]*document.Document, error) {
			assert.NotNil(t, filter.ApplicationID)
			assert.Equal(t, appID, *filter.ApplicationID)
			return nil, nil
		})

	rec := get(t, newRouter(t, repo), "/?application_id="+appID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
}
