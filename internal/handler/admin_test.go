package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/testing/fakestore"
)

const testCatalogPath = "configs/catalog.json"

func TestHandleReloadCatalog(t *testing.T) {
	store := fakestore.New()
	cfg := &catalog.Config{Version: "1.0"}

	loader := &MockLoader{}
	loader.On("Load", testCatalogPath).Return(cfg, nil)
	loader.On("SyncToDatabase", mock.Anything, cfg, store).Return(&catalog.SyncResult{ItemsUpserted: 8, CasesUpserted: 3}, nil)
	svc := &MockCatalogService{}
	svc.On("Invalidate", mock.Anything).Return(nil)

	h := NewAdminCatalogHandler(loader, store, svc, testCatalogPath)
	w := httptest.NewRecorder()
	h.HandleReloadCatalog(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/reload", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items_upserted":8`)
	assert.Contains(t, w.Body.String(), `"cases_upserted":3`)
	loader.AssertExpectations(t)
	svc.AssertExpectations(t)
}

func TestHandleReloadCatalog_InvalidFile(t *testing.T) {
	store := fakestore.New()
	loader := &MockLoader{}
	loader.On("Load", testCatalogPath).Return(nil, catalog.ErrInvalidConfig)
	svc := &MockCatalogService{}

	h := NewAdminCatalogHandler(loader, store, svc, testCatalogPath)
	w := httptest.NewRecorder()
	h.HandleReloadCatalog(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrMsgReloadCatalogFailed, decodeEnvelope(t, w).Error)
	svc.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestHandleReloadCatalog_SyncFails(t *testing.T) {
	store := fakestore.New()
	cfg := &catalog.Config{Version: "1.0"}
	loader := &MockLoader{}
	loader.On("Load", testCatalogPath).Return(cfg, nil)
	loader.On("SyncToDatabase", mock.Anything, cfg, store).Return(nil, assert.AnError)
	svc := &MockCatalogService{}

	h := NewAdminCatalogHandler(loader, store, svc, testCatalogPath)
	w := httptest.NewRecorder()
	h.HandleReloadCatalog(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertNotCalled(t, "Invalidate", mock.Anything)
}
