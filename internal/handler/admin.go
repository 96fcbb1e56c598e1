package handler

import (
	"net/http"

	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// AdminCatalogHandler reloads the case catalog from its JSON file
type AdminCatalogHandler struct {
	loader  catalog.Loader
	repo    repository.Catalog
	catalog catalog.Service
	path    string
}

// NewAdminCatalogHandler creates the catalog reload handler
func NewAdminCatalogHandler(loader catalog.Loader, repo repository.Catalog, svc catalog.Service, path string) *AdminCatalogHandler {
	return &AdminCatalogHandler{loader: loader, repo: repo, catalog: svc, path: path}
}

// ReloadCatalogResponse reports what a reload wrote
type ReloadCatalogResponse struct {
	Message       string `json:"message"`
	ItemsUpserted int    `json:"items_upserted"`
	CasesUpserted int    `json:"cases_upserted"`
}

// HandleReloadCatalog loads and validates the catalog file, upserts it and
// drops cached case reads.
// @Summary Reload catalog
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} Response{data=ReloadCatalogResponse}
// @Failure 400 {object} Response "Catalog file invalid"
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Router /api/v1/admin/catalog/reload [post]
func (h *AdminCatalogHandler) HandleReloadCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	cfg, err := h.loader.Load(h.path)
	if err != nil {
		log.Error(ActionReloadCatalog+" failed", "error", err, "path", h.path)
		respondError(w, http.StatusBadRequest, ErrMsgReloadCatalogFailed)
		return
	}

	result, err := h.loader.SyncToDatabase(ctx, cfg, h.repo)
	if err != nil {
		respondServiceError(w, r, err, ActionReloadCatalog)
		return
	}

	if err := h.catalog.Invalidate(ctx); err != nil {
		respondServiceError(w, r, err, ActionReloadCatalog)
		return
	}

	log.Info(MsgCatalogReloaded, "items", result.ItemsUpserted, "cases", result.CasesUpserted)
	respondData(w, http.StatusOK, ReloadCatalogResponse{
		Message:       MsgCatalogReloaded,
		ItemsUpserted: result.ItemsUpserted,
		CasesUpserted: result.CasesUpserted,
	})
}
