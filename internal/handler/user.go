package handler

import (
	"net/http"

	"github.com/Fukolomka/Sitea/internal/user"
)

// HandleGetProfile returns the authenticated user's profile
// @Summary Current user
// @Tags user
// @Produce json
// @Security CookieAuth
// @Success 200 {object} Response{data=domain.User}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/user [get]
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		u, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err, ActionGetProfile)
			return
		}
		respondData(w, http.StatusOK, u)
	}
}

// HandleGetInventory returns the user's owned items
// @Summary Inventory
// @Tags user
// @Produce json
// @Security CookieAuth
// @Success 200 {object} Response{data=[]domain.InventoryEntry}
// @Failure 401 {object} Response
// @Router /api/v1/user/inventory [get]
func HandleGetInventory(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		entries, err := svc.GetInventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err, ActionGetInventory)
			return
		}
		respondData(w, http.StatusOK, entries)
	}
}

// HandleGetOpenings returns recent openings, newest first
// @Summary Opening history
// @Tags user
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Max rows (default 20, max 100)"
// @Success 200 {object} Response{data=[]domain.OpeningRecord}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/user/openings [get]
func HandleGetOpenings(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}
		openings, err := svc.GetOpenings(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, err, ActionGetOpenings)
			return
		}
		respondData(w, http.StatusOK, openings)
	}
}

// HandleGetStats returns the user's opening statistics
// @Summary User stats
// @Tags user
// @Produce json
// @Security CookieAuth
// @Success 200 {object} Response{data=domain.UserStats}
// @Failure 401 {object} Response
// @Router /api/v1/user/stats [get]
func HandleGetStats(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		stats, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err, ActionGetStats)
			return
		}
		respondData(w, http.StatusOK, stats)
	}
}
