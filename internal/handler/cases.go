package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fukolomka/Sitea/internal/caseopening"
	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/logger"
)

// caseIDParam reads and validates the {id} route parameter. Malformed ids
// cannot name a case, so they are reported as not found.
func caseIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := GetValidator().ValidateVar(id, "required,uuid"); err != nil {
		respondError(w, http.StatusNotFound, ErrMsgCaseNotFoundError)
		return "", false
	}
	return id, true
}

// HandleListCases returns the active cases
// @Summary List cases
// @Description Active cases with their items
// @Tags cases
// @Produce json
// @Success 200 {object} Response{data=[]domain.Case}
// @Failure 500 {object} Response
// @Router /api/v1/cases [get]
func HandleListCases(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cases, err := svc.ListCases(r.Context())
		if err != nil {
			respondServiceError(w, r, err, ActionListCases)
			return
		}
		respondData(w, http.StatusOK, cases)
	}
}

// HandleGetCase returns one active case, items ordered by drop weight
// @Summary Get case
// @Tags cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} Response{data=domain.Case}
// @Failure 404 {object} Response
// @Router /api/v1/cases/{id} [get]
func HandleGetCase(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, ok := caseIDParam(w, r)
		if !ok {
			return
		}
		c, err := svc.GetCase(r.Context(), caseID)
		if err != nil {
			respondServiceError(w, r, err, ActionGetCase)
			return
		}
		respondData(w, http.StatusOK, c)
	}
}

// HandleOpenCase charges the case price and returns the won item with the
// animation strip. Not idempotent: every successful call, including a retry
// after a 503, is a new paid draw.
// @Summary Open case
// @Tags cases
// @Produce json
// @Security CookieAuth
// @Param id path string true "Case ID"
// @Success 200 {object} Response{data=domain.OpeningOutcome}
// @Failure 400 {object} Response "Insufficient balance"
// @Failure 401 {object} Response
// @Failure 404 {object} Response "User or case not found"
// @Failure 429 {object} Response
// @Failure 503 {object} Response "Transient store failure"
// @Router /api/v1/cases/{id}/open [post]
func HandleOpenCase(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		caseID, ok := caseIDParam(w, r)
		if !ok {
			return
		}

		outcome, err := svc.OpenCase(r.Context(), userID, caseID)
		if err != nil {
			respondServiceError(w, r, err, ActionOpenCase)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgCaseOpened,
			"user_id", userID,
			"case_id", caseID,
			"opening_id", outcome.Opening.ID,
			"item_id", outcome.WonItem.ID)
		respondData(w, http.StatusOK, outcome)
	}
}
