package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/wallet"
)

// DepositRequest is the body of a demo balance top-up
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0,lte=1000" swaggertype:"number"`
}

// HandleDeposit credits a demo top-up to the user's balance
// @Summary Demo deposit
// @Tags user
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body DepositRequest true "Amount"
// @Success 200 {object} Response{data=wallet.DepositResult}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} Response
// @Failure 503 {object} Response
// @Router /api/v1/user/balance [post]
func HandleDeposit(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req DepositRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionDeposit); err != nil {
			return
		}
		result, err := svc.Deposit(r.Context(), userID, req.Amount)
		if err != nil {
			respondServiceError(w, r, err, ActionDeposit)
			return
		}
		respondData(w, http.StatusOK, result)
	}
}

// HandleGetTransactions returns the user's ledger, newest first
// @Summary Ledger history
// @Tags user
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Max rows (default 50, max 200)"
// @Success 200 {object} Response{data=[]domain.LedgerEntry}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/user/transactions [get]
func HandleGetTransactions(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}
		entries, err := svc.GetTransactions(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, err, ActionGetTransactions)
			return
		}
		respondData(w, http.StatusOK, entries)
	}
}
