package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/auth"
	"github.com/Fukolomka/Sitea/internal/domain"
)

const (
	testUserID = "11111111-1111-4111-8111-111111111111"
	testCaseID = "22222222-2222-4222-8222-222222222222"
)

// authed attaches verified claims for testUserID
func authed(r *http.Request) *http.Request {
	claims := &auth.Claims{SteamID: "76561198000000001", Role: domain.RoleUser}
	claims.Subject = testUserID
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}

// withCaseID sets the chi {id} route parameter
func withCaseID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}
