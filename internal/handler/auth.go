package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Fukolomka/Sitea/internal/auth"
	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/user"
)

// SteamAuthenticator drives the Steam OpenID login
type SteamAuthenticator interface {
	LoginURL() string
	VerifyAssertion(ctx context.Context, params url.Values) (string, error)
	FetchProfile(ctx context.Context, steamID string) (*domain.SteamProfile, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(u *domain.User) (string, error)
	TTL() time.Duration
}

// AuthHandlers serves the Steam login flow
type AuthHandlers struct {
	steam        SteamAuthenticator
	users        user.Service
	tokens       TokenIssuer
	publicURL    string
	cookieSecure bool
}

// NewAuthHandlers creates the login handlers. publicURL is the storefront
// the browser lands on after login.
func NewAuthHandlers(steam SteamAuthenticator, users user.Service, tokens TokenIssuer, publicURL string, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{
		steam:        steam,
		users:        users,
		tokens:       tokens,
		publicURL:    strings.TrimRight(publicURL, "/"),
		cookieSecure: cookieSecure,
	}
}

// HandleSteamLogin redirects to Steam
// @Summary Start Steam login
// @Tags auth
// @Success 302
// @Router /api/v1/auth/steam [get]
func (h *AuthHandlers) HandleSteamLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, h.steam.LoginURL(), http.StatusFound)
	}
}

// HandleSteamReturn verifies the Steam assertion, signs the user in and
// redirects to the storefront. Failures redirect with an error code.
// @Summary Steam login callback
// @Tags auth
// @Success 302
// @Router /api/v1/auth/steam/return [get]
func (h *AuthHandlers) HandleSteamReturn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		steamID, err := h.steam.VerifyAssertion(ctx, r.URL.Query())
		if err != nil {
			log.Warn(ActionSteamLogin+" rejected", "error", err)
			h.redirectError(w, r, LoginErrorInvalidAuth)
			return
		}

		profile, err := h.steam.FetchProfile(ctx, steamID)
		if err != nil {
			log.Error(ActionSteamLogin+" failed", "error", err, "steam_id", steamID)
			h.redirectError(w, r, LoginErrorAuthFailed)
			return
		}

		u, err := h.users.LoginWithSteam(ctx, *profile)
		if err != nil {
			log.Error(ActionSteamLogin+" failed", "error", err, "steam_id", steamID)
			h.redirectError(w, r, LoginErrorAuthFailed)
			return
		}

		token, err := h.tokens.Issue(u)
		if err != nil {
			log.Error(ActionSteamLogin+" failed", "error", err, "user_id", u.ID)
			h.redirectError(w, r, LoginErrorAuthFailed)
			return
		}

		http.SetCookie(w, h.cookie(token, int(h.tokens.TTL().Seconds())))
		log.Info(LogMsgUserLoggedIn, "user_id", u.ID, "steam_id", steamID, "role", u.Role)
		http.Redirect(w, r, h.publicURL+"/", http.StatusFound)
	}
}

// HandleLogout clears the session cookie
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, h.cookie("", -1))
		respondJSON(w, http.StatusOK, Response{Success: true, Message: MsgLoggedOut})
	}
}

func (h *AuthHandlers) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandlers) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.publicURL+"/?error="+url.QueryEscape(code), http.StatusFound)
}
