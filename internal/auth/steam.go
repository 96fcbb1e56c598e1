package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
)

var claimedIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(\d{17})$`)

// SteamConfig configures the Steam OpenID relying party.
type SteamConfig struct {
	Realm    string
	ReturnTo string
	APIKey   string

	// Overridable for tests.
	OpenIDEndpoint string
	APIBaseURL     string
	HTTPClient     *http.Client
}

// Steam implements the Steam OpenID 2.0 login flow and the player summary lookup.
type Steam struct {
	config SteamConfig
	client *http.Client
}

// NewSteam creates a Steam login client.
func NewSteam(config SteamConfig) *Steam {
	if config.OpenIDEndpoint == "" {
		config.OpenIDEndpoint = SteamOpenIDEndpoint
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = SteamAPIBaseURL
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Steam{config: config, client: client}
}

// LoginURL returns the provider URL the browser is redirected to.
func (s *Steam) LoginURL() string {
	params := url.Values{}
	params.Set(ParamNS, OpenIDNamespace)
	params.Set(ParamMode, OpenIDModeSetup)
	params.Set(ParamReturnTo, s.config.ReturnTo)
	params.Set(ParamRealm, s.config.Realm)
	params.Set(ParamIdentity, OpenIDIdentifierSelect)
	params.Set(ParamClaimedID, OpenIDIdentifierSelect)
	return s.config.OpenIDEndpoint + "?" + params.Encode()
}

// VerifyAssertion checks the positive assertion Steam redirected back with and
// returns the 64-bit Steam ID. The assertion is confirmed with the provider
// through a check_authentication request, so a forged query string fails.
func (s *Steam) VerifyAssertion(ctx context.Context, params url.Values) (string, error) {
	log := logger.FromContext(ctx)

	if params.Get(ParamMode) != OpenIDModeIDRes {
		return "", s.reject(ctx, ErrMsgWrongMode)
	}
	if params.Get(ParamOPEndpoint) != s.config.OpenIDEndpoint {
		return "", s.reject(ctx, ErrMsgWrongEndpoint)
	}
	if !sameReturnTo(params.Get(ParamReturnTo), s.config.ReturnTo) {
		return "", s.reject(ctx, ErrMsgWrongReturnTo)
	}
	steamID, ok := ExtractSteamID(params.Get(ParamClaimedID))
	if !ok {
		return "", s.reject(ctx, ErrMsgBadClaimedID)
	}

	check := url.Values{}
	for k, v := range params {
		check[k] = v
	}
	check.Set(ParamMode, OpenIDModeCheckAuth)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.OpenIDEndpoint, strings.NewReader(check.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgVerifyRequest, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgVerifyRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: "+ErrMsgUnexpectedStatus, ErrMsgVerifyRequest, resp.StatusCode)
	}

	valid, err := isValidResponse(io.LimitReader(resp.Body, maxVerifyBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgVerifyRequest, err)
	}
	if !valid {
		return "", s.reject(ctx, ErrMsgNotVerified)
	}

	log.Debug("Steam assertion verified", "steam_id", steamID)
	return steamID, nil
}

func (s *Steam) reject(ctx context.Context, reason string) error {
	logger.FromContext(ctx).Warn(LogMsgAssertionInvalid, "reason", reason)
	return fmt.Errorf("%w: %s", domain.ErrUnauthorized, reason)
}

// isValidResponse scans a key-value form response for is_valid:true.
func isValidResponse(r io.Reader) (bool, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == OpenIDValidMarker {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// sameReturnTo compares scheme, host and path; Steam may append query parameters.
func sameReturnTo(got, want string) bool {
	g, err := url.Parse(got)
	if err != nil {
		return false
	}
	w, err := url.Parse(want)
	if err != nil {
		return false
	}
	return g.Scheme == w.Scheme && g.Host == w.Host && g.Path == w.Path
}

// ExtractSteamID pulls the Steam ID out of a claimed identifier URL.
func ExtractSteamID(claimedID string) (string, bool) {
	m := claimedIDPattern.FindStringSubmatch(claimedID)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type playerSummaries struct {
	Response struct {
		Players []domain.SteamProfile `json:"players"`
	} `json:"response"`
}

// FetchProfile loads the player summary for steamID. Without an API key it
// returns a bare profile named after the Steam ID.
func (s *Steam) FetchProfile(ctx context.Context, steamID string) (*domain.SteamProfile, error) {
	if s.config.APIKey == "" {
		return &domain.SteamProfile{SteamID: steamID, PersonaName: steamID}, nil
	}

	q := url.Values{}
	q.Set("key", s.config.APIKey)
	q.Set("steamids", steamID)
	endpoint := strings.TrimRight(s.config.APIBaseURL, "/") + SteamPlayerSummaryURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgProfileRequest, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		// url.Error carries the request URL, which holds the API key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgProfileRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: "+ErrMsgUnexpectedStatus, ErrMsgProfileRequest, resp.StatusCode)
	}

	var body playerSummaries
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgProfileRequest, err)
	}
	for _, p := range body.Response.Players {
		if p.SteamID == steamID {
			logger.FromContext(ctx).Debug(LogMsgProfileFetched, "steam_id", steamID)
			profile := p
			return &profile, nil
		}
	}
	return nil, errors.New(ErrMsgProfileNotFound)
}
