package auth

import "time"

// Token settings
const (
	CookieName      = "token"
	BearerPrefix    = "Bearer "
	TokenIssuer     = "sitea"
	DefaultTokenTTL = 7 * 24 * time.Hour
)

// Steam OpenID 2.0 and Web API endpoints
const (
	SteamOpenIDEndpoint   = "https://steamcommunity.com/openid/login"
	SteamAPIBaseURL       = "https://api.steampowered.com"
	SteamPlayerSummaryURL = "/ISteamUser/GetPlayerSummaries/v0002/"

	OpenIDNamespace        = "http://specs.openid.net/auth/2.0"
	OpenIDIdentifierSelect = "http://specs.openid.net/auth/2.0/identifier_select"
	OpenIDModeSetup        = "checkid_setup"
	OpenIDModeIDRes        = "id_res"
	OpenIDModeCheckAuth    = "check_authentication"
	OpenIDValidMarker      = "is_valid:true"

	DefaultHTTPTimeout = 10 * time.Second
	maxVerifyBodyBytes = 4 << 10
	maxProfileBytes    = 64 << 10
)

// OpenID query parameter names
const (
	ParamNS         = "openid.ns"
	ParamMode       = "openid.mode"
	ParamReturnTo   = "openid.return_to"
	ParamRealm      = "openid.realm"
	ParamIdentity   = "openid.identity"
	ParamClaimedID  = "openid.claimed_id"
	ParamOPEndpoint = "openid.op_endpoint"
)

// Log messages
const (
	LogMsgTokenRejected    = "Token rejected"
	LogMsgAssertionInvalid = "Steam assertion rejected"
	LogMsgProfileFetched   = "Steam profile fetched"
)

// Error messages
const (
	ErrMsgMissingSecret    = "jwt secret is empty"
	ErrMsgInvalidToken     = "invalid token"
	ErrMsgSignFailed       = "failed to sign token"
	ErrMsgWrongMode        = "unexpected openid mode"
	ErrMsgWrongEndpoint    = "assertion from unexpected provider"
	ErrMsgWrongReturnTo    = "assertion return_to mismatch"
	ErrMsgBadClaimedID     = "claimed id is not a steam id"
	ErrMsgNotVerified      = "steam did not confirm the assertion"
	ErrMsgVerifyRequest    = "steam verification request failed"
	ErrMsgProfileRequest   = "steam profile request failed"
	ErrMsgProfileNotFound  = "steam profile not found"
	ErrMsgUnexpectedStatus = "unexpected status %d"
)
