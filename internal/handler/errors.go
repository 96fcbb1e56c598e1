package handler

// User-facing error messages. They never carry internal error details.
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is busy. Please try again."
	ErrMsgTooManyRequests     = "Too many requests. Please slow down."

	ErrMsgUnauthorizedError = "Unauthorized"
	ErrMsgForbiddenError    = "Forbidden"

	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgCaseNotFoundError        = "Case not found"
	ErrMsgItemNotFoundError        = "Item not found"
	ErrMsgInsufficientBalanceError = "Insufficient balance"
	ErrMsgInvalidAmountError       = "Amount must be positive"
)

// Request parsing messages
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgReloadCatalogFailed   = "Catalog file is invalid"
)

// Redirect error codes appended to the storefront URL after a failed login
const (
	LoginErrorInvalidAuth = "invalid_auth"
	LoginErrorAuthFailed  = "auth_failed"
)

// Success messages
const (
	MsgLoggedOut       = "Logged out"
	MsgCatalogReloaded = "Catalog reloaded"
)

// Action names used in logs
const (
	ActionListCases       = "List cases"
	ActionGetCase         = "Get case"
	ActionOpenCase        = "Open case"
	ActionGetProfile      = "Get profile"
	ActionGetInventory    = "Get inventory"
	ActionGetOpenings     = "Get openings"
	ActionGetStats        = "Get stats"
	ActionDeposit         = "Deposit"
	ActionGetTransactions = "Get transactions"
	ActionSteamLogin      = "Steam login"
	ActionReloadCatalog   = "Reload catalog"
)

// Log messages
const (
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgDecodeFailed   = "Failed to decode request"
	LogMsgCaseOpened     = "Case opened"
	LogMsgUserLoggedIn   = "User logged in"
	LogMsgReadinessCheck = "Readiness check failed"
)

// RetryAfterSeconds is sent with 503 responses caused by transient store failures
const RetryAfterSeconds = "1"
