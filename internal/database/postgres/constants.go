package postgres

import "time"

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeInvalidTextRepresentation is raised for malformed UUID literals
	PgErrorCodeInvalidTextRepresentation = "22P02"

	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
	PgErrorCodeLockNotAvailable     = "55P03"
	PgErrorCodeQueryCanceled        = "57014"
	PgErrorCodeAdminShutdown        = "57P01"
	PgErrorCodeCannotConnectNow     = "57P03"
)

// DefaultLockTimeout bounds row lock waits inside opening and wallet transactions.
const DefaultLockTimeout = 3 * time.Second

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToSetLockTimeout    = "failed to set lock timeout"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser         = "failed to get user"
	ErrMsgFailedToLockUser        = "failed to lock user"
	ErrMsgFailedToInsertUser      = "failed to insert user"
	ErrMsgFailedToUpdateUser      = "failed to update user"
	ErrMsgFailedToDebitBalance    = "failed to debit balance"
	ErrMsgFailedToCreditBalance   = "failed to credit balance"
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToGetOpenings     = "failed to get openings"
	ErrMsgFailedToGetStats        = "failed to get stats"
	ErrMsgFailedToScanRow         = "failed to scan row"
	ErrMsgFailedToIterateRows     = "failed to iterate rows"
	ErrMsgFailedToGetLedger       = "failed to get ledger"
	ErrMsgFailedToInsertLedger    = "failed to insert ledger entry"
	ErrMsgFailedToInsertOpening   = "failed to insert case opening"
	ErrMsgFailedToUpsertInventory = "failed to upsert inventory entry"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetCase      = "failed to get case"
	ErrMsgFailedToListCases    = "failed to list cases"
	ErrMsgFailedToGetCaseItems = "failed to get case items"
	ErrMsgFailedToUpsertItem   = "failed to upsert item"
	ErrMsgFailedToUpsertCase   = "failed to upsert case"
	ErrMsgFailedToReplaceItems = "failed to replace case items"
)
