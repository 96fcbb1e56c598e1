package caseopening

import "time"

// DefaultSequenceLength is the number of items in an animation strip.
const DefaultSequenceLength = 50

// WinningBand is how far the winning slot may drift from the centre of the
// strip in either direction.
const WinningBand = 2

// DefaultOpenTimeout bounds one opening unit of work.
const DefaultOpenTimeout = 5 * time.Second

// LedgerDescriptionFormat describes the ledger entry of an opening.
const LedgerDescriptionFormat = "Opened %s case"

// Log messages
const (
	LogMsgCaseOpened       = "Case opened"
	LogMsgOpeningRejected  = "Case opening rejected"
	LogMsgOpeningFailed    = "Case opening failed"
	LogMsgOpeningCommitted = "Case opening committed"
)

// Error context messages for wrapped errors
const (
	ErrContextBeginTx         = "failed to begin opening transaction"
	ErrContextLoadUser        = "failed to load user"
	ErrContextLoadCase        = "failed to load case"
	ErrContextDebit           = "failed to debit balance"
	ErrContextRecordOpening   = "failed to record opening"
	ErrContextCreditInventory = "failed to credit inventory"
	ErrContextRecordLedger    = "failed to record ledger entry"
	ErrContextCommit          = "failed to commit opening"
)
