package wallet

import "time"

// Deposit limits for demo top-ups
const (
	MaxDepositAmount = "1000.00"
	MoneyScale       = 2
)

// History paging
const (
	DefaultLedgerLimit = 50
	MaxLedgerLimit     = 200
)

// DefaultTimeout bounds one deposit unit of work.
const DefaultTimeout = 5 * time.Second

// DepositDescriptionFormat is rendered with a locale-aware printer.
const DepositDescriptionFormat = "Balance top-up of $%v"

// Log messages
const (
	LogMsgDeposited      = "Balance topped up"
	LogMsgDepositFailed  = "Balance top-up failed"
	LogMsgDepositInvalid = "Balance top-up rejected"
)

// Error context messages for wrapped errors
const (
	ErrContextBeginTx      = "failed to begin deposit transaction"
	ErrContextLoadUser     = "failed to load user"
	ErrContextCredit       = "failed to credit balance"
	ErrContextRecordLedger = "failed to record ledger entry"
	ErrContextCommit       = "failed to commit deposit"
	ErrContextGetLedger    = "failed to get ledger"

	ErrMsgAmountTooLarge = "amount exceeds the deposit limit"
	ErrMsgAmountScale    = "amount has more than two decimal places"
)
