// Package wallet tops up balances and reads the ledger.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/metrics"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// DepositResult is the new balance and the ledger row written with it.
type DepositResult struct {
	Balance     decimal.Decimal    `json:"balance"`
	Transaction domain.LedgerEntry `json:"transaction"`
}

// Service defines the wallet interface
type Service interface {
	// Deposit credits a demo top-up and records a DEPOSIT ledger entry in
	// the same transaction.
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*DepositResult, error)
	GetTransactions(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

type service struct {
	repo       repository.Wallet
	maxDeposit decimal.Decimal
	printer    *message.Printer
}

// NewService creates a wallet service
func NewService(repo repository.Wallet) Service {
	return &service{
		repo:       repo,
		maxDeposit: decimal.RequireFromString(MaxDepositAmount),
		printer:    message.NewPrinter(language.English),
	}
}

// ValidateAmount checks that amount is a positive, whole-cent value within
// the deposit limit.
func ValidateAmount(amount decimal.Decimal, limit decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgAmountScale)
	}
	if amount.GreaterThan(limit) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgAmountTooLarge)
	}
	return nil
}

func (s *service) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*DepositResult, error) {
	log := logger.FromContext(ctx)

	if err := ValidateAmount(amount, s.maxDeposit); err != nil {
		log.Info(LogMsgDepositInvalid, "user_id", userID, "amount", amount.String(), "reason", err)
		return nil, err
	}

	result, err := s.deposit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Info(LogMsgDepositInvalid, "user_id", userID, "reason", err)
		} else {
			log.Error(LogMsgDepositFailed, "user_id", userID, "error", err)
		}
		return nil, err
	}

	metrics.MoneyDeposited.Add(amount.InexactFloat64())
	log.Info(LogMsgDeposited, "user_id", userID, "amount", amount.String(), "balance", result.Balance.String())
	return result, nil
}

func (s *service) deposit(ctx context.Context, userID string, amount decimal.Decimal) (*DepositResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextBeginTx, err))
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextLoadUser, err))
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}

	balance, err := tx.CreditBalance(ctx, user.ID, amount)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextCredit, err))
	}

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Kind:          domain.LedgerDeposit,
		Amount:        amount,
		Status:        domain.LedgerCompleted,
		Description:   s.describe(amount),
		PaymentMethod: domain.PaymentMethodDemo,
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextRecordLedger, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextCommit, err))
	}

	return &DepositResult{Balance: balance, Transaction: *entry}, nil
}

// describe renders e.g. "Balance top-up of $1,000.00".
func (s *service) describe(amount decimal.Decimal) string {
	return s.printer.Sprintf(DepositDescriptionFormat,
		number.Decimal(amount.InexactFloat64(), number.Scale(MoneyScale)))
}

func (s *service) GetTransactions(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultLedgerLimit
	case limit > MaxLedgerLimit:
		limit = MaxLedgerLimit
	}
	entries, err := s.repo.GetLedger(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetLedger, err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

// classify marks expired or cancelled units as transient.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrTransientStoreFailure) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
	}
	return err
}
