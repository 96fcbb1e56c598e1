package caseopening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/metrics"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// Service defines the case opening interface
type Service interface {
	// OpenCase charges the case price and credits one weighted-random item
	// in a single transaction. It is not idempotent: every successful call
	// is a new paid draw, including retries after ErrTransientStoreFailure.
	OpenCase(ctx context.Context, userID, caseID string) (*domain.OpeningOutcome, error)
}

// Config tunes the coordinator.
type Config struct {
	Timeout        time.Duration
	SequenceLength int
}

type service struct {
	repo   repository.Opening
	src    Source
	config Config
}

// NewService creates a new case opening coordinator. A nil src uses
// DefaultSource; zero config values fall back to package defaults.
func NewService(repo repository.Opening, src Source, config Config) Service {
	if src == nil {
		src = DefaultSource()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultOpenTimeout
	}
	if config.SequenceLength <= 0 {
		config.SequenceLength = DefaultSequenceLength
	}
	return &service{
		repo:   repo,
		src:    src,
		config: config,
	}
}

// OpenCase implements Service
func (s *service) OpenCase(ctx context.Context, userID, caseID string) (*domain.OpeningOutcome, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	outcome, err := s.openCase(ctx, userID, caseID)

	metrics.CaseOpeningDuration.Observe(time.Since(start).Seconds())
	metrics.CaseOpenings.WithLabelValues(resultLabel(err)).Inc()

	if err != nil {
		if isBusinessFailure(err) {
			log.Info(LogMsgOpeningRejected, "user_id", userID, "case_id", caseID, "reason", err)
		} else {
			log.Error(LogMsgOpeningFailed, "user_id", userID, "case_id", caseID, "error", err)
		}
		return nil, err
	}

	metrics.MoneySpent.Add(outcome.Opening.Cost.InexactFloat64())
	metrics.ItemsWon.WithLabelValues(string(outcome.WonItem.Rarity)).Inc()

	log.Info(LogMsgCaseOpened,
		"user_id", userID,
		"case_id", caseID,
		"opening_id", outcome.Opening.ID,
		"item_id", outcome.WonItem.ID,
		"rarity", outcome.WonItem.Rarity,
		"cost", outcome.Opening.Cost.String(),
		"balance", outcome.Balance.String())

	return outcome, nil
}

func (s *service) openCase(ctx context.Context, userID, caseID string) (*domain.OpeningOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
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

	c, err := tx.GetCase(ctx, caseID)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextLoadCase, err))
	}
	if !c.IsOpenable() {
		return nil, domain.ErrCaseNotFound
	}

	if !user.CanAfford(c.Price) {
		return nil, domain.ErrInsufficientBalance
	}

	entries := c.OpenableItems()
	winner, err := SelectWinner(entries, s.src)
	if err != nil {
		return nil, err
	}
	seq, err := BuildSequence(entries, winner.Item, s.config.SequenceLength, s.src)
	if err != nil {
		return nil, err
	}

	balance, err := tx.DebitBalance(ctx, user.ID, c.Price)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextDebit, err))
	}

	record := &domain.OpeningRecord{
		UserID: user.ID,
		CaseID: c.ID,
		ItemID: winner.ItemID,
		Cost:   c.Price,
	}
	if err := tx.InsertOpening(ctx, record); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextRecordOpening, err))
	}

	if _, err := tx.IncrementInventory(ctx, user.ID, winner.ItemID); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextCreditInventory, err))
	}

	entry := &domain.LedgerEntry{
		UserID:      user.ID,
		Kind:        domain.LedgerCaseOpening,
		Amount:      c.Price.Neg(),
		Status:      domain.LedgerCompleted,
		Description: fmt.Sprintf(LedgerDescriptionFormat, c.Name),
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextRecordLedger, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", ErrContextCommit, err))
	}

	record.Item = &winner.Item
	record.CaseName = c.Name

	return &domain.OpeningOutcome{
		WonItem:      winner.Item,
		Sequence:     seq.Items,
		WinningIndex: seq.WinningIndex,
		Opening:      *record,
		Balance:      balance,
	}, nil
}

// classify marks expired or cancelled units as transient. Store
// implementations classify their own driver errors.
func classify(ctx context.Context, err error) error {
	if isBusinessFailure(err) || errors.Is(err, domain.ErrTransientStoreFailure) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
	}
	return err
}

func isBusinessFailure(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrCaseNotFound) ||
		errors.Is(err, domain.ErrInsufficientBalance)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrUserNotFound):
		return metrics.ResultUserNotFound
	case errors.Is(err, domain.ErrCaseNotFound):
		return metrics.ResultCaseNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return metrics.ResultInsufficientBalance
	case errors.Is(err, domain.ErrTransientStoreFailure):
		return metrics.ResultTransient
	default:
		return metrics.ResultError
	}
}
