package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Fukolomka/Sitea/internal/domain"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"lock timeout", &pgconn.PgError{Code: PgErrorCodeLockNotAvailable}, true},
		{"serialization", &pgconn.PgError{Code: PgErrorCodeSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: PgErrorCodeDeadlockDetected}, true},
		{"statement timeout", &pgconn.PgError{Code: PgErrorCodeQueryCanceled}, true},
		{"shutdown", &pgconn.PgError{Code: PgErrorCodeAdminShutdown}, true},
		{"unique violation", &pgconn.PgError{Code: PgErrorCodeUniqueViolation}, false},
		{"check violation", &pgconn.PgError{Code: "23514"}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"cancelled", fmt.Errorf("query: %w", context.Canceled), true},
		{"plain", errors.New("syntax"), false},
		{"business", domain.ErrInsufficientBalance, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.err)
			assert.Equal(t, tt.transient, errors.Is(got, domain.ErrTransientStoreFailure))
		})
	}
}

func TestClassifyError_NoDoubleWrap(t *testing.T) {
	once := classifyError(&pgconn.PgError{Code: PgErrorCodeDeadlockDetected})
	assert.Same(t, once, classifyError(once))
}

func TestWrap_AddsContext(t *testing.T) {
	err := wrap(ErrMsgFailedToLockUser, &pgconn.PgError{Code: PgErrorCodeLockNotAvailable})
	assert.ErrorIs(t, err, domain.ErrTransientStoreFailure)
	assert.Contains(t, err.Error(), ErrMsgFailedToLockUser)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: PgErrorCodeUniqueViolation})))
	assert.False(t, isUniqueViolation(errors.New("other")))
}

func TestLockTimeoutSetting(t *testing.T) {
	assert.Equal(t, "3000ms", lockTimeoutSetting(3*time.Second))
	assert.Equal(t, "1ms", lockTimeoutSetting(time.Microsecond))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("5b0c6f3e-8f0e-4c47-a3c1-7d0a2f0e1b9a"))
	assert.False(t, validID("missing"))
	assert.False(t, validID(""))
}
