package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/domain"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func testUser() *domain.User {
	return &domain.User{ID: "user-1", SteamID: "76561198000000001", Role: domain.RoleAdmin}
}

func TestNewTokenManager(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgMissingSecret)

	m, err := NewTokenManager(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, m.TTL())
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "76561198000000001", claims.SteamID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestTokenManager_Verify_Rejects(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("another-secret-another-secret-xx", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue(testUser())
	require.NoError(t, err)

	expired, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Issue(testUser())
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"alg none", noneAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
