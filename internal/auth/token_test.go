package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T, alg string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(&config.Config{
		JWTSecret:       "test-secret",
		JWTAlgorithm:    alg,
		TokenTTLMinutes: 30,
	})
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			svc := newTokenService(t, alg)

			token, err := svc.Issue(42, now)
			require.NoError(t, err)
			require.Len(t, strings.Split(token, "."), 3)

			userID, err := svc.Verify(token, now)
			require.NoError(t, err)
			assert.Equal(t, 42, userID)
		})
	}
}

func TestTokenExpired(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	token, err := svc.Issue(7, now)
	require.NoError(t, err)

	// Still valid just before the TTL runs out.
	_, err = svc.Verify(token, now.Add(29*time.Minute))
	require.NoError(t, err)

	_, err = svc.Verify(token, now.Add(30*time.Minute+time.Second))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTamperedSignature(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()

	token, err := svc.Issue(7, now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTokenService(t, "HS256")
	now := time.Now()

	token, err := issuer.Issue(7, now)
	require.NoError(t, err)

	verifier, err := NewTokenService(&config.Config{
		JWTSecret:       "another-secret",
		JWTAlgorithm:    "HS256",
		TokenTTLMinutes: 30,
	})
	require.NoError(t, err)

	_, err = verifier.Verify(token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenAlgorithmMismatch(t *testing.T) {
	issuer := newTokenService(t, "HS512")
	verifier := newTokenService(t, "HS256")
	now := time.Now()

	token, err := issuer.Issue(7, now)
	require.NoError(t, err)

	_, err = verifier.Verify(token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()

	for _, token := range []string{"", "garbage", "a.b", "not.a.token"} {
		_, err := svc.Verify(token, now)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenMissingClaims(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()

	// Signed with the right secret but no subject.
	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := noSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Non-numeric subject.
	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err = badSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// No expiry at all.
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "7",
	})
	signed, err = noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceRejectsUnknownAlgorithm(t *testing.T) {
	_, err := NewTokenService(&config.Config{
		JWTSecret:       "s",
		JWTAlgorithm:    "none-of-the-above",
		TokenTTLMinutes: 30,
	})
	assert.Error(t, err)

	_, err = NewTokenService(&config.Config{
		JWTSecret:       "s",
		JWTAlgorithm:    "RS256",
		TokenTTLMinutes: 30,
	})
	assert.Error(t, err)
}
