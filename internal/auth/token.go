package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/blog-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed bearer tokens carrying a user
// id as subject. The secret, signing algorithm and TTL are fixed at
// construction and never change for the process lifetime.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenService builds a token service from the application config.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", cfg.JWTAlgorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %s is not symmetric", cfg.JWTAlgorithm)
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}, nil
}

// Issue creates a signed token for the given user id, valid for the
// configured TTL starting at now.
func (t *TokenService) Issue(userID int, now time.Time) (string, error) {
	token := jwt.NewWithClaims(t.method, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry against now and
// returns the user id it was issued for. Every failure mode yields
// ErrInvalidToken; tampered, expired and malformed tokens are
// deliberately indistinguishable to the caller.
func (t *TokenService) Verify(tokenString string, now time.Time) (int, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != t.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
