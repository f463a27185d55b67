package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cypresslabs/identity-server/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC. Tokens are
// stateless: a structurally valid, unexpired, correctly signed token is
// sufficient, and rotating the secret or waiting out the TTL are the only
// ways to invalidate outstanding tokens.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a JWT token manager with the provided secret key and
// session TTL.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Generate creates a session token with the account id as subject.
func (j *JWT) Generate(accountID uint64) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(accountID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	})

	tokenString, err := t.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature and expiry and extracts the account id.
// Every failure collapses to model.ErrInvalidToken; callers never learn
// whether the signature, structure or expiry was at fault.
func (j *JWT) Parse(tokenString string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !t.Valid {
		return 0, model.ErrInvalidToken
	}

	accountID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, model.ErrInvalidToken
	}

	return accountID, nil
}
