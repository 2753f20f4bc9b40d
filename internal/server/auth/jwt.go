// Package auth issues and checks the backend's bearer tokens and hashes
// account passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the owning user. The token ID
// (jti) is what sign-out revokes. IssuedAtNano keeps the issue time at full
// precision so a password change can cut off tokens issued just before it.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string
	IssuedAtNano int64 `json:"iat_ns,omitempty"`
}

// Issued returns when the token was minted.
func (c *Claims) Issued() time.Time {
	if c.IssuedAtNano != 0 {
		return time.Unix(0, c.IssuedAtNano)
	}
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GenerateToken signs an HS256 token for userID that expires after
// validityDuration. It returns the token together with its ID and expiry.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (token string, id string, expires time.Time, err error) {
	now := time.Now()
	expires = now.Add(validityDuration)
	id = uuid.NewString()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID:       userID,
		IssuedAtNano: now.UnixNano(),
	})

	token, err = t.SignedString(secretKey)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return token, id, expires, nil
}

// ParseToken validates tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromToken is ParseToken reduced to the user ID.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
