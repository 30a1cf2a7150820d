// Package auth implements the signed token codec: compact HS256 tokens
// carrying a subject, a purpose tag, and an expiry. Session tokens and
// email verification tokens are signed with different secrets; callers
// must check the purpose after parsing.
package auth

import (
	"errors"
	"time"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Purpose tags a token with the flow it was issued for.
type Purpose string

const (
	// PurposeSession marks bearer tokens issued at login and by the
	// sliding refresh.
	PurposeSession Purpose = "session"

	// PurposeEmailVerification marks one-shot tokens embedded in
	// verification links. Subject is the email address, not a user id.
	PurposeEmailVerification Purpose = "email-verification"
)

// Claims carried by every token. Subject and expiry live in the
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Purpose Purpose `json:"purpose"`
}

// GenerateToken issues a signed token for the subject with the given purpose
// and validity window.
func GenerateToken(subject string, purpose Purpose, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Purpose: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. An elapsed expiry yields common.ErrTokenExpired; any other
// failure (tampered payload, wrong key, malformed input) yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
