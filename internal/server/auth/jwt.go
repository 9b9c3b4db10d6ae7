// Package auth issues and verifies the session tokens handed to clients.
// Tokens are HS256 JWTs whose subject is the user id; clients treat them as
// opaque strings.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims only; the user id is the subject.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, validity: validity}
}

// Issue mints a token for userID. A non-positive validity yields a token without expiry.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}}
	if i.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(i.validity))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// UserID validates token and returns its subject. Every failure, including
// expiry, is reported as common.ErrSessionInvalid.
func (i *TokenIssuer) UserID(token string) (string, error) {
	if token == "" {
		return "", common.ErrSessionInvalid
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", common.ErrSessionInvalid)
		}
		return "", fmt.Errorf("%w: %v", common.ErrSessionInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", common.ErrSessionInvalid
	}

	return claims.Subject, nil
}
