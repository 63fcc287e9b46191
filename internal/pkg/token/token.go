// Package token issues and verifies the HS256 identity tokens handed out at
// signup and signin.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload: {name, is, exp}. "is" holds the user ID.
type Claims struct {
	Name   string `json:"name"`
	UserID int64  `json:"is"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user that expires ttl after now.
func Issue(secret string, user domain.UserInfo, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", domain.ErrMissingSigningKey
	}
	claims := Claims{
		Name:   user.Name,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the embedded identity.
// Extra parser options (e.g. jwt.WithTimeFunc) are passed through.
func Parse(secret, raw string, opts ...jwt.ParserOption) (domain.UserInfo, error) {
	claims := &Claims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return domain.UserInfo{}, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return domain.UserInfo{}, ErrInvalidToken
	}
	return domain.UserInfo{ID: claims.UserID, Name: claims.Name}, nil
}
