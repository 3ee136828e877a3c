// Package token signs and verifies the bearer tokens handed out at login.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
)

type skdClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer issues HS256 tokens carrying the user ID and role
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an issuer from auth settings
func NewJWTIssuer(settings config.AuthSettings) (*JWTIssuer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &JWTIssuer{
		secret: []byte(settings.JWTSecret),
		issuer: settings.Issuer,
		ttl:    settings.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for user
func (j *JWTIssuer) Issue(user *users.User) (string, time.Time, error) {
	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)

	claims := skdClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, issuer and expiry
func (j *JWTIssuer) Parse(tokenString string) (*users.Claims, error) {
	claims := &skdClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, users.ErrInvalidToken
	}
	return &users.Claims{UserID: claims.Subject, Role: claims.Role}, nil
}
