// Package jwtauth signs and validates the HS256 bearer tokens handed out by
// the login endpoint and checked by the auth middleware.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/productmgmt/product-api/internal/core/domain"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Config holds the signing secret and the claims every token must carry.
type Config struct {
	Key      string
	Issuer   string
	Audience string
	// ClockSkew is the leeway applied to exp/nbf/iat checks.
	ClockSkew time.Duration
}

// Claims is the token payload.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal returns the identity the token was issued to.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{Username: c.Name, Role: c.Role}
}

// Sign issues a token for p valid from now until now+TokenTTL and returns it
// together with the expiry written into the exp claim.
func Sign(cfg Config, p domain.Principal, now time.Time) (string, time.Time, error) {
	claims := Claims{
		Name: p.Username,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.Username,
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Parse verifies signature, algorithm, issuer, audience and expiry. Every
// failure wraps ErrInvalidToken.
func Parse(cfg Config, raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.ClockSkew),
	)

	claims := &Claims{}
	tkn, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Key), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Reason classifies a Parse error into a short metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return "not_yet_valid"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "signature"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "audience"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing_claim"
	default:
		return "malformed"
	}
}
