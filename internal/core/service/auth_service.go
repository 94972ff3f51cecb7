package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/productmgmt/product-api/internal/api/metrics"
	"github.com/productmgmt/product-api/internal/core/domain"
	"github.com/productmgmt/product-api/internal/core/ports"
	"github.com/productmgmt/product-api/internal/pkg/jwtauth"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	verifier ports.CredentialVerifier
	tokens   jwtauth.Config
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(verifier ports.CredentialVerifier, tokens jwtauth.Config, logger zerolog.Logger) *AuthService {
	return &AuthService{verifier: verifier, tokens: tokens, logger: logger, now: time.Now}
}

// Login returns domain.ErrInvalidCredentials for any rejected pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.IssuedToken, error) {
	principal, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			s.logger.Warn().Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	token, expiresAt, err := jwtauth.Sign(s.tokens, *principal, s.now().UTC())
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", principal.Username).Time("expires_at", expiresAt).Msg("token issued")

	return &ports.IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}
