package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/utils"
	"github.com/bankops-oss/maker_checker_app/pkg/config"
)

// tokenService implements the TokenSvcFacade for issuing and validating JWTs.
// It requires access to application configuration for secrets and expiry times.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
// The token subject is the user's email, which is the identity key of the
// directory.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// ValidateAccessToken verifies the token signature and standard claims and
// returns the subject email.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnauthenticated, err.Error())
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthenticated)
	}
	return claims.Subject, nil
}
