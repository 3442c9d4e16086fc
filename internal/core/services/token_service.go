package services

import (
	"context"
	"fmt"
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/utils"
)

// tokenService issues signed access tokens for authenticated reviewers.
type tokenService struct {
	secret         string
	expiryDuration time.Duration
	issuer         string
}

// NewTokenService creates a new TokenSvcFacade.
func NewTokenService(secret string, expiryDuration time.Duration, issuer string) portssvc.TokenSvcFacade {
	return &tokenService{secret: secret, expiryDuration: expiryDuration, issuer: issuer}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken issues an HS256 JWT for the reviewer and returns it with
// its unix expiry.
func (s *tokenService) GenerateAccessToken(ctx context.Context, reviewer *domain.Reviewer) (string, int64, error) {
	token, err := utils.GenerateJWT(reviewer.ReviewerID, s.secret, s.expiryDuration, s.issuer)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, time.Now().Add(s.expiryDuration).Unix(), nil
}
