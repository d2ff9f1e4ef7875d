package auth

import (
	"context"
	"time"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/pkg/auth"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type LogoutUseCase struct {
	tokens service.TokenStore
	logger logger.Logger
}

func NewLogoutUseCase(tokens service.TokenStore, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens, logger: log}
}

type LogoutInput struct {
	Claims *auth.CustomClaims
}

// Execute denylists the token id until the token would have expired anyway,
// so a stolen token stops working the moment its owner logs out.
func (uc *LogoutUseCase) Execute(ctx context.Context, input LogoutInput) error {
	ttl := time.Until(input.Claims.ExpiresAt.Time)
	return uc.tokens.Revoke(ctx, input.Claims.ID, ttl)
}
