package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/ports"
)

const defaultTokenTTL = time.Hour

type IssueTokenCommand struct {
	Email string
	Name  string
}

type IssueTokenResult struct {
	Token     string
	ExpiresAt time.Time
}

type IssueTokenUseCase struct {
	Signer ports.TokenSigner
	Clock  ports.Clock
	TTL    time.Duration
	Logger *slog.Logger
}

func (uc IssueTokenUseCase) Execute(_ context.Context, cmd IssueTokenCommand) (IssueTokenResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return IssueTokenResult{}, domainerrors.ErrInvalidEmail
	}

	ttl := uc.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	// Token timestamps carry second precision.
	now := uc.Clock.Now().UTC().Truncate(time.Second)
	claims := entities.IdentityClaims{
		Email:     email,
		Name:      strings.TrimSpace(cmd.Name),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := uc.Signer.Sign(claims)
	if err != nil {
		logger.Error("session token signing failed",
			"event", "session_token_sign_failed",
			"module", "identity-access/session-token-service",
			"layer", "application",
			"error", err.Error(),
		)
		return IssueTokenResult{}, err
	}

	logger.Info("session token issued",
		"event", "session_token_issued",
		"module", "identity-access/session-token-service",
		"layer", "application",
		"expires_at", claims.ExpiresAt,
	)
	return IssueTokenResult{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
