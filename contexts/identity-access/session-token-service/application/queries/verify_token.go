package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/ports"
)

type VerifyTokenQuery struct {
	Token string
}

type VerifyTokenUseCase struct {
	Signer ports.TokenSigner
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc VerifyTokenUseCase) Execute(_ context.Context, query VerifyTokenQuery) (entities.IdentityClaims, error) {
	logger := application.ResolveLogger(uc.Logger)

	token := strings.TrimSpace(query.Token)
	if token == "" {
		return entities.IdentityClaims{}, domainerrors.ErrUnauthenticated
	}

	claims, err := uc.Signer.Parse(token, uc.Clock.Now().UTC())
	if err != nil {
		logger.Debug("session token rejected",
			"event", "session_token_rejected",
			"module", "identity-access/session-token-service",
			"layer", "application",
			"error", err.Error(),
		)
		if errors.Is(err, domainerrors.ErrUnauthenticated) {
			return entities.IdentityClaims{}, err
		}
		return entities.IdentityClaims{}, errors.Join(domainerrors.ErrUnauthenticated, err)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return entities.IdentityClaims{}, domainerrors.ErrUnauthenticated
	}
	return claims, nil
}
