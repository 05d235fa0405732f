package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application/queries"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/transport/http"
)

type Handler struct {
	IssueToken  commands.IssueTokenUseCase
	VerifyToken queries.VerifyTokenUseCase
	Logger      *slog.Logger
}

// IssueTokenHandler godoc
// @Summary Issue session token
// @Description Signs a one hour session token for the posted identity.
// @Tags session-token
// @Accept json
// @Produce json
// @Param request body httptransport.IssueTokenRequest true "Identity claims"
// @Success 200 {object} httptransport.IssueTokenResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /jwt [post]
func (h Handler) IssueTokenHandler(ctx context.Context, req httptransport.IssueTokenRequest) (httptransport.IssueTokenResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.IssueToken.Execute(ctx, commands.IssueTokenCommand{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		logger.Warn("issue token request failed",
			"event", "http_issue_token_failed",
			"module", "identity-access/session-token-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.IssueTokenResponse{}, err
	}
	return httptransport.IssueTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// AuthenticateHandler verifies a bearer token and returns the identity it carries.
func (h Handler) AuthenticateHandler(ctx context.Context, token string) (httptransport.IdentityResponse, error) {
	claims, err := h.VerifyToken.Execute(ctx, queries.VerifyTokenQuery{Token: token})
	if err != nil {
		return httptransport.IdentityResponse{}, err
	}
	return httptransport.IdentityResponse{
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
