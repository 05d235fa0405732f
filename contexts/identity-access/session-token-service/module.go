package sessiontoken

import (
	"log/slog"
	"time"

	httpadapter "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/adapters/http"
	jwtadapter "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/adapters/jwt"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/ports"
)

// Module is the session-token-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Signer   ports.TokenSigner
	Clock    ports.Clock
	TokenTTL time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			IssueToken: commands.IssueTokenUseCase{
				Signer: deps.Signer,
				Clock:  deps.Clock,
				TTL:    deps.TokenTTL,
				Logger: deps.Logger,
			},
			VerifyToken: queries.VerifyTokenUseCase{
				Signer: deps.Signer,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewJWTModule builds the module on the HS256 signer and the system clock.
func NewJWTModule(secret string, ttl time.Duration, logger *slog.Logger) (Module, error) {
	signer, err := jwtadapter.NewSigner(secret, "fluent-academy")
	if err != nil {
		return Module{}, err
	}
	return NewModule(Dependencies{
		Signer:   signer,
		Clock:    jwtadapter.SystemClock{},
		TokenTTL: ttl,
		Logger:   logger,
	}), nil
}
