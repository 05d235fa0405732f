package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

type RequireRoleQuery struct {
	Email string
	Role  entities.Role
}

// RequireRoleUseCase is the role guard. It reads the stored user on every
// call so a revoked role is denied on the next request.
type RequireRoleUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc RequireRoleUseCase) Execute(ctx context.Context, query RequireRoleQuery) error {
	logger := application.ResolveLogger(uc.Logger)

	email := strings.TrimSpace(query.Email)
	if email == "" {
		return domainerrors.ErrUnauthenticated
	}

	stored := entities.RoleNone
	user, err := uc.Users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		stored = user.Role
	case errors.Is(err, domainerrors.ErrUserNotFound):
	default:
		logger.Error("role lookup failed",
			"event", "authz_role_lookup_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"required_role", string(query.Role),
			"error", err.Error(),
		)
		return err
	}

	if !services.Permits(stored, query.Role) {
		logger.Warn("role guard denied",
			"event", "authz_guard_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"required_role", string(query.Role),
			"stored_role", string(stored),
		)
		return domainerrors.ErrForbidden
	}
	return nil
}

// RequireAdmin and RequireInstructor are the two guard instantiations.
func (uc RequireRoleUseCase) RequireAdmin(ctx context.Context, email string) error {
	return uc.Execute(ctx, RequireRoleQuery{Email: email, Role: entities.RoleAdmin})
}

func (uc RequireRoleUseCase) RequireInstructor(ctx context.Context, email string) error {
	return uc.Execute(ctx, RequireRoleQuery{Email: email, Role: entities.RoleInstructor})
}
