package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

// SeedAdminUseCase makes sure a configured email exists with the admin role.
// It is the only path that grants a role without an authenticated admin.
type SeedAdminUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc SeedAdminUseCase) Execute(ctx context.Context, email string) error {
	logger := application.ResolveLogger(uc.Logger)

	email = strings.TrimSpace(email)
	if email == "" {
		return domainerrors.ErrInvalidEmail
	}
	if _, _, err := uc.Users.CreateUserIfAbsent(ctx, entities.User{Email: email, Role: entities.RoleNone}); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	user, err := uc.Users.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("load seeded admin: %w", err)
	}
	if user.Role == entities.RoleAdmin {
		return nil
	}
	if _, err := uc.Users.SetUserRole(ctx, user.ID, entities.RoleAdmin); err != nil {
		return fmt.Errorf("grant seeded admin: %w", err)
	}

	logger.Info("admin seeded",
		"event", "authz_admin_seeded",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return nil
}
