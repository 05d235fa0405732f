package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

type RegisterUserCommand struct {
	Name  string
	Email string
	Photo string
}

type RegisterUserResult struct {
	UserID  string
	Created bool
}

// RegisterUserUseCase records a user on first sign-in. Users always start
// without a role.
type RegisterUserUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (RegisterUserResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return RegisterUserResult{}, domainerrors.ErrInvalidEmail
	}

	id, created, err := uc.Users.CreateUserIfAbsent(ctx, entities.User{
		Name:  strings.TrimSpace(cmd.Name),
		Email: email,
		Photo: strings.TrimSpace(cmd.Photo),
		Role:  entities.RoleNone,
	})
	if err != nil {
		logger.Error("register user failed",
			"event", "authz_register_user_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"error", err.Error(),
		)
		return RegisterUserResult{}, err
	}
	if !created {
		logger.Debug("user already registered",
			"event", "authz_register_user_exists",
			"module", "identity-access/authorization-service",
			"layer", "application",
		)
		return RegisterUserResult{}, nil
	}

	logger.Info("user registered",
		"event", "authz_user_registered",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", id,
	)
	return RegisterUserResult{UserID: id, Created: true}, nil
}
