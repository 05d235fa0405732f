package queries

import (
	"context"
	"log/slog"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

type ListUsersUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc ListUsersUseCase) Execute(ctx context.Context) ([]entities.User, error) {
	users, err := uc.Users.ListUsers(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("list users failed",
			"event", "authz_list_users_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return users, nil
}
