package commands

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

type AssignRoleCommand struct {
	UserID string
	Role   entities.Role
}

// AssignRoleUseCase sets the stored role of a user. Unknown ids match nothing
// and are reported through the zero counts, not as an error.
type AssignRoleUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc AssignRoleUseCase) Execute(ctx context.Context, cmd AssignRoleCommand) (ports.UpdateResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return ports.UpdateResult{}, domainerrors.ErrInvalidUserID
	}
	if !services.Assignable(cmd.Role) {
		return ports.UpdateResult{}, domainerrors.ErrInvalidRole
	}

	result, err := uc.Users.SetUserRole(ctx, userID, cmd.Role)
	if err != nil {
		logger.Error("assign role failed",
			"event", "authz_assign_role_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"user_id", userID,
			"role", string(cmd.Role),
			"error", err.Error(),
		)
		return ports.UpdateResult{}, err
	}

	logger.Info("role assigned",
		"event", "authz_role_assigned",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", userID,
		"role", string(cmd.Role),
		"matched", result.MatchedCount,
	)
	return result, nil
}
