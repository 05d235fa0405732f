package ports

import (
	"context"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
)

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    string
}

type UserRepository interface {
	// FindUserByEmail returns domainerrors.ErrUserNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (entities.User, error)
	// CreateUserIfAbsent is a no-op returning created=false when the email exists.
	CreateUserIfAbsent(ctx context.Context, user entities.User) (string, bool, error)
	SetUserRole(ctx context.Context, userID string, role entities.Role) (UpdateResult, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}
