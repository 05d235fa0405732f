package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
)

type CheckRoleQuery struct {
	Email string
	Role  entities.Role
}

// CheckRoleUseCase answers role membership for an arbitrary email from the
// stored record only.
type CheckRoleUseCase struct {
	Users ports.UserRepository
}

func (uc CheckRoleUseCase) Execute(ctx context.Context, query CheckRoleQuery) (bool, error) {
	email := strings.TrimSpace(query.Email)
	if email == "" {
		return false, domainerrors.ErrInvalidEmail
	}

	user, err := uc.Users.FindUserByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return services.Permits(user.Role, query.Role), nil
}
