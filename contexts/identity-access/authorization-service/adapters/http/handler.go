package httpadapter

import (
	"context"
	"log/slog"

	application "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/transport/http"
)

const userExistsMessage = "user already exists"

type Handler struct {
	RegisterUser commands.RegisterUserUseCase
	AssignRole   commands.AssignRoleUseCase
	RequireRole  queries.RequireRoleUseCase
	CheckRole    queries.CheckRoleUseCase
	ListUsers    queries.ListUsersUseCase
	Logger       *slog.Logger
}

// RegisterUserHandler godoc
// @Summary Register user
// @Description Idempotent user creation on first sign-in.
// @Tags authorization
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterUserRequest true "User"
// @Success 200 {object} httptransport.RegisterUserResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /users [post]
func (h Handler) RegisterUserHandler(ctx context.Context, req httptransport.RegisterUserRequest) (httptransport.RegisterUserResponse, error) {
	result, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	})
	if err != nil {
		return httptransport.RegisterUserResponse{}, err
	}
	if !result.Created {
		return httptransport.RegisterUserResponse{Message: userExistsMessage}, nil
	}
	return httptransport.RegisterUserResponse{
		Acknowledged: true,
		InsertedID:   result.UserID,
	}, nil
}

// AssignRoleHandler godoc
// @Summary Assign role
// @Tags authorization
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UpdateResultResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /users/admin/{id} [patch]
// @Router /users/instructor/{id} [patch]
func (h Handler) AssignRoleHandler(ctx context.Context, userID string, role entities.Role) (httptransport.UpdateResultResponse, error) {
	result, err := h.AssignRole.Execute(ctx, commands.AssignRoleCommand{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		return httptransport.UpdateResultResponse{}, err
	}
	return httptransport.UpdateResultResponse{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}, nil
}

// RequireRoleHandler returns nil when the verified email holds role.
func (h Handler) RequireRoleHandler(ctx context.Context, email string, role entities.Role) error {
	err := h.RequireRole.Execute(ctx, queries.RequireRoleQuery{Email: email, Role: role})
	if err != nil {
		application.ResolveLogger(h.Logger).Debug("guarded request rejected",
			"event", "http_guard_rejected",
			"module", "identity-access/authorization-service",
			"layer", "transport",
			"required_role", string(role),
			"error", err.Error(),
		)
	}
	return err
}

// CheckAdminHandler godoc
// @Summary Check admin role
// @Tags authorization
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} httptransport.AdminCheckResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /users/admin/{email} [get]
func (h Handler) CheckAdminHandler(ctx context.Context, email string) (httptransport.AdminCheckResponse, error) {
	allowed, err := h.CheckRole.Execute(ctx, queries.CheckRoleQuery{Email: email, Role: entities.RoleAdmin})
	if err != nil {
		return httptransport.AdminCheckResponse{}, err
	}
	return httptransport.AdminCheckResponse{Admin: allowed}, nil
}

// CheckInstructorHandler godoc
// @Summary Check instructor role
// @Tags authorization
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} httptransport.InstructorCheckResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /users/instructor/{email} [get]
func (h Handler) CheckInstructorHandler(ctx context.Context, email string) (httptransport.InstructorCheckResponse, error) {
	allowed, err := h.CheckRole.Execute(ctx, queries.CheckRoleQuery{Email: email, Role: entities.RoleInstructor})
	if err != nil {
		return httptransport.InstructorCheckResponse{}, err
	}
	return httptransport.InstructorCheckResponse{Instructor: allowed}, nil
}

// ListUsersHandler godoc
// @Summary List users
// @Tags authorization
// @Produce json
// @Security BearerAuth
// @Success 200 {array} httptransport.UserDTO
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /users [get]
func (h Handler) ListUsersHandler(ctx context.Context) ([]httptransport.UserDTO, error) {
	users, err := h.ListUsers.Execute(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserDTO, 0, len(users))
	for _, user := range users {
		item := httptransport.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Photo: user.Photo,
		}
		if user.Role != entities.RoleNone {
			item.Role = string(user.Role)
		}
		items = append(items, item)
	}
	return items, nil
}
