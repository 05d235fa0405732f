package queries_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/adapters/docstore"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

func newRepository() *docstoreadapter.Repository {
	return docstoreadapter.NewRepository(memory.NewStore(), slog.Default())
}

func registerUser(t *testing.T, repo *docstoreadapter.Repository, email string) string {
	t.Helper()
	result, err := commands.RegisterUserUseCase{Users: repo}.Execute(context.Background(), commands.RegisterUserCommand{Email: email})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if !result.Created {
		t.Fatalf("expected %s to be created", email)
	}
	return result.UserID
}

func TestRequireRoleMatrix(t *testing.T) {
	repo := newRepository()
	ctx := context.Background()
	adminID := registerUser(t, repo, "admin@example.com")
	instructorID := registerUser(t, repo, "teacher@example.com")
	registerUser(t, repo, "student@example.com")

	assign := commands.AssignRoleUseCase{Users: repo}
	if _, err := assign.Execute(ctx, commands.AssignRoleCommand{UserID: adminID, Role: entities.RoleAdmin}); err != nil {
		t.Fatalf("assign admin: %v", err)
	}
	if _, err := assign.Execute(ctx, commands.AssignRoleCommand{UserID: instructorID, Role: entities.RoleInstructor}); err != nil {
		t.Fatalf("assign instructor: %v", err)
	}

	guard := queries.RequireRoleUseCase{Users: repo}
	cases := []struct {
		name    string
		email   string
		role    entities.Role
		wantErr error
	}{
		{"admin passes admin guard", "admin@example.com", entities.RoleAdmin, nil},
		{"admin is not an instructor", "admin@example.com", entities.RoleInstructor, domainerrors.ErrForbidden},
		{"instructor passes instructor guard", "teacher@example.com", entities.RoleInstructor, nil},
		{"instructor is not an admin", "teacher@example.com", entities.RoleAdmin, domainerrors.ErrForbidden},
		{"no role is denied", "student@example.com", entities.RoleAdmin, domainerrors.ErrForbidden},
		{"unknown user is denied", "ghost@example.com", entities.RoleInstructor, domainerrors.ErrForbidden},
		{"missing identity is unauthenticated", "", entities.RoleAdmin, domainerrors.ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := guard.Execute(ctx, queries.RequireRoleQuery{Email: tc.email, Role: tc.role})
			if tc.wantErr == nil && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRequireRoleReflectsRoleChangesImmediately(t *testing.T) {
	repo := newRepository()
	ctx := context.Background()
	userID := registerUser(t, repo, "teacher@example.com")
	guard := queries.RequireRoleUseCase{Users: repo}

	if err := guard.RequireInstructor(ctx, "teacher@example.com"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden before grant, got %v", err)
	}
	if _, err := (commands.AssignRoleUseCase{Users: repo}).Execute(ctx, commands.AssignRoleCommand{UserID: userID, Role: entities.RoleInstructor}); err != nil {
		t.Fatalf("assign instructor: %v", err)
	}
	if err := guard.RequireInstructor(ctx, "teacher@example.com"); err != nil {
		t.Fatalf("expected allow right after grant, got %v", err)
	}
	if _, err := (commands.AssignRoleUseCase{Users: repo}).Execute(ctx, commands.AssignRoleCommand{UserID: userID, Role: entities.RoleAdmin}); err != nil {
		t.Fatalf("assign admin: %v", err)
	}
	if err := guard.RequireInstructor(ctx, "teacher@example.com"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden right after role change, got %v", err)
	}
}

func TestCheckRoleReturnsStoredMembership(t *testing.T) {
	repo := newRepository()
	ctx := context.Background()
	userID := registerUser(t, repo, "admin@example.com")
	check := queries.CheckRoleUseCase{Users: repo}

	isAdmin, err := check.Execute(ctx, queries.CheckRoleQuery{Email: "admin@example.com", Role: entities.RoleAdmin})
	if err != nil || isAdmin {
		t.Fatalf("expected false before grant, got %v err=%v", isAdmin, err)
	}
	if _, err := (commands.AssignRoleUseCase{Users: repo}).Execute(ctx, commands.AssignRoleCommand{UserID: userID, Role: entities.RoleAdmin}); err != nil {
		t.Fatalf("assign admin: %v", err)
	}
	isAdmin, err = check.Execute(ctx, queries.CheckRoleQuery{Email: "admin@example.com", Role: entities.RoleAdmin})
	if err != nil || !isAdmin {
		t.Fatalf("expected true after grant, got %v err=%v", isAdmin, err)
	}
	unknown, err := check.Execute(ctx, queries.CheckRoleQuery{Email: "ghost@example.com", Role: entities.RoleAdmin})
	if err != nil || unknown {
		t.Fatalf("expected false for unknown user, got %v err=%v", unknown, err)
	}
}
