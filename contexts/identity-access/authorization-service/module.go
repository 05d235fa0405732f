package authorization

import (
	"log/slog"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/adapters/docstore"
	httpadapter "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/adapters/http"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Handler   httpadapter.Handler
	SeedAdmin commands.SeedAdminUseCase
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		RegisterUser: commands.RegisterUserUseCase{Users: deps.Users, Logger: deps.Logger},
		AssignRole:   commands.AssignRoleUseCase{Users: deps.Users, Logger: deps.Logger},
		RequireRole:  queries.RequireRoleUseCase{Users: deps.Users, Logger: deps.Logger},
		CheckRole:    queries.CheckRoleUseCase{Users: deps.Users},
		ListUsers:    queries.ListUsersUseCase{Users: deps.Users, Logger: deps.Logger},
		Logger:       deps.Logger,
	}
	return Module{
		Handler:   handler,
		SeedAdmin: commands.SeedAdminUseCase{Users: deps.Users, Logger: deps.Logger},
	}
}

// NewDocstoreModule wires the module onto a shared document store.
func NewDocstoreModule(store docstore.Store, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Users:  docstoreadapter.NewRepository(store, logger),
		Logger: logger,
	})
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(store *memory.Store, logger *slog.Logger) Module {
	if store == nil {
		store = memory.NewStore()
	}
	return NewDocstoreModule(store, logger)
}
