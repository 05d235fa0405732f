package classcatalog

import (
	"log/slog"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/adapters/docstore"
	httpadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/adapters/http"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

// Module is the class-catalog-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Classes     ports.ClassRepository
	Instructors ports.InstructorRepository
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateClass:      commands.CreateClassUseCase{Classes: deps.Classes, Logger: deps.Logger},
			UpdateClass:      commands.UpdateClassUseCase{Classes: deps.Classes, Logger: deps.Logger},
			SetClassStatus:   commands.SetClassStatusUseCase{Classes: deps.Classes, Logger: deps.Logger},
			SetClassFeedback: commands.SetClassFeedbackUseCase{Classes: deps.Classes, Logger: deps.Logger},
			ListTopClasses:   queries.ListApprovedTopClassesUseCase{Classes: deps.Classes, Logger: deps.Logger},
			ListClasses:      queries.ListAllClassesUseCase{Classes: deps.Classes},
			GetClass:         queries.GetClassUseCase{Classes: deps.Classes},
			ListInstructors:  queries.ListInstructorsUseCase{Instructors: deps.Instructors},
			Logger:           deps.Logger,
		},
	}
}

func NewDocstoreModule(store docstore.Store, logger *slog.Logger) Module {
	repo := docstoreadapter.NewRepository(store, logger)
	return NewModule(Dependencies{
		Classes:     repo,
		Instructors: repo,
		Logger:      logger,
	})
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(store *memory.Store, logger *slog.Logger) Module {
	if store == nil {
		store = memory.NewStore()
	}
	return NewDocstoreModule(store, logger)
}
