package selectionledger

import (
	"log/slog"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/adapters/docstore"
	httpadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/adapters/http"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

// Module is the selection-ledger composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Selections ports.SelectionRepository
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			AddSelection:    commands.AddSelectionUseCase{Selections: deps.Selections, Logger: deps.Logger},
			RemoveSelection: commands.RemoveSelectionUseCase{Selections: deps.Selections, Logger: deps.Logger},
			ListSelections:  queries.ListSelectionsUseCase{Selections: deps.Selections},
			FindSelection:   queries.FindSelectionUseCase{Selections: deps.Selections},
		},
	}
}

func NewDocstoreModule(store docstore.Store, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Selections: docstoreadapter.NewRepository(store),
		Logger:     logger,
	})
}

func NewInMemoryModule(store *memory.Store, logger *slog.Logger) Module {
	if store == nil {
		store = memory.NewStore()
	}
	return NewDocstoreModule(store, logger)
}
