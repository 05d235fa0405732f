package enrollment

import (
	"log/slog"
	"time"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/docstore"
	httpadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/http"
	sandboxprovider "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/sandbox"
	systemadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/system"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/application/workers"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/messaging"
)

// Module is the enrollment-service composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.EnrollmentTaskConsumer
}

type Settings struct {
	Currency        string
	ProviderTimeout time.Duration
	SeatPolicy      entities.SeatPolicy
	TaskTimeout     time.Duration
}

type Dependencies struct {
	Provider   ports.PaymentIntentProvider
	Payments   ports.PaymentRepository
	Selections ports.SelectionRemover
	Classes    ports.ClassCounter
	Publisher  ports.EventPublisher
	Subscriber ports.EventSubscriber
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Settings   Settings
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreatePaymentIntent: commands.CreatePaymentIntentUseCase{
				Provider: deps.Provider,
				Currency: deps.Settings.Currency,
				Timeout:  deps.Settings.ProviderTimeout,
				Logger:   deps.Logger,
			},
			CompletePayment: commands.CompletePaymentUseCase{
				Payments:   deps.Payments,
				Selections: deps.Selections,
				Clock:      deps.Clock,
				SeatPolicy: deps.Settings.SeatPolicy,
				Logger:     deps.Logger,
			},
			DispatchEnrollment: commands.DispatchEnrollmentUseCase{
				Publisher: deps.Publisher,
				IDGen:     deps.IDGen,
				Clock:     deps.Clock,
				Timeout:   deps.Settings.TaskTimeout,
				Logger:    deps.Logger,
			},
			ListPayments: queries.ListPaymentsUseCase{Payments: deps.Payments},
			Logger:       deps.Logger,
		},
		Consumer: workers.EnrollmentTaskConsumer{
			Subscriber: deps.Subscriber,
			Classes:    deps.Classes,
			Logger:     deps.Logger,
		},
	}
}

// NewDocstoreModule wires the module onto a shared document store and bus.
func NewDocstoreModule(
	store docstore.Store,
	bus *messaging.Bus,
	provider ports.PaymentIntentProvider,
	settings Settings,
	logger *slog.Logger,
) Module {
	repo := docstoreadapter.NewRepository(store)
	return NewModule(Dependencies{
		Provider:   provider,
		Payments:   repo,
		Selections: repo,
		Classes:    repo,
		Publisher:  bus,
		Subscriber: bus,
		Clock:      systemadapter.SystemClock{},
		IDGen:      systemadapter.UUIDGenerator{},
		Settings:   settings,
		Logger:     logger,
	})
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the sandbox payment provider.
func NewInMemoryModule(store *memory.Store, bus *messaging.Bus, settings Settings, logger *slog.Logger) Module {
	if store == nil {
		store = memory.NewStore()
	}
	if bus == nil {
		bus = messaging.NewBus(0, logger)
	}
	return NewDocstoreModule(store, bus, sandboxprovider.NewProvider(), settings, logger)
}
