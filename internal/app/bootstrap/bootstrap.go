package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	authorization "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service"
	sessiontoken "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service"
	classcatalog "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service"
	enrollment "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service"
	sandboxprovider "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/sandbox"
	stripeadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/stripe"
	enrollmententities "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/ports"
	selectionledger "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/config"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/db"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
	mongostore "github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/mongo"
	postgresstore "github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/postgres"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/httpserver"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server          *httpserver.Server
	store           docstore.Store
	bus             *messaging.Bus
	enrollment      enrollment.Module
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewLogger builds the process logger and installs it as the slog default.
func NewLogger(cfg config.Config, process string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler).With("service", cfg.ServiceName, "process", process)
	slog.SetDefault(logger)
	return logger
}

// BuildAPI opens the store once for the life of the process and wires every
// module onto it.
func BuildAPI(ctx context.Context, cfg config.Config) (*APIApp, error) {
	logger := NewLogger(cfg, "api")

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := sessiontoken.NewJWTModule(cfg.AccessTokenSecret, cfg.AccessTokenTTL, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	seatPolicy, ok := enrollmententities.ParseSeatPolicy(cfg.EnrollmentSeatPolicy)
	if !ok {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("unsupported seat policy %q", cfg.EnrollmentSeatPolicy)
	}
	if seatPolicy == enrollmententities.SeatPolicyFirst {
		logger.Warn("legacy seat policy enabled: only the first purchased class is adjusted",
			"event", "bootstrap_seat_policy_first",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	provider, err := paymentProvider(cfg, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	bus := messaging.NewBus(64, logger)
	authModule := authorization.NewDocstoreModule(store, logger)
	enrollmentModule := enrollment.NewDocstoreModule(store, bus, provider, enrollment.Settings{
		Currency:        cfg.PaymentCurrency,
		ProviderTimeout: cfg.PaymentProviderTimeout,
		SeatPolicy:      seatPolicy,
		TaskTimeout:     cfg.EnrollmentTaskTimeout,
	}, logger)

	if cfg.AdminEmail != "" {
		if err := authModule.SeedAdmin.Execute(ctx, cfg.AdminEmail); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	server := httpserver.New(httpserver.Modules{
		SessionToken:  sessions,
		Authorization: authModule,
		Catalog:       classcatalog.NewDocstoreModule(store, logger),
		Selections:    selectionledger.NewDocstoreModule(store, logger),
		Enrollment:    enrollmentModule,
	}, httpserver.Config{
		Addr:              normalizeAddr(cfg.HTTPPort),
		EnforceRoleGuards: cfg.EnforceRoleGuards,
		HealthCheck:       store.Ping,
	}, logger)

	if !cfg.EnforceRoleGuards {
		logger.Warn("role guards disabled on legacy routes",
			"event", "bootstrap_role_guards_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	return &APIApp{
		server:          server,
		store:           store,
		bus:             bus,
		enrollment:      enrollmentModule,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// Run serves until ctx is cancelled, then stops accepting requests, lets
// queued enrollment tasks finish and closes the store.
func (a *APIApp) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := a.enrollment.Consumer.Start(workerCtx); err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return a.server.Start()
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		err := a.server.Shutdown(shutdownCtx)

		stopWorkers()
		a.bus.Wait()
		a.logger.Info("api app stopped",
			"event", "bootstrap_api_stopped",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return err
	})
	return group.Wait()
}

func (a *APIApp) Close() error {
	if a.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.store.Close(ctx)
}

// Migrate applies the postgres schema for the postgres store driver.
func Migrate(cfg config.Config) error {
	logger := NewLogger(cfg, "migrate")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	return db.Migrate(cfg.PostgresDSN, logger)
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("in-memory store selected; data is lost on restart",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return memory.NewStore(), nil
	case config.StoreDriverPostgres:
		if cfg.PostgresAutoMigrate {
			if err := db.Migrate(cfg.PostgresDSN, logger); err != nil {
				return nil, err
			}
		}
		pg, err := db.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgresstore.NewStore(pg.DB, logger), nil
	default:
		store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func paymentProvider(cfg config.Config, logger *slog.Logger) (ports.PaymentIntentProvider, error) {
	if strings.TrimSpace(cfg.PaymentSecretKey) == "" {
		logger.Warn("PAYMENT_SECRET_KEY not set; using sandbox payment provider",
			"event", "bootstrap_payment_sandbox",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return sandboxprovider.NewProvider(), nil
	}
	provider, err := stripeadapter.NewProvider(cfg.PaymentSecretKey)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":5000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
