package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded schema migrations on a dedicated connection.
func Migrate(dsn string, logger *slog.Logger) error {
	if dsn == "" {
		return errors.New("postgres dsn is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("init migration driver: %w", err)
	}
	runner, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("init migrator: %w", err)
	}
	defer func() {
		sourceErr, dbErr := runner.Close()
		if sourceErr != nil || dbErr != nil {
			logger.Warn("migration runner close failed",
				"event", "db_migrate_close_failed",
				"module", "internal/platform/db",
				"layer", "platform",
				"source_error", fmt.Sprint(sourceErr),
				"db_error", fmt.Sprint(dbErr),
			)
		}
	}()

	if err := runner.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := runner.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("database migrations applied",
		"event", "db_migrations_applied",
		"module", "internal/platform/db",
		"layer", "platform",
		"version", version,
		"dirty", dirty,
	)
	return nil
}
