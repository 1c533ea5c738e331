// README: goose migrations embedded in the binary, run over a database/sql bridge to the pgx pool.
package infra

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func withGoose(fn func() error) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return fn()
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	const operation = "infra.MigrateUp"
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	log.Info("running database migrations")
	if err := withGoose(func() error { return goose.UpContext(ctx, db, migrationsDir) }); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	log.Info("database migrations completed")
	return nil
}

// MigrateDown rolls back the latest migration.
func MigrateDown(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	const operation = "infra.MigrateDown"
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	log.Info("rolling back last migration")
	if err := withGoose(func() error { return goose.DownContext(ctx, db, migrationsDir) }); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

// MigrationStatus prints goose's status table through its logger.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := withGoose(func() error { return goose.StatusContext(ctx, db, migrationsDir) }); err != nil {
		return fmt.Errorf("infra.MigrationStatus: %w", err)
	}
	return nil
}

// MigrationVersion returns the applied schema version.
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	var version int64
	err := withGoose(func() error {
		v, err := goose.GetDBVersionContext(ctx, db)
		version = v
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("infra.MigrationVersion: %w", err)
	}
	return version, nil
}
