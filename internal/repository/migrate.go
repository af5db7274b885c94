package repository

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/underthec/deepsea/internal/migrations"
)

// RunMigrations applies the embedded goose migrations to the write store.
// Called once at startup before any repository is used.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
