package db

import (
	"context"
	"database/sql"
	"fmt"

	"UserAuthAPI/internal/db/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending schema migrations from the embedded FS.
// Goose needs a database/sql connection, so it opens its own via the
// pgx stdlib driver rather than reusing the pool.
func Migrate(ctx context.Context, databaseURL string) error {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("migration db open error: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
