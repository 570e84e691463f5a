package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jafa/internal/client/migrations"
	"github.com/dmitrijs2005/jafa/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/jafa/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Cookies cookies.Repository
	DB      *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, applies migrations and
// returns the repositories built on it. The caller closes Repositories.DB.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	repos := &Repositories{
		Cookies: cookies.NewSQLiteRepository(db),
		DB:      db,
	}
	return repos, nil
}
