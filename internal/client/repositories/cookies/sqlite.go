package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, c models.StoredCookie) error {
	var expires int64
	if !c.Expires.IsZero() {
		expires = c.Expires.Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (host, name, value, path, secure, http_only, expires)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(host, name, path) DO UPDATE SET
			value = excluded.value,
			secure = excluded.secure,
			http_only = excluded.http_only,
			expires = excluded.expires
	`, c.Host, c.Name, c.Value, c.Path, c.Secure, c.HttpOnly, expires)
	if err != nil {
		return fmt.Errorf("failed to save cookie[%s@%s]: %w", c.Name, c.Host, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, host, name, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE host = ? AND name = ? AND path = ?`, host, name, path)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s@%s]: %w", name, host, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// List returns every stored cookie ordered by host and name.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.StoredCookie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT host, name, value, path, secure, http_only, expires
		FROM cookies
		ORDER BY host, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []models.StoredCookie
	for rows.Next() {
		var (
			c       models.StoredCookie
			expires int64
		)
		if err := rows.Scan(&c.Host, &c.Name, &c.Value, &c.Path, &c.Secure, &c.HttpOnly, &expires); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if expires != 0 {
			c.Expires = time.Unix(expires, 0).UTC()
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}

	return result, nil
}

// Apply runs on the handle it was given when that is already a transaction,
// and opens one when it is a *sql.DB.
func (r *SQLiteRepository) Apply(ctx context.Context, save, remove []models.StoredCookie) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return r.apply(ctx, save, remove)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).apply(ctx, save, remove)
	})
}

func (r *SQLiteRepository) apply(ctx context.Context, save, remove []models.StoredCookie) error {
	for _, c := range remove {
		if err := r.Delete(ctx, c.Host, c.Name, c.Path); err != nil {
			return err
		}
	}
	for _, c := range save {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
