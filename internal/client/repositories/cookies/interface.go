package cookies

import (
	"context"

	"github.com/dmitrijs2005/jafa/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, c models.StoredCookie) error
	Delete(ctx context.Context, host, name, path string) error
	List(ctx context.Context) ([]models.StoredCookie, error)
	Clear(ctx context.Context) error
	// Apply saves and removes cookies of one response as a single unit.
	Apply(ctx context.Context, save, remove []models.StoredCookie) error
}
