package ports

import (
	"context"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// HomeRepository defines persistence operations for homes.
type HomeRepository interface {
	// List returns every home matching filter. No pagination is applied.
	List(ctx context.Context, filter domain.HomeFilter) ([]*domain.Home, error)
	FindByID(ctx context.Context, id int64) (*domain.Home, error)
	// FindRealtorByHomeID returns the owner of the home, or domain.ErrHomeNotFound.
	FindRealtorByHomeID(ctx context.Context, homeID int64) (*domain.User, error)
	// Create assigns the home ID.
	Create(ctx context.Context, home *domain.Home) error
	Update(ctx context.Context, id int64, update domain.HomeUpdate) (*domain.Home, error)
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, id int64, url string) (*domain.Home, error)
}
