package ports

import (
	"context"
	"io"
	"time"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// CreateHomeInput carries all data needed to list a new home.
type CreateHomeInput struct {
	Address           string
	NumberOfBedrooms  int
	NumberOfBathrooms float64
	City              string
	Price             float64
	LandSize          float64
	PropertyType      domain.PropertyType
	Images            []string
	ListedDate        time.Time
	RealtorID         int64
	IdempotencyKey    string
}

// ImageUpload is a single image file sent by the owning realtor.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// HomeService defines use-case operations for homes.
type HomeService interface {
	ListHomes(ctx context.Context, filter domain.HomeFilter) ([]*domain.Home, error)
	GetHome(ctx context.Context, id int64) (*domain.Home, error)
	GetRealtorByHomeID(ctx context.Context, homeID int64) (*domain.User, error)
	CreateHome(ctx context.Context, input CreateHomeInput) (*domain.Home, error)
	UpdateHome(ctx context.Context, id int64, update domain.HomeUpdate) (*domain.Home, error)
	DeleteHome(ctx context.Context, id int64) error
	AddImage(ctx context.Context, id int64, upload ImageUpload) (*domain.Home, error)
}
