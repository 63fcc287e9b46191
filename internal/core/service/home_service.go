package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/pkg/metrics"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// ErrImagesDisabled is returned by AddImage when no image store is configured.
var ErrImagesDisabled = errors.New("image uploads are not configured")

type HomeService struct {
	repo   ports.HomeRepository
	events ports.EventPublisher
	idem   ports.IdempotencyStore
	images ports.ImageStore
	logger zerolog.Logger
	now    func() time.Time
}

// HomeServiceOption configures optional collaborators.
type HomeServiceOption func(*HomeService)

// WithIdempotency enables Idempotency-Key handling on create.
func WithIdempotency(store ports.IdempotencyStore) HomeServiceOption {
	return func(s *HomeService) { s.idem = store }
}

// WithImageStore enables image uploads.
func WithImageStore(store ports.ImageStore) HomeServiceOption {
	return func(s *HomeService) { s.images = store }
}

func NewHomeService(repo ports.HomeRepository, events ports.EventPublisher, logger zerolog.Logger, opts ...HomeServiceOption) *HomeService {
	s := &HomeService{repo: repo, events: events, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HomeService) ListHomes(ctx context.Context, filter domain.HomeFilter) ([]*domain.Home, error) {
	return s.repo.List(ctx, filter)
}

func (s *HomeService) GetHome(ctx context.Context, id int64) (*domain.Home, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HomeService) GetRealtorByHomeID(ctx context.Context, homeID int64) (*domain.User, error) {
	return s.repo.FindRealtorByHomeID(ctx, homeID)
}

// CreateHome lists a new home owned by input.RealtorID. If an idempotency key
// is provided and already seen, the previously created home is returned.
func (s *HomeService) CreateHome(ctx context.Context, input ports.CreateHomeInput) (*domain.Home, error) {
	key := s.idempotencyKey(input)
	if key != "" {
		homeID, seen, err := s.idem.Lookup(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if seen {
			existing, err := s.repo.FindByID(ctx, homeID)
			if err == nil {
				metrics.IdempotentReplaysTotal.Inc()
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("home_id", homeID).Msg("idempotent replay")
				return existing, nil
			}
			if !errors.Is(err, domain.ErrHomeNotFound) {
				return nil, err
			}
		}
	}

	now := s.now().UTC()
	listed := input.ListedDate
	if listed.IsZero() {
		listed = now
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}
	home := &domain.Home{
		Address:           input.Address,
		NumberOfBedrooms:  input.NumberOfBedrooms,
		NumberOfBathrooms: input.NumberOfBathrooms,
		City:              input.City,
		ListedDate:        listed,
		Price:             input.Price,
		LandSize:          input.LandSize,
		PropertyType:      input.PropertyType,
		Images:            images,
		RealtorID:         input.RealtorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, home); err != nil {
		s.logger.Error().Err(err).Msg("failed to create home")
		return nil, err
	}

	if key != "" {
		if err := s.idem.Remember(ctx, key, home.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.HomesCreatedTotal.WithLabelValues(string(home.PropertyType)).Inc()
	s.logger.Info().Int64("home_id", home.ID).Int64("realtor_id", home.RealtorID).Msg("home created")
	s.emit(domain.ListingCreated, home.ID, home.RealtorID)

	return home, nil
}

func (s *HomeService) UpdateHome(ctx context.Context, id int64, update domain.HomeUpdate) (*domain.Home, error) {
	home, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	metrics.HomeMutationsTotal.WithLabelValues("update").Inc()
	s.emit(domain.ListingUpdated, home.ID, home.RealtorID)
	return home, nil
}

func (s *HomeService) DeleteHome(ctx context.Context, id int64) error {
	home, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.HomeMutationsTotal.WithLabelValues("delete").Inc()

	if s.images != nil && len(home.Images) > 0 {
		if err := s.images.DeletePrefix(ctx, imagePrefix(id)); err != nil {
			s.logger.Warn().Err(err).Int64("home_id", id).Msg("failed to remove home images")
		}
	}

	s.emit(domain.ListingDeleted, id, home.RealtorID)
	return nil
}

// AddImage uploads an image for the home and appends its URL.
func (s *HomeService) AddImage(ctx context.Context, id int64, upload ports.ImageUpload) (*domain.Home, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	key := imagePrefix(id) + uuid.NewString() + strings.ToLower(path.Ext(upload.Filename))
	url, err := s.images.Put(ctx, key, upload)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	home, err := s.repo.AddImage(ctx, id, url)
	if err != nil {
		return nil, err
	}
	metrics.HomeMutationsTotal.WithLabelValues("image").Inc()
	s.emit(domain.ListingImageAdded, home.ID, home.RealtorID)
	return home, nil
}

// idempotencyKey scopes the client key to the realtor so two realtors
// cannot collide on the same value.
func (s *HomeService) idempotencyKey(input ports.CreateHomeInput) string {
	if s.idem == nil || input.IdempotencyKey == "" {
		return ""
	}
	return fmt.Sprintf("%d:%s", input.RealtorID, input.IdempotencyKey)
}

func (s *HomeService) emit(kind domain.ListingEventType, homeID, realtorID int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.ListingEvent{
		ID:         uuid.NewString(),
		Type:       kind,
		HomeID:     homeID,
		RealtorID:  realtorID,
		OccurredAt: s.now().UTC(),
	})
}

func imagePrefix(homeID int64) string {
	return fmt.Sprintf("homes/%d/", homeID)
}
